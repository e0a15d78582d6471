package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Faultbox/modelconv/pkg/formats"
	"github.com/Faultbox/modelconv/pkg/model"
)

func (a *app) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <input>",
		Short: "Display statistics about a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := newRegistry(a.cfg)
			if err != nil {
				return err
			}
			doc, err := loadModel(a.cfg, reg, args[0])
			if err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), doc)
			return nil
		},
	}
}

func printInfo(w io.Writer, doc *model.Document) {
	stats := doc.Stats()

	fmt.Fprintf(w, "File: %s\n", doc.SourcePath())
	if f, ok := formats.FindFormat(doc.SourcePath()); ok {
		fmt.Fprintf(w, "Format: %s\n", f)
	}
	if up := doc.UpConversion(); up != nil {
		fmt.Fprintf(w, "Up conversion: %s\n", up)
	}

	fmt.Fprintln(w, "\nStatistics:")
	fmt.Fprintf(w, "  Vertices:   %d\n", stats.Vertices)
	fmt.Fprintf(w, "  Faces:      %d\n", stats.Faces)
	fmt.Fprintf(w, "  Normals:    %d (%s)\n", stats.Normals, doc.NormalMode())
	fmt.Fprintf(w, "  Tex coords: %d\n", stats.TexCoords)
	fmt.Fprintf(w, "  Colors:     %d\n", stats.Colors)

	bbox := doc.BoundingBox()
	if !bbox.Empty() {
		fmt.Fprintln(w, "\nBounding Box:")
		fmt.Fprintf(w, "  Min:    %s\n", bbox.Min)
		fmt.Fprintf(w, "  Max:    %s\n", bbox.Max)
		fmt.Fprintf(w, "  Center: %s\n", bbox.Center())
	}

	fmt.Fprintf(w, "\nParts (%d):\n", stats.Parts)
	for i, part := range doc.Parts() {
		mat := part.EffectiveMaterial()
		name := mat.Name
		if mat.IsDefault() {
			name = "(default)"
		}
		fmt.Fprintf(w, "  %d: %d faces, material %s", i, len(part.Faces), name)
		if mat.HasTexture() && !mat.IsDefault() {
			fmt.Fprintf(w, ", texture %s %dx%d", mat.Texture.Format, mat.Texture.Width, mat.Texture.Height)
		}
		fmt.Fprintln(w)
	}
}
