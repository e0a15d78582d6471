package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/modelconv/internal/config"
	"github.com/Faultbox/modelconv/internal/logger"
	"github.com/Faultbox/modelconv/pkg/formats"
	"github.com/Faultbox/modelconv/pkg/model"
)

func (a *app) newConvertCmd() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "convert <input> <output|->",
		Short: "Convert a model to another format",
		Long: `Convert reads the input model and writes it in the format selected by the
output extension. Use "-" as output with --to to write to stdout.`,
		Example: `  modelconv convert bunny.ply bunny.obj
  modelconv convert --up-from y --up-to z --normals vertex scene.obj scene.ply
  modelconv convert cube.off - --to ply`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := args[1]
			if out == "-" {
				if to == "" {
					return fmt.Errorf("--to is required when writing to stdout")
				}
				return convert(a.cfg, args[0], "stdout."+to, cmd.OutOrStdout())
			}
			return convertFile(a.cfg, args[0], out)
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Output format when writing to stdout (obj, ply, off)")
	return cmd
}

func newRegistry(cfg *config.Config) (*formats.Registry, error) {
	enc, err := cfg.Convert.Encoding()
	if err != nil {
		return nil, err
	}

	r := formats.NewRegistry()
	r.ChunkSize = cfg.Convert.ChunkSize
	r.Charset = enc
	return r, nil
}

// loadModel reads a model applying the configured up-axis conversion.
func loadModel(cfg *config.Config, reg *formats.Registry, path string) (*model.Document, error) {
	up, err := cfg.Convert.UpConversion()
	if err != nil {
		return nil, err
	}
	return reg.Load(path, up)
}

func convertFile(cfg *config.Config, in, out string) error {
	f, err := os.Create(out)
	if err != nil {
		return err
	}

	if err := convert(cfg, in, out, f); err != nil {
		f.Close()
		os.Remove(out)
		return err
	}
	return f.Close()
}

// convert loads in and writes it to w in the format of outPath.
func convert(cfg *config.Config, in, outPath string, w io.Writer) error {
	reg, err := newRegistry(cfg)
	if err != nil {
		return err
	}
	if _, ok := reg.Find(outPath); !ok {
		return fmt.Errorf("%w: %s", formats.ErrUnsupportedFormat, outPath)
	}

	doc, err := loadModel(cfg, reg, in)
	if err != nil {
		return err
	}

	switch cfg.Convert.Normals {
	case config.NormalsVertex:
		err = doc.GenerateVertexNormals()
	case config.NormalsFace:
		err = doc.GenerateFaceNormals()
	}
	if err != nil {
		return fmt.Errorf("generating normals: %w", err)
	}

	if err := reg.ExportTo(w, doc, outPath); err != nil {
		return fmt.Errorf("exporting %s: %w", outPath, err)
	}

	stats := doc.Stats()
	logger.Info("model converted",
		zap.String("input", in),
		zap.String("output", outPath),
		zap.Int("vertices", stats.Vertices),
		zap.Int("faces", stats.Faces))
	return nil
}
