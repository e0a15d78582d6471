package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported model formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := newRegistry(a.cfg)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, e := range reg.Entries() {
				fmt.Fprintf(w, "%-4s %s\n", e.Format, strings.Join(e.Extensions, " "))
			}
			return nil
		},
	}
}
