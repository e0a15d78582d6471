// modelconv converts 3D models between OBJ, PLY and OFF.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/modelconv/internal/config"
	"github.com/Faultbox/modelconv/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the state shared by the subcommands of one invocation.
type app struct {
	flags config.Flags
	cfg   *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "modelconv",
		Short: "Convert 3D models between OBJ, PLY and OFF",
		Long: `modelconv loads OBJ (with MTL materials), PLY (ASCII and binary) and OFF
models, optionally moves the up axis and generates normals, and writes the
result in any of the supported formats.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { logger.Sync() },
	}
	a.flags.Register(root.PersistentFlags())

	root.AddCommand(
		a.newConvertCmd(),
		a.newInfoCmd(),
		a.newFormatsCmd(),
		a.newConfigCmd(),
	)
	return root
}

func (a *app) setup(*cobra.Command, []string) error {
	cfg, err := config.Load(&a.flags)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	a.cfg = cfg
	return nil
}
