package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/uber/perl-dap/src/pdap/app"
	"github.com/uber/perl-dap/src/pdap/internal/core"
	"go.uber.org/fx"
)

const _version = "(to be added by the release build)"

type flags struct {
	configDir string
	address   string
}

func opts(f flags) fx.Option {
	return fx.Options(
		app.Module,
		fx.Supply(app.Overrides{Address: f.address}),
	)
}

func newRootCommand() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:          "pdap",
		Short:        "Debug Adapter Protocol server for the Perl debugger",
		Version:      _version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.configDir != "" {
				if err := os.Setenv(core.EnvConfigDir, f.configDir); err != nil {
					return fmt.Errorf("selecting config directory: %w", err)
				}
			}
			fx.New(opts(f)).Run()
			return nil
		},
	}
	cmd.Flags().StringVar(&f.configDir, "config-dir", "", "directory holding meta.yaml (overrides "+core.EnvConfigDir+")")
	cmd.Flags().StringVar(&f.address, "address", "", "listen address as host:port, or stdio (overrides dap.address)")
	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
