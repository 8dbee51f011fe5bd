// Package main provides the entry point for the oopstrace CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/resserops/oopstrace/cmd/oopstrace/commands"
	"github.com/resserops/oopstrace/internal/traceconfig"
	"github.com/resserops/oopstrace/pkg/oopslog"
)

func main() {
	oopslog.SetDefault(oopslog.New(os.Stderr, "oopstrace", nil))

	var configPath string

	rootCmd := &cobra.Command{
		Use:   "oopstrace",
		Short: "oopstrace - hierarchical in-process tracing and profiling",
		Long: `oopstrace is a demonstration CLI around the pkg/trace engine.

Commands:
  demo     Run a fixed trace scenario and print its report
  serve    Serve a /metrics endpoint for the trace engine's own health
  version  Show version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := traceconfig.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			traceconfig.Apply(cfg)

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to an explicit .oopstrace.yaml config file")

	rootCmd.AddCommand(commands.NewDemoCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}
