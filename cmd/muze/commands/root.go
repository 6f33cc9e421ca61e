// Package commands implements CLI command handlers for muze.
package commands

import (
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/muze-github/muze/config"
)

// Globals holds persistent flag values and the state loaded from them
type Globals struct {
	ConfigPath string
	Verbose    bool
	NoColor    bool

	Config *config.Config
	Logger *slog.Logger
}

// Load reads configuration and builds the logger writing to the command's error stream
func (g *Globals) Load(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(g.ConfigPath)
	if err != nil {
		return err
	}
	g.Config = cfg
	g.Logger = cfg.Logging.NewLogger(cmd.ErrOrStderr(), g.Verbose)
	if g.NoColor {
		color.NoColor = true
	}
	return nil
}

// NewRootCommand creates the muze command tree
func NewRootCommand() *cobra.Command {
	globals := &Globals{}
	rootCmd := &cobra.Command{
		Use:   "muze",
		Short: "muze - scaffolding and maintenance helpers for JavaScript projects",
		Long: `muze provides project maintenance tools.

Commands:
  clean     Find (and optionally remove) source files nothing imports
  stats     Show code statistics
  ls        List project templates`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return globals.Load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&globals.ConfigPath, "config", "", "config file (default .muze.yaml in the working directory or $HOME)")
	rootCmd.PersistentFlags().BoolVarP(&globals.Verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVar(&globals.NoColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(NewCleanCommand(globals))
	rootCmd.AddCommand(NewStatsCommand(globals))
	rootCmd.AddCommand(NewListCommand(globals))
	rootCmd.AddCommand(NewVersionCommand())
	return rootCmd
}
