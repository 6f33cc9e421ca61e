package commands

import (
	"github.com/spf13/cobra"
	"github.com/viant/afs"

	"github.com/muze-github/muze/inspector/repository"
	"github.com/muze-github/muze/stats"
)

// NewStatsCommand creates the stats command
func NewStatsCommand(globals *Globals) *cobra.Command {
	var (
		dir    string
		format string
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show code statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			collector := stats.New(afs.New(), globals.Logger, globals.Config.Clean.SkipDirs...)
			result, err := collector.Collect(ctx, dir)
			if err != nil {
				return withProjectHint(ctx, dir, err)
			}
			if repo, err := repository.New().DetectRepository(ctx, dir); err == nil {
				result.Repository = repo.Origin
			}
			return result.Render(cmd.OutOrStdout(), format)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "project root containing package.json")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or json")
	return cmd
}
