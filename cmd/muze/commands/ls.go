package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muze-github/muze/template"
)

// NewListCommand creates the ls command
func NewListCommand(globals *Globals) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [name]",
		Short: "List project templates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := template.NewCatalog(globals.Config.Templates)
			if len(args) == 0 {
				catalog.Render(cmd.OutOrStdout())
				return nil
			}
			found, err := catalog.Find(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n  repository: %s\n  description: %s\n", found.Name, found.Repository, found.Description)
			return nil
		},
	}
}
