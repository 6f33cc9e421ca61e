package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/viant/afs"

	"github.com/muze-github/muze/analyzer"
	"github.com/muze-github/muze/inspector/repository"
	"github.com/muze-github/muze/report"
)

// CleanCommand holds flags for the clean command
type CleanCommand struct {
	globals *Globals

	dir          string
	export       bool
	output       string
	remove       bool
	format       string
	reachability bool
	ignoreFile   string
	extensions   []string
}

// NewCleanCommand creates the clean command
func NewCleanCommand(globals *Globals) *cobra.Command {
	c := &CleanCommand{globals: globals}
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Report source files that no other file imports",
		Long: `Scans .ts/.tsx/.js/.jsx/.vue files, counts local import, require() and
import() references, and lists files with no incoming reference that are
not entry points declared in package.json.`,
		Args: cobra.NoArgs,
		RunE: c.Run,
	}
	cmd.Flags().StringVar(&c.dir, "dir", ".", "project root containing package.json")
	cmd.Flags().BoolVar(&c.export, "export", false, "export unused files to a report file")
	cmd.Flags().StringVarP(&c.output, "output", "o", "", "report file; extension selects xlsx, csv, md, html, json or yaml")
	cmd.Flags().BoolVar(&c.remove, "remove", false, "delete unused files")
	cmd.Flags().StringVarP(&c.format, "format", "f", report.FormatText, "console format: text, json or yaml")
	cmd.Flags().BoolVar(&c.reachability, "reachability", false, "also list files unreachable from entry files")
	cmd.Flags().StringVar(&c.ignoreFile, "ignore-file", "", "ignore file relative to the project root (default .gitignore)")
	cmd.Flags().StringSliceVar(&c.extensions, "ext", nil, "source extensions in resolution order, e.g. .ts,.js")
	return cmd
}

// Run executes the analysis and its optional side effects
func (c *CleanCommand) Run(cmd *cobra.Command, _ []string) error {
	switch c.format {
	case report.FormatText, report.FormatJSON, report.FormatYAML:
	default:
		return fmt.Errorf("%w: %q", report.ErrUnsupportedFormat, c.format)
	}
	cfg := c.globals.Config
	output := c.output
	if output == "" {
		output = cfg.Clean.Report
	}
	if c.export {
		if err := report.CheckFormat(output); err != nil {
			return err
		}
	}
	ignoreFile := cfg.Clean.IgnoreFile
	if cmd.Flags().Changed("ignore-file") {
		ignoreFile = c.ignoreFile
	}
	extensions := cfg.Clean.Extensions
	if len(c.extensions) > 0 {
		extensions = c.extensions
	}

	ctx := cmd.Context()
	fs := afs.New()
	srv := analyzer.New(
		analyzer.WithFS(fs),
		analyzer.WithLogger(c.globals.Logger),
		analyzer.WithExtensions(extensions...),
		analyzer.WithSkipDirs(cfg.Clean.SkipDirs...),
		analyzer.WithIgnoreFile(ignoreFile),
	)
	result, err := srv.Analyze(ctx, c.dir)
	if err != nil {
		return withProjectHint(ctx, c.dir, err)
	}

	summary := report.NewSummary(result)
	if c.reachability {
		summary.Unreachable = report.NewRows(result.Unreachable())
	}
	if c.export && len(result.Unused) > 0 {
		location, err := filepath.Abs(output)
		if err != nil {
			return err
		}
		if err := report.NewExporter(fs).Export(ctx, location, summary.Unused); err != nil {
			return err
		}
		summary.Exported = location
	}
	if c.remove && len(result.Unused) > 0 {
		summary.WithRemoval(srv.RemoveFiles(ctx, result.Unused))
	}
	return summary.Render(cmd.OutOrStdout(), c.format)
}

// withProjectHint names the nearest enclosing project root when dir lacks a manifest
func withProjectHint(ctx context.Context, dir string, err error) error {
	if !errors.Is(err, analyzer.ErrManifestNotFound) {
		return err
	}
	absDir, absErr := filepath.Abs(dir)
	if absErr != nil {
		return err
	}
	project, detectErr := repository.New().DetectProject(ctx, absDir)
	if detectErr != nil || !project.IsJavaScript() || project.RootPath == absDir {
		return err
	}
	return fmt.Errorf("%w (nearest project root: %s)", err, project.RootPath)
}
