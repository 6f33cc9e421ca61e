package analyzer

import (
	"log/slog"
	"strings"

	"github.com/viant/afs"

	"github.com/muze-github/muze/inspector"
)

type Option func(*Analyzer)

// WithFS sets the file system service used for walking, reading and deleting files
func WithFS(fs afs.Service) Option {
	return func(a *Analyzer) {
		a.fs = fs
	}
}

// WithLogger sets the logger receiving per-file warnings
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithExtensions sets recognized source extensions, in resolution preference order
func WithExtensions(extensions ...string) Option {
	return func(a *Analyzer) {
		if len(extensions) == 0 {
			return
		}
		var normalized []string
		for _, ext := range extensions {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			normalized = append(normalized, ext)
		}
		if len(normalized) > 0 {
			a.extensions = normalized
		}
	}
}

// WithSkipDirs sets directory names that are never walked
func WithSkipDirs(names ...string) Option {
	return func(a *Analyzer) {
		a.skipDirs = map[string]bool{}
		for _, name := range names {
			a.skipDirs[name] = true
		}
	}
}

// WithIgnoreFile sets the root-relative ignore file name (e.g. .gitignore); empty disables it
func WithIgnoreFile(name string) Option {
	return func(a *Analyzer) {
		a.ignoreFile = name
	}
}

// WithFactory sets the source inspector factory
func WithFactory(factory *inspector.Factory) Option {
	return func(a *Analyzer) {
		a.factory = factory
	}
}
