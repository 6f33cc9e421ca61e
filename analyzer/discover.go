package analyzer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/viant/afs/storage"
)

// SourceFile is a discovered file with a recognized source extension
type SourceFile struct {
	Path         string    `json:"path" yaml:"path"`                 // Absolute path, the graph key
	RelativePath string    `json:"relativePath" yaml:"relativePath"` // Root-relative, '/' separated
	Size         int64     `json:"size" yaml:"size"`
	ModTime      time.Time `json:"modTime" yaml:"modTime"`
	Ext          string    `json:"ext" yaml:"ext"`
	References   int       `json:"references" yaml:"references"` // Incoming edge count
	Fingerprint  uint64    `json:"-" yaml:"-"`
}

// Discover walks root and returns recognized source files along with the
// number of non-ignored files seen.
func (a *Analyzer) Discover(ctx context.Context, root string, rules *IgnoreRules) ([]*SourceFile, int, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, 0, err
	}
	var files []*SourceFile
	scanned := 0
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		relative := strings.TrimPrefix(path.Join(filepath.ToSlash(parent), info.Name()), "/")
		if info.IsDir() {
			if a.skipDirs[info.Name()] || rules.Match(relative, true) {
				return false, nil
			}
			return true, nil
		}
		if rules.Match(relative, false) {
			return true, nil
		}
		scanned++
		ext := strings.ToLower(filepath.Ext(info.Name()))
		if !a.recognized(ext) {
			return true, nil
		}
		if !a.factory.Supports(info.Name()) {
			a.logger.Debug("no parser for source extension", "path", relative, "ext", ext)
			return true, nil
		}
		files = append(files, &SourceFile{
			Path:         filepath.Join(absRoot, filepath.FromSlash(relative)),
			RelativePath: relative,
			Size:         info.Size(),
			ModTime:      info.ModTime(),
			Ext:          ext,
		})
		return true, nil
	}
	if err := a.fs.Walk(ctx, absRoot, visitor); err != nil {
		return nil, 0, fmt.Errorf("failed to walk %s: %w", absRoot, err)
	}
	return files, scanned, nil
}

func (a *Analyzer) recognized(ext string) bool {
	for _, candidate := range a.extensions {
		if candidate == ext {
			return true
		}
	}
	return false
}
