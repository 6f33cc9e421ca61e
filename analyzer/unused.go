package analyzer

import (
	"context"
	"fmt"
)

// FindUnused returns files with no incoming references that are not entries,
// sorted by relative path.
func FindUnused(files []*SourceFile, isEntry func(*SourceFile) bool) []*SourceFile {
	var result []*SourceFile
	for _, file := range files {
		if file.References != 0 {
			continue
		}
		if isEntry != nil && isEntry(file) {
			continue
		}
		result = append(result, file)
	}
	sortByRelativePath(result)
	return result
}

// RemoveFiles deletes each file. A failed deletion is logged and the rest
// proceed. A file that no longer exists is reported as failed, since afs
// treats deleting a missing path as success.
func (a *Analyzer) RemoveFiles(ctx context.Context, files []*SourceFile) (removed, failed []*SourceFile) {
	for _, file := range files {
		exists, err := a.fs.Exists(ctx, file.Path)
		if err == nil && !exists {
			err = fmt.Errorf("%s: file no longer exists", file.RelativePath)
		}
		if err == nil {
			err = a.fs.Delete(ctx, file.Path)
		}
		if err != nil {
			a.logger.Warn("failed to remove file", "path", file.RelativePath, "error", err)
			failed = append(failed, file)
			continue
		}
		a.logger.Debug("removed file", "path", file.RelativePath)
		removed = append(removed, file)
	}
	return removed, failed
}
