package repository

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"

	"github.com/muze-github/muze/manifest"
)

// Detector identifies project root folders and provides project-related information
type Detector struct {
	// Project root marker files/directories
	markers []string
	fs      afs.Service
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		markers: []string{
			manifest.FileName, // JavaScript/Node projects
			".git",            // Generic VCS marker
		},
		fs: afs.New(),
	}
}

// DetectProject identifies the project root for the given file path and returns project info
func (d *Detector) DetectProject(ctx context.Context, filePath string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}

	// If the path is a directory, start from there
	// If it's a file, start from its parent directory
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, projectType := d.findProjectRoot(startDir)

	info := &Project{
		Type:     "unknown",
		RootPath: absPath,
	}
	if rootPath != "" {
		info.RootPath = rootPath
		info.Type = projectType
	}

	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)

	switch projectType {
	case KindJavaScript:
		if m, err := manifest.Load(ctx, d.fs, rootPath); err == nil {
			info.Name = m.Name
			info.Version = m.Version
		}
		if info.Name == "" {
			info.Name = filepath.Base(rootPath)
		}
	case KindGit:
		info.Name = d.extractGitProjectName(ctx, rootPath)
	}
	return info, nil
}

// DetectRepository identifies the repository containing the given file path
func (d *Detector) DetectRepository(ctx context.Context, filePath string) (*Repository, error) {
	info, err := d.DetectProject(ctx, filePath)
	if err != nil {
		return nil, err
	}
	repo := &Repository{
		Kind: info.Type,
		Root: info.RootPath,
		Info: info,
	}
	if gitRoot := d.findGitRoot(info.RootPath); gitRoot != "" {
		repo.Kind = KindGit
		repo.Root = gitRoot
		repo.Origin = d.extractGitOrigin(ctx, gitRoot)
	}
	return repo, nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, determineProjectType(marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

// findGitRoot finds the root of the git repository containing the given directory
func (d *Detector) findGitRoot(startDir string) string {
	dir := startDir
	homeDir := os.Getenv("HOME")
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir || parent == homeDir {
			return ""
		}
		dir = parent
	}
}

// extractGitOrigin extracts the origin URL from git config
func (d *Detector) extractGitOrigin(ctx context.Context, gitRoot string) string {
	content, err := d.fs.DownloadWithURL(ctx, filepath.Join(gitRoot, ".git", "config"))
	if err != nil {
		return ""
	}
	scanner := bufio.NewScanner(bytes.NewReader(content))
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			foundRemote = strings.Contains(line, "[remote \"origin\"]")
			continue
		}
		if foundRemote && strings.HasPrefix(line, "url = ") {
			return strings.TrimPrefix(line, "url = ")
		}
	}
	return ""
}

func (d *Detector) extractGitProjectName(ctx context.Context, gitRoot string) string {
	if origin := d.extractGitOrigin(ctx, gitRoot); origin != "" {
		origin = strings.TrimSuffix(origin, ".git")
		parts := strings.Split(origin, "/")
		if name := parts[len(parts)-1]; name != "" {
			return name
		}
	}
	return filepath.Base(gitRoot)
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case manifest.FileName:
		return KindJavaScript
	case ".git":
		return KindGit
	default:
		return "unknown"
	}
}
