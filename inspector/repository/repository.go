package repository

// Project kinds reported by the detector
const (
	KindJavaScript = "javascript"
	KindGit        = "git"
)

// Repository describes the version-controlled tree around a project. Kind is
// KindGit with Origin set when a .git directory encloses the project,
// otherwise it mirrors the project itself.
type Repository struct {
	Kind   string
	Root   string
	Origin string // remote "origin" url, empty when not configured
	Info   *Project
}

// Project represents information about a detected project
type Project struct {
	RootPath     string // Absolute path to the project root directory
	Type         string // KindJavaScript or KindGit, depending on the marker found
	Name         string // package.json name, or the directory/origin name
	Version      string // package.json version
	RelativePath string // Path from project root to the specified file
}

// IsJavaScript reports whether the project root holds a package.json
func (p *Project) IsJavaScript() bool {
	return p != nil && p.Type == KindJavaScript
}
