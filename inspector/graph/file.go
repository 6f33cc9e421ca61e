package graph

// ImportKind identifies the syntax used to reference another module
type ImportKind string

const (
	// Static is an `import ... from '...'` or bare `import '...'` declaration
	Static ImportKind = "import"
	// Require is a `require('...')` call
	Require ImportKind = "require"
	// Dynamic is an `import('...')` call
	Dynamic ImportKind = "dynamic"
)

// File represents a parsed source file with the module references it makes
type File struct {
	Name     string   `yaml:"name,omitempty" json:"name,omitempty"` // File name
	Path     string   `yaml:"path" json:"path"`                     // File path
	Language string   `yaml:"language" json:"language"`             // Grammar used to parse the file
	Imports  []Import `yaml:"imports,omitempty" json:"imports,omitempty"`
}

// Import represents a module reference found in a file
type Import struct {
	Name string     `yaml:"name,omitempty" json:"name,omitempty"` // Local binding (may be empty)
	Path string     `yaml:"path" json:"path"`                     // Literal specifier
	Kind ImportKind `yaml:"kind" json:"kind"`
	Line int        `yaml:"line" json:"line"` // 1-based line of the reference
}

// IsRelative reports whether the specifier points at a local file
func (i *Import) IsRelative() bool {
	return len(i.Path) > 0 && i.Path[0] == '.'
}

// AddImport appends an import to the file
func (f *File) AddImport(imp Import) {
	f.Imports = append(f.Imports, imp)
}

// RelativeImports returns imports whose specifier starts with '.'
func (f *File) RelativeImports() []Import {
	var result []Import
	for i := range f.Imports {
		if f.Imports[i].IsRelative() {
			result = append(result, f.Imports[i])
		}
	}
	return result
}
