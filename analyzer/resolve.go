package analyzer

import (
	"path/filepath"
	"strings"
)

// Resolve maps a relative specifier found in dir to a discovered source file.
// Candidates are tried in order: the literal path when it carries a
// recognized extension, the path with that extension swapped for each
// recognized one, each extension appended, then index.<ext> inside the path.
func (a *Analyzer) Resolve(dir, specifier string, known map[string]*SourceFile) (string, bool) {
	base := filepath.Join(dir, filepath.FromSlash(specifier))
	for _, candidate := range a.candidates(base) {
		if _, ok := known[candidate]; ok {
			return candidate, true
		}
	}
	return "", false
}

func (a *Analyzer) candidates(base string) []string {
	var result []string
	if ext := strings.ToLower(filepath.Ext(base)); a.recognized(ext) {
		result = append(result, base)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		for _, candidate := range a.extensions {
			if candidate != ext {
				result = append(result, stem+candidate)
			}
		}
	}
	for _, ext := range a.extensions {
		result = append(result, base+ext)
	}
	for _, ext := range a.extensions {
		result = append(result, filepath.Join(base, "index"+ext))
	}
	return result
}
