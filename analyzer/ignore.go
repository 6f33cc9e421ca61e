package analyzer

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
)

// IgnoreRules holds patterns read from a line-oriented ignore file.
type IgnoreRules struct {
	prefixes []string
	exact    map[string]bool
	patterns []*regexp.Regexp
}

// ParseIgnore parses ignore file content. Blank lines and # comments are skipped,
// a trailing slash makes a directory prefix, * is a wildcard, anything else is
// an exact root-relative path.
func ParseIgnore(data []byte) *IgnoreRules {
	rules := &IgnoreRules{exact: map[string]bool{}}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		line = strings.TrimPrefix(line, "/")
		switch {
		case strings.HasSuffix(line, "/"):
			rules.prefixes = append(rules.prefixes, line)
		case strings.Contains(line, "*"):
			parts := strings.Split(line, "*")
			for i, part := range parts {
				parts[i] = regexp.QuoteMeta(part)
			}
			rules.patterns = append(rules.patterns, regexp.MustCompile("^"+strings.Join(parts, ".*")+"$"))
		case line != "":
			rules.exact[line] = true
		}
	}
	return rules
}

// Len returns the number of parsed rules.
func (r *IgnoreRules) Len() int {
	if r == nil {
		return 0
	}
	return len(r.prefixes) + len(r.exact) + len(r.patterns)
}

// Match reports whether the slash-separated root-relative path is ignored.
// Directories are also matched with a trailing slash so "dist/" excludes the
// dist folder itself.
func (r *IgnoreRules) Match(relative string, isDir bool) bool {
	if r == nil || relative == "" {
		return false
	}
	candidate := relative
	if isDir {
		candidate += "/"
	}
	for _, prefix := range r.prefixes {
		if strings.HasPrefix(candidate, prefix) {
			return true
		}
	}
	if r.exact[relative] {
		return true
	}
	for _, pattern := range r.patterns {
		if pattern.MatchString(relative) {
			return true
		}
	}
	return false
}
