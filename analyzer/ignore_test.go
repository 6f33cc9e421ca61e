package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/muze-github/muze/analyzer"
)

func TestIgnoreRules_Match(t *testing.T) {
	rules := analyzer.ParseIgnore([]byte(`
# comment
coverage/
/out/
*.log
src/*.spec.ts
.env.local
!keep.log
`))
	assert.Equal(t, 5, rules.Len())

	tests := []struct {
		path   string
		isDir  bool
		expect bool
	}{
		{path: "coverage", isDir: true, expect: true},
		{path: "coverage/lcov.info", expect: true},
		{path: "coverage.ts", expect: false},
		{path: "out", isDir: true, expect: true},
		{path: "src/out/a.ts", expect: false},
		{path: "debug.log", expect: true},
		{path: "logs/app.log", expect: true},
		{path: "keep.log", expect: true},
		{path: "src/a.spec.ts", expect: true},
		{path: "src/deep/a.spec.ts", expect: true},
		{path: "lib/a.spec.ts", expect: false},
		{path: ".env.local", expect: true},
		{path: "src/.env.local", expect: false},
		{path: "src/index.ts", expect: false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expect, rules.Match(tt.path, tt.isDir), tt.path)
	}
}

func TestIgnoreRules_Nil(t *testing.T) {
	var rules *analyzer.IgnoreRules
	assert.False(t, rules.Match("anything.ts", false))
	assert.Equal(t, 0, rules.Len())
	assert.Equal(t, 0, analyzer.ParseIgnore(nil).Len())
}
