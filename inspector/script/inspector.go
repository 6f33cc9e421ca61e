package script

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/muze-github/muze/inspector/graph"
)

// Language identifies the grammar used for a source file
type Language string

const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
	Vue        Language = "vue"
)

// LanguageFor returns the language for a file extension (including the dot)
func LanguageFor(ext string) (Language, bool) {
	switch strings.ToLower(ext) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return JavaScript, true
	case ".ts", ".mts", ".cts":
		return TypeScript, true
	case ".tsx":
		return TSX, true
	case ".vue":
		return Vue, true
	}
	return "", false
}

func (l Language) grammar() *sitter.Language {
	switch l {
	case TypeScript:
		return typescript.GetLanguage()
	case TSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// SyntaxError reports a source file that does not parse cleanly
type SyntaxError struct {
	Line   int
	Column int
	Near   string
}

func (e *SyntaxError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("syntax error at %d:%d", e.Line, e.Column)
	}
	return fmt.Sprintf("syntax error at %d:%d near %q", e.Line, e.Column, e.Near)
}

// Inspector extracts module references from JavaScript family sources
type Inspector struct {
	language Language
}

// NewInspector creates an inspector for the given language
func NewInspector(language Language) *Inspector {
	if language == "" {
		language = JavaScript
	}
	return &Inspector{language: language}
}

// InspectSource parses source code and extracts its imports and load calls
func (i *Inspector) InspectSource(ctx context.Context, src []byte) (*graph.File, error) {
	return i.inspect(ctx, src, "source"+i.defaultExt())
}

func (i *Inspector) inspect(ctx context.Context, src []byte, filename string) (*graph.File, error) {
	aFile := &graph.File{
		Name:     filepath.Base(filename),
		Path:     filename,
		Language: string(i.language),
	}
	if i.language != Vue {
		if err := i.inspectBlock(ctx, i.language, src, 0, aFile); err != nil {
			return nil, err
		}
		return aFile, nil
	}
	for _, block := range scriptBlocks(src) {
		if err := i.inspectBlock(ctx, block.language, block.content, block.line, aFile); err != nil {
			return nil, err
		}
	}
	return aFile, nil
}

func (i *Inspector) inspectBlock(ctx context.Context, language Language, src []byte, lineOffset int, aFile *graph.File) error {
	parser := sitter.NewParser()
	parser.SetLanguage(language.grammar())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return fmt.Errorf("failed to parse source: %w", err)
	}
	rootNode := tree.RootNode()
	if rootNode.HasError() {
		syntaxErr := &SyntaxError{}
		if errNode := findErrorNode(rootNode); errNode != nil {
			point := errNode.StartPoint()
			syntaxErr.Line = int(point.Row) + 1 + lineOffset
			syntaxErr.Column = int(point.Column) + 1
			syntaxErr.Near = snippet(errNode.Content(src))
		}
		return syntaxErr
	}
	collectImports(rootNode, src, lineOffset, aFile)
	return nil
}

func (i *Inspector) defaultExt() string {
	switch i.language {
	case TypeScript:
		return ".ts"
	case TSX:
		return ".tsx"
	case Vue:
		return ".vue"
	}
	return ".js"
}

// collectImports walks the tree and records import declarations and load calls
func collectImports(node *sitter.Node, src []byte, lineOffset int, aFile *graph.File) {
	switch node.Type() {
	case "import_statement":
		if imp, ok := parseImportStatement(node, src); ok {
			imp.Line = int(node.StartPoint().Row) + 1 + lineOffset
			aFile.AddImport(imp)
		}
	case "call_expression":
		if imp, ok := parseLoadCall(node, src); ok {
			imp.Line = int(node.StartPoint().Row) + 1 + lineOffset
			aFile.AddImport(imp)
		}
	}
	for j := uint32(0); j < node.NamedChildCount(); j++ {
		collectImports(node.NamedChild(int(j)), src, lineOffset, aFile)
	}
}

// parseImportStatement extracts the source and default binding of an import declaration
func parseImportStatement(importNode *sitter.Node, src []byte) (graph.Import, bool) {
	imp := graph.Import{Kind: graph.Static}
	sourceNode := importNode.ChildByFieldName("source")
	if sourceNode == nil {
		for j := uint32(0); j < importNode.NamedChildCount(); j++ {
			child := importNode.NamedChild(int(j))
			if child.Type() == "string" {
				sourceNode = child
				break
			}
		}
	}
	if sourceNode == nil || sourceNode.Type() != "string" {
		return imp, false
	}
	imp.Path = unquote(sourceNode.Content(src))

	for j := uint32(0); j < importNode.NamedChildCount(); j++ {
		child := importNode.NamedChild(int(j))
		if child.Type() != "import_clause" {
			continue
		}
		for k := uint32(0); k < child.NamedChildCount(); k++ {
			binding := child.NamedChild(int(k))
			if binding.Type() == "identifier" {
				imp.Name = binding.Content(src)
				break
			}
		}
	}
	return imp, imp.Path != ""
}

// parseLoadCall matches require('<lit>') and import('<lit>') calls
func parseLoadCall(callNode *sitter.Node, src []byte) (graph.Import, bool) {
	imp := graph.Import{}
	fnNode := callNode.ChildByFieldName("function")
	if fnNode == nil {
		return imp, false
	}
	switch fnNode.Type() {
	case "import":
		imp.Kind = graph.Dynamic
	case "identifier":
		if fnNode.Content(src) != "require" {
			return imp, false
		}
		imp.Kind = graph.Require
	default:
		return imp, false
	}

	argsNode := callNode.ChildByFieldName("arguments")
	if argsNode == nil {
		return imp, false
	}
	for j := uint32(0); j < argsNode.NamedChildCount(); j++ {
		arg := argsNode.NamedChild(int(j))
		if arg.Type() == "comment" {
			continue
		}
		if arg.Type() != "string" {
			return imp, false
		}
		imp.Path = unquote(arg.Content(src))
		return imp, imp.Path != ""
	}
	return imp, false
}

// findErrorNode returns the first ERROR or MISSING node in document order
func findErrorNode(node *sitter.Node) *sitter.Node {
	if node.Type() == "ERROR" || node.IsMissing() {
		return node
	}
	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		if found := findErrorNode(child); found != nil {
			return found
		}
	}
	return nil
}

func unquote(literal string) string {
	return strings.Trim(literal, "'\"")
}

func snippet(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.IndexByte(text, '\n'); idx != -1 {
		text = text[:idx]
	}
	if len(text) > 40 {
		text = text[:40]
	}
	return text
}
