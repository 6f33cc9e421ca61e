package script

import (
	"bytes"
	"regexp"
	"strings"
)

var (
	scriptBlockExpr = regexp.MustCompile(`(?is)<script\b([^>]*)>(.*?)</script>`)
	langAttrExpr    = regexp.MustCompile(`(?i)\blang\s*=\s*["']?([a-z]+)`)
)

type block struct {
	language Language
	content  []byte
	line     int // lines preceding the block content
}

// scriptBlocks extracts the <script> sections of a single file component
func scriptBlocks(src []byte) []block {
	var blocks []block
	for _, match := range scriptBlockExpr.FindAllSubmatchIndex(src, -1) {
		attrs := src[match[2]:match[3]]
		language := JavaScript
		if lang := langAttrExpr.FindSubmatch(attrs); lang != nil {
			switch strings.ToLower(string(lang[1])) {
			case "ts":
				language = TypeScript
			case "tsx":
				language = TSX
			}
		}
		blocks = append(blocks, block{
			language: language,
			content:  src[match[4]:match[5]],
			line:     bytes.Count(src[:match[4]], []byte("\n")),
		})
	}
	return blocks
}
