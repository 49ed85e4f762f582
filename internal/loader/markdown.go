package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New()

// Load reads a corpus file and returns a title plus its plain-text
// content. Markdown files are parsed and stripped of markup through the
// AST so formatting characters never pollute embeddings; other files
// pass through as-is.
func Load(path string) (title, content string, err error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("loader: reading %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		title, content = extractMarkdown(source)
	default:
		content = strings.TrimSpace(string(source))
	}

	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return title, content, nil
}

// extractMarkdown walks the goldmark AST collecting text content. The
// first level-1 heading becomes the title.
func extractMarkdown(source []byte) (title, content string) {
	doc := md.Parser().Parse(text.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				b.WriteString("\n")
			}
			return ast.WalkContinue, nil
		}

		switch v := n.(type) {
		case *ast.Heading:
			if title == "" && v.Level == 1 {
				title = nodeText(v, source)
			}
		case *ast.Text:
			b.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteString("\n")
			}
		case *ast.FencedCodeBlock:
			writeLines(&b, v.Lines(), source)
		case *ast.CodeBlock:
			writeLines(&b, v.Lines(), source)
		case *ast.AutoLink:
			b.Write(v.URL(source))
		}
		return ast.WalkContinue, nil
	})

	return title, normalizeBlankLines(b.String())
}

func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := c.(*ast.Text); ok {
				b.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func writeLines(b *strings.Builder, lines *text.Segments, source []byte) {
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
}

var blankLines = regexp.MustCompile(`\n{3,}`)

func normalizeBlankLines(s string) string {
	return strings.TrimSpace(blankLines.ReplaceAllString(s, "\n\n"))
}
