// Package render turns annotation markdown, step source code and step diffs
// into HTML for the viewer.
package render

import (
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Renderer renders markdown and highlighted source.
type Renderer struct {
	style string
}

// NewRenderer creates a Renderer using the named chroma style.
func NewRenderer(style string) *Renderer {
	if style == "" {
		style = "github"
	}
	return &Renderer{style: style}
}

// Markdown renders annotation markdown to HTML.
func (r *Renderer) Markdown(source string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(source))

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank,
	})
	return string(markdown.Render(doc, renderer))
}

// Highlight renders source code as syntax-highlighted HTML with line
// numbers. Unknown languages fall back to plain-text tokens rather than
// failing.
func (r *Renderer) Highlight(source, language string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	style := styles.Get(r.style)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("tokenise source: %w", err)
	}

	formatter := chromahtml.New(
		chromahtml.WithLineNumbers(true),
		chromahtml.WithClasses(false),
	)

	var b strings.Builder
	if err := formatter.Format(&b, style, iterator); err != nil {
		return "", fmt.Errorf("format source: %w", err)
	}
	return b.String(), nil
}
