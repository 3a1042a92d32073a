package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// GoldmarkParser implements interfaces.MarkdownParser using the goldmark
// engine. The parser is stateless; a single instance is safe to share.
type GoldmarkParser struct {
	engine goldmark.Markdown
}

// NewGoldmarkParser constructs a parser with GFM extensions, auto heading
// ids, and raw HTML passthrough (blog authors own their content).
func NewGoldmarkParser() *GoldmarkParser {
	return &GoldmarkParser{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Parse renders Markdown into HTML.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown parse: %w", err)
	}
	return buf.Bytes(), nil
}
