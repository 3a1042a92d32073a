package interfaces

import "time"

// MarkdownParser converts Markdown source into HTML.
type MarkdownParser interface {
	Parse(markdown []byte) ([]byte, error)
}

// FrontMatter captures the metadata block of an imported blog document.
type FrontMatter struct {
	Title    string
	Slug     string
	Excerpt  string
	Author   string
	Tags     []string
	Image    string
	ImageAlt string
	Date     time.Time
	Draft    bool
	Custom   map[string]any
}

// Document is a parsed Markdown file plus its metadata, ready to become a
// blog post. BodyHTML stays empty until a parser renders it.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
}
