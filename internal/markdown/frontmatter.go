package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It returns the structured frontmatter and the body
// without delimiters.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles an interfaces.Document from a file path, raw
// content, and modification time. BodyHTML is left empty so callers can
// render lazily.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.Document{
		FilePath:     path,
		FrontMatter:  meta,
		Body:         body,
		LastModified: modified,
	}, nil
}

type frontMatterEnvelope struct {
	Title    string         `yaml:"title"`
	Slug     string         `yaml:"slug"`
	Excerpt  string         `yaml:"excerpt"`
	Author   string         `yaml:"author"`
	Tags     []string       `yaml:"tags"`
	Image    string         `yaml:"image"`
	ImageAlt string         `yaml:"image_alt"`
	Date     time.Time      `yaml:"date"`
	Draft    bool           `yaml:"draft"`
	Custom   map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	return interfaces.FrontMatter{
		Title:    env.Title,
		Slug:     env.Slug,
		Excerpt:  env.Excerpt,
		Author:   env.Author,
		Tags:     append([]string(nil), env.Tags...),
		Image:    env.Image,
		ImageAlt: env.ImageAlt,
		Date:     env.Date,
		Draft:    env.Draft,
		Custom:   cloneMap(env.Custom),
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
