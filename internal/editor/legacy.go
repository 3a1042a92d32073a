package editor

import (
	"github.com/goliatone/go-sitebuilder/internal/sections"
	"github.com/goliatone/go-sitebuilder/internal/website"
)

// Legacy heuristic resolution for documents rendered before editor
// attributes existed. Matching by element type against fixed candidate
// property lists is inherently ambiguous; this path is best-effort only and
// must never be reached when a precise sectionId+property key is available.

var legacyCandidates = map[string][]string{
	"heading": {"headline", "title"},
	"text":    {"subheadline", "subtitle", "content", "description"},
}

// resolveLegacy walks the page's sections in order and returns the first
// section holding the first candidate property (as an existing string
// field) for the element type.
func resolveLegacy(page *website.Page, elementType string) (*sections.Section, string) {
	candidates, ok := legacyCandidates[elementType]
	if !ok {
		return nil, ""
	}
	for i := range page.Sections {
		for _, property := range candidates {
			if _, isString := page.Sections[i].Content[property].(string); isString {
				return &page.Sections[i], property
			}
		}
	}
	return nil, ""
}
