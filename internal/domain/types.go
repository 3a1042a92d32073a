package domain

import "strings"

// Status represents lifecycle states for builder entities.
type Status string

const (
	// StatusDraft indicates content still under preparation.
	StatusDraft Status = "draft"
	// StatusPublished identifies content available to consumers.
	StatusPublished Status = "published"
)

// ParseStatus normalizes a raw status value, defaulting to draft.
func ParseStatus(value string) Status {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(StatusPublished):
		return StatusPublished
	default:
		return StatusDraft
	}
}

// Editor identifies the actor that last touched a piece of content.
type Editor string

const (
	// EditorUser marks content directly modified by a human.
	EditorUser Editor = "user"
	// EditorAI marks content produced by the generation pipeline.
	EditorAI Editor = "ai"
	// EditorSystem marks content created or reset by the builder itself.
	EditorSystem Editor = "system"
)
