package sections

import (
	"time"

	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/google/uuid"
)

// Type enumerates the closed set of section kinds a page can contain.
type Type string

const (
	TypeHero          Type = "hero"
	TypeServicesGrid  Type = "services-grid"
	TypeAboutIntro    Type = "about-intro"
	TypeContactForm   Type = "contact-form"
	TypeCTA           Type = "cta"
	TypeTestimonials  Type = "testimonials"
	TypeLocationsList Type = "locations-list"
	TypeGallery       Type = "gallery"
	TypeFAQ           Type = "faq"
	TypeFeatures      Type = "features"
	TypeTrustBadges   Type = "trust-badges"
	TypeBlogList      Type = "blog-list"
	TypeTextBlock     Type = "text-block"
	TypeImage         Type = "image"
	TypeVideo         Type = "video"
	TypeCustomContent Type = "custom-content"
)

// Types returns the supported section types in their canonical order.
func Types() []Type {
	return []Type{
		TypeHero,
		TypeServicesGrid,
		TypeAboutIntro,
		TypeContactForm,
		TypeCTA,
		TypeTestimonials,
		TypeLocationsList,
		TypeGallery,
		TypeFAQ,
		TypeFeatures,
		TypeTrustBadges,
		TypeBlogList,
		TypeTextBlock,
		TypeImage,
		TypeVideo,
		TypeCustomContent,
	}
}

// Valid reports whether the type belongs to the supported enumeration.
func (t Type) Valid() bool {
	_, ok := registry[t]
	return ok
}

// Section is a typed, orderable content block within a page. Content is a
// JSON object whose shape is governed by the type's schema; unknown extra
// keys are tolerated but never required.
type Section struct {
	ID           uuid.UUID      `json:"id"`
	Type         Type           `json:"type"`
	Content      map[string]any `json:"content"`
	Order        int            `json:"order"`
	UserEdited   bool           `json:"user_edited"`
	LastEditedAt time.Time      `json:"last_edited_at"`
	LastEditedBy domain.Editor  `json:"last_edited_by"`
}

// Clone returns a deep copy so callers can mutate content without sharing.
func (s Section) Clone() Section {
	out := s
	out.Content = cloneContent(s.Content)
	return out
}

// StringField returns the named content value when it exists and is a string.
func (s Section) StringField(key string) (string, bool) {
	if s.Content == nil {
		return "", false
	}
	value, ok := s.Content[key]
	if !ok {
		return "", false
	}
	text, ok := value.(string)
	return text, ok
}

func cloneContent(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		switch typed := value.(type) {
		case map[string]any:
			out[key] = cloneContent(typed)
		case []any:
			out[key] = cloneSlice(typed)
		default:
			out[key] = value
		}
	}
	return out
}

func cloneSlice(input []any) []any {
	out := make([]any, len(input))
	for i, value := range input {
		switch typed := value.(type) {
		case map[string]any:
			out[i] = cloneContent(typed)
		case []any:
			out[i] = cloneSlice(typed)
		default:
			out[i] = value
		}
	}
	return out
}
