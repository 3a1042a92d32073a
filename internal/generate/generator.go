package generate

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/sections"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// ErrSectionLocked rejects AI regeneration of a user-edited section when the
// caller did not pass the explicit override.
var ErrSectionLocked = errors.New("generate: section is user-edited, regeneration requires force")

// Generator produces section payloads and blog drafts through the completion
// boundary. One request per call, no retries.
type Generator interface {
	// SectionContent returns a schema-valid payload for the section type, or
	// nil when the model produced nothing usable. Callers treat nil as "no
	// change" and keep whatever content they already have.
	SectionContent(ctx context.Context, sectionType sections.Type, biz BusinessContext) map[string]any

	// Regenerate replaces a section's content with fresh AI output. A
	// user-edited section is refused unless force is set; when the model
	// fails, the section comes back unchanged with a nil error.
	Regenerate(ctx context.Context, section sections.Section, biz BusinessContext, force bool) (sections.Section, error)

	// BlogDraft produces a markdown blog body for the topic, or an error when
	// the completion boundary fails.
	BlogDraft(ctx context.Context, topic string, biz BusinessContext) (string, error)
}

// GeneratorOption mutates the generator during construction.
type GeneratorOption func(*generator)

// WithLogger attaches a logger; the default discards entries.
func WithLogger(logger interfaces.Logger) GeneratorOption {
	return func(g *generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithClock overrides the provenance clock.
func WithClock(clock func() time.Time) GeneratorOption {
	return func(g *generator) {
		if clock != nil {
			g.now = clock
		}
	}
}

// WithMaxTokens bounds the completion size for section requests.
func WithMaxTokens(n int) GeneratorOption {
	return func(g *generator) {
		if n > 0 {
			g.maxTokens = n
		}
	}
}

type generator struct {
	client    interfaces.CompletionClient
	logger    interfaces.Logger
	now       func() time.Time
	maxTokens int
}

// NewGenerator wires the generator around a completion client.
func NewGenerator(client interfaces.CompletionClient, opts ...GeneratorOption) Generator {
	g := &generator{
		client:    client,
		logger:    logging.NoOp(),
		now:       time.Now,
		maxTokens: 1024,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *generator) SectionContent(ctx context.Context, sectionType sections.Type, biz BusinessContext) map[string]any {
	if g.client == nil {
		return nil
	}
	prompt, err := buildSectionPrompt(sectionType, biz)
	if err != nil {
		g.logger.Debug("section prompt skipped", "type", sectionType, "error", err)
		return nil
	}

	raw, err := g.client.Complete(ctx, interfaces.CompletionRequest{
		System:      sectionSystemPrompt,
		User:        prompt,
		MaxTokens:   g.maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		g.logger.Warn("section completion failed", "type", sectionType, "error", err)
		return nil
	}

	payload, err := extractJSON(raw)
	if err != nil {
		g.logger.Warn("section completion unparseable", "type", sectionType, "error", err)
		return nil
	}
	if err := sections.ValidateContent(sectionType, payload); err != nil {
		g.logger.Warn("section completion rejected by schema", "type", sectionType, "error", err)
		return nil
	}
	return payload
}

func (g *generator) Regenerate(ctx context.Context, section sections.Section, biz BusinessContext, force bool) (sections.Section, error) {
	if section.UserEdited && !force {
		return section, ErrSectionLocked
	}
	content := g.SectionContent(ctx, section.Type, biz)
	if content == nil {
		return section, nil
	}
	out := section.Clone()
	out.Content = content
	out.UserEdited = false
	out.LastEditedBy = domain.EditorAI
	out.LastEditedAt = g.now()
	return out, nil
}

func (g *generator) BlogDraft(ctx context.Context, topic string, biz BusinessContext) (string, error) {
	if g.client == nil {
		return "", errors.New("generate: no completion client configured")
	}
	raw, err := g.client.Complete(ctx, interfaces.CompletionRequest{
		System:      blogSystemPrompt,
		User:        buildBlogPrompt(topic, biz),
		MaxTokens:   2048,
		Temperature: 0.8,
	})
	if err != nil {
		return "", err
	}
	return raw, nil
}
