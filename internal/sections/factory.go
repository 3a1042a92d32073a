package sections

import (
	"time"

	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/google/uuid"
)

// IDGenerator mints section identities.
type IDGenerator func() uuid.UUID

// Factory builds sections with injectable clock and identity sources so
// callers (and tests) can produce deterministic output.
type Factory struct {
	now func() time.Time
	id  IDGenerator
}

// FactoryOption mutates a Factory during construction.
type FactoryOption func(*Factory)

// WithClock overrides the factory clock.
func WithClock(clock func() time.Time) FactoryOption {
	return func(f *Factory) {
		if clock != nil {
			f.now = clock
		}
	}
}

// WithIDGenerator overrides the identity source.
func WithIDGenerator(generator IDGenerator) FactoryOption {
	return func(f *Factory) {
		if generator != nil {
			f.id = generator
		}
	}
}

// NewFactory constructs a section factory.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		now: time.Now,
		id:  uuid.New,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// New produces a section of the given type at the given order with a fresh
// identity and type-specific placeholder content. It never fails: an unknown
// type yields an empty payload, which the renderer emits as an empty
// fragment. This is also the fallback path when AI generation returns
// nothing usable.
func (f *Factory) New(t Type, order int) Section {
	content := map[string]any{}
	if def, ok := registry[t]; ok {
		content = cloneContent(def.Defaults)
	}
	return Section{
		ID:           f.id(),
		Type:         t,
		Content:      content,
		Order:        order,
		UserEdited:   false,
		LastEditedAt: f.now(),
		LastEditedBy: domain.EditorSystem,
	}
}

// MarkUserEdited locks the section against silent AI overwrites and stamps
// the human provenance.
func (f *Factory) MarkUserEdited(section Section) Section {
	out := section.Clone()
	out.UserEdited = true
	out.LastEditedBy = domain.EditorUser
	out.LastEditedAt = f.now()
	return out
}

// ResetLock clears the user-edit lock, returning the section to system
// ownership.
func (f *Factory) ResetLock(section Section) Section {
	out := section.Clone()
	out.UserEdited = false
	out.LastEditedBy = domain.EditorSystem
	out.LastEditedAt = f.now()
	return out
}

var defaultFactory = NewFactory()

// New builds a section using the package default factory.
func New(t Type, order int) Section {
	return defaultFactory.New(t, order)
}

// MarkUserEdited applies the user-edit lock using the default factory clock.
func MarkUserEdited(section Section) Section {
	return defaultFactory.MarkUserEdited(section)
}

// ResetLock clears the user-edit lock using the default factory clock.
func ResetLock(section Section) Section {
	return defaultFactory.ResetLock(section)
}
