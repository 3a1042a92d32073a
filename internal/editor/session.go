package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/sections"
	"github.com/goliatone/go-sitebuilder/internal/website"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// State is the selection state of the editing session.
type State string

const (
	StateUnselected State = "unselected"
	StateSelected   State = "selected"
	StateEditing    State = "editing"
)

// ErrOutboundKind is returned when a host→preview message is fed back into
// the host dispatcher.
var ErrOutboundKind = errors.New("editor: message kind flows host to preview")

// ErrPageNotFound rejects sessions opened on a page the aggregate does not
// own.
var ErrPageNotFound = errors.New("editor: page not found")

// Warning surfaces a non-fatal protocol problem, most importantly an inline
// edit that could not be matched to a content field and was dropped.
type Warning struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// Session is the host half of the preview sync protocol, scoped to one page
// of one website aggregate. The aggregate is owned exclusively by this
// session; rapid edits to the same field are last-write-wins.
type Session struct {
	mu        sync.Mutex
	site      *website.Website
	pageID    uuid.UUID
	factory   *sections.Factory
	logger    interfaces.Logger
	state     State
	selection *ElementSelectedPayload
	warnings  []Warning
	autosave  *Autosave
}

// SessionOption mutates the session during construction.
type SessionOption func(*Session)

// WithLogger attaches a logger; the default discards entries.
func WithLogger(logger interfaces.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSectionFactory wires the factory used for provenance stamping.
func WithSectionFactory(factory *sections.Factory) SessionOption {
	return func(s *Session) {
		if factory != nil {
			s.factory = factory
		}
	}
}

// WithAutosave wires the debounced persistence timer; each applied edit
// resets it.
func WithAutosave(autosave *Autosave) SessionOption {
	return func(s *Session) {
		s.autosave = autosave
	}
}

// NewSession opens an editing session over one page of the aggregate. The
// session works on its own clone; read the result back with Website().
func NewSession(site *website.Website, pageID uuid.UUID, opts ...SessionOption) (*Session, error) {
	if site == nil {
		return nil, errors.New("editor: website is required")
	}
	s := &Session{
		site:    site.Clone(),
		pageID:  pageID,
		factory: sections.NewFactory(),
		logger:  logging.NoOp(),
		state:   StateUnselected,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.site.FindPage(pageID) == nil {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, pageID)
	}
	return s, nil
}

// State reports the current selection state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Selection returns the metadata of the currently selected element, or nil.
func (s *Session) Selection() *ElementSelectedPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selection == nil {
		return nil
	}
	out := *s.selection
	return &out
}

// Website returns a snapshot of the session's aggregate.
func (s *Session) Website() *website.Website {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.site.Clone()
}

// Warnings drains the accumulated warnings. Dropped edits land here so the
// host UI can tell the user instead of failing silently.
func (s *Session) Warnings() []Warning {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.warnings
	s.warnings = nil
	return out
}

// Deselect clears the selection and returns the message to forward to the
// preview.
func (s *Session) Deselect() Message {
	s.mu.Lock()
	s.state = StateUnselected
	s.selection = nil
	s.mu.Unlock()
	return DeselectMessage()
}

// Apply dispatches one preview→host message through the state machine.
func (s *Session) Apply(msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch msg.Kind {
	case KindElementSelected:
		return s.applyElementSelected(msg.Payload)
	case KindEditVideo:
		return s.applyEditVideo(msg.Payload)
	case KindContentUpdated:
		return s.applyContentUpdated(msg.Payload)
	case KindUpdateElement, KindUpdateVideo, KindDeselect:
		return fmt.Errorf("%w: %s", ErrOutboundKind, msg.Kind)
	default:
		return fmt.Errorf("editor: unknown message kind %q", msg.Kind)
	}
}

func (s *Session) applyElementSelected(raw json.RawMessage) error {
	var payload ElementSelectedPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("editor: decode element-selected: %w", err)
	}
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("editor: invalid element-selected: %w", err)
	}
	s.selection = &payload
	s.state = StateSelected
	return nil
}

func (s *Session) applyEditVideo(raw json.RawMessage) error {
	var payload EditVideoPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("editor: decode edit-video: %w", err)
	}
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("editor: invalid edit-video: %w", err)
	}
	s.state = StateEditing
	return nil
}

// applyContentUpdated resolves the edit to exactly one content field, or
// drops it. A precise sectionId+property key is authoritative; the heuristic
// fallback only runs when both are absent.
func (s *Session) applyContentUpdated(raw json.RawMessage) error {
	var payload ContentUpdatedPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("editor: decode content-updated: %w", err)
	}
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("editor: invalid content-updated: %w", err)
	}

	page := s.site.FindPage(s.pageID)
	var target *sections.Section
	var property string

	if payload.SectionID != "" && payload.Property != "" {
		target, property = resolvePrecise(page, payload.SectionID, payload.Property)
	} else {
		target, property = resolveLegacy(page, payload.ElementType)
	}

	if target == nil {
		s.logger.Warn("inline edit dropped, no matching section field",
			"page_id", s.pageID,
			"section_id", payload.SectionID,
			"property", payload.Property,
			"element_type", payload.ElementType)
		s.warnings = append(s.warnings, Warning{
			Code:   "edit-dropped",
			Detail: fmt.Sprintf("edit to %s %q could not be matched to any section field and was not saved", payload.ElementType, payload.Property),
		})
		s.state = StateSelected
		return nil
	}

	updated := target.Clone()
	updated.Content[property] = payload.Text
	*target = s.factory.MarkUserEdited(updated)
	s.state = StateSelected

	if s.autosave != nil {
		s.autosave.Touch()
	}
	return nil
}

// resolvePrecise finds the first section matching the id whose content has
// the named property. A section id match without the property is still a
// miss; the edit is never applied to a different field.
func resolvePrecise(page *website.Page, sectionID, property string) (*sections.Section, string) {
	id, err := uuid.Parse(sectionID)
	if err != nil {
		return nil, ""
	}
	for i := range page.Sections {
		if page.Sections[i].ID != id {
			continue
		}
		if _, ok := page.Sections[i].Content[property]; ok {
			return &page.Sections[i], property
		}
	}
	return nil, ""
}
