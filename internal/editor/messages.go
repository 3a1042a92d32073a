package editor

import (
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Kind identifies a sync-protocol message. The protocol is a closed set;
// anything else is rejected at decode time.
type Kind string

const (
	// Preview to host.
	KindElementSelected Kind = "element-selected"
	KindEditVideo       Kind = "edit-video"
	KindContentUpdated  Kind = "content-updated"

	// Host to preview.
	KindUpdateElement Kind = "update-element"
	KindUpdateVideo   Kind = "update-video"
	KindDeselect      Kind = "deselect"
)

var knownKinds = map[Kind]bool{
	KindElementSelected: true,
	KindEditVideo:       true,
	KindContentUpdated:  true,
	KindUpdateElement:   true,
	KindUpdateVideo:     true,
	KindDeselect:        true,
}

// Message is the wire envelope: a kind plus a JSON payload. No other shape
// crosses the host/preview boundary.
type Message struct {
	Kind    Kind            `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// DecodeMessage parses and checks an envelope.
func DecodeMessage(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, fmt.Errorf("editor: decode message: %w", err)
	}
	if !knownKinds[msg.Kind] {
		return Message{}, fmt.Errorf("editor: unknown message kind %q", msg.Kind)
	}
	return msg, nil
}

// Rect is the bounding box of a selected element, in preview viewport
// coordinates.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ElementSelectedPayload reports a click on an editable node.
type ElementSelectedPayload struct {
	ElementID   string `json:"elementId"`
	ElementType string `json:"elementType"`
	TagName     string `json:"tagName"`
	SectionID   string `json:"sectionId,omitempty"`
	Property    string `json:"property,omitempty"`
	Text        string `json:"text,omitempty"`
	Rect        Rect   `json:"rect"`
}

// Validate checks the payload shape.
func (p ElementSelectedPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ElementType, validation.Required, validation.In("heading", "text", "image", "video")),
		validation.Field(&p.TagName, validation.Required),
	)
}

// EditVideoPayload fires on double-click of a video element.
type EditVideoPayload struct {
	ElementID string `json:"elementId"`
	URL       string `json:"url"`
}

// Validate checks the payload shape.
func (p EditVideoPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ElementID, validation.Required),
	)
}

// ContentUpdatedPayload commits an inline text edit. SectionID and Property
// identify the exact content field when present; legacy documents without
// editor attributes leave them empty and force heuristic resolution.
type ContentUpdatedPayload struct {
	ElementID   string `json:"elementId"`
	ElementType string `json:"elementType"`
	SectionID   string `json:"sectionId,omitempty"`
	Property    string `json:"property,omitempty"`
	Text        string `json:"text"`
}

// Validate checks the payload shape.
func (p ContentUpdatedPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ElementType, validation.Required, validation.In("heading", "text", "image", "video")),
	)
}

// UpdateElementPayload pushes a direct DOM mutation to the preview. Nil
// fields leave the corresponding attribute untouched.
type UpdateElementPayload struct {
	ElementID string  `json:"elementId"`
	Src       *string `json:"src,omitempty"`
	Alt       *string `json:"alt,omitempty"`
	HTML      *string `json:"html,omitempty"`
}

// UpdateVideoPayload rewrites a video embed URL in place.
type UpdateVideoPayload struct {
	ElementID string `json:"elementId"`
	URL       string `json:"url"`
}

// NewMessage wraps a payload in an envelope.
func NewMessage(kind Kind, payload any) (Message, error) {
	if payload == nil {
		return Message{Kind: kind}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("editor: encode %s payload: %w", kind, err)
	}
	return Message{Kind: kind, Payload: raw}, nil
}

// UpdateElementMessage builds the host→preview mutation message.
func UpdateElementMessage(payload UpdateElementPayload) (Message, error) {
	return NewMessage(KindUpdateElement, payload)
}

// UpdateVideoMessage builds the host→preview video rewrite. The URL is
// normalized into an embeddable form first.
func UpdateVideoMessage(elementID, rawURL string) (Message, error) {
	return NewMessage(KindUpdateVideo, UpdateVideoPayload{
		ElementID: elementID,
		URL:       NormalizeVideoURL(rawURL),
	})
}

// DeselectMessage builds the host→preview selection clear.
func DeselectMessage() Message {
	return Message{Kind: KindDeselect}
}
