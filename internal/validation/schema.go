package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	// ErrSchemaInvalid indicates a schema that cannot be compiled.
	ErrSchemaInvalid = errors.New("schema invalid")
	// ErrSchemaValidation indicates a payload that failed schema validation.
	ErrSchemaValidation = errors.New("schema validation failed")
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string `json:"location,omitempty"`
	Message  string `json:"message"`
}

// PayloadValidationError surfaces validation issues with schema-aware context.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// ValidateSchema ensures the schema compiles.
func ValidateSchema(schema map[string]any) error {
	if len(schema) == 0 {
		return nil
	}
	if _, err := compileSchema(schema); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return nil
}

// ValidatePayload validates a payload against the provided schema.
func ValidatePayload(schema map[string]any, payload map[string]any) error {
	if len(schema) == 0 {
		return nil
	}
	if payload == nil {
		payload = map[string]any{}
	}
	compiled, err := compileSchema(schema)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	if err := compiled.Validate(normalizePayload(payload)); err != nil {
		return &PayloadValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

// normalizePayload round-trips the payload through JSON so typed Go values
// (ints, structs) validate the same way decoded request bodies do.
func normalizePayload(payload map[string]any) any {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return payload
	}
	var out any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return payload
	}
	return out
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
