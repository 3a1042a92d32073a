package generate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-sitebuilder/internal/sections"
)

const sectionSystemPrompt = "You are a copywriter for small local-business websites. " +
	"Respond with a single JSON object and nothing else: no markdown fences, " +
	"no commentary. Every value must be plain text suitable for direct " +
	"rendering into HTML."

const blogSystemPrompt = "You are a content writer for small local-business websites. " +
	"Write in markdown. Keep the tone practical and trustworthy; avoid " +
	"invented statistics or credentials."

// buildSectionPrompt assembles the user half of the prompt: business facts
// plus the schema the payload has to satisfy.
func buildSectionPrompt(sectionType sections.Type, biz BusinessContext) (string, error) {
	schema := sections.Schema(sectionType)
	if schema == nil {
		return "", fmt.Errorf("generate: no schema for section type %q", sectionType)
	}
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("generate: marshal schema: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Write the content for a %q section of a business website.\n\n", sectionType)
	writeBusinessFacts(&b, biz)
	b.WriteString("\nReturn a JSON object matching this JSON schema exactly:\n")
	b.Write(schemaJSON)
	b.WriteString("\nUse the business details above. Do not include fields the schema does not mention unless they add clear value.")
	return b.String(), nil
}

func buildBlogPrompt(topic string, biz BusinessContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a blog post about %q for the business below.\n\n", topic)
	writeBusinessFacts(&b, biz)
	b.WriteString("\nStart with a single top-level markdown heading for the title, then 400-700 words of body content with subheadings.")
	return b.String()
}

func writeBusinessFacts(b *strings.Builder, biz BusinessContext) {
	fmt.Fprintf(b, "Business: %s\n", fallback(biz.BusinessName, "a local business"))
	if biz.Industry != "" {
		fmt.Fprintf(b, "Industry: %s\n", biz.Industry)
	}
	if biz.City != "" || biz.State != "" {
		fmt.Fprintf(b, "Location: %s\n", strings.TrimSuffix(strings.TrimSpace(biz.City+", "+biz.State), ","))
	}
	if biz.Phone != "" {
		fmt.Fprintf(b, "Phone: %s\n", biz.Phone)
	}
	if biz.Email != "" {
		fmt.Fprintf(b, "Email: %s\n", biz.Email)
	}
	if len(biz.Services) > 0 {
		fmt.Fprintf(b, "Services: %s\n", strings.Join(biz.Services, ", "))
	}
	if len(biz.Locations) > 0 {
		fmt.Fprintf(b, "Service areas: %s\n", strings.Join(biz.Locations, ", "))
	}
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

// extractJSON tolerates models that wrap the payload in markdown code fences
// or lead with prose: it takes the substring from the first "{" to the last
// "}" and parses that.
func extractJSON(raw string) (map[string]any, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("generate: no JSON object in completion")
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("generate: parse completion: %w", err)
	}
	return payload, nil
}
