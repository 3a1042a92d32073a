package generate_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/goliatone/go-sitebuilder/internal/generate"
	"github.com/goliatone/go-sitebuilder/internal/sections"
	"github.com/goliatone/go-sitebuilder/internal/website"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

type stubClient struct {
	response string
	err      error
	requests []interfaces.CompletionRequest
}

func (c *stubClient) Complete(_ context.Context, req interfaces.CompletionRequest) (string, error) {
	c.requests = append(c.requests, req)
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

func TestSectionContentParsesValidCompletion(t *testing.T) {
	client := &stubClient{
		response: `{"headline":"Fast Plumbing in Springfield","subheadline":"Licensed, local, on time"}`,
	}
	gen := generate.NewGenerator(client)

	content := gen.SectionContent(context.Background(), sections.TypeHero, generate.BusinessContext{
		BusinessName: "Acme Plumbing",
		Industry:     "plumbing",
	})
	if content == nil {
		t.Fatal("expected content")
	}
	if content["headline"] != "Fast Plumbing in Springfield" {
		t.Fatalf("unexpected headline %v", content["headline"])
	}
	if len(client.requests) != 1 {
		t.Fatalf("expected exactly one completion call, got %d", len(client.requests))
	}
	if !strings.Contains(client.requests[0].User, "Acme Plumbing") {
		t.Fatal("prompt must carry the business name")
	}
	if !strings.Contains(client.requests[0].User, `"headline"`) {
		t.Fatal("prompt must embed the section schema")
	}
}

func TestSectionContentToleratesCodeFences(t *testing.T) {
	client := &stubClient{
		response: "Here you go:\n```json\n{\"headline\":\"Hi\",\"subheadline\":\"There\"}\n```",
	}
	gen := generate.NewGenerator(client)

	content := gen.SectionContent(context.Background(), sections.TypeHero, generate.BusinessContext{})
	if content == nil {
		t.Fatal("expected fenced JSON to parse")
	}
	if content["headline"] != "Hi" {
		t.Fatalf("unexpected headline %v", content["headline"])
	}
}

func TestSectionContentNilOnFailure(t *testing.T) {
	cases := []struct {
		name   string
		client *stubClient
	}{
		{"network error", &stubClient{err: errors.New("connection refused")}},
		{"not JSON", &stubClient{response: "sorry, I cannot help with that"}},
		{"schema mismatch", &stubClient{response: `{"headline":42}`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := generate.NewGenerator(tc.client)
			if content := gen.SectionContent(context.Background(), sections.TypeHero, generate.BusinessContext{}); content != nil {
				t.Fatalf("expected nil content, got %v", content)
			}
		})
	}
}

func TestRegenerateRefusesLockedSection(t *testing.T) {
	client := &stubClient{response: `{"headline":"New","subheadline":"Copy"}`}
	gen := generate.NewGenerator(client)

	section := sections.New(sections.TypeHero, 0)
	section = sections.MarkUserEdited(section)
	original := section.Content["headline"]

	got, err := gen.Regenerate(context.Background(), section, generate.BusinessContext{}, false)
	if !errors.Is(err, generate.ErrSectionLocked) {
		t.Fatalf("expected ErrSectionLocked got %v", err)
	}
	if got.Content["headline"] != original {
		t.Fatal("locked section content must not change")
	}
	if len(client.requests) != 0 {
		t.Fatal("locked section must not reach the completion boundary")
	}
}

func TestRegenerateForceOverridesLock(t *testing.T) {
	client := &stubClient{response: `{"headline":"New","subheadline":"Copy"}`}
	stamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	gen := generate.NewGenerator(client, generate.WithClock(func() time.Time { return stamp }))

	section := sections.MarkUserEdited(sections.New(sections.TypeHero, 0))
	got, err := gen.Regenerate(context.Background(), section, generate.BusinessContext{}, true)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if got.Content["headline"] != "New" {
		t.Fatalf("expected regenerated content got %v", got.Content["headline"])
	}
	if got.LastEditedBy != domain.EditorAI {
		t.Fatalf("expected ai provenance got %s", got.LastEditedBy)
	}
	if got.UserEdited {
		t.Fatal("forced regeneration clears the lock")
	}
	if !got.LastEditedAt.Equal(stamp) {
		t.Fatalf("expected stamp %v got %v", stamp, got.LastEditedAt)
	}
}

func TestRegenerateKeepsSectionOnModelFailure(t *testing.T) {
	client := &stubClient{response: "no json here"}
	gen := generate.NewGenerator(client)

	section := sections.New(sections.TypeHero, 0)
	got, err := gen.Regenerate(context.Background(), section, generate.BusinessContext{}, false)
	if err != nil {
		t.Fatalf("unusable completion must not be an error: %v", err)
	}
	if got.Content["headline"] != section.Content["headline"] {
		t.Fatal("section must keep prior content when the model fails")
	}
	if got.LastEditedBy != domain.EditorSystem {
		t.Fatalf("provenance must not change on failure, got %s", got.LastEditedBy)
	}
}

func TestContextFromWebsite(t *testing.T) {
	record := &website.Website{
		BusinessName: "Acme Plumbing",
		Industry:     "plumbing",
		Phone:        "(555) 010-2000",
		Address:      "12 Main St, Springfield, IL 62701",
		Services:     []website.Service{{Name: "Drain Cleaning"}},
		Locations:    []website.Location{{Name: "Springfield"}},
	}
	biz := generate.ContextFromWebsite(record)
	if biz.City != "Springfield" {
		t.Fatalf("expected city Springfield got %q", biz.City)
	}
	if biz.State != "IL" {
		t.Fatalf("expected state IL got %q", biz.State)
	}
	if len(biz.Services) != 1 || biz.Services[0] != "Drain Cleaning" {
		t.Fatalf("unexpected services %v", biz.Services)
	}
	if len(biz.Locations) != 1 || biz.Locations[0] != "Springfield" {
		t.Fatalf("unexpected locations %v", biz.Locations)
	}
}

func TestBlogDraftPassesTopicAndFacts(t *testing.T) {
	client := &stubClient{response: "# Winter Pipe Care\n\nKeep your pipes warm."}
	gen := generate.NewGenerator(client)

	draft, err := gen.BlogDraft(context.Background(), "winter pipe care", generate.BusinessContext{
		BusinessName: "Acme Plumbing",
	})
	if err != nil {
		t.Fatalf("blog draft: %v", err)
	}
	if !strings.HasPrefix(draft, "# Winter Pipe Care") {
		t.Fatalf("unexpected draft %q", draft)
	}
	if !strings.Contains(client.requests[0].User, "winter pipe care") {
		t.Fatal("prompt must carry the topic")
	}
}
