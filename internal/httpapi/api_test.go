package httpapi_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/goliatone/go-sitebuilder/internal/generate"
	"github.com/goliatone/go-sitebuilder/internal/httpapi"
	"github.com/goliatone/go-sitebuilder/internal/sections"
	"github.com/goliatone/go-sitebuilder/internal/website"
)

type stubGenerator struct {
	content map[string]any
}

func (g *stubGenerator) SectionContent(_ context.Context, _ sections.Type, _ generate.BusinessContext) map[string]any {
	return g.content
}

func (g *stubGenerator) Regenerate(_ context.Context, section sections.Section, _ generate.BusinessContext, force bool) (sections.Section, error) {
	if section.UserEdited && !force {
		return section, generate.ErrSectionLocked
	}
	out := section.Clone()
	out.Content = g.content
	out.UserEdited = false
	out.LastEditedBy = domain.EditorAI
	return out, nil
}

func (g *stubGenerator) BlogDraft(_ context.Context, _ string, _ generate.BusinessContext) (string, error) {
	return "", nil
}

func newAPI(t *testing.T, gen generate.Generator) (*httpapi.API, website.Manager) {
	t.Helper()
	manager := website.NewManager(website.NewMemoryRepository())
	opts := []httpapi.Option{}
	if gen != nil {
		opts = append(opts, httpapi.WithGenerator(gen))
	}
	return httpapi.New(manager, opts...), manager
}

func TestExportEndpointReturnsArchive(t *testing.T) {
	api, _ := newAPI(t, nil)
	body, err := json.Marshal(website.Website{
		ID:           uuid.New(),
		BusinessName: "Acme Plumbing",
		Services: []website.Service{
			{ID: uuid.New(), Name: "Drain Cleaning", Slug: "drain-cleaning"},
		},
	})
	if err != nil {
		t.Fatalf("encode request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/export", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/octet-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, `attachment; filename="acme-plumbing-export.zip"`) {
		t.Fatalf("unexpected disposition %q", cd)
	}
	if cc := rec.Header().Get("Cache-Control"); !strings.Contains(cc, "no-store") {
		t.Fatalf("expected cache-disabling headers, got %q", cc)
	}

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	if err != nil {
		t.Fatalf("response is not a zip: %v", err)
	}
	names := map[string]bool{}
	for _, file := range zr.File {
		names[file.Name] = true
	}
	for _, expected := range []string{"index.html", "services/drain-cleaning.html", "sitemap.xml", "robots.txt"} {
		if !names[expected] {
			t.Fatalf("archive missing %s", expected)
		}
	}
}

func TestExportEndpointRejectsMalformedBody(t *testing.T) {
	api, _ := newAPI(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/export", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body must be JSON: %v", err)
	}
	if body["error"] != "invalid_body" {
		t.Fatalf("unexpected error code %v", body["error"])
	}
}

func regenerateFixture(t *testing.T, api *httpapi.API, manager website.Manager, lock bool) (uuid.UUID, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	record, err := manager.Create(ctx, website.CreateWebsiteRequest{BusinessName: "Acme Plumbing"})
	if err != nil {
		t.Fatalf("create website: %v", err)
	}
	record, err = manager.AddPage(ctx, record.ID, website.AddPageRequest{Title: "Home", Slug: "", IsPublished: true})
	if err != nil {
		t.Fatalf("add page: %v", err)
	}
	pageID := record.FindPageBySlug("").ID
	record, err = manager.AddSection(ctx, record.ID, pageID, sections.TypeHero)
	if err != nil {
		t.Fatalf("add section: %v", err)
	}
	sectionID := record.FindPageBySlug("").Sections[0].ID
	if lock {
		if _, err := manager.UpdateSectionContent(ctx, record.ID, pageID, sectionID, map[string]any{
			"headline":    "Hand-written",
			"subheadline": "Keep this",
		}); err != nil {
			t.Fatalf("lock section: %v", err)
		}
	}
	return record.ID, sectionID
}

func TestRegenerateRespectsLock(t *testing.T) {
	gen := &stubGenerator{content: map[string]any{"headline": "AI copy", "subheadline": "Fresh"}}
	api, manager := newAPI(t, gen)
	websiteID, sectionID := regenerateFixture(t, api, manager, true)

	url := "/api/websites/" + websiteID.String() + "/sections/" + sectionID.String() + "/regenerate"
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(`{"force":false}`))
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("locked section must 409, got %d: %s", rec.Code, rec.Body.String())
	}
	record, err := manager.Get(context.Background(), websiteID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	section := record.FindPageBySlug("").Sections[0]
	if section.Content["headline"] != "Hand-written" {
		t.Fatal("locked content must be untouched")
	}
}

func TestRegenerateForceOverridesLock(t *testing.T) {
	gen := &stubGenerator{content: map[string]any{"headline": "AI copy", "subheadline": "Fresh"}}
	api, manager := newAPI(t, gen)
	websiteID, sectionID := regenerateFixture(t, api, manager, true)

	url := "/api/websites/" + websiteID.String() + "/sections/" + sectionID.String() + "/regenerate"
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(`{"force":true}`))
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Section sections.Section `json:"section"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Section.Content["headline"] != "AI copy" {
		t.Fatalf("expected regenerated content got %v", resp.Section.Content["headline"])
	}
	if resp.Section.LastEditedBy != domain.EditorAI {
		t.Fatalf("expected ai provenance got %s", resp.Section.LastEditedBy)
	}

	record, err := manager.Get(context.Background(), websiteID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if record.FindPageBySlug("").Sections[0].Content["headline"] != "AI copy" {
		t.Fatal("regenerated content must persist")
	}
}

func TestRegenerateUnknownWebsite(t *testing.T) {
	api, _ := newAPI(t, &stubGenerator{})
	url := "/api/websites/" + uuid.NewString() + "/sections/" + uuid.NewString() + "/regenerate"
	req := httptest.NewRequest(http.MethodPost, url, nil)
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	api, _ := newAPI(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}
