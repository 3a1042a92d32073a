package sitebuilder_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sitebuilder "github.com/goliatone/go-sitebuilder"
	"github.com/goliatone/go-sitebuilder/internal/editor"
	"github.com/goliatone/go-sitebuilder/internal/website"
)

func newModule(t *testing.T) *sitebuilder.Module {
	t.Helper()
	cfg := sitebuilder.DefaultConfig()
	cfg.Autosave.Delay = 20 * time.Millisecond

	module, err := sitebuilder.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() {
		_ = module.Close()
	})
	return module
}

func TestModule_CreateEditExportRoundTrip(t *testing.T) {
	ctx := context.Background()
	module := newModule(t)

	record, err := module.Websites().Create(ctx, website.CreateWebsiteRequest{
		BusinessName: "Riverside Electric",
		Phone:        "(555) 010-4477",
		Address:      "88 Dock Rd, Riverside, CA",
		ServiceNames: []string{"Panel Upgrades", "EV Chargers"},
		SeedPages:    true,
	})
	if err != nil {
		t.Fatalf("create website: %v", err)
	}
	if len(record.Pages) != 6 {
		t.Fatalf("expected 4 default pages + 2 companion pages, got %d", len(record.Pages))
	}

	home := record.FindPageBySlug("")
	if home == nil {
		t.Fatal("expected a home page")
	}

	session, err := module.OpenEditorSession(record, home.ID)
	if err != nil {
		t.Fatalf("open editor session: %v", err)
	}
	hero := home.Sections[0]
	payload, _ := json.Marshal(map[string]any{
		"elementType": "heading",
		"sectionId":   hero.ID.String(),
		"property":    "headline",
		"text":        "Riverside's Trusted Electricians",
	})
	if err := session.Apply(editor.Message{Kind: editor.KindContentUpdated, Payload: payload}); err != nil {
		t.Fatalf("apply edit: %v", err)
	}
	if warnings := session.Warnings(); len(warnings) != 0 {
		t.Fatalf("precise edit must not warn: %v", warnings)
	}

	// The autosave delay elapses and the edited aggregate lands in the store.
	deadline := time.Now().Add(time.Second)
	var persisted *website.Website
	for {
		persisted, err = module.Websites().Get(ctx, record.ID)
		if err != nil {
			t.Fatalf("get website: %v", err)
		}
		page := persisted.FindPage(home.ID)
		if page != nil && page.Sections[0].UserEdited {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("autosave never persisted the edit")
		}
		time.Sleep(10 * time.Millisecond)
	}
	edited := persisted.FindPage(home.ID).Sections[0]
	if got, _ := edited.StringField("headline"); got != "Riverside's Trusted Electricians" {
		t.Fatalf("unexpected persisted headline %q", got)
	}

	archive, err := module.Packager().BuildArchive(persisted)
	if err != nil {
		t.Fatalf("build archive: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	paths := map[string]bool{}
	for _, f := range zr.File {
		paths[f.Name] = true
	}
	for _, want := range []string{
		"index.html",
		"services/panel-upgrades.html",
		"services/ev-chargers.html",
		"sitemap.xml",
		"robots.txt",
	} {
		if !paths[want] {
			t.Fatalf("archive missing %s, has %v", want, paths)
		}
	}
}

func TestModule_ExportEndpointServesArchive(t *testing.T) {
	module := newModule(t)

	site := &website.Website{BusinessName: "Riverside Electric"}
	body, _ := json.Marshal(site)

	req := httptest.NewRequest(http.MethodPost, "/api/export", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	module.API().Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "riverside-electric-export.zip") {
		t.Fatalf("unexpected disposition %q", got)
	}
	if _, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len())); err != nil {
		t.Fatalf("response is not a zip: %v", err)
	}
}

func TestModule_EditableRendererCarriesSyncScript(t *testing.T) {
	ctx := context.Background()
	module := newModule(t)

	record, err := module.Websites().Create(ctx, website.CreateWebsiteRequest{
		BusinessName: "Riverside Electric",
		SeedPages:    true,
	})
	if err != nil {
		t.Fatalf("create website: %v", err)
	}
	home := record.FindPageBySlug("")

	editable := module.EditableRenderer().RenderPage(record, *home)
	if !strings.Contains(editable, "data-section-id") {
		t.Fatal("editable output must tag editable nodes")
	}
	static := module.Renderer().RenderPage(record, *home)
	if strings.Contains(static, "data-section-id") {
		t.Fatal("static output must not carry editor attributes")
	}
}
