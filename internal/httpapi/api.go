package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/export"
	"github.com/goliatone/go-sitebuilder/internal/generate"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/sections"
	"github.com/goliatone/go-sitebuilder/internal/website"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

const maxRequestBody = 8 << 20

// API exposes the builder over HTTP: the export endpoint the dashboard
// calls, the section regeneration guard, and a health probe.
type API struct {
	manager   website.Manager
	packager  *export.Packager
	generator generate.Generator
	logger    interfaces.Logger
}

// Option mutates the API during construction.
type Option func(*API)

// WithPackager overrides the export packager.
func WithPackager(packager *export.Packager) Option {
	return func(a *API) {
		if packager != nil {
			a.packager = packager
		}
	}
}

// WithGenerator wires the AI generator behind the regenerate endpoint.
func WithGenerator(generator generate.Generator) Option {
	return func(a *API) {
		a.generator = generator
	}
}

// WithLogger attaches a logger; the default discards entries.
func WithLogger(logger interfaces.Logger) Option {
	return func(a *API) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New constructs the API around the aggregate manager.
func New(manager website.Manager, opts ...Option) *API {
	a := &API{
		manager:  manager,
		packager: export.NewPackager(),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Routes registers every endpoint on the mux.
func (a *API) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/export", a.handleExport)
	mux.HandleFunc("POST /api/websites/{id}/sections/{sectionID}/regenerate", a.handleRegenerate)
	mux.HandleFunc("GET /healthz", a.handleHealth)
}

// Handler returns a mux with all routes registered.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	a.Routes(mux)
	return mux
}

// handleExport accepts a full website aggregate and streams back the ZIP as
// a forced download.
func (a *API) handleExport(w http.ResponseWriter, r *http.Request) {
	var site website.Website
	if err := decodeBody(r, &site); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error(), nil)
		return
	}

	archive, err := a.packager.BuildArchive(&site)
	if err != nil {
		a.logger.Error("export failed", "website_id", site.ID, "error", err)
		mapError(w, err)
		return
	}

	filename := exportFilename(site.BusinessName)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(archive)))
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

type regenerateRequest struct {
	Force bool `json:"force"`
}

type regenerateResponse struct {
	Section sections.Section `json:"section"`
}

// handleRegenerate replaces one section's content with AI output, honoring
// the user-edit lock unless force is set.
func (a *API) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	if a.generator == nil {
		writeError(w, http.StatusServiceUnavailable, "generator_unavailable", "content generation is not configured", nil)
		return
	}
	websiteID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid website id", nil)
		return
	}
	sectionID, err := uuid.Parse(r.PathValue("sectionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid section id", nil)
		return
	}

	var req regenerateRequest
	if r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_body", err.Error(), nil)
			return
		}
	}

	record, err := a.manager.Get(r.Context(), websiteID)
	if err != nil {
		mapError(w, err)
		return
	}
	page, section := findSection(record, sectionID)
	if section == nil {
		mapError(w, website.ErrSectionNotFound)
		return
	}

	regenerated, err := a.generator.Regenerate(r.Context(), *section, generate.ContextFromWebsite(record), req.Force)
	if err != nil {
		mapError(w, err)
		return
	}

	*section = regenerated
	saved, err := a.manager.Save(r.Context(), record)
	if err != nil {
		mapError(w, err)
		return
	}
	_, updated := findSection(saved, sectionID)
	if updated == nil {
		updated = &regenerated
	}

	a.logger.Info("section regenerated",
		"website_id", websiteID,
		"page_id", page.ID,
		"section_id", sectionID,
		"forced", req.Force)
	writeJSON(w, http.StatusOK, regenerateResponse{Section: *updated})
}

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeBody(r *http.Request, out any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBody))
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func findSection(record *website.Website, sectionID uuid.UUID) (*website.Page, *sections.Section) {
	for i := range record.Pages {
		if section := record.Pages[i].FindSection(sectionID); section != nil {
			return &record.Pages[i], section
		}
	}
	return nil, nil
}

func exportFilename(businessName string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, businessName)
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		cleaned = "website"
	}
	return cleaned + "-export.zip"
}
