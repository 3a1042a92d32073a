// Package sitebuilder assembles the website-builder runtime: the content
// model, AI section generation, HTML rendering, export packaging, and the
// editable-preview sync protocol, behind one module façade.
package sitebuilder

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-sitebuilder/internal/editor"
	"github.com/goliatone/go-sitebuilder/internal/export"
	"github.com/goliatone/go-sitebuilder/internal/generate"
	"github.com/goliatone/go-sitebuilder/internal/httpapi"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/logging/gologger"
	"github.com/goliatone/go-sitebuilder/internal/markdown"
	"github.com/goliatone/go-sitebuilder/internal/render"
	"github.com/goliatone/go-sitebuilder/internal/website"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// Exported contracts for consumers of the module.
type (
	WebsiteManager   = website.Manager
	Generator        = generate.Generator
	BusinessContext  = generate.BusinessContext
	EditorSession    = editor.Session
	CompletionClient = interfaces.CompletionClient
	Logger           = interfaces.Logger
)

// Module is the top level builder runtime façade.
type Module struct {
	cfg      Config
	db       *bun.DB
	provider interfaces.LoggerProvider
	manager  website.Manager
	renderer *render.Renderer
	editable *render.Renderer
	packager *export.Packager
	gen      generate.Generator
	importer *markdown.Importer
	api      *httpapi.API
}

// ModuleOption overrides module wiring before construction completes.
type ModuleOption func(*Module)

// WithRepository swaps the persistence backend, bypassing the configured
// database entirely.
func WithRepository(repo website.Repository) ModuleOption {
	return func(m *Module) {
		if repo != nil {
			m.manager = website.NewManager(repo,
				website.WithLogger(logging.ModuleLogger(m.provider, "website")))
		}
	}
}

// WithCompletionClient wires a custom AI client, replacing the HTTP client
// built from Config.AI.
func WithCompletionClient(client interfaces.CompletionClient) ModuleOption {
	return func(m *Module) {
		m.gen = generate.NewGenerator(client,
			generate.WithLogger(logging.ModuleLogger(m.provider, "generate")))
	}
}

// New constructs the module from configuration.
func New(cfg Config, opts ...ModuleOption) (*Module, error) {
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
	})
	if err != nil {
		return nil, err
	}

	m := &Module{
		cfg:      cfg,
		provider: provider,
	}

	repo, db, err := buildRepository(cfg.Database)
	if err != nil {
		return nil, err
	}
	m.db = db
	m.manager = website.NewManager(repo,
		website.WithLogger(logging.ModuleLogger(provider, "website")))

	m.renderer = render.NewRenderer(
		render.WithLogger(logging.ModuleLogger(provider, "render")))
	m.editable = render.NewRenderer(
		render.WithMode(render.ModeEditable),
		render.WithLogger(logging.ModuleLogger(provider, "render")))
	m.packager = export.NewPackager(
		export.WithRenderer(m.renderer),
		export.WithLogger(logging.ModuleLogger(provider, "export")))

	if cfg.AI.APIKey != "" {
		client := generate.NewHTTPClient(generate.HTTPClientConfig{
			BaseURL: cfg.AI.BaseURL,
			APIKey:  cfg.AI.APIKey,
			Model:   cfg.AI.Model,
		})
		m.gen = generate.NewGenerator(client,
			generate.WithLogger(logging.ModuleLogger(provider, "generate")))
	}

	for _, opt := range opts {
		opt(m)
	}

	m.importer = markdown.NewImporter(markdown.ImporterConfig{
		Manager: m.manager,
		Logger:  logging.ModuleLogger(provider, "markdown"),
	})

	apiOpts := []httpapi.Option{
		httpapi.WithPackager(m.packager),
		httpapi.WithLogger(logging.ModuleLogger(provider, "httpapi")),
	}
	if m.gen != nil {
		apiOpts = append(apiOpts, httpapi.WithGenerator(m.gen))
	}
	m.api = httpapi.New(m.manager, apiOpts...)

	return m, nil
}

func buildRepository(cfg DatabaseConfig) (website.Repository, *bun.DB, error) {
	if cfg.DSN == "" {
		return website.NewMemoryRepository(), nil, nil
	}
	driver := cfg.Driver
	if driver == "" {
		driver = "sqlite3"
	}
	sqldb, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sitebuilder: open database: %w", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	return website.NewBunRepository(db), db, nil
}

// Close releases the database handle when one was opened.
func (m *Module) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// Websites returns the aggregate manager.
func (m *Module) Websites() WebsiteManager {
	return m.manager
}

// Renderer returns the static renderer used for exports.
func (m *Module) Renderer() *render.Renderer {
	return m.renderer
}

// EditableRenderer returns the preview renderer with editor attributes and
// the sync script.
func (m *Module) EditableRenderer() *render.Renderer {
	return m.editable
}

// Packager returns the export packager.
func (m *Module) Packager() *export.Packager {
	return m.packager
}

// Generate returns the AI generator, or nil when generation is disabled.
func (m *Module) Generate() Generator {
	return m.gen
}

// BlogImporter returns the markdown blog importer.
func (m *Module) BlogImporter() *markdown.Importer {
	return m.importer
}

// API returns the HTTP surface.
func (m *Module) API() *httpapi.API {
	return m.api
}

// OpenEditorSession starts an editing session for one page of a website,
// wiring the configured autosave delay to a full aggregate save.
func (m *Module) OpenEditorSession(site *website.Website, pageID uuid.UUID) (*editor.Session, error) {
	logger := logging.ModuleLogger(m.provider, "editor")

	var session *editor.Session
	autosave := editor.NewAutosave(m.cfg.Autosave.Delay, func() {
		if session == nil {
			return
		}
		if _, err := m.manager.Save(context.Background(), session.Website()); err != nil {
			logger.Error("autosave failed", "error", err)
		}
	})

	session, err := editor.NewSession(site, pageID,
		editor.WithLogger(logger),
		editor.WithAutosave(autosave))
	if err != nil {
		autosave.Stop()
		return nil, err
	}
	return session, nil
}
