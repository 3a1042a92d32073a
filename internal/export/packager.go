package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/render"
	"github.com/goliatone/go-sitebuilder/internal/sections"
	"github.com/goliatone/go-sitebuilder/internal/website"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// PlaceholderBaseURL anchors absolute links for sites that have not been
// deployed yet.
const PlaceholderBaseURL = "https://example.com"

// Packager assembles the static file set for a website: one HTML document
// per published page, companion pages for every service and location, a
// sitemap, and robots.txt, all inside a single ZIP. Any render failure
// aborts the whole build; partial archives are never produced.
type Packager struct {
	renderer *render.Renderer
	factory  *sections.Factory
	logger   interfaces.Logger
}

// PackagerOption mutates the packager during construction.
type PackagerOption func(*Packager)

// WithRenderer overrides the static renderer.
func WithRenderer(renderer *render.Renderer) PackagerOption {
	return func(p *Packager) {
		if renderer != nil {
			p.renderer = renderer
		}
	}
}

// WithSectionFactory wires the factory used when default pages must be
// synthesized.
func WithSectionFactory(factory *sections.Factory) PackagerOption {
	return func(p *Packager) {
		if factory != nil {
			p.factory = factory
		}
	}
}

// WithLogger attaches a logger; the default discards entries.
func WithLogger(logger interfaces.Logger) PackagerOption {
	return func(p *Packager) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPackager constructs the export packager.
func NewPackager(opts ...PackagerOption) *Packager {
	p := &Packager{
		renderer: render.NewRenderer(),
		factory:  sections.NewFactory(),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// BuildArchive renders the full site and returns the ZIP bytes.
func (p *Packager) BuildArchive(site *website.Website) ([]byte, error) {
	if site == nil {
		return nil, fmt.Errorf("export: website is required")
	}

	files, err := p.buildFiles(site)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, file := range files {
		w, err := zw.Create(file.Path)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("export: add %s: %w", file.Path, err)
		}
		if _, err := w.Write(file.Body); err != nil {
			zw.Close()
			return nil, fmt.Errorf("export: write %s: %w", file.Path, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("export: finalize archive: %w", err)
	}

	p.logger.Info("export archive built",
		"website_id", site.ID,
		"files", len(files),
		"bytes", buf.Len())
	return buf.Bytes(), nil
}

// File is one entry of the export set.
type File struct {
	Path string
	Body []byte
}

// buildFiles renders every document up front so a failure on any page can
// abort before a single archive byte is written.
func (p *Packager) buildFiles(site *website.Website) ([]File, error) {
	working := site.Clone()
	if len(working.Pages) == 0 {
		working.Pages = website.DefaultPages(working.ID, p.factory)
	}

	var files []File
	seen := map[string]bool{}
	add := func(path string, body []byte) {
		if seen[path] {
			return
		}
		seen[path] = true
		files = append(files, File{Path: path, Body: body})
	}

	for _, page := range working.SortedPages() {
		if !page.IsPublished {
			continue
		}
		markup, err := p.renderPage(working, page)
		if err != nil {
			return nil, err
		}
		add(pagePath(page.Slug), markup)
	}

	// Services and locations always get a companion document, even when no
	// explicit page was ever created for them.
	for _, svc := range working.Services {
		path := "services/" + svc.Slug + ".html"
		if seen[path] {
			continue
		}
		page := companionPage(working, "services/"+svc.Slug, svc.Name, website.PageTypeService)
		markup, err := p.renderPage(working, page)
		if err != nil {
			return nil, err
		}
		add(path, markup)
	}
	for _, loc := range working.Locations {
		path := "locations/" + loc.Slug + ".html"
		if seen[path] {
			continue
		}
		page := companionPage(working, "locations/"+loc.Slug, loc.Name, website.PageTypeLocation)
		markup, err := p.renderPage(working, page)
		if err != nil {
			return nil, err
		}
		add(path, markup)
	}

	for _, post := range working.BlogPosts {
		if post.Status != domain.StatusPublished {
			continue
		}
		markup, err := p.renderBlogPost(working, post)
		if err != nil {
			return nil, err
		}
		add("blog/"+post.Slug+".html", markup)
	}

	baseURL := strings.TrimRight(working.LiveURL, "/")
	if baseURL == "" {
		baseURL = PlaceholderBaseURL
	}
	add("sitemap.xml", buildSitemap(baseURL, working))
	add("robots.txt", buildRobots(baseURL))
	return files, nil
}

// renderPage guards the pure renderer against panics out of malformed
// content so the caller sees a single export error instead of a crash.
func (p *Packager) renderPage(site *website.Website, page website.Page) (body []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("export: render page %q: %v", page.Slug, r)
		}
	}()
	return []byte(p.renderer.RenderPage(site, page)), nil
}

func (p *Packager) renderBlogPost(site *website.Website, post website.BlogPost) (body []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("export: render blog post %q: %v", post.Slug, r)
		}
	}()
	return []byte(p.renderer.RenderBlogPost(site, post)), nil
}

// companionPage fabricates a minimal page for a service or location entity
// that has no explicit page in the aggregate.
func companionPage(site *website.Website, slug, title string, pageType website.PageType) website.Page {
	if existing := site.FindPageBySlug(slug); existing != nil {
		return *existing
	}
	factory := sections.NewFactory()
	page := website.Page{
		Title:       title,
		Slug:        slug,
		Type:        pageType,
		IsPublished: true,
	}
	switch pageType {
	case website.PageTypeService:
		page.Sections = []sections.Section{
			factory.New(sections.TypeHero, 0),
			factory.New(sections.TypeTextBlock, 1),
			factory.New(sections.TypeCTA, 2),
		}
	case website.PageTypeLocation:
		page.Sections = []sections.Section{
			factory.New(sections.TypeHero, 0),
			factory.New(sections.TypeLocationsList, 1),
			factory.New(sections.TypeContactForm, 2),
		}
	}
	if len(page.Sections) > 0 {
		hero := &page.Sections[0]
		hero.Content["headline"] = title
	}
	return page
}

// pagePath maps a slug to its file location; the root slug becomes the
// index document.
func pagePath(slug string) string {
	trimmed := strings.Trim(slug, "/")
	if trimmed == "" {
		return "index.html"
	}
	return trimmed + ".html"
}

// Paths returns the archive entry names in build order, useful for
// diagnostics and tests.
func Paths(files []File) []string {
	out := make([]string, 0, len(files))
	for _, file := range files {
		out = append(out, file.Path)
	}
	sort.Strings(out)
	return out
}
