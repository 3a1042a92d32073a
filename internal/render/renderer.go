package render

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/sections"
	"github.com/goliatone/go-sitebuilder/internal/website"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// Mode selects the renderer variant.
type Mode int

const (
	// ModeStatic emits plain HTML for export.
	ModeStatic Mode = iota
	// ModeEditable augments editable nodes with data-section-id and
	// data-property attributes and injects the preview-side sync script.
	ModeEditable
)

// Renderer turns website aggregates into complete HTML documents. Rendering
// is pure: no I/O, no mutation, and byte-identical output for unchanged
// input.
type Renderer struct {
	mode     Mode
	logger   interfaces.Logger
	markdown goldmark.Markdown
}

// RendererOption mutates the renderer during construction.
type RendererOption func(*Renderer)

// WithMode selects static or editable output.
func WithMode(mode Mode) RendererOption {
	return func(r *Renderer) {
		r.mode = mode
	}
}

// WithLogger attaches a logger; the default discards entries.
func WithLogger(logger interfaces.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer constructs a renderer, static by default.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		mode:   ModeStatic,
		logger: logging.NoOp(),
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()),
		),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderPage produces the full document for one page.
func (r *Renderer) RenderPage(site *website.Website, page website.Page) string {
	var b strings.Builder

	title := page.SEO.Title
	if title == "" {
		title = joinTitle(page.Title, site.BusinessName)
	}
	r.writeHead(&b, site, title, page.SEO.Description, page.SEO.Keywords)
	r.writeHeader(&b, site)

	b.WriteString("<main>\n")
	for _, section := range page.SortedSections() {
		b.WriteString(r.renderSection(site, section))
	}
	b.WriteString("</main>\n")

	r.writeFooter(&b, site)
	r.writeTail(&b)
	return b.String()
}

// RenderBlogPost produces the full document for one blog entry. The body is
// markdown converted through goldmark.
func (r *Renderer) RenderBlogPost(site *website.Website, post website.BlogPost) string {
	var b strings.Builder

	title := post.SEO.Title
	if title == "" {
		title = joinTitle(post.Title, site.BusinessName)
	}
	description := post.SEO.Description
	if description == "" {
		description = post.Excerpt
	}
	r.writeHead(&b, site, title, description, post.SEO.Keywords)
	r.writeHeader(&b, site)

	b.WriteString("<main>\n<article class=\"blog-post\">\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(post.Title))
	if post.Author != "" {
		fmt.Fprintf(&b, "<p class=\"blog-post-meta\">By %s</p>\n", html.EscapeString(post.Author))
	}
	if post.FeaturedImage != "" {
		fmt.Fprintf(&b, "<img class=\"blog-post-image\" src=%q alt=%q>\n",
			post.FeaturedImage, post.FeaturedImageAlt)
	}
	b.WriteString(r.markdownToHTML(post.Content))
	if len(post.Tags) > 0 {
		b.WriteString("<ul class=\"blog-post-tags\">\n")
		for _, tag := range post.Tags {
			fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(tag))
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</article>\n</main>\n")

	r.writeFooter(&b, site)
	r.writeTail(&b)
	return b.String()
}

// renderSection emits one section fragment. Unknown types yield an empty
// string, logged at debug so malformed data never breaks a page.
func (r *Renderer) renderSection(site *website.Website, section sections.Section) string {
	fragment, ok := fragments[section.Type]
	if !ok {
		r.logger.Debug("unknown section type rendered as empty fragment", "type", section.Type, "section_id", section.ID)
		return ""
	}
	f := &frag{
		editable:  r.mode == ModeEditable,
		sectionID: section.ID.String(),
		section:   section,
		site:      site,
	}
	fmt.Fprintf(&f.b, "<section class=%q data-section-type=%q>\n", "section-"+string(section.Type), string(section.Type))
	fragment(f)
	f.b.WriteString("</section>\n")
	return f.b.String()
}

func (r *Renderer) markdownToHTML(source string) string {
	var out strings.Builder
	if err := r.markdown.Convert([]byte(source), &out); err != nil {
		r.logger.Warn("markdown conversion failed, escaping raw content", "error", err)
		return "<pre>" + html.EscapeString(source) + "</pre>\n"
	}
	return out.String()
}

func (r *Renderer) writeHead(b *strings.Builder, site *website.Website, title, description string, keywords []string) {
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(b, "<title>%s</title>\n", html.EscapeString(title))
	if description != "" {
		fmt.Fprintf(b, "<meta name=\"description\" content=%q>\n", description)
	}
	if len(keywords) > 0 {
		fmt.Fprintf(b, "<meta name=\"keywords\" content=%q>\n", strings.Join(keywords, ", "))
	}
	writeStylesheet(b, site.Colors)
	b.WriteString("</head>\n<body>\n")
}

func (r *Renderer) writeHeader(b *strings.Builder, site *website.Website) {
	b.WriteString("<header class=\"site-header\">\n")
	if site.LogoURL != "" {
		fmt.Fprintf(b, "<a class=\"brand\" href=\"/\"><img src=%q alt=%q></a>\n",
			site.LogoURL, site.BusinessName)
	} else {
		fmt.Fprintf(b, "<a class=\"brand\" href=\"/\">%s</a>\n", html.EscapeString(site.BusinessName))
	}
	writeNav(b, site)
	b.WriteString("</header>\n")
}

// writeNav lists the published top-level pages in order. Companion pages
// (services/<slug>, locations/<slug>) stay out of the main navigation.
func writeNav(b *strings.Builder, site *website.Website) {
	var items []website.Page
	for _, page := range site.SortedPages() {
		if !page.IsPublished || strings.Contains(page.Slug, "/") {
			continue
		}
		items = append(items, page)
	}
	if len(items) == 0 {
		return
	}
	b.WriteString("<nav class=\"site-nav\"><ul>\n")
	for _, page := range items {
		href := "/" + page.Slug
		fmt.Fprintf(b, "<li><a href=%q>%s</a></li>\n", href, html.EscapeString(page.Title))
	}
	b.WriteString("</ul></nav>\n")
}

// writeFooter repeats the NAP block with LocalBusiness microdata plus a map
// embed, both conditional on an address being present.
func (r *Renderer) writeFooter(b *strings.Builder, site *website.Website) {
	b.WriteString("<footer class=\"site-footer\">\n")
	if site.Address != "" {
		b.WriteString("<div class=\"nap\" itemscope itemtype=\"https://schema.org/LocalBusiness\">\n")
		fmt.Fprintf(b, "<span itemprop=\"name\">%s</span>\n", html.EscapeString(site.BusinessName))
		fmt.Fprintf(b, "<span itemprop=\"address\">%s</span>\n", html.EscapeString(site.Address))
		if site.Phone != "" {
			fmt.Fprintf(b, "<span itemprop=\"telephone\">%s</span>\n", html.EscapeString(site.Phone))
		}
		if site.Email != "" {
			fmt.Fprintf(b, "<span itemprop=\"email\">%s</span>\n", html.EscapeString(site.Email))
		}
		b.WriteString("</div>\n")
		fmt.Fprintf(b, "<iframe class=\"map-embed\" loading=\"lazy\" src=\"https://www.google.com/maps?q=%s&output=embed\"></iframe>\n",
			url.QueryEscape(site.Address))
	} else {
		fmt.Fprintf(b, "<p>%s</p>\n", html.EscapeString(site.BusinessName))
	}
	if site.Phone != "" && site.Address == "" {
		fmt.Fprintf(b, "<p>%s</p>\n", html.EscapeString(site.Phone))
	}
	b.WriteString("</footer>\n")
}

func (r *Renderer) writeTail(b *strings.Builder) {
	if r.mode == ModeEditable {
		b.WriteString("<script>\n")
		b.WriteString(previewScript)
		b.WriteString("</script>\n")
	}
	b.WriteString("</body>\n</html>\n")
}

// writeStylesheet inlines the base styles with the brand palette exposed as
// CSS custom properties.
func writeStylesheet(b *strings.Builder, colors website.BrandColors) {
	b.WriteString("<style>\n:root {\n")
	writeColorVar(b, "--color-primary", colors.Primary, "#1d4ed8")
	writeColorVar(b, "--color-secondary", colors.Secondary, "#1e293b")
	writeColorVar(b, "--color-accent", colors.Accent, "#f59e0b")
	writeColorVar(b, "--color-background", colors.Background, "#ffffff")
	writeColorVar(b, "--color-text", colors.Text, "#0f172a")
	b.WriteString("}\n")
	b.WriteString(baseStyles)
	b.WriteString("</style>\n")
}

func writeColorVar(b *strings.Builder, name, value, def string) {
	if value == "" {
		value = def
	}
	fmt.Fprintf(b, "%s: %s;\n", name, value)
}

// publishedPosts filters and orders the blog entries shown by a blog-list
// section.
func publishedPosts(site *website.Website) []website.BlogPost {
	var out []website.BlogPost
	for _, post := range site.BlogPosts {
		if post.Status == domain.StatusPublished {
			out = append(out, post)
		}
	}
	return out
}

func joinTitle(parts ...string) string {
	var kept []string
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " | ")
}

const baseStyles = `body { margin: 0; font-family: system-ui, sans-serif; color: var(--color-text); background: var(--color-background); }
.site-header { position: fixed; top: 0; left: 0; right: 0; display: flex; align-items: center; justify-content: space-between; padding: 1rem 2rem; background: var(--color-background); box-shadow: 0 1px 4px rgba(0,0,0,.1); z-index: 10; }
.site-header .brand { font-weight: 700; color: var(--color-primary); text-decoration: none; }
.site-header .brand img { max-height: 48px; }
.site-nav ul { display: flex; gap: 1.5rem; list-style: none; margin: 0; padding: 0; }
.site-nav a { color: var(--color-text); text-decoration: none; }
main { padding-top: 5rem; }
main section { padding: 3rem 2rem; max-width: 1100px; margin: 0 auto; }
.section-hero { text-align: center; }
.section-hero h1 { color: var(--color-primary); font-size: 2.5rem; }
.cta-button { display: inline-block; padding: .75rem 2rem; background: var(--color-accent); color: #fff; border-radius: 6px; text-decoration: none; }
.card-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(260px, 1fr)); gap: 1.5rem; }
.card { padding: 1.5rem; border: 1px solid #e2e8f0; border-radius: 8px; }
.site-footer { padding: 2rem; background: var(--color-secondary); color: #fff; text-align: center; }
.site-footer .nap span { display: block; margin: .25rem 0; }
.map-embed { width: 100%; max-width: 640px; height: 320px; border: 0; margin-top: 1rem; }
.blog-post { max-width: 760px; margin: 0 auto; padding: 3rem 2rem; }
.blog-post-image { max-width: 100%; border-radius: 8px; }
.blog-post-tags { display: flex; gap: .5rem; list-style: none; padding: 0; }
`
