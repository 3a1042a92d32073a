package website

import (
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/goliatone/go-sitebuilder/internal/sections"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PageType classifies the role a page plays within a site.
type PageType string

const (
	PageTypeHome     PageType = "home"
	PageTypeAbout    PageType = "about"
	PageTypeContact  PageType = "contact"
	PageTypeService  PageType = "service"
	PageTypeLocation PageType = "location"
	PageTypeBlogPost PageType = "blog-post"
	PageTypeGeneric  PageType = "generic"
)

// BrandColors carries the palette rendered as CSS custom properties.
type BrandColors struct {
	Primary    string `json:"primary,omitempty"`
	Secondary  string `json:"secondary,omitempty"`
	Accent     string `json:"accent,omitempty"`
	Background string `json:"background,omitempty"`
	Text       string `json:"text,omitempty"`
}

// SEO groups the per-page metadata emitted into the document head.
type SEO struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// Page belongs to exactly one website. An empty slug denotes the site root.
// Order drives navigation and sitemap position, not array position, so
// callers must sort before rendering.
type Page struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Slug        string             `json:"slug"`
	Type        PageType           `json:"type"`
	Sections    []sections.Section `json:"sections"`
	SEO         SEO                `json:"seo"`
	IsPublished bool               `json:"is_published"`
	Order       int                `json:"order"`
}

// SortedSections returns the page sections in ascending order index.
func (p Page) SortedSections() []sections.Section {
	out := make([]sections.Section, len(p.Sections))
	copy(out, p.Sections)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// FindSection returns a pointer into the page's section list, or nil.
func (p *Page) FindSection(id uuid.UUID) *sections.Section {
	for i := range p.Sections {
		if p.Sections[i].ID == id {
			return &p.Sections[i]
		}
	}
	return nil
}

// Service is a lightweight entity with a 1:1 companion page at
// services/<slug>.
type Service struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
}

// Location mirrors Service for the locations/<slug> namespace.
type Location struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Slug    string    `json:"slug"`
	Address string    `json:"address,omitempty"`
}

// BlogPost belongs to a website; slugs are unique within the blog namespace.
type BlogPost struct {
	ID               uuid.UUID     `json:"id"`
	Title            string        `json:"title"`
	Slug             string        `json:"slug"`
	Content          string        `json:"content"`
	Excerpt          string        `json:"excerpt,omitempty"`
	FeaturedImage    string        `json:"featured_image,omitempty"`
	FeaturedImageAlt string        `json:"featured_image_alt,omitempty"`
	Tags             []string      `json:"tags,omitempty"`
	SEO              SEO           `json:"seo"`
	Author           string        `json:"author,omitempty"`
	Status           domain.Status `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// Website is the aggregate root. Pages, services, locations, and blog posts
// exist only inside their owning website; nested collections persist as
// JSON documents alongside the row.
type Website struct {
	bun.BaseModel `bun:"table:websites,alias:ws"`

	ID            uuid.UUID         `bun:",pk,type:uuid" json:"id"`
	UserID        uuid.UUID         `bun:"user_id,type:uuid" json:"user_id"`
	BusinessName  string            `bun:"business_name,notnull" json:"business_name"`
	Industry      string            `bun:"industry" json:"industry,omitempty"`
	Colors        BrandColors       `bun:"colors,type:jsonb" json:"colors"`
	Phone         string            `bun:"phone" json:"phone,omitempty"`
	Email         string            `bun:"email" json:"email,omitempty"`
	Address       string            `bun:"address" json:"address,omitempty"`
	LogoURL       string            `bun:"logo_url" json:"logo_url,omitempty"`
	Services      []Service         `bun:"services,type:jsonb" json:"services,omitempty"`
	Locations     []Location        `bun:"locations,type:jsonb" json:"locations,omitempty"`
	Pages         []Page            `bun:"pages,type:jsonb" json:"pages,omitempty"`
	BlogPosts     []BlogPost        `bun:"blog_posts,type:jsonb" json:"blog_posts,omitempty"`
	CustomContent map[string]string `bun:"custom_content,type:jsonb" json:"custom_content,omitempty"`
	CustomImages  map[string]string `bun:"custom_images,type:jsonb" json:"custom_images,omitempty"`
	LiveURL       string            `bun:"live_url" json:"live_url,omitempty"`
	DeploySiteID  string            `bun:"deploy_site_id" json:"deploy_site_id,omitempty"`
	Status        domain.Status     `bun:"status,notnull,default:'draft'" json:"status"`
	CreatedAt     time.Time         `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time         `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// SortedPages returns pages ordered by their explicit order index.
func (w *Website) SortedPages() []Page {
	out := make([]Page, len(w.Pages))
	copy(out, w.Pages)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// FindPage returns a pointer into the website's page list by id, or nil.
func (w *Website) FindPage(id uuid.UUID) *Page {
	for i := range w.Pages {
		if w.Pages[i].ID == id {
			return &w.Pages[i]
		}
	}
	return nil
}

// FindPageBySlug matches the normalized slug ("" is the home page).
func (w *Website) FindPageBySlug(slug string) *Page {
	normalized := strings.Trim(strings.TrimSpace(slug), "/")
	for i := range w.Pages {
		if strings.Trim(w.Pages[i].Slug, "/") == normalized {
			return &w.Pages[i]
		}
	}
	return nil
}

// HasPageSlug reports whether any page already claims the slug.
func (w *Website) HasPageSlug(slug string) bool {
	return w.FindPageBySlug(slug) != nil
}

// FindBlogPost returns a pointer into the blog post list by slug, or nil.
func (w *Website) FindBlogPost(slug string) *BlogPost {
	normalized := strings.TrimSpace(slug)
	for i := range w.BlogPosts {
		if w.BlogPosts[i].Slug == normalized {
			return &w.BlogPosts[i]
		}
	}
	return nil
}

// Clone deep-copies the aggregate so repositories never hand out shared
// mutable state.
func (w *Website) Clone() *Website {
	if w == nil {
		return nil
	}
	out := *w
	out.Services = append([]Service(nil), w.Services...)
	out.Locations = append([]Location(nil), w.Locations...)
	out.BlogPosts = make([]BlogPost, len(w.BlogPosts))
	for i, post := range w.BlogPosts {
		clone := post
		clone.Tags = append([]string(nil), post.Tags...)
		clone.SEO.Keywords = append([]string(nil), post.SEO.Keywords...)
		out.BlogPosts[i] = clone
	}
	out.Pages = make([]Page, len(w.Pages))
	for i, page := range w.Pages {
		clone := page
		clone.SEO.Keywords = append([]string(nil), page.SEO.Keywords...)
		clone.Sections = make([]sections.Section, len(page.Sections))
		for j, section := range page.Sections {
			clone.Sections[j] = section.Clone()
		}
		out.Pages[i] = clone
	}
	if w.CustomContent != nil {
		out.CustomContent = make(map[string]string, len(w.CustomContent))
		for k, v := range w.CustomContent {
			out.CustomContent[k] = v
		}
	}
	if w.CustomImages != nil {
		out.CustomImages = make(map[string]string, len(w.CustomImages))
		for k, v := range w.CustomImages {
			out.CustomImages[k] = v
		}
	}
	return &out
}
