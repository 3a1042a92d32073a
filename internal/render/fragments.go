package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-sitebuilder/internal/sections"
	"github.com/goliatone/go-sitebuilder/internal/website"
)

// frag is the per-section rendering context handed to fragment functions.
type frag struct {
	b         strings.Builder
	editable  bool
	sectionID string
	section   sections.Section
	site      *website.Website
}

// editAttrs returns the data attribute pair identifying an editable node, or
// nothing in static mode.
func (f *frag) editAttrs(property string) string {
	if !f.editable {
		return ""
	}
	return fmt.Sprintf(" data-section-id=%q data-property=%q", f.sectionID, property)
}

func (f *frag) str(key string) string {
	value, _ := f.section.StringField(key)
	return value
}

// text writes tag wrapping the named content field, escaped; empty values
// emit nothing.
func (f *frag) text(tag, class, property string) {
	value := f.str(property)
	if value == "" {
		return
	}
	classAttr := ""
	if class != "" {
		classAttr = fmt.Sprintf(" class=%q", class)
	}
	fmt.Fprintf(&f.b, "<%s%s%s>%s</%s>\n", tag, classAttr, f.editAttrs(property), html.EscapeString(value), tag)
}

// link writes an anchor whose label and href come from two content fields;
// omitted when the label is empty.
func (f *frag) link(class, textProperty, hrefProperty string) {
	label := f.str(textProperty)
	if label == "" {
		return
	}
	href := f.str(hrefProperty)
	if href == "" {
		href = "#"
	}
	fmt.Fprintf(&f.b, "<a class=%q href=%q%s>%s</a>\n", class, href, f.editAttrs(textProperty), html.EscapeString(label))
}

// items returns the content's "items" array as maps, tolerating absent or
// malformed values.
func (f *frag) items(key string) []map[string]any {
	raw, ok := f.section.Content[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		if item, ok := entry.(map[string]any); ok {
			out = append(out, item)
		}
	}
	return out
}

func itemString(item map[string]any, key string) string {
	value, _ := item[key].(string)
	return strings.TrimSpace(value)
}

type fragmentFunc func(*frag)

// fragments is the type-to-markup dispatch table. Every supported section
// type must have an entry; TestFragmentTableCoversAllTypes enforces that.
var fragments = map[sections.Type]fragmentFunc{
	sections.TypeHero:          renderHero,
	sections.TypeServicesGrid:  renderServicesGrid,
	sections.TypeAboutIntro:    renderAboutIntro,
	sections.TypeContactForm:   renderContactForm,
	sections.TypeCTA:           renderCTA,
	sections.TypeTestimonials:  renderTestimonials,
	sections.TypeLocationsList: renderLocationsList,
	sections.TypeGallery:       renderGallery,
	sections.TypeFAQ:           renderFAQ,
	sections.TypeFeatures:      renderFeatures,
	sections.TypeTrustBadges:   renderTrustBadges,
	sections.TypeBlogList:      renderBlogList,
	sections.TypeTextBlock:     renderTextBlock,
	sections.TypeImage:         renderImage,
	sections.TypeVideo:         renderVideo,
	sections.TypeCustomContent: renderCustomContent,
}

func renderHero(f *frag) {
	f.text("h1", "", "headline")
	f.text("p", "hero-subheadline", "subheadline")
	f.link("cta-button", "ctaText", "ctaLink")
}

// renderServicesGrid pulls the site's service entities; the section content
// only supplies the heading copy.
func renderServicesGrid(f *frag) {
	f.text("h2", "", "title")
	f.text("p", "section-subtitle", "subtitle")
	if len(f.site.Services) == 0 {
		return
	}
	f.b.WriteString("<div class=\"card-grid\">\n")
	for _, svc := range f.site.Services {
		f.b.WriteString("<div class=\"card service-card\">\n")
		fmt.Fprintf(&f.b, "<h3><a href=%q>%s</a></h3>\n", "/services/"+svc.Slug, html.EscapeString(svc.Name))
		if svc.Description != "" {
			fmt.Fprintf(&f.b, "<p>%s</p>\n", html.EscapeString(svc.Description))
		}
		f.b.WriteString("</div>\n")
	}
	f.b.WriteString("</div>\n")
}

func renderAboutIntro(f *frag) {
	f.text("h2", "", "title")
	f.text("p", "about-content", "content")
}

func renderContactForm(f *frag) {
	f.text("h2", "", "title")
	f.text("p", "section-subtitle", "subtitle")
	f.b.WriteString("<form class=\"contact-form\" method=\"post\" action=\"#\">\n")
	f.b.WriteString("<input type=\"text\" name=\"name\" placeholder=\"Your name\" required>\n")
	f.b.WriteString("<input type=\"email\" name=\"email\" placeholder=\"Your email\" required>\n")
	f.b.WriteString("<textarea name=\"message\" placeholder=\"How can we help?\" required></textarea>\n")
	label := f.str("buttonText")
	if label == "" {
		label = "Send"
	}
	fmt.Fprintf(&f.b, "<button type=\"submit\"%s>%s</button>\n", f.editAttrs("buttonText"), html.EscapeString(label))
	f.b.WriteString("</form>\n")
}

func renderCTA(f *frag) {
	f.text("h2", "", "headline")
	f.text("p", "cta-description", "description")
	f.link("cta-button", "buttonText", "buttonLink")
}

func renderTestimonials(f *frag) {
	f.text("h2", "", "title")
	items := f.items("items")
	if len(items) == 0 {
		return
	}
	f.b.WriteString("<div class=\"card-grid\">\n")
	for _, item := range items {
		quote := itemString(item, "quote")
		if quote == "" {
			continue
		}
		f.b.WriteString("<blockquote class=\"card testimonial\">\n")
		fmt.Fprintf(&f.b, "<p>%s</p>\n", html.EscapeString(quote))
		if author := itemString(item, "author"); author != "" {
			fmt.Fprintf(&f.b, "<cite>%s", html.EscapeString(author))
			if role := itemString(item, "role"); role != "" {
				fmt.Fprintf(&f.b, ", %s", html.EscapeString(role))
			}
			f.b.WriteString("</cite>\n")
		}
		f.b.WriteString("</blockquote>\n")
	}
	f.b.WriteString("</div>\n")
}

// renderLocationsList mirrors the services grid for location entities.
func renderLocationsList(f *frag) {
	f.text("h2", "", "title")
	f.text("p", "section-subtitle", "subtitle")
	if len(f.site.Locations) == 0 {
		return
	}
	f.b.WriteString("<ul class=\"locations-list\">\n")
	for _, loc := range f.site.Locations {
		fmt.Fprintf(&f.b, "<li><a href=%q>%s</a></li>\n", "/locations/"+loc.Slug, html.EscapeString(loc.Name))
	}
	f.b.WriteString("</ul>\n")
}

func renderGallery(f *frag) {
	f.text("h2", "", "title")
	images := f.items("images")
	if len(images) == 0 {
		return
	}
	f.b.WriteString("<div class=\"card-grid gallery\">\n")
	for _, image := range images {
		src := itemString(image, "src")
		if src == "" {
			continue
		}
		fmt.Fprintf(&f.b, "<img src=%q alt=%q%s>\n", src, itemString(image, "alt"), f.editAttrs("images"))
	}
	f.b.WriteString("</div>\n")
}

func renderFAQ(f *frag) {
	f.text("h2", "", "title")
	for _, item := range f.items("items") {
		question := itemString(item, "question")
		if question == "" {
			continue
		}
		f.b.WriteString("<details class=\"faq-item\">\n")
		fmt.Fprintf(&f.b, "<summary>%s</summary>\n", html.EscapeString(question))
		if answer := itemString(item, "answer"); answer != "" {
			fmt.Fprintf(&f.b, "<p>%s</p>\n", html.EscapeString(answer))
		}
		f.b.WriteString("</details>\n")
	}
}

func renderFeatures(f *frag) {
	f.text("h2", "", "title")
	items := f.items("items")
	if len(items) == 0 {
		return
	}
	f.b.WriteString("<div class=\"card-grid\">\n")
	for _, item := range items {
		title := itemString(item, "title")
		if title == "" {
			continue
		}
		f.b.WriteString("<div class=\"card feature\">\n")
		if icon := itemString(item, "icon"); icon != "" {
			fmt.Fprintf(&f.b, "<span class=\"feature-icon\" data-icon=%q></span>\n", icon)
		}
		fmt.Fprintf(&f.b, "<h3>%s</h3>\n", html.EscapeString(title))
		if description := itemString(item, "description"); description != "" {
			fmt.Fprintf(&f.b, "<p>%s</p>\n", html.EscapeString(description))
		}
		f.b.WriteString("</div>\n")
	}
	f.b.WriteString("</div>\n")
}

func renderTrustBadges(f *frag) {
	f.text("h2", "", "title")
	raw, ok := f.section.Content["badges"].([]any)
	if !ok || len(raw) == 0 {
		return
	}
	f.b.WriteString("<ul class=\"trust-badges\">\n")
	for _, entry := range raw {
		if badge, ok := entry.(string); ok && strings.TrimSpace(badge) != "" {
			fmt.Fprintf(&f.b, "<li>%s</li>\n", html.EscapeString(badge))
		}
	}
	f.b.WriteString("</ul>\n")
}

// renderBlogList links the site's published posts under the section heading.
func renderBlogList(f *frag) {
	f.text("h2", "", "title")
	f.text("p", "section-subtitle", "subtitle")
	posts := publishedPosts(f.site)
	if len(posts) == 0 {
		return
	}
	f.b.WriteString("<div class=\"card-grid\">\n")
	for _, post := range posts {
		f.b.WriteString("<div class=\"card blog-card\">\n")
		fmt.Fprintf(&f.b, "<h3><a href=%q>%s</a></h3>\n", "/blog/"+post.Slug, html.EscapeString(post.Title))
		if post.Excerpt != "" {
			fmt.Fprintf(&f.b, "<p>%s</p>\n", html.EscapeString(post.Excerpt))
		}
		f.b.WriteString("</div>\n")
	}
	f.b.WriteString("</div>\n")
}

func renderTextBlock(f *frag) {
	f.text("h2", "", "title")
	f.text("p", "text-content", "content")
}

func renderImage(f *frag) {
	src := f.str("src")
	if src == "" {
		return
	}
	f.b.WriteString("<figure>\n")
	fmt.Fprintf(&f.b, "<img src=%q alt=%q%s>\n", src, f.str("alt"), f.editAttrs("src"))
	if caption := f.str("caption"); caption != "" {
		fmt.Fprintf(&f.b, "<figcaption%s>%s</figcaption>\n", f.editAttrs("caption"), html.EscapeString(caption))
	}
	f.b.WriteString("</figure>\n")
}

func renderVideo(f *frag) {
	src := f.str("url")
	if src == "" {
		return
	}
	fmt.Fprintf(&f.b, "<iframe class=\"video-embed\" src=%q allowfullscreen%s></iframe>\n", src, f.editAttrs("url"))
	if caption := f.str("caption"); caption != "" {
		fmt.Fprintf(&f.b, "<p class=\"video-caption\"%s>%s</p>\n", f.editAttrs("caption"), html.EscapeString(caption))
	}
}

// renderCustomContent trusts the stored HTML; the payload is authored by the
// site owner, not third parties.
func renderCustomContent(f *frag) {
	if raw := f.str("html"); raw != "" {
		f.b.WriteString(raw)
		f.b.WriteString("\n")
	}
}
