package render_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/render"
	"github.com/goliatone/go-sitebuilder/internal/sections"
	"github.com/goliatone/go-sitebuilder/internal/website"
)

func testSite() *website.Website {
	factory := sections.NewFactory()
	site := &website.Website{
		ID:           uuid.New(),
		BusinessName: "Acme Plumbing",
		Phone:        "(555) 010-2000",
		Email:        "office@acmeplumbing.example",
		Address:      "12 Main St, Springfield, IL",
		Colors:       website.BrandColors{Primary: "#0ea5e9"},
		Services: []website.Service{
			{ID: uuid.New(), Name: "Drain Cleaning", Slug: "drain-cleaning", Description: "Clogs cleared fast"},
		},
		Locations: []website.Location{
			{ID: uuid.New(), Name: "Springfield", Slug: "springfield"},
		},
	}
	site.Pages = []website.Page{
		{
			ID:          uuid.New(),
			Title:       "Home",
			Slug:        "",
			Type:        website.PageTypeHome,
			IsPublished: true,
			Sections: []sections.Section{
				factory.New(sections.TypeHero, 0),
				factory.New(sections.TypeServicesGrid, 1),
				factory.New(sections.TypeCTA, 2),
			},
		},
		{
			ID:          uuid.New(),
			Title:       "About",
			Slug:        "about",
			Type:        website.PageTypeAbout,
			IsPublished: true,
			Order:       1,
			Sections:    []sections.Section{factory.New(sections.TypeAboutIntro, 0)},
		},
	}
	return site
}

func parseDoc(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse rendered document: %v", err)
	}
	return doc
}

func TestRenderPageProducesCompleteDocument(t *testing.T) {
	site := testSite()
	r := render.NewRenderer()
	out := r.RenderPage(site, site.Pages[0])

	if count := strings.Count(out, "<html"); count != 1 {
		t.Fatalf("expected exactly one html root, got %d", count)
	}
	doc := parseDoc(t, out)
	if title := doc.Find("title").Text(); !strings.Contains(title, "Acme Plumbing") {
		t.Fatalf("title must carry the business name, got %q", title)
	}
	if doc.Find("header .brand").Length() != 1 {
		t.Fatal("expected branded header")
	}
	if doc.Find("nav.site-nav li").Length() != 2 {
		t.Fatalf("expected 2 nav items, got %d", doc.Find("nav.site-nav li").Length())
	}
	if doc.Find("main section").Length() != 3 {
		t.Fatalf("expected 3 section fragments, got %d", doc.Find("main section").Length())
	}
	if !strings.Contains(out, "--color-primary: #0ea5e9;") {
		t.Fatal("brand palette must surface as CSS custom properties")
	}
	if doc.Find(".service-card a").First().Text() != "Drain Cleaning" {
		t.Fatal("services grid must list the site's services")
	}
}

func TestRenderPageIsIdempotent(t *testing.T) {
	site := testSite()
	r := render.NewRenderer()
	first := r.RenderPage(site, site.Pages[0])
	second := r.RenderPage(site, site.Pages[0])
	if first != second {
		t.Fatal("unchanged input must render byte-identical output")
	}
}

func TestRenderSectionsFollowOrderIndex(t *testing.T) {
	site := testSite()
	factory := sections.NewFactory()
	page := website.Page{
		ID:    uuid.New(),
		Title: "Scrambled",
		Sections: []sections.Section{
			factory.New(sections.TypeCTA, 2),
			factory.New(sections.TypeHero, 0),
			factory.New(sections.TypeAboutIntro, 1),
		},
	}
	out := render.NewRenderer().RenderPage(site, page)
	hero := strings.Index(out, `data-section-type="hero"`)
	about := strings.Index(out, `data-section-type="about-intro"`)
	cta := strings.Index(out, `data-section-type="cta"`)
	if !(hero < about && about < cta) {
		t.Fatalf("sections out of order: hero=%d about=%d cta=%d", hero, about, cta)
	}
}

func TestFooterNAPOmittedWithoutAddress(t *testing.T) {
	site := testSite()
	site.Address = ""
	out := render.NewRenderer().RenderPage(site, site.Pages[0])

	if strings.Contains(out, "schema.org/LocalBusiness") {
		t.Fatal("no address means no LocalBusiness microdata")
	}
	if strings.Contains(out, "maps") {
		t.Fatal("no address means no map embed")
	}

	site.Address = "12 Main St, Springfield, IL"
	out = render.NewRenderer().RenderPage(site, site.Pages[0])
	doc := parseDoc(t, out)
	if doc.Find(`[itemtype="https://schema.org/LocalBusiness"]`).Length() != 1 {
		t.Fatal("address present means NAP microdata present")
	}
	iframe := doc.Find("iframe.map-embed")
	if iframe.Length() != 1 {
		t.Fatal("address present means map embed present")
	}
	src, _ := iframe.Attr("src")
	if !strings.Contains(src, "12+Main+St%2C+Springfield%2C+IL") {
		t.Fatalf("map src must url-encode the address, got %q", src)
	}
}

func TestUnknownSectionTypeRendersEmptyFragment(t *testing.T) {
	site := testSite()
	page := website.Page{
		ID:    uuid.New(),
		Title: "Odd",
		Sections: []sections.Section{
			{ID: uuid.New(), Type: sections.Type("holographic-banner"), Content: map[string]any{}},
		},
	}
	out := render.NewRenderer().RenderPage(site, page)
	doc := parseDoc(t, out)
	if doc.Find("main section").Length() != 0 {
		t.Fatal("unknown section types must render as empty fragments")
	}
	if strings.Count(out, "<html") != 1 {
		t.Fatal("document must stay well formed")
	}
}

func TestEditableModeAddsDataAttributes(t *testing.T) {
	site := testSite()
	out := render.NewRenderer(render.WithMode(render.ModeEditable)).RenderPage(site, site.Pages[0])
	doc := parseDoc(t, out)

	heroID := site.Pages[0].Sections[0].ID.String()
	headline := doc.Find(`[data-section-id="` + heroID + `"][data-property="headline"]`)
	if headline.Length() != 1 {
		t.Fatal("editable hero headline must carry the section id and property")
	}
	if doc.Find("script").Length() == 0 {
		t.Fatal("editable documents must embed the preview sync script")
	}

	static := render.NewRenderer().RenderPage(site, site.Pages[0])
	if strings.Contains(static, "data-section-id") {
		t.Fatal("static output must not carry editor attributes")
	}
	if strings.Contains(static, "element-selected") {
		t.Fatal("static output must not embed the preview script")
	}
}

func TestRenderBlogPostConvertsMarkdown(t *testing.T) {
	site := testSite()
	post := website.BlogPost{
		ID:      uuid.New(),
		Title:   "Winter Pipe Care",
		Slug:    "winter-pipe-care",
		Content: "## Insulate early\n\nWrap exposed pipes **before** the first freeze.",
		Author:  "Pat",
		Tags:    []string{"winter", "maintenance"},
	}
	out := render.NewRenderer().RenderBlogPost(site, post)
	doc := parseDoc(t, out)

	if doc.Find("article h1").Text() != "Winter Pipe Care" {
		t.Fatal("post title must render as the article heading")
	}
	if doc.Find("article h2").Text() != "Insulate early" {
		t.Fatal("markdown headings must convert to HTML")
	}
	if doc.Find("article strong").Text() != "before" {
		t.Fatal("markdown emphasis must convert to HTML")
	}
	if doc.Find(".blog-post-tags li").Length() != 2 {
		t.Fatal("tags must render")
	}
}

func TestFragmentTableCoversAllTypes(t *testing.T) {
	site := testSite()
	r := render.NewRenderer()
	factory := sections.NewFactory()
	for _, sectionType := range sections.Types() {
		page := website.Page{
			ID:       uuid.New(),
			Title:    "Probe",
			Sections: []sections.Section{factory.New(sectionType, 0)},
		}
		out := r.RenderPage(site, page)
		doc := parseDoc(t, out)
		if doc.Find(`[data-section-type="`+string(sectionType)+`"]`).Length() != 1 {
			t.Fatalf("no fragment rendered for section type %q", sectionType)
		}
	}
}
