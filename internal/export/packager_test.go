package export_test

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/goliatone/go-sitebuilder/internal/export"
	"github.com/goliatone/go-sitebuilder/internal/website"
)

func acmePlumbing() *website.Website {
	return &website.Website{
		ID:           uuid.New(),
		BusinessName: "Acme Plumbing",
		Phone:        "(555) 010-2000",
		Address:      "12 Main St, Springfield, IL",
		Services: []website.Service{
			{ID: uuid.New(), Name: "Drain Cleaning", Slug: "drain-cleaning"},
		},
	}
}

func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	out := map[string]string{}
	for _, file := range zr.File {
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("open %s: %v", file.Name, err)
		}
		body, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", file.Name, err)
		}
		out[file.Name] = string(body)
	}
	return out
}

func TestBuildArchiveSynthesizesDefaultPages(t *testing.T) {
	site := acmePlumbing()
	data, err := export.NewPackager().BuildArchive(site)
	if err != nil {
		t.Fatalf("build archive: %v", err)
	}
	files := readArchive(t, data)

	expected := []string{
		"index.html",
		"about.html",
		"services.html",
		"contact.html",
		"services/drain-cleaning.html",
		"sitemap.xml",
		"robots.txt",
	}
	if len(files) != len(expected) {
		t.Fatalf("expected %d files got %d: %v", len(expected), len(files), keys(files))
	}
	for _, name := range expected {
		if _, ok := files[name]; !ok {
			t.Fatalf("missing archive entry %s", name)
		}
	}

	if !strings.Contains(files["services/drain-cleaning.html"], "<title>Drain Cleaning") {
		t.Fatal("service page title must carry the service name")
	}
	if len(site.Pages) != 0 {
		t.Fatal("synthesis must not mutate the input aggregate")
	}
}

func TestSitemapEntriesAndPriorities(t *testing.T) {
	site := acmePlumbing()
	site.Locations = []website.Location{
		{ID: uuid.New(), Name: "Springfield", Slug: "springfield"},
	}
	data, err := export.NewPackager().BuildArchive(site)
	if err != nil {
		t.Fatalf("build archive: %v", err)
	}
	files := readArchive(t, data)
	sitemap := files["sitemap.xml"]

	// 4 default pages + 1 service + 1 location.
	if count := strings.Count(sitemap, "<url>"); count != 6 {
		t.Fatalf("expected 6 url entries got %d:\n%s", count, sitemap)
	}
	checks := []struct {
		loc      string
		priority string
	}{
		{"https://example.com/", "1.0"},
		{"https://example.com/services", "0.9"},
		{"https://example.com/about", "0.8"},
		{"https://example.com/services/drain-cleaning", "0.8"},
		{"https://example.com/locations/springfield", "0.8"},
		{"https://example.com/contact", "0.7"},
	}
	for _, check := range checks {
		block := "<loc>" + check.loc + "</loc>\n    <priority>" + check.priority + "</priority>"
		if !strings.Contains(sitemap, block) {
			t.Fatalf("sitemap missing %s at priority %s:\n%s", check.loc, check.priority, sitemap)
		}
	}
}

func TestRobotsAllowsAllAndPointsAtSitemap(t *testing.T) {
	site := acmePlumbing()
	site.LiveURL = "https://acmeplumbing.example/"
	data, err := export.NewPackager().BuildArchive(site)
	if err != nil {
		t.Fatalf("build archive: %v", err)
	}
	files := readArchive(t, data)
	robots := files["robots.txt"]

	if !strings.Contains(robots, "User-agent: *") || !strings.Contains(robots, "Allow: /") {
		t.Fatalf("robots must allow all crawlers:\n%s", robots)
	}
	if !strings.Contains(robots, "Sitemap: https://acmeplumbing.example/sitemap.xml") {
		t.Fatalf("robots must point at the deployed sitemap:\n%s", robots)
	}
}

func TestUnpublishedPagesAreSkipped(t *testing.T) {
	site := acmePlumbing()
	site.Services = nil
	site.Pages = []website.Page{
		{ID: uuid.New(), Title: "Home", Slug: "", IsPublished: true},
		{ID: uuid.New(), Title: "Hidden", Slug: "hidden", IsPublished: false},
	}
	data, err := export.NewPackager().BuildArchive(site)
	if err != nil {
		t.Fatalf("build archive: %v", err)
	}
	files := readArchive(t, data)
	if _, ok := files["hidden.html"]; ok {
		t.Fatal("unpublished pages must not ship")
	}
	if _, ok := files["index.html"]; !ok {
		t.Fatal("published root page must map to index.html")
	}
}

func TestPublishedBlogPostsShip(t *testing.T) {
	site := acmePlumbing()
	site.BlogPosts = []website.BlogPost{
		{ID: uuid.New(), Title: "Winter Pipe Care", Slug: "winter-pipe-care", Content: "# Tips", Status: domain.StatusPublished},
		{ID: uuid.New(), Title: "Draft", Slug: "draft-post", Content: "wip", Status: domain.StatusDraft},
	}
	data, err := export.NewPackager().BuildArchive(site)
	if err != nil {
		t.Fatalf("build archive: %v", err)
	}
	files := readArchive(t, data)
	if _, ok := files["blog/winter-pipe-care.html"]; !ok {
		t.Fatal("published posts must ship under blog/")
	}
	if _, ok := files["blog/draft-post.html"]; ok {
		t.Fatal("draft posts must not ship")
	}
	if !strings.Contains(files["sitemap.xml"], "blog/winter-pipe-care") {
		t.Fatal("published posts must appear in the sitemap")
	}
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
