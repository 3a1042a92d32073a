package export

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/goliatone/go-sitebuilder/internal/website"
)

// Crawl priorities follow local-SEO weighting: the home page first, the
// services index and per-service pages next, informational pages last.
const (
	priorityHome          = "1.0"
	priorityServicesIndex = "0.9"
	priorityAbout         = "0.8"
	priorityService       = "0.8"
	priorityLocation      = "0.8"
	priorityContact       = "0.7"
	priorityDefault       = "0.6"
)

// buildSitemap emits one <url> entry per published top-level page plus one
// per service, location, and published blog post.
func buildSitemap(baseURL string, site *website.Website) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	seen := map[string]bool{}
	entry := func(loc, priority string) {
		if seen[loc] {
			return
		}
		seen[loc] = true
		b.WriteString("  <url>\n")
		fmt.Fprintf(&b, "    <loc>%s</loc>\n", loc)
		fmt.Fprintf(&b, "    <priority>%s</priority>\n", priority)
		b.WriteString("  </url>\n")
	}

	for _, page := range site.SortedPages() {
		if !page.IsPublished || strings.Contains(page.Slug, "/") {
			continue
		}
		entry(pageURL(baseURL, page.Slug), pagePriority(page))
	}
	for _, svc := range site.Services {
		entry(pageURL(baseURL, "services/"+svc.Slug), priorityService)
	}
	for _, loc := range site.Locations {
		entry(pageURL(baseURL, "locations/"+loc.Slug), priorityLocation)
	}
	for _, post := range site.BlogPosts {
		if post.Status != domain.StatusPublished {
			continue
		}
		entry(pageURL(baseURL, "blog/"+post.Slug), priorityDefault)
	}

	b.WriteString("</urlset>\n")
	return []byte(b.String())
}

func pagePriority(page website.Page) string {
	switch {
	case page.Slug == "":
		return priorityHome
	case page.Slug == "services":
		return priorityServicesIndex
	case page.Type == website.PageTypeAbout || page.Slug == "about":
		return priorityAbout
	case page.Type == website.PageTypeContact || page.Slug == "contact":
		return priorityContact
	default:
		return priorityDefault
	}
}

func pageURL(baseURL, slug string) string {
	if slug == "" {
		return baseURL + "/"
	}
	return baseURL + "/" + slug
}

// buildRobots allows every crawler and points at the sitemap.
func buildRobots(baseURL string) []byte {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n\n")
	fmt.Fprintf(&b, "Sitemap: %s/sitemap.xml\n", baseURL)
	return []byte(b.String())
}
