package website

import (
	"github.com/goliatone/go-sitebuilder/internal/identity"
	"github.com/goliatone/go-sitebuilder/internal/sections"
	"github.com/google/uuid"
)

// defaultPageSpec fixes the composition of the four pages synthesized for a
// site that has none of its own.
type defaultPageSpec struct {
	Title    string
	Slug     string
	Type     PageType
	Sections []sections.Type
}

var defaultPageSpecs = []defaultPageSpec{
	{
		Title: "Home",
		Slug:  "",
		Type:  PageTypeHome,
		Sections: []sections.Type{
			sections.TypeHero,
			sections.TypeServicesGrid,
			sections.TypeFeatures,
			sections.TypeTestimonials,
			sections.TypeCTA,
		},
	},
	{
		Title: "About",
		Slug:  "about",
		Type:  PageTypeAbout,
		Sections: []sections.Type{
			sections.TypeAboutIntro,
			sections.TypeTrustBadges,
			sections.TypeCTA,
		},
	},
	{
		Title: "Services",
		Slug:  "services",
		Type:  PageTypeGeneric,
		Sections: []sections.Type{
			sections.TypeServicesGrid,
			sections.TypeFAQ,
			sections.TypeCTA,
		},
	},
	{
		Title: "Contact",
		Slug:  "contact",
		Type:  PageTypeContact,
		Sections: []sections.Type{
			sections.TypeContactForm,
			sections.TypeLocationsList,
		},
	},
}

// DefaultPages synthesizes the home/about/services/contact set with
// type-specific default sections. Page and section identities derive from the
// website id so repeated synthesis (and therefore repeated exports) stays
// byte-stable.
func DefaultPages(websiteID uuid.UUID, factory *sections.Factory) []Page {
	if factory == nil {
		factory = sections.NewFactory()
	}
	pages := make([]Page, 0, len(defaultPageSpecs))
	for order, spec := range defaultPageSpecs {
		pageID := identity.DefaultPageUUID(websiteID, spec.Slug)
		page := Page{
			ID:          pageID,
			Title:       spec.Title,
			Slug:        spec.Slug,
			Type:        spec.Type,
			IsPublished: true,
			Order:       order,
			Sections:    make([]sections.Section, 0, len(spec.Sections)),
		}
		for i, sectionType := range spec.Sections {
			section := factory.New(sectionType, i)
			section.ID = identity.DefaultSectionUUID(pageID, string(sectionType), i)
			page.Sections = append(page.Sections, section)
		}
		pages = append(pages, page)
	}
	return pages
}
