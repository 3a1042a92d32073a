package sections

import (
	"github.com/goliatone/go-sitebuilder/internal/validation"
)

// Definition binds a section type to its JSON schema and default payload.
// Extra payload keys are tolerated everywhere (additionalProperties stays
// open) so imported legacy content survives validation.
type Definition struct {
	Type     Type
	Label    string
	Schema   map[string]any
	Defaults map[string]any
}

// Lookup returns the definition for a type.
func Lookup(t Type) (Definition, bool) {
	def, ok := registry[t]
	return def, ok
}

// Schema returns the JSON schema governing a type's content payload. Unknown
// types return nil.
func Schema(t Type) map[string]any {
	def, ok := registry[t]
	if !ok {
		return nil
	}
	return cloneContent(def.Schema)
}

// ValidateContent checks a payload against the type's schema. Unknown types
// validate trivially because the renderer treats them as empty fragments.
func ValidateContent(t Type, content map[string]any) error {
	def, ok := registry[t]
	if !ok {
		return nil
	}
	return validation.ValidatePayload(def.Schema, content)
}

func objectSchema(required []string, properties map[string]any) map[string]any {
	schema := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": true,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp() map[string]any {
	return map[string]any{"type": "string"}
}

func arrayProp(items map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": items}
}

var registry = map[Type]Definition{
	TypeHero: {
		Type:  TypeHero,
		Label: "Hero",
		Schema: objectSchema([]string{"headline", "subheadline"}, map[string]any{
			"headline":    stringProp(),
			"subheadline": stringProp(),
			"ctaText":     stringProp(),
			"ctaLink":     stringProp(),
		}),
		Defaults: map[string]any{
			"headline":    "Welcome to Our Business",
			"subheadline": "Quality service you can count on",
			"ctaText":     "Get a Free Quote",
			"ctaLink":     "/contact",
		},
	},
	TypeServicesGrid: {
		Type:  TypeServicesGrid,
		Label: "Services Grid",
		Schema: objectSchema([]string{"title"}, map[string]any{
			"title":    stringProp(),
			"subtitle": stringProp(),
		}),
		Defaults: map[string]any{
			"title":    "Our Services",
			"subtitle": "Everything we can do for you",
		},
	},
	TypeAboutIntro: {
		Type:  TypeAboutIntro,
		Label: "About Intro",
		Schema: objectSchema([]string{"title", "content"}, map[string]any{
			"title":   stringProp(),
			"content": stringProp(),
		}),
		Defaults: map[string]any{
			"title":   "About Us",
			"content": "We are a locally owned business dedicated to serving our community with honest, reliable work.",
		},
	},
	TypeContactForm: {
		Type:  TypeContactForm,
		Label: "Contact Form",
		Schema: objectSchema([]string{"title"}, map[string]any{
			"title":      stringProp(),
			"subtitle":   stringProp(),
			"buttonText": stringProp(),
		}),
		Defaults: map[string]any{
			"title":      "Get In Touch",
			"subtitle":   "Send us a message and we will get back to you shortly",
			"buttonText": "Send Message",
		},
	},
	TypeCTA: {
		Type:  TypeCTA,
		Label: "Call To Action",
		Schema: objectSchema([]string{"headline"}, map[string]any{
			"headline":    stringProp(),
			"description": stringProp(),
			"buttonText":  stringProp(),
			"buttonLink":  stringProp(),
		}),
		Defaults: map[string]any{
			"headline":    "Ready to Get Started?",
			"description": "Contact us today for a free consultation",
			"buttonText":  "Contact Us",
			"buttonLink":  "/contact",
		},
	},
	TypeTestimonials: {
		Type:  TypeTestimonials,
		Label: "Testimonials",
		Schema: objectSchema([]string{"title", "items"}, map[string]any{
			"title": stringProp(),
			"items": arrayProp(objectSchema([]string{"quote", "author"}, map[string]any{
				"quote":  stringProp(),
				"author": stringProp(),
				"role":   stringProp(),
			})),
		}),
		Defaults: map[string]any{
			"title": "What Our Customers Say",
			"items": []any{
				map[string]any{
					"quote":  "Fantastic service from start to finish. Highly recommended.",
					"author": "Jamie R.",
					"role":   "Homeowner",
				},
				map[string]any{
					"quote":  "Professional, punctual, and fairly priced.",
					"author": "Sam T.",
					"role":   "Local Resident",
				},
			},
		},
	},
	TypeLocationsList: {
		Type:  TypeLocationsList,
		Label: "Locations",
		Schema: objectSchema([]string{"title"}, map[string]any{
			"title":    stringProp(),
			"subtitle": stringProp(),
		}),
		Defaults: map[string]any{
			"title":    "Areas We Serve",
			"subtitle": "Proudly serving these communities",
		},
	},
	TypeGallery: {
		Type:  TypeGallery,
		Label: "Gallery",
		Schema: objectSchema([]string{"title", "images"}, map[string]any{
			"title": stringProp(),
			"images": arrayProp(objectSchema([]string{"src"}, map[string]any{
				"src": stringProp(),
				"alt": stringProp(),
			})),
		}),
		Defaults: map[string]any{
			"title": "Our Work",
			"images": []any{
				map[string]any{
					"src": "https://placehold.co/800x600",
					"alt": "Recent project",
				},
			},
		},
	},
	TypeFAQ: {
		Type:  TypeFAQ,
		Label: "FAQ",
		Schema: objectSchema([]string{"title", "items"}, map[string]any{
			"title": stringProp(),
			"items": arrayProp(objectSchema([]string{"question", "answer"}, map[string]any{
				"question": stringProp(),
				"answer":   stringProp(),
			})),
		}),
		Defaults: map[string]any{
			"title": "Frequently Asked Questions",
			"items": []any{
				map[string]any{
					"question": "Do you offer free estimates?",
					"answer":   "Yes, every job starts with a free, no-obligation estimate.",
				},
				map[string]any{
					"question": "Are you licensed and insured?",
					"answer":   "We are fully licensed and insured for your peace of mind.",
				},
				map[string]any{
					"question": "What areas do you serve?",
					"answer":   "We serve the entire metro area and surrounding communities.",
				},
			},
		},
	},
	TypeFeatures: {
		Type:  TypeFeatures,
		Label: "Features",
		Schema: objectSchema([]string{"title", "items"}, map[string]any{
			"title": stringProp(),
			"items": arrayProp(objectSchema([]string{"title", "description"}, map[string]any{
				"icon":        stringProp(),
				"title":       stringProp(),
				"description": stringProp(),
			})),
		}),
		Defaults: map[string]any{
			"title": "Why Choose Us",
			"items": []any{
				map[string]any{
					"icon":        "star",
					"title":       "Experienced Team",
					"description": "Years of hands-on experience on every job",
				},
				map[string]any{
					"icon":        "clock",
					"title":       "On-Time Service",
					"description": "We show up when we say we will",
				},
				map[string]any{
					"icon":        "shield",
					"title":       "Satisfaction Guaranteed",
					"description": "We stand behind every piece of work",
				},
			},
		},
	},
	TypeTrustBadges: {
		Type:  TypeTrustBadges,
		Label: "Trust Badges",
		Schema: objectSchema([]string{"badges"}, map[string]any{
			"title":  stringProp(),
			"badges": arrayProp(stringProp()),
		}),
		Defaults: map[string]any{
			"title":  "Trusted By The Community",
			"badges": []any{"Licensed & Insured", "Locally Owned", "Free Estimates"},
		},
	},
	TypeBlogList: {
		Type:  TypeBlogList,
		Label: "Blog",
		Schema: objectSchema([]string{"title"}, map[string]any{
			"title":    stringProp(),
			"subtitle": stringProp(),
		}),
		Defaults: map[string]any{
			"title":    "From Our Blog",
			"subtitle": "Tips and news from our team",
		},
	},
	TypeTextBlock: {
		Type:  TypeTextBlock,
		Label: "Text Block",
		Schema: objectSchema([]string{"content"}, map[string]any{
			"title":   stringProp(),
			"content": stringProp(),
		}),
		Defaults: map[string]any{
			"content": "Add your content here.",
		},
	},
	TypeImage: {
		Type:  TypeImage,
		Label: "Image",
		Schema: objectSchema([]string{"src"}, map[string]any{
			"src":     stringProp(),
			"alt":     stringProp(),
			"caption": stringProp(),
		}),
		Defaults: map[string]any{
			"src": "https://placehold.co/1200x800",
			"alt": "Placeholder image",
		},
	},
	TypeVideo: {
		Type:  TypeVideo,
		Label: "Video",
		Schema: objectSchema([]string{"url"}, map[string]any{
			"url":     stringProp(),
			"caption": stringProp(),
		}),
		Defaults: map[string]any{
			"url": "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
	},
	TypeCustomContent: {
		Type:  TypeCustomContent,
		Label: "Custom Content",
		Schema: objectSchema(nil, map[string]any{
			"html": stringProp(),
		}),
		Defaults: map[string]any{
			"html": "<p>Custom content goes here.</p>",
		},
	},
}
