package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must prefix keys by domain/type so entities cannot collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// ServicePageUUID identifies the companion page generated for a service.
func ServicePageUUID(websiteID uuid.UUID, slug string) uuid.UUID {
	return UUID("sitebuilder:service_page:" + websiteID.String() + ":" + strings.ToLower(strings.TrimSpace(slug)))
}

// LocationPageUUID identifies the companion page generated for a location.
func LocationPageUUID(websiteID uuid.UUID, slug string) uuid.UUID {
	return UUID("sitebuilder:location_page:" + websiteID.String() + ":" + strings.ToLower(strings.TrimSpace(slug)))
}

// DefaultPageUUID identifies one of the synthesized default pages so repeated
// exports of an empty site stay stable.
func DefaultPageUUID(websiteID uuid.UUID, slug string) uuid.UUID {
	return UUID("sitebuilder:default_page:" + websiteID.String() + ":" + strings.ToLower(strings.TrimSpace(slug)))
}

// DefaultSectionUUID identifies a default section within a synthesized page.
func DefaultSectionUUID(pageID uuid.UUID, sectionType string, order int) uuid.UUID {
	return UUID("sitebuilder:default_section:" + pageID.String() + ":" + strings.ToLower(strings.TrimSpace(sectionType)) + ":" + strconv.Itoa(order))
}
