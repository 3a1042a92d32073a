package website

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBusinessNameRequired = errors.New("website: business name is required")
	ErrWebsiteRequired      = errors.New("website: website id required")
	ErrPageTitleRequired    = errors.New("website: page title is required")
	ErrPageSlugExists       = errors.New("website: page slug already exists")
	ErrPageNotFound         = errors.New("website: page not found")
	ErrSectionNotFound      = errors.New("website: section not found")
	ErrServiceNameRequired  = errors.New("website: service name is required")
	ErrServiceNotFound      = errors.New("website: service not found")
	ErrLocationNameRequired = errors.New("website: location name is required")
	ErrLocationNotFound     = errors.New("website: location not found")
	ErrPostTitleRequired    = errors.New("website: blog post title is required")
	ErrPostSlugExists       = errors.New("website: blog post slug already exists")
	ErrPostNotFound         = errors.New("website: blog post not found")
)

// NotFoundError identifies a missing website aggregate.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	key := strings.TrimSpace(e.Key)
	if key == "" {
		return "website: not found"
	}
	return fmt.Sprintf("website: %s not found", key)
}
