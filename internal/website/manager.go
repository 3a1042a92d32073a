package website

import (
	"context"
	"fmt"
	"strings"
	"time"

	slug "github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/goliatone/go-sitebuilder/internal/identity"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/sections"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// Manager owns all mutations of the website aggregate. Every operation loads
// the aggregate, applies the change, and persists the full document; the
// aggregate is treated as exclusively owned by one editor session, so the
// last full save wins.
type Manager interface {
	Create(ctx context.Context, req CreateWebsiteRequest) (*Website, error)
	Get(ctx context.Context, id uuid.UUID) (*Website, error)
	Save(ctx context.Context, record *Website) (*Website, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Website, error)

	AddPage(ctx context.Context, websiteID uuid.UUID, req AddPageRequest) (*Website, error)
	RemovePage(ctx context.Context, websiteID, pageID uuid.UUID) (*Website, error)
	ReorderPages(ctx context.Context, websiteID uuid.UUID, orderedIDs []uuid.UUID) (*Website, error)

	AddSection(ctx context.Context, websiteID, pageID uuid.UUID, sectionType sections.Type) (*Website, error)
	UpdateSectionContent(ctx context.Context, websiteID, pageID, sectionID uuid.UUID, content map[string]any) (*Website, error)
	RemoveSection(ctx context.Context, websiteID, pageID, sectionID uuid.UUID) (*Website, error)

	AddService(ctx context.Context, websiteID uuid.UUID, req AddServiceRequest) (*Website, error)
	RemoveService(ctx context.Context, websiteID, serviceID uuid.UUID) (*Website, error)
	AddLocation(ctx context.Context, websiteID uuid.UUID, req AddLocationRequest) (*Website, error)
	RemoveLocation(ctx context.Context, websiteID, locationID uuid.UUID) (*Website, error)

	CreateBlogPost(ctx context.Context, websiteID uuid.UUID, req CreateBlogPostRequest) (*Website, error)
	UpdateBlogPost(ctx context.Context, websiteID uuid.UUID, postSlug string, req UpdateBlogPostRequest) (*Website, error)
	DeleteBlogPost(ctx context.Context, websiteID uuid.UUID, postSlug string) (*Website, error)
}

// CreateWebsiteRequest carries the intake-form payload for a new site.
type CreateWebsiteRequest struct {
	UserID       uuid.UUID
	BusinessName string
	Industry     string
	Colors       BrandColors
	Phone        string
	Email        string
	Address      string
	LogoURL      string
	ServiceNames []string
	CityNames    []string
	SeedPages    bool
}

// AddPageRequest creates an explicit page on the aggregate.
type AddPageRequest struct {
	Title       string
	Slug        string
	Type        PageType
	SEO         SEO
	IsPublished bool
}

// AddServiceRequest registers a service plus its companion page.
type AddServiceRequest struct {
	Name        string
	Description string
}

// AddLocationRequest registers a location plus its companion page.
type AddLocationRequest struct {
	Name    string
	Address string
}

// CreateBlogPostRequest carries a new blog entry.
type CreateBlogPostRequest struct {
	Title            string
	Slug             string
	Content          string
	Excerpt          string
	FeaturedImage    string
	FeaturedImageAlt string
	Tags             []string
	SEO              SEO
	Author           string
	Publish          bool
}

// UpdateBlogPostRequest applies partial edits to an existing entry. Nil
// pointers leave the current value untouched.
type UpdateBlogPostRequest struct {
	Title         *string
	Content       *string
	Excerpt       *string
	FeaturedImage *string
	Tags          []string
	Publish       *bool
}

// ManagerOption mutates the manager during construction.
type ManagerOption func(*manager)

// WithClock overrides the service clock.
func WithClock(clock func() time.Time) ManagerOption {
	return func(s *manager) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the identity source.
func WithIDGenerator(generator func() uuid.UUID) ManagerOption {
	return func(s *manager) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithSectionFactory wires a shared section factory.
func WithSectionFactory(factory *sections.Factory) ManagerOption {
	return func(s *manager) {
		if factory != nil {
			s.sections = factory
		}
	}
}

// WithLogger attaches a logger; the default discards entries.
func WithLogger(logger interfaces.Logger) ManagerOption {
	return func(s *manager) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type manager struct {
	repo     Repository
	sections *sections.Factory
	now      func() time.Time
	id       func() uuid.UUID
	logger   interfaces.Logger
}

// NewManager wires the aggregate manager.
func NewManager(repo Repository, opts ...ManagerOption) Manager {
	s := &manager{
		repo:     repo,
		sections: sections.NewFactory(),
		now:      time.Now,
		id:       uuid.New,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *manager) Create(ctx context.Context, req CreateWebsiteRequest) (*Website, error) {
	name := strings.TrimSpace(req.BusinessName)
	if name == "" {
		return nil, ErrBusinessNameRequired
	}

	now := s.now()
	record := &Website{
		ID:           s.id(),
		UserID:       req.UserID,
		BusinessName: name,
		Industry:     strings.TrimSpace(req.Industry),
		Colors:       req.Colors,
		Phone:        strings.TrimSpace(req.Phone),
		Email:        strings.TrimSpace(req.Email),
		Address:      strings.TrimSpace(req.Address),
		LogoURL:      strings.TrimSpace(req.LogoURL),
		Status:       domain.StatusDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if req.SeedPages {
		record.Pages = DefaultPages(record.ID, s.sections)
	}
	for _, serviceName := range req.ServiceNames {
		if err := s.appendService(record, AddServiceRequest{Name: serviceName}); err != nil {
			return nil, err
		}
	}
	for _, cityName := range req.CityNames {
		if err := s.appendLocation(record, AddLocationRequest{Name: cityName}); err != nil {
			return nil, err
		}
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("website created", "website_id", created.ID, "business", created.BusinessName)
	return created, nil
}

func (s *manager) Get(ctx context.Context, id uuid.UUID) (*Website, error) {
	if id == uuid.Nil {
		return nil, ErrWebsiteRequired
	}
	return s.repo.GetByID(ctx, id)
}

func (s *manager) Save(ctx context.Context, record *Website) (*Website, error) {
	if record == nil || record.ID == uuid.Nil {
		return nil, ErrWebsiteRequired
	}
	clone := record.Clone()
	clone.UpdatedAt = s.now()
	return s.repo.Update(ctx, clone)
}

func (s *manager) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrWebsiteRequired
	}
	return s.repo.Delete(ctx, id)
}

func (s *manager) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Website, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *manager) AddPage(ctx context.Context, websiteID uuid.UUID, req AddPageRequest) (*Website, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrPageTitleRequired
	}
	return s.mutate(ctx, websiteID, func(record *Website) error {
		pageSlug, err := normalizeSlug(req.Slug)
		if err != nil {
			return err
		}
		if record.HasPageSlug(pageSlug) {
			return fmt.Errorf("%w: %q", ErrPageSlugExists, pageSlug)
		}
		pageType := req.Type
		if pageType == "" {
			pageType = PageTypeGeneric
		}
		record.Pages = append(record.Pages, Page{
			ID:          s.id(),
			Title:       title,
			Slug:        pageSlug,
			Type:        pageType,
			SEO:         req.SEO,
			IsPublished: req.IsPublished,
			Order:       nextPageOrder(record.Pages),
		})
		return nil
	})
}

func (s *manager) RemovePage(ctx context.Context, websiteID, pageID uuid.UUID) (*Website, error) {
	return s.mutate(ctx, websiteID, func(record *Website) error {
		for i := range record.Pages {
			if record.Pages[i].ID == pageID {
				record.Pages = append(record.Pages[:i], record.Pages[i+1:]...)
				return nil
			}
		}
		return ErrPageNotFound
	})
}

func (s *manager) ReorderPages(ctx context.Context, websiteID uuid.UUID, orderedIDs []uuid.UUID) (*Website, error) {
	return s.mutate(ctx, websiteID, func(record *Website) error {
		position := map[uuid.UUID]int{}
		for i, id := range orderedIDs {
			position[id] = i
		}
		for i := range record.Pages {
			if order, ok := position[record.Pages[i].ID]; ok {
				record.Pages[i].Order = order
			}
		}
		return nil
	})
}

func (s *manager) AddSection(ctx context.Context, websiteID, pageID uuid.UUID, sectionType sections.Type) (*Website, error) {
	return s.mutate(ctx, websiteID, func(record *Website) error {
		page := record.FindPage(pageID)
		if page == nil {
			return ErrPageNotFound
		}
		section := s.sections.New(sectionType, nextSectionOrder(page.Sections))
		page.Sections = append(page.Sections, section)
		return nil
	})
}

func (s *manager) UpdateSectionContent(ctx context.Context, websiteID, pageID, sectionID uuid.UUID, content map[string]any) (*Website, error) {
	return s.mutate(ctx, websiteID, func(record *Website) error {
		page := record.FindPage(pageID)
		if page == nil {
			return ErrPageNotFound
		}
		section := page.FindSection(sectionID)
		if section == nil {
			return ErrSectionNotFound
		}
		if err := sections.ValidateContent(section.Type, content); err != nil {
			return err
		}
		updated := *section
		updated.Content = content
		*section = s.sections.MarkUserEdited(updated)
		return nil
	})
}

func (s *manager) RemoveSection(ctx context.Context, websiteID, pageID, sectionID uuid.UUID) (*Website, error) {
	return s.mutate(ctx, websiteID, func(record *Website) error {
		page := record.FindPage(pageID)
		if page == nil {
			return ErrPageNotFound
		}
		for i := range page.Sections {
			if page.Sections[i].ID == sectionID {
				page.Sections = append(page.Sections[:i], page.Sections[i+1:]...)
				return nil
			}
		}
		return ErrSectionNotFound
	})
}

func (s *manager) AddService(ctx context.Context, websiteID uuid.UUID, req AddServiceRequest) (*Website, error) {
	return s.mutate(ctx, websiteID, func(record *Website) error {
		return s.appendService(record, req)
	})
}

// appendService registers the service and its companion page in one step so
// the 1:1 invariant holds from creation.
func (s *manager) appendService(record *Website, req AddServiceRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ErrServiceNameRequired
	}
	serviceSlug, err := normalizeSlug(name)
	if err != nil {
		return err
	}
	serviceSlug = uniqueSlug(serviceSlug, func(candidate string) bool {
		for _, svc := range record.Services {
			if svc.Slug == candidate {
				return true
			}
		}
		return false
	})

	record.Services = append(record.Services, Service{
		ID:          s.id(),
		Name:        name,
		Slug:        serviceSlug,
		Description: strings.TrimSpace(req.Description),
	})
	record.Pages = append(record.Pages, Page{
		ID:          identity.ServicePageUUID(record.ID, serviceSlug),
		Title:       name,
		Slug:        "services/" + serviceSlug,
		Type:        PageTypeService,
		IsPublished: true,
		Order:       nextPageOrder(record.Pages),
		Sections: []sections.Section{
			s.sections.New(sections.TypeHero, 0),
			s.sections.New(sections.TypeTextBlock, 1),
			s.sections.New(sections.TypeCTA, 2),
		},
	})
	return nil
}

func (s *manager) RemoveService(ctx context.Context, websiteID, serviceID uuid.UUID) (*Website, error) {
	return s.mutate(ctx, websiteID, func(record *Website) error {
		for i := range record.Services {
			if record.Services[i].ID != serviceID {
				continue
			}
			companion := "services/" + record.Services[i].Slug
			record.Services = append(record.Services[:i], record.Services[i+1:]...)
			removePageBySlug(record, companion)
			return nil
		}
		return ErrServiceNotFound
	})
}

func (s *manager) AddLocation(ctx context.Context, websiteID uuid.UUID, req AddLocationRequest) (*Website, error) {
	return s.mutate(ctx, websiteID, func(record *Website) error {
		return s.appendLocation(record, req)
	})
}

func (s *manager) appendLocation(record *Website, req AddLocationRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ErrLocationNameRequired
	}
	locationSlug, err := normalizeSlug(name)
	if err != nil {
		return err
	}
	locationSlug = uniqueSlug(locationSlug, func(candidate string) bool {
		for _, loc := range record.Locations {
			if loc.Slug == candidate {
				return true
			}
		}
		return false
	})

	record.Locations = append(record.Locations, Location{
		ID:      s.id(),
		Name:    name,
		Slug:    locationSlug,
		Address: strings.TrimSpace(req.Address),
	})
	record.Pages = append(record.Pages, Page{
		ID:          identity.LocationPageUUID(record.ID, locationSlug),
		Title:       name,
		Slug:        "locations/" + locationSlug,
		Type:        PageTypeLocation,
		IsPublished: true,
		Order:       nextPageOrder(record.Pages),
		Sections: []sections.Section{
			s.sections.New(sections.TypeHero, 0),
			s.sections.New(sections.TypeLocationsList, 1),
			s.sections.New(sections.TypeContactForm, 2),
		},
	})
	return nil
}

func (s *manager) RemoveLocation(ctx context.Context, websiteID, locationID uuid.UUID) (*Website, error) {
	return s.mutate(ctx, websiteID, func(record *Website) error {
		for i := range record.Locations {
			if record.Locations[i].ID != locationID {
				continue
			}
			companion := "locations/" + record.Locations[i].Slug
			record.Locations = append(record.Locations[:i], record.Locations[i+1:]...)
			removePageBySlug(record, companion)
			return nil
		}
		return ErrLocationNotFound
	})
}

func (s *manager) CreateBlogPost(ctx context.Context, websiteID uuid.UUID, req CreateBlogPostRequest) (*Website, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrPostTitleRequired
	}
	return s.mutate(ctx, websiteID, func(record *Website) error {
		source := req.Slug
		if strings.TrimSpace(source) == "" {
			source = title
		}
		postSlug, err := normalizeSlug(source)
		if err != nil {
			return err
		}
		if record.FindBlogPost(postSlug) != nil {
			return fmt.Errorf("%w: %q", ErrPostSlugExists, postSlug)
		}
		status := domain.StatusDraft
		if req.Publish {
			status = domain.StatusPublished
		}
		now := s.now()
		record.BlogPosts = append(record.BlogPosts, BlogPost{
			ID:               s.id(),
			Title:            title,
			Slug:             postSlug,
			Content:          req.Content,
			Excerpt:          strings.TrimSpace(req.Excerpt),
			FeaturedImage:    strings.TrimSpace(req.FeaturedImage),
			FeaturedImageAlt: strings.TrimSpace(req.FeaturedImageAlt),
			Tags:             append([]string(nil), req.Tags...),
			SEO:              req.SEO,
			Author:           strings.TrimSpace(req.Author),
			Status:           status,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
		return nil
	})
}

func (s *manager) UpdateBlogPost(ctx context.Context, websiteID uuid.UUID, postSlug string, req UpdateBlogPostRequest) (*Website, error) {
	return s.mutate(ctx, websiteID, func(record *Website) error {
		post := record.FindBlogPost(postSlug)
		if post == nil {
			return ErrPostNotFound
		}
		if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
			post.Title = strings.TrimSpace(*req.Title)
		}
		if req.Content != nil {
			post.Content = *req.Content
		}
		if req.Excerpt != nil {
			post.Excerpt = strings.TrimSpace(*req.Excerpt)
		}
		if req.FeaturedImage != nil {
			post.FeaturedImage = strings.TrimSpace(*req.FeaturedImage)
		}
		if req.Tags != nil {
			post.Tags = append([]string(nil), req.Tags...)
		}
		if req.Publish != nil {
			if *req.Publish {
				post.Status = domain.StatusPublished
			} else {
				post.Status = domain.StatusDraft
			}
		}
		post.UpdatedAt = s.now()
		return nil
	})
}

func (s *manager) DeleteBlogPost(ctx context.Context, websiteID uuid.UUID, postSlug string) (*Website, error) {
	return s.mutate(ctx, websiteID, func(record *Website) error {
		normalized := strings.TrimSpace(postSlug)
		for i := range record.BlogPosts {
			if record.BlogPosts[i].Slug == normalized {
				record.BlogPosts = append(record.BlogPosts[:i], record.BlogPosts[i+1:]...)
				return nil
			}
		}
		return ErrPostNotFound
	})
}

// mutate loads the aggregate, applies fn to a private clone, and persists the
// result.
func (s *manager) mutate(ctx context.Context, websiteID uuid.UUID, fn func(*Website) error) (*Website, error) {
	if websiteID == uuid.Nil {
		return nil, ErrWebsiteRequired
	}
	record, err := s.repo.GetByID(ctx, websiteID)
	if err != nil {
		return nil, err
	}
	clone := record.Clone()
	if err := fn(clone); err != nil {
		return nil, err
	}
	clone.UpdatedAt = s.now()
	return s.repo.Update(ctx, clone)
}

func normalizeSlug(value string) (string, error) {
	trimmed := strings.Trim(strings.TrimSpace(value), "/")
	if trimmed == "" {
		return "", nil
	}
	parts := strings.Split(trimmed, "/")
	for i, part := range parts {
		normalized, err := slug.Normalize(part)
		if err != nil {
			return "", fmt.Errorf("website: invalid slug %q: %w", value, err)
		}
		parts[i] = normalized
	}
	return strings.Join(parts, "/"), nil
}

func uniqueSlug(base string, taken func(string) bool) string {
	if !taken(base) {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !taken(candidate) {
			return candidate
		}
	}
}

func nextPageOrder(pages []Page) int {
	max := -1
	for _, page := range pages {
		if page.Order > max {
			max = page.Order
		}
	}
	return max + 1
}

func nextSectionOrder(list []sections.Section) int {
	max := -1
	for _, section := range list {
		if section.Order > max {
			max = section.Order
		}
	}
	return max + 1
}

func removePageBySlug(record *Website, pageSlug string) {
	for i := range record.Pages {
		if record.Pages[i].Slug == pageSlug {
			record.Pages = append(record.Pages[:i], record.Pages[i+1:]...)
			return
		}
	}
}
