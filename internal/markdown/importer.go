package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/website"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

var (
	ErrManagerRequired = errors.New("markdown importer: website manager is required")
	ErrTitleMissing    = errors.New("markdown importer: frontmatter title is required")
)

// ImporterConfig carries the importer's dependencies.
type ImporterConfig struct {
	Manager website.Manager
	Logger  interfaces.Logger
}

// Importer turns Markdown documents with YAML frontmatter into blog posts on
// a website aggregate.
type Importer struct {
	manager website.Manager
	logger  interfaces.Logger
}

// NewImporter builds an Importer from the supplied configuration.
func NewImporter(cfg ImporterConfig) *Importer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{
		manager: cfg.Manager,
		logger:  logger,
	}
}

// ImportResult summarizes a batch import.
type ImportResult struct {
	Created int
	Skipped int
	Errors  []error
}

// ImportDocument creates one blog post from a parsed document. Existing
// slugs are skipped, not overwritten.
func (i *Importer) ImportDocument(ctx context.Context, websiteID uuid.UUID, doc *interfaces.Document) error {
	if i.manager == nil {
		return ErrManagerRequired
	}
	title := strings.TrimSpace(doc.FrontMatter.Title)
	if title == "" {
		return fmt.Errorf("%w: %s", ErrTitleMissing, doc.FilePath)
	}

	_, err := i.manager.CreateBlogPost(ctx, websiteID, website.CreateBlogPostRequest{
		Title:            title,
		Slug:             doc.FrontMatter.Slug,
		Content:          string(doc.Body),
		Excerpt:          doc.FrontMatter.Excerpt,
		FeaturedImage:    doc.FrontMatter.Image,
		FeaturedImageAlt: doc.FrontMatter.ImageAlt,
		Tags:             doc.FrontMatter.Tags,
		Author:           doc.FrontMatter.Author,
		Publish:          !doc.FrontMatter.Draft,
	})
	if err != nil {
		return fmt.Errorf("import %s: %w", doc.FilePath, err)
	}
	i.logger.Info("blog post imported", "website_id", websiteID, "path", doc.FilePath, "title", title)
	return nil
}

// ImportDir walks a filesystem for *.md files and imports each in path
// order. Duplicate slugs are counted as skipped; other failures accumulate
// as errors without aborting the batch.
func (i *Importer) ImportDir(ctx context.Context, websiteID uuid.UUID, fsys fs.FS, root string) (*ImportResult, error) {
	if i.manager == nil {
		return nil, ErrManagerRequired
	}
	if root == "" {
		root = "."
	}

	var paths []string
	err := fs.WalkDir(fsys, root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("markdown importer: walk %s: %w", root, err)
	}
	sort.Strings(paths)

	result := &ImportResult{}
	for _, path := range paths {
		source, err := fs.ReadFile(fsys, path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("read %s: %w", path, err))
			continue
		}
		doc, err := BuildDocument(path, source, statModified(fsys, path))
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		if err := i.ImportDocument(ctx, websiteID, doc); err != nil {
			if errors.Is(err, website.ErrPostSlugExists) {
				result.Skipped++
				i.logger.Debug("blog post skipped, slug exists", "path", path)
				continue
			}
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Created++
	}
	return result, nil
}

func statModified(fsys fs.FS, path string) time.Time {
	info, err := fs.Stat(fsys, path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
