// Package content reads localized blog posts from a directory tree laid out as
// {locale}/blog/{slug}{ext} and serves ordered, cached listings over it.
package content

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dimafomin/chef-site-backend/errs"
	"github.com/dimafomin/chef-site-backend/frontmatter"
	"github.com/dimafomin/chef-site-backend/metrics"
	"github.com/dimafomin/chef-site-backend/models"
)

// DefaultExtensions are tried in order; the first match wins when a slug has
// files with several extensions.
var DefaultExtensions = []string{".mdx", ".md"}

const blogDir = "blog"

// Store is a read-only view of one content tree. It never caches.
type Store struct {
	fsys       fs.FS
	extensions []string
	now        func() time.Time
	logger     zerolog.Logger
	metrics    *metrics.Recorder
}

type StoreOption func(*Store)

func WithExtensions(exts ...string) StoreOption {
	return func(s *Store) {
		cleaned := make([]string, 0, len(exts))
		for _, e := range exts {
			e = strings.TrimSpace(e)
			if e == "" {
				continue
			}
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			cleaned = append(cleaned, e)
		}
		if len(cleaned) > 0 {
			s.extensions = cleaned
		}
	}
}

// WithClock sets the source of "today" used for posts without a date.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Recorder) StoreOption {
	return func(s *Store) {
		s.metrics = m
	}
}

// NewStore creates a store over fsys, whose root holds one directory per locale.
func NewStore(fsys fs.FS, opts ...StoreOption) *Store {
	s := &Store{
		fsys:       fsys,
		extensions: DefaultExtensions,
		now:        time.Now,
		logger:     log.With().Str("component", "contentStore").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListSlugs returns the slugs of a locale in lexical file name order. A
// missing locale directory is an empty locale, not an error.
func (s *Store) ListSlugs(ctx context.Context, locale models.Locale) ([]string, error) {
	if !locale.Valid() {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(s.fsys, path.Join(string(locale), blogDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errs.NewContentReadError(path.Join(string(locale), blogDir), err)
	}

	seen := make(map[string]bool, len(entries))
	slugs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		slug, ok := s.slugOf(entry.Name())
		if !ok || seen[slug] {
			continue
		}
		seen[slug] = true
		slugs = append(slugs, slug)
	}
	return slugs, nil
}

// LoadSummary reads a post's metadata with defaults applied.
func (s *Store) LoadSummary(ctx context.Context, locale models.Locale, slug string) (models.PostSummary, error) {
	post, err := s.load(ctx, locale, slug, "summary")
	if err != nil {
		return models.PostSummary{}, err
	}
	return post.PostSummary, nil
}

// LoadFull reads a post's metadata and body. A missing file yields an error
// matching errs.ErrNotFound.
func (s *Store) LoadFull(ctx context.Context, locale models.Locale, slug string) (*models.Post, error) {
	return s.load(ctx, locale, slug, "full")
}

// LoadSummaries loads every post of a locale in enumeration order. Files that
// cannot be read are logged and skipped so one bad file never hides the rest.
func (s *Store) LoadSummaries(ctx context.Context, locale models.Locale) []models.PostSummary {
	summaries, err := s.scan(ctx, locale)
	if err != nil {
		s.logger.Error().Err(err).Str("locale", locale.String()).Msg("listing posts failed")
		return []models.PostSummary{}
	}
	return summaries
}

func (s *Store) scan(ctx context.Context, locale models.Locale) ([]models.PostSummary, error) {
	start := s.now()
	defer func() { s.metrics.ObserveScan(locale.String(), s.now().Sub(start)) }()

	slugs, err := s.ListSlugs(ctx, locale)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.PostSummary, 0, len(slugs))
	for _, slug := range slugs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		summary, err := s.LoadSummary(ctx, locale, slug)
		if err != nil {
			s.logger.Warn().Err(err).
				Str("locale", locale.String()).
				Str("slug", slug).
				Msg("skipping unreadable post")
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Exists reports whether a post file exists for the slug in the locale.
func (s *Store) Exists(locale models.Locale, slug string) bool {
	if !locale.Valid() || !validSlug(slug) {
		return false
	}
	for _, ext := range s.extensions {
		if info, err := fs.Stat(s.fsys, s.filePath(locale, slug, ext)); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

func (s *Store) load(ctx context.Context, locale models.Locale, slug, view string) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !locale.Valid() || !validSlug(slug) {
		s.metrics.IncContentLoad(locale.String(), view, metrics.ResultNotFound)
		return nil, errs.NewPostNotFound(locale.String(), slug)
	}

	raw, file, err := s.readFile(locale, slug)
	if err != nil {
		if errs.IsNotFound(err) {
			s.metrics.IncContentLoad(locale.String(), view, metrics.ResultNotFound)
		} else {
			s.metrics.IncContentLoad(locale.String(), view, metrics.ResultError)
			s.metrics.IncReadFailure(locale.String())
		}
		return nil, err
	}

	parsed := frontmatter.Parse(raw)
	if parsed.Warning != nil {
		s.metrics.IncParseWarning(locale.String())
		s.logger.Warn().Err(parsed.Warning).Str("file", file).Msg("ignoring post metadata")
	}

	post := &models.Post{
		PostSummary: s.summarize(locale, slug, file, parsed.Metadata),
	}
	if view == "full" {
		post.Content = parsed.Body
	}
	s.metrics.IncContentLoad(locale.String(), view, metrics.ResultOK)
	return post, nil
}

func (s *Store) readFile(locale models.Locale, slug string) ([]byte, string, error) {
	for _, ext := range s.extensions {
		file := s.filePath(locale, slug, ext)
		raw, err := fs.ReadFile(s.fsys, file)
		if err == nil {
			return raw, file, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return nil, file, errs.NewContentReadError(file, err)
	}
	return nil, "", errs.NewPostNotFound(locale.String(), slug)
}

func (s *Store) summarize(locale models.Locale, slug, file string, meta map[string]any) models.PostSummary {
	summary := models.PostSummary{
		Locale:   locale,
		Slug:     slug,
		Title:    models.DefaultTitle,
		Date:     s.now().UTC().Format(models.DateLayout),
		Category: models.DefaultCategory,
	}
	if v, ok := frontmatter.String(meta, "title"); ok && v != "" {
		summary.Title = v
	}
	if v, ok := frontmatter.String(meta, "date"); ok && v != "" {
		summary.Date = v
	}
	if v, ok := frontmatter.String(meta, "category"); ok && v != "" {
		summary.Category = v
	}
	summary.Excerpt, _ = frontmatter.String(meta, "excerpt")
	summary.PublishedAt, _ = frontmatter.String(meta, "publishedAt")
	summary.ReadTime, _ = frontmatter.String(meta, "readTime")
	summary.CoverImage, _ = frontmatter.String(meta, "coverImage")
	summary.Series, _ = frontmatter.String(meta, "series")
	if n, ok := frontmatter.Int(meta, "seriesOrder"); ok && n > 0 {
		summary.SeriesOrder = n
	}
	if v, ok := frontmatter.String(meta, "level"); ok {
		level, known := models.ParseLevel(v)
		if !known {
			s.logger.Warn().Str("file", file).Str("level", v).Msg("unknown post level")
		}
		summary.Level = level
	}
	return summary
}

func (s *Store) slugOf(name string) (string, bool) {
	for _, ext := range s.extensions {
		if strings.HasSuffix(name, ext) {
			slug := strings.TrimSuffix(name, ext)
			return slug, validSlug(slug)
		}
	}
	return "", false
}

func (s *Store) filePath(locale models.Locale, slug, ext string) string {
	return path.Join(string(locale), blogDir, slug+ext)
}

// validSlug accepts a single path element only.
func validSlug(slug string) bool {
	return slug != "" && slug != "." && !strings.ContainsAny(slug, `/\`) && fs.ValidPath(slug)
}
