package content

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/dimafomin/chef-site-backend/metrics"
	"github.com/dimafomin/chef-site-backend/models"
)

// Repository answers post queries for every locale. With caching enabled all
// callers share one snapshot until Invalidate is called; without it every
// Snapshot call starts from disk.
type Repository struct {
	store   *Store
	cache   bool
	current atomic.Pointer[Snapshot]
	logger  zerolog.Logger
	metrics *metrics.Recorder
}

type RepositoryOption func(*Repository)

func WithCache(enabled bool) RepositoryOption {
	return func(r *Repository) {
		r.cache = enabled
	}
}

func WithRepositoryMetrics(m *metrics.Recorder) RepositoryOption {
	return func(r *Repository) {
		r.metrics = m
	}
}

func NewRepository(store *Store, opts ...RepositoryOption) *Repository {
	r := &Repository{
		store:  store,
		cache:  true,
		logger: log.With().Str("component", "contentRepository").Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Snapshot returns a consistent view of the content. A request handler takes
// one snapshot and answers every query from it.
func (r *Repository) Snapshot() *Snapshot {
	if !r.cache {
		return r.newSnapshot()
	}
	for {
		if snap := r.current.Load(); snap != nil {
			return snap
		}
		snap := r.newSnapshot()
		if r.current.CompareAndSwap(nil, snap) {
			return snap
		}
	}
}

// Invalidate drops the shared snapshot; the next query reloads from disk.
func (r *Repository) Invalidate() {
	r.current.Store(nil)
	r.metrics.IncCache("invalidate")
	r.logger.Debug().Msg("content cache invalidated")
}

func (r *Repository) newSnapshot() *Snapshot {
	return &Snapshot{
		store:   r.store,
		logger:  r.logger,
		metrics: r.metrics,
		lists:   make(map[models.Locale][]models.PostSummary),
		posts:   make(map[postKey]postEntry),
	}
}

func (r *Repository) GetPost(ctx context.Context, locale models.Locale, slug string) (*models.Post, error) {
	return r.Snapshot().GetPost(ctx, locale, slug)
}

func (r *Repository) ListPosts(ctx context.Context, locale models.Locale) []models.PostSummary {
	return r.Snapshot().ListPosts(ctx, locale)
}

func (r *Repository) LatestPosts(ctx context.Context, locale models.Locale, n int) []models.PostSummary {
	return r.Snapshot().LatestPosts(ctx, locale, n)
}

func (r *Repository) Categories(ctx context.Context, locale models.Locale) []string {
	return r.Snapshot().Categories(ctx, locale)
}

func (r *Repository) AvailableLocales(ctx context.Context, slug string) []models.Locale {
	return r.Snapshot().AvailableLocales(ctx, slug)
}

func (r *Repository) ListAll(ctx context.Context) map[models.Locale][]models.PostSummary {
	return r.Snapshot().ListAll(ctx)
}

type postKey struct {
	locale models.Locale
	slug   string
}

type postEntry struct {
	post *models.Post
}

// Snapshot memoizes what it loads so repeated queries agree with each other.
// Values handed out are copies.
type Snapshot struct {
	store   *Store
	logger  zerolog.Logger
	metrics *metrics.Recorder

	mu    sync.Mutex
	lists map[models.Locale][]models.PostSummary
	posts map[postKey]postEntry
}

// GetPost loads a single post with its body. There is no cross-locale fallback.
func (s *Snapshot) GetPost(ctx context.Context, locale models.Locale, slug string) (*models.Post, error) {
	key := postKey{locale, slug}

	s.mu.Lock()
	entry, ok := s.posts[key]
	s.mu.Unlock()
	if ok {
		s.metrics.IncCache("hit")
	} else {
		s.metrics.IncCache("miss")
		post, err := s.store.LoadFull(ctx, locale, slug)
		if err != nil {
			// Only successful loads are memoized.
			return nil, err
		}
		entry = s.storePost(key, postEntry{post: post})
	}

	post := *entry.post
	return &post, nil
}

func (s *Snapshot) storePost(key postKey, entry postEntry) postEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.posts[key]; ok {
		return existing
	}
	s.posts[key] = entry
	return entry
}

// ListPosts returns the locale's posts sorted by effective date, newest first.
// Posts with equal dates keep their enumeration order.
func (s *Snapshot) ListPosts(ctx context.Context, locale models.Locale) []models.PostSummary {
	return slices.Clone(s.sorted(ctx, locale))
}

func (s *Snapshot) sorted(ctx context.Context, locale models.Locale) []models.PostSummary {
	s.mu.Lock()
	list, ok := s.lists[locale]
	s.mu.Unlock()
	if ok {
		s.metrics.IncCache("hit")
		return list
	}
	s.metrics.IncCache("miss")

	list = s.store.LoadSummaries(ctx, locale)
	if ctx.Err() != nil {
		return list
	}
	SortByDate(list)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.lists[locale]; ok {
		return existing
	}
	s.lists[locale] = list
	return list
}

// LatestPosts returns at most n of the newest posts.
func (s *Snapshot) LatestPosts(ctx context.Context, locale models.Locale, n int) []models.PostSummary {
	if n <= 0 {
		return []models.PostSummary{}
	}
	list := s.sorted(ctx, locale)
	if n > len(list) {
		n = len(list)
	}
	return slices.Clone(list[:n])
}

// Categories returns the distinct categories used in a locale, sorted.
func (s *Snapshot) Categories(ctx context.Context, locale models.Locale) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, p := range s.sorted(ctx, locale) {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out
}

// AvailableLocales lists, in registry order, the locales that have the slug.
func (s *Snapshot) AvailableLocales(ctx context.Context, slug string) []models.Locale {
	out := []models.Locale{}
	if !validSlug(slug) {
		return out
	}
	for _, locale := range models.SupportedLocales {
		if slices.ContainsFunc(s.sorted(ctx, locale), func(p models.PostSummary) bool { return p.Slug == slug }) {
			out = append(out, locale)
		}
	}
	return out
}

// ListAll scans every locale concurrently. A locale that fails to load is
// reported as empty without affecting the others.
func (s *Snapshot) ListAll(ctx context.Context) map[models.Locale][]models.PostSummary {
	results := make([][]models.PostSummary, len(models.SupportedLocales))

	g, gctx := errgroup.WithContext(ctx)
	for i, locale := range models.SupportedLocales {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.ListPosts(gctx, locale)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn().Err(err).Msg("listing all locales interrupted")
	}

	out := make(map[models.Locale][]models.PostSummary, len(results))
	for i, locale := range models.SupportedLocales {
		if results[i] == nil {
			results[i] = []models.PostSummary{}
		}
		out[locale] = results[i]
	}
	return out
}

// SortByDate stably orders posts by effective date, newest first. Dates are
// compared as strings, which orders ISO dates chronologically.
func SortByDate(posts []models.PostSummary) {
	slices.SortStableFunc(posts, func(a, b models.PostSummary) int {
		return strings.Compare(b.EffectiveDate(), a.EffectiveDate())
	})
}
