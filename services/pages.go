package services

import (
	"context"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dimafomin/chef-site-backend/content"
	"github.com/dimafomin/chef-site-backend/errs"
	"github.com/dimafomin/chef-site-backend/i18n"
	"github.com/dimafomin/chef-site-backend/markdown"
	"github.com/dimafomin/chef-site-backend/models"
	"github.com/dimafomin/chef-site-backend/search"
	"github.com/dimafomin/chef-site-backend/seo"
)

// HomeLatestPosts is how many posts the home page shows.
const HomeLatestPosts = 3

// PageDoc is the part shared by every page document.
type PageDoc struct {
	Locale   models.Locale `json:"locale"`
	Metadata seo.Metadata  `json:"metadata"`
	JSONLD   []any         `json:"jsonLd,omitempty"`
}

type HomePage struct {
	PageDoc
	LatestPosts []models.PostSummary `json:"latestPosts"`
}

type BlogIndexPage struct {
	PageDoc
	Posts      []models.PostSummary `json:"posts"`
	Categories []search.Chip        `json:"categories"`
	Category   string               `json:"category"`
	Query      string               `json:"query"`
	Total      int                  `json:"total"`
	Filtered   int                  `json:"filtered"`
	NoResults  bool                 `json:"noResults"`
}

type PostView struct {
	models.Post
	HTML          string             `json:"html"`
	Headings      []markdown.Heading `json:"headings"`
	CategoryLabel string             `json:"categoryLabel"`
	CategoryEmoji string             `json:"categoryEmoji,omitempty"`
}

type PostPage struct {
	PageDoc
	Post             PostView        `json:"post"`
	AvailableLocales []models.Locale `json:"availableLocales"`
	Share            []ShareLink     `json:"share"`
	MoreFromCategory string          `json:"moreFromCategory"`
	BackToBlog       string          `json:"backToBlog"`
}

type NotFoundPage struct {
	PageDoc
	BackToBlog string `json:"backToBlog"`
}

type StaticPage struct {
	PageDoc
	Page string `json:"page"`
}

// PageService assembles page documents. Every document is built from a
// single content snapshot.
type PageService struct {
	repo     *content.Repository
	catalog  *i18n.Catalog
	seo      seo.Generator
	markdown *markdown.Renderer
	logger   zerolog.Logger
	pinned   *content.Snapshot
}

func NewPageService(repo *content.Repository, catalog *i18n.Catalog, gen seo.Generator, md *markdown.Renderer) *PageService {
	return &PageService{
		repo:     repo,
		catalog:  catalog,
		seo:      gen,
		markdown: md,
		logger:   log.With().Str("component", "pageService").Logger(),
	}
}

// Pinned returns a copy of the service that answers every call from one
// snapshot taken now.
func (s *PageService) Pinned() *PageService {
	c := *s
	c.pinned = s.repo.Snapshot()
	return &c
}

func (s *PageService) snapshot() *content.Snapshot {
	if s.pinned != nil {
		return s.pinned
	}
	return s.repo.Snapshot()
}

func (s *PageService) SEO() seo.Generator {
	return s.seo
}

func (s *PageService) Catalog() *i18n.Catalog {
	return s.catalog
}

func (s *PageService) Home(ctx context.Context, locale models.Locale) HomePage {
	snap := s.snapshot()
	doc := s.staticDoc(locale, models.HomePage)
	doc.JSONLD = []any{s.seo.Person()}
	return HomePage{
		PageDoc:     doc,
		LatestPosts: snap.LatestPosts(ctx, locale, HomeLatestPosts),
	}
}

// BlogIndex lists a locale's posts narrowed by category and query.
func (s *PageService) BlogIndex(ctx context.Context, locale models.Locale, category, query string) BlogIndexPage {
	snap := s.snapshot()
	all := snap.ListPosts(ctx, locale)
	filtered := search.Filter(all, category, query)

	doc := s.staticDoc(locale, models.BlogPage)
	doc.JSONLD = []any{s.seo.Blog(locale, s.catalog.T(locale, "metadata.blog.description"))}

	if category == "" {
		category = models.AllCategories
	}
	return BlogIndexPage{
		PageDoc: doc,
		Posts:   filtered,
		Categories: search.Chips(all, func(c models.Category) string {
			return s.catalog.CategoryLabel(locale, c)
		}),
		Category:  category,
		Query:     query,
		Total:     len(all),
		Filtered:  len(filtered),
		NoResults: len(filtered) == 0 && len(all) > 0,
	}
}

// Post builds a post page. A post missing in this locale is an error matching
// errs.ErrNotFound, even if other locales have it.
func (s *PageService) Post(ctx context.Context, locale models.Locale, slug string) (PostPage, error) {
	snap := s.snapshot()
	post, err := snap.GetPost(ctx, locale, slug)
	if err != nil {
		return PostPage{}, err
	}
	available := snap.AvailableLocales(ctx, slug)

	html, err := s.markdown.Render(post.Content)
	if err != nil {
		return PostPage{}, errs.NewInternalErrorWithCause("rendering post", err)
	}

	view := PostView{
		Post:          *post,
		HTML:          html,
		Headings:      s.markdown.Headings(post.Content),
		CategoryLabel: post.Category,
	}
	if c, ok := models.LookupCategory(post.Category); ok {
		view.CategoryLabel = s.catalog.CategoryLabel(locale, c)
		view.CategoryEmoji = c.Emoji
	}

	urls := s.seo.URLs()
	canonical := urls.URL(locale, models.BlogPostPath(slug))
	return PostPage{
		PageDoc: PageDoc{
			Locale:   locale,
			Metadata: s.seo.Post(post.PostSummary, available),
			JSONLD:   []any{s.seo.BlogPosting(post.PostSummary, available)},
		},
		Post:             view,
		AvailableLocales: available,
		Share:            ShareLinks(canonical, post.Title, post.Category),
		MoreFromCategory: seo.LocalPath(locale, models.BlogPage.Path) + "?" + url.Values{"category": {post.Category}}.Encode(),
		BackToBlog:       seo.LocalPath(locale, models.BlogPage.Path),
	}, nil
}

// PostNotFound is the document served with a 404 for a missing post.
func (s *PageService) PostNotFound(locale models.Locale, slug string) NotFoundPage {
	return NotFoundPage{
		PageDoc: PageDoc{
			Locale: locale,
			Metadata: s.seo.Page(seo.PageInput{
				Title:       s.catalog.T(locale, "metadata.notFound.title"),
				Description: s.catalog.T(locale, "metadata.notFound.description"),
				Locale:      locale,
				Path:        models.BlogPostPath(slug),
				Available:   []models.Locale{locale},
				NoIndex:     true,
			}),
		},
		BackToBlog: seo.LocalPath(locale, models.BlogPage.Path),
	}
}

// Static builds one of the static pages, including demos.
func (s *PageService) Static(locale models.Locale, page models.Page) StaticPage {
	doc := s.staticDoc(locale, page)
	if page.Path == models.AboutPage.Path {
		doc.JSONLD = []any{s.seo.Person()}
	}
	return StaticPage{PageDoc: doc, Page: page.MessageKey}
}

func (s *PageService) staticDoc(locale models.Locale, page models.Page) PageDoc {
	prefix := "metadata"
	if page.MessageKey != "" {
		prefix += "." + page.MessageKey
	}
	return PageDoc{
		Locale: locale,
		Metadata: s.seo.Page(seo.PageInput{
			Title:       s.catalog.T(locale, prefix+".title"),
			Description: s.catalog.T(locale, prefix+".description"),
			Locale:      locale,
			Path:        page.Path,
		}),
	}
}

// Sitemap lists every page URL of the site.
func (s *PageService) Sitemap(ctx context.Context, now time.Time) []seo.SitemapEntry {
	return seo.BuildSitemap(s.seo.URLs(), s.snapshot().ListAll(ctx), now)
}
