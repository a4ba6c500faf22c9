package services

import (
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimafomin/chef-site-backend/content"
	"github.com/dimafomin/chef-site-backend/errs"
	"github.com/dimafomin/chef-site-backend/i18n"
	"github.com/dimafomin/chef-site-backend/markdown"
	"github.com/dimafomin/chef-site-backend/metrics"
	"github.com/dimafomin/chef-site-backend/models"
	"github.com/dimafomin/chef-site-backend/seo"
)

var fixedNow = time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

func testContent() fstest.MapFS {
	return fstest.MapFS{
		"pl/blog/ryz.mdx":    {Data: []byte("---\ntitle: Ryż do sushi\ndate: 2026-03-01\ncategory: Sushi Mastery\nexcerpt: Proporcje ryżu\n---\n## Proporcje\n\nTekst\n")},
		"pl/blog/noze.mdx":   {Data: []byte("---\ntitle: Noże\ndate: 2026-02-01\ncategory: Kitchen Tech\n---\nTekst\n")},
		"pl/blog/ai.mdx":     {Data: []byte("---\ntitle: AI w kuchni\ndate: 2026-01-15\ncategory: AI & Tech\n---\nTekst\n")},
		"pl/blog/stary.mdx":  {Data: []byte("---\ntitle: Stary wpis\ndate: 2025-01-01\n---\nTekst\n")},
		"en/blog/ryz.mdx":    {Data: []byte("---\ntitle: Sushi Rice\ndate: 2026-03-01\ncategory: Sushi Mastery\nexcerpt: Rice ratios\n---\nText\n")},
		"en/blog/en-only.md": {Data: []byte("---\ntitle: English only\ndate: 2026-03-05\n---\nText\n")},
	}
}

func newPageService(t *testing.T, fsys fstest.MapFS) *PageService {
	t.Helper()
	catalog, err := i18n.Default()
	require.NoError(t, err)
	store := content.NewStore(fsys, content.WithClock(func() time.Time { return fixedNow }))
	return NewPageService(content.NewRepository(store), catalog, seo.NewGenerator(seo.DefaultSite()), markdown.NewRenderer())
}

func TestFormatHashtag(t *testing.T) {
	assert.Equal(t, "kitchentech", FormatHashtag("Kitchen Tech"))
	assert.Equal(t, "aitech", FormatHashtag("AI & Tech"))
	assert.Equal(t, "", FormatHashtag("2026 plans"))
	assert.Equal(t, "", FormatHashtag("  "))
}

func TestShareLinks(t *testing.T) {
	links := ShareLinks("https://dima-fomin.pl/pl/blog/ryz", "Ryż do sushi", "Sushi Mastery")
	require.Len(t, links, 4)

	u, err := url.Parse(links[0].URL)
	require.NoError(t, err)
	assert.Equal(t, "x", links[0].Network)
	assert.Equal(t, "https://dima-fomin.pl/pl/blog/ryz", u.Query().Get("url"))
	assert.Equal(t, "Ryż do sushi", u.Query().Get("text"))
	assert.Equal(t, "sushimastery", u.Query().Get("hashtags"))

	assert.Nil(t, ShareLinks("", "x", "y"))
}

func TestHome_LatestThree(t *testing.T) {
	s := newPageService(t, testContent())

	home := s.Home(context.Background(), models.LocalePL)
	require.Len(t, home.LatestPosts, HomeLatestPosts)
	assert.Equal(t, "ryz", home.LatestPosts[0].Slug)
	assert.Equal(t, "https://dima-fomin.pl/pl", home.Metadata.Canonical)
	assert.Equal(t, "Szef kuchni sushi i technolog | Dima Fomin", home.Metadata.Title)

	empty := s.Home(context.Background(), models.LocaleUK)
	assert.NotNil(t, empty.LatestPosts)
	assert.Empty(t, empty.LatestPosts)
}

func TestBlogIndex_FiltersAndCounts(t *testing.T) {
	s := newPageService(t, testContent())
	ctx := context.Background()

	all := s.BlogIndex(ctx, models.LocalePL, "", "")
	assert.Equal(t, 4, all.Total)
	assert.Equal(t, 4, all.Filtered)
	assert.Equal(t, models.AllCategories, all.Category)
	assert.Equal(t, "all", all.Categories[0].Key)

	byCategory := s.BlogIndex(ctx, models.LocalePL, "Kitchen Tech", "")
	require.Len(t, byCategory.Posts, 1)
	assert.Equal(t, "noze", byCategory.Posts[0].Slug)

	none := s.BlogIndex(ctx, models.LocalePL, models.AllCategories, "tempura")
	assert.True(t, none.NoResults)
	assert.Empty(t, none.Posts)

	emptyLocale := s.BlogIndex(ctx, models.LocaleRU, "", "")
	assert.False(t, emptyLocale.NoResults)
	assert.Zero(t, emptyLocale.Total)
}

func TestPost_RendersAndLinksTranslations(t *testing.T) {
	s := newPageService(t, testContent())

	page, err := s.Post(context.Background(), models.LocalePL, "ryz")
	require.NoError(t, err)
	assert.Contains(t, page.Post.HTML, `<h2 id="proporcje">Proporcje</h2>`)
	assert.Equal(t, []markdown.Heading{{Level: 2, ID: "proporcje", Text: "Proporcje"}}, page.Post.Headings)
	assert.Equal(t, "Mistrzostwo sushi", page.Post.CategoryLabel)
	assert.Equal(t, "🍣", page.Post.CategoryEmoji)
	assert.Equal(t, []models.Locale{models.LocalePL, models.LocaleEN}, page.AvailableLocales)
	assert.Equal(t, "/pl/blog?category=Sushi+Mastery", page.MoreFromCategory)
	assert.Equal(t, "article", page.Metadata.OpenGraph.Type)
	assert.Len(t, page.Share, 4)
	require.Len(t, page.JSONLD, 1)
}

func TestPost_NoCrossLocaleFallback(t *testing.T) {
	s := newPageService(t, testContent())

	_, err := s.Post(context.Background(), models.LocalePL, "en-only")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))

	notFound := s.PostNotFound(models.LocalePL, "en-only")
	assert.False(t, notFound.Metadata.Robots.Index)
	assert.Equal(t, "/pl/blog", notFound.BackToBlog)
}

func TestStatic(t *testing.T) {
	s := newPageService(t, testContent())

	page := s.Static(models.LocaleEN, models.Demos[models.DemoRestaurantAI])
	assert.Equal(t, "restaurantai", page.Page)
	assert.Equal(t, "https://dima-fomin.pl/en/demos/restaurant-ai", page.Metadata.Canonical)
	assert.Equal(t, "Demo: Restaurant AI | Dima Fomin", page.Metadata.Title)
}

func TestExporter_BuildAndWrite(t *testing.T) {
	s := newPageService(t, testContent())
	artifacts, err := NewExporter(s, func() time.Time { return fixedNow }).Build(context.Background())
	require.NoError(t, err)

	paths := make([]string, len(artifacts))
	for i, a := range artifacts {
		paths[i] = a.Path
	}
	require.True(t, sort.StringsAreSorted(paths))
	for _, p := range []string{
		"sitemap.xml", "robots.txt", "manifest.webmanifest",
		"pl/index.json", "pl/blog/index.json", "pl/blog/ryz.json", "pl/about.json",
		"pl/demos/sushi-delivery.json", "en/blog/en-only.json", "ru/blog/index.json",
	} {
		assert.Contains(t, paths, p)
	}
	assert.NotContains(t, paths, "pl/blog/en-only.json")

	// 4 locales x (home + blog index + 5 static pages) + 3 SEO files + 6 posts.
	assert.Len(t, artifacts, 4*7+3+6)

	dir := t.TempDir()
	require.NoError(t, WriteDir(dir, artifacts))
	body, err := os.ReadFile(filepath.Join(dir, "pl", "blog", "ryz.json"))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"slug": "ryz"`)
}

type fakeS3 struct {
	mu   sync.Mutex
	keys map[string]string
	fail string
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	key := aws.ToString(in.Key)
	if f.fail != "" && strings.HasSuffix(key, f.fail) {
		return nil, errors.New("access denied")
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys[key] = string(body)
	return &s3.PutObjectOutput{}, nil
}

func TestPublisher_UploadsEveryArtifact(t *testing.T) {
	s := newPageService(t, testContent())
	client := &fakeS3{keys: map[string]string{}}
	p := NewPublisher(NewExporter(s, func() time.Time { return fixedNow }), client, "bucket", "site", metrics.NewRecorder(nil))

	require.NoError(t, p.Publish(context.Background()))
	assert.Contains(t, client.keys, "site/sitemap.xml")
	assert.Contains(t, client.keys["site/robots.txt"], "Sitemap:")
	assert.Len(t, client.keys, 4*7+3+6)
}

func TestPublisher_Failure(t *testing.T) {
	client := &fakeS3{keys: map[string]string{}, fail: "robots.txt"}
	p := NewPublisher(nil, client, "bucket", "", nil)

	err := p.Upload(context.Background(), []Artifact{{Path: "robots.txt", Body: []byte("x")}})
	require.Error(t, err)
	assert.True(t, errs.IsPublishError(err))
}

func TestScheduler_RunsJob(t *testing.T) {
	var runs atomic.Int32
	s, err := NewScheduler(context.Background(), "20ms", "test", func(context.Context) error {
		runs.Add(1)
		return nil
	})
	require.NoError(t, err)
	s.Start()
	defer func() { require.NoError(t, s.Stop()) }()

	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	_, err := NewScheduler(context.Background(), "every tuesday", "test", func(context.Context) error { return nil })
	require.Error(t, err)
	assert.True(t, errs.IsConfigError(err))

	_, err = NewScheduler(context.Background(), "-1h", "test", func(context.Context) error { return nil })
	assert.True(t, errs.IsConfigError(err))
}
