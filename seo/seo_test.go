package seo

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimafomin/chef-site-backend/models"
)

const origin = "https://dima-fomin.pl"

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestURL(t *testing.T) {
	b := NewURLBuilder(origin + "/")

	assert.Equal(t, "https://dima-fomin.pl/pl", b.URL(models.LocalePL, ""))
	assert.Equal(t, "https://dima-fomin.pl/en/blog", b.URL(models.LocaleEN, "/blog/"))
	assert.Equal(t, "https://dima-fomin.pl/uk/about", b.URL(models.LocaleUK, "about"))
	assert.Equal(t, "/pl", RootRedirect())
}

func TestBuild_AlternatesExactlyAvailablePlusXDefault(t *testing.T) {
	b := NewURLBuilder(origin)

	set := b.Build("/blog/my-post", models.LocaleEN, []models.Locale{models.LocalePL, models.LocaleEN})
	require.ElementsMatch(t, []string{"pl", "en", "x-default"}, keys(set.Alternates))
	require.Equal(t, "https://dima-fomin.pl/en/blog/my-post", set.Canonical)
	require.Equal(t, "https://dima-fomin.pl/pl/blog/my-post", set.Alternates[XDefault])
}

func TestBuild_NilAvailableMeansAllLocales(t *testing.T) {
	set := NewURLBuilder(origin).Build("/about", models.LocaleRU, nil)

	require.ElementsMatch(t, []string{"pl", "en", "uk", "ru", "x-default"}, keys(set.Alternates))
	require.Equal(t, []string{"pl", "en", "uk", "ru", "x-default"}, hreflangs(set.Ordered()))
}

func TestBuild_XDefaultFallsBackWhenCanonicalMissing(t *testing.T) {
	b := NewURLBuilder(origin)

	set := b.Build("/blog/ru-en", models.LocaleRU, []models.Locale{models.LocaleRU, models.LocaleEN})
	require.Equal(t, "https://dima-fomin.pl/en/blog/ru-en", set.Alternates[XDefault])

	empty := b.Build("/blog/ghost", models.LocaleEN, []models.Locale{})
	require.Empty(t, empty.Alternates)
}

func hreflangs(alts []Alternate) []string {
	out := make([]string, len(alts))
	for i, a := range alts {
		out[i] = a.Hreflang
	}
	return out
}

func TestPageMetadata(t *testing.T) {
	g := NewGenerator(DefaultSite())

	md := g.Page(PageInput{Title: "Blog", Description: "Posts", Locale: models.LocaleUK, Path: "/blog"})
	assert.Equal(t, "Blog | Dima Fomin", md.Title)
	assert.Equal(t, "https://dima-fomin.pl/uk/blog", md.Canonical)
	assert.Equal(t, "uk_UA", md.OpenGraph.Locale)
	assert.Equal(t, "website", md.OpenGraph.Type)
	assert.Equal(t, "Dima Fomin - Sushi Chef", md.OpenGraph.SiteName)
	assert.Equal(t, Image{URL: DefaultSite().DefaultImage, Width: 1200, Height: 630, Alt: "Blog"}, md.OpenGraph.Images[0])
	assert.Equal(t, "summary_large_image", md.Twitter.Card)
	assert.True(t, md.Robots.Index)
	assert.Equal(t, "large", md.Robots.GoogleBot.MaxImagePreview)
	assert.Equal(t, "uk", md.Lang)
}

func TestPostMetadata(t *testing.T) {
	g := NewGenerator(DefaultSite())
	post := models.PostSummary{
		Locale: models.LocaleEN, Slug: "knives", Title: "Knives", Excerpt: "Sharp",
		Date: "2026-01-01", PublishedAt: "2026-01-03", CoverImage: "/images/knife.jpg",
	}

	md := g.Post(post, []models.Locale{models.LocaleEN})
	assert.Equal(t, "article", md.OpenGraph.Type)
	assert.Equal(t, "2026-01-03", md.OpenGraph.PublishedTime)
	assert.Equal(t, "https://dima-fomin.pl/images/knife.jpg", md.OpenGraph.Images[0].URL)
	assert.Equal(t, []string{"en", "x-default"}, hreflangs(md.Alternates))
	assert.Equal(t, "https://dima-fomin.pl/en/blog/knives", md.Alternates[1].Href)
}

func TestBuildSitemap_Counts(t *testing.T) {
	b := NewURLBuilder(origin)
	now := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)
	posts := map[models.Locale][]models.PostSummary{
		models.LocalePL: {
			{Locale: models.LocalePL, Slug: "shared", Date: "2026-01-01"},
			{Locale: models.LocalePL, Slug: "pl-only", Date: "not a date"},
		},
		models.LocaleEN: {{Locale: models.LocaleEN, Slug: "shared", Date: "2026-01-02"}},
		models.LocaleRU: {{Locale: models.LocaleRU, Slug: "ru-only", Date: "2026-02-01T10:00:00Z"}},
	}

	entries := BuildSitemap(b, posts, now)
	require.Len(t, entries, len(models.StaticPages)*len(models.SupportedLocales)+4)

	byLoc := make(map[string]SitemapEntry, len(entries))
	for _, e := range entries {
		byLoc[e.Loc] = e
	}

	shared := byLoc["https://dima-fomin.pl/en/blog/shared"]
	assert.Equal(t, "2026-01-02", shared.LastMod)
	assert.Equal(t, []string{"pl", "en", "x-default"}, hreflangs(shared.Alternates))
	assert.Equal(t, models.ChangeMonthly, shared.ChangeFreq)

	assert.Equal(t, "2026-05-01", byLoc["https://dima-fomin.pl/pl/blog/pl-only"].LastMod)

	ruOnly := byLoc["https://dima-fomin.pl/ru/blog/ru-only"]
	assert.Equal(t, "2026-02-01", ruOnly.LastMod)
	assert.Equal(t, "https://dima-fomin.pl/ru/blog/ru-only", ruOnly.Alternates[len(ruOnly.Alternates)-1].Href)

	home := byLoc["https://dima-fomin.pl/en"]
	assert.InDelta(t, 1.0, home.Priority, 0)
	assert.Equal(t, models.ChangeWeekly, home.ChangeFreq)
}

func TestWriteSitemap(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSitemap(&buf, []SitemapEntry{{
		Loc: "https://dima-fomin.pl/pl", LastMod: "2026-01-01", ChangeFreq: models.ChangeWeekly, Priority: 1,
		Alternates: []Alternate{{Hreflang: "pl", Href: "https://dima-fomin.pl/pl"}},
	}})
	require.NoError(t, err)

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "<?xml"))
	require.Contains(t, out, `xmlns:xhtml="http://www.w3.org/1999/xhtml"`)
	require.Contains(t, out, "<loc>https://dima-fomin.pl/pl</loc>")
	require.Contains(t, out, "<priority>1.0</priority>")
	require.Contains(t, out, `<xhtml:link rel="alternate" hreflang="pl" href="https://dima-fomin.pl/pl"></xhtml:link>`)
}

func TestRobotsTxt(t *testing.T) {
	require.Contains(t, RobotsTxt(NewURLBuilder(origin)), "Sitemap: https://dima-fomin.pl/sitemap.xml\n")
}

func TestJSONLD(t *testing.T) {
	g := NewGenerator(DefaultSite())

	person := g.Person()
	assert.Equal(t, "https://schema.org", person.Context)
	assert.Equal(t, "Sushi Chef & Food Technologist", person.JobTitle)

	blog := g.Blog(models.LocaleEN, "Articles")
	assert.Equal(t, "https://dima-fomin.pl/en/blog", blog.URL)
	assert.Empty(t, blog.Author.Context)

	posting := g.BlogPosting(models.PostSummary{Locale: models.LocalePL, Slug: "ryż", Title: "Ryż", Date: "2026-01-01"},
		[]models.Locale{models.LocaleEN, models.LocalePL})
	assert.Equal(t, "https://dima-fomin.pl/pl/blog/ryż", posting.URL)
	assert.Equal(t, []string{"https://dima-fomin.pl/en/blog/ryż"}, posting.WorkTranslation)
	assert.Equal(t, DefaultSite().DefaultImage, posting.Image)
}

func TestManifest(t *testing.T) {
	m := NewManifest(DefaultSite())
	assert.Equal(t, "Dima Fomin | Sushi Chef & Technologist", m.Name)
	assert.Equal(t, "#ef4444", m.ThemeColor)
	assert.Equal(t, "standalone", m.Display)
}
