package seo

import (
	"encoding/xml"
	"io"
	"strconv"
	"time"

	"github.com/dimafomin/chef-site-backend/models"
)

const (
	sitemapNS    = "http://www.sitemaps.org/schemas/sitemap/0.9"
	xhtmlNS      = "http://www.w3.org/1999/xhtml"
	postPriority = 0.9
)

// SitemapEntry is one <url> element.
type SitemapEntry struct {
	Loc        string
	LastMod    string
	ChangeFreq models.ChangeFrequency
	Priority   float64
	Alternates []Alternate
}

// BuildSitemap lists every static page in every locale, then every post once
// per locale it exists in. posts is keyed by locale as returned by a full
// repository scan.
func BuildSitemap(b URLBuilder, posts map[models.Locale][]models.PostSummary, now time.Time) []SitemapEntry {
	today := now.UTC().Format(models.DateLayout)
	var entries []SitemapEntry

	for _, page := range models.StaticPages {
		for _, locale := range models.SupportedLocales {
			set := b.Build(page.Path, locale, nil)
			entries = append(entries, SitemapEntry{
				Loc:        set.Canonical,
				LastMod:    today,
				ChangeFreq: page.ChangeFrequency,
				Priority:   page.Priority,
				Alternates: set.Ordered(),
			})
		}
	}

	available := make(map[string][]models.Locale)
	for _, locale := range models.SupportedLocales {
		for _, p := range posts[locale] {
			available[p.Slug] = append(available[p.Slug], locale)
		}
	}

	yesterday := now.Add(-24 * time.Hour)
	for _, locale := range models.SupportedLocales {
		for _, p := range posts[locale] {
			set := b.Build(models.BlogPostPath(p.Slug), locale, available[p.Slug])
			entries = append(entries, SitemapEntry{
				Loc:        set.Canonical,
				LastMod:    lastModified(p.EffectiveDate(), yesterday),
				ChangeFreq: models.ChangeMonthly,
				Priority:   postPriority,
				Alternates: set.Ordered(),
			})
		}
	}
	return entries
}

// lastModified normalizes a post date, using fallback when it does not parse.
func lastModified(raw string, fallback time.Time) string {
	for _, layout := range []string{models.DateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(models.DateLayout)
		}
	}
	return fallback.UTC().Format(models.DateLayout)
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string      `xml:"loc"`
	LastMod    string      `xml:"lastmod,omitempty"`
	ChangeFreq string      `xml:"changefreq,omitempty"`
	Priority   string      `xml:"priority,omitempty"`
	Links      []xhtmlLink `xml:"xhtml:link"`
}

type xhtmlLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// WriteSitemap encodes entries as a sitemap with xhtml:link alternates.
func WriteSitemap(w io.Writer, entries []SitemapEntry) error {
	doc := urlset{Xmlns: sitemapNS, XHTML: xhtmlNS, URLs: make([]sitemapURL, 0, len(entries))}
	for _, e := range entries {
		u := sitemapURL{
			Loc:        e.Loc,
			LastMod:    e.LastMod,
			ChangeFreq: string(e.ChangeFreq),
			Priority:   strconv.FormatFloat(e.Priority, 'f', 1, 64),
		}
		for _, alt := range e.Alternates {
			u.Links = append(u.Links, xhtmlLink{Rel: "alternate", Hreflang: alt.Hreflang, Href: alt.Href})
		}
		doc.URLs = append(doc.URLs, u)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
