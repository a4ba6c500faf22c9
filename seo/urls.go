// Package seo builds locale-aware URLs and the search-engine artifacts derived
// from them: page metadata, the sitemap, robots.txt, the web manifest and
// JSON-LD documents.
package seo

import (
	"strings"

	"github.com/dimafomin/chef-site-backend/models"
)

// XDefault is the hreflang key of the fallback alternate.
const XDefault = "x-default"

// URLBuilder turns locale-free logical paths into absolute, locale-prefixed URLs.
type URLBuilder struct {
	origin string
}

func NewURLBuilder(origin string) URLBuilder {
	return URLBuilder{origin: strings.TrimRight(strings.TrimSpace(origin), "/")}
}

func (b URLBuilder) Origin() string {
	return b.origin
}

// URL returns origin + "/" + locale + path.
func (b URLBuilder) URL(locale models.Locale, path string) string {
	return b.origin + LocalPath(locale, path)
}

// LocalPath is URL without the origin.
func LocalPath(locale models.Locale, path string) string {
	return "/" + locale.String() + normalizePath(path)
}

// Absolute prefixes a site-relative path with the origin.
func (b URLBuilder) Absolute(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return b.origin + "/" + strings.TrimLeft(path, "/")
}

// RootRedirect is where the bare root path sends visitors.
func RootRedirect() string {
	return LocalPath(models.CanonicalLocale, "")
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	path = strings.TrimRight(path, "/")
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// Alternate is one hreflang annotation.
type Alternate struct {
	Hreflang string `json:"hreflang"`
	Href     string `json:"href"`
}

// URLSet is the canonical URL of a page plus its language alternates keyed by
// locale code and XDefault.
type URLSet struct {
	Canonical  string            `json:"canonical"`
	Alternates map[string]string `json:"alternates"`
}

// Ordered returns the alternates in locale registry order with XDefault last.
func (s URLSet) Ordered() []Alternate {
	out := make([]Alternate, 0, len(s.Alternates))
	for _, l := range models.SupportedLocales {
		if href, ok := s.Alternates[l.String()]; ok {
			out = append(out, Alternate{Hreflang: l.String(), Href: href})
		}
	}
	if href, ok := s.Alternates[XDefault]; ok {
		out = append(out, Alternate{Hreflang: XDefault, Href: href})
	}
	return out
}

// Build computes the URL set of a page in the current locale. A nil available
// set means the page exists in every locale.
func (b URLBuilder) Build(path string, current models.Locale, available []models.Locale) URLSet {
	locales := models.SupportedLocales
	if available != nil {
		locales = models.SortLocales(available)
	}

	set := URLSet{
		Canonical:  b.URL(current, path),
		Alternates: make(map[string]string, len(locales)+1),
	}
	for _, l := range locales {
		set.Alternates[l.String()] = b.URL(l, path)
	}
	if l, ok := XDefaultLocale(locales); ok {
		set.Alternates[XDefault] = b.URL(l, path)
	}
	return set
}

// XDefaultLocale picks the x-default target: the canonical locale when it has
// the page, otherwise the first available locale in registry order.
func XDefaultLocale(available []models.Locale) (models.Locale, bool) {
	sorted := models.SortLocales(available)
	if len(sorted) == 0 {
		return "", false
	}
	for _, l := range sorted {
		if l == models.CanonicalLocale {
			return l, true
		}
	}
	return sorted[0], true
}
