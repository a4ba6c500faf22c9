package models

import (
	"strings"

	"github.com/dimafomin/chef-site-backend/errs"
	"golang.org/x/text/language"
)

// Locale is one of the site's supported language codes. It is the unit of
// content partitioning and URL prefixing.
type Locale string

const (
	LocalePL Locale = "pl"
	LocaleEN Locale = "en"
	LocaleUK Locale = "uk"
	LocaleRU Locale = "ru"
)

// CanonicalLocale is used for the root redirect and x-default URLs.
const CanonicalLocale = LocalePL

// SupportedLocales is the closed locale set in registry order.
var SupportedLocales = []Locale{LocalePL, LocaleEN, LocaleUK, LocaleRU}

var ogLocales = map[Locale]string{
	LocalePL: "pl_PL",
	LocaleEN: "en_US",
	LocaleUK: "uk_UA",
	LocaleRU: "ru_RU",
}

// ParseLocale validates a locale code coming from a URL or CLI flag.
func ParseLocale(s string) (Locale, error) {
	l := Locale(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", errs.NewUnsupportedLocaleError(s)
	}
	return l, nil
}

func (l Locale) Valid() bool {
	_, ok := ogLocales[l]
	return ok
}

func (l Locale) String() string {
	return string(l)
}

// OpenGraph returns the og:locale value, falling back to the canonical locale's.
func (l Locale) OpenGraph() string {
	if og, ok := ogLocales[l]; ok {
		return og
	}
	return ogLocales[CanonicalLocale]
}

// Tag returns the BCP 47 language tag used for hreflang and html lang attributes.
func (l Locale) Tag() language.Tag {
	return language.Make(string(l))
}

// SortLocales orders a locale set by registry order and drops unsupported codes
// and duplicates.
func SortLocales(in []Locale) []Locale {
	seen := make(map[Locale]bool, len(in))
	for _, l := range in {
		seen[l] = true
	}
	out := make([]Locale, 0, len(in))
	for _, l := range SupportedLocales {
		if seen[l] {
			out = append(out, l)
		}
	}
	return out
}
