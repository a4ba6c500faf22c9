// Package i18n holds the translated UI and metadata strings for every locale.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/dimafomin/chef-site-backend/errs"
	"github.com/dimafomin/chef-site-backend/models"
)

//go:embed messages/*.json
var embedded embed.FS

// Catalog maps dotted message keys ("metadata.blog.title") to strings per locale.
type Catalog struct {
	messages map[models.Locale]map[string]string
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "messages")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// Load reads {locale}.json for every supported locale from fsys. The canonical
// locale's file is required; other locales fall back to it key by key.
func Load(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{messages: make(map[models.Locale]map[string]string, len(models.SupportedLocales))}
	for _, locale := range models.SupportedLocales {
		name := locale.String() + ".json"
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && locale != models.CanonicalLocale {
				log.Warn().Str("locale", locale.String()).Msg("no messages for locale, using canonical locale")
				continue
			}
			return nil, errs.NewConfigSourceError(name, err)
		}

		var tree map[string]any
		if err := json.Unmarshal(raw, &tree); err != nil {
			return nil, errs.NewConfigSourceError(name, fmt.Errorf("decode messages: %w", err))
		}
		flat := make(map[string]string)
		flatten("", tree, flat)
		c.messages[locale] = flat
	}
	return c, nil
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch t := v.(type) {
		case string:
			out[key] = t
		case map[string]any:
			flatten(key, t, out)
		}
	}
}

// T returns the message for key in locale, then in the canonical locale, and
// finally the key itself.
func (c *Catalog) T(locale models.Locale, key string) string {
	if msg, ok := c.lookup(locale, key); ok {
		return msg
	}
	if msg, ok := c.lookup(models.CanonicalLocale, key); ok {
		return msg
	}
	return key
}

// Has reports whether locale defines key without falling back.
func (c *Catalog) Has(locale models.Locale, key string) bool {
	_, ok := c.lookup(locale, key)
	return ok
}

func (c *Catalog) lookup(locale models.Locale, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	msg, ok := c.messages[locale][key]
	return msg, ok
}

// Missing lists keys present for the canonical locale but absent in locale.
func (c *Catalog) Missing(locale models.Locale) []string {
	var out []string
	for key := range c.messages[models.CanonicalLocale] {
		if !c.Has(locale, key) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// CategoryLabel is the translated display name of a registry category.
func (c *Catalog) CategoryLabel(locale models.Locale, cat models.Category) string {
	key := "blog.categories." + cat.I18nKey
	if msg := c.T(locale, key); msg != key {
		return msg
	}
	return cat.Key
}
