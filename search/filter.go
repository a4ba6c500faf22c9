// Package search narrows an already loaded post listing by category and free
// text. It does no I/O.
package search

import (
	"strings"

	"github.com/dimafomin/chef-site-backend/models"
)

// Filter keeps posts in the selected category whose title, excerpt or
// category contains the query, case-insensitively. The "all" category and an
// empty query each disable their predicate. Order is preserved and the result
// never aliases the input.
func Filter(posts []models.PostSummary, category, query string) []models.PostSummary {
	category = strings.TrimSpace(category)
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]models.PostSummary, 0, len(posts))
	for _, p := range posts {
		if !matchesCategory(p, category) || !matchesQuery(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesCategory(p models.PostSummary, category string) bool {
	return category == "" || category == models.AllCategories || p.Category == category
}

func matchesQuery(p models.PostSummary, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Excerpt), query) ||
		strings.Contains(strings.ToLower(p.Category), query)
}

// Chip is a category button shown above a listing.
type Chip struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Emoji   string `json:"emoji,omitempty"`
	I18nKey string `json:"i18nKey,omitempty"`
	Count   int    `json:"count"`
}

// Chips builds one chip per category present in posts, preceded by the "all"
// chip. Registry categories come first in registry order; categories missing
// from the registry follow in first-seen order with no emoji.
func Chips(posts []models.PostSummary, label func(models.Category) string) []Chip {
	counts := make(map[string]int)
	var unknown []string
	for _, p := range posts {
		if _, ok := counts[p.Category]; !ok {
			if _, known := models.LookupCategory(p.Category); !known {
				unknown = append(unknown, p.Category)
			}
		}
		counts[p.Category]++
	}

	chips := []Chip{{Key: models.AllCategories, Label: models.AllCategories, Count: len(posts)}}
	for _, c := range models.Categories {
		n, ok := counts[c.Key]
		if !ok {
			continue
		}
		name := c.Key
		if label != nil {
			name = label(c)
		}
		chips = append(chips, Chip{Key: c.Key, Label: name, Emoji: c.Emoji, I18nKey: c.I18nKey, Count: n})
	}
	for _, key := range unknown {
		chips = append(chips, Chip{Key: key, Label: key, Count: counts[key]})
	}
	return chips
}
