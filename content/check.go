package content

import (
	"context"
	"errors"

	"github.com/dimafomin/chef-site-backend/errs"
	"github.com/dimafomin/chef-site-backend/frontmatter"
	"github.com/dimafomin/chef-site-backend/models"
)

// Issue is a content problem that was recovered from at load time.
type Issue struct {
	Locale  models.Locale `json:"locale"`
	Slug    string        `json:"slug"`
	File    string        `json:"file,omitempty"`
	Problem string        `json:"problem"`
}

// Check re-reads every post of a locale and reports what the loader silently
// defaulted or skipped: unreadable files, discarded metadata, missing titles
// or dates, unknown levels and categories outside the registry.
func (s *Store) Check(ctx context.Context, locale models.Locale) ([]Issue, error) {
	slugs, err := s.ListSlugs(ctx, locale)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	report := func(slug, file, problem string) {
		issues = append(issues, Issue{Locale: locale, Slug: slug, File: file, Problem: problem})
	}

	for _, slug := range slugs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, file, err := s.readFile(locale, slug)
		if err != nil {
			report(slug, file, err.Error())
			continue
		}

		parsed := frontmatter.Parse(raw)
		if parsed.Warning != nil {
			problem := "metadata discarded: " + parsed.Warning.Error()
			if errors.Is(parsed.Warning, errs.ErrMissingClosingDelimiter) {
				problem = "metadata block is not closed"
			}
			report(slug, file, problem)
			continue
		}
		if !parsed.HadFrontMatter {
			report(slug, file, "no metadata block")
			continue
		}

		if v, _ := frontmatter.String(parsed.Metadata, "title"); v == "" {
			report(slug, file, "missing title")
		}
		if v, _ := frontmatter.String(parsed.Metadata, "date"); v == "" {
			report(slug, file, "missing date")
		}
		if v, ok := frontmatter.String(parsed.Metadata, "category"); ok && v != "" {
			if _, known := models.LookupCategory(v); !known {
				report(slug, file, "category "+v+" is not in the registry")
			}
		}
		if v, ok := frontmatter.String(parsed.Metadata, "level"); ok {
			if _, known := models.ParseLevel(v); !known {
				report(slug, file, "unknown level "+v)
			}
		}
	}
	return issues, nil
}
