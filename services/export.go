package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dimafomin/chef-site-backend/models"
	"github.com/dimafomin/chef-site-backend/seo"
)

// Artifact is one exported file.
type Artifact struct {
	Path        string
	ContentType string
	Body        []byte
}

const (
	contentTypeJSON     = "application/json; charset=utf-8"
	contentTypeXML      = "application/xml; charset=utf-8"
	contentTypeText     = "text/plain; charset=utf-8"
	contentTypeManifest = "application/manifest+json"
)

// Exporter renders the whole site to static artifacts: the SEO files plus a
// JSON page document per locale and page, mirroring the HTTP routes.
type Exporter struct {
	pages *PageService
	now   func() time.Time
}

func NewExporter(pages *PageService, now func() time.Time) *Exporter {
	if now == nil {
		now = time.Now
	}
	return &Exporter{pages: pages, now: now}
}

// Build renders every artifact in memory, sorted by path.
func (e *Exporter) Build(ctx context.Context) ([]Artifact, error) {
	pages := e.pages.Pinned()
	var out []Artifact
	add := func(p, contentType string, body []byte) {
		out = append(out, Artifact{Path: p, ContentType: contentType, Body: body})
	}
	addJSON := func(p string, v any) error {
		body, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s: %w", p, err)
		}
		add(p, contentTypeJSON, body)
		return nil
	}

	var sitemap bytes.Buffer
	if err := seo.WriteSitemap(&sitemap, pages.Sitemap(ctx, e.now())); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	add("sitemap.xml", contentTypeXML, sitemap.Bytes())
	add("robots.txt", contentTypeText, []byte(seo.RobotsTxt(pages.SEO().URLs())))

	manifest, err := json.MarshalIndent(seo.NewManifest(pages.SEO().Site()), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	add("manifest.webmanifest", contentTypeManifest, manifest)

	for _, locale := range models.SupportedLocales {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		l := locale.String()

		if err := addJSON(path.Join(l, "index.json"), pages.Home(ctx, locale)); err != nil {
			return nil, err
		}
		index := pages.BlogIndex(ctx, locale, models.AllCategories, "")
		if err := addJSON(path.Join(l, "blog", "index.json"), index); err != nil {
			return nil, err
		}
		for _, summary := range index.Posts {
			page, err := pages.Post(ctx, locale, summary.Slug)
			if err != nil {
				log.Warn().Err(err).Str("locale", l).Str("slug", summary.Slug).Msg("skipping post in export")
				continue
			}
			if err := addJSON(path.Join(l, "blog", summary.Slug+".json"), page); err != nil {
				return nil, err
			}
		}
		for _, page := range models.StaticPages {
			if page.Path == models.HomePage.Path || page.Path == models.BlogPage.Path {
				continue
			}
			if err := addJSON(path.Join(l, page.Path[1:]+".json"), pages.Static(locale, page)); err != nil {
				return nil, err
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// WriteDir writes artifacts below dir, creating directories as needed.
func WriteDir(dir string, artifacts []Artifact) error {
	for _, a := range artifacts {
		target := filepath.Join(dir, filepath.FromSlash(a.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, a.Body, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
	}
	log.Info().Str("dir", dir).Int("files", len(artifacts)).Msg("export written")
	return nil
}
