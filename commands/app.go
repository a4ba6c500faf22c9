package commands

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dimafomin/chef-site-backend/config"
	"github.com/dimafomin/chef-site-backend/content"
	"github.com/dimafomin/chef-site-backend/errs"
	"github.com/dimafomin/chef-site-backend/i18n"
	"github.com/dimafomin/chef-site-backend/markdown"
	"github.com/dimafomin/chef-site-backend/metrics"
	"github.com/dimafomin/chef-site-backend/seo"
	"github.com/dimafomin/chef-site-backend/services"
)

// app is the wired object graph shared by every command.
type app struct {
	settings config.Settings
	metrics  *metrics.Recorder
	store    *content.Store
	repo     *content.Repository
	catalog  *i18n.Catalog
	pages    *services.PageService
}

func newApp(settings config.Settings) (*app, error) {
	recorder := metrics.NewRecorder(nil)

	store := content.NewStore(os.DirFS(settings.ContentDir),
		content.WithExtensions(settings.ContentExtensions...),
		content.WithMetrics(recorder),
		content.WithLogger(log.With().Str("component", "contentStore").Str("root", settings.ContentDir).Logger()),
	)
	repo := content.NewRepository(store,
		content.WithCache(settings.ContentCache),
		content.WithRepositoryMetrics(recorder),
	)

	catalog, err := loadCatalog(settings.MessagesDir)
	if err != nil {
		return nil, err
	}

	gen := seo.NewGenerator(siteFromSettings(settings))
	return &app{
		settings: settings,
		metrics:  recorder,
		store:    store,
		repo:     repo,
		catalog:  catalog,
		pages:    services.NewPageService(repo, catalog, gen, markdown.NewRenderer()),
	}, nil
}

func loadCatalog(dir string) (*i18n.Catalog, error) {
	if dir == "" {
		return i18n.Default()
	}
	return i18n.Load(os.DirFS(dir))
}

func siteFromSettings(s config.Settings) seo.Site {
	site := seo.DefaultSite()
	site.Origin = s.SiteURL
	site.Name = s.SiteName
	site.Author = s.AuthorName
	site.DefaultImage = s.DefaultOGImage
	return site
}

// publisher builds an S3 publisher for the configured bucket.
func (a *app) publisher(ctx context.Context) (*services.Publisher, error) {
	if a.settings.S3Bucket == "" {
		return nil, errs.NewConfigMissingError("S3_BUCKET")
	}
	client, err := services.NewS3Client(ctx)
	if err != nil {
		return nil, err
	}
	exporter := services.NewExporter(a.pages, time.Now)
	return services.NewPublisher(exporter, client, a.settings.S3Bucket, a.settings.S3Prefix, a.metrics), nil
}
