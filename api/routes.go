package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dimafomin/chef-site-backend/metrics"
	"github.com/dimafomin/chef-site-backend/models"
	"github.com/dimafomin/chef-site-backend/seo"
)

// setupSiteRoutes sets up the localized page routes
func setupSiteRoutes(r chi.Router, handlers *routeHandlers) {
	// The bare root has no locale; send visitors to the canonical one
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, seo.RootRedirect(), http.StatusPermanentRedirect)
	})

	r.Route("/{locale}", func(r chi.Router) {
		r.Use(localeMiddleware)

		r.Get("/", handlers.pageHandler.getHome())
		r.Get("/about", handlers.pageHandler.getStatic(models.AboutPage))
		r.Get("/contact", handlers.pageHandler.getStatic(models.ContactPage))
		r.Get("/restaurants", handlers.pageHandler.getStatic(models.RestaurantsPage))
		r.Get("/demos/{demoSlug}", handlers.pageHandler.getDemo())

		r.Get("/blog", handlers.blogHandler.getBlogIndex())
		r.Get("/blog/{slug}", handlers.blogHandler.getPost())
	})
}

// setupOperationalRoutes sets up crawler files, health and metrics
func setupOperationalRoutes(r chi.Router, handlers *routeHandlers, recorder *metrics.Recorder) {
	r.Get("/sitemap.xml", handlers.seoHandler.getSitemap())
	r.Get("/robots.txt", handlers.seoHandler.getRobots())
	r.Get("/manifest.webmanifest", handlers.seoHandler.getManifest())
	r.Get("/healthz", handlers.seoHandler.getHealth())
	r.Method(http.MethodGet, "/metrics", recorder.Handler())
}
