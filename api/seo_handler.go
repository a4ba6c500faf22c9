package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dimafomin/chef-site-backend/errs"
	"github.com/dimafomin/chef-site-backend/seo"
	"github.com/dimafomin/chef-site-backend/services"
)

type seoHandler struct {
	responder   Responder
	logger      zerolog.Logger
	pages       *services.PageService
	startupTime time.Time
	now         func() time.Time
}

func newSEOHandler(pages *services.PageService, startupTime time.Time, now func() time.Time) seoHandler {
	logger := log.With().Str("handlerName", "seoHandler").Logger()
	return seoHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		pages:       pages,
		startupTime: startupTime,
		now:         now,
	}
}

// @Summary Sitemap
// @Description XML sitemap with hreflang alternates for every page and post
// @Tags seo
// @Produce xml
// @Success 200
// @Router /sitemap.xml [get]
func (h seoHandler) getSitemap() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := h.pages.Sitemap(r.Context(), h.now())

		var buf bytes.Buffer
		if err := seo.WriteSitemap(&buf, entries); err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("rendering sitemap", err))
			return
		}
		h.responder.WriteBody(w, "application/xml; charset=utf-8", buf.Bytes())
	}
}

// @Summary Robots rules
// @Tags seo
// @Produce plain
// @Success 200
// @Router /robots.txt [get]
func (h seoHandler) getRobots() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := seo.RobotsTxt(h.pages.SEO().URLs())
		h.responder.WriteBody(w, "text/plain; charset=utf-8", []byte(body))
	}
}

func (h seoHandler) getManifest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, seo.NewManifest(h.pages.SEO().Site()))
	}
}

// @Summary Liveness probe
// @Tags ops
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h seoHandler) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, HealthResponse{
			Status:    "ok",
			StartedAt: h.startupTime.UTC().Format(time.RFC3339),
			Uptime:    h.now().Sub(h.startupTime).Round(time.Second).String(),
		})
	}
}
