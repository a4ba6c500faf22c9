package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dimafomin/chef-site-backend/errs"
	"github.com/dimafomin/chef-site-backend/models"
	"github.com/dimafomin/chef-site-backend/services"
)

type pageHandler struct {
	responder Responder
	logger    zerolog.Logger
	pages     *services.PageService
}

func newPageHandler(pages *services.PageService) pageHandler {
	logger := log.With().Str("handlerName", "pageHandler").Logger()
	return pageHandler{
		responder: NewResponder(logger),
		logger:    logger,
		pages:     pages,
	}
}

// @Summary Home page
// @Description Returns the home page document with the latest posts
// @Tags pages
// @Produce json
// @Param locale path string true "Locale code (pl, en, uk, ru)"
// @Success 200 {object} services.HomePage
// @Failure 404 {object} ErrorResponse
// @Router /{locale} [get]
func (h pageHandler) getHome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locale := ctxGetLocale(r.Context())
		h.responder.WriteJSON(w, h.pages.Home(r.Context(), locale))
	}
}

// getStatic serves one of the fixed pages such as /about.
func (h pageHandler) getStatic(page models.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locale := ctxGetLocale(r.Context())
		h.responder.WriteJSON(w, h.pages.Static(locale, page))
	}
}

// @Summary Demo page
// @Tags pages
// @Produce json
// @Param locale path string true "Locale code"
// @Param demoSlug path string true "Demo slug"
// @Success 200 {object} services.StaticPage
// @Failure 404 {object} ErrorResponse
// @Router /{locale}/demos/{demoSlug} [get]
func (h pageHandler) getDemo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		demoSlug := chi.URLParam(r, "demoSlug")
		page, ok := models.Demos[demoSlug]
		if !ok {
			h.responder.WriteError(w, errs.NewNotFound("demo "+demoSlug))
			return
		}
		h.responder.WriteJSON(w, h.pages.Static(ctxGetLocale(r.Context()), page))
	}
}
