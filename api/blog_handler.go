package api

import (
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dimafomin/chef-site-backend/errs"
	"github.com/dimafomin/chef-site-backend/services"
)

const maxQueryLength = 200

type blogHandler struct {
	responder Responder
	logger    zerolog.Logger
	pages     *services.PageService
}

func newBlogHandler(pages *services.PageService) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()
	return blogHandler{
		responder: NewResponder(logger),
		logger:    logger,
		pages:     pages,
	}
}

// @Summary Blog index
// @Description Lists posts of a locale, newest first, optionally filtered
// @Tags blog
// @Produce json
// @Param locale path string true "Locale code (pl, en, uk, ru)"
// @Param category query string false "Category key, or all"
// @Param q query string false "Case-insensitive text search over title and excerpt"
// @Success 200 {object} services.BlogIndexPage
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /{locale}/blog [get]
func (h blogHandler) getBlogIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		q := query.Get("q")
		if utf8.RuneCountInString(q) > maxQueryLength {
			h.responder.WriteError(w, errs.NewInvalidQueryParamError("q", "too long"))
			return
		}

		locale := ctxGetLocale(r.Context())
		h.responder.WriteJSON(w, h.pages.BlogIndex(r.Context(), locale, query.Get("category"), q))
	}
}

// @Summary Blog post
// @Description Returns a rendered post. A post missing in the requested locale is a 404 even if other locales have it.
// @Tags blog
// @Produce json
// @Param locale path string true "Locale code (pl, en, uk, ru)"
// @Param slug path string true "Post slug"
// @Success 200 {object} services.PostPage
// @Failure 404 {object} services.NotFoundPage
// @Router /{locale}/blog/{slug} [get]
func (h blogHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locale := ctxGetLocale(r.Context())
		slug := chi.URLParam(r, "slug")

		page, err := h.pages.Post(r.Context(), locale, slug)
		if err != nil {
			if errs.IsNotFound(err) {
				h.logger.Debug().Str("locale", locale.String()).Str("slug", slug).Msg("post not found")
				h.responder.WriteJSONStatus(w, http.StatusNotFound, h.pages.PostNotFound(locale, slug))
				return
			}
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, page)
	}
}
