package api

import (
	"context"

	"github.com/dimafomin/chef-site-backend/models"
)

type keyType string

const (
	localeKey    keyType = "locale"
	requestIDKey keyType = "requestID"
)

// ctxWithLocale adds the validated URL locale to the context
func ctxWithLocale(ctx context.Context, locale models.Locale) context.Context {
	return context.WithValue(ctx, localeKey, locale)
}

// ctxGetLocale retrieves the URL locale, defaulting to the canonical locale
func ctxGetLocale(ctx context.Context) models.Locale {
	if locale, ok := ctx.Value(localeKey).(models.Locale); ok {
		return locale
	}
	return models.CanonicalLocale
}

func ctxWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func ctxGetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
