package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Content errors. NotFound is an expected, user-facing state; the others are
// recovered where they occur and only surface in logs and reports.
var (
	ErrNotFound                = errors.New("not found")
	ErrMalformedFrontMatter    = errors.New("malformed front matter")
	ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")
	ErrContentRead             = errors.New("content read failed")
)

// Locale errors
var (
	ErrUnsupportedLocale = errors.New("unsupported locale")
)

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

func NewPostNotFound(locale, slug string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("post %w", ErrNotFound),
		Details:    fmt.Sprintf("no post %q in locale %q", slug, locale),
		Field:      "slug",
	}
}

func NewUnsupportedLocaleError(locale string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        ErrUnsupportedLocale,
		Details:    fmt.Sprintf("locale %q is not supported", locale),
		Field:      "locale",
	}
}

// NewMalformedFrontMatterError describes a metadata block that could not be decoded.
func NewMalformedFrontMatterError(cause error) error {
	return fmt.Errorf("%w: %w", ErrMalformedFrontMatter, cause)
}

func NewContentReadError(path string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrContentRead,
		Details:    fmt.Sprintf("Failed to read %s", path),
		Cause:      cause,
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsMalformedFrontMatter(err error) bool {
	return errors.Is(err, ErrMalformedFrontMatter)
}

func IsUnsupportedLocale(err error) bool {
	return errors.Is(err, ErrUnsupportedLocale)
}

func IsContentReadError(err error) bool {
	return errors.Is(err, ErrContentRead)
}
