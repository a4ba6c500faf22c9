package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Configuration & Environment Errors
var (
	ErrConfigMissing = errors.New("configuration missing")
	ErrConfigInvalid = errors.New("configuration invalid")
)

// Publishing Errors
var (
	ErrPublishFailed = errors.New("publish failed")
)

func NewConfigMissingError(key string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("Configuration key %s is not set", key),
		Field:      key,
	}
}

func NewConfigInvalidError(key, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigInvalid,
		Details:    fmt.Sprintf("Configuration key %s is invalid: %s", key, reason),
		Field:      key,
	}
}

func NewConfigSourceError(source string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("Configuration error for %s", source),
		Cause:      cause,
	}
}

func NewPublishError(target string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrPublishFailed,
		Details:    fmt.Sprintf("Failed to publish %s", target),
		Cause:      cause,
	}
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigMissing) || errors.Is(err, ErrConfigInvalid)
}

func IsPublishError(err error) bool {
	return errors.Is(err, ErrPublishFailed)
}
