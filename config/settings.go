package config

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dimafomin/chef-site-backend/errs"
)

// Settings is the validated, typed form of the configuration map.
type Settings struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	ContentDir        string
	ContentExtensions []string
	ContentCache      bool
	ContentWatch      bool
	MessagesDir       string

	SiteURL        string
	SiteName       string
	AuthorName     string
	DefaultOGImage string

	AcceptedOrigins []string

	LogLevel  zerolog.Level
	LogFormat string
	LogFile   string

	ExportDir       string
	S3Bucket        string
	S3Prefix        string
	PublishSchedule string
}

const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// FromMap reads Settings from a configuration map, applying defaults.
func FromMap(c map[string]string) (Settings, error) {
	s := Settings{
		Port:         GetString(c, "PORT", "8080"),
		ReadTimeout:  seconds(c, "READ_TIMEOUT_SECONDS", 180),
		WriteTimeout: seconds(c, "WRITE_TIMEOUT_SECONDS", 180),
		IdleTimeout:  seconds(c, "IDLE_TIMEOUT_SECONDS", 180),

		ContentDir:        GetString(c, "CONTENT_DIR", "content"),
		ContentExtensions: GetList(c, "CONTENT_EXTENSIONS", []string{".mdx", ".md"}),
		ContentCache:      GetBool(c, "CONTENT_CACHE", true),
		ContentWatch:      GetBool(c, "CONTENT_WATCH", false),
		MessagesDir:       GetString(c, "MESSAGES_DIR", ""),

		SiteURL:        strings.TrimRight(GetString(c, "SITE_URL", "https://dima-fomin.pl"), "/"),
		SiteName:       GetString(c, "SITE_NAME", "Dima Fomin - Sushi Chef"),
		AuthorName:     GetString(c, "AUTHOR_NAME", "Dima Fomin"),
		DefaultOGImage: GetString(c, "DEFAULT_OG_IMAGE", "https://i.postimg.cc/RCf8VLFn/DSCF4639.jpg"),

		AcceptedOrigins: GetList(c, "ACCEPTED_ORIGINS", []string{"*"}),

		LogFormat: strings.ToLower(GetString(c, "LOG_FORMAT", LogFormatConsole)),
		LogFile:   GetString(c, "LOG_FILE", ""),

		ExportDir:       GetString(c, "EXPORT_DIR", "dist"),
		S3Bucket:        GetString(c, "S3_BUCKET", ""),
		S3Prefix:        strings.Trim(GetString(c, "S3_PREFIX", ""), "/"),
		PublishSchedule: GetString(c, "PUBLISH_SCHEDULE", ""),
	}

	if _, err := strconv.Atoi(s.Port); err != nil {
		return Settings{}, errs.NewConfigInvalidError("PORT", "must be a number")
	}
	for key, d := range map[string]time.Duration{
		"READ_TIMEOUT_SECONDS":  s.ReadTimeout,
		"WRITE_TIMEOUT_SECONDS": s.WriteTimeout,
		"IDLE_TIMEOUT_SECONDS":  s.IdleTimeout,
	} {
		if d <= 0 {
			return Settings{}, errs.NewConfigInvalidError(key, "must be positive")
		}
	}

	u, err := url.Parse(s.SiteURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Settings{}, errs.NewConfigInvalidError("SITE_URL", "must be an absolute http(s) URL")
	}

	level, err := zerolog.ParseLevel(strings.ToLower(GetString(c, "LOG_LEVEL", "info")))
	if err != nil {
		return Settings{}, errs.NewConfigInvalidError("LOG_LEVEL", err.Error())
	}
	s.LogLevel = level

	if s.LogFormat != LogFormatConsole && s.LogFormat != LogFormatJSON {
		return Settings{}, errs.NewConfigInvalidError("LOG_FORMAT", "must be console or json")
	}

	if s.PublishSchedule != "" && s.S3Bucket == "" {
		return Settings{}, errs.NewConfigMissingError("S3_BUCKET")
	}
	return s, nil
}

func seconds(c map[string]string, key string, def int) time.Duration {
	return time.Duration(GetInt(c, key, def)) * time.Second
}

// Address is the listen address of the HTTP server.
func (s Settings) Address() string {
	return "0.0.0.0:" + s.Port
}
