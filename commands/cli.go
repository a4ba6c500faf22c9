// Package commands holds the chefsite command line: the API server and the
// offline export, publish and check tasks.
package commands

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dimafomin/chef-site-backend/config"
)

// CLI definition & global flags.
type CLI struct {
	EnvFile    []string         `name:"env-file" help:"Dotenv files loaded before reading configuration" default:".env"`
	LogLevel   string           `name:"log-level" help:"Override LOG_LEVEL (debug, info, warn, error)"`
	ContentDir string           `name:"content-dir" help:"Override CONTENT_DIR" type:"path"`
	Version    kong.VersionFlag `name:"version" help:"Show version and exit"`

	Serve   ServeCmd   `cmd:"" default:"1" help:"Serve the localized site API"`
	Export  ExportCmd  `cmd:"" help:"Write every page document, the sitemap and robots.txt to a directory"`
	Publish PublishCmd `cmd:"" help:"Export the site and upload it to S3"`
	Check   CheckCmd   `cmd:"" help:"Report content and message catalog problems"`
}

// settings loads configuration from dotenv files, the environment and SSM,
// applies flag overrides and configures the global logger.
func (c *CLI) settings(ctx context.Context) (config.Settings, error) {
	if err := config.LoadDotenv(c.EnvFile...); err != nil {
		return config.Settings{}, err
	}
	raw, err := config.Load(ctx)
	if err != nil {
		return config.Settings{}, err
	}
	overrides := map[string]string{}
	if c.LogLevel != "" {
		overrides["LOG_LEVEL"] = c.LogLevel
	}
	if c.ContentDir != "" {
		overrides["CONTENT_DIR"] = c.ContentDir
	}

	settings, err := config.FromMap(config.Overlay(raw, overrides))
	if err != nil {
		return config.Settings{}, err
	}
	setupLogging(settings)
	return settings, nil
}

// setupLogging points the global zerolog logger at stderr, and additionally at
// a rotated file when LOG_FILE is set.
func setupLogging(s config.Settings) {
	var out io.Writer = os.Stderr
	if s.LogFormat == config.LogFormatConsole {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	if s.LogFile != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   s.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     7, // days
			Compress:   true,
		})
	}

	zerolog.SetGlobalLevel(s.LogLevel)
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}
