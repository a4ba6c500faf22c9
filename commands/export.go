package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dimafomin/chef-site-backend/services"
)

// ExportCmd implements the 'export' command.
type ExportCmd struct {
	Out string `short:"o" help:"Output directory (defaults to EXPORT_DIR)" type:"path"`
}

func (e *ExportCmd) Run(root *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	settings, err := root.settings(ctx)
	if err != nil {
		return err
	}
	a, err := newApp(settings)
	if err != nil {
		return err
	}

	out := e.Out
	if out == "" {
		out = settings.ExportDir
	}

	start := time.Now()
	artifacts, err := services.NewExporter(a.pages, time.Now).Build(ctx)
	if err != nil {
		return err
	}
	if err := services.WriteDir(out, artifacts); err != nil {
		return err
	}
	log.Info().
		Str("dir", out).
		Int("files", len(artifacts)).
		Dur("duration", time.Since(start)).
		Msg("site exported")
	return nil
}
