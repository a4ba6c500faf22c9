package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dimafomin/chef-site-backend/api"
	"github.com/dimafomin/chef-site-backend/content"
	"github.com/dimafomin/chef-site-backend/services"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	ShutdownTimeout time.Duration `name:"shutdown-timeout" help:"How long in-flight requests get on shutdown" default:"30s"`
}

func (s *ServeCmd) Run(root *CLI) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	settings, err := root.settings(ctx)
	if err != nil {
		return err
	}
	a, err := newApp(settings)
	if err != nil {
		return err
	}

	if settings.ContentWatch {
		watcher, err := content.NewWatcher(settings.ContentDir, a.repo.Invalidate, 0)
		if err != nil {
			return err
		}
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		defer watcher.Stop()
	}

	if settings.PublishSchedule != "" {
		publisher, err := a.publisher(ctx)
		if err != nil {
			return err
		}
		scheduler, err := services.NewScheduler(ctx, settings.PublishSchedule, "publish", publisher.Publish)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer func() {
			if err := scheduler.Stop(); err != nil {
				log.Error().Err(err).Msg("stopping scheduler")
			}
		}()
		log.Info().Str("schedule", settings.PublishSchedule).Msg("publish scheduled")
	}

	server, err := api.NewServer(settings, api.Dependencies{Pages: a.pages, Metrics: a.metrics})
	if err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	// Start and listenToInterrupt both report into the channel
	errChannel := make(chan error, 2)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	return serveUntilExit(server, errChannel, s.ShutdownTimeout)
}

// serveUntilExit runs the server until the first error or interrupt and shuts
// it down. Only a failure of the server itself is returned.
func serveUntilExit(server api.Server, errChannel chan error, timeout time.Duration) error {
	go server.Start(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(timeout)
	return exitError(fatalErr)
}

// interruptError reports the signal that stopped the server.
type interruptError struct {
	signal os.Signal
}

func (e interruptError) Error() string {
	return e.signal.String()
}

func exitError(err error) error {
	var interrupt interruptError
	if err == nil || errors.As(err, &interrupt) || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- interruptError{<-c}
}
