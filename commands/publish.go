package commands

import (
	"context"
	"os/signal"
	"syscall"
)

// PublishCmd implements the 'publish' command.
type PublishCmd struct{}

func (p *PublishCmd) Run(root *CLI) error {
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
	publisher, err := a.publisher(ctx)
	if err != nil {
		return err
	}
	return publisher.Publish(ctx)
}
