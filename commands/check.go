package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dimafomin/chef-site-backend/content"
	"github.com/dimafomin/chef-site-backend/models"
)

var errCheckFailed = errors.New("content check found problems")

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Locale []string `short:"l" help:"Locales to check (default all)"`
	Format string   `short:"f" help:"Output format" enum:"text,json" default:"text"`
}

// Report is everything the check found.
type Report struct {
	Content  []content.Issue            `json:"content"`
	Messages map[models.Locale][]string `json:"missingMessages"`
}

func (r Report) Problems() int {
	n := len(r.Content)
	for _, keys := range r.Messages {
		n += len(keys)
	}
	return n
}

func (c *CheckCmd) Run(root *CLI) error {
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
	report, err := c.run(ctx, a)
	if err != nil {
		return err
	}
	if err := c.write(os.Stdout, report); err != nil {
		return err
	}
	if report.Problems() > 0 {
		return errCheckFailed
	}
	return nil
}

func (c *CheckCmd) locales() ([]models.Locale, error) {
	if len(c.Locale) == 0 {
		return models.SupportedLocales, nil
	}
	out := make([]models.Locale, 0, len(c.Locale))
	for _, raw := range c.Locale {
		l, err := models.ParseLocale(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

func (c *CheckCmd) run(ctx context.Context, a *app) (Report, error) {
	locales, err := c.locales()
	if err != nil {
		return Report{}, err
	}

	report := Report{Content: []content.Issue{}, Messages: map[models.Locale][]string{}}
	for _, locale := range locales {
		issues, err := a.store.Check(ctx, locale)
		if err != nil {
			return Report{}, err
		}
		report.Content = append(report.Content, issues...)

		if missing := a.catalog.Missing(locale); len(missing) > 0 {
			report.Messages[locale] = missing
		}
	}
	return report, nil
}

func (c *CheckCmd) write(w io.Writer, r Report) error {
	if c.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	for _, issue := range r.Content {
		if _, err := fmt.Fprintf(w, "%s/%s: %s\n", issue.Locale, issue.Slug, issue.Problem); err != nil {
			return err
		}
	}
	for _, locale := range models.SupportedLocales {
		for _, key := range r.Messages[locale] {
			if _, err := fmt.Fprintf(w, "%s: missing message %s\n", locale, key); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintf(w, "%d problem(s)\n", r.Problems()); err != nil {
		return err
	}
	return nil
}
