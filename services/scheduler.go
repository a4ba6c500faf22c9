package services

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/dimafomin/chef-site-backend/errs"
)

// Scheduler runs a job on a fixed interval ("6h") or a cron expression
// ("0 3 * * *").
type Scheduler struct {
	scheduler gocron.Scheduler
}

func NewScheduler(ctx context.Context, schedule, name string, job func(context.Context) error) (*Scheduler, error) {
	definition, err := jobDefinition(schedule)
	if err != nil {
		return nil, err
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	_, err = s.NewJob(
		definition,
		gocron.NewTask(func() {
			start := time.Now()
			if err := job(ctx); err != nil {
				log.Error().Err(err).Str("job", name).Msg("scheduled job failed")
				return
			}
			log.Info().Str("job", name).Dur("duration", time.Since(start)).Msg("scheduled job finished")
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, errs.NewConfigInvalidError("PUBLISH_SCHEDULE", err.Error())
	}
	return &Scheduler{scheduler: s}, nil
}

func jobDefinition(schedule string) (gocron.JobDefinition, error) {
	if d, err := time.ParseDuration(schedule); err == nil {
		if d <= 0 {
			return nil, errs.NewConfigInvalidError("PUBLISH_SCHEDULE", "interval must be positive")
		}
		return gocron.DurationJob(d), nil
	}
	return gocron.CronJob(schedule, false), nil
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
}

func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}
