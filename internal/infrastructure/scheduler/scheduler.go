package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// CreateScheduler registers task to run every interval. The caller starts and shuts down the scheduler.
func CreateScheduler(interval time.Duration, task func()) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(
			interval,
		),
		gocron.NewTask(
			task,
		),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Error().Err(err).Str("component", "CreateScheduler").Msg("")
		return nil, err
	}

	return s, nil
}
