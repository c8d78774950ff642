package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"schoolhub/api/internal/session"
)

const purgeTimeout = 30 * time.Second

// Scheduler runs periodic maintenance. Today that is dropping session records
// whose fixed window has closed so the store does not grow without bound.
type Scheduler struct {
	cron     *cron.Cron
	purger   session.Purger
	schedule string
	now      func() time.Time
	log      zerolog.Logger
}

// NewScheduler returns a scheduler for purger. A nil purger, as with the
// Redis backend where keys expire on their own, makes Start a no-op.
func NewScheduler(purger session.Purger, schedule string, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:     c,
		purger:   purger,
		schedule: schedule,
		now:      time.Now,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	if s.purger == nil {
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.PurgeExpiredSessions); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info().Str("schedule", s.schedule).Msg("session purge scheduled")
	return nil
}

// Stop halts the schedule. The returned context is done once a running purge
// has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) PurgeExpiredSessions() {
	if s.purger == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	removed, err := s.purger.DeleteExpired(ctx, s.now())
	if err != nil {
		s.log.Error().Err(err).Msg("purge expired sessions failed")
		return
	}
	if removed > 0 {
		s.log.Info().Int64("removed", removed).Msg("expired sessions purged")
	}
}
