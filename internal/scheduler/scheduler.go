// Package scheduler runs the daily maintenance jobs of the matching server.
package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DailyAtMidnight fires once a day at 00:00 UTC, when anonymous handles roll
// over.
const DailyAtMidnight = "0 0 * * *"

// HandlePurger drops cached anonymous handles.
type HandlePurger interface {
	PurgeHandles()
}

// Scheduler wraps robfig/cron and owns the handle purge job.
type Scheduler struct {
	cron   *cron.Cron
	purger HandlePurger
	log    logrus.FieldLogger
	spec   string
}

func New(purger HandlePurger, log logrus.FieldLogger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		purger: purger,
		log:    log,
		spec:   DailyAtMidnight,
	}
}

// Start registers the job and starts the scheduler.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runPurge); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	s.log.WithField("spec", s.spec).Info("scheduler started")
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// Next reports when the purge job fires next. Zero before Start.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *Scheduler) runPurge() {
	start := time.Now()
	s.purger.PurgeHandles()
	s.log.WithField("took", time.Since(start).String()).Info("anonymous handle cache purged")
}
