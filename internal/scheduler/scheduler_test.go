package scheduler

import (
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type countingPurger struct{ n atomic.Int32 }

func (p *countingPurger) PurgeHandles() { p.n.Add(1) }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestDailyScheduleIsMidnightUTC(t *testing.T) {
	t.Parallel()

	sched, err := cron.ParseStandard(DailyAtMidnight)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	tests := []struct {
		from time.Time
		want time.Time
	}{
		{time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 6, 1, 23, 59, 59, 0, time.UTC), time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		if got := sched.Next(tc.from); !got.Equal(tc.want) {
			t.Errorf("Next(%s)=%s want %s", tc.from, got, tc.want)
		}
	}
}

func TestSchedulerStartStop(t *testing.T) {
	t.Parallel()

	p := &countingPurger{}
	s := New(p, quietLogger())
	if !s.Next().IsZero() {
		t.Fatal("Next should be zero before Start")
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	next := s.Next()
	if next.IsZero() {
		t.Fatal("expected a scheduled entry")
	}
	if h, m, sec := next.UTC().Clock(); h != 0 || m != 0 || sec != 0 {
		t.Fatalf("next run %s is not midnight UTC", next)
	}
}

func TestRunPurge(t *testing.T) {
	t.Parallel()

	p := &countingPurger{}
	New(p, quietLogger()).runPurge()
	if p.n.Load() != 1 {
		t.Fatalf("purge count=%d want 1", p.n.Load())
	}
}
