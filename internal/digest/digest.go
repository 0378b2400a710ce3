// Package digest mails users a periodic summary of their open tasks.
package digest

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/vpetrenko/todo-service/internal/models"
)

// TaskSource lists incomplete tasks grouped per user.
type TaskSource interface {
	ListIncompleteDigest(ctx context.Context) ([]models.DigestEntry, error)
}

// Mailer delivers a digest to a single recipient.
type Mailer interface {
	SendTaskDigest(to string, titles []string) error
}

// Scheduler runs the digest job on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	source TaskSource
	mailer Mailer
	log    *logrus.Logger
}

// NewScheduler registers the digest job with the given cron spec.
func NewScheduler(spec string, source TaskSource, mailer Mailer, log *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(),
		source: source,
		mailer: mailer,
		log:    log,
	}
	if _, err := s.cron.AddFunc(spec, s.Run); err != nil {
		return nil, fmt.Errorf("failed to schedule digest job: %w", err)
	}
	return s, nil
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the cron loop; running jobs finish on their own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Run executes one digest pass. Per-user failures are logged and skipped
// so one bad mailbox never blocks the rest.
func (s *Scheduler) Run() {
	entries, err := s.source.ListIncompleteDigest(context.Background())
	if err != nil {
		s.log.Errorf("Digest run failed: %v", err)
		return
	}

	sent := 0
	for _, entry := range entries {
		if err := s.mailer.SendTaskDigest(entry.Email, entry.Titles); err != nil {
			s.log.Warnf("Failed to send digest to %s: %v", entry.Email, err)
			continue
		}
		sent++
	}
	s.log.Infof("Digest run complete: %d/%d emails sent", sent, len(entries))
}
