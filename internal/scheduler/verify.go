package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/sbreader/internal/config"
	"github.com/mrlokans/sbreader/internal/settingsstore"
	"github.com/mrlokans/sbreader/internal/tasks"
)

// Enqueuer saves a task on the background queue.
type Enqueuer interface {
	Enqueue(task backlite.Task) (string, error)
}

// ScheduleSource resolves the effective verification schedule.
type ScheduleSource interface {
	GetVerifySchedule(ctx context.Context, configured string) settingsstore.VerifyScheduleInfo
}

// VerifyScheduler periodically enqueues a corpus key-order verification.
type VerifyScheduler struct {
	enqueuer  Enqueuer
	schedules ScheduleSource
	cfg       config.Verification

	cron      *cron.Cron
	entryID   cron.EntryID
	schedule  string
	mu        sync.RWMutex
	isRunning bool
}

func NewVerifyScheduler(enqueuer Enqueuer, schedules ScheduleSource, cfg config.Verification) *VerifyScheduler {
	return &VerifyScheduler{
		enqueuer:  enqueuer,
		schedules: schedules,
		cfg:       cfg,
		cron:      newCron(),
	}
}

func newCron() *cron.Cron {
	return cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)))
}

// Start schedules verification when it is enabled. It stops on its own
// once ctx is done.
func (s *VerifyScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if !s.cfg.Enabled {
		log.Printf("[SCHEDULER] Corpus verification: disabled")
		return nil
	}

	schedule, err := s.resolveSchedule(ctx)
	if err != nil {
		return err
	}

	entryID, err := s.cron.AddFunc(schedule, func() {
		s.enqueue()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule verification: %w", err)
	}
	s.entryID = entryID
	s.schedule = schedule

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := settingsstore.GetNextRunTime(schedule)
	log.Printf("[SCHEDULER] Corpus verification: started with schedule '%s'. Next run: %v", schedule, nextRun)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job and stops the scheduler.
func (s *VerifyScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	done := s.cron.Stop()
	<-done.Done()

	s.cron.Remove(s.entryID)
	s.cron = newCron()
	s.isRunning = false

	log.Printf("[SCHEDULER] Corpus verification: stopped")
}

// Reschedule swaps the cron entry for the current effective schedule. It
// does nothing while the scheduler is stopped. ctx is only used to read the
// stored schedule; the scheduler keeps the lifetime given to Start.
func (s *VerifyScheduler) Reschedule(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	schedule, err := s.resolveSchedule(ctx)
	if err != nil {
		return err
	}
	entryID, err := s.cron.AddFunc(schedule, s.enqueue)
	if err != nil {
		return fmt.Errorf("failed to schedule verification: %w", err)
	}
	s.cron.Remove(s.entryID)
	s.entryID = entryID
	s.schedule = schedule

	log.Printf("[SCHEDULER] Corpus verification: rescheduled to '%s'", schedule)
	return nil
}

func (s *VerifyScheduler) resolveSchedule(ctx context.Context) (string, error) {
	schedule := s.cfg.Schedule
	if s.schedules != nil {
		schedule = s.schedules.GetVerifySchedule(ctx, s.cfg.Schedule).Schedule
	}
	if err := settingsstore.ValidateCronSchedule(schedule); err != nil {
		return "", fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return schedule, nil
}

// RunNow enqueues a verification immediately.
func (s *VerifyScheduler) RunNow() (string, error) {
	return s.enqueuer.Enqueue(tasks.VerifyCorpusTask{})
}

func (s *VerifyScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Schedule returns the active cron expression, or "" when stopped.
func (s *VerifyScheduler) Schedule() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isRunning {
		return ""
	}
	return s.schedule
}

// GetNextRunTime returns when the next verification is due.
func (s *VerifyScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() {
		return nil
	}
	next := entry.Next
	return &next
}

func (s *VerifyScheduler) enqueue() {
	id, err := s.enqueuer.Enqueue(tasks.VerifyCorpusTask{})
	if err != nil {
		log.Printf("[SCHEDULER] Failed to enqueue corpus verification: %v", err)
		return
	}
	log.Printf("[SCHEDULER] Enqueued corpus verification %s", id)
}
