package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/sbreader/internal/config"
	"github.com/mrlokans/sbreader/internal/settingsstore"
	"github.com/mrlokans/sbreader/internal/tasks"
)

type mockEnqueuer struct {
	mu    sync.Mutex
	tasks []backlite.Task
	err   error
}

func (m *mockEnqueuer) Enqueue(task backlite.Task) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.tasks = append(m.tasks, task)
	return "task-1", nil
}

type fixedSchedule string

func (f fixedSchedule) GetVerifySchedule(context.Context, string) settingsstore.VerifyScheduleInfo {
	return settingsstore.VerifyScheduleInfo{Schedule: string(f), Source: settingsstore.SourceDatabase}
}

func TestVerifySchedulerDisabled(t *testing.T) {
	s := NewVerifyScheduler(&mockEnqueuer{}, nil, config.Verification{Enabled: false, Schedule: "0 3 * * *"})

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
	assert.Empty(t, s.Schedule())
}

func TestVerifySchedulerStartStop(t *testing.T) {
	s := NewVerifyScheduler(&mockEnqueuer{}, nil, config.Verification{Enabled: true, Schedule: "0 3 * * *"})

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	assert.Equal(t, "0 3 * * *", s.Schedule())

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.Equal(t, 3, next.Hour())

	// Starting twice is a no-op.
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestVerifySchedulerUsesStoredSchedule(t *testing.T) {
	s := NewVerifyScheduler(&mockEnqueuer{}, fixedSchedule("*/30 * * * *"), config.Verification{Enabled: true, Schedule: "0 3 * * *"})

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()
	assert.Equal(t, "*/30 * * * *", s.Schedule())
}

func TestVerifySchedulerInvalidSchedule(t *testing.T) {
	s := NewVerifyScheduler(&mockEnqueuer{}, nil, config.Verification{Enabled: true, Schedule: "whenever"})

	err := s.Start(context.Background())
	assert.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestVerifySchedulerStopsWithContext(t *testing.T) {
	s := NewVerifyScheduler(&mockEnqueuer{}, nil, config.Verification{Enabled: true, Schedule: "0 3 * * *"})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
}

type mutableSchedule struct {
	mu       sync.Mutex
	schedule string
}

func (m *mutableSchedule) set(schedule string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedule = schedule
}

func (m *mutableSchedule) GetVerifySchedule(context.Context, string) settingsstore.VerifyScheduleInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return settingsstore.VerifyScheduleInfo{Schedule: m.schedule, Source: settingsstore.SourceDatabase}
}

func TestVerifySchedulerReschedule(t *testing.T) {
	schedules := &mutableSchedule{schedule: "0 3 * * *"}
	s := NewVerifyScheduler(&mockEnqueuer{}, schedules, config.Verification{Enabled: true, Schedule: "0 3 * * *"})

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	schedules.set("*/15 * * * *")
	require.NoError(t, s.Reschedule(context.Background()))
	assert.True(t, s.IsRunning())
	assert.Equal(t, "*/15 * * * *", s.Schedule())
	assert.Len(t, s.cron.Entries(), 1)

	// A short-lived context does not stop the running scheduler.
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Reschedule(ctx))
	cancel()
	time.Sleep(20 * time.Millisecond)
	assert.True(t, s.IsRunning())

	schedules.set("never")
	assert.Error(t, s.Reschedule(context.Background()))
	assert.Equal(t, "*/15 * * * *", s.Schedule())
}

func TestVerifySchedulerRescheduleWhenStopped(t *testing.T) {
	s := NewVerifyScheduler(&mockEnqueuer{}, nil, config.Verification{Enabled: false, Schedule: "0 3 * * *"})

	require.NoError(t, s.Reschedule(context.Background()))
	assert.False(t, s.IsRunning())
}

func TestVerifySchedulerRunNow(t *testing.T) {
	enqueuer := &mockEnqueuer{}
	s := NewVerifyScheduler(enqueuer, nil, config.Verification{})

	id, err := s.RunNow()
	require.NoError(t, err)
	assert.Equal(t, "task-1", id)
	require.Len(t, enqueuer.tasks, 1)
	assert.IsType(t, tasks.VerifyCorpusTask{}, enqueuer.tasks[0])

	enqueuer.err = errors.New("queue closed")
	_, err = s.RunNow()
	assert.Error(t, err)

	// The scheduled job only logs failures.
	s.enqueue()
}
