package settingsstore

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/sbreader/internal/entities"
)

const (
	SourceDatabase = "database"
	SourceConfig   = "config"
)

// VerifyScheduleInfo is the effective verification schedule and where it
// came from.
type VerifyScheduleInfo struct {
	Schedule string     `json:"schedule"`
	Source   string     `json:"source"`
	NextRun  *time.Time `json:"next_run,omitempty"`
}

// VerifyStatus is the outcome of the most recent corpus verification.
type VerifyStatus struct {
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
	Status    string     `json:"status,omitempty"` // "success", "failed", ""
	Message   string     `json:"message,omitempty"`
}

// GetVerifySchedule returns the stored schedule override, falling back to
// the configured one.
func (s *SettingsStore) GetVerifySchedule(ctx context.Context, configured string) VerifyScheduleInfo {
	info := VerifyScheduleInfo{Schedule: configured, Source: SourceConfig}

	setting, err := s.store.GetSetting(ctx, entities.SettingKeyVerifySchedule)
	if err == nil && setting != nil && setting.Value != "" {
		info.Schedule = setting.Value
		info.Source = SourceDatabase
	}

	if next, err := GetNextRunTime(info.Schedule); err == nil {
		info.NextRun = next
	}
	return info
}

// SetVerifySchedule stores a schedule override after validating it.
func (s *SettingsStore) SetVerifySchedule(ctx context.Context, schedule string) error {
	if err := ValidateCronSchedule(schedule); err != nil {
		return err
	}
	return s.store.SetSetting(ctx, entities.SettingKeyVerifySchedule, schedule)
}

// ClearVerifySchedule drops the override, reverting to config.
func (s *SettingsStore) ClearVerifySchedule(ctx context.Context) error {
	return s.store.DeleteSetting(ctx, entities.SettingKeyVerifySchedule)
}

func (s *SettingsStore) GetVerifyStatus(ctx context.Context) VerifyStatus {
	status := VerifyStatus{}

	if ts, err := s.getTime(ctx, entities.SettingKeyVerifyLastAt); err == nil {
		status.LastRunAt = ts
	}
	if setting, err := s.store.GetSetting(ctx, entities.SettingKeyVerifyLastStatus); err == nil && setting != nil {
		status.Status = setting.Value
	}
	if setting, err := s.store.GetSetting(ctx, entities.SettingKeyVerifyLastMessage); err == nil && setting != nil {
		status.Message = setting.Value
	}
	return status
}

// SetVerifyStatus records the outcome of a verification run.
func (s *SettingsStore) SetVerifyStatus(ctx context.Context, status, message string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	if err := s.store.SetSetting(ctx, entities.SettingKeyVerifyLastAt, now); err != nil {
		return err
	}
	if err := s.store.SetSetting(ctx, entities.SettingKeyVerifyLastStatus, status); err != nil {
		return err
	}
	return s.store.SetSetting(ctx, entities.SettingKeyVerifyLastMessage, message)
}

func cronParser() cron.Parser {
	return cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
}

// ValidateCronSchedule validates a five-field cron schedule string.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser().Parse(schedule)
	return err
}

// GetNextRunTime calculates when the schedule fires next.
func GetNextRunTime(schedule string) (*time.Time, error) {
	sched, err := cronParser().Parse(schedule)
	if err != nil {
		return nil, err
	}
	next := sched.Next(time.Now())
	return &next, nil
}
