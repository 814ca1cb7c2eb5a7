// Package settingsstore exposes typed accessors over the key-value
// settings area: the last read position, the interstitial rate-limit
// timestamp and the corpus verification schedule.
package settingsstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/mrlokans/sbreader/internal/entities"
)

// Store is the raw key-value area the typed accessors sit on.
type Store interface {
	GetSetting(ctx context.Context, key string) (*entities.Setting, error)
	SetSetting(ctx context.Context, key, value string) error
	DeleteSetting(ctx context.Context, key string) error
}

type SettingsStore struct {
	store Store
}

func New(store Store) *SettingsStore {
	return &SettingsStore{store: store}
}

// SaveLastRead overwrites the single last read record.
func (s *SettingsStore) SaveLastRead(ctx context.Context, pos entities.LastReadPosition) error {
	data, err := json.Marshal(pos)
	if err != nil {
		return fmt.Errorf("encode last read position: %w", err)
	}
	if err := s.store.SetSetting(ctx, entities.SettingKeyLastReadVerse, string(data)); err != nil {
		log.Printf("Failed to save last read position: %v", err)
		return err
	}
	return nil
}

// LoadLastRead returns the saved position. found is false when nothing was
// ever saved or the stored record cannot be decoded.
func (s *SettingsStore) LoadLastRead(ctx context.Context) (*entities.LastReadPosition, bool, error) {
	setting, err := s.store.GetSetting(ctx, entities.SettingKeyLastReadVerse)
	if err != nil {
		return nil, false, err
	}
	if setting == nil || setting.Value == "" {
		return nil, false, nil
	}

	var pos entities.LastReadPosition
	if err := json.Unmarshal([]byte(setting.Value), &pos); err != nil {
		log.Printf("Ignoring unreadable last read record %q: %v", setting.Value, err)
		return nil, false, nil
	}
	return &pos, true, nil
}

func (s *SettingsStore) ClearLastRead(ctx context.Context) error {
	return s.store.DeleteSetting(ctx, entities.SettingKeyLastReadVerse)
}

// GetLastInterstitialAt returns when an interstitial was last shown, or
// nil when never.
func (s *SettingsStore) GetLastInterstitialAt(ctx context.Context) (*time.Time, error) {
	return s.getTime(ctx, entities.SettingKeyLastAdShownTime)
}

func (s *SettingsStore) SetLastInterstitialAt(ctx context.Context, at time.Time) error {
	return s.store.SetSetting(ctx, entities.SettingKeyLastAdShownTime, at.UTC().Format(time.RFC3339Nano))
}

func (s *SettingsStore) getTime(ctx context.Context, key string) (*time.Time, error) {
	setting, err := s.store.GetSetting(ctx, key)
	if err != nil {
		return nil, err
	}
	if setting == nil || setting.Value == "" {
		return nil, nil
	}
	ts, err := time.Parse(time.RFC3339Nano, setting.Value)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", key, err)
	}
	return &ts, nil
}
