// Package interstitial rate-limits the ad shown around navigation events.
//
// The reader core never calls into this package; presentation code (here
// the navigation endpoint) does, before it takes a step.
package interstitial

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultFrequency is the minimum gap between two interstitials.
const DefaultFrequency = 4 * time.Hour

// Presenter shows an interstitial if one is loaded and reports whether it
// was shown.
type Presenter interface {
	Show(ctx context.Context) (bool, error)
}

// TimestampStore persists the time the last interstitial was shown.
type TimestampStore interface {
	GetLastInterstitialAt(ctx context.Context) (*time.Time, error)
	SetLastInterstitialAt(ctx context.Context, at time.Time) error
}

// Clock returns the current time.
type Clock func() time.Time

type Gate struct {
	presenter Presenter
	store     TimestampStore
	frequency time.Duration
	clock     Clock

	mu sync.Mutex
}

// NewGate creates a gate. A non-positive frequency uses DefaultFrequency and
// a nil clock uses time.Now.
func NewGate(presenter Presenter, store TimestampStore, frequency time.Duration, clock Clock) *Gate {
	if frequency <= 0 {
		frequency = DefaultFrequency
	}
	if clock == nil {
		clock = time.Now
	}
	return &Gate{presenter: presenter, store: store, frequency: frequency, clock: clock}
}

// MaybeShowInterstitial shows an interstitial when at least one frequency
// window has passed since the last one. If the stored timestamp cannot be
// read it tries to show anyway. The timestamp is only updated when the
// presenter actually showed something.
func (g *Gate) MaybeShowInterstitial(ctx context.Context) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock()

	last, err := g.store.GetLastInterstitialAt(ctx)
	if err != nil {
		log.Printf("Failed to read last interstitial time, showing anyway: %v", err)
		last = nil
	}
	if last != nil && now.Sub(*last) < g.frequency {
		return false
	}

	shown, err := g.presenter.Show(ctx)
	if err != nil {
		log.Printf("Failed to show interstitial: %v", err)
		return false
	}
	if !shown {
		return false
	}

	if err := g.store.SetLastInterstitialAt(ctx, now); err != nil {
		log.Printf("Failed to record interstitial time: %v", err)
	}
	return true
}

// LogPresenter stands in for a real ad network: it always reports an
// interstitial as shown and logs it.
type LogPresenter struct{}

func (LogPresenter) Show(context.Context) (bool, error) {
	log.Printf("Showing interstitial")
	return true, nil
}
