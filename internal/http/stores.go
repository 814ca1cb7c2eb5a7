package http

import (
	"context"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/sbreader/internal/entities"
	"github.com/mrlokans/sbreader/internal/services"
	"github.com/mrlokans/sbreader/internal/settingsstore"
)

// CorpusStore is the read side of the corpus store used by the corpus and
// bookmark controllers.
type CorpusStore interface {
	ListCantos(ctx context.Context) ([]entities.Canto, error)
	GetCanto(ctx context.Context, cantoID uint) (*entities.Canto, bool, error)
	GetChapter(ctx context.Context, chapterID uint) (*entities.Chapter, bool, error)
	ListVerses(ctx context.Context, chapterID uint) ([]entities.Verse, error)
	GetVerse(ctx context.Context, chapterID uint, verseNumber int) (*entities.Verse, bool, error)
	NeighborChapter(ctx context.Context, chapterID uint, direction entities.Direction) (*entities.Chapter, bool, error)
}

// ChapterReader lists chapters with their display titles.
type ChapterReader interface {
	ListChapters(ctx context.Context, cantoID uint) ([]services.ChapterSummary, error)
	Chapter(ctx context.Context, chapterID uint) (*services.ChapterSummary, bool, error)
}

// VerseNavigator steps one verse forward or back across chapter boundaries.
type VerseNavigator interface {
	Step(ctx context.Context, chapterID uint, verseNumber int, direction entities.Direction) (services.Position, bool, error)
}

// PositionResolver resolves typed-in coordinates and saved last-read records.
type PositionResolver interface {
	Resolve(ctx context.Context, c services.Coordinates) (services.Position, error)
	Resume(ctx context.Context, last entities.LastReadPosition) (services.Position, bool, error)
}

// BookmarkStore manages verse bookmarks.
type BookmarkStore interface {
	IsBookmarked(ctx context.Context, key entities.BookmarkKey) (bool, error)
	Remove(ctx context.Context, id uint) error
	RemoveByVerse(ctx context.Context, key entities.BookmarkKey) (int64, error)
	List(ctx context.Context) ([]entities.Bookmark, error)
	Toggle(ctx context.Context, snapshot entities.Bookmark) (bool, error)
}

// LastReadStore persists the singleton last-read position.
type LastReadStore interface {
	SaveLastRead(ctx context.Context, pos entities.LastReadPosition) error
	LoadLastRead(ctx context.Context) (*entities.LastReadPosition, bool, error)
	ClearLastRead(ctx context.Context) error
}

// InterstitialGate decides whether an interstitial is shown on navigation.
type InterstitialGate interface {
	MaybeShowInterstitial(ctx context.Context) bool
}

// StatsSource reports corpus row counts.
type StatsSource interface {
	Stats(ctx context.Context) (entities.CorpusStats, error)
}

// BookmarkCounter reports the number of stored bookmarks.
type BookmarkCounter interface {
	Count(ctx context.Context) (int64, error)
}

// TaskQueue enqueues background tasks and reports their status.
type TaskQueue interface {
	Enqueue(task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// VerificationSettings reads and writes the verification schedule and its
// last outcome.
type VerificationSettings interface {
	GetVerifySchedule(ctx context.Context, configured string) settingsstore.VerifyScheduleInfo
	SetVerifySchedule(ctx context.Context, schedule string) error
	ClearVerifySchedule(ctx context.Context) error
	GetVerifyStatus(ctx context.Context) settingsstore.VerifyStatus
}

// VerificationScheduler is the cron side of corpus verification.
type VerificationScheduler interface {
	Reschedule(ctx context.Context) error
	RunNow() (string, error)
	IsRunning() bool
	GetNextRunTime() *time.Time
}

// Pinger is a dependency checked by the health endpoint.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}
