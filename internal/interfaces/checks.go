package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/sbreader/internal/database"
	"github.com/mrlokans/sbreader/internal/database/bookmarks"
	"github.com/mrlokans/sbreader/internal/database/corpus"
	"github.com/mrlokans/sbreader/internal/database/settings"
	"github.com/mrlokans/sbreader/internal/http"
	"github.com/mrlokans/sbreader/internal/importers"
	"github.com/mrlokans/sbreader/internal/interstitial"
	"github.com/mrlokans/sbreader/internal/scheduler"
	"github.com/mrlokans/sbreader/internal/services"
	"github.com/mrlokans/sbreader/internal/settingsstore"
	"github.com/mrlokans/sbreader/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.CorpusReader = (*corpus.Repository)(nil)
var _ importers.CorpusWriter = (*corpus.Repository)(nil)
var _ http.CorpusStore = (*corpus.Repository)(nil)
var _ http.StatsSource = (*corpus.Repository)(nil)

var _ http.BookmarkStore = (*bookmarks.Repository)(nil)
var _ http.BookmarkCounter = (*bookmarks.Repository)(nil)

var _ settingsstore.Store = (*settings.Repository)(nil)

var _ http.Pinger = (*database.Database)(nil)
var _ http.Pinger = (*tasks.Client)(nil)

// =============================================================================
// Reading Services
// =============================================================================

var _ http.ChapterReader = (*services.Reader)(nil)
var _ http.VerseNavigator = (*services.Navigator)(nil)
var _ http.PositionResolver = (*services.Search)(nil)

// =============================================================================
// Settings and Interstitial
// =============================================================================

var _ http.LastReadStore = (*settingsstore.SettingsStore)(nil)
var _ http.VerificationSettings = (*settingsstore.SettingsStore)(nil)
var _ interstitial.TimestampStore = (*settingsstore.SettingsStore)(nil)
var _ interstitial.Presenter = interstitial.LogPresenter{}
var _ http.InterstitialGate = (*interstitial.Gate)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ tasks.CorpusImporter = (*importers.CorpusImporter)(nil)
var _ tasks.KeyOrderChecker = (*corpus.Repository)(nil)
var _ tasks.VerifyStatusRecorder = (*settingsstore.SettingsStore)(nil)
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
var _ scheduler.ScheduleSource = (*settingsstore.SettingsStore)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)
var _ http.VerificationScheduler = (*scheduler.VerifyScheduler)(nil)
