// Package interfaces documents the core abstractions used throughout the application.
//
// This package consolidates interface documentation to help readers find
// the extension points and see which concrete type fills each of them.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - CorpusReader: Read-only access to cantos, chapters and verses (internal/services/interfaces.go)
//   - CorpusWriter: Find-or-create writes used by the importer (internal/importers/pipeline.go)
//   - BookmarkStore: Bookmark toggling and listing (internal/http/stores.go)
//   - Store: Generic key-value settings (internal/settingsstore/settingsstore.go)
//
// ## Presentation Interfaces
//
//   - ChapterReader, VerseNavigator, PositionResolver: Reading services as seen by controllers
//   - LastReadStore: The singleton last-read record
//   - InterstitialGate: Rate-limited interstitial shown around navigation
//
// ## Background Work Interfaces
//
//   - CorpusImporter, KeyOrderChecker, VerifyStatusRecorder: Task processors' dependencies (internal/tasks)
//   - Enqueuer, ScheduleSource: Cron-driven verification (internal/scheduler)
//
// # Adding a New Database Domain
//
// To add a new data domain (e.g., reading notes):
//
//  1. Create sub-package: internal/database/notes/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Add the model to the store it belongs to in internal/database/database.go.
//     Corpus tables and reader state live in separate files and never share a handle.
//
//  4. Define the controller's interface in internal/http/stores.go and add
//     a compile-time check:
//
//     var _ http.NotesStore = (*notes.Repository)(nil)
//
// # Adding a New Background Task
//
//  1. Define the task in internal/tasks/ with a Config() returning a backlite.QueueConfig
//  2. Add a processor and a NewXQueue constructor
//  3. Register the queue in internal/entrypoint and expose it in internal/http/tasks.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
