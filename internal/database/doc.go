// Package database opens the two SQLite stores the reader works with.
//
// # Architecture
//
// Corpus text and user data live in separate files so the corpus can be
// replaced or re-imported without touching bookmarks:
//
//	database/
//	├── database.go      # Store handles, schema creation
//	├── corpus/          # Canto, chapter and verse reads; importer writes
//	├── bookmarks/       # Bookmark list, toggle and removal
//	└── settings/        # Key-value settings (last read position etc.)
//
// Schema creation is idempotent: opening an existing file leaves its
// tables and rows as they are.
//
// # Using Sub-packages
//
//	corpusDB, err := database.NewCorpusDatabase("./srimad-bhagavatam.db", database.DefaultOptions())
//	userDB, err := database.NewBookmarksDatabase("./bookmarks.db", database.DefaultOptions())
//
//	corpusRepo := corpus.NewRepository(corpusDB.DB)
//	bookmarksRepo := bookmarks.NewRepository(userDB.DB)
//	settingsRepo := settings.NewRepository(userDB.DB)
//
// Each handle holds a single connection, so operations issued against one
// store run in the order they were issued.
package database
