package entrypoint

import (
	"errors"
	"fmt"
	"log"

	"github.com/mrlokans/sbreader/internal/config"
	"github.com/mrlokans/sbreader/internal/database"
	"github.com/mrlokans/sbreader/internal/database/bookmarks"
	"github.com/mrlokans/sbreader/internal/database/corpus"
	"github.com/mrlokans/sbreader/internal/database/settings"
	"github.com/mrlokans/sbreader/internal/settingsstore"
)

// Stores bundles the two store handles and the repositories built on them.
// Both handles stay open for the life of the process.
type Stores struct {
	CorpusDB    *database.Database
	BookmarksDB *database.Database

	Corpus    *corpus.Repository
	Bookmarks *bookmarks.Repository
	Settings  *settingsstore.SettingsStore
}

// OpenStores opens the corpus and bookmarks databases, creating their
// tables when missing.
func OpenStores(cfg config.Database) (*Stores, error) {
	opts := database.Options{LogLevel: database.ParseLogLevel(cfg.LogLevel)}

	corpusDB, err := database.NewCorpusDatabase(cfg.CorpusPath, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus store: %w", err)
	}
	bookmarksDB, err := database.NewBookmarksDatabase(cfg.BookmarksPath, opts)
	if err != nil {
		corpusDB.Close()
		return nil, fmt.Errorf("failed to open bookmarks store: %w", err)
	}

	return &Stores{
		CorpusDB:    corpusDB,
		BookmarksDB: bookmarksDB,
		Corpus:      corpus.NewRepository(corpusDB.DB),
		Bookmarks:   bookmarks.NewRepository(bookmarksDB.DB),
		Settings:    settingsstore.New(settings.NewRepository(bookmarksDB.DB)),
	}, nil
}

// Close closes both handles, logging and returning every failure.
func (s *Stores) Close() error {
	var errs []error
	for _, db := range []*database.Database{s.CorpusDB, s.BookmarksDB} {
		if err := db.Close(); err != nil {
			log.Printf("Error closing %s database: %v", db.Name(), err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
