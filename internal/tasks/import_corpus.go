package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/sbreader/internal/entities"
	"github.com/mrlokans/sbreader/internal/importers"
)

// CorpusImporter applies a corpus document to the store.
type CorpusImporter interface {
	Import(ctx context.Context, doc entities.CorpusDocument) (importers.ImportResult, error)
}

// ImportCorpusTask imports the corpus document at Path. Imports are
// idempotent, so a retried task only fills in what is still missing.
type ImportCorpusTask struct {
	Path string `json:"path"`
}

func (t ImportCorpusTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "import_corpus",
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     10 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ImportCorpusProcessor creates a processor function for ImportCorpusTask.
func ImportCorpusProcessor(importer CorpusImporter) backlite.QueueProcessor[ImportCorpusTask] {
	return func(ctx context.Context, task ImportCorpusTask) error {
		if importer == nil {
			return fmt.Errorf("corpus importer not configured")
		}
		if task.Path == "" {
			return fmt.Errorf("import corpus: path is required")
		}

		doc, err := importers.LoadDocumentFile(task.Path)
		if err != nil {
			return fmt.Errorf("import corpus: %w", err)
		}

		result, err := importer.Import(ctx, doc)
		if err != nil {
			return fmt.Errorf("import corpus from %s: %w", task.Path, err)
		}

		log.Printf("[TASK] Imported %s: %d cantos, %d chapters, %d verses created; %d rows failed",
			task.Path, result.CantosCreated, result.ChaptersCreated, result.VersesCreated, result.Failed)
		return nil
	}
}

// NewImportCorpusQueue creates a backlite queue for corpus imports.
func NewImportCorpusQueue(importer CorpusImporter) backlite.Queue {
	return backlite.NewQueue(ImportCorpusProcessor(importer))
}
