package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/sbreader/internal/entities"
)

// KeyOrderChecker reports chapters whose surrogate key order disagrees
// with their canto and chapter numbers.
type KeyOrderChecker interface {
	CheckKeyOrder(ctx context.Context) ([]entities.OrderViolation, error)
}

// VerifyStatusRecorder stores the outcome of a verification run.
type VerifyStatusRecorder interface {
	SetVerifyStatus(ctx context.Context, status, message string) error
}

// VerifyCorpusTask checks that chapter navigation by key order still
// follows narrative order.
type VerifyCorpusTask struct{}

func (t VerifyCorpusTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "verify_corpus",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// VerifyCorpusProcessor creates a processor function for VerifyCorpusTask.
// recorder may be nil.
func VerifyCorpusProcessor(checker KeyOrderChecker, recorder VerifyStatusRecorder) backlite.QueueProcessor[VerifyCorpusTask] {
	return func(ctx context.Context, task VerifyCorpusTask) error {
		if checker == nil {
			return fmt.Errorf("key order checker not configured")
		}

		violations, err := checker.CheckKeyOrder(ctx)
		if err != nil {
			record(ctx, recorder, "failed", err.Error())
			return fmt.Errorf("verify corpus: %w", err)
		}

		if len(violations) > 0 {
			for _, v := range violations {
				log.Printf("[TASK] Chapter %d (canto %d chapter %d) is followed by chapter %d (canto %d chapter %d)",
					v.ChapterID, v.CantoNumber, v.ChapterNumber, v.NextChapterID, v.NextCantoNumber, v.NextChapterNumber)
			}
			msg := fmt.Sprintf("%d chapters out of order", len(violations))
			record(ctx, recorder, "failed", msg)
			return fmt.Errorf("verify corpus: %s", msg)
		}

		log.Printf("[TASK] Corpus verified: chapter key order matches narrative order")
		record(ctx, recorder, "success", "chapter key order matches narrative order")
		return nil
	}
}

func record(ctx context.Context, recorder VerifyStatusRecorder, status, message string) {
	if recorder == nil {
		return
	}
	if err := recorder.SetVerifyStatus(ctx, status, message); err != nil {
		log.Printf("[TASK] Failed to record verification status: %v", err)
	}
}

// NewVerifyCorpusQueue creates a backlite queue for corpus verification.
func NewVerifyCorpusQueue(checker KeyOrderChecker, recorder VerifyStatusRecorder) backlite.Queue {
	return backlite.NewQueue(VerifyCorpusProcessor(checker, recorder))
}
