package importers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/mrlokans/sbreader/internal/entities"
)

// CorpusWriter is the slice of the corpus repository the importer needs.
// Find methods report found=false for missing rows; Create methods fill in
// the surrogate key.
type CorpusWriter interface {
	FindCantoByNumber(ctx context.Context, cantoNumber int) (*entities.Canto, bool, error)
	CreateCanto(ctx context.Context, canto *entities.Canto) error
	FindChapter(ctx context.Context, cantoID uint, chapterNumber int) (*entities.Chapter, bool, error)
	CreateChapter(ctx context.Context, chapter *entities.Chapter) error
	FindVerse(ctx context.Context, chapterID uint, verseNumber int) (*entities.Verse, bool, error)
	CreateVerse(ctx context.Context, verse *entities.Verse) error
}

// State is a canto's position in the import state machine.
type State int

const (
	StatePendingCanto State = iota
	StatePendingChapters
	StatePendingVerses
	StateDone
)

func (s State) String() string {
	switch s {
	case StatePendingCanto:
		return "pending_canto"
	case StatePendingChapters:
		return "pending_chapters"
	case StatePendingVerses:
		return "pending_verses"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ImportResult contains the outcome of an import run.
type ImportResult struct {
	CantosCreated    int      `json:"cantos_created"`
	CantosExisting   int      `json:"cantos_existing"`
	ChaptersCreated  int      `json:"chapters_created"`
	ChaptersExisting int      `json:"chapters_existing"`
	VersesCreated    int      `json:"verses_created"`
	VersesExisting   int      `json:"verses_existing"`
	Failed           int      `json:"failed"`
	Errors           []string `json:"errors,omitempty"`
}

// Created returns the total number of rows inserted.
func (r ImportResult) Created() int {
	return r.CantosCreated + r.ChaptersCreated + r.VersesCreated
}

func (r *ImportResult) fail(err error) {
	log.Printf("[IMPORT] %v", err)
	r.Failed++
	r.Errors = append(r.Errors, err.Error())
}

// ErrInvalidRow marks a document row whose natural key is not positive.
var ErrInvalidRow = errors.New("invalid row")

// CorpusImporter applies a corpus document to the store.
type CorpusImporter struct {
	writer CorpusWriter
}

// NewCorpusImporter creates an importer writing through writer.
func NewCorpusImporter(writer CorpusWriter) *CorpusImporter {
	return &CorpusImporter{writer: writer}
}

// cantoRun carries one canto through the state machine.
type cantoRun struct {
	doc     entities.CantoDocument
	state   State
	cantoID uint

	chapters []entities.ChapterDocument
	next     int // index into chapters of the chapter to ensure next
	current  *entities.ChapterDocument
	chapter  uint
}

// Import writes every missing canto, chapter and verse of doc. Rows that
// fail are skipped and reported in the result. The returned error is only
// set when ctx is done; the result then covers the rows handled so far.
func (i *CorpusImporter) Import(ctx context.Context, doc entities.CorpusDocument) (ImportResult, error) {
	result := ImportResult{}

	cantos := make([]entities.CantoDocument, len(doc))
	copy(cantos, doc)
	sort.SliceStable(cantos, func(a, b int) bool {
		return cantos[a].CantoNumber < cantos[b].CantoNumber
	})

	for _, canto := range cantos {
		run := &cantoRun{doc: canto, state: StatePendingCanto}
		for run.state != StateDone {
			if err := ctx.Err(); err != nil {
				log.Printf("[IMPORT] Interrupted at canto %d (%s): %v", canto.CantoNumber, run.state, err)
				return result, err
			}
			run.state = i.step(ctx, run, &result)
		}
	}

	log.Printf("[IMPORT] Completed: %d created, %d cantos, %d chapters and %d verses already present, %d failed",
		result.Created(), result.CantosExisting, result.ChaptersExisting, result.VersesExisting, result.Failed)

	return result, nil
}

func (i *CorpusImporter) step(ctx context.Context, run *cantoRun, result *ImportResult) State {
	switch run.state {
	case StatePendingCanto:
		return i.ensureCanto(ctx, run, result)
	case StatePendingChapters:
		return i.ensureNextChapter(ctx, run, result)
	case StatePendingVerses:
		return i.ensureVerses(ctx, run, result)
	default:
		return StateDone
	}
}

func (i *CorpusImporter) ensureCanto(ctx context.Context, run *cantoRun, result *ImportResult) State {
	number := run.doc.CantoNumber
	if number <= 0 {
		result.fail(fmt.Errorf("%w: canto number %d", ErrInvalidRow, number))
		return StateDone
	}

	existing, found, err := i.writer.FindCantoByNumber(ctx, number)
	if err != nil {
		result.fail(fmt.Errorf("canto %d: %w", number, err))
		return StateDone
	}

	if found {
		run.cantoID = existing.ID
		result.CantosExisting++
	} else {
		canto := entities.Canto{CantoNumber: number, Title: run.doc.Title}
		if err := i.writer.CreateCanto(ctx, &canto); err != nil {
			result.fail(fmt.Errorf("canto %d: %w", number, err))
			return StateDone
		}
		run.cantoID = canto.ID
		result.CantosCreated++
	}

	run.chapters = make([]entities.ChapterDocument, len(run.doc.Chapters))
	copy(run.chapters, run.doc.Chapters)
	sort.SliceStable(run.chapters, func(a, b int) bool {
		return run.chapters[a].ChapterNumber < run.chapters[b].ChapterNumber
	})
	return StatePendingChapters
}

func (i *CorpusImporter) ensureNextChapter(ctx context.Context, run *cantoRun, result *ImportResult) State {
	if run.next >= len(run.chapters) {
		return StateDone
	}
	doc := &run.chapters[run.next]
	run.next++

	cantoNumber := run.doc.CantoNumber
	if doc.ChapterNumber <= 0 {
		result.fail(fmt.Errorf("%w: canto %d chapter number %d", ErrInvalidRow, cantoNumber, doc.ChapterNumber))
		return StatePendingChapters
	}

	existing, found, err := i.writer.FindChapter(ctx, run.cantoID, doc.ChapterNumber)
	if err != nil {
		result.fail(fmt.Errorf("canto %d chapter %d: %w", cantoNumber, doc.ChapterNumber, err))
		return StatePendingChapters
	}

	if found {
		run.chapter = existing.ID
		result.ChaptersExisting++
	} else {
		chapter := entities.Chapter{CantoID: run.cantoID, ChapterNumber: doc.ChapterNumber, Name: optional(doc.Name)}
		if err := i.writer.CreateChapter(ctx, &chapter); err != nil {
			result.fail(fmt.Errorf("canto %d chapter %d: %w", cantoNumber, doc.ChapterNumber, err))
			return StatePendingChapters
		}
		run.chapter = chapter.ID
		result.ChaptersCreated++
	}

	run.current = doc
	return StatePendingVerses
}

func (i *CorpusImporter) ensureVerses(ctx context.Context, run *cantoRun, result *ImportResult) State {
	verses := make([]entities.VerseDocument, len(run.current.Verses))
	copy(verses, run.current.Verses)
	sort.SliceStable(verses, func(a, b int) bool {
		return verses[a].VerseNumber < verses[b].VerseNumber
	})

	for _, doc := range verses {
		if ctx.Err() != nil {
			// Picked up by the Import loop.
			return StatePendingChapters
		}
		i.ensureVerse(ctx, run, doc, result)
	}

	run.current = nil
	return StatePendingChapters
}

func (i *CorpusImporter) ensureVerse(ctx context.Context, run *cantoRun, doc entities.VerseDocument, result *ImportResult) {
	where := fmt.Sprintf("canto %d chapter %d verse %d", run.doc.CantoNumber, run.current.ChapterNumber, doc.VerseNumber)
	if doc.VerseNumber <= 0 {
		result.fail(fmt.Errorf("%w: %s", ErrInvalidRow, where))
		return
	}

	_, found, err := i.writer.FindVerse(ctx, run.chapter, doc.VerseNumber)
	if err != nil {
		result.fail(fmt.Errorf("%s: %w", where, err))
		return
	}
	if found {
		result.VersesExisting++
		return
	}

	verse := entities.Verse{
		ChapterID:   run.chapter,
		VerseNumber: doc.VerseNumber,
		Text:        entities.JoinLines(doc.Text),
		Synonyms:    doc.Synonyms,
		Translation: doc.Translation,
		Purport:     entities.JoinLines(doc.Purport),
	}
	if err := i.writer.CreateVerse(ctx, &verse); err != nil {
		result.fail(fmt.Errorf("%s: %w", where, err))
		return
	}
	result.VersesCreated++
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
