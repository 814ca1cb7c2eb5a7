package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mrlokans/sbreader/internal/database"
	"github.com/mrlokans/sbreader/internal/entities"
)

// Search resolves verse coordinates typed in by the reader.
type Search struct {
	corpus CorpusReader
}

func NewSearch(corpus CorpusReader) *Search {
	return &Search{corpus: corpus}
}

// Coordinates is a (canto id, chapter number, verse number) triple as
// entered in the search form.
type Coordinates struct {
	CantoID       uint
	ChapterNumber int
	VerseNumber   int
}

// ParseCoordinates validates raw form input. Empty fields give
// ErrMissingCoordinate; anything that is not a positive integer gives
// database.ErrInvalidCoordinate.
func ParseCoordinates(canto, chapter, verse string) (Coordinates, error) {
	canto, chapter, verse = strings.TrimSpace(canto), strings.TrimSpace(chapter), strings.TrimSpace(verse)
	if canto == "" || chapter == "" || verse == "" {
		return Coordinates{}, ErrMissingCoordinate
	}

	values := make([]int, 3)
	for i, raw := range []string{canto, chapter, verse} {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Coordinates{}, fmt.Errorf("%w: %q", database.ErrInvalidCoordinate, raw)
		}
		values[i] = n
	}
	return Coordinates{CantoID: uint(values[0]), ChapterNumber: values[1], VerseNumber: values[2]}, nil
}

// Resolve finds the chapter for the coordinates and returns the position to
// open. When the verse itself is missing the position falls back to the
// chapter's first stored verse.
func (s *Search) Resolve(ctx context.Context, c Coordinates) (Position, error) {
	if c.CantoID == 0 || c.ChapterNumber <= 0 || c.VerseNumber <= 0 {
		return Position{}, database.ErrInvalidCoordinate
	}

	chapterID, found, err := s.corpus.ResolveChapterID(ctx, c.CantoID, c.ChapterNumber)
	if err != nil {
		return Position{}, err
	}
	if !found {
		return Position{}, ErrChapterNotFound
	}

	pos := Position{
		CantoID:       c.CantoID,
		ChapterID:     chapterID,
		ChapterNumber: c.ChapterNumber,
		VerseNumber:   c.VerseNumber,
	}

	_, found, err = s.corpus.GetVerse(ctx, chapterID, c.VerseNumber)
	if err != nil {
		return Position{}, err
	}
	if !found {
		first, err := s.firstVerse(ctx, chapterID)
		if err != nil {
			return Position{}, err
		}
		pos.VerseNumber = first
	}
	return pos, nil
}

// firstVerse returns the lowest verse number stored for the chapter. An
// empty chapter opens at verse 1.
func (s *Search) firstVerse(ctx context.Context, chapterID uint) (int, error) {
	verses, err := s.corpus.ListVerses(ctx, chapterID)
	if err != nil {
		return 0, err
	}
	if len(verses) == 0 {
		return 1, nil
	}
	return verses[0].VerseNumber, nil
}

// Resume turns a saved last-read record back into a position. found is
// false when the record no longer points into the corpus.
func (s *Search) Resume(ctx context.Context, last entities.LastReadPosition) (Position, bool, error) {
	if !last.Complete() {
		return Position{}, false, nil
	}
	pos, err := s.Resolve(ctx, Coordinates{
		CantoID:       last.CantoID,
		ChapterNumber: last.ChapterCoordinate,
		VerseNumber:   last.VerseNumber,
	})
	if errors.Is(err, ErrChapterNotFound) {
		return Position{}, false, nil
	}
	if err != nil {
		return Position{}, false, err
	}
	return pos, true, nil
}
