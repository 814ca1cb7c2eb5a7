package services

import (
	"context"
	"fmt"

	"github.com/mrlokans/sbreader/internal/database"
	"github.com/mrlokans/sbreader/internal/entities"
)

// Navigator steps verse by verse through the corpus, rolling over into the
// neighbouring chapter at chapter boundaries.
type Navigator struct {
	corpus CorpusReader
}

func NewNavigator(corpus CorpusReader) *Navigator {
	return &Navigator{corpus: corpus}
}

// Step moves one verse from (chapterID, verseNumber) in direction. Past
// the last verse it lands on the first verse of the next chapter; before
// the first verse it lands on the last verse of the previous one.
// Chapters without verses are skipped. found is false at either end of the
// corpus or when the starting verse does not exist.
func (n *Navigator) Step(ctx context.Context, chapterID uint, verseNumber int, direction entities.Direction) (Position, bool, error) {
	if !direction.Valid() {
		return Position{}, false, fmt.Errorf("%w: %q", database.ErrInvalidDirection, direction)
	}

	chapter, found, err := n.corpus.GetChapter(ctx, chapterID)
	if err != nil || !found {
		return Position{}, false, err
	}

	verses, err := n.corpus.ListVerses(ctx, chapterID)
	if err != nil {
		return Position{}, false, err
	}

	idx := indexOfVerse(verses, verseNumber)
	if idx < 0 {
		return Position{}, false, nil
	}

	target := idx + 1
	if direction == entities.Previous {
		target = idx - 1
	}
	if target >= 0 && target < len(verses) {
		return positionOf(*chapter, verses[target].VerseNumber), true, nil
	}

	return n.roll(ctx, chapter.ID, direction)
}

func (n *Navigator) roll(ctx context.Context, chapterID uint, direction entities.Direction) (Position, bool, error) {
	current := chapterID
	for {
		neighbor, found, err := n.corpus.NeighborChapter(ctx, current, direction)
		if err != nil || !found {
			return Position{}, false, err
		}

		verses, err := n.corpus.ListVerses(ctx, neighbor.ID)
		if err != nil {
			return Position{}, false, err
		}
		if len(verses) > 0 {
			verse := verses[0]
			if direction == entities.Previous {
				verse = verses[len(verses)-1]
			}
			return positionOf(*neighbor, verse.VerseNumber), true, nil
		}
		current = neighbor.ID
	}
}

func indexOfVerse(verses []entities.Verse, verseNumber int) int {
	for i, v := range verses {
		if v.VerseNumber == verseNumber {
			return i
		}
	}
	return -1
}
