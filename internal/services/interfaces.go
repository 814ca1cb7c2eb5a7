package services

import (
	"context"

	"github.com/mrlokans/sbreader/internal/entities"
)

// CorpusReader provides read-only access to cantos, chapters and verses.
// Missing rows are reported through found=false or empty slices, never as
// errors.
type CorpusReader interface {
	ListCantos(ctx context.Context) ([]entities.Canto, error)
	GetCanto(ctx context.Context, cantoID uint) (*entities.Canto, bool, error)
	ListChapters(ctx context.Context, cantoID uint) ([]entities.Chapter, error)
	GetChapter(ctx context.Context, chapterID uint) (*entities.Chapter, bool, error)
	ResolveChapterID(ctx context.Context, cantoID uint, chapterNumber int) (uint, bool, error)
	ListVerses(ctx context.Context, chapterID uint) ([]entities.Verse, error)
	GetVerse(ctx context.Context, chapterID uint, verseNumber int) (*entities.Verse, bool, error)
	NeighborChapter(ctx context.Context, chapterID uint, direction entities.Direction) (*entities.Chapter, bool, error)
}

// Position is a verse location in both coordinate systems: surrogate keys
// for queries and numbers for display and last-read records.
type Position struct {
	CantoID       uint `json:"cantoId"`
	ChapterID     uint `json:"chapterId"`
	ChapterNumber int  `json:"chapterNumber"`
	VerseNumber   int  `json:"verseNumber"`
}

// LastRead converts the position into the record saved on navigation away.
func (p Position) LastRead() entities.LastReadPosition {
	return entities.LastReadPosition{
		CantoID:           p.CantoID,
		ChapterCoordinate: p.ChapterNumber,
		VerseNumber:       p.VerseNumber,
	}
}

func positionOf(chapter entities.Chapter, verseNumber int) Position {
	return Position{
		CantoID:       chapter.CantoID,
		ChapterID:     chapter.ID,
		ChapterNumber: chapter.ChapterNumber,
		VerseNumber:   verseNumber,
	}
}
