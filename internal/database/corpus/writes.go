package corpus

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/sbreader/internal/entities"
)

// The operations below back the importer. Each Find is the existence check
// on a natural key; each Create inserts exactly one row.

// FindCantoByNumber looks a canto up by its canto number.
func (r *Repository) FindCantoByNumber(ctx context.Context, cantoNumber int) (*entities.Canto, bool, error) {
	var canto entities.Canto
	err := r.db.WithContext(ctx).Where(`"cantoNumber" = ?`, cantoNumber).First(&canto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find canto %d: %w", cantoNumber, err)
	}
	return &canto, true, nil
}

// CreateCanto inserts a canto and fills in its surrogate key.
func (r *Repository) CreateCanto(ctx context.Context, canto *entities.Canto) error {
	if err := r.db.WithContext(ctx).Create(canto).Error; err != nil {
		return fmt.Errorf("create canto %d: %w", canto.CantoNumber, err)
	}
	return nil
}

// FindChapter looks a chapter up by its owning canto and chapter number.
func (r *Repository) FindChapter(ctx context.Context, cantoID uint, chapterNumber int) (*entities.Chapter, bool, error) {
	var chapter entities.Chapter
	err := r.db.WithContext(ctx).
		Where(`"cantoId" = ? AND "chapterNumber" = ?`, cantoID, chapterNumber).
		First(&chapter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find chapter %d of canto %d: %w", chapterNumber, cantoID, err)
	}
	return &chapter, true, nil
}

// CreateChapter inserts a chapter and fills in its surrogate key.
func (r *Repository) CreateChapter(ctx context.Context, chapter *entities.Chapter) error {
	if err := r.db.WithContext(ctx).Omit("Canto").Create(chapter).Error; err != nil {
		return fmt.Errorf("create chapter %d of canto %d: %w", chapter.ChapterNumber, chapter.CantoID, err)
	}
	return nil
}

// FindVerse looks a verse up by its owning chapter and verse number.
func (r *Repository) FindVerse(ctx context.Context, chapterID uint, verseNumber int) (*entities.Verse, bool, error) {
	var verse entities.Verse
	err := r.db.WithContext(ctx).
		Where(`"chapterId" = ? AND "verseNumber" = ?`, chapterID, verseNumber).
		First(&verse).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find verse %d of chapter %d: %w", verseNumber, chapterID, err)
	}
	return &verse, true, nil
}

// CreateVerse inserts a verse and fills in its surrogate key.
func (r *Repository) CreateVerse(ctx context.Context, verse *entities.Verse) error {
	if err := r.db.WithContext(ctx).Omit("Chapter").Create(verse).Error; err != nil {
		return fmt.Errorf("create verse %d of chapter %d: %w", verse.VerseNumber, verse.ChapterID, err)
	}
	return nil
}
