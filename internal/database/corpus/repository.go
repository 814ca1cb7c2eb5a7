// Package corpus provides the read and import-side write operations over
// the Cantos, Chapters and Verses tables.
//
// Reads never treat a missing row as an error: list operations return an
// empty slice and point lookups return found=false.
//
// # Usage
//
//	repo := corpus.NewRepository(db.DB)
//	chapters, err := repo.ListChapters(ctx, cantoID)
//	id, found, err := repo.ResolveChapterID(ctx, cantoID, 5)
package corpus

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/sbreader/internal/database"
	"github.com/mrlokans/sbreader/internal/entities"
)

// Repository handles all corpus database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new corpus repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListCantos returns every canto in storage order.
func (r *Repository) ListCantos(ctx context.Context) ([]entities.Canto, error) {
	cantos := []entities.Canto{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&cantos).Error; err != nil {
		return nil, fmt.Errorf("list cantos: %w", err)
	}
	return cantos, nil
}

// GetCanto looks a canto up by its surrogate key.
func (r *Repository) GetCanto(ctx context.Context, cantoID uint) (*entities.Canto, bool, error) {
	var canto entities.Canto
	err := r.db.WithContext(ctx).Where("id = ?", cantoID).First(&canto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get canto %d: %w", cantoID, err)
	}
	return &canto, true, nil
}

// GetCantoTitle returns the canto's title, or "" when the canto does not exist.
func (r *Repository) GetCantoTitle(ctx context.Context, cantoID uint) (string, error) {
	canto, found, err := r.GetCanto(ctx, cantoID)
	if err != nil || !found {
		return "", err
	}
	return canto.Title, nil
}

// ListChapters returns the canto's chapters ordered by chapter number.
func (r *Repository) ListChapters(ctx context.Context, cantoID uint) ([]entities.Chapter, error) {
	chapters := []entities.Chapter{}
	err := r.db.WithContext(ctx).
		Where(`"cantoId" = ?`, cantoID).
		Order(`"chapterNumber" ASC`).
		Find(&chapters).Error
	if err != nil {
		return nil, fmt.Errorf("list chapters of canto %d: %w", cantoID, err)
	}
	return chapters, nil
}

// ResolveChapterID finds the chapter row for a (canto, chapter number) pair.
func (r *Repository) ResolveChapterID(ctx context.Context, cantoID uint, chapterNumber int) (uint, bool, error) {
	chapter, found, err := r.FindChapter(ctx, cantoID, chapterNumber)
	if err != nil || !found {
		return 0, false, err
	}
	return chapter.ID, true, nil
}

// GetChapter looks a chapter up by its surrogate key.
func (r *Repository) GetChapter(ctx context.Context, chapterID uint) (*entities.Chapter, bool, error) {
	var chapter entities.Chapter
	err := r.db.WithContext(ctx).Where("id = ?", chapterID).First(&chapter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get chapter %d: %w", chapterID, err)
	}
	return &chapter, true, nil
}

// ListVerses returns the chapter's verses ordered by verse number.
func (r *Repository) ListVerses(ctx context.Context, chapterID uint) ([]entities.Verse, error) {
	verses := []entities.Verse{}
	err := r.db.WithContext(ctx).
		Where(`"chapterId" = ?`, chapterID).
		Order(`"verseNumber" ASC`).
		Find(&verses).Error
	if err != nil {
		return nil, fmt.Errorf("list verses of chapter %d: %w", chapterID, err)
	}
	return verses, nil
}

// GetVerse fetches a single verse by chapter and verse number.
func (r *Repository) GetVerse(ctx context.Context, chapterID uint, verseNumber int) (*entities.Verse, bool, error) {
	return r.FindVerse(ctx, chapterID, verseNumber)
}

// NeighborChapter returns the chapter with the next greater (Next) or next
// lesser (Previous) surrogate key. Traversal follows key order, not chapter
// numbers; the importer inserts rows in corpus order so the two agree.
func (r *Repository) NeighborChapter(ctx context.Context, chapterID uint, direction entities.Direction) (*entities.Chapter, bool, error) {
	query := r.db.WithContext(ctx)
	switch direction {
	case entities.Next:
		query = query.Where("id > ?", chapterID).Order("id ASC")
	case entities.Previous:
		query = query.Where("id < ?", chapterID).Order("id DESC")
	default:
		return nil, false, fmt.Errorf("%w: %q", database.ErrInvalidDirection, direction)
	}

	var chapter entities.Chapter
	err := query.Limit(1).Take(&chapter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s chapter of %d: %w", direction, chapterID, err)
	}
	return &chapter, true, nil
}

type chapterOrderRow struct {
	ID            uint
	CantoNumber   int
	ChapterNumber int
}

// CheckKeyOrder walks every chapter in surrogate key order and reports each
// adjacent pair whose (cantoNumber, chapterNumber) order is reversed.
func (r *Repository) CheckKeyOrder(ctx context.Context) ([]entities.OrderViolation, error) {
	var rows []chapterOrderRow
	err := r.db.WithContext(ctx).
		Table(`"Chapters" AS ch`).
		Select(`ch.id AS id, c."cantoNumber" AS canto_number, ch."chapterNumber" AS chapter_number`).
		Joins(`JOIN "Cantos" AS c ON c.id = ch."cantoId"`).
		Order("ch.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("check chapter key order: %w", err)
	}

	violations := []entities.OrderViolation{}
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if cur.CantoNumber > prev.CantoNumber ||
			(cur.CantoNumber == prev.CantoNumber && cur.ChapterNumber > prev.ChapterNumber) {
			continue
		}
		violations = append(violations, entities.OrderViolation{
			ChapterID:         prev.ID,
			CantoNumber:       prev.CantoNumber,
			ChapterNumber:     prev.ChapterNumber,
			NextChapterID:     cur.ID,
			NextCantoNumber:   cur.CantoNumber,
			NextChapterNumber: cur.ChapterNumber,
		})
	}
	return violations, nil
}

// Stats returns row counts for each corpus table.
func (r *Repository) Stats(ctx context.Context) (entities.CorpusStats, error) {
	var stats entities.CorpusStats
	db := r.db.WithContext(ctx)
	if err := db.Model(&entities.Canto{}).Count(&stats.Cantos).Error; err != nil {
		return stats, fmt.Errorf("count cantos: %w", err)
	}
	if err := db.Model(&entities.Chapter{}).Count(&stats.Chapters).Error; err != nil {
		return stats, fmt.Errorf("count chapters: %w", err)
	}
	if err := db.Model(&entities.Verse{}).Count(&stats.Verses).Error; err != nil {
		return stats, fmt.Errorf("count verses: %w", err)
	}
	return stats, nil
}
