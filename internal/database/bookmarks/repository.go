// Package bookmarks provides database operations for verse bookmarks.
//
// A bookmark is a snapshot of a verse taken when the reader marked it. It
// lives in the user data store and carries its own copy of the verse text,
// so it survives corpus re-imports.
//
// # Usage
//
//	repo := bookmarks.NewRepository(db.DB)
//	bookmarked, err := repo.Toggle(ctx, entities.NewBookmark(verse, cantoID, chapterNumber))
package bookmarks

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/mrlokans/sbreader/internal/entities"
)

const keyCondition = `"verseId" = ? AND "chapterId" = ? AND "cantoId" = ? AND "chapterNumber" = ?`

// Repository handles all bookmark database operations.
type Repository struct {
	db    *gorm.DB
	locks *keyLocks
}

// NewRepository creates a new bookmarks repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, locks: newKeyLocks()}
}

func byKey(db *gorm.DB, key entities.BookmarkKey) *gorm.DB {
	return db.Where(keyCondition, key.VerseID, key.ChapterID, key.CantoID, key.ChapterNumber)
}

// IsBookmarked reports whether at least one bookmark matches key.
func (r *Repository) IsBookmarked(ctx context.Context, key entities.BookmarkKey) (bool, error) {
	return isBookmarked(r.db.WithContext(ctx), key)
}

func isBookmarked(db *gorm.DB, key entities.BookmarkKey) (bool, error) {
	var count int64
	if err := byKey(db.Model(&entities.Bookmark{}), key).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check bookmark for verse %d: %w", key.VerseID, err)
	}
	return count > 0, nil
}

// Add inserts a bookmark. It does not check for an existing bookmark on
// the same key; use Toggle for that.
func (r *Repository) Add(ctx context.Context, bookmark *entities.Bookmark) error {
	if err := r.db.WithContext(ctx).Create(bookmark).Error; err != nil {
		log.Printf("Failed to add bookmark for verse %d: %v", bookmark.VerseID, err)
		return fmt.Errorf("add bookmark: %w", err)
	}
	return nil
}

// Remove deletes a bookmark by its id. Removing a missing id is a no-op.
func (r *Repository) Remove(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Bookmark{}).Error; err != nil {
		log.Printf("Failed to remove bookmark %d: %v", id, err)
		return fmt.Errorf("remove bookmark %d: %w", id, err)
	}
	return nil
}

// RemoveByVerse deletes every bookmark matching key and returns how many
// rows went away.
func (r *Repository) RemoveByVerse(ctx context.Context, key entities.BookmarkKey) (int64, error) {
	return removeByKey(r.db.WithContext(ctx), key)
}

func removeByKey(db *gorm.DB, key entities.BookmarkKey) (int64, error) {
	result := byKey(db, key).Delete(&entities.Bookmark{})
	if result.Error != nil {
		log.Printf("Failed to remove bookmarks for verse %d: %v", key.VerseID, result.Error)
		return 0, fmt.Errorf("remove bookmarks for verse %d: %w", key.VerseID, result.Error)
	}
	return result.RowsAffected, nil
}

// List returns every bookmark in storage order.
func (r *Repository) List(ctx context.Context) ([]entities.Bookmark, error) {
	bookmarks := []entities.Bookmark{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&bookmarks).Error; err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return bookmarks, nil
}

// Count returns the number of stored bookmarks.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Bookmark{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count bookmarks: %w", err)
	}
	return count, nil
}

// Toggle flips the bookmark state of snapshot's key and returns the new
// state: true when a bookmark was added, false when existing ones were
// removed. Concurrent toggles on the same key are serialised, so a double
// press never leaves duplicate rows.
func (r *Repository) Toggle(ctx context.Context, snapshot entities.Bookmark) (bool, error) {
	key := snapshot.Key()
	unlock := r.locks.lock(key)
	defer unlock()

	var bookmarked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := isBookmarked(tx, key)
		if err != nil {
			return err
		}
		if exists {
			if _, err := removeByKey(tx, key); err != nil {
				return err
			}
			bookmarked = false
			return nil
		}

		snapshot.ID = 0
		if err := tx.Create(&snapshot).Error; err != nil {
			return fmt.Errorf("add bookmark: %w", err)
		}
		bookmarked = true
		return nil
	})
	if err != nil {
		log.Printf("Failed to toggle bookmark for verse %d: %v", key.VerseID, err)
		return false, err
	}
	return bookmarked, nil
}
