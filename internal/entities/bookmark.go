package entities

// Bookmark is a denormalized snapshot of a verse. It is not referentially
// tied to the corpus tables, so Text is what gets displayed.
type Bookmark struct {
	ID            uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	VerseID       uint   `gorm:"column:verseId;index:idx_bookmarks_key,priority:1" json:"verseId"`
	ChapterID     uint   `gorm:"column:chapterId;index:idx_bookmarks_key,priority:2" json:"chapterId"`
	CantoID       uint   `gorm:"column:cantoId;index:idx_bookmarks_key,priority:3" json:"cantoId"`
	ChapterNumber int    `gorm:"column:chapterNumber;index:idx_bookmarks_key,priority:4" json:"chapterNumber"`
	VerseNumber   int    `gorm:"column:verseNumber" json:"verseNumber"`
	Text          string `gorm:"column:text;type:text" json:"text"`
}

func (Bookmark) TableName() string {
	return "Bookmarks"
}

// Key returns the composite key used for toggle and existence checks.
func (b Bookmark) Key() BookmarkKey {
	return BookmarkKey{
		VerseID:       b.VerseID,
		ChapterID:     b.ChapterID,
		CantoID:       b.CantoID,
		ChapterNumber: b.ChapterNumber,
	}
}

// BookmarkKey identifies a bookmark at the application level.
type BookmarkKey struct {
	VerseID       uint `json:"verseId" form:"verse_id"`
	ChapterID     uint `json:"chapterId" form:"chapter_id"`
	CantoID       uint `json:"cantoId" form:"canto_id"`
	ChapterNumber int  `json:"chapterNumber" form:"chapter_number"`
}

// NewBookmark snapshots a verse together with the canto and chapter number
// it was read under.
func NewBookmark(verse Verse, cantoID uint, chapterNumber int) Bookmark {
	return Bookmark{
		VerseID:       verse.ID,
		ChapterID:     verse.ChapterID,
		CantoID:       cantoID,
		ChapterNumber: chapterNumber,
		VerseNumber:   verse.VerseNumber,
		Text:          verse.Text,
	}
}
