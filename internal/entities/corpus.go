package entities

import "strings"

// LineSeparator joins multi-line verse fields into a single stored column.
const LineSeparator = "\n"

// Direction selects the neighbour when stepping through chapters or verses.
type Direction string

const (
	Next     Direction = "next"
	Previous Direction = "previous"
)

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	return d == Next || d == Previous
}

type Canto struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CantoNumber int    `gorm:"column:cantoNumber;uniqueIndex:idx_cantos_number" json:"cantoNumber"`
	Title       string `gorm:"column:cantotitle;type:text" json:"cantotitle"`
}

type Chapter struct {
	ID            uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CantoID       uint    `gorm:"column:cantoId;uniqueIndex:idx_chapters_canto_number,priority:1" json:"cantoId"`
	ChapterNumber int     `gorm:"column:chapterNumber;uniqueIndex:idx_chapters_canto_number,priority:2" json:"chapterNumber"`
	Name          *string `gorm:"column:chapterName;type:text" json:"chapterName,omitempty"`
	Canto         *Canto  `gorm:"foreignKey:CantoID;references:ID" json:"-"`
}

// Title returns the stored chapter name, or "" when none was imported.
func (c Chapter) Title() string {
	if c.Name == nil {
		return ""
	}
	return *c.Name
}

type Verse struct {
	ID          uint     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ChapterID   uint     `gorm:"column:chapterId;uniqueIndex:idx_verses_chapter_number,priority:1" json:"chapterId"`
	VerseNumber int      `gorm:"column:verseNumber;uniqueIndex:idx_verses_chapter_number,priority:2" json:"verseNumber"`
	Text        string   `gorm:"column:text;type:text" json:"text"`
	Synonyms    string   `gorm:"column:synonyms;type:text" json:"synonyms"`
	Translation string   `gorm:"column:translation;type:text" json:"translation"`
	Purport     string   `gorm:"column:purport;type:text" json:"purport"`
	Chapter     *Chapter `gorm:"foreignKey:ChapterID;references:ID" json:"-"`
}

// TextLines splits the stored original text back into its lines.
func (v Verse) TextLines() []string {
	return SplitLines(v.Text)
}

// PurportLines splits the stored commentary back into its paragraphs.
func (v Verse) PurportLines() []string {
	return SplitLines(v.Purport)
}

// JoinLines flattens a multi-line field for storage.
func JoinLines(lines []string) string {
	return strings.Join(lines, LineSeparator)
}

// SplitLines is the inverse of JoinLines. An empty field has no lines.
func SplitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, LineSeparator)
}

func (Canto) TableName() string {
	return "Cantos"
}

func (Chapter) TableName() string {
	return "Chapters"
}

func (Verse) TableName() string {
	return "Verses"
}

// OrderViolation describes two chapters whose surrogate key order disagrees
// with their (cantoNumber, chapterNumber) order.
type OrderViolation struct {
	ChapterID         uint `json:"chapter_id"`
	CantoNumber       int  `json:"canto_number"`
	ChapterNumber     int  `json:"chapter_number"`
	NextChapterID     uint `json:"next_chapter_id"`
	NextCantoNumber   int  `json:"next_canto_number"`
	NextChapterNumber int  `json:"next_chapter_number"`
}

// CorpusStats holds row counts per corpus table.
type CorpusStats struct {
	Cantos   int64 `json:"cantos"`
	Chapters int64 `json:"chapters"`
	Verses   int64 `json:"verses"`
}
