package entities

import (
	"time"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	SettingKeyLastReadVerse   = "lastReadVerse"
	SettingKeyLastAdShownTime = "lastAdShownTime"

	SettingKeyVerifySchedule    = "corpusVerifySchedule"
	SettingKeyVerifyLastAt      = "corpusVerifyLastAt"
	SettingKeyVerifyLastStatus  = "corpusVerifyLastStatus"
	SettingKeyVerifyLastMessage = "corpusVerifyLastMessage"
)

// LastReadPosition is the most recently viewed verse. ChapterCoordinate holds
// a chapter number, not a chapter row id; it is serialized as "chapterId"
// to stay compatible with records written by earlier clients.
type LastReadPosition struct {
	CantoID           uint `json:"cantoId"`
	ChapterCoordinate int  `json:"chapterId"`
	VerseNumber       int  `json:"verseNumber"`
}

// Complete reports whether every coordinate is set.
func (p LastReadPosition) Complete() bool {
	return p.CantoID > 0 && p.ChapterCoordinate > 0 && p.VerseNumber > 0
}
