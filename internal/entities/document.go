package entities

// CorpusDocument is the nested input consumed by the corpus importer.
type CorpusDocument []CantoDocument

type CantoDocument struct {
	CantoNumber int               `json:"cantoNumber"`
	Title       string            `json:"cantotitle"`
	Chapters    []ChapterDocument `json:"chapters"`
}

type ChapterDocument struct {
	ChapterNumber int             `json:"chapterNumber"`
	Name          string          `json:"chapterName,omitempty"`
	Verses        []VerseDocument `json:"verses"`
}

type VerseDocument struct {
	VerseNumber int      `json:"verseNumber"`
	Text        []string `json:"text"`
	Synonyms    string   `json:"synonyms"`
	Translation string   `json:"translation"`
	Purport     []string `json:"purport"`
}

// TitleTable is the static chapter name table keyed by canto and chapter number.
type TitleTable []CantoTitles

type CantoTitles struct {
	CantoNumber int            `json:"cantoNumber"`
	Chapters    []ChapterTitle `json:"chapters"`
}

type ChapterTitle struct {
	ChapterNumber int    `json:"chapterNumber"`
	ChapterName   string `json:"chapterName"`
}

// Lookup returns the chapter name recorded for the given coordinates.
func (t TitleTable) Lookup(cantoNumber, chapterNumber int) (string, bool) {
	for _, canto := range t {
		if canto.CantoNumber != cantoNumber {
			continue
		}
		for _, ch := range canto.Chapters {
			if ch.ChapterNumber == chapterNumber && ch.ChapterName != "" {
				return ch.ChapterName, true
			}
		}
	}
	return "", false
}
