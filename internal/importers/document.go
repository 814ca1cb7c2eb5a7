package importers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/sbreader/internal/entities"
)

// LoadDocument decodes a nested corpus document.
func LoadDocument(r io.Reader) (entities.CorpusDocument, error) {
	var doc entities.CorpusDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode corpus document: %w", err)
	}
	return doc, nil
}

// LoadDocumentFile decodes the corpus document stored at path.
func LoadDocumentFile(path string) (entities.CorpusDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus document: %w", err)
	}
	defer f.Close()
	return LoadDocument(f)
}

// LoadTitles decodes the static chapter name table.
func LoadTitles(r io.Reader) (entities.TitleTable, error) {
	var titles entities.TitleTable
	if err := json.NewDecoder(r).Decode(&titles); err != nil {
		return nil, fmt.Errorf("failed to decode title table: %w", err)
	}
	return titles, nil
}

// LoadTitlesFile decodes the title table stored at path.
func LoadTitlesFile(path string) (entities.TitleTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open title table: %w", err)
	}
	defer f.Close()
	return LoadTitles(f)
}

// Summary counts the rows a document describes.
type Summary struct {
	Cantos   int `json:"cantos"`
	Chapters int `json:"chapters"`
	Verses   int `json:"verses"`
}

// Summarize counts the cantos, chapters and verses in doc.
func Summarize(doc entities.CorpusDocument) Summary {
	s := Summary{Cantos: len(doc)}
	for _, canto := range doc {
		s.Chapters += len(canto.Chapters)
		for _, ch := range canto.Chapters {
			s.Verses += len(ch.Verses)
		}
	}
	return s
}
