package services

import (
	"context"

	"github.com/mrlokans/sbreader/internal/entities"
)

// ChapterSummary is a chapter with its display title resolved.
type ChapterSummary struct {
	ID            uint   `json:"id"`
	CantoID       uint   `json:"cantoId"`
	ChapterNumber int    `json:"chapterNumber"`
	Title         string `json:"title"`
}

// Reader decorates corpus reads with chapter titles. A stored chapterName
// wins; otherwise the static title table is consulted by canto and chapter
// number.
type Reader struct {
	corpus CorpusReader
	titles entities.TitleTable
}

func NewReader(corpus CorpusReader, titles entities.TitleTable) *Reader {
	return &Reader{corpus: corpus, titles: titles}
}

// ListChapters returns the canto's chapters in chapter number order.
func (r *Reader) ListChapters(ctx context.Context, cantoID uint) ([]ChapterSummary, error) {
	chapters, err := r.corpus.ListChapters(ctx, cantoID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ChapterSummary, 0, len(chapters))
	if len(chapters) == 0 {
		return summaries, nil
	}

	cantoNumber, err := r.cantoNumber(ctx, cantoID)
	if err != nil {
		return nil, err
	}
	for _, ch := range chapters {
		summaries = append(summaries, r.summarize(ch, cantoNumber))
	}
	return summaries, nil
}

// Chapter returns a single chapter with its title.
func (r *Reader) Chapter(ctx context.Context, chapterID uint) (*ChapterSummary, bool, error) {
	chapter, found, err := r.corpus.GetChapter(ctx, chapterID)
	if err != nil || !found {
		return nil, false, err
	}

	cantoNumber, err := r.cantoNumber(ctx, chapter.CantoID)
	if err != nil {
		return nil, false, err
	}
	summary := r.summarize(*chapter, cantoNumber)
	return &summary, true, nil
}

func (r *Reader) cantoNumber(ctx context.Context, cantoID uint) (int, error) {
	canto, found, err := r.corpus.GetCanto(ctx, cantoID)
	if err != nil || !found {
		return 0, err
	}
	return canto.CantoNumber, nil
}

func (r *Reader) summarize(ch entities.Chapter, cantoNumber int) ChapterSummary {
	title := ch.Title()
	if title == "" {
		title, _ = r.titles.Lookup(cantoNumber, ch.ChapterNumber)
	}
	return ChapterSummary{
		ID:            ch.ID,
		CantoID:       ch.CantoID,
		ChapterNumber: ch.ChapterNumber,
		Title:         title,
	}
}
