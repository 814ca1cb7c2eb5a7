package importers

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/sbreader/internal/database"
	"github.com/mrlokans/sbreader/internal/database/bookmarks"
	"github.com/mrlokans/sbreader/internal/database/corpus"
	"github.com/mrlokans/sbreader/internal/entities"
)

func setupTestDB(t *testing.T) (*database.Database, *corpus.Repository, func()) {
	t.Helper()
	db, err := database.NewCorpusDatabase(filepath.Join(t.TempDir(), "corpus.db"), database.DefaultOptions())
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}
	return db, corpus.NewRepository(db.DB), cleanup
}

func verses(numbers ...int) []entities.VerseDocument {
	out := make([]entities.VerseDocument, 0, len(numbers))
	for _, n := range numbers {
		out = append(out, entities.VerseDocument{
			VerseNumber: n,
			Text:        []string{"first line", "second line"},
			Synonyms:    "synonyms",
			Translation: "translation",
			Purport:     []string{"para one", "para two"},
		})
	}
	return out
}

// sampleDocument has two cantos with two chapters each, three verses per chapter.
func sampleDocument() entities.CorpusDocument {
	return entities.CorpusDocument{
		{
			CantoNumber: 1,
			Title:       "Creation",
			Chapters: []entities.ChapterDocument{
				{ChapterNumber: 1, Name: "Questions by the Sages", Verses: verses(1, 2, 3)},
				{ChapterNumber: 2, Verses: verses(1, 2, 3)},
			},
		},
		{
			CantoNumber: 2,
			Title:       "The Cosmic Manifestation",
			Chapters: []entities.ChapterDocument{
				{ChapterNumber: 1, Verses: verses(1, 2, 3)},
				{ChapterNumber: 2, Verses: verses(1, 2, 3)},
			},
		},
	}
}

func TestImport(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	result, err := NewCorpusImporter(repo).Import(ctx, sampleDocument())
	require.NoError(t, err)

	assert.Equal(t, 2, result.CantosCreated)
	assert.Equal(t, 4, result.ChaptersCreated)
	assert.Equal(t, 12, result.VersesCreated)
	assert.Equal(t, 18, result.Created())
	assert.Zero(t, result.Failed)
	assert.Empty(t, result.Errors)

	cantos, err := repo.ListCantos(ctx)
	require.NoError(t, err)
	require.Len(t, cantos, 2)
	assert.Equal(t, "Creation", cantos[0].Title)

	chapters, err := repo.ListChapters(ctx, cantos[0].ID)
	require.NoError(t, err)
	require.Len(t, chapters, 2)
	assert.Equal(t, "Questions by the Sages", chapters[0].Title())
	assert.Nil(t, chapters[1].Name)

	list, err := repo.ListVerses(ctx, chapters[0].ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first line\nsecond line", list[0].Text)
	assert.Equal(t, []string{"first line", "second line"}, list[0].TextLines())
	assert.Equal(t, []string{"para one", "para two"}, list[0].PurportLines())
	assert.Equal(t, "synonyms", list[0].Synonyms)
}

func TestImportIsIdempotent(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	importer := NewCorpusImporter(repo)
	_, err := importer.Import(ctx, sampleDocument())
	require.NoError(t, err)

	first, err := repo.Stats(ctx)
	require.NoError(t, err)

	for run := 0; run < 3; run++ {
		result, err := importer.Import(ctx, sampleDocument())
		require.NoError(t, err)
		assert.Zero(t, result.Created())
		assert.Equal(t, 2, result.CantosExisting)
		assert.Equal(t, 4, result.ChaptersExisting)
		assert.Equal(t, 12, result.VersesExisting)
	}

	after, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, after)
	assert.Equal(t, entities.CorpusStats{Cantos: 2, Chapters: 4, Verses: 12}, after)
}

func TestImportCompletesPartialCorpus(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	partial := sampleDocument()[:1]
	partial[0].Chapters = partial[0].Chapters[:1]
	partial[0].Chapters[0].Verses = verses(1)

	importer := NewCorpusImporter(repo)
	_, err := importer.Import(ctx, partial)
	require.NoError(t, err)

	result, err := importer.Import(ctx, sampleDocument())
	require.NoError(t, err)
	assert.Equal(t, 1, result.CantosExisting)
	assert.Equal(t, 1, result.CantosCreated)
	assert.Equal(t, 1, result.ChaptersExisting)
	assert.Equal(t, 3, result.ChaptersCreated)
	assert.Equal(t, 1, result.VersesExisting)
	assert.Equal(t, 11, result.VersesCreated)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.CorpusStats{Cantos: 2, Chapters: 4, Verses: 12}, stats)
}

func TestImportOrdersVerses(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	doc := entities.CorpusDocument{{
		CantoNumber: 1,
		Chapters:    []entities.ChapterDocument{{ChapterNumber: 1, Verses: verses(3, 1, 2)}},
	}}
	_, err := NewCorpusImporter(repo).Import(ctx, doc)
	require.NoError(t, err)

	id, found, err := repo.ResolveChapterID(ctx, 1, 1)
	require.NoError(t, err)
	require.True(t, found)

	list, err := repo.ListVerses(ctx, id)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 1, list[0].VerseNumber)
	assert.Equal(t, 2, list[1].VerseNumber)
	assert.Equal(t, 3, list[2].VerseNumber)
	// Insertion follows verse number, so surrogate keys ascend with it.
	assert.Less(t, list[0].ID, list[1].ID)
	assert.Less(t, list[1].ID, list[2].ID)
}

func TestImportShuffledDocumentKeepsKeyOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 5; trial++ {
		_, repo, cleanup := setupTestDB(t)
		ctx := context.Background()

		doc := entities.CorpusDocument{}
		for c := 1; c <= 3; c++ {
			canto := entities.CantoDocument{CantoNumber: c}
			for ch := 1; ch <= 4; ch++ {
				canto.Chapters = append(canto.Chapters, entities.ChapterDocument{ChapterNumber: ch, Verses: verses(1, 2)})
			}
			rng.Shuffle(len(canto.Chapters), func(i, j int) {
				canto.Chapters[i], canto.Chapters[j] = canto.Chapters[j], canto.Chapters[i]
			})
			doc = append(doc, canto)
		}
		rng.Shuffle(len(doc), func(i, j int) { doc[i], doc[j] = doc[j], doc[i] })

		_, err := NewCorpusImporter(repo).Import(ctx, doc)
		require.NoError(t, err)

		violations, err := repo.CheckKeyOrder(ctx)
		require.NoError(t, err)
		assert.Empty(t, violations, "trial %d", trial)

		// Walking forward from the first chapter visits chapters in narrative order.
		first, found, err := repo.ResolveChapterID(ctx, firstCantoID(t, repo), 1)
		require.NoError(t, err)
		require.True(t, found)

		visited := 1
		current := first
		for {
			next, ok, err := repo.NeighborChapter(ctx, current, entities.Next)
			require.NoError(t, err)
			if !ok {
				break
			}
			current = next.ID
			visited++
		}
		assert.Equal(t, 12, visited)

		cleanup()
	}
}

func firstCantoID(t *testing.T, repo *corpus.Repository) uint {
	t.Helper()
	canto, found, err := repo.FindCantoByNumber(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, found)
	return canto.ID
}

func TestImportSkipsInvalidRows(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	doc := entities.CorpusDocument{
		{CantoNumber: 0, Chapters: []entities.ChapterDocument{{ChapterNumber: 1, Verses: verses(1)}}},
		{
			CantoNumber: 1,
			Chapters: []entities.ChapterDocument{
				{ChapterNumber: -1, Verses: verses(1)},
				{ChapterNumber: 1, Verses: verses(0, 1, 2)},
			},
		},
	}

	result, err := NewCorpusImporter(repo).Import(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Failed)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, 1, result.CantosCreated)
	assert.Equal(t, 1, result.ChaptersCreated)
	assert.Equal(t, 2, result.VersesCreated)
}

// flakyWriter fails selected natural keys and otherwise delegates.
type flakyWriter struct {
	CorpusWriter
	failCanto   int
	failChapter int
	failVerse   int
}

var errWrite = errors.New("disk I/O error")

func (f *flakyWriter) CreateCanto(ctx context.Context, canto *entities.Canto) error {
	if canto.CantoNumber == f.failCanto {
		return errWrite
	}
	return f.CorpusWriter.CreateCanto(ctx, canto)
}

func (f *flakyWriter) CreateChapter(ctx context.Context, chapter *entities.Chapter) error {
	if chapter.ChapterNumber == f.failChapter {
		return errWrite
	}
	return f.CorpusWriter.CreateChapter(ctx, chapter)
}

func (f *flakyWriter) CreateVerse(ctx context.Context, verse *entities.Verse) error {
	if verse.VerseNumber == f.failVerse {
		return errWrite
	}
	return f.CorpusWriter.CreateVerse(ctx, verse)
}

func TestImportRowFailureSkipsOnlyThatSubtree(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	writer := &flakyWriter{CorpusWriter: repo, failCanto: 2, failChapter: 2, failVerse: 3}
	result, err := NewCorpusImporter(writer).Import(ctx, sampleDocument())
	require.NoError(t, err)

	// Canto 2 fails with its subtree; in canto 1 chapter 2 fails and
	// verse 3 of chapter 1 fails.
	assert.Equal(t, 3, result.Failed)
	assert.Equal(t, 1, result.CantosCreated)
	assert.Equal(t, 1, result.ChaptersCreated)
	assert.Equal(t, 2, result.VersesCreated)
	for _, msg := range result.Errors {
		assert.Contains(t, msg, errWrite.Error())
	}

	// A clean rerun fills in everything that was skipped.
	result, err = NewCorpusImporter(repo).Import(ctx, sampleDocument())
	require.NoError(t, err)
	assert.Zero(t, result.Failed)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.CorpusStats{Cantos: 2, Chapters: 4, Verses: 12}, stats)
}

func TestImportHonoursCancellation(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewCorpusImporter(repo).Import(ctx, sampleDocument())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, result.Created())
}

// Canto 1 → Chapter 1 → Verses 1..3, then bookmark verse 2 and remove it.
func TestImportReadBookmarkScenario(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	userDB, err := database.NewBookmarksDatabase(filepath.Join(t.TempDir(), "bookmarks.db"), database.DefaultOptions())
	require.NoError(t, err)
	defer userDB.Close()
	marks := bookmarks.NewRepository(userDB.DB)

	doc := entities.CorpusDocument{{
		CantoNumber: 1,
		Chapters:    []entities.ChapterDocument{{ChapterNumber: 1, Verses: verses(1, 2, 3)}},
	}}
	_, err = NewCorpusImporter(repo).Import(ctx, doc)
	require.NoError(t, err)

	canto := firstCantoID(t, repo)
	chapters, err := repo.ListChapters(ctx, canto)
	require.NoError(t, err)
	require.Len(t, chapters, 1)
	assert.Equal(t, 1, chapters[0].ChapterNumber)

	list, err := repo.ListVerses(ctx, chapters[0].ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, v := range list {
		assert.Equal(t, i+1, v.VerseNumber)
	}

	bookmarked, err := marks.Toggle(ctx, entities.NewBookmark(list[1], canto, chapters[0].ChapterNumber))
	require.NoError(t, err)
	assert.True(t, bookmarked)

	saved, err := marks.List(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, 2, saved[0].VerseNumber)

	removed, err := marks.RemoveByVerse(ctx, saved[0].Key())
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	saved, err = marks.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{Cantos: 2, Chapters: 4, Verses: 12}, Summarize(sampleDocument()))
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "pending_canto", StatePendingCanto.String())
	assert.Equal(t, "pending_chapters", StatePendingChapters.String())
	assert.Equal(t, "pending_verses", StatePendingVerses.String())
	assert.Equal(t, "done", StateDone.String())
}
