package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/sbreader/internal/database"
	"github.com/mrlokans/sbreader/internal/database/bookmarks"
	"github.com/mrlokans/sbreader/internal/database/corpus"
	"github.com/mrlokans/sbreader/internal/database/settings"
	"github.com/mrlokans/sbreader/internal/entities"
	"github.com/mrlokans/sbreader/internal/importers"
	"github.com/mrlokans/sbreader/internal/interstitial"
	"github.com/mrlokans/sbreader/internal/services"
	"github.com/mrlokans/sbreader/internal/settingsstore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type countingPresenter struct {
	mu    sync.Mutex
	shows int
}

func (p *countingPresenter) Show(context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shows++
	return true, nil
}

type mockQueue struct {
	mu     sync.Mutex
	tasks  []backlite.Task
	status backlite.TaskStatus
	err    error
}

func (q *mockQueue) Enqueue(task backlite.Task) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return "", q.err
	}
	q.tasks = append(q.tasks, task)
	return "task-1", nil
}

func (q *mockQueue) Status(context.Context, string) (backlite.TaskStatus, error) {
	return q.status, q.err
}

type testEnv struct {
	router    *gin.Engine
	corpus    *corpus.Repository
	bookmarks *bookmarks.Repository
	settings  *settingsstore.SettingsStore
	queue     *mockQueue
	presenter *countingPresenter
}

// testDocument imports as:
//
//	canto 1 (id 1): chapter 1 (id 1, verses 1-2), chapter 2 (id 2, verse 1)
//	canto 2 (id 2): chapter 1 (id 3, verse 1)
//
// Verse ids run 1-4 in the same order.
func testDocument() entities.CorpusDocument {
	return entities.CorpusDocument{
		{
			CantoNumber: 1,
			Title:       "Creation",
			Chapters: []entities.ChapterDocument{
				{ChapterNumber: 1, Name: "Questions by the Sages", Verses: []entities.VerseDocument{
					{VerseNumber: 1, Text: []string{"om namo", "bhagavate"}, Translation: "O my Lord", Purport: []string{"p1", "p2"}},
					{VerseNumber: 2, Text: []string{"dharmah"}, Translation: "Completely rejecting"},
				}},
				{ChapterNumber: 2, Verses: []entities.VerseDocument{
					{VerseNumber: 1, Text: []string{"vyasa uvaca"}},
				}},
			},
		},
		{
			CantoNumber: 2,
			Chapters: []entities.ChapterDocument{
				{ChapterNumber: 1, Verses: []entities.VerseDocument{
					{VerseNumber: 1, Text: []string{"sri-suka uvaca"}},
				}},
			},
		},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, nil)
}

// newTestEnvWith lets a test adjust the router config before the router is built.
func newTestEnvWith(t *testing.T, adjust func(*RouterConfig)) *testEnv {
	t.Helper()
	dir := t.TempDir()

	corpusDB, err := database.NewCorpusDatabase(filepath.Join(dir, "corpus.db"), database.DefaultOptions())
	require.NoError(t, err)
	bookmarksDB, err := database.NewBookmarksDatabase(filepath.Join(dir, "bookmarks.db"), database.DefaultOptions())
	require.NoError(t, err)
	t.Cleanup(func() {
		corpusDB.Close()
		bookmarksDB.Close()
	})

	corpusRepo := corpus.NewRepository(corpusDB.DB)
	_, err = importers.NewCorpusImporter(corpusRepo).Import(context.Background(), testDocument())
	require.NoError(t, err)

	titles := entities.TitleTable{
		{CantoNumber: 1, Chapters: []entities.ChapterTitle{{ChapterNumber: 2, ChapterName: "Divinity and Divine Service"}}},
	}

	env := &testEnv{
		corpus:    corpusRepo,
		bookmarks: bookmarks.NewRepository(bookmarksDB.DB),
		settings:  settingsstore.New(settings.NewRepository(bookmarksDB.DB)),
		queue:     &mockQueue{},
		presenter: &countingPresenter{},
	}

	cfg := RouterConfig{
		Corpus:         corpusRepo,
		Chapters:       services.NewReader(corpusRepo, titles),
		Navigator:      services.NewNavigator(corpusRepo),
		Positions:      services.NewSearch(corpusRepo),
		Bookmarks:      env.bookmarks,
		LastRead:       env.settings,
		CorpusStats:    corpusRepo,
		BookmarkCounts: env.bookmarks,
		Interstitial:   interstitial.NewGate(env.presenter, env.settings, time.Hour, nil),
		TaskQueue:      env.queue,
		ImportPath:     "/data/corpus.json",
		Verification:   env.settings,
		VerifySchedule: "0 3 * * *",
		HealthChecks:   []Pinger{corpusDB, bookmarksDB},
		Version:        "test",
	}
	if adjust != nil {
		adjust(&cfg)
	}
	env.router = NewRouter(cfg)
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}
