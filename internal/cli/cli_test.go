package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/sbreader/internal/audit"
	"github.com/mrlokans/sbreader/internal/database"
	"github.com/mrlokans/sbreader/internal/database/corpus"
	"github.com/mrlokans/sbreader/internal/entities"
)

type cliEnv struct {
	dir     string
	docPath string
	flags   []string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()

	doc := entities.CorpusDocument{
		{
			CantoNumber: 1,
			Title:       "Creation",
			Chapters: []entities.ChapterDocument{
				{ChapterNumber: 1, Name: "Questions by the Sages", Verses: []entities.VerseDocument{
					{VerseNumber: 1, Text: []string{"om namo bhagavate"}, Translation: "O my Lord"},
					{VerseNumber: 2, Text: []string{"dharmah projjhita"}},
				}},
				{ChapterNumber: 2, Verses: []entities.VerseDocument{{VerseNumber: 1, Text: []string{"vyasa uvaca"}}}},
			},
		},
	}
	payload, err := json.Marshal(doc)
	require.NoError(t, err)
	docPath := filepath.Join(dir, "corpus.json")
	require.NoError(t, os.WriteFile(docPath, payload, 0o644))

	return &cliEnv{
		dir:     dir,
		docPath: docPath,
		flags: []string{
			"--corpus-db", filepath.Join(dir, "corpus.db"),
			"--bookmarks-db", filepath.Join(dir, "bookmarks.db"),
		},
	}
}

func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return e.runContext(t, context.Background(), args...)
}

func (e *cliEnv) runContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := NewRootCommand("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append(append([]string{}, args...), e.flags...))
	err := cmd.ExecuteContext(ctx)
	return buf.String(), err
}

func (e *cliEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, out)
	return out
}

func TestImportCommand(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun(t, "import", "--file", env.docPath)
	assert.Contains(t, out, "Document: 1 cantos, 2 chapters, 3 verses")
	assert.Contains(t, out, "Verses")

	// Second run only finds existing rows.
	out = env.mustRun(t, "import", "--file", env.docPath)
	assert.Contains(t, out, "Document: 1 cantos")

	var cantos []entities.Canto
	require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "cantos", "--json")), &cantos))
	require.Len(t, cantos, 1)
	assert.Equal(t, "Creation", cantos[0].Title)
}

func TestImportCommandDryRun(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun(t, "import", "--file", env.docPath, "--dry-run")
	assert.Contains(t, out, "Dry run: no changes were saved")

	out = env.mustRun(t, "cantos")
	assert.Contains(t, out, "No cantos found")
}

func TestImportCommandReport(t *testing.T) {
	env := newCLIEnv(t)
	reports := filepath.Join(env.dir, "reports")

	out := env.mustRun(t, "import", "--file", env.docPath, "--dry-run", "--report-dir", reports)
	assert.Contains(t, out, "Report saved:")

	entries, err := os.ReadDir(reports)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(reports, entries[0].Name()))
	require.NoError(t, err)
	var report audit.ImportReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.True(t, report.DryRun)
	assert.Equal(t, env.docPath, report.Source)
	assert.Equal(t, 1, report.Document.Cantos)
	assert.Empty(t, report.Error)
}

// interruptAfter is a context that reports cancellation once Err has been
// consulted n times.
type interruptAfter struct {
	context.Context
	n int
}

func (c *interruptAfter) Err() error {
	if c.n <= 0 {
		return context.Canceled
	}
	c.n--
	return nil
}

func (e *cliEnv) corpusStats(t *testing.T) entities.CorpusStats {
	t.Helper()
	db, err := database.NewCorpusDatabase(filepath.Join(e.dir, "corpus.db"), database.DefaultOptions())
	require.NoError(t, err)
	defer db.Close()

	stats, err := corpus.NewRepository(db.DB).Stats(context.Background())
	require.NoError(t, err)
	return stats
}

func TestImportCommandInterruptedKeepsProgress(t *testing.T) {
	env := newCLIEnv(t)

	// Enough checks for canto 1, chapter 1 and its two verses.
	ctx := &interruptAfter{Context: context.Background(), n: 5}
	_, err := env.runContext(t, ctx, "import", "--file", env.docPath)
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, entities.CorpusStats{Cantos: 1, Chapters: 1, Verses: 2}, env.corpusStats(t))

	env.mustRun(t, "import", "--file", env.docPath)
	assert.Equal(t, entities.CorpusStats{Cantos: 1, Chapters: 2, Verses: 3}, env.corpusStats(t))
}

func TestImportCommandErrors(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "import")
	assert.Error(t, err, "--file is required")

	_, err = env.run(t, "import", "--file", filepath.Join(env.dir, "missing.json"))
	assert.Error(t, err)
}

func TestImportCommandCustomDB(t *testing.T) {
	env := newCLIEnv(t)
	other := filepath.Join(env.dir, "other.db")

	env.mustRun(t, "import", "--file", env.docPath, "--db", other)

	_, err := os.Stat(other)
	assert.NoError(t, err)
	assert.Contains(t, env.mustRun(t, "cantos"), "No cantos found", "the default store is untouched")
}

func TestVerifyCommand(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "import", "--file", env.docPath)

	out := env.mustRun(t, "verify")
	assert.Contains(t, out, "Chapter key order OK")

	out = env.mustRun(t, "verify", "--json")
	assert.JSONEq(t, "[]", out)
}

func TestBrowseCommands(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "import", "--file", env.docPath)

	out := env.mustRun(t, "cantos")
	assert.Contains(t, out, "Creation")

	out = env.mustRun(t, "chapters", "1")
	assert.Contains(t, out, "Questions by the Sages")

	out = env.mustRun(t, "chapters", "7")
	assert.Contains(t, out, "No chapters found")

	out = env.mustRun(t, "verses", "1")
	assert.Contains(t, out, "om namo bhagavate")
	assert.Contains(t, out, "O my Lord")

	out = env.mustRun(t, "verses", "99")
	assert.Contains(t, out, "No verses found")

	_, err := env.run(t, "verses", "abc")
	assert.Error(t, err)
}

func TestChaptersCommandTitles(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "import", "--file", env.docPath)

	titles := `[{"cantoNumber":1,"chapters":[{"chapterNumber":2,"chapterName":"Divinity and Divine Service"}]}]`
	titlesPath := filepath.Join(env.dir, "titles.json")
	require.NoError(t, os.WriteFile(titlesPath, []byte(titles), 0o644))

	out := env.mustRun(t, "chapters", "1", "--titles", titlesPath)
	assert.Contains(t, out, "Divinity and Divine Service")
}

func TestBookmarksCommands(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "import", "--file", env.docPath)

	assert.Contains(t, env.mustRun(t, "bookmarks", "list"), "No bookmarks yet")

	assert.Contains(t, env.mustRun(t, "bookmarks", "toggle", "1", "2"), "Bookmark added: 1.1.2")

	var list []entities.Bookmark
	require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "bookmarks", "list", "--json")), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "dharmah projjhita", list[0].Text)

	out := env.mustRun(t, "bookmarks", "export")
	assert.Contains(t, out, "### 1.1.2")

	exportPath := filepath.Join(env.dir, "bookmarks.md")
	out = env.mustRun(t, "bookmarks", "export", "--output", exportPath)
	assert.Contains(t, out, "Exported 1 bookmarks")
	content, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "dharmah projjhita")

	assert.Contains(t, env.mustRun(t, "bookmarks", "toggle", "1", "2"), "Bookmark removed: 1.1.2")

	env.mustRun(t, "bookmarks", "toggle", "2", "1")
	require.NoError(t, json.Unmarshal([]byte(env.mustRun(t, "bookmarks", "list", "--json")), &list))
	require.Len(t, list, 1)

	env.mustRun(t, "bookmarks", "remove", "2")
	assert.Contains(t, env.mustRun(t, "bookmarks", "list"), "No bookmarks yet")
}

func TestBookmarksToggleMissingVerse(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "import", "--file", env.docPath)

	_, err := env.run(t, "bookmarks", "toggle", "1", "40")
	assert.Error(t, err)

	_, err = env.run(t, "bookmarks", "toggle", "9", "1")
	assert.Error(t, err)
}

func TestLastReadCommands(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "import", "--file", env.docPath)

	assert.Contains(t, env.mustRun(t, "last-read", "show"), "No last-read position saved")

	assert.Contains(t, env.mustRun(t, "last-read", "set", "1", "1", "2"), "Last read set to 1.1.2")

	out := env.mustRun(t, "last-read", "show")
	assert.Contains(t, out, "canto 1, chapter 1, verse 2")
	assert.Contains(t, out, "Chapter ID: 1")

	env.mustRun(t, "last-read", "set", "4", "1", "1")
	assert.Contains(t, env.mustRun(t, "last-read", "show"), "not in the current corpus")

	_, err := env.run(t, "last-read", "set", "1", "x", "2")
	assert.Error(t, err)
}
