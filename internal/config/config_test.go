package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8188), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.False(t, cfg.HTTP.ReadOnly)
	assert.Equal(t, 2, cfg.Global.ShutdownTimeoutInSeconds)

	assert.Equal(t, DefaultCorpusDatabasePath, cfg.Database.CorpusPath)
	assert.Equal(t, DefaultBookmarksDatabasePath, cfg.Database.BookmarksPath)
	assert.Equal(t, "warn", cfg.Database.LogLevel)

	assert.Empty(t, cfg.Corpus.ImportPath)
	assert.Empty(t, cfg.Corpus.TitlesPath)
	assert.Empty(t, cfg.Corpus.ReportDir)

	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 1, cfg.Tasks.Workers)
	assert.Equal(t, 15*time.Minute, cfg.Tasks.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.Tasks.CleanupInterval)

	assert.False(t, cfg.Verification.Enabled)
	assert.Equal(t, DefaultVerifySchedule, cfg.Verification.Schedule)

	assert.Equal(t, 4*time.Hour, cfg.Interstitial.Frequency)
}

func TestNewConfigFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("READ_ONLY", "true")
	t.Setenv("CORPUS_IMPORT_REPORT_DIR", "/data/reports")
	t.Setenv("CORPUS_DATABASE_PATH", "/data/sb.db")
	t.Setenv("BOOKMARKS_DATABASE_PATH", "/data/bookmarks.db")
	t.Setenv("DATABASE_LOG_LEVEL", "info")
	t.Setenv("CORPUS_IMPORT_PATH", "/data/sb.json")
	t.Setenv("TASKS_ENABLED", "false")
	t.Setenv("CORPUS_VERIFY_ENABLED", "true")
	t.Setenv("CORPUS_VERIFY_SCHEDULE", "*/30 * * * *")
	t.Setenv("INTERSTITIAL_FREQUENCY", "90m")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.True(t, cfg.HTTP.ReadOnly)
	assert.Equal(t, "/data/reports", cfg.Corpus.ReportDir)
	assert.Equal(t, "/data/sb.db", cfg.Database.CorpusPath)
	assert.Equal(t, "/data/bookmarks.db", cfg.Database.BookmarksPath)
	assert.Equal(t, "info", cfg.Database.LogLevel)
	assert.Equal(t, "/data/sb.json", cfg.Corpus.ImportPath)
	assert.False(t, cfg.Tasks.Enabled)
	assert.True(t, cfg.Verification.Enabled)
	assert.Equal(t, "*/30 * * * *", cfg.Verification.Schedule)
	assert.Equal(t, 90*time.Minute, cfg.Interstitial.Frequency)
}
