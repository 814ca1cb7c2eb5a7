package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Corpus
		Tasks
		Verification
		Interstitial
	}

	HTTP struct {
		Port     int32
		Host     string
		ReadOnly bool // Reject every non-GET API request
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		CorpusPath    string
		BookmarksPath string
		LogLevel      string // silent, error, warn or info
	}
	Corpus struct {
		ImportPath string // Nested corpus document imported at startup when set
		TitlesPath string // Static chapter name table
		ReportDir  string // Import reports are written here when set
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Verification struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Interstitial struct {
		Frequency time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("read_only", false)
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	v.SetDefault("corpus_database_path", DefaultCorpusDatabasePath)
	v.SetDefault("bookmarks_database_path", DefaultBookmarksDatabasePath)
	v.SetDefault("database_log_level", "warn")

	v.SetDefault("corpus_import_path", "")
	v.SetDefault("corpus_titles_path", "")
	v.SetDefault("corpus_import_report_dir", "")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("corpus_verify_enabled", false)
	v.SetDefault("corpus_verify_schedule", DefaultVerifySchedule)

	v.SetDefault("interstitial_frequency", "4h")

	return &Config{
		HTTP: HTTP{
			Port:     v.GetInt32("PORT"),
			Host:     v.GetString("HOST"),
			ReadOnly: v.GetBool("READ_ONLY"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			CorpusPath:    v.GetString("CORPUS_DATABASE_PATH"),
			BookmarksPath: v.GetString("BOOKMARKS_DATABASE_PATH"),
			LogLevel:      v.GetString("DATABASE_LOG_LEVEL"),
		},
		Corpus: Corpus{
			ImportPath: v.GetString("CORPUS_IMPORT_PATH"),
			TitlesPath: v.GetString("CORPUS_TITLES_PATH"),
			ReportDir:  v.GetString("CORPUS_IMPORT_REPORT_DIR"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Verification: Verification{
			Enabled:  v.GetBool("CORPUS_VERIFY_ENABLED"),
			Schedule: v.GetString("CORPUS_VERIFY_SCHEDULE"),
		},
		Interstitial: Interstitial{
			Frequency: v.GetDuration("INTERSTITIAL_FREQUENCY"),
		},
	}
}
