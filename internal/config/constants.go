package config

// Default paths for the two stores and the optional import inputs.
const (
	// DefaultCorpusDatabasePath holds the imported scripture text.
	DefaultCorpusDatabasePath = "./srimad-bhagavatam.db"

	// DefaultBookmarksDatabasePath holds bookmarks and reader settings.
	DefaultBookmarksDatabasePath = "./bookmarks.db"

	// DefaultVerifySchedule runs the corpus key-order check nightly at 03:00.
	DefaultVerifySchedule = "0 3 * * *"
)
