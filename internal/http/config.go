package http

// RouterConfig holds all dependencies needed to create the router.
// Optional dependencies left nil disable the routes that need them.
type RouterConfig struct {
	// Required
	Corpus    CorpusStore
	Chapters  ChapterReader
	Navigator VerseNavigator
	Positions PositionResolver
	Bookmarks BookmarkStore
	LastRead  LastReadStore

	// Stats
	CorpusStats    StatsSource
	BookmarkCounts BookmarkCounter

	// Optional
	Interstitial InterstitialGate
	TaskQueue    TaskQueue
	ImportPath   string // Default document for import_corpus runs

	// Verification scheduling (optional)
	Verification          VerificationSettings
	VerificationScheduler VerificationScheduler
	VerifySchedule        string // Configured schedule, used when no override is stored

	ReadOnly     bool // Reject every write under /api
	HealthChecks []Pinger
	Version      string
}
