package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.HealthChecks, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	api := router.Group("/api")
	api.Use(NewReadOnlyMiddleware(cfg.ReadOnly).Handler())

	corpus := NewCorpusController(cfg.Corpus, cfg.Chapters)
	api.GET("/cantos", corpus.ListCantos)
	api.GET("/cantos/:id", corpus.GetCanto)
	api.GET("/cantos/:id/chapters", corpus.ListChapters)
	api.GET("/chapters/:id", corpus.GetChapter)
	api.GET("/chapters/:id/verses", corpus.ListVerses)
	api.GET("/chapters/:id/verses/:number", corpus.GetVerse)
	api.GET("/chapters/:id/neighbor", corpus.Neighbor)

	navigation := NewNavigationController(cfg.Navigator, cfg.Interstitial)
	api.GET("/navigation/step", navigation.Step)

	search := NewSearchController(cfg.Positions)
	api.GET("/search", search.Search)

	bookmarks := NewBookmarksController(cfg.Bookmarks, cfg.Corpus)
	api.GET("/bookmarks", bookmarks.List)
	api.GET("/bookmarks/status", bookmarks.Status)
	api.GET("/bookmarks/export", bookmarks.Export)
	api.POST("/bookmarks/toggle", bookmarks.Toggle)
	api.DELETE("/bookmarks/:id", bookmarks.Remove)
	api.DELETE("/bookmarks", bookmarks.RemoveByVerse)

	lastRead := NewLastReadController(cfg.LastRead, cfg.Positions)
	api.GET("/last-read", lastRead.Get)
	api.PUT("/last-read", lastRead.Put)
	api.DELETE("/last-read", lastRead.Clear)

	if cfg.CorpusStats != nil {
		stats := NewStatsController(cfg.CorpusStats, cfg.BookmarkCounts)
		api.GET("/stats", stats.Get)
	}

	if cfg.TaskQueue != nil {
		tasks := NewTasksController(cfg.TaskQueue, cfg.ImportPath)
		api.GET("/tasks/types", tasks.ListTaskTypes)
		api.GET("/tasks/:id", tasks.GetTaskStatus)
		api.POST("/tasks/:type/run", tasks.RunTask)
	}

	if cfg.Verification != nil {
		verification := NewVerificationController(cfg.Verification, cfg.VerificationScheduler, cfg.VerifySchedule)
		api.GET("/verification", verification.GetSettings)
		api.PUT("/verification/schedule", verification.UpdateSchedule)
		api.DELETE("/verification/schedule", verification.ResetSchedule)
		if cfg.VerificationScheduler != nil {
			api.POST("/verification/run", verification.RunNow)
		}
	}

	return router
}
