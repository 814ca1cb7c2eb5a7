package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	corpus    StatsSource
	bookmarks BookmarkCounter
}

// NewStatsController creates the controller. bookmarks may be nil.
func NewStatsController(corpus StatsSource, bookmarks BookmarkCounter) *StatsController {
	return &StatsController{corpus: corpus, bookmarks: bookmarks}
}

// StatsResponse holds row counts for both stores.
type StatsResponse struct {
	Cantos    int64 `json:"cantos"`
	Chapters  int64 `json:"chapters"`
	Verses    int64 `json:"verses"`
	Bookmarks int64 `json:"bookmarks"`
}

// Get handles GET /api/stats
func (sc *StatsController) Get(c *gin.Context) {
	ctx := c.Request.Context()

	corpus, err := sc.corpus.Stats(ctx)
	if err != nil {
		respondInternalError(c, "corpus stats", err)
		return
	}

	response := StatsResponse{
		Cantos:   corpus.Cantos,
		Chapters: corpus.Chapters,
		Verses:   corpus.Verses,
	}
	if sc.bookmarks != nil {
		if response.Bookmarks, err = sc.bookmarks.Count(ctx); err != nil {
			respondInternalError(c, "bookmark count", err)
			return
		}
	}
	c.JSON(http.StatusOK, response)
}
