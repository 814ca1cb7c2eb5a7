package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/sbreader/internal/entities"
)

type LastReadController struct {
	store     LastReadStore
	positions PositionResolver
}

func NewLastReadController(store LastReadStore, positions PositionResolver) *LastReadController {
	return &LastReadController{store: store, positions: positions}
}

// Get handles GET /api/last-read
// The saved record is returned as stored; position is included only when
// it still resolves against the corpus.
func (lc *LastReadController) Get(c *gin.Context) {
	ctx := c.Request.Context()

	last, found, err := lc.store.LoadLastRead(ctx)
	if err != nil {
		respondInternalError(c, "load last read", err)
		return
	}
	if !found {
		respondNotFound(c, "Last read position")
		return
	}

	response := gin.H{"lastRead": last}
	if lc.positions != nil {
		pos, ok, err := lc.positions.Resume(ctx, *last)
		if err != nil {
			respondInternalError(c, "resume last read", err)
			return
		}
		if ok {
			response["position"] = pos
		}
	}
	c.JSON(http.StatusOK, response)
}

// Put handles PUT /api/last-read
func (lc *LastReadController) Put(c *gin.Context) {
	var pos entities.LastReadPosition
	if err := c.ShouldBindJSON(&pos); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}
	if !pos.Complete() {
		respondBadRequest(c, "cantoId, chapterId and verseNumber are required")
		return
	}

	if err := lc.store.SaveLastRead(c.Request.Context(), pos); err != nil {
		respondInternalError(c, "save last read", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lastRead": pos})
}

// Clear handles DELETE /api/last-read
func (lc *LastReadController) Clear(c *gin.Context) {
	if err := lc.store.ClearLastRead(c.Request.Context()); err != nil {
		respondInternalError(c, "clear last read", err)
		return
	}
	c.Status(http.StatusNoContent)
}
