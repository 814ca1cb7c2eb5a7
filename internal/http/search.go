package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/sbreader/internal/database"
	"github.com/mrlokans/sbreader/internal/services"
)

type SearchController struct {
	positions PositionResolver
}

func NewSearchController(positions PositionResolver) *SearchController {
	return &SearchController{positions: positions}
}

// Search handles GET /api/search?canto=&chapter=&verse=
// canto is the canto row id; chapter and verse are numbers.
func (sc *SearchController) Search(c *gin.Context) {
	coords, err := services.ParseCoordinates(c.Query("canto"), c.Query("chapter"), c.Query("verse"))
	switch {
	case errors.Is(err, services.ErrMissingCoordinate):
		respondBadRequest(c, "Please fill all fields")
		return
	case err != nil:
		respondBadRequest(c, "Please enter valid numbers")
		return
	}

	pos, err := sc.positions.Resolve(c.Request.Context(), coords)
	switch {
	case errors.Is(err, services.ErrChapterNotFound):
		respondError(c, http.StatusNotFound, "Chapter not found")
		return
	case errors.Is(err, database.ErrInvalidCoordinate):
		respondBadRequest(c, "Please enter valid numbers")
		return
	case err != nil:
		respondInternalError(c, "search", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"position": pos})
}
