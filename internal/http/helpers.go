package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/sbreader/internal/entities"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the cause and hides it from the client.
func respondInternalError(c *gin.Context, operation string, err error) {
	log.Printf("Internal error (%s): %v", operation, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// parseIDParam reads a positive integer path parameter. It writes the 400
// response itself and returns ok=false when the value is unusable.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// parseNumberParam is parseIDParam for ordinal numbers such as verse numbers.
func parseNumberParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil || n <= 0 {
		respondBadRequest(c, "Invalid "+name)
		return 0, false
	}
	return n, true
}

func parseDirection(c *gin.Context, raw string) (entities.Direction, bool) {
	d := entities.Direction(raw)
	if !d.Valid() {
		respondBadRequest(c, "direction must be next or previous")
		return "", false
	}
	return d, true
}
