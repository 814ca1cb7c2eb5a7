package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type NavigationController struct {
	navigator    VerseNavigator
	interstitial InterstitialGate
}

// NewNavigationController creates the controller. interstitial may be nil.
func NewNavigationController(navigator VerseNavigator, interstitial InterstitialGate) *NavigationController {
	return &NavigationController{navigator: navigator, interstitial: interstitial}
}

// StepRequest is the query of GET /api/navigation/step.
type StepRequest struct {
	ChapterID uint   `form:"chapter_id"`
	Verse     int    `form:"verse"`
	Direction string `form:"direction"`
}

// Step handles GET /api/navigation/step?chapter_id=&verse=&direction=
// The interstitial gate runs before the step. found=false marks either end
// of the corpus.
func (nc *NavigationController) Step(c *gin.Context) {
	var req StepRequest
	if err := c.ShouldBindQuery(&req); err != nil || req.ChapterID == 0 || req.Verse <= 0 {
		respondBadRequest(c, "chapter_id and verse must be positive numbers")
		return
	}
	direction, ok := parseDirection(c, req.Direction)
	if !ok {
		return
	}

	shown := false
	if nc.interstitial != nil {
		shown = nc.interstitial.MaybeShowInterstitial(c.Request.Context())
	}

	pos, found, err := nc.navigator.Step(c.Request.Context(), req.ChapterID, req.Verse, direction)
	if err != nil {
		respondInternalError(c, "navigation step", err)
		return
	}

	response := gin.H{
		"found":              found,
		"interstitial_shown": shown,
	}
	if found {
		response["position"] = pos
	}
	c.JSON(http.StatusOK, response)
}
