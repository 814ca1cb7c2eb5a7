package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	checks  []Pinger
	version string
}

func NewHealthController(checks []Pinger, version string) *HealthController {
	return &HealthController{checks: checks, version: version}
}

// Status pings every dependency and answers 503 when any of them fails.
func (hc *HealthController) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string, len(hc.checks))
	healthy := true
	for _, check := range hc.checks {
		if err := check.Ping(ctx); err != nil {
			checks[check.Name()] = err.Error()
			healthy = false
			continue
		}
		checks[check.Name()] = "ok"
	}

	status := http.StatusOK
	state := "healthy"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "unhealthy"
	}

	c.IndentedJSON(status, gin.H{
		"status":  state,
		"version": hc.version,
		"checks":  checks,
	})
}
