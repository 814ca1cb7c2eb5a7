package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/sbreader/internal/settingsstore"
)

// VerificationController manages the scheduled corpus key-order check.
type VerificationController struct {
	settings   VerificationSettings
	scheduler  VerificationScheduler
	configured string
}

// NewVerificationController creates the controller. scheduler may be nil,
// in which case schedule changes are stored but not applied until restart.
func NewVerificationController(settings VerificationSettings, scheduler VerificationScheduler, configured string) *VerificationController {
	return &VerificationController{settings: settings, scheduler: scheduler, configured: configured}
}

// VerificationResponse is the response for GET /api/verification
type VerificationResponse struct {
	Schedule  settingsstore.VerifyScheduleInfo `json:"schedule"`
	Status    settingsstore.VerifyStatus       `json:"status"`
	NextRun   *time.Time                       `json:"next_run,omitempty"`
	IsRunning bool                             `json:"is_running"`
}

// GetSettings handles GET /api/verification
func (vc *VerificationController) GetSettings(c *gin.Context) {
	ctx := c.Request.Context()

	response := VerificationResponse{
		Schedule: vc.settings.GetVerifySchedule(ctx, vc.configured),
		Status:   vc.settings.GetVerifyStatus(ctx),
	}
	if vc.scheduler != nil {
		response.NextRun = vc.scheduler.GetNextRunTime()
		response.IsRunning = vc.scheduler.IsRunning()
	}
	c.JSON(http.StatusOK, response)
}

// UpdateScheduleRequest is the body of PUT /api/verification/schedule
type UpdateScheduleRequest struct {
	Schedule string `json:"schedule" form:"schedule"`
}

// UpdateSchedule handles PUT /api/verification/schedule
func (vc *VerificationController) UpdateSchedule(c *gin.Context) {
	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	schedule := strings.TrimSpace(req.Schedule)
	if err := settingsstore.ValidateCronSchedule(schedule); err != nil {
		respondBadRequest(c, "Invalid cron schedule: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	if err := vc.settings.SetVerifySchedule(ctx, schedule); err != nil {
		respondInternalError(c, "save verify schedule", err)
		return
	}
	vc.reschedule(c)
}

// ResetSchedule handles DELETE /api/verification/schedule
// The configured schedule applies again afterwards.
func (vc *VerificationController) ResetSchedule(c *gin.Context) {
	if err := vc.settings.ClearVerifySchedule(c.Request.Context()); err != nil {
		respondInternalError(c, "clear verify schedule", err)
		return
	}
	vc.reschedule(c)
}

// RunNow handles POST /api/verification/run
func (vc *VerificationController) RunNow(c *gin.Context) {
	id, err := vc.scheduler.RunNow()
	if err != nil {
		respondInternalError(c, "run verification", err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"task_id": id,
		"message": "verification enqueued",
	})
}

func (vc *VerificationController) reschedule(c *gin.Context) {
	ctx := c.Request.Context()
	if vc.scheduler != nil {
		if err := vc.scheduler.Reschedule(ctx); err != nil {
			respondInternalError(c, "reschedule verification", err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"schedule": vc.settings.GetVerifySchedule(ctx, vc.configured),
	})
}
