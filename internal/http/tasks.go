package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/sbreader/internal/tasks"
)

const (
	taskTypeImportCorpus = "import_corpus"
	taskTypeVerifyCorpus = "verify_corpus"
)

// TasksController handles task queue management endpoints.
type TasksController struct {
	queue      TaskQueue
	importPath string
}

// NewTasksController creates a new TasksController. importPath is used by
// import_corpus runs that name no file.
func NewTasksController(queue TaskQueue, importPath string) *TasksController {
	return &TasksController{queue: queue, importPath: importPath}
}

// TaskTypeInfo describes an available task type.
type TaskTypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Queue       string `json:"queue"`
}

// ListTaskTypes handles GET /api/tasks/types
func (tc *TasksController) ListTaskTypes(c *gin.Context) {
	types := []TaskTypeInfo{
		{
			Type:        taskTypeImportCorpus,
			Description: "Import a corpus document, skipping rows that already exist",
			Queue:       tasks.ImportCorpusTask{}.Config().Name,
		},
		{
			Type:        taskTypeVerifyCorpus,
			Description: "Check that chapter ids follow canto and chapter number order",
			Queue:       tasks.VerifyCorpusTask{}.Config().Name,
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"task_types": types,
	})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, "task status", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

// RunTaskRequest is the request body for running a task.
type RunTaskRequest struct {
	// Path overrides the configured document for import_corpus
	Path string `json:"path,omitempty" form:"path"`
}

// RunTask handles POST /api/tasks/:type/run
func (tc *TasksController) RunTask(c *gin.Context) {
	taskType := c.Param("type")

	var req RunTaskRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request body")
			return
		}
	}

	var task backlite.Task
	switch taskType {
	case taskTypeImportCorpus:
		path := req.Path
		if path == "" {
			path = tc.importPath
		}
		if path == "" {
			respondBadRequest(c, "path is required for import_corpus task")
			return
		}
		task = tasks.ImportCorpusTask{Path: path}

	case taskTypeVerifyCorpus:
		task = tasks.VerifyCorpusTask{}

	default:
		respondBadRequest(c, fmt.Sprintf("unknown task type: %s", taskType))
		return
	}

	id, err := tc.queue.Enqueue(task)
	if err != nil {
		respondInternalError(c, "enqueue "+taskType, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"task_id": id,
		"type":    taskType,
		"message": "task enqueued",
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
