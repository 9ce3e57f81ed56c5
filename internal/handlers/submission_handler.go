package handlers

import (
	"errors"
	"net/http"

	"capstone-collab-api/internal/database"
	"capstone-collab-api/internal/models"
	"capstone-collab-api/internal/objstore"
	"capstone-collab-api/internal/services"

	"github.com/gin-gonic/gin"
)

// GradeRequest represents the adviser's grading decision for one
// submission attempt.
type GradeRequest struct {
	IsAccepted bool     `json:"is_accepted"`
	Feedback   string   `json:"feedback"`
	Score      *float64 `json:"score"`
}

// SubmissionResponse augments a submission with the submitter's display name.
type SubmissionResponse struct {
	models.Submission
	SubmitterName string `json:"submitter_name"`
}

func submissionSvc() *services.SubmissionService {
	return services.NewSubmissionService(database.GetDB(), objstore.Get())
}

/*
*
SubmitTask handles POST /api/tasks/:id/submissions
Accepts one or more files as multipart form data under "files" and stores
them as a new versioned submission attempt.
*/
func SubmitTask(c *gin.Context) {
	userID := c.GetString("user_id")
	taskID := c.Param("id")

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart form data is required"})
		return
	}

	fileHeaders := form.File["files"]
	files := make([]services.FileUpload, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
			return
		}
		defer f.Close()
		files = append(files, services.FileUpload{Name: fh.Filename, Content: f})
	}

	sub, err := submissionSvc().Submit(c.Request.Context(), taskID, userID, files)
	if err != nil {
		var uploadErr *services.UploadError
		switch {
		case errors.Is(err, services.ErrEmptyFiles):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.As(err, &uploadErr):
			c.JSON(http.StatusBadGateway, gin.H{"error": uploadErr.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit task"})
		}
		return
	}

	task, err := taskSvc().GetTask(taskID)
	if err == nil {
		broadcastEvent(task.GroupID, "submission_created", taskID)
	}

	c.JSON(http.StatusCreated, sub)
}

/*
*
GetSubmissions handles GET /api/tasks/:id/submissions
Returns the task's submission history with attachments, newest version
first, with submitter names for display.
*/
func GetSubmissions(c *gin.Context) {
	taskID := c.Param("id")

	if _, err := taskSvc().GetTask(taskID); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	subs, err := submissionSvc().ListSubmissions(taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	resp := make([]SubmissionResponse, 0, len(subs))
	for _, s := range subs {
		resp = append(resp, SubmissionResponse{
			Submission:    s,
			SubmitterName: displayName(s.SubmittedBy),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": resp,
		"count":       len(resp),
	})
}

/*
*
GradeSubmission handles POST /api/submissions/:id/grade (staff only)
Writes feedback/acceptance to the submission and status/final_score to the
owning task. A partial failure (submission updated, task not) is reported
distinctly so the adviser knows to retry the task write.
*/
func GradeSubmission(c *gin.Context) {
	var req GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := taskSvc().Grade(c.Request.Context(), c.Param("id"), req.IsAccepted, req.Feedback, req.Score)
	if err != nil {
		var partial *services.PartialGradeError
		switch {
		case errors.Is(err, services.ErrSubmissionNotFound), errors.Is(err, services.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrScoreOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &partial):
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":              "Submission was graded but the task status update failed; retry the task update",
				"submission_updated": true,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit grade"})
		}
		return
	}

	broadcastEvent(task.GroupID, "task_graded", task.ID)
	c.JSON(http.StatusOK, task)
}
