package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"capstone-collab-api/internal/database"
	"capstone-collab-api/internal/models"
	"capstone-collab-api/internal/objstore"
	"capstone-collab-api/internal/realtime"
	"capstone-collab-api/internal/services"

	"github.com/gin-gonic/gin"
)

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	GroupID     string              `json:"groupId" binding:"required"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     string              `json:"dueDate"`
	MaxScore    float64             `json:"maxScore"`
}

// EditTaskRequest represents the request payload for editing a task.
// Only priority and due date are editable after creation.
type EditTaskRequest struct {
	Priority *models.TaskPriority `json:"priority"`
	DueDate  *string              `json:"dueDate"`
}

// UpdateTaskStatusRequest represents a minimal request to change status
type UpdateTaskStatusRequest struct {
	Status models.TaskStatus `json:"status" binding:"required"`
}

func parseDateFlexible(dateStr string) (time.Time, bool) {
	if dateStr == "" {
		return time.Time{}, false
	}
	layouts := []string{
		"2006-01-02", // ISO date
		time.RFC3339, // full RFC3339
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func taskSvc() *services.TaskService {
	return services.NewTaskService(database.GetDB(), objstore.Get())
}

// broadcastEvent tells every connected member of the group to re-query.
func broadcastEvent(groupID, eventType, taskID string) {
	evt := map[string]any{
		"type":    eventType,
		"taskId":  taskID,
		"groupId": groupID,
	}
	if bytes, err := json.Marshal(evt); err == nil {
		realtime.GetHub().Broadcast(groupID, bytes)
	}
}

/*
*
GetTasks handles GET /api/tasks?groupId=
Returns a group's tasks, newest first.
*/
func GetTasks(c *gin.Context) {
	groupID := c.Query("groupId")
	if groupID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "groupId query parameter is required",
		})
		return
	}

	tasks, err := taskSvc().ListTasks(groupID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch tasks",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"count": len(tasks),
	})
}

/*
*
CreateTask handles POST /api/tasks (staff only)
Creates a new task for a group; tasks always start pending.
*/
func CreateTask(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		t, ok := parseDateFlexible(req.DueDate)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dueDate format"})
			return
		}
		dueDate = &t
	}

	task, err := taskSvc().CreateTask(services.NewTask{
		Title:       req.Title,
		Description: req.Description,
		CreatorID:   userID,
		GroupID:     req.GroupID,
		Priority:    req.Priority,
		DueDate:     dueDate,
		MaxScore:    req.MaxScore,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidPriority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	broadcastEvent(task.GroupID, "task_created", task.ID)
	c.JSON(http.StatusCreated, task)
}

// GetTaskByID handles GET /api/tasks/:id
func GetTaskByID(c *gin.Context) {
	task, err := taskSvc().GetTask(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

// EditTask handles PATCH /api/tasks/:id (staff only)
// Only priority and due date can be edited directly.
func EditTask(c *gin.Context) {
	var req EditTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	edit := services.TaskEdit{Priority: req.Priority}
	if req.DueDate != nil {
		t, ok := parseDateFlexible(*req.DueDate)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dueDate format"})
			return
		}
		edit.DueDate = &t
	}

	task, err := taskSvc().EditTask(c.Param("id"), edit)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, services.ErrInvalidPriority):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		}
		return
	}

	broadcastEvent(task.GroupID, "task_updated", task.ID)
	c.JSON(http.StatusOK, task)
}

// UpdateTaskStatus handles PATCH /api/tasks/:id/status (staff only)
// Manual override for non-grading status edits; never touches final_score.
func UpdateTaskStatus(c *gin.Context) {
	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := taskSvc().SetStatus(c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, services.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		}
		return
	}

	broadcastEvent(task.GroupID, "task_status_changed", task.ID)
	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/:id (staff only)
// Removes the stored submission files first, then the task row; the
// database cascades to submissions, attachments and notes.
func DeleteTask(c *gin.Context) {
	taskID := c.Param("id")

	task, err := taskSvc().GetTask(taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	if err := taskSvc().DeleteTask(c.Request.Context(), taskID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	broadcastEvent(task.GroupID, "task_deleted", taskID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"id":      taskID,
	})
}
