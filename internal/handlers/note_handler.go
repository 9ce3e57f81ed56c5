package handlers

import (
	"errors"
	"net/http"

	"capstone-collab-api/internal/database"
	"capstone-collab-api/internal/models"
	"capstone-collab-api/internal/services"

	"github.com/gin-gonic/gin"
)

// CreateNoteRequest represents the request payload for adding a task note
type CreateNoteRequest struct {
	Content string `json:"content" binding:"required"`
}

// NoteResponse augments a note with its author's display name.
type NoteResponse struct {
	models.TaskNote
	AuthorName string `json:"author_name"`
}

func noteSvc() *services.NoteService {
	return services.NewNoteService(database.GetDB())
}

// GetNotes handles GET /api/tasks/:id/notes
func GetNotes(c *gin.Context) {
	notes, err := noteSvc().ListNotes(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notes"})
		return
	}

	resp := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		resp = append(resp, NoteResponse{
			TaskNote:   n,
			AuthorName: displayName(n.AuthorID),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"notes": resp,
		"count": len(resp),
	})
}

// CreateNote handles POST /api/tasks/:id/notes
func CreateNote(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := noteSvc().CreateNote(c.Param("id"), userID, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, note)
}

// DeleteNote handles DELETE /api/notes/:id
// Allowed for the note's author and for staff.
func DeleteNote(c *gin.Context) {
	userID := c.GetString("user_id")
	role := models.UserRole(c.GetString("role"))

	err := noteSvc().DeleteNote(c.Param("id"), userID, role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		case errors.Is(err, services.ErrNotePermission):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete note"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Note deleted successfully",
		"id":      c.Param("id"),
	})
}
