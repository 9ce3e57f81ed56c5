package services

import (
	"errors"
	"strings"

	"capstone-collab-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoteService handles task notes. Notes live and die independently of
// submissions; deleting one is allowed for its author and for staff.
type NoteService struct {
	db *gorm.DB
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db}
}

func (s *NoteService) CreateNote(taskID, authorID, content string) (*models.TaskNote, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("note content must not be empty")
	}

	var task models.Task
	if err := s.db.First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	note := models.TaskNote{
		ID:       uuid.NewString(),
		TaskID:   taskID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.db.Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// ListNotes returns a task's notes, newest first.
func (s *NoteService) ListNotes(taskID string) ([]models.TaskNote, error) {
	var notes []models.TaskNote
	err := s.db.Where("task_id = ?", taskID).
		Order("created_at desc").
		Find(&notes).Error
	return notes, err
}

func (s *NoteService) DeleteNote(noteID, actorID string, actorRole models.UserRole) error {
	var note models.TaskNote
	if err := s.db.First(&note, "id = ?", noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return err
	}

	if actorRole != models.RoleStaff && note.AuthorID != actorID {
		return ErrNotePermission
	}

	return s.db.Delete(&models.TaskNote{}, "id = ?", noteID).Error
}
