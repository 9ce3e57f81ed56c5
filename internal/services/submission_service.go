package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"capstone-collab-api/internal/models"
	"capstone-collab-api/internal/objstore"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileUpload describes one file handed to Submit, in the order the student
// supplied them.
type FileUpload struct {
	Name    string
	Content io.Reader
}

// sagaState tracks how far a submit attempt has progressed, so rollback is
// exhaustive rather than ad hoc.
type sagaState int

const (
	sagaCreated sagaState = iota
	sagaUploading
	sagaLinking
	sagaCommitted
	sagaRolledBack
)

func (st sagaState) String() string {
	switch st {
	case sagaCreated:
		return "create"
	case sagaUploading:
		return "upload"
	case sagaLinking:
		return "link"
	case sagaCommitted:
		return "commit"
	case sagaRolledBack:
		return "rollback"
	}
	return "unknown"
}

// SubmissionService is the submission coordinator and version ledger. It
// performs the multi-store "submit files for a task" operation as a
// compensating-action saga: there is no cross-store transaction between
// the database and the object store, so a failed upload or attachment
// insert is undone by deleting the submission row created for the attempt.
type SubmissionService struct {
	db    *gorm.DB
	store objstore.Store
}

func NewSubmissionService(db *gorm.DB, store objstore.Store) *SubmissionService {
	return &SubmissionService{db: db, store: store}
}

// NextVersion returns max(version_number)+1 for the task, or 1 when no
// submission exists. The read-then-increment is not atomic; the unique
// (task_id, version_number) index turns a concurrent collision into a
// clean insert failure instead of a duplicate version.
func (s *SubmissionService) NextVersion(taskID string) (int, error) {
	var current int
	err := s.db.Model(&models.Submission{}).
		Where("task_id = ?", taskID).
		Select("COALESCE(MAX(version_number), 0)").
		Scan(&current).Error
	if err != nil {
		return 0, err
	}
	return current + 1, nil
}

// ListSubmissions returns the task's submissions with their attachments,
// most recent version first. Read-only.
func (s *SubmissionService) ListSubmissions(taskID string) ([]models.Submission, error) {
	var subs []models.Submission
	err := s.db.Preload("Attachments").
		Where("task_id = ?", taskID).
		Order("version_number desc").
		Find(&subs).Error
	return subs, err
}

// Submit stores the given files as a new versioned submission attempt.
//
// On any upload or link failure the submission row created for the attempt
// is deleted again, so a failed call leaves the ledger indistinguishable
// from a no-op. Objects uploaded before the failing one are not removed;
// an orphaned stored object is accepted, a ghost submission row is not.
func (s *SubmissionService) Submit(ctx context.Context, taskID, userID string, files []FileUpload) (*models.Submission, error) {
	if len(files) == 0 {
		return nil, ErrEmptyFiles
	}

	var task models.Task
	if err := s.db.First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	version, err := s.NextVersion(taskID)
	if err != nil {
		return nil, err
	}

	sub := models.Submission{
		ID:            uuid.NewString(),
		TaskID:        taskID,
		SubmittedBy:   userID,
		VersionNumber: version,
	}
	if err := s.db.Create(&sub).Error; err != nil {
		return nil, err
	}

	state := sagaCreated
	rollback := func() {
		log.Printf("submission %s: %s failed, rolling back", sub.ID, state)
		if err := s.db.Delete(&models.Submission{}, "id = ?", sub.ID).Error; err != nil {
			log.Printf("submission %s: rollback delete failed: %v", sub.ID, err)
		}
		state = sagaRolledBack
	}

	state = sagaUploading
	attachments := make([]models.Attachment, 0, len(files))
	for _, f := range files {
		path := objectPath(userID, taskID, version, f.Name)
		if err := s.store.Upload(ctx, path, f.Content); err != nil {
			// Abort remaining uploads; objects stored so far stay behind.
			rollback()
			return nil, &UploadError{FileName: f.Name, Err: err}
		}
		attachments = append(attachments, models.Attachment{
			ID:           uuid.NewString(),
			SubmissionID: sub.ID,
			FileName:     f.Name,
			FileURL:      path,
			FileType:     fileExt(f.Name),
		})
	}

	state = sagaLinking
	if err := s.db.Create(&attachments).Error; err != nil {
		rollback()
		return nil, &LinkError{Err: err}
	}

	state = sagaCommitted

	sub.Attachments = attachments
	return &sub, nil
}

// objectPath builds a storage path unique per (user, task, version, file),
// with a randomized suffix so same-named files cannot collide.
func objectPath(userID, taskID string, version int, fileName string) string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s/%s/v%d/%s_%s", userID, taskID, version, suffix, fileName)
}

func fileExt(fileName string) string {
	return strings.TrimPrefix(filepath.Ext(fileName), ".")
}
