package services

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyFiles         = errors.New("at least one file is required")
	ErrTaskNotFound       = errors.New("task not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrNotePermission     = errors.New("only staff or the author can delete a note")
	ErrInvalidPriority    = errors.New("priority must be low, medium or high")
	ErrInvalidStatus      = errors.New("invalid task status")
	ErrScoreOutOfRange    = errors.New("score must be between 0 and the task max score")
)

// UploadError reports that the object store rejected or network-failed a
// file. The submission row created for the attempt has been rolled back.
type UploadError struct {
	FileName string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload of %q failed: %v", e.FileName, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// LinkError reports that the attachment metadata insert failed after all
// uploads succeeded. The submission row has been rolled back; the stored
// objects may remain as orphans.
type LinkError struct {
	Err error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("linking attachments failed: %v", e.Err)
}

func (e *LinkError) Unwrap() error { return e.Err }

// PartialGradeError reports that the submission's feedback/acceptance was
// written but the task status/score write failed. The caller must retry
// the task write only; re-running the whole grade is also safe.
type PartialGradeError struct {
	SubmissionID string
	Err          error
}

func (e *PartialGradeError) Error() string {
	return fmt.Sprintf("submission %s graded but task update failed: %v", e.SubmissionID, e.Err)
}

func (e *PartialGradeError) Unwrap() error { return e.Err }
