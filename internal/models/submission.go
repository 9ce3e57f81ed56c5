package models

import (
	"time"
)

// Submission is one versioned attempt by a student to complete a task.
//
// VersionNumber starts at 1 and is strictly increasing per task; the
// composite unique index makes a concurrent read-then-increment collision
// fail the insert instead of producing duplicate versions. Numbers are
// never reused, even after deletion.
type Submission struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	TaskID          string    `json:"task_id" gorm:"column:task_id;not null;uniqueIndex:idx_task_version"`
	SubmittedBy     string    `json:"submitted_by" gorm:"column:submitted_by;not null"`
	VersionNumber   int       `json:"version_number" gorm:"column:version_number;not null;uniqueIndex:idx_task_version"`
	OverallFeedback *string   `json:"overall_feedback,omitempty" gorm:"column:overall_feedback"`
	IsAccepted      bool      `json:"is_accepted" gorm:"column:is_accepted;not null;default:false"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relations
	Task        Task         `json:"-" gorm:"foreignKey:TaskID;references:ID;constraint:OnDelete:CASCADE"`
	Attachments []Attachment `json:"attachments" gorm:"foreignKey:SubmissionID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Submission Model
func (Submission) TableName() string {
	return "submissions"
}
