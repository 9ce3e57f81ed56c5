package models

import (
	"time"
)

// Attachment links one stored binary object to a submission. FileURL is the
// opaque storage path chosen by the coordinator; a row must never be
// inserted before its backing object exists.
type Attachment struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	SubmissionID string    `json:"submission_id" gorm:"column:submission_id;index;not null"`
	FileName     string    `json:"file_name" gorm:"column:file_name;not null"`
	FileURL      string    `json:"file_url" gorm:"column:file_url;not null"`
	FileType     string    `json:"file_type" gorm:"column:file_type"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relations
	Submission Submission `json:"-" gorm:"foreignKey:SubmissionID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Attachment Model
func (Attachment) TableName() string {
	return "attachments"
}
