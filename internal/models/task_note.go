package models

import (
	"time"
)

// TaskNote is a freeform comment on a task, authored by staff or a student.
type TaskNote struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	TaskID    string    `json:"task_id" gorm:"column:task_id;index;not null"`
	AuthorID  string    `json:"author_id" gorm:"column:author_id;not null"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relations
	Task Task `json:"-" gorm:"foreignKey:TaskID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for TaskNote Model
func (TaskNote) TableName() string {
	return "task_notes"
}
