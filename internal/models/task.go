package models

import (
	"time"
)

// TaskStatus represents the lifecycle status of a task
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// Task represents a unit of work owned by a project group.
//
// Status and FinalScore are only ever written through the task lifecycle
// service: grading is the sole path that sets FinalScore.
type Task struct {
	ID          string       `json:"id" gorm:"primaryKey"`
	Title       string       `json:"title" gorm:"not null"`
	Description string       `json:"description"`
	CreatorID   string       `json:"creator_id" gorm:"column:creator_id;not null"`
	GroupID     string       `json:"group_id" gorm:"column:group_id;index;not null"`
	Priority    TaskPriority `json:"priority" gorm:"default:'medium'"`
	Status      TaskStatus   `json:"status" gorm:"not null;default:'pending'"`
	DueDate     *time.Time   `json:"due_date,omitempty" gorm:"column:due_date"`
	FinalScore  *float64     `json:"final_score" gorm:"column:final_score"`
	MaxScore    float64      `json:"max_score" gorm:"column:max_score;not null;default:100"`
	CreatedAt   time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}
