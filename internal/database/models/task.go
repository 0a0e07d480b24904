package models

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "To Do"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusInReview   TaskStatus = "In Review"
	TaskStatusDone       TaskStatus = "Done"
)

var AllTaskStatuses = []TaskStatus{
	TaskStatusToDo,
	TaskStatusInProgress,
	TaskStatusInReview,
	TaskStatusDone,
}

func (s TaskStatus) Valid() bool {
	for _, known := range AllTaskStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

func (p TaskPriority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Platforms content can target.
var Platforms = []string{
	"instagram", "facebook", "twitter", "tiktok", "youtube", "pinterest", "threads",
}

func ValidPlatform(p string) bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// Task is a unit of content work. Completed is a flag independent of
// Status: a task can sit at "Done" with Completed=false and nothing
// reconciles the two.
type Task struct {
	Base
	Title      string       `gorm:"not null" json:"title"`
	Status     TaskStatus   `gorm:"not null;default:'To Do'" json:"status"`
	Platform   string       `gorm:"not null" json:"platform"`
	Priority   TaskPriority `gorm:"not null;default:'Medium'" json:"priority"`
	DueDate    *time.Time   `json:"due_date"`
	Completed  bool         `gorm:"default:false" json:"completed"`
	AssigneeID *uuid.UUID   `gorm:"type:uuid;index" json:"assignee_id"`
	CreatedBy  uuid.UUID    `gorm:"type:uuid" json:"created_by"`
}

func (Task) TableName() string {
	return "tasks"
}
