package dto

import (
	"github.com/ellery/crewdesk/internal/database/models"
	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title      string  `json:"title"`
	Status     string  `json:"status"`
	Platform   string  `json:"platform"`
	Priority   string  `json:"priority"`
	DueDate    *string `json:"due_date,omitempty"`
	Completed  bool    `json:"completed"`
	AssigneeID *string `json:"assignee_id,omitempty"`
}

func (r CreateTaskRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Title == "" {
		errors["title"] = "Title is required"
	}
	if r.Status != "" && !models.TaskStatus(r.Status).Valid() {
		errors["status"] = "Invalid status"
	}
	if r.Platform == "" {
		errors["platform"] = "Platform is required"
	} else if !models.ValidPlatform(r.Platform) {
		errors["platform"] = "Unknown platform"
	}
	if r.Priority != "" && !models.TaskPriority(r.Priority).Valid() {
		errors["priority"] = "Invalid priority"
	}
	if r.AssigneeID != nil && *r.AssigneeID != "" {
		if _, err := uuid.Parse(*r.AssigneeID); err != nil {
			errors["assignee_id"] = "Invalid assignee ID format"
		}
	}

	return errors
}
