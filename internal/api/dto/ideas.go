package dto

import (
	"github.com/ellery/crewdesk/internal/database/models"
	"github.com/google/uuid"
)

type CreateIdeaRequest struct {
	Content        string   `json:"content"`
	ContentType    string   `json:"content_type"`
	Platforms      []string `json:"platforms"`
	AssignedTo     *string  `json:"assigned_to,omitempty"`
	InspirationURL *string  `json:"inspiration_url,omitempty"`
}

func (r CreateIdeaRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Content == "" {
		errors["content"] = "Content is required"
	}
	if r.ContentType == "" {
		errors["content_type"] = "Content type is required"
	} else if !models.ContentType(r.ContentType).Valid() {
		errors["content_type"] = "Invalid content type"
	}
	if len(r.Platforms) == 0 {
		errors["platforms"] = "At least one platform is required"
	} else {
		for _, platform := range r.Platforms {
			if !models.ValidPlatform(platform) {
				errors["platforms"] = "Unknown platform: " + platform
				break
			}
		}
	}
	if r.AssignedTo != nil && *r.AssignedTo != "" {
		if _, err := uuid.Parse(*r.AssignedTo); err != nil {
			errors["assigned_to"] = "Invalid user ID format"
		}
	}

	return errors
}
