package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/ellery/crewdesk/internal/database/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTaskNotFound = errors.New("task not found")

// Assignee is the display descriptor resolved for a task's assignee.
type Assignee struct {
	ID       uuid.UUID `json:"id"`
	FullName *string   `json:"full_name,omitempty"`
	Email    string    `json:"email,omitempty"`
}

// TaskWithAssignee is a task row plus its resolved assignee, when one
// exists and resolves.
type TaskWithAssignee struct {
	models.Task
	Assignee *Assignee `json:"assignee,omitempty"`
}

// AssigneeOption is an entry for the create-task assignee picker.
type AssigneeOption struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName *string   `json:"full_name,omitempty"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List fetches all tasks, resolves assignee descriptors for the
// distinct non-nil assignee ids, then applies the status filter and
// search term in memory over the joined list. Tasks whose assignee id
// resolves to nothing simply carry no descriptor.
func (s *Service) List(ctx context.Context, status, search string) ([]TaskWithAssignee, error) {
	var rows []models.Task
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	assignees, err := s.resolveAssignees(ctx, rows)
	if err != nil {
		return nil, err
	}

	joined := make([]TaskWithAssignee, len(rows))
	for i, task := range rows {
		joined[i] = TaskWithAssignee{Task: task}
		if task.AssigneeID != nil {
			if a, ok := assignees[*task.AssigneeID]; ok {
				joined[i].Assignee = a
			}
		}
	}

	return Filter(joined, status, search), nil
}

func (s *Service) resolveAssignees(ctx context.Context, rows []models.Task) (map[uuid.UUID]*Assignee, error) {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, task := range rows {
		if task.AssigneeID != nil && !seen[*task.AssigneeID] {
			seen[*task.AssigneeID] = true
			ids = append(ids, *task.AssigneeID)
		}
	}
	if len(ids) == 0 {
		return map[uuid.UUID]*Assignee{}, nil
	}

	var profiles []models.Profile
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	var identities []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&identities).Error; err != nil {
		return nil, err
	}

	resolved := make(map[uuid.UUID]*Assignee, len(ids))
	for _, identity := range identities {
		resolved[identity.ID] = &Assignee{ID: identity.ID, Email: identity.Email}
	}
	for _, profile := range profiles {
		if a, ok := resolved[profile.ID]; ok {
			a.FullName = profile.FullName
		} else {
			resolved[profile.ID] = &Assignee{ID: profile.ID, FullName: profile.FullName}
		}
	}

	return resolved, nil
}

type CreateInput struct {
	Title      string
	Status     models.TaskStatus
	Platform   string
	Priority   models.TaskPriority
	DueDate    *time.Time
	Completed  bool
	AssigneeID *uuid.UUID
}

// Create inserts a task with the caller stamped as creator. No
// uniqueness or conflict checks; callers refetch to see the new row.
func (s *Service) Create(ctx context.Context, createdBy uuid.UUID, input CreateInput) (*models.Task, error) {
	task := models.Task{
		Title:      input.Title,
		Status:     input.Status,
		Platform:   input.Platform,
		Priority:   input.Priority,
		DueDate:    input.DueDate,
		Completed:  input.Completed,
		AssigneeID: input.AssigneeID,
		CreatedBy:  createdBy,
	}
	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ToggleCompletion flips exactly the completed flag. Status is never
// touched; the two fields move independently.
func (s *Service) ToggleCompletion(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := s.db.WithContext(ctx).First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&task).
		Update("completed", !task.Completed).Error; err != nil {
		return nil, err
	}

	task.Completed = !task.Completed
	return &task, nil
}

// AssigneeOptions lists every identity joined with its profile name,
// for the create-task picker.
func (s *Service) AssigneeOptions(ctx context.Context) ([]AssigneeOption, error) {
	var identities []models.User
	if err := s.db.WithContext(ctx).Order("email ASC").Find(&identities).Error; err != nil {
		return nil, err
	}
	var profiles []models.Profile
	if err := s.db.WithContext(ctx).Find(&profiles).Error; err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]*string, len(profiles))
	for _, profile := range profiles {
		names[profile.ID] = profile.FullName
	}

	options := make([]AssigneeOption, len(identities))
	for i, identity := range identities {
		options[i] = AssigneeOption{
			ID:       identity.ID,
			Email:    identity.Email,
			FullName: names[identity.ID],
		}
	}
	return options, nil
}
