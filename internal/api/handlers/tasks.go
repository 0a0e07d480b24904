package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ellery/crewdesk/internal/api/dto"
	"github.com/ellery/crewdesk/internal/api/middleware"
	"github.com/ellery/crewdesk/internal/database/models"
	"github.com/ellery/crewdesk/internal/tasks"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type TaskHandler struct {
	tasks *tasks.Service
}

func NewTaskHandler(taskService *tasks.Service) *TaskHandler {
	return &TaskHandler{tasks: taskService}
}

// List handles GET /api/v1/tasks?status=&search=
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	search := r.URL.Query().Get("search")

	list, err := h.tasks.List(r.Context(), status, search)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list tasks"})
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// Create handles POST /api/v1/tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	input := tasks.CreateInput{
		Title:     req.Title,
		Status:    models.TaskStatusToDo,
		Platform:  req.Platform,
		Priority:  models.PriorityMedium,
		Completed: req.Completed,
	}
	if req.Status != "" {
		input.Status = models.TaskStatus(req.Status)
	}
	if req.Priority != "" {
		input.Priority = models.TaskPriority(req.Priority)
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Validation failed",
				Details: map[string]string{"due_date": "Expected YYYY-MM-DD"},
			})
			return
		}
		input.DueDate = &due
	}
	if req.AssigneeID != nil && *req.AssigneeID != "" {
		id, _ := uuid.Parse(*req.AssigneeID)
		input.AssigneeID = &id
	}

	task, err := h.tasks.Create(r.Context(), middleware.GetUserID(r.Context()), input)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create task"})
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

// ToggleCompletion handles POST /api/v1/tasks/{id}/toggle. Flips only
// the completed flag; status is left alone.
func (h *TaskHandler) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid task ID"})
		return
	}

	task, err := h.tasks.ToggleCompletion(r.Context(), taskID)
	if err != nil {
		if errors.Is(err, tasks.ErrTaskNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Task not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update task"})
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// Assignees handles GET /api/v1/tasks/assignees, the picker for the
// create-task form.
func (h *TaskHandler) Assignees(w http.ResponseWriter, r *http.Request) {
	options, err := h.tasks.AssigneeOptions(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list users"})
		return
	}

	writeJSON(w, http.StatusOK, options)
}
