package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ellery/crewdesk/internal/api/dto"
	"github.com/ellery/crewdesk/internal/auth"
	"github.com/ellery/crewdesk/internal/database/models"
	"github.com/ellery/crewdesk/internal/roster"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AdminHandler struct {
	roster *roster.Service
}

func NewAdminHandler(rosterService *roster.Service) *AdminHandler {
	return &AdminHandler{roster: rosterService}
}

// AdminUsersResponse pairs the merged admin view with the picker list,
// matching the shape the dashboard consumes.
type AdminUsersResponse struct {
	Users         []roster.UserWithRoles `json:"users"`
	ExistingUsers []roster.ExistingUser  `json:"existing_users"`
}

// ListUsers handles GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, picker, err := h.roster.FetchUsers(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch users"})
		return
	}

	writeJSON(w, http.StatusOK, AdminUsersResponse{
		Users:         users,
		ExistingUsers: picker,
	})
}

func parseRoles(raw []string) ([]models.AppRole, map[string]string) {
	roles := make([]models.AppRole, 0, len(raw))
	for _, value := range raw {
		role := models.AppRole(value)
		if !role.Valid() {
			return nil, map[string]string{"roles": "Unknown role: " + value}
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// CreateUser handles POST /api/v1/admin/users. The response includes
// the refreshed user list, so the caller resynchronizes in one round
// trip.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	roles, detail := parseRoles(req.Roles)
	if detail != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: detail})
		return
	}

	_, err := h.roster.CreateUser(r.Context(), roster.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Roles:    roles,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: "User already exists"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create user"})
		}
		return
	}

	users, picker, err := h.roster.FetchUsers(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch users"})
		return
	}

	writeJSON(w, http.StatusCreated, AdminUsersResponse{
		Users:         users,
		ExistingUsers: picker,
	})
}

// ReplaceRoles handles PUT /api/v1/admin/users/{id}/roles. Full
// replacement of the user's role set; both the assign-to-existing and
// edit flows call this.
func (h *AdminHandler) ReplaceRoles(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	var req dto.ReplaceRolesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	roles, detail := parseRoles(req.Roles)
	if detail != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: detail})
		return
	}

	if err := h.roster.ReplaceRoles(r.Context(), userID, roles); err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update roles"})
		}
		return
	}

	users, picker, err := h.roster.FetchUsers(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch users"})
		return
	}

	writeJSON(w, http.StatusOK, AdminUsersResponse{
		Users:         users,
		ExistingUsers: picker,
	})
}
