package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ellery/crewdesk/internal/api/dto"
	"github.com/ellery/crewdesk/internal/api/middleware"
	"github.com/ellery/crewdesk/internal/auth"
	"github.com/ellery/crewdesk/internal/database/models"
)

type AuthHandler struct {
	authService *auth.Service
	jwtService  *auth.JWTService
}

func NewAuthHandler(authService *auth.Service, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{authService: authService, jwtService: jwtService}
}

func userToDTO(user *models.User) dto.UserDTO {
	return dto.UserDTO{
		ID:        user.ID.String(),
		Email:     user.Email,
		FullName:  user.FullName,
		Confirmed: user.Confirmed,
	}
}

// Register handles POST /api/v1/auth/register. The new account starts
// unconfirmed and gets no token: sign-in stays blocked until an admin
// approves it.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errors})
		return
	}

	user, err := h.authService.SignUp(r.Context(), auth.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})

	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: "User already exists"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Registration failed"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, dto.RegisterResponse{
		User:    userToDTO(user),
		Message: "Account created. You may need admin approval before you can sign in.",
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errors})
		return
	}

	resp, err := h.authService.SignIn(r.Context(), auth.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})

	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid credentials"})
		case errors.Is(err, auth.ErrUnconfirmedUser):
			writeJSON(w, http.StatusForbidden, dto.ErrorResponse{Error: "Account pending admin approval"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Login failed"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Token: resp.Token,
		User:  userToDTO(resp.User),
	})
}

// Logout handles POST /api/v1/auth/logout. When a valid token is
// presented it is denylisted server-side; the response is 200 either
// way, since the client discards its copy regardless.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		if token := bearerToken(r); token != "" {
			if parsed, err := h.jwtService.ValidateToken(token); err == nil {
				claims = parsed
			}
		}
	}

	if claims != nil {
		_ = h.authService.SignOut(r.Context(), claims)
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Logged out"})
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
