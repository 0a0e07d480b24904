package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/ellery/crewdesk/internal/api/dto"
	"github.com/ellery/crewdesk/internal/api/middleware"
	"github.com/ellery/crewdesk/internal/database/models"
	"github.com/ellery/crewdesk/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxAvatarBytes = 5 << 20

type ProfileHandler struct {
	db      *gorm.DB
	storage *storage.Client
}

func NewProfileHandler(db *gorm.DB, storageClient *storage.Client) *ProfileHandler {
	return &ProfileHandler{db: db, storage: storageClient}
}

func profileToResponse(p *models.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:        p.ID.String(),
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}

// Get handles GET /api/v1/profile. A user with no profile row yet gets
// an empty shell, not an error: profiles are created lazily by the
// first update.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var profile models.Profile
	err := h.db.WithContext(r.Context()).First(&profile, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusOK, dto.ProfileResponse{ID: userID.String()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get profile"})
		return
	}

	writeJSON(w, http.StatusOK, profileToResponse(&profile))
}

// Update handles PUT /api/v1/profile. The patch merges over the
// last-persisted profile: a nil field keeps the stored value, so
// setting only full_name never clears avatar_url. Upserting on id is
// also the creation path for a missing profile row.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var patch dto.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errors := patch.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errors})
		return
	}

	var existing models.Profile
	hasExisting := h.db.WithContext(r.Context()).First(&existing, "id = ?", userID).Error == nil

	now := time.Now()
	merged := models.Profile{
		ID:        userID,
		UpdatedAt: now,
		CreatedAt: now,
	}
	if hasExisting {
		merged.CreatedAt = existing.CreatedAt
		merged.FullName = existing.FullName
		merged.AvatarURL = existing.AvatarURL
	}
	if patch.FullName != nil {
		merged.FullName = patch.FullName
	}
	if patch.AvatarURL != nil {
		merged.AvatarURL = patch.AvatarURL
	}

	if err := h.db.WithContext(r.Context()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&merged).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update profile"})
		return
	}

	// Re-read to confirm what actually persisted.
	var persisted models.Profile
	if err := h.db.WithContext(r.Context()).First(&persisted, "id = ?", userID).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to reload profile"})
		return
	}

	writeJSON(w, http.StatusOK, profileToResponse(&persisted))
}

// UploadAvatar handles POST /api/v1/profile/avatar. The file lands in
// the public avatars bucket and the public URL comes back; the client
// follows up with a profile update carrying that URL.
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		writeJSON(w, http.StatusServiceUnavailable, dto.ErrorResponse{Error: "File storage is not configured"})
		return
	}

	userID := middleware.GetUserID(r.Context())

	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid upload"})
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Avatar file is required"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !storage.ValidAvatarType(contentType) {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Please upload an image file"})
		return
	}

	if err := h.storage.EnsureBucket(r.Context(), storage.AvatarBucket); err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Upload failed"})
		return
	}

	key := objectKey(userID, header.Filename, uuid.New().String()[:8])
	url, err := h.storage.Upload(r.Context(), storage.AvatarBucket, key, contentType, file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Upload failed"})
		return
	}

	writeJSON(w, http.StatusOK, dto.UploadResponse{URL: url})
}

func objectKey(userID uuid.UUID, filename, suffix string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return userID.String() + "-" + suffix + ext
}
