package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ellery/crewdesk/internal/api/dto"
	"github.com/ellery/crewdesk/internal/api/middleware"
	"github.com/ellery/crewdesk/internal/database/models"
	"github.com/ellery/crewdesk/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxInspirationBytes = 50 << 20

type IdeaHandler struct {
	db      *gorm.DB
	storage *storage.Client
}

func NewIdeaHandler(db *gorm.DB, storageClient *storage.Client) *IdeaHandler {
	return &IdeaHandler{db: db, storage: storageClient}
}

// List handles GET /api/v1/ideas
func (h *IdeaHandler) List(w http.ResponseWriter, r *http.Request) {
	var ideas []models.Idea
	if err := h.db.WithContext(r.Context()).
		Order("created_at DESC").
		Find(&ideas).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list ideas"})
		return
	}

	writeJSON(w, http.StatusOK, ideas)
}

// Create handles POST /api/v1/ideas. Inspiration media is uploaded
// separately first; the request carries its public URL.
func (h *IdeaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateIdeaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	idea := models.Idea{
		Content:        req.Content,
		ContentType:    models.ContentType(req.ContentType),
		Platforms:      strings.Join(req.Platforms, ","),
		InspirationURL: req.InspirationURL,
		CreatedBy:      middleware.GetUserID(r.Context()),
	}
	if req.AssignedTo != nil && *req.AssignedTo != "" {
		id, _ := uuid.Parse(*req.AssignedTo)
		idea.AssignedTo = &id
	}

	if err := h.db.WithContext(r.Context()).Create(&idea).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create idea"})
		return
	}

	writeJSON(w, http.StatusCreated, idea)
}

// UploadMedia handles POST /api/v1/ideas/media: inspiration images or
// video into the public inspirations bucket.
func (h *IdeaHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		writeJSON(w, http.StatusServiceUnavailable, dto.ErrorResponse{Error: "File storage is not configured"})
		return
	}

	userID := middleware.GetUserID(r.Context())

	if err := r.ParseMultipartForm(maxInspirationBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid upload"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "File is required"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !storage.ValidInspirationType(contentType) {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Please upload an image (JPEG, PNG, GIF) or video file (MP4)"})
		return
	}

	if err := h.storage.EnsureBucket(r.Context(), storage.InspirationBucket); err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Upload failed"})
		return
	}

	key := objectKey(userID, header.Filename, strconv.FormatInt(time.Now().UnixMilli(), 10))
	url, err := h.storage.Upload(r.Context(), storage.InspirationBucket, key, contentType, file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Upload failed"})
		return
	}

	writeJSON(w, http.StatusOK, dto.UploadResponse{URL: url})
}
