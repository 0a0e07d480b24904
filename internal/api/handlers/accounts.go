package handlers

import (
	"net/http"

	"github.com/ellery/crewdesk/internal/api/dto"
	"github.com/ellery/crewdesk/internal/database/models"
	"gorm.io/gorm"
)

type AccountHandler struct {
	db *gorm.DB
}

func NewAccountHandler(db *gorm.DB) *AccountHandler {
	return &AccountHandler{db: db}
}

// List handles GET /api/v1/accounts. Social accounts are read-only
// in-app; rows are seeded and maintained out of band.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	var accounts []models.SocialAccount
	if err := h.db.WithContext(r.Context()).
		Order("platform ASC").
		Find(&accounts).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list accounts"})
		return
	}

	writeJSON(w, http.StatusOK, accounts)
}
