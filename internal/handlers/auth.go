package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/services"
)

type AuthHandler struct {
	log      *logger.Logger
	tokenSvc services.TokenService
}

func NewAuthHandler(log *logger.Logger, tokenSvc services.TokenService) *AuthHandler {
	return &AuthHandler{
		log:      log.With("handler", "AuthHandler"),
		tokenSvc: tokenSvc,
	}
}

type issueTokenRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

// POST /token
// Identity is owned by the surrounding platform; this endpoint mints a
// service token for an already-provisioned user.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req issueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, err := h.tokenSvc.IssueToken(c.Request.Context(), req.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"token": token})
}
