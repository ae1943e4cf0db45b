package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/requestdata"
	"github.com/skillforge-io/skillforge-backend/internal/services"
)

type OptionHandler struct {
	log       *logger.Logger
	optionSvc services.QuizOptionService
}

func NewOptionHandler(log *logger.Logger, optionSvc services.QuizOptionService) *OptionHandler {
	return &OptionHandler{
		log:       log.With("handler", "OptionHandler"),
		optionSvc: optionSvc,
	}
}

type assignOptionsRequest struct {
	OptionIDs []uuid.UUID `json:"option_ids" binding:"required"`
}

// POST /api/questions/:id/options
func (h *OptionHandler) AssignOptions(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question id"})
		return
	}
	var req assignOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	assigned, err := h.optionSvc.AssignOptions(c.Request.Context(), questionID, req.OptionIDs)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"assigned_option_ids": assigned})
}

type deleteOptionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// DELETE /api/options/:id
func (h *OptionHandler) DeleteOption(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	optionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid option id"})
		return
	}
	var req deleteOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.optionSvc.DeleteOption(c.Request.Context(), optionID, req.Reason, rd.UserID); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
