package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/requestdata"
	"github.com/skillforge-io/skillforge-backend/internal/services"
)

type ToolHandler struct {
	log     *logger.Logger
	toolSvc services.ToolService
}

func NewToolHandler(log *logger.Logger, toolSvc services.ToolService) *ToolHandler {
	return &ToolHandler{
		log:     log.With("handler", "ToolHandler"),
		toolSvc: toolSvc,
	}
}

type assignToolRequest struct {
	ToolID uuid.UUID `json:"tool_id" binding:"required"`
}

// POST /api/scopes/:id/tool
func (h *ToolHandler) AssignTool(c *gin.Context) {
	scopeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scope id"})
		return
	}
	var req assignToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := h.toolSvc.Assign(c.Request.Context(), scopeID, req.ToolID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, row)
}

type switchToolRequest struct {
	ToolID uuid.UUID `json:"tool_id" binding:"required"`
	Reason string    `json:"reason" binding:"required"`
}

// PUT /api/scopes/:id/tool
func (h *ToolHandler) SwitchTool(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	scopeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scope id"})
		return
	}
	var req switchToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := h.toolSvc.Switch(c.Request.Context(), scopeID, req.ToolID, req.Reason, rd.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, row)
}
