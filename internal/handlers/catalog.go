package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/requestdata"
	"github.com/skillforge-io/skillforge-backend/internal/services"
)

type CatalogHandler struct {
	log        *logger.Logger
	catalogSvc services.CatalogService
}

func NewCatalogHandler(log *logger.Logger, catalogSvc services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		log:        log.With("handler", "CatalogHandler"),
		catalogSvc: catalogSvc,
	}
}

type createDomainRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// POST /api/domains
func (h *CatalogHandler) CreateDomain(c *gin.Context) {
	var req createDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := h.catalogSvc.CreateDomain(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, row)
}

type createModuleRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description"`
	DurationHours  int      `json:"duration_hours"`
	Difficulty     string   `json:"difficulty"`
	ThresholdScore *float64 `json:"threshold_score"`
}

// POST /api/modules
func (h *CatalogHandler) CreateModule(c *gin.Context) {
	var req createModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := h.catalogSvc.CreateModule(c.Request.Context(), services.CreateModuleInput{
		Title:          req.Title,
		Description:    req.Description,
		DurationHours:  req.DurationHours,
		Difficulty:     req.Difficulty,
		ThresholdScore: req.ThresholdScore,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, row)
}

type linkModuleRequest struct {
	ModuleID uuid.UUID `json:"module_id" binding:"required"`
}

// POST /api/domains/:id/modules
func (h *CatalogHandler) LinkModule(c *gin.Context) {
	domainID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid domain id"})
		return
	}
	var req linkModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := h.catalogSvc.LinkModuleToDomain(c.Request.Context(), domainID, req.ModuleID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, row)
}

// POST /api/domains/:id/members
// Registers the calling user into the domain.
func (h *CatalogHandler) JoinDomain(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	domainID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid domain id"})
		return
	}
	row, err := h.catalogSvc.RegisterUserDomain(c.Request.Context(), rd.UserID, domainID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, row)
}

type createQuizRequest struct {
	ModuleID uuid.UUID `json:"module_id" binding:"required"`
	Title    string    `json:"title" binding:"required"`
}

// POST /api/quizzes
func (h *CatalogHandler) CreateQuiz(c *gin.Context) {
	var req createQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := h.catalogSvc.CreateQuiz(c.Request.Context(), req.ModuleID, req.Title)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, row)
}

type createQuestionRequest struct {
	Text     string `json:"text" binding:"required"`
	Marks    int    `json:"marks"`
	Position int    `json:"position"`
}

// POST /api/quizzes/:id/questions
func (h *CatalogHandler) CreateQuestion(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz id"})
		return
	}
	var req createQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := h.catalogSvc.CreateQuestion(c.Request.Context(), quizID, req.Text, req.Marks, req.Position)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, row)
}

type createOptionRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

// POST /api/options
func (h *CatalogHandler) CreateOption(c *gin.Context) {
	var req createOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := h.catalogSvc.CreateOption(c.Request.Context(), req.Text, req.IsCorrect)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, row)
}

type createToolRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// POST /api/tools
func (h *CatalogHandler) CreateTool(c *gin.Context) {
	var req createToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := h.catalogSvc.CreateTool(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, row)
}
