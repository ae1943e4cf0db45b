package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/requestdata"
	"github.com/skillforge-io/skillforge-backend/internal/services"
	"github.com/skillforge-io/skillforge-backend/internal/types"
)

type EnrollmentHandler struct {
	log           *logger.Logger
	enrollmentSvc services.EnrollmentService
}

func NewEnrollmentHandler(log *logger.Logger, enrollmentSvc services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		log:           log.With("handler", "EnrollmentHandler"),
		enrollmentSvc: enrollmentSvc,
	}
}

type enrollRequest struct {
	ModuleID uuid.UUID  `json:"module_id" binding:"required"`
	DomainID *uuid.UUID `json:"domain_id"`
}

// POST /api/enrollments
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.enrollmentSvc.Enroll(c.Request.Context(), rd.UserID, req.ModuleID, req.DomainID)
	if err != nil {
		RespondError(c, err)
		return
	}
	if res.AlreadyEnrolled {
		RespondOK(c, res.Enrollment)
		return
	}
	RespondCreated(c, res.Enrollment)
}

// GET /api/modules/:id/enrollment
func (h *EnrollmentHandler) GetEnrollment(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	moduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid module id"})
		return
	}
	domainID, ok := optionalDomainID(c)
	if !ok {
		return
	}
	row, err := h.enrollmentSvc.Get(c.Request.Context(), rd.UserID, moduleID, domainID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, row)
}

type updateEnrollmentRequest struct {
	Score             *float64                `json:"score"`
	ThresholdScore    *float64                `json:"threshold_score"`
	Status            *types.EnrollmentStatus `json:"status"`
	QuestionsAnswered *int                    `json:"questions_answered"`
	DomainID          *uuid.UUID              `json:"domain_id"`
}

// PATCH /api/modules/:id/enrollment
func (h *EnrollmentHandler) UpdateEnrollment(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	moduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid module id"})
		return
	}
	var req updateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch := services.EnrollmentPatch{
		Score:             req.Score,
		ThresholdScore:    req.ThresholdScore,
		Status:            req.Status,
		QuestionsAnswered: req.QuestionsAnswered,
	}
	row, err := h.enrollmentSvc.Update(c.Request.Context(), rd.UserID, moduleID, patch, req.DomainID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, row)
}

// optionalDomainID reads the domain_id query param; reports false after
// writing a 400 when the param is present but malformed.
func optionalDomainID(c *gin.Context) (*uuid.UUID, bool) {
	raw := c.Query("domain_id")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid domain id"})
		return nil, false
	}
	return &id, true
}
