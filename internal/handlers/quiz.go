package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/requestdata"
	"github.com/skillforge-io/skillforge-backend/internal/services"
)

type QuizHandler struct {
	log        *logger.Logger
	scoringSvc services.QuizScoringService
}

func NewQuizHandler(log *logger.Logger, scoringSvc services.QuizScoringService) *QuizHandler {
	return &QuizHandler{
		log:        log.With("handler", "QuizHandler"),
		scoringSvc: scoringSvc,
	}
}

type attemptRequest struct {
	Answers []struct {
		QuestionID uuid.UUID `json:"question_id" binding:"required"`
		OptionID   uuid.UUID `json:"option_id" binding:"required"`
	} `json:"answers" binding:"required"`
}

// POST /api/quizzes/:id/attempts
func (h *QuizHandler) SubmitAttempt(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	quizID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz id"})
		return
	}
	var req attemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	answers := make([]services.AnswerInput, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, services.AnswerInput{QuestionID: a.QuestionID, OptionID: a.OptionID})
	}
	result, err := h.scoringSvc.AttemptQuiz(c.Request.Context(), rd.UserID, quizID, answers)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

// GET /api/quizzes/:id/result
func (h *QuizHandler) GetResult(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	quizID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz id"})
		return
	}
	snapshot, err := h.scoringSvc.GetQuizResult(c.Request.Context(), rd.UserID, quizID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, snapshot)
}
