package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillforge-io/skillforge-backend/internal/apierr"
)

type APIError struct {
	Message string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Kind    string         `json:"kind,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError maps a service error onto the wire. Typed errors carry their
// own status, code and meta; anything else is a 500.
func RespondError(c *gin.Context, err error) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		c.JSON(ae.Status, ErrorEnvelope{
			Error: APIError{
				Message: ae.Error(),
				Code:    ae.Code,
				Kind:    string(ae.Kind),
				Meta:    ae.Meta,
			},
		})
		return
	}
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, ErrorEnvelope{
		Error: APIError{Message: msg},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
