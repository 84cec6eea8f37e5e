package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/checkin-backend-go/internal/models"
	"github.com/jengzang/checkin-backend-go/pkg/response"
)

const (
	msgInvalidBody   = "Invalid request body"
	msgMissingFields = "Missing required fields"
)

// writeError maps a service error onto its HTTP status
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, models.ErrNotFound):
		response.NotFound(c, err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c, "Internal server error")
	}
}

// subjectParam parses the :userId path parameter, writing a 400 on failure
func subjectParam(c *gin.Context) (models.SubjectID, bool) {
	id, err := models.ParseSubjectID(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return 0, false
	}
	return id, true
}
