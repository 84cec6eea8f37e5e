package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/checkin-backend-go/internal/models"
	"github.com/jengzang/checkin-backend-go/internal/service"
	"github.com/jengzang/checkin-backend-go/pkg/response"
)

// StatusHandler handles HTTP requests for work status
type StatusHandler struct {
	statusService *service.StatusService
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(statusService *service.StatusService) *StatusHandler {
	return &StatusHandler{statusService: statusService}
}

// UpdateStatusRequest is the body of a status change
type UpdateStatusRequest struct {
	UserID *models.SubjectID `json:"userId"`
	Status string            `json:"status"`
}

// UpdateStatus handles POST /api/user/status
func (h *StatusHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, msgInvalidBody)
		return
	}
	if req.UserID == nil || *req.UserID <= 0 || req.Status == "" {
		response.BadRequest(c, msgMissingFields)
		return
	}

	rec, err := h.statusService.Transition(c.Request.Context(), *req.UserID, models.WorkStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, rec)
}

// GetStatus handles GET /api/user/status/:userId
func (h *StatusHandler) GetStatus(c *gin.Context) {
	id, ok := subjectParam(c)
	if !ok {
		return
	}

	rec, err := h.statusService.Current(id)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, rec)
}

// GetStatusHistory handles GET /api/user/status/:userId/history
func (h *StatusHandler) GetStatusHistory(c *gin.Context) {
	id, ok := subjectParam(c)
	if !ok {
		return
	}

	response.Success(c, h.statusService.History(id))
}
