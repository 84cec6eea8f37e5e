package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/checkin-backend-go/internal/models"
	"github.com/jengzang/checkin-backend-go/internal/service"
	"github.com/jengzang/checkin-backend-go/pkg/response"
)

// TrackingHandler handles HTTP requests for location tracking
type TrackingHandler struct {
	trackingService *service.TrackingService
}

// NewTrackingHandler creates a new tracking handler
func NewTrackingHandler(trackingService *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{trackingService: trackingService}
}

// SubmitLocationRequest is the body of a location submission
type SubmitLocationRequest struct {
	UserID       *models.SubjectID `json:"userId"`
	TrackingType string            `json:"trackingType"`
	Latitude     *float64          `json:"latitude"`
	Longitude    *float64          `json:"longitude"`
	Accuracy     *float64          `json:"accuracy"`
	BatteryLevel *int              `json:"batteryLevel"`
	NetworkType  *string           `json:"networkType"`
}

// SubmitLocation handles POST /api/tracking/location
func (h *TrackingHandler) SubmitLocation(c *gin.Context) {
	var req SubmitLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, msgInvalidBody)
		return
	}
	if req.UserID == nil || *req.UserID <= 0 || req.TrackingType == "" || req.Latitude == nil || req.Longitude == nil {
		response.BadRequest(c, msgMissingFields)
		return
	}

	in := models.TrackingInput{
		TrackingType: models.TrackingType(req.TrackingType),
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
		Accuracy:     req.Accuracy,
		BatteryLevel: req.BatteryLevel,
	}
	if req.NetworkType != nil {
		nt := models.ParseNetworkType(*req.NetworkType)
		in.NetworkType = &nt
	}

	event, err := h.trackingService.Append(c.Request.Context(), *req.UserID, in)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, event)
}

// GetHistory handles GET /api/tracking/history/:userId
func (h *TrackingHandler) GetHistory(c *gin.Context) {
	id, ok := subjectParam(c)
	if !ok {
		return
	}

	events, err := h.trackingService.History(id, c.Query("date"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, events)
}

// GetCurrentLocation handles GET /api/tracking/current/:userId
func (h *TrackingHandler) GetCurrentLocation(c *gin.Context) {
	id, ok := subjectParam(c)
	if !ok {
		return
	}

	loc, err := h.trackingService.Current(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, loc)
}
