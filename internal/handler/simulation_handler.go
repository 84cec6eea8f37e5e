package handler

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/checkin-backend-go/internal/models"
	"github.com/jengzang/checkin-backend-go/internal/repository"
	"github.com/jengzang/checkin-backend-go/internal/simulation"
	"github.com/jengzang/checkin-backend-go/pkg/response"
)

// SimulationHandler handles HTTP requests for route simulation
type SimulationHandler struct {
	engine *simulation.Engine
	routes *repository.RouteCatalog
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(engine *simulation.Engine, routes *repository.RouteCatalog) *SimulationHandler {
	return &SimulationHandler{engine: engine, routes: routes}
}

// StartSimulationRequest is the body of a simulation start.
// Options stay raw so malformed values fall back to defaults instead of
// failing the request.
type StartSimulationRequest struct {
	UserID    *models.SubjectID `json:"userId"`
	RouteName string            `json:"routeName"`
	Options   json.RawMessage   `json:"options"`
}

// StopSimulationRequest is the body of a simulation stop
type StopSimulationRequest struct {
	UserID *models.SubjectID `json:"userId"`
}

// AddRouteRequest is the body of a custom route submission
type AddRouteRequest struct {
	RouteName string          `json:"routeName"`
	Points    json.RawMessage `json:"points"`
}

// Start handles POST /api/simulation/start
func (h *SimulationHandler) Start(c *gin.Context) {
	var req StartSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, msgInvalidBody)
		return
	}
	if req.UserID == nil || *req.UserID <= 0 || req.RouteName == "" {
		response.BadRequest(c, "Missing required fields: userId and routeName")
		return
	}

	opts := models.ParseSimulationOptions(req.Options)
	result, err := h.engine.Start(c.Request.Context(), *req.UserID, req.RouteName, opts)
	if err != nil {
		if errors.Is(err, models.ErrRouteNotFound) {
			response.BadRequest(c, fmt.Sprintf("Route %q not found", req.RouteName))
			return
		}
		writeError(c, err)
		return
	}

	response.Success(c, result)
}

// Stop handles POST /api/simulation/stop
func (h *SimulationHandler) Stop(c *gin.Context) {
	var req StopSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, msgInvalidBody)
		return
	}
	if req.UserID == nil || *req.UserID <= 0 {
		response.BadRequest(c, "Missing required field: userId")
		return
	}

	result, err := h.engine.Stop(*req.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, result)
}

// ListActive handles GET /api/simulation/active
func (h *SimulationHandler) ListActive(c *gin.Context) {
	response.Success(c, h.engine.ListActive())
}

// AddRoute handles POST /api/simulation/route
func (h *SimulationHandler) AddRoute(c *gin.Context) {
	var req AddRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, msgInvalidBody)
		return
	}
	if req.RouteName == "" || len(req.Points) == 0 || string(req.Points) == "null" {
		response.BadRequest(c, "Missing required fields: routeName and points")
		return
	}

	points, err := decodeRoutePoints(req.Points)
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := h.engine.AddRoute(req.RouteName, points)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, result)
}

// ListRoutes handles GET /api/simulation/routes
func (h *SimulationHandler) ListRoutes(c *gin.Context) {
	response.Success(c, h.routes.List())
}

// GetRoute handles GET /api/simulation/route/:routeName
func (h *SimulationHandler) GetRoute(c *gin.Context) {
	route, ok := h.routes.Get(c.Param("routeName"))
	if !ok {
		writeError(c, models.ErrRouteNotFound)
		return
	}

	response.Success(c, route)
}

// decodeRoutePoints requires an array of objects that all carry numeric
// latitude and longitude
func decodeRoutePoints(raw json.RawMessage) ([]models.RoutePoint, error) {
	var in []struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, models.ErrInvalidRoute
	}

	points := make([]models.RoutePoint, 0, len(in))
	for _, p := range in {
		if p.Latitude == nil || p.Longitude == nil {
			return nil, models.ErrInvalidRoute
		}
		points = append(points, models.RoutePoint{Latitude: *p.Latitude, Longitude: *p.Longitude})
	}
	return points, nil
}
