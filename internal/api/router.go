package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jengzang/checkin-backend-go/internal/handler"
	"github.com/jengzang/checkin-backend-go/internal/middleware"
)

// Handlers groups the resource handlers mounted by the router
type Handlers struct {
	Tracking   *handler.TrackingHandler
	Status     *handler.StatusHandler
	Company    *handler.CompanyHandler
	Simulation *handler.SimulationHandler
}

type endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// SetupRouter 设置路由. limiter may be nil to disable rate limiting.
func SetupRouter(h Handlers, limiter *middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger))

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+middleware.RequestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "GPS Tracking Check-In API is running",
		})
	})

	api := r.Group("/api")
	if limiter != nil {
		api.Use(middleware.RateLimit(limiter))
	}

	index := map[string][]endpoint{}
	route := func(g *gin.RouterGroup, group, method, path, description string, fn gin.HandlerFunc) {
		g.Handle(method, path, fn)
		index[group] = append(index[group], endpoint{Method: method, Path: g.BasePath() + path, Description: description})
	}

	// 轨迹相关接口
	tracking := api.Group("/tracking")
	route(tracking, "tracking", http.MethodPost, "/location", "Submit location data", h.Tracking.SubmitLocation)
	route(tracking, "tracking", http.MethodGet, "/history/:userId", "Get location history for a user", h.Tracking.GetHistory)
	route(tracking, "tracking", http.MethodGet, "/current/:userId", "Get current location for a user", h.Tracking.GetCurrentLocation)

	// 工作状态接口
	user := api.Group("/user")
	route(user, "user", http.MethodPost, "/status", "Update user status", h.Status.UpdateStatus)
	route(user, "user", http.MethodGet, "/status/:userId", "Get user status", h.Status.GetStatus)
	route(user, "user", http.MethodGet, "/status/:userId/history", "Get user status history", h.Status.GetStatusHistory)

	// 公司地点接口
	company := api.Group("/company")
	route(company, "company", http.MethodGet, "/locations", "Get company locations", h.Company.GetLocations)
	route(company, "company", http.MethodGet, "/locations/nearby", "Get company locations whose geofence contains a point", h.Company.GetNearby)

	// 轨迹模拟接口
	sim := api.Group("/simulation")
	route(sim, "simulation", http.MethodPost, "/start", "Start a GPS movement simulation", h.Simulation.Start)
	route(sim, "simulation", http.MethodPost, "/stop", "Stop an active simulation", h.Simulation.Stop)
	route(sim, "simulation", http.MethodGet, "/active", "Get all active simulations", h.Simulation.ListActive)
	route(sim, "simulation", http.MethodPost, "/route", "Add a custom route", h.Simulation.AddRoute)
	route(sim, "simulation", http.MethodGet, "/routes", "Get all available routes", h.Simulation.ListRoutes)
	route(sim, "simulation", http.MethodGet, "/route/:routeName", "Get specific route details", h.Simulation.GetRoute)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "GPS Tracking Check-In System API",
			"endpoints": index,
		})
	})

	return r
}
