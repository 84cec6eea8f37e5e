package repository

import (
	"fmt"
	"math"
	"sync"

	"github.com/jengzang/checkin-backend-go/internal/models"
	"github.com/jengzang/checkin-backend-go/internal/spatial"
)

// RouteCatalog holds named simulation routes in insertion order
type RouteCatalog struct {
	mu     sync.RWMutex
	routes map[string][]models.RoutePoint
	order  []string
}

// NewRouteCatalog creates an empty route catalog
func NewRouteCatalog() *RouteCatalog {
	return &RouteCatalog{
		routes: make(map[string][]models.RoutePoint),
	}
}

// Get returns a copy of the named route
func (c *RouteCatalog) Get(name string) (*models.Route, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	points, ok := c.routes[name]
	if !ok {
		return nil, false
	}
	return &models.Route{
		Name:   name,
		Points: append([]models.RoutePoint(nil), points...),
	}, true
}

// List returns a summary of every route in insertion order
func (c *RouteCatalog) List() []models.RouteSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	summaries := make([]models.RouteSummary, 0, len(c.order))
	for _, name := range c.order {
		points := c.routes[name]
		summaries = append(summaries, models.RouteSummary{
			Name:           name,
			PointCount:     len(points),
			StartPoint:     points[0],
			EndPoint:       points[len(points)-1],
			DistanceMeters: routeLength(points),
		})
	}
	return summaries
}

// Insert adds a route or replaces the points of an existing one.
// A replaced route keeps its position in List.
func (c *RouteCatalog) Insert(name string, points []models.RoutePoint) (*models.RouteInsertResult, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty route name", models.ErrValidation)
	}
	if len(points) < 2 {
		return nil, models.ErrInvalidRoute
	}
	for _, p := range points {
		if !finite(p.Latitude) || !finite(p.Longitude) {
			return nil, models.ErrInvalidRoute
		}
	}

	stored := append([]models.RoutePoint(nil), points...)

	c.mu.Lock()
	if _, exists := c.routes[name]; !exists {
		c.order = append(c.order, name)
	}
	c.routes[name] = stored
	c.mu.Unlock()

	return &models.RouteInsertResult{
		RouteName:  name,
		PointCount: len(stored),
		Status:     "added",
	}, nil
}

func routeLength(points []models.RoutePoint) float64 {
	path := make([]spatial.Point, len(points))
	for i, p := range points {
		path[i] = spatial.Point{Lat: p.Latitude, Lon: p.Longitude}
	}
	return spatial.PathLength(path)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
