package models

// RoutePoint is a single coordinate of a route
type RoutePoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Route is a named ordered sequence of points
type Route struct {
	Name   string       `json:"name"`
	Points []RoutePoint `json:"points"`
}

// RouteSummary is the list view of a route
type RouteSummary struct {
	Name           string     `json:"name"`
	PointCount     int        `json:"pointCount"`
	StartPoint     RoutePoint `json:"startPoint"`
	EndPoint       RoutePoint `json:"endPoint"`
	DistanceMeters float64    `json:"distanceMeters"`
}

// RouteInsertResult is returned after a route is added or replaced
type RouteInsertResult struct {
	RouteName  string `json:"routeName"`
	PointCount int    `json:"pointCount"`
	Status     string `json:"status"`
}
