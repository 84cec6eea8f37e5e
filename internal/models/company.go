package models

// CompanyLocation is a site with a check-in geofence
type CompanyLocation struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"` // meters
	IsActive  bool    `json:"isActive"`
}

// NearbyCompanyLocation is a company location whose geofence contains a queried point
type NearbyCompanyLocation struct {
	CompanyLocation
	DistanceMeters float64 `json:"distanceMeters"`
}
