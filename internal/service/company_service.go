package service

import (
	"sort"

	"github.com/jengzang/checkin-backend-go/internal/models"
	"github.com/jengzang/checkin-backend-go/internal/repository"
	"github.com/jengzang/checkin-backend-go/internal/spatial"
)

// CompanyService serves company locations and geofence lookups
type CompanyService struct {
	directory *repository.CompanyDirectory
}

// NewCompanyService creates a new company service
func NewCompanyService(directory *repository.CompanyDirectory) *CompanyService {
	return &CompanyService{directory: directory}
}

// Locations returns all company locations
func (s *CompanyService) Locations() []models.CompanyLocation {
	return s.directory.List()
}

// Nearby returns the active locations whose radius contains the point, nearest first
func (s *CompanyService) Nearby(lat, lng float64) []models.NearbyCompanyLocation {
	here := spatial.Point{Lat: lat, Lon: lng}

	out := []models.NearbyCompanyLocation{}
	for _, loc := range s.directory.List() {
		if !loc.IsActive {
			continue
		}
		site := spatial.Point{Lat: loc.Latitude, Lon: loc.Longitude}
		if !spatial.WithinRadius(site, here, loc.Radius) {
			continue
		}
		out = append(out, models.NearbyCompanyLocation{
			CompanyLocation: loc,
			DistanceMeters:  spatial.HaversineDistance(site.Lat, site.Lon, here.Lat, here.Lon),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceMeters < out[j].DistanceMeters
	})
	return out
}
