package repository

import (
	"time"

	"github.com/jengzang/checkin-backend-go/internal/models"
)

// Reference data for the mock backend. Tracking and status history are only
// loaded when SEED_DEMO_DATA is on.

// DemoUsers are the known subjects
var DemoUsers = []models.SubjectID{1, 2, 3}

// DefaultRoutes are the built-in simulation routes, in listing order
func DefaultRoutes() []models.Route {
	office := models.RoutePoint{Latitude: 37.7749, Longitude: -122.4194}
	home := models.RoutePoint{Latitude: 37.7850, Longitude: -122.4075}
	client := models.RoutePoint{Latitude: 37.7690, Longitude: -122.4105}

	officeToHome := []models.RoutePoint{
		office,
		{Latitude: 37.7755, Longitude: -122.4180},
		{Latitude: 37.7762, Longitude: -122.4165},
		{Latitude: 37.7775, Longitude: -122.4150},
		{Latitude: 37.7790, Longitude: -122.4135},
		{Latitude: 37.7805, Longitude: -122.4120},
		{Latitude: 37.7820, Longitude: -122.4105},
		{Latitude: 37.7835, Longitude: -122.4090},
		home,
	}
	officeToClient := []models.RoutePoint{
		office,
		{Latitude: 37.7740, Longitude: -122.4180},
		{Latitude: 37.7730, Longitude: -122.4165},
		{Latitude: 37.7720, Longitude: -122.4150},
		{Latitude: 37.7710, Longitude: -122.4135},
		{Latitude: 37.7700, Longitude: -122.4120},
		client,
	}

	return []models.Route{
		{Name: "officeToHome", Points: officeToHome},
		{Name: "homeToOffice", Points: reversed(officeToHome)},
		{Name: "officeToClient", Points: officeToClient},
		{Name: "clientToOffice", Points: reversed(officeToClient)},
	}
}

// DemoCompanyLocations are the company sites
func DemoCompanyLocations() []models.CompanyLocation {
	return []models.CompanyLocation{
		{ID: 1, Name: "Headquarters", Address: "123 Main St, San Francisco, CA 94105",
			Latitude: 37.7749, Longitude: -122.4194, Radius: 100, IsActive: true},
		{ID: 2, Name: "Branch Office", Address: "456 Market St, San Francisco, CA 94105",
			Latitude: 37.7900, Longitude: -122.4000, Radius: 75, IsActive: true},
		{ID: 3, Name: "Research Center", Address: "789 Howard St, San Francisco, CA 94105",
			Latitude: 37.7850, Longitude: -122.4050, Radius: 120, IsActive: true},
	}
}

// DemoTracking returns past tracking events and last known positions
func DemoTracking() ([]models.TrackingEvent, []models.CurrentLocation) {
	ev := func(id int64, user models.SubjectID, kind models.TrackingType, lat, lng float64, ts string, acc float64, battery int, network models.NetworkType) models.TrackingEvent {
		return models.TrackingEvent{
			ID: id, UserID: user, TrackingType: kind, Latitude: lat, Longitude: lng,
			Timestamp: mustTime(ts), Accuracy: &acc, BatteryLevel: &battery, NetworkType: &network,
		}
	}
	loc := func(user models.SubjectID, lat, lng float64, ts string, acc float64) models.CurrentLocation {
		return models.CurrentLocation{UserID: user, Latitude: lat, Longitude: lng, Timestamp: mustTime(ts), Accuracy: &acc}
	}

	events := []models.TrackingEvent{
		ev(101, 1, models.TrackingClockInOffice, 37.7749, -122.4194, "2025-03-28T08:00:00Z", 10.5, 85, models.NetworkWiFi),
		ev(102, 1, models.TrackingPoint, 37.7750, -122.4195, "2025-03-28T10:15:00Z", 8.2, 75, models.NetworkWiFi),
		ev(103, 1, models.TrackingClockOut, 37.7751, -122.4196, "2025-03-28T17:00:00Z", 12.0, 60, models.NetworkWiFi),
		ev(201, 2, models.TrackingClockInRemote, 37.7833, -122.4167, "2025-03-28T09:00:00Z", 15.0, 90, models.NetworkCellular),
		ev(202, 2, models.TrackingPoint, 37.7834, -122.4168, "2025-03-28T12:30:00Z", 9.5, 70, models.NetworkCellular),
		ev(203, 2, models.TrackingClockOut, 37.7835, -122.4169, "2025-03-28T18:00:00Z", 11.0, 45, models.NetworkWiFi),
	}
	locations := []models.CurrentLocation{
		loc(3, 37.7855, -122.4129, "2025-03-28T16:45:00Z", 8.5),
	}
	return events, locations
}

// DemoStatus returns the current status records and closed history
func DemoStatus() (current, history []models.StatusRecord) {
	rec := func(user models.SubjectID, status models.WorkStatus, start, end string) models.StatusRecord {
		r := models.StatusRecord{UserID: user, Status: status, StartTime: mustTime(start)}
		if end != "" {
			t := mustTime(end)
			r.EndTime = &t
		}
		return r
	}

	current = []models.StatusRecord{
		rec(1, models.StatusNotWorking, "2025-03-28T17:00:00Z", ""),
		rec(2, models.StatusNotWorking, "2025-03-28T18:00:00Z", ""),
		rec(3, models.StatusNotWorking, "2025-03-28T16:45:00Z", ""),
	}
	history = []models.StatusRecord{
		rec(1, models.StatusWorkingOffice, "2025-03-28T08:00:00Z", "2025-03-28T17:00:00Z"),
		rec(2, models.StatusWorkingRemote, "2025-03-28T09:00:00Z", "2025-03-28T18:00:00Z"),
	}
	return current, history
}

func reversed(points []models.RoutePoint) []models.RoutePoint {
	out := make([]models.RoutePoint, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
