package repository

import (
	"strings"
	"sync"
	"time"

	"github.com/jengzang/checkin-backend-go/internal/clock"
	"github.com/jengzang/checkin-backend-go/internal/models"
)

// TrackingSink is the append-only per-subject event log plus the last known
// position of every subject
type TrackingSink struct {
	mu      sync.RWMutex
	clock   clock.Clock
	events  map[models.SubjectID][]models.TrackingEvent
	current map[models.SubjectID]models.CurrentLocation
	lastID  int64
}

// NewTrackingSink creates an empty tracking sink
func NewTrackingSink(clk clock.Clock) *TrackingSink {
	return &TrackingSink{
		clock:   clk,
		events:  make(map[models.SubjectID][]models.TrackingEvent),
		current: make(map[models.SubjectID]models.CurrentLocation),
	}
}

// Append stores a new event and moves the subject's current location to it.
// Ids are millisecond timestamps bumped to stay strictly increasing.
func (s *TrackingSink) Append(subjectID models.SubjectID, in models.TrackingInput) models.TrackingEvent {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	event := models.TrackingEvent{
		ID:           id,
		UserID:       subjectID,
		TrackingType: in.TrackingType,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		Timestamp:    now,
		Accuracy:     in.Accuracy,
		BatteryLevel: in.BatteryLevel,
		NetworkType:  in.NetworkType,
	}
	s.events[subjectID] = append(s.events[subjectID], event)
	s.current[subjectID] = currentFrom(event)

	return event
}

// History returns the subject's events in insertion order. A non-empty date
// keeps only events whose UTC RFC3339 timestamp starts with it, so
// "2025-03-28" selects one calendar day.
func (s *TrackingSink) History(subjectID models.SubjectID, date string) ([]models.TrackingEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events, ok := s.events[subjectID]
	if !ok {
		return nil, models.ErrNoTrackingData
	}

	out := make([]models.TrackingEvent, 0, len(events))
	for _, e := range events {
		if date != "" && !strings.HasPrefix(e.Timestamp.UTC().Format(time.RFC3339), date) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Current returns the subject's last known position
func (s *TrackingSink) Current(subjectID models.SubjectID) (*models.CurrentLocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loc, ok := s.current[subjectID]
	if !ok {
		return nil, models.ErrNoCurrentLocation
	}
	return &loc, nil
}

// Load installs pre-existing events and positions, e.g. demo data.
// Positions given explicitly win over ones derived from events.
func (s *TrackingSink) Load(events []models.TrackingEvent, locations []models.CurrentLocation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range events {
		s.events[e.UserID] = append(s.events[e.UserID], e)
		s.current[e.UserID] = currentFrom(e)
		if e.ID > s.lastID {
			s.lastID = e.ID
		}
	}
	for _, loc := range locations {
		s.current[loc.UserID] = loc
	}
}

func currentFrom(e models.TrackingEvent) models.CurrentLocation {
	return models.CurrentLocation{
		UserID:    e.UserID,
		Latitude:  e.Latitude,
		Longitude: e.Longitude,
		Timestamp: e.Timestamp,
		Accuracy:  e.Accuracy,
	}
}
