package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/jengzang/checkin-backend-go/internal/models"
	"github.com/jengzang/checkin-backend-go/internal/repository"
)

// Journal mirrors accepted events into durable storage
type Journal interface {
	RecordTrackingEvent(ctx context.Context, e models.TrackingEvent) error
	RecordStatus(ctx context.Context, rec models.StatusRecord) error
}

// LocationMirror mirrors current locations to an external cache shared with
// other instances
type LocationMirror interface {
	Put(ctx context.Context, loc models.CurrentLocation) error
	Get(ctx context.Context, id models.SubjectID) (*models.CurrentLocation, error)
}

// TrackingService handles business logic for tracking events
type TrackingService struct {
	sink      *repository.TrackingSink
	journal   Journal
	locations LocationMirror
	logger    *zap.Logger
}

// NewTrackingService creates a new tracking service. journal and locations may be nil.
func NewTrackingService(sink *repository.TrackingSink, journal Journal, locations LocationMirror, logger *zap.Logger) *TrackingService {
	return &TrackingService{
		sink:      sink,
		journal:   journal,
		locations: locations,
		logger:    logger,
	}
}

// Append validates and stores a tracking event. Mirror failures are logged
// and never fail the append.
func (s *TrackingService) Append(ctx context.Context, subjectID models.SubjectID, in models.TrackingInput) (models.TrackingEvent, error) {
	if !in.TrackingType.Valid() {
		return models.TrackingEvent{}, models.ErrInvalidTrackingType
	}
	if in.BatteryLevel != nil {
		level := models.ClampBattery(*in.BatteryLevel)
		in.BatteryLevel = &level
	}

	event := s.sink.Append(subjectID, in)

	if s.journal != nil {
		if err := s.journal.RecordTrackingEvent(ctx, event); err != nil {
			s.logger.Warn("journal tracking event failed", zap.Int64("event_id", event.ID), zap.Error(err))
		}
	}
	if s.locations != nil {
		loc := models.CurrentLocation{
			UserID:    event.UserID,
			Latitude:  event.Latitude,
			Longitude: event.Longitude,
			Timestamp: event.Timestamp,
			Accuracy:  event.Accuracy,
		}
		if err := s.locations.Put(ctx, loc); err != nil {
			s.logger.Warn("publish current location failed", zap.Int64("user_id", int64(subjectID)), zap.Error(err))
		}
	}

	return event, nil
}

// History returns a subject's events, optionally restricted to a date prefix
func (s *TrackingService) History(subjectID models.SubjectID, date string) ([]models.TrackingEvent, error) {
	return s.sink.History(subjectID, date)
}

// Current returns a subject's last known position. Subjects this instance
// has never seen are looked up in the location cache.
func (s *TrackingService) Current(ctx context.Context, subjectID models.SubjectID) (*models.CurrentLocation, error) {
	loc, err := s.sink.Current(subjectID)
	if err == nil || s.locations == nil || !errors.Is(err, models.ErrNoCurrentLocation) {
		return loc, err
	}

	cached, cacheErr := s.locations.Get(ctx, subjectID)
	if cacheErr != nil {
		if !errors.Is(cacheErr, repository.ErrCacheMiss) {
			s.logger.Warn("read cached location failed", zap.Int64("user_id", int64(subjectID)), zap.Error(cacheErr))
		}
		return nil, err
	}
	return cached, nil
}
