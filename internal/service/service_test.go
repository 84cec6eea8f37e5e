package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jengzang/checkin-backend-go/internal/clock"
	"github.com/jengzang/checkin-backend-go/internal/models"
	"github.com/jengzang/checkin-backend-go/internal/repository"
)

var t0 = time.Date(2025, 3, 28, 8, 0, 0, 0, time.UTC)

type fakeJournal struct {
	events   []models.TrackingEvent
	statuses []models.StatusRecord
	err      error
}

func (f *fakeJournal) RecordTrackingEvent(ctx context.Context, e models.TrackingEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, e)
	return nil
}

func (f *fakeJournal) RecordStatus(ctx context.Context, rec models.StatusRecord) error {
	if f.err != nil {
		return f.err
	}
	f.statuses = append(f.statuses, rec)
	return nil
}

type fakePublisher struct {
	locations []models.CurrentLocation
	err       error
	cached    map[models.SubjectID]models.CurrentLocation
	getErr    error
}

func (f *fakePublisher) Get(ctx context.Context, id models.SubjectID) (*models.CurrentLocation, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	loc, ok := f.cached[id]
	if !ok {
		return nil, repository.ErrCacheMiss
	}
	return &loc, nil
}

func (f *fakePublisher) Put(ctx context.Context, loc models.CurrentLocation) error {
	if f.err != nil {
		return f.err
	}
	f.locations = append(f.locations, loc)
	return nil
}

func point(lat, lng float64) models.TrackingInput {
	return models.TrackingInput{TrackingType: models.TrackingPoint, Latitude: lat, Longitude: lng}
}

func TestTrackingService_AppendMirrors(t *testing.T) {
	journal := &fakeJournal{}
	publisher := &fakePublisher{}
	svc := NewTrackingService(repository.NewTrackingSink(clock.NewManual(t0)), journal, publisher, zap.NewNop())

	battery := -5
	in := point(37.77, -122.41)
	in.BatteryLevel = &battery

	event, err := svc.Append(context.Background(), 7, in)
	require.NoError(t, err)
	require.NotNil(t, event.BatteryLevel)
	assert.Equal(t, 0, *event.BatteryLevel)

	require.Len(t, journal.events, 1)
	assert.Equal(t, event, journal.events[0])
	require.Len(t, publisher.locations, 1)
	assert.Equal(t, models.SubjectID(7), publisher.locations[0].UserID)
	assert.Equal(t, t0, publisher.locations[0].Timestamp)
}

func TestTrackingService_MirrorFailuresAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	sink := repository.NewTrackingSink(clock.NewManual(t0))
	svc := NewTrackingService(sink,
		&fakeJournal{err: errors.New("disk full")},
		&fakePublisher{err: errors.New("connection refused")},
		zap.New(core))

	_, err := svc.Append(context.Background(), 7, point(1, 2))
	require.NoError(t, err)

	history, err := svc.History(7, "")
	require.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, 2, logs.Len())
}

func TestTrackingService_RejectsUnknownKind(t *testing.T) {
	journal := &fakeJournal{}
	svc := NewTrackingService(repository.NewTrackingSink(clock.NewManual(t0)), journal, nil, zap.NewNop())

	_, err := svc.Append(context.Background(), 7, models.TrackingInput{TrackingType: "RUNNING"})
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, journal.events)

	_, err = svc.Current(context.Background(), 7)
	assert.ErrorIs(t, err, models.ErrNoCurrentLocation)
}

func TestStatusService_JournalsTransitions(t *testing.T) {
	journal := &fakeJournal{}
	register := repository.NewStatusRegister(clock.NewManual(t0), repository.NewMemoryUserDirectory(1))
	svc := NewStatusService(register, journal, zap.NewNop())

	_, err := svc.Transition(context.Background(), 1, models.StatusWorkingOffice)
	require.NoError(t, err)
	_, err = svc.Transition(context.Background(), 1, models.StatusNotWorking)
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), 2, models.StatusNotWorking)
	assert.ErrorIs(t, err, models.ErrUnknownSubject)

	require.Len(t, journal.statuses, 2)
	assert.Equal(t, models.StatusNotWorking, journal.statuses[1].Status)

	cur, err := svc.Current(1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNotWorking, cur.Status)
	assert.Len(t, svc.History(1), 1)
}

func TestCompanyService_Nearby(t *testing.T) {
	svc := NewCompanyService(repository.NewCompanyDirectory([]models.CompanyLocation{
		{ID: 1, Name: "wide", Latitude: 37.7749, Longitude: -122.4194, Radius: 500, IsActive: true},
		{ID: 2, Name: "close", Latitude: 37.7750, Longitude: -122.4194, Radius: 50, IsActive: true},
		{ID: 3, Name: "closed", Latitude: 37.7750, Longitude: -122.4194, Radius: 50, IsActive: false},
		{ID: 4, Name: "far", Latitude: 37.80, Longitude: -122.40, Radius: 50, IsActive: true},
	}))

	nearby := svc.Nearby(37.7751, -122.4194)
	require.Len(t, nearby, 2)
	assert.Equal(t, "close", nearby[0].Name)
	assert.Equal(t, "wide", nearby[1].Name)
	assert.Less(t, nearby[0].DistanceMeters, nearby[1].DistanceMeters)

	assert.Empty(t, svc.Nearby(0, 0))
	assert.Len(t, svc.Locations(), 4)
}

func TestTrackingService_CurrentFallsBackToCache(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	publisher := &fakePublisher{cached: map[models.SubjectID]models.CurrentLocation{
		8: {UserID: 8, Latitude: 37.8, Longitude: -122.3, Timestamp: t0},
	}}
	svc := NewTrackingService(repository.NewTrackingSink(clock.NewManual(t0)), nil, publisher, zap.New(core))
	ctx := context.Background()

	loc, err := svc.Current(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, 37.8, loc.Latitude)

	_, err = svc.Current(ctx, 9)
	assert.ErrorIs(t, err, models.ErrNoCurrentLocation)
	assert.Zero(t, logs.Len())

	_, err = svc.Append(ctx, 8, point(1, 2))
	require.NoError(t, err)
	loc, err = svc.Current(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, 1.0, loc.Latitude, "local position wins over the cache")

	publisher.getErr = errors.New("connection refused")
	_, err = svc.Current(ctx, 9)
	assert.ErrorIs(t, err, models.ErrNoCurrentLocation)
	assert.Equal(t, 1, logs.Len())
}
