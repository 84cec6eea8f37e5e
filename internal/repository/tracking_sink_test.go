package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/checkin-backend-go/internal/clock"
	"github.com/jengzang/checkin-backend-go/internal/models"
)

var t0 = time.Date(2025, 3, 28, 8, 0, 0, 0, time.UTC)

func TestTrackingSink_AppendUpdatesHistoryAndCurrent(t *testing.T) {
	clk := clock.NewManual(t0)
	s := NewTrackingSink(clk)

	_, err := s.History(1, "")
	assert.ErrorIs(t, err, models.ErrNoTrackingData)
	_, err = s.Current(1)
	assert.ErrorIs(t, err, models.ErrNoCurrentLocation)

	acc := 5.0
	first := s.Append(1, models.TrackingInput{TrackingType: models.TrackingClockInOffice, Latitude: 1, Longitude: 2, Accuracy: &acc})
	clk.Advance(time.Minute)
	second := s.Append(1, models.TrackingInput{TrackingType: models.TrackingPoint, Latitude: 3, Longitude: 4})

	assert.Equal(t, t0, first.Timestamp)
	assert.Equal(t, models.SubjectID(1), first.UserID)
	assert.Greater(t, second.ID, first.ID)

	history, err := s.History(1, "")
	require.NoError(t, err)
	assert.Equal(t, []models.TrackingEvent{first, second}, history)

	cur, err := s.Current(1)
	require.NoError(t, err)
	assert.Equal(t, float64(3), cur.Latitude)
	assert.Equal(t, float64(4), cur.Longitude)
	assert.Equal(t, t0.Add(time.Minute), cur.Timestamp)
	assert.Nil(t, cur.Accuracy)
}

func TestTrackingSink_IDsStrictlyIncreaseWithinSameMillisecond(t *testing.T) {
	s := NewTrackingSink(clock.NewManual(t0))

	var last int64
	for i := 0; i < 5; i++ {
		e := s.Append(7, models.TrackingInput{TrackingType: models.TrackingPoint})
		assert.Greater(t, e.ID, last)
		last = e.ID
	}
}

func TestTrackingSink_HistoryDateFilter(t *testing.T) {
	clk := clock.NewManual(t0)
	s := NewTrackingSink(clk)

	s.Append(1, models.TrackingInput{TrackingType: models.TrackingPoint})
	clk.Advance(24 * time.Hour)
	next := s.Append(1, models.TrackingInput{TrackingType: models.TrackingPoint})

	day, err := s.History(1, "2025-03-29")
	require.NoError(t, err)
	assert.Equal(t, []models.TrackingEvent{next}, day)

	none, err := s.History(1, "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := s.History(1, "2025-03")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTrackingSink_LoadDemoData(t *testing.T) {
	s := NewTrackingSink(clock.NewManual(t0))
	events, locations := DemoTracking()
	s.Load(events, locations)

	history, err := s.History(1, "")
	require.NoError(t, err)
	assert.Len(t, history, 3)

	cur, err := s.Current(3)
	require.NoError(t, err)
	assert.Equal(t, 37.7855, cur.Latitude)

	cur, err = s.Current(2)
	require.NoError(t, err)
	assert.Equal(t, 37.7835, cur.Latitude)

	// new ids continue after the loaded ones even with an old clock
	s2 := NewTrackingSink(clock.NewManual(time.Unix(0, 0)))
	s2.Load(events, nil)
	e := s2.Append(1, models.TrackingInput{TrackingType: models.TrackingPoint})
	assert.Equal(t, int64(204), e.ID)
}
