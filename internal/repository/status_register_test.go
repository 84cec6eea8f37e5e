package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/checkin-backend-go/internal/clock"
	"github.com/jengzang/checkin-backend-go/internal/models"
)

func TestStatusRegister_Transition(t *testing.T) {
	clk := clock.NewManual(t0)
	r := NewStatusRegister(clk, NewMemoryUserDirectory(1))

	_, err := r.Current(1)
	assert.ErrorIs(t, err, models.ErrNoStatus)

	first, err := r.Transition(1, models.StatusWorkingOffice)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRecord{UserID: 1, Status: models.StatusWorkingOffice, StartTime: t0}, first)
	assert.Empty(t, r.History(1), "no prior record, nothing to close")

	clk.Advance(time.Hour)
	second, err := r.Transition(1, models.StatusNotWorking)
	require.NoError(t, err)
	assert.Nil(t, second.EndTime)

	cur, err := r.Current(1)
	require.NoError(t, err)
	assert.Equal(t, second, *cur)

	history := r.History(1)
	require.Len(t, history, 1)
	assert.Equal(t, models.StatusWorkingOffice, history[0].Status)
	require.NotNil(t, history[0].EndTime)
	assert.Equal(t, t0.Add(time.Hour), *history[0].EndTime)
}

func TestStatusRegister_OneHistoryEntryPerTransition(t *testing.T) {
	r := NewStatusRegister(clock.NewManual(t0), NewMemoryUserDirectory(5))
	statuses := []models.WorkStatus{models.StatusWorkingRemote, models.StatusNotWorking, models.StatusWorkingOffice, models.StatusNotWorking}
	for i, s := range statuses {
		_, err := r.Transition(5, s)
		require.NoError(t, err)
		assert.Len(t, r.History(5), i)
	}
}

func TestStatusRegister_Validation(t *testing.T) {
	r := NewStatusRegister(clock.NewManual(t0), NewMemoryUserDirectory(1))

	_, err := r.Transition(9, models.StatusWorkingOffice)
	assert.ErrorIs(t, err, models.ErrUnknownSubject)

	_, err = r.Transition(1, "ON_BREAK")
	assert.ErrorIs(t, err, models.ErrInvalidStatus)

	// unknown subject is reported before an invalid status
	_, err = r.Transition(9, "ON_BREAK")
	assert.ErrorIs(t, err, models.ErrUnknownSubject)

	_, err = r.Current(1)
	assert.ErrorIs(t, err, models.ErrNoStatus)
	assert.NotNil(t, r.History(1))
}

func TestStatusRegister_LoadDemoData(t *testing.T) {
	r := NewStatusRegister(clock.NewManual(t0), NewMemoryUserDirectory(DemoUsers...))
	r.Load(DemoStatus())

	cur, err := r.Current(3)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNotWorking, cur.Status)
	assert.Len(t, r.History(1), 1)
	assert.Empty(t, r.History(3))
}
