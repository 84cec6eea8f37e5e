package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectID_UnmarshalJSON(t *testing.T) {
	cases := map[string]SubjectID{
		`7`:     7,
		`7.0`:   7,
		`"7"`:   7,
		`" 12"`: 12,
	}
	for in, want := range cases {
		var id SubjectID
		require.NoError(t, json.Unmarshal([]byte(in), &id), in)
		assert.Equal(t, want, id, in)
	}

	var id SubjectID
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &id))
	assert.Error(t, json.Unmarshal([]byte(`1.5`), &id))
	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
}

func TestParseSubjectID(t *testing.T) {
	id, err := ParseSubjectID("42")
	require.NoError(t, err)
	assert.Equal(t, SubjectID(42), id)

	for _, bad := range []string{"", "x", "0", "-3"} {
		_, err := ParseSubjectID(bad)
		assert.True(t, errors.Is(err, ErrValidation), bad)
	}
}

func TestErrorClasses(t *testing.T) {
	assert.ErrorIs(t, ErrInvalidRoute, ErrValidation)
	assert.ErrorIs(t, ErrRouteNotFound, ErrNotFound)
	assert.NotErrorIs(t, ErrRouteNotFound, ErrValidation)
	assert.Equal(t, "No active simulation found for this user", ErrNoActiveSimulation.Error())
}
