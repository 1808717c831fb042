package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	var req CreateEventRequest
	err := json.Unmarshal([]byte(`{"name":"Rock Concert","date":"2026-11-01","capacity":100}`), &req)
	require.NoError(t, err)
	assert.Equal(t, NewDate(2026, time.November, 1), req.Date)

	out, err := json.Marshal(Event{ID: 1, Name: "Rock Concert", Date: req.Date, Capacity: 100})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"date":"2026-11-01"`)
}

func TestDate_RejectsOtherFormats(t *testing.T) {
	for _, raw := range []string{`"01/11/2026"`, `"2026-11-01T10:00:00Z"`, `20261101`, `"2026-13-01"`} {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(raw), &d), raw)
	}
}

func TestDate_NullIsZero(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestEvent_IsPast(t *testing.T) {
	now := time.Date(2026, time.October, 15, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		date Date
		want bool
	}{
		{"yesterday", NewDate(2026, time.October, 14), true},
		{"today after midnight", NewDate(2026, time.October, 15), true},
		{"tomorrow", NewDate(2026, time.October, 16), false},
		{"last year", NewDate(2025, time.December, 31), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Event{Date: tt.date}
			assert.Equal(t, tt.want, e.IsPast(now))
		})
	}
}

func TestEvent_IsPast_Midnight(t *testing.T) {
	e := &Event{Date: NewDate(2026, time.October, 15)}
	assert.False(t, e.IsPast(time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, e.IsPast(time.Date(2026, time.October, 14, 23, 59, 59, 0, time.UTC)))
	assert.True(t, e.IsPast(time.Date(2026, time.October, 15, 0, 0, 1, 0, time.UTC)))
}

func TestDateOf_UsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	local := time.Date(2026, time.October, 16, 1, 0, 0, 0, loc)
	assert.Equal(t, NewDate(2026, time.October, 15), DateOf(local))
	assert.Equal(t, NewDate(2026, time.October, 18), DateOf(local).AddDays(3))
}
