package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"power_analysis/internal/model"
)

var startTime = time.Date(2006, 12, 16, 12, 0, 0, 0, time.UTC)

func makeObservations(values []float64, start time.Time, interval time.Duration) []model.Observation {
	obs := make([]model.Observation, len(values))
	for i, v := range values {
		obs[i] = model.Observation{
			Timestamp:   start.Add(time.Duration(i) * interval),
			ActivePower: v,
		}
	}
	return obs
}

func TestStore_AddAndLen(t *testing.T) {
	s := New()
	s.Add(makeObservations([]float64{1, 2, 3, 4, 5}, startTime, time.Hour))

	assert.Equal(t, 5, s.Len())
}

func TestStore_AddSortsByTimestamp(t *testing.T) {
	s := New()
	s.Add([]model.Observation{
		{Timestamp: startTime.Add(2 * time.Hour), ActivePower: 3},
		{Timestamp: startTime, ActivePower: 1},
		{Timestamp: startTime.Add(time.Hour), ActivePower: 2},
	})

	got := s.InRange(startTime, startTime.Add(3*time.Hour))
	require.Len(t, got, 3)
	assert.Equal(t, 1.0, got[0].ActivePower)
	assert.Equal(t, 2.0, got[1].ActivePower)
	assert.Equal(t, 3.0, got[2].ActivePower)
}

func TestStore_TimeRange(t *testing.T) {
	s := New()

	_, ok := s.TimeRange()
	assert.False(t, ok)

	s.Add(makeObservations([]float64{1, 2, 3}, startTime, time.Hour))

	tr, ok := s.TimeRange()
	require.True(t, ok)
	assert.Equal(t, startTime, tr.Start)
	assert.Equal(t, startTime.Add(2*time.Hour), tr.End)
}

func TestStore_InRange(t *testing.T) {
	s := New()
	s.Add(makeObservations([]float64{1, 2, 3, 4, 5}, startTime, time.Hour))

	// Half-open: start inclusive, end exclusive.
	got := s.InRange(startTime.Add(time.Hour), startTime.Add(3*time.Hour))
	require.Len(t, got, 2)
	assert.Equal(t, 2.0, got[0].ActivePower)
	assert.Equal(t, 3.0, got[1].ActivePower)

	assert.Nil(t, s.InRange(startTime.Add(10*time.Hour), startTime.Add(20*time.Hour)))
}

func TestStore_DailyMeans(t *testing.T) {
	s := New()
	day1 := time.Date(2006, 12, 16, 0, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	s.Add([]model.Observation{
		{Timestamp: day1.Add(1 * time.Hour), ActivePower: 2},
		{Timestamp: day1.Add(2 * time.Hour), ActivePower: 4},
		{Timestamp: day2.Add(5 * time.Hour), ActivePower: 10},
	})

	means := s.DailyMeans()
	require.Len(t, means, 2)

	assert.Equal(t, day1, means[0].Day)
	assert.InDelta(t, 3.0, means[0].Mean, 1e-9)
	assert.Equal(t, day2, means[1].Day)
	assert.InDelta(t, 10.0, means[1].Mean, 1e-9)
}
