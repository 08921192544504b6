package explore

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"power_analysis/internal/features"
	"power_analysis/internal/model"
)

func hourlySeries(days int) []model.FeaturizedObservation {
	var observations []model.Observation
	start := time.Date(2007, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < days*24; i++ {
		ts := start.Add(time.Duration(i) * time.Hour)
		observations = append(observations, model.Observation{
			Timestamp:   ts,
			ActivePower: float64(ts.Hour()), // power tracks the hour exactly
		})
	}
	return features.DeriveAll(observations)
}

func TestFrame(t *testing.T) {
	rows := hourlySeries(2)
	df := Frame(rows)

	nrow, ncol := df.Dims()
	assert.Equal(t, len(rows), nrow)
	assert.Equal(t, 6, ncol)
	assert.Equal(t, []string{"day", "month", "year", "hour", "weekday", "active_power"}, df.Names())
}

func TestDescribe(t *testing.T) {
	var sb strings.Builder
	Describe(&sb, hourlySeries(1))

	out := sb.String()
	assert.Contains(t, out, "mean")
	assert.Contains(t, out, "active_power")
}

func TestCorrelationMatrix(t *testing.T) {
	rows := hourlySeries(3)
	corr, names, err := CorrelationMatrix(rows)
	require.NoError(t, err)

	require.Equal(t, append(model.FeatureNames(), "active_power"), names)

	hourIdx := 3
	powerIdx := len(names) - 1

	// Power equals the hour, so their correlation is exactly 1.
	assert.InDelta(t, 1.0, corr.At(hourIdx, powerIdx), 1e-9)
	// Diagonal of a correlation matrix is 1 for non-constant columns.
	assert.InDelta(t, 1.0, corr.At(hourIdx, hourIdx), 1e-9)
	// Year is constant over the sample, so its correlations are undefined.
	assert.True(t, math.IsNaN(corr.At(2, powerIdx)))
}

func TestCorrelationMatrix_NoRows(t *testing.T) {
	_, _, err := CorrelationMatrix(nil)
	require.Error(t, err)
}

func TestHourlyProfile(t *testing.T) {
	profile := HourlyProfile(hourlySeries(5))

	for h := 0; h < 24; h++ {
		assert.InDelta(t, float64(h), profile[h], 1e-9, "hour %d", h)
	}
}

func TestHourlyProfile_MissingHoursZero(t *testing.T) {
	rows := features.DeriveAll([]model.Observation{
		{Timestamp: time.Date(2007, 1, 1, 6, 0, 0, 0, time.UTC), ActivePower: 3},
	})

	profile := HourlyProfile(rows)
	assert.Equal(t, 3.0, profile[6])
	assert.Equal(t, 0.0, profile[7])
}
