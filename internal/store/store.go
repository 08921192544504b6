// Package store holds the cleaned observation series in memory for
// aggregation queries by the reporting and plotting consumers.
package store

import (
	"sort"
	"sync"
	"time"

	"power_analysis/internal/model"
)

// Store keeps observations sorted by timestamp.
type Store struct {
	mu  sync.RWMutex
	obs []model.Observation
}

func New() *Store {
	return &Store{}
}

// Add appends observations and re-sorts the series by timestamp.
func (s *Store) Add(observations []model.Observation) {
	if len(observations) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.obs = append(s.obs, observations...)
	sort.Slice(s.obs, func(i, j int) bool {
		return s.obs[i].Timestamp.Before(s.obs[j].Timestamp)
	})
}

// Len returns the number of stored observations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.obs)
}

// TimeRange returns the interval covered by the series.
func (s *Store) TimeRange() (model.TimeRange, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.obs) == 0 {
		return model.TimeRange{}, false
	}
	return model.TimeRange{
		Start: s.obs[0].Timestamp,
		End:   s.obs[len(s.obs)-1].Timestamp,
	}, true
}

// InRange returns observations with start <= timestamp < end.
func (s *Store) InRange(start, end time.Time) []model.Observation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	startIdx := sort.Search(len(s.obs), func(i int) bool {
		return !s.obs[i].Timestamp.Before(start)
	})
	endIdx := sort.Search(len(s.obs), func(i int) bool {
		return !s.obs[i].Timestamp.Before(end)
	})

	if startIdx >= endIdx {
		return nil
	}

	out := make([]model.Observation, endIdx-startIdx)
	copy(out, s.obs[startIdx:endIdx])
	return out
}

// DailyMean is the mean active power over one calendar day.
type DailyMean struct {
	Day  time.Time
	Mean float64
}

// DailyMeans returns the mean active power per calendar day, in day order.
func (s *Store) DailyMeans() []DailyMean {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []DailyMean
	var sum float64
	var count int
	var day time.Time

	flush := func() {
		if count > 0 {
			out = append(out, DailyMean{Day: day, Mean: sum / float64(count)})
		}
		sum, count = 0, 0
	}

	for _, o := range s.obs {
		d := o.Timestamp.Truncate(24 * time.Hour)
		if count > 0 && !d.Equal(day) {
			flush()
		}
		day = d
		sum += o.ActivePower
		count++
	}
	flush()

	return out
}
