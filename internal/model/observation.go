package model

import "time"

// Observation is one cleaned row of the source series: a timestamp and the
// household's global active power in kilowatts.
type Observation struct {
	Timestamp   time.Time
	ActivePower float64
}

// Features are the calendar fields derived from an observation's timestamp.
type Features struct {
	Day     int // day of month, 1-31
	Month   time.Month
	Year    int
	Hour    int // 0-23
	Weekday time.Weekday
}

// FeaturizedObservation is an observation plus its derived calendar features.
type FeaturizedObservation struct {
	Observation
	Features
}

// MonthIndex returns the fixed categorical code for the month:
// 0 (January) through 11 (December).
func (f Features) MonthIndex() int { return int(f.Month) - 1 }

// WeekdayIndex returns the fixed categorical code for the weekday with the
// week starting on Monday: 0 (Monday) through 6 (Sunday).
func (f Features) WeekdayIndex() int { return (int(f.Weekday) + 6) % 7 }

// Vector encodes the features as the model input vector
// {day, month, year, hour, weekday} using the categorical codes above.
// The same encoding is used at train and predict time.
func (f Features) Vector() []float64 {
	return []float64{
		float64(f.Day),
		float64(f.MonthIndex()),
		float64(f.Year),
		float64(f.Hour),
		float64(f.WeekdayIndex()),
	}
}

// NumFeatures is the length of the encoded feature vector.
const NumFeatures = 5

// FeatureNames lists the vector columns in Vector order.
func FeatureNames() []string {
	return []string{"day", "month", "year", "hour", "weekday"}
}

type TimeRange struct {
	Start time.Time
	End   time.Time
}
