// Package features expands cleaned observations into calendar features for
// the regression models.
package features

import "power_analysis/internal/model"

// Derive expands an observation's timestamp into its calendar features.
// It is a pure function of that row's timestamp; no cross-row state.
func Derive(obs model.Observation) model.FeaturizedObservation {
	ts := obs.Timestamp
	return model.FeaturizedObservation{
		Observation: obs,
		Features: model.Features{
			Day:     ts.Day(),
			Month:   ts.Month(),
			Year:    ts.Year(),
			Hour:    ts.Hour(),
			Weekday: ts.Weekday(),
		},
	}
}

// DeriveAll featurizes a cleaned series, preserving order.
func DeriveAll(observations []model.Observation) []model.FeaturizedObservation {
	out := make([]model.FeaturizedObservation, len(observations))
	for i, obs := range observations {
		out[i] = Derive(obs)
	}
	return out
}

// Matrix returns the encoded feature matrix and target vector for a
// featurized series, row for row.
func Matrix(rows []model.FeaturizedObservation) (X [][]float64, y []float64) {
	X = make([][]float64, len(rows))
	y = make([]float64, len(rows))
	for i, row := range rows {
		X[i] = row.Vector()
		y[i] = row.ActivePower
	}
	return X, y
}
