// Package eval computes held-out regression metrics.
package eval

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ErrDimensionMismatch is returned when the prediction and ground-truth
// sequences cannot be compared element-wise.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// Report holds the held-out metrics for one model.
type Report struct {
	MAE  float64
	RMSE float64
	R2   float64
}

// R2Defined reports whether R² could be computed. It is false when the
// ground truth has zero variance, in which case R2 is NaN.
func (r Report) R2Defined() bool { return !math.IsNaN(r.R2) }

// Evaluate computes MAE, RMSE and R² for predictions against ground truth.
// The sequences must have the same non-zero length. A zero-variance ground
// truth leaves R² undefined (NaN) while the rest of the report stays valid.
func Evaluate(pred, truth []float64) (Report, error) {
	if len(pred) != len(truth) {
		return Report{}, fmt.Errorf("%w: %d predictions vs %d ground truths",
			ErrDimensionMismatch, len(pred), len(truth))
	}
	if len(pred) == 0 {
		return Report{}, fmt.Errorf("%w: empty sequences", ErrDimensionMismatch)
	}

	mean := stat.Mean(truth, nil)

	var absSum, sqSum, totSum float64
	for i := range pred {
		d := pred[i] - truth[i]
		absSum += math.Abs(d)
		sqSum += d * d

		dt := truth[i] - mean
		totSum += dt * dt
	}

	r2 := math.NaN()
	if totSum > 0 {
		r2 = 1 - sqSum/totSum
	}

	n := float64(len(pred))
	return Report{
		MAE:  absSum / n,
		RMSE: math.Sqrt(sqSum / n),
		R2:   r2,
	}, nil
}
