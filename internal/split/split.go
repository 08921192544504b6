// Package split draws the seeded train/test partition.
package split

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrInsufficientData is returned when the series is too small to form two
// non-empty subsets.
var ErrInsufficientData = errors.New("insufficient data")

// Split partitions the indices 0..n-1 into a training and a test set.
// floor(ratio*n) indices are drawn uniformly without replacement for
// training; the remainder is the test set. The two sets are disjoint and
// exhaustive, and the draw depends only on (n, seed): a fixed seed reproduces
// the same partition on every run.
func Split(n int, ratio float64, seed uint64) (train, test []int, err error) {
	if n < 2 {
		return nil, nil, fmt.Errorf("%w: need at least 2 rows, got %d", ErrInsufficientData, n)
	}
	if ratio <= 0 || ratio >= 1 {
		return nil, nil, fmt.Errorf("train ratio must be in (0, 1), got %g", ratio)
	}

	nTrain := int(ratio * float64(n))
	if nTrain == 0 || nTrain == n {
		return nil, nil, fmt.Errorf("%w: ratio %g leaves an empty subset for %d rows",
			ErrInsufficientData, ratio, n)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	rng := rand.New(rand.NewPCG(seed, 0))
	rng.Shuffle(n, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	return indices[:nTrain], indices[nTrain:], nil
}

// Gather returns the rows of X at the given indices, in index order.
func Gather(X [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = X[j]
	}
	return out
}

// GatherTargets returns the elements of y at the given indices, in index order.
func GatherTargets(y []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = y[j]
	}
	return out
}
