// Package tree implements a CART-style regression tree grown with
// variance-reduction splits.
package tree

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrNoTrainingData is returned when a fit is attempted on an empty set.
var ErrNoTrainingData = errors.New("no training data")

// Config controls tree growth. Cp is the minimum fraction of the root sum of
// squared errors a split must remove to be kept; MinSplit is the minimum
// number of rows a node must hold before it may be split.
type Config struct {
	Cp       float64
	MinSplit int
}

func DefaultConfig() Config {
	return Config{Cp: 0.01, MinSplit: 20}
}

type node struct {
	feature   int
	threshold float64
	left      *node
	right     *node
	value     float64
	leaf      bool
}

// Tree is a fitted regression tree mapping an encoded feature vector to a
// predicted target value.
type Tree struct {
	root *node
}

// Train grows a regression tree on X/y. Every target must be finite.
func Train(X [][]float64, y []float64, cfg Config) (*Tree, error) {
	if len(X) == 0 {
		return nil, fmt.Errorf("%w: empty training set", ErrNoTrainingData)
	}
	if len(X) != len(y) {
		return nil, fmt.Errorf("feature rows and targets differ: %d vs %d", len(X), len(y))
	}
	for i, t := range y {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, fmt.Errorf("non-finite target at row %d: %v", i, t)
		}
	}
	if cfg.MinSplit < 2 {
		cfg.MinSplit = 2
	}

	idx := make([]int, len(y))
	for i := range idx {
		idx[i] = i
	}

	return &Tree{root: grow(X, y, idx, sse(y, idx), cfg)}, nil
}

func grow(X [][]float64, y []float64, idx []int, rootSSE float64, cfg Config) *node {
	mean := meanAt(y, idx)
	if len(idx) < cfg.MinSplit {
		return &node{leaf: true, value: mean}
	}

	nodeSSE := sse(y, idx)
	feature, threshold, gain := bestSplit(X, y, idx, nodeSSE)
	if feature < 0 || gain < cfg.Cp*rootSSE {
		return &node{leaf: true, value: mean}
	}

	var left, right []int
	for _, i := range idx {
		if X[i][feature] < threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &node{leaf: true, value: mean}
	}

	return &node{
		feature:   feature,
		threshold: threshold,
		left:      grow(X, y, left, rootSSE, cfg),
		right:     grow(X, y, right, rootSSE, cfg),
	}
}

// bestSplit returns the feature and threshold whose split removes the most
// SSE from the node, along with the amount removed. feature is -1 when no
// threshold separates the rows.
func bestSplit(X [][]float64, y []float64, idx []int, nodeSSE float64) (feature int, threshold, gain float64) {
	n := len(idx)
	nFeatures := len(X[idx[0]])
	feature = -1

	order := make([]int, n)
	for f := 0; f < nFeatures; f++ {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool { return X[order[a]][f] < X[order[b]][f] })

		var totalSum, totalSumSq float64
		for _, i := range order {
			totalSum += y[i]
			totalSumSq += y[i] * y[i]
		}

		var leftSum, leftSumSq float64
		for k := 0; k < n-1; k++ {
			i := order[k]
			leftSum += y[i]
			leftSumSq += y[i] * y[i]

			v, next := X[i][f], X[order[k+1]][f]
			if v == next {
				continue
			}

			nl, nr := float64(k+1), float64(n-k-1)
			leftSSE := leftSumSq - leftSum*leftSum/nl
			rightSum := totalSum - leftSum
			rightSSE := (totalSumSq - leftSumSq) - rightSum*rightSum/nr

			if g := nodeSSE - leftSSE - rightSSE; g > gain {
				gain = g
				feature = f
				threshold = (v + next) / 2
			}
		}
	}
	return feature, threshold, gain
}

// Predict returns the fitted value for one encoded feature vector.
func (t *Tree) Predict(x []float64) float64 {
	n := t.root
	for !n.leaf {
		if x[n.feature] < n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

// PredictAll predicts every row of X, in order.
func (t *Tree) PredictAll(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, x := range X {
		out[i] = t.Predict(x)
	}
	return out
}

// Leaves returns the number of leaf nodes in the fitted tree.
func (t *Tree) Leaves() int {
	return countLeaves(t.root)
}

func countLeaves(n *node) int {
	if n.leaf {
		return 1
	}
	return countLeaves(n.left) + countLeaves(n.right)
}

func meanAt(y []float64, idx []int) float64 {
	var sum float64
	for _, i := range idx {
		sum += y[i]
	}
	return sum / float64(len(idx))
}

func sse(y []float64, idx []int) float64 {
	mean := meanAt(y, idx)
	var out float64
	for _, i := range idx {
		d := y[i] - mean
		out += d * d
	}
	return out
}
