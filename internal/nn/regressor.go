package nn

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// ErrNoTrainingData is returned when a fit is attempted on an empty set.
var ErrNoTrainingData = errors.New("no training data")

// Config holds the network shape and training hyperparameters.
type Config struct {
	HiddenSize   int
	MaxIter      int // training epochs
	BatchSize    int
	LearningRate float64
	Beta1        float64
	Beta2        float64
	Epsilon      float64

	// OnEpoch, when set, is invoked after each epoch with the epoch number
	// and the training MSE on the normalized scale.
	OnEpoch func(epoch int, loss float64)
}

func DefaultConfig() Config {
	return Config{
		HiddenSize:   10,
		MaxIter:      200,
		BatchSize:    64,
		LearningRate: 0.01,
		Beta1:        0.9,
		Beta2:        0.999,
		Epsilon:      1e-8,
	}
}

// normalization holds z-score parameters for the inputs and the target.
type normalization struct {
	featMean   []float64
	featStd    []float64
	targetMean float64
	targetStd  float64
}

// Regressor is a fitted single-hidden-layer network with internal z-score
// scaling. Predictions are returned on the original target scale.
type Regressor struct {
	net  *network
	norm normalization
}

// Train fits a regressor on X/y. It returns the fitted regressor and the
// per-epoch training MSE, usable as a convergence curve. Every target must
// be finite.
func Train(X [][]float64, y []float64, cfg Config, seed uint64) (*Regressor, []float64, error) {
	if len(X) == 0 {
		return nil, nil, fmt.Errorf("%w: empty training set", ErrNoTrainingData)
	}
	if len(X) != len(y) {
		return nil, nil, fmt.Errorf("feature rows and targets differ: %d vs %d", len(X), len(y))
	}
	for i, t := range y {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, nil, fmt.Errorf("non-finite target at row %d: %v", i, t)
		}
	}
	if cfg.HiddenSize <= 0 || cfg.MaxIter <= 0 {
		return nil, nil, fmt.Errorf("hidden size and max iterations must be positive, got %d and %d",
			cfg.HiddenSize, cfg.MaxIter)
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}

	rng := rand.New(rand.NewPCG(seed, 0))
	norm := computeNormalization(X, y)

	scaledX := make([][]float64, len(X))
	scaledY := make([][]float64, len(y))
	for i := range X {
		scaledX[i] = norm.scaleInput(X[i])
		scaledY[i] = []float64{(y[i] - norm.targetMean) / norm.targetStd}
	}

	net := newNetwork([]int{len(X[0]), cfg.HiddenSize, 1}, rng)
	losses := net.train(scaledX, scaledY, cfg, rng)

	return &Regressor{net: net, norm: norm}, losses, nil
}

// Predict returns the predicted target for one encoded feature vector, on
// the original scale.
func (r *Regressor) Predict(x []float64) float64 {
	out := r.net.forward(r.norm.scaleInput(x))[0]
	return out*r.norm.targetStd + r.norm.targetMean
}

// PredictAll predicts every row of X, in order.
func (r *Regressor) PredictAll(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, x := range X {
		out[i] = r.Predict(x)
	}
	return out
}

// computeNormalization computes per-feature and target z-score parameters,
// guarding against zero standard deviation.
func computeNormalization(X [][]float64, y []float64) normalization {
	n := float64(len(X))
	dim := len(X[0])

	norm := normalization{
		featMean: make([]float64, dim),
		featStd:  make([]float64, dim),
	}

	for _, x := range X {
		for j, v := range x {
			norm.featMean[j] += v
		}
	}
	for j := range norm.featMean {
		norm.featMean[j] /= n
	}
	for _, x := range X {
		for j, v := range x {
			d := v - norm.featMean[j]
			norm.featStd[j] += d * d
		}
	}
	for j := range norm.featStd {
		norm.featStd[j] = math.Sqrt(norm.featStd[j] / n)
		if norm.featStd[j] < 1e-10 {
			norm.featStd[j] = 1
		}
	}

	var sum float64
	for _, t := range y {
		sum += t
	}
	norm.targetMean = sum / n

	var variance float64
	for _, t := range y {
		d := t - norm.targetMean
		variance += d * d
	}
	norm.targetStd = math.Sqrt(variance / n)
	if norm.targetStd < 1e-10 {
		norm.targetStd = 1
	}

	return norm
}

func (norm normalization) scaleInput(x []float64) []float64 {
	scaled := make([]float64, len(x))
	for j, v := range x {
		scaled[j] = (v - norm.featMean[j]) / norm.featStd[j]
	}
	return scaled
}
