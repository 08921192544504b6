package nn

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syntheticLinear(n int, seed uint64) ([][]float64, []float64) {
	rng := rand.New(rand.NewPCG(seed, 0))
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := range X {
		a := rng.Float64()
		b := rng.Float64()
		X[i] = []float64{a, b}
		y[i] = 3*a - 2*b + 1
	}
	return X, y
}

func TestTrain_ConvergesOnLinearData(t *testing.T) {
	X, y := syntheticLinear(400, 42)

	cfg := DefaultConfig()
	cfg.MaxIter = 300

	reg, losses, err := Train(X, y, cfg, 42)
	require.NoError(t, err)
	require.Len(t, losses, cfg.MaxIter)

	assert.Less(t, losses[len(losses)-1], losses[0], "loss should decrease")

	for _, probe := range [][]float64{{0.2, 0.8}, {0.9, 0.1}, {0.5, 0.5}} {
		want := 3*probe[0] - 2*probe[1] + 1
		got := reg.Predict(probe)
		assert.InDelta(t, want, got, 0.25, "prediction at %v", probe)
	}
}

func TestTrain_PredictionsOnOriginalScale(t *testing.T) {
	// Targets far from zero: predictions must come back on the same scale,
	// not the normalized one.
	X, y := syntheticLinear(300, 7)
	for i := range y {
		y[i] = y[i]*100 + 5000
	}

	cfg := DefaultConfig()
	cfg.MaxIter = 300

	reg, _, err := Train(X, y, cfg, 7)
	require.NoError(t, err)

	pred := reg.Predict([]float64{0.5, 0.5})
	want := (3*0.5-2*0.5+1)*100 + 5000
	assert.InDelta(t, want, pred, 100, "prediction should be on the target scale")
}

func TestTrain_DeterministicPerSeed(t *testing.T) {
	X, y := syntheticLinear(100, 3)

	cfg := DefaultConfig()
	cfg.MaxIter = 20

	reg1, losses1, err := Train(X, y, cfg, 99)
	require.NoError(t, err)
	reg2, losses2, err := Train(X, y, cfg, 99)
	require.NoError(t, err)

	assert.Equal(t, losses1, losses2)
	probe := []float64{0.3, 0.7}
	assert.Equal(t, reg1.Predict(probe), reg2.Predict(probe))
}

func TestTrain_EmptySet(t *testing.T) {
	_, _, err := Train(nil, nil, DefaultConfig(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoTrainingData)
}

func TestTrain_NonFiniteTarget(t *testing.T) {
	X := [][]float64{{1}, {2}}

	_, _, err := Train(X, []float64{1, math.NaN()}, DefaultConfig(), 1)
	assert.Error(t, err)

	_, _, err = Train(X, []float64{math.Inf(-1), 1}, DefaultConfig(), 1)
	assert.Error(t, err)
}

func TestTrain_LengthMismatch(t *testing.T) {
	_, _, err := Train([][]float64{{1}, {2}}, []float64{1}, DefaultConfig(), 1)
	assert.Error(t, err)
}

func TestTrain_InvalidConfig(t *testing.T) {
	X, y := syntheticLinear(10, 1)

	cfg := DefaultConfig()
	cfg.HiddenSize = 0
	_, _, err := Train(X, y, cfg, 1)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.MaxIter = 0
	_, _, err = Train(X, y, cfg, 1)
	assert.Error(t, err)
}

func TestComputeNormalization_ZeroStdGuard(t *testing.T) {
	X := [][]float64{{1, 5}, {1, 7}, {1, 9}}
	y := []float64{2, 2, 2}

	norm := computeNormalization(X, y)

	// Constant columns fall back to std 1 so scaling stays finite.
	assert.Equal(t, 1.0, norm.featStd[0])
	assert.Equal(t, 1.0, norm.targetStd)
	assert.InDelta(t, 7.0, norm.featMean[1], 1e-9)
	assert.InDelta(t, 2.0, norm.targetMean, 1e-9)
}
