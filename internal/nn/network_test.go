package nn

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetwork_ForwardDimensions(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	net := newNetwork([]int{5, 10, 1}, rng)

	output := net.forward([]float64{0.1, 0.2, 0.3, 0.4, 0.5})

	assert.Len(t, output, 1, "output should have 1 element")
	assert.False(t, math.IsNaN(output[0]), "output should not be NaN")
}

func TestNetwork_XOR(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	net := newNetwork([]int{2, 8, 1}, rng)

	trainX := [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	trainY := [][]float64{{0}, {1}, {1}, {0}}

	cfg := Config{
		LearningRate: 0.05,
		Beta1:        0.9,
		Beta2:        0.999,
		Epsilon:      1e-8,
		BatchSize:    4,
		MaxIter:      3000,
	}

	losses := net.train(trainX, trainY, cfg, rng)

	finalLoss := losses[len(losses)-1]
	assert.Less(t, finalLoss, 0.01, "XOR should converge, final MSE: %f", finalLoss)

	for i, x := range trainX {
		pred := net.forward(x)[0]
		assert.InDelta(t, trainY[i][0], pred, 0.15, "XOR input %v", x)
	}
}

func TestNetwork_GradientCheck(t *testing.T) {
	rng := rand.New(rand.NewPCG(123, 0))
	net := newNetwork([]int{3, 4, 1}, rng)

	input := []float64{0.5, -0.3, 0.8}
	target := 1.0
	eps := 1e-5

	// Analytic gradients.
	net.zeroGrad()
	output := net.forward(input)[0]
	net.backward([]float64{2 * (output - target)})

	loss := func() float64 {
		out := net.forward(input)[0]
		return (out - target) * (out - target)
	}

	// Numeric check over a few weights of each layer.
	for li := range net.layers {
		l := &net.layers[li]
		for j := range l.weights {
			for k := range l.weights[j] {
				orig := l.weights[j][k]

				l.weights[j][k] = orig + eps
				lossPlus := loss()
				l.weights[j][k] = orig - eps
				lossMinus := loss()
				l.weights[j][k] = orig

				numeric := (lossPlus - lossMinus) / (2 * eps)
				assert.InDelta(t, numeric, l.dW[j][k], 1e-4,
					"layer %d weight [%d][%d]", li, j, k)
			}
		}
	}
}

func TestNetwork_EpochCallback(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 0))
	net := newNetwork([]int{1, 4, 1}, rng)

	var epochs []int
	cfg := Config{
		LearningRate: 0.01,
		Beta1:        0.9,
		Beta2:        0.999,
		Epsilon:      1e-8,
		BatchSize:    2,
		MaxIter:      5,
		OnEpoch:      func(epoch int, loss float64) { epochs = append(epochs, epoch) },
	}

	losses := net.train([][]float64{{0}, {1}}, [][]float64{{0}, {1}}, cfg, rng)

	require.Len(t, losses, 5)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, epochs)
}
