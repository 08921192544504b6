// Package nn implements a small feed-forward neural network regressor with
// ReLU hidden units, a linear output and mini-batch Adam training.
package nn

import (
	"math"
	"math/rand/v2"
)

// layer is one fully-connected layer.
type layer struct {
	weights [][]float64 // [out][in]
	biases  []float64

	// Adam optimizer state.
	mW, vW [][]float64
	mB, vB []float64

	// Cached activations and gradients for backprop.
	input  []float64
	output []float64
	dW     [][]float64
	dB     []float64
}

type network struct {
	layers []layer
}

// newNetwork creates a network with He initialization. sizes gives the
// neuron count per layer, e.g. [5, 10, 1].
func newNetwork(sizes []int, rng *rand.Rand) *network {
	n := &network{layers: make([]layer, len(sizes)-1)}
	for i := 0; i < len(sizes)-1; i++ {
		in, out := sizes[i], sizes[i+1]
		stddev := math.Sqrt(2.0 / float64(in)) // He init
		l := layer{
			weights: make([][]float64, out),
			biases:  make([]float64, out),
			mW:      makeMatrix(out, in),
			vW:      makeMatrix(out, in),
			mB:      make([]float64, out),
			vB:      make([]float64, out),
			dW:      makeMatrix(out, in),
			dB:      make([]float64, out),
		}
		for j := 0; j < out; j++ {
			l.weights[j] = make([]float64, in)
			for k := 0; k < in; k++ {
				l.weights[j][k] = rng.NormFloat64() * stddev
			}
		}
		n.layers[i] = l
	}
	return n
}

// forward computes the network output, caching activations for backprop.
// Hidden layers use ReLU; the output layer is linear.
func (n *network) forward(input []float64) []float64 {
	x := input
	for i := range n.layers {
		l := &n.layers[i]
		l.input = make([]float64, len(x))
		copy(l.input, x)

		y := make([]float64, len(l.weights))
		for j := range l.weights {
			sum := l.biases[j]
			for k, w := range l.weights[j] {
				sum += w * x[k]
			}
			y[j] = sum
		}

		if i < len(n.layers)-1 {
			for j := range y {
				if y[j] < 0 {
					y[j] = 0
				}
			}
		}

		l.output = y
		x = y
	}
	return x
}

// backward accumulates gradients given the derivative of the loss w.r.t. the
// output. Must be called after forward.
func (n *network) backward(dOutput []float64) {
	dx := dOutput
	for i := len(n.layers) - 1; i >= 0; i-- {
		l := &n.layers[i]
		out := len(l.weights)
		in := len(l.weights[0])

		// ReLU derivative for hidden layers.
		if i < len(n.layers)-1 {
			for j := 0; j < out; j++ {
				if l.output[j] <= 0 {
					dx[j] = 0
				}
			}
		}

		for j := 0; j < out; j++ {
			l.dB[j] += dx[j]
			for k := 0; k < in; k++ {
				l.dW[j][k] += dx[j] * l.input[k]
			}
		}

		if i > 0 {
			dInput := make([]float64, in)
			for k := 0; k < in; k++ {
				for j := 0; j < out; j++ {
					dInput[k] += dx[j] * l.weights[j][k]
				}
			}
			dx = dInput
		}
	}
}

func (n *network) zeroGrad() {
	for i := range n.layers {
		l := &n.layers[i]
		for j := range l.dW {
			for k := range l.dW[j] {
				l.dW[j][k] = 0
			}
		}
		for j := range l.dB {
			l.dB[j] = 0
		}
	}
}

// updateAdam applies Adam weight updates. step is the 1-based global step.
func (n *network) updateAdam(cfg Config, step int) {
	for i := range n.layers {
		l := &n.layers[i]
		for j := range l.weights {
			for k := range l.weights[j] {
				l.mW[j][k] = cfg.Beta1*l.mW[j][k] + (1-cfg.Beta1)*l.dW[j][k]
				l.vW[j][k] = cfg.Beta2*l.vW[j][k] + (1-cfg.Beta2)*l.dW[j][k]*l.dW[j][k]
				mHat := l.mW[j][k] / (1 - math.Pow(cfg.Beta1, float64(step)))
				vHat := l.vW[j][k] / (1 - math.Pow(cfg.Beta2, float64(step)))
				l.weights[j][k] -= cfg.LearningRate * mHat / (math.Sqrt(vHat) + cfg.Epsilon)
			}
		}
		for j := range l.biases {
			l.mB[j] = cfg.Beta1*l.mB[j] + (1-cfg.Beta1)*l.dB[j]
			l.vB[j] = cfg.Beta2*l.vB[j] + (1-cfg.Beta2)*l.dB[j]*l.dB[j]
			mHat := l.mB[j] / (1 - math.Pow(cfg.Beta1, float64(step)))
			vHat := l.vB[j] / (1 - math.Pow(cfg.Beta2, float64(step)))
			l.biases[j] -= cfg.LearningRate * mHat / (math.Sqrt(vHat) + cfg.Epsilon)
		}
	}
}

// train runs mini-batch Adam for cfg.MaxIter epochs and returns the
// per-epoch MSE over the training data. After each epoch cfg.OnEpoch is
// invoked when set.
func (n *network) train(X, Y [][]float64, cfg Config, rng *rand.Rand) []float64 {
	nRows := len(X)
	indices := make([]int, nRows)
	for i := range indices {
		indices[i] = i
	}

	step := 0
	losses := make([]float64, cfg.MaxIter)

	for epoch := 0; epoch < cfg.MaxIter; epoch++ {
		rng.Shuffle(nRows, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})

		for batchStart := 0; batchStart < nRows; batchStart += cfg.BatchSize {
			batchEnd := batchStart + cfg.BatchSize
			if batchEnd > nRows {
				batchEnd = nRows
			}
			batchSize := batchEnd - batchStart

			n.zeroGrad()
			for b := batchStart; b < batchEnd; b++ {
				idx := indices[b]
				output := n.forward(X[idx])
				// MSE gradient: 2*(pred - target) / batchSize
				dOutput := []float64{2 * (output[0] - Y[idx][0]) / float64(batchSize)}
				n.backward(dOutput)
			}

			step++
			n.updateAdam(cfg, step)
		}

		losses[epoch] = n.mseLoss(X, Y)
		if cfg.OnEpoch != nil {
			cfg.OnEpoch(epoch, losses[epoch])
		}
	}

	return losses
}

// mseLoss computes mean squared error over a dataset.
func (n *network) mseLoss(X, Y [][]float64) float64 {
	if len(X) == 0 {
		return 0
	}
	var sum float64
	for i := range X {
		diff := n.forward(X[i])[0] - Y[i][0]
		sum += diff * diff
	}
	return sum / float64(len(X))
}

func makeMatrix(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}
