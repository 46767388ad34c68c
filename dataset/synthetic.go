package dataset

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/gdlearn/pkg/errors"
)

// LinearData is a synthetic regression problem together with the parameters
// that generated it.
type LinearData struct {
	X           [][]float64
	Y           []float64
	TrueWeights []float64
	TrueBias    float64
}

// MakeLinear generates y = w·x + b + ε with features uniform in [-2, 2],
// weight magnitudes uniform in [0.5, 3] with a random sign, bias uniform in
// [-1, 1] and ε ~ N(0, noise²). Output is a pure function of the seed.
func MakeLinear(n, features int, noise float64, seed uint64) (*LinearData, error) {
	if n <= 0 {
		return nil, errors.NewInvalidParameterError("n", "must be greater than 0", n)
	}
	if features <= 0 {
		return nil, errors.NewInvalidParameterError("features", "must be greater than 0", features)
	}
	if !(noise >= 0) {
		return nil, errors.NewInvalidParameterError("noise", "must be non-negative", noise)
	}

	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	rng := rand.New(src)
	feature := distuv.Uniform{Min: -2, Max: 2, Src: src}
	magnitude := distuv.Uniform{Min: 0.5, Max: 3, Src: src}
	eps := distuv.Normal{Mu: 0, Sigma: noise, Src: src}

	w := make([]float64, features)
	for j := range w {
		w[j] = magnitude.Rand()
		if rng.IntN(2) == 0 {
			w[j] = -w[j]
		}
	}
	b := distuv.Uniform{Min: -1, Max: 1, Src: src}.Rand()

	data := &LinearData{
		X:           make([][]float64, n),
		Y:           make([]float64, n),
		TrueWeights: w,
		TrueBias:    b,
	}
	for i := 0; i < n; i++ {
		row := make([]float64, features)
		target := b
		for j := range row {
			row[j] = feature.Rand()
			target += w[j] * row[j]
		}
		if noise > 0 {
			target += eps.Rand()
		}
		data.X[i] = row
		data.Y[i] = target
	}
	return data, nil
}

// LogisticTrueWeights and LogisticTrueBias parameterise MakeLogistic.
var (
	LogisticTrueWeights = []float64{2, -1.5}
	LogisticTrueBias    = 0.3
)

// MakeLogistic draws n two-feature points uniform in [-2, 2]² from the
// 32-bit LCG and labels each 1 with probability sigmoid(2x₁ - 1.5x₂ + 0.3).
// For every sample the generator is consumed in the order x₁, x₂, noise.
func MakeLogistic(n int, seed uint32) ([][]float64, []float64) {
	g := lcg{s: uint64(seed)}
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x1 := g.float()*4 - 2
		x2 := g.float()*4 - 2
		z := LogisticTrueWeights[0]*x1 + LogisticTrueWeights[1]*x2 + LogisticTrueBias
		p := 1 / (1 + math.Exp(-z))
		if g.float() < p {
			y[i] = 1
		}
		X[i] = []float64{x1, x2}
	}
	return X, y
}
