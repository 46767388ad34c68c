package dataset

import (
	"math"

	"github.com/YuminosukeSato/gdlearn/pkg/errors"
)

// Split holds a train/test partition of aligned samples and labels.
type Split[X, Y any] struct {
	XTrain []X
	YTrain []Y
	XTest  []X
	YTest  []Y
}

// ToyDataset returns the six-point two-class dataset with its two held-out
// queries: (2,2) is "A" and (7,7) is "B".
func ToyDataset() Split[[]float64, string] {
	return Split[[]float64, string]{
		XTrain: [][]float64{{1, 2}, {2, 3}, {3, 3}, {6, 7}, {7, 8}, {8, 9}},
		YTrain: []string{"A", "A", "A", "B", "B", "B"},
		XTest:  [][]float64{{2, 2}, {7, 7}},
		YTest:  []string{"A", "B"},
	}
}

// lcg is the 32-bit linear congruential generator shared by the split and
// MakeLogistic: s = (s*1664525 + 1013904223) mod 2^32.
type lcg struct {
	s uint64
}

func (g *lcg) next() uint64 {
	g.s = (g.s*1664525 + 1013904223) % (1 << 32)
	return g.s
}

// float returns the next state scaled to [0, 1).
func (g *lcg) float() float64 {
	return float64(g.next()) / 4294967296
}

// TrainTestSplit shuffles indices with a seeded Fisher-Yates pass driven by
// the LCG, walking from the last index down to 1, and puts the first
// max(1, floor(n*testSize)) shuffled indices in the test set. The same seed
// always yields the same split. Elements are shared, not copied.
func TrainTestSplit[X, Y any](x []X, y []Y, testSize float64, seed uint32) (Split[X, Y], error) {
	if len(x) != len(y) {
		return Split[X, Y]{}, errors.NewDimensionError("TrainTestSplit", len(x), len(y), 0)
	}
	n := len(x)
	if n == 0 {
		return Split[X, Y]{}, errors.NewEmptyDatasetError("TrainTestSplit")
	}
	if !(testSize >= 0 && testSize <= 1) {
		return Split[X, Y]{}, errors.NewInvalidParameterError("test_size", "must be within [0, 1]", testSize)
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	g := lcg{s: uint64(seed)}
	for i := n - 1; i > 0; i-- {
		j := int(g.next() % uint64(i+1))
		idx[i], idx[j] = idx[j], idx[i]
	}

	nTest := max(1, int(math.Floor(float64(n)*testSize)))
	nTest = min(nTest, n)

	split := Split[X, Y]{
		XTrain: make([]X, 0, n-nTest),
		YTrain: make([]Y, 0, n-nTest),
		XTest:  make([]X, 0, nTest),
		YTest:  make([]Y, 0, nTest),
	}
	for k, i := range idx {
		if k < nTest {
			split.XTest = append(split.XTest, x[i])
			split.YTest = append(split.YTest, y[i])
		} else {
			split.XTrain = append(split.XTrain, x[i])
			split.YTrain = append(split.YTrain, y[i])
		}
	}
	return split, nil
}
