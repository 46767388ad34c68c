// Package neighbors implements distance-based classifiers.
package neighbors

import (
	"fmt"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/gdlearn/core/model"
	"github.com/YuminosukeSato/gdlearn/metrics"
	"github.com/YuminosukeSato/gdlearn/pkg/errors"
	"github.com/YuminosukeSato/gdlearn/pkg/log"
)

const modelName = "KNeighborsClassifier"

// KNeighborsClassifier は k 近傍法による分類器。
//
// Fit は訓練データを複製して保持するだけで、計算はすべて予測時に行われる。
// 距離はユークリッド距離。距離が等しい近傍は訓練データの順序を保ち、
// 得票数が同数の場合は近い順に最初に現れたラベルが勝つ。
type KNeighborsClassifier[L comparable] struct {
	state *model.StateManager

	k        int
	labelKey func(L) string

	x [][]float64
	y []L
}

// Option configures a KNeighborsClassifier.
type Option[L comparable] func(*KNeighborsClassifier[L])

// WithKeyFunc sets the function mapping a label to its vote key. Labels with
// equal keys share votes. The default key is fmt.Sprint(label).
func WithKeyFunc[L comparable](fn func(L) string) Option[L] {
	return func(c *KNeighborsClassifier[L]) {
		if fn != nil {
			c.labelKey = fn
		}
	}
}

// NewKNeighborsClassifier creates a classifier that votes among the k nearest
// training points. k must be positive.
func NewKNeighborsClassifier[L comparable](k int, opts ...Option[L]) (*KNeighborsClassifier[L], error) {
	if k <= 0 {
		return nil, errors.NewInvalidParameterError("k", "must be greater than 0", k)
	}
	c := &KNeighborsClassifier[L]{
		state:    model.NewStateManager(),
		k:        k,
		labelKey: func(l L) string { return fmt.Sprint(l) },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Fit stores private copies of X and y.
func (c *KNeighborsClassifier[L]) Fit(X [][]float64, y []L) error {
	start := time.Now()
	nFeatures, err := model.ValidateTrainingData(modelName+".Fit", X, y)
	if err != nil {
		return err
	}

	xs := model.CopyMatrix(X)
	ys := slices.Clone(y)

	_ = c.state.WithStateMut(func() error {
		c.x = xs
		c.y = ys
		return nil
	})
	c.state.MarkFitted(nFeatures, len(X))

	log.GetLoggerWithName("neighbors").Debug("fit completed",
		log.ModelNameKey, modelName,
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(X),
		log.FeaturesKey, nFeatures,
		log.NeighborsKey, c.k,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

type neighbor[L comparable] struct {
	dist  float64
	label L
}

// PredictOne returns the majority label among the k nearest training points.
func (c *KNeighborsClassifier[L]) PredictOne(x []float64) (L, error) {
	var zero L
	if err := c.state.RequireFitted(modelName, "PredictOne"); err != nil {
		return zero, err
	}
	if err := c.state.RequireFeatures(modelName+".PredictOne", len(x)); err != nil {
		return zero, err
	}

	var label L
	_ = c.state.WithState(func() error {
		label = c.vote(x)
		return nil
	})
	return label, nil
}

func (c *KNeighborsClassifier[L]) vote(x []float64) L {
	neighbors := make([]neighbor[L], len(c.x))
	for i, point := range c.x {
		neighbors[i] = neighbor[L]{dist: floats.Distance(point, x, 2), label: c.y[i]}
	}

	// Stable: equidistant points keep training order.
	slices.SortStableFunc(neighbors, func(a, b neighbor[L]) int {
		switch {
		case a.dist < b.dist:
			return -1
		case a.dist > b.dist:
			return 1
		}
		return 0
	})
	nearest := neighbors[:min(c.k, len(neighbors))]

	counts := make(map[string]int, len(nearest))
	order := make([]string, 0, len(nearest))
	first := make(map[string]L, len(nearest))
	for _, n := range nearest {
		key := c.labelKey(n.label)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
			first[key] = n.label
		}
		counts[key]++
	}

	best := order[0]
	for _, key := range order[1:] {
		if counts[key] > counts[best] {
			best = key
		}
	}
	return first[best]
}

// Predict applies PredictOne to each row. The first failing row aborts.
func (c *KNeighborsClassifier[L]) Predict(X [][]float64) ([]L, error) {
	preds := make([]L, len(X))
	for i, row := range X {
		p, err := c.PredictOne(row)
		if err != nil {
			return nil, err
		}
		preds[i] = p
	}
	log.GetLoggerWithName("neighbors").Debug("predict completed",
		log.ModelNameKey, modelName,
		log.OperationKey, log.OperationPredict,
		log.SamplesKey, len(X),
	)
	return preds, nil
}

// Score returns the fraction of rows whose prediction equals yTrue.
func (c *KNeighborsClassifier[L]) Score(X [][]float64, yTrue []L) (float64, error) {
	if err := model.ValidateScoreInput(modelName+".Score", X, yTrue); err != nil {
		return 0, err
	}
	preds, err := c.Predict(X)
	if err != nil {
		return 0, err
	}
	acc, err := metrics.Accuracy(yTrue, preds)
	if err != nil {
		return 0, err
	}
	log.GetLoggerWithName("neighbors").Debug("score completed",
		log.ModelNameKey, modelName,
		log.OperationKey, log.OperationScore,
		log.AccuracyKey, acc,
	)
	return acc, nil
}

// K returns the number of neighbours consulted.
func (c *KNeighborsClassifier[L]) K() int { return c.k }

// NFeatures returns the width seen during Fit, or 0 before fitting.
func (c *KNeighborsClassifier[L]) NFeatures() int {
	n, _ := c.state.GetDimensions()
	return n
}

// IsFitted reports whether Fit has succeeded.
func (c *KNeighborsClassifier[L]) IsFitted() bool { return c.state.IsFitted() }

// GetParams returns the hyperparameters.
func (c *KNeighborsClassifier[L]) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_neighbors": c.k,
		"metric":      "euclidean",
	}
}

func (c *KNeighborsClassifier[L]) String() string {
	if !c.state.IsFitted() {
		return fmt.Sprintf("KNeighborsClassifier(n_neighbors=%d, fitted=false)", c.k)
	}
	nf, ns := c.state.GetDimensions()
	return fmt.Sprintf("KNeighborsClassifier(n_neighbors=%d, n_samples=%d, n_features=%d)", c.k, ns, nf)
}
