package linear_model

import (
	"fmt"
	"math"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gdlearn/core/model"
	"github.com/YuminosukeSato/gdlearn/metrics"
	"github.com/YuminosukeSato/gdlearn/pkg/errors"
	"github.com/YuminosukeSato/gdlearn/pkg/log"
)

// LinearRegression is a least-squares linear model trained by full-batch
// gradient descent on the mean squared error.
type LinearRegression struct {
	state *model.StateManager // State management (composition instead of embedding)

	// Hyperparameters
	learningRate float64
	nIters       int

	// Learned parameters
	weights     *mat.VecDense
	bias        float64
	lossHistory []float64
}

// LinearRegressionOption は設定オプション
type LinearRegressionOption func(*LinearRegression)

// WithLearningRate は学習率を設定（デフォルト 0.01）
func WithLearningRate(lr float64) LinearRegressionOption {
	return func(m *LinearRegression) {
		m.learningRate = lr
	}
}

// WithNIters は勾配降下の反復回数を設定（デフォルト 1000）
func WithNIters(n int) LinearRegressionOption {
	return func(m *LinearRegression) {
		m.nIters = n
	}
}

// NewLinearRegression は新しいLinearRegressionモデルを作成
func NewLinearRegression(options ...LinearRegressionOption) (*LinearRegression, error) {
	m := &LinearRegression{
		state:        model.NewStateManager(),
		learningRate: 0.01,
		nIters:       1000,
	}
	for _, opt := range options {
		opt(m)
	}
	if err := validateSchedule(m.learningRate, m.nIters); err != nil {
		return nil, err
	}
	return m, nil
}

func validateSchedule(learningRate float64, nIters int) error {
	if !(learningRate > 0) || math.IsInf(learningRate, 0) {
		return errors.NewInvalidParameterError("learning_rate", "must be a positive finite number", learningRate)
	}
	if nIters <= 0 {
		return errors.NewInvalidParameterError("n_iters", "must be greater than 0", nIters)
	}
	return nil
}

// Fit はモデルを訓練データで学習
//
// 重みとバイアスは毎回 0 から始まり、nIters 回の全バッチ更新を行う。
// 入力検証に失敗した場合、以前の学習結果はそのまま残る。
func (m *LinearRegression) Fit(X [][]float64, y []float64) error {
	const op = "LinearRegression.Fit"
	nFeatures, err := model.ValidateTrainingData(op, X, y)
	if err != nil {
		return err
	}

	logger := log.GetLoggerWithName("linear_model").With(log.ModelNameKey, "LinearRegression")
	start := time.Now()
	logger.Debug("fit started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(X),
		log.FeaturesKey, nFeatures,
		log.IterationsKey, m.nIters,
		log.LearningRateKey, m.learningRate,
	)

	w := make([]float64, nFeatures)
	b := 0.0
	history := make([]float64, 0, m.nIters)
	scale := m.learningRate / float64(len(X))
	task := GradientTask{X: X, Y: y, Weights: w}

	for iter := 0; iter < m.nIters; iter++ {
		task.Bias = b
		g, err := squaredErrorGradient(task)
		if err != nil {
			return errors.NewTrainingFailedError(op, iter, 0, err)
		}
		history = append(history, g.Loss/float64(len(X)))
		b = applyUpdate(w, b, g, scale)
	}

	_ = m.state.WithStateMut(func() error {
		m.weights = mat.NewVecDense(nFeatures, w)
		m.bias = b
		m.lossHistory = history
		return nil
	})
	m.state.MarkFitted(nFeatures, len(X))

	if err := errors.CheckNumericalStability(op, append(slices.Clone(w), b), m.nIters); err != nil {
		errors.Warn(errors.NewConvergenceWarning("LinearRegression", m.nIters, "weights or bias are not finite; lower the learning rate or scale the features"))
	}

	logger.Debug("fit completed",
		log.OperationKey, log.OperationFit,
		log.LossKey, history[len(history)-1],
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Predict は入力データに対する予測を行う
func (m *LinearRegression) Predict(X [][]float64) ([]float64, error) {
	if err := m.state.RequireFitted("LinearRegression", "Predict"); err != nil {
		return nil, err
	}
	nFeatures, _ := m.state.GetDimensions()
	if err := model.ValidateRows("LinearRegression.Predict", X, nFeatures); err != nil {
		return nil, err
	}

	preds := make([]float64, len(X))
	_ = m.state.WithState(func() error {
		w := m.weights.RawVector().Data
		for i, row := range X {
			preds[i] = floats.Dot(w, row) + m.bias
		}
		return nil
	})
	log.GetLoggerWithName("linear_model").Debug("predict completed",
		log.ModelNameKey, "LinearRegression",
		log.OperationKey, log.OperationPredict,
		log.SamplesKey, len(X),
	)
	return preds, nil
}

// Score はモデルの決定係数（R²）を計算
//
// y が定数の場合（全変動 0）は 0 を返す。
func (m *LinearRegression) Score(X [][]float64, y []float64) (float64, error) {
	if err := model.ValidateScoreInput("LinearRegression.Score", X, y); err != nil {
		return 0, err
	}
	preds, err := m.Predict(X)
	if err != nil {
		return 0, err
	}
	r2, err := metrics.R2Score(y, preds)
	if err != nil {
		return 0, err
	}
	log.GetLoggerWithName("linear_model").Debug("score completed",
		log.ModelNameKey, "LinearRegression",
		log.OperationKey, log.OperationScore,
		log.R2ScoreKey, r2,
	)
	return r2, nil
}

// Weights は学習された重みのコピーを返す。未学習なら nil。
func (m *LinearRegression) Weights() []float64 {
	var w []float64
	_ = m.state.WithState(func() error {
		if m.weights != nil {
			w = slices.Clone(m.weights.RawVector().Data)
		}
		return nil
	})
	return w
}

// Bias は学習された切片を返す
func (m *LinearRegression) Bias() float64 {
	var b float64
	_ = m.state.WithState(func() error {
		b = m.bias
		return nil
	})
	return b
}

// LossHistory returns the training MSE of each iteration, measured before
// that iteration's update.
func (m *LinearRegression) LossHistory() []float64 {
	var h []float64
	_ = m.state.WithState(func() error {
		h = slices.Clone(m.lossHistory)
		return nil
	})
	return h
}

// IsFitted returns whether the model has been fitted
func (m *LinearRegression) IsFitted() bool {
	return m.state.IsFitted()
}

// GetParams returns the model's hyperparameters
func (m *LinearRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"learning_rate": m.learningRate,
		"n_iters":       m.nIters,
	}
}

// String returns a string representation of the model
func (m *LinearRegression) String() string {
	if !m.state.IsFitted() {
		return fmt.Sprintf("LinearRegression(learning_rate=%g, n_iters=%d)", m.learningRate, m.nIters)
	}
	nf, _ := m.state.GetDimensions()
	return fmt.Sprintf("LinearRegression(learning_rate=%g, n_iters=%d, n_features=%d, bias=%.4f)",
		m.learningRate, m.nIters, nf, m.bias)
}
