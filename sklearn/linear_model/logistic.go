package linear_model

import (
	"fmt"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gdlearn/core/model"
	"github.com/YuminosukeSato/gdlearn/core/parallel"
	"github.com/YuminosukeSato/gdlearn/metrics"
	"github.com/YuminosukeSato/gdlearn/pkg/errors"
	"github.com/YuminosukeSato/gdlearn/pkg/log"
)

// LogisticRegression is a binary logistic classifier trained by full-batch
// gradient descent on the log-loss. Labels are 0 or 1.
//
// With nJobs > 1 every iteration splits the rows into contiguous chunks,
// computes one partial gradient per chunk on its own goroutine against a
// private copy of the parameters, waits for all of them and applies a single
// update from the chunk-ordered sum.
type LogisticRegression struct {
	state *model.StateManager // State management (composition)

	// Hyperparameters
	learningRate float64
	nIters       int
	nJobs        int

	// Model parameters
	weights     *mat.VecDense
	bias        float64
	lossHistory []float64

	gradient GradientFunc
}

// LogisticRegressionOption is a functional option for LogisticRegression
type LogisticRegressionOption func(*LogisticRegression)

// WithLogisticLearningRate sets the step size (default 0.1).
func WithLogisticLearningRate(lr float64) LogisticRegressionOption {
	return func(m *LogisticRegression) {
		m.learningRate = lr
	}
}

// WithLogisticNIters sets the number of gradient steps (default 1000).
func WithLogisticNIters(n int) LogisticRegressionOption {
	return func(m *LogisticRegression) {
		m.nIters = n
	}
}

// WithNJobs sets the number of gradient workers. Values below 1 become 1.
func WithNJobs(n int) LogisticRegressionOption {
	return func(m *LogisticRegression) {
		m.nJobs = max(1, n)
	}
}

// NewLogisticRegression creates a new LogisticRegression classifier
func NewLogisticRegression(opts ...LogisticRegressionOption) (*LogisticRegression, error) {
	m := &LogisticRegression{
		state:        model.NewStateManager(),
		learningRate: 0.1,
		nIters:       1000,
		nJobs:        1,
		gradient:     ComputePartialGradient,
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := validateSchedule(m.learningRate, m.nIters); err != nil {
		return nil, err
	}
	return m, nil
}

// Fit trains the model from zero weights and bias.
//
// On any error, including a failing or panicking gradient worker, the
// previously fitted parameters are left untouched.
func (m *LogisticRegression) Fit(X [][]float64, y []float64) error {
	const op = "LogisticRegression.Fit"
	nFeatures, err := model.ValidateTrainingData(op, X, y)
	if err != nil {
		return err
	}

	logger := log.GetLoggerWithName("linear_model").With(log.ModelNameKey, "LogisticRegression")
	start := time.Now()
	logger.Debug("fit started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(X),
		log.FeaturesKey, nFeatures,
		log.IterationsKey, m.nIters,
		log.LearningRateKey, m.learningRate,
		log.JobsKey, m.nJobs,
	)

	var (
		w       []float64
		b       float64
		history []float64
	)
	if m.nJobs <= 1 {
		w, b, history, err = m.fitSequential(X, y, nFeatures)
	} else {
		w, b, history, err = m.fitParallel(X, y, nFeatures)
	}
	if err != nil {
		iteration := -1
		var tfErr *errors.TrainingFailedError
		if errors.As(err, &tfErr) {
			iteration = tfErr.Iteration
		}
		logger.Error("fit failed", log.IterationKey, iteration, log.ErrAttrKey, err)
		return err
	}

	_ = m.state.WithStateMut(func() error {
		m.weights = mat.NewVecDense(nFeatures, w)
		m.bias = b
		m.lossHistory = history
		return nil
	})
	m.state.MarkFitted(nFeatures, len(X))

	if err := errors.CheckNumericalStability(op, append(slices.Clone(w), b), m.nIters); err != nil {
		errors.Warn(errors.NewConvergenceWarning("LogisticRegression", m.nIters, "weights or bias are not finite; lower the learning rate or scale the features"))
	}

	logger.Debug("fit completed",
		log.OperationKey, log.OperationFit,
		log.LossKey, history[len(history)-1],
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

func (m *LogisticRegression) fitSequential(X [][]float64, y []float64, nFeatures int) ([]float64, float64, []float64, error) {
	w := make([]float64, nFeatures)
	b := 0.0
	history := make([]float64, 0, m.nIters)
	scale := m.learningRate / float64(len(X))

	for iter := 0; iter < m.nIters; iter++ {
		g, err := m.gradient(GradientTask{X: X, Y: y, Weights: w, Bias: b})
		if err != nil {
			return nil, 0, nil, errors.NewTrainingFailedError("LogisticRegression.Fit", iter, 0, err)
		}
		history = append(history, g.Loss/float64(len(X)))
		b = applyUpdate(w, b, g, scale)
	}
	return w, b, history, nil
}

func (m *LogisticRegression) fitParallel(X [][]float64, y []float64, nFeatures int) ([]float64, float64, []float64, error) {
	w := make([]float64, nFeatures)
	b := 0.0
	history := make([]float64, 0, m.nIters)
	scale := m.learningRate / float64(len(X))
	chunks := parallel.Partition(len(X), m.nJobs)
	log.GetLoggerWithName("linear_model").Debug("rows partitioned",
		log.ModelNameKey, "LogisticRegression",
		log.JobsKey, len(chunks),
		log.ChunkSizeKey, chunks[0].Len(),
	)

	for iter := 0; iter < m.nIters; iter++ {
		bias := b
		parts, failed, err := parallel.ForkJoin(chunks, func(c parallel.Chunk) (PartialGradient, error) {
			return m.gradient(GradientTask{
				X:       X[c.Start:c.End],
				Y:       y[c.Start:c.End],
				Weights: slices.Clone(w),
				Bias:    bias,
			})
		})
		if err != nil {
			return nil, 0, nil, errors.NewTrainingFailedError("LogisticRegression.Fit", iter, failed, err)
		}

		total := PartialGradient{GradW: make([]float64, nFeatures)}
		for _, p := range parts {
			if len(p.GradW) != nFeatures {
				return nil, 0, nil, errors.NewTrainingFailedError("LogisticRegression.Fit", iter, -1,
					errors.NewDimensionError("LogisticRegression.aggregate", nFeatures, len(p.GradW), 1))
			}
			floats.Add(total.GradW, p.GradW)
			total.GradB += p.GradB
			total.Loss += p.Loss
		}
		history = append(history, total.Loss/float64(len(X)))
		b = applyUpdate(w, b, total, scale)
	}
	return w, b, history, nil
}

// PredictProba returns the probability of class 1 for each row.
func (m *LogisticRegression) PredictProba(X [][]float64) ([]float64, error) {
	if err := m.state.RequireFitted("LogisticRegression", "PredictProba"); err != nil {
		return nil, err
	}
	nFeatures, _ := m.state.GetDimensions()
	if err := model.ValidateRows("LogisticRegression.PredictProba", X, nFeatures); err != nil {
		return nil, err
	}

	probs := make([]float64, len(X))
	_ = m.state.WithState(func() error {
		w := m.weights.RawVector().Data
		for i, row := range X {
			probs[i] = errors.StableSigmoid(floats.Dot(w, row) + m.bias)
		}
		return nil
	})
	log.GetLoggerWithName("linear_model").Debug("predict completed",
		log.ModelNameKey, "LogisticRegression",
		log.OperationKey, log.OperationPredict,
		log.SamplesKey, len(X),
	)
	return probs, nil
}

// Predict returns 1 where the probability is at least 0.5, otherwise 0.
func (m *LogisticRegression) Predict(X [][]float64) ([]float64, error) {
	probs, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}
	preds := make([]float64, len(probs))
	for i, p := range probs {
		if p >= 0.5 {
			preds[i] = 1
		}
	}
	return preds, nil
}

// Score returns the accuracy on (X, y).
func (m *LogisticRegression) Score(X [][]float64, y []float64) (float64, error) {
	if err := model.ValidateScoreInput("LogisticRegression.Score", X, y); err != nil {
		return 0, err
	}
	preds, err := m.Predict(X)
	if err != nil {
		return 0, err
	}
	acc, err := metrics.Accuracy(y, preds)
	if err != nil {
		return 0, err
	}
	log.GetLoggerWithName("linear_model").Debug("score completed",
		log.ModelNameKey, "LogisticRegression",
		log.OperationKey, log.OperationScore,
		log.AccuracyKey, acc,
	)
	return acc, nil
}

// Weights returns a copy of the learned weights, or nil before fitting.
func (m *LogisticRegression) Weights() []float64 {
	var w []float64
	_ = m.state.WithState(func() error {
		if m.weights != nil {
			w = slices.Clone(m.weights.RawVector().Data)
		}
		return nil
	})
	return w
}

// Bias returns the learned intercept.
func (m *LogisticRegression) Bias() float64 {
	var b float64
	_ = m.state.WithState(func() error {
		b = m.bias
		return nil
	})
	return b
}

// LossHistory returns the mean log-loss of each iteration, measured before
// that iteration's update.
func (m *LogisticRegression) LossHistory() []float64 {
	var h []float64
	_ = m.state.WithState(func() error {
		h = slices.Clone(m.lossHistory)
		return nil
	})
	return h
}

// NJobs returns the effective number of gradient workers.
func (m *LogisticRegression) NJobs() int {
	return m.nJobs
}

// IsFitted returns whether the model has been fitted
func (m *LogisticRegression) IsFitted() bool {
	return m.state.IsFitted()
}

// GetParams returns the model's hyperparameters
func (m *LogisticRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"learning_rate": m.learningRate,
		"n_iters":       m.nIters,
		"n_jobs":        m.nJobs,
	}
}

// String returns a string representation of the model
func (m *LogisticRegression) String() string {
	if !m.state.IsFitted() {
		return fmt.Sprintf("LogisticRegression(learning_rate=%g, n_iters=%d, n_jobs=%d)",
			m.learningRate, m.nIters, m.nJobs)
	}
	nf, _ := m.state.GetDimensions()
	return fmt.Sprintf("LogisticRegression(learning_rate=%g, n_iters=%d, n_jobs=%d, n_features=%d, bias=%.4f)",
		m.learningRate, m.nIters, m.nJobs, nf, m.bias)
}
