// Package benchmark times Fit and Score of gdlearn estimators and reports the
// results as a table, JSONL records, Prometheus metrics and loss-curve plots.
package benchmark

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/YuminosukeSato/gdlearn/core/model"
	"github.com/YuminosukeSato/gdlearn/dataset"
	"github.com/YuminosukeSato/gdlearn/pkg/errors"
	"github.com/YuminosukeSato/gdlearn/pkg/log"
)

// Model is what Run needs from an estimator: training and a scalar score.
type Model[Y any] interface {
	model.Fitter[Y]
	model.Scorer[Y]
}

// Result is one timed Fit + Score run.
type Result struct {
	RunID       string
	Algorithm   string
	Dataset     string
	NTrain      int
	NTest       int
	NFeatures   int
	Params      map[string]interface{}
	FitTime     time.Duration
	PredictTime time.Duration
	// Score is accuracy for classifiers and R² for regressors.
	Score    float64
	MemoryMB float64
}

// ParamString renders Params as "k=v" pairs sorted by key.
func (r Result) ParamString() string {
	if len(r.Params) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(r.Params))
	for k := range r.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, r.Params[k])
	}
	return strings.Join(parts, ", ")
}

// Run fits est on the training half of split and scores it on the test half,
// timing both phases separately.
//
// ctx is checked between phases only; a running Fit is not interrupted.
func Run[Y any](ctx context.Context, est Model[Y], split dataset.Split[[]float64, Y], algorithm, datasetName string) (Result, error) {
	res := Result{
		RunID:     uuid.NewString(),
		Algorithm: algorithm,
		Dataset:   datasetName,
		NTrain:    len(split.XTrain),
		NTest:     len(split.XTest),
	}
	if len(split.XTrain) > 0 {
		res.NFeatures = len(split.XTrain[0])
	}
	if pg, ok := est.(model.ParamGetter); ok {
		res.Params = pg.GetParams()
	}

	logger := log.GetLoggerWithName("benchmark").With(
		log.RunIDKey, res.RunID,
		log.ModelNameKey, algorithm,
		log.DatasetKey, datasetName,
		log.PhaseKey, log.PhaseBenchmark,
	)

	if err := ctx.Err(); err != nil {
		return res, err
	}
	start := time.Now()
	if err := est.Fit(split.XTrain, split.YTrain); err != nil {
		logger.Error("benchmark fit failed", log.OperationKey, log.OperationFit, log.ErrorTypeKey, errorType(err), log.ErrAttrKey, err)
		return res, errors.Wrapf(err, "benchmark %s on %s: fit", algorithm, datasetName)
	}
	res.FitTime = time.Since(start)

	if err := ctx.Err(); err != nil {
		return res, err
	}
	start = time.Now()
	score, err := est.Score(split.XTest, split.YTest)
	if err != nil {
		logger.Error("benchmark score failed", log.OperationKey, log.OperationScore, log.ErrorTypeKey, errorType(err), log.ErrAttrKey, err)
		return res, errors.Wrapf(err, "benchmark %s on %s: score", algorithm, datasetName)
	}
	res.PredictTime = time.Since(start)
	res.Score = score

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	res.MemoryMB = float64(ms.Sys) / (1024 * 1024)

	logger.Info("benchmark finished",
		log.SamplesKey, res.NTrain,
		log.FeaturesKey, res.NFeatures,
		log.DurationMsKey, res.FitTime.Milliseconds(),
		"score", res.Score,
	)
	return res, nil
}

// errorType names the gdlearn error kind carried by err, for log filtering.
func errorType(err error) string {
	var (
		dimErr      *errors.DimensionError
		emptyErr    *errors.EmptyDatasetError
		notFitted   *errors.NotFittedError
		paramErr    *errors.InvalidParameterError
		trainingErr *errors.TrainingFailedError
		valueErr    *errors.ValueError
	)
	switch {
	case errors.As(err, &trainingErr):
		return "training_failed"
	case errors.As(err, &dimErr):
		return "dimension_mismatch"
	case errors.As(err, &emptyErr):
		return "empty_data"
	case errors.As(err, &notFitted):
		return "not_fitted"
	case errors.As(err, &paramErr):
		return "invalid_parameter"
	case errors.As(err, &valueErr):
		return "value"
	default:
		return "other"
	}
}
