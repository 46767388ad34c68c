// Package gdlearn is a small supervised-learning library written from first
// principles: a k-nearest-neighbours classifier, a gradient-descent linear
// regressor and a gradient-descent binary logistic classifier whose gradient
// can be computed by a fork-join pool of goroutines.
//
// Every estimator follows the same contract over plain row-major matrices:
//
//	Fit(X [][]float64, y []Y) error
//	Predict(X [][]float64) ([]Y, error)
//	Score(X [][]float64, y []Y) (float64, error)
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/gdlearn/dataset"
//	    "github.com/YuminosukeSato/gdlearn/sklearn/linear_model"
//	)
//
//	func main() {
//	    data, err := dataset.MakeLinear(500, 3, 0.5, 123)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    split, err := dataset.TrainTestSplit(data.X, data.Y, 0.25, 7)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    lr, err := linear_model.NewLinearRegression(
//	        linear_model.WithLearningRate(0.05),
//	        linear_model.WithNIters(2000),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := lr.Fit(split.XTrain, split.YTrain); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    r2, _ := lr.Score(split.XTest, split.YTest)
//	    fmt.Printf("R² = %.3f\n", r2)
//	}
//
// # Packages
//
//   - sklearn/neighbors: KNeighborsClassifier over any comparable label type
//   - sklearn/linear_model: LinearRegression, LogisticRegression (n_jobs workers)
//   - metrics: Accuracy, R2Score, MSE, RMSE, MAE, BinaryLogLoss
//   - preprocessing: StandardScaler
//   - dataset: CSV parsing, Iris loading, synthetic data, seeded train/test split
//   - benchmark: timed Fit/Score runs, JSONL results, Prometheus metrics, loss plots
//   - core/model: estimator interfaces, fitted-state tracking, input validation
//   - core/parallel: row partitioning and fork-join execution with panic capture
//   - pkg/errors, pkg/log: error taxonomy and structured logging
//
// The cmd/benchmark command runs every estimator on its reference dataset.
//
// # Parallel training
//
// LogisticRegression with WithNJobs(n) splits the rows into n contiguous
// chunks each iteration. Every chunk's partial gradient is computed on its own
// goroutine against a snapshot of the parameters; the coordinator waits for
// all of them, sums the partial gradients in chunk order and applies one
// update. The result matches sequential training up to floating-point
// reassociation.
package gdlearn
