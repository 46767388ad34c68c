package model

import (
	"github.com/YuminosukeSato/gdlearn/pkg/errors"
)

// ValidateTrainingData checks a feature matrix and its labels before any model
// state is touched. It returns the common row width.
//
// Checks, in order: equal lengths (DimensionError on axis 0), non-empty
// (EmptyDatasetError), at least one column (ValueError), identical row
// widths (DimensionError on axis 1).
func ValidateTrainingData[Y any](op string, X [][]float64, y []Y) (int, error) {
	if len(X) != len(y) {
		return 0, errors.NewDimensionError(op, len(X), len(y), 0)
	}
	return ValidateMatrix(op, X)
}

// ValidateMatrix checks that X is non-empty and rectangular and returns its width.
func ValidateMatrix(op string, X [][]float64) (int, error) {
	if len(X) == 0 {
		return 0, errors.NewEmptyDatasetError(op)
	}
	width := len(X[0])
	if width == 0 {
		return 0, errors.NewValueError(op, "rows must have at least one feature")
	}
	for _, row := range X[1:] {
		if len(row) != width {
			return 0, errors.NewDimensionError(op, width, len(row), 1)
		}
	}
	return width, nil
}

// ValidateRows checks that every row of X has exactly nFeatures columns.
// An empty X is valid and yields no predictions.
func ValidateRows(op string, X [][]float64, nFeatures int) error {
	for _, row := range X {
		if len(row) != nFeatures {
			return errors.NewDimensionError(op, nFeatures, len(row), 1)
		}
	}
	return nil
}

// ValidateScoreInput checks the shared Score preconditions: equal lengths and
// at least one sample.
func ValidateScoreInput[Y any](op string, X [][]float64, y []Y) error {
	if len(X) != len(y) {
		return errors.NewDimensionError(op, len(X), len(y), 0)
	}
	if len(y) == 0 {
		return errors.NewEmptyDatasetError(op)
	}
	return nil
}

// CopyMatrix returns a deep copy of X.
func CopyMatrix(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
