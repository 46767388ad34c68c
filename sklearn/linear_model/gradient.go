package linear_model

import (
	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/gdlearn/pkg/errors"
)

// GradientTask is the unit of work handed to one gradient worker: a row chunk,
// its labels and a private snapshot of the current parameters.
type GradientTask struct {
	X       [][]float64
	Y       []float64
	Weights []float64
	Bias    float64
}

// PartialGradient holds the unscaled gradient sums of one chunk together with
// the summed loss of the same rows under the task's parameters.
type PartialGradient struct {
	GradW []float64
	GradB float64
	Loss  float64
}

// GradientFunc computes the partial gradient of a task.
type GradientFunc func(task GradientTask) (PartialGradient, error)

func validateTask(op string, task GradientTask) error {
	if len(task.X) != len(task.Y) {
		return errors.NewDimensionError(op, len(task.X), len(task.Y), 0)
	}
	for _, row := range task.X {
		if len(row) != len(task.Weights) {
			return errors.NewDimensionError(op, len(task.Weights), len(row), 1)
		}
	}
	return nil
}

// ComputePartialGradient computes the log-loss gradient of a chunk for binary
// logistic regression:
//
//	p     = sigmoid(w·x + b)
//	GradW = Σ (p - y) x
//	GradB = Σ (p - y)
//
// It never mutates the task and is safe to call from many goroutines.
func ComputePartialGradient(task GradientTask) (PartialGradient, error) {
	if err := validateTask("ComputePartialGradient", task); err != nil {
		return PartialGradient{}, err
	}

	gradW := make([]float64, len(task.Weights))
	var gradB, loss float64
	for i, xi := range task.X {
		p := errors.StableSigmoid(floats.Dot(task.Weights, xi) + task.Bias)
		y := task.Y[i]
		e := p - y
		floats.AddScaled(gradW, e, xi)
		gradB += e
		loss -= y*errors.StabilizeLog(p) + (1-y)*errors.StabilizeLog(1-p)
	}
	return PartialGradient{GradW: gradW, GradB: gradB, Loss: loss}, nil
}

// squaredErrorGradient is the least-squares counterpart used by
// LinearRegression. Loss is the sum of squared residuals.
func squaredErrorGradient(task GradientTask) (PartialGradient, error) {
	if err := validateTask("LinearRegression.gradient", task); err != nil {
		return PartialGradient{}, err
	}

	gradW := make([]float64, len(task.Weights))
	var gradB, loss float64
	for i, xi := range task.X {
		e := floats.Dot(task.Weights, xi) + task.Bias - task.Y[i]
		floats.AddScaled(gradW, e, xi)
		gradB += e
		loss += e * e
	}
	return PartialGradient{GradW: gradW, GradB: gradB, Loss: loss}, nil
}

// applyUpdate performs w -= scale*gradW, b -= scale*gradB in place and
// returns the new bias.
func applyUpdate(w []float64, b float64, g PartialGradient, scale float64) float64 {
	floats.AddScaled(w, -scale, g.GradW)
	return b - scale*g.GradB
}
