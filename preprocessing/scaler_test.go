package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/gdlearn/core/model"
	"github.com/YuminosukeSato/gdlearn/pkg/errors"
)

var _ model.Transformer = (*StandardScaler)(nil)

func TestStandardScaler_FitTransform(t *testing.T) {
	X := [][]float64{
		{1, 10, 5},
		{2, 20, 5},
		{3, 30, 5},
		{4, 40, 5},
	}

	scaler := NewStandardScalerDefault()
	Xs, err := scaler.FitTransform(X)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{2.5, 25, 5}, scaler.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(1.25), scaler.Scale[0], 1e-12)
	// constant column keeps scale 1
	assert.Equal(t, 1.0, scaler.Scale[2])

	for j := 0; j < 2; j++ {
		col := []float64{Xs[0][j], Xs[1][j], Xs[2][j], Xs[3][j]}
		mean, std := stat.PopMeanStdDev(col, nil)
		assert.InDelta(t, 0, mean, 1e-12)
		assert.InDelta(t, 1, std, 1e-12)
	}
	for i := range Xs {
		assert.Equal(t, 0.0, Xs[i][2])
	}

	// input is not modified
	assert.Equal(t, 1.0, X[0][0])
}

func TestStandardScaler_InverseTransform(t *testing.T) {
	X := [][]float64{{-1, 2}, {0.5, 4}, {3, 9}}
	scaler := NewStandardScalerDefault()
	Xs, err := scaler.FitTransform(X)
	require.NoError(t, err)

	back, err := scaler.InverseTransform(Xs)
	require.NoError(t, err)
	for i := range X {
		assert.InDeltaSlice(t, X[i], back[i], 1e-12)
	}
}

func TestStandardScaler_TrainStatisticsOnly(t *testing.T) {
	scaler := NewStandardScalerDefault()
	require.NoError(t, scaler.Fit([][]float64{{0}, {2}}))

	out, err := scaler.Transform([][]float64{{10}})
	require.NoError(t, err)
	assert.InDelta(t, 9.0, out[0][0], 1e-12)
}

func TestStandardScaler_Options(t *testing.T) {
	X := [][]float64{{1}, {3}}

	noMean := NewStandardScaler(false, true)
	out, err := noMean.FitTransform(X)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out[0][0], 1e-12)

	noStd := NewStandardScaler(true, false)
	out, err = noStd.FitTransform(X)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, out[0][0], 1e-12)
	assert.Contains(t, noStd.String(), "n_features=1")
}

func TestStandardScaler_Errors(t *testing.T) {
	scaler := NewStandardScalerDefault()

	_, err := scaler.Transform([][]float64{{1}})
	var nfe *errors.NotFittedError
	assert.True(t, errors.As(err, &nfe))

	assert.True(t, errors.Is(scaler.Fit(nil), errors.ErrEmptyData))

	require.NoError(t, scaler.Fit([][]float64{{1, 2}, {3, 4}}))
	_, err = scaler.Transform([][]float64{{1, 2, 3}})
	var de *errors.DimensionError
	assert.True(t, errors.As(err, &de))
	_, err = scaler.InverseTransform([][]float64{{1}})
	assert.True(t, errors.As(err, &de))
}

func TestStandardScaler_LargeInput(t *testing.T) {
	n := 2500
	X := make([][]float64, n)
	for i := range X {
		X[i] = []float64{float64(i), float64(2*i) - 7}
	}

	scaler := NewStandardScalerDefault()
	Xs, err := scaler.FitTransform(X)
	require.NoError(t, err)
	require.Len(t, Xs, n)

	col := make([]float64, n)
	for i := range Xs {
		require.Len(t, Xs[i], 2)
		col[i] = Xs[i][1]
	}
	mean, std := stat.PopMeanStdDev(col, nil)
	assert.InDelta(t, 0, mean, 1e-9)
	assert.InDelta(t, 1, std, 1e-9)

	back, err := scaler.InverseTransform(Xs)
	require.NoError(t, err)
	for _, i := range []int{0, 999, 1000, 2499} {
		assert.InDeltaSlice(t, X[i], back[i], 1e-9)
	}
}
