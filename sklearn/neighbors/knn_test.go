package neighbors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/gdlearn/pkg/errors"
)

func toyData() ([][]float64, []string) {
	X := [][]float64{{1, 2}, {2, 3}, {3, 3}, {6, 7}, {7, 8}, {8, 9}}
	y := []string{"A", "A", "A", "B", "B", "B"}
	return X, y
}

func TestKNeighborsClassifier_ToyDataset(t *testing.T) {
	X, y := toyData()
	knn, err := NewKNeighborsClassifier[string](3)
	require.NoError(t, err)
	require.NoError(t, knn.Fit(X, y))

	preds, err := knn.Predict([][]float64{{2, 2}, {7, 7}})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, preds)
	assert.Equal(t, 2, knn.NFeatures())
	assert.Equal(t, 3, knn.K())
	assert.True(t, knn.IsFitted())
}

func TestKNeighborsClassifier_SelfConsistency(t *testing.T) {
	X, y := toyData()
	knn, err := NewKNeighborsClassifier[string](1)
	require.NoError(t, err)
	require.NoError(t, knn.Fit(X, y))

	score, err := knn.Score(X, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestKNeighborsClassifier_TieBreakFirstEncountered(t *testing.T) {
	// Query at 0: distances 1 (B), 1 (A), 2 (A), 2 (B). k=2 keeps the two
	// equidistant points in training order, giving one vote each; B wins
	// because it is met first.
	X := [][]float64{{1}, {-1}, {2}, {-2}}
	y := []string{"B", "A", "A", "B"}

	knn, err := NewKNeighborsClassifier[string](2)
	require.NoError(t, err)
	require.NoError(t, knn.Fit(X, y))

	got, err := knn.PredictOne([]float64{0})
	require.NoError(t, err)
	assert.Equal(t, "B", got)

	// Swapping the training order swaps the winner.
	require.NoError(t, knn.Fit([][]float64{{-1}, {1}, {2}, {-2}}, []string{"A", "B", "A", "B"}))
	got, err = knn.PredictOne([]float64{0})
	require.NoError(t, err)
	assert.Equal(t, "A", got)
}

func TestKNeighborsClassifier_KLargerThanDataset(t *testing.T) {
	knn, err := NewKNeighborsClassifier[int](10)
	require.NoError(t, err)
	require.NoError(t, knn.Fit([][]float64{{0}, {1}, {5}}, []int{1, 2, 2}))

	got, err := knn.PredictOne([]float64{0})
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestKNeighborsClassifier_MajorityBeatsNearest(t *testing.T) {
	knn, err := NewKNeighborsClassifier[string](3)
	require.NoError(t, err)
	require.NoError(t, knn.Fit([][]float64{{0}, {1}, {1.5}}, []string{"near", "far", "far"}))

	got, err := knn.PredictOne([]float64{0})
	require.NoError(t, err)
	assert.Equal(t, "far", got)
}

func TestKNeighborsClassifier_LabelVariant(t *testing.T) {
	X := [][]float64{{0, 0}, {0, 1}, {5, 5}, {5, 6}}
	y := []Label{NumberLabel(1), NumberLabel(1), StringLabel("setosa"), StringLabel("setosa")}

	knn, err := NewKNeighborsClassifier[Label](1)
	require.NoError(t, err)
	require.NoError(t, knn.Fit(X, y))

	preds, err := knn.Predict([][]float64{{0, 0.2}, {5, 5.4}})
	require.NoError(t, err)
	require.Len(t, preds, 2)
	assert.True(t, preds[0].IsNumber())
	assert.Equal(t, 1.0, preds[0].Num())
	assert.Equal(t, "1", preds[0].String())
	assert.Equal(t, "setosa", preds[1].Str())

	score, err := knn.Score(X, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestKNeighborsClassifier_KeyFunc(t *testing.T) {
	// Case-insensitive keys merge "a" and "A" into one class; the first
	// encountered spelling is returned.
	knn, err := NewKNeighborsClassifier[string](3, WithKeyFunc[string](strings.ToLower))
	require.NoError(t, err)
	require.NoError(t, knn.Fit(
		[][]float64{{0}, {1}, {2}, {3}},
		[]string{"b", "a", "A", "b"},
	))

	got, err := knn.PredictOne([]float64{1.1})
	require.NoError(t, err)
	assert.Equal(t, "a", got)
}

func TestKNeighborsClassifier_DefensiveCopy(t *testing.T) {
	X, y := toyData()
	knn, err := NewKNeighborsClassifier[string](3)
	require.NoError(t, err)
	require.NoError(t, knn.Fit(X, y))

	for i := range X {
		X[i][0], X[i][1] = 100, 100
		y[i] = "Z"
	}

	got, err := knn.PredictOne([]float64{2, 2})
	require.NoError(t, err)
	assert.Equal(t, "A", got)
}

func TestKNeighborsClassifier_Deterministic(t *testing.T) {
	X, y := toyData()
	knn, err := NewKNeighborsClassifier[string](3)
	require.NoError(t, err)
	require.NoError(t, knn.Fit(X, y))

	query := [][]float64{{2, 2}, {7, 7}, {4.5, 5}, {0, 0}}
	first, err := knn.Predict(query)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := knn.Predict(query)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestKNeighborsClassifier_Errors(t *testing.T) {
	t.Run("invalid k", func(t *testing.T) {
		for _, k := range []int{0, -1} {
			_, err := NewKNeighborsClassifier[string](k)
			var ipe *errors.InvalidParameterError
			require.True(t, errors.As(err, &ipe), "k=%d", k)
			assert.Equal(t, "k", ipe.ParamName)
		}
	})

	t.Run("length mismatch", func(t *testing.T) {
		knn, _ := NewKNeighborsClassifier[string](1)
		err := knn.Fit([][]float64{{1}, {2}}, []string{"A"})
		var de *errors.DimensionError
		assert.True(t, errors.As(err, &de))
		assert.False(t, knn.IsFitted())
	})

	t.Run("empty training set", func(t *testing.T) {
		knn, _ := NewKNeighborsClassifier[string](1)
		err := knn.Fit([][]float64{}, []string{})
		assert.True(t, errors.Is(err, errors.ErrEmptyData))
	})

	t.Run("not fitted", func(t *testing.T) {
		knn, _ := NewKNeighborsClassifier[string](1)
		_, err := knn.PredictOne([]float64{1})
		var nfe *errors.NotFittedError
		assert.True(t, errors.As(err, &nfe))
	})

	t.Run("query width mismatch", func(t *testing.T) {
		X, y := toyData()
		knn, _ := NewKNeighborsClassifier[string](3)
		require.NoError(t, knn.Fit(X, y))
		_, err := knn.PredictOne([]float64{1, 2, 3})
		var de *errors.DimensionError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, 2, de.Expected)
		assert.Equal(t, 3, de.Got)
	})

	t.Run("score policy", func(t *testing.T) {
		X, y := toyData()
		knn, _ := NewKNeighborsClassifier[string](3)
		require.NoError(t, knn.Fit(X, y))

		_, err := knn.Score(nil, nil)
		assert.True(t, errors.Is(err, errors.ErrEmptyData))

		_, err = knn.Score(X, y[:2])
		var de *errors.DimensionError
		assert.True(t, errors.As(err, &de))
	})

	t.Run("failed fit keeps previous state", func(t *testing.T) {
		X, y := toyData()
		knn, _ := NewKNeighborsClassifier[string](3)
		require.NoError(t, knn.Fit(X, y))

		require.Error(t, knn.Fit([][]float64{{1, 2}, {3}}, []string{"A", "B"}))
		got, err := knn.PredictOne([]float64{7, 7})
		require.NoError(t, err)
		assert.Equal(t, "B", got)
		assert.Equal(t, 2, knn.NFeatures())
	})
}

func BenchmarkKNeighborsClassifier_Predict(b *testing.B) {
	n := 1000
	X := make([][]float64, n)
	y := make([]int, n)
	for i := 0; i < n; i++ {
		X[i] = []float64{float64(i % 37), float64(i % 11), float64(i % 7)}
		y[i] = i % 3
	}
	knn, _ := NewKNeighborsClassifier[int](5)
	_ = knn.Fit(X, y)
	query := X[:50]

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = knn.Predict(query)
	}
}
