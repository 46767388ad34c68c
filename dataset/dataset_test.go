package dataset

import (
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/gdlearn/pkg/errors"
)

func TestParseCSV(t *testing.T) {
	t.Run("header and rows", func(t *testing.T) {
		table, err := ParseCSV(strings.NewReader("a,b,c\n1,2,3\n4,5,6\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, table.Header)
		assert.Equal(t, [][]string{{"1", "2", "3"}, {"4", "5", "6"}}, table.Rows)
	})

	t.Run("quotes, trimming and blank lines", func(t *testing.T) {
		text := "name,comment\r\n\r\n  x ,  \"hello, \"\"world\"\"\"\n\ny,plain\n"
		table, err := ParseCSV(strings.NewReader(text))
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"x", `hello, "world"`}, {"y", "plain"}}, table.Rows)
	})

	t.Run("no header, custom delimiter, no trim", func(t *testing.T) {
		table, err := ParseCSV(strings.NewReader("1; 2\n3;4\n"),
			WithHeader(false), WithDelimiter(';'), WithTrim(false))
		require.NoError(t, err)
		assert.Nil(t, table.Header)
		assert.Equal(t, [][]string{{"1", " 2"}, {"3", "4"}}, table.Rows)
	})

	t.Run("quote inside an unquoted field is literal", func(t *testing.T) {
		table, err := ParseCSV(strings.NewReader("a\"b,c\"\n"), WithHeader(false))
		require.NoError(t, err)
		assert.Equal(t, [][]string{{`a"b`, `c"`}}, table.Rows)
	})

	t.Run("empty input", func(t *testing.T) {
		table, err := ParseCSV(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, table.Rows)
		assert.Nil(t, table.Header)
	})
}

func TestToFloatRows(t *testing.T) {
	nums, err := ToFloatRows([][]string{{"1", "2", "3"}, {"4", "5.5", "-6"}})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5.5, -6}}, nums)

	_, err = ToFloatRows([][]string{{"1"}, {"x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1 column 0")
}

func TestIris(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "iris.csv")
	content := "sepal_length,sepal_width,petal_length,petal_width,species\n" +
		"5.1,3.5,1.4,0.2,setosa\n" +
		"7.0,3.2,4.7,1.4,versicolor\n" +
		"bad,row\n" +
		"6.3,3.3,6.0,2.5,virginica\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	table, err := LoadIrisCSV(path)
	require.NoError(t, err)
	assert.Len(t, table.Header, 5)

	X, y, err := IrisToXY(table.Rows)
	require.NoError(t, err)
	assert.Equal(t, []string{"setosa", "versicolor", "virginica"}, y)
	assert.Equal(t, []float64{5.1, 3.5, 1.4, 0.2}, X[0])

	_, err = LoadIrisCSV(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestToyDataset(t *testing.T) {
	toy := ToyDataset()
	assert.Len(t, toy.XTrain, 6)
	assert.Equal(t, []string{"A", "B"}, toy.YTest)
}

func TestTrainTestSplit(t *testing.T) {
	X := make([]int, 10)
	y := make([]string, 10)
	for i := range X {
		X[i] = i
		y[i] = string(rune('a' + i))
	}

	split, err := TrainTestSplit(X, y, 0.2, 42)
	require.NoError(t, err)
	assert.Len(t, split.XTest, 2)
	assert.Len(t, split.XTrain, 8)

	// labels stay aligned with their samples
	for i, v := range split.XTrain {
		assert.Equal(t, string(rune('a'+v)), split.YTrain[i])
	}

	// every index appears exactly once
	all := append(append([]int{}, split.XTrain...), split.XTest...)
	sort.Ints(all)
	assert.Equal(t, X, all)

	again, err := TrainTestSplit(X, y, 0.2, 42)
	require.NoError(t, err)
	assert.Equal(t, split, again)

	// at least one test sample even for tiny test sizes
	small, err := TrainTestSplit(X, y, 0.01, 7)
	require.NoError(t, err)
	assert.Len(t, small.XTest, 1)
}

func TestTrainTestSplit_KnownPermutation(t *testing.T) {
	// n=3, seed=0: s1=1013904223 -> j=s1%3=1, swap idx[2],idx[1] -> [0 2 1]
	// s2=(1013904223*1664525+1013904223) mod 2^32 = 1196435762 -> j=s2%2=0,
	// swap idx[1],idx[0] -> [2 0 1]. nTest=max(1,floor(3*0.34))=1.
	split, err := TrainTestSplit([]int{0, 1, 2}, []int{0, 1, 2}, 0.34, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, split.XTest)
	assert.Equal(t, []int{0, 1}, split.XTrain)
}

func TestTrainTestSplit_Errors(t *testing.T) {
	_, err := TrainTestSplit([]int{1, 2}, []int{1}, 0.2, 1)
	var de *errors.DimensionError
	assert.True(t, errors.As(err, &de))

	_, err = TrainTestSplit([]int{}, []int{}, 0.2, 1)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, err = TrainTestSplit([]int{1}, []int{1}, 1.5, 1)
	var ipe *errors.InvalidParameterError
	assert.True(t, errors.As(err, &ipe))
}

func TestMakeLinear(t *testing.T) {
	data, err := MakeLinear(200, 3, 0, 5)
	require.NoError(t, err)
	require.Len(t, data.X, 200)
	require.Len(t, data.TrueWeights, 3)

	for j, w := range data.TrueWeights {
		assert.GreaterOrEqual(t, math.Abs(w), 0.5, "weight %d", j)
		assert.LessOrEqual(t, math.Abs(w), 3.0, "weight %d", j)
	}
	for i, row := range data.X {
		want := data.TrueBias
		for j, v := range row {
			assert.GreaterOrEqual(t, v, -2.0)
			assert.LessOrEqual(t, v, 2.0)
			want += data.TrueWeights[j] * v
		}
		assert.InDelta(t, want, data.Y[i], 1e-12)
	}

	again, err := MakeLinear(200, 3, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, data, again)

	_, err = MakeLinear(0, 3, 0.1, 1)
	assert.Error(t, err)
	_, err = MakeLinear(10, 3, -1, 1)
	assert.Error(t, err)
}

func TestMakeLogistic(t *testing.T) {
	X, y := MakeLogistic(400, 123)
	require.Len(t, X, 400)

	ones := 0
	for i, row := range X {
		require.Len(t, row, 2)
		assert.True(t, row[0] >= -2 && row[0] < 2)
		assert.True(t, y[i] == 0 || y[i] == 1)
		ones += int(y[i])
	}
	assert.Greater(t, ones, 100)
	assert.Less(t, ones, 300)

	// First draw of seed 0: s=1013904223 -> x1 = s/2^32*4-2.
	X0, _ := MakeLogistic(1, 0)
	assert.InDelta(t, 1013904223.0/4294967296*4-2, X0[0][0], 1e-15)

	X2, y2 := MakeLogistic(400, 123)
	assert.Equal(t, X, X2)
	assert.Equal(t, y, y2)
}
