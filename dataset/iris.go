package dataset

import (
	"os"
	"strconv"

	"github.com/YuminosukeSato/gdlearn/pkg/errors"
)

// DefaultIrisPath is where the CLI looks for the Iris CSV.
const DefaultIrisPath = "data/iris.csv"

// LoadIrisCSV reads the Iris CSV at path. A missing file is reported with a
// hint instead of a bare not-exist error.
func LoadIrisCSV(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf("dataset: missing %s; download the Iris CSV (sepal_length,sepal_width,petal_length,petal_width,species) first", path)
		}
		return nil, errors.Wrapf(err, "dataset: stat %s", path)
	}
	return ReadCSVFile(path)
}

// IrisToXY takes the four numeric measurements and the species label from
// each row. Rows with fewer than five columns are skipped.
func IrisToXY(rows [][]string) ([][]float64, []string, error) {
	X := make([][]float64, 0, len(rows))
	y := make([]string, 0, len(rows))
	for i, r := range rows {
		if len(r) < 5 {
			continue
		}
		features := make([]float64, 4)
		for j := 0; j < 4; j++ {
			v, err := strconv.ParseFloat(r[j], 64)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "dataset: iris row %d column %d", i, j)
			}
			features[j] = v
		}
		X = append(X, features)
		y = append(y, r[4])
	}
	return X, y, nil
}
