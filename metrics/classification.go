package metrics

import (
	"github.com/YuminosukeSato/gdlearn/pkg/errors"
)

// Accuracy は正解率を計算する。ラベルは == で比較される。
func Accuracy[L comparable](yTrue, yPred []L) (float64, error) {
	if err := checkPair("Accuracy", len(yTrue), len(yPred)); err != nil {
		return 0, err
	}

	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// BinaryLogLoss は二値分類の交差エントロピー損失を計算する。
// yTrue は 0 または 1、yProba は陽性クラスの確率。log(0) はクリップされる。
func BinaryLogLoss(yTrue, yProba []float64) (float64, error) {
	if err := checkPair("BinaryLogLoss", len(yTrue), len(yProba)); err != nil {
		return 0, err
	}

	var sum float64
	for i, y := range yTrue {
		if y != 0 && y != 1 {
			return 0, errors.NewValueError("BinaryLogLoss", "labels must be 0 or 1")
		}
		p := yProba[i]
		sum -= y*errors.StabilizeLog(p) + (1-y)*errors.StabilizeLog(1-p)
	}
	return sum / float64(len(yTrue)), nil
}
