// Package preprocessing provides feature transformers applied by callers
// before training.
package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/gdlearn/core/model"
	"github.com/YuminosukeSato/gdlearn/core/parallel"
)

const (
	// minScale is the standard deviation below which a feature is treated as
	// constant and left unscaled.
	minScale = 1e-8

	// parallelThreshold is the row count above which Transform fans out.
	parallelThreshold = 1000
)

// StandardScaler はデータを平均0、標準偏差1に変換する標準化スケーラー
//
// 統計量は学習データのみから計算し（母標準偏差）、テストデータには
// Transform で同じ値を適用する。
type StandardScaler struct {
	state *model.StateManager

	// Mean は各特徴量の平均値
	Mean []float64

	// Scale は各特徴量の標準偏差（ほぼ0の場合は1）
	Scale []float64

	// WithMean は平均を引くかどうか (デフォルト: true)
	WithMean bool

	// WithStd は標準偏差で割るかどうか (デフォルト: true)
	WithStd bool
}

// NewStandardScaler は新しいStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	XTrain, err := scaler.FitTransform(XTrain)
//	XTest, err := scaler.Transform(XTest)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		state:    model.NewStateManager(),
		WithMean: withMean,
		WithStd:  withStd,
	}
}

// NewStandardScalerDefault はデフォルト設定でStandardScalerを作成する
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// Fit は訓練データから統計情報（平均、標準偏差）を計算する
func (s *StandardScaler) Fit(X [][]float64) error {
	c, err := model.ValidateMatrix("StandardScaler.Fit", X)
	if err != nil {
		return err
	}

	mean := make([]float64, c)
	scale := make([]float64, c)
	col := make([]float64, len(X))
	for j := 0; j < c; j++ {
		for i, row := range X {
			col[i] = row[j]
		}
		m, std := stat.PopMeanStdDev(col, nil)

		if s.WithMean {
			mean[j] = m
		}
		scale[j] = 1.0
		// 標準偏差が0に近い場合は1のまま（ゼロ除算を避ける）
		if s.WithStd && std >= minScale {
			scale[j] = std
		}
	}

	_ = s.state.WithStateMut(func() error {
		s.Mean = mean
		s.Scale = scale
		return nil
	})
	s.state.MarkFitted(c, len(X))
	return nil
}

// Transform は学習済みの統計情報を使ってデータを標準化する
func (s *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	return s.apply("Transform", X, func(v float64, j int) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	})
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(X [][]float64) ([][]float64, error) {
	return s.apply("InverseTransform", X, func(v float64, j int) float64 {
		return v*s.Scale[j] + s.Mean[j]
	})
}

func (s *StandardScaler) apply(method string, X [][]float64, f func(v float64, j int) float64) ([][]float64, error) {
	if err := s.state.RequireFitted("StandardScaler", method); err != nil {
		return nil, err
	}
	nFeatures, _ := s.state.GetDimensions()
	if err := model.ValidateRows("StandardScaler."+method, X, nFeatures); err != nil {
		return nil, err
	}

	result := make([][]float64, len(X))
	_ = s.state.WithState(func() error {
		// 各行は独立しているので大きな入力は行範囲ごとに並列処理する
		parallel.ParallelizeWithThreshold(len(X), parallelThreshold, func(start, end int) {
			for i := start; i < end; i++ {
				out := make([]float64, len(X[i]))
				for j, v := range X[i] {
					out[j] = f(v, j)
				}
				result[i] = out
			}
		})
		return nil
	})
	return result, nil
}

// IsFitted reports whether Fit has succeeded.
func (s *StandardScaler) IsFitted() bool {
	return s.state.IsFitted()
}

// GetParams はスケーラーのパラメータを取得する
func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"with_mean": s.WithMean,
		"with_std":  s.WithStd,
	}
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
	}
	nFeatures, _ := s.state.GetDimensions()
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)",
		s.WithMean, s.WithStd, nFeatures)
}
