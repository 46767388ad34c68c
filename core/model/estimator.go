package model

// Fitter は学習可能なモデルのインターフェース
type Fitter[Y any] interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X [][]float64, y []Y) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor[P any] interface {
	// Predict は入力データに対する予測を行う
	Predict(X [][]float64) ([]P, error)
}

// Scorer はモデルの評価指標を計算するインターフェース。
// 回帰器は R²、分類器は正解率を返す。
type Scorer[Y any] interface {
	Score(X [][]float64, y []Y) (float64, error)
}

// Estimator は Fit / Predict / Score を揃えた教師あり学習モデル
type Estimator[Y any] interface {
	Fitter[Y]
	Predictor[Y]
	Scorer[Y]
}

// ParamGetter はハイパーパラメータを公開するモデル
type ParamGetter interface {
	GetParams() map[string]interface{}
}

// Transformer はデータ変換のインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X [][]float64) error

	// Transform はデータを変換する
	Transform(X [][]float64) ([][]float64, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X [][]float64) ([][]float64, error)
}
