package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Estimator は学習と予測の両方を行うモデル
type Estimator interface {
	Fitter
	Predictor
}

// Scorer はテストデータに対するスコアを計算するモデル
type Scorer interface {
	// Score は分類器なら正解率、回帰器なら決定係数R²を返す
	Score(X, y mat.Matrix) (float64, error)
}
