// Package model provides the capability interfaces shared by every
// estimator in modeleval. Concrete models implement Fitter and
// Predictor; evaluation code accepts the narrowest interface it needs.
package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
// 入力は学習時と同じ列順の特徴量行列で、1行につき1つの予測ラベルを返す
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Estimator は学習と予測の両方が可能なモデルのインターフェース
type Estimator interface {
	Fitter
	Predictor
}

// Classifier は分類モデルのインターフェース
type Classifier interface {
	Estimator

	// PredictProba は各クラスに対する確率推定を返す
	PredictProba(X mat.Matrix) (mat.Matrix, error)

	// Classes は学習時に観測されたクラスラベルをソート済みで返す
	Classes() []float64
}
