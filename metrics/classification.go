// Package metrics は二値分類の評価指標を提供します。
// 陽性クラスはラベル1です。すべての指標は[0,1]の範囲のスカラーを返し、
// 分母が0になる退化ケースではエラーではなく0を返して
// UndefinedMetricWarningを発生させます（scikit-learn互換の挙動）。
package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/modeleval/pkg/errors"
)

// validateBinary は二値分類指標の入力検証を行う
func validateBinary(op string, yTrue, yPred *mat.VecDense) error {
	if yTrue == nil || yPred == nil || yTrue.Len() == 0 {
		return errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != yTrue.Len() {
		return errors.NewDimensionError(op, yTrue.Len(), yPred.Len(), 0)
	}
	for i := 0; i < yTrue.Len(); i++ {
		if t := yTrue.AtVec(i); t != 0 && t != 1 {
			return errors.NewValueError(op, "labels must be binary (0 or 1)")
		}
		if p := yPred.AtVec(i); p != 0 && p != 1 {
			return errors.NewValueError(op, "labels must be binary (0 or 1)")
		}
	}
	return nil
}

// ConfusionMatrix は混同行列の4成分 (tp, fp, tn, fn) を計算する
func ConfusionMatrix(yTrue, yPred *mat.VecDense) (tp, fp, tn, fn int, err error) {
	if err := validateBinary("ConfusionMatrix", yTrue, yPred); err != nil {
		return 0, 0, 0, 0, err
	}
	for i := 0; i < yTrue.Len(); i++ {
		t := yTrue.AtVec(i)
		p := yPred.AtVec(i)
		switch {
		case t == 1 && p == 1:
			tp++
		case t == 0 && p == 1:
			fp++
		case t == 0 && p == 0:
			tn++
		default:
			fn++
		}
	}
	return tp, fp, tn, fn, nil
}

// Accuracy は正解率を計算する
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := validateBinary("Accuracy", yTrue, yPred); err != nil {
		return 0, err
	}
	correct := 0
	for i := 0; i < yTrue.Len(); i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(yTrue.Len()), nil
}

// Precision は適合率 tp/(tp+fp) を計算する
// 陽性クラスの予測が一つもない場合は警告を発生させて0を返す
func Precision(yTrue, yPred *mat.VecDense) (float64, error) {
	tp, fp, _, _, err := ConfusionMatrix(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if tp+fp == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("precision", "no predicted positives", 0))
		return 0, nil
	}
	return float64(tp) / float64(tp+fp), nil
}

// Recall は再現率 tp/(tp+fn) を計算する
// 陽性クラスのサンプルが一つもない場合は警告を発生させて0を返す
func Recall(yTrue, yPred *mat.VecDense) (float64, error) {
	tp, _, _, fn, err := ConfusionMatrix(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if tp+fn == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("recall", "no true positives in sample", 0))
		return 0, nil
	}
	return float64(tp) / float64(tp+fn), nil
}

// F1Score は適合率と再現率の調和平均 2*P*R/(P+R) を計算する
// 適合率と再現率が共に0の場合は警告を発生させて0を返す
func F1Score(yTrue, yPred *mat.VecDense) (float64, error) {
	tp, fp, _, fn, err := ConfusionMatrix(yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// 2*tp/(2*tp+fp+fn) は P,R 経由の定義と等価で、一度の走査で済む
	denom := 2*tp + fp + fn
	if denom == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("f1", "no positives in truth or prediction", 0))
		return 0, nil
	}
	if tp == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("f1", "precision and recall are both zero", 0))
		return 0, nil
	}
	return 2 * float64(tp) / float64(denom), nil
}

// toVec は n×1 行列を VecDense に変換する
func toVec(op string, m mat.Matrix) (*mat.VecDense, error) {
	if m == nil {
		return nil, errors.NewValueError(op, "nil matrix")
	}
	r, c := m.Dims()
	if r == 0 {
		return nil, errors.NewValueError(op, "empty matrix")
	}
	if c != 1 {
		return nil, errors.NewValueError(op, "must be a column vector (n×1 matrix)")
	}
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v, nil
}

// AccuracyMatrix は行列形式の入力に対してAccuracyを計算する
func AccuracyMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	tv, err := toVec("AccuracyMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	pv, err := toVec("AccuracyMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return Accuracy(tv, pv)
}

// PrecisionMatrix は行列形式の入力に対してPrecisionを計算する
func PrecisionMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	tv, err := toVec("PrecisionMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	pv, err := toVec("PrecisionMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return Precision(tv, pv)
}

// RecallMatrix は行列形式の入力に対してRecallを計算する
func RecallMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	tv, err := toVec("RecallMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	pv, err := toVec("RecallMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return Recall(tv, pv)
}

// F1ScoreMatrix は行列形式の入力に対してF1Scoreを計算する
func F1ScoreMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	tv, err := toVec("F1ScoreMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	pv, err := toVec("F1ScoreMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return F1Score(tv, pv)
}
