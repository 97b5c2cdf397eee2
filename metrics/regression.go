package metrics

import (
	"math"

	"github.com/YuminosukeSato/scitree/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// residuals は yTrue - yPred を返す
func residuals(op string, yTrue, yPred *mat.VecDense) ([]float64, error) {
	n, err := checkPair(op, yTrue, yPred)
	if err != nil {
		return nil, err
	}
	r := make([]float64, n)
	for i := range r {
		r[i] = yTrue.AtVec(i) - yPred.AtVec(i)
	}
	return r, nil
}

// MSE は平均二乗誤差を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	r, err := residuals("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return floats.Dot(r, r) / float64(len(r)), nil
}

// MSEMatrix computes MSE on n×1 matrices, e.g. the output of Predict.
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()
	switch {
	case rTrue == 0 || cTrue == 0:
		return 0, errors.NewValueError("MSEMatrix", "empty matrix")
	case rTrue != rPred || cTrue != cPred:
		return 0, errors.NewDimensionError("MSEMatrix", rTrue, rPred, 0)
	case cTrue != 1:
		return 0, errors.NewValueError("MSEMatrix", "must be a column vector (n×1 matrix)")
	}
	return MSE(firstColumn(yTrue), firstColumn(yPred))
}

// RMSE は MSE の平方根
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	r, err := residuals("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return floats.Norm(r, 1) / float64(len(r)), nil
}

// R2Score は決定係数 1 - RSS/TSS を計算する。
// yTrue が定数のとき TSS = 0 となりエラーを返す。
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	r, err := residuals("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	truth := make([]float64, len(r))
	for i := range truth {
		truth[i] = yTrue.AtVec(i)
	}
	mean := stat.Mean(truth, nil)

	var tss float64
	for _, v := range truth {
		tss += (v - mean) * (v - mean)
	}
	if tss == 0 {
		return 0, errors.Newf("R2Score: total sum of squares is zero (no variance in yTrue)")
	}
	return 1 - floats.Dot(r, r)/tss, nil
}

// MAPE は平均絶対パーセント誤差。yTrue = 0 の行は除外する。
func MAPE(yTrue, yPred *mat.VecDense) (float64, error) {
	r, err := residuals("MAPE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	var sum float64
	valid := 0
	for i, d := range r {
		if y := yTrue.AtVec(i); y != 0 {
			sum += math.Abs(d) / math.Abs(y)
			valid++
		}
	}
	if valid == 0 {
		return 0, errors.Newf("MAPE: all yTrue values are zero")
	}
	return sum / float64(valid) * 100, nil
}

// ExplainedVarianceScore は 1 - Var(yTrue - yPred) / Var(yTrue)
func ExplainedVarianceScore(yTrue, yPred *mat.VecDense) (float64, error) {
	r, err := residuals("ExplainedVarianceScore", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	truth := make([]float64, len(r))
	for i := range truth {
		truth[i] = yTrue.AtVec(i)
	}
	// 母分散で揃える
	_, varTrue := stat.PopMeanVariance(truth, nil)
	if varTrue == 0 {
		return 0, errors.Newf("ExplainedVarianceScore: no variance in yTrue")
	}
	_, varResid := stat.PopMeanVariance(r, nil)
	return 1 - varResid/varTrue, nil
}

// RegressionMetrics is the summary produced by RegressionReport.
type RegressionMetrics struct {
	MSE float64
	R2  float64
	MAE float64
}

// RegressionReport はMSE・R²・MAEをまとめて計算する。
// yTrueに分散がない場合R²はNaNとなり、UndefinedMetricWarningが発行される。
func RegressionReport(yTrue, yPred *mat.VecDense) (RegressionMetrics, error) {
	var r RegressionMetrics
	var err error
	if r.MSE, err = MSE(yTrue, yPred); err != nil {
		return r, errors.Wrap(err, "RegressionReport")
	}
	if r.MAE, err = MAE(yTrue, yPred); err != nil {
		return r, errors.Wrap(err, "RegressionReport")
	}
	if r.R2, err = R2Score(yTrue, yPred); err != nil {
		r.R2 = math.NaN()
		errors.Warn(errors.NewUndefinedMetricWarning("r2", "no variance in yTrue", r.R2))
	}
	return r, nil
}
