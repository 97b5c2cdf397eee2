package metrics

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/scitree/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// logLossEps はlog(0)を避けるためのクリッピング幅
const logLossEps = 1e-15

func vecLen(v *mat.VecDense) int {
	if v == nil || v.IsEmpty() {
		return 0
	}
	return v.Len()
}

// checkPair は2つのベクトルが空でなく同じ長さであることを確認する
func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	n := vecLen(yTrue)
	if n == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	if m := vecLen(yPred); m != n {
		return 0, errors.NewDimensionError(op, n, m, 0)
	}
	return n, nil
}

func checkBinary(op string, y *mat.VecDense) error {
	for i := 0; i < y.Len(); i++ {
		if v := y.AtVec(i); v != 0 && v != 1 {
			return errors.NewValueError(op, "labels must be 0 or 1")
		}
	}
	return nil
}

// Accuracy は正解率を計算する
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("Accuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ClassificationError は誤分類率 1 - Accuracy を計算する
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, errors.Wrap(err, "ClassificationError")
	}
	return 1 - acc, nil
}

// AUC はROC曲線下面積をMann-Whitney統計量として計算する。
// 同順位のスコアは0.5として数える。片方のクラスしか存在しない場合は0.5を返す。
func AUC(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("AUC", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if err := checkBinary("AUC", yTrue); err != nil {
		return 0, err
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return yPred.AtVec(idx[a]) < yPred.AtVec(idx[b]) })

	// 平均順位で同順位を処理する
	var nPos, nNeg int
	var rankSum float64
	for i := 0; i < n; {
		j := i
		for j+1 < n && yPred.AtVec(idx[j+1]) == yPred.AtVec(idx[i]) {
			j++
		}
		rank := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			if yTrue.AtVec(idx[k]) == 1 {
				nPos++
				rankSum += rank
			} else {
				nNeg++
			}
		}
		i = j + 1
	}

	if nPos == 0 || nNeg == 0 {
		return 0.5, nil
	}
	u := rankSum - float64(nPos)*float64(nPos+1)/2
	return u / (float64(nPos) * float64(nNeg)), nil
}

// AUCMatrix は行列形式の入力に対してAUCを計算する。先頭列のみを使う。
func AUCMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError("AUCMatrix", "nil matrix")
	}
	if d, ok := yTrue.(*mat.Dense); ok && d.IsEmpty() {
		return 0, errors.NewValueError("AUCMatrix", "empty matrix")
	}
	if d, ok := yPred.(*mat.Dense); ok && d.IsEmpty() {
		return 0, errors.NewValueError("AUCMatrix", "empty matrix")
	}
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()
	if rTrue == 0 || cTrue == 0 || cPred == 0 {
		return 0, errors.NewValueError("AUCMatrix", "empty matrix")
	}
	if rTrue != rPred {
		return 0, errors.NewDimensionError("AUCMatrix", rTrue, rPred, 0)
	}
	return AUC(firstColumn(yTrue), firstColumn(yPred))
}

func firstColumn(m mat.Matrix) *mat.VecDense {
	r, _ := m.Dims()
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v
}

// BinaryLogLoss は二値交差エントロピーを計算する。予測確率は[eps, 1-eps]にクリップする。
func BinaryLogLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("BinaryLogLoss", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if err := checkBinary("BinaryLogLoss", yTrue); err != nil {
		return 0, err
	}
	var sum float64
	for i := 0; i < n; i++ {
		p := errors.ClipValue(yPred.AtVec(i), logLossEps, 1-logLossEps)
		y := yTrue.AtVec(i)
		sum += y*math.Log(p) + (1-y)*math.Log(1-p)
	}
	return -sum / float64(n), nil
}

// ConfusionMatrix は陽性クラスに対する2x2の混同行列
type ConfusionMatrix struct {
	TP, TN, FP, FN int
}

// NewConfusionMatrix はラベル列から混同行列を作る。positive以外の値はすべて陰性として数える。
func NewConfusionMatrix(yTrue, yPred []string, positive string) (ConfusionMatrix, error) {
	var cm ConfusionMatrix
	if len(yTrue) == 0 {
		return cm, errors.NewValueError("NewConfusionMatrix", "empty labels")
	}
	if len(yPred) != len(yTrue) {
		return cm, errors.NewDimensionError("NewConfusionMatrix", len(yTrue), len(yPred), 0)
	}
	for i := range yTrue {
		actual, predicted := yTrue[i] == positive, yPred[i] == positive
		switch {
		case actual && predicted:
			cm.TP++
		case actual:
			cm.FN++
		case predicted:
			cm.FP++
		default:
			cm.TN++
		}
	}
	return cm, nil
}

// Total returns the number of samples counted.
func (cm ConfusionMatrix) Total() int { return cm.TP + cm.TN + cm.FP + cm.FN }

// ClassificationMetrics is the summary produced by ClassificationReport.
// A ratio with a zero denominator is NaN.
type ClassificationMetrics struct {
	Accuracy    float64
	Recall      float64
	Specificity float64
	Precision   float64
	F1Score     float64
	// AUC is the single-threshold estimate (TP + FN/2) / (TP + FP + FN).
	AUC float64
}

// ClassificationReport は混同行列から二値分類の指標をまとめて計算する
func ClassificationReport(yTrue, yPred []string, positive string) (ClassificationMetrics, error) {
	cm, err := NewConfusionMatrix(yTrue, yPred, positive)
	if err != nil {
		return ClassificationMetrics{}, err
	}
	tp, tn, fp, fn := float64(cm.TP), float64(cm.TN), float64(cm.FP), float64(cm.FN)
	return ClassificationMetrics{
		Accuracy:    ratio("accuracy", tp+tn, tp+tn+fp+fn),
		Recall:      ratio("recall", tp, tp+fn),
		Specificity: ratio("specificity", tn, tn+fp),
		Precision:   ratio("precision", tp, tp+fp),
		F1Score:     ratio("f1_score", 2*tp, 2*tp+fp+fn),
		AUC:         ratio("auc", tp+0.5*fn, tp+fp+fn),
	}, nil
}

// ratio returns num/den, or NaN with an UndefinedMetricWarning when den is 0.
func ratio(metric string, num, den float64) float64 {
	v, ok := errors.SafeDivide(num, den)
	if !ok {
		errors.Warn(errors.NewUndefinedMetricWarning(metric, "zero denominator", math.NaN()))
		return math.NaN()
	}
	return v
}
