package errors

import (
	"math"
)

// CheckScalar checks a single value and reports NaN or Inf as a
// NumericalInstabilityError.
func CheckScalar(operation string, value float64, row int) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewNumericalInstabilityError(operation, []float64{value}, row)
	}
	return nil
}

// CheckValues checks a slice of values. The reported row is the index of the
// first non-finite value.
func CheckValues(operation string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewNumericalInstabilityError(operation, []float64{v}, i)
		}
	}
	return nil
}

// CheckMatrix checks all values in a matrix. Trees do not impute missing
// values, so any NaN or Inf in the input is rejected up front.
func CheckMatrix(operation string, matrix interface{ At(int, int) float64 }, rows, cols int) error {
	for i := 0; i < rows; i++ {
		var unstableValues []float64
		for j := 0; j < cols; j++ {
			v := matrix.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				unstableValues = append(unstableValues, v)
				if len(unstableValues) >= 10 {
					break
				}
			}
		}
		if len(unstableValues) > 0 {
			return NewNumericalInstabilityError(operation, unstableValues, i)
		}
	}

	return nil
}

// SafeDivide performs division and reports whether the result is defined.
// A zero denominator yields (NaN, false) instead of a runtime fault or a
// silent Inf.
func SafeDivide(numerator, denominator float64) (float64, bool) {
	if denominator == 0 {
		return math.NaN(), false
	}
	return numerator / denominator, true
}

// ClipValue clips a value to the range [min, max].
func ClipValue(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
