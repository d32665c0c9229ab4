package m

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

func checkPair(target, predicted []float64) error {
	if len(target) != len(predicted) {
		return fmt.Errorf("%w: target has %d elements, predicted has %d", ErrShapeMismatch, len(target), len(predicted))
	}
	for i, p := range predicted {
		if !(p > 0 && p < 1) {
			return fmt.Errorf("%w: predicted[%d] = %v, want 0 < p < 1", ErrDomain, i, p)
		}
	}
	return nil
}

// DCost returns the derivative of the mean binary cross-entropy with respect
// to each predicted value:
//
//	((1-t)/(1-p) - t/p) / n
//
// Every predicted value must lie strictly inside (0, 1). Neither input is
// modified.
func DCost(target, predicted []float64) ([]float64, error) {
	if err := checkPair(target, predicted); err != nil {
		return nil, err
	}
	grad := make([]float64, len(target))
	for i, t := range target {
		p := predicted[i]
		grad[i] = (1-t)/(1-p) - t/p
	}
	if len(grad) > 0 {
		floats.Scale(1/float64(len(grad)), grad)
	}
	return grad, nil
}

// Cost returns the mean binary cross-entropy of predicted against target.
// DCost is its gradient.
func Cost(target, predicted []float64) (float64, error) {
	if err := checkPair(target, predicted); err != nil {
		return 0, err
	}
	if len(target) == 0 {
		return 0, nil
	}
	terms := make([]float64, len(target))
	for i, t := range target {
		p := predicted[i]
		terms[i] = -(t*math.Log(p) + (1-t)*math.Log(1-p))
	}
	return floats.Sum(terms) / float64(len(terms)), nil
}

// Clamp returns a copy of predicted with every value moved into
// [eps, 1-eps], so that it satisfies DCost's domain.
func Clamp(predicted []float64, eps float64) []float64 {
	out := make([]float64, len(predicted))
	for i, p := range predicted {
		out[i] = math.Min(math.Max(p, eps), 1-eps)
	}
	return out
}
