package rnd

import (
	"errors"
	"fmt"
)

// ErrBadWeights is returned when a weighted distribution cannot be
// built from the provided weights.
var ErrBadWeights = errors.New("invalid distribution weights")

// WeightedIndex is a discrete distribution over indices 0..n-1 using
// the Vose alias method. Sampling consumes exactly two draws from the
// underlying source (one for the column, one for the coin flip),
// which is part of the reproducibility contract: callers that skip a
// sample must call SkipN(2) instead.
type WeightedIndex struct {
	prob  []float64
	alias []int
}

// NewWeightedIndex builds an alias table from the given weights.
// Weights must be non-negative with a positive sum.
func NewWeightedIndex(weights []float64) (*WeightedIndex, error) {
	n := len(weights)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty weight list", ErrBadWeights)
	}

	var sum float64
	for i, weight := range weights {
		if weight < 0 {
			return nil, fmt.Errorf("%w: negative weight at index %d", ErrBadWeights, i)
		}
		sum += weight
	}
	if sum <= 0 {
		return nil, fmt.Errorf("%w: weights sum to zero", ErrBadWeights)
	}

	w := &WeightedIndex{
		prob:  make([]float64, n),
		alias: make([]int, n),
	}

	// scale weights so the average column is exactly 1
	scaled := make([]float64, n)
	for i, weight := range weights {
		scaled[i] = weight * float64(n) / sum
	}

	small := make([]int, 0, n)
	large := make([]int, 0, n)
	for i := n - 1; i >= 0; i-- {
		if scaled[i] < 1 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	for len(small) > 0 && len(large) > 0 {
		s := small[len(small)-1]
		small = small[:len(small)-1]
		l := large[len(large)-1]
		large = large[:len(large)-1]

		w.prob[s] = scaled[s]
		w.alias[s] = l

		scaled[l] -= 1 - scaled[s]
		if scaled[l] < 1 {
			small = append(small, l)
		} else {
			large = append(large, l)
		}
	}

	// leftovers are full columns up to float rounding
	for len(large) > 0 {
		l := large[len(large)-1]
		large = large[:len(large)-1]
		w.prob[l] = 1
		w.alias[l] = l
	}
	for len(small) > 0 {
		s := small[len(small)-1]
		small = small[:len(small)-1]
		w.prob[s] = 1
		w.alias[s] = s
	}

	return w, nil
}

// Len returns the number of outcomes.
func (w *WeightedIndex) Len() int {
	return len(w.prob)
}

// Sample draws one index. It always consumes exactly two draws.
func (w *WeightedIndex) Sample(r *Random) int {
	column := int(r.NextU64() % uint64(len(w.prob)))
	coin := r.Float()
	if coin < w.prob[column] {
		return column
	}
	return w.alias[column]
}
