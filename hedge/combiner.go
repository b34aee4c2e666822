// Package hedge turns signal readings into a bounded hedge ratio
// recommendation.
package hedge

import (
	"fmt"
	"math"

	"github.com/rustyeddy/fxhedge/signals"
)

// weightTolerance is how far the weight sum may drift from 1.0 before the
// configuration is rejected.
const weightTolerance = 1e-6

// Weights assigns each signal its share of the combined ratio. The three
// weights must sum to 1.0.
type Weights struct {
	Carry    float64
	Momentum float64
	Value    float64
}

// Bounds clamp the combined ratio to [Min, Max] ⊆ [0, 1].
type Bounds struct {
	Min float64
	Max float64
}

// Combiner blends a signal set into a single hedge ratio. Construction
// validates the configuration once; Combine itself never re-validates and
// never fails.
type Combiner struct {
	weights Weights
	bounds  Bounds
}

// NewCombiner rejects invalid weights or bounds up front, before any
// computation runs with them.
func NewCombiner(w Weights, b Bounds) (*Combiner, error) {
	sum := w.Carry + w.Momentum + w.Value
	if math.Abs(sum-1.0) > weightTolerance {
		return nil, fmt.Errorf("signal weights must sum to 1.0, got %v", sum)
	}
	if b.Min < 0 || b.Min > b.Max || b.Max > 1 {
		return nil, fmt.Errorf("invalid hedge ratio bounds [%v, %v]", b.Min, b.Max)
	}
	return &Combiner{weights: w, bounds: b}, nil
}

// Combine returns the weighted sum of the signals, clamped to the configured
// bounds. It is pure and deterministic: identical inputs always yield the
// identical ratio.
func (c *Combiner) Combine(s signals.Set) float64 {
	raw := s.Carry*c.weights.Carry + s.Momentum*c.weights.Momentum + s.Value*c.weights.Value

	if raw < c.bounds.Min {
		return c.bounds.Min
	}
	if raw > c.bounds.Max {
		return c.bounds.Max
	}
	return raw
}
