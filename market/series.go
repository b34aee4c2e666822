// Package market holds the data types shared by the hedging algorithm:
// spot-rate series, interest rate pairs, and tagged data-source quotes.
package market

import (
	"fmt"
	"time"
)

// RatePoint is one spot-rate observation. Rate is quoted as units of
// domestic currency per unit of foreign currency.
type RatePoint struct {
	Time time.Time
	Rate float64
}

// RateSeries is a time-ordered sequence of spot-rate observations.
// Invariants: timestamps strictly increasing, rates positive.
type RateSeries []RatePoint

// Validate checks the series invariants.
func (s RateSeries) Validate() error {
	for i, p := range s {
		if p.Rate <= 0 {
			return fmt.Errorf("rate at index %d must be positive, got %v", i, p.Rate)
		}
		if i > 0 && !p.Time.After(s[i-1].Time) {
			return fmt.Errorf("timestamp at index %d is not after the previous observation", i)
		}
	}
	return nil
}

// First returns the oldest observation. Callers must check len(s) > 0.
func (s RateSeries) First() RatePoint { return s[0] }

// Last returns the newest observation. Callers must check len(s) > 0.
func (s RateSeries) Last() RatePoint { return s[len(s)-1] }

// Tail returns the most recent n observations, or the whole series when it
// holds fewer than n.
func (s RateSeries) Tail(n int) RateSeries {
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}

// Rates returns the rate values only, oldest first.
func (s RateSeries) Rates() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Rate
	}
	return out
}
