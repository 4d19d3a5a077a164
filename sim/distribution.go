package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// DurationSampler draws a simulated duration (in hours).
type DurationSampler interface {
	// Sample returns a non-negative duration.
	Sample(rng *rand.Rand) float64
}

// Exponential samples exponentially-distributed durations with the given mean.
type Exponential struct {
	Mean float64
}

// NewExponential returns an exponential sampler with mean `mean`.
func NewExponential(mean float64) Exponential {
	return Exponential{Mean: mean}
}

func (e Exponential) Sample(rng *rand.Rand) float64 {
	return rng.ExpFloat64() * e.Mean
}

// Validate reports an error unless the mean is finite and strictly positive.
func (e Exponential) Validate() error {
	if e.Mean <= 0 || math.IsNaN(e.Mean) || math.IsInf(e.Mean, 0) {
		return fmt.Errorf("exponential mean must be a finite value > 0, got %v", e.Mean)
	}
	return nil
}

func (e Exponential) String() string {
	return fmt.Sprintf("exponential(mean=%g)", e.Mean)
}
