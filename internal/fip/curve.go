// Package fip extracts and annotates significant peaks of a FIP periodogram.
//
// The package holds everything needed to lay a periodogram out: the sampled
// significance curve, peak extraction, label placement with collision
// avoidance, and the text formatting of peak annotations. Drawing is left to
// the render subpackage.
package fip

import (
	"errors"
	"fmt"
)

// ErrInvalidCurve is returned when a curve cannot be constructed.
var ErrInvalidCurve = errors.New("invalid signal curve")

// Sample is one point of a discretized significance curve.
type Sample struct {
	Frequency    float64
	Significance float64
}

// Curve is an ordered sequence of samples, strictly increasing in frequency.
// Functions in this package never modify a Curve.
type Curve []Sample

// NewCurve pairs frequencies with significances and validates the result.
func NewCurve(freqs, significance []float64) (Curve, error) {
	if len(freqs) != len(significance) {
		return nil, fmt.Errorf("%w: %d frequencies but %d significance values", ErrInvalidCurve, len(freqs), len(significance))
	}
	if len(freqs) == 0 {
		return nil, fmt.Errorf("%w: curve must have at least one sample", ErrInvalidCurve)
	}

	c := make(Curve, len(freqs))
	for i, f := range freqs {
		if !(f > 0) {
			return nil, fmt.Errorf("%w: frequency %g at index %d is not positive", ErrInvalidCurve, f, i)
		}
		if i > 0 && f <= freqs[i-1] {
			return nil, fmt.Errorf("%w: frequencies not strictly increasing at index %d", ErrInvalidCurve, i)
		}
		c[i] = Sample{Frequency: f, Significance: significance[i]}
	}
	return c, nil
}

// Significances returns the significance values in sample order.
func (c Curve) Significances() []float64 {
	out := make([]float64, len(c))
	for i, s := range c {
		out[i] = s.Significance
	}
	return out
}

// Frequencies returns the sample frequencies in order.
func (c Curve) Frequencies() []float64 {
	out := make([]float64, len(c))
	for i, s := range c {
		out[i] = s.Frequency
	}
	return out
}
