// Package testutil provides shared test utilities and fixtures.
//
// This package centralises the synthetic periodogram fixtures used by the
// fip, render and CLI tests.
package testutil

import (
	"math"
	"testing"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// Bump is a Gaussian dip in FIP centred on an angular frequency.
type Bump struct {
	Omega float64
	Width float64
	// Depth is the -log10 FIP reached at the centre.
	Depth float64
}

// LinearGrid returns n angular frequencies evenly spaced over [lo, hi].
func LinearGrid(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// SyntheticFIPs builds FIP values over omegas with one dip per bump and a
// flat FIP of 1 elsewhere, clamped to the open interval (0, 1).
func SyntheticFIPs(omegas []float64, bumps ...Bump) []float64 {
	fips := make([]float64, len(omegas))
	for i, w := range omegas {
		depth := 0.0
		for _, b := range bumps {
			d := (w - b.Omega) / b.Width
			depth += b.Depth * math.Exp(-0.5*d*d)
		}
		f := math.Pow(10, -depth)
		if f >= 1 {
			f = 1 - 1e-12
		}
		if f <= 0 {
			f = math.SmallestNonzeroFloat64
		}
		fips[i] = f
	}
	return fips
}
