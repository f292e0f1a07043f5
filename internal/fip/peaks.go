package fip

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// DefaultPeakThreshold is the -log10 FIP level a sample must exceed to be
// part of a peak run.
const DefaultPeakThreshold = 1e-2

// Peak is the strongest sample of one above-threshold run.
type Peak struct {
	// Index is the position of the peak sample in the source curve.
	Index     int
	Frequency float64
	Value     float64
}

// PeakSet is a list of peaks ordered by Value, highest first.
type PeakSet []Peak

// ExtractPeaks segments the curve into maximal runs of samples whose
// significance is strictly greater than threshold and returns the first
// maximum of each run, sorted by value descending. Equal values keep their
// left-to-right order.
//
// A run that is still open at the last sample is discarded, so a curve of
// length one never yields a peak.
func ExtractPeaks(curve Curve, threshold float64) PeakSet {
	sig := curve.Significances()
	peaks := PeakSet{}

	start := -1
	for i, v := range sig {
		if v > threshold {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			idx := start + floats.MaxIdx(sig[start:i])
			peaks = append(peaks, Peak{
				Index:     idx,
				Frequency: curve[idx].Frequency,
				Value:     sig[idx],
			})
			start = -1
		}
	}

	sort.SliceStable(peaks, func(a, b int) bool {
		return peaks[a].Value > peaks[b].Value
	})
	return peaks
}

// Top returns the first k peaks. When fewer than k exist, all of them are
// returned and clamped is true.
func (ps PeakSet) Top(k int) (top PeakSet, clamped bool) {
	if k < 0 {
		k = 0
	}
	if k > len(ps) {
		return ps, true
	}
	return ps[:k], false
}

// Frequencies returns the peak frequencies in rank order.
func (ps PeakSet) Frequencies() []float64 {
	out := make([]float64, len(ps))
	for i, p := range ps {
		out[i] = p.Frequency
	}
	return out
}

// Values returns the peak values in rank order.
func (ps PeakSet) Values() []float64 {
	out := make([]float64, len(ps))
	for i, p := range ps {
		out[i] = p.Value
	}
	return out
}
