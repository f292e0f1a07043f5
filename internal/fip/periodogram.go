package fip

import (
	"fmt"
	"math"
	"strings"

	"github.com/banshee-data/fip-periodogram/internal/monitoring"
	"gonum.org/v1/gonum/floats"
)

// Range headroom above the tallest FIP sample.
const yHeadroom = 1.15

// Orientation controls whether -log10 FIP is drawn upwards or log10 FIP
// downwards.
type Orientation int

const (
	OrientationUp Orientation = iota
	OrientationDown
)

// ParseOrientation accepts "up" and "down".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "up":
		return OrientationUp, nil
	case "down":
		return OrientationDown, nil
	default:
		return OrientationUp, fmt.Errorf("orientation must be \"up\" or \"down\", got %q", s)
	}
}

func (o Orientation) String() string {
	if o == OrientationDown {
		return "down"
	}
	return "up"
}

// Periodogram holds a FIP periodogram sampled on an increasing grid of
// angular frequencies, in radians per day.
type Periodogram struct {
	Omegas    []float64
	FIPs      []float64
	MLog10FIP []float64
	Log10TIP  []float64
	Periods   []float64

	curve Curve
	peaks PeakSet
}

// NewPeriodogram derives -log10 FIP, log10 TIP and periods from the FIP of
// each frequency. FIP values must lie in (0, 1].
func NewPeriodogram(freqRadDay, fips []float64) (*Periodogram, error) {
	if len(freqRadDay) != len(fips) {
		return nil, fmt.Errorf("%w: %d frequencies but %d FIP values", ErrInvalidCurve, len(freqRadDay), len(fips))
	}

	n := len(fips)
	p := &Periodogram{
		Omegas:    append([]float64(nil), freqRadDay...),
		FIPs:      append([]float64(nil), fips...),
		MLog10FIP: make([]float64, n),
		Log10TIP:  make([]float64, n),
		Periods:   make([]float64, n),
	}
	for i, f := range fips {
		if !(f > 0 && f <= 1) {
			return nil, fmt.Errorf("%w: FIP %g at index %d outside (0, 1]", ErrInvalidCurve, f, i)
		}
		p.MLog10FIP[i] = -math.Log10(f)
		p.Log10TIP[i] = math.Log10(1 - f)
	}

	curve, err := NewCurve(p.Omegas, p.MLog10FIP)
	if err != nil {
		return nil, err
	}
	p.curve = curve
	for i, w := range p.Omegas {
		p.Periods[i] = 2 * math.Pi / w
	}
	return p, nil
}

// Curve returns the -log10 FIP curve over frequency.
func (p *Periodogram) Curve() Curve { return p.curve }

// FindPeaks extracts the peaks of -log10 FIP above threshold and caches
// them for Layout.
func (p *Periodogram) FindPeaks(threshold float64) PeakSet {
	p.peaks = ExtractPeaks(p.curve, threshold)
	return p.peaks
}

// Peaks returns the peaks found by the last FindPeaks call.
func (p *Periodogram) Peaks() PeakSet { return p.peaks }

// LayoutOptions configures a periodogram layout. Zero values pick the
// defaults.
type LayoutOptions struct {
	HighlightedPeaks int
	Annotation       AnnotationMode
	Significance     Significance
	Orientation      Orientation

	// Title replaces the "<star> FIP periodogram" default when set.
	Title    string
	StarName string

	// Threshold of 0 means DefaultPeakThreshold.
	Threshold   float64
	GapDivisor  float64
	StepDivisor float64
	// FlipThreshold of 0 means DefaultFlipThreshold.
	FlipThreshold float64
}

// Point is a marker position in plot units.
type Point struct {
	X float64
	Y float64
}

// Series is a polyline in plot units.
type Series struct {
	X []float64
	Y []float64
}

// Layout is everything a renderer needs to draw a periodogram.
type Layout struct {
	Title       string
	XLabel      string
	FIPLabel    string
	TIPLabel    string
	MarkerLabel string

	FIP     Series
	TIP     Series
	Markers []Point
	Labels  []AnnotationPlacement

	XRange   Range
	FIPRange Range
	TIPRange Range
	// XDescending is set when the first sample has the longest period, so
	// the period axis runs from the first to the last sample.
	XDescending bool

	Orientation Orientation
	// AvailablePeaks is the number of peaks found; Clamped reports that
	// fewer were highlighted than requested.
	AvailablePeaks int
	Clamped        bool
}

// DefaultTitle is the title used when none is given.
func DefaultTitle(star string) string {
	return strings.TrimSpace(star + " FIP periodogram")
}

// DefaultFileName is the PDF name used when no output path is given.
func DefaultFileName(star string) string {
	return strings.ReplaceAll(star, " ", "_") + "_FIP_periodogram_notext.pdf"
}

// Layout finds the peaks, selects the strongest ones and places their labels.
func (p *Periodogram) Layout(opts LayoutOptions) (*Layout, error) {
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = DefaultPeakThreshold
	}
	gapDiv := opts.GapDivisor
	if gapDiv == 0 {
		gapDiv = DefaultGapDivisor
	}
	stepDiv := opts.StepDivisor
	if stepDiv == 0 {
		stepDiv = DefaultStepDivisor
	}
	if gapDiv < 0 || stepDiv < 0 {
		return nil, fmt.Errorf("%w: divisors must be positive (gap=%g, step=%g)", ErrInvalidPlacerConfig, gapDiv, stepDiv)
	}

	peaks := p.FindPeaks(threshold)
	top, clamped := peaks.Top(opts.HighlightedPeaks)
	if clamped {
		monitoring.Logf("There are only %d peaks", len(peaks))
	}

	l := &Layout{
		Title:          DefaultTitle(opts.StarName),
		XLabel:         "Period (days)",
		TIPLabel:       "log10 TIP",
		MarkerLabel:    opts.Annotation.LegendLabel(),
		Orientation:    opts.Orientation,
		AvailablePeaks: len(peaks),
		Clamped:        clamped,
		XRange:         Range{Min: floats.Min(p.Periods), Max: floats.Max(p.Periods)},
		XDescending:    p.Periods[0] > p.Periods[len(p.Periods)-1],
	}
	if opts.Title != "" {
		l.Title = opts.Title
	}

	sign := 1.0
	if opts.Orientation == OrientationDown {
		sign = -1
		l.FIPLabel = "log10 FIP"
	} else {
		l.FIPLabel = "-log10 FIP"
	}

	fipY := make([]float64, len(p.MLog10FIP))
	for i, v := range p.MLog10FIP {
		fipY[i] = sign * v
	}
	l.FIP = Series{X: p.Periods, Y: fipY}
	if opts.Orientation == OrientationDown {
		l.FIPRange = Range{Min: floats.Min(fipY) * yHeadroom, Max: 0}
	} else {
		l.FIPRange = Range{Min: 0, Max: floats.Max(fipY) * yHeadroom}
	}

	l.TIP, l.TIPRange = tipSeries(p.Periods, p.Log10TIP)

	l.Markers = make([]Point, len(top))
	for j, pk := range top {
		l.Markers[j] = Point{X: 2 * math.Pi / pk.Frequency, Y: sign * pk.Value}
	}

	if opts.Annotation.IsNone() || len(top) == 0 {
		return l, nil
	}

	reqs := make([]AnnotationRequest, len(top))
	for j, m := range l.Markers {
		reqs[j] = AnnotationRequest{
			X:    m.X,
			Y:    m.Y,
			Text: opts.Annotation.Text(j, m.X, opts.Significance),
		}
	}

	cfg := NewPlacerConfig(l.FIPRange, l.XRange, p.Periods[0])
	cfg.YGap = l.FIPRange.Span() / gapDiv
	cfg.XLogGap = l.XRange.LogSpan() / gapDiv
	cfg.YStep = l.FIPRange.Span() / stepDiv
	if opts.FlipThreshold != 0 {
		cfg.FlipThreshold = opts.FlipThreshold
	}

	labels, err := PlaceLabels(reqs, cfg)
	if err != nil {
		return nil, fmt.Errorf("place labels: %w", err)
	}
	l.Labels = labels
	return l, nil
}

// tipSeries keeps the finite log10 TIP samples and spans them up to zero.
func tipSeries(periods, ltip []float64) (Series, Range) {
	s := Series{
		X: make([]float64, 0, len(ltip)),
		Y: make([]float64, 0, len(ltip)),
	}
	for i, v := range ltip {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		s.X = append(s.X, periods[i])
		s.Y = append(s.Y, v)
	}

	r := Range{Min: -1, Max: 0}
	if len(s.Y) > 0 {
		if m := floats.Min(s.Y); m < 0 {
			r.Min = m
		}
	}
	return s, r
}
