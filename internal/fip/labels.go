package fip

import (
	"errors"
	"fmt"
	"math"
)

// Placement defaults used by the periodogram layout.
const (
	DefaultGapDivisor    = 9
	DefaultStepDivisor   = 10
	DefaultFlipThreshold = 0.85
	DefaultRightShift    = 1.3
	DefaultLeftShift     = 0.8
	DefaultOutwardShift  = 1.1
)

var (
	// ErrNonPositiveX is returned when an annotation request sits at x <= 0,
	// where the log-ratio distance is undefined.
	ErrNonPositiveX = errors.New("annotation x coordinate must be positive")
	// ErrInvalidPlacerConfig is returned for placer settings that cannot
	// produce finite placements.
	ErrInvalidPlacerConfig = errors.New("invalid label placer config")
)

// AnnotationRequest asks for a label next to a peak marker, in plot units.
type AnnotationRequest struct {
	X    float64
	Y    float64
	Text string
}

// AnnotationPlacement is the anchor at which a label is drawn.
type AnnotationPlacement struct {
	AnchorX float64
	AnchorY float64
	Text    string
}

// Range is a closed interval of plot coordinates.
type Range struct {
	Min float64
	Max float64
}

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// LogSpan returns log10(Max) - log10(Min).
func (r Range) LogSpan() float64 { return math.Log10(r.Max) - math.Log10(r.Min) }

// PlacerConfig controls label collision avoidance.
type PlacerConfig struct {
	// YGap and XLogGap are the conflict thresholds: an earlier label blocks
	// a candidate when both |dy| < YGap and |dlog10 x| < XLogGap.
	YGap    float64
	XLogGap float64
	// YStep is how far a blocked label moves vertically, and the minimum
	// height a label needs to be moved down. Zero means YGap.
	YStep float64

	// ReferencePeriod is the period of the first curve sample.
	ReferencePeriod float64
	// FlipThreshold is the log10(x/ReferencePeriod) above which a label is
	// put left of its marker instead of right.
	FlipThreshold float64

	RightShift   float64
	LeftShift    float64
	OutwardShift float64
}

// NewPlacerConfig derives the gaps from the plotted y range and period
// range using DefaultGapDivisor and DefaultStepDivisor.
func NewPlacerConfig(yRange, xRange Range, referencePeriod float64) PlacerConfig {
	return PlacerConfig{
		YGap:            yRange.Span() / DefaultGapDivisor,
		XLogGap:         xRange.LogSpan() / DefaultGapDivisor,
		YStep:           yRange.Span() / DefaultStepDivisor,
		ReferencePeriod: referencePeriod,
		FlipThreshold:   DefaultFlipThreshold,
		RightShift:      DefaultRightShift,
		LeftShift:       DefaultLeftShift,
		OutwardShift:    DefaultOutwardShift,
	}
}

// Validate reports settings that would make placements undefined.
func (c PlacerConfig) Validate() error {
	if !(c.ReferencePeriod > 0) {
		return fmt.Errorf("%w: reference period %g must be positive", ErrInvalidPlacerConfig, c.ReferencePeriod)
	}
	if c.YGap < 0 || c.XLogGap < 0 || c.YStep < 0 {
		return fmt.Errorf("%w: gaps must be non-negative (y=%g, x=%g, step=%g)", ErrInvalidPlacerConfig, c.YGap, c.XLogGap, c.YStep)
	}
	if !(c.RightShift > 0) || !(c.LeftShift > 0) || !(c.OutwardShift > 0) {
		return fmt.Errorf("%w: shift factors must be positive", ErrInvalidPlacerConfig)
	}
	return nil
}

func (c PlacerConfig) step() float64 {
	if c.YStep == 0 {
		return c.YGap
	}
	return c.YStep
}

// PlaceLabels positions one label per request, in order. Each placement is
// checked against the labels already placed in this call: if any of them is
// within both gaps, the nearest one in log x is the blocker, and the new
// label is moved once, above or below it, or pushed right when there is no
// room below. Moved labels are not checked again.
//
// Callers pass requests strongest peak first; earlier labels never move.
func PlaceLabels(reqs []AnnotationRequest, cfg PlacerConfig) ([]AnnotationPlacement, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	step := cfg.step()

	placed := make([]AnnotationPlacement, 0, len(reqs))
	for j, req := range reqs {
		if !(req.X > 0) {
			return nil, fmt.Errorf("request %d at x=%g: %w", j, req.X, ErrNonPositiveX)
		}

		x1 := req.X * cfg.RightShift
		if math.Log10(math.Abs(x1/cfg.ReferencePeriod)) > cfg.FlipThreshold {
			x1 = req.X * cfg.LeftShift
		}
		y1 := req.Y

		blocker := -1
		nearest := math.Inf(1)
		for i, p := range placed {
			dy := math.Abs(y1 - p.AnchorY)
			dx := math.Abs(math.Log10(x1 / p.AnchorX))
			if dy < cfg.YGap && dx < cfg.XLogGap && dx < nearest {
				blocker = i
				nearest = dx
			}
		}

		if blocker >= 0 {
			by := placed[blocker].AnchorY
			switch {
			case y1 < by && y1 > step:
				y1 = by - step
			case y1 < by:
				x1 *= cfg.OutwardShift
			default:
				y1 = by + step
			}
		}

		placed = append(placed, AnnotationPlacement{AnchorX: x1, AnchorY: y1, Text: req.Text})
	}
	return placed, nil
}
