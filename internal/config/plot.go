package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Defaults applied by the Get* accessors when a field is unset.
const (
	DefaultPeakThreshold    = 1e-2
	DefaultHighlightedPeaks = 5
	DefaultAnnotations      = "periods"
	DefaultOrientation      = "up"
	DefaultGapDivisor       = 9.0
	DefaultStepDivisor      = 10.0
	DefaultFlipThreshold    = 0.85
	DefaultWidthInches      = 10.0
	DefaultHeightInches     = 6.0
)

// PlotConfig holds periodogram plotting parameters. Every field is optional;
// nil fields fall back to the defaults above.
type PlotConfig struct {
	// Peak selection
	PeakThreshold    *float64 `json:"peak_threshold,omitempty"`
	HighlightedPeaks *int     `json:"highlighted_peaks,omitempty"`

	// Annotation
	Annotations   *string  `json:"annotations,omitempty"` // "periods", "none" or a significance key
	GapDivisor    *float64 `json:"gap_divisor,omitempty"`
	StepDivisor   *float64 `json:"step_divisor,omitempty"`
	FlipThreshold *float64 `json:"flip_threshold,omitempty"`

	// Figure
	Orientation  *string  `json:"orientation,omitempty"` // "up" or "down"
	Title        *string  `json:"title,omitempty"`
	WidthInches  *float64 `json:"width_inches,omitempty"`
	HeightInches *float64 `json:"height_inches,omitempty"`
	FIPColor     *string  `json:"fip_color,omitempty"`    // hex like "#0072bd"
	TIPColor     *string  `json:"tip_color,omitempty"`    // hex
	MarkerColor  *string  `json:"marker_color,omitempty"` // hex
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyPlotConfig returns a PlotConfig with all fields set to nil.
func EmptyPlotConfig() *PlotConfig {
	return &PlotConfig{}
}

// DefaultPlotConfig returns a PlotConfig with every field set to its default.
func DefaultPlotConfig() *PlotConfig {
	return &PlotConfig{
		PeakThreshold:    ptrFloat64(DefaultPeakThreshold),
		HighlightedPeaks: ptrInt(DefaultHighlightedPeaks),
		Annotations:      ptrString(DefaultAnnotations),
		GapDivisor:       ptrFloat64(DefaultGapDivisor),
		StepDivisor:      ptrFloat64(DefaultStepDivisor),
		FlipThreshold:    ptrFloat64(DefaultFlipThreshold),
		Orientation:      ptrString(DefaultOrientation),
		WidthInches:      ptrFloat64(DefaultWidthInches),
		HeightInches:     ptrFloat64(DefaultHeightInches),
	}
}

// LoadPlotConfig loads a PlotConfig from a JSON file.
// The file must have a .json extension and be under 1MB. Fields omitted from
// the JSON keep their defaults, so partial configs are safe.
func LoadPlotConfig(path string) (*PlotConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyPlotConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *PlotConfig) Validate() error {
	if c.HighlightedPeaks != nil && *c.HighlightedPeaks < 0 {
		return fmt.Errorf("highlighted_peaks must be non-negative, got %d", *c.HighlightedPeaks)
	}

	for name, v := range map[string]*float64{
		"gap_divisor":   c.GapDivisor,
		"step_divisor":  c.StepDivisor,
		"width_inches":  c.WidthInches,
		"height_inches": c.HeightInches,
	} {
		if v != nil && !(*v > 0) {
			return fmt.Errorf("%s must be positive, got %f", name, *v)
		}
	}

	if c.Orientation != nil {
		switch strings.ToLower(*c.Orientation) {
		case "up", "down":
		default:
			return fmt.Errorf("orientation must be \"up\" or \"down\", got %q", *c.Orientation)
		}
	}

	for name, v := range map[string]*string{
		"fip_color":    c.FIPColor,
		"tip_color":    c.TIPColor,
		"marker_color": c.MarkerColor,
	} {
		if v != nil && !isHexColor(*v) {
			return fmt.Errorf("%s must be a #rrggbb hex color, got %q", name, *v)
		}
	}

	return nil
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

// GetPeakThreshold returns the peak_threshold value or the default.
func (c *PlotConfig) GetPeakThreshold() float64 {
	if c.PeakThreshold == nil {
		return DefaultPeakThreshold
	}
	return *c.PeakThreshold
}

// GetHighlightedPeaks returns the highlighted_peaks value or the default.
func (c *PlotConfig) GetHighlightedPeaks() int {
	if c.HighlightedPeaks == nil {
		return DefaultHighlightedPeaks
	}
	return *c.HighlightedPeaks
}

// GetAnnotations returns the annotations key or the default.
func (c *PlotConfig) GetAnnotations() string {
	if c.Annotations == nil {
		return DefaultAnnotations
	}
	return *c.Annotations
}

// GetGapDivisor returns the gap_divisor value or the default.
func (c *PlotConfig) GetGapDivisor() float64 {
	if c.GapDivisor == nil {
		return DefaultGapDivisor
	}
	return *c.GapDivisor
}

// GetStepDivisor returns the step_divisor value or the default.
func (c *PlotConfig) GetStepDivisor() float64 {
	if c.StepDivisor == nil {
		return DefaultStepDivisor
	}
	return *c.StepDivisor
}

// GetFlipThreshold returns the flip_threshold value or the default.
func (c *PlotConfig) GetFlipThreshold() float64 {
	if c.FlipThreshold == nil {
		return DefaultFlipThreshold
	}
	return *c.FlipThreshold
}

// GetOrientation returns the orientation value or the default.
func (c *PlotConfig) GetOrientation() string {
	if c.Orientation == nil {
		return DefaultOrientation
	}
	return *c.Orientation
}

// GetTitle returns the title, or "" to use the default title.
func (c *PlotConfig) GetTitle() string {
	if c.Title == nil {
		return ""
	}
	return *c.Title
}

// GetWidthInches returns the width_inches value or the default.
func (c *PlotConfig) GetWidthInches() float64 {
	if c.WidthInches == nil {
		return DefaultWidthInches
	}
	return *c.WidthInches
}

// GetHeightInches returns the height_inches value or the default.
func (c *PlotConfig) GetHeightInches() float64 {
	if c.HeightInches == nil {
		return DefaultHeightInches
	}
	return *c.HeightInches
}

// GetFIPColor returns the fip_color value, or "" for the renderer default.
func (c *PlotConfig) GetFIPColor() string {
	if c.FIPColor == nil {
		return ""
	}
	return *c.FIPColor
}

// GetTIPColor returns the tip_color value, or "" for the renderer default.
func (c *PlotConfig) GetTIPColor() string {
	if c.TIPColor == nil {
		return ""
	}
	return *c.TIPColor
}

// GetMarkerColor returns the marker_color value, or "" for the renderer default.
func (c *PlotConfig) GetMarkerColor() string {
	if c.MarkerColor == nil {
		return ""
	}
	return *c.MarkerColor
}
