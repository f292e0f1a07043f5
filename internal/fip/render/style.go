// Package render draws a fip.Layout. Static figures go through gonum/plot
// and HTML pages through go-echarts.
package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"
)

// Style holds every color and size used when drawing a periodogram.
type Style struct {
	FIPColor    color.Color
	TIPColor    color.Color
	MarkerColor color.Color
	LabelColor  color.Color

	FIPLineWidth vg.Length
	TIPLineWidth vg.Length
	MarkerRadius vg.Length

	TitleFontSize vg.Length
	AxisFontSize  vg.Length
	LabelFontSize vg.Length

	// Width and Height are the figure size for static output.
	Width  vg.Length
	Height vg.Length
	// HTMLWidth and HTMLHeight are CSS sizes for the echarts page.
	HTMLWidth  string
	HTMLHeight string

	// LaTeX renders labels containing $...$ with the LaTeX text handler
	// instead of converting them to plain text.
	LaTeX bool
}

// DefaultStyle returns the standard periodogram style: a blue FIP curve, a
// translucent gold TIP curve and orange peak markers and labels.
func DefaultStyle() Style {
	orange := color.RGBA{R: 217, G: 83, B: 25, A: 255}
	return Style{
		FIPColor:      color.RGBA{R: 0, G: 114, B: 189, A: 255},
		TIPColor:      color.NRGBA{R: 237, G: 177, B: 32, A: 178},
		MarkerColor:   orange,
		LabelColor:    orange,
		FIPLineWidth:  vg.Points(1.7),
		TIPLineWidth:  vg.Points(3),
		MarkerRadius:  vg.Points(2.5),
		TitleFontSize: vg.Points(20),
		AxisFontSize:  vg.Points(14),
		LabelFontSize: vg.Points(12),
		Width:         10 * vg.Inch,
		Height:        6 * vg.Inch,
		HTMLWidth:     "1000px",
		HTMLHeight:    "600px",
	}
}

// ParseHexColor parses "#rrggbb".
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// hexColor formats c as "#rrggbb" for echarts.
func hexColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

var plainReplacer = strings.NewReplacer(
	`\log_{10}`, "log10",
	`\log`, "log",
	`\cdot`, "×",
	"^{", "^",
	"{", "",
	"}", "",
	"$", "",
)

// plainText strips the LaTeX markup produced by fip.SciNotation and the
// metric legend names.
func plainText(s string) string {
	if !strings.Contains(s, "$") {
		return s
	}
	return plainReplacer.Replace(s)
}
