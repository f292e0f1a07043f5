package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/banshee-data/fip-periodogram/internal/fip"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// staticFormats are the file formats draw.NewFormattedCanvas supports.
var staticFormats = map[string]bool{
	"eps": true, "jpg": true, "jpeg": true, "pdf": true, "png": true,
	"svg": true, "tex": true, "tif": true, "tiff": true,
}

// Plots builds the two panels of a periodogram sharing the log period axis:
// the FIP curve with highlighted peaks and their labels on top, and the TIP
// curve below. The result is laid out for plot.Align as two rows.
func Plots(l *fip.Layout, st Style) ([][]*plot.Plot, error) {
	top, err := fipPlot(l, st)
	if err != nil {
		return nil, fmt.Errorf("FIP panel: %w", err)
	}
	bottom, err := tipPlot(l, st)
	if err != nil {
		return nil, fmt.Errorf("TIP panel: %w", err)
	}
	return [][]*plot.Plot{{top}, {bottom}}, nil
}

// WriteTo draws the periodogram in the given format ("pdf", "png", "svg", ...)
// and writes it to w.
func WriteTo(w io.Writer, l *fip.Layout, st Style, format string) error {
	format = strings.ToLower(format)
	if !staticFormats[format] {
		return fmt.Errorf("unsupported image format %q", format)
	}

	plots, err := Plots(l, st)
	if err != nil {
		return err
	}

	c, err := draw.NewFormattedCanvas(st.Width, st.Height, format)
	if err != nil {
		return fmt.Errorf("create %s canvas: %w", format, err)
	}
	dc := draw.New(c)
	tiles := draw.Tiles{Rows: 2, Cols: 1, PadY: vg.Points(6), PadTop: vg.Points(4), PadBottom: vg.Points(4)}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}

func newPeriodAxisPlot(l *fip.Layout, st Style) *plot.Plot {
	p := plot.New()
	if l.XDescending {
		p.X.Scale = plot.InvertedScale{Normalizer: plot.LogScale{}}
	} else {
		p.X.Scale = plot.LogScale{}
	}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.X.Label.TextStyle.Font.Size = st.AxisFontSize
	p.Y.Label.TextStyle.Font.Size = st.AxisFontSize
	return p
}

// setRanges fixes the axis limits after plotters are added, since Add grows
// the axes to fit the data.
func setRanges(p *plot.Plot, x, y fip.Range) {
	p.X.Min, p.X.Max = x.Min, x.Max
	if p.X.Min == p.X.Max {
		p.X.Min, p.X.Max = x.Min/2, x.Max*2
	}
	p.Y.Min, p.Y.Max = y.Min, y.Max
	if p.Y.Min == p.Y.Max {
		p.Y.Max = p.Y.Min + 1
	}
}

func fipPlot(l *fip.Layout, st Style) (*plot.Plot, error) {
	p := newPeriodAxisPlot(l, st)
	p.Title.Text = l.Title
	p.Title.TextStyle.Font.Size = st.TitleFontSize
	p.Y.Label.Text = l.FIPLabel
	p.Y.Label.TextStyle.Color = st.FIPColor
	p.Y.Tick.Label.Color = st.FIPColor

	line, err := plotter.NewLine(xysOf(l.FIP))
	if err != nil {
		return nil, err
	}
	line.Color = st.FIPColor
	line.Width = st.FIPLineWidth
	p.Add(line)

	if len(l.Markers) > 0 {
		pts := make(plotter.XYs, len(l.Markers))
		for i, m := range l.Markers {
			pts[i] = plotter.XY{X: m.X, Y: m.Y}
		}
		markers, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		markers.GlyphStyle.Color = st.MarkerColor
		markers.GlyphStyle.Radius = st.MarkerRadius
		markers.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(markers)

		if l.MarkerLabel != "" {
			p.Legend.Add(labelText(l.MarkerLabel, st), markers)
			p.Legend.Top = true
			p.Legend.XOffs = -10
			p.Legend.YOffs = -10
			if st.LaTeX && strings.Contains(l.MarkerLabel, "$") {
				p.Legend.TextStyle.Handler = latexHandler()
			}
		}
	}

	labels, err := labelsPlotter(l.Labels, st)
	if err != nil {
		return nil, err
	}
	if labels != nil {
		p.Add(labels)
	}

	setRanges(p, l.XRange, l.FIPRange)
	return p, nil
}

func tipPlot(l *fip.Layout, st Style) (*plot.Plot, error) {
	p := newPeriodAxisPlot(l, st)
	p.X.Label.Text = l.XLabel
	p.Y.Label.Text = l.TIPLabel
	p.Y.Label.TextStyle.Color = st.TIPColor
	p.Y.Tick.Label.Color = st.TIPColor

	if len(l.TIP.X) > 0 {
		line, err := plotter.NewLine(xysOf(l.TIP))
		if err != nil {
			return nil, err
		}
		line.Color = st.TIPColor
		line.Width = st.TIPLineWidth
		p.Add(line)
	}

	setRanges(p, l.XRange, l.TIPRange)
	return p, nil
}

// labelsPlotter returns nil when no placement has text.
func labelsPlotter(placements []fip.AnnotationPlacement, st Style) (*plotter.Labels, error) {
	xyl := plotter.XYLabels{}
	var raw []string
	for _, pl := range placements {
		if pl.Text == "" {
			continue
		}
		xyl.XYs = append(xyl.XYs, plotter.XY{X: pl.AnchorX, Y: pl.AnchorY})
		xyl.Labels = append(xyl.Labels, labelText(pl.Text, st))
		raw = append(raw, pl.Text)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = st.LabelColor
		labels.TextStyle[i].Font.Size = st.LabelFontSize
		if st.LaTeX && strings.Contains(raw[i], "$") {
			labels.TextStyle[i].Handler = latexHandler()
		}
	}
	return labels, nil
}

func labelText(s string, st Style) string {
	if st.LaTeX {
		return s
	}
	return plainText(s)
}

func latexHandler() text.Handler {
	return text.Latex{Fonts: font.DefaultCache}
}

func xysOf(s fip.Series) plotter.XYs {
	pts := make(plotter.XYs, len(s.X))
	for i := range s.X {
		pts[i] = plotter.XY{X: s.X[i], Y: s.Y[i]}
	}
	return pts
}
