package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/fip-periodogram/internal/fip"
)

// WriteHTML renders the periodogram as a standalone go-echarts page: FIP on
// the left axis, TIP on a second axis, markers and labels as scatter series.
func WriteHTML(w io.Writer, l *fip.Layout, st Style) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: l.Title, Width: st.HTMLWidth, Height: st.HTMLHeight}),
		charts.WithTitleOpts(opts.Title{Title: l.Title, Subtitle: fmt.Sprintf("peaks=%d highlighted=%d", l.AvailablePeaks, len(l.Markers))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "log", Name: l.XLabel, NameLocation: "middle", NameGap: 25, Min: l.XRange.Min, Max: l.XRange.Max}),
		charts.WithYAxisOpts(opts.YAxis{Name: l.FIPLabel, Min: l.FIPRange.Min, Max: l.FIPRange.Max}),
	)
	line.ExtendYAxis(opts.YAxis{Name: l.TIPLabel, Min: l.TIPRange.Min, Max: l.TIPRange.Max})

	line.AddSeries(plainText(l.FIPLabel), lineData(l.FIP),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: hexColor(st.FIPColor), Width: float32(st.FIPLineWidth.Points())}),
	)
	line.AddSeries(plainText(l.TIPLabel), lineData(l.TIP),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false), YAxisIndex: 1}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: hexColor(st.TIPColor), Width: float32(st.TIPLineWidth.Points())}),
	)

	if len(l.Markers) > 0 {
		scatter := charts.NewScatter()
		markers := make([]opts.ScatterData, len(l.Markers))
		for i, m := range l.Markers {
			markers[i] = opts.ScatterData{Value: []interface{}{m.X, m.Y}}
		}
		name := plainText(l.MarkerLabel)
		if name == "" {
			name = "peaks"
		}
		scatter.AddSeries(name, markers,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: int(2 * st.MarkerRadius.Points())}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(st.MarkerColor)}),
		)

		if len(l.Labels) > 0 {
			labels := make([]opts.ScatterData, 0, len(l.Labels))
			for _, pl := range l.Labels {
				if pl.Text == "" {
					continue
				}
				labels = append(labels, opts.ScatterData{Name: plainText(pl.Text), Value: []interface{}{pl.AnchorX, pl.AnchorY}})
			}
			scatter.AddSeries("labels", labels,
				charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 1}),
				charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "right", Formatter: "{b}", Color: hexColor(st.LabelColor)}),
			)
		}
		line.Overlap(scatter)
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func lineData(s fip.Series) []opts.LineData {
	data := make([]opts.LineData, len(s.X))
	for i := range s.X {
		data[i] = opts.LineData{Value: []interface{}{s.X[i], s.Y[i]}}
	}
	return data
}
