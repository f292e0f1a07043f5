// Command fipplot renders a FIP periodogram from a CSV of angular frequencies
// and false inclusion probabilities, highlighting and labelling the
// strongest peaks.
//
// Usage:
//
//	fipplot -input fips.csv -star "GJ 876" -peaks 4
//	fipplot -input fips.csv -significance sig.json -annotations log10faps -out plots/gj876.html
package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"

	"github.com/banshee-data/fip-periodogram/internal/config"
	"github.com/banshee-data/fip-periodogram/internal/fip"
	"github.com/banshee-data/fip-periodogram/internal/fip/render"
	"github.com/banshee-data/fip-periodogram/internal/fsutil"
	"github.com/banshee-data/fip-periodogram/internal/monitoring"
	"github.com/banshee-data/fip-periodogram/internal/version"
	"gonum.org/v1/plot/vg"
)

func main() {
	if err := run(os.Args[1:], fsutil.OSFileSystem{}, os.Stdout); err != nil {
		log.Fatalf("fipplot: %v", err)
	}
}

type options struct {
	input        string
	significance string
	configPath   string
	out          string
	star         string
	title        string
	annotations  string
	orientation  string
	peaks        int
	latex        bool
	showVersion  bool
}

func parseFlags(args []string, stderr io.Writer) (*options, map[string]bool, error) {
	fs := flag.NewFlagSet("fipplot", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.StringVar(&o.input, "input", "", "CSV of frequency_radday,fip rows (required)")
	fs.StringVar(&o.significance, "significance", "", "JSON object of metric name -> per-peak values")
	fs.StringVar(&o.configPath, "config", "", "Plot config JSON file")
	fs.StringVar(&o.out, "out", "", "Output file; extension picks the format (pdf, png, svg, html, ...). Defaults to <star>_FIP_periodogram_notext.pdf")
	fs.StringVar(&o.star, "star", "", "Star name used in the title and default file name")
	fs.StringVar(&o.title, "title", "", "Plot title (defaults to '<star> FIP periodogram')")
	fs.StringVar(&o.annotations, "annotations", config.DefaultAnnotations, "Peak labels: 'periods', 'none' or a significance metric name")
	fs.StringVar(&o.orientation, "orientation", config.DefaultOrientation, "FIP orientation: 'up' or 'down'")
	fs.IntVar(&o.peaks, "peaks", config.DefaultHighlightedPeaks, "Number of peaks to highlight")
	fs.BoolVar(&o.latex, "latex", false, "Render $...$ labels with the LaTeX text handler")
	fs.BoolVar(&o.showVersion, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return o, set, nil
}

func run(args []string, fsys fsutil.FileSystem, stdout io.Writer) error {
	o, set, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}
	if o.showVersion {
		fmt.Fprintln(stdout, version.String("fipplot"))
		return nil
	}
	if o.input == "" {
		return fmt.Errorf("-input is required")
	}

	cfg := config.EmptyPlotConfig()
	if o.configPath != "" {
		if cfg, err = config.LoadPlotConfig(o.configPath); err != nil {
			return err
		}
	}
	// Explicit flags win over the config file.
	if set["annotations"] || cfg.Annotations == nil {
		cfg.Annotations = &o.annotations
	}
	if set["orientation"] || cfg.Orientation == nil {
		cfg.Orientation = &o.orientation
	}
	if set["peaks"] || cfg.HighlightedPeaks == nil {
		cfg.HighlightedPeaks = &o.peaks
	}
	if set["title"] {
		cfg.Title = &o.title
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	omegas, fips, err := readCurveCSV(fsys, o.input)
	if err != nil {
		return err
	}
	var sig fip.Significance
	if o.significance != "" {
		if sig, err = readSignificance(fsys, o.significance); err != nil {
			return err
		}
	}

	mode, err := fip.ParseAnnotationMode(cfg.GetAnnotations(), sig)
	if err != nil {
		return err
	}
	orientation, err := fip.ParseOrientation(cfg.GetOrientation())
	if err != nil {
		return err
	}

	pg, err := fip.NewPeriodogram(omegas, fips)
	if err != nil {
		return err
	}
	layout, err := pg.Layout(fip.LayoutOptions{
		HighlightedPeaks: cfg.GetHighlightedPeaks(),
		Annotation:       mode,
		Significance:     sig,
		Orientation:      orientation,
		Title:            cfg.GetTitle(),
		StarName:         o.star,
		Threshold:        cfg.GetPeakThreshold(),
		GapDivisor:       cfg.GetGapDivisor(),
		StepDivisor:      cfg.GetStepDivisor(),
		FlipThreshold:    cfg.GetFlipThreshold(),
	})
	if err != nil {
		return err
	}

	style, err := styleFromConfig(cfg)
	if err != nil {
		return err
	}
	style.LaTeX = o.latex

	out := o.out
	if out == "" {
		out = fip.DefaultFileName(o.star)
	}
	if err := render.Save(fsys, out, layout, style); err != nil {
		return err
	}
	monitoring.Logf("Wrote %s (%d of %d peaks highlighted)", out, len(layout.Markers), layout.AvailablePeaks)
	return nil
}

func styleFromConfig(cfg *config.PlotConfig) (render.Style, error) {
	st := render.DefaultStyle()
	st.Width = vg.Length(cfg.GetWidthInches()) * vg.Inch
	st.Height = vg.Length(cfg.GetHeightInches()) * vg.Inch

	if hex := cfg.GetFIPColor(); hex != "" {
		c, err := render.ParseHexColor(hex)
		if err != nil {
			return st, err
		}
		st.FIPColor = c
	}
	if hex := cfg.GetTIPColor(); hex != "" {
		c, err := render.ParseHexColor(hex)
		if err != nil {
			return st, err
		}
		st.TIPColor = color.NRGBA{R: c.R, G: c.G, B: c.B, A: 178}
	}
	if hex := cfg.GetMarkerColor(); hex != "" {
		c, err := render.ParseHexColor(hex)
		if err != nil {
			return st, err
		}
		st.MarkerColor = c
		st.LabelColor = c
	}
	return st, nil
}
