package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/banshee-data/fip-periodogram/internal/fip"
	"github.com/banshee-data/fip-periodogram/internal/fsutil"
)

// readCurveCSV reads "frequency_radday,fip" rows. A non-numeric first row is
// treated as a header, lines starting with '#' are comments and extra
// columns are ignored.
func readCurveCSV(fsys fsutil.FileSystem, path string) (omegas, fips []float64, err error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open curve: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	for n := 1; ; n++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read curve: %w", err)
		}
		if len(rec) < 2 {
			return nil, nil, fmt.Errorf("%s record %d: want 2 columns, got %d", path, n, len(rec))
		}

		w, werr := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		p, perr := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if werr != nil || perr != nil {
			if n == 1 {
				continue // header
			}
			return nil, nil, fmt.Errorf("%s record %d: invalid number in %q", path, n, strings.Join(rec, ","))
		}
		omegas = append(omegas, w)
		fips = append(fips, p)
	}

	if len(omegas) == 0 {
		return nil, nil, fmt.Errorf("%s: no samples", path)
	}
	return omegas, fips, nil
}

// readSignificance reads a JSON object mapping metric names to one value
// per highlighted peak, e.g. {"log10faps": [-5.1, -2.3]}.
func readSignificance(fsys fsutil.FileSystem, path string) (fip.Significance, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read significance file: %w", err)
	}
	sig := fip.Significance{}
	if err := json.Unmarshal(data, &sig); err != nil {
		return nil, fmt.Errorf("failed to parse significance JSON: %w", err)
	}
	return sig, nil
}
