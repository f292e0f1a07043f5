package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/banshee-data/fip-periodogram/internal/fip"
	"github.com/banshee-data/fip-periodogram/internal/fsutil"
)

// FormatFromPath returns the output format implied by the file extension,
// lower-cased and without the dot.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch {
	case ext == "html" || ext == "htm":
		return "html", nil
	case staticFormats[ext]:
		return ext, nil
	case ext == "":
		return "", fmt.Errorf("output %q has no file extension", path)
	default:
		return "", fmt.Errorf("unsupported output format %q", ext)
	}
}

// Save writes the periodogram to path, creating parent directories. The
// extension selects the renderer: .html uses go-echarts, anything else
// gonum/plot.
func Save(fsys fsutil.FileSystem, path string, l *fip.Layout, st Style) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	w, err := fsutil.CreateWithParents(fsys, path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if format == "html" {
		return WriteHTML(w, l, st)
	}
	return WriteTo(w, l, st, format)
}
