// Package writers provides vortexje.SurfaceWriter implementations for
// dumping per-step panel data to disk.
package writers

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	vortexje "github.com/baayen-heinz/vortexje-go"
)

// CSVWriter writes one row per panel: its collocation point, normal, area,
// and the requested view columns.
type CSVWriter struct{}

func (CSVWriter) FileExtension() string { return ".csv" }

func (CSVWriter) Write(surface vortexje.Surface, path string, nodeOffset, panelOffset int, viewNames []string, viewData [][]float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("writers: creating directory for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writers: creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := append([]string{"panel", "x", "y", "z", "nx", "ny", "nz", "area"}, viewNames...)
	if err := w.Write(header); err != nil {
		return err
	}

	n := surface.NPanels()
	for i := 0; i < n; i++ {
		c := surface.PanelCollocationPoint(i, false)
		normal := surface.PanelNormal(i)
		area := surface.PanelSurfaceArea(i)

		row := []string{
			strconv.Itoa(panelOffset + i),
			strconv.FormatFloat(c[0], 'g', -1, 64),
			strconv.FormatFloat(c[1], 'g', -1, 64),
			strconv.FormatFloat(c[2], 'g', -1, 64),
			strconv.FormatFloat(normal[0], 'g', -1, 64),
			strconv.FormatFloat(normal[1], 'g', -1, 64),
			strconv.FormatFloat(normal[2], 'g', -1, 64),
			strconv.FormatFloat(area, 'g', -1, 64),
		}
		for _, data := range viewData {
			if i < len(data) {
				row = append(row, strconv.FormatFloat(data[i], 'g', -1, 64))
			} else {
				row = append(row, "")
			}
		}

		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

var _ vortexje.SurfaceWriter = CSVWriter{}
