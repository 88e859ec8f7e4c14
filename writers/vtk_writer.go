package writers

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	vortexje "github.com/baayen-heinz/vortexje-go"
)

// VTKWriter writes legacy ASCII VTK (.vtk) polydata: one vertex cell per
// panel at its collocation point, carrying the requested scalar fields as
// point data. The Surface contract exposes no panel-to-node connectivity,
// so panels are rendered as point samples rather than the quadrilateral
// cells a mesh-aware writer would emit.
type VTKWriter struct{}

func (VTKWriter) FileExtension() string { return ".vtk" }

func (VTKWriter) Write(surface vortexje.Surface, path string, nodeOffset, panelOffset int, viewNames []string, viewData [][]float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("writers: creating directory for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writers: creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	n := surface.NPanels()

	fmt.Fprintln(w, "# vtk DataFile Version 3.0")
	fmt.Fprintf(w, "vortexje %s\n", surface.ID())
	fmt.Fprintln(w, "ASCII")
	fmt.Fprintln(w, "DATASET POLYDATA")
	fmt.Fprintf(w, "POINTS %d float\n", n)
	for i := 0; i < n; i++ {
		c := surface.PanelCollocationPoint(i, false)
		fmt.Fprintf(w, "%g %g %g\n", c[0], c[1], c[2])
	}

	fmt.Fprintf(w, "VERTICES %d %d\n", n, 2*n)
	for i := 0; i < n; i++ {
		fmt.Fprintf(w, "1 %d\n", i)
	}

	if len(viewNames) > 0 {
		fmt.Fprintf(w, "POINT_DATA %d\n", n)
		for k, name := range viewNames {
			fmt.Fprintf(w, "SCALARS %s float 1\n", name)
			fmt.Fprintln(w, "LOOKUP_TABLE default")
			data := viewData[k]
			for i := 0; i < n; i++ {
				if i < len(data) {
					fmt.Fprintf(w, "%g\n", data[i])
				} else {
					fmt.Fprintln(w, "0")
				}
			}
		}
	}

	return nil
}

var _ vortexje.SurfaceWriter = VTKWriter{}
