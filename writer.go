package vortexje

// SurfaceWriter persists one step's worth of panel-indexed view data for a
// single surface or wake. Mesh file I/O itself is out of scope for the
// solver; writers/ ships two concrete implementations.
type SurfaceWriter interface {
	// FileExtension returns the extension (including the leading dot)
	// this writer appends to every step file it produces.
	FileExtension() string

	// Write persists surface at path, offsetting node and panel indices
	// by nodeOffset/panelOffset (the cumulative counts of all surfaces and
	// wakes logged before this one; a writer may ignore them), carrying one
	// named view per entry of viewNames/viewData.
	Write(surface Surface, path string, nodeOffset, panelOffset int, viewNames []string, viewData [][]float64) error
}
