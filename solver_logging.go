package vortexje

import (
	"fmt"
	"path/filepath"
)

// Log writes the doublet, source and pressure distributions of every
// registered surface and wake, tagged with stepNumber, under the
// solver's log folder using writer's format.
func (s *Solver) Log(stepNumber int, writer SurfaceWriter) error {
	nodeOffset, panelOffset := 0, 0

	for _, body := range s.bodies {
		idx := 0
		for _, surf := range body.NonLiftingSurfaces() {
			offset := s.offsetOf[surf.ID()]
			n := surf.NPanels()
			doublet, source, pressure := s.distributionSlices(offset, n)

			path := filepath.Join(s.logFolder, body.ID, fmt.Sprintf("non_lifting_surface_%d", idx), fmt.Sprintf("step_%d%s", stepNumber, writer.FileExtension()))
			names := []string{"DoubletDistribution", "SourceDistribution", "PressureDistribution"}
			data := [][]float64{doublet, source, pressure}
			if err := writer.Write(surf, path, nodeOffset, panelOffset, names, data); err != nil {
				return err
			}

			nodeOffset += surf.NNodes()
			panelOffset += n
			idx++
		}

		idx = 0
		for _, ls := range body.LiftingSurfaces() {
			offset := s.offsetOf[ls.ID()]
			n := ls.NPanels()
			doublet, source, pressure := s.distributionSlices(offset, n)

			path := filepath.Join(s.logFolder, body.ID, fmt.Sprintf("lifting_surface_%d", idx), fmt.Sprintf("step_%d%s", stepNumber, writer.FileExtension()))
			names := []string{"DoubletDistribution", "SourceDistribution", "PressureDistribution"}
			data := [][]float64{doublet, source, pressure}
			if err := writer.Write(ls, path, nodeOffset, panelOffset, names, data); err != nil {
				return err
			}

			nodeOffset += ls.NNodes()
			panelOffset += n

			wake := s.wakeFor(body, ls)
			wakeDoublets := append([]float64(nil), wake.DoubletCoefficients()...)
			wakePath := filepath.Join(s.logFolder, body.ID, fmt.Sprintf("wake_%d", idx), fmt.Sprintf("step_%d%s", stepNumber, writer.FileExtension()))
			if err := writer.Write(wake, wakePath, nodeOffset, panelOffset, []string{"DoubletDistribution"}, [][]float64{wakeDoublets}); err != nil {
				return err
			}

			nodeOffset += wake.NNodes()
			panelOffset += wake.NPanels()
			idx++
		}
	}

	return nil
}

func (s *Solver) distributionSlices(offset, n int) (doublet, source, pressure []float64) {
	doublet = make([]float64, n)
	source = make([]float64, n)
	pressure = make([]float64, n)
	for i := 0; i < n; i++ {
		doublet[i] = s.doubletCoefficients.AtVec(offset + i)
		source[i] = s.sourceCoefficients.AtVec(offset + i)
		pressure[i] = s.pressureCoefficients.AtVec(offset + i)
	}
	return
}
