package meshes

import (
	vortexje "github.com/baayen-heinz/vortexje-go"
)

// LiftingSurface wraps Surface with the spanwise trailing-edge topology a
// Wake attaches to.
type LiftingSurface struct {
	*Surface

	nSpanwisePanels int
	nSpanwiseNodes  int

	upperPanel []int
	lowerPanel []int
	teNode     []int
	bisector   []vortexje.Vector3
}

// NewLiftingSurfaceFromGrid builds a lifting surface from an upper and a
// lower surface sharing the same spanwise and chordwise node grid, joined
// at chordIdx == nChordwise-1 (the trailing edge). Both surfaces are
// expected to share physical trailing-edge node positions.
func NewLiftingSurfaceFromGrid(id string, nChordwise, nSpanwise int,
	upper, lower func(spanIdx, chordIdx int) vortexje.Vector3) *LiftingSurface {

	nv := nSpanwise + 1

	// Build one combined node grid: chordwise index 0..nChordwise-1 walks
	// the upper surface leading-to-trailing, nChordwise..2*nChordwise-3
	// continues along the lower surface trailing-to-leading, sharing the
	// leading and trailing edge node rows.
	nChordTotal := 2*nChordwise - 2

	pos := func(i, j int) vortexje.Vector3 {
		if i < nChordwise {
			return upper(j, i)
		}
		return lower(j, nChordTotal-i)
	}

	base := NewSurfaceFromGrid(id, nChordTotal, nv, pos, true)

	ls := &LiftingSurface{
		Surface:         base,
		nSpanwisePanels: nSpanwise,
		nSpanwiseNodes:  nv,
	}

	uSpan := nChordTotal
	panelsPerRow := uSpan
	chordwisePanels := nChordwise - 1

	for k := 0; k < nSpanwise; k++ {
		// The trailing-edge-adjacent panel row is the last chordwise
		// strip of the upper half and the first chordwise strip of the
		// lower half, both in row k (panel rows run 0..nv-2 spanwise).
		upperLastPanel := k*panelsPerRow + (chordwisePanels - 1)
		lowerFirstPanel := k*panelsPerRow + chordwisePanels

		ls.upperPanel = append(ls.upperPanel, upperLastPanel)
		ls.lowerPanel = append(ls.lowerPanel, lowerFirstPanel)

		teNodeIdx := k*nChordTotal + (nChordwise - 1)
		ls.teNode = append(ls.teNode, teNodeIdx)
	}
	// Trailing edge node row for the last spanwise station duplicates the
	// first row's chordwise index at j == nSpanwise.
	teNodeIdxLast := nSpanwise*nChordTotal + (nChordwise - 1)
	ls.teNode = append(ls.teNode, teNodeIdxLast)

	ls.computeBisectors()

	return ls
}

func (ls *LiftingSurface) computeBisectors() {
	ls.bisector = make([]vortexje.Vector3, len(ls.teNode))
	for k := range ls.teNode {
		upper := ls.upperPanel[clampIdx(k, len(ls.upperPanel))]
		lower := ls.lowerPanel[clampIdx(k, len(ls.lowerPanel))]
		nUp := ls.PanelNormal(upper)
		nLo := ls.PanelNormal(lower)
		b := nUp.Sub(nLo).Normalize()
		if b.Norm() == 0 {
			b = nUp
		}
		ls.bisector[k] = b
	}
}

func clampIdx(k, n int) int {
	if k >= n {
		return n - 1
	}
	return k
}

func (ls *LiftingSurface) NSpanwisePanels() int { return ls.nSpanwisePanels }
func (ls *LiftingSurface) NSpanwiseNodes() int  { return ls.nSpanwiseNodes }

func (ls *LiftingSurface) TrailingEdgeUpperPanel(k int) int { return ls.upperPanel[k] }
func (ls *LiftingSurface) TrailingEdgeLowerPanel(k int) int { return ls.lowerPanel[k] }
func (ls *LiftingSurface) TrailingEdgeNode(k int) int       { return ls.teNode[k] }
func (ls *LiftingSurface) TrailingEdgeBisector(k int) vortexje.Vector3 {
	return ls.bisector[k]
}

var _ vortexje.LiftingSurface = (*LiftingSurface)(nil)
