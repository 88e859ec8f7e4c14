// Package numerics provides the dense linear-algebra building blocks used by
// the solver: a thin wrapper over gonum's Dense matrices, a panel/node
// sharding helper for data-parallel loops, and a warm-started BiCGSTAB
// solver for the influence-coefficient system.
package numerics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense matrix wrapping gonum's *mat.Dense, used for the
// influence-coefficient system and for per-surface velocity blocks handed
// to a BoundaryLayer.
type Matrix struct {
	M *mat.Dense
}

// NewMatrix allocates an nr x nc matrix, optionally backed by existing data.
func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			panic(fmt.Errorf("numerics: NewMatrix nr,nc = %d,%d but len(data) = %d", nr, nc, len(dataO[0])))
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	return Matrix{M: m}
}

// Dims, At and T satisfy gonum's mat.Matrix interface, letting a Matrix be
// passed directly to SolveBiCGSTAB.
func (m Matrix) Dims() (r, c int)    { return m.M.Dims() }
func (m Matrix) At(i, j int) float64 { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix       { return m.M.T() }

func (m Matrix) Set(i, j int, val float64) { m.M.Set(i, j, val) }

func (m Matrix) SetRow(i int, data []float64) { m.M.SetRow(i, data) }

func (m Matrix) Row(i int) []float64 {
	_, nc := m.Dims()
	out := make([]float64, nc)
	copy(out, m.M.RawRowView(i))
	return out
}

// ConditionNumber estimates the 2-norm condition number of m via SVD.
// Adapted from the teacher's utils/matrix_extended2.go; used as a solver
// diagnostic logged alongside BiCGSTAB iteration counts, not as a
// correctness gate.
func (m Matrix) ConditionNumber() float64 {
	var svd mat.SVD
	if !svd.Factorize(m.M, mat.SVDNone) {
		return 1e16
	}
	values := svd.Values(nil)
	if len(values) == 0 {
		return 1e16
	}
	minVal, maxVal := values[len(values)-1], values[0]
	if minVal < 1e-16 {
		return 1e16
	}
	return maxVal / minVal
}
