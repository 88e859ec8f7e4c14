//go:build cgo

package numerics

import (
	"log/slog"

	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

// When built with cgo (and a system OpenBLAS/LAPACK available), route
// gonum's blas64 dense matrix-vector products — the dominant cost of every
// BiCGSTAB iteration against the N x N influence matrix — through netlib's
// cgo bindings instead of gonum's pure-Go fallback. Adapted from the
// teacher's utils/lapack_cgo.go, which did the same for its DG element
// operators.
func init() {
	blas64.Use(netblas.Implementation{})
	slog.Debug("numerics: using cgo-accelerated BLAS backend for dense matrix-vector products")
}
