package numerics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// BiCGSTABResult reports the outcome of a BiCGSTAB solve.
type BiCGSTABResult struct {
	Iterations int
	Residual   float64
	Converged  bool
}

// SolveBiCGSTAB solves A x = b for x, starting from the supplied initial
// guess x0 (which is not modified), using the unpreconditioned stabilised
// biconjugate-gradient method. gonum ships no iterative Krylov solver, so
// this is a direct reimplementation of the contract the original C++
// implementation gets for free from Eigen::BiCGSTAB: solveWithGuess,
// setMaxIterations, setTolerance, and an iterations/estimated-error report
// on failure (see original_source/vortexje/solver.cpp, Solver::solve).
//
// The returned residual is the relative residual norm ||b-Ax||/||b||.
func SolveBiCGSTAB(A mat.Matrix, b, x0 *mat.VecDense, maxIterations int, tolerance float64) (x *mat.VecDense, result BiCGSTABResult) {
	n, _ := A.Dims()
	if n == 0 {
		return mat.NewVecDense(0, nil), BiCGSTABResult{Converged: true}
	}

	bNorm := mat.Norm(b, 2)
	if bNorm == 0 {
		bNorm = 1
	}

	x = mat.NewVecDense(n, nil)
	x.CloneFromVec(x0)

	r := mat.NewVecDense(n, nil)
	r.MulVec(A, x)
	r.SubVec(b, r)

	residual := mat.Norm(r, 2) / bNorm
	if residual < tolerance {
		return x, BiCGSTABResult{Iterations: 0, Residual: residual, Converged: true}
	}

	rHat := mat.NewVecDense(n, nil)
	rHat.CloneFromVec(r)

	rho, alpha, omega := 1.0, 1.0, 1.0
	v := mat.NewVecDense(n, nil)
	p := mat.NewVecDense(n, nil)

	s := mat.NewVecDense(n, nil)
	t := mat.NewVecDense(n, nil)
	tmp := mat.NewVecDense(n, nil)

	for iter := 1; iter <= maxIterations; iter++ {
		rhoNew := mat.Dot(rHat, r)
		if rhoNew == 0 {
			return x, BiCGSTABResult{Iterations: iter, Residual: residual, Converged: false}
		}

		if iter == 1 {
			p.CloneFromVec(r)
		} else {
			beta := (rhoNew / rho) * (alpha / omega)
			tmp.ScaleVec(omega, v)
			p.SubVec(p, tmp)
			p.ScaleVec(beta, p)
			p.AddVec(p, r)
		}
		rho = rhoNew

		v.MulVec(A, p)
		alphaDenom := mat.Dot(rHat, v)
		if alphaDenom == 0 {
			return x, BiCGSTABResult{Iterations: iter, Residual: residual, Converged: false}
		}
		alpha = rho / alphaDenom

		s.ScaleVec(alpha, v)
		s.SubVec(r, s) // s = r - alpha*v

		sNorm := mat.Norm(s, 2) / bNorm
		if sNorm < tolerance {
			tmp.ScaleVec(alpha, p)
			x.AddVec(x, tmp)
			return x, BiCGSTABResult{Iterations: iter, Residual: sNorm, Converged: true}
		}

		t.MulVec(A, s)
		tDotT := mat.Dot(t, t)
		if tDotT == 0 {
			tmp.ScaleVec(alpha, p)
			x.AddVec(x, tmp)
			return x, BiCGSTABResult{Iterations: iter, Residual: sNorm, Converged: false}
		}
		omega = mat.Dot(t, s) / tDotT

		tmp.ScaleVec(alpha, p)
		x.AddVec(x, tmp)
		tmp.ScaleVec(omega, s)
		x.AddVec(x, tmp)

		tmp.ScaleVec(omega, t)
		r.SubVec(s, tmp)

		residual = mat.Norm(r, 2) / bNorm
		if residual < tolerance {
			return x, BiCGSTABResult{Iterations: iter, Residual: residual, Converged: true}
		}

		if omega == 0 {
			return x, BiCGSTABResult{Iterations: iter, Residual: residual, Converged: false}
		}
		if math.IsNaN(residual) {
			return x, BiCGSTABResult{Iterations: iter, Residual: residual, Converged: false}
		}
	}
	return x, BiCGSTABResult{Iterations: maxIterations, Residual: residual, Converged: false}
}

func (r BiCGSTABResult) String() string {
	return fmt.Sprintf("%d iterations, estimated error %.3e, converged=%v", r.Iterations, r.Residual, r.Converged)
}
