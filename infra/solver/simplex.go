// Package solver provides the LP engines backing the planner. The default
// engine reduces the assignment-structured integer programs to linear
// programs whose optima are integral, and solves them with gonum's simplex
// method.
package solver

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/induplan/pathopt/core/model"
	coresolver "github.com/induplan/pathopt/core/solver"
)

// ErrFractional reports a relaxation optimum that is not integral within
// tolerance for an integer column.
var ErrFractional = errors.New("simplex: fractional value for integer column")

// intTol is the accepted distance from the nearest integer for integer
// columns.
const intTol = 1e-6

// feasTol is the slack tolerated when checking fixed rows for consistency.
const feasTol = 1e-6

// Simplex solves the planner's programs with gonum's dense simplex method.
// A presolve pass absorbs singleton equality rows into variable bounds and
// drops rows made redundant by the fixings, leaving the reduced program
// full rank.
type Simplex struct {
	tol float64
}

// NewSimplex returns an engine with the given pivot tolerance.
func NewSimplex(tol float64) *Simplex {
	if tol <= 0 {
		tol = 1e-7
	}
	return &Simplex{tol: tol}
}

// lpSimplex points to the gonum solver. Tests override it to simulate
// backend failures.
var lpSimplex = lp.Simplex

// Solve reduces the problem, solves the remaining relaxation and checks
// integrality. Infeasibility is reported through the solution status.
func (s *Simplex) Solve(ctx context.Context, p *coresolver.Problem) (coresolver.Solution, error) {
	if err := ctx.Err(); err != nil {
		return coresolver.Solution{}, err
	}
	if err := p.Validate(); err != nil {
		return coresolver.Solution{}, err
	}

	pre, feasible := presolve(p)
	if !feasible {
		return coresolver.Solution{Status: model.StatusInfeasible}, nil
	}

	values := make([]float64, len(p.Cols))
	for i := range p.Cols {
		if pre.isFixed[i] {
			values[i] = pre.fixedVal[i]
		}
	}

	if len(pre.free) > 0 {
		x, err := s.solveReduced(p, pre)
		if err != nil {
			if errors.Is(err, lp.ErrInfeasible) {
				return coresolver.Solution{Status: model.StatusInfeasible}, nil
			}
			if errors.Is(err, lp.ErrUnbounded) {
				return coresolver.Solution{}, fmt.Errorf("simplex: problem is unbounded: %w", err)
			}
			return coresolver.Solution{}, fmt.Errorf("simplex: %w", err)
		}
		for j, col := range pre.free {
			values[col] = x[j]
		}
	}

	for i, c := range p.Cols {
		if !c.Integer {
			continue
		}
		r := math.Round(values[i])
		if math.Abs(values[i]-r) > intTol {
			return coresolver.Solution{}, fmt.Errorf("%w: column %d = %v", ErrFractional, i, values[i])
		}
		values[i] = r
	}

	var objective float64
	for i, v := range values {
		objective += p.Obj[i] * v
	}
	return coresolver.Solution{Status: model.StatusOptimal, Objective: objective, Values: values}, nil
}

// presolved is the outcome of the bound-tightening pass.
type presolved struct {
	isFixed  []bool
	fixedVal []float64
	low, up  []float64
	free     []int // original column per free position
	pos      []int // original column to free position, -1 when fixed
	rows     []int // active row indices
}

// presolve fixes variables pinned by singleton equality rows, folds singleton
// inequalities into bounds and drops rows whose columns are all fixed after
// checking them for consistency. It returns false when a conflict proves the
// problem infeasible.
func presolve(p *coresolver.Problem) (*presolved, bool) {
	n := len(p.Cols)
	pre := &presolved{
		isFixed:  make([]bool, n),
		fixedVal: make([]float64, n),
		low:      make([]float64, n),
		up:       make([]float64, n),
	}
	for i, c := range p.Cols {
		pre.low[i], pre.up[i] = c.Low, c.Up
	}
	active := make([]bool, len(p.Rows))
	for i := range active {
		active[i] = true
	}

	for changed := true; changed; {
		changed = false
		for r, row := range p.Rows {
			if !active[r] {
				continue
			}
			var sum, coef float64
			unfixed, count := -1, 0
			for _, term := range row.Terms {
				if term.Coef == 0 {
					continue
				}
				if pre.low[term.Col] == pre.up[term.Col] {
					sum += term.Coef * pre.low[term.Col]
					continue
				}
				count++
				unfixed, coef = term.Col, term.Coef
			}
			switch {
			case count == 0:
				resid := row.RHS - sum
				ok := false
				switch row.Sense {
				case coresolver.SenseEq:
					ok = math.Abs(resid) <= feasTol
				case coresolver.SenseLe:
					ok = resid >= -feasTol
				case coresolver.SenseGe:
					ok = resid <= feasTol
				}
				if !ok {
					return pre, false
				}
				active[r] = false
				changed = true
			case count == 1 && row.Sense == coresolver.SenseEq:
				v := (row.RHS - sum) / coef
				if v < pre.low[unfixed]-feasTol || v > pre.up[unfixed]+feasTol {
					return pre, false
				}
				pre.low[unfixed], pre.up[unfixed] = v, v
				active[r] = false
				changed = true
			case count == 1:
				bound := (row.RHS - sum) / coef
				upper := row.Sense == coresolver.SenseLe
				if coef < 0 {
					upper = !upper
				}
				if upper {
					if bound < pre.up[unfixed] {
						pre.up[unfixed] = bound
					}
				} else {
					if bound > pre.low[unfixed] {
						pre.low[unfixed] = bound
					}
				}
				if pre.low[unfixed] > pre.up[unfixed]+feasTol {
					return pre, false
				}
				active[r] = false
				changed = true
			}
		}
	}

	pre.pos = make([]int, n)
	for i := 0; i < n; i++ {
		pre.pos[i] = -1
		if pre.low[i] == pre.up[i] {
			pre.isFixed[i] = true
			pre.fixedVal[i] = pre.low[i]
			continue
		}
		pre.pos[i] = len(pre.free)
		pre.free = append(pre.free, i)
	}
	for r := range p.Rows {
		if active[r] {
			pre.rows = append(pre.rows, r)
		}
	}
	return pre, true
}

type denseRow struct {
	coefs []float64
	rhs   float64
}

// solveReduced solves the relaxation over the free columns. Assignment
// shaped reductions, where every remaining row is an equality over
// non-negative columns with implied upper bounds, go straight to the
// standard form solver. Everything else takes the general path through
// lp.Convert.
func (s *Simplex) solveReduced(p *coresolver.Problem, pre *presolved) ([]float64, error) {
	nFree := len(pre.free)
	cFree := make([]float64, nFree)
	for j, col := range pre.free {
		cFree[j] = p.Obj[col]
	}

	var eqRows, leRows []denseRow
	for _, r := range pre.rows {
		row := p.Rows[r]
		coefs := make([]float64, nFree)
		rhs := row.RHS
		for _, term := range row.Terms {
			if pre.isFixed[term.Col] {
				rhs -= term.Coef * pre.fixedVal[term.Col]
				continue
			}
			coefs[pre.pos[term.Col]] += term.Coef
		}
		switch row.Sense {
		case coresolver.SenseEq:
			eqRows = append(eqRows, denseRow{coefs, rhs})
		case coresolver.SenseLe:
			leRows = append(leRows, denseRow{coefs, rhs})
		case coresolver.SenseGe:
			for k := range coefs {
				coefs[k] = -coefs[k]
			}
			leRows = append(leRows, denseRow{coefs, -rhs})
		}
	}

	if len(leRows) == 0 && len(eqRows) > 0 && standardFormReady(eqRows, pre) {
		return s.solveEqForm(cFree, eqRows)
	}
	return s.solveGeneral(cFree, eqRows, leRows, pre)
}

// standardFormReady reports whether the reduced rows already are a standard
// form program: all free columns start at zero, appear in some equality row
// and have their upper bounds implied by a row with non-negative
// coefficients.
func standardFormReady(eqRows []denseRow, pre *presolved) bool {
	nFree := len(pre.free)
	implied := make([]float64, nFree)
	covered := make([]bool, nFree)
	for j := range implied {
		implied[j] = math.Inf(1)
	}
	for _, col := range pre.free {
		if pre.low[col] != 0 {
			return false
		}
	}
	for _, row := range eqRows {
		nonneg := row.rhs >= 0
		for _, v := range row.coefs {
			if v < 0 {
				nonneg = false
				break
			}
		}
		for j, v := range row.coefs {
			if v == 0 {
				continue
			}
			covered[j] = true
			if nonneg {
				if ub := row.rhs / v; ub < implied[j] {
					implied[j] = ub
				}
			}
		}
	}
	for j, col := range pre.free {
		if !covered[j] {
			return false
		}
		if !math.IsInf(pre.up[col], 1) && implied[j] > pre.up[col]+feasTol {
			return false
		}
	}
	return true
}

// solveEqForm solves minimize c*x subject to A x = b, x >= 0.
func (s *Simplex) solveEqForm(c []float64, eq []denseRow) ([]float64, error) {
	a := mat.NewDense(len(eq), len(c), nil)
	b := make([]float64, len(eq))
	for i, row := range eq {
		a.SetRow(i, row.coefs)
		b[i] = row.rhs
	}
	_, x, err := lpSimplex(c, a, b, s.tol, nil)
	if err != nil {
		return nil, err
	}
	if len(x) < len(c) {
		return nil, fmt.Errorf("standard solution has %d values for %d columns", len(x), len(c))
	}
	return x[:len(c)], nil
}

// solveGeneral encodes bounds as inequality rows and goes through
// lp.Convert, which splits every variable into a positive and a negative
// part. The original values are recovered from that split.
func (s *Simplex) solveGeneral(c []float64, eqRows, leRows []denseRow, pre *presolved) ([]float64, error) {
	nFree := len(c)
	for j, col := range pre.free {
		if up := pre.up[col]; !math.IsInf(up, 1) {
			coefs := make([]float64, nFree)
			coefs[j] = 1
			leRows = append(leRows, denseRow{coefs, up})
		}
		if low := pre.low[col]; !math.IsInf(low, -1) {
			coefs := make([]float64, nFree)
			coefs[j] = -1
			leRows = append(leRows, denseRow{coefs, -low})
		}
	}
	if len(eqRows) == 0 && len(leRows) == 0 {
		return nil, errors.New("free columns without constraints")
	}

	var a mat.Matrix
	var b []float64
	if len(eqRows) > 0 {
		ad := mat.NewDense(len(eqRows), nFree, nil)
		b = make([]float64, len(eqRows))
		for i, row := range eqRows {
			ad.SetRow(i, row.coefs)
			b[i] = row.rhs
		}
		a = ad
	}
	var g mat.Matrix
	var h []float64
	if len(leRows) > 0 {
		gd := mat.NewDense(len(leRows), nFree, nil)
		h = make([]float64, len(leRows))
		for i, row := range leRows {
			gd.SetRow(i, row.coefs)
			h[i] = row.rhs
		}
		g = gd
	}

	cStd, aStd, bStd := lp.Convert(c, g, h, a, b)
	_, xStd, err := lpSimplex(cStd, aStd, bStd, s.tol, nil)
	if err != nil {
		return nil, err
	}
	if len(xStd) < 2*nFree {
		return nil, fmt.Errorf("standard solution has %d values for %d columns", len(xStd), nFree)
	}
	x := make([]float64, nFree)
	for j := 0; j < nFree; j++ {
		x[j] = xStd[j] - xStd[nFree+j]
	}
	return x, nil
}
