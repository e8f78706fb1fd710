// Package solver defines the linear programming surface shared by the
// planner and its engines.
package solver

import (
	"context"
	"fmt"
	"math"

	"github.com/induplan/pathopt/core/model"
)

// Sense is the relation of a constraint row.
type Sense int8

const (
	SenseEq Sense = iota
	SenseLe
	SenseGe
)

func (s Sense) String() string {
	switch s {
	case SenseLe:
		return "<="
	case SenseGe:
		return ">="
	default:
		return "="
	}
}

// Term is one non-zero entry of a constraint row.
type Term struct {
	Col  int
	Coef float64
}

// Constraint is a sparse linear row.
type Constraint struct {
	Terms []Term
	Sense Sense
	RHS   float64
}

// Column describes one decision variable.
type Column struct {
	Low     float64
	Up      float64
	Integer bool
}

// Problem is a mixed integer linear program in sparse row form. Engines must
// treat every field as read-only: the planner shares column and row storage
// between the problems it derives from one template.
type Problem struct {
	Cols []Column
	Rows []Constraint
	Obj  []float64
}

// Validate checks structural consistency of the problem.
func (p *Problem) Validate() error {
	if len(p.Obj) != len(p.Cols) {
		return fmt.Errorf("solver: objective has %d coefficients for %d columns", len(p.Obj), len(p.Cols))
	}
	for i, c := range p.Cols {
		if math.IsNaN(c.Low) || math.IsNaN(c.Up) || c.Low > c.Up {
			return fmt.Errorf("solver: column %d has invalid bounds [%v, %v]", i, c.Low, c.Up)
		}
	}
	for i, v := range p.Obj {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("solver: objective coefficient %d is %v", i, v)
		}
	}
	for r, row := range p.Rows {
		if math.IsNaN(row.RHS) || math.IsInf(row.RHS, 0) {
			return fmt.Errorf("solver: row %d has right hand side %v", r, row.RHS)
		}
		for _, term := range row.Terms {
			if term.Col < 0 || term.Col >= len(p.Cols) {
				return fmt.Errorf("solver: row %d references column %d of %d", r, term.Col, len(p.Cols))
			}
			if math.IsNaN(term.Coef) || math.IsInf(term.Coef, 0) {
				return fmt.Errorf("solver: row %d has coefficient %v", r, term.Coef)
			}
		}
	}
	return nil
}

// Solution carries the outcome of a solve. Values is indexed like
// Problem.Cols and only populated when Status reports an objective.
type Solution struct {
	Status    model.Status
	Objective float64
	Values    []float64
}

// Solver solves mixed integer linear programs. Implementations report model
// infeasibility through Solution.Status, not through the error return.
type Solver interface {
	Solve(ctx context.Context, p *Problem) (Solution, error)
}
