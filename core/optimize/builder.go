package optimize

import (
	"fmt"

	"github.com/induplan/pathopt/core/logger"
	"github.com/induplan/pathopt/core/model"
	"github.com/induplan/pathopt/core/solver"
)

// Model is the immutable structural template of a plan: every decision
// column and every constraint row, without an objective. Scenario problems
// derived from it share this storage.
type Model struct {
	Index      VarIndex
	Facilities []model.Facility
	Techs      model.TechnologySet
	Horizon    model.Horizon

	cols []solver.Column
	rows []solver.Constraint
}

// BuildModel validates cfg and the facilities and assembles the shared
// columns and constraint rows of the plan. Each facility-year pair gets one
// binary column per technology and an exactly-one assignment row. From a
// facility's end of life onward, per-column equality rows pin the pair to
// the set's low-carbon member.
func BuildModel(cfg Config, facilities []model.Facility, techs model.TechnologySet, logg logger.Logger) (*Model, error) {
	if logg == nil {
		logg = logger.NopLogger{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if techs.Len() == 0 {
		return nil, fmt.Errorf("build: empty technology set")
	}
	if len(facilities) == 0 {
		return nil, fmt.Errorf("build: no facilities")
	}
	for i, f := range facilities {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("build: facility %d: %w", i, err)
		}
	}

	h := cfg.Horizon()
	ix := NewVarIndex(len(facilities), techs.Len(), h)
	cols := make([]solver.Column, ix.Cols())
	for i := range cols {
		cols[i] = solver.Column{Low: 0, Up: 1, Integer: true}
	}

	lc := techs.LowCarbon()
	rows := make([]solver.Constraint, 0, len(facilities)*h.Years())
	forced := 0
	for i, f := range facilities {
		for y := h.Start; y <= h.End; y++ {
			terms := make([]solver.Term, techs.Len())
			for t := 0; t < techs.Len(); t++ {
				terms[t] = solver.Term{Col: ix.Col(i, model.Technology(t), y), Coef: 1}
			}
			rows = append(rows, solver.Constraint{Terms: terms, Sense: solver.SenseEq, RHS: 1})
			if y < f.EndOfLife {
				continue
			}
			forced++
			for t := 0; t < techs.Len(); t++ {
				rhs := 0.0
				if model.Technology(t) == lc {
					rhs = 1
				}
				rows = append(rows, solver.Constraint{
					Terms: []solver.Term{{Col: ix.Col(i, model.Technology(t), y), Coef: 1}},
					Sense: solver.SenseEq,
					RHS:   rhs,
				})
			}
		}
	}

	logg.Debugf("model built: %d facilities, %d columns, %d rows, %d forced facility-years",
		len(facilities), len(cols), len(rows), forced)
	return &Model{
		Index:      ix,
		Facilities: append([]model.Facility(nil), facilities...),
		Techs:      techs,
		Horizon:    h,
		cols:       cols,
		rows:       rows,
	}, nil
}

// Problem derives a solver problem carrying the given objective. The problem
// shares the model's column and row storage, so engines must treat it as
// read-only.
func (m *Model) Problem(obj []float64) *solver.Problem {
	return &solver.Problem{Cols: m.cols, Rows: m.rows, Obj: obj}
}

// Cols returns the number of decision columns.
func (m *Model) Cols() int { return len(m.cols) }

// Rows returns the number of constraint rows.
func (m *Model) Rows() int { return len(m.rows) }
