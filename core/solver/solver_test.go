package solver

import (
	"math"
	"testing"
)

func binary() Column { return Column{Low: 0, Up: 1, Integer: true} }

func TestProblemValidate(t *testing.T) {
	p := &Problem{
		Cols: []Column{binary(), binary()},
		Rows: []Constraint{
			{Terms: []Term{{Col: 0, Coef: 1}, {Col: 1, Coef: 1}}, Sense: SenseEq, RHS: 1},
		},
		Obj: []float64{1.5, 2.5},
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("valid problem rejected: %v", err)
	}
}

func TestProblemValidateErrors(t *testing.T) {
	cases := []struct {
		name string
		p    *Problem
	}{
		{
			"objective length mismatch",
			&Problem{Cols: []Column{binary()}, Obj: []float64{1, 2}},
		},
		{
			"inverted bounds",
			&Problem{Cols: []Column{{Low: 1, Up: 0}}, Obj: []float64{0}},
		},
		{
			"nan objective",
			&Problem{Cols: []Column{binary()}, Obj: []float64{math.NaN()}},
		},
		{
			"column out of range",
			&Problem{
				Cols: []Column{binary()},
				Rows: []Constraint{{Terms: []Term{{Col: 3, Coef: 1}}, Sense: SenseEq, RHS: 1}},
				Obj:  []float64{0},
			},
		},
		{
			"nan coefficient",
			&Problem{
				Cols: []Column{binary()},
				Rows: []Constraint{{Terms: []Term{{Col: 0, Coef: math.NaN()}}, Sense: SenseEq, RHS: 1}},
				Obj:  []float64{0},
			},
		},
		{
			"infinite rhs",
			&Problem{
				Cols: []Column{binary()},
				Rows: []Constraint{{Terms: []Term{{Col: 0, Coef: 1}}, Sense: SenseLe, RHS: math.Inf(1)}},
				Obj:  []float64{0},
			},
		},
	}
	for _, tc := range cases {
		if err := tc.p.Validate(); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestSenseString(t *testing.T) {
	if SenseEq.String() != "=" || SenseLe.String() != "<=" || SenseGe.String() != ">=" {
		t.Fatalf("unexpected sense strings: %v %v %v", SenseEq, SenseLe, SenseGe)
	}
}
