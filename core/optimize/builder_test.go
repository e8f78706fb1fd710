package optimize

import (
	"testing"

	"github.com/induplan/pathopt/core/model"
	"github.com/induplan/pathopt/core/solver"
)

func TestBuildModelShape(t *testing.T) {
	m, _, _, _ := buildTestModel(t)
	// 2 facilities, 3 years, 4 technologies.
	if got := m.Cols(); got != 24 {
		t.Fatalf("columns: got %d want 24", got)
	}
	// 6 assignment rows plus 4 forcing rows for facility 0 in 2026.
	if got := m.Rows(); got != 10 {
		t.Fatalf("rows: got %d want 10", got)
	}
	p := m.Problem(make([]float64, m.Cols()))
	if err := p.Validate(); err != nil {
		t.Fatalf("derived problem invalid: %v", err)
	}
	for i, c := range p.Cols {
		if !c.Integer || c.Low != 0 || c.Up != 1 {
			t.Fatalf("column %d is not binary: %+v", i, c)
		}
	}
}

func TestBuildModelForcedRows(t *testing.T) {
	m, _, _, _ := buildTestModel(t)
	lc := m.Techs.LowCarbon()
	// Collect the single-term rows: they pin facility 0's 2026 columns.
	pinned := make(map[int]float64)
	for _, row := range m.Problem(make([]float64, m.Cols())).Rows {
		if len(row.Terms) != 1 {
			continue
		}
		if row.Sense != solver.SenseEq {
			t.Fatalf("forcing row with sense %v", row.Sense)
		}
		pinned[row.Terms[0].Col] = row.RHS
	}
	if len(pinned) != m.Techs.Len() {
		t.Fatalf("pinned %d columns, want %d", len(pinned), m.Techs.Len())
	}
	for tn := 0; tn < m.Techs.Len(); tn++ {
		tech := model.Technology(tn)
		col := m.Index.Col(0, tech, 2026)
		rhs, ok := pinned[col]
		if !ok {
			t.Fatalf("column for tech %d in 2026 not pinned", tn)
		}
		want := 0.0
		if tech == lc {
			want = 1
		}
		if rhs != want {
			t.Fatalf("tech %d pinned to %v, want %v", tn, rhs, want)
		}
	}
}

func TestBuildModelEndOfLifeBeforeHorizon(t *testing.T) {
	data, cfg := testData()
	facilities := []model.Facility{{Capacity: 80, EndOfLife: 2001}}
	_ = data
	m, err := BuildModel(cfg, facilities, model.Technologies(), nil)
	if err != nil {
		t.Fatalf("build model: %v", err)
	}
	// Every year is forced: 3 assignment rows plus 3*4 forcing rows.
	if got := m.Rows(); got != 15 {
		t.Fatalf("rows: got %d want 15", got)
	}
}

func TestBuildModelEndOfLifeAfterHorizon(t *testing.T) {
	_, cfg := testData()
	facilities := []model.Facility{{Capacity: 80, EndOfLife: 2090}}
	m, err := BuildModel(cfg, facilities, model.Technologies(), nil)
	if err != nil {
		t.Fatalf("build model: %v", err)
	}
	if got := m.Rows(); got != 3 {
		t.Fatalf("rows: got %d want 3", got)
	}
}

func TestBuildModelErrors(t *testing.T) {
	data, cfg := testData()
	if _, err := BuildModel(cfg, nil, model.Technologies(), nil); err == nil {
		t.Error("expected error for no facilities")
	}
	if _, err := BuildModel(cfg, []model.Facility{{Capacity: 0, EndOfLife: 2030}}, model.Technologies(), nil); err == nil {
		t.Error("expected error for invalid facility")
	}
	bad := cfg
	bad.StartYear, bad.EndYear = 2030, 2020
	if _, err := BuildModel(bad, data.facilities, model.Technologies(), nil); err == nil {
		t.Error("expected error for inverted horizon")
	}
	none := cfg
	none.Scenarios = nil
	if _, err := BuildModel(none, data.facilities, model.Technologies(), nil); err == nil {
		t.Error("expected error for missing scenarios")
	}
	if _, err := BuildModel(cfg, data.facilities, model.TechnologySet{}, nil); err == nil {
		t.Error("expected error for empty technology set")
	}
}

func TestProblemSharesStorage(t *testing.T) {
	m, _, _, _ := buildTestModel(t)
	p1 := m.Problem(make([]float64, m.Cols()))
	p2 := m.Problem(make([]float64, m.Cols()))
	if &p1.Rows[0] != &p2.Rows[0] || &p1.Cols[0] != &p2.Cols[0] {
		t.Fatalf("derived problems do not share template storage")
	}
	if &p1.Obj[0] == &p2.Obj[0] {
		t.Fatalf("derived problems share objective storage")
	}
}

func TestBuildModelCopiesFacilities(t *testing.T) {
	data, cfg := testData()
	facilities := append([]model.Facility(nil), data.facilities...)
	m, err := BuildModel(cfg, facilities, model.Technologies(), nil)
	if err != nil {
		t.Fatalf("build model: %v", err)
	}
	facilities[0].Capacity = 1
	if m.Facilities[0].Capacity != 100 {
		t.Fatalf("model shares caller facility slice")
	}
}
