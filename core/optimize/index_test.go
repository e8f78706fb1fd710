package optimize

import (
	"testing"

	"github.com/induplan/pathopt/core/model"
)

func TestVarIndexBijection(t *testing.T) {
	h := model.Horizon{Start: 2024, End: 2028}
	ix := NewVarIndex(3, 4, h)
	if got := ix.Cols(); got != 3*4*5 {
		t.Fatalf("cols: got %d want %d", got, 3*4*5)
	}
	seen := make(map[int]bool, ix.Cols())
	for i := 0; i < 3; i++ {
		for tn := 0; tn < 4; tn++ {
			for y := h.Start; y <= h.End; y++ {
				col := ix.Col(i, model.Technology(tn), y)
				if col < 0 || col >= ix.Cols() {
					t.Fatalf("col out of range: %d", col)
				}
				if seen[col] {
					t.Fatalf("column %d assigned twice", col)
				}
				seen[col] = true
				fi, ft, fy := ix.Triple(col)
				if fi != i || int(ft) != tn || fy != y {
					t.Fatalf("triple(%d) = (%d,%d,%d), want (%d,%d,%d)", col, fi, ft, fy, i, tn, y)
				}
			}
		}
	}
}

func TestVarIndexContiguousPairs(t *testing.T) {
	ix := NewVarIndex(2, 4, model.Horizon{Start: 2024, End: 2026})
	for i := 0; i < 2; i++ {
		for y := 2024; y <= 2026; y++ {
			first := ix.Col(i, 0, y)
			for tn := 1; tn < 4; tn++ {
				if got := ix.Col(i, model.Technology(tn), y); got != first+tn {
					t.Fatalf("columns of pair (%d,%d) not contiguous", i, y)
				}
			}
		}
	}
}
