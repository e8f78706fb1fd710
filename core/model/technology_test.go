package model

import "testing"

func TestTechnologiesDefaultSet(t *testing.T) {
	set := Technologies()
	if set.Len() != 4 {
		t.Fatalf("expected 4 technologies, got %d", set.Len())
	}
	if got := set.Name(set.Baseline()); got != "baseline" {
		t.Errorf("baseline resolved to %q", got)
	}
	if got := set.Name(set.LowCarbon()); got != "low_carbon" {
		t.Errorf("low carbon resolved to %q", got)
	}
	if set.Baseline() == set.LowCarbon() {
		t.Errorf("baseline and low carbon must differ")
	}
}

func TestTechnologySetLookup(t *testing.T) {
	set := Technologies()
	for i, name := range set.Names() {
		tech, ok := set.Lookup(name)
		if !ok {
			t.Fatalf("lookup %q failed", name)
		}
		if int(tech) != i {
			t.Errorf("lookup %q: got index %d want %d", name, tech, i)
		}
	}
	if _, ok := set.Lookup("fusion"); ok {
		t.Errorf("lookup of unknown name succeeded")
	}
	if got := set.Name(Technology(99)); got != "unknown" {
		t.Errorf("out of range name: got %q", got)
	}
}

func TestNewTechnologySetErrors(t *testing.T) {
	cases := []struct {
		name      string
		names     []string
		baseline  string
		lowCarbon string
	}{
		{"empty", nil, "a", "b"},
		{"duplicate", []string{"a", "a"}, "a", "a"},
		{"blank member", []string{"a", ""}, "a", "a"},
		{"missing baseline", []string{"a", "b"}, "c", "b"},
		{"missing low carbon", []string{"a", "b"}, "a", "c"},
	}
	for _, tc := range cases {
		if _, err := NewTechnologySet(tc.names, tc.baseline, tc.lowCarbon); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestNewTechnologySetCopiesNames(t *testing.T) {
	names := []string{"coal", "gas", "hydrogen"}
	set, err := NewTechnologySet(names, "coal", "hydrogen")
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	names[0] = "mutated"
	if got := set.Name(0); got != "coal" {
		t.Errorf("set shares caller slice: got %q", got)
	}
}
