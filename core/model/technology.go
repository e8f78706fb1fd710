package model

import "fmt"

// Technology identifies a production technology by its position in a
// TechnologySet. A value is only meaningful together with the set that
// produced it.
type Technology int

// TechnologySet is the ordered collection of technologies a plan chooses
// from. The baseline and low-carbon members are resolved by name when the
// set is built, so callers never rely on their positions.
type TechnologySet struct {
	names     []string
	baseline  Technology
	lowCarbon Technology
}

// NewTechnologySet builds a set from ordered names and resolves the baseline
// and low-carbon members. Names must be non-empty and unique.
func NewTechnologySet(names []string, baseline, lowCarbon string) (TechnologySet, error) {
	if len(names) == 0 {
		return TechnologySet{}, fmt.Errorf("technology set: no names")
	}
	seen := make(map[string]struct{}, len(names))
	for i, n := range names {
		if n == "" {
			return TechnologySet{}, fmt.Errorf("technology set: empty name at index %d", i)
		}
		if _, ok := seen[n]; ok {
			return TechnologySet{}, fmt.Errorf("technology set: duplicate name %q", n)
		}
		seen[n] = struct{}{}
	}
	s := TechnologySet{names: append([]string(nil), names...)}
	b, ok := s.Lookup(baseline)
	if !ok {
		return TechnologySet{}, fmt.Errorf("technology set: baseline %q not in set", baseline)
	}
	lc, ok := s.Lookup(lowCarbon)
	if !ok {
		return TechnologySet{}, fmt.Errorf("technology set: low carbon %q not in set", lowCarbon)
	}
	s.baseline = b
	s.lowCarbon = lc
	return s, nil
}

var defaultSet = mustSet(
	[]string{"baseline", "baseline_scrap", "baseline_capture", "low_carbon"},
	"baseline",
	"low_carbon",
)

func mustSet(names []string, baseline, lowCarbon string) TechnologySet {
	s, err := NewTechnologySet(names, baseline, lowCarbon)
	if err != nil {
		panic(err)
	}
	return s
}

// Technologies returns the default production set: the conventional baseline
// route, a scrap-enriched variant, a capture retrofit and the low-carbon
// replacement facilities must adopt after end of life.
func Technologies() TechnologySet { return defaultSet }

// Len returns the number of technologies in the set.
func (s TechnologySet) Len() int { return len(s.names) }

// Name returns the name of t, or "unknown" when t is out of range.
func (s TechnologySet) Name(t Technology) string {
	if int(t) < 0 || int(t) >= len(s.names) {
		return "unknown"
	}
	return s.names[t]
}

// Names returns a copy of the ordered technology names.
func (s TechnologySet) Names() []string { return append([]string(nil), s.names...) }

// Lookup resolves a technology by name.
func (s TechnologySet) Lookup(name string) (Technology, bool) {
	for i, n := range s.names {
		if n == name {
			return Technology(i), true
		}
	}
	return 0, false
}

// Baseline returns the member whose emissions anchor abatement terms.
func (s TechnologySet) Baseline() Technology { return s.baseline }

// LowCarbon returns the member forced on facilities past their end of life.
func (s TechnologySet) LowCarbon() Technology { return s.lowCarbon }
