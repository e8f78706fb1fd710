package scenarios

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/induplan/pathopt/core/model"
)

func TestCases(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no fixture files found")
	}
	for _, f := range files {
		c, err := Load(f)
		if err != nil {
			t.Fatalf("load %s: %v", f, err)
		}
		t.Run(c.Name, func(t *testing.T) {
			RunCase(t, c)
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	if _, err := Load("no-file.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
	tmp, err := os.CreateTemp(t.TempDir(), "bad*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmp.WriteString(":"); err != nil {
		t.Fatal(err)
	}
	if err := tmp.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tmp.Name()); err == nil {
		t.Fatal("expected unmarshal error")
	}
}

func TestProviderUnknownTechnology(t *testing.T) {
	c := &Case{
		Scenario:   "base",
		Facilities: []FacilityDef{{Capacity: 1, EndOfLife: 2040}},
		Intensity:  map[string]map[int]float64{"fusion": {2030: 1}},
	}
	if _, err := c.Provider(model.Technologies()); err == nil {
		t.Fatal("expected error for unknown technology")
	}
}
