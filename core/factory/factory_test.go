package factory

import (
	"strings"
	"testing"
)

type sink struct{ Addr string }

type sinkConf struct {
	Addr string `json:"addr"`
}

func TestRegistryCreate(t *testing.T) {
	reg := NewRegistry[*sink]()
	err := reg.Register("influx", func(conf map[string]any) (*sink, error) {
		var c sinkConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &sink{Addr: c.Addr}, nil
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	inst, err := reg.Create(ModuleConfig{Type: "influx", Conf: map[string]any{"addr": "http://localhost:8086"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inst.Addr != "http://localhost:8086" {
		t.Fatalf("decoded addr %q", inst.Addr)
	}
}

func TestRegistryErrors(t *testing.T) {
	reg := NewRegistry[int]()
	if err := reg.Register("x", func(map[string]any) (int, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("x", func(map[string]any) (int, error) { return 2, nil }); err == nil {
		t.Fatal("expected duplicate error")
	}
	if err := reg.Register("y", nil); err == nil {
		t.Fatal("expected nil factory error")
	}
	_, err := reg.Create(ModuleConfig{Type: "unknown"})
	if err == nil {
		t.Fatal("expected unknown type error")
	}
	if !strings.Contains(err.Error(), "x") {
		t.Fatalf("error does not list known types: %v", err)
	}
}

func TestTypesSorted(t *testing.T) {
	reg := NewRegistry[int]()
	for _, n := range []string{"zeta", "alpha", "mid"} {
		if err := reg.Register(n, func(map[string]any) (int, error) { return 0, nil }); err != nil {
			t.Fatalf("register %s: %v", n, err)
		}
	}
	got := reg.Types()
	want := []string{"alpha", "mid", "zeta"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("types order: got %v want %v", got, want)
		}
	}
}
