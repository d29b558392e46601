package catalog

import (
	"strings"
	"sync"
	"testing"

	"github.com/signalsfoundry/eo-mission-engine/model"
)

func validSat(name string) model.Satellite {
	return model.Satellite{
		Name:     name,
		Elements: model.OrbitalElements{AltitudeKm: 500, InclinationDeg: 97.5},
	}
}

func TestCatalog_AddAndGet(t *testing.T) {
	c := New()
	if err := c.Add(validSat("EO-1")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	sat, ok := c.Get("EO-1")
	if !ok {
		t.Fatalf("satellite not found after Add")
	}
	if sat.Elements.AltitudeKm != 500 {
		t.Fatalf("stored altitude %v, want 500", sat.Elements.AltitudeKm)
	}
	if _, ok := c.Get("EO-2"); ok {
		t.Fatalf("Get returned a satellite that was never added")
	}
}

func TestCatalog_RejectsEmptyName(t *testing.T) {
	c := New()
	if err := c.Add(validSat("")); err == nil {
		t.Fatalf("expected an error for an empty name")
	}
}

func TestCatalog_RejectsDuplicate(t *testing.T) {
	c := New()
	if err := c.Add(validSat("EO-1")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	err := c.Add(validSat("EO-1"))
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("duplicate Add error = %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("catalog holds %d satellites after duplicate Add, want 1", c.Len())
	}
}

func TestCatalog_RejectsInvalidElements(t *testing.T) {
	c := New()
	sat := validSat("EO-1")
	sat.Elements.AltitudeKm = -10
	if err := c.Add(sat); err == nil {
		t.Fatalf("expected a validation error for negative altitude")
	}
}

func TestCatalog_TLESatelliteSkipsElementValidation(t *testing.T) {
	// A TLE-driven satellite carries no usable elements; its lines are
	// checked when it is propagated, not when it is stored.
	c := New()
	sat := model.Satellite{
		Name:     "ISS",
		TLELine1: "1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990",
		TLELine2: "2 25544  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760",
	}
	if err := c.Add(sat); err != nil {
		t.Fatalf("Add TLE satellite: %v", err)
	}
}

func TestCatalog_ListSortedByName(t *testing.T) {
	c := New()
	for _, name := range []string{"zulu", "alpha", "mike"} {
		if err := c.Add(validSat(name)); err != nil {
			t.Fatalf("Add %s: %v", name, err)
		}
	}

	list := c.List()
	if len(list) != 3 {
		t.Fatalf("List returned %d satellites, want 3", len(list))
	}
	want := []string{"alpha", "mike", "zulu"}
	for i, sat := range list {
		if sat.Name != want[i] {
			t.Fatalf("List[%d] = %q, want %q", i, sat.Name, want[i])
		}
	}
}

func TestCatalog_ConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := string(rune('a' + i))
			if err := c.Add(validSat(name)); err != nil {
				t.Errorf("Add %s: %v", name, err)
			}
			c.Get(name)
			c.List()
			c.Len()
		}(i)
	}
	wg.Wait()

	if c.Len() != 8 {
		t.Fatalf("catalog holds %d satellites, want 8", c.Len())
	}
}
