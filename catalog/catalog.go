package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/signalsfoundry/eo-mission-engine/model"
)

// Catalog is an in-memory, thread-safe store of the satellites taking part
// in an analysis run.
type Catalog struct {
	mu   sync.RWMutex
	sats map[string]model.Satellite
}

// New constructs an empty catalog.
func New() *Catalog {
	return &Catalog{sats: make(map[string]model.Satellite)}
}

// Add stores a satellite. It returns an error if the name is empty, already
// taken, or the satellite's elements fail validation (TLE-driven satellites
// are format-checked at propagation time instead).
func (c *Catalog) Add(sat model.Satellite) error {
	if sat.Name == "" {
		return fmt.Errorf("satellite name must not be empty")
	}
	if !sat.HasTLE() {
		if err := sat.Elements.Validate(); err != nil {
			return fmt.Errorf("satellite %q: %w", sat.Name, err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.sats[sat.Name]; exists {
		return fmt.Errorf("satellite %q already exists", sat.Name)
	}
	c.sats[sat.Name] = sat
	return nil
}

// Get returns the named satellite and whether it was found.
func (c *Catalog) Get(name string) (model.Satellite, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sat, ok := c.sats[name]
	return sat, ok
}

// List returns a snapshot of all satellites, sorted by name so analysis runs
// see a deterministic ordering.
func (c *Catalog) List() []model.Satellite {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := make([]model.Satellite, 0, len(c.sats))
	for _, sat := range c.sats {
		res = append(res, sat)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

// Len returns the number of stored satellites.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sats)
}
