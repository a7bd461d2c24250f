// Package registry holds the mutable outlet grid.
//
// Request handlers mutate it at any time; the sync engine only ever reads a
// point-in-time deep copy via List, so an in-flight cycle is never exposed to
// concurrent edits.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/nayeemjb/intelgrid/internal/intel"
)

// Registry is a concurrency-safe outlet store keyed by outlet name.
type Registry struct {
	mu      sync.RWMutex
	outlets map[string]intel.Outlet
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{outlets: make(map[string]intel.Outlet)}
}

// Seeded creates a Registry preloaded with the default national grid.
func Seeded() *Registry {
	r := New()
	r.outlets["Prothom Alo"] = intel.Outlet{
		Name: "Prothom Alo",
		Type: intel.OutletNational,
		Sections: map[string]string{
			"Politics": "https://www.prothomalo.com/politics",
			"Economy":  "https://www.prothomalo.com/business",
			"National": "https://www.prothomalo.com/bangladesh",
		},
	}
	return r
}

// Add inserts or replaces an outlet. International outlets are normalized to
// the single pseudo-sector regardless of what the caller supplied.
func (r *Registry) Add(o intel.Outlet) error {
	if o.Name == "" {
		return fmt.Errorf("add outlet: name is required")
	}
	if o.Type != intel.OutletNational && o.Type != intel.OutletInternational {
		return fmt.Errorf("add outlet: unknown type %q", o.Type)
	}
	o = o.Clone()
	if o.Type == intel.OutletInternational {
		url := ""
		for _, u := range o.Sections {
			if u != "" {
				url = u
				break
			}
		}
		o.Sections = map[string]string{intel.SectorInternational: url}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outlets[o.Name] = o
	return nil
}

// Remove deletes an outlet by name. Removing an unknown name is a no-op.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.outlets, name)
}

// List returns a deep copy of all outlets in stable name order.
func (r *Registry) List() []intel.Outlet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]intel.Outlet, 0, len(r.outlets))
	for _, o := range r.outlets {
		out = append(out, o.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len reports the number of registered outlets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.outlets)
}
