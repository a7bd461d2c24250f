// Package intel defines core types shared across subsystems.
package intel

import "time"

// OutletType classifies an outlet's coverage scope.
type OutletType string

// Outlet type values held in the registry.
const (
	OutletNational      OutletType = "national"
	OutletInternational OutletType = "international"
)

// SectorInternational is the pseudo-sector assigned to international outlets,
// which carry a single section instead of the national sector grid.
const SectorInternational = "International"

// NationalSectors is the fixed sector ordering used by reports.
var NationalSectors = []string{"Politics", "National", "Economy"}

// Outlet is a named news source with one or more sections, each mapped to a
// fetchable URL. Name is the unique registry key.
type Outlet struct {
	Name     string            `json:"name"`
	Type     OutletType        `json:"type"`
	Sections map[string]string `json:"sections"`
}

// Clone returns a deep copy so callers can hold an Outlet across concurrent
// registry mutation.
func (o Outlet) Clone() Outlet {
	sections := make(map[string]string, len(o.Sections))
	for sector, url := range o.Sections {
		sections[sector] = url
	}
	return Outlet{Name: o.Name, Type: o.Type, Sections: sections}
}

// Candidate is a discovered (title, link) pair not yet enriched with a
// summary. Links are absolute and deduplicated within one discovery call.
type Candidate struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Item is one enriched headline inside a snapshot. Immutable once created.
type Item struct {
	Title        string     `json:"title"`
	Link         string     `json:"link"`
	Source       string     `json:"source"`
	Sector       string     `json:"sector"`
	Type         OutletType `json:"type"`
	Summary      string     `json:"summary"`
	DiscoveredAt time.Time  `json:"discovered_at"`
}

// Caps applied while assembling a snapshot. Discovery stops collecting at
// DiscoveryCap candidates per section; the engine only summarizes the first
// SummarizeCap of those. The two limits are intentionally distinct.
const (
	DiscoveryCap = 6
	SummarizeCap = 3
)
