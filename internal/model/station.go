package model

import "sort"

// StationID identifies a fixed point of interest with a timer
type StationID string

// Station is static metadata about a station, configured at startup
type Station struct {
	ID            StationID
	Name          string
	EstimatedTime string
}

// StationCatalog is the fixed set of stations known to the event
type StationCatalog struct {
	stations map[StationID]Station
}

// NewStationCatalog creates a catalog from a list of stations
func NewStationCatalog(stations []Station) *StationCatalog {
	m := make(map[StationID]Station, len(stations))
	for _, st := range stations {
		m[st.ID] = st
	}
	return &StationCatalog{stations: m}
}

// Get returns the station for an id
func (c *StationCatalog) Get(id StationID) (Station, bool) {
	st, ok := c.stations[id]
	return st, ok
}

// Contains reports whether the catalog knows the station id
func (c *StationCatalog) Contains(id StationID) bool {
	_, ok := c.stations[id]
	return ok
}

// List returns all stations ordered by ascending station id
func (c *StationCatalog) List() []Station {
	out := make([]Station, 0, len(c.stations))
	for _, st := range c.stations {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// IDs returns all station ids ordered ascending
func (c *StationCatalog) IDs() []StationID {
	ids := make([]StationID, 0, len(c.stations))
	for id := range c.stations {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of stations
func (c *StationCatalog) Len() int {
	return len(c.stations)
}
