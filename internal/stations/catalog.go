// Package stations provides the station catalog: compiled-in defaults and
// an optional YAML file override.
package stations

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/expotrack/expotrack/internal/model"
)

// Default returns the built-in station catalog
func Default() *model.StationCatalog {
	return model.NewStationCatalog([]model.Station{
		{ID: "1", Name: "Framework", EstimatedTime: "15 minutes"},
		{ID: "2", Name: "Solution", EstimatedTime: "15 minutes"},
		{ID: "3", Name: "Data Analytics Team", EstimatedTime: "15 minutes"},
		{ID: "4", Name: "Machine Learning Team", EstimatedTime: "15 minutes"},
		{ID: "5", Name: "Artificial Intelligence Team", EstimatedTime: "15 minutes"},
		{ID: "6", Name: "Market Team", EstimatedTime: "15 minutes"},
		{ID: "7", Name: "Email Campaign Team", EstimatedTime: "15 minutes"},
	})
}

type catalogFile struct {
	Stations []stationEntry `yaml:"stations"`
}

type stationEntry struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	EstimatedTime string `yaml:"estimated_time"`
}

// LoadFile reads a station catalog from a YAML file
func LoadFile(path string) (*model.StationCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stations file: %w", err)
	}

	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse stations file: %w", err)
	}
	if len(cf.Stations) == 0 {
		return nil, fmt.Errorf("stations file %s defines no stations", path)
	}

	seen := make(map[string]bool, len(cf.Stations))
	list := make([]model.Station, 0, len(cf.Stations))
	for i, entry := range cf.Stations {
		if entry.ID == "" || entry.Name == "" {
			return nil, fmt.Errorf("station entry %d: id and name are required", i)
		}
		if seen[entry.ID] {
			return nil, fmt.Errorf("duplicate station id %q", entry.ID)
		}
		seen[entry.ID] = true
		list = append(list, model.Station{
			ID:            model.StationID(entry.ID),
			Name:          entry.Name,
			EstimatedTime: entry.EstimatedTime,
		})
	}

	return model.NewStationCatalog(list), nil
}
