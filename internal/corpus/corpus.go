package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reliefroute/backend/internal/models"
)

// Corpus holds the read-only reference data the engine plans against:
// historical scenarios, depot inventories, zone definitions.
type Corpus struct {
	Historical []models.HistoricalScenario
	Depots     []models.Depot
	Zones      []models.Zone
}

// Load returns the built-in Chennai reference data, extended with any
// scenario JSON files found under dir (one HistoricalScenario per file).
func Load(dir string) (*Corpus, error) {
	c := &Corpus{
		Historical: defaultHistorical(),
		Depots:     DefaultDepots(),
		Zones:      DefaultZones(),
	}
	if dir == "" {
		return c, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("read corpus dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		var hs models.HistoricalScenario
		if err := json.Unmarshal(b, &hs); err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
		c.Historical = append(c.Historical, hs)
	}
	return c, nil
}

func (c *Corpus) Zone(name string) (models.Zone, bool) {
	for _, z := range c.Zones {
		if z.Name == name {
			return z, true
		}
	}
	return models.Zone{}, false
}

func DefaultZones() []models.Zone {
	return []models.Zone{
		{Name: "North", Lat: 13.15, Lon: 80.20, Node: "Zone_North", Population: 850000, Hospitals: 12},
		{Name: "South", Lat: 12.90, Lon: 80.15, Node: "Zone_South", Population: 720000, Hospitals: 10},
		{Name: "East", Lat: 13.05, Lon: 80.30, Node: "Zone_East", Population: 650000, Hospitals: 8},
		{Name: "West", Lat: 13.05, Lon: 80.10, Node: "Zone_West", Population: 580000, Hospitals: 7},
		{Name: "Central", Lat: 13.08, Lon: 80.27, Node: "Zone_Central", Population: 920000, Hospitals: 15},
	}
}

func DefaultDepots() []models.Depot {
	return []models.Depot{
		{
			ID: "central_depot", Name: "Central Depot", Location: "Chennai Central",
			Lat: 13.0827, Lon: 80.2707, Node: "Central_Depot",
			Resources: map[string]int{
				"medical_kits": 10000, "food_packets": 50000, "water_liters": 500000,
				"shelter_kits": 2000, "oxygen_cylinders": 500, "vaccines": 5000, "surgical_kits": 200,
			},
			Vehicles: map[string]int{"trucks": 20, "boats": 8, "drones": 10, "helicopters": 2},
		},
		{
			ID: "north_depot", Name: "North Depot", Location: "Ambattur",
			Lat: 13.1143, Lon: 80.1548, Node: "Ambattur_Node",
			Resources: map[string]int{
				"medical_kits": 5000, "food_packets": 25000, "water_liters": 250000,
				"shelter_kits": 1000, "oxygen_cylinders": 200, "vaccines": 2000, "surgical_kits": 100,
			},
			Vehicles: map[string]int{"trucks": 10, "boats": 4, "drones": 5, "helicopters": 1},
		},
		{
			ID: "south_depot", Name: "South Depot", Location: "Tambaram",
			Lat: 12.9249, Lon: 80.1000, Node: "Tambaram_Node",
			Resources: map[string]int{
				"medical_kits": 5000, "food_packets": 25000, "water_liters": 250000,
				"shelter_kits": 1000, "oxygen_cylinders": 200, "vaccines": 2000, "surgical_kits": 100,
			},
			Vehicles: map[string]int{"trucks": 10, "boats": 4, "drones": 5, "helicopters": 1},
		},
	}
}
