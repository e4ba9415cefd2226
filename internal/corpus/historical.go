package corpus

import "github.com/reliefroute/backend/internal/models"

// Chennai historical scenarios with recorded deployments. Hospital load is
// stored on the 0-100 scale used everywhere in the engine.
func defaultHistorical() []models.HistoricalScenario {
	return []models.HistoricalScenario{
		{
			ID: "chennai_flood_1", DisasterType: models.DisasterFlood, Severity: 2,
			Population: 12000, Zones: []string{"North", "Central"}, HospitalLoad: 65,
			BlockedRoads: []string{"OMR"},
			Deployed:     map[string]int{"medical_kits": 800, "boats": 2, "trucks": 5, "drones": 1},
			Outcome:      "successful",
		},
		{
			ID: "chennai_flood_2", DisasterType: models.DisasterFlood, Severity: 4,
			Population: 25000, Zones: []string{"East", "West", "Central"}, HospitalLoad: 82,
			BlockedRoads: []string{"OMR", "Anna_Salai"},
			Deployed:     map[string]int{"medical_kits": 2000, "boats": 5, "trucks": 8, "drones": 3},
			Outcome:      "successful",
		},
		{
			ID: "chennai_flood_3", DisasterType: models.DisasterFlood, Severity: 5,
			Population: 45000, Zones: []string{"North", "South", "East", "West", "Central"}, HospitalLoad: 93,
			BlockedRoads: []string{"OMR", "Anna_Salai", "Mount_Road", "ECR"},
			Deployed:     map[string]int{"medical_kits": 5000, "boats": 10, "trucks": 15, "drones": 6, "helicopters": 2},
			Outcome:      "partial",
		},
		{
			ID: "chennai_flood_4", DisasterType: models.DisasterFlood, Severity: 3,
			Population: 18000, Zones: []string{"South", "Central"}, HospitalLoad: 70,
			BlockedRoads: []string{"ECR"},
			Deployed:     map[string]int{"medical_kits": 1200, "boats": 3, "trucks": 6, "drones": 2},
			Outcome:      "successful",
		},
		{
			ID: "chennai_flood_5", DisasterType: models.DisasterFlood, Severity: 4,
			Population: 30000, Zones: []string{"North", "East"}, HospitalLoad: 85,
			BlockedRoads: []string{"OMR", "Velachery_Main"},
			Deployed:     map[string]int{"medical_kits": 2500, "boats": 6, "trucks": 10, "drones": 4},
			Outcome:      "successful",
		},
		{
			ID: "chennai_cyclone_1", DisasterType: models.DisasterCyclone, Severity: 3,
			Population: 20000, Zones: []string{"East", "South"}, HospitalLoad: 60,
			BlockedRoads: []string{"ECR", "OMR"},
			Deployed:     map[string]int{"medical_kits": 1500, "boats": 2, "trucks": 7, "drones": 3},
			Outcome:      "successful",
		},
		{
			ID: "chennai_cyclone_2", DisasterType: models.DisasterCyclone, Severity: 4,
			Population: 35000, Zones: []string{"East", "South", "Central"}, HospitalLoad: 78,
			BlockedRoads: []string{"ECR", "OMR", "Marina"},
			Deployed:     map[string]int{"medical_kits": 3000, "boats": 4, "trucks": 12, "drones": 5, "helicopters": 1},
			Outcome:      "successful",
		},
		{
			ID: "chennai_cyclone_3", DisasterType: models.DisasterCyclone, Severity: 5,
			Population: 55000, Zones: []string{"North", "South", "East", "West", "Central"}, HospitalLoad: 92,
			BlockedRoads: []string{"ECR", "OMR", "Marina", "Mount_Road", "Anna_Salai"},
			Deployed:     map[string]int{"medical_kits": 6000, "boats": 8, "trucks": 18, "drones": 8, "helicopters": 3},
			Outcome:      "partial",
		},
		{
			ID: "chennai_cyclone_4", DisasterType: models.DisasterCyclone, Severity: 2,
			Population: 10000, Zones: []string{"East"}, HospitalLoad: 45,
			BlockedRoads: []string{"ECR"},
			Deployed:     map[string]int{"medical_kits": 700, "boats": 1, "trucks": 4, "drones": 2},
			Outcome:      "successful",
		},
		{
			ID: "chennai_cyclone_5", DisasterType: models.DisasterCyclone, Severity: 4,
			Population: 40000, Zones: []string{"South", "West", "Central"}, HospitalLoad: 80,
			BlockedRoads: []string{"Anna_Salai", "Mount_Road"},
			Deployed:     map[string]int{"medical_kits": 3500, "boats": 5, "trucks": 14, "drones": 6},
			Outcome:      "successful",
		},
		{
			ID: "chennai_heatwave_1", DisasterType: models.DisasterHeatwave, Severity: 3,
			Population: 50000, Zones: []string{"North", "Central", "West"}, HospitalLoad: 72,
			Deployed: map[string]int{"medical_kits": 2000, "water_liters": 100000, "cooling_units": 50, "trucks": 10},
			Outcome:  "successful",
		},
		{
			ID: "chennai_heatwave_2", DisasterType: models.DisasterHeatwave, Severity: 4,
			Population: 80000, Zones: []string{"North", "South", "Central", "West"}, HospitalLoad: 85,
			Deployed: map[string]int{"medical_kits": 4000, "water_liters": 200000, "cooling_units": 100, "trucks": 18},
			Outcome:  "successful",
		},
		{
			ID: "chennai_heatwave_3", DisasterType: models.DisasterHeatwave, Severity: 5,
			Population: 120000, Zones: []string{"North", "South", "East", "West", "Central"}, HospitalLoad: 95,
			Deployed: map[string]int{"medical_kits": 7000, "water_liters": 350000, "cooling_units": 200, "trucks": 25},
			Outcome:  "partial",
		},
		{
			ID: "chennai_heatwave_4", DisasterType: models.DisasterHeatwave, Severity: 2,
			Population: 25000, Zones: []string{"Central"}, HospitalLoad: 50,
			Deployed: map[string]int{"medical_kits": 1000, "water_liters": 50000, "cooling_units": 25, "trucks": 5},
			Outcome:  "successful",
		},
		{
			ID: "chennai_heatwave_5", DisasterType: models.DisasterHeatwave, Severity: 3,
			Population: 60000, Zones: []string{"South", "East"}, HospitalLoad: 68,
			Deployed: map[string]int{"medical_kits": 2500, "water_liters": 120000, "cooling_units": 60, "trucks": 12},
			Outcome:  "successful",
		},
	}
}
