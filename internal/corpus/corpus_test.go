package corpus

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/reliefroute/backend/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Historical) != 15 {
		t.Fatalf("expected 15 historical scenarios, got %d", len(c.Historical))
	}
	if len(c.Depots) != 3 {
		t.Fatalf("expected 3 depots, got %d", len(c.Depots))
	}
	if len(c.Zones) != 5 {
		t.Fatalf("expected 5 zones, got %d", len(c.Zones))
	}
}

func TestZoneLookup(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	z, ok := c.Zone("Central")
	if !ok {
		t.Fatalf("expected Central zone")
	}
	if z.Node != "Zone_Central" {
		t.Fatalf("expected Zone_Central node, got %s", z.Node)
	}
	if _, ok := c.Zone("Atlantis"); ok {
		t.Fatalf("unknown zone must not resolve")
	}
}

func TestLoadExtendsFromDir(t *testing.T) {
	dir := t.TempDir()
	extra := models.HistoricalScenario{
		ID:           "extra_1",
		DisasterType: models.DisasterEarthquake,
		Severity:     4,
		Population:   90000,
		HospitalLoad: 80,
		Deployed:     map[string]int{"medical_kits": 3000},
	}
	data, _ := json.Marshal(extra)
	if err := os.WriteFile(filepath.Join(dir, "extra_1.json"), data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Historical) != 16 {
		t.Fatalf("expected corpus extended to 16, got %d", len(c.Historical))
	}
}

func TestLoadMissingDirFallsBack(t *testing.T) {
	c, err := Load("/nonexistent/corpus")
	if err != nil {
		t.Fatalf("missing dir should fall back to defaults: %v", err)
	}
	if len(c.Historical) != 15 {
		t.Fatalf("expected defaults, got %d", len(c.Historical))
	}
}
