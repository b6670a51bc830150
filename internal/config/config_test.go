package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "departure:\n  address: Vancouver, BC\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout %v", cfg.Server.ReadTimeout)
	}
	if cfg.Route.TrafficModel != "best_guess" {
		t.Errorf("unexpected traffic model %q", cfg.Route.TrafficModel)
	}
	if cfg.Route.OptimizeFor != "time" {
		t.Errorf("unexpected optimize_for %q", cfg.Route.OptimizeFor)
	}
	if cfg.Fuel.ConsumptionPer100KM != 8.0 || cfg.Fuel.PricePerLiter != 1.60 {
		t.Errorf("unexpected fuel defaults: %+v", cfg.Fuel)
	}
	if cfg.Catalog.CSVPath != "inputs/store_list.csv" {
		t.Errorf("unexpected catalog path %q", cfg.Catalog.CSVPath)
	}
	if cfg.Departure.Address != "Vancouver, BC" {
		t.Errorf("unexpected departure %q", cfg.Departure.Address)
	}
}

func TestLoad_FileValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
server:
  port: 9999
route_preferences:
  avoid_tolls: true
  traffic_model: pessimistic
  optimize_for: distance
fuel:
  consumption_per_100km: 10.5
  price_per_liter: 1.85
email:
  recipient: driver@example.com
  smtp_port: 587
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("unexpected port %d", cfg.Server.Port)
	}
	if !cfg.Route.AvoidTolls {
		t.Error("expected avoid_tolls true")
	}
	if cfg.Route.TrafficModel != "pessimistic" {
		t.Errorf("unexpected traffic model %q", cfg.Route.TrafficModel)
	}
	if cfg.Fuel.ConsumptionPer100KM != 10.5 {
		t.Errorf("unexpected consumption %v", cfg.Fuel.ConsumptionPer100KM)
	}
	if cfg.Email.Recipient != "driver@example.com" || cfg.Email.SMTPPort != 587 {
		t.Errorf("unexpected email config: %+v", cfg.Email)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STOREROUTE_API_KEYS_GOOGLE_MAPS", "env-key-123")
	t.Setenv("STOREROUTE_SERVER_PORT", "7070")

	cfg, err := Load(writeConfig(t, "server:\n  port: 9090\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIKeys.GoogleMaps != "env-key-123" {
		t.Errorf("expected env API key, got %q", cfg.APIKeys.GoogleMaps)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("expected env port override, got %d", cfg.Server.Port)
	}
}

func TestLoad_RejectsInvalidObjective(t *testing.T) {
	_, err := Load(writeConfig(t, "route_preferences:\n  optimize_for: fastest\n"))
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoad_RejectsNonPositiveFuel(t *testing.T) {
	_, err := Load(writeConfig(t, "fuel:\n  price_per_liter: -1\n"))
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	// An explicitly named config file must exist; only the default search
	// path tolerates absence.
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for explicit missing file")
	}
}
