package mail

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/storeroute/storeroute/internal/analysis"
	"github.com/storeroute/storeroute/internal/routing"
)

func validConfig() Config {
	return Config{
		Recipient:      "driver@example.com",
		SenderEmail:    "routes@example.com",
		SenderPassword: "app-password",
		SMTPServer:     "smtp.example.com",
		SMTPPort:       587,
	}
}

func TestNewService_ValidConfig(t *testing.T) {
	svc, err := NewService(validConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Recipient() != "driver@example.com" {
		t.Errorf("unexpected recipient: %q", svc.Recipient())
	}
}

func TestNewService_RejectsPlaceholders(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty recipient", func(c *Config) { c.Recipient = "" }},
		{"placeholder recipient", func(c *Config) { c.Recipient = "your-email@gmail.com" }},
		{"placeholder sender", func(c *Config) { c.SenderEmail = "your-sender@gmail.com" }},
		{"placeholder password", func(c *Config) { c.SenderPassword = "your-app-password" }},
		{"empty smtp server", func(c *Config) { c.SMTPServer = "" }},
		{"zero smtp port", func(c *Config) { c.SMTPPort = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			if _, err := NewService(cfg, zerolog.Nop()); err == nil {
				t.Error("expected configuration error")
			}
		})
	}
}

func TestBuildBody_WithMetrics(t *testing.T) {
	plan := &routing.Plan{
		Stops: []routing.Stop{
			{Label: routing.DepartureLabel, Address: "Vancouver, BC"},
			{Label: "LD 0003", Address: "555 Sixth Street, New Westminster, BC"},
			{Label: routing.ReturnLabel, Address: "Vancouver, BC"},
		},
		Metrics: &analysis.RouteMetrics{
			TotalStops:             1,
			TotalDistanceKM:        839.86,
			TotalDurationFormatted: "8h 51m",
			EstimatedFuelCostCAD:   107.5,
		},
		DirectionsURL: "https://www.google.com/maps/dir/a/b/a",
	}

	body := buildBody(plan)

	for _, want := range []string{
		"- Total Distance: 839.86 km",
		"- Travel Time: 8h 51m",
		"- Estimated Fuel Cost: $107.50 CAD",
		"- Total Stops: 1",
		"https://www.google.com/maps/dir/a/b/a",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestBuildBody_FallbackPlan(t *testing.T) {
	plan := &routing.Plan{
		Stops: []routing.Stop{
			{Label: routing.DepartureLabel, Address: "Vancouver, BC"},
			{Label: "LD 0003", Address: "555 Sixth Street, New Westminster, BC"},
			{Label: routing.ReturnLabel, Address: "Vancouver, BC"},
		},
		Fallback:       true,
		FallbackReason: "Route optimization failed: directions provider unavailable",
	}

	body := buildBody(plan)

	if got := strings.Count(body, "N/A"); got != 3 {
		t.Errorf("expected 3 N/A metric lines, got %d:\n%s", got, body)
	}
	if !strings.Contains(body, "Directions link not available") {
		t.Errorf("expected missing-directions note:\n%s", body)
	}
}
