package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults failed: %v", err)
	}

	if cfg.Server.Port != 8084 {
		t.Errorf("expected default port 8084, got %d", cfg.Server.Port)
	}
	if cfg.Data.SalesCSV != "data/full_sales_data.csv" {
		t.Errorf("unexpected sales path %q", cfg.Data.SalesCSV)
	}
	if cfg.Data.CustomersCSV != "data/ml_customer_data.csv" {
		t.Errorf("unexpected customers path %q", cfg.Data.CustomersCSV)
	}
	if cfg.Data.TopStates != 20 {
		t.Errorf("expected 20 top states, got %d", cfg.Data.TopStates)
	}
	if cfg.Address() != "localhost:8084" {
		t.Errorf("unexpected address %q", cfg.Address())
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SALES_CSV", "/tmp/sales.csv")
	t.Setenv("DATA_LOAD_TIMEOUT", "5s")
	t.Setenv("TOP_STATES", "5")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SECURITY_ALLOWED_ORIGINS", "http://a.example, ,http://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Data.SalesCSV != "/tmp/sales.csv" {
		t.Errorf("unexpected sales path %q", cfg.Data.SalesCSV)
	}
	if cfg.Data.LoadTimeout != 5*time.Second {
		t.Errorf("unexpected load timeout %v", cfg.Data.LoadTimeout)
	}
	if cfg.Data.TopStates != 5 {
		t.Errorf("expected 5 top states, got %d", cfg.Data.TopStates)
	}
	want := []string{"http://a.example", "http://b.example"}
	if diff := cmp.Diff(want, cfg.Security.AllowedOrigins); diff != "" {
		t.Errorf("allowed origins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port out of range", "SERVER_PORT", "70000"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"bad log format", "LOG_FORMAT", "xml"},
		{"zero top states", "TOP_STATES", "0"},
		{"negative rps", "SECURITY_RATE_LIMIT_RPS", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
