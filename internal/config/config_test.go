package config

import (
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/pennywise")
	t.Setenv("AUTH0_DOMAIN", "pennywise.eu.auth0.com")
	t.Setenv("AUTH0_AUDIENCE", "https://api.pennywise.app")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Timezone.String() != "UTC" {
		t.Errorf("Timezone = %v, want UTC", cfg.Timezone)
	}
	if cfg.AutoMigrate {
		t.Error("AutoMigrate should default to false")
	}
	if cfg.Assistant.RatePerMinute != 10 || cfg.Assistant.Burst != 3 {
		t.Errorf("assistant rate = %d/%d, want 10/3", cfg.Assistant.RatePerMinute, cfg.Assistant.Burst)
	}
	if cfg.Assistant.Enabled() {
		t.Error("assistant should be disabled without an API key")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("AUTH0_DOMAIN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when AUTH0_DOMAIN is missing")
	}
}

func TestLoad_InvalidTimezone(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestLoad_InvalidRate(t *testing.T) {
	setRequired(t)
	t.Setenv("ASSISTANT_RATE_PER_MINUTE", "lots")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric rate")
	}
}

func TestLoadPurge_OnlyNeedsDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/pennywise")
	t.Setenv("AUTH0_DOMAIN", "")
	t.Setenv("AUTH0_AUDIENCE", "")

	if _, err := LoadPurge(); err != nil {
		t.Fatalf("LoadPurge() error = %v", err)
	}
}

func TestS3Config_Enabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  S3Config
		want bool
	}{
		{"no credentials", S3Config{Bucket: "receipts"}, false},
		{"static credentials", S3Config{Bucket: "receipts", AccessKeyID: "key"}, true},
		{"local endpoint", S3Config{Bucket: "receipts", Endpoint: "http://localhost:9000"}, true},
		{"no bucket", S3Config{AccessKeyID: "key"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}
