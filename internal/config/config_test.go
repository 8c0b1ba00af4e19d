package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	dir := t.TempDir()
	if err := LoadConfig(dir); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if AppConfig.HttpTimeoutSec != 15 {
		t.Fatalf("HttpTimeoutSec = %d, want 15", AppConfig.HttpTimeoutSec)
	}
	if AppConfig.CacheBackend != "memory" {
		t.Fatalf("CacheBackend = %q, want %q", AppConfig.CacheBackend, "memory")
	}
	if AppConfig.SnaptikBaseURL != "https://snaptik.app" {
		t.Fatalf("SnaptikBaseURL = %q", AppConfig.SnaptikBaseURL)
	}
	if AppConfig.DebugErrors {
		t.Fatalf("DebugErrors should default to false")
	}
}

func TestLoadConfig_NormalizeTrimsAndLowers(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	dir := t.TempDir()
	cfg := []byte("STORE_BACKEND: \"MongoDB\"\nCACHE_BACKEND: \" Redis \"\nAGGREGATOR_BASE_URL: \"https://agg.example.com/\"\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), cfg, 0644); err != nil {
		t.Fatal(err)
	}

	if err := LoadConfig(dir); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if AppConfig.StoreBackend != "mongodb" {
		t.Fatalf("StoreBackend = %q, want %q", AppConfig.StoreBackend, "mongodb")
	}
	if AppConfig.CacheBackend != "redis" {
		t.Fatalf("CacheBackend = %q, want %q", AppConfig.CacheBackend, "redis")
	}
	if AppConfig.AggregatorBaseURL != "https://agg.example.com" {
		t.Fatalf("AggregatorBaseURL = %q, trailing slash should be stripped", AppConfig.AggregatorBaseURL)
	}
}
