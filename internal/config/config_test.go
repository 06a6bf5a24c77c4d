package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signalnine/evalagg/internal/config"
)

func TestLoadMinimal(t *testing.T) {
	cfg, err := config.Load("../../testdata/minimal.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Jobs) != 1 {
		t.Errorf("expected 1 job, got %d", len(cfg.Jobs))
	}
	if cfg.Jobs[0].Name != "smoke" {
		t.Errorf("expected job name 'smoke', got %q", cfg.Jobs[0].Name)
	}
	if cfg.Paths.Evaluations != config.DefaultEvaluations {
		t.Errorf("expected default evaluations path, got %q", cfg.Paths.Evaluations)
	}
	if cfg.Paths.Inventory != config.DefaultInventory {
		t.Errorf("expected default inventory path, got %q", cfg.Paths.Inventory)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("expected info/text logging, got %s/%s", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func checkFull(t *testing.T, cfg *config.Config) {
	t.Helper()
	if cfg.Paths.Results != "data/results" {
		t.Errorf("expected results path data/results, got %q", cfg.Paths.Results)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected json logging, got %q", cfg.Logging.Format)
	}
	job, err := cfg.Job("nightly")
	if err != nil {
		t.Fatalf("Job: %v", err)
	}
	if !job.Duplex {
		t.Error("expected nightly to be duplex")
	}
	if len(job.MDefs) != 2 || len(job.MDefs[0].Params) != 2 {
		t.Fatalf("unexpected mdefs: %+v", job.MDefs)
	}
	if got := job.MDefs[0].Params[0].Values; len(got) != 2 || got[1] != "0.7" {
		t.Errorf("unexpected threshold values: %v", got)
	}
	if got := job.Trays(); len(got) != 2 || got[0] != "tray-a" || got[1] != "tray-b" {
		t.Errorf("unexpected trays: %v", got)
	}
	bolts, err := cfg.Job("bolts")
	if err != nil {
		t.Fatalf("Job: %v", err)
	}
	if len(bolts.Templates) != 1 || bolts.Templates[0] != "tray-a/bolt/t01" {
		t.Errorf("unexpected templates: %v", bolts.Templates)
	}
}

func TestLoadFull(t *testing.T) {
	cfg, err := config.Load("../../testdata/full.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	checkFull(t, cfg)
}

func TestLoadTOML(t *testing.T) {
	cfg, err := config.Load("../../testdata/full.toml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	checkFull(t, cfg)
}

func TestLoadMissing(t *testing.T) {
	_, err := config.Load("nonexistent.yaml")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadInvalid(t *testing.T) {
	_, err := config.Load("../../testdata/invalid.yaml")
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestUnknownJob(t *testing.T) {
	cfg, err := config.Load("../../testdata/minimal.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := cfg.Job("nightly"); err == nil {
		t.Error("expected error for unknown job")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no jobs", "paths: {}\n", "no jobs defined"},
		{"unnamed job", "jobs:\n  - mdefs: [{algorithm: tm}]\n    tdefs: [{name: a}]\n", "name is required"},
		{"duplicate job", "jobs:\n  - {name: j, mdefs: [{algorithm: tm}], tdefs: [{name: a}]}\n  - {name: j, mdefs: [{algorithm: tm}], tdefs: [{name: a}]}\n", "more than once"},
		{"no mdefs", "jobs:\n  - {name: j, tdefs: [{name: a}]}\n", "at least one mdef"},
		{"empty algorithm", "jobs:\n  - {name: j, mdefs: [{params: []}], tdefs: [{name: a}]}\n", "algorithm is required"},
		{"no tdefs", "jobs:\n  - {name: j, mdefs: [{algorithm: tm}]}\n", "at least one tdef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "evalagg.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}
