package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signalnine/evalagg/internal/aggregate"
	"github.com/signalnine/evalagg/internal/algorithm"
	"github.com/signalnine/evalagg/internal/config"
	"github.com/signalnine/evalagg/internal/evaluation"
	"github.com/signalnine/evalagg/internal/inventory"
)

func loadInventory(t *testing.T) *inventory.Inventory {
	t.Helper()
	inv, err := inventory.Load("../testdata/inventory.yaml")
	if err != nil {
		t.Fatalf("inventory.Load: %v", err)
	}
	return inv
}

func TestSelectJobs(t *testing.T) {
	cfg := &config.Config{Jobs: []config.Job{{Name: "nightly"}, {Name: "bolts"}}}

	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{"no args returns all", nil, 2, false},
		{"named job", []string{"bolts"}, 1, false},
		{"unknown job", []string{"weekly"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectJobs(cfg, tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("selectJobs(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if len(got) != tt.want {
				t.Errorf("selectJobs(%v) returned %d, want %d", tt.args, len(got), tt.want)
			}
		})
	}
}

func TestResolveTemplates(t *testing.T) {
	inv := loadInventory(t)

	tests := []struct {
		name    string
		job     config.Job
		want    []string
		wantErr bool
	}{
		{"trays of tdefs", config.Job{TDefs: []config.TDef{{Name: "tray-b"}}}, []string{"tray-b/gear/t05", "tray-b/gear/t06"}, false},
		{"explicit references", config.Job{Templates: []string{"tray-a/nut/t03", "tray-a/bolt/t01"}}, []string{"tray-a/nut/t03", "tray-a/bolt/t01"}, false},
		{"bad reference", config.Job{Templates: []string{"tray-a/bolt"}}, nil, true},
		{"unknown template", config.Job{Templates: []string{"tray-a/bolt/t99"}}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveTemplates(inv, tt.job)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveTemplates error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("resolveTemplates returned %d templates, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].String() != tt.want[i] {
					t.Errorf("template %d = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSessionPlan(t *testing.T) {
	s := &session{inv: loadInventory(t)}
	job := config.Job{
		Name:   "nightly",
		Duplex: true,
		MDefs: []algorithm.MDef{
			{Algorithm: "tm", Params: []algorithm.Param{{Name: "threshold", Values: []string{"0.5", "0.7"}}}},
			{Algorithm: "hist"},
		},
		TDefs: []config.TDef{{Name: "tray-a"}, {Name: "tray-b"}},
	}

	plan, err := s.plan(job)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(plan.Variants) != 3 || plan.Variants[0] != "tm_threshold-0.5" || plan.Variants[2] != "hist" {
		t.Errorf("unexpected variants: %v", plan.Variants)
	}
	// t00 is uncertain and must not claim tray-a/bolt.
	var got []string
	for _, tmpl := range plan.Templates {
		got = append(got, tmpl.String())
	}
	want := []string{"tray-a/bolt/t01", "tray-a/nut/t03", "tray-b/gear/t05"}
	if len(got) != len(want) {
		t.Fatalf("templates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("templates = %v, want %v", got, want)
			break
		}
	}
	if len(plan.Pairs) != 2 {
		t.Fatalf("expected 2 duplex pairs, got %d", len(plan.Pairs))
	}
	if id := plan.Pairs[1].ID(); id != "t06-t05" {
		t.Errorf("tray-b pair id = %s, want t06-t05", id)
	}
}

func TestApplyOverrides(t *testing.T) {
	t.Setenv("EVALAGG_RESULTS_ROOT", "/srv/results")
	t.Setenv("EVALAGG_LOG_LEVEL", "debug")

	v := newSettings()
	v.Set("eval-root", "/srv/evaluations")

	cfg := &config.Config{
		Paths:   config.Paths{Evaluations: "evaluations", Results: "results", Inventory: "inventory.yaml"},
		Logging: config.Logging{Level: "info", Format: "text"},
	}
	applyOverrides(cfg, v)

	if cfg.Paths.Evaluations != "/srv/evaluations" {
		t.Errorf("evaluations = %q", cfg.Paths.Evaluations)
	}
	if cfg.Paths.Results != "/srv/results" {
		t.Errorf("results = %q", cfg.Paths.Results)
	}
	if cfg.Paths.Inventory != "inventory.yaml" {
		t.Errorf("inventory = %q, want unchanged", cfg.Paths.Inventory)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestSessionCheck(t *testing.T) {
	dir := t.TempDir()
	s := &session{
		cfg: &config.Config{Paths: config.Paths{
			Evaluations: filepath.Join(dir, "evaluations"),
			Results:     filepath.Join(dir, "results"),
		}},
		inv: loadInventory(t),
	}
	tmpl := inventory.Template{Tray: "tray-a", Part: "nut", ID: "t03", State: inventory.Present}
	plan := aggregate.Plan{Name: "nuts", Variants: []string{"tm"}, Templates: []inventory.Template{tmpl}}

	if got := s.check(plan); len(got) != 2 {
		t.Fatalf("expected missing report and results, got %v", got)
	}

	report, err := evaluation.SingleReportPath(s.cfg.Paths.Evaluations, tmpl, "tm")
	if err != nil {
		t.Fatal(err)
	}
	rec := &evaluation.Record{Name: "TM", Params: "p", Metrics: map[string]string{"accuracy": "0.9", "average time": "1", "misses": "x", "sample size": "10"}}
	if err := evaluation.WriteReport(report, rec); err != nil {
		t.Fatal(err)
	}
	results := evaluation.ResultsPath(s.cfg.Paths.Results, tmpl, "tm")
	if err := os.MkdirAll(filepath.Dir(results), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(results, []byte("s12 0.5 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := s.check(plan)
	if len(got) != 1 || !strings.Contains(got[0], `metric "misses"`) {
		t.Fatalf("expected bad misses metric, got %v", got)
	}

	rec.Metrics["misses"] = "1"
	if err := evaluation.WriteReport(report, rec); err != nil {
		t.Fatal(err)
	}
	if got := s.check(plan); len(got) != 0 {
		t.Errorf("expected no problems, got %v", got)
	}
}
