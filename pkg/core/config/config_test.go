package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeTemp(t, "engine.yaml", `
listen: ":9090"
fetch:
  max_attempts: 5
  backoff_ms: 100
  timeout_ms: 2000
sources:
  - name: transactions
    url: http://upstream/api/transactions
    tenant_id: firm-12
    kind: transactions
buckets:
  salary_bands:
    - {label: "0-30K", min: 0, max: 30000}
    - {label: "30K+", min: 30000, max: 0}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Listen != ":9090" {
		t.Errorf("listen: got %q", cfg.Listen)
	}
	if cfg.Fetch.MaxAttempts != 5 {
		t.Errorf("max attempts: got %d", cfg.Fetch.MaxAttempts)
	}

	sources := cfg.EngineSources()
	if len(sources) != 1 || sources[0].Spec.TenantID != "firm-12" || sources[0].Kind != "transactions" {
		t.Errorf("sources: got %+v", sources)
	}

	bands := cfg.SalaryBands()
	if len(bands) != 2 {
		t.Fatalf("expected 2 configured bands, got %d", len(bands))
	}
	if !math.IsInf(bands[1].Max, 1) {
		t.Errorf("final band must be unbounded, got %v", bands[1].Max)
	}
}

func TestLoadHJSON(t *testing.T) {
	path := writeTemp(t, "engine.hjson", `
{
  # human-edited config with comments and no quotes
  listen: ":7070"
  fetch: {
    maxAttempts: 4
  }
}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Listen != ":7070" {
		t.Errorf("listen: got %q", cfg.Listen)
	}
	if cfg.Fetch.MaxAttempts != 4 {
		t.Errorf("max attempts: got %d", cfg.Fetch.MaxAttempts)
	}
}

func TestDefaultsWhenUnset(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.SalaryBands()) == 0 || len(cfg.AgeBuckets()) == 0 ||
		len(cfg.TenureBuckets()) == 0 || len(cfg.AgingBuckets()) == 0 {
		t.Error("default bucket tables must be present")
	}
	if !math.IsInf(cfg.AgingBuckets()[0].Min, -1) {
		t.Error("overdue bin must be open at the low end")
	}
	if cfg.Fetch.MaxAttempts != 3 {
		t.Errorf("default attempts: got %d", cfg.Fetch.MaxAttempts)
	}
}
