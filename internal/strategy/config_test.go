package strategy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := Validate(&cfg); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestValidate_WeightsSum(t *testing.T) {
	cfg := Default()
	cfg.Scoring.Weights.Growth = 0.30 // sum becomes 1.05

	err := Validate(&cfg)
	if err == nil {
		t.Fatal("expected error for weights not summing to 1.0")
	}
	ve, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if ve.Field != "scoring.weights" {
		t.Errorf("expected field scoring.weights, got %s", ve.Field)
	}
}

func TestValidate_SectorCapAboveTotalCap(t *testing.T) {
	cfg := Default()
	cfg.Sizing.SectorExposurePct = 90
	cfg.Sizing.TotalExposurePct = 80

	if err := Validate(&cfg); err == nil {
		t.Fatal("expected error when sector cap exceeds total cap")
	}
}

func TestValidate_SizingBands(t *testing.T) {
	tests := []struct {
		name  string
		bands []SizingBand
		valid bool
	}{
		{"descending and exhaustive", []SizingBand{{85, 15}, {65, 8}, {0, 2}}, true},
		{"not descending", []SizingBand{{65, 8}, {85, 15}, {0, 2}}, false},
		{"not exhaustive", []SizingBand{{85, 15}, {65, 8}}, false},
		{"empty", nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Sizing.Bands = tc.bands
			err := Validate(&cfg)
			if tc.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tc.valid && err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestValidate_ShortlistSize(t *testing.T) {
	cfg := Default()
	cfg.Selection.ShortlistSize = 0
	if err := Validate(&cfg); err == nil {
		t.Fatal("expected error for shortlist_size=0")
	}
}

func TestHashDeterministic(t *testing.T) {
	cfg := Default()

	hash, err := Hash(&cfg)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if len(hash) != 64 {
		t.Errorf("expected 64 char hash, got %d", len(hash))
	}

	hash2, _ := Hash(&cfg)
	if hash != hash2 {
		t.Error("hash not deterministic")
	}

	cfg.Selection.ShortlistSize = 10
	hash3, _ := Hash(&cfg)
	if hash == hash3 {
		t.Error("hash must change when config changes")
	}
}

func TestLoad_UnknownFieldFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strategy.yaml")
	yaml := `
meta:
  strategy_id: test_v1
  version: "1.0.0"
selection:
  shortlist_size: 10
  sector_capp_pct: 0.4
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := Load(path)
	if err == nil {
		t.Fatal("expected error for unknown field sector_capp_pct")
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strategy.yaml")
	yaml := `
meta:
  strategy_id: test_v1
selection:
  shortlist_size: 10
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, data, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected raw yaml bytes")
	}
	if cfg.Selection.ShortlistSize != 10 {
		t.Errorf("expected shortlist_size=10, got %d", cfg.Selection.ShortlistSize)
	}
	// Untouched sections keep defaults.
	if cfg.Gate.MinRevenueGrowth != 0.15 {
		t.Errorf("expected default min_revenue_growth=0.15, got %v", cfg.Gate.MinRevenueGrowth)
	}
	if cfg.Scoring.Weights.Sum() != 1.0 {
		t.Errorf("expected default weights to sum to 1.0, got %v", cfg.Scoring.Weights.Sum())
	}
}
