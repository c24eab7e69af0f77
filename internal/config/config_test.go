package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/subnav/internal/nav"
	"github.com/vovakirdan/subnav/internal/scan"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, expected nil", err)
	}
}

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	got := embeddedDefault()
	want := Default()
	if got != want {
		t.Errorf("embeddedDefault() = %+v, expected %+v", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"simple variant", func(c *Config) { c.Navigation.Variant = "simple" }, true},
		{"empty variant", func(c *Config) { c.Navigation.Variant = "" }, true},
		{"unknown variant", func(c *Config) { c.Navigation.Variant = "turbo" }, false},
		{"empty blank", func(c *Config) { c.Render.Blank = "" }, true},
		{"unicode blank", func(c *Config) { c.Render.Blank = "·" }, true},
		{"long blank", func(c *Config) { c.Render.Blank = "ab" }, false},
		{"zero tick rate", func(c *Config) { c.Render.TickRate = 0 }, false},
		{"zero max cells", func(c *Config) { c.Render.MaxCells = 0 }, false},
		{"small max cells", func(c *Config) { c.Render.MaxCells = 100 }, true},
		{"negative coverage", func(c *Config) { c.Scan.Terrain.Coverage = -0.1 }, false},
		{"coverage above one", func(c *Config) { c.Scan.Terrain.Coverage = 1.5 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadCustomPathOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subnav.yaml")
	data := []byte("navigation:\n  variant: simple\nrender:\n  blank: \"?\"\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Variant() != nav.VariantSimple {
		t.Errorf("Variant() = %v, expected simple", cfg.Variant())
	}
	if cfg.BlankRune() != '?' {
		t.Errorf("BlankRune() = %q, expected '?'", cfg.BlankRune())
	}
	// Unset fields keep their defaults.
	if cfg.Render.TickRate != Default().Render.TickRate {
		t.Errorf("TickRate = %d, expected %d", cfg.Render.TickRate, Default().Render.TickRate)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("navigation: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("render:\n  tick_rate: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() = %v, expected ErrInvalidConfig", err)
	}
}

func TestBlankRuneEmpty(t *testing.T) {
	cfg := Default()
	cfg.Render.Blank = ""
	if cfg.BlankRune() != 0 {
		t.Errorf("BlankRune() = %q, expected 0", cfg.BlankRune())
	}
}

func TestScanSource(t *testing.T) {
	t.Run("terrain", func(t *testing.T) {
		src, err := Default().Scan.Source()
		if err != nil {
			t.Fatalf("Source() failed: %v", err)
		}
		if _, ok := src.(*scan.Terrain); !ok {
			t.Errorf("Source() = %T, expected *scan.Terrain", src)
		}
	})

	t.Run("dataset", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scans.yaml")
		data := []byte("scans:\n  \"(0,0)\": \"abcdefghi\"\n")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
		cfg := Default().Scan
		cfg.Dataset = path
		src, err := cfg.Source()
		if err != nil {
			t.Fatalf("Source() failed: %v", err)
		}
		table, ok := src.(*scan.Table)
		if !ok {
			t.Fatalf("Source() = %T, expected *scan.Table", src)
		}
		if table.Len() != 1 {
			t.Errorf("Len() = %d, expected 1", table.Len())
		}
	})

	t.Run("missing dataset", func(t *testing.T) {
		cfg := Default().Scan
		cfg.Dataset = filepath.Join(t.TempDir(), "nope.yaml")
		if _, err := cfg.Source(); err == nil {
			t.Error("Source() should fail for a missing dataset")
		}
	})
}
