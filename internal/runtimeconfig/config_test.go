package runtimeconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid defaults, got %v", err)
	}
	if cfg.Generator.OutputDir != "public" {
		t.Fatalf("unexpected output dir %q", cfg.Generator.OutputDir)
	}
	if got := cfg.CooldownDuration(); got != time.Minute {
		t.Fatalf("expected 60s cooldown, got %v", got)
	}
	if got := cfg.DebounceDuration(); got != 500*time.Millisecond {
		t.Fatalf("expected 500ms debounce, got %v", got)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := map[string]struct {
		mutate func(*Config)
		want   error
	}{
		"missing content dir": {
			func(cfg *Config) { cfg.Content.Dir = " " },
			ErrContentDirRequired,
		},
		"no collections": {
			func(cfg *Config) { cfg.Content.Collections = nil },
			ErrCollectionsRequired,
		},
		"missing output dir": {
			func(cfg *Config) { cfg.Generator.OutputDir = "" },
			ErrGeneratorOutputDirRequired,
		},
		"negative workers": {
			func(cfg *Config) { cfg.Generator.Workers = -1 },
			ErrGeneratorWorkersInvalid,
		},
		"variant without theme": {
			func(cfg *Config) { cfg.Generator.ThemeVariant = "dark" },
			ErrThemeVariantWithoutTheme,
		},
		"negative debounce": {
			func(cfg *Config) { cfg.Server.DebounceMS = -5 },
			ErrServerDebounceInvalid,
		},
		"forwarding without endpoint": {
			func(cfg *Config) { cfg.Features.ContactForwarding = true },
			ErrContactEndpointRequired,
		},
		"unknown driver": {
			func(cfg *Config) { cfg.Storage.Driver = "oracle" },
			ErrStorageDriverUnknown,
		},
		"storage without dsn": {
			func(cfg *Config) { cfg.Storage.DSN = "" },
			ErrStorageDSNRequired,
		},
		"publish without bucket": {
			func(cfg *Config) { cfg.Features.Publish = true },
			ErrPublishBucketRequired,
		},
		"bad level": {
			func(cfg *Config) { cfg.Logging.Level = "verbose" },
			ErrLoggingLevelInvalid,
		},
		"bad format": {
			func(cfg *Config) { cfg.Logging.Format = "xml" },
			ErrLoggingFormatInvalid,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestValidateAllowsDisabledStorage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features.ContactStorage = false
	cfg.Storage.Driver = "oracle"
	cfg.Storage.DSN = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected storage checks skipped, got %v", err)
	}
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yml")
	body := `
site:
  title: Jess Doe
  base_url: https://jess.example
content:
  dir: ./content
generator:
  theme: minimal
  theme_variant: dark
server:
  watch: true
features:
  publish: true
publish:
  bucket: jess-site
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Site.Title != "Jess Doe" || cfg.Site.BaseURL != "https://jess.example" {
		t.Fatalf("unexpected site config %+v", cfg.Site)
	}
	// Defaults survive where the file is silent.
	if cfg.Server.Addr != ":8080" || !cfg.Server.Watch {
		t.Fatalf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Generator.OutputDir != "public" || cfg.Generator.Theme != "minimal" {
		t.Fatalf("unexpected generator config %+v", cfg.Generator)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected loaded config to validate, got %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yml")
	if err := os.WriteFile(path, []byte("site: [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}
