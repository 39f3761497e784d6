package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/Faultbox/meshstat/pkg/camera"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Camera defaults match the viewer's framing
	if cfg.Camera.FOV != 75 {
		t.Errorf("expected fov 75, got %v", cfg.Camera.FOV)
	}
	if cfg.Camera.Heuristic != "empirical" {
		t.Errorf("expected heuristic 'empirical', got %s", cfg.Camera.Heuristic)
	}
	if cfg.Camera.AngleFactor != 2 || cfg.Camera.DepthFactor != 5 || cfg.Camera.VerticalOffset != 0.25 {
		t.Errorf("unexpected empirical constants: %+v", cfg.Camera)
	}
	if cfg.Camera.MinDistance != camera.DefaultMinDistance {
		t.Errorf("expected min distance %v, got %v", camera.DefaultMinDistance, cfg.Camera.MinDistance)
	}

	if cfg.Analysis.WorldSpaceMetrics || cfg.Analysis.StopOnFirstError {
		t.Error("expected analysis options to be off by default")
	}

	if cfg.Report.Format != "text" {
		t.Errorf("expected report format 'text', got %s", cfg.Report.Format)
	}
	if cfg.Report.Precision != 2 {
		t.Errorf("expected precision 2, got %d", cfg.Report.Precision)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
camera:
  fov: 50
  heuristic: exact
  min_distance: 2.5

analysis:
  world_space_metrics: true
  stop_on_first_error: true

report:
  format: yaml
  precision: 4
  language: de

logging:
  level: "debug"
  log_file: "meshstat.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Camera.FOV != 50 {
		t.Errorf("expected fov 50, got %v", cfg.Camera.FOV)
	}
	if cfg.Camera.Heuristic != "exact" {
		t.Errorf("expected heuristic exact, got %s", cfg.Camera.Heuristic)
	}
	if cfg.Camera.MinDistance != 2.5 {
		t.Errorf("expected min distance 2.5, got %v", cfg.Camera.MinDistance)
	}
	// Keys absent from the file keep their defaults
	if cfg.Camera.DepthFactor != 5 {
		t.Errorf("expected depth factor to stay 5, got %v", cfg.Camera.DepthFactor)
	}
	if !cfg.Analysis.WorldSpaceMetrics || !cfg.Analysis.StopOnFirstError {
		t.Error("expected analysis options to be enabled")
	}
	if cfg.Report.Format != "yaml" || cfg.Report.Precision != 4 || cfg.Report.Language != "de" {
		t.Errorf("unexpected report config: %+v", cfg.Report)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "meshstat.log" {
		t.Errorf("expected log file 'meshstat.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
camera:
  fov: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/meshstat.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tmpDir := t.TempDir()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("camera:\n  fov: 60\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find meshstat.yaml in current directory")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"exact heuristic", func(c *Config) { c.Camera.Heuristic = "exact" }, false},
		{"zero fov", func(c *Config) { c.Camera.FOV = 0 }, true},
		{"wide fov", func(c *Config) { c.Camera.FOV = 180 }, true},
		{"negative floor", func(c *Config) { c.Camera.MinDistance = -1 }, true},
		{"zero floor", func(c *Config) { c.Camera.MinDistance = 0 }, true},
		{"unknown heuristic", func(c *Config) { c.Camera.Heuristic = "magic" }, true},
		{"unknown format", func(c *Config) { c.Report.Format = "xml" }, true},
		{"negative precision", func(c *Config) { c.Report.Precision = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCameraFramer(t *testing.T) {
	cfg := Default()
	f, err := cfg.Camera.Framer()
	if err != nil {
		t.Fatalf("Framer() error: %v", err)
	}
	if _, ok := f.Heuristic.(camera.EmpiricalFit); !ok {
		t.Errorf("expected EmpiricalFit, got %T", f.Heuristic)
	}
	if f.MinDistance != camera.DefaultMinDistance {
		t.Errorf("expected default floor, got %v", f.MinDistance)
	}

	cfg.Camera.Heuristic = "exact"
	f, err = cfg.Camera.Framer()
	if err != nil {
		t.Fatalf("Framer() error: %v", err)
	}
	if _, ok := f.Heuristic.(camera.ExactFit); !ok {
		t.Errorf("expected ExactFit, got %T", f.Heuristic)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(*testing.T, *Config)
	}{
		{
			name: "debug flag",
			args: []string{"--debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "fov flag",
			args: []string{"--fov", "45"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Camera.FOV != 45 {
					t.Errorf("expected fov 45, got %v", cfg.Camera.FOV)
				}
			},
		},
		{
			name: "heuristic and format flags",
			args: []string{"--heuristic=exact", "--format=yaml"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Camera.Heuristic != "exact" {
					t.Errorf("expected heuristic exact, got %s", cfg.Camera.Heuristic)
				}
				if cfg.Report.Format != "yaml" {
					t.Errorf("expected format yaml, got %s", cfg.Report.Format)
				}
			},
		},
		{
			name: "analysis flags",
			args: []string{"--world-space", "--stop-on-error", "--strict"},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Analysis.WorldSpaceMetrics || !cfg.Analysis.StopOnFirstError || !cfg.Analysis.Strict {
					t.Errorf("expected analysis flags to apply, got %+v", cfg.Analysis)
				}
			},
		},
		{
			name: "no flags",
			args: nil,
			verify: func(t *testing.T, cfg *Config) {
				if *cfg != *Default() {
					t.Errorf("expected defaults untouched, got %+v", cfg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			flags := BindFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse flags: %v", err)
			}

			cfg := Default()
			flags.apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
camera:
  fov: 60
  min_distance: 3
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := BindFlags(fs)
	if err := fs.Parse([]string{"--config", configPath, "--fov", "30"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// FOV from flag (30), not file (60)
	if cfg.Camera.FOV != 30 {
		t.Errorf("expected fov 30 from flag, got %v", cfg.Camera.FOV)
	}
	// Floor from file since no flag override
	if cfg.Camera.MinDistance != 3 {
		t.Errorf("expected min distance 3 from file, got %v", cfg.Camera.MinDistance)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(configPath, []byte("camera:\n  heuristic: magic\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := Load(&Flags{Config: configPath}); err == nil {
		t.Error("expected invalid heuristic to be rejected")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Camera.FOV = 42
	cfg.Report.Format = "yaml"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("reloaded config differs:\n got %+v\nwant %+v", loaded, cfg)
	}
}
