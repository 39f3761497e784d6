// Package config handles meshstat configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/meshstat/pkg/camera"
)

// Config holds all meshstat settings.
type Config struct {
	Camera   CameraConfig   `yaml:"camera"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Report   ReportConfig   `yaml:"report"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// CameraConfig holds viewport framing settings.
type CameraConfig struct {
	FOV            float64 `yaml:"fov"`       // Vertical field of view in degrees
	Heuristic      string  `yaml:"heuristic"` // "empirical" or "exact"
	AngleFactor    float64 `yaml:"angle_factor"`
	DepthFactor    float64 `yaml:"depth_factor"`
	VerticalOffset float64 `yaml:"vertical_offset"`
	MinDistance    float64 `yaml:"min_distance"`
}

// AnalysisConfig holds aggregation settings.
type AnalysisConfig struct {
	WorldSpaceMetrics bool `yaml:"world_space_metrics"`
	StopOnFirstError  bool `yaml:"stop_on_first_error"`
	// Strict fails the command when any leaf was skipped.
	Strict bool `yaml:"strict"`
}

// ReportConfig holds presentation settings.
type ReportConfig struct {
	Format    string `yaml:"format"`    // "text" or "yaml"
	Precision int    `yaml:"precision"` // Decimal places for measurements
	Language  string `yaml:"language"`  // BCP 47 tag for number formatting
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	fit := camera.DefaultEmpiricalFit()
	return &Config{
		Camera: CameraConfig{
			FOV:            75,
			Heuristic:      "empirical",
			AngleFactor:    fit.AngleFactor,
			DepthFactor:    fit.DepthFactor,
			VerticalOffset: fit.VerticalOffset,
			MinDistance:    camera.DefaultMinDistance,
		},
		Analysis: AnalysisConfig{
			WorldSpaceMetrics: false,
			StopOnFirstError:  false,
		},
		Report: ReportConfig{
			Format:    "text",
			Precision: 2,
			Language:  "en",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that cannot be defaulted away.
func (c *Config) Validate() error {
	if !(c.Camera.FOV > 0 && c.Camera.FOV < 180) {
		return fmt.Errorf("camera.fov must be in (0, 180), got %v", c.Camera.FOV)
	}
	if !(c.Camera.MinDistance > 0) {
		return fmt.Errorf("camera.min_distance must be positive, got %v", c.Camera.MinDistance)
	}
	if _, err := c.Camera.heuristic(); err != nil {
		return err
	}
	switch c.Report.Format {
	case "text", "yaml":
	default:
		return fmt.Errorf("report.format must be text or yaml, got %q", c.Report.Format)
	}
	if c.Report.Precision < 0 || c.Report.Precision > 12 {
		return fmt.Errorf("report.precision must be in [0, 12], got %d", c.Report.Precision)
	}
	return nil
}

// Framer builds the camera framer described by the config.
func (c CameraConfig) Framer() (*camera.Framer, error) {
	h, err := c.heuristic()
	if err != nil {
		return nil, err
	}
	return &camera.Framer{Heuristic: h, MinDistance: c.MinDistance}, nil
}

func (c CameraConfig) heuristic() (camera.Heuristic, error) {
	switch c.Heuristic {
	case "", "empirical":
		return camera.EmpiricalFit{
			AngleFactor:    c.AngleFactor,
			DepthFactor:    c.DepthFactor,
			VerticalOffset: c.VerticalOffset,
		}, nil
	case "exact":
		return camera.ExactFit{}, nil
	default:
		return nil, fmt.Errorf("camera.heuristic must be empirical or exact, got %q", c.Heuristic)
	}
}
