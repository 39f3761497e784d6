package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides. Zero values mean "not set".
type Flags struct {
	Config     string
	Debug      bool
	FOV        float64
	Heuristic  string
	Format     string
	WorldSpace bool
	StopOnErr  bool
	Strict     bool
}

// BindFlags registers the override flags on fs and returns their destination.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.Float64Var(&f.FOV, "fov", 0, "Camera vertical field of view in degrees")
	fs.StringVar(&f.Heuristic, "heuristic", "", "Framing heuristic: empirical or exact")
	fs.StringVar(&f.Format, "format", "", "Report format: text or yaml")
	fs.BoolVar(&f.WorldSpace, "world-space", false, "Measure area and volume after node transforms")
	fs.BoolVar(&f.StopOnErr, "stop-on-error", false, "Abort on the first malformed mesh")
	fs.BoolVar(&f.Strict, "strict", false, "Exit with an error when any node was skipped")
	return f
}

// ConfigPath returns the explicit config path if provided via --config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return f.Config
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.FOV > 0 {
		cfg.Camera.FOV = f.FOV
	}
	if f.Heuristic != "" {
		cfg.Camera.Heuristic = f.Heuristic
	}
	if f.Format != "" {
		cfg.Report.Format = f.Format
	}
	if f.WorldSpace {
		cfg.Analysis.WorldSpaceMetrics = true
	}
	if f.StopOnErr {
		cfg.Analysis.StopOnFirstError = true
	}
	if f.Strict {
		cfg.Analysis.Strict = true
	}
}
