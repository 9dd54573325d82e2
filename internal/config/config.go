package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/orbitpath/internal/errs"
	"github.com/ivlev/orbitpath/internal/geometry"
)

// Path describes one circular camera path.
type Path struct {
	Name       string           `yaml:"name" toml:"name"`
	Center     geometry.Point3D `yaml:"center" toml:"center"`
	Radius     float64          `yaml:"radius" toml:"radius"`
	Count      int              `yaml:"count" toml:"count"`             // distinct angular samples
	DurationMs int              `yaml:"duration_ms" toml:"duration_ms"` // time of one full revolution
	ExtraCount int              `yaml:"extra_count" toml:"extra_count"` // trailing rows repeated from the start
	CloseLoop  bool             `yaml:"close_loop" toml:"close_loop"`
	Rounding   string           `yaml:"rounding" toml:"rounding"` // empty inherits Config.Rounding
}

// Config holds a run of one or more paths and where their output goes.
type Config struct {
	Paths     []Path `yaml:"paths" toml:"paths"`
	Rounding  string `yaml:"rounding" toml:"rounding"`
	Workers   int    `yaml:"workers" toml:"workers"`
	OutputDir string `yaml:"output_dir" toml:"output_dir"`
	MergeInto string `yaml:"merge_into" toml:"merge_into"` // existing ReplayMod paths file
	TableDump string `yaml:"table_dump" toml:"table_dump"` // directory for YAML path tables
	Preview   string `yaml:"preview" toml:"preview"`       // directory for PNG previews
	Clipboard bool   `yaml:"clipboard" toml:"clipboard"`
	ShowStats bool   `yaml:"show_stats" toml:"show_stats"`
}

// DefaultPath returns the path the tool was first written for.
func DefaultPath() Path {
	return Path{
		Name:       "Circle32_new",
		Center:     geometry.Point3D{X: 37899, Y: 35, Z: 28566},
		Radius:     200,
		Count:      32,
		DurationMs: 20000,
		CloseLoop:  true,
	}
}

// Default returns a Config with a single DefaultPath.
func Default() Config {
	return Config{
		Paths:    []Path{DefaultPath()},
		Rounding: string(geometry.DefaultRounding),
		Workers:  runtime.NumCPU(),
	}
}

// Load reads a config file, choosing the decoder by extension (.toml or YAML).
// Values missing from the file keep their defaults; a file that lists paths
// replaces the default path entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	// Listed paths replace the default one instead of merging into it.
	cfg.Paths = nil
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if len(cfg.Paths) == 0 {
		cfg.Paths = []Path{DefaultPath()}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	return cfg, nil
}

// ResolvedRounding returns the path's own rounding policy or the fallback.
func (p Path) ResolvedRounding(fallback string) (geometry.Rounding, error) {
	if p.Rounding != "" {
		return geometry.ParseRounding(p.Rounding)
	}
	return geometry.ParseRounding(fallback)
}

// Validate checks the arguments that would otherwise fail deep in the
// pipeline. A zero radius is left to the orientation step, which reports it
// as a domain error.
func (p Path) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: path name is empty", errs.ErrInvalidArgument)
	case p.Count < 1:
		return fmt.Errorf("%w: path %q: count must be at least 1, got %d", errs.ErrInvalidArgument, p.Name, p.Count)
	case p.Radius < 0 || math.IsNaN(p.Radius):
		return fmt.Errorf("%w: path %q: radius must not be negative, got %g", errs.ErrInvalidArgument, p.Name, p.Radius)
	case p.DurationMs < 0:
		return fmt.Errorf("%w: path %q: duration must not be negative, got %d", errs.ErrInvalidArgument, p.Name, p.DurationMs)
	case p.ExtraCount < 0:
		return fmt.Errorf("%w: path %q: extra count must not be negative, got %d", errs.ErrInvalidArgument, p.Name, p.ExtraCount)
	}
	return nil
}

// Validate checks every path and rejects duplicate names, which would collide
// as keys of the same paths file.
func (c Config) Validate() error {
	if len(c.Paths) == 0 {
		return fmt.Errorf("%w: no paths configured", errs.ErrInvalidArgument)
	}
	if _, err := geometry.ParseRounding(c.Rounding); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Paths))
	for _, p := range c.Paths {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate path name %q", errs.ErrInvalidArgument, p.Name)
		}
		seen[p.Name] = true
		if _, err := p.ResolvedRounding(c.Rounding); err != nil {
			return fmt.Errorf("path %q: %w", p.Name, err)
		}
	}
	return nil
}
