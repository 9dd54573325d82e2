package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/orbitpath/internal/errs"
	"github.com/ivlev/orbitpath/internal/geometry"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Len(t, cfg.Paths, 1)

	p := cfg.Paths[0]
	assert.Equal(t, "Circle32_new", p.Name)
	assert.Equal(t, geometry.Point3D{X: 37899, Y: 35, Z: 28566}, p.Center)
	assert.Equal(t, 200.0, p.Radius)
	assert.Equal(t, 32, p.Count)
	assert.Equal(t, 20000, p.DurationMs)
	assert.True(t, p.CloseLoop)
	assert.Equal(t, "integer", cfg.Rounding)
	assert.Positive(t, cfg.Workers)
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paths.yaml")
	data := `
rounding: decimal
output_dir: out
workers: 2
paths:
  - name: spawn
    center: {x: 10, y: 64, z: -20}
    radius: 30
    count: 12
    duration_ms: 6000
    extra_count: 3
  - name: tower
    center: {x: 0, y: 90, z: 0}
    radius: 50
    count: 8
    duration_ms: 8000
    close_loop: true
    rounding: integer
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "decimal", cfg.Rounding)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, 2, cfg.Workers)
	require.Len(t, cfg.Paths, 2)

	spawn := cfg.Paths[0]
	assert.Equal(t, geometry.Point3D{X: 10, Y: 64, Z: -20}, spawn.Center)
	assert.Equal(t, 3, spawn.ExtraCount)
	r, err := spawn.ResolvedRounding(cfg.Rounding)
	require.NoError(t, err)
	assert.Equal(t, geometry.RoundDecimal, r)

	tower := cfg.Paths[1]
	assert.True(t, tower.CloseLoop)
	r, err = tower.ResolvedRounding(cfg.Rounding)
	require.NoError(t, err)
	assert.Equal(t, geometry.RoundInteger, r)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paths.toml")
	data := `
clipboard = true

[[paths]]
name = "arena"
radius = 75.5
count = 16
duration_ms = 16000

[paths.center]
x = 100.0
y = 70.0
z = 100.0
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Clipboard)
	require.Len(t, cfg.Paths, 1)
	assert.Equal(t, "arena", cfg.Paths[0].Name)
	assert.Equal(t, 75.5, cfg.Paths[0].Radius)
	assert.Equal(t, geometry.Point3D{X: 100, Y: 70, Z: 100}, cfg.Paths[0].Center)
	assert.Equal(t, "integer", cfg.Rounding)
}

func TestLoadWithoutPathsKeepsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("show_stats: true\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.ShowStats)
	assert.Equal(t, []Path{DefaultPath()}, cfg.Paths)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPathValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Path)
	}{
		{"empty name", func(p *Path) { p.Name = " " }},
		{"zero count", func(p *Path) { p.Count = 0 }},
		{"negative radius", func(p *Path) { p.Radius = -1 }},
		{"negative duration", func(p *Path) { p.DurationMs = -5 }},
		{"negative extra", func(p *Path) { p.ExtraCount = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPath()
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), errs.ErrInvalidArgument)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Default()
	cfg.Paths = append(cfg.Paths, DefaultPath())
	assert.ErrorIs(t, cfg.Validate(), errs.ErrInvalidArgument)

	cfg = Default()
	cfg.Rounding = "spline"
	assert.ErrorIs(t, cfg.Validate(), errs.ErrInvalidArgument)

	cfg = Default()
	cfg.Paths = nil
	assert.ErrorIs(t, cfg.Validate(), errs.ErrInvalidArgument)
}
