package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/orbitpath/internal/errs"
	"github.com/ivlev/orbitpath/internal/replay"
)

func TestRunFromFlags(t *testing.T) {
	var stdout bytes.Buffer
	err := run(context.Background(), []string{
		"-quiet", "-name", "Spin", "-x", "0", "-y", "0", "-z", "0",
		"-radius", "10", "-count", "4", "-duration", "4000", "-close-loop=false",
	}, &stdout)
	require.NoError(t, err)

	doc, err := replay.Decode(stdout.Bytes())
	require.NoError(t, err)
	require.Contains(t, doc, "Spin")

	camera := doc["Spin"][1]
	require.Len(t, camera.Keyframes, 4)
	assert.Equal(t, [3]float64{10, 0, 0}, *camera.Keyframes[0].Properties.Position)
	assert.Equal(t, 3000, camera.Keyframes[3].Time)
}

func TestRunDefaults(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-quiet"}, &stdout))

	doc, err := replay.Decode(stdout.Bytes())
	require.NoError(t, err)
	camera := doc["Circle32_new"][1]
	assert.Len(t, camera.Keyframes, 33)
	assert.Equal(t, [3]float64{38099, 35, 28566}, *camera.Keyframes[0].Properties.Position)
	assert.Equal(t, *camera.Keyframes[0].Properties.Position, *camera.Keyframes[32].Properties.Position)
	assert.Equal(t, 20000, camera.Keyframes[32].Time)
}

func TestRunOpenLoop(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-quiet", "-close-loop=false"}, &stdout))

	doc, err := replay.Decode(stdout.Bytes())
	require.NoError(t, err)
	assert.Len(t, doc["Circle32_new"][1].Keyframes, 32)
}

func TestRunFromConfigDirectory(t *testing.T) {
	dir := t.TempDir()
	data := `
paths:
  - name: one
    radius: 5
    count: 3
    duration_ms: 3000
  - name: two
    radius: 8
    count: 5
    duration_ms: 5000
    extra_count: 2
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "batch.yaml"), []byte(data), 0644))
	merge := filepath.Join(t.TempDir(), "paths.json")

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-quiet", "-config", dir, "-merge", merge}, &stdout))

	doc, err := replay.Decode(stdout.Bytes())
	require.NoError(t, err)
	assert.Len(t, doc, 2)
	assert.Len(t, doc["two"][1].Keyframes, 7)

	merged, err := os.ReadFile(merge)
	require.NoError(t, err)
	assert.JSONEq(t, stdout.String(), string(merged))
}

func TestIgnoredPathFlags(t *testing.T) {
	assert.Empty(t, ignoredPathFlags(map[string]bool{"config": true, "merge": true, "rounding": true}))
	assert.Equal(t, []string{"x", "radius", "close-loop"},
		ignoredPathFlags(map[string]bool{"config": true, "close-loop": true, "radius": true, "x": true}))
}

func TestRunConfigIgnoresPathFlags(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "one.yaml")
	require.NoError(t, os.WriteFile(file, []byte("paths:\n  - name: one\n    radius: 5\n    count: 3\n    duration_ms: 3000\n"), 0644))

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-quiet", "-config", file, "-name", "other", "-count", "9"}, &stdout))

	doc, err := replay.Decode(stdout.Bytes())
	require.NoError(t, err)
	require.Contains(t, doc, "one")
	assert.NotContains(t, doc, "other")
	assert.Len(t, doc["one"][1].Keyframes, 3)
}

func TestRunExhausted(t *testing.T) {
	var stdout bytes.Buffer
	err := run(context.Background(), []string{"-quiet", "-count", "4", "-extra", "6"}, &stdout)
	assert.ErrorIs(t, err, errs.ErrConfigurationExhausted)
	assert.Zero(t, stdout.Len())
}

func TestRunVersion(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-version"}, &stdout))
	assert.Equal(t, BuildVersion+"\n", stdout.String())
}

func TestRunBadFlag(t *testing.T) {
	var stdout bytes.Buffer
	assert.Error(t, run(context.Background(), []string{"-bogus"}, &stdout))
}
