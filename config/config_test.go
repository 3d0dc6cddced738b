package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, VariantClipPlane, cfg.Reflection.Variant)
	assert.Equal(t, [3]float32{10, 10, 10}, cfg.Reflection.Position)
	assert.Len(t, cfg.Objects, 4)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[window]
title = "Mirror"

[reflection]
variant = "texture"
reflectivity = 0.25
texture_width = 512

[camera]
position = [5.0, 0.0, 40.0]
`))
	require.NoError(t, err)

	assert.Equal(t, "Mirror", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, VariantTexture, cfg.Reflection.Variant)
	assert.InDelta(t, 0.25, cfg.Reflection.Reflectivity, 1e-6)
	assert.Equal(t, 512, cfg.Reflection.TextureWidth)
	assert.Equal(t, 256, cfg.Reflection.TextureHeight)
	assert.Equal(t, [3]float32{5, 0, 40}, cfg.Camera.Position)
	assert.Equal(t, DefaultObjects(), cfg.Objects)
}

func TestParseObjectsReplaceDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[[objects]]
shape = "sphere"
size = 2.0
position = [1.0, 2.0, 3.0]

[[objects]]
shape = "axes"
size = 10.0
`))
	require.NoError(t, err)
	require.Len(t, cfg.Objects, 2)
	assert.Equal(t, ShapeSphere, cfg.Objects[0].Shape)
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Objects[0].Position)
	assert.Equal(t, ShapeAxes, cfg.Objects[1].Shape)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("[reflection]\nmirror_colour = 1\n"))
	assert.ErrorContains(t, err, "mirror_colour")
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("[window\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"unknown variant", func(c *Config) { c.Reflection.Variant = "stencil" }, ErrUnknownVariant},
		{"unknown shape", func(c *Config) { c.Objects[0].Shape = "teapot" }, ErrUnknownShape},
		{"window size", func(c *Config) { c.Window.Height = 0 }, ErrInvalidConfig},
		{"tick rate", func(c *Config) { c.Engine.TickRate = 0 }, ErrInvalidConfig},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, ErrInvalidConfig},
		{"fov", func(c *Config) { c.Camera.Fov = 180 }, ErrInvalidConfig},
		{"clip range", func(c *Config) { c.Camera.Far = c.Camera.Near }, ErrInvalidConfig},
		{"light direction", func(c *Config) { c.Light.Direction = [3]float32{} }, ErrInvalidConfig},
		{"zero normal", func(c *Config) { c.Reflection.Normal = [3]float32{} }, ErrInvalidConfig},
		{"clip plane index", func(c *Config) { c.Reflection.ClipPlane = 6 }, ErrInvalidConfig},
		{"reflectivity", func(c *Config) { c.Reflection.Reflectivity = 1.5 }, ErrInvalidConfig},
		{"surface size", func(c *Config) { c.Reflection.Width = -1 }, ErrInvalidConfig},
		{"texture size", func(c *Config) {
			c.Reflection.Variant = VariantTexture
			c.Reflection.TextureWidth = 0
		}, ErrInvalidConfig},
		{"texture larger than window", func(c *Config) {
			c.Reflection.Variant = VariantTexture
			c.Window.Width = 200
		}, ErrInvalidConfig},
		{"torus radii", func(c *Config) { c.Objects[3].Inner = c.Objects[3].Size }, ErrInvalidConfig},
		{"object size", func(c *Config) { c.Objects[1].Size = 0 }, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Reflection.Variant = "stencil"
	cfg.Window.Width = 0
	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrUnknownVariant)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Reflection.Variant = VariantTexture
	data, err := cfg.Marshal()
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte("[engine]\ntick_rate = 30.0\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, cfg.Engine.TickRate, 1e-9)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(path, []byte("[reflection]\nvariant = \"stencil\"\n"), 0o644))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrUnknownVariant)
	assert.ErrorContains(t, err, path)
}

func TestWatcherDeliversReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte("[reflection]\nreflectivity = 0.5\n"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("[reflection]\nreflectivity = 0.8\n"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-w.Updates():
			if cfg.Reflection.Reflectivity > 0.7 {
				return
			}
		case <-w.Errors():
			// A partially written file can fail to parse before the final write lands.
		case <-deadline:
			t.Fatal("no reload delivered")
		}
	}
}

func TestWatcherReportsInvalidReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	// Changes to other files in the directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("junk ="), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("[reflection]\nvariant = \"stencil\"\n"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case err := <-w.Errors():
			assert.ErrorIs(t, err, ErrUnknownVariant)
			return
		case cfg := <-w.Updates():
			// Truncation before the write can publish the still-empty file.
			assert.Equal(t, VariantClipPlane, cfg.Reflection.Variant)
		case <-deadline:
			t.Fatal("no error delivered")
		}
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestNewWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "scene.toml"))
	assert.Error(t, err)
}
