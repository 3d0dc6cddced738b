package demo

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-mirror/config"
	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
	"github.com/Carmen-Shannon/oxy-mirror/engine/reflection"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDemo(t *testing.T, dev device.Device, cfg config.Config) *Demo {
	t.Helper()
	d, err := New(dev, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestNewClipPlaneVariant(t *testing.T) {
	dev := device.NewStateDevice(800, 600)
	d := newDemo(t, dev, config.Default())

	sc := d.Scene()
	assert.Equal(t, 4, sc.Count())
	assert.True(t, sc.Active())
	assert.InDelta(t, 0.5, sc.Reflectivity(), 1e-6)
	assert.Equal(t, mgl32.Vec3{10, 10, 10}, sc.SurfacePosition())

	refl, ok := sc.Reflector().(*reflection.ClipPlaneReflector)
	require.True(t, ok)
	assert.InDelta(t, 10, refl.Plane().D, 1e-5)

	water := d.Loader().Get(waterTexture)
	require.NotNil(t, water)
	assert.Equal(t, 256, water.Width())
	assert.Same(t, water, sc.Overlay().Texture())
	assert.Equal(t, mgl32.Vec3{0, 0, 30}, d.Camera().Position())

	sc.Render(dev)
	require.NoError(t, dev.Err())
	assert.Equal(t, uint64(1), sc.Stats().Reflected)
}

func TestNewTextureVariant(t *testing.T) {
	dev := device.NewStateDevice(800, 600)
	cfg := config.Default()
	cfg.Reflection.Variant = config.VariantTexture
	cfg.Reflection.TextureWidth = 128
	cfg.Reflection.TextureHeight = 64

	d, err := New(dev, cfg)
	require.NoError(t, err)

	m, ok := d.Scene().Reflector().(*reflection.Mirror)
	require.True(t, ok)
	assert.Equal(t, 128, m.Texture().Width())
	assert.Equal(t, 2, dev.LiveTextures())

	d.Scene().Render(dev)
	require.NoError(t, dev.Err())
	assert.Len(t, dev.Copies(), 1)

	require.NoError(t, d.Close())
	assert.Zero(t, dev.LiveTextures())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Reflection.Variant = "stencil"
	_, err := New(device.NewStateDevice(1, 1), cfg)
	assert.ErrorIs(t, err, config.ErrUnknownVariant)
}

func TestNewReleasesTexturesOnFailure(t *testing.T) {
	dev := device.NewStateDevice(1, 1)
	boom := errors.New("out of texture memory")
	dev.FailTextures(boom)

	_, err := New(dev, config.Default())
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, dev.LiveTextures())
}

func TestTickPauseAndOrbit(t *testing.T) {
	dev := device.NewStateDevice(1, 1)
	cfg := config.Default()
	d := newDemo(t, dev, cfg)

	cube := d.Scene().Objects()[1]
	d.Tick(1)
	moved := cube.Orientation()
	assert.NotEqual(t, mgl32.QuatIdent(), moved)

	d.SetPaused(true)
	d.Scene().Tick(1)
	assert.Equal(t, moved, cube.Orientation())
	assert.True(t, d.Paused())

	assert.False(t, d.Orbiting())
	d.SetOrbiting(true)
	azimuth := d.Orbit().Azimuth()
	d.Tick(1)
	assert.InDelta(t, azimuth+orbitStep(cfg), d.Orbit().Azimuth(), 1e-6)
	assert.InDelta(t, 30, d.Camera().Position().Len(), 1e-3)
	assert.Equal(t, d.Orbit().Eye(), d.Camera().Position())
}

func TestOrbitStartsAtCameraPosition(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Position = [3]float32{10, 10, 0}
	cfg.Camera.Orbit = true
	d := newDemo(t, device.NewStateDevice(1, 1), cfg)

	eye := d.Orbit().Eye()
	assert.InDelta(t, 10, eye.X(), 1e-3)
	assert.InDelta(t, 10, eye.Y(), 1e-3)
	assert.InDelta(t, 0, eye.Z(), 1e-3)
}

func TestZoom(t *testing.T) {
	d := newDemo(t, device.NewStateDevice(1, 1), config.Default())

	d.Zoom(5)
	assert.InDelta(t, 25, d.Camera().Position().Z(), 1e-4)
	d.Zoom(-2)
	assert.InDelta(t, 27, d.Camera().Position().Z(), 1e-4)

	d.SetOrbiting(true)
	d.Zoom(10)
	assert.InDelta(t, 20, d.Orbit().Radius(), 1e-4)
	assert.InDelta(t, 20, d.Camera().Position().Len(), 1e-3)
}

func TestAdjustReflectivity(t *testing.T) {
	d := newDemo(t, device.NewStateDevice(1, 1), config.Default())
	assert.InDelta(t, 0.6, d.AdjustReflectivity(0.1), 1e-6)
	assert.InDelta(t, 1, d.AdjustReflectivity(0.7), 1e-6)
	assert.InDelta(t, 0, d.AdjustReflectivity(-2), 1e-6)
	assert.InDelta(t, 1, d.Scene().Overlay().Color()[3], 1e-6)
}

func TestApply(t *testing.T) {
	d := newDemo(t, device.NewStateDevice(1, 1), config.Default())

	next := config.Default()
	next.Reflection.Reflectivity = 0.9
	next.Light.Ambient = [3]float32{0.1, 0.1, 0.1}
	next.Camera.Fov = 45
	next.Objects = next.Objects[:2]
	require.NoError(t, d.Apply(next))

	assert.InDelta(t, 0.9, d.Scene().Reflectivity(), 1e-6)
	assert.Equal(t, 2, d.Scene().Count())
	assert.InDelta(t, 0.1, d.Scene().Lighting().Ambient()[0], 1e-6)
	assert.InDelta(t, mgl32.DegToRad(45), d.Camera().Fov(), 1e-6)
	assert.Equal(t, next, d.Config())
}

func TestApplyRejectsReflectorChanges(t *testing.T) {
	d := newDemo(t, device.NewStateDevice(1, 1), config.Default())

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"variant", func(c *config.Config) { c.Reflection.Variant = config.VariantTexture }},
		{"position", func(c *config.Config) { c.Reflection.Position = [3]float32{0, 0, 0} }},
		{"size", func(c *config.Config) { c.Reflection.Width = 5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, d.Apply(cfg), ErrRestartRequired)
		})
	}

	bad := config.Default()
	bad.Camera.Near = 0
	assert.ErrorIs(t, d.Apply(bad), config.ErrInvalidConfig)
	assert.Equal(t, config.Default(), d.Config())
}
