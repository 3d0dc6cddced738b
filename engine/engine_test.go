package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-mirror/config"
	"github.com/Carmen-Shannon/oxy-mirror/engine"
	"github.com/Carmen-Shannon/oxy-mirror/engine/camera"
	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
	"github.com/Carmen-Shannon/oxy-mirror/engine/reflection"
	"github.com/Carmen-Shannon/oxy-mirror/engine/renderer"
	"github.com/Carmen-Shannon/oxy-mirror/engine/scene"
	"github.com/Carmen-Shannon/oxy-mirror/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

// fakeWindow runs a scripted message loop: before each update the clock advances by the
// next entry of steps, and the loop ends when the steps run out.
type fakeWindow struct {
	width, height int
	clock         *fakeClock
	steps         []time.Duration
	running       bool
	swaps         int
	closes        int

	onUpdate func()
	onResize func(w, h int)
}

var _ window.Window = &fakeWindow{}

func newFakeWindow(clock *fakeClock, steps ...time.Duration) *fakeWindow {
	return &fakeWindow{width: 640, height: 480, clock: clock, steps: steps, running: true}
}

func (w *fakeWindow) SetUpdateCallback(cb func())                  { w.onUpdate = cb }
func (w *fakeWindow) SetResizeCallback(cb func(width, height int)) { w.onResize = cb }
func (w *fakeWindow) SetScrollCallback(func(float32))              {}
func (w *fakeWindow) SetKeyDownCallback(func(uint32))              {}
func (w *fakeWindow) SetKeyUpCallback(func(uint32))                {}
func (w *fakeWindow) SetTitle(string)                              {}
func (w *fakeWindow) SwapBuffers()                                 { w.swaps++ }
func (w *fakeWindow) IsRunning() bool                              { return w.running }
func (w *fakeWindow) Width() int                                   { return w.width }
func (w *fakeWindow) Height() int                                  { return w.height }

func (w *fakeWindow) Close() error {
	w.running = false
	w.closes++
	return nil
}

func (w *fakeWindow) ProcessMessages() {
	for _, step := range w.steps {
		if !w.running {
			return
		}
		w.clock.t = w.clock.t.Add(step)
		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

func (w *fakeWindow) resize(width, height int) {
	w.width, w.height = width, height
	w.onResize(width, height)
}

func newTestScene(t *testing.T, dev device.Device, z int, active bool) scene.Scene {
	t.Helper()
	cam := camera.NewCamera(camera.WithPosition(mgl32.Vec3{0, 0, 30}))
	refl, err := reflection.NewClipPlaneReflector(dev, mgl32.Vec3{0, 0, -10}, mgl32.Vec3{0, 0, 1})
	require.NoError(t, err)
	s := scene.NewScene("test", cam, refl, scene.WithZIndex(z), scene.WithActive(active), scene.WithComputeWorkers(1))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

const tick = time.Second / 60

func TestRunRequiresWindowAndRenderer(t *testing.T) {
	assert.ErrorIs(t, engine.NewEngine().Run(), engine.ErrNoWindow)

	clock := &fakeClock{}
	eng := engine.NewEngine(engine.WithWindow(newFakeWindow(clock)))
	assert.ErrorIs(t, eng.Run(), engine.ErrNoRenderer)
}

func TestRunTicksAndRendersEachFrame(t *testing.T) {
	dev := device.NewStateDevice(640, 480)
	clock := &fakeClock{t: time.Unix(100, 0)}
	win := newFakeWindow(clock, tick, tick, tick)
	sc := newTestScene(t, dev, 0, true)

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(renderer.NewRenderer(dev)),
		engine.WithScene(sc),
		engine.WithTickRate(60),
		engine.WithClock(clock.now),
	)

	var ticks, renders int
	eng.SetTickCallback(func(dt float32) {
		ticks++
		assert.InDelta(t, 1.0/60, dt, 1e-6)
	})
	eng.SetRenderCallback(func(float32) { renders++ })

	require.NoError(t, eng.Run())
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 3, renders)
	assert.Equal(t, 3, win.swaps)
	assert.Equal(t, uint64(3), sc.Stats().Frames)
	assert.Equal(t, uint64(3), eng.Renderer().Frames())
	assert.Zero(t, eng.Renderer().ErrorCount())

	// Run sized the viewport and camera to the window.
	assert.Equal(t, device.Viewport{Width: 640, Height: 480}, dev.Viewport())
	assert.InDelta(t, 640.0/480.0, sc.Camera().Aspect(), 1e-6)
}

func TestRunContinuesAfterDeviceError(t *testing.T) {
	dev := device.NewStateDevice(64, 64)
	clock := &fakeClock{}
	win := newFakeWindow(clock, tick, tick, tick)

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(renderer.NewRenderer(dev)),
		engine.WithScene(newTestScene(t, dev, 0, true)),
		engine.WithTickRate(60),
		engine.WithClock(clock.now),
	)
	frames := 0
	eng.SetTickCallback(func(float32) {
		frames++
		if frames == 2 {
			dev.PopMatrix(device.Projection)
		}
	})

	require.NoError(t, eng.Run())
	assert.Equal(t, 3, win.swaps)
	assert.Equal(t, uint64(1), eng.Renderer().ErrorCount())
}

func TestRunAccumulatesPartialTicks(t *testing.T) {
	dev := device.NewStateDevice(64, 64)
	clock := &fakeClock{}
	win := newFakeWindow(clock, tick/2, tick/2, tick/2, tick/2)
	eng := engine.NewEngine(engine.WithWindow(win), engine.WithRenderer(renderer.NewRenderer(dev)), engine.WithClock(clock.now))

	ticks := 0
	eng.SetTickCallback(func(float32) { ticks++ })
	require.NoError(t, eng.Run())
	assert.Equal(t, 2, ticks)
	assert.Equal(t, 4, win.swaps)
}

func TestRunDropsBacklogAfterStall(t *testing.T) {
	dev := device.NewStateDevice(64, 64)
	clock := &fakeClock{}
	win := newFakeWindow(clock, 10*time.Second, tick)
	eng := engine.NewEngine(engine.WithWindow(win), engine.WithRenderer(renderer.NewRenderer(dev)), engine.WithClock(clock.now))

	ticks := 0
	eng.SetTickCallback(func(float32) { ticks++ })
	require.NoError(t, eng.Run())
	assert.Equal(t, 8+1, ticks)
}

func TestQuitClosesWindowBeforeRendering(t *testing.T) {
	dev := device.NewStateDevice(64, 64)
	clock := &fakeClock{}
	win := newFakeWindow(clock, tick, tick, tick)
	eng := engine.NewEngine(engine.WithWindow(win), engine.WithRenderer(renderer.NewRenderer(dev)), engine.WithClock(clock.now))

	eng.SetRenderCallback(func(float32) { eng.Quit() })
	require.NoError(t, eng.Run())
	assert.Equal(t, 1, win.swaps)
	assert.Equal(t, 1, win.closes)
}

func TestRunRecoversPanic(t *testing.T) {
	dev := device.NewStateDevice(64, 64)
	clock := &fakeClock{}
	win := newFakeWindow(clock, tick, tick)
	eng := engine.NewEngine(engine.WithWindow(win), engine.WithRenderer(renderer.NewRenderer(dev)), engine.WithClock(clock.now))

	eng.SetTickCallback(func(float32) { panic("boom") })
	err := eng.Run()
	assert.ErrorContains(t, err, "boom")
	assert.Equal(t, 1, win.closes)
	assert.Zero(t, win.swaps)
}

func TestInactiveScenesAreSkipped(t *testing.T) {
	dev := device.NewStateDevice(64, 64)
	clock := &fakeClock{}
	win := newFakeWindow(clock, tick)
	back := newTestScene(t, dev, 0, true)
	hidden := newTestScene(t, dev, 1, false)

	eng := engine.NewEngine(engine.WithWindow(win), engine.WithRenderer(renderer.NewRenderer(dev)), engine.WithClock(clock.now))
	eng.AddScene(back)
	eng.AddScene(hidden)
	require.NoError(t, eng.Run())

	assert.Equal(t, uint64(1), back.Stats().Frames)
	assert.Zero(t, hidden.Stats().Frames)
}

func TestSceneRegistry(t *testing.T) {
	dev := device.NewStateDevice(1, 1)
	a := newTestScene(t, dev, 2, true)
	b := newTestScene(t, dev, 5, true)

	eng := engine.NewEngine(engine.WithScene(a))
	eng.AddScene(b)
	assert.Same(t, a, eng.Scene(2))
	assert.Len(t, eng.Scenes(), 2)

	eng.RemoveScene(2)
	assert.Nil(t, eng.Scene(2))
	assert.Len(t, eng.Scenes(), 1)
}

func TestResizeReachesViewportAndCameras(t *testing.T) {
	dev := device.NewStateDevice(64, 64)
	clock := &fakeClock{}
	win := newFakeWindow(clock)
	sc := newTestScene(t, dev, 0, true)
	engine.NewEngine(engine.WithWindow(win), engine.WithRenderer(renderer.NewRenderer(dev)), engine.WithScene(sc))

	win.resize(300, 100)
	assert.Equal(t, device.Viewport{Width: 300, Height: 100}, dev.Viewport())
	assert.InDelta(t, 3.0, sc.Camera().Aspect(), 1e-6)
}

func TestConfigUpdatesAppliedOnRenderThread(t *testing.T) {
	dev := device.NewStateDevice(64, 64)
	clock := &fakeClock{}
	win := newFakeWindow(clock, tick)
	updates := make(chan config.Config, 2)

	good := config.Default()
	good.Engine.TickRate = 30
	good.Engine.FrameLimit = 0
	rejected := config.Default()
	rejected.Engine.TickRate = 10
	updates <- good
	updates <- rejected

	var applied []float64
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(renderer.NewRenderer(dev)),
		engine.WithClock(clock.now),
		engine.WithConfigUpdates(updates, func(c config.Config) error {
			applied = append(applied, c.Engine.TickRate)
			if c.Engine.TickRate < 20 {
				return errors.New("too slow")
			}
			return nil
		}),
	)
	require.NoError(t, eng.Run())

	assert.Equal(t, []float64{30, 10}, applied)
	assert.Equal(t, time.Second/30, eng.TickRate())
}

func TestTickRateDefaults(t *testing.T) {
	eng := engine.NewEngine(engine.WithTickRate(0))
	assert.Equal(t, time.Second/60, eng.TickRate())
	eng.SetTickRate(120)
	assert.Equal(t, time.Second/120, eng.TickRate())
	eng.SetTickRate(-1)
	assert.Equal(t, time.Second/60, eng.TickRate())
}
