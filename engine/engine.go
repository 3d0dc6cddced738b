package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-mirror/config"
	"github.com/Carmen-Shannon/oxy-mirror/engine/profiler"
	"github.com/Carmen-Shannon/oxy-mirror/engine/renderer"
	"github.com/Carmen-Shannon/oxy-mirror/engine/scene"
	"github.com/Carmen-Shannon/oxy-mirror/engine/window"
)

// maxTicksPerFrame bounds the fixed-rate catch-up after a stall; the rest of the backlog is dropped.
const maxTicksPerFrame = 8

var (
	// ErrNoWindow is returned by Run when the engine has no window.
	ErrNoWindow = errors.New("engine has no window")
	// ErrNoRenderer is returned by Run when the engine has no renderer.
	ErrNoRenderer = errors.New("engine has no renderer")
)

// engine implements the Engine interface.
// Everything except Quit runs on the thread that owns the GL context.
type engine struct {
	quit atomic.Bool

	window   window.Window
	renderer renderer.Renderer

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	accumulator    time.Duration
	lastFrame      time.Time
	now            func() time.Time

	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	configUpdates <-chan config.Config
	applyConfig   func(config.Config) error

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	logger *slog.Logger
	err    error
}

// Engine is the main entry point for the engine.
// It runs fixed-rate ticks and renders every active scene once per window message loop
// iteration, all on the calling thread.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer that owns the frame lifecycle.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	// Scenes and the tick callback advance by exactly 1/fps seconds per tick.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// TickRate returns the duration of one tick.
	TickRate() time.Duration

	// SetTickCallback registers the function called each engine tick, before the scenes tick.
	// Use this for input processing and animation updates.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the tick length in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each frame after the scenes render and
	// before the buffers are swapped.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the frame time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at its z-index, replacing any scene already there.
	// Scenes are rendered in ascending z-index order.
	//
	// Parameters:
	//   - s: the Scene to register
	AddScene(s scene.Scene)

	// RemoveScene removes the scene at the given z-index.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Run locks the calling goroutine to its OS thread and runs the window message loop
	// until the window closes or Quit is called. A panic in a frame is recovered, logged
	// and ends the loop.
	//
	// Returns:
	//   - error: ErrNoWindow or ErrNoRenderer if the engine is incomplete, or the recovered panic
	Run() error

	// Quit asks the loop to stop at the start of the next frame and close the window.
	// Safe to call from any goroutine and multiple times.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		scenes:         make(map[int]scene.Scene),
		engineTickRate: time.Second / 60,
		now:            time.Now,
		logger:         slog.Default(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}
	if e.renderer == nil {
		return ErrNoRenderer
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	e.err = nil
	e.accumulator = 0
	e.lastFrame = e.now()
	e.resize(e.window.Width(), e.window.Height())
	e.window.SetUpdateCallback(e.frame)
	e.window.ProcessMessages()
	return e.err
}

func (e *engine) Quit() {
	e.quit.Store(true)
}

// resize propagates a framebuffer size to the viewport and every scene camera.
func (e *engine) resize(width, height int) {
	if e.renderer != nil {
		e.renderer.Resize(width, height)
	}
	for _, s := range e.scenes {
		s.Camera().Reshape(width, height)
	}
}

// frame runs one message loop iteration: config reloads, fixed-rate ticks, rendering,
// buffer swap, profiling and frame limiting.
func (e *engine) frame() {
	defer func() {
		if r := recover(); r != nil {
			e.err = fmt.Errorf("frame panicked: %v", r)
			e.logger.Error("frame recovered from panic", "component", "Engine", "panic", r)
			e.closeWindow()
		}
	}()

	if e.quit.Load() {
		e.closeWindow()
		return
	}

	now := e.now()
	frameTime := now.Sub(e.lastFrame)
	e.lastFrame = now

	e.drainConfigUpdates()
	e.runTicks(frameTime)

	active := e.activeScenes()
	e.renderer.BeginFrame()
	dev := e.renderer.Device()
	for _, s := range active {
		s.Render(dev)
	}
	// EndFrame logs device errors and counts them for the profiler; a GL error does not stop the loop.
	_ = e.renderer.EndFrame()

	dt := float32(frameTime.Seconds())
	if e.renderCallback != nil {
		e.renderCallback(dt)
	}

	e.window.SwapBuffers()

	if e.profilingEnabled {
		e.profiler.Tick(e.statsAttrs(active)...)
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(now); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// runTicks advances the fixed-rate simulation by every whole tick in the accumulated time.
func (e *engine) runTicks(frameTime time.Duration) {
	e.accumulator += frameTime
	step := e.engineTickRate
	dt := float32(step.Seconds())

	ticks := 0
	for e.accumulator >= step {
		if ticks == maxTicksPerFrame {
			e.accumulator = 0
			break
		}
		if e.tickCallback != nil {
			e.tickCallback(dt)
		}
		for _, s := range e.activeScenes() {
			s.Tick(dt)
		}
		e.accumulator -= step
		ticks++
	}
}

// drainConfigUpdates applies every pending reloaded config without blocking.
func (e *engine) drainConfigUpdates() {
	if e.configUpdates == nil || e.applyConfig == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-e.configUpdates:
			if !ok {
				e.configUpdates = nil
				return
			}
			if err := e.applyConfig(cfg); err != nil {
				e.logger.Warn("config not applied", "component", "Engine", "error", err)
				continue
			}
			e.SetTickRate(cfg.Engine.TickRate)
			e.SetRenderFrameLimit(cfg.Engine.FrameLimit)
			e.profilingEnabled = cfg.Engine.Profiling
		default:
			return
		}
	}
}

// activeScenes returns the active scenes in ascending z-index order.
func (e *engine) activeScenes() []scene.Scene {
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	active := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	return active
}

func (e *engine) statsAttrs(active []scene.Scene) []slog.Attr {
	var reflected, skipped uint64
	objects := 0
	for _, s := range active {
		st := s.Stats()
		reflected += st.Reflected
		skipped += st.Skipped
		objects += st.Objects
	}
	return []slog.Attr{
		slog.Int("scenes", len(active)),
		slog.Int("objects", objects),
		slog.Uint64("reflected", reflected),
		slog.Uint64("skipped", skipped),
		slog.Uint64("device_errors", e.renderer.ErrorCount()),
	}
}

func (e *engine) closeWindow() {
	if !e.window.IsRunning() {
		return
	}
	if err := e.window.Close(); err != nil {
		e.logger.Warn("window close failed", "component", "Engine", "error", err)
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickRate(fps float64) {
	e.engineTickRate = tickDuration(fps)
}

func (e *engine) TickRate() time.Duration {
	return e.engineTickRate
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) AddScene(s scene.Scene) {
	e.scenes[s.ZIndex()] = s
}

func (e *engine) RemoveScene(key int) {
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

func tickDuration(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
