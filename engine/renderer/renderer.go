package renderer

import (
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	dev        device.Device
	clearColor common.Color
	logger     *slog.Logger

	inFrame bool
	frames  uint64
	errors  uint64
}

// Renderer defines the interface for the per-frame lifecycle of a fixed-function device.
//
// Each frame is bracketed by BeginFrame and EndFrame. BeginFrame puts the device into the
// state scenes expect: back faces culled, depth test on, depth writes on, framebuffer
// cleared. EndFrame reports the device errors raised during the frame.
type Renderer interface {
	// Device returns the device the renderer draws with.
	//
	// Returns:
	//   - device.Device: the device
	Device() device.Device

	// BeginFrame prepares the device and clears the color and depth buffers.
	BeginFrame()

	// EndFrame drains the device's error state and logs it once.
	//
	// Returns:
	//   - error: the first device error of the frame, or nil
	EndFrame() error

	// Resize sets the viewport to cover a framebuffer of the given size. Non-positive sizes
	// are ignored, as happens while a window is minimized.
	//
	// Parameters:
	//   - width: the new width of the framebuffer in pixels
	//   - height: the new height of the framebuffer in pixels
	Resize(width, height int)

	// ClearColor returns the color the framebuffer is cleared to.
	//
	// Returns:
	//   - common.Color: the clear color
	ClearColor() common.Color

	// SetClearColor sets the color the framebuffer is cleared to.
	//
	// Parameters:
	//   - c: the clear color
	SetClearColor(c common.Color)

	// Frames returns the number of completed frames.
	//
	// Returns:
	//   - uint64: frames ended
	Frames() uint64

	// ErrorCount returns the number of frames that ended with a device error.
	//
	// Returns:
	//   - uint64: frames with errors
	ErrorCount() uint64
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer drawing with dev.
//
// Parameters:
//   - dev: the device to draw with
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer
func NewRenderer(dev device.Device, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:         &sync.Mutex{},
		dev:        dev,
		clearColor: common.ColorBlack,
		logger:     slog.Default(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) Device() device.Device {
	return r.dev
}

func (r *renderer) BeginFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.inFrame = true
	r.dev.SetEnabled(device.CullFace, true)
	r.dev.SetEnabled(device.DepthTest, true)
	r.dev.SetDepthMask(true)
	r.dev.SetFrontFace(device.CCW)
	r.dev.Clear(r.clearColor)
}

func (r *renderer) EndFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inFrame {
		return nil
	}
	r.inFrame = false
	r.frames++

	err := r.dev.Err()
	if err != nil {
		r.errors++
		r.logger.Error("device error", "component", "Renderer", "frame", r.frames, "error", err)
	}
	return err
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dev.SetViewport(device.Viewport{Width: width, Height: height})
}

func (r *renderer) ClearColor() common.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearColor
}

func (r *renderer) SetClearColor(c common.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = c
}

func (r *renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *renderer) ErrorCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errors
}
