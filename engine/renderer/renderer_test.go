package renderer

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginFrame(t *testing.T) {
	dev := device.NewStateDevice(640, 480)
	dev.SetDepthMask(false)
	dev.SetFrontFace(device.CW)
	r := NewRenderer(dev, WithClearColor(common.ColorGray))

	r.BeginFrame()

	assert.True(t, dev.Enabled(device.CullFace))
	assert.True(t, dev.Enabled(device.DepthTest))
	assert.True(t, dev.DepthMask())
	assert.Equal(t, device.CCW, dev.FrontFace())
	assert.Equal(t, 1, dev.ColorClears())
	assert.Equal(t, 1, dev.DepthClears())
	assert.Equal(t, common.ColorGray, r.ClearColor())
	assert.Same(t, dev, r.Device())
}

func TestEndFrameReportsDeviceErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	dev := device.NewStateDevice(1, 1)
	r := NewRenderer(dev, WithLogger(logger))

	r.BeginFrame()
	require.NoError(t, r.EndFrame())

	r.BeginFrame()
	dev.PopMatrix(device.ModelView)
	err := r.EndFrame()
	assert.ErrorIs(t, err, device.ErrStackUnderflow)
	assert.Contains(t, buf.String(), "device error")
	assert.Contains(t, buf.String(), "component=Renderer")

	assert.Equal(t, uint64(2), r.Frames())
	assert.Equal(t, uint64(1), r.ErrorCount())
}

func TestEndFrameOutsideFrame(t *testing.T) {
	dev := device.NewStateDevice(1, 1)
	r := NewRenderer(dev)
	dev.PopMatrix(device.ModelView)

	assert.NoError(t, r.EndFrame())
	assert.Zero(t, r.Frames())
	assert.ErrorIs(t, dev.Err(), device.ErrStackUnderflow)
}

func TestResize(t *testing.T) {
	dev := device.NewStateDevice(800, 600)
	r := NewRenderer(dev)

	r.Resize(1024, 768)
	assert.Equal(t, device.Viewport{Width: 1024, Height: 768}, dev.Viewport())

	r.Resize(0, 0)
	assert.Equal(t, device.Viewport{Width: 1024, Height: 768}, dev.Viewport())

	r.SetClearColor(common.ColorWhite)
	assert.Equal(t, common.ColorWhite, r.ClearColor())
}
