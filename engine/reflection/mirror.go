package reflection

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
	"github.com/Carmen-Shannon/oxy-mirror/engine/model"
	"github.com/Carmen-Shannon/oxy-mirror/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// Mirror is a rectangular reflective surface rendered through a capture texture.
//
// The mirror lies in its local XY plane, centered on its position, and reflects toward its
// local +Z. Begin renders the reflected scene into the lower-left corner of the framebuffer
// at the capture size; End copies that region into the capture texture, which Apply then
// draws across the mirror quad.
type Mirror struct {
	dev         device.Device
	position    mgl32.Vec3
	orientation mgl32.Quat
	width       float32
	height      float32

	texture  device.Texture
	material material.Material
	quad     model.Model

	materialOptions []material.MaterialBuilderOption
	frustumCulling  bool
	logger          *slog.Logger

	state         State
	savedViewport device.Viewport
	savedWinding  device.Winding
	closed        bool
}

var _ Reflector = &Mirror{}

// NewMirror creates a mirror and allocates its capture texture on dev.
//
// Parameters:
//   - dev: the device the mirror is rendered on
//   - position: the mirror center in world space
//   - orientation: the mirror orientation; an unrotated mirror faces +Z
//   - w, h: the mirror size in world units
//   - tw, th: the capture texture size in texels; it must fit in the framebuffer
//   - options: variadic list of MirrorBuilderOption functions
//
// Returns:
//   - *Mirror: the mirror, idle
//   - error: error wrapping ErrCaptureTarget when the texture cannot be allocated
func NewMirror(dev device.Device, position mgl32.Vec3, orientation mgl32.Quat, w, h float32, tw, th int, options ...MirrorBuilderOption) (*Mirror, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid mirror size %gx%g", w, h)
	}

	m := &Mirror{
		dev:         dev,
		position:    position,
		orientation: orientation.Normalize(),
		width:       w,
		height:      h,
		logger:      slog.Default(),
	}
	for _, opt := range options {
		opt(m)
	}

	tex, err := dev.NewTexture(common.TextureDescriptor{
		Width:  tw,
		Height: th,
		Format: common.TextureFormatRGB,
		Wrap:   common.WrapClamp,
		Linear: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %dx%d: %w", ErrCaptureTarget, tw, th, err)
	}
	m.texture = tex

	matOptions := append([]material.MaterialBuilderOption{
		material.WithName("mirror"),
		material.WithColor(common.ColorWhite),
		material.WithTexture(tex, device.EnvReplace),
		material.WithShadeModel(device.ShadeFlat),
	}, m.materialOptions...)
	m.material = material.NewMaterial(matOptions...)
	m.quad = model.Quad(w, h)

	return m, nil
}

// Position returns the mirror center.
func (m *Mirror) Position() mgl32.Vec3 {
	return m.position
}

// SetPosition moves the mirror. It takes effect at the next Begin.
func (m *Mirror) SetPosition(position mgl32.Vec3) {
	m.position = position
}

// Orientation returns the mirror orientation.
func (m *Mirror) Orientation() mgl32.Quat {
	return m.orientation
}

// SetOrientation rotates the mirror. It takes effect at the next Begin.
func (m *Mirror) SetOrientation(orientation mgl32.Quat) {
	m.orientation = orientation.Normalize()
}

// Size returns the mirror width and height in world units.
func (m *Mirror) Size() (w, h float32) {
	return m.width, m.height
}

// Normal returns the direction the mirror faces: the local +Z axis in world space.
func (m *Mirror) Normal() mgl32.Vec3 {
	return m.orientation.Rotate(common.ZAxis)
}

func (m *Mirror) Plane() common.Plane {
	n := m.Normal()
	return common.Plane{Normal: n, D: n.Dot(m.position)}
}

// ModelMatrix returns the transform from mirror space to world space.
func (m *Mirror) ModelMatrix() mgl32.Mat4 {
	return common.ModelMatrix(m.position, m.orientation, mgl32.Vec3{1, 1, 1})
}

// Corners returns the four corners of the mirror quad in world space.
func (m *Mirror) Corners() [4]mgl32.Vec3 {
	hw, hh := m.width*0.5, m.height*0.5
	var corners [4]mgl32.Vec3
	for i, local := range [4]mgl32.Vec3{{-hw, -hh, 0}, {hw, -hh, 0}, {hw, hh, 0}, {-hw, hh, 0}} {
		corners[i] = m.position.Add(m.orientation.Rotate(local))
	}
	return corners
}

// Texture returns the capture texture.
func (m *Mirror) Texture() device.Texture {
	return m.texture
}

// Material returns the material the quad is drawn with.
func (m *Mirror) Material() material.Material {
	return m.material
}

func (m *Mirror) State() State {
	return m.state
}

func (m *Mirror) IsReflecting() bool {
	return m.state == StateCapturing
}

// Begin starts a capture when the viewer is strictly in front of the mirror, the
// framebuffer holds the capture region and, with frustum culling enabled, the quad is at
// least partly in view.
func (m *Mirror) Begin(viewer Viewer) bool {
	if m.state != StateIdle {
		common.Assert(false, "Mirror.Begin called while %s", m.state)
		return true
	}
	common.Assert(!m.closed, "Mirror.Begin called after Close")
	if m.closed {
		return false
	}

	plane := m.Plane()
	cameraPos := viewer.Position()
	distance := plane.SignedDistance(cameraPos)
	if distance <= 0 {
		m.logger.Debug("reflection skipped", "component", "Mirror", "reason", "behind", "distance", distance)
		return false
	}
	if m.frustumCulling {
		if fv, ok := viewer.(frustumViewer); ok {
			corners := m.Corners()
			if !common.ExtractFrustumFromMatrix(fv.ViewProjectionMatrix()).IntersectsPoints(corners[:]...) {
				m.logger.Debug("reflection skipped", "component", "Mirror", "reason", "outside frustum")
				return false
			}
		}
	}

	tw, th := m.texture.Width(), m.texture.Height()
	vp := m.dev.Viewport()
	if tw > vp.X+vp.Width || th > vp.Y+vp.Height {
		m.logger.Debug("reflection skipped", "component", "Mirror", "reason", "framebuffer smaller than capture",
			"capture", fmt.Sprintf("%dx%d", tw, th), "viewport", fmt.Sprintf("%dx%d", vp.Width, vp.Height))
		return false
	}

	m.savedViewport = vp
	m.dev.SetViewport(device.Viewport{Width: tw, Height: th})

	offset := MirrorOffset(plane, m.position, m.orientation, cameraPos)
	b := OffAxisBounds(offset, m.width, m.height, distance, viewer.Near(), viewer.Far())
	m.dev.PushMatrix(device.Projection)
	m.dev.LoadIdentity(device.Projection)
	m.dev.SetFrustum(b.Left, b.Right, b.Bottom, b.Top, b.Near, b.Far)

	m.dev.PushMatrix(device.ModelView)
	m.dev.LoadMatrix(device.ModelView, ReflectedView(plane, m.orientation, cameraPos))

	m.savedWinding = m.dev.FrontFace()
	m.dev.SetFrontFace(m.savedWinding.Opposite())

	m.state = StateCapturing
	return true
}

// End copies the captured image into the texture and restores the viewport, both matrix
// stacks and the winding. Texturing and lighting are left disabled and the depth buffer is
// cleared.
func (m *Mirror) End() {
	if m.state != StateCapturing {
		return
	}

	m.dev.SetEnabled(device.Texture2D, false)
	m.dev.SetEnabled(device.Texture1D, false)
	m.dev.SetEnabled(device.Lighting, false)
	m.dev.CopyFramebufferToTexture(m.texture, device.Viewport{Width: m.texture.Width(), Height: m.texture.Height()})

	m.dev.SetViewport(m.savedViewport)
	m.dev.PopMatrix(device.Projection)
	m.dev.PopMatrix(device.ModelView)

	m.dev.SetDepthMask(true)
	m.dev.ClearDepth()
	m.dev.SetFrontFace(m.savedWinding)

	m.state = StateIdle
}

// Apply draws the mirror quad in mirror space with the mirror material. The caller sets up
// ModelMatrix on the model-view stack.
func (m *Mirror) Apply() {
	m.material.Apply(m.dev)
	m.quad.Draw(m.dev)
}

// Close releases the capture texture. Closing twice is a no-op.
//
// Returns:
//   - error: error from releasing the texture
func (m *Mirror) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	return m.texture.Close()
}
