// Package gldevice implements device.Device on an OpenGL compatibility profile context.
package gldevice

import (
	"fmt"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
	"github.com/go-gl/gl/v3.2-compatibility/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// GLDevice issues fixed-function OpenGL calls. The GL context must be current on the
// calling thread for every method, including New.
type GLDevice struct {
	matrixMode uint32
	err        error
	closed     bool
	textures   map[uint32]*glTexture
}

var _ device.Device = &GLDevice{}

// New loads the GL entry points for the current context and sets the engine defaults:
// back-face culling, depth testing, CCW front faces, alpha blending factors and tightly
// packed pixel rows.
//
// Returns:
//   - *GLDevice: the device
//   - error: error if the GL entry points could not be loaded
func New() (*GLDevice, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.NORMALIZE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()

	d := &GLDevice{
		matrixMode: gl.MODELVIEW,
		textures:   make(map[uint32]*glTexture),
	}
	if err := d.Err(); err != nil {
		return nil, fmt.Errorf("failed to set initial GL state: %w", err)
	}
	return d, nil
}

// Version returns the GL_VERSION string of the current context.
func (d *GLDevice) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (d *GLDevice) useStack(s device.MatrixStack) {
	mode := uint32(gl.MODELVIEW)
	if s == device.Projection {
		mode = gl.PROJECTION
	}
	if mode != d.matrixMode {
		gl.MatrixMode(mode)
		d.matrixMode = mode
	}
}

func (d *GLDevice) record(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *GLDevice) PushMatrix(s device.MatrixStack) {
	d.useStack(s)
	gl.PushMatrix()
}

func (d *GLDevice) PopMatrix(s device.MatrixStack) {
	d.useStack(s)
	gl.PopMatrix()
}

func (d *GLDevice) LoadMatrix(s device.MatrixStack, m mgl32.Mat4) {
	d.useStack(s)
	gl.LoadMatrixf(&m[0])
}

func (d *GLDevice) LoadIdentity(s device.MatrixStack) {
	d.useStack(s)
	gl.LoadIdentity()
}

func (d *GLDevice) MultMatrix(s device.MatrixStack, m mgl32.Mat4) {
	d.useStack(s)
	gl.MultMatrixf(&m[0])
}

func (d *GLDevice) Matrix(s device.MatrixStack) mgl32.Mat4 {
	var m mgl32.Mat4
	pname := uint32(gl.MODELVIEW_MATRIX)
	if s == device.Projection {
		pname = gl.PROJECTION_MATRIX
	}
	gl.GetFloatv(pname, &m[0])
	return m
}

func (d *GLDevice) SetFrustum(left, right, bottom, top, near, far float32) {
	d.useStack(device.Projection)
	gl.LoadIdentity()
	gl.Frustum(float64(left), float64(right), float64(bottom), float64(top), float64(near), float64(far))
}

func (d *GLDevice) Viewport() device.Viewport {
	var vp [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &vp[0])
	return device.Viewport{X: int(vp[0]), Y: int(vp[1]), Width: int(vp[2]), Height: int(vp[3])}
}

func (d *GLDevice) SetViewport(vp device.Viewport) {
	gl.Viewport(int32(vp.X), int32(vp.Y), int32(vp.Width), int32(vp.Height))
}

func (d *GLDevice) clipPlane(i int) (uint32, bool) {
	if i < 0 || i >= device.MaxClipPlanes {
		d.record(fmt.Errorf("%w: clip plane %d", device.ErrInvalidValue, i))
		return 0, false
	}
	return gl.CLIP_PLANE0 + uint32(i), true
}

// SetClipPlane installs the plane; GL transforms it by the current model-view matrix.
func (d *GLDevice) SetClipPlane(i int, plane common.Plane) {
	id, ok := d.clipPlane(i)
	if !ok {
		return
	}
	eq := plane.Equation()
	gl.ClipPlane(id, &eq[0])
}

func (d *GLDevice) EnableClipPlane(i int, enabled bool) {
	id, ok := d.clipPlane(i)
	if !ok {
		return
	}
	setCap(id, enabled)
}

func (d *GLDevice) ClipPlaneEnabled(i int) bool {
	if i < 0 || i >= device.MaxClipPlanes {
		return false
	}
	return gl.IsEnabled(gl.CLIP_PLANE0 + uint32(i))
}

func (d *GLDevice) FrontFace() device.Winding {
	var w int32
	gl.GetIntegerv(gl.FRONT_FACE, &w)
	if w == gl.CW {
		return device.CW
	}
	return device.CCW
}

func (d *GLDevice) SetFrontFace(w device.Winding) {
	if w == device.CW {
		gl.FrontFace(gl.CW)
		return
	}
	gl.FrontFace(gl.CCW)
}

func capability(c device.Capability) (uint32, bool) {
	switch c {
	case device.Texture1D:
		return gl.TEXTURE_1D, true
	case device.Texture2D:
		return gl.TEXTURE_2D, true
	case device.Lighting:
		return gl.LIGHTING, true
	case device.CullFace:
		return gl.CULL_FACE, true
	case device.DepthTest:
		return gl.DEPTH_TEST, true
	case device.Blend:
		return gl.BLEND, true
	default:
		return 0, false
	}
}

func setCap(id uint32, enabled bool) {
	if enabled {
		gl.Enable(id)
	} else {
		gl.Disable(id)
	}
}

func (d *GLDevice) SetEnabled(c device.Capability, enabled bool) {
	id, ok := capability(c)
	if !ok {
		d.record(fmt.Errorf("%w: %s", device.ErrInvalidValue, c))
		return
	}
	setCap(id, enabled)
}

func (d *GLDevice) Enabled(c device.Capability) bool {
	id, ok := capability(c)
	return ok && gl.IsEnabled(id)
}

func (d *GLDevice) SetDepthMask(enabled bool) {
	gl.DepthMask(enabled)
}

func (d *GLDevice) DepthMask() bool {
	var mask bool
	gl.GetBooleanv(gl.DEPTH_WRITEMASK, &mask)
	return mask
}

func (d *GLDevice) ClearDepth() {
	gl.Clear(gl.DEPTH_BUFFER_BIT)
}

func (d *GLDevice) Clear(color common.Color) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// NewTexture allocates a 2D texture. When desc.Pixels is nil the storage is allocated
// without initial contents, ready to receive framebuffer copies.
func (d *GLDevice) NewTexture(desc common.TextureDescriptor) (device.Texture, error) {
	if d.closed {
		return nil, device.ErrDeviceClosed
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	// Drop any stale error so a failure below is attributed to this allocation.
	_ = d.Err()

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	wrap := int32(gl.CLAMP)
	if desc.Wrap == common.WrapRepeat {
		wrap = gl.REPEAT
	}
	filter := int32(gl.NEAREST)
	if desc.Linear {
		filter = gl.LINEAR
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)

	format := uint32(gl.RGB)
	if desc.Format == common.TextureFormatRGBA {
		format = gl.RGBA
	}
	var pixels unsafe.Pointer
	if desc.Pixels != nil {
		pixels = gl.Ptr(desc.Pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(format), int32(desc.Width), int32(desc.Height), 0, format, gl.UNSIGNED_BYTE, pixels)

	if err := d.Err(); err != nil {
		gl.DeleteTextures(1, &id)
		return nil, fmt.Errorf("failed to allocate %dx%d texture: %w", desc.Width, desc.Height, err)
	}

	tex := &glTexture{device: d, id: id, desc: desc}
	d.textures[id] = tex
	return tex, nil
}

func (d *GLDevice) CopyFramebufferToTexture(tex device.Texture, src device.Viewport) {
	tex.Bind()
	gl.CopyTexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(src.X), int32(src.Y), int32(src.Width), int32(src.Height))
}

func (d *GLDevice) ApplyMaterial(m device.MaterialState) {
	gl.ShadeModel(shadeModel(m.Shade))
	gl.Materialfv(gl.FRONT_AND_BACK, gl.AMBIENT_AND_DIFFUSE, &m.AmbientDiffuse[0])
	gl.Materialfv(gl.FRONT_AND_BACK, gl.SPECULAR, &m.Specular[0])
	gl.Materialf(gl.FRONT_AND_BACK, gl.SHININESS, m.Shininess)
	gl.Materialfv(gl.FRONT_AND_BACK, gl.EMISSION, &m.Emission[0])
	gl.Color4fv(&m.AmbientDiffuse[0])

	if m.Texture == nil {
		gl.Disable(gl.TEXTURE_2D)
		return
	}
	gl.Enable(gl.TEXTURE_2D)
	m.Texture.Bind()
	mode := int32(gl.MODULATE)
	if m.EnvMode == device.EnvReplace {
		mode = gl.REPLACE
	}
	gl.TexEnvi(gl.TEXTURE_ENV, gl.TEXTURE_ENV_MODE, mode)
}

func shadeModel(s device.ShadeModel) uint32 {
	if s == device.ShadeFlat {
		return gl.FLAT
	}
	return gl.SMOOTH
}

func (d *GLDevice) SetAmbientLight(c common.Color) {
	gl.LightModelfv(gl.LIGHT_MODEL_AMBIENT, &c[0])
}

// SetLight installs a directional light. Its direction is transformed by the current
// model-view matrix.
func (d *GLDevice) SetLight(i int, l device.LightState) {
	if i < 0 || i >= device.MaxLights {
		d.record(fmt.Errorf("%w: light %d", device.ErrInvalidValue, i))
		return
	}
	id := gl.LIGHT0 + uint32(i)
	if !l.Enabled {
		gl.Disable(id)
		return
	}
	// A directional light is a position at infinity pointing back toward the light.
	toLight := l.Direction.Mul(-1).Vec4(0)
	gl.Lightfv(id, gl.POSITION, &toLight[0])
	gl.Lightfv(id, gl.AMBIENT, &l.Ambient[0])
	gl.Lightfv(id, gl.DIFFUSE, &l.Diffuse[0])
	gl.Lightfv(id, gl.SPECULAR, &l.Specular[0])
	gl.Enable(id)
}

func primitive(p device.Primitive) uint32 {
	switch p {
	case device.Quads:
		return gl.QUADS
	case device.Lines:
		return gl.LINES
	case device.LineLoop:
		return gl.LINE_LOOP
	default:
		return gl.TRIANGLES
	}
}

func (d *GLDevice) Draw(p device.Primitive, vertices []device.Vertex) {
	gl.Begin(primitive(p))
	for i := range vertices {
		v := &vertices[i]
		if !v.Color.IsZero() {
			gl.Color4fv(&v.Color[0])
		}
		gl.Normal3f(v.Normal[0], v.Normal[1], v.Normal[2])
		gl.TexCoord2f(v.TexCoord[0], v.TexCoord[1])
		gl.Vertex3f(v.Position[0], v.Position[1], v.Position[2])
	}
	gl.End()
}

// Err returns the first recorded device error, or the next pending GL error. GL errors
// are drained so that each one is reported once.
func (d *GLDevice) Err() error {
	if err := d.err; err != nil {
		d.err = nil
		return err
	}
	code := gl.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	// Drain the remaining flags; only the first is reported.
	for gl.GetError() != gl.NO_ERROR {
	}
	return glError(code)
}

func glError(code uint32) error {
	switch code {
	case gl.STACK_OVERFLOW:
		return device.ErrStackOverflow
	case gl.STACK_UNDERFLOW:
		return device.ErrStackUnderflow
	case gl.INVALID_VALUE, gl.INVALID_ENUM, gl.INVALID_OPERATION:
		return fmt.Errorf("%w: GL error 0x%04x", device.ErrInvalidValue, code)
	case gl.OUT_OF_MEMORY:
		return fmt.Errorf("GL out of memory (0x%04x)", code)
	default:
		return fmt.Errorf("GL error 0x%04x", code)
	}
}

// Close deletes every live texture. The GL context itself belongs to the window.
func (d *GLDevice) Close() error {
	if d.closed {
		return nil
	}
	for _, tex := range d.textures {
		_ = tex.Close()
	}
	d.closed = true
	return nil
}

type glTexture struct {
	device *GLDevice
	id     uint32
	desc   common.TextureDescriptor
	closed bool
}

var _ device.Texture = &glTexture{}

func (t *glTexture) ID() uint32                  { return t.id }
func (t *glTexture) Width() int                  { return t.desc.Width }
func (t *glTexture) Height() int                 { return t.desc.Height }
func (t *glTexture) Format() common.TextureFormat { return t.desc.Format }

func (t *glTexture) Bind() {
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

func (t *glTexture) Close() error {
	if t.closed {
		return nil
	}
	gl.DeleteTextures(1, &t.id)
	t.closed = true
	delete(t.device.textures, t.id)
	return nil
}
