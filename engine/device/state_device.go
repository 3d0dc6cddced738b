package device

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/go-gl/mathgl/mgl32"
)

// State is a comparable snapshot of the device state the reflection passes touch.
// Clip plane equations are not part of the snapshot; only whether each plane is enabled.
type State struct {
	ModelView       mgl32.Mat4
	Projection      mgl32.Mat4
	ModelViewDepth  int
	ProjectionDepth int
	Viewport        Viewport
	FrontFace       Winding
	Capabilities    [capabilityCount]bool
	ClipPlanes      [MaxClipPlanes]bool
	DepthMask       bool
}

// CopyRecord is one framebuffer-to-texture copy.
type CopyRecord struct {
	TextureID uint32
	Source    Viewport
}

// DrawRecord is one Draw call with the state it was issued under.
type DrawRecord struct {
	Primitive   Primitive
	VertexCount int
	ModelView   mgl32.Mat4
	FrontFace   Winding
	// Texture is the bound texture when 2D texturing was enabled, zero otherwise.
	Texture    uint32
	ClipPlanes [MaxClipPlanes]bool
	Material   MaterialState
}

// StateDevice is an in-memory Device. It tracks the same state a fixed-function device
// would, counts every mutation, and records copies and draws so the rendering passes can be
// verified without a GPU. Stack depths are the guaranteed minimums.
type StateDevice struct {
	stacks      [2][]mgl32.Mat4
	viewport    Viewport
	frontFace   Winding
	caps        [capabilityCount]bool
	clipPlanes  [MaxClipPlanes]common.Plane
	clipEnabled [MaxClipPlanes]bool
	depthMask   bool
	clearColor  common.Color
	material    MaterialState
	ambient     common.Color
	lights      [MaxLights]LightState

	textures     map[uint32]*stateTexture
	boundTexture uint32
	nextTexture  uint32
	failTextures error

	err    error
	closed bool

	mutations   int
	depthClears int
	colorClears int
	copies      []CopyRecord
	draws       []DrawRecord
}

var _ Device = &StateDevice{}

// NewStateDevice creates a StateDevice with default state: identity matrices, a viewport of
// width x height, CCW winding, depth writes enabled and every capability disabled.
//
// Parameters:
//   - width: the initial viewport width in pixels
//   - height: the initial viewport height in pixels
//
// Returns:
//   - *StateDevice: the new device
func NewStateDevice(width, height int) *StateDevice {
	d := &StateDevice{
		viewport:    Viewport{Width: width, Height: height},
		depthMask:   true,
		textures:    make(map[uint32]*stateTexture),
		nextTexture: 1,
	}
	d.stacks[ModelView] = []mgl32.Mat4{mgl32.Ident4()}
	d.stacks[Projection] = []mgl32.Mat4{mgl32.Ident4()}
	return d
}

func (d *StateDevice) maxDepth(s MatrixStack) int {
	if s == Projection {
		return MinProjectionDepth
	}
	return MinModelViewDepth
}

func (d *StateDevice) record(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *StateDevice) top(s MatrixStack) *mgl32.Mat4 {
	stack := d.stacks[s]
	return &stack[len(stack)-1]
}

func (d *StateDevice) validClipPlane(i int) bool {
	if i < 0 || i >= MaxClipPlanes {
		d.record(fmt.Errorf("%w: clip plane %d", ErrInvalidValue, i))
		return false
	}
	return true
}

func (d *StateDevice) PushMatrix(s MatrixStack) {
	if len(d.stacks[s]) >= d.maxDepth(s) {
		d.record(fmt.Errorf("%w: %s depth %d", ErrStackOverflow, s, d.maxDepth(s)))
		return
	}
	d.mutations++
	d.stacks[s] = append(d.stacks[s], *d.top(s))
}

func (d *StateDevice) PopMatrix(s MatrixStack) {
	if len(d.stacks[s]) <= 1 {
		d.record(fmt.Errorf("%w: %s", ErrStackUnderflow, s))
		return
	}
	d.mutations++
	d.stacks[s] = d.stacks[s][:len(d.stacks[s])-1]
}

func (d *StateDevice) LoadMatrix(s MatrixStack, m mgl32.Mat4) {
	d.mutations++
	*d.top(s) = m
}

func (d *StateDevice) LoadIdentity(s MatrixStack) {
	d.LoadMatrix(s, mgl32.Ident4())
}

func (d *StateDevice) MultMatrix(s MatrixStack, m mgl32.Mat4) {
	d.mutations++
	top := d.top(s)
	*top = top.Mul4(m)
}

func (d *StateDevice) Matrix(s MatrixStack) mgl32.Mat4 {
	return *d.top(s)
}

func (d *StateDevice) SetFrustum(left, right, bottom, top, near, far float32) {
	d.LoadMatrix(Projection, mgl32.Frustum(left, right, bottom, top, near, far))
}

func (d *StateDevice) Viewport() Viewport {
	return d.viewport
}

func (d *StateDevice) SetViewport(vp Viewport) {
	d.mutations++
	d.viewport = vp
}

// SetClipPlane stores the plane transformed into eye space by the current model-view
// matrix, as a fixed-function device does.
func (d *StateDevice) SetClipPlane(i int, plane common.Plane) {
	if !d.validClipPlane(i) {
		return
	}
	d.mutations++
	d.clipPlanes[i] = transformPlane(plane, d.Matrix(ModelView))
}

func (d *StateDevice) EnableClipPlane(i int, enabled bool) {
	if !d.validClipPlane(i) {
		return
	}
	d.mutations++
	d.clipEnabled[i] = enabled
}

func (d *StateDevice) ClipPlaneEnabled(i int) bool {
	if i < 0 || i >= MaxClipPlanes {
		return false
	}
	return d.clipEnabled[i]
}

// ClipPlane returns the eye-space plane stored in slot i.
//
// Parameters:
//   - i: the clip plane index
//
// Returns:
//   - common.Plane: the stored plane
func (d *StateDevice) ClipPlane(i int) common.Plane {
	return d.clipPlanes[i]
}

func (d *StateDevice) FrontFace() Winding {
	return d.frontFace
}

func (d *StateDevice) SetFrontFace(w Winding) {
	d.mutations++
	d.frontFace = w
}

func (d *StateDevice) SetEnabled(c Capability, enabled bool) {
	if c < 0 || c >= capabilityCount {
		d.record(fmt.Errorf("%w: %s", ErrInvalidValue, c))
		return
	}
	d.mutations++
	d.caps[c] = enabled
}

func (d *StateDevice) Enabled(c Capability) bool {
	if c < 0 || c >= capabilityCount {
		return false
	}
	return d.caps[c]
}

func (d *StateDevice) SetDepthMask(enabled bool) {
	d.mutations++
	d.depthMask = enabled
}

func (d *StateDevice) DepthMask() bool {
	return d.depthMask
}

// ClearDepth counts a depth clear only while depth writes are enabled.
func (d *StateDevice) ClearDepth() {
	d.mutations++
	if d.depthMask {
		d.depthClears++
	}
}

func (d *StateDevice) Clear(color common.Color) {
	d.mutations++
	d.clearColor = color
	d.colorClears++
	if d.depthMask {
		d.depthClears++
	}
}

func (d *StateDevice) NewTexture(desc common.TextureDescriptor) (Texture, error) {
	if d.closed {
		return nil, ErrDeviceClosed
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	if d.failTextures != nil {
		return nil, d.failTextures
	}
	d.mutations++
	tex := &stateTexture{
		device: d,
		id:     d.nextTexture,
		desc:   desc,
	}
	d.nextTexture++
	d.textures[tex.id] = tex
	d.boundTexture = tex.id
	return tex, nil
}

func (d *StateDevice) CopyFramebufferToTexture(tex Texture, src Viewport) {
	st, ok := tex.(*stateTexture)
	if !ok || st.device != d || st.closed {
		d.record(fmt.Errorf("%w: texture is not live on this device", ErrInvalidValue))
		return
	}
	if src.Width > st.desc.Width || src.Height > st.desc.Height {
		d.record(fmt.Errorf("%w: copy %dx%d into %dx%d texture",
			ErrInvalidValue, src.Width, src.Height, st.desc.Width, st.desc.Height))
		return
	}
	d.mutations++
	d.boundTexture = st.id
	d.copies = append(d.copies, CopyRecord{TextureID: st.id, Source: src})
}

func (d *StateDevice) ApplyMaterial(m MaterialState) {
	d.mutations++
	d.material = m
	if m.Texture != nil {
		d.caps[Texture2D] = true
		d.boundTexture = m.Texture.ID()
	} else {
		d.caps[Texture2D] = false
	}
}

func (d *StateDevice) SetAmbientLight(c common.Color) {
	d.mutations++
	d.ambient = c
}

func (d *StateDevice) SetLight(i int, l LightState) {
	if i < 0 || i >= MaxLights {
		d.record(fmt.Errorf("%w: light %d", ErrInvalidValue, i))
		return
	}
	d.mutations++
	// Like GL, the direction is stored in eye space.
	l.Direction = d.Matrix(ModelView).Mul4x1(l.Direction.Vec4(0)).Vec3()
	d.lights[i] = l
}

func (d *StateDevice) Draw(p Primitive, vertices []Vertex) {
	d.mutations++
	rec := DrawRecord{
		Primitive:   p,
		VertexCount: len(vertices),
		ModelView:   d.Matrix(ModelView),
		FrontFace:   d.frontFace,
		ClipPlanes:  d.clipEnabled,
		Material:    d.material,
	}
	if d.caps[Texture2D] {
		rec.Texture = d.boundTexture
	}
	d.draws = append(d.draws, rec)
}

func (d *StateDevice) Err() error {
	err := d.err
	d.err = nil
	return err
}

// Close releases every live texture. Texture allocation fails afterwards.
func (d *StateDevice) Close() error {
	for id := range d.textures {
		delete(d.textures, id)
	}
	d.closed = true
	return nil
}

// Snapshot returns the current state for round-trip comparisons.
func (d *StateDevice) Snapshot() State {
	return State{
		ModelView:       d.Matrix(ModelView),
		Projection:      d.Matrix(Projection),
		ModelViewDepth:  len(d.stacks[ModelView]),
		ProjectionDepth: len(d.stacks[Projection]),
		Viewport:        d.viewport,
		FrontFace:       d.frontFace,
		Capabilities:    d.caps,
		ClipPlanes:      d.clipEnabled,
		DepthMask:       d.depthMask,
	}
}

// StackDepth returns the number of matrices on stack s.
func (d *StateDevice) StackDepth(s MatrixStack) int {
	return len(d.stacks[s])
}

// Mutations returns the number of state-changing calls made so far.
func (d *StateDevice) Mutations() int {
	return d.mutations
}

// DepthClears returns the number of effective depth buffer clears.
func (d *StateDevice) DepthClears() int {
	return d.depthClears
}

// ColorClears returns the number of color buffer clears.
func (d *StateDevice) ColorClears() int {
	return d.colorClears
}

// Copies returns every framebuffer copy made so far.
func (d *StateDevice) Copies() []CopyRecord {
	return d.copies
}

// Draws returns every draw issued so far.
func (d *StateDevice) Draws() []DrawRecord {
	return d.draws
}

// Lights returns the state of every light slot.
func (d *StateDevice) Lights() [MaxLights]LightState {
	return d.lights
}

// AmbientLight returns the global ambient light color.
func (d *StateDevice) AmbientLight() common.Color {
	return d.ambient
}

// LiveTextures returns the number of textures allocated and not yet closed.
func (d *StateDevice) LiveTextures() int {
	return len(d.textures)
}

// ResetRecords clears the draw and copy logs and the counters, keeping all device state.
func (d *StateDevice) ResetRecords() {
	d.mutations = 0
	d.depthClears = 0
	d.colorClears = 0
	d.copies = nil
	d.draws = nil
}

// FailTextures makes every following NewTexture call fail with err. A nil err restores
// normal allocation.
//
// Parameters:
//   - err: the error NewTexture returns, or nil
func (d *StateDevice) FailTextures(err error) {
	d.failTextures = err
}

// transformPlane maps a world-space plane into the space defined by modelView. A point P in
// eye space satisfies dot(N', P) = D' iff the model-space point does dot(N, P) = D.
func transformPlane(p common.Plane, modelView mgl32.Mat4) common.Plane {
	inv := modelView.Inv()
	eq := mgl32.Vec4{p.Normal[0], p.Normal[1], p.Normal[2], -p.D}
	// Plane coefficients transform by the inverse transpose: e' = e * M^-1.
	out := inv.Transpose().Mul4x1(eq)
	n := out.Vec3()
	length := n.Len()
	if length == 0 {
		return common.Plane{Normal: n, D: -out[3]}
	}
	return common.Plane{Normal: n.Mul(1 / length), D: -out[3] / length}
}

type stateTexture struct {
	device *StateDevice
	id     uint32
	desc   common.TextureDescriptor
	closed bool
}

var _ Texture = &stateTexture{}

func (t *stateTexture) ID() uint32                  { return t.id }
func (t *stateTexture) Width() int                  { return t.desc.Width }
func (t *stateTexture) Height() int                 { return t.desc.Height }
func (t *stateTexture) Format() common.TextureFormat { return t.desc.Format }

func (t *stateTexture) Bind() {
	t.device.mutations++
	t.device.boundTexture = t.id
}

func (t *stateTexture) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	delete(t.device.textures, t.id)
	return nil
}
