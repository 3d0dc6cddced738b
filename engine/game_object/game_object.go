package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
	"github.com/Carmen-Shannon/oxy-mirror/engine/model"
	"github.com/Carmen-Shannon/oxy-mirror/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

type gameObject struct {
	mu *sync.Mutex

	id       uint64
	enabled  atomic.Bool
	mdl      model.Model
	mat      material.Material
	position mgl32.Vec3
	scale    mgl32.Vec3

	// base is the resting orientation; spin is applied on top of it.
	base     mgl32.Quat
	spin     mgl32.Vec3
	rotation mgl32.Quat

	modelMatrix mgl32.Mat4
	dirty       bool
}

// GameObject defines the interface for a drawable scene entity: a model with a material
// placed by position, orientation and scale, optionally spinning about its local axes.
//
// Update may run on a worker goroutine; Draw runs on the render thread after every
// Update of the tick has completed.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Model returns the Model associated with this object, or nil if not set.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// SetModel assigns a Model to this object.
	//
	// Parameters:
	//   - m: the Model to associate
	SetModel(m model.Model)

	// Material returns the Material applied before drawing, or nil if not set.
	//
	// Returns:
	//   - material.Material: the associated material or nil
	Material() material.Material

	// SetMaterial assigns the Material applied before drawing.
	//
	// Parameters:
	//   - m: the Material to associate
	SetMaterial(m material.Material)

	// Position returns the object's position in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// SetPosition moves the object.
	//
	// Parameters:
	//   - position: the new position in world space
	SetPosition(position mgl32.Vec3)

	// Orientation returns the current orientation including spin.
	//
	// Returns:
	//   - mgl32.Quat: the orientation
	Orientation() mgl32.Quat

	// SetOrientation sets the resting orientation that spin is applied on top of.
	//
	// Parameters:
	//   - orientation: the resting orientation
	SetOrientation(orientation mgl32.Quat)

	// Scale returns the per-axis scale.
	//
	// Returns:
	//   - mgl32.Vec3: the scale factors
	Scale() mgl32.Vec3

	// SetScale sets the per-axis scale.
	//
	// Parameters:
	//   - scale: the scale factors
	SetScale(scale mgl32.Vec3)

	// SpinPeriods returns the seconds per revolution about local X, Y and Z. Zero means no spin.
	//
	// Returns:
	//   - mgl32.Vec3: the spin periods
	SpinPeriods() mgl32.Vec3

	// SetSpinPeriods sets the seconds per revolution about local X, Y and Z.
	//
	// Parameters:
	//   - periods: the spin periods; the sign sets the direction
	SetSpinPeriods(periods mgl32.Vec3)

	// Update recomputes the spin orientation for elapsed seconds since the animation
	// started and refreshes the cached model matrix.
	//
	// Parameters:
	//   - elapsed: seconds since the animation started
	Update(elapsed float32)

	// ModelMatrix returns the cached T * R * S model matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix
	ModelMatrix() mgl32.Mat4

	// Draw pushes the model-view matrix, multiplies the model matrix, applies the material,
	// draws the model and pops. Disabled objects and objects without a model draw nothing.
	//
	// Parameters:
	//   - dev: the device to draw with
	Draw(dev device.Device)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new enabled GameObject at the origin configured with the given options.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:       &sync.Mutex{},
		scale:    mgl32.Vec3{1, 1, 1},
		base:     mgl32.QuatIdent(),
		rotation: mgl32.QuatIdent(),
		dirty:    true,
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	obj.rotation = obj.base
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Model() model.Model {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mdl
}

func (g *gameObject) SetModel(m model.Model) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mdl = m
}

func (g *gameObject) Material() material.Material {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mat
}

func (g *gameObject) SetMaterial(m material.Material) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mat = m
}

func (g *gameObject) Position() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) SetPosition(position mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = position
	g.dirty = true
}

func (g *gameObject) Orientation() mgl32.Quat {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation
}

func (g *gameObject) SetOrientation(orientation mgl32.Quat) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.base = orientation.Normalize()
	g.rotation = g.base
	g.dirty = true
}

func (g *gameObject) Scale() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale
}

func (g *gameObject) SetScale(scale mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = scale
	g.dirty = true
}

func (g *gameObject) SpinPeriods() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.spin
}

func (g *gameObject) SetSpinPeriods(periods mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.spin = periods
}

func (g *gameObject) Update(elapsed float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.spin != (mgl32.Vec3{}) {
		g.rotation = g.base.Mul(common.SpinRotation(g.spin, elapsed)).Normalize()
		g.dirty = true
	}
	g.refresh()
}

func (g *gameObject) ModelMatrix() mgl32.Mat4 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refresh()
	return g.modelMatrix
}

func (g *gameObject) Draw(dev device.Device) {
	if !g.Enabled() {
		return
	}
	g.mu.Lock()
	mdl, mat := g.mdl, g.mat
	g.refresh()
	m := g.modelMatrix
	g.mu.Unlock()
	if mdl == nil {
		return
	}

	dev.PushMatrix(device.ModelView)
	dev.MultMatrix(device.ModelView, m)
	if mat != nil {
		mat.Apply(dev)
	}
	mdl.Draw(dev)
	dev.PopMatrix(device.ModelView)
}

// refresh rebuilds the model matrix if the transform changed. Caller must hold the mutex.
func (g *gameObject) refresh() {
	if !g.dirty {
		return
	}
	g.modelMatrix = common.ModelMatrix(g.position, g.rotation, g.scale)
	g.dirty = false
}
