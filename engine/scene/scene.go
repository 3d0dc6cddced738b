package scene

import (
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/Carmen-Shannon/oxy-mirror/engine/camera"
	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
	"github.com/Carmen-Shannon/oxy-mirror/engine/game_object"
	"github.com/Carmen-Shannon/oxy-mirror/engine/light"
	"github.com/Carmen-Shannon/oxy-mirror/engine/model"
	"github.com/Carmen-Shannon/oxy-mirror/engine/reflection"
	"github.com/Carmen-Shannon/oxy-mirror/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// Default mirror surface size used when a clip-plane scene is not given one.
const (
	DefaultSurfaceWidth  float32 = 20
	DefaultSurfaceHeight float32 = 20
)

// Stats counts the frames a scene has rendered and how many of them drew a reflection.
type Stats struct {
	Frames    uint64
	Reflected uint64
	Skipped   uint64
	Objects   int
}

// Scene holds everything drawn in one view: a camera, a reflecting surface with its
// Reflector, lighting and a set of GameObjects. Each frame renders the scene twice, once
// mirrored across the surface plane and once normally.
//
// Tick and Render must not run concurrently; the engine calls both from the render thread.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// ZIndex returns the draw order of the scene; lower values render first.
	ZIndex() int

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Reflector returns the scene's reflector, a *reflection.Mirror or a
	// *reflection.ClipPlaneReflector.
	Reflector() reflection.Reflector

	// Lighting returns the scene's lighting.
	Lighting() *light.Lighting

	// Add adds a GameObject to the scene and assigns it an ID if it has none.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - uint64: the assigned object ID
	Add(obj game_object.GameObject) uint64

	// Get retrieves a GameObject by its ID. Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove removes a GameObject by ID.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Count returns the number of GameObjects in the scene.
	Count() int

	// Objects returns the scene's GameObjects in ascending ID order.
	Objects() []game_object.GameObject

	// Reflectivity returns how strongly the clip-plane surface shows its reflection, in [0, 1].
	Reflectivity() float32

	// SetReflectivity sets the reflectivity, clamped to [0, 1]. The overlay material's alpha
	// becomes 1 - reflectivity.
	//
	// Parameters:
	//   - r: the new reflectivity
	SetReflectivity(r float32)

	// Overlay returns the material the clip-plane surface is blended with.
	Overlay() material.Material

	// SurfacePosition returns the center of the reflecting surface.
	SurfacePosition() mgl32.Vec3

	// SurfaceOrientation returns the current orientation of the reflecting surface.
	SurfaceOrientation() mgl32.Quat

	// SurfaceSize returns the width and height of the reflecting surface.
	SurfaceSize() (w, h float32)

	// SetSurfaceSpin sets the seconds per revolution of the surface about its local X, Y
	// and Z axes. Zero disables an axis.
	//
	// Parameters:
	//   - periods: the spin periods
	SetSurfaceSpin(periods mgl32.Vec3)

	// Tick advances the animation clock by deltaTime seconds, updates every object's
	// transform on the worker pool and moves the reflector to the surface's new pose.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last tick in seconds
	Tick(deltaTime float32)

	// Render draws the reflection pass followed by the normal pass. The caller has cleared
	// the framebuffer and set the viewport.
	//
	// Parameters:
	//   - dev: the device to draw with
	Render(dev device.Device)

	// Stats returns the frame counters.
	Stats() Stats

	// Close stops the worker pool and releases the mirror's capture texture.
	//
	// Returns:
	//   - error: error from releasing the capture texture
	Close() error
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool
	zIndex int

	registry map[uint64]game_object.GameObject
	nextID   uint64

	cam       camera.Camera
	reflector reflection.Reflector
	lighting  *light.Lighting

	reflectivity float32
	overlay      material.Material
	background   common.Color

	surfacePosition mgl32.Vec3
	surfaceBase     mgl32.Quat
	surfaceRotation mgl32.Quat
	surfaceSpin     mgl32.Vec3
	surfaceWidth    float32
	surfaceHeight   float32
	surfaceSet      bool

	surfaceQuad model.Model
	outline     model.Model
	back        model.Model

	elapsed float32
	stats   Stats
	logger  *slog.Logger

	// computePool updates object transforms in parallel each tick. Workers persist across
	// ticks.
	computePool    worker.DynamicWorkerPool
	computeWorkers int
}

var _ Scene = &scene{}

// NewScene creates a new Scene viewed through cam whose reflections are drawn by reflector.
// Both are required and NewScene panics if either is nil.
//
// A Mirror reflector defines the surface pose and size. A ClipPlaneReflector surface
// defaults to a DefaultSurfaceWidth x DefaultSurfaceHeight quad centered on the point of
// the plane closest to the origin; WithSurface overrides it.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to view the scene through (must not be nil)
//   - reflector: the reflector (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, reflector reflection.Reflector, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if reflector == nil {
		panic("scene: NewScene requires a non-nil Reflector")
	}

	s := &scene{
		mu:             &sync.RWMutex{},
		name:           name,
		cam:            cam,
		reflector:      reflector,
		registry:       make(map[uint64]game_object.GameObject),
		nextID:         1,
		reflectivity:   0.5,
		background:     common.ColorBlack,
		surfaceBase:    mgl32.QuatIdent(),
		surfaceWidth:   DefaultSurfaceWidth,
		surfaceHeight:  DefaultSurfaceHeight,
		computeWorkers: max(runtime.NumCPU()-1, 1),
		logger:         slog.Default(),
	}
	for _, option := range options {
		option(s)
	}

	if m, ok := reflector.(*reflection.Mirror); ok {
		s.surfacePosition = m.Position()
		s.surfaceBase = m.Orientation()
		s.surfaceWidth, s.surfaceHeight = m.Size()
	} else if !s.surfaceSet {
		p := reflector.Plane()
		s.surfacePosition = p.Normal.Mul(p.D)
		s.surfaceBase = mgl32.QuatBetweenVectors(common.ZAxis, p.Normal)
	}
	s.surfaceRotation = s.surfaceBase

	if s.lighting == nil {
		s.lighting = light.NewLighting()
	}
	if s.overlay == nil {
		s.overlay = material.NewMaterial(material.WithName("overlay"))
	}
	s.overlay.SetColor(s.overlayColor())

	hw, hh := s.surfaceWidth, s.surfaceHeight
	s.surfaceQuad = model.Quad(hw, hh)
	s.outline = model.Outline(hw, hh, 0.1, -0.01, common.ColorRed)
	s.back = model.Back(hw, hh, -0.01, common.ColorBlack)

	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)
	s.syncReflector()

	axis, angle := common.RotationAxisAngle(s.surfaceBase)
	s.logger.Debug("scene created",
		"component", "Scene",
		"scene", s.name,
		"objects", len(s.registry),
		"surface_position", s.surfacePosition,
		"surface_axis", axis,
		"surface_angle_deg", mgl32.RadToDeg(angle),
		"workers", s.computeWorkers,
	)
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) ZIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.zIndex
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	if cam == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Reflector() reflection.Reflector {
	return s.reflector
}

func (s *scene) Lighting() *light.Lighting {
	return s.lighting
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(obj)
}

// add registers obj. Caller must hold the write lock.
func (s *scene) add(obj game_object.GameObject) uint64 {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	} else if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
	s.registry[obj.ID()] = obj
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registry, id)
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.objects()
}

// objects returns the registry sorted by ID. Caller must hold a lock.
func (s *scene) objects() []game_object.GameObject {
	out := make([]game_object.GameObject, 0, len(s.registry))
	for _, obj := range s.registry {
		out = append(out, obj)
	}
	slices.SortFunc(out, func(a, b game_object.GameObject) int {
		switch {
		case a.ID() < b.ID():
			return -1
		case a.ID() > b.ID():
			return 1
		}
		return 0
	})
	return out
}

func (s *scene) Reflectivity() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reflectivity
}

func (s *scene) SetReflectivity(r float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reflectivity = common.Clamp(r, 0, 1)
	s.overlay.SetColor(s.overlayColor())
}

func (s *scene) overlayColor() common.Color {
	return s.overlay.Color().WithAlpha(1 - s.reflectivity)
}

func (s *scene) Overlay() material.Material {
	return s.overlay
}

func (s *scene) SurfacePosition() mgl32.Vec3 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.surfacePosition
}

func (s *scene) SurfaceOrientation() mgl32.Quat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.surfaceRotation
}

func (s *scene) SurfaceSize() (w, h float32) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.surfaceWidth, s.surfaceHeight
}

func (s *scene) SetSurfaceSpin(periods mgl32.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surfaceSpin = periods
}

func (s *scene) Tick(deltaTime float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.elapsed += deltaTime
	elapsed := s.elapsed

	// Per-tick barrier: pool.Wait() only returns once workers idle-exit.
	var wg sync.WaitGroup
	for i, obj := range s.objects() {
		wg.Add(1)
		s.computePool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				obj.Update(elapsed)
				return nil, nil
			},
		})
	}
	wg.Wait()

	if s.surfaceSpin != (mgl32.Vec3{}) {
		s.surfaceRotation = s.surfaceBase.Mul(common.SpinRotation(s.surfaceSpin, elapsed)).Normalize()
		s.syncReflector()
	}
}

// syncReflector moves the reflector to the surface pose. Caller must hold the write lock
// or be constructing the scene.
func (s *scene) syncReflector() {
	switch r := s.reflector.(type) {
	case *reflection.Mirror:
		r.SetPosition(s.surfacePosition)
		r.SetOrientation(s.surfaceRotation)
	case *reflection.ClipPlaneReflector:
		normal := s.surfaceRotation.Rotate(common.ZAxis)
		if err := r.SetPlane(common.MakePlane(s.surfacePosition, normal)); err != nil {
			s.logger.Warn("surface plane rejected", "component", "Scene", "scene", s.name, "error", err)
		}
	}
}

func (s *scene) Render(dev device.Device) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.Frames++
	s.stats.Objects = len(s.registry)

	dev.LoadIdentity(device.ModelView)
	s.cam.Look(dev)

	if s.reflector.Begin(s.cam) {
		s.drawScene(dev, true)
		s.reflector.End()
		s.stats.Reflected++
		if _, ok := s.reflector.(*reflection.Mirror); ok {
			// The capture was drawn into the framebuffer corner and is now in the texture.
			dev.Clear(s.background)
		}
	} else {
		s.stats.Skipped++
	}

	s.drawScene(dev, false)
}

// drawScene draws lights, the surface (normal pass only) and the objects. Caller must hold
// the write lock.
func (s *scene) drawScene(dev device.Device, reflectionPass bool) {
	s.lighting.Enable(dev)
	s.lighting.Apply(dev)

	// The surface goes first so its depth keeps objects behind it from overdrawing the
	// reflection already in the framebuffer.
	if !reflectionPass {
		s.drawSurface(dev)
	}

	s.lighting.Enable(dev)
	dev.SetDepthMask(true)
	dev.SetEnabled(device.Texture2D, false)

	for _, obj := range s.objects() {
		obj.Draw(dev)
	}
}

func (s *scene) drawSurface(dev device.Device) {
	dev.PushMatrix(device.ModelView)
	dev.MultMatrix(device.ModelView, common.ModelMatrix(s.surfacePosition, s.surfaceRotation, mgl32.Vec3{1, 1, 1}))

	if m, ok := s.reflector.(*reflection.Mirror); ok {
		s.lighting.Disable(dev)
		m.Apply()
	} else {
		s.lighting.Enable(dev)
		dev.SetEnabled(device.Blend, true)
		s.overlay.Apply(dev)
		s.surfaceQuad.Draw(dev)
		dev.SetEnabled(device.Blend, false)
		s.lighting.Disable(dev)
	}

	dev.SetDepthMask(true)
	dev.SetEnabled(device.Texture2D, false)
	s.outline.Draw(dev)
	s.back.Draw(dev)
	s.lighting.Enable(dev)

	dev.PopMatrix(device.ModelView)
}

func (s *scene) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *scene) Close() error {
	s.computePool.Stop()
	if m, ok := s.reflector.(*reflection.Mirror); ok {
		return m.Close()
	}
	return nil
}
