// Package demo assembles the reflection showcase scene from a config.Config: a reflecting
// surface, a directional light, a handful of spinning solids and a camera that can circle
// them.
package demo

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/Carmen-Shannon/oxy-mirror/config"
	"github.com/Carmen-Shannon/oxy-mirror/engine/camera"
	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
	"github.com/Carmen-Shannon/oxy-mirror/engine/game_object"
	"github.com/Carmen-Shannon/oxy-mirror/engine/light"
	"github.com/Carmen-Shannon/oxy-mirror/engine/loader"
	"github.com/Carmen-Shannon/oxy-mirror/engine/model"
	"github.com/Carmen-Shannon/oxy-mirror/engine/reflection"
	"github.com/Carmen-Shannon/oxy-mirror/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-mirror/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrRestartRequired is returned by Apply for changes that need a new reflector: the
// variant, the surface pose or size, the capture texture size or the clip plane index.
var ErrRestartRequired = errors.New("config change requires a restart")

// waterTexture is the loader key of the overlay texture.
const waterTexture = "water"

// Demo is the showcase scene and the state its controls act on.
type Demo struct {
	cfg config.Config

	cam    camera.TerrainCamera
	orbit  *camera.Orbit
	scene  scene.Scene
	ticked *tickedScene
	loader loader.Loader
	sun    light.Light

	orbiting bool
	paused   bool
	logger   *slog.Logger
}

// DemoBuilderOption is a functional option for configuring a Demo.
type DemoBuilderOption func(*Demo)

// WithLogger sets the logger passed to the scene and reflector.
//
// Parameters:
//   - logger: the destination logger
//
// Returns:
//   - DemoBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) DemoBuilderOption {
	return func(d *Demo) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New builds the scene described by cfg on dev.
//
// Parameters:
//   - dev: the device textures are created on and the scene renders to
//   - cfg: a validated configuration
//   - options: functional options to configure the demo
//
// Returns:
//   - *Demo: the assembled demo; Close releases its device resources
//   - error: error if cfg is invalid or a device resource cannot be created
func New(dev device.Device, cfg config.Config, options ...DemoBuilderOption) (*Demo, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := &Demo{cfg: cfg, logger: slog.Default()}
	for _, opt := range options {
		opt(d)
	}

	c := cfg.Camera
	d.cam = camera.NewTerrainCamera(
		mgl32.DegToRad(c.Yaw), mgl32.DegToRad(c.Pitch), mgl32.DegToRad(c.Roll),
		camera.WithPosition(vec3(c.Position)),
		camera.WithFov(mgl32.DegToRad(c.Fov)),
		camera.WithNear(c.Near),
		camera.WithFar(c.Far),
		camera.WithAspect(float32(cfg.Window.Width)/float32(cfg.Window.Height)),
	)
	d.orbit = newOrbit(cfg)
	d.orbiting = c.Orbit

	d.loader = loader.NewLoader(dev, loader.WithWrap(common.WrapRepeat), loader.WithPowerOfTwo(true))
	water, err := d.loader.LoadImage(waterTexture, loader.Ripple(256, 4, common.Color{0.55, 0.7, 0.85, 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to create water texture: %w", err)
	}

	reflector, surface, err := newReflector(dev, cfg.Reflection, d.logger)
	if err != nil {
		_ = d.loader.Close()
		return nil, err
	}

	d.sun = light.NewLight(light.WithDirection(cfg.Light.Direction[0], cfg.Light.Direction[1], cfg.Light.Direction[2]), light.WithColor(rgb(cfg.Light.Color)))
	lighting := light.NewLighting(light.WithGlobalAmbient(rgb(cfg.Light.Ambient)))
	if err := lighting.Add(d.sun); err != nil {
		_ = d.loader.Close()
		return nil, err
	}

	opts := []scene.SceneBuilderOption{
		scene.WithActive(true),
		scene.WithLighting(lighting),
		scene.WithReflectivity(cfg.Reflection.Reflectivity),
		scene.WithOverlay(material.NewMaterial(material.WithName("water"), material.WithTexture(water, device.EnvModulate))),
		scene.WithSurfaceSpin(vec3(cfg.Reflection.Spin)),
		scene.WithObjects(objects(cfg.Objects)...),
		scene.WithLogger(d.logger),
	}
	if cfg.Engine.Workers > 0 {
		opts = append(opts, scene.WithComputeWorkers(cfg.Engine.Workers))
	}
	if surface != nil {
		opts = append(opts, surface)
	}
	d.scene = scene.NewScene(cfg.Window.Title, d.cam, reflector, opts...)
	d.ticked = &tickedScene{Scene: d.scene, demo: d}

	if d.orbiting {
		d.orbit.Apply(d.cam)
	}
	return d, nil
}

// newReflector creates the reflector for the configured variant. The clip-plane variant
// also returns the scene option placing its visible surface.
func newReflector(dev device.Device, r config.ReflectionConfig, logger *slog.Logger) (reflection.Reflector, scene.SceneBuilderOption, error) {
	position := vec3(r.Position)
	normal := vec3(r.Normal).Normalize()
	orientation := mgl32.QuatBetweenVectors(common.ZAxis, normal)

	switch r.Variant {
	case config.VariantTexture:
		m, err := reflection.NewMirror(dev, position, orientation, r.Width, r.Height, r.TextureWidth, r.TextureHeight,
			reflection.WithFrustumCulling(r.FrustumCulling),
			reflection.WithMirrorLogger(logger),
		)
		if err != nil {
			return nil, nil, err
		}
		return m, nil, nil
	default:
		c, err := reflection.NewClipPlaneReflector(dev, position, normal,
			reflection.WithClipPlaneIndex(r.ClipPlane),
			reflection.WithClipPlaneLogger(logger),
		)
		if err != nil {
			return nil, nil, err
		}
		return c, scene.WithSurface(position, orientation, r.Width, r.Height), nil
	}
}

// newOrbit places an orbit around the origin through the configured camera position.
func newOrbit(cfg config.Config) *camera.Orbit {
	p := vec3(cfg.Camera.Position)
	radius := p.Len()
	var azimuth, elevation float32
	if radius > 0 {
		azimuth = float32(math.Atan2(float64(p.X()), float64(p.Z())))
		elevation = float32(math.Asin(float64(p.Y() / radius)))
	}
	return camera.NewOrbit(
		camera.WithRadius(radius),
		camera.WithAzimuth(azimuth),
		camera.WithElevation(elevation),
		camera.WithRadiusBounds(cfg.Camera.Near*2, cfg.Camera.Far/2),
		camera.WithOrbitSpeed(orbitStep(cfg)),
	)
}

// orbitStep is the azimuth change per tick.
func orbitStep(cfg config.Config) float32 {
	return mgl32.DegToRad(cfg.Camera.OrbitSpeed) / float32(cfg.Engine.TickRate)
}

// objects builds the scene objects in configuration order.
func objects(cfgs []config.ObjectConfig) []game_object.GameObject {
	out := make([]game_object.GameObject, 0, len(cfgs))
	for _, o := range cfgs {
		color := common.Coalesce(common.Color(o.Color), common.ColorWhite)
		out = append(out, game_object.NewGameObject(
			game_object.WithModel(shape(o)),
			game_object.WithMaterial(material.NewMaterial(material.WithName(o.Shape), material.WithColor(color))),
			game_object.WithPosition(vec3(o.Position)),
			game_object.WithSpinPeriods(vec3(o.Spin)),
		))
	}
	return out
}

func shape(o config.ObjectConfig) model.Model {
	switch o.Shape {
	case config.ShapeTetrahedron:
		return model.Tetrahedron(o.Size)
	case config.ShapeSphere:
		return model.Sphere(o.Size, 16, 16)
	case config.ShapeTorus:
		return model.Torus(o.Inner, o.Size, 8, 24)
	case config.ShapeAxes:
		return model.Axes(o.Size)
	default:
		return model.Cube(o.Size)
	}
}

// Scene returns the scene to register with the engine. Its Tick is Demo.Tick, so pausing
// and orbiting follow the engine's tick rate.
func (d *Demo) Scene() scene.Scene {
	return d.ticked
}

// tickedScene routes engine ticks through the demo.
type tickedScene struct {
	scene.Scene
	demo *Demo
}

func (s *tickedScene) Tick(deltaTime float32) {
	s.demo.Tick(deltaTime)
}

// Camera returns the camera the scene is viewed through.
func (d *Demo) Camera() camera.TerrainCamera {
	return d.cam
}

// Orbit returns the orbit that places the camera while orbiting.
func (d *Demo) Orbit() *camera.Orbit {
	return d.orbit
}

// Loader returns the texture cache holding the demo textures.
func (d *Demo) Loader() loader.Loader {
	return d.loader
}

// Config returns the configuration last built or applied.
func (d *Demo) Config() config.Config {
	return d.cfg
}

// Orbiting reports whether the camera circles the scene each tick.
func (d *Demo) Orbiting() bool {
	return d.orbiting
}

// SetOrbiting starts or stops circling. Starting moves the camera onto the orbit.
func (d *Demo) SetOrbiting(orbiting bool) {
	d.orbiting = orbiting
	if orbiting {
		d.orbit.Apply(d.cam)
	}
}

// Paused reports whether the animation is frozen.
func (d *Demo) Paused() bool {
	return d.paused
}

// SetPaused freezes or resumes the object and surface animation.
func (d *Demo) SetPaused(paused bool) {
	d.paused = paused
}

// Tick advances the demo by one engine tick: the scene animation unless paused, and the
// orbit when orbiting.
//
// Parameters:
//   - dt: the tick length in seconds
func (d *Demo) Tick(dt float32) {
	if !d.paused {
		d.scene.Tick(dt)
	}
	if d.orbiting {
		d.orbit.OrbitRight()
		d.orbit.Apply(d.cam)
	}
}

// Zoom moves the camera toward (positive steps) or away from the scene: along the view
// direction normally, or by shrinking the orbit radius while orbiting.
//
// Parameters:
//   - steps: distance in world units
func (d *Demo) Zoom(steps float32) {
	if d.orbiting {
		d.orbit.Zoom(steps)
		d.orbit.Apply(d.cam)
		return
	}
	d.cam.Move(mgl32.Vec3{0, 0, -steps})
}

// AdjustReflectivity changes the reflectivity by delta, clamped to [0, 1].
//
// Parameters:
//   - delta: the change
//
// Returns:
//   - float32: the new reflectivity
func (d *Demo) AdjustReflectivity(delta float32) float32 {
	d.scene.SetReflectivity(d.scene.Reflectivity() + delta)
	return d.scene.Reflectivity()
}

// Apply updates the running demo to cfg. Reflectivity, surface spin, light, camera lens,
// orbit and the object list change in place.
//
// Parameters:
//   - cfg: the new configuration
//
// Returns:
//   - error: ErrRestartRequired if the reflector itself would change, or a validation error
func (d *Demo) Apply(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if reflectorKey(cfg.Reflection) != reflectorKey(d.cfg.Reflection) {
		return ErrRestartRequired
	}

	d.scene.SetReflectivity(cfg.Reflection.Reflectivity)
	d.scene.SetSurfaceSpin(vec3(cfg.Reflection.Spin))

	d.scene.Lighting().SetAmbient(rgb(cfg.Light.Ambient))
	d.sun.SetDirection(cfg.Light.Direction[0], cfg.Light.Direction[1], cfg.Light.Direction[2])
	d.sun.SetColor(rgb(cfg.Light.Color))

	d.cam.SetFov(mgl32.DegToRad(cfg.Camera.Fov))
	d.cam.SetNear(cfg.Camera.Near)
	d.cam.SetFar(cfg.Camera.Far)
	if cfg.Camera.OrbitSpeed != d.cfg.Camera.OrbitSpeed || cfg.Engine.TickRate != d.cfg.Engine.TickRate {
		d.orbit = newOrbit(cfg)
	}
	d.SetOrbiting(cfg.Camera.Orbit)

	for _, obj := range d.scene.Objects() {
		d.scene.Remove(obj.ID())
	}
	for _, obj := range objects(cfg.Objects) {
		d.scene.Add(obj)
	}

	d.cfg = cfg
	d.logger.Info("config applied", "component", "Demo", "reflectivity", cfg.Reflection.Reflectivity, "objects", len(cfg.Objects))
	return nil
}

// reflectorKey drops the fields Apply can change in place.
func reflectorKey(r config.ReflectionConfig) config.ReflectionConfig {
	r.Reflectivity = 0
	r.Spin = [3]float32{}
	return r
}

// Close releases the scene and the demo textures.
//
// Returns:
//   - error: the joined release errors
func (d *Demo) Close() error {
	return errors.Join(d.scene.Close(), d.loader.Close())
}

func vec3(v [3]float32) mgl32.Vec3 {
	return mgl32.Vec3(v)
}

func rgb(v [3]float32) common.Color {
	return common.RGB(v[0], v[1], v[2])
}
