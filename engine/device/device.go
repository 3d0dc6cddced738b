// Package device defines the fixed-function graphics device the engine renders through.
// A Device is bound to a single thread and must only be used from the thread that owns it.
package device

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-mirror/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MaxClipPlanes is the number of user clip planes every device supports.
	MaxClipPlanes = 6
	// MaxLights is the number of fixed-function lights every device supports.
	MaxLights = 8
	// MinModelViewDepth is the guaranteed depth of the model-view matrix stack.
	MinModelViewDepth = 32
	// MinProjectionDepth is the guaranteed depth of the projection matrix stack.
	MinProjectionDepth = 2
)

// MatrixStack selects one of the device matrix stacks.
type MatrixStack int

const (
	ModelView MatrixStack = iota
	Projection
)

func (s MatrixStack) String() string {
	switch s {
	case ModelView:
		return "modelview"
	case Projection:
		return "projection"
	default:
		return fmt.Sprintf("MatrixStack(%d)", int(s))
	}
}

// Winding is the vertex order that marks a polygon as front-facing.
type Winding int

const (
	// CCW treats counter-clockwise polygons as front-facing. It is the default.
	CCW Winding = iota
	// CW treats clockwise polygons as front-facing.
	CW
)

// Opposite returns the other winding, the front face of mirrored geometry.
func (w Winding) Opposite() Winding {
	if w == CW {
		return CCW
	}
	return CW
}

func (w Winding) String() string {
	if w == CW {
		return "cw"
	}
	return "ccw"
}

// Capability is a toggleable fixed-function feature.
type Capability int

const (
	Texture1D Capability = iota
	Texture2D
	Lighting
	CullFace
	DepthTest
	Blend

	capabilityCount
)

func (c Capability) String() string {
	switch c {
	case Texture1D:
		return "texture_1d"
	case Texture2D:
		return "texture_2d"
	case Lighting:
		return "lighting"
	case CullFace:
		return "cull_face"
	case DepthTest:
		return "depth_test"
	case Blend:
		return "blend"
	default:
		return fmt.Sprintf("Capability(%d)", int(c))
	}
}

// Viewport is a rectangle in window pixels.
type Viewport struct {
	X, Y, Width, Height int
}

// Primitive selects how Draw assembles vertices.
type Primitive int

const (
	Triangles Primitive = iota
	Quads
	Lines
	LineLoop
)

// Vertex is one immediate-mode vertex. A zero Color leaves the current color unchanged.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
	Color    common.Color
}

// EnvMode is the texture environment combine mode.
type EnvMode int

const (
	// EnvModulate multiplies the texel by the lit fragment color.
	EnvModulate EnvMode = iota
	// EnvReplace uses the texel color unchanged.
	EnvReplace
)

// ShadeModel selects flat or smooth (Gouraud) shading.
type ShadeModel int

const (
	ShadeSmooth ShadeModel = iota
	ShadeFlat
)

// MaterialState is the complete fixed-function material applied before drawing.
type MaterialState struct {
	// AmbientDiffuse is used for both the ambient and diffuse reflectance, and as the
	// current color for unlit drawing.
	AmbientDiffuse common.Color
	Specular       common.Color
	Shininess      float32
	Emission       common.Color
	// Texture is bound and 2D texturing enabled when non-nil; texturing is disabled otherwise.
	Texture Texture
	EnvMode EnvMode
	Shade   ShadeModel
}

// LightState describes one directional light.
type LightState struct {
	Enabled bool
	// Direction points from the light toward the scene. It is given in the coordinates
	// current when SetLight is called and transformed into eye space by the model-view matrix.
	Direction mgl32.Vec3
	Ambient   common.Color
	Diffuse   common.Color
	Specular  common.Color
}

// Texture is a device texture handle. Close releases the device storage; a closed texture
// must not be used again.
type Texture interface {
	// ID returns the device name of the texture.
	ID() uint32
	// Width returns the width in texels.
	Width() int
	// Height returns the height in texels.
	Height() int
	// Format returns the texel layout.
	Format() common.TextureFormat
	// Bind makes the texture the current 2D texture.
	Bind()
	// Close releases the texture. Closing twice is a no-op.
	Close() error
}

// Device is a fixed-function graphics device with matrix stacks, user clip planes and a
// framebuffer that can be copied into textures.
type Device interface {
	// PushMatrix duplicates the top of the stack.
	PushMatrix(s MatrixStack)
	// PopMatrix discards the top of the stack.
	PopMatrix(s MatrixStack)
	// LoadMatrix replaces the top of the stack.
	LoadMatrix(s MatrixStack, m mgl32.Mat4)
	// LoadIdentity replaces the top of the stack with the identity.
	LoadIdentity(s MatrixStack)
	// MultMatrix post-multiplies the top of the stack: top = top * m.
	MultMatrix(s MatrixStack, m mgl32.Mat4)
	// Matrix returns the top of the stack.
	Matrix(s MatrixStack) mgl32.Mat4
	// SetFrustum replaces the top of the projection stack with a perspective frustum.
	SetFrustum(left, right, bottom, top, near, far float32)

	Viewport() Viewport
	SetViewport(vp Viewport)

	// SetClipPlane installs plane as user clip plane i. The plane is transformed by the
	// current model-view matrix and the positive half-space is kept.
	SetClipPlane(i int, plane common.Plane)
	EnableClipPlane(i int, enabled bool)
	ClipPlaneEnabled(i int) bool

	FrontFace() Winding
	SetFrontFace(w Winding)

	SetEnabled(c Capability, enabled bool)
	Enabled(c Capability) bool

	SetDepthMask(enabled bool)
	DepthMask() bool
	// ClearDepth clears the depth buffer. The depth mask must be enabled for it to take effect.
	ClearDepth()
	// Clear clears the color buffer to color and the depth buffer.
	Clear(color common.Color)

	// NewTexture allocates a texture as described.
	NewTexture(desc common.TextureDescriptor) (Texture, error)
	// CopyFramebufferToTexture copies the framebuffer region src into tex at texel (0, 0).
	CopyFramebufferToTexture(tex Texture, src Viewport)

	ApplyMaterial(m MaterialState)
	SetAmbientLight(c common.Color)
	SetLight(i int, l LightState)
	Draw(p Primitive, vertices []Vertex)

	// Err returns the first error recorded since the last call and clears it.
	Err() error
}
