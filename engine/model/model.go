package model

import (
	"github.com/Carmen-Shannon/oxy-mirror/engine/device"
)

// model is the implementation of the Model interface.
type model struct {
	name           string
	primitive      device.Primitive
	vertices       []device.Vertex
	boundingRadius float32
}

// Model defines the interface for an immediate-mode mesh: a primitive type and the list of
// vertices submitted to the device when the model is drawn. Vertices are in model space.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Primitive retrieves how the vertices are assembled.
	//
	// Returns:
	//   - device.Primitive: the primitive type
	Primitive() device.Primitive

	// Vertices retrieves the vertex list. The slice must not be modified.
	//
	// Returns:
	//   - []device.Vertex: the vertices
	Vertices() []device.Vertex

	// VertexCount returns the number of vertices submitted per draw.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// BoundingRadius returns the bounding sphere radius for this model, measured as
	// the maximum vertex distance from the origin. Used by frustum culling.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32

	// Draw submits the vertices to dev under the current matrices and material.
	//
	// Parameters:
	//   - dev: the device to draw on
	Draw(dev device.Device)
}

var _ Model = &model{}

// NewModel creates a new Model from a primitive type and its vertices.
// The bounding radius is computed from the vertices unless WithBoundingRadius overrides it.
//
// Parameters:
//   - primitive: how the vertices are assembled
//   - vertices: the model-space vertices
//   - options: variadic list of ModelBuilderOption functions to configure the model
//
// Returns:
//   - Model: a new Model instance
func NewModel(primitive device.Primitive, vertices []device.Vertex, options ...ModelBuilderOption) Model {
	m := &model{
		primitive: primitive,
		vertices:  vertices,
	}
	for _, v := range vertices {
		m.boundingRadius = max(m.boundingRadius, v.Position.Len())
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Primitive() device.Primitive {
	return m.primitive
}

func (m *model) Vertices() []device.Vertex {
	return m.vertices
}

func (m *model) VertexCount() int {
	return len(m.vertices)
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *model) Draw(dev device.Device) {
	if len(m.vertices) == 0 {
		return
	}
	dev.Draw(m.primitive, m.vertices)
}
