package graphics

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	glpkg "github.com/tinyrange/glpong/internal/gl"
)

// Primitive selects how DrawArrays assembles a shape's vertices.
type Primitive uint32

const (
	PrimitiveTriangles Primitive = glpkg.Triangles
	PrimitiveLineLoop  Primitive = glpkg.LineLoop
)

func (p Primitive) String() string {
	switch p {
	case PrimitiveTriangles:
		return "triangles"
	case PrimitiveLineLoop:
		return "line loop"
	}
	return "unknown"
}

// Renderable is anything the game draws once per frame.
type Renderable interface {
	Render()
}

// Shape pairs geometry in a vertex buffer with its own shader program.
//
// The buffer is filled once by NewShape. Render draws it translated by the
// current offset with the pipeline's camera matrices.
type Shape struct {
	pipeline  *Pipeline
	program   *Program
	vertices  []mgl32.Vec4
	primitive Primitive
	vbo       uint32

	offset mgl32.Vec2

	locOffset     int32
	locView       int32
	locProjection int32

	// matrices is the pipeline revision last copied into the program.
	matrices uint64
}

var _ Renderable = (*Shape)(nil)

// NewShape uploads vertices and links a program for them.
func NewShape(p *Pipeline, vertices []mgl32.Vec4, primitive Primitive, color Color) *Shape {
	gl := p.gl
	s := &Shape{
		pipeline:  p,
		program:   NewProgram(p, shapeVertexSource, shapeFragmentSource),
		vertices:  vertices,
		primitive: primitive,
	}

	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(glpkg.ArrayBuffer, s.vbo)
	if len(vertices) > 0 {
		size := len(vertices) * int(unsafe.Sizeof(vertices[0]))
		gl.BufferData(glpkg.ArrayBuffer, size, unsafe.Pointer(&vertices[0]), glpkg.StaticDraw)
	}
	gl.BindBuffer(glpkg.ArrayBuffer, 0)

	s.locOffset = s.program.Uniform("location")
	s.locView = s.program.Uniform("view")
	s.locProjection = s.program.Uniform("projection")

	// Color never changes, so it is set once and kept by the program.
	s.program.Use()
	s.program.SetVec4(s.program.Uniform("color"), mgl32.Vec4(color))
	gl.UseProgram(0)

	return s
}

// SetOffset moves the shape in board space.
func (s *Shape) SetOffset(offset mgl32.Vec2) {
	s.offset = offset
}

func (s *Shape) Offset() mgl32.Vec2 {
	return s.offset
}

func (s *Shape) Vertices() []mgl32.Vec4 {
	return s.vertices
}

func (s *Shape) Primitive() Primitive {
	return s.primitive
}

func (s *Shape) Render() {
	if s.program == nil {
		return
	}
	gl := s.pipeline.gl

	s.program.Use()
	if s.matrices != s.pipeline.revision {
		view, projection := s.pipeline.Matrices()
		s.program.SetMat4(s.locView, view)
		s.program.SetMat4(s.locProjection, projection)
		s.matrices = s.pipeline.revision
	}
	s.program.SetVec2(s.locOffset, s.offset)

	gl.BindBuffer(glpkg.ArrayBuffer, s.vbo)
	gl.EnableVertexAttribArray(positionAttrib)
	gl.VertexAttribPointer(positionAttrib, 4, glpkg.Float, false, 0, 0)

	gl.DrawArrays(uint32(s.primitive), 0, int32(len(s.vertices)))

	gl.DisableVertexAttribArray(positionAttrib)
	gl.BindBuffer(glpkg.ArrayBuffer, 0)
	gl.UseProgram(0)
}

// Delete releases the buffer and program. A deleted shape renders nothing.
func (s *Shape) Delete() {
	if s.program == nil {
		return
	}
	s.pipeline.gl.DeleteBuffers(1, &s.vbo)
	s.vbo = 0
	s.program.Delete()
	s.program = nil
}
