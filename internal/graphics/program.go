package graphics

import (
	_ "embed"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	glpkg "github.com/tinyrange/glpong/internal/gl"
)

//go:embed shaders/shape.vert
var shapeVertexSource string

//go:embed shaders/shape.frag
var shapeFragmentSource string

// positionAttrib is the attribute index bound to "position" before linking.
const positionAttrib = 0

// Program is a linked vertex + fragment shader pair.
//
// Compile and link failures are logged, never returned: a broken program
// still has a valid name and GL turns draws with it into no-ops.
type Program struct {
	gl     glpkg.OpenGL
	logger *slog.Logger
	id     uint32
}

// NewProgram compiles and links the two sources.
func NewProgram(p *Pipeline, vertexSource, fragmentSource string) *Program {
	gl := p.gl
	prog := &Program{gl: gl, logger: p.logger}

	vs := prog.compile(glpkg.VertexShader, "vertex", vertexSource)
	fs := prog.compile(glpkg.FragmentShader, "fragment", fragmentSource)

	prog.id = gl.CreateProgram()
	gl.AttachShader(prog.id, vs)
	gl.AttachShader(prog.id, fs)
	gl.BindAttribLocation(prog.id, positionAttrib, "position")
	gl.LinkProgram(prog.id)

	var status int32
	gl.GetProgramiv(prog.id, glpkg.LinkStatus, &status)
	if status == 0 {
		prog.logger.Error("link shader program", "program", prog.id, "log", gl.GetProgramInfoLog(prog.id))
	}

	// Shaders stay alive while attached; deleting now frees them with the program.
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	return prog
}

func (p *Program) compile(kind uint32, name, source string) uint32 {
	shader := p.gl.CreateShader(kind)
	p.gl.ShaderSource(shader, source)
	p.gl.CompileShader(shader)

	var status int32
	p.gl.GetShaderiv(shader, glpkg.CompileStatus, &status)
	if status == 0 {
		p.logger.Error("compile shader", "stage", name, "log", p.gl.GetShaderInfoLog(shader))
	}
	return shader
}

func (p *Program) ID() uint32 {
	return p.id
}

// Uniform looks up a uniform location. A missing uniform is logged and
// returns -1, which every setter treats as a no-op.
func (p *Program) Uniform(name string) int32 {
	loc := p.gl.GetUniformLocation(p.id, name)
	if loc < 0 {
		p.logger.Warn("uniform not found", "program", p.id, "uniform", name)
	}
	return loc
}

// The setters assume the program is in use.

func (p *Program) SetVec2(loc int32, v mgl32.Vec2) {
	if loc < 0 {
		return
	}
	p.gl.Uniform2f(loc, v[0], v[1])
}

func (p *Program) SetVec4(loc int32, v mgl32.Vec4) {
	if loc < 0 {
		return
	}
	p.gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
}

func (p *Program) SetMat4(loc int32, m mgl32.Mat4) {
	if loc < 0 {
		return
	}
	p.gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (p *Program) Use() {
	p.gl.UseProgram(p.id)
}

func (p *Program) Delete() {
	if p.id != 0 {
		p.gl.DeleteProgram(p.id)
		p.id = 0
	}
}
