// Package gltest provides a recording gl.OpenGL for tests that exercise
// rendering code without a GL context.
package gltest

import (
	"fmt"
	"unsafe"

	"github.com/tinyrange/glpong/internal/gl"
)

// Call is one recorded GL entry point invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Recorder implements gl.OpenGL by recording calls and handing out
// increasing object names. Its exported fields control failure injection.
type Recorder struct {
	Calls []Call

	// CompileLog makes every shader report a failed compile with this log.
	CompileLog string
	// LinkLog makes every program report a failed link with this log.
	LinkLog string
	// Uniforms lists the uniform names programs expose. Unknown names
	// resolve to -1.
	Uniforms []string

	// Buffers maps buffer names to the bytes uploaded with BufferData.
	Buffers map[uint32][]byte

	// Pixels fills ReadPixels output; nil leaves the destination untouched.
	Pixels []byte

	nextName  uint32
	bound     uint32
	compiled  map[uint32]bool
	linked    map[uint32]bool
	uniformAt map[string]int32
}

var _ gl.OpenGL = (*Recorder)(nil)

// New returns a Recorder whose programs expose the named uniforms.
func New(uniforms ...string) *Recorder {
	return &Recorder{Uniforms: uniforms}
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) name() uint32 {
	r.nextName++
	return r.nextName
}

// Count returns how many times the named entry point was called.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Named returns the recorded calls to the named entry point in order.
func (r *Recorder) Named(name string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets recorded calls but keeps object state.
func (r *Recorder) Reset() {
	r.Calls = nil
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
}

func (r *Recorder) Clear(mask uint32) { r.record("Clear", mask) }

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport", x, y, width, height)
}

func (r *Recorder) Enable(cap uint32) { r.record("Enable", cap) }

func (r *Recorder) GenBuffers(n int32, buffers *uint32) {
	names := unsafe.Slice(buffers, n)
	for i := range names {
		names[i] = r.name()
	}
	r.record("GenBuffers", n)
}

func (r *Recorder) DeleteBuffers(n int32, buffers *uint32) {
	names := unsafe.Slice(buffers, n)
	for _, b := range names {
		delete(r.Buffers, b)
		r.record("DeleteBuffers", b)
	}
}

func (r *Recorder) BindBuffer(target, buffer uint32) {
	r.bound = buffer
	r.record("BindBuffer", target, buffer)
}

func (r *Recorder) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	if r.Buffers == nil {
		r.Buffers = make(map[uint32][]byte)
	}
	buf := make([]byte, size)
	if data != nil {
		copy(buf, unsafe.Slice((*byte)(data), size))
	}
	r.Buffers[r.bound] = buf
	r.record("BufferData", target, size, usage)
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	r.record("VertexAttribPointer", index, size, xtype, normalized, stride, offset)
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.record("EnableVertexAttribArray", index)
}

func (r *Recorder) DisableVertexAttribArray(index uint32) {
	r.record("DisableVertexAttribArray", index)
}

func (r *Recorder) CreateShader(xtype uint32) uint32 {
	s := r.name()
	r.record("CreateShader", xtype, s)
	return s
}

func (r *Recorder) ShaderSource(shader uint32, source string) {
	r.record("ShaderSource", shader, source)
}

func (r *Recorder) CompileShader(shader uint32) {
	if r.compiled == nil {
		r.compiled = make(map[uint32]bool)
	}
	r.compiled[shader] = r.CompileLog == ""
	r.record("CompileShader", shader)
}

func (r *Recorder) GetShaderiv(shader, pname uint32, params *int32) {
	switch pname {
	case gl.CompileStatus:
		*params = 0
		if r.compiled[shader] {
			*params = 1
		}
	case gl.InfoLogLength:
		*params = int32(len(r.CompileLog))
	}
}

func (r *Recorder) GetShaderInfoLog(shader uint32) string {
	return r.CompileLog
}

func (r *Recorder) DeleteShader(shader uint32) { r.record("DeleteShader", shader) }

func (r *Recorder) CreateProgram() uint32 {
	p := r.name()
	r.record("CreateProgram", p)
	return p
}

func (r *Recorder) AttachShader(program, shader uint32) {
	r.record("AttachShader", program, shader)
}

func (r *Recorder) BindAttribLocation(program, index uint32, name string) {
	r.record("BindAttribLocation", program, index, name)
}

func (r *Recorder) LinkProgram(program uint32) {
	if r.linked == nil {
		r.linked = make(map[uint32]bool)
	}
	r.linked[program] = r.LinkLog == ""
	r.record("LinkProgram", program)
}

func (r *Recorder) GetProgramiv(program, pname uint32, params *int32) {
	switch pname {
	case gl.LinkStatus:
		*params = 0
		if r.linked[program] {
			*params = 1
		}
	case gl.InfoLogLength:
		*params = int32(len(r.LinkLog))
	}
}

func (r *Recorder) GetProgramInfoLog(program uint32) string {
	return r.LinkLog
}

func (r *Recorder) UseProgram(program uint32) { r.record("UseProgram", program) }

func (r *Recorder) DeleteProgram(program uint32) { r.record("DeleteProgram", program) }

func (r *Recorder) GetUniformLocation(program uint32, name string) int32 {
	if r.uniformAt == nil {
		r.uniformAt = make(map[string]int32)
		for i, u := range r.Uniforms {
			r.uniformAt[u] = int32(i)
		}
	}
	loc, ok := r.uniformAt[name]
	if !ok {
		loc = -1
	}
	r.record("GetUniformLocation", program, name)
	return loc
}

func (r *Recorder) Uniform2f(location int32, v0, v1 float32) {
	r.record("Uniform2f", location, v0, v1)
}

func (r *Recorder) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	r.record("Uniform4f", location, v0, v1, v2, v3)
}

func (r *Recorder) UniformMatrix4fv(location, count int32, transpose bool, value *float32) {
	m := make([]float32, 16*count)
	copy(m, unsafe.Slice(value, 16*count))
	r.record("UniformMatrix4fv", location, count, transpose, m)
}

func (r *Recorder) DrawArrays(mode uint32, first, count int32) {
	r.record("DrawArrays", mode, first, count)
}

func (r *Recorder) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	if r.Pixels != nil && pixels != nil {
		copy(unsafe.Slice((*byte)(pixels), len(r.Pixels)), r.Pixels)
	}
	r.record("ReadPixels", x, y, width, height, format, xtype)
}

func (r *Recorder) GetString(name uint32) string {
	switch name {
	case gl.Vendor:
		return "gltest"
	case gl.Renderer:
		return "recorder"
	case gl.Version:
		return "2.1 gltest"
	case gl.ShadingLanguageVersion:
		return "1.20"
	}
	return ""
}
