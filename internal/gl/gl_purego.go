//go:build linux || darwin

package gl

import (
	"unsafe"

	"github.com/ebitengine/purego"
)

// openGL dispatches through C function pointers bound by purego.
type openGL struct {
	clearColor func(float32, float32, float32, float32)
	clear      func(uint32)
	viewport   func(int32, int32, int32, int32)
	enable     func(uint32)
	readPixels func(int32, int32, int32, int32, uint32, uint32, unsafe.Pointer)
	getString  func(uint32) *byte

	genBuffers    func(int32, *uint32)
	deleteBuffers func(int32, *uint32)
	bindBuffer    func(uint32, uint32)
	bufferData    func(uint32, int, unsafe.Pointer, uint32)

	vertexAttribPointer      func(uint32, int32, uint32, bool, int32, uintptr)
	enableVertexAttribArray  func(uint32)
	disableVertexAttribArray func(uint32)

	createShader     func(uint32) uint32
	shaderSource     func(uint32, int32, **byte, *int32)
	compileShader    func(uint32)
	getShaderiv      func(uint32, uint32, *int32)
	getShaderInfoLog func(uint32, int32, *int32, *byte)
	deleteShader     func(uint32)

	createProgram      func() uint32
	attachShader       func(uint32, uint32)
	bindAttribLocation func(uint32, uint32, *byte)
	linkProgram        func(uint32)
	getProgramiv       func(uint32, uint32, *int32)
	getProgramInfoLog  func(uint32, int32, *int32, *byte)
	useProgram         func(uint32)
	deleteProgram      func(uint32)

	getUniformLocation func(uint32, *byte) int32
	uniform2f          func(int32, float32, float32)
	uniform4f          func(int32, float32, float32, float32, float32)
	uniformMatrix4fv   func(int32, int32, bool, *float32)

	drawArrays func(uint32, int32, int32)
}

func (gl *openGL) ClearColor(r, g, b, a float32) {
	gl.clearColor(r, g, b, a)
}

func (gl *openGL) Clear(mask uint32) {
	gl.clear(mask)
}

func (gl *openGL) Viewport(x, y, width, height int32) {
	gl.viewport(x, y, width, height)
}

func (gl *openGL) Enable(cap uint32) {
	gl.enable(cap)
}

func (gl *openGL) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	gl.readPixels(x, y, width, height, format, xtype, pixels)
}

func (gl *openGL) GetString(name uint32) string {
	return gostring(gl.getString(name))
}

func (gl *openGL) GenBuffers(n int32, buffers *uint32) {
	gl.genBuffers(n, buffers)
}

func (gl *openGL) DeleteBuffers(n int32, buffers *uint32) {
	gl.deleteBuffers(n, buffers)
}

func (gl *openGL) BindBuffer(target, buffer uint32) {
	gl.bindBuffer(target, buffer)
}

func (gl *openGL) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	gl.bufferData(target, size, data, usage)
}

func (gl *openGL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	gl.vertexAttribPointer(index, size, xtype, normalized, stride, offset)
}

func (gl *openGL) EnableVertexAttribArray(index uint32) {
	gl.enableVertexAttribArray(index)
}

func (gl *openGL) DisableVertexAttribArray(index uint32) {
	gl.disableVertexAttribArray(index)
}

func (gl *openGL) CreateShader(xtype uint32) uint32 {
	return gl.createShader(xtype)
}

func (gl *openGL) ShaderSource(shader uint32, source string) {
	src := cstring(source)
	length := int32(len(source))
	gl.shaderSource(shader, 1, &src, &length)
}

func (gl *openGL) CompileShader(shader uint32) {
	gl.compileShader(shader)
}

func (gl *openGL) GetShaderiv(shader, pname uint32, params *int32) {
	gl.getShaderiv(shader, pname, params)
}

func (gl *openGL) GetShaderInfoLog(shader uint32) string {
	var length int32
	gl.getShaderiv(shader, InfoLogLength, &length)
	if length == 0 {
		return ""
	}
	buf := make([]byte, length)
	gl.getShaderInfoLog(shader, length, &length, &buf[0])
	return infoLog(buf, length)
}

func (gl *openGL) DeleteShader(shader uint32) {
	gl.deleteShader(shader)
}

func (gl *openGL) CreateProgram() uint32 {
	return gl.createProgram()
}

func (gl *openGL) AttachShader(program, shader uint32) {
	gl.attachShader(program, shader)
}

func (gl *openGL) BindAttribLocation(program, index uint32, name string) {
	gl.bindAttribLocation(program, index, cstring(name))
}

func (gl *openGL) LinkProgram(program uint32) {
	gl.linkProgram(program)
}

func (gl *openGL) GetProgramiv(program, pname uint32, params *int32) {
	gl.getProgramiv(program, pname, params)
}

func (gl *openGL) GetProgramInfoLog(program uint32) string {
	var length int32
	gl.getProgramiv(program, InfoLogLength, &length)
	if length == 0 {
		return ""
	}
	buf := make([]byte, length)
	gl.getProgramInfoLog(program, length, &length, &buf[0])
	return infoLog(buf, length)
}

func (gl *openGL) UseProgram(program uint32) {
	gl.useProgram(program)
}

func (gl *openGL) DeleteProgram(program uint32) {
	gl.deleteProgram(program)
}

func (gl *openGL) GetUniformLocation(program uint32, name string) int32 {
	return gl.getUniformLocation(program, cstring(name))
}

func (gl *openGL) Uniform2f(location int32, v0, v1 float32) {
	gl.uniform2f(location, v0, v1)
}

func (gl *openGL) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	gl.uniform4f(location, v0, v1, v2, v3)
}

func (gl *openGL) UniformMatrix4fv(location, count int32, transpose bool, value *float32) {
	gl.uniformMatrix4fv(location, count, transpose, value)
}

func (gl *openGL) DrawArrays(mode uint32, first, count int32) {
	gl.drawArrays(mode, first, count)
}

// bind registers every entry point through lookup, returning the names it
// could not resolve.
func (gl *openGL) bind(lookup func(name string) uintptr) []string {
	var missing []string
	register := func(dst interface{}, name string) {
		sym := lookup(name)
		if sym == 0 {
			missing = append(missing, name)
			return
		}
		purego.RegisterFunc(dst, sym)
	}

	register(&gl.clearColor, "glClearColor")
	register(&gl.clear, "glClear")
	register(&gl.viewport, "glViewport")
	register(&gl.enable, "glEnable")
	register(&gl.readPixels, "glReadPixels")
	register(&gl.getString, "glGetString")

	register(&gl.genBuffers, "glGenBuffers")
	register(&gl.deleteBuffers, "glDeleteBuffers")
	register(&gl.bindBuffer, "glBindBuffer")
	register(&gl.bufferData, "glBufferData")
	register(&gl.vertexAttribPointer, "glVertexAttribPointer")
	register(&gl.enableVertexAttribArray, "glEnableVertexAttribArray")
	register(&gl.disableVertexAttribArray, "glDisableVertexAttribArray")
	register(&gl.createShader, "glCreateShader")
	register(&gl.shaderSource, "glShaderSource")
	register(&gl.compileShader, "glCompileShader")
	register(&gl.getShaderiv, "glGetShaderiv")
	register(&gl.getShaderInfoLog, "glGetShaderInfoLog")
	register(&gl.deleteShader, "glDeleteShader")
	register(&gl.createProgram, "glCreateProgram")
	register(&gl.attachShader, "glAttachShader")
	register(&gl.bindAttribLocation, "glBindAttribLocation")
	register(&gl.linkProgram, "glLinkProgram")
	register(&gl.getProgramiv, "glGetProgramiv")
	register(&gl.getProgramInfoLog, "glGetProgramInfoLog")
	register(&gl.useProgram, "glUseProgram")
	register(&gl.deleteProgram, "glDeleteProgram")
	register(&gl.getUniformLocation, "glGetUniformLocation")
	register(&gl.uniform2f, "glUniform2f")
	register(&gl.uniform4f, "glUniform4f")
	register(&gl.uniformMatrix4fv, "glUniformMatrix4fv")
	register(&gl.drawArrays, "glDrawArrays")
	return missing
}
