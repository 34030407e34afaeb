//go:build windows

package gl

import (
	"fmt"
	"math"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// proc is a resolved GL entry point. opengl32.dll only exports GL 1.1; newer
// entry points come from wglGetProcAddress and are only valid for the context
// that was current when they were resolved.
type proc uintptr

func (p proc) call(args ...uintptr) uintptr {
	ret, _, _ := syscall.SyscallN(uintptr(p), args...)
	return ret
}

type openGL struct {
	clearColor proc
	clear      proc
	viewport   proc
	enable     proc
	readPixels proc
	getString  proc

	genBuffers    proc
	deleteBuffers proc
	bindBuffer    proc
	bufferData    proc

	vertexAttribPointer      proc
	enableVertexAttribArray  proc
	disableVertexAttribArray proc

	createShader     proc
	shaderSource     proc
	compileShader    proc
	getShaderiv      proc
	getShaderInfoLog proc
	deleteShader     proc

	createProgram      proc
	attachShader       proc
	bindAttribLocation proc
	linkProgram        proc
	getProgramiv       proc
	getProgramInfoLog  proc
	useProgram         proc
	deleteProgram      proc

	getUniformLocation proc
	uniform2f          proc
	uniform4f          proc
	uniformMatrix4fv   proc

	drawArrays proc
}

func (gl *openGL) ClearColor(r, g, b, a float32) {
	gl.clearColor.call(f32(r), f32(g), f32(b), f32(a))
}

func (gl *openGL) Clear(mask uint32) {
	gl.clear.call(uintptr(mask))
}

func (gl *openGL) Viewport(x, y, width, height int32) {
	gl.viewport.call(uintptr(x), uintptr(y), uintptr(width), uintptr(height))
}

func (gl *openGL) Enable(cap uint32) {
	gl.enable.call(uintptr(cap))
}

func (gl *openGL) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	gl.readPixels.call(uintptr(x), uintptr(y), uintptr(width), uintptr(height), uintptr(format), uintptr(xtype), uintptr(pixels))
}

func (gl *openGL) GetString(name uint32) string {
	ptr := gl.getString.call(uintptr(name))
	return gostring((*byte)(unsafe.Pointer(ptr)))
}

func (gl *openGL) GenBuffers(n int32, buffers *uint32) {
	gl.genBuffers.call(uintptr(n), uintptr(unsafe.Pointer(buffers)))
}

func (gl *openGL) DeleteBuffers(n int32, buffers *uint32) {
	gl.deleteBuffers.call(uintptr(n), uintptr(unsafe.Pointer(buffers)))
}

func (gl *openGL) BindBuffer(target, buffer uint32) {
	gl.bindBuffer.call(uintptr(target), uintptr(buffer))
}

func (gl *openGL) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	gl.bufferData.call(uintptr(target), uintptr(size), uintptr(data), uintptr(usage))
}

func (gl *openGL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	gl.vertexAttribPointer.call(uintptr(index), uintptr(size), uintptr(xtype), boolean(normalized), uintptr(stride), offset)
}

func (gl *openGL) EnableVertexAttribArray(index uint32) {
	gl.enableVertexAttribArray.call(uintptr(index))
}

func (gl *openGL) DisableVertexAttribArray(index uint32) {
	gl.disableVertexAttribArray.call(uintptr(index))
}

func (gl *openGL) CreateShader(xtype uint32) uint32 {
	return uint32(gl.createShader.call(uintptr(xtype)))
}

func (gl *openGL) ShaderSource(shader uint32, source string) {
	src := cstring(source)
	length := int32(len(source))
	gl.shaderSource.call(uintptr(shader), 1, uintptr(unsafe.Pointer(&src)), uintptr(unsafe.Pointer(&length)))
}

func (gl *openGL) CompileShader(shader uint32) {
	gl.compileShader.call(uintptr(shader))
}

func (gl *openGL) GetShaderiv(shader, pname uint32, params *int32) {
	gl.getShaderiv.call(uintptr(shader), uintptr(pname), uintptr(unsafe.Pointer(params)))
}

func (gl *openGL) GetShaderInfoLog(shader uint32) string {
	var length int32
	gl.GetShaderiv(shader, InfoLogLength, &length)
	if length == 0 {
		return ""
	}
	buf := make([]byte, length)
	gl.getShaderInfoLog.call(uintptr(shader), uintptr(length), uintptr(unsafe.Pointer(&length)), uintptr(unsafe.Pointer(&buf[0])))
	return infoLog(buf, length)
}

func (gl *openGL) DeleteShader(shader uint32) {
	gl.deleteShader.call(uintptr(shader))
}

func (gl *openGL) CreateProgram() uint32 {
	return uint32(gl.createProgram.call())
}

func (gl *openGL) AttachShader(program, shader uint32) {
	gl.attachShader.call(uintptr(program), uintptr(shader))
}

func (gl *openGL) BindAttribLocation(program, index uint32, name string) {
	gl.bindAttribLocation.call(uintptr(program), uintptr(index), uintptr(unsafe.Pointer(cstring(name))))
}

func (gl *openGL) LinkProgram(program uint32) {
	gl.linkProgram.call(uintptr(program))
}

func (gl *openGL) GetProgramiv(program, pname uint32, params *int32) {
	gl.getProgramiv.call(uintptr(program), uintptr(pname), uintptr(unsafe.Pointer(params)))
}

func (gl *openGL) GetProgramInfoLog(program uint32) string {
	var length int32
	gl.GetProgramiv(program, InfoLogLength, &length)
	if length == 0 {
		return ""
	}
	buf := make([]byte, length)
	gl.getProgramInfoLog.call(uintptr(program), uintptr(length), uintptr(unsafe.Pointer(&length)), uintptr(unsafe.Pointer(&buf[0])))
	return infoLog(buf, length)
}

func (gl *openGL) UseProgram(program uint32) {
	gl.useProgram.call(uintptr(program))
}

func (gl *openGL) DeleteProgram(program uint32) {
	gl.deleteProgram.call(uintptr(program))
}

func (gl *openGL) GetUniformLocation(program uint32, name string) int32 {
	return int32(gl.getUniformLocation.call(uintptr(program), uintptr(unsafe.Pointer(cstring(name)))))
}

func (gl *openGL) Uniform2f(location int32, v0, v1 float32) {
	gl.uniform2f.call(uintptr(location), f32(v0), f32(v1))
}

func (gl *openGL) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	gl.uniform4f.call(uintptr(location), f32(v0), f32(v1), f32(v2), f32(v3))
}

func (gl *openGL) UniformMatrix4fv(location, count int32, transpose bool, value *float32) {
	gl.uniformMatrix4fv.call(uintptr(location), uintptr(count), boolean(transpose), uintptr(unsafe.Pointer(value)))
}

func (gl *openGL) DrawArrays(mode uint32, first, count int32) {
	gl.drawArrays.call(uintptr(mode), uintptr(first), uintptr(count))
}

// Load resolves entry points for the GL context current on this thread.
func Load() (OpenGL, error) {
	opengl32 := windows.NewLazySystemDLL("opengl32.dll")
	wglGetProcAddress := opengl32.NewProc("wglGetProcAddress")
	if err := wglGetProcAddress.Find(); err != nil {
		return nil, err
	}

	var missing []string
	register := func(dst *proc, name string) {
		if p := opengl32.NewProc(name); p.Find() == nil {
			*dst = proc(p.Addr())
			return
		}
		addr, _, _ := wglGetProcAddress.Call(uintptr(unsafe.Pointer(cstring(name))))
		// wglGetProcAddress reports failure with small sentinel values as
		// well as NULL on some drivers.
		switch int(addr) {
		case 0, 1, 2, 3, -1:
			missing = append(missing, name)
			return
		}
		*dst = proc(addr)
	}

	gl := &openGL{}
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

	if len(missing) > 0 {
		return nil, fmt.Errorf("opengl32 is missing entry points %v", missing)
	}
	return gl, nil
}

func f32(v float32) uintptr {
	return uintptr(math.Float32bits(v))
}

func boolean(v bool) uintptr {
	if v {
		return 1
	}
	return 0
}
