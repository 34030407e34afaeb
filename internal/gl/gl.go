package gl

import "unsafe"

const (
	// ColorBufferBit is a mask used with Clear to clear the color buffer.
	ColorBufferBit = 0x00004000
	// DepthBufferBit is a mask used with Clear to clear the depth buffer.
	DepthBufferBit = 0x00000100

	// CullFace enables discarding of back-facing polygons.
	CullFace = 0x0B44

	// Primitive types.
	Triangles = 0x0004
	LineLoop  = 0x0002

	// Buffer targets and usage.
	ArrayBuffer = 0x8892
	StaticDraw  = 0x88E4

	// Float is the attribute component type for float32 data.
	Float = 0x1406

	// Shader types.
	VertexShader   = 0x8B31
	FragmentShader = 0x8B30

	// Shader and program queries.
	CompileStatus = 0x8B81
	LinkStatus    = 0x8B82
	InfoLogLength = 0x8B84

	RGBA         = 0x1908
	UnsignedByte = 0x1401

	// GetString parameters.
	//
	// Vendor returns the company responsible for the GL implementation.
	Vendor = 0x1F00
	// Renderer returns the name of the renderer, typically the GPU.
	Renderer = 0x1F01
	// Version returns the GL version string of the current context.
	Version = 0x1F02
	// ShadingLanguageVersion returns the supported GLSL version.
	ShadingLanguageVersion = 0x8B8C
)

// OpenGL describes the subset of OpenGL 2.1 entry points used by the game.
//
// Implementations wrap platform-specific GL bindings. All methods are expected
// to operate on the GL context current for the calling thread.
type OpenGL interface {
	// ClearColor sets the clear color used by Clear when clearing the color buffer.
	ClearColor(r, g, b, a float32)

	// Clear clears buffers to preset values (e.g., ColorBufferBit).
	Clear(mask uint32)

	// Viewport sets the affine transformation of x and y from normalized device
	// coordinates to window coordinates.
	Viewport(x, y, width, height int32)

	// Enable enables a server-side GL capability (e.g., CullFace).
	Enable(cap uint32)

	// GenBuffers generates buffer object names.
	GenBuffers(n int32, buffers *uint32)
	// DeleteBuffers deletes named buffer objects.
	DeleteBuffers(n int32, buffers *uint32)
	// BindBuffer binds a named buffer to a target (e.g., ArrayBuffer).
	BindBuffer(target, buffer uint32)
	// BufferData creates and initializes the data store of the bound buffer.
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)

	// VertexAttribPointer describes the layout of a generic vertex attribute.
	// The offset is a byte offset into the bound ArrayBuffer.
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)

	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader, pname uint32, params *int32)
	// GetShaderInfoLog returns the info log of a shader, or "" when it is empty.
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	// BindAttribLocation associates a generic attribute index with a named
	// attribute. It takes effect at the next LinkProgram.
	BindAttribLocation(program, index uint32, name string)
	LinkProgram(program uint32)
	GetProgramiv(program, pname uint32, params *int32)
	// GetProgramInfoLog returns the info log of a program, or "" when it is empty.
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// GetUniformLocation returns -1 when the program has no active uniform
	// with that name.
	GetUniformLocation(program uint32, name string) int32
	Uniform2f(location int32, v0, v1 float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	UniformMatrix4fv(location, count int32, transpose bool, value *float32)

	DrawArrays(mode uint32, first, count int32)

	// ReadPixels reads a block of pixels from the framebuffer into client memory.
	ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer)

	// GetString returns a string describing a GL property for the current context.
	//
	// Common names are Vendor, Renderer, Version and ShadingLanguageVersion.
	// If the name is not recognized or no context is current, implementations
	// return the empty string.
	GetString(name uint32) string
}

func gostring(ptr *byte) string {
	if ptr == nil {
		return ""
	}
	var bytes []byte
	for p := ptr; *p != 0; p = (*byte)(unsafe.Pointer(uintptr(unsafe.Pointer(p)) + 1)) {
		bytes = append(bytes, *p)
	}
	return string(bytes)
}

// cstring returns a NUL-terminated copy of s.
func cstring(s string) *byte {
	b := append([]byte(s), 0)
	return &b[0]
}

// infoLog trims the trailing NUL GL writes into info logs.
func infoLog(buf []byte, length int32) string {
	if length <= 0 {
		return ""
	}
	if int(length) > len(buf) {
		length = int32(len(buf))
	}
	if buf[length-1] == 0 {
		length--
	}
	return string(buf[:length])
}
