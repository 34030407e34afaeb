//go:build linux

package gl

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// Load binds entry points from libGL. Core 1.1 symbols are exported directly;
// anything newer falls back to glXGetProcAddressARB when the library does not
// export it.
func Load() (OpenGL, error) {
	handle, err := purego.Dlopen("libGL.so.1", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, err
	}

	var getProcAddress func(*byte) uintptr
	if sym, err := purego.Dlsym(handle, "glXGetProcAddressARB"); err == nil {
		purego.RegisterFunc(&getProcAddress, sym)
	}

	gl := &openGL{}
	missing := gl.bind(func(name string) uintptr {
		if sym, err := purego.Dlsym(handle, name); err == nil {
			return sym
		}
		if getProcAddress != nil {
			return getProcAddress(cstring(name))
		}
		return 0
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("libGL is missing entry points %v", missing)
	}
	return gl, nil
}
