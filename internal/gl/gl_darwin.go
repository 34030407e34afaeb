//go:build darwin

package gl

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// Load binds the legacy (2.1) profile entry points exported by OpenGL.framework.
func Load() (OpenGL, error) {
	handle, err := purego.Dlopen("/System/Library/Frameworks/OpenGL.framework/OpenGL", purego.RTLD_GLOBAL|purego.RTLD_LAZY)
	if err != nil {
		return nil, err
	}

	gl := &openGL{}
	missing := gl.bind(func(name string) uintptr {
		sym, err := purego.Dlsym(handle, name)
		if err != nil {
			return 0
		}
		return sym
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("OpenGL.framework is missing entry points %v", missing)
	}
	return gl, nil
}
