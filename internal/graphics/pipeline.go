package graphics

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	glpkg "github.com/tinyrange/glpong/internal/gl"
)

// Pipeline is the GL state shared by all shapes of a window: the context and
// the camera matrices. GL 2.1 has no uniform buffers, so the matrices live
// here and every shape program copies them in when its copy is stale.
type Pipeline struct {
	gl     glpkg.OpenGL
	logger *slog.Logger

	view       mgl32.Mat4
	projection mgl32.Mat4
	// revision increases on every SetMatrices; shapes compare it with the
	// revision they last uploaded.
	revision uint64
}

func NewPipeline(gl glpkg.OpenGL, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		gl:         gl,
		logger:     logger,
		view:       mgl32.Ident4(),
		projection: mgl32.Ident4(),
		revision:   1,
	}
}

func (p *Pipeline) GL() glpkg.OpenGL {
	return p.gl
}

func (p *Pipeline) Logger() *slog.Logger {
	return p.logger
}

// SetMatrices replaces the shared view and projection matrices.
func (p *Pipeline) SetMatrices(view, projection mgl32.Mat4) {
	p.view = view
	p.projection = projection
	p.revision++
}

func (p *Pipeline) Matrices() (view, projection mgl32.Mat4) {
	return p.view, p.projection
}
