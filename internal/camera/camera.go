// Package camera builds the view and projection matrices the shapes are drawn
// with and pushes them to the renderer whenever they change.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MatrixSink receives a new view/projection pair. graphics.Pipeline is one.
type MatrixSink interface {
	SetMatrices(view, projection mgl32.Mat4)
}

type Config struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3

	// FovY is the vertical field of view in radians.
	FovY float32
	Near float32
	Far  float32
}

// DefaultConfig looks down -Z at the board from far enough away to see all of it.
func DefaultConfig() Config {
	return Config{
		Eye:    mgl32.Vec3{0, 0, 40},
		Target: mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
		FovY:   mgl32.DegToRad(45),
		Near:   0.1,
		Far:    100,
	}
}

type Camera struct {
	sink MatrixSink
	cfg  Config

	aspect     float32
	view       mgl32.Mat4
	projection mgl32.Mat4
}

// New builds both matrices for a width×height viewport and pushes them once.
func New(sink MatrixSink, cfg Config, width, height int) *Camera {
	c := &Camera{sink: sink, cfg: cfg}
	c.aspect = aspect(width, height)
	c.projection = mgl32.Perspective(cfg.FovY, c.aspect, cfg.Near, cfg.Far)
	c.view = c.lookAt()
	c.push()
	return c
}

func aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

func (c *Camera) lookAt() mgl32.Mat4 {
	return mgl32.LookAtV(c.cfg.Eye, c.cfg.Target, c.cfg.Up)
}

func (c *Camera) push() {
	c.sink.SetMatrices(c.view, c.projection)
}

// Zoom moves the eye along Z. Negative values move it closer.
func (c *Camera) Zoom(d float32) {
	c.cfg.Eye[2] += d
	c.view = c.lookAt()
	c.push()
}

// Pan moves the eye in X and Y. The target stays put, so the board tilts
// away from the direction of travel.
func (c *Camera) Pan(v mgl32.Vec2) {
	c.cfg.Eye[0] += v[0]
	c.cfg.Eye[1] += v[1]
	c.view = c.lookAt()
	c.push()
}

// Resize recomputes the projection for a new viewport size.
func (c *Camera) Resize(width, height int) {
	a := aspect(width, height)
	if a == c.aspect {
		return
	}
	c.aspect = a
	c.projection = mgl32.Perspective(c.cfg.FovY, c.aspect, c.cfg.Near, c.cfg.Far)
	c.push()
}

func (c *Camera) Eye() mgl32.Vec3 {
	return c.cfg.Eye
}

func (c *Camera) View() mgl32.Mat4 {
	return c.view
}

func (c *Camera) Projection() mgl32.Mat4 {
	return c.projection
}
