package pong

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tinyrange/glpong/internal/graphics"
)

type Paddle struct {
	*graphics.Shape

	pos mgl32.Vec2
	vel float32
}

// NewPaddle creates a paddle centred vertically at x.
func NewPaddle(p *graphics.Pipeline, x float32) *Paddle {
	return &Paddle{
		Shape: graphics.NewShape(p, graphics.Rect(PaddleHalfWidth, PaddleHalfLength), graphics.PrimitiveTriangles, graphics.ColorWhite),
		pos:   mgl32.Vec2{x, 0},
	}
}

// StartMove moves the paddle up for a positive direction and down otherwise
// until StopMove.
func (p *Paddle) StartMove(direction float32) {
	if direction > 0 {
		p.vel = PaddleSpeed
	} else {
		p.vel = -PaddleSpeed
	}
}

func (p *Paddle) StopMove() {
	p.vel = 0
}

func (p *Paddle) Update() {
	p.pos[1] = mgl32.Clamp(p.pos[1]+p.vel, -PaddleLimit, PaddleLimit)
}

func (p *Paddle) Y() float32           { return p.pos[1] }
func (p *Paddle) Position() mgl32.Vec2 { return p.pos }
func (p *Paddle) Velocity() float32    { return p.vel }

func (p *Paddle) Render() {
	p.SetOffset(p.pos)
	p.Shape.Render()
}
