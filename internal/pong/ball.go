package pong

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tinyrange/glpong/internal/graphics"
)

var ballVelocity = mgl32.Vec2{BallSpeed, -BallSpeed}

type Ball struct {
	*graphics.Shape

	pos   mgl32.Vec2
	vel   mgl32.Vec2
	speed float32
}

// NewBall creates the ball at the centre of the board.
func NewBall(p *graphics.Pipeline) *Ball {
	b := &Ball{
		Shape: graphics.NewShape(p, graphics.Circle(BallRadius, BallSections), graphics.PrimitiveTriangles, graphics.ColorWhite),
	}
	b.Reset()
	return b
}

// Reset serves the ball again from the centre at the starting speed.
func (b *Ball) Reset() {
	b.pos = mgl32.Vec2{}
	b.vel = ballVelocity
	b.speed = BallSpeed
}

func (b *Ball) Position() mgl32.Vec2 { return b.pos }
func (b *Ball) Velocity() mgl32.Vec2 { return b.vel }
func (b *Ball) Speed() float32       { return b.speed }

// Update advances the ball one step and resolves wall and paddle contacts
// against the current paddle centres.
func (b *Ball) Update(leftY, rightY float32) Outcome {
	b.pos = b.pos.Add(b.vel)

	switch {
	case b.pos[1] >= WallY:
		b.pos[1] = WallY
		b.vel[1] = -b.vel[1]
	case b.pos[1] <= -WallY:
		b.pos[1] = -WallY
		b.vel[1] = -b.vel[1]
	}

	switch {
	case b.pos[0] <= -GoalX && b.vel[0] < 0:
		if !b.hit(leftY) {
			return RightScored
		}
		b.vel[0] = b.speed
	case b.pos[0] >= GoalX && b.vel[0] > 0:
		if !b.hit(rightY) {
			return LeftScored
		}
		b.vel[0] = -b.speed
	}
	return None
}

// hit reports whether the ball is level with a paddle centred at y, edges
// included, and speeds it up if so.
func (b *Ball) hit(y float32) bool {
	if b.pos[1] < y-PaddleHalfLength || b.pos[1] > y+PaddleHalfLength {
		return false
	}
	b.speed *= BallSpeedup
	return true
}

func (b *Ball) Render() {
	b.SetOffset(b.pos)
	b.Shape.Render()
}
