// Package pong holds the game rules: the ball, the two paddles, the board
// and the score.
package pong

import (
	"log/slog"

	"github.com/tinyrange/glpong/internal/graphics"
)

type Game struct {
	logger *slog.Logger

	ball  *Ball
	left  *Paddle
	right *Paddle
	board *Board

	score Score
}

// New creates every shape of the game on the pipeline's GL context.
func New(p *graphics.Pipeline) *Game {
	return &Game{
		logger: p.Logger(),
		ball:   NewBall(p),
		left:   NewPaddle(p, -PaddleX),
		right:  NewPaddle(p, PaddleX),
		board:  NewBoard(p),
	}
}

func (g *Game) Ball() *Ball   { return g.ball }
func (g *Game) Board() *Board { return g.board }
func (g *Game) Score() Score  { return g.score }

func (g *Game) Paddle(side Side) *Paddle {
	if side == Left {
		return g.left
	}
	return g.right
}

// Update advances the game one step. A point is scored and the ball served
// again from the centre when it gets past a paddle.
func (g *Game) Update() Outcome {
	outcome := g.ball.Update(g.left.Y(), g.right.Y())
	switch outcome {
	case LeftScored:
		g.score.Left++
	case RightScored:
		g.score.Right++
	}
	if outcome != None {
		g.logger.Info("point scored", "outcome", outcome, "left", g.score.Left, "right", g.score.Right)
		g.ball.Reset()
	}

	g.left.Update()
	g.right.Update()
	return outcome
}

// Renderables lists the shapes in draw order.
func (g *Game) Renderables() []graphics.Renderable {
	return []graphics.Renderable{g.ball, g.left, g.right, g.board}
}

func (g *Game) Render() {
	for _, r := range g.Renderables() {
		r.Render()
	}
}

func (g *Game) StartMove(side Side, direction float32) {
	g.Paddle(side).StartMove(direction)
}

func (g *Game) StopMove(side Side) {
	g.Paddle(side).StopMove()
}

// Delete releases every shape's GL objects.
func (g *Game) Delete() {
	g.ball.Delete()
	g.left.Delete()
	g.right.Delete()
	g.board.Delete()
}
