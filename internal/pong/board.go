package pong

import "github.com/tinyrange/glpong/internal/graphics"

// Board is the static outline of the playing field.
type Board struct {
	*graphics.Shape
}

func NewBoard(p *graphics.Pipeline) *Board {
	return &Board{
		Shape: graphics.NewShape(p, graphics.Outline(BoardHalfWidth, BoardHalfHeight), graphics.PrimitiveLineLoop, graphics.ColorGray),
	}
}
