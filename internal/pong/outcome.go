package pong

import "fmt"

// Outcome is what a ball step reports to the game.
type Outcome int

const (
	None Outcome = iota
	LeftScored
	RightScored
)

func (o Outcome) String() string {
	switch o {
	case None:
		return "none"
	case LeftScored:
		return "left scored"
	case RightScored:
		return "right scored"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Side names a player and their paddle.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Score holds the points of each side.
type Score struct {
	Left  int
	Right int
}

func (s Score) String() string {
	return fmt.Sprintf("%d - %d", s.Left, s.Right)
}
