package pong

// Board-space dimensions and rules. The board spans ±BoardHalfWidth ×
// ±BoardHalfHeight around the origin.
const (
	BoardHalfWidth  = 20
	BoardHalfHeight = 15

	// WallY is where the ball bounces off the top and bottom.
	WallY = 14
	// GoalX is where the ball meets a paddle face or leaves the board.
	GoalX = 17.5

	BallRadius   = 0.5
	BallSections = 30
	BallSpeed    = 0.1
	// BallSpeedup multiplies the speed on every paddle hit.
	BallSpeedup = 1.025

	PaddleX          = 19
	PaddleHalfWidth  = 0.5
	PaddleHalfLength = 3
	PaddleSpeed      = 0.4
	// PaddleLimit bounds the paddle centre so it stays inside the walls.
	PaddleLimit = 11
)
