package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Circle returns a filled circle as one triangle per section, wound
// counter-clockwise so it survives back-face culling.
func Circle(radius float32, sections int) []mgl32.Vec4 {
	if sections < 3 {
		sections = 3
	}
	point := func(i int) mgl32.Vec4 {
		a := 2 * math.Pi * float64(i) / float64(sections)
		return mgl32.Vec4{float32(math.Sin(a)) * radius, float32(math.Cos(a)) * radius, 0, 1}
	}

	out := make([]mgl32.Vec4, 0, 3*sections)
	for i := 0; i < sections; i++ {
		out = append(out, point(i+1), point(i), mgl32.Vec4{0, 0, 0, 1})
	}
	return out
}

// Rect returns two counter-clockwise triangles covering ±halfW × ±halfH.
func Rect(halfW, halfH float32) []mgl32.Vec4 {
	return []mgl32.Vec4{
		{halfW, -halfH, 0, 1},
		{halfW, halfH, 0, 1},
		{-halfW, -halfH, 0, 1},

		{-halfW, -halfH, 0, 1},
		{halfW, halfH, 0, 1},
		{-halfW, halfH, 0, 1},
	}
}

// Outline returns the corners of a ±halfW × ±halfH rectangle for a line loop.
func Outline(halfW, halfH float32) []mgl32.Vec4 {
	return []mgl32.Vec4{
		{halfW, -halfH, 0, 1},
		{halfW, halfH, 0, 1},
		{-halfW, halfH, 0, 1},
		{-halfW, -halfH, 0, 1},
	}
}
