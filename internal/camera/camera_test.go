package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type sink struct {
	pushes     int
	view, proj mgl32.Mat4
}

func (s *sink) SetMatrices(view, projection mgl32.Mat4) {
	s.pushes++
	s.view = view
	s.proj = projection
}

func TestNewPushesOnce(t *testing.T) {
	s := &sink{}
	c := New(s, DefaultConfig(), 800, 600)
	if s.pushes != 1 {
		t.Fatalf("pushes = %d, want 1", s.pushes)
	}
	want := mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, 0.1, 100)
	if !s.proj.ApproxEqual(want) || !c.Projection().ApproxEqual(want) {
		t.Fatalf("projection = %v, want %v", s.proj, want)
	}
	if !s.view.ApproxEqual(mgl32.LookAtV(mgl32.Vec3{0, 0, 40}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})) {
		t.Fatalf("view = %v", s.view)
	}
}

func TestZoom(t *testing.T) {
	s := &sink{}
	c := New(s, DefaultConfig(), 800, 600)
	proj := s.proj

	c.Zoom(-1)
	if s.pushes != 2 {
		t.Fatalf("pushes = %d, want 2", s.pushes)
	}
	if got := c.Eye(); got != (mgl32.Vec3{0, 0, 39}) {
		t.Fatalf("eye = %v, want (0, 0, 39)", got)
	}
	want := mgl32.LookAtV(mgl32.Vec3{0, 0, 39}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	if !s.view.ApproxEqual(want) {
		t.Fatalf("view = %v, want %v", s.view, want)
	}
	if s.proj != proj {
		t.Fatalf("zoom changed the projection")
	}

	// The origin moves one unit closer to the eye in view space.
	p := s.view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !mgl32.FloatEqual(p[2], -39) {
		t.Fatalf("origin at view z %f, want -39", p[2])
	}
}

func TestPan(t *testing.T) {
	s := &sink{}
	c := New(s, DefaultConfig(), 800, 600)

	c.Pan(mgl32.Vec2{1, -2})
	if got := c.Eye(); got != (mgl32.Vec3{1, -2, 40}) {
		t.Fatalf("eye = %v, want (1, -2, 40)", got)
	}
	if s.pushes != 2 {
		t.Fatalf("pushes = %d, want 2", s.pushes)
	}
	want := mgl32.LookAtV(mgl32.Vec3{1, -2, 40}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	if !s.view.ApproxEqual(want) || !c.View().ApproxEqual(want) {
		t.Fatalf("view = %v, want %v", s.view, want)
	}
}

func TestResize(t *testing.T) {
	s := &sink{}
	c := New(s, DefaultConfig(), 800, 600)

	c.Resize(800, 600)
	if s.pushes != 1 {
		t.Fatalf("same size pushed again")
	}
	c.Resize(400, 400)
	want := mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100)
	if s.pushes != 2 || !s.proj.ApproxEqual(want) {
		t.Fatalf("pushes = %d projection = %v", s.pushes, s.proj)
	}
}

func TestDegenerateViewport(t *testing.T) {
	s := &sink{}
	New(s, DefaultConfig(), 0, 0)
	want := mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100)
	if !s.proj.ApproxEqual(want) {
		t.Fatalf("projection = %v, want aspect 1", s.proj)
	}
}
