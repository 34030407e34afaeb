package graphics

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	glpkg "github.com/tinyrange/glpong/internal/gl"
	"github.com/tinyrange/glpong/internal/gl/gltest"
)

func newTestPipeline(t *testing.T, uniforms ...string) (*gltest.Recorder, *Pipeline, *bytes.Buffer) {
	t.Helper()
	if uniforms == nil {
		uniforms = []string{"location", "view", "projection", "color"}
	}
	rec := gltest.New(uniforms...)
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	return rec, NewPipeline(rec, logger), &logs
}

func TestShapeUploadsOnce(t *testing.T) {
	rec, p, _ := newTestPipeline(t)
	verts := Rect(0.5, 3)
	s := NewShape(p, verts, PrimitiveTriangles, ColorWhite)

	if got := rec.Count("BufferData"); got != 1 {
		t.Fatalf("BufferData calls after NewShape = %d, want 1", got)
	}
	call := rec.Named("BufferData")[0]
	if size := call.Args[1].(int); size != len(verts)*16 {
		t.Fatalf("uploaded %d bytes, want %d", size, len(verts)*16)
	}
	if usage := call.Args[2].(uint32); usage != glpkg.StaticDraw {
		t.Fatalf("usage = %#x, want StaticDraw", usage)
	}

	for i := 0; i < 5; i++ {
		s.Render()
	}
	if got := rec.Count("BufferData"); got != 1 {
		t.Fatalf("BufferData calls after rendering = %d, want 1", got)
	}
	if got := rec.Count("DrawArrays"); got != 5 {
		t.Fatalf("DrawArrays calls = %d, want 5", got)
	}
}

func TestShapeRenderSequence(t *testing.T) {
	rec, p, _ := newTestPipeline(t)
	s := NewShape(p, Outline(20, 15), PrimitiveLineLoop, ColorGray)
	rec.Reset()

	s.SetOffset(mgl32.Vec2{1, 2})
	s.Render()

	var names []string
	for _, c := range rec.Calls {
		names = append(names, c.Name)
	}
	want := []string{
		"UseProgram",
		"UniformMatrix4fv", "UniformMatrix4fv",
		"Uniform2f",
		"BindBuffer",
		"EnableVertexAttribArray",
		"VertexAttribPointer",
		"DrawArrays",
		"DisableVertexAttribArray",
		"BindBuffer",
		"UseProgram",
	}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("render calls:\n got %v\nwant %v", names, want)
	}

	draw := rec.Named("DrawArrays")[0]
	if mode := draw.Args[0].(uint32); mode != glpkg.LineLoop {
		t.Fatalf("mode = %#x, want LineLoop", mode)
	}
	if count := draw.Args[2].(int32); count != 4 {
		t.Fatalf("count = %d, want 4", count)
	}

	off := rec.Named("Uniform2f")[0]
	if off.Args[1].(float32) != 1 || off.Args[2].(float32) != 2 {
		t.Fatalf("offset uniform = %v, want (1, 2)", off.Args[1:])
	}

	attrib := rec.Named("VertexAttribPointer")[0]
	if attrib.Args[0].(uint32) != positionAttrib || attrib.Args[1].(int32) != 4 {
		t.Fatalf("attribute pointer = %v", attrib)
	}
}

func TestShapeMatricesUploadedWhenStale(t *testing.T) {
	rec, p, _ := newTestPipeline(t)
	a := NewShape(p, Rect(1, 1), PrimitiveTriangles, ColorWhite)
	b := NewShape(p, Rect(1, 1), PrimitiveTriangles, ColorWhite)
	rec.Reset()

	a.Render()
	b.Render()
	if got := rec.Count("UniformMatrix4fv"); got != 4 {
		t.Fatalf("first frame matrix uploads = %d, want 4", got)
	}

	rec.Reset()
	a.Render()
	b.Render()
	if got := rec.Count("UniformMatrix4fv"); got != 0 {
		t.Fatalf("unchanged matrices uploaded %d times", got)
	}

	view := mgl32.Translate3D(0, 0, -40)
	p.SetMatrices(view, mgl32.Ident4())
	rec.Reset()
	a.Render()
	b.Render()
	uploads := rec.Named("UniformMatrix4fv")
	if len(uploads) != 4 {
		t.Fatalf("matrix uploads after change = %d, want 4", len(uploads))
	}
	got := uploads[0].Args[3].([]float32)
	for i := range view {
		if got[i] != view[i] {
			t.Fatalf("view matrix = %v, want %v", got, view)
		}
	}
}

func TestShapeColorSetOnce(t *testing.T) {
	rec, p, _ := newTestPipeline(t)
	s := NewShape(p, Rect(1, 1), PrimitiveTriangles, Color{0.25, 0.5, 0.75, 1})
	s.Render()
	s.Render()

	colors := rec.Named("Uniform4f")
	if len(colors) != 1 {
		t.Fatalf("color uploads = %d, want 1", len(colors))
	}
	if colors[0].Args[1].(float32) != 0.25 || colors[0].Args[3].(float32) != 0.75 {
		t.Fatalf("color = %v", colors[0].Args)
	}
}

func TestShapeMissingUniformsAreNoOps(t *testing.T) {
	rec, p, logs := newTestPipeline(t, "view", "projection")
	s := NewShape(p, Rect(1, 1), PrimitiveTriangles, ColorWhite)
	s.SetOffset(mgl32.Vec2{3, 4})
	s.Render()

	if got := rec.Count("Uniform2f"); got != 0 {
		t.Fatalf("Uniform2f called %d times for a missing uniform", got)
	}
	if got := rec.Count("DrawArrays"); got != 1 {
		t.Fatalf("DrawArrays = %d, want 1", got)
	}
	if !strings.Contains(logs.String(), "uniform=location") {
		t.Fatalf("missing uniform not logged: %s", logs.String())
	}
}

func TestShapeDelete(t *testing.T) {
	rec, p, _ := newTestPipeline(t)
	s := NewShape(p, Rect(1, 1), PrimitiveTriangles, ColorWhite)
	s.Delete()
	s.Delete()

	if got := rec.Count("DeleteBuffers"); got != 1 {
		t.Fatalf("DeleteBuffers = %d, want 1", got)
	}
	if got := rec.Count("DeleteProgram"); got != 1 {
		t.Fatalf("DeleteProgram = %d, want 1", got)
	}
	if len(rec.Buffers) != 0 {
		t.Fatalf("buffers left after delete: %v", rec.Buffers)
	}

	rec.Reset()
	s.Render()
	if len(rec.Calls) != 0 {
		t.Fatalf("deleted shape issued calls: %v", rec.Calls)
	}
}
