package gpu_test

import (
	"testing"

	"github.com/Faultbox/glimmer/internal/engine/gpu"
	"github.com/Faultbox/glimmer/internal/engine/gpu/gputest"
	"github.com/Faultbox/glimmer/pkg/geom"
	"github.com/Faultbox/glimmer/pkg/math"
)

func TestBuffer_EmptyDrawsNothing(t *testing.T) {
	dev := gputest.New()
	b := gpu.NewBuffer(dev)

	b.Draw()
	b.DrawLines()

	if len(dev.Draws) != 0 {
		t.Errorf("expected no draws, got %v", dev.Draws)
	}
	if b.IsUploaded() || b.Mode() != gpu.ModeEmpty {
		t.Errorf("new buffer should be empty, mode %v", b.Mode())
	}
}

func TestBuffer_UploadTriangles(t *testing.T) {
	dev := gputest.New()
	b := gpu.NewBuffer(dev)
	cube := geom.Cube()

	b.UploadMesh(cube)
	b.Draw()
	b.DrawLines()

	if b.Mode() != gpu.ModeTriangles {
		t.Fatalf("mode = %v, want triangles", b.Mode())
	}
	if b.IndexCount() != 36 || b.VertexCount() != 24 {
		t.Errorf("counts = (%d, %d), want (36, 24)", b.IndexCount(), b.VertexCount())
	}
	if len(dev.Draws) != 1 {
		t.Fatalf("expected 1 draw, got %d", len(dev.Draws))
	}
	if got := dev.Draws[0]; got.Op != "triangles" || got.Count != 36 {
		t.Errorf("draw = %+v", got)
	}
}

func TestBuffer_UploadLines(t *testing.T) {
	tests := []struct {
		name   string
		points int
		draws  int
	}{
		{"none", 0, 0},
		{"single point", 1, 0},
		{"segment", 2, 1},
		{"strip", 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := gputest.New()
			b := gpu.NewBuffer(dev)
			b.UploadLines(make([]math.Vec3, tt.points))

			b.DrawLines()
			b.Draw()

			if len(dev.Draws) != tt.draws {
				t.Fatalf("expected %d draws, got %v", tt.draws, dev.Draws)
			}
			if tt.draws > 0 {
				if got := dev.Draws[0]; got.Op != "lines" || got.Count != tt.points {
					t.Errorf("draw = %+v, want %d points", got, tt.points)
				}
			}
		})
	}
}

func TestBuffer_ReuploadReplacesMode(t *testing.T) {
	dev := gputest.New()
	b := gpu.NewBuffer(dev)

	b.UploadMesh(geom.Quad())
	b.UploadLines([]math.Vec3{{}, {X: 1}})

	if b.Mode() != gpu.ModeLines {
		t.Fatalf("mode = %v, want lines", b.Mode())
	}
	if b.IndexCount() != 0 {
		t.Errorf("index count = %d after line upload", b.IndexCount())
	}
	b.Draw()
	if len(dev.Draws) != 0 {
		t.Error("triangle draw on a line buffer should be a no-op")
	}

	b.UploadMesh(geom.Quad())
	if b.Mode() != gpu.ModeTriangles {
		t.Errorf("mode = %v, want triangles", b.Mode())
	}
	if dev.LiveCount() != 1 {
		t.Errorf("expected 1 live handle, got %d", dev.LiveCount())
	}
	if len(dev.Destroyed) != 2 {
		t.Errorf("expected 2 destroyed handles, got %d", len(dev.Destroyed))
	}
}

func TestBuffer_TakeMovesOwnership(t *testing.T) {
	dev := gputest.New()
	src := gpu.NewBuffer(dev)
	src.UploadMesh(geom.Cube())

	dst := src.Take()

	if src.IsUploaded() {
		t.Error("source should be empty after Take")
	}
	src.Draw()
	if len(dev.Draws) != 0 {
		t.Error("draw on a moved-from buffer should be a no-op")
	}
	src.Release()
	if len(dev.Destroyed) != 0 {
		t.Error("releasing the moved-from buffer must not destroy the moved handle")
	}

	dst.Draw()
	if len(dev.Draws) != 1 || dev.Draws[0].Count != 36 {
		t.Errorf("moved buffer draws = %v", dev.Draws)
	}

	dst.Release()
	if dev.LiveCount() != 0 {
		t.Errorf("expected all handles released, %d live", dev.LiveCount())
	}
}

func TestBuffer_ReleaseIsIdempotent(t *testing.T) {
	dev := gputest.New()
	b := gpu.NewBuffer(dev)
	b.UploadMesh(geom.Quad())

	b.Release()
	b.Release()

	if len(dev.Destroyed) != 1 {
		t.Errorf("expected 1 destroy, got %d", len(dev.Destroyed))
	}
}

func TestMode_String(t *testing.T) {
	if gpu.ModeLines.String() != "lines" || gpu.ModeTriangles.String() != "triangles" || gpu.ModeEmpty.String() != "empty" {
		t.Error("unexpected mode names")
	}
}
