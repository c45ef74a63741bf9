package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(Vec3{5, 10, 15})
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(Vec3{10, 20, 30})
	got := m.TransformPoint(Vec3{1, 2, 3})
	if want := (Vec3{11, 22, 33}); got != want {
		t.Errorf("TransformPoint: got %v, want %v", got, want)
	}
}

func TestTRSOrder(t *testing.T) {
	// Scale first, then rotate 90 degrees about Y, then translate.
	rot := QuatFromAxisAngle(Vec3{Y: 1}, float32(math.Pi/2))
	m := TRS(Vec3{10, 0, 0}, rot, Vec3{2, 2, 2})

	got := m.TransformPoint(Vec3{1, 0, 0})
	want := Vec3{10, 0, -2}
	if got.Distance(want) > 0.001 {
		t.Errorf("TRS point: got %v, want %v", got, want)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(Vec3{4, 5, 6})
	if got := m.TransformDirection(Vec3{0, 1, 0}); got != (Vec3{0, 1, 0}) {
		t.Errorf("TransformDirection: got %v", got)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1, 0.1, 100)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{0, 2, 8}
	m := LookAt(eye, Vec3{}, Vec3{Y: 1})

	if got := m.TransformPoint(eye); got.Length() > 0.0001 {
		t.Errorf("eye in view space = %v, want origin", got)
	}
	if m[15] != 1 {
		t.Errorf("LookAt [15] should be 1, got %f", m[15])
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
