package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatZeroActsAsIdentity(t *testing.T) {
	if got := (Quat{}).ToMat4(); got != Identity() {
		t.Errorf("zero quaternion matrix = %v, want identity", got)
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatBetween(t *testing.T) {
	up := Vec3{Y: 1}
	tests := []struct {
		name string
		to   Vec3
	}{
		{"same", Vec3{Y: 1}},
		{"x axis", Vec3{X: 1}},
		{"z axis", Vec3{Z: 1}},
		{"diagonal", Vec3{1, 1, 1}.Normalize()},
		{"opposite", Vec3{Y: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuatBetween(up, tt.to).Rotate(up)
			if got.Distance(tt.to) > 0.001 {
				t.Errorf("rotated up = %v, want %v", got, tt.to)
			}
		})
	}
}

func TestQuatMulComposes(t *testing.T) {
	quarter := QuatFromAxisAngle(Vec3{Z: 1}, float32(math.Pi/2))
	half := quarter.Mul(quarter)

	got := half.Rotate(Vec3{X: 1})
	if abs(got.X+1) > 0.001 || abs(got.Y) > 0.001 {
		t.Errorf("two quarter turns: got %v, want (-1, 0, 0)", got)
	}
}
