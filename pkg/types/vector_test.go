package types

import (
	"math"
	"testing"
)

// TestVec3Arithmetic 测试向量基本运算
func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: 5, Z: 6}

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"加法", a.Add(b), Vec3{X: 5, Y: 7, Z: 9}},
		{"减法", b.Sub(a), Vec3{X: 3, Y: 3, Z: 3}},
		{"数乘", a.Scale(2), Vec3{X: 2, Y: 4, Z: 6}},
		{"逐分量乘", a.Mul(b), Vec3{X: 4, Y: 10, Z: 18}},
		{"取反", a.Neg(), Vec3{X: -1, Y: -2, Z: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("结果 = %+v, 期望 %+v", tt.got, tt.expected)
			}
		})
	}
}

// TestVec3Lerp 测试向量插值
func TestVec3Lerp(t *testing.T) {
	a := Vec3{X: 0, Y: 0, Z: 0}
	b := Vec3{X: 10, Y: 20, Z: -10}

	tests := []struct {
		name     string
		t        float64
		expected Vec3
	}{
		{"起点", 0, a},
		{"中点", 0.5, Vec3{X: 5, Y: 10, Z: -5}},
		{"终点", 1, b},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Lerp(b, tt.t)
			if math.Abs(got.X-tt.expected.X) > 1e-9 ||
				math.Abs(got.Y-tt.expected.Y) > 1e-9 ||
				math.Abs(got.Z-tt.expected.Z) > 1e-9 {
				t.Errorf("Lerp(%v) = %+v, 期望 %+v", tt.t, got, tt.expected)
			}
		})
	}
}

// TestOne 测试单位缩放常量
func TestOne(t *testing.T) {
	if One() != (Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("One() = %+v, 期望 (1,1,1)", One())
	}
}
