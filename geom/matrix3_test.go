package geom

import (
	"math"
	"testing"
)

func TestMat3MulIdentity(t *testing.T) {
	A := Mat3{M: [3][3]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 10},
	}}
	if got := A.Mul(I3()); got != A {
		t.Fatalf("A·I = %+v, want A", got)
	}
	if got := I3().Mul(A); got != A {
		t.Fatalf("I·A = %+v, want A", got)
	}
}

func TestMat3Transpose(t *testing.T) {
	A := Mat3{M: [3][3]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	}}
	AT := A.Transpose()
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if AT.M[r][c] != A.M[c][r] {
				t.Fatalf("transpose wrong at (%d,%d)", r, c)
			}
		}
	}
	if AT.Transpose() != A {
		t.Fatalf("double transpose != original")
	}
}

func TestMat3Det(t *testing.T) {
	if d := I3().Det(); d != 1 {
		t.Fatalf("det(I) = %v, want 1", d)
	}
	if d := I3().Scale(-1).Det(); d != -1 {
		t.Fatalf("det(-I) = %v, want -1 in 3D", d)
	}
	singular := Mat3{M: [3][3]float64{
		{1, 2, 3},
		{2, 4, 6},
		{7, 8, 9},
	}}
	if d := singular.Det(); math.Abs(d) > 1e-12 {
		t.Fatalf("det of singular matrix = %v, want 0", d)
	}
}

func TestMat3MulVec(t *testing.T) {
	A := Mat3{M: [3][3]float64{
		{0, -1, 0},
		{1, 0, 0},
		{0, 0, 1},
	}}
	got := A.MulVec(Vector3{1, 0, 0})
	if got != (Vector3{0, 1, 0}) {
		t.Fatalf("MulVec got %v", got)
	}
}

func TestSkewMatchesCross(t *testing.T) {
	v := Vector3{1, -2, 0.5}
	ws := []Vector3{{1, 0, 0}, {0, 1, 0}, {3, 4, -5}}
	for _, w := range ws {
		got := Skew(v).MulVec(w)
		want := v.Cross(w)
		if got.Sub(want).Norm() > 1e-15 {
			t.Fatalf("Skew(v)·w = %v, v × w = %v", got, want)
		}
	}
	// Skew matrices are anti-symmetric.
	K := Skew(v)
	if K.Transpose() != K.Scale(-1) {
		t.Fatalf("Skew not anti-symmetric: %+v", K)
	}
}
