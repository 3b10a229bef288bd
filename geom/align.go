package geom

import (
	"errors"
	"fmt"
	"math"
)

// ErrZeroVector reports a direction vector whose norm is below machine
// epsilon, for which no direction is defined.
var ErrZeroVector = errors.New("zero-norm direction vector")

// Eps is the machine epsilon of float64, computed rather than hardcoded
// so the degenerate-case threshold tracks the float type.
var Eps = math.Nextafter(1, 2) - 1

// alignCase classifies the relative orientation of two unit directions.
type alignCase int

const (
	alignGeneral alignCase = iota
	alignParallel
	alignAntiParallel
)

// classify decides which branch of the alignment applies. v and k must
// already be unit length; axisNorm is ‖v × k‖.
func classify(v, k Vector3, axisNorm float64) alignCase {
	if axisNorm >= Eps {
		return alignGeneral
	}
	// The cross product vanished, so v and k are parallel or anti-parallel.
	// Opposite unit directions put v-k at length 2, well past ‖v‖ = 1.
	if v.Sub(k).Norm() > v.Norm() {
		return alignAntiParallel
	}
	return alignParallel
}

// AlignRotation returns the 3×3 rotation matrix R that rotates the unit
// vector along v onto the unit vector along k, via Rodrigues' rotation
// formula. Aligned inputs yield I, anti-parallel inputs yield -I (a 180°
// flip with no preferred axis). An input with a norm below machine
// epsilon yields ErrZeroVector rather than a NaN-filled matrix.
func AlignRotation(v, k Vector3) (Mat3, error) {
	if v.Norm() < Eps {
		return Mat3{}, fmt.Errorf("source direction %v: %w", v, ErrZeroVector)
	}
	if k.Norm() < Eps {
		return Mat3{}, fmt.Errorf("target direction %v: %w", k, ErrZeroVector)
	}

	v = v.Normalize()
	k = k.Normalize()
	axis := v.Cross(k)
	axisNorm := axis.Norm()

	switch classify(v, k, axisNorm) {
	case alignParallel:
		return I3(), nil
	case alignAntiParallel:
		return I3().Scale(-1), nil
	}

	axis = axis.Scale(1 / axisNorm)

	// v and k are unit length, so ‖v × k‖ is the sine of the angle
	// between them. Roundoff can push it a hair past 1; clamp before asin.
	sin := axisNorm
	if sin > 1 {
		sin = 1
	}
	angle := math.Asin(sin)
	if v.Dot(k) < 0 {
		// asin tops out at π/2; obtuse pairs live in (π/2, π].
		angle = math.Pi - angle
	}

	K := Skew(axis)
	return I3().
		Add(K.Scale(math.Sin(angle))).
		Add(K.Mul(K).Scale(1 - math.Cos(angle))), nil
}
