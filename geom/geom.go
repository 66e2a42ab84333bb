// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom implements the shared vector/matrix primitives used by the
// STEP extractor, interface detector and stackup calculator: 3-vectors, a
// flat 16-element column-major 4x4 placement matrix, and the handful of
// transform/normalize helpers every caller needs.
package geom

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// minLen is the minimum vector length below which a direction is considered
// degenerate and returned unchanged rather than normalised (spec: 1e-10).
const minLen = 1e-10

// Vec3 is a point or direction in 3-space.
type Vec3 [3]float64

// Mat4 is a 4x4 homogeneous transform, stored as 16 elements in column-major
// order: columns are (X,0), (Y,0), (Z,0), (location,1). Translation lives in
// elements 12,13,14.
type Mat4 [16]float64

// Identity returns the identity placement.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Clone returns a defensive copy, mirroring the gosl/la VecClone/MatClone
// convention gofem uses to keep parsed scratch structures immutable.
func (v Vec3) Clone() Vec3 { return v }

// Cross returns a × b.
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Dot returns a · b.
func Dot(a, b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Length returns the Euclidean norm of v.
func Length(v Vec3) float64 {
	return math.Sqrt(Dot(v, v))
}

// Normalize returns v scaled to unit length. Vectors no longer than 1e-10
// are returned unchanged; this helper only guards the divide and does not
// substitute a default direction for a degenerate one.
func Normalize(v Vec3) Vec3 {
	l := Length(v)
	if l > minLen {
		return Vec3{v[0] / l, v[1] / l, v[2] / l}
	}
	return v
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Vec3) float64 {
	return Length(Vec3{b[0] - a[0], b[1] - a[1], b[2] - a[2]})
}

// Midpoint returns the midpoint of a and b.
func Midpoint(a, b Vec3) Vec3 {
	return Vec3{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2, (a[2] + b[2]) / 2}
}

// BuildPlacement constructs the column-major 4x4 matrix for an
// AXIS2_PLACEMENT_3D-style frame: location, Z axis and X (ref) direction.
// Y is derived as Z × X, matching spec.md's AXIS2_PLACEMENT_3D transform
// construction exactly.
func BuildPlacement(location, zAxis, xAxis Vec3) Mat4 {
	y := Cross(zAxis, xAxis)
	return Mat4{
		xAxis[0], xAxis[1], xAxis[2], 0,
		y[0], y[1], y[2], 0,
		zAxis[0], zAxis[1], zAxis[2], 0,
		location[0], location[1], location[2], 1,
	}
}

// TransformPoint applies the full 4x4 transform (rotation + translation) to
// a point.
func TransformPoint(p Vec3, m Mat4) Vec3 {
	return Vec3{
		m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12],
		m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13],
		m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14],
	}
}

// TransformDirection applies only the rotation component of m to a
// direction and renormalises the result.
func TransformDirection(d Vec3, m Mat4) Vec3 {
	r := Vec3{
		m[0]*d[0] + m[4]*d[1] + m[8]*d[2],
		m[1]*d[0] + m[5]*d[1] + m[9]*d[2],
		m[2]*d[0] + m[6]*d[1] + m[10]*d[2],
	}
	return Normalize(r)
}

// BoundingBox is an axis-aligned min/max/dimensions envelope.
type BoundingBox struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
	Dim Vec3 `json:"dimensions"`
}

// ExpandPoint grows bb to include p, initialising it on the first call.
func (bb *BoundingBox) ExpandPoint(p Vec3, started *bool) {
	if !*started {
		bb.Min = p
		bb.Max = p
		*started = true
		return
	}
	for i := 0; i < 3; i++ {
		bb.Min[i] = utl.Min(bb.Min[i], p[i])
		bb.Max[i] = utl.Max(bb.Max[i], p[i])
	}
}

// ExpandRadius grows bb by a sphere of the given radius centred at p.
func (bb *BoundingBox) ExpandRadius(p Vec3, r float64, started *bool) {
	lo := Vec3{p[0] - r, p[1] - r, p[2] - r}
	hi := Vec3{p[0] + r, p[1] + r, p[2] + r}
	bb.ExpandPoint(lo, started)
	bb.ExpandPoint(hi, started)
}

// Finalize computes Dim from Min/Max. Must be called after all Expand*
// calls and before the box is returned to a caller.
func (bb *BoundingBox) Finalize() {
	for i := 0; i < 3; i++ {
		bb.Dim[i] = bb.Max[i] - bb.Min[i]
	}
}

// MustVec3 panics if v does not have exactly 3 elements; used when a host
// hands in a raw []float64 that must already be a validated 3-vector
// (mirrors gosl/chk.Panic's use in shp.Shape for scratch-buffer invariants).
func MustVec3(v []float64) Vec3 {
	if len(v) != 3 {
		chk.Panic("geom: expected a 3-vector, got %d elements", len(v))
	}
	return Vec3{v[0], v[1], v[2]}
}
