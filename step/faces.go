// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package step

import (
	"strconv"
	"strings"

	"github.com/cpmech/gosl/gm"
	"github.com/cpmech/gosl/la"
	"github.com/dawarazhar11/ohmframe-stackup/geom"
)

// Face type strings, per spec.md's closed surface-kind set.
const (
	FacePlanar      = "planar"
	FaceCylindrical = "cylindrical"
	FaceConical     = "conical"
	FaceSpherical   = "spherical"
	FaceToroidal    = "toroidal"
	FaceFreeform    = "freeform"
)

// Face is a typed surface primitive attached to a Part.
type Face struct {
	ID           int        `json:"id"`
	FaceType     string     `json:"face_type"`
	Center       geom.Vec3  `json:"center"`
	Normal       geom.Vec3  `json:"normal"`
	Area         float64    `json:"area"`
	Radius       *float64   `json:"radius,omitempty"`
	Axis         *geom.Vec3 `json:"axis,omitempty"`
	StepEntityID int        `json:"step_entity_id"`

	// NurbsData is a best-effort, supplemented enrichment: when the
	// originating surface is a B_SPLINE_SURFACE_WITH_KNOTS, this carries
	// its degrees and knot values; control-point coordinates are not
	// stored. It is never evaluated or
	// tessellated (that's an explicit Non-goal) and is nil whenever
	// extraction fails or the surface isn't a B-spline.
	NurbsData *gm.NurbsD `json:"-"`
}

// faceGeom is the intermediate classification result for one face's
// referenced surface entity, before it is assigned an ordinal and a
// step_entity_id.
type faceGeom struct {
	faceType string
	center   geom.Vec3
	normal   geom.Vec3
	radius   *float64
	axis     *geom.Vec3
	nurbs    *gm.NurbsD
}

// extractFaceGeometry classifies the surface referenced by an
// ADVANCED_FACE/FACE_SURFACE payload, per spec.md's dispatch table.
// Unrecognized surface kinds default to freeform.
func extractFaceGeometry(idx Index, data string) faceGeom {
	fg := faceGeom{
		faceType: FaceFreeform,
		center:   geom.Vec3{0, 0, 0},
		normal:   geom.Vec3{0, 0, 1},
	}

	for _, ref := range extractRefs(data) {
		e, ok := idx.Lookup(ref)
		if !ok {
			continue
		}
		switch {
		case e.Kind == "PLANE":
			fg.faceType = FacePlanar
			loc, dir := findAxisPlacement(idx, e.Payload)
			if loc != nil {
				fg.center = *loc
			}
			if dir != nil {
				fg.normal = *dir
				fg.axis = dir
			}

		case e.Kind == "CYLINDRICAL_SURFACE":
			fg.faceType = FaceCylindrical
			loc, dir := findAxisPlacement(idx, e.Payload)
			if loc != nil {
				fg.center = *loc
			}
			if dir != nil {
				fg.axis = dir
			}
			// Nominal radial direction; the true radial direction
			// depends on the contact point and isn't representable
			// by a single face-level normal (spec.md §3).
			fg.normal = geom.Vec3{1, 0, 0}
			if r, ok2 := parseTrailingRadius(e.Payload); ok2 {
				fg.radius = &r
			}

		case e.Kind == "CONICAL_SURFACE":
			fg.faceType = FaceConical

		case e.Kind == "SPHERICAL_SURFACE":
			fg.faceType = FaceSpherical

		case e.Kind == "TOROIDAL_SURFACE":
			fg.faceType = FaceToroidal

		case strings.HasPrefix(e.Kind, "B_SPLINE_SURFACE"):
			fg.faceType = FaceFreeform
			fg.nurbs = tryBuildNurbs(idx, e)
		}
	}

	return fg
}

// tryBuildNurbs best-effort parses a B_SPLINE_SURFACE_WITH_KNOTS payload
// into a gm.NurbsD definition: degree (u,v) and, as the knot vector for both
// directions, every decimal-point literal in the payload. At least one
// referenced CARTESIAN_POINT must resolve, but the control-point coordinates
// are not stored in the result. Any failure returns nil; this is a
// supplement, never required for a face to be classified.
func tryBuildNurbs(idx Index, e Entity) (nd *gm.NurbsD) {
	degU, degV, ok := parseBSplineDegrees(e.Payload)
	if !ok {
		return nil
	}

	var ctrlPts [][]float64
	for _, ref := range extractRefs(e.Payload) {
		pe, ok := idx.Lookup(ref)
		if !ok || pe.Kind != "CARTESIAN_POINT" {
			continue
		}
		p, ok2 := parseCartesianPoint(pe.Payload)
		if !ok2 {
			continue
		}
		ctrlPts = append(ctrlPts, []float64{p[0], p[1], p[2]})
	}
	if len(ctrlPts) == 0 {
		return nil
	}

	knots := extractDecimalFloats(e.Payload)
	if len(knots) == 0 {
		return nil
	}

	return &gm.NurbsD{
		Gnd:   2,
		Ords:  []int{degU, degV},
		Knots: [][]float64{knots, knots},
	}
}

// parseBSplineDegrees extracts the first two bare integers in a
// B_SPLINE_SURFACE_WITH_KNOTS payload, which by the STEP grammar are the
// u/v degree fields immediately following the surface name.
func parseBSplineDegrees(data string) (degU, degV int, ok bool) {
	fields := strings.SplitN(data, ",", 4)
	if len(fields) < 3 {
		return 0, 0, false
	}
	u, errU := strconv.Atoi(strings.TrimSpace(fields[1]))
	v, errV := strconv.Atoi(strings.TrimSpace(fields[2]))
	if errU != nil || errV != nil {
		return 0, 0, false
	}
	return u, v, true
}

// extractDecimalFloats returns every decimal-point float literal in data, in
// order; used for the best-effort knot vector.
func extractDecimalFloats(data string) []float64 {
	matches := decFloatRe.FindAllString(data, -1)
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// extractAllFaces classifies every ADVANCED_FACE/FACE_SURFACE entity in the
// index, in ascending entity-id order, assigning them ordinals 0..n-1. Per
// spec.md's permissive attachment rule, this single list is shared by every
// Part (see cloneFaces for how each Part gets its own defensively-copied
// slice).
func extractAllFaces(idx Index) []Face {
	ids := sortedIDsAnyKind(idx, "ADVANCED_FACE", "FACE_SURFACE")
	faces := make([]Face, 0, len(ids))
	for ordinal, id := range ids {
		e := idx.entities[id]
		fg := extractFaceGeometry(idx, e.Payload)
		faces = append(faces, Face{
			ID:           ordinal,
			FaceType:     fg.faceType,
			Center:       fg.center,
			Normal:       fg.normal,
			Area:         0,
			Radius:       fg.radius,
			Axis:         fg.axis,
			StepEntityID: id,
			NurbsData:    fg.nurbs,
		})
	}
	return faces
}

// cloneFaces returns a defensive, independent copy of faces: every Part
// shares the same extracted face geometry (spec.md's permissive attachment),
// but each Part's slice -- and any slice-backed NURBS enrichment inside it
// -- must be independently mutable/immutable without aliasing another
// Part's data, the same discipline shp.Shape.GetCopy applies to its
// scratch buffers via la.VecClone/la.MatClone.
func cloneFaces(faces []Face) []Face {
	out := make([]Face, len(faces))
	for i, f := range faces {
		cf := f
		if f.Radius != nil {
			r := *f.Radius
			cf.Radius = &r
		}
		if f.Axis != nil {
			a := *f.Axis
			cf.Axis = &a
		}
		if f.NurbsData != nil {
			nd := *f.NurbsData
			nd.Ords = append([]int(nil), f.NurbsData.Ords...)
			nd.Knots = la.MatClone(f.NurbsData.Knots)
			cf.NurbsData = &nd
		}
		out[i] = cf
	}
	return out
}
