// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package step

import (
	"fmt"

	"github.com/dawarazhar11/ohmframe-stackup/geom"
)

// productDef is an intermediate part discovery result: a PRODUCT_DEFINITION
// (or MANIFOLD_SOLID_BREP fallback) entity id paired with its resolved (or
// synthesized) name.
type productDef struct {
	id          int
	name        string
	synthesized bool
}

// maxNameHops bounds PRODUCT_DEFINITION -> PRODUCT_DEFINITION_FORMATION ->
// PRODUCT name resolution, per spec.md §9's cyclic-reference design note.
const maxNameHops = 2

// discoverProductDefinitions collects every PRODUCT_DEFINITION entity,
// resolving its name via resolveProductName, falling back to "Part_<id>".
// If none exist, every MANIFOLD_SOLID_BREP is treated as a part instead.
func discoverProductDefinitions(idx Index) []productDef {
	var defs []productDef

	for _, id := range sortedIDs(idx, "PRODUCT_DEFINITION") {
		e := idx.entities[id]
		name, ok := resolveProductName(idx, e.Payload, maxNameHops)
		if !ok {
			name = fmt.Sprintf("Part_%d", id)
		}
		defs = append(defs, productDef{id: id, name: name, synthesized: !ok})
	}

	if len(defs) > 0 {
		return defs
	}

	for _, id := range sortedIDs(idx, "MANIFOLD_SOLID_BREP") {
		e := idx.entities[id]
		name, ok := extractQuotedName(e.Payload)
		if !ok || name == "" {
			name = fmt.Sprintf("Solid_%d", id)
			ok = false
		}
		defs = append(defs, productDef{id: id, name: name, synthesized: !ok})
	}

	return defs
}

// resolveProductName walks at most hopsLeft references from data looking
// for a PRODUCT_DEFINITION_FORMATION to recurse through, or a terminal
// PRODUCT whose first quoted string is the part name.
func resolveProductName(idx Index, data string, hopsLeft int) (string, bool) {
	if hopsLeft <= 0 {
		return "", false
	}
	for _, ref := range extractRefs(data) {
		e, ok := idx.Lookup(ref)
		if !ok {
			continue
		}
		switch e.Kind {
		case "PRODUCT_DEFINITION_FORMATION":
			if name, ok2 := resolveProductName(idx, e.Payload, hopsLeft-1); ok2 {
				return name, true
			}
		case "PRODUCT":
			if name, ok2 := extractQuotedName(e.Payload); ok2 {
				return name, true
			}
		}
	}
	return "", false
}

// Part is a named assembly component discovered in a STEP file.
type Part struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	StepEntityID int              `json:"step_entity_id"`
	Synthesized  bool             `json:"synthesized"`
	Transform    geom.Mat4        `json:"transform"`
	BoundingBox  *geom.BoundingBox `json:"bounding_box,omitempty"`
	Faces        []Face           `json:"faces"`
}

// calculateBoundingBox computes the min/max/dimensions envelope of a part's
// face centers, expanded by each face's radius when present. A part with no
// faces has no bounding box.
func calculateBoundingBox(faces []Face) *geom.BoundingBox {
	if len(faces) == 0 {
		return nil
	}
	var bb geom.BoundingBox
	started := false
	for _, f := range faces {
		bb.ExpandPoint(f.Center, &started)
	}
	for _, f := range faces {
		if f.Radius != nil {
			bb.ExpandRadius(f.Center, *f.Radius, &started)
		}
	}
	bb.Finalize()
	return &bb
}
