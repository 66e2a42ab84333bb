// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package step

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/dawarazhar11/ohmframe-stackup/geom"
)

// ErrInvalidFormat is returned when content carries neither an
// "ISO-10303-21" nor a "STEP" marker; the only fatal failure mode this
// package has (spec.md §7).
var ErrInvalidFormat = errors.New("step: content is missing the ISO-10303-21/STEP marker")

// AssemblyResult is the result of parsing a STEP assembly.
type AssemblyResult struct {
	Success          bool    `json:"success"`
	Error            string  `json:"error,omitempty"`
	Filename         string  `json:"filename"`
	Parts            []Part  `json:"parts"`
	TotalParts       int     `json:"total_parts"`
	HasSubAssemblies bool    `json:"has_sub_assemblies"`
}

// ParseAssembly turns raw STEP text into a Part/Face graph. Only the
// opening format check is fatal: malformed individual entities, unresolved
// references and missing optional fields are all absorbed via the defaults
// documented on Part/Face, not surfaced as errors (spec.md §4.1/§7).
func ParseAssembly(content, filename string) (AssemblyResult, error) {
	if !strings.Contains(content, "ISO-10303-21") && !strings.Contains(content, "STEP") {
		err := chk.Err("step: content is missing the ISO-10303-21/STEP marker")
		return AssemblyResult{
			Success:  false,
			Error:    err.Error(),
			Filename: filename,
		}, ErrInvalidFormat
	}

	idx := buildIndex(content)
	defs := discoverProductDefinitions(idx)
	transforms := extractTransforms(idx)
	faces := extractAllFaces(idx)

	parts := make([]Part, 0, len(defs))
	for i, d := range defs {
		xf, ok := transforms[d.id]
		if !ok {
			xf = geom.Identity()
		}
		partFaces := cloneFaces(faces)
		parts = append(parts, Part{
			ID:           fmt.Sprintf("part-%d", i),
			Name:         d.name,
			StepEntityID: d.id,
			Synthesized:  d.synthesized,
			Transform:    xf,
			BoundingBox:  calculateBoundingBox(partFaces),
			Faces:        partFaces,
		})
	}

	return AssemblyResult{
		Success:          true,
		Filename:         filename,
		Parts:            parts,
		TotalParts:       len(parts),
		HasSubAssemblies: strings.Contains(content, "NEXT_ASSEMBLY_USAGE_OCCURRENCE"),
	}, nil
}
