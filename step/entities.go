// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package step implements the STEP (ISO-10303-21) assembly extractor: it
// tokenizes the flat, cross-referenced entity list of a STEP exchange file
// into an Index, discovers PRODUCT_DEFINITION parts (or falls back to
// MANIFOLD_SOLID_BREP solids), resolves AXIS2_PLACEMENT_3D transforms, and
// classifies ADVANCED_FACE/FACE_SURFACE entities into typed Face records.
//
// Direct Go transliteration of the original Rust assembly_parser.rs, styled
// after gofem's shp/inp packages (closed-kind dispatch, chk.Err on the one
// fatal path, utl.Min/Max for bounding-box accumulation).
package step

import (
	"regexp"
	"sort"
	"strconv"
)

// Entity is a single parsed STEP record: "#<id> = <KIND> ( <payload> ) ;"
type Entity struct {
	ID      int
	Kind    string
	Payload string
}

// Index is the id -> Entity mapping produced by tokenizing a STEP file.
// Building it is the first step of every parse; it is never retained past
// the ParseAssembly call that built it (the core carries no cache between
// calls, per the stateless-functions design note).
type Index struct {
	entities map[int]Entity
}

// Lookup returns the entity with the given id, if present.
func (idx Index) Lookup(id int) (Entity, bool) {
	e, ok := idx.entities[id]
	return e, ok
}

// Kind returns the entity kind for id, or "" if id is not present.
func (idx Index) Kind(id int) string {
	if e, ok := idx.entities[id]; ok {
		return e.Kind
	}
	return ""
}

// Len returns the number of indexed entities.
func (idx Index) Len() int { return len(idx.entities) }

var (
	entityRe  = regexp.MustCompile(`#(\d+)\s*=\s*([A-Z_][A-Z0-9_]*)\s*\(([^;]*)\)\s*;`)
	refRe     = regexp.MustCompile(`#(\d+)`)
	quotedRe  = regexp.MustCompile(`'([^']*)'`)
	coordRe   = regexp.MustCompile(`\(\s*([+-]?\d+\.?\d*(?:[eE][+-]?\d+)?)\s*,\s*([+-]?\d+\.?\d*(?:[eE][+-]?\d+)?)\s*,\s*([+-]?\d+\.?\d*(?:[eE][+-]?\d+)?)\s*\)`)
	trailNumRe = regexp.MustCompile(`(\d+\.?\d*(?:[eE][+-]?\d+)?)`)
	decFloatRe = regexp.MustCompile(`[+-]?\d+\.\d+(?:[eE][+-]?\d+)?`)
)

// buildIndex tokenizes content into an Index. Entity-shaped records are the
// only thing the regex matches, so HEADER/ENDSEC/comments are skipped for
// free: they never look like "#id=KIND(...);" by construction.
func buildIndex(content string) Index {
	matches := entityRe.FindAllStringSubmatch(content, -1)
	entities := make(map[int]Entity, len(matches))
	for _, m := range matches {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		entities[id] = Entity{ID: id, Kind: m[2], Payload: m[3]}
	}
	return Index{entities: entities}
}

// extractRefs returns every "#n" reference found in data, in order.
func extractRefs(data string) []int {
	matches := refRe.FindAllStringSubmatch(data, -1)
	ids := make([]int, 0, len(matches))
	for _, m := range matches {
		if n, err := strconv.Atoi(m[1]); err == nil {
			ids = append(ids, n)
		}
	}
	return ids
}

// extractQuotedName returns the first single-quoted string in data.
func extractQuotedName(data string) (string, bool) {
	m := quotedRe.FindStringSubmatch(data)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// sortedIDs returns, ascending, the ids of every entity of the given kind.
// Parsing a map in id order keeps Part/Face ordinal assignment deterministic
// across runs, which the original HashMap-backed Rust did not guarantee.
func sortedIDs(idx Index, kind string) []int {
	var ids []int
	for id, e := range idx.entities {
		if e.Kind == kind {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// sortedIDsAnyKind is sortedIDs generalised over a set of kinds.
func sortedIDsAnyKind(idx Index, kinds ...string) []int {
	set := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	var ids []int
	for id, e := range idx.entities {
		if set[e.Kind] {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}
