// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package step

import (
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
)

const headerPrefix = "ISO-10303-21;\nHEADER;\nENDSEC;\nDATA;\n"
const footer = "\nENDSEC;\nEND-ISO-10303-21;\n"

func wrap(body string) string {
	return headerPrefix + body + footer
}

func TestParseAssemblyEmptyIsInvalidFormat(t *testing.T) {
	chk.PrintTitle("ParseAssemblyEmptyIsInvalidFormat")
	result, err := ParseAssembly("", "empty.stp")
	if err != ErrInvalidFormat {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
	if result.Success {
		t.Fatalf("expected success=false")
	}
	if result.Error == "" {
		t.Fatalf("expected a non-empty error message")
	}
}

func TestParseAssemblyNoProductsNoSolidsIsSuccessEmpty(t *testing.T) {
	chk.PrintTitle("ParseAssemblyNoProductsNoSolidsIsSuccessEmpty")
	content := wrap("#1=CARTESIAN_POINT('pt',(0.,0.,0.));")
	result, err := ParseAssembly(content, "empty_assembly.stp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success=true")
	}
	chk.IntAssert(result.TotalParts, 0)
	if len(result.Parts) != 0 {
		t.Fatalf("expected zero parts, got %d", len(result.Parts))
	}
}

func TestCartesianPointParsing(t *testing.T) {
	chk.PrintTitle("CartesianPointParsing")
	data := "'',(1.5,-2.3,4.0)"
	p, ok := parseCartesianPoint(data)
	if !ok {
		t.Fatalf("expected to parse point")
	}
	chk.Vector(t, "point", 1e-9, p[:], []float64{1.5, -2.3, 4.0})
}

func TestEntityIndexIdempotent(t *testing.T) {
	chk.PrintTitle("EntityIndexIdempotent")
	content := wrap(`
#1=CARTESIAN_POINT('O',(0.,0.,0.));
#2=DIRECTION('Z',(0.,0.,1.));
#3=DIRECTION('X',(1.,0.,0.));
#4=AXIS2_PLACEMENT_3D('',#1,#2,#3);
`)
	idx1 := buildIndex(content)
	idx2 := buildIndex(content)
	chk.IntAssert(idx1.Len(), idx2.Len())
	for id, e1 := range idx1.entities {
		e2, ok := idx2.Lookup(id)
		if !ok || e1 != e2 {
			t.Fatalf("idempotency violated at id %d", id)
		}
	}
}

func TestProductDefinitionNameResolution(t *testing.T) {
	chk.PrintTitle("ProductDefinitionNameResolution")
	content := wrap(`
#10=PRODUCT('Bracket','a bracket','',(#11));
#11=PRODUCT_CONTEXT('',#1,'mechanical');
#20=PRODUCT_DEFINITION_FORMATION('','',#10);
#30=PRODUCT_DEFINITION_CONTEXT('',#1,'');
#40=PRODUCT_DEFINITION('','',#20,#30);
`)
	result, err := ParseAssembly(content, "bracket.stp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(result.Parts))
	}
	if result.Parts[0].Name != "Bracket" {
		t.Fatalf("expected name Bracket, got %q", result.Parts[0].Name)
	}
	if result.Parts[0].Synthesized {
		t.Fatalf("expected a resolved (non-synthesized) name")
	}
}

func TestProductDefinitionSynthesizedNameFallback(t *testing.T) {
	chk.PrintTitle("ProductDefinitionSynthesizedNameFallback")
	content := wrap(`#40=PRODUCT_DEFINITION('','',#999,#998);`)
	result, err := ParseAssembly(content, "orphan.stp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(result.Parts))
	}
	if !strings.HasPrefix(result.Parts[0].Name, "Part_") {
		t.Fatalf("expected synthesized Part_<id> name, got %q", result.Parts[0].Name)
	}
	if !result.Parts[0].Synthesized {
		t.Fatalf("expected Synthesized=true")
	}
}

func TestManifoldSolidBrepFallback(t *testing.T) {
	chk.PrintTitle("ManifoldSolidBrepFallback")
	content := wrap(`#5=MANIFOLD_SOLID_BREP('Block',#6);`)
	result, err := ParseAssembly(content, "solid.stp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Parts) != 1 {
		t.Fatalf("expected 1 part from MANIFOLD_SOLID_BREP fallback, got %d", len(result.Parts))
	}
	if result.Parts[0].Name != "Block" {
		t.Fatalf("expected name Block, got %q", result.Parts[0].Name)
	}
}

func TestSubAssemblyDetection(t *testing.T) {
	chk.PrintTitle("SubAssemblyDetection")
	without := wrap(`#1=MANIFOLD_SOLID_BREP('A',#2);`)
	with := wrap(`#1=MANIFOLD_SOLID_BREP('A',#2);
#9=NEXT_ASSEMBLY_USAGE_OCCURRENCE('','','',#1,#1,$);`)

	r1, _ := ParseAssembly(without, "a.stp")
	if r1.HasSubAssemblies {
		t.Fatalf("expected no sub-assemblies")
	}
	r2, _ := ParseAssembly(with, "b.stp")
	if !r2.HasSubAssemblies {
		t.Fatalf("expected sub-assemblies detected")
	}
}

func TestFaceClassificationByType(t *testing.T) {
	chk.PrintTitle("FaceClassificationByType")
	content := wrap(`
#1=CARTESIAN_POINT('O',(0.,0.,2.));
#2=DIRECTION('Z',(0.,0.,1.));
#3=DIRECTION('X',(1.,0.,0.));
#4=AXIS2_PLACEMENT_3D('',#1,#2,#3);
#5=PLANE('',#4);
#6=ADVANCED_FACE('',(),#5,.T.);
#7=CYLINDRICAL_SURFACE('',#4,5.0);
#8=ADVANCED_FACE('',(),#7,.T.);
#9=CONICAL_SURFACE('',#4,5.0,0.2);
#10=ADVANCED_FACE('',(),#9,.T.);
#11=SPHERICAL_SURFACE('',#4,3.0);
#12=ADVANCED_FACE('',(),#11,.T.);
#13=TOROIDAL_SURFACE('',#4,3.0,1.0);
#14=ADVANCED_FACE('',(),#13,.T.);
#20=MANIFOLD_SOLID_BREP('Solid',#99);
`)
	idx := buildIndex(content)
	faces := extractAllFaces(idx)
	if len(faces) != 5 {
		t.Fatalf("expected 5 classified faces, got %d", len(faces))
	}
	want := map[int]string{6: FacePlanar, 8: FaceCylindrical, 10: FaceConical, 12: FaceSpherical, 14: FaceToroidal}
	for _, f := range faces {
		wantType, ok := want[f.StepEntityID]
		if !ok {
			t.Fatalf("unexpected step_entity_id %d", f.StepEntityID)
		}
		if f.FaceType != wantType {
			t.Fatalf("entity %d: expected %s, got %s", f.StepEntityID, wantType, f.FaceType)
		}
	}
	// cylindrical face carries a radius
	for _, f := range faces {
		if f.StepEntityID == 8 {
			if f.Radius == nil || *f.Radius != 5.0 {
				t.Fatalf("expected cylindrical radius 5.0, got %v", f.Radius)
			}
		}
	}
}

func TestPermissiveFaceToPartAttachment(t *testing.T) {
	chk.PrintTitle("PermissiveFaceToPartAttachment")
	content := wrap(`
#1=CARTESIAN_POINT('O',(0.,0.,0.));
#2=DIRECTION('Z',(0.,0.,1.));
#3=DIRECTION('X',(1.,0.,0.));
#4=AXIS2_PLACEMENT_3D('',#1,#2,#3);
#5=PLANE('',#4);
#6=ADVANCED_FACE('',(),#5,.T.);
#10=MANIFOLD_SOLID_BREP('PartOne',#99);
#11=MANIFOLD_SOLID_BREP('PartTwo',#98);
`)
	result, err := ParseAssembly(content, "two_solids.stp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(result.Parts))
	}
	for _, p := range result.Parts {
		if len(p.Faces) != 1 {
			t.Fatalf("expected the single discovered face attached to every part, got %d on %s", len(p.Faces), p.ID)
		}
	}
	// mutating one part's face must not affect the other's (defensive clone)
	r := 99.0
	result.Parts[0].Faces[0].Radius = &r
	if result.Parts[1].Faces[0].Radius != nil {
		t.Fatalf("face clone aliasing detected across parts")
	}
}

func TestBSplineSurfaceBuildsNurbsData(t *testing.T) {
	chk.PrintTitle("BSplineSurfaceBuildsNurbsData")
	content := wrap(`
#1=CARTESIAN_POINT('',(0.0,0.0,0.0));
#2=CARTESIAN_POINT('',(1.0,0.0,0.0));
#3=CARTESIAN_POINT('',(0.0,1.0,0.0));
#4=CARTESIAN_POINT('',(1.0,1.0,0.0));
#30=B_SPLINE_SURFACE_WITH_KNOTS('Surf',3,2,((#1,#2),(#3,#4)),.UNSPECIFIED.,.F.,.F.,.F.,(4,4),(3,3),(0.0,0.0,0.0,1.0,1.0,1.0),(0.0,0.0,1.0,1.0),.UNSPECIFIED.);
#31=ADVANCED_FACE('',(),#30,.T.);
`)
	idx := buildIndex(content)
	faces := extractAllFaces(idx)
	if len(faces) != 1 {
		t.Fatalf("expected 1 classified face, got %d", len(faces))
	}
	f := faces[0]
	if f.FaceType != FaceFreeform {
		t.Fatalf("expected freeform, got %s", f.FaceType)
	}
	if f.NurbsData == nil {
		t.Fatalf("expected NurbsData to be built from the B_SPLINE_SURFACE_WITH_KNOTS payload")
	}
	if f.NurbsData.Ords[0] != 3 || f.NurbsData.Ords[1] != 2 {
		t.Fatalf("expected degrees (3,2), got %v", f.NurbsData.Ords)
	}
	if len(f.NurbsData.Knots[0]) == 0 {
		t.Fatalf("expected a non-empty knot vector")
	}

	// cloneFaces must deep-copy NurbsData so parts never alias each other's
	// slice-backed enrichment.
	cloned := cloneFaces(faces)
	cloned[0].NurbsData.Ords[0] = 99
	if faces[0].NurbsData.Ords[0] == 99 {
		t.Fatalf("NurbsData.Ords aliasing detected after cloneFaces")
	}
}
