package gmsh

import (
	"fmt"
	"strings"
)

// BuildScript renders the .geo command script that drives the whole
// meshing pipeline: import the CAD geometry, wrap it in a padded air box,
// subtract the solids from the box, tag every volume and surface as a
// physical group, and set up distance-based refinement around the bodies.
//
// The script is fully determined by its inputs, so identical invocations
// hand the mesher an identical command sequence.
func BuildScript(inputFile string, mp *MeshParameters) string {
	var b strings.Builder

	b.WriteString("SetFactory(\"OpenCASCADE\");\n\n")
	fmt.Fprintf(&b, "Merge %q;\n\n", inputFile)

	// Collect the imported solids and their surfaces before the air
	// volume exists; the refinement field targets only body surfaces.
	b.WriteString("solids() = Volume \"*\";\n")
	b.WriteString("If (#solids() == 0)\n")
	b.WriteString("  Error(\"no volumes found in the input geometry\");\n")
	b.WriteString("  Abort;\n")
	b.WriteString("EndIf\n")
	b.WriteString("bodySurfaces() = Surface \"*\";\n\n")

	// Air box: geometry bounding box grown by the padding on all sides.
	b.WriteString("bb() = BoundingBox Volume { solids() };\n")
	fmt.Fprintf(&b, "pad = %s;\n", geoFloat(mp.AirBoxPadding))
	b.WriteString("xmin = bb(0) - pad; ymin = bb(1) - pad; zmin = bb(2) - pad;\n")
	b.WriteString("xmax = bb(3) + pad; ymax = bb(4) + pad; zmax = bb(5) + pad;\n")
	b.WriteString("air = newv;\n")
	b.WriteString("Box(air) = {xmin, ymin, zmin, xmax - xmin, ymax - ymin, zmax - zmin};\n\n")

	// Subtract the solids from the box but keep them, so the model ends
	// up with non-overlapping body volumes plus the air complement.
	b.WriteString("BooleanDifference(newv) = { Volume{air}; Delete; }{ Volume{solids()}; };\n\n")

	// One physical group per volume and per surface. Volume tags are
	// ascending, so the bodies keep their import order and the air
	// volume created by the cut gets the highest id.
	b.WriteString("vols() = Volume \"*\";\n")
	b.WriteString("For i In {0 : #vols()-1}\n")
	b.WriteString("  Physical Volume(i + 1) = { vols(i) };\n")
	b.WriteString("EndFor\n")
	b.WriteString("surfs() = Surface \"*\";\n")
	b.WriteString("For i In {0 : #surfs()-1}\n")
	b.WriteString("  Physical Surface(i + 1) = { surfs(i) };\n")
	b.WriteString("EndFor\n\n")

	// Distance + Threshold background field: elements shrink to
	// TargetMeshSize*RefinementFactor within RefineDistMin of a body
	// surface and relax back to TargetMeshSize beyond RefineDistMax.
	b.WriteString("Field[1] = Distance;\n")
	b.WriteString("Field[1].SurfacesList = { bodySurfaces() };\n")
	b.WriteString("Field[2] = Threshold;\n")
	b.WriteString("Field[2].InField = 1;\n")
	fmt.Fprintf(&b, "Field[2].SizeMin = %s;\n", geoFloat(mp.TargetMeshSize*mp.RefinementFactor))
	fmt.Fprintf(&b, "Field[2].SizeMax = %s;\n", geoFloat(mp.TargetMeshSize))
	fmt.Fprintf(&b, "Field[2].DistMin = %s;\n", geoFloat(mp.RefineDistMin))
	fmt.Fprintf(&b, "Field[2].DistMax = %s;\n", geoFloat(mp.RefineDistMax))
	b.WriteString("Background Field = 2;\n\n")

	b.WriteString("Mesh.Optimize = 1;\n")
	if mp.OptimizeNetgen {
		b.WriteString("Mesh.OptimizeNetgen = 1;\n")
	}
	b.WriteString("Mesh.MshFileVersion = 2.2;\n")

	return b.String()
}

// geoFloat formats a float the way the .geo parser expects: plain decimal
// notation, no exponent for the magnitudes used here.
func geoFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
