package forces

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Array names written by the solver's field calculation pass.
const (
	GeometryIDsArray = "GeometryIds"
	stressXArray     = "maxwell stress e 1"
	stressYArray     = "maxwell stress e 2"
	stressZArray     = "maxwell stress e 3"
)

const vtkTetra = 10

// Result is the integrated Maxwell-stress force over one body's surface.
type Result struct {
	Force [3]float64
	Area  float64
	Cells int // volume cells selected for the body
	Faces int // surface faces integrated
}

type faceKey [3]int

type faceInfo struct {
	cell  int
	verts [3]int
	count int
}

// BodyForce integrates the Maxwell stress over the surface of the body
// whose GeometryIds value is bodyID: the body's cells are thresholded
// out, their boundary faces extracted, and each face contributes
// stress_i * n_i * area in every direction, with outward-oriented
// normals.
func BodyForce(g *Grid, bodyID int) (*Result, error) {
	geo, ok := g.CellData[GeometryIDsArray]
	if !ok {
		return nil, fmt.Errorf("result file has no %q cell array", GeometryIDsArray)
	}
	var stress [3]*DataArray
	for i, name := range []string{stressXArray, stressYArray, stressZArray} {
		arr, ok := g.CellData[name]
		if !ok {
			return nil, fmt.Errorf("result file has no %q cell array; enable Calculate Maxwell Stress", name)
		}
		stress[i] = arr
	}
	if len(geo.Values) != len(g.Cells) {
		return nil, fmt.Errorf("%s has %d values for %d cells",
			GeometryIDsArray, len(geo.Values), len(g.Cells))
	}

	// Threshold: keep the body's volume cells.
	var selected []int
	for i := range g.Cells {
		if int(geo.Values[i]) == bodyID {
			if g.CellTypes[i] != vtkTetra {
				return nil, fmt.Errorf("cell %d of body %d has VTK type %d, only tetrahedra are supported",
					i, bodyID, g.CellTypes[i])
			}
			selected = append(selected, i)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no cells found for body %d", bodyID)
	}

	// Extract surface: faces seen once within the selection.
	faces := make(map[faceKey]*faceInfo)
	for _, cell := range selected {
		v := g.Cells[cell]
		for _, f := range [4][3]int{
			{v[0], v[2], v[1]},
			{v[0], v[1], v[3]},
			{v[1], v[2], v[3]},
			{v[0], v[3], v[2]},
		} {
			key := faceKey{f[0], f[1], f[2]}
			sort.Ints(key[:])
			if info, seen := faces[key]; seen {
				info.count++
			} else {
				faces[key] = &faceInfo{cell: cell, verts: f, count: 1}
			}
		}
	}

	var fx, fy, fz, areas []float64
	for _, info := range faces {
		if info.count != 1 {
			continue
		}

		p0 := g.Points[info.verts[0]]
		p1 := g.Points[info.verts[1]]
		p2 := g.Points[info.verts[2]]

		// Area vector n*A from the cross product of two edges.
		n := cross(sub(p1, p0), sub(p2, p0))
		for i := range n {
			n[i] *= 0.5
		}

		// Orient outward from the owning cell.
		if dot(n, sub(centroid3(p0, p1, p2), cellCentroid(g, info.cell))) < 0 {
			for i := range n {
				n[i] = -n[i]
			}
		}

		fx = append(fx, stress[0].Values[info.cell]*n[0])
		fy = append(fy, stress[1].Values[info.cell]*n[1])
		fz = append(fz, stress[2].Values[info.cell]*n[2])
		areas = append(areas, norm(n))
	}
	if len(areas) == 0 {
		return nil, fmt.Errorf("body %d has no surface faces", bodyID)
	}

	return &Result{
		Force: [3]float64{floats.Sum(fx), floats.Sum(fy), floats.Sum(fz)},
		Area:  floats.Sum(areas),
		Cells: len(selected),
		Faces: len(areas),
	}, nil
}

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func norm(a [3]float64) float64 {
	return floats.Norm(a[:], 2)
}

func centroid3(a, b, c [3]float64) [3]float64 {
	return [3]float64{
		(a[0] + b[0] + c[0]) / 3,
		(a[1] + b[1] + c[1]) / 3,
		(a[2] + b[2] + c[2]) / 3,
	}
}

func cellCentroid(g *Grid, cell int) [3]float64 {
	var c [3]float64
	verts := g.Cells[cell]
	for _, v := range verts {
		p := g.Points[v]
		c[0] += p[0]
		c[1] += p[1]
		c[2] += p[2]
	}
	n := float64(len(verts))
	c[0] /= n
	c[1] /= n
	c[2] /= n
	return c
}
