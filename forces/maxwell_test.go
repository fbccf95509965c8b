package forces

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitTetGrid() *Grid {
	return &Grid{
		Points: [][3]float64{
			{0, 0, 0},
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
			{1, 1, 1},
		},
		Cells:     [][]int{{0, 1, 2, 3}, {1, 2, 3, 4}},
		CellTypes: []int{10, 10},
		CellData: map[string]*DataArray{
			"GeometryIds":        {Components: 1, Values: []float64{1, 1}},
			"maxwell stress e 1": {Components: 1, Values: []float64{2, 4}},
			"maxwell stress e 2": {Components: 1, Values: []float64{1, 1}},
			"maxwell stress e 3": {Components: 1, Values: []float64{0, 8}},
		},
	}
}

func TestBodyForceClosedSurfaceUniformStress(t *testing.T) {
	// A single tet under uniform stress feels no net force: the area
	// vectors of a closed surface sum to zero.
	g := unitTetGrid()
	g.CellData["GeometryIds"].Values = []float64{1, 2}

	res, err := BodyForce(g, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Cells)
	assert.Equal(t, 4, res.Faces)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0, res.Force[i], 1e-12, "component %d", i)
	}

	// Three right faces of area 1/2 plus the oblique face sqrt(3)/2.
	assert.InDelta(t, 1.5+math.Sqrt(3)/2, res.Area, 1e-12)
}

func TestBodyForceTwoTets(t *testing.T) {
	// Both tets belong to body 1; the shared face {1,2,3} is interior
	// and drops out of the surface. With per-cell stress s_A, s_B the
	// force reduces to (s_B - s_A) times the shared-face area vector
	// (0.5, 0.5, 0.5).
	res, err := BodyForce(unitTetGrid(), 1)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Cells)
	assert.Equal(t, 6, res.Faces)
	assert.InDelta(t, (4.-2.)*0.5, res.Force[0], 1e-12)
	assert.InDelta(t, (1.-1.)*0.5, res.Force[1], 1e-12)
	assert.InDelta(t, (8.-0.)*0.5, res.Force[2], 1e-12)
}

func TestBodyForceDeterministic(t *testing.T) {
	a, err := BodyForce(unitTetGrid(), 1)
	require.NoError(t, err)
	b, err := BodyForce(unitTetGrid(), 1)
	require.NoError(t, err)
	assert.Equal(t, a.Force, b.Force)
	assert.Equal(t, a.Area, b.Area)
}

func TestBodyForceFromVTUFile(t *testing.T) {
	grid, err := ReadVTU(writeVTU(t, twoTetVTU("1 2")))
	require.NoError(t, err)

	res, err := BodyForce(grid, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Cells)
	assert.Equal(t, 4, res.Faces)
}

func TestBodyForceNoGeometryIds(t *testing.T) {
	g := unitTetGrid()
	delete(g.CellData, "GeometryIds")

	_, err := BodyForce(g, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GeometryIds")
}

func TestBodyForceNoStressArrays(t *testing.T) {
	g := unitTetGrid()
	delete(g.CellData, "maxwell stress e 2")

	_, err := BodyForce(g, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Calculate Maxwell Stress")
}

func TestBodyForceShortGeometryIds(t *testing.T) {
	// A truncated id array must fail loudly, not drop trailing cells.
	g := unitTetGrid()
	g.CellData["GeometryIds"].Values = []float64{1}

	_, err := BodyForce(g, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GeometryIds has 1 values for 2 cells")
}

func TestBodyForceUnknownBody(t *testing.T) {
	_, err := BodyForce(unitTetGrid(), 9)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no cells found for body 9")
}

func TestBodyForceNonTetCell(t *testing.T) {
	g := unitTetGrid()
	g.CellTypes[0] = 12 // hexahedron

	_, err := BodyForce(g, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only tetrahedra")
}
