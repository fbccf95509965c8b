package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magsim/magmesh/mesh"
)

func TestOuterBoundaryIDs(t *testing.T) {
	m := mesh.NewMesh()
	for i := 0; i < 4; i++ {
		m.AddVertex(float64(i), 0, 0)
	}
	// Body surfaces 1..14 followed by the six air box faces 15..20.
	for tag := 1; tag <= 20; tag++ {
		m.AddElement(mesh.Triangle, tag, []int{0, 1, 2})
	}

	assert.Equal(t, []int{15, 16, 17, 18, 19, 20}, outerBoundaryIDs(m))
}

func TestOuterBoundaryIDsSmallModel(t *testing.T) {
	// With six or fewer surface groups everything is outer boundary.
	m := mesh.NewMesh()
	for i := 0; i < 3; i++ {
		m.AddVertex(float64(i), 0, 0)
	}
	for tag := 1; tag <= 3; tag++ {
		m.AddElement(mesh.Triangle, tag, []int{0, 1, 2})
	}

	assert.Equal(t, []int{1, 2, 3}, outerBoundaryIDs(m))
}
