package mesh

import (
	"fmt"
	"sort"
)

// ElementType represents the element shapes emitted by the mesher.
type ElementType int

const (
	Point ElementType = iota
	Line
	Triangle
	Quad
	Tet
	Hex
	Prism
	Pyramid
)

func (e ElementType) String() string {
	return [...]string{"Point", "Line", "Triangle", "Quad", "Tet", "Hex",
		"Prism", "Pyramid"}[e]
}

// NumNodes returns the vertex count of the element shape.
func (e ElementType) NumNodes() int {
	return [...]int{1, 2, 3, 4, 4, 8, 6, 5}[e]
}

// Dimension returns the topological dimension of the element shape.
func (e ElementType) Dimension() int {
	return [...]int{0, 1, 2, 2, 3, 3, 3, 3}[e]
}

// PhysicalGroup is a named region of the mesh: a body volume or a
// boundary surface, as tagged by the meshing script.
type PhysicalGroup struct {
	Dimension int
	Tag       int
	Name      string
	Elements  []int // element indices belonging to this group
}

// GroupKey identifies a physical group. Tags are only unique within a
// dimension: the meshing script numbers Physical Volumes and Physical
// Surfaces independently, so a surface and a volume share tag values.
type GroupKey struct {
	Dimension int
	Tag       int
}

// Mesh holds an unstructured mesh read from or written to MSH format.
type Mesh struct {
	FormatVersion string
	IsBinary      bool
	DataSize      int

	Vertices     [][]float64   // [nvertices][3]
	Elements     [][]int       // element to vertex connectivity
	ElementTypes []ElementType // shape of each element
	ElementTags  []int         // physical group tag of each element

	PhysicalGroups map[GroupKey]*PhysicalGroup

	NumVertices int
	NumElements int
}

func NewMesh() *Mesh {
	return &Mesh{
		PhysicalGroups: make(map[GroupKey]*PhysicalGroup),
	}
}

// Group returns the physical group of the given dimension and tag, or
// nil if the mesh has none.
func (m *Mesh) Group(dimension, tag int) *PhysicalGroup {
	return m.PhysicalGroups[GroupKey{Dimension: dimension, Tag: tag}]
}

// AddVertex appends a vertex and returns its zero-based index.
func (m *Mesh) AddVertex(x, y, z float64) int {
	m.Vertices = append(m.Vertices, []float64{x, y, z})
	m.NumVertices++
	return m.NumVertices - 1
}

// AddElement appends an element with its physical tag and zero-based
// vertex indices, registering it with its physical group.
func (m *Mesh) AddElement(etype ElementType, physTag int, verts []int) int {
	m.Elements = append(m.Elements, verts)
	m.ElementTypes = append(m.ElementTypes, etype)
	m.ElementTags = append(m.ElementTags, physTag)
	id := m.NumElements
	m.NumElements++

	if physTag > 0 {
		key := GroupKey{Dimension: etype.Dimension(), Tag: physTag}
		group, ok := m.PhysicalGroups[key]
		if !ok {
			group = &PhysicalGroup{
				Dimension: key.Dimension,
				Tag:       physTag,
			}
			m.PhysicalGroups[key] = group
		}
		group.Elements = append(group.Elements, id)
	}
	return id
}

// CountByType returns how many elements of the given shape the mesh holds.
func (m *Mesh) CountByType(etype ElementType) int {
	count := 0
	for _, t := range m.ElementTypes {
		if t == etype {
			count++
		}
	}
	return count
}

// VolumeGroups returns the dim-3 physical groups sorted by tag.
func (m *Mesh) VolumeGroups() []*PhysicalGroup {
	var groups []*PhysicalGroup
	for _, g := range m.PhysicalGroups {
		if g.Dimension == 3 {
			groups = append(groups, g)
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Tag < groups[j].Tag })
	return groups
}

// SurfaceGroups returns the dim-2 physical groups sorted by tag.
func (m *Mesh) SurfaceGroups() []*PhysicalGroup {
	var groups []*PhysicalGroup
	for _, g := range m.PhysicalGroups {
		if g.Dimension == 2 {
			groups = append(groups, g)
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Tag < groups[j].Tag })
	return groups
}

// CheckRegions verifies that the mesh is usable as solver input: it has
// vertices and volume elements, every volume element carries a physical
// tag, and the regions partition the volume elements (each element in
// exactly one group). A failure here means the upstream boolean geometry
// or group assignment went wrong.
func (m *Mesh) CheckRegions() error {
	if m.NumVertices == 0 {
		return fmt.Errorf("mesh has no vertices")
	}
	volumeElems := 0
	for i, etype := range m.ElementTypes {
		if etype.Dimension() != 3 {
			continue
		}
		volumeElems++
		if m.ElementTags[i] <= 0 {
			return fmt.Errorf("volume element %d has no physical region", i)
		}
	}
	if volumeElems == 0 {
		return fmt.Errorf("mesh has no volume elements")
	}

	seen := make(map[int]int)
	for _, g := range m.VolumeGroups() {
		for _, id := range g.Elements {
			if prev, dup := seen[id]; dup {
				return fmt.Errorf("element %d assigned to regions %d and %d", id, prev, g.Tag)
			}
			seen[id] = g.Tag
		}
	}
	if len(seen) != volumeElems {
		return fmt.Errorf("regions cover %d of %d volume elements", len(seen), volumeElems)
	}
	return nil
}

// PrintStatistics reports mesh size and the element count per region.
func (m *Mesh) PrintStatistics() {
	fmt.Printf("Mesh statistics:\n")
	fmt.Printf("  Vertices: %d\n", m.NumVertices)
	fmt.Printf("  Elements: %d\n", m.NumElements)

	typeCounts := make(map[ElementType]int)
	for _, t := range m.ElementTypes {
		typeCounts[t]++
	}
	for t := Point; t <= Pyramid; t++ {
		if typeCounts[t] > 0 {
			fmt.Printf("  %-10s %d\n", t.String()+":", typeCounts[t])
		}
	}

	for _, g := range m.VolumeGroups() {
		name := g.Name
		if name == "" {
			name = fmt.Sprintf("region %d", g.Tag)
		}
		fmt.Printf("  Volume group %d (%s): %d elements\n", g.Tag, name, len(g.Elements))
	}
}
