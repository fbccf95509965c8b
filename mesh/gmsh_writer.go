package mesh

import (
	"bufio"
	"fmt"
	"os"
	"sort"
)

// WriteGmsh writes the mesh as MSH 2.2 ASCII, the round-trip format the
// ElmerGrid converter consumes.
func WriteGmsh(m *Mesh, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	fmt.Fprintln(w, "$MeshFormat")
	fmt.Fprintln(w, "2.2 0 8")
	fmt.Fprintln(w, "$EndMeshFormat")

	if named := namedGroups(m); len(named) > 0 {
		fmt.Fprintln(w, "$PhysicalNames")
		fmt.Fprintln(w, len(named))
		for _, g := range named {
			fmt.Fprintf(w, "%d %d \"%s\"\n", g.Dimension, g.Tag, g.Name)
		}
		fmt.Fprintln(w, "$EndPhysicalNames")
	}

	fmt.Fprintln(w, "$Nodes")
	fmt.Fprintln(w, m.NumVertices)
	for i, v := range m.Vertices {
		fmt.Fprintf(w, "%d %g %g %g\n", i+1, v[0], v[1], v[2])
	}
	fmt.Fprintln(w, "$EndNodes")

	fmt.Fprintln(w, "$Elements")
	fmt.Fprintln(w, m.NumElements)
	for i, verts := range m.Elements {
		gmshType := elementTypeToGmsh[m.ElementTypes[i]]
		tag := m.ElementTags[i]
		// Two tags per element: physical group and geometric entity,
		// which the pipeline keeps identical.
		fmt.Fprintf(w, "%d %d 2 %d %d", i+1, gmshType, tag, tag)
		for _, v := range verts {
			fmt.Fprintf(w, " %d", v+1)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "$EndElements")

	return w.Flush()
}

func namedGroups(m *Mesh) []*PhysicalGroup {
	var named []*PhysicalGroup
	for _, g := range m.PhysicalGroups {
		if g.Name != "" {
			named = append(named, g)
		}
	}
	sort.Slice(named, func(i, j int) bool {
		if named[i].Dimension != named[j].Dimension {
			return named[i].Dimension < named[j].Dimension
		}
		return named[i].Tag < named[j].Tag
	})
	return named
}
