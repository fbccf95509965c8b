package mesh

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Gmsh element type codes for MSH 2.2 ASCII files.
var gmshToElementType = map[int]ElementType{
	15: Point,
	1:  Line,
	2:  Triangle,
	3:  Quad,
	4:  Tet,
	5:  Hex,
	6:  Prism,
	7:  Pyramid,
}

var elementTypeToGmsh = map[ElementType]int{
	Point:    15,
	Line:     1,
	Triangle: 2,
	Quad:     3,
	Tet:      4,
	Hex:      5,
	Prism:    6,
	Pyramid:  7,
}

// ReadGmsh reads an MSH 2.2 ASCII file, the format the pipeline asks the
// mesher to emit. Data sections are skipped; only geometry, elements and
// physical names matter downstream.
func ReadGmsh(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	msh := NewMesh()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "$MeshFormat":
			if err := readMeshFormat(scanner, msh); err != nil {
				return nil, err
			}

		case "$PhysicalNames":
			if err := readPhysicalNames(scanner, msh); err != nil {
				return nil, err
			}

		case "$Nodes":
			if err := readNodes(scanner, msh); err != nil {
				return nil, err
			}

		case "$Elements":
			if err := readElements(scanner, msh); err != nil {
				return nil, err
			}

		case "$NodeData", "$ElementData", "$ElementNodeData", "$Periodic":
			endMarker := "$End" + line[1:]
			for scanner.Scan() {
				if strings.TrimSpace(scanner.Text()) == endMarker {
					break
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}
	return msh, nil
}

func readMeshFormat(scanner *bufio.Scanner, msh *Mesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in MeshFormat")
	}

	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return fmt.Errorf("invalid MeshFormat line")
	}

	msh.FormatVersion = parts[0]
	if !strings.HasPrefix(msh.FormatVersion, "2.") {
		return fmt.Errorf("unsupported MSH format version %s (need 2.x)", msh.FormatVersion)
	}
	fileType, _ := strconv.Atoi(parts[1])
	msh.IsBinary = fileType == 1
	if msh.IsBinary {
		return fmt.Errorf("binary MSH files are not supported")
	}
	msh.DataSize, _ = strconv.Atoi(parts[2])

	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndMeshFormat" {
			break
		}
	}
	return nil
}

func readPhysicalNames(scanner *bufio.Scanner, msh *Mesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in PhysicalNames")
	}

	numNames, _ := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	for i := 0; i < numNames; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading physical names")
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			continue
		}
		dimension, _ := strconv.Atoi(parts[0])
		tag, _ := strconv.Atoi(parts[1])
		name := strings.Trim(parts[2], "\"")
		for j := 3; j < len(parts); j++ {
			name += " " + strings.Trim(parts[j], "\"")
		}

		key := GroupKey{Dimension: dimension, Tag: tag}
		if group, ok := msh.PhysicalGroups[key]; ok {
			group.Name = name
		} else {
			msh.PhysicalGroups[key] = &PhysicalGroup{
				Dimension: dimension,
				Tag:       tag,
				Name:      name,
			}
		}
	}

	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndPhysicalNames" {
			break
		}
	}
	return nil
}

func readNodes(scanner *bufio.Scanner, msh *Mesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Nodes")
	}

	numNodes, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid node count: %v", err)
	}

	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading nodes")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 4 {
			return fmt.Errorf("invalid node line: %s", scanner.Text())
		}
		// Node ids are 1-based and sequential in files we produce.
		x, _ := strconv.ParseFloat(parts[1], 64)
		y, _ := strconv.ParseFloat(parts[2], 64)
		z, _ := strconv.ParseFloat(parts[3], 64)
		msh.AddVertex(x, y, z)
	}

	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndNodes" {
			break
		}
	}
	return nil
}

func readElements(scanner *bufio.Scanner, msh *Mesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Elements")
	}

	numElements, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid element count: %v", err)
	}

	for i := 0; i < numElements; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading elements")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			return fmt.Errorf("invalid element line: %s", scanner.Text())
		}

		// Format: elem-id elem-type num-tags tag... node...
		gmshType, _ := strconv.Atoi(parts[1])
		numTags, _ := strconv.Atoi(parts[2])

		etype, ok := gmshToElementType[gmshType]
		if !ok {
			return fmt.Errorf("unsupported element type %d", gmshType)
		}

		physTag := 0
		if numTags > 0 && len(parts) > 3 {
			physTag, _ = strconv.Atoi(parts[3])
		}

		nodeStart := 3 + numTags
		needed := etype.NumNodes()
		if len(parts) < nodeStart+needed {
			return fmt.Errorf("element %s has %d nodes, need %d", parts[0],
				len(parts)-nodeStart, needed)
		}

		verts := make([]int, needed)
		for j := 0; j < needed; j++ {
			id, err := strconv.Atoi(parts[nodeStart+j])
			if err != nil {
				return fmt.Errorf("invalid node id in element %s: %v", parts[0], err)
			}
			verts[j] = id - 1 // 1-based file ids to 0-based indices
		}
		msh.AddElement(etype, physTag, verts)
	}

	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndElements" {
			break
		}
	}
	return nil
}
