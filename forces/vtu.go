package forces

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DataArray is one named per-cell array from a VTU file, flattened in
// component-interleaved order.
type DataArray struct {
	Components int
	Values     []float64
}

// Grid is an unstructured grid loaded from a solver result file.
type Grid struct {
	Points    [][3]float64
	Cells     [][]int // cell to point connectivity
	CellTypes []int   // VTK cell type codes
	CellData  map[string]*DataArray
}

type vtkDataArray struct {
	Name               string `xml:"Name,attr"`
	Format             string `xml:"format,attr"`
	NumberOfComponents string `xml:"NumberOfComponents,attr"`
	Content            string `xml:",chardata"`
}

type vtkArrayList struct {
	Arrays []vtkDataArray `xml:"DataArray"`
}

type vtkPiece struct {
	NumberOfPoints int          `xml:"NumberOfPoints,attr"`
	NumberOfCells  int          `xml:"NumberOfCells,attr"`
	Points         vtkArrayList `xml:"Points"`
	Cells          vtkArrayList `xml:"Cells"`
	CellData       vtkArrayList `xml:"CellData"`
}

type vtkFile struct {
	XMLName xml.Name `xml:"VTKFile"`
	Type    string   `xml:"type,attr"`
	Grid    struct {
		Pieces []vtkPiece `xml:"Piece"`
	} `xml:"UnstructuredGrid"`
}

func (a *vtkDataArray) floats() ([]float64, error) {
	if a.Format != "" && a.Format != "ascii" {
		return nil, fmt.Errorf("DataArray %q has format %q, only ascii is supported", a.Name, a.Format)
	}
	fields := strings.Fields(a.Content)
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("DataArray %q: bad value %q", a.Name, f)
		}
		vals[i] = v
	}
	return vals, nil
}

func (a *vtkDataArray) ints() ([]int, error) {
	vals, err := a.floats()
	if err != nil {
		return nil, err
	}
	out := make([]int, len(vals))
	for i, v := range vals {
		out[i] = int(v)
	}
	return out, nil
}

func (l *vtkArrayList) find(name string) *vtkDataArray {
	for i := range l.Arrays {
		if l.Arrays[i].Name == name {
			return &l.Arrays[i]
		}
	}
	return nil
}

// ReadVTU loads an ascii VTK XML unstructured grid, the format the
// solver writes its result fields in.
func ReadVTU(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file vtkFile
	if err := xml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %v", path, err)
	}
	if file.Type != "" && file.Type != "UnstructuredGrid" {
		return nil, fmt.Errorf("%s is a %s file, expected UnstructuredGrid", path, file.Type)
	}
	if len(file.Grid.Pieces) != 1 {
		return nil, fmt.Errorf("%s has %d pieces, expected 1", path, len(file.Grid.Pieces))
	}
	piece := &file.Grid.Pieces[0]

	grid := &Grid{CellData: make(map[string]*DataArray)}

	if len(piece.Points.Arrays) == 0 {
		return nil, fmt.Errorf("%s has no Points array", path)
	}
	coords, err := piece.Points.Arrays[0].floats()
	if err != nil {
		return nil, err
	}
	if len(coords) != 3*piece.NumberOfPoints {
		return nil, fmt.Errorf("points array has %d values, expected %d", len(coords), 3*piece.NumberOfPoints)
	}
	grid.Points = make([][3]float64, piece.NumberOfPoints)
	for i := range grid.Points {
		grid.Points[i] = [3]float64{coords[3*i], coords[3*i+1], coords[3*i+2]}
	}

	connArr := piece.Cells.find("connectivity")
	offsArr := piece.Cells.find("offsets")
	typeArr := piece.Cells.find("types")
	if connArr == nil || offsArr == nil || typeArr == nil {
		return nil, fmt.Errorf("%s is missing cell connectivity arrays", path)
	}
	conn, err := connArr.ints()
	if err != nil {
		return nil, err
	}
	offsets, err := offsArr.ints()
	if err != nil {
		return nil, err
	}
	types, err := typeArr.ints()
	if err != nil {
		return nil, err
	}
	if len(offsets) != piece.NumberOfCells || len(types) != piece.NumberOfCells {
		return nil, fmt.Errorf("cell arrays disagree with NumberOfCells=%d", piece.NumberOfCells)
	}

	grid.CellTypes = types
	grid.Cells = make([][]int, piece.NumberOfCells)
	start := 0
	for i, end := range offsets {
		if end < start || end > len(conn) {
			return nil, fmt.Errorf("bad cell offset %d", end)
		}
		grid.Cells[i] = conn[start:end]
		start = end
	}

	for i := range piece.CellData.Arrays {
		arr := &piece.CellData.Arrays[i]
		vals, err := arr.floats()
		if err != nil {
			return nil, err
		}
		comps := 1
		if arr.NumberOfComponents != "" {
			comps, _ = strconv.Atoi(arr.NumberOfComponents)
			if comps < 1 {
				comps = 1
			}
		}
		grid.CellData[arr.Name] = &DataArray{Components: comps, Values: vals}
	}

	return grid, nil
}
