package forces

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeVTU(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "case_t0001.vtu")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// twoTetVTU is a minimal solver result: two tetrahedra in one body with
// per-cell Maxwell stress components.
func twoTetVTU(geometryIDs string) string {
	return fmt.Sprintf(`<?xml version="1.0"?>
<VTKFile type="UnstructuredGrid" version="0.1" byte_order="LittleEndian">
  <UnstructuredGrid>
    <Piece NumberOfPoints="5" NumberOfCells="2">
      <Points>
        <DataArray type="Float64" NumberOfComponents="3" format="ascii">
          0 0 0
          1 0 0
          0 1 0
          0 0 1
          1 1 1
        </DataArray>
      </Points>
      <Cells>
        <DataArray type="Int64" Name="connectivity" format="ascii">
          0 1 2 3
          1 2 3 4
        </DataArray>
        <DataArray type="Int64" Name="offsets" format="ascii">4 8</DataArray>
        <DataArray type="UInt8" Name="types" format="ascii">10 10</DataArray>
      </Cells>
      <CellData>
        <DataArray type="Float64" Name="GeometryIds" format="ascii">%s</DataArray>
        <DataArray type="Float64" Name="maxwell stress e 1" format="ascii">2 4</DataArray>
        <DataArray type="Float64" Name="maxwell stress e 2" format="ascii">1 1</DataArray>
        <DataArray type="Float64" Name="maxwell stress e 3" format="ascii">0 8</DataArray>
      </CellData>
    </Piece>
  </UnstructuredGrid>
</VTKFile>`, geometryIDs)
}

func TestReadVTU(t *testing.T) {
	grid, err := ReadVTU(writeVTU(t, twoTetVTU("1 1")))
	require.NoError(t, err)

	require.Len(t, grid.Points, 5)
	assert.Equal(t, [3]float64{0, 0, 0}, grid.Points[0])
	assert.Equal(t, [3]float64{1, 1, 1}, grid.Points[4])

	require.Len(t, grid.Cells, 2)
	assert.Equal(t, []int{0, 1, 2, 3}, grid.Cells[0])
	assert.Equal(t, []int{1, 2, 3, 4}, grid.Cells[1])
	assert.Equal(t, []int{10, 10}, grid.CellTypes)

	require.Contains(t, grid.CellData, "GeometryIds")
	assert.Equal(t, []float64{1, 1}, grid.CellData["GeometryIds"].Values)
	require.Contains(t, grid.CellData, "maxwell stress e 1")
	assert.Equal(t, []float64{2, 4}, grid.CellData["maxwell stress e 1"].Values)
}

func TestReadVTUBinaryRejected(t *testing.T) {
	content := `<VTKFile type="UnstructuredGrid">
  <UnstructuredGrid>
    <Piece NumberOfPoints="1" NumberOfCells="0">
      <Points>
        <DataArray type="Float64" NumberOfComponents="3" format="binary">AAAA</DataArray>
      </Points>
      <Cells>
        <DataArray Name="connectivity" format="ascii"></DataArray>
        <DataArray Name="offsets" format="ascii"></DataArray>
        <DataArray Name="types" format="ascii"></DataArray>
      </Cells>
    </Piece>
  </UnstructuredGrid>
</VTKFile>`

	_, err := ReadVTU(writeVTU(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only ascii is supported")
}

func TestReadVTUWrongType(t *testing.T) {
	content := `<VTKFile type="ImageData"><ImageData></ImageData></VTKFile>`
	_, err := ReadVTU(writeVTU(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected UnstructuredGrid")
}

func TestReadVTUMissingFile(t *testing.T) {
	_, err := ReadVTU(filepath.Join(t.TempDir(), "missing.vtu"))
	require.Error(t, err)
}

func TestReadVTUMalformedXML(t *testing.T) {
	_, err := ReadVTU(writeVTU(t, "<VTKFile><Unclosed"))
	require.Error(t, err)
}
