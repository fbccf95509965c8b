package iges

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// record formats one 80-column IGES record with the section letter in
// column 73 and the sequence number right-justified in columns 74-80.
func record(data string, letter byte, seq int) string {
	return fmt.Sprintf("%-72s%c%7d", data, letter, seq)
}

func deField(s string) string {
	return fmt.Sprintf("%8s", s)
}

// deLine1 builds the first DE record line: entity type and parameter
// data pointer, remaining fields zeroed.
func deLine1(etype string, paramPtr int) string {
	return deField(etype) + deField(fmt.Sprintf("%d", paramPtr)) + deField("0") +
		deField("0") + deField("0") + deField("0") + deField("0") + deField("0") +
		deField("00000000")
}

// deLine2 builds the second DE record line: entity type, parameter line
// count, form number, label and subscript in their fixed columns.
func deLine2(etype string, paramLines, form int, label string, sub int) string {
	return deField(etype) + deField("0") + deField("0") +
		deField(fmt.Sprintf("%d", paramLines)) + deField(fmt.Sprintf("%d", form)) +
		deField("0") + deField("0") + deField(label) + deField(fmt.Sprintf("%d", sub))
}

// pRecord builds a Parameter Data record: 64 data columns followed by
// the DE back-pointer in columns 65-72.
func pRecord(data string, dePtr, seq int) string {
	return record(fmt.Sprintf("%-64s%8d", data, dePtr), 'P', seq)
}

// buildTestIGES writes a minimal two-solid IGES file. Both solids carry
// Name Properties (406 form 15), since the naming convention needs names
// longer than the 8-column DE label.
func buildTestIGES(t *testing.T) string {
	t.Helper()

	global := ",,7Hproduct,8Htest.igs,6Hsystem,5Hprep1,16,8,24,8,56,7Hreceive,1.,2,2HMM,"

	lines := []string{
		record("test geometry", 'S', 1),
		record(global[:72], 'G', 1),
		record(global[72:], 'G', 2),
		record(deLine1("186", 1), 'D', 1),
		record(deLine2("186", 1, 0, "IRON", 1), 'D', 2),
		record(deLine1("406", 2), 'D', 3),
		record(deLine2("406", 1, 15, "", 0), 'D', 4),
		record(deLine1("186", 3), 'D', 5),
		record(deLine2("186", 1, 0, "MAGNET_1", 1), 'D', 6),
		record(deLine1("406", 4), 'D', 7),
		record(deLine2("406", 1, 15, "", 0), 'D', 8),
		pRecord("186,1,0,0,0,1,3;", 1, 1),
		pRecord("406,1,4Hiron;", 3, 2),
		pRecord("186,1,0,0,0,1,7;", 5, 3),
		pRecord("406,1,12Hmagnet_1_0_0;", 7, 4),
		record("S      1G      2D      8P      4", 'T', 1),
	}

	path := filepath.Join(t.TempDir(), "test.iges")
	err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
	require.NoError(t, err)
	return path
}

func TestIsIGESFile(t *testing.T) {
	path := buildTestIGES(t)
	assert.True(t, IsIGESFile(path))

	notIges := filepath.Join(t.TempDir(), "not.iges")
	require.NoError(t, os.WriteFile(notIges, []byte("$MeshFormat\n2.2 0 8\n"), 0644))
	assert.False(t, IsIGESFile(notIges))

	assert.False(t, IsIGESFile(filepath.Join(t.TempDir(), "missing.iges")))
}

func TestDecodeHollerith(t *testing.T) {
	assert.Equal(t, "MM", DecodeHollerith("2HMM"))
	assert.Equal(t, "INCH", DecodeHollerith("4HINCH"))
	// Length caps the decoded content.
	assert.Equal(t, "AB", DecodeHollerith("2HABC"))
	// Non-Hollerith input passes through.
	assert.Equal(t, "1.25", DecodeHollerith("1.25"))
	assert.Equal(t, "", DecodeHollerith(""))
}

func TestUnits(t *testing.T) {
	path := buildTestIGES(t)

	flag, name, err := Units(path)
	require.NoError(t, err)
	assert.Equal(t, 2, flag)
	assert.Equal(t, "MM", name)
}

func TestUnitsHollerithDelimiters(t *testing.T) {
	// Same global content but with explicitly declared delimiters.
	global := "1H,,1H;,7Hproduct,8Htest.igs,6Hsystem,5Hprep1,16,8,24,8,56,7Hreceive,1.,2,2HMM,"
	lines := []string{
		record("test", 'S', 1),
		record(global[:72], 'G', 1),
		record(global[72:], 'G', 2),
		record("S      1G      2D      0P      0", 'T', 1),
	}
	path := filepath.Join(t.TempDir(), "delims.iges")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))

	flag, name, err := Units(path)
	require.NoError(t, err)
	assert.Equal(t, 2, flag)
	assert.Equal(t, "MM", name)
}

func TestUnitsNoGlobalSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.iges")
	require.NoError(t, os.WriteFile(path, []byte(record("only start", 'S', 1)+"\n"), 0644))

	_, _, err := Units(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Global Section")
}

func TestReadDirectory(t *testing.T) {
	path := buildTestIGES(t)

	entities, err := ReadDirectory(path)
	require.NoError(t, err)
	require.Len(t, entities, 4)

	assert.Equal(t, ManifoldSolidBRep, entities[0].Type)
	assert.Equal(t, "IRON", entities[0].Label)
	assert.Equal(t, 1, entities[0].Subscript)
	assert.Equal(t, 1, entities[0].Sequence)
	assert.Equal(t, 1, entities[0].ParamPointer)
	assert.Equal(t, 1, entities[0].ParamLines)

	assert.Equal(t, Property, entities[1].Type)
	assert.Equal(t, 15, entities[1].Form)
	assert.Equal(t, 3, entities[1].Sequence)

	assert.Equal(t, "MAGNET_1", entities[2].Label)
	assert.Equal(t, 5, entities[2].Sequence)
}

func TestSolidNames(t *testing.T) {
	// The magnet's full name only exists in its Name Property; the DE
	// label is capped at 8 columns ("MAGNET_1").
	path := buildTestIGES(t)

	names, err := SolidNames(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"iron", "magnet_1_0_0"}, names)
}

func TestSolidNamesLabelFallback(t *testing.T) {
	// Without Name Properties the DE labels still apply.
	global := ",,7Hproduct,8Htest.igs,6Hsystem,5Hprep1,16,8,24,8,56,7Hreceive,1.,2,2HMM,"
	lines := []string{
		record("no properties", 'S', 1),
		record(global, 'G', 1),
		record(deLine1("186", 1), 'D', 1),
		record(deLine2("186", 1, 0, "IRON", 1), 'D', 2),
		pRecord("186,1,0,0;", 1, 1),
		record("S      1G      1D      2P      1", 'T', 1),
	}
	path := filepath.Join(t.TempDir(), "labels.iges")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))

	names, err := SolidNames(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"IRON (1)"}, names)
}

func TestSolidNamesNoSolids(t *testing.T) {
	lines := []string{
		record("no solids here", 'S', 1),
		record(",,7Hp,5Hf.igs,3Hsys,4Hprep,16,8,24,8,56,4Hrecv,1.,2,2HMM,", 'G', 1),
		record("S      1G      1D      0P      0", 'T', 1),
	}
	path := filepath.Join(t.TempDir(), "nosolids.iges")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))

	_, err := SolidNames(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no solid bodies")
}

func TestEntityName(t *testing.T) {
	assert.Equal(t, "iron (2)", Entity{Label: "iron", Subscript: 2}.Name())
	assert.Equal(t, "iron", Entity{Label: "iron"}.Name())
	assert.Equal(t, "body_3", Entity{Sequence: 3}.Name())
	// The property name beats the truncated DE label.
	assert.Equal(t, "magnet_1_0_0",
		Entity{Label: "MAGNET_1", PropertyName: "magnet_1_0_0"}.Name())
}
