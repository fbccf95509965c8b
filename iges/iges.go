package iges

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// IGES files are fixed 80-column records. Column 73 carries the section
// letter (S, G, D, P, T), columns 74-80 a per-section sequence number.
const (
	sectionColumn = 72
	dataColumns   = 72
)

// Entity types the name extraction cares about.
const (
	ManifoldSolidBRep = 186
	Property          = 406 // form 15 carries an entity name
)

// Entity is one Directory Entry record of an IGES file.
type Entity struct {
	Type         int    // entity type number (field 1)
	ParamPointer int    // first Parameter Data record (field 2)
	ParamLines   int    // Parameter Data record count (field 14)
	Form         int    // form number (field 15)
	Label        string // entity label (field 18)
	Subscript    int    // entity subscript (field 19)
	Sequence     int    // DE sequence number of the first record line
	PropertyName string // name from an attached 406 form 15 property
}

// Name returns the user-visible name of the entity. DE labels are capped
// at 8 columns, so a Name Property wins when present; a blank label
// falls back to a positional name so downstream mapping errors stay
// readable.
func (e Entity) Name() string {
	if e.PropertyName != "" {
		return e.PropertyName
	}
	if e.Label != "" {
		if e.Subscript > 0 {
			return fmt.Sprintf("%s (%d)", e.Label, e.Subscript)
		}
		return e.Label
	}
	return fmt.Sprintf("body_%d", e.Sequence)
}

// IsIGESFile reports whether the file looks like an ASCII IGES file, based
// on the Start Section marker: an 'S' in column 73 with a numeric sequence.
func IsIGESFile(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return false
	}
	line := scanner.Text()
	if len(line) < sectionColumn+1 {
		// Some exporters trim trailing blanks; accept "S<digits>" too.
		trimmed := strings.TrimSpace(line)
		return strings.HasPrefix(trimmed, "S") &&
			isDigits(strings.TrimSpace(trimmed[1:]))
	}
	return line[sectionColumn] == 'S'
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var hollerithRe = regexp.MustCompile(`^(\d+)H(.*)`)

// DecodeHollerith decodes an nH-prefixed string constant. Anything that
// does not match the nH... pattern is returned unchanged.
func DecodeHollerith(s string) string {
	m := hollerithRe.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n > len(m[2]) {
		return m[2]
	}
	return m[2][:n]
}

// readSection collects the 72 data columns of every record belonging to
// the given section letter, in file order.
func readSection(path string, letter byte) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) >= sectionColumn+1 && line[sectionColumn] == letter {
			lines = append(lines, line[:dataColumns])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}
	return lines, nil
}

// Units extracts the model units from the Global Section: field 14 is the
// numeric units flag and field 15 the Hollerith-encoded units name.
func Units(path string) (flag int, name string, err error) {
	lines, err := readSection(path, 'G')
	if err != nil {
		return 0, "", err
	}
	if len(lines) == 0 {
		return 0, "", fmt.Errorf("no Global Section found in %s", path)
	}

	global := strings.Join(lines, "")

	// Fields 1 and 2 declare the parameter and record delimiters, either
	// as Hollerith constants ("1H,") or as empty fields meaning defaults.
	param := byte(',')
	rest := global
	switch {
	case strings.HasPrefix(global, "1H") && len(global) >= 4:
		param = global[2]
		rest = global[4:]
	case len(global) >= 1 && global[0] == ',':
		rest = global[1:]
	}
	switch {
	case strings.HasPrefix(rest, "1H") && len(rest) >= 4:
		rest = rest[4:]
	case len(rest) >= 1 && rest[0] == param:
		rest = rest[1:]
	}

	fields := strings.Split(rest, string(param))
	// Fields 3..N follow the two delimiter fields; units flag and name
	// are global fields 14 and 15.
	if len(fields) < 13 {
		return 0, "", fmt.Errorf("Global Section has only %d fields, cannot extract units", len(fields))
	}
	flag, _ = strconv.Atoi(strings.TrimSpace(fields[11]))
	name = DecodeHollerith(strings.TrimSpace(fields[12]))
	return flag, name, nil
}

// field returns the w-column field starting at 8*(i-1) of a DE record line.
func field(line string, i int) string {
	start := 8 * (i - 1)
	end := start + 8
	if start >= len(line) {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return strings.TrimSpace(line[start:end])
}

// ReadDirectory parses the Directory Entry section. Each entity occupies
// two consecutive 80-column records of nine 8-column fields each.
func ReadDirectory(path string) ([]Entity, error) {
	lines, err := readSection(path, 'D')
	if err != nil {
		return nil, err
	}
	if len(lines)%2 != 0 {
		return nil, fmt.Errorf("Directory Entry section has odd record count %d", len(lines))
	}

	var entities []Entity
	for i := 0; i+1 < len(lines); i += 2 {
		first, second := lines[i], lines[i+1]

		etype, err := strconv.Atoi(field(first, 1))
		if err != nil {
			return nil, fmt.Errorf("bad entity type in DE record %d: %v", i+1, err)
		}
		paramPtr, _ := strconv.Atoi(field(first, 2))
		paramLines, _ := strconv.Atoi(field(second, 4))
		form, _ := strconv.Atoi(field(second, 5))
		sub, _ := strconv.Atoi(field(second, 9))

		entities = append(entities, Entity{
			Type:         etype,
			ParamPointer: paramPtr,
			ParamLines:   paramLines,
			Form:         form,
			Label:        field(second, 8),
			Subscript:    sub,
			Sequence:     i + 1,
		})
	}
	return entities, nil
}

// readParameterSection collects the data portion of every Parameter Data
// record, indexed by sequence number (1-based file order). Columns 65-72
// hold the DE back-pointer and are dropped.
func readParameterSection(path string) ([]string, error) {
	lines, err := readSection(path, 'P')
	if err != nil {
		return nil, err
	}
	for i, line := range lines {
		if len(line) > 64 {
			lines[i] = line[:64]
		}
	}
	return lines, nil
}

// pdFields returns the comma-separated Parameter Data fields of an
// entity, up to the record delimiter.
func pdFields(e Entity, params []string) []string {
	if e.ParamPointer < 1 || e.ParamLines < 1 ||
		e.ParamPointer-1+e.ParamLines > len(params) {
		return nil
	}
	data := strings.Join(params[e.ParamPointer-1:e.ParamPointer-1+e.ParamLines], "")
	if i := strings.IndexByte(data, ';'); i >= 0 {
		data = data[:i]
	}
	fields := strings.Split(data, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// propertyName resolves the Name Property (406 form 15) attached to a
// solid. The 186 parameters are shell pointer, orientation flag and N
// void shell pairs; the optional pointer groups after them list
// associativities, then properties. Anything malformed just means no
// property name, the DE label still applies.
func propertyName(e Entity, bySeq map[int]Entity, params []string) string {
	fields := pdFields(e, params)
	if len(fields) < 4 {
		return ""
	}
	voids, err := strconv.Atoi(fields[3])
	if err != nil || voids < 0 {
		return ""
	}

	idx := 4 + 2*voids
	if idx >= len(fields) {
		return ""
	}
	nAssoc, err := strconv.Atoi(fields[idx])
	if err != nil || nAssoc < 0 {
		return ""
	}
	idx += 1 + nAssoc
	if idx >= len(fields) {
		return ""
	}
	nProp, err := strconv.Atoi(fields[idx])
	if err != nil {
		return ""
	}

	for i := 0; i < nProp && idx+1+i < len(fields); i++ {
		seq, err := strconv.Atoi(fields[idx+1+i])
		if err != nil {
			continue
		}
		prop, ok := bySeq[seq]
		if !ok || prop.Type != Property || prop.Form != 15 {
			continue
		}
		// 406 form 15: entity type, value count, Hollerith name.
		pf := pdFields(prop, params)
		if len(pf) >= 3 {
			if name := strings.TrimSpace(DecodeHollerith(pf[2])); name != "" {
				return name
			}
		}
	}
	return ""
}

// Solids returns the solid-body entities of the file in directory order,
// with names resolved through attached Name Properties. This order
// matches the volume tag order assigned by the mesher on import, which
// is what ties body names to physical volume ids.
func Solids(path string) ([]Entity, error) {
	entities, err := ReadDirectory(path)
	if err != nil {
		return nil, err
	}
	params, err := readParameterSection(path)
	if err != nil {
		return nil, err
	}

	bySeq := make(map[int]Entity, len(entities))
	for _, e := range entities {
		bySeq[e.Sequence] = e
	}

	var solids []Entity
	for _, e := range entities {
		if e.Type != ManifoldSolidBRep {
			continue
		}
		e.PropertyName = propertyName(e, bySeq, params)
		solids = append(solids, e)
	}
	return solids, nil
}

// SolidNames returns the names of all solid bodies, in import order.
func SolidNames(path string) ([]string, error) {
	solids, err := Solids(path)
	if err != nil {
		return nil, err
	}
	if len(solids) == 0 {
		return nil, fmt.Errorf("no solid bodies found in %s", path)
	}
	names := make([]string, len(solids))
	for i, s := range solids {
		names[i] = s.Name()
	}
	return names, nil
}
