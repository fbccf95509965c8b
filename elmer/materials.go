package elmer

import (
	"fmt"
	"regexp"
)

// Assignment ties a body to its solver material and, for magnets, the
// body force carrying the magnetization direction.
type Assignment struct {
	Material  int
	BodyForce int // 0 means no body force section
}

// The body-naming convention maps CAD names to solver physics. Names are
// matched case-insensitively against the leading part of the name, so the
// " (1)" suffixes appended by the CAD importer are tolerated. The CAD
// tool may prefix names with its shape folder ("Shapes/").
//
// A name that matches nothing is a hard error: silently defaulting a
// material would corrupt the physics without any visible symptom.
var namePatterns = []struct {
	re         *regexp.Regexp
	assignment Assignment
}{
	{regexp.MustCompile(`(?i)^(?:Shapes/)?air`), Assignment{Material: 1}},
	{regexp.MustCompile(`(?i)^(?:Shapes/)?magnet_1_0_0`), Assignment{Material: 2, BodyForce: 1}},
	{regexp.MustCompile(`(?i)^(?:Shapes/)?magnet_-1_0_0`), Assignment{Material: 3, BodyForce: 2}},
	{regexp.MustCompile(`(?i)^(?:Shapes/)?magnet_0_1_0`), Assignment{Material: 4, BodyForce: 3}},
	{regexp.MustCompile(`(?i)^(?:Shapes/)?magnet_0_-1_0`), Assignment{Material: 5, BodyForce: 4}},
	{regexp.MustCompile(`(?i)^(?:Shapes/)?magnet_0_0_1`), Assignment{Material: 6, BodyForce: 5}},
	{regexp.MustCompile(`(?i)^(?:Shapes/)?magnet_0_0_-1`), Assignment{Material: 7, BodyForce: 6}},
	{regexp.MustCompile(`(?i)^(?:Shapes/)?iron`), Assignment{Material: 8}},
}

// Classify maps a body name to its material/body-force assignment.
func Classify(name string) (Assignment, error) {
	for _, p := range namePatterns {
		if p.re.MatchString(name) {
			return p.assignment, nil
		}
	}
	return Assignment{}, fmt.Errorf("no material found for body name %q", name)
}

// MagnetDirections lists the magnetization unit vector of each body
// force id, in body-force order.
var MagnetDirections = [][3]float64{
	{1, 0, 0},
	{-1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},
}
