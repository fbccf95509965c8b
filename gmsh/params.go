package gmsh

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// MeshParameters controls the air volume and mesh-size fields of the
// meshing pipeline. All lengths are in model units.
type MeshParameters struct {
	AirBoxPadding    float64 `yaml:"AirBoxPadding"`    // padding around the geometry bounding box
	TargetMeshSize   float64 `yaml:"TargetMeshSize"`   // default element size
	RefinementFactor float64 `yaml:"RefinementFactor"` // element size multiplier near bodies
	RefineDistMin    float64 `yaml:"RefineDistMin"`    // full refinement inside this distance
	RefineDistMax    float64 `yaml:"RefineDistMax"`    // no refinement beyond this distance
	OptimizeNetgen   bool    `yaml:"OptimizeNetgen"`   // run the Netgen optimization pass
}

// DefaultMeshParameters returns the parameter set tuned for small
// permanent-magnet models in millimeters.
func DefaultMeshParameters() *MeshParameters {
	return &MeshParameters{
		AirBoxPadding:    50.0,
		TargetMeshSize:   4.0,
		RefinementFactor: 0.1,
		RefineDistMin:    2.0,
		RefineDistMax:    10.0,
		OptimizeNetgen:   true,
	}
}

func (mp *MeshParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, mp)
}

func (mp *MeshParameters) Print() {
	fmt.Printf("%8.5f\t\t= AirBoxPadding\n", mp.AirBoxPadding)
	fmt.Printf("%8.5f\t\t= TargetMeshSize\n", mp.TargetMeshSize)
	fmt.Printf("%8.5f\t\t= RefinementFactor\n", mp.RefinementFactor)
	fmt.Printf("%8.5f\t\t= RefineDistMin\n", mp.RefineDistMin)
	fmt.Printf("%8.5f\t\t= RefineDistMax\n", mp.RefineDistMax)
	fmt.Printf("[%v]\t\t\t= OptimizeNetgen\n", mp.OptimizeNetgen)
}

// Validate rejects parameter combinations the mesher would choke on.
func (mp *MeshParameters) Validate() error {
	if mp.TargetMeshSize <= 0 {
		return fmt.Errorf("TargetMeshSize must be positive, got %g", mp.TargetMeshSize)
	}
	if mp.RefinementFactor <= 0 {
		return fmt.Errorf("RefinementFactor must be positive, got %g", mp.RefinementFactor)
	}
	if mp.AirBoxPadding <= 0 {
		return fmt.Errorf("AirBoxPadding must be positive, got %g", mp.AirBoxPadding)
	}
	if mp.RefineDistMin >= mp.RefineDistMax {
		return fmt.Errorf("RefineDistMin (%g) must be below RefineDistMax (%g)",
			mp.RefineDistMin, mp.RefineDistMax)
	}
	return nil
}
