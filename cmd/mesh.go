/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/magsim/magmesh/gmsh"
	"github.com/magsim/magmesh/iges"
	"github.com/magsim/magmesh/mesh"
)

// MeshRun collects everything one meshing invocation needs.
type MeshRun struct {
	Input      string
	Output     string
	Target     string
	Params     *gmsh.MeshParameters
	ElmerFiles bool
}

// meshCmd represents the mesh command
var meshCmd = &cobra.Command{
	Use:   "mesh INPUT.iges",
	Short: "Mesh an IGES geometry inside a padded air volume",
	Long: `
Imports an IGES file, wraps it in a padded air box, subtracts the solid
bodies from the box, assigns per-region mesh-size fields (fine near the
bodies, coarse at the outer boundary) and runs the 3-D mesher with its
optimization passes, writing an MSH 2.2 file.

magmesh mesh data/two_magnets.iges --output_file data/output.msh`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("mesh called")
		m := &MeshRun{Input: args[0]}
		m.Output, _ = cmd.Flags().GetString("output_file")
		m.Target, _ = cmd.Flags().GetString("target_file")
		m.ElmerFiles, _ = cmd.Flags().GetBool("generate_elmer_files")
		m.Params = processMeshParams(cmd)
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start(profile.ProfilePath(".")).Stop()
		}
		RunMesh(m)
	},
}

// processMeshParams merges defaults, the optional parameters file and the
// command line, which wins.
func processMeshParams(cmd *cobra.Command) *gmsh.MeshParameters {
	mp := gmsh.DefaultMeshParameters()

	if paramsFile, _ := cmd.Flags().GetString("parameters_file"); paramsFile != "" {
		data, err := os.ReadFile(paramsFile)
		if err != nil {
			fatalf("reading parameters file: %s", err)
		}
		if err = mp.Parse(data); err != nil {
			fatalf("parsing parameters file: %s", err)
		}
	}
	if cmd.Flags().Changed("refinement_factor") {
		mp.RefinementFactor, _ = cmd.Flags().GetFloat64("refinement_factor")
	}
	if err := mp.Validate(); err != nil {
		fatalf("%s", err)
	}
	return mp
}

func RunMesh(m *MeshRun) {
	if _, err := os.Stat(m.Input); err != nil {
		fatalf("input IGES file not found: %s", m.Input)
	}
	if !iges.IsIGESFile(m.Input) {
		fatalf("%s does not look like an IGES file", m.Input)
	}
	m.Params.Print()

	runner := gmsh.NewRunner(viper.GetString("gmsh_binary"))
	runner.Verbose = true
	if err := runner.GenerateMesh(context.Background(), m.Input, m.Output, m.Params); err != nil {
		fatalf("%s", err)
	}

	// Round-trip the mesh to make sure the mesher produced usable solver
	// input before anyone feeds it to ElmerGrid.
	msh, err := mesh.ReadGmsh(m.Output)
	if err != nil {
		fatalf("reading generated mesh: %s", err)
	}
	if err = msh.CheckRegions(); err != nil {
		fatalf("generated mesh is not usable: %s", err)
	}
	msh.PrintStatistics()
	fmt.Printf("Mesh saved to %s\n", m.Output)

	if m.Target != "" {
		if err = gmsh.CopyFile(m.Output, m.Target); err != nil {
			fatalf("copying mesh to %s: %s", m.Target, err)
		}
		fmt.Printf("Mesh copied to %s\n", m.Target)
	}

	if m.ElmerFiles {
		sifFile := filepath.Join(filepath.Dir(m.Output), "case.sif")
		generateElmerFiles(m.Input, sifFile, "", "mesh", nil, msh)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Printf("error: "+format+"\n", args...)
	os.Exit(1)
}

func init() {
	rootCmd.AddCommand(meshCmd)
	meshCmd.Flags().StringP("output_file", "o", "output.msh", "output mesh file path")
	meshCmd.Flags().Float64P("refinement_factor", "r", 0.1, "element size multiplier near bodies; smaller is finer and slower")
	meshCmd.Flags().StringP("parameters_file", "p", "", "YAML file with mesh parameters like:\n\t- AirBoxPadding\n\t- TargetMeshSize\n\t- RefinementFactor")
	meshCmd.Flags().String("target_file", "", "copy the finished mesh here (e.g. a network share)")
	meshCmd.Flags().Bool("generate_elmer_files", false, "also render the Elmer solver input file next to the mesh")
	meshCmd.Flags().Bool("profile", false, "write a CPU profile for this run")
}
