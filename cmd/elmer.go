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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magsim/magmesh/elmer"
	"github.com/magsim/magmesh/iges"
	"github.com/magsim/magmesh/mesh"
)

// elmerCmd represents the elmer command
var elmerCmd = &cobra.Command{
	Use:   "elmer INPUT.iges",
	Short: "Render the Elmer solver input file from CAD body names",
	Long: `
Reads the solid body names from an IGES file, maps each to a material and
magnetization body force via the naming convention (air, iron,
magnet_<x>_<y>_<z>) and renders the solver input deck. A body name that
matches no pattern aborts the run: a silently defaulted material would
corrupt the physics.

magmesh elmer data/two_magnets.iges --output_file case.sif --mesh_file data/output.msh`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("elmer called")
		output, _ := cmd.Flags().GetString("output_file")
		templateFile, _ := cmd.Flags().GetString("template")
		meshDB, _ := cmd.Flags().GetString("mesh_db")
		meshFile, _ := cmd.Flags().GetString("mesh_file")
		boundaryIDs, _ := cmd.Flags().GetIntSlice("boundary_ids")

		var msh *mesh.Mesh
		if meshFile != "" {
			var err error
			if msh, err = mesh.ReadGmsh(meshFile); err != nil {
				fatalf("reading mesh file: %s", err)
			}
		}
		generateElmerFiles(args[0], output, templateFile, meshDB, boundaryIDs, msh)
	},
}

// generateElmerFiles maps the IGES body names plus the synthesized air
// volume to solver assignments and writes the rendered input file. The
// outer boundary ids come from the flag when given, otherwise from the
// mesh file's surface groups.
func generateElmerFiles(inputFile, outputFile, templateFile, meshDB string, boundaryIDs []int, msh *mesh.Mesh) {
	names, err := iges.SolidNames(inputFile)
	if err != nil {
		fatalf("%s", err)
	}
	// The boolean cut assigns the air volume the highest tag, so it goes
	// last in the body list.
	names = append(names, "air")

	if len(boundaryIDs) == 0 && msh != nil {
		boundaryIDs = outerBoundaryIDs(msh)
	}
	if len(boundaryIDs) == 0 {
		fatalf("no outer boundary ids: pass --boundary_ids or --mesh_file")
	}

	if err = elmer.Generate(names, meshDB, templateFile, outputFile, boundaryIDs); err != nil {
		fatalf("%s", err)
	}
	fmt.Printf("Generated elmer configuration file: %s\n", outputFile)
	for i, name := range names {
		fmt.Printf("  Body %d = %s\n", i+1, name)
	}
}

// outerBoundaryIDs picks the air box faces: the box is created last in
// the geometry sequence, so its six sides carry the highest surface tags.
func outerBoundaryIDs(msh *mesh.Mesh) []int {
	groups := msh.SurfaceGroups()
	if len(groups) > 6 {
		groups = groups[len(groups)-6:]
	}
	ids := make([]int, len(groups))
	for i, g := range groups {
		ids[i] = g.Tag
	}
	return ids
}

func init() {
	rootCmd.AddCommand(elmerCmd)
	elmerCmd.Flags().StringP("output_file", "o", "case.sif", "solver input file to write")
	elmerCmd.Flags().String("template", "", "SIF template file overriding the built-in one")
	elmerCmd.Flags().String("mesh_db", "mesh", "mesh database directory referenced by the SIF header")
	elmerCmd.Flags().String("mesh_file", "", "generated .msh file used to find the outer boundary surfaces")
	elmerCmd.Flags().IntSlice("boundary_ids", nil, "physical surface ids of the outer boundary")
}
