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

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/magsim/magmesh/forces"
)

// forcesCmd represents the forces command
var forcesCmd = &cobra.Command{
	Use:   "forces",
	Short: "Integrate the Maxwell-stress force on a body from solver results",
	Long: `
Loads an Elmer result file (.vtu), extracts the surface of the selected
body and integrates the Maxwell stress over it, printing the total force
vector.

magmesh forces --input_file results/case_t0001.vtu --body 1`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("forces called")
		input, _ := cmd.Flags().GetString("input_file")
		body, _ := cmd.Flags().GetInt("body")
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start(profile.ProfilePath(".")).Stop()
		}

		grid, err := forces.ReadVTU(input)
		if err != nil {
			fatalf("%s", err)
		}
		res, err := forces.BodyForce(grid, body)
		if err != nil {
			fatalf("%s", err)
		}

		fmt.Printf("Body %d: %d cells, %d surface faces, area %g\n", body, res.Cells, res.Faces, res.Area)
		fmt.Printf("Total force in X direction: %g\n", res.Force[0])
		fmt.Printf("Total force in Y direction: %g\n", res.Force[1])
		fmt.Printf("Total force in Z direction: %g\n", res.Force[2])
	},
}

func init() {
	rootCmd.AddCommand(forcesCmd)
	forcesCmd.Flags().StringP("input_file", "i", "results/case_t0001.vtu", "path to the elmer simulation results file")
	forcesCmd.Flags().IntP("body", "b", 1, "GeometryIds value of the body to integrate")
	forcesCmd.Flags().Bool("profile", false, "write a CPU profile for this run")
}
