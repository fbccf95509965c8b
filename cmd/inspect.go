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
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect INPUT.iges",
	Short: "Print IGES metadata used for material mapping",
	Long: `
Prints the model units and the solid bodies of an IGES file together with
the material each body name maps to, so naming problems show up before a
long meshing run.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := args[0]
		if !iges.IsIGESFile(input) {
			fatalf("%s does not look like an IGES file", input)
		}

		flag, name, err := iges.Units(input)
		if err != nil {
			fatalf("%s", err)
		}
		fmt.Printf("Units: %s (flag %d)\n", name, flag)

		solids, err := iges.Solids(input)
		if err != nil {
			fatalf("%s", err)
		}
		fmt.Println("--- Solid bodies ---")
		for i, s := range solids {
			bodyName := s.Name()
			if a, err := elmer.Classify(bodyName); err != nil {
				fmt.Printf("Body %d : %s -> NO MATERIAL MATCH\n", i+1, bodyName)
			} else if a.BodyForce > 0 {
				fmt.Printf("Body %d : %s -> material %d, body force %d\n", i+1, bodyName, a.Material, a.BodyForce)
			} else {
				fmt.Printf("Body %d : %s -> material %d\n", i+1, bodyName, a.Material)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
