package main

import "github.com/magsim/magmesh/cmd"

func main() {
	cmd.Execute()
}
