package gmsh

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Runner invokes the external gmsh binary. The mesher owns all geometry
// and meshing state; this side only hands it a script and an output path.
type Runner struct {
	Binary  string
	Verbose bool
}

func NewRunner(binary string) *Runner {
	if binary == "" {
		binary = "gmsh"
	}
	return &Runner{Binary: binary}
}

// Mesh runs a 3-D meshing pass over the given script and writes the mesh
// to outputFile in MSH 2.2 format. The mesher's stderr is captured and
// attached to the returned error so boolean/geometry failures surface
// verbatim.
func (r *Runner) Mesh(ctx context.Context, scriptFile, outputFile string) error {
	args := []string{"-3", "-format", "msh2", "-o", outputFile, scriptFile}

	cmd := exec.CommandContext(ctx, r.Binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if r.Verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = io.MultiWriter(os.Stderr, &stderr)
	}

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("gmsh failed: %v\n%s", err, msg)
		}
		return fmt.Errorf("gmsh failed: %v", err)
	}
	return nil
}

// ScriptPath returns where the generated .geo script for a given mesh
// output lives. Keeping it next to the mesh makes a run reproducible by
// hand.
func ScriptPath(outputFile string) string {
	ext := filepath.Ext(outputFile)
	return strings.TrimSuffix(outputFile, ext) + ".geo"
}

// GenerateMesh builds the pipeline script for inputFile and runs the
// mesher, producing outputFile. The script is left on disk next to the
// output.
func (r *Runner) GenerateMesh(ctx context.Context, inputFile, outputFile string, mp *MeshParameters) error {
	if _, err := os.Stat(inputFile); err != nil {
		return fmt.Errorf("input file not found: %s", inputFile)
	}
	if err := mp.Validate(); err != nil {
		return err
	}

	script := BuildScript(inputFile, mp)
	scriptFile := ScriptPath(outputFile)
	if err := os.WriteFile(scriptFile, []byte(script), 0644); err != nil {
		return fmt.Errorf("writing mesh script: %v", err)
	}

	return r.Mesh(ctx, scriptFile, outputFile)
}

// CopyFile copies the finished mesh to a target location, typically a
// network share holding the solver's mesh database inputs.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
