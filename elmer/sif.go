package elmer

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"
)

//go:embed case.sif.tmpl
var defaultTemplate string

// Body is one meshed region handed to the solver.
type Body struct {
	ID        int    // physical volume tag in the mesh
	Name      string // CAD body name (or "air" for the synthesized volume)
	Material  int
	BodyForce int
}

// Context carries everything the SIF template substitutes.
type Context struct {
	MeshDB      string // directory of the ElmerGrid-converted mesh
	Bodies      []Body
	BoundaryIDs []int // outer boundary surface tags (vector potential = 0)
}

// BuildContext classifies the given body names in order. Body ids follow
// the physical volume tags: imported solids keep their import order and
// the synthesized air volume comes last, so callers append "air" to the
// name list before calling.
func BuildContext(names []string, meshDB string, boundaryIDs []int) (*Context, error) {
	ctx := &Context{
		MeshDB:      meshDB,
		BoundaryIDs: boundaryIDs,
	}
	for i, name := range names {
		a, err := Classify(name)
		if err != nil {
			return nil, fmt.Errorf("body %d: %v", i+1, err)
		}
		ctx.Bodies = append(ctx.Bodies, Body{
			ID:        i + 1,
			Name:      name,
			Material:  a.Material,
			BodyForce: a.BodyForce,
		})
	}
	if len(ctx.Bodies) == 0 {
		return nil, fmt.Errorf("no bodies to configure")
	}
	return ctx, nil
}

var funcMap = template.FuncMap{
	"intJoin": func(vals []int) string {
		parts := make([]string, len(vals))
		for i, v := range vals {
			parts[i] = fmt.Sprintf("%d", v)
		}
		return strings.Join(parts, " ")
	},
}

// Render substitutes the context into the SIF template. An empty
// templateText selects the embedded default.
func Render(ctx *Context, templateText string) (string, error) {
	if templateText == "" {
		templateText = defaultTemplate
	}
	tmpl, err := template.New("sif").Funcs(funcMap).Parse(templateText)
	if err != nil {
		return "", fmt.Errorf("parsing SIF template: %v", err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, ctx); err != nil {
		return "", fmt.Errorf("rendering SIF template: %v", err)
	}
	return b.String(), nil
}

// Generate renders the solver input file for the given body names and
// writes it to outputFile. templateFile overrides the embedded template
// when non-empty.
func Generate(names []string, meshDB, templateFile, outputFile string, boundaryIDs []int) error {
	ctx, err := BuildContext(names, meshDB, boundaryIDs)
	if err != nil {
		return err
	}

	templateText := ""
	if templateFile != "" {
		data, err := os.ReadFile(templateFile)
		if err != nil {
			return fmt.Errorf("reading SIF template: %v", err)
		}
		templateText = string(data)
	}

	text, err := Render(ctx, templateText)
	if err != nil {
		return err
	}
	return os.WriteFile(outputFile, []byte(text), 0644)
}
