package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/intake/internal/presentation/graph"
	"github.com/aretw0/intake/pkg/forms/auto"
	"github.com/aretw0/intake/pkg/registry"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	reg := registry.MustNew(auto.Steps...)
	out := graph.GenerateMermaid(reg, nil)

	for _, want := range []string{
		"graph TD\n",
		`step0(("General Information"))`,
		`step1[/"Driver Information"/]`,
		`step4[["Thank You"]]`,
		`step0 -- "next" --> step1`,
		`step3 -- "submit" --> step4`,
		`step2 -. "back" .-> step1`,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "step0 -.", "the first step has no back edge")
	assert.NotContains(t, out, "classDef")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	reg := registry.MustNew(
		registry.Step{Name: "One", Section: "a"},
		registry.Step{Name: "Two \"quoted\"", Section: "b"},
		registry.Step{Name: "Done"},
	)

	out := graph.GenerateMermaid(reg, &graph.Overlay{Current: 1})
	assert.Contains(t, out, `step1[/"Two 'quoted'"/]`)
	assert.Contains(t, out, "class step0 visited;")
	assert.Contains(t, out, "class step1 current;")
	assert.NotContains(t, out, "class step2")

	done := graph.GenerateMermaid(reg, &graph.Overlay{Current: 2, Submitted: true})
	assert.Equal(t, 3, strings.Count(done, "visited;"))
	assert.NotContains(t, done, "current;")
}
