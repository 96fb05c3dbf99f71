package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/intake/pkg/registry"
)

// Overlay marks the position of a live session on the graph.
type Overlay struct {
	// Current is the session's step index; -1 leaves every step unstyled.
	Current int
	// Submitted styles every step as visited.
	Submitted bool
}

// GenerateMermaid produces a Mermaid flowchart of a wizard.
// Shapes:
// - First step: ((Circle))
// - Editable step: [/Parallelogram/] (input)
// - Confirmation step: [[Subroutine]]
// Forward edges are labeled "next" (or "submit" into the confirmation step);
// dotted edges go back.
func GenerateMermaid(reg *registry.Registry, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	steps := reg.Steps()
	for i, step := range steps {
		opener, closer := "[/", "/]"
		switch {
		case i == 0:
			opener, closer = "((", "))"
		case reg.IsTerminal(i):
			opener, closer = "[[", "]]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", nodeID(i), opener, escapeLabel(step.Name), closer)
	}

	for i := 0; i < len(steps)-1; i++ {
		label := "next"
		if i == reg.LastEditable() {
			label = "submit"
		}
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", nodeID(i), label, nodeID(i+1))
		if i > 0 {
			fmt.Fprintf(&sb, "    %s -. \"back\" .-> %s\n", nodeID(i), nodeID(i-1))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		for i := range steps {
			switch {
			case overlay.Submitted || (overlay.Current >= 0 && i < overlay.Current):
				fmt.Fprintf(&sb, "    class %s visited;\n", nodeID(i))
			case i == overlay.Current:
				fmt.Fprintf(&sb, "    class %s current;\n", nodeID(i))
			}
		}
	}

	return sb.String()
}

func nodeID(i int) string {
	return fmt.Sprintf("step%d", i)
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
