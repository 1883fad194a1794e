package graph

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/fsm/pkg/definition"
)

// GraphOverlay contains the states of one evaluation to highlight on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a definition.
// It applies semantic styling:
// - Start: ((Circle))
// - Accepting: (((Double circle)))
// - Default: [Rectangle]
// Composite definitions are drawn as an operator node pointing at their parts.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(def *definition.Definition, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	if def.IsComposite() {
		writeComposite(&sb, def)
		return sb.String()
	}

	ids := nodeIDs("s", def.States)
	start := def.StartState()
	for _, state := range def.States {
		opener, closer := "[", "]"
		switch {
		case slices.Contains(def.Accept, state):
			opener, closer = "(((", ")))"
		case state == start:
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", ids[state], opener, escapeLabel(state), closer)
	}

	for i, rule := range def.Transitions {
		from := rule.From
		if len(from) == 0 {
			from = def.States
		}
		label := "*"
		if len(rule.On) > 0 {
			label = strings.Join(rule.On, ", ")
		}
		label = escapeLabel(label)

		arrow := fmt.Sprintf("-- \"%s\" -->", label)
		if len(rule.On) == 0 && len(rule.From) == 0 {
			arrow = fmt.Sprintf("-. \"#%d %s\" .->", i, label)
		}
		for _, state := range from {
			fmt.Fprintf(&sb, "    %s %s %s\n", ids[state], arrow, ids[rule.To])
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, state := range overlay.VisitedStates {
			id, ok := ids[state]
			if ok && !visitedSet[id] {
				visitedSet[id] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", id)
			}
		}

		if id, ok := ids[overlay.CurrentState]; ok {
			fmt.Fprintf(&sb, "    class %s current;\n", id)
		}
	}

	return sb.String()
}

func writeComposite(sb *strings.Builder, def *definition.Definition) {
	fmt.Fprintf(sb, "    self{\"%s: %s\"}\n", escapeLabel(def.Name), def.Compose.Op)
	ids := nodeIDs("p", def.Compose.Of)
	for _, part := range def.Compose.Of {
		fmt.Fprintf(sb, "    self --> %s[[\"%s\"]]\n", ids[part], escapeLabel(part))
	}
}

// nodeIDs numbers names by first appearance. Mermaid IDs must not be
// keywords such as "end" and must stay distinct for names like "a-b" and "a_b".
func nodeIDs(prefix string, names []string) map[string]string {
	ids := make(map[string]string, len(names))
	for _, name := range names {
		if _, ok := ids[name]; !ok {
			ids[name] = prefix + strconv.Itoa(len(ids))
		}
	}
	return ids
}

// escapeLabel keeps double quotes from closing a Mermaid label.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
