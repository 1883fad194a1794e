package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/fsm/pkg/definition"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// It uses a dark theme by default, but could be configurable.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return "", err
		}
		return r.Render(markdown)
	}
}

// Describe returns a markdown summary of def.
func Describe(def *definition.Definition) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", def.Name)
	if def.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", def.Description)
	}

	if def.IsComposite() {
		fmt.Fprintf(&sb, "Accepts when **%s** of its parts accept%s:\n\n", quantifier(def.Compose.Op), plural(def.Compose.Op))
		for _, part := range def.Compose.Of {
			fmt.Fprintf(&sb, "- `%s`\n", part)
		}
		return sb.String()
	}

	tokenizer := def.Tokenizer
	if tokenizer == "" {
		tokenizer = definition.TokenizeRunes
	}
	alphabet := "any symbol"
	if len(def.Alphabet) > 0 {
		alphabet = code(def.Alphabet)
	}

	fmt.Fprintf(&sb, "- **Tokenizer:** %s\n", tokenizer)
	fmt.Fprintf(&sb, "- **Alphabet:** %s\n", alphabet)
	fmt.Fprintf(&sb, "- **States:** %s\n", code(def.States))
	fmt.Fprintf(&sb, "- **Start:** `%s`\n", def.StartState())
	if len(def.Accept) > 0 {
		fmt.Fprintf(&sb, "- **Accepting:** %s\n", code(def.Accept))
	} else {
		sb.WriteString("- **Accepting:** none\n")
	}

	sb.WriteString("\n| # | From | On | To |\n|---|------|----|----|\n")
	for i, r := range def.Transitions {
		fmt.Fprintf(&sb, "| %d | %s | %s | `%s` |\n", i, orAny(r.From), orAny(r.On), r.To)
	}
	return sb.String()
}

func quantifier(op string) string {
	if op == definition.OpAnd {
		return "all"
	}
	return "any"
}

func plural(op string) string {
	if op == definition.OpAnd {
		return ""
	}
	return "s"
}

func code(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "`" + v + "`"
	}
	return strings.Join(quoted, ", ")
}

func orAny(values []string) string {
	if len(values) == 0 {
		return "*"
	}
	return code(values)
}
