package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/fsm/internal/presentation/tui"
	"github.com/aretw0/fsm/pkg/definition"
	"github.com/aretw0/fsm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintResult(&buf, &domain.Result{Final: "Q5", Accepted: true, Steps: 5})
	assert.Equal(t, "ACCEPTED Q5 after 5 steps\n", buf.String())

	buf.Reset()
	tui.PrintResult(&buf, &domain.Result{Final: "Odd", Steps: 1, Trace: []string{"Even", "Odd"}})
	assert.Equal(t, "REJECTED Odd after 1 steps\nEven -> Odd\n", buf.String())
}

func TestDescribe(t *testing.T) {
	md := tui.Describe(&definition.Definition{
		Name:        "even_ones",
		Description: "Even number of 1.",
		Tokenizer:   definition.TokenizeFields,
		Alphabet:    []string{"0", "1"},
		States:      []string{"Even", "Odd"},
		Accept:      []string{"Even"},
		Transitions: []definition.Rule{
			{From: []string{"Even"}, On: []string{"1"}, To: "Odd"},
			{To: "Even"},
		},
	})

	assert.Contains(t, md, "# even_ones\n\nEven number of 1.\n")
	assert.Contains(t, md, "- **Tokenizer:** fields\n")
	assert.Contains(t, md, "- **Alphabet:** `0`, `1`\n")
	assert.Contains(t, md, "- **Start:** `Even`\n")
	assert.Contains(t, md, "| 0 | `Even` | `1` | `Odd` |\n")
	assert.Contains(t, md, "| 1 | * | * | `Even` |\n")
}

func TestDescribe_Defaults(t *testing.T) {
	md := tui.Describe(&definition.Definition{Name: "x", States: []string{"S"}, Transitions: []definition.Rule{{To: "S"}}})

	assert.Contains(t, md, "- **Tokenizer:** runes\n")
	assert.Contains(t, md, "- **Alphabet:** any symbol\n")
	assert.Contains(t, md, "- **Accepting:** none\n")
}

func TestDescribe_Composite(t *testing.T) {
	md := tui.Describe(&definition.Definition{
		Name:    "both",
		Compose: &definition.Compose{Op: definition.OpAnd, Of: []string{"a", "b"}},
	})
	assert.Contains(t, md, "Accepts when **all** of its parts accept:\n\n- `a`\n- `b`\n")

	md = tui.Describe(&definition.Definition{
		Name:    "either",
		Compose: &definition.Compose{Op: definition.OpOr, Of: []string{"a", "b"}},
	})
	assert.Contains(t, md, "Accepts when **any** of its parts accepts:")
}

func TestNewRenderer(t *testing.T) {
	render := tui.NewRenderer()

	out, err := render("# has_hello\n\nAccepts any text.")
	require.NoError(t, err)
	assert.Contains(t, out, "has_hello")
	assert.Contains(t, out, "Accepts any text.")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_| |___/_| |_| |_|")
}
