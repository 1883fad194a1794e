package definition

import (
	"fmt"
	"iter"
	"strings"
)

// Tokenizer names the way an input string is split into symbols.
type Tokenizer string

const (
	// TokenizeRunes feeds one symbol per Unicode code point. It is the default.
	TokenizeRunes Tokenizer = "runes"
	// TokenizeFields feeds whitespace separated words.
	TokenizeFields Tokenizer = "fields"
	// TokenizeLines feeds one symbol per line, without the line terminator.
	TokenizeLines Tokenizer = "lines"
)

func (t Tokenizer) resolve() (Tokenizer, error) {
	switch t {
	case "":
		return TokenizeRunes, nil
	case TokenizeRunes, TokenizeFields, TokenizeLines:
		return t, nil
	}
	return "", fmt.Errorf("unknown tokenizer %q", string(t))
}

// Split lazily yields the symbols of input.
func (t Tokenizer) Split(input string) iter.Seq[string] {
	switch t {
	case TokenizeFields:
		return strings.FieldsSeq(input)
	case TokenizeLines:
		return func(yield func(string) bool) {
			for line := range strings.Lines(input) {
				if !yield(strings.TrimRight(line, "\r\n")) {
					return
				}
			}
		}
	default:
		return func(yield func(string) bool) {
			for _, r := range input {
				if !yield(string(r)) {
					return
				}
			}
		}
	}
}
