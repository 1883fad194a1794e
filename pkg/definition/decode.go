package definition

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/aretw0/fsm/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of a definition document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	}
	return "", false
}

// Load reads and decodes a definition file.
func Load(path string) (*Definition, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported file extension %q", domain.ErrInvalidDefinition, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open definition: %w", err)
	}
	defer f.Close()

	def, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Decode reads one definition document.
func Decode(r io.Reader, format Format) (*Definition, error) {
	var raw map[string]any

	switch format {
	case FormatYAML:
		var doc yaml.Node
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidDefinition)
			}
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDefinition, err)
		}
		m, ok := literal(&doc).(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: document is not a mapping", domain.ErrInvalidDefinition)
		}
		raw = m
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDefinition, err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown format %q", domain.ErrInvalidDefinition, string(format))
	}

	return FromMap(raw)
}

// literal converts a YAML node tree to maps and lists whose scalars keep their
// source text, so symbols such as true, 1.0 or 0x1 are not reinterpreted.
func literal(n *yaml.Node) any {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return literal(n.Content[0])
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			m[n.Content[i].Value] = literal(n.Content[i+1])
		}
		return m
	case yaml.SequenceNode:
		list := make([]any, len(n.Content))
		for i, item := range n.Content {
			list[i] = literal(item)
		}
		return list
	case yaml.AliasNode:
		return literal(n.Alias)
	}
	if n.ShortTag() == "!!null" {
		return nil
	}
	return n.Value
}

// scalarText formats bools and floats bound for string fields the way they
// are written, instead of mapstructure's weak "1"/"0" rendering.
func scalarText(_ reflect.Kind, to reflect.Kind, data any) (any, error) {
	if to != reflect.String {
		return data, nil
	}
	switch v := data.(type) {
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	}
	return data, nil
}

// FromMap decodes a generic document into a Definition.
// Scalars are weakly typed (a single value becomes a one element list,
// numbers and booleans become their text); unknown keys are rejected.
func FromMap(raw map[string]any) (*Definition, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidDefinition)
	}

	var def Definition
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &def,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.DecodeHookFuncKind(scalarText),
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDefinition, err)
	}
	return &def, nil
}
