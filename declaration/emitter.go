package declaration

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	FormatLiteral = "literal"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
)

// Emitter represents table serializer
type Emitter interface {
	Emit(table *Table) ([]byte, error)
}

// NewEmitter returns an emitter for the supplied format
func NewEmitter(format string) (Emitter, error) {
	switch strings.ToLower(format) {
	case "", FormatLiteral:
		return &LiteralEmitter{}, nil
	case FormatJSON:
		return &JSONEmitter{}, nil
	case FormatYAML, "yml":
		return &YAMLEmitter{}, nil
	}
	return nil, errors.Errorf("unsupported format: %s", format)
}

// LiteralEmitter renders the table as a single dictionary literal: {'NtClose': ['Handle']}
type LiteralEmitter struct{}

func (e *LiteralEmitter) Emit(table *Table) ([]byte, error) {
	builder := &bytes.Buffer{}
	builder.WriteByte('{')
	if table != nil {
		for i, declaration := range table.Declarations {
			if i > 0 {
				builder.WriteString(", ")
			}
			writeQuoted(builder, declaration.Name)
			builder.WriteString(": [")
			for j, arg := range declaration.Args {
				if j > 0 {
					builder.WriteString(", ")
				}
				writeQuoted(builder, arg)
			}
			builder.WriteByte(']')
		}
	}
	builder.WriteByte('}')
	return builder.Bytes(), nil
}

func writeQuoted(builder *bytes.Buffer, text string) {
	builder.WriteByte('\'')
	for _, r := range text {
		switch r {
		case '\\', '\'':
			builder.WriteByte('\\')
			builder.WriteRune(r)
		case '\n':
			builder.WriteString(`\n`)
		case '\t':
			builder.WriteString(`\t`)
		default:
			builder.WriteRune(r)
		}
	}
	builder.WriteByte('\'')
}

// JSONEmitter renders the table as a JSON object preserving table order
type JSONEmitter struct{}

func (e *JSONEmitter) Emit(table *Table) ([]byte, error) {
	raw := &bytes.Buffer{}
	raw.WriteByte('{')
	if table != nil {
		for i, declaration := range table.Declarations {
			if i > 0 {
				raw.WriteByte(',')
			}
			name, err := json.Marshal(declaration.Name)
			if err != nil {
				return nil, err
			}
			args := declaration.Args
			if args == nil {
				args = []string{}
			}
			values, err := json.Marshal(args)
			if err != nil {
				return nil, err
			}
			raw.Write(name)
			raw.WriteByte(':')
			raw.Write(values)
		}
	}
	raw.WriteByte('}')
	result := &bytes.Buffer{}
	if err := json.Indent(result, raw.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	result.WriteByte('\n')
	return result.Bytes(), nil
}

// YAMLEmitter renders the table as a YAML mapping preserving table order
type YAMLEmitter struct{}

func (e *YAMLEmitter) Emit(table *Table) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	if table != nil {
		for _, declaration := range table.Declarations {
			args := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
			for _, arg := range declaration.Args {
				args.Content = append(args.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: arg})
			}
			root.Content = append(root.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: declaration.Name},
				args)
		}
	}
	return yaml.Marshal(root)
}
