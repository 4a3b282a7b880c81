package treearr

import (
	"bytes"
	"context"
	"strings"

	"github.com/pkg/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// Extract returns array literal text: from the first '[' up to the first ';'
func Extract(script []byte) ([]byte, error) {
	start := bytes.IndexByte(script, '[')
	if start == -1 {
		return nil, errors.New("array literal not found")
	}
	end := bytes.IndexByte(script, ';')
	if end == -1 {
		end = len(script)
	}
	if end < start {
		return nil, errors.Errorf("array literal not found: terminator at %d precedes start at %d", end, start)
	}
	return script[start:end], nil
}

// Parse parses a tree script and returns the root list
func Parse(ctx context.Context, script []byte) (*Node, error) {
	literal, err := Extract(script)
	if err != nil {
		return nil, err
	}
	return ParseLiteral(ctx, literal)
}

// ParseLiteral parses array literal made of strings, nulls and nested arrays
func ParseLiteral(ctx context.Context, literal []byte) (*Node, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, literal)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse array literal")
	}
	root := tree.RootNode()
	if root.HasError() {
		return nil, errors.New("malformed array literal")
	}
	array := findArray(root)
	if array == nil {
		return nil, errors.New("array literal not found")
	}
	return convert(array, literal), nil
}

func findArray(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	if node.Type() == "array" {
		return node
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if found := findArray(node.NamedChild(i)); found != nil {
			return found
		}
	}
	return nil
}

func convert(node *sitter.Node, src []byte) *Node {
	switch node.Type() {
	case "array":
		list := NewList()
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			if child.Type() == "comment" {
				continue
			}
			list.Items = append(list.Items, convert(child, src))
		}
		return list
	case "string":
		return NewString(unquote(node.Content(src)))
	case "null":
		return NewString(nullValue)
	}
	return NewString(node.Content(src))
}

func unquote(text string) string {
	if len(text) < 2 {
		return text
	}
	text = text[1 : len(text)-1]
	if !strings.Contains(text, `\`) {
		return text
	}
	builder := strings.Builder{}
	escaped := false
	for _, r := range text {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		if escaped {
			escaped = false
			switch r {
			case 'n':
				r = '\n'
			case 't':
				r = '\t'
			case 'r':
				r = '\r'
			}
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
