package treearr

import (
	"strings"

	"github.com/viant/ntdecl/declaration"
)

// Kind represents node kind
type Kind int

const (
	String Kind = iota
	List
)

// nullValue replaces null entries of the tree script
const nullValue = "0"

// Node represents an element of the link tree: either a string or a nested list
type Node struct {
	Kind  Kind
	Value string
	Items []*Node
}

// Targets returns link targets that follow Nt prefixed labels, depth first
func (n *Node) Targets() []string {
	var result []string
	n.collect(&result)
	return result
}

func (n *Node) collect(result *[]string) {
	if n == nil || n.Kind != List {
		return
	}
	for i, item := range n.Items {
		switch item.Kind {
		case List:
			item.collect(result)
		case String:
			if !strings.HasPrefix(item.Value, declaration.Prefix) || i+1 >= len(n.Items) {
				continue
			}
			if next := n.Items[i+1]; next.Kind == String {
				*result = append(*result, next.Value)
			}
		}
	}
}

// NewString creates a string node
func NewString(value string) *Node {
	return &Node{Kind: String, Value: value}
}

// NewList creates a list node
func NewList(items ...*Node) *Node {
	return &Node{Kind: List, Items: items}
}
