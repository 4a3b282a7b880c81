package declaration

import (
	"sort"
	"strings"
)

// Prefix is the naming convention shared by every native API function
const Prefix = "Nt"

// Source identifies the corpus a declaration was taken from
type Source string

const (
	SourceHeader      Source = "header"
	SourceNtInternals Source = "ntinternals"
)

// Declaration represents a native API function with its ordered argument names
type Declaration struct {
	Name   string   // Function name, always Nt prefixed
	Args   []string // Argument names in call-site order
	Source Source   // Corpus the arguments were taken from
}

// IsNative returns true if name follows the native API naming convention
func IsNative(name string) bool {
	return strings.HasPrefix(name, Prefix)
}

// Mapping maps function names to their ordered argument names
type Mapping map[string][]string

// Has returns true if mapping contains name
func (m Mapping) Has(name string) bool {
	_, ok := m[name]
	return ok
}

// Names returns mapping keys sorted alphabetically
func (m Mapping) Names() []string {
	result := make([]string, 0, len(m))
	for name := range m {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// NameSet represents insertion ordered set of function names
type NameSet struct {
	names []string
	index map[string]int
}

// Add adds name to the set, it returns false if name was already present
func (s *NameSet) Add(name string) bool {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[name]; ok {
		return false
	}
	s.index[name] = len(s.names)
	s.names = append(s.names, name)
	return true
}

// Has returns true if set contains name
func (s *NameSet) Has(name string) bool {
	if s == nil || s.index == nil {
		return false
	}
	_, ok := s.index[name]
	return ok
}

// Names returns set names in insertion order
func (s *NameSet) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s.names...)
}

// Len returns set size
func (s *NameSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// NewNameSet creates a name set
func NewNameSet(names ...string) *NameSet {
	ret := &NameSet{index: make(map[string]int, len(names))}
	for _, name := range names {
		ret.Add(name)
	}
	return ret
}

// Table represents the merged, ordered declaration table
type Table struct {
	Declarations []*Declaration
	index        map[string]int
}

// Add adds or replaces a declaration
func (t *Table) Add(declaration *Declaration) {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if idx, ok := t.index[declaration.Name]; ok {
		t.Declarations[idx] = declaration
		return
	}
	t.index[declaration.Name] = len(t.Declarations)
	t.Declarations = append(t.Declarations, declaration)
}

// Lookup returns a declaration by name or nil
func (t *Table) Lookup(name string) *Declaration {
	if t == nil || t.index == nil {
		return nil
	}
	if idx, ok := t.index[name]; ok {
		return t.Declarations[idx]
	}
	return nil
}

// Len returns number of declarations
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Declarations)
}

// Mapping returns table as unordered mapping
func (t *Table) Mapping() Mapping {
	result := make(Mapping, t.Len())
	if t == nil {
		return result
	}
	for _, declaration := range t.Declarations {
		result[declaration.Name] = declaration.Args
	}
	return result
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}
