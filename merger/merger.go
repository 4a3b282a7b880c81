package merger

import (
	"strings"

	"github.com/viant/ntdecl/declaration"
)

// correction replaces a known misspelled header declaration
type correction struct {
	name   string
	expect []string
	fixed  []string
}

var headerCorrections = []correction{
	{name: "NtLoadDriver", expect: []string{"DriverServiceNAme"}, fixed: []string{"DriverServiceName"}},
}

// Correct fixes known errors of both corpora in place
func Correct(header, remote declaration.Mapping) {
	for _, fix := range headerCorrections {
		if args, ok := header[fix.name]; ok && equal(args, fix.expect) {
			header[fix.name] = append([]string{}, fix.fixed...)
		}
	}
	for name, args := range remote {
		trimmed := make([]string, len(args))
		for i, arg := range args {
			trimmed[i] = strings.TrimSpace(arg)
		}
		remote[name] = trimmed
	}
}

// Merge resolves every known name by source priority: header first, remote second.
// Names found in neither source are omitted.
func Merge(known *declaration.NameSet, header, remote declaration.Mapping) *declaration.Table {
	table := declaration.NewTable()
	for _, name := range known.Names() {
		if args, ok := header[name]; ok {
			table.Add(&declaration.Declaration{Name: name, Args: args, Source: declaration.SourceHeader})
			continue
		}
		if args, ok := remote[name]; ok {
			table.Add(&declaration.Declaration{Name: name, Args: args, Source: declaration.SourceNtInternals})
		}
	}
	return table
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
