package export

import (
	"bytes"
	"context"
	"sort"
	"strings"

	"github.com/Binject/debug/pe"
	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/ntdecl/declaration"
)

// DefaultPrefix is the gate prefix of ntdll syscall stubs
const DefaultPrefix = "Zw"

// Enumerator discovers native API names from a PE export table
type Enumerator struct {
	location string
	prefix   string
	fs       afs.Service
}

// Option represents enumerator option
type Option func(e *Enumerator)

// WithPrefix sets export name prefix that is renamed to Nt
func WithPrefix(prefix string) Option {
	return func(e *Enumerator) {
		if prefix != "" {
			e.prefix = prefix
		}
	}
}

// WithFs sets file system service
func WithFs(fs afs.Service) Option {
	return func(e *Enumerator) {
		e.fs = fs
	}
}

// Enumerate reads the binary export directory and returns known names ordered by export address
func (e *Enumerator) Enumerate(ctx context.Context) (*declaration.NameSet, error) {
	data, err := e.fs.DownloadWithURL(ctx, e.location)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read binary %v", e.location)
	}
	file, err := pe.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse PE file %v", e.location)
	}
	defer file.Close()
	exports, err := file.Exports()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read exports of %v", e.location)
	}
	return KnownNames(exports, e.prefix), nil
}

// KnownNames selects exports with prefix, renames them to Nt and orders them by address
func KnownNames(exports []pe.Export, prefix string) *declaration.NameSet {
	addresses := map[string]uint32{}
	for _, export := range exports {
		if export.Name == "" || !strings.HasPrefix(export.Name, prefix) {
			continue
		}
		name := declaration.Prefix + export.Name[len(prefix):]
		addresses[name] = export.VirtualAddress
	}
	names := make([]string, 0, len(addresses))
	for name := range addresses {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if addresses[names[i]] == addresses[names[j]] {
			return names[i] < names[j]
		}
		return addresses[names[i]] < addresses[names[j]]
	})
	return declaration.NewNameSet(names...)
}

// New creates an export enumerator for the binary location
func New(location string, options ...Option) *Enumerator {
	ret := &Enumerator{location: location, prefix: DefaultPrefix}
	for _, opt := range options {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}
