package inspector

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/ntdecl/config"
	"github.com/viant/ntdecl/declaration"
	"github.com/viant/ntdecl/inspector/export"
	"github.com/viant/ntdecl/inspector/header"
	"github.com/viant/ntdecl/inspector/ntinternals"
)

// Inspector extracts native API declarations from a corpus
type Inspector interface {
	// Inspect returns function names mapped to ordered argument names
	Inspect(ctx context.Context) (declaration.Mapping, error)
}

// NameSource provides known native API names
type NameSource interface {
	// Enumerate returns known names in syscall order
	Enumerate(ctx context.Context) (*declaration.NameSet, error)
}

// Factory creates inspectors for configured sources
type Factory struct {
	config *config.Config
	fs     afs.Service
	logger logrus.FieldLogger
}

// NewFactory creates a new inspector factory with the given config
func NewFactory(cfg *config.Config, fs afs.Service, logger logrus.FieldLogger) *Factory {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if fs == nil {
		fs = afs.New()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Factory{config: cfg, fs: fs, logger: logger}
}

// NameSource returns export table enumerator
func (f *Factory) NameSource() NameSource {
	return export.New(f.config.Binary, export.WithFs(f.fs), export.WithPrefix(f.config.ExportPrefix))
}

// Header returns HOOKDEF header inspector
func (f *Factory) Header() Inspector {
	return header.NewInspector(f.config.Header, header.WithFs(f.fs))
}

// Remote returns NTinternals site inspector
func (f *Factory) Remote() Inspector {
	return ntinternals.NewInspector(f.config.BaseURL,
		ntinternals.WithFs(f.fs),
		ntinternals.WithTreeURL(f.config.TreeURL),
		ntinternals.WithSkipFailed(f.config.SkipFailedPages),
		ntinternals.WithLogger(f.logger))
}
