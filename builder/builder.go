package builder

import (
	"bytes"
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/ntdecl/config"
	"github.com/viant/ntdecl/declaration"
	"github.com/viant/ntdecl/inspector"
	"github.com/viant/ntdecl/merger"
)

// Builder builds the native API declaration table from the export table and both corpora
type Builder struct {
	config *config.Config
	fs     afs.Service
	logger logrus.FieldLogger
	names  inspector.NameSource
	header inspector.Inspector
	remote inspector.Inspector
}

// Result represents a completed run
type Result struct {
	Output      string
	Count       int
	Fingerprint uint64
}

// Build enumerates known names, inspects both corpora and merges them
func (b *Builder) Build(ctx context.Context) (*declaration.Table, error) {
	known, err := b.names.Enumerate(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to enumerate exports")
	}
	b.logger.WithField("names", known.Len()).Info("enumerated exports")

	local, err := b.header.Inspect(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to inspect header")
	}
	b.logger.WithField("declarations", len(local)).Info("inspected header")

	remote, err := b.remote.Inspect(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to inspect ntinternals")
	}
	b.logger.WithField("declarations", len(remote)).Info("inspected ntinternals")

	merger.Correct(local, remote)
	table := merger.Merge(known, local, remote)
	b.logger.WithFields(logrus.Fields{
		"declarations": table.Len(),
		"omitted":      known.Len() - table.Len(),
	}).Info("merged declarations")
	return table, nil
}

// Run builds the table and overwrites the configured output with its serialized form
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	emitter, err := declaration.NewEmitter(b.config.Format)
	if err != nil {
		return nil, err
	}
	table, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}
	data, err := emitter.Emit(table)
	if err != nil {
		return nil, errors.Wrap(err, "failed to emit declarations")
	}
	if err = b.fs.Upload(ctx, b.config.Output, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return nil, errors.Wrapf(err, "failed to write %v", b.config.Output)
	}
	fingerprint, err := table.Fingerprint()
	if err != nil {
		return nil, err
	}
	b.logger.WithFields(logrus.Fields{
		"output":      b.config.Output,
		"fingerprint": fingerprint,
	}).Debug("wrote declarations")
	return &Result{Output: b.config.Output, Count: table.Len(), Fingerprint: fingerprint}, nil
}

// New creates a builder, sources not supplied with options are created from the config
func New(cfg *config.Config, options ...Option) *Builder {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	ret := &Builder{config: cfg}
	for _, opt := range options {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	if ret.logger == nil {
		ret.logger = logrus.StandardLogger()
	}
	factory := inspector.NewFactory(cfg, ret.fs, ret.logger)
	if ret.names == nil {
		ret.names = factory.NameSource()
	}
	if ret.header == nil {
		ret.header = factory.Header()
	}
	if ret.remote == nil {
		ret.remote = factory.Remote()
	}
	return ret
}
