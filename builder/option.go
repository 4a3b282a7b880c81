package builder

import (
	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/ntdecl/inspector"
)

// Option represents builder option
type Option func(*Builder)

// WithFs sets file system service used for all downloads and the output upload
func WithFs(fs afs.Service) Option {
	return func(b *Builder) {
		b.fs = fs
	}
}

// WithLogger sets logger used for step and page entries
func WithLogger(logger logrus.FieldLogger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithNameSource replaces the export table enumerator
func WithNameSource(source inspector.NameSource) Option {
	return func(b *Builder) {
		b.names = source
	}
}

// WithHeader replaces the local header inspector
func WithHeader(header inspector.Inspector) Option {
	return func(b *Builder) {
		b.header = header
	}
}

// WithRemote replaces the NTinternals inspector
func WithRemote(remote inspector.Inspector) Option {
	return func(b *Builder) {
		b.remote = remote
	}
}
