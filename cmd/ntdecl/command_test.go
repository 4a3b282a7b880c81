package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

func TestLoadConfig(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	location := "mem://localhost/cmd/ntdecl.yaml"
	content := "binary: mem://localhost/cmd/ntdll.dll\nformat: yaml\noutput: mem://localhost/cmd/out.yaml\n"
	if !assert.NoError(t, fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader([]byte(content)))) {
		return
	}

	tests := []struct {
		name         string
		args         []string
		expectFormat string
		expectBinary string
		expectSkip   bool
		wantErr      bool
	}{
		{
			name:         "file values",
			args:         []string{"--config", location},
			expectFormat: "yaml",
			expectBinary: "mem://localhost/cmd/ntdll.dll",
		},
		{
			name:         "flags override file",
			args:         []string{"--config", location, "--format", "json", "--skip-failed-pages"},
			expectFormat: "json",
			expectBinary: "mem://localhost/cmd/ntdll.dll",
			expectSkip:   true,
		},
		{
			name:         "flags only",
			args:         []string{"--binary", "mem://localhost/cmd/other.dll", "--output", "mem://localhost/cmd/out"},
			expectFormat: "literal",
			expectBinary: "mem://localhost/cmd/other.dll",
		},
		{
			name:    "invalid format",
			args:    []string{"--format", "xml"},
			wantErr: true,
		},
		{
			name:    "missing config",
			args:    []string{"--config", "mem://localhost/cmd/missing.yaml"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			flags := pflag.NewFlagSet("ntdecl", pflag.ContinueOnError)
			opts := &options{}
			installFlags(flags, opts)
			if !assert.NoError(t, flags.Parse(tc.args)) {
				return
			}
			cfg, err := loadConfig(ctx, fs, flags, opts)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, tc.expectFormat, cfg.Format)
			assert.Equal(t, tc.expectBinary, cfg.Binary)
			assert.Equal(t, tc.expectSkip, cfg.SkipFailedPages)
		})
	}
}

func TestConfigureLogger(t *testing.T) {
	logger := logrus.New()
	assert.NoError(t, configureLogger(logger, &options{debug: true, logFormat: "json"}))
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	assert.Error(t, configureLogger(logger, &options{logFormat: "xml"}))
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"unexpected"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
