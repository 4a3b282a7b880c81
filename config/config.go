package config

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/ntdecl/declaration"
	"gopkg.in/yaml.v3"
)

// Config represents ntdecl sources and output settings
type Config struct {
	Binary          string `yaml:"binary"`          // ntdll image whose exports define known names
	ExportPrefix    string `yaml:"exportPrefix"`    // export prefix renamed to Nt
	Header          string `yaml:"header"`          // HOOKDEF header location
	BaseURL         string `yaml:"baseURL"`         // NTinternals site root
	TreeURL         string `yaml:"treeURL"`         // NTinternals tree script
	Output          string `yaml:"output"`          // output location, overwritten on every run
	Format          string `yaml:"format"`          // literal, json or yaml
	SkipFailedPages bool   `yaml:"skipFailedPages"` // log and skip pages that fail to download
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Binary:       `C:\Windows\SysWOW64\ntdll.dll`,
		ExportPrefix: "Zw",
		Header:       "references/hooks.h",
		BaseURL:      "http://undocumented.ntinternals.net/",
		TreeURL:      "http://undocumented.ntinternals.net/files/treearr.js",
		Output:       "declarations.out",
		Format:       declaration.FormatLiteral,
	}
}

// Load loads configuration from YAML location on top of defaults
func Load(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	ret := DefaultConfig()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config %v", URL)
	}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, errors.Wrapf(err, "failed to decode config %v", URL)
	}
	return ret, nil
}

// Init fills empty settings with defaults and resolves relative local paths
func (c *Config) Init() error {
	defaults := DefaultConfig()
	if c.Binary == "" {
		c.Binary = defaults.Binary
	}
	if c.ExportPrefix == "" {
		c.ExportPrefix = defaults.ExportPrefix
	}
	if c.Header == "" {
		c.Header = defaults.Header
	}
	if c.BaseURL == "" {
		c.BaseURL = defaults.BaseURL
	}
	if c.TreeURL == "" {
		c.TreeURL = defaults.TreeURL
	}
	if c.Output == "" {
		c.Output = defaults.Output
	}
	if c.Format == "" {
		c.Format = defaults.Format
	}
	var err error
	for _, location := range []*string{&c.Binary, &c.Header, &c.Output} {
		if *location, err = absolute(*location); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks configuration
func (c *Config) Validate() error {
	if c.Binary == "" {
		return errors.New("binary was empty")
	}
	if c.Header == "" {
		return errors.New("header was empty")
	}
	if c.BaseURL == "" || c.TreeURL == "" {
		return errors.New("baseURL and treeURL are required")
	}
	if c.Output == "" {
		return errors.New("output was empty")
	}
	if _, err := declaration.NewEmitter(c.Format); err != nil {
		return err
	}
	return nil
}

// absolute resolves relative file paths, URLs and windows drive paths are kept as is
func absolute(location string) (string, error) {
	if strings.Contains(location, "://") || isWindowsPath(location) || filepath.IsAbs(location) {
		return location, nil
	}
	return filepath.Abs(location)
}

func isWindowsPath(location string) bool {
	return len(location) > 2 && location[1] == ':' && (location[2] == '\\' || location[2] == '/')
}
