package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/viant/afs"
	"github.com/viant/ntdecl/builder"
	"github.com/viant/ntdecl/config"
)

const (
	flagConfig          = "config"
	flagBinary          = "binary"
	flagExportPrefix    = "export-prefix"
	flagHeader          = "header"
	flagBaseURL         = "base-url"
	flagTreeURL         = "tree-url"
	flagOutput          = "output"
	flagFormat          = "format"
	flagSkipFailedPages = "skip-failed-pages"
)

type options struct {
	configURL string
	debug     bool
	logFormat string
	values    config.Config
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "ntdecl [OPTIONS]",
		Short:         "Build the Nt function argument table from ntdll exports, Capemon hooks and NTinternals.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	installFlags(cmd.Flags(), opts)
	return cmd
}

func installFlags(flags *pflag.FlagSet, opts *options) {
	defaults := config.DefaultConfig()
	flags.StringVarP(&opts.configURL, flagConfig, "c", "", "YAML configuration location")
	flags.BoolVarP(&opts.debug, "debug", "D", false, "Enable debug logging")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")
	flags.StringVar(&opts.values.Binary, flagBinary, defaults.Binary, "ntdll image location")
	flags.StringVar(&opts.values.ExportPrefix, flagExportPrefix, defaults.ExportPrefix, "Export prefix renamed to Nt")
	flags.StringVar(&opts.values.Header, flagHeader, defaults.Header, "Capemon hooks.h location")
	flags.StringVar(&opts.values.BaseURL, flagBaseURL, defaults.BaseURL, "NTinternals base URL")
	flags.StringVar(&opts.values.TreeURL, flagTreeURL, defaults.TreeURL, "NTinternals tree script URL")
	flags.StringVarP(&opts.values.Output, flagOutput, "o", defaults.Output, "Output location")
	flags.StringVar(&opts.values.Format, flagFormat, defaults.Format, "Output format: literal, json or yaml")
	flags.BoolVar(&opts.values.SkipFailedPages, flagSkipFailedPages, false, "Skip NTinternals pages that fail to download")
}

func run(cmd *cobra.Command, opts *options) error {
	if err := configureLogger(logrus.StandardLogger(), opts); err != nil {
		return err
	}
	ctx := context.Background()
	fs := afs.New()
	cfg, err := loadConfig(ctx, fs, cmd.Flags(), opts)
	if err != nil {
		return err
	}
	result, err := builder.New(cfg, builder.WithFs(fs)).Run(ctx)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"declarations": result.Count, "fingerprint": fmt.Sprintf("%016x", result.Fingerprint)}).Info("done")
	fmt.Fprintf(cmd.OutOrStdout(), "Output written to %s\n", result.Output)
	return nil
}

func configureLogger(logger *logrus.Logger, opts *options) error {
	if opts.debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	switch opts.logFormat {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return errors.Errorf("unsupported log format: %s", opts.logFormat)
	}
	return nil
}

// loadConfig reads the optional config file, explicitly set flags take precedence over file values
func loadConfig(ctx context.Context, fs afs.Service, flags *pflag.FlagSet, opts *options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configURL != "" {
		var err error
		if cfg, err = config.Load(ctx, fs, opts.configURL); err != nil {
			return nil, err
		}
	}
	overrides := map[string]func(){
		flagBinary:          func() { cfg.Binary = opts.values.Binary },
		flagExportPrefix:    func() { cfg.ExportPrefix = opts.values.ExportPrefix },
		flagHeader:          func() { cfg.Header = opts.values.Header },
		flagBaseURL:         func() { cfg.BaseURL = opts.values.BaseURL },
		flagTreeURL:         func() { cfg.TreeURL = opts.values.TreeURL },
		flagOutput:          func() { cfg.Output = opts.values.Output },
		flagFormat:          func() { cfg.Format = opts.values.Format },
		flagSkipFailedPages: func() { cfg.SkipFailedPages = opts.values.SkipFailedPages },
	}
	for name, apply := range overrides {
		if flags.Changed(name) {
			apply()
		}
	}
	if err := cfg.Init(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
