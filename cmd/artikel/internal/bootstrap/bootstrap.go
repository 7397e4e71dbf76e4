// Package bootstrap builds the artikel module for the command line tools.
package bootstrap

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/restatolahdata/go-artikel"
	contentcmd "github.com/restatolahdata/go-artikel/internal/commands/content"
	"github.com/restatolahdata/go-artikel/internal/logging/console"
	"github.com/restatolahdata/go-artikel/pkg/interfaces"
)

// Options are the command line overrides applied on top of the config file.
type Options struct {
	ConfigPath string
	ContentDir string
	AuthorsDir string
	BaseURL    string
	Addr       string
	Watch      *bool
	LogLevel   string
	// LogWriter receives console log lines. Defaults to stderr so command
	// output on stdout stays clean.
	LogWriter      io.Writer
	LoggerProvider interfaces.LoggerProvider
	ReportSink     func(contentcmd.Report)
}

// BuildModule loads the configuration, applies opts and constructs the module.
func BuildModule(opts Options) (*artikel.Module, error) {
	cfg, err := artikel.LoadConfig(strings.TrimSpace(opts.ConfigPath))
	if err != nil {
		return nil, err
	}

	if dir := strings.TrimSpace(opts.ContentDir); dir != "" {
		cfg.Content.Dir = dir
	}
	if dir := strings.TrimSpace(opts.AuthorsDir); dir != "" {
		cfg.Content.AuthorsDir = dir
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.Site.BaseURL = base
	}
	if addr := strings.TrimSpace(opts.Addr); addr != "" {
		cfg.HTTP.Addr = addr
	}
	if opts.Watch != nil {
		cfg.Content.Watch = *opts.Watch
		if cfg.Content.Watch {
			cfg.Content.SnapshotCache = true
		}
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}

	diOpts := []artikel.Option{}
	switch {
	case opts.LoggerProvider != nil:
		diOpts = append(diOpts, artikel.WithLoggerProvider(opts.LoggerProvider))
	case !strings.EqualFold(strings.TrimSpace(cfg.Logging.Provider), "gologger"):
		writer := opts.LogWriter
		if writer == nil {
			writer = os.Stderr
		}
		level := console.ParseLevel(cfg.Logging.Level)
		diOpts = append(diOpts, artikel.WithLoggerProvider(console.NewProvider(console.Options{
			Writer:   writer,
			MinLevel: &level,
		})))
	}
	if opts.ReportSink != nil {
		diOpts = append(diOpts, artikel.WithReportSink(opts.ReportSink))
	}

	module, err := artikel.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise artikel module: %w", err)
	}
	return module, nil
}
