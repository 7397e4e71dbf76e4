// Package artikel serves a statistics article library stored as markdown
// folders on disk: loading, rendering, outlines, search and related reading.
package artikel

import (
	"net/http"

	"github.com/restatolahdata/go-artikel/internal/authors"
	contentcmd "github.com/restatolahdata/go-artikel/internal/commands/content"
	"github.com/restatolahdata/go-artikel/internal/content"
	"github.com/restatolahdata/go-artikel/internal/di"
	"github.com/restatolahdata/go-artikel/internal/markdown"
	"github.com/restatolahdata/go-artikel/internal/redirects"
	"github.com/restatolahdata/go-artikel/internal/routes"
	"github.com/restatolahdata/go-artikel/internal/search"
	"github.com/restatolahdata/go-artikel/pkg/interfaces"
)

// ContentService exports the content service contract.
type ContentService = content.Service

// Post exports the parsed article type.
type Post = content.Post

// SearchEngine exports the relevance engine.
type SearchEngine = *search.Engine

// Renderer exports the markdown renderer.
type Renderer = *markdown.Renderer

// ValidationReport exports the outcome of the validate command.
type ValidationReport = contentcmd.Report

// Option customises module wiring.
type Option = di.Option

var (
	WithLoggerProvider  = di.WithLoggerProvider
	WithCache           = di.WithCache
	WithContentFS       = di.WithContentFS
	WithAuthorsFS       = di.WithAuthorsFS
	WithCommandRegistry = di.WithCommandRegistry
	WithReportSink      = di.WithReportSink
)

// Module is the top level runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Config returns the validated configuration the module was built with.
func (m *Module) Config() Config {
	return m.container.Config
}

func (m *Module) Logger() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}

// Content returns the article store.
func (m *Module) Content() ContentService {
	return m.container.ContentService()
}

func (m *Module) Search() SearchEngine {
	return m.container.SearchEngine()
}

func (m *Module) Renderer() Renderer {
	return m.container.Renderer()
}

// Authors returns nil when no author profiles are configured.
func (m *Module) Authors() *authors.Directory {
	return m.container.Authors()
}

func (m *Module) Routes() *routes.Routes {
	return m.container.Routes()
}

func (m *Module) Redirects() *redirects.Resolver {
	return m.container.Redirects()
}

// Commands returns the content validate and refresh handlers.
func (m *Module) Commands() *contentcmd.HandlerSet {
	return m.container.ContentCommands()
}

// Watcher returns nil unless content watching is enabled.
func (m *Module) Watcher() *content.Watcher {
	return m.container.Watcher()
}

// Handler returns the public HTTP API.
func (m *Module) Handler() (http.Handler, error) {
	return m.container.Handler()
}
