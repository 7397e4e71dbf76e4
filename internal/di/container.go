// Package di wires the article services from a runtime configuration.
package di

import (
	"context"
	"fmt"
	"io/fs"
	nethttp "net/http"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"

	"github.com/restatolahdata/go-artikel/internal/authors"
	contentcmd "github.com/restatolahdata/go-artikel/internal/commands/content"
	"github.com/restatolahdata/go-artikel/internal/content"
	"github.com/restatolahdata/go-artikel/internal/feed"
	apihttp "github.com/restatolahdata/go-artikel/internal/http"
	"github.com/restatolahdata/go-artikel/internal/logging"
	"github.com/restatolahdata/go-artikel/internal/logging/console"
	"github.com/restatolahdata/go-artikel/internal/logging/gologger"
	"github.com/restatolahdata/go-artikel/internal/markdown"
	"github.com/restatolahdata/go-artikel/internal/redirects"
	"github.com/restatolahdata/go-artikel/internal/routes"
	"github.com/restatolahdata/go-artikel/internal/runtimeconfig"
	"github.com/restatolahdata/go-artikel/internal/search"
	"github.com/restatolahdata/go-artikel/pkg/interfaces"
)

// Container holds every service built from one configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	cacheService   repocache.CacheService
	contentFS      fs.FS
	authorsFS      fs.FS
	registry       contentcmd.CommandRegistry
	reportSink     func(contentcmd.Report)

	contentSvc content.Service
	searchEng  *search.Engine
	renderer   *markdown.Renderer
	authorsDir *authors.Directory
	routes     *routes.Routes
	redirects  *redirects.Resolver
	commands   *contentcmd.HandlerSet
	watcher    *content.Watcher
	publicAPI  *apihttp.PublicAPI
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithCache overrides the snapshot cache service. It is used only when the
// content snapshot cache is enabled.
func WithCache(service repocache.CacheService) Option {
	return func(c *Container) {
		if service != nil {
			c.cacheService = service
		}
	}
}

// WithContentFS reads articles from fsys instead of the configured
// directory. Watching is disabled for such filesystems.
func WithContentFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.contentFS = fsys
	}
}

// WithAuthorsFS reads author profiles from fsys instead of the configured
// directory.
func WithAuthorsFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.authorsFS = fsys
	}
}

// WithCommandRegistry registers the content command handlers with reg.
func WithCommandRegistry(reg contentcmd.CommandRegistry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// WithReportSink receives every report produced by the validate command.
func WithReportSink(sink func(contentcmd.Report)) Option {
	return func(c *Container) {
		c.reportSink = sink
	}
}

// NewContainer validates cfg and builds the services.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if err := c.configureContent(); err != nil {
		return nil, err
	}
	if err := c.configureAuthors(); err != nil {
		return nil, err
	}
	if err := c.configureCommands(); err != nil {
		return nil, err
	}
	c.configureWatcher()
	c.configurePublicAPI()

	logging.ModuleLogger(c.loggerProvider, "artikel.di").Info("container.configured",
		"content_dir", cfg.Content.Dir,
		"snapshot_cache", cfg.Content.SnapshotCache,
		"watch", c.watcher != nil,
		"authors", c.authorsDir != nil,
		"redirects", len(cfg.Redirects),
	)
	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}
	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: logging: %w", err)
		}
		c.loggerProvider = provider
	default:
		level := console.ParseLevel(logCfg.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
	}
	return nil
}

func (c *Container) configureContent() error {
	cfg := c.Config
	contentLogger := logging.ContentLogger(c.loggerProvider)

	loaderOpts := []content.LoaderOption{
		content.WithDocumentName(cfg.Content.DocumentName),
		content.WithLoaderLogger(contentLogger),
	}
	var loader *content.Loader
	if c.contentFS != nil {
		loader = content.NewLoader(c.contentFS, loaderOpts...)
	} else {
		loader = content.NewDirLoader(cfg.Content.Dir, loaderOpts...)
	}

	serviceOpts := []content.ServiceOption{content.WithLogger(contentLogger)}
	if cfg.Content.SnapshotCache {
		if c.cacheService == nil {
			service, err := repocache.NewCacheService(repocache.DefaultConfig())
			if err != nil {
				return fmt.Errorf("di: snapshot cache: %w", err)
			}
			c.cacheService = service
		}
		serviceOpts = append(serviceOpts, content.WithSnapshotCache(c.cacheService))
		if cfg.Content.Watch && c.contentFS == nil {
			serviceOpts = append(serviceOpts, content.WithWatchedSnapshots())
		}
	} else {
		c.cacheService = nil
	}
	c.contentSvc = content.NewService(loader, serviceOpts...)

	c.searchEng = search.NewEngine(
		search.WithLimit(cfg.Search.Limit),
		search.WithLogger(logging.SearchLogger(c.loggerProvider)),
	)
	c.renderer = markdown.NewRenderer()

	c.routes = routes.New(cfg.Site.BaseURL)
	if _, err := c.routes.Listing(); err != nil {
		return fmt.Errorf("di: routes: %w", err)
	}
	c.redirects = redirects.New(cfg.Redirects, c.contentSvc, c.routes)
	return nil
}

func (c *Container) configureAuthors() error {
	logger := authors.WithLogger(logging.ModuleLogger(c.loggerProvider, "artikel.authors"))

	var (
		directory *authors.Directory
		err       error
	)
	switch dir := strings.TrimSpace(c.Config.Content.AuthorsDir); {
	case c.authorsFS != nil:
		directory, err = authors.NewDirectory(c.authorsFS, logger)
	case dir != "":
		directory, err = authors.NewDirDirectory(dir, logger)
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("di: authors: %w", err)
	}
	c.authorsDir = directory
	return nil
}

func (c *Container) configureCommands() error {
	opts := []contentcmd.Option{contentcmd.WithRedirectValidator(c.redirects)}
	if c.reportSink != nil {
		opts = append(opts, contentcmd.WithReportSink(c.reportSink))
	}
	set, err := contentcmd.RegisterContentCommands(c.registry, c.contentSvc, c.loggerProvider, opts...)
	if err != nil {
		return fmt.Errorf("di: commands: %w", err)
	}
	c.commands = set
	return nil
}

func (c *Container) configureWatcher() {
	cfg := c.Config.Content
	if !cfg.Watch || c.contentFS != nil {
		return
	}
	refresh := c.commands.Refresh
	c.watcher = content.NewWatcher(cfg.Dir,
		func(ctx context.Context) error {
			return refresh.Execute(ctx, contentcmd.RefreshContentCommand{Reason: contentcmd.ReasonWatcher})
		},
		content.WithDebounce(cfg.WatchDebounce),
		content.WithWatcherLogger(logging.ContentLogger(c.loggerProvider)),
	)
}

func (c *Container) configurePublicAPI() {
	cfg := c.Config
	opts := []apihttp.PublicOption{
		apihttp.WithContentService(c.contentSvc),
		apihttp.WithSearchEngine(c.searchEng),
		apihttp.WithRenderer(c.renderer),
		apihttp.WithRedirects(c.redirects),
		apihttp.WithRoutes(c.routes),
		apihttp.WithTOCOptions(markdown.TOCOptionsFor(cfg.TOC.MinLevel, cfg.TOC.MaxLevel)),
		apihttp.WithRelatedLimit(cfg.Related.Limit),
		apihttp.WithAssetsPrefix(cfg.Site.AssetsPrefix),
		apihttp.WithFeed(feed.Site{
			Title:       cfg.Site.Title,
			Description: cfg.Site.Description,
			BaseURL:     cfg.Site.BaseURL,
		}, cfg.Site.FeedItems),
		apihttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
	}
	if c.authorsDir != nil {
		opts = append(opts, apihttp.WithAuthors(c.authorsDir))
	}
	c.publicAPI = apihttp.NewPublicAPI(opts...)
}

// LoggerProvider returns the provider every module logger comes from.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// CacheService returns the snapshot cache, nil when disabled.
func (c *Container) CacheService() repocache.CacheService {
	return c.cacheService
}

func (c *Container) ContentService() content.Service {
	return c.contentSvc
}

func (c *Container) SearchEngine() *search.Engine {
	return c.searchEng
}

func (c *Container) Renderer() *markdown.Renderer {
	return c.renderer
}

// Authors returns nil when no authors directory is configured.
func (c *Container) Authors() *authors.Directory {
	return c.authorsDir
}

func (c *Container) Routes() *routes.Routes {
	return c.routes
}

func (c *Container) Redirects() *redirects.Resolver {
	return c.redirects
}

func (c *Container) ContentCommands() *contentcmd.HandlerSet {
	return c.commands
}

// Watcher returns nil unless content watching is enabled.
func (c *Container) Watcher() *content.Watcher {
	return c.watcher
}

func (c *Container) PublicAPI() *apihttp.PublicAPI {
	return c.publicAPI
}

// Handler returns a mux serving the public API.
func (c *Container) Handler() (nethttp.Handler, error) {
	mux := nethttp.NewServeMux()
	if err := c.publicAPI.Register(mux); err != nil {
		return nil, err
	}
	return mux, nil
}
