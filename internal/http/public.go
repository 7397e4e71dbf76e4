package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/restatolahdata/go-artikel/internal/authors"
	"github.com/restatolahdata/go-artikel/internal/content"
	"github.com/restatolahdata/go-artikel/internal/feed"
	"github.com/restatolahdata/go-artikel/internal/logging"
	"github.com/restatolahdata/go-artikel/internal/markdown"
	"github.com/restatolahdata/go-artikel/internal/redirects"
	"github.com/restatolahdata/go-artikel/internal/related"
	"github.com/restatolahdata/go-artikel/internal/routes"
	"github.com/restatolahdata/go-artikel/internal/search"
	"github.com/restatolahdata/go-artikel/pkg/interfaces"
)

const requestIDHeader = "X-Request-ID"

// AuthorDirectory is the part of authors.Directory the API reads.
type AuthorDirectory interface {
	All(ctx context.Context) ([]authors.Author, error)
	ByName(ctx context.Context, name string) (authors.Author, error)
}

// PublicAPI serves the read-only article endpoints.
type PublicAPI struct {
	content      content.Service
	search       *search.Engine
	renderer     interfaces.MarkdownRenderer
	authors      AuthorDirectory
	redirects    *redirects.Resolver
	routes       *routes.Routes
	toc          interfaces.TOCOptions
	relatedLimit int
	assetsPrefix string
	feedSite     feed.Site
	feedItems    int
	logger       interfaces.Logger
	requestID    func() string
	now          func() time.Time
}

// PublicOption mutates the PublicAPI configuration.
type PublicOption func(*PublicAPI)

// NewPublicAPI constructs a PublicAPI. WithContentService is required.
func NewPublicAPI(opts ...PublicOption) *PublicAPI {
	api := &PublicAPI{
		search:       search.NewEngine(),
		renderer:     markdown.NewRenderer(),
		routes:       routes.New("http://localhost"),
		toc:          markdown.DefaultTOCOptions,
		relatedLimit: related.DefaultLimit,
		assetsPrefix: "/posts",
		feedItems:    feed.DefaultMaxItems,
		logger:       logging.NoOp(),
		requestID:    func() string { return uuid.NewString() },
		now:          time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithContentService wires the corpus.
func WithContentService(service content.Service) PublicOption {
	return func(api *PublicAPI) {
		api.content = service
	}
}

// WithSearchEngine overrides the default search engine.
func WithSearchEngine(engine *search.Engine) PublicOption {
	return func(api *PublicAPI) {
		if engine != nil {
			api.search = engine
		}
	}
}

// WithRenderer overrides the markdown renderer used for article detail.
func WithRenderer(renderer interfaces.MarkdownRenderer) PublicOption {
	return func(api *PublicAPI) {
		if renderer != nil {
			api.renderer = renderer
		}
	}
}

// WithAuthors wires author profiles. Without it /api/authors answers [].
func WithAuthors(directory AuthorDirectory) PublicOption {
	return func(api *PublicAPI) {
		api.authors = directory
	}
}

// WithRedirects enables legacy /{slug} redirects.
func WithRedirects(resolver *redirects.Resolver) PublicOption {
	return func(api *PublicAPI) {
		api.redirects = resolver
	}
}

// WithRoutes sets the public URL builder used for canonical links.
func WithRoutes(r *routes.Routes) PublicOption {
	return func(api *PublicAPI) {
		if r != nil {
			api.routes = r
		}
	}
}

// WithTOCOptions bounds the heading levels listed in article outlines.
func WithTOCOptions(opts interfaces.TOCOptions) PublicOption {
	return func(api *PublicAPI) {
		api.toc = opts
	}
}

// WithRelatedLimit caps related articles on the detail endpoint.
func WithRelatedLimit(limit int) PublicOption {
	return func(api *PublicAPI) {
		if limit > 0 {
			api.relatedLimit = limit
		}
	}
}

// WithAssetsPrefix sets the public folder holding post images.
func WithAssetsPrefix(prefix string) PublicOption {
	return func(api *PublicAPI) {
		if prefix != "" {
			api.assetsPrefix = prefix
		}
	}
}

// WithFeed sets the channel metadata and entry cap of the RSS and Atom feeds.
func WithFeed(site feed.Site, items int) PublicOption {
	return func(api *PublicAPI) {
		api.feedSite = site
		if items > 0 {
			api.feedItems = items
		}
	}
}

// WithLogger sets the http module logger.
func WithLogger(logger interfaces.Logger) PublicOption {
	return func(api *PublicAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// WithRequestIDGenerator overrides request id generation.
func WithRequestIDGenerator(fn func() string) PublicOption {
	return func(api *PublicAPI) {
		if fn != nil {
			api.requestID = fn
		}
	}
}

// WithClock overrides the clock used for sitemap fallbacks.
func WithClock(clock func() time.Time) PublicOption {
	return func(api *PublicAPI) {
		if clock != nil {
			api.now = clock
		}
	}
}

// Register attaches the public endpoints to the provided mux.
func (api *PublicAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: public api is nil")
	}
	if api.content == nil {
		return fmt.Errorf("http: content service is required")
	}

	mux.HandleFunc("GET /api/search", api.wrap("search", api.handleSearch))
	mux.HandleFunc("GET /api/articles", api.wrap("articles.list", api.handleArticleList))
	mux.HandleFunc("GET /api/articles/{category}/{slug}", api.wrap("articles.get", api.handleArticleGet))
	mux.HandleFunc("GET /api/categories", api.wrap("categories.list", api.handleCategoryList))
	mux.HandleFunc("GET /api/authors", api.wrap("authors.list", api.handleAuthorList))
	mux.HandleFunc("GET /sitemap.xml", api.wrap("sitemap", api.handleSitemap))
	mux.HandleFunc("GET /robots.txt", api.wrap("robots", api.handleRobots))
	mux.HandleFunc("GET /rss.xml", api.wrap("feed.rss", api.handleRSS))
	mux.HandleFunc("GET /feed.xml", api.wrap("feed.rss", api.handleRSS))
	mux.HandleFunc("GET /atom.xml", api.wrap("feed.atom", api.handleAtom))
	if api.redirects != nil {
		mux.HandleFunc("GET /{slug}", api.wrap("legacy.redirect", api.handleLegacyRedirect))
	}
	return nil
}

type requestScope struct {
	id     string
	logger interfaces.Logger
}

type scopedHandler func(w http.ResponseWriter, r *http.Request, scope requestScope)

// wrap tags every request with an id echoed in X-Request-ID and logged with
// each entry the handler writes.
func (api *PublicAPI) wrap(route string, fn scopedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = api.requestID()
		}
		w.Header().Set(requestIDHeader, id)

		fields := map[string]any{"request_id": id, "route": route}
		ctx := logging.ContextWithFields(r.Context(), fields)
		logger := logging.WithFields(api.logger, logging.ContextFields(ctx))

		started := api.now()
		fn(w, r.WithContext(ctx), requestScope{id: id, logger: logger})
		logger.Debug("http.request.completed", "path", r.URL.Path, "duration", api.now().Sub(started))
	}
}
