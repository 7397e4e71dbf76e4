package di_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	repocache "github.com/goliatone/go-repository-cache/cache"

	contentcmd "github.com/restatolahdata/go-artikel/internal/commands/content"
	"github.com/restatolahdata/go-artikel/internal/di"
	"github.com/restatolahdata/go-artikel/internal/runtimeconfig"
)

func corpusFS() fstest.MapFS {
	return fstest.MapFS{
		"metode-statistik/uji-t/index.mdx": {Data: []byte("---\ntitle: \"Uji T\"\ndate: \"2024-03-01\"\nauthor: \"Tim Restat\"\n---\n# Pendahuluan\n")},
		"metode-statistik/anova/index.mdx": {Data: []byte("---\ntitle: \"Anova\"\ndate: \"2024-02-01\"\n---\nIsi.\n")},
	}
}

func authorsFS() fstest.MapFS {
	return fstest.MapFS{
		"tim-restat.json": {Data: []byte(`{"name":"Tim Restat","slug":"tim-restat"}`)},
	}
}

func TestNewContainerWiresServices(t *testing.T) {
	rec := newRecordingProvider()
	cfg := runtimeconfig.DefaultConfig()

	c, err := di.NewContainer(cfg,
		di.WithLoggerProvider(rec),
		di.WithContentFS(corpusFS()),
		di.WithAuthorsFS(authorsFS()),
	)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	posts, err := c.ContentService().LoadAllPosts(context.Background())
	if err != nil {
		t.Fatalf("LoadAllPosts: %v", err)
	}
	if len(posts) != 2 || posts[0].Slug != "uji-t" {
		t.Fatalf("unexpected posts %+v", posts)
	}
	if c.Watcher() != nil {
		t.Fatalf("watcher must stay off for in-memory content")
	}
	if c.Authors() == nil {
		t.Fatalf("expected authors directory")
	}

	entry := rec.find("container.configured")
	if entry == nil {
		t.Fatalf("expected container.configured entry, got %#v", rec.entries)
	}
	if got := entry.fields["module"]; got != "artikel.di" {
		t.Fatalf("expected module artikel.di, got %v", got)
	}
}

func TestContainerHandlerServesArticles(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	c, err := di.NewContainer(cfg,
		di.WithLoggerProvider(newRecordingProvider()),
		di.WithContentFS(corpusFS()),
		di.WithAuthorsFS(authorsFS()),
	)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	handler, err := c.Handler()
	if err != nil {
		t.Fatalf("Handler: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles/metode-statistik/uji-t", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Canonical     string `json:"canonical"`
		AuthorProfile *struct {
			Slug string `json:"slug"`
		} `json:"authorProfile"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Canonical != "https://restatolahdata.id/artikel/metode-statistik/uji-t" {
		t.Fatalf("unexpected canonical %q", payload.Canonical)
	}
	if payload.AuthorProfile == nil || payload.AuthorProfile.Slug != "tim-restat" {
		t.Fatalf("expected author profile, got %+v", payload.AuthorProfile)
	}
}

func TestNewContainerSnapshotCache(t *testing.T) {
	ctx := context.Background()
	shared, err := repocache.NewCacheService(repocache.DefaultConfig())
	if err != nil {
		t.Fatalf("NewCacheService: %v", err)
	}

	c, err := di.NewContainer(runtimeconfig.DefaultConfig(),
		di.WithContentFS(corpusFS()),
		di.WithCache(shared),
	)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if c.CacheService() != shared {
		t.Fatalf("expected the injected cache service")
	}
	if _, err := c.ContentService().LoadAllPosts(ctx); err != nil {
		t.Fatalf("LoadAllPosts: %v", err)
	}
	if err := c.ContentService().Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	defaults, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithContentFS(corpusFS()))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if defaults.CacheService() == nil {
		t.Fatalf("expected a default cache service when the snapshot cache is on")
	}

	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.SnapshotCache = false
	cfg.Content.Watch = false
	disabled, err := di.NewContainer(cfg, di.WithContentFS(corpusFS()), di.WithCache(shared))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if disabled.CacheService() != nil {
		t.Fatalf("expected no cache service with the snapshot cache off")
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.Dir = ""
	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrContentDirRequired) {
		t.Fatalf("expected ErrContentDirRequired, got %v", err)
	}
}

func TestNewContainerBuildsWatcher(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.Dir = t.TempDir()
	cfg.Content.Watch = true

	c, err := di.NewContainer(cfg, di.WithLoggerProvider(newRecordingProvider()))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if c.Watcher() == nil {
		t.Fatalf("expected watcher when watching is enabled")
	}
}

func TestNewContainerRegistersCommands(t *testing.T) {
	reg := &recordingRegistry{}
	var reports []contentcmd.Report

	c, err := di.NewContainer(runtimeconfig.DefaultConfig(),
		di.WithLoggerProvider(newRecordingProvider()),
		di.WithContentFS(corpusFS()),
		di.WithCommandRegistry(reg),
		di.WithReportSink(func(r contentcmd.Report) { reports = append(reports, r) }),
	)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if len(reg.handlers) != 2 {
		t.Fatalf("expected 2 registered handlers, got %d", len(reg.handlers))
	}

	if err := c.ContentCommands().Validate.Execute(context.Background(), contentcmd.ValidateContentCommand{Strict: true}); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(reports) != 1 || reports[0].Content.Posts != 2 {
		t.Fatalf("unexpected reports %+v", reports)
	}
}

func TestNewContainerGoLoggerProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "json"

	c, err := di.NewContainer(cfg, di.WithContentFS(corpusFS()))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if c.LoggerProvider() == nil {
		t.Fatalf("expected logger provider")
	}
}

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}
