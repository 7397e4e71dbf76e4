package content

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync/atomic"

	repocache "github.com/goliatone/go-repository-cache/cache"

	"github.com/restatolahdata/go-artikel/internal/logging"
	"github.com/restatolahdata/go-artikel/pkg/interfaces"
)

// Service answers every read of the article corpus.
type Service interface {
	LoadAllPosts(ctx context.Context) ([]Post, error)
	GetPostBySlug(ctx context.Context, category, slug string) (Post, error)
	GetPostBySlugOnly(ctx context.Context, slug string) (Post, error)
	GetPostsByCategory(ctx context.Context, category string) ([]Post, error)
	GetFeaturedPosts(ctx context.Context) ([]Post, error)
	GetAllCategories(ctx context.Context) ([]string, error)
	Validate(ctx context.Context) (ValidationReport, error)
	Refresh(ctx context.Context) error
}

// snapshotPrefix namespaces every snapshot key. Keys carry the refresh
// generation and the content fingerprint.
const snapshotPrefix = "artikel.content.snapshot:"

// watchedFingerprint stands in for the fingerprint when the watcher owns
// invalidation and the tree is not rescanned per read.
const watchedFingerprint = "watched"

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithSnapshotCache keeps the parsed corpus in cache between calls. The
// snapshot is reused only while the content fingerprint is unchanged.
func WithSnapshotCache(cache repocache.CacheService) ServiceOption {
	return func(s *service) {
		if cache != nil {
			s.cache = cache
		}
	}
}

// WithWatchedSnapshots skips the fingerprint scan while a snapshot is
// cached. Use it only when a Watcher calls Refresh on every change.
func WithWatchedSnapshots() ServiceOption {
	return func(s *service) {
		s.watched = true
	}
}

// WithLogger sets the content module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	loader  *Loader
	cache   repocache.CacheService
	watched bool
	logger  interfaces.Logger

	// generation is bumped by Refresh. A load that started under an older
	// generation stores its snapshot under a key no reader asks for again.
	generation atomic.Uint64
}

// snapshot is stored in the cache and never mutated after creation.
type snapshot struct {
	fingerprint string
	posts       []Post
	issues      []LoadIssue
}

func snapshotKey(generation uint64, fingerprint string) string {
	return snapshotPrefix + strconv.FormatUint(generation, 10) + ":" + fingerprint
}

// NewService builds the content service over loader.
func NewService(loader *Loader, opts ...ServiceOption) Service {
	if loader == nil {
		panic(ErrLoaderRequired)
	}
	s := &service{
		loader: loader,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// LoadAllPosts returns every valid post newest first.
func (s *service) LoadAllPosts(ctx context.Context) ([]Post, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return clonePosts(snap.posts), nil
}

func (s *service) GetPostBySlug(ctx context.Context, category, slug string) (Post, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return Post{}, err
	}
	for _, post := range snap.posts {
		if post.Category == category && post.Slug == slug {
			return post.Clone(), nil
		}
	}
	return Post{}, &NotFoundError{Category: category, Slug: slug}
}

// GetPostBySlugOnly searches every category; the newest match wins.
func (s *service) GetPostBySlugOnly(ctx context.Context, slug string) (Post, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return Post{}, err
	}
	for _, post := range snap.posts {
		if post.Slug == slug {
			return post.Clone(), nil
		}
	}
	return Post{}, &NotFoundError{Slug: slug}
}

func (s *service) GetPostsByCategory(ctx context.Context, category string) ([]Post, error) {
	return s.filter(ctx, func(post Post) bool { return post.Category == category })
}

func (s *service) GetFeaturedPosts(ctx context.Context) ([]Post, error) {
	return s.filter(ctx, func(post Post) bool { return post.FrontMatter.Featured })
}

// GetAllCategories lists category directories, including empty ones.
func (s *service) GetAllCategories(ctx context.Context) ([]string, error) {
	return s.loader.Categories(ctx)
}

// Refresh drops the cached snapshot so the next read reparses.
func (s *service) Refresh(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	s.generation.Add(1)
	s.logger.Debug("content.snapshot.invalidated", "generation", s.generation.Load())
	return s.cache.DeleteByPrefix(ctx, snapshotPrefix)
}

func (s *service) filter(ctx context.Context, keep func(Post) bool) ([]Post, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	out := []Post{}
	for _, post := range snap.posts {
		if keep(post) {
			out = append(out, post.Clone())
		}
	}
	return out, nil
}

func (s *service) current(ctx context.Context) (*snapshot, error) {
	if s.cache == nil {
		docs, scanIssues, err := s.scan(ctx)
		if err != nil {
			return nil, err
		}
		return s.build(docs, scanIssues), nil
	}

	generation := s.generation.Load()
	if s.watched {
		return s.fetch(ctx, snapshotKey(generation, watchedFingerprint), func(ctx context.Context) (*snapshot, error) {
			docs, scanIssues, err := s.scan(ctx)
			if err != nil {
				return nil, err
			}
			return s.build(docs, scanIssues), nil
		})
	}

	docs, scanIssues, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, snapshotKey(generation, fingerprint(docs)), func(ctx context.Context) (*snapshot, error) {
		// a new fingerprint makes every older snapshot unreachable
		if err := s.cache.DeleteByPrefix(ctx, snapshotPrefix); err != nil {
			s.logger.Warn("content.snapshot.evict_failed", "error", err)
		}
		return s.build(docs, scanIssues), nil
	})
}

func (s *service) fetch(ctx context.Context, key string, load repocache.FetchFn[*snapshot]) (*snapshot, error) {
	snap, err := repocache.GetOrFetch(ctx, s.cache, key, load)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, fmt.Errorf("content: empty snapshot for %s", key)
	}
	return snap, nil
}

func (s *service) scan(ctx context.Context) ([]document, []LoadIssue, error) {
	docs, issues, err := s.loader.scan(ctx)
	if err != nil {
		s.logger.Error("content.load.failed", "error", err)
		return nil, nil, err
	}
	return docs, issues, nil
}

func (s *service) build(docs []document, scanIssues []LoadIssue) *snapshot {
	posts, parseIssues := s.loader.parse(docs)
	snap := &snapshot{
		fingerprint: fingerprint(docs),
		posts:       posts,
		issues:      slices.Concat(scanIssues, parseIssues),
	}
	s.logger.Debug("content.load.completed", "posts", len(posts), "skipped", len(snap.issues))
	return snap
}
