package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/go-cmp/cmp"
)

func newSnapshotCache(t *testing.T) repocache.CacheService {
	t.Helper()
	cache, err := repocache.NewCacheService(repocache.DefaultConfig())
	if err != nil {
		t.Fatalf("NewCacheService: %v", err)
	}
	return cache
}

// fetchHookCache counts snapshot builds and runs afterFetch once, after the
// first build finished but before the cache stores its result.
type fetchHookCache struct {
	repocache.CacheService
	fetches    atomic.Int32
	once       sync.Once
	afterFetch func()
}

func (c *fetchHookCache) GetOrFetch(ctx context.Context, key string, fetchFn any) (any, error) {
	fetch := fetchFn.(repocache.FetchFn[*snapshot])
	return c.CacheService.GetOrFetch(ctx, key, repocache.FetchFn[*snapshot](func(ctx context.Context) (*snapshot, error) {
		c.fetches.Add(1)
		snap, err := fetch(ctx)
		if c.afterFetch != nil {
			c.once.Do(c.afterFetch)
		}
		return snap, err
	}))
}

func newCorpusService(t *testing.T, opts ...ServiceOption) (Service, string) {
	t.Helper()
	root := t.TempDir()
	writeFixture(t, root, corpus()...)
	return NewService(NewDirLoader(root), opts...), root
}

func TestServiceLookups(t *testing.T) {
	ctx := context.Background()
	svc, root := newCorpusService(t)
	if err := os.MkdirAll(filepath.Join(root, "metode-penelitian"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	post, err := svc.GetPostBySlug(ctx, "metode-statistik", "anova")
	if err != nil {
		t.Fatalf("GetPostBySlug: %v", err)
	}
	if post.FrontMatter.Title != "Anova Satu Arah" {
		t.Fatalf("unexpected post %#v", post.FrontMatter)
	}

	if _, err := svc.GetPostBySlug(ctx, "interpretasi-uji-statistik", "anova"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound for wrong category, got %v", err)
	}

	post, err = svc.GetPostBySlugOnly(ctx, "korelasi")
	if err != nil || post.Category != "interpretasi-uji-statistik" {
		t.Fatalf("GetPostBySlugOnly = %v, %v", post.Category, err)
	}
	var notFound *NotFoundError
	if _, err := svc.GetPostBySlugOnly(ctx, "regresi"); !errors.As(err, &notFound) || notFound.Slug != "regresi" {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	byCategory, err := svc.GetPostsByCategory(ctx, "metode-statistik")
	if err != nil {
		t.Fatalf("GetPostsByCategory: %v", err)
	}
	if diff := cmp.Diff([]string{"uji-t", "anova"}, slugsOf(byCategory)); diff != "" {
		t.Fatalf("category posts mismatch (-want +got):\n%s", diff)
	}

	empty, err := svc.GetPostsByCategory(ctx, "tidak-ada")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v, %v", empty, err)
	}

	featured, err := svc.GetFeaturedPosts(ctx)
	if err != nil {
		t.Fatalf("GetFeaturedPosts: %v", err)
	}
	if diff := cmp.Diff([]string{"uji-t"}, slugsOf(featured)); diff != "" {
		t.Fatalf("featured mismatch (-want +got):\n%s", diff)
	}

	categories, err := svc.GetAllCategories(ctx)
	if err != nil {
		t.Fatalf("GetAllCategories: %v", err)
	}
	want := []string{"interpretasi-uji-statistik", "metode-penelitian", "metode-statistik"}
	if diff := cmp.Diff(want, categories); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestServiceLoadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCorpusService(t)

	first, err := svc.LoadAllPosts(ctx)
	if err != nil {
		t.Fatalf("LoadAllPosts: %v", err)
	}
	second, err := svc.LoadAllPosts(ctx)
	if err != nil {
		t.Fatalf("LoadAllPosts: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated loads differ (-first +second):\n%s", diff)
	}
}

func TestServiceSnapshotReturnsCopies(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCorpusService(t, WithSnapshotCache(newSnapshotCache(t)))

	posts, err := svc.LoadAllPosts(ctx)
	if err != nil {
		t.Fatalf("LoadAllPosts: %v", err)
	}
	posts[0].FrontMatter.Title = "mutated"
	posts[0].FrontMatter.Tags[0] = "mutated"

	again, err := svc.LoadAllPosts(ctx)
	if err != nil {
		t.Fatalf("LoadAllPosts: %v", err)
	}
	if again[0].FrontMatter.Title != "Uji T Independen" || again[0].FrontMatter.Tags[0] != "t-test" {
		t.Fatalf("snapshot was mutated through a returned copy: %#v", again[0].FrontMatter)
	}
}

func TestServiceSnapshotSeesEdits(t *testing.T) {
	ctx := context.Background()
	svc, root := newCorpusService(t, WithSnapshotCache(newSnapshotCache(t)))

	if _, err := svc.LoadAllPosts(ctx); err != nil {
		t.Fatalf("LoadAllPosts: %v", err)
	}

	writeFixture(t, root, fixturePost{
		category: "metode-statistik",
		folder:   "regresi",
		source:   doc("title: \"Regresi Linear\"\ndate: \"2024-06-01\"", "body"),
	})

	posts, err := svc.LoadAllPosts(ctx)
	if err != nil {
		t.Fatalf("LoadAllPosts: %v", err)
	}
	if posts[0].Slug != "regresi" {
		t.Fatalf("expected new post first, got %v", slugsOf(posts))
	}
}

func TestServiceWatchedSnapshotNeedsRefresh(t *testing.T) {
	ctx := context.Background()
	svc, root := newCorpusService(t, WithSnapshotCache(newSnapshotCache(t)), WithWatchedSnapshots())

	if _, err := svc.LoadAllPosts(ctx); err != nil {
		t.Fatalf("LoadAllPosts: %v", err)
	}
	writeFixture(t, root, fixturePost{
		category: "metode-statistik",
		folder:   "regresi",
		source:   doc("title: \"Regresi Linear\"\ndate: \"2024-06-01\"", "body"),
	})

	posts, _ := svc.LoadAllPosts(ctx)
	if len(posts) != 3 {
		t.Fatalf("expected cached corpus before refresh, got %v", slugsOf(posts))
	}

	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	posts, _ = svc.LoadAllPosts(ctx)
	if len(posts) != 4 || posts[0].Slug != "regresi" {
		t.Fatalf("expected refreshed corpus, got %v", slugsOf(posts))
	}
}

func TestServiceSnapshotReusedUntilFingerprintChanges(t *testing.T) {
	ctx := context.Background()
	cache := &fetchHookCache{CacheService: newSnapshotCache(t)}
	svc, root := newCorpusService(t, WithSnapshotCache(cache))

	for i := 0; i < 3; i++ {
		if _, err := svc.LoadAllPosts(ctx); err != nil {
			t.Fatalf("LoadAllPosts: %v", err)
		}
	}
	if got := cache.fetches.Load(); got != 1 {
		t.Fatalf("expected one snapshot build for an unchanged tree, got %d", got)
	}

	writeFixture(t, root, fixturePost{
		category: "metode-statistik",
		folder:   "regresi",
		source:   doc("title: \"Regresi Linear\"\ndate: \"2024-06-01\"", "body"),
	})
	if _, err := svc.LoadAllPosts(ctx); err != nil {
		t.Fatalf("LoadAllPosts: %v", err)
	}
	if got := cache.fetches.Load(); got != 2 {
		t.Fatalf("expected a rebuild after the edit, got %d builds", got)
	}
}

func TestServiceRefreshDuringLoadDropsStaleSnapshot(t *testing.T) {
	ctx := context.Background()
	cache := &fetchHookCache{CacheService: newSnapshotCache(t)}
	svc, root := newCorpusService(t, WithSnapshotCache(cache), WithWatchedSnapshots())

	cache.afterFetch = func() {
		writeFixture(t, root, fixturePost{
			category: "metode-statistik",
			folder:   "regresi",
			source:   doc("title: \"Regresi Linear\"\ndate: \"2024-06-01\"", "body"),
		})
		if err := svc.Refresh(ctx); err != nil {
			t.Errorf("Refresh: %v", err)
		}
	}

	posts, err := svc.LoadAllPosts(ctx)
	if err != nil {
		t.Fatalf("LoadAllPosts: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected the corpus scanned before the edit, got %v", slugsOf(posts))
	}

	posts, err = svc.LoadAllPosts(ctx)
	if err != nil {
		t.Fatalf("LoadAllPosts: %v", err)
	}
	if len(posts) != 4 || posts[0].Slug != "regresi" {
		t.Fatalf("expected the edit to be visible after refresh, got %v", slugsOf(posts))
	}
}

func TestServiceRefreshWithoutCache(t *testing.T) {
	svc, _ := newCorpusService(t)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
}

func TestNewServicePanicsWithoutLoader(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	NewService(nil)
}
