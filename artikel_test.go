package artikel_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/restatolahdata/go-artikel"
	"github.com/restatolahdata/go-artikel/internal/logging"
	"github.com/restatolahdata/go-artikel/internal/related"
	"github.com/restatolahdata/go-artikel/pkg/interfaces"
)

type silentProvider struct{}

func (silentProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }

func TestModuleEndToEnd(t *testing.T) {
	fsys := fstest.MapFS{
		"metode-statistik/uji-t/index.mdx":   {Data: []byte("---\ntitle: \"Uji T Independen\"\ndate: \"2024-03-01\"\n---\n# Pendahuluan\n\nIsi.\n")},
		"pengolahan-data/cleaning/index.mdx": {Data: []byte("---\ntitle: \"Data Cleaning\"\ndate: \"2024-04-01\"\n---\nIsi.\n")},
	}
	mod, err := artikel.New(artikel.DefaultConfig(),
		artikel.WithLoggerProvider(silentProvider{}),
		artikel.WithContentFS(fsys),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	posts, err := mod.Content().LoadAllPosts(context.Background())
	if err != nil {
		t.Fatalf("LoadAllPosts: %v", err)
	}
	if len(posts) != 2 || posts[0].Slug != "cleaning" {
		t.Fatalf("expected newest first, got %+v", posts)
	}

	results := mod.Search().Search("uji", posts)
	if len(results) != 1 || results[0].Post.Slug != "uji-t" {
		t.Fatalf("unexpected search results %+v", results)
	}

	html, err := mod.Renderer().Render([]byte(posts[1].Content))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(html), `<h1 id="pendahuluan">Pendahuluan</h1>`) {
		t.Fatalf("unexpected html %s", html)
	}

	handler, err := mod.Handler()
	if err != nil {
		t.Fatalf("Handler: %v", err)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=data", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"slug":"cleaning"`) {
		t.Fatalf("unexpected search response %d %s", rec.Code, rec.Body.String())
	}
}

func TestModuleThreeArticleScenario(t *testing.T) {
	ctx := context.Background()
	article := func(title, date string) *fstest.MapFile {
		return &fstest.MapFile{Data: []byte("---\ntitle: \"" + title + "\"\ndate: \"" + date + "\"\n---\nIsi.\n")}
	}
	fsys := fstest.MapFS{
		"metode-statistik/uji-t/index.mdx":        article("Uji T", "2025-01-01"),
		"metode-statistik/uji-anova/index.mdx":    article("Uji Anova", "2025-01-02"),
		"metode-statistik/uji-korelasi/index.mdx": article("Uji Korelasi", "2025-01-03"),
	}
	mod, err := artikel.New(artikel.DefaultConfig(),
		artikel.WithLoggerProvider(silentProvider{}),
		artikel.WithContentFS(fsys),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	posts, err := mod.Content().LoadAllPosts(ctx)
	if err != nil {
		t.Fatalf("LoadAllPosts: %v", err)
	}
	var titles []string
	for _, post := range posts {
		titles = append(titles, post.FrontMatter.Title)
	}
	if strings.Join(titles, ",") != "Uji Korelasi,Uji Anova,Uji T" {
		t.Fatalf("unexpected order %v", titles)
	}

	results := mod.Search().Search("uji t", posts)
	if len(results) == 0 || results[0].Post.FrontMatter.Title != "Uji T" || results[0].Score != 20 {
		t.Fatalf("expected Uji T first with score 20, got %+v", results)
	}
	for _, result := range results[1:] {
		if result.Score >= results[0].Score {
			t.Fatalf("%s ranks level with Uji T", result.Post.FrontMatter.Title)
		}
	}

	previous, next := related.Adjacent(posts, "uji-anova")
	if previous == nil || previous.FrontMatter.Title != "Uji T" {
		t.Fatalf("expected previous Uji T, got %+v", previous)
	}
	if next == nil || next.FrontMatter.Title != "Uji Korelasi" {
		t.Fatalf("expected next Uji Korelasi, got %+v", next)
	}

	handler, err := mod.Handler()
	if err != nil {
		t.Fatalf("Handler: %v", err)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles/metode-statistik/uji-anova", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("detail status %d: %s", rec.Code, rec.Body.String())
	}
	var detail struct {
		Previous *struct{ Slug string } `json:"previous"`
		Next     *struct{ Slug string } `json:"next"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if detail.Previous == nil || detail.Previous.Slug != "uji-t" || detail.Next == nil || detail.Next.Slug != "uji-korelasi" {
		t.Fatalf("unexpected neighbours %s", rec.Body.String())
	}
}
