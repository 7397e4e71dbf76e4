package redirects

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/restatolahdata/go-artikel/internal/content"
	"github.com/restatolahdata/go-artikel/internal/routes"
)

type stubPosts struct {
	posts []content.Post
}

func (s stubPosts) GetPostBySlug(_ context.Context, category, slug string) (content.Post, error) {
	for _, p := range s.posts {
		if p.Category == category && p.Slug == slug {
			return p, nil
		}
	}
	return content.Post{}, &content.NotFoundError{Category: category, Slug: slug}
}

func (s stubPosts) GetPostBySlugOnly(_ context.Context, slug string) (content.Post, error) {
	for _, p := range s.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return content.Post{}, &content.NotFoundError{Slug: slug}
}

func newResolver(table map[string]string) *Resolver {
	posts := stubPosts{posts: []content.Post{
		{Slug: "uji-t", Category: "metode-statistik"},
		{Slug: "korelasi", Category: "interpretasi-uji-statistik"},
	}}
	return New(table, posts, routes.New("https://restatolahdata.id"))
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	r := newResolver(map[string]string{
		"penjelasan-uji-t": "metode-statistik/uji-t",
		"rusak":            "tanpa-slash",
	})

	cases := []struct {
		slug string
		want string
		err  error
	}{
		{slug: "penjelasan-uji-t", want: "https://restatolahdata.id/artikel/metode-statistik/uji-t"},
		{slug: "/penjelasan-uji-t/", want: "https://restatolahdata.id/artikel/metode-statistik/uji-t"},
		{slug: "korelasi", want: "https://restatolahdata.id/artikel/interpretasi-uji-statistik/korelasi"},
		{slug: "tidak-ada", err: ErrNoRedirect},
		{slug: "rusak", err: ErrNoRedirect},
		{slug: "", err: ErrNoRedirect},
	}
	for _, tc := range cases {
		got, err := r.Resolve(ctx, tc.slug)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Fatalf("Resolve(%q) error = %v, want %v", tc.slug, err, tc.err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("Resolve(%q) = %q, %v; want %q", tc.slug, got, err, tc.want)
		}
	}
}

func TestEntries(t *testing.T) {
	r := newResolver(map[string]string{
		"b-lama": "metode-statistik/uji-t",
		"a-lama": "interpretasi-uji-statistik/korelasi",
		"rusak":  "x",
	})
	entries, err := r.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	want := []Entry{
		{From: "/a-lama", To: "https://restatolahdata.id/artikel/interpretasi-uji-statistik/korelasi"},
		{From: "/b-lama", To: "https://restatolahdata.id/artikel/metode-statistik/uji-t"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	r := newResolver(map[string]string{
		"a": "metode-statistik/uji-t",
		"b": "metode-statistik/uji-t",
		"c": "metode-statistik/hilang",
		"d": "bukan-target",
	})
	problems, err := r.Validate(context.Background())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	want := []Problem{
		{Kind: ProblemDuplicateTarget, From: "b", Target: "metode-statistik/uji-t"},
		{Kind: ProblemMissingPost, From: "c", Target: "metode-statistik/hilang"},
		{Kind: ProblemMalformedTarget, From: "d", Target: "bukan-target"},
	}
	if diff := cmp.Diff(want, problems); diff != "" {
		t.Fatalf("problems mismatch (-want +got):\n%s", diff)
	}
}
