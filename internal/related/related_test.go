package related

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/restatolahdata/go-artikel/internal/content"
	"github.com/restatolahdata/go-artikel/pkg/interfaces"
)

func post(slug, category string, tags ...string) content.Post {
	return content.Post{
		Slug:        slug,
		Folder:      slug,
		Category:    category,
		FrontMatter: interfaces.FrontMatter{Title: slug, Tags: tags},
	}
}

func slugs(posts []content.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Slug
	}
	return out
}

func TestPostsRanking(t *testing.T) {
	// newest first
	posts := []content.Post{
		post("other-none", "metode-penelitian"),
		post("same-none", "metode-statistik"),
		post("other-tags", "software-statistik", "parametrik", "t-test"),
		post("current", "metode-statistik", "parametrik", "t-test"),
		post("same-one-tag", "metode-statistik", "parametrik"),
		post("same-two-tags", "metode-statistik", "t-test", "parametrik"),
	}

	got := Posts(posts, "current", "metode-statistik", []string{"parametrik", "t-test"}, 6)
	want := []string{"same-two-tags", "same-one-tag", "same-none", "other-tags", "other-none"}
	if diff := cmp.Diff(want, slugs(got)); diff != "" {
		t.Fatalf("ranking mismatch (-want +got):\n%s", diff)
	}
}

func TestPostsLimitAndTieOrder(t *testing.T) {
	var posts []content.Post
	for i := 0; i < 10; i++ {
		posts = append(posts, post(fmt.Sprintf("p%d", i), "metode-statistik", "anova"))
	}

	got := Posts(posts, "p3", "metode-statistik", []string{"anova"}, 0)
	want := []string{"p0", "p1", "p2", "p4", "p5", "p6"}
	if diff := cmp.Diff(want, slugs(got)); diff != "" {
		t.Fatalf("unexpected related posts (-want +got):\n%s", diff)
	}

	if got := Posts(posts, "p3", "metode-statistik", nil, 2); len(got) != 2 {
		t.Fatalf("expected limit 2, got %d", len(got))
	}
}

func TestPostsExcludesSelf(t *testing.T) {
	got := Posts([]content.Post{post("only", "c", "x")}, "only", "c", []string{"x"}, 6)
	if len(got) != 0 {
		t.Fatalf("expected no related posts, got %v", slugs(got))
	}
}

func TestPostsDuplicateTagsCountOnce(t *testing.T) {
	posts := []content.Post{
		post("dup", "a", "x", "x", "x"),
		post("two", "a", "x", "y"),
	}
	got := Posts(posts, "current", "b", []string{"x", "y"}, 6)
	if diff := cmp.Diff([]string{"two", "dup"}, slugs(got)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestAdjacent(t *testing.T) {
	posts := []content.Post{post("newest", "c"), post("middle", "c"), post("oldest", "c")}

	cases := []struct {
		slug           string
		previous, next string
	}{
		{"middle", "oldest", "newest"},
		{"newest", "middle", ""},
		{"oldest", "", "middle"},
		{"missing", "", ""},
	}
	for _, tc := range cases {
		previous, next := Adjacent(posts, tc.slug)
		if got := slugOrEmpty(previous); got != tc.previous {
			t.Fatalf("%s: previous = %q, want %q", tc.slug, got, tc.previous)
		}
		if got := slugOrEmpty(next); got != tc.next {
			t.Fatalf("%s: next = %q, want %q", tc.slug, got, tc.next)
		}
	}
}

func TestAdjacentSinglePost(t *testing.T) {
	previous, next := Adjacent([]content.Post{post("solo", "c")}, "solo")
	if previous != nil || next != nil {
		t.Fatalf("expected no neighbours")
	}
}

func slugOrEmpty(p *content.Post) string {
	if p == nil {
		return ""
	}
	return p.Slug
}
