// Package redirects maps pre-migration blog URLs (/{slug}) onto article URLs.
package redirects

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/restatolahdata/go-artikel/internal/content"
	"github.com/restatolahdata/go-artikel/internal/routes"
)

var ErrNoRedirect = errors.New("redirects: no target for legacy slug")

// PostLookup is the part of content.Service used to resolve targets.
type PostLookup interface {
	GetPostBySlug(ctx context.Context, category, slug string) (content.Post, error)
	GetPostBySlugOnly(ctx context.Context, slug string) (content.Post, error)
}

// Entry is one legacy path and where it now lives.
type Entry struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Problem is a table entry that needs attention.
type Problem struct {
	Kind   string `json:"kind"`
	From   string `json:"from"`
	Target string `json:"target"`
}

const (
	ProblemDuplicateTarget = "duplicate_target"
	ProblemMalformedTarget = "malformed_target"
	ProblemMissingPost     = "missing_post"
)

// Resolver answers legacy slugs from an explicit table first, then by a
// global slug search over the corpus.
type Resolver struct {
	table  map[string]string
	posts  PostLookup
	routes *routes.Routes
}

// New builds a resolver. table maps old slug to "category/slug".
func New(table map[string]string, posts PostLookup, r *routes.Routes) *Resolver {
	cleaned := make(map[string]string, len(table))
	for from, to := range table {
		cleaned[strings.Trim(strings.TrimSpace(from), "/")] = strings.Trim(strings.TrimSpace(to), "/")
	}
	return &Resolver{table: cleaned, posts: posts, routes: r}
}

// Resolve returns the absolute article URL for a legacy slug.
func (r *Resolver) Resolve(ctx context.Context, oldSlug string) (string, error) {
	oldSlug = strings.Trim(strings.TrimSpace(oldSlug), "/")
	if oldSlug == "" {
		return "", ErrNoRedirect
	}

	if target, ok := r.table[oldSlug]; ok {
		category, slug, ok := splitTarget(target)
		if !ok {
			return "", fmt.Errorf("%w: malformed target %q", ErrNoRedirect, target)
		}
		return r.routes.Article(category, slug)
	}

	if r.posts == nil {
		return "", ErrNoRedirect
	}
	post, err := r.posts.GetPostBySlugOnly(ctx, oldSlug)
	if err != nil {
		if errors.Is(err, content.ErrPostNotFound) {
			return "", ErrNoRedirect
		}
		return "", err
	}
	return r.routes.Article(post.Category, post.Slug)
}

// Entries lists the explicit table sorted by legacy path.
func (r *Resolver) Entries() ([]Entry, error) {
	entries := make([]Entry, 0, len(r.table))
	for from, target := range r.table {
		category, slug, ok := splitTarget(target)
		if !ok {
			continue
		}
		to, err := r.routes.Article(category, slug)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{From: "/" + from, To: to})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].From < entries[j].From })
	return entries, nil
}

// Validate reports duplicate targets, targets that are not "category/slug"
// and, when a lookup is configured, targets with no matching post.
func (r *Resolver) Validate(ctx context.Context) ([]Problem, error) {
	froms := make([]string, 0, len(r.table))
	for from := range r.table {
		froms = append(froms, from)
	}
	sort.Strings(froms)

	problems := []Problem{}
	seen := map[string]struct{}{}
	for _, from := range froms {
		target := r.table[from]
		if _, dup := seen[target]; dup {
			problems = append(problems, Problem{Kind: ProblemDuplicateTarget, From: from, Target: target})
			continue
		}
		seen[target] = struct{}{}

		category, slug, ok := splitTarget(target)
		if !ok {
			problems = append(problems, Problem{Kind: ProblemMalformedTarget, From: from, Target: target})
			continue
		}
		if r.posts == nil {
			continue
		}
		if _, err := r.posts.GetPostBySlug(ctx, category, slug); err != nil {
			if !errors.Is(err, content.ErrPostNotFound) {
				return nil, err
			}
			problems = append(problems, Problem{Kind: ProblemMissingPost, From: from, Target: target})
		}
	}
	return problems, nil
}

func splitTarget(target string) (string, string, bool) {
	category, slug, ok := strings.Cut(target, "/")
	if !ok || category == "" || slug == "" || strings.Contains(slug, "/") {
		return "", "", false
	}
	return category, slug, true
}
