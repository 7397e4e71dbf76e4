// Package related picks follow-up reading for an article.
package related

import (
	"sort"

	"github.com/restatolahdata/go-artikel/internal/content"
)

const DefaultLimit = 6

// Posts returns up to limit posts related to the one identified by slug,
// taken from posts in newest-first order. Same-category posts rank first,
// then more shared tags; remaining ties keep the input order. Posts sharing
// nothing only fill leftover slots. limit <= 0 uses DefaultLimit.
func Posts(posts []content.Post, slug, category string, tags []string, limit int) []content.Post {
	if limit <= 0 {
		limit = DefaultLimit
	}

	wanted := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		wanted[tag] = struct{}{}
	}

	type candidate struct {
		post         content.Post
		sameCategory bool
		sharedTags   int
	}
	candidates := make([]candidate, 0, len(posts))
	for _, post := range posts {
		if post.Slug == slug {
			continue
		}
		candidates = append(candidates, candidate{
			post:         post,
			sameCategory: post.Category == category,
			sharedTags:   countShared(post.FrontMatter.Tags, wanted),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.sameCategory != b.sameCategory {
			return a.sameCategory
		}
		return a.sharedTags > b.sharedTags
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]content.Post, len(candidates))
	for i, c := range candidates {
		out[i] = c.post
	}
	return out
}

func countShared(tags []string, wanted map[string]struct{}) int {
	seen := make(map[string]struct{}, len(tags))
	shared := 0
	for _, tag := range tags {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		if _, ok := wanted[tag]; ok {
			shared++
		}
	}
	return shared
}

// Adjacent returns the chronological neighbours of slug in newest-first
// posts: previous is the older post, next the newer one. Either is nil at
// the ends of the list, and both are nil when slug is unknown.
func Adjacent(posts []content.Post, slug string) (previous, next *content.Post) {
	index := -1
	for i, post := range posts {
		if post.Slug == slug {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, nil
	}
	if index+1 < len(posts) {
		older := posts[index+1]
		previous = &older
	}
	if index > 0 {
		newer := posts[index-1]
		next = &newer
	}
	return previous, next
}
