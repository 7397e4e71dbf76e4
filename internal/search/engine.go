// Package search ranks articles against a free-text query.
package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/restatolahdata/go-artikel/internal/content"
	"github.com/restatolahdata/go-artikel/internal/logging"
	"github.com/restatolahdata/go-artikel/pkg/interfaces"
)

const DefaultLimit = 10

// Signal weights. A title equal to the query earns both title weights.
const (
	weightTitleContains = 10
	weightTitleExact    = 10
	weightTag           = 5
	weightDescription   = 3
	weightAuthor        = 3
	weightCategory      = 2
)

// Result is a post with its relevance score. Score is always positive.
type Result struct {
	Post  content.Post
	Score int
}

// Scorer rates post against a query already trimmed and lowercased.
type Scorer func(query string, post content.Post) int

// Engine scores posts. It holds no per-query state.
type Engine struct {
	limit  int
	scorer Scorer
	logger interfaces.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLimit caps the number of results. Values below one keep the default.
func WithLimit(limit int) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.limit = limit
		}
	}
}

// WithScorer replaces the weighted relevance rules.
func WithScorer(scorer Scorer) Option {
	return func(e *Engine) {
		if scorer != nil {
			e.scorer = scorer
		}
	}
}

// WithLogger sets the search module logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine returns an engine capped at DefaultLimit results.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{limit: DefaultLimit, scorer: score, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Search returns the posts matching query, best first. Ties keep the order
// of posts. A blank query matches nothing.
func (e *Engine) Search(query string, posts []content.Post) []Result {
	normalized := normalize(query)
	results := []Result{}
	if normalized == "" {
		return results
	}

	for _, post := range posts {
		score, err := e.safeScore(normalized, post)
		if err != nil {
			e.logger.Warn("search.score.failed", "slug", post.Slug, "error", err)
			continue
		}
		if score > 0 {
			results = append(results, Result{Post: post, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > e.limit {
		results = results[:e.limit]
	}
	e.logger.Debug("search.completed", "query", normalized, "results", len(results))
	return results
}

// Score is the relevance of post for query.
func Score(query string, post content.Post) int {
	return score(normalize(query), post)
}

func (e *Engine) safeScore(normalized string, post content.Post) (result int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("search: scoring %q: %v", post.Slug, rec)
		}
	}()
	return e.scorer(normalized, post), nil
}

func score(q string, post content.Post) int {
	if q == "" {
		return 0
	}
	meta := post.FrontMatter
	total := 0

	title := strings.ToLower(meta.Title)
	if strings.Contains(title, q) {
		total += weightTitleContains
	}
	if strings.TrimSpace(title) == q {
		total += weightTitleExact
	}
	for _, tag := range meta.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			total += weightTag
			break
		}
	}
	if strings.Contains(strings.ToLower(meta.Description), q) {
		total += weightDescription
	}
	if strings.Contains(strings.ToLower(meta.Author), q) {
		total += weightAuthor
	}
	if strings.Contains(strings.ToLower(post.Category), q) {
		total += weightCategory
	}
	return total
}

func normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
