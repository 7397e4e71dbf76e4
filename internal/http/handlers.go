package http

import (
	"net/http"
	"time"

	"github.com/restatolahdata/go-artikel/internal/content"
	"github.com/restatolahdata/go-artikel/internal/feed"
	"github.com/restatolahdata/go-artikel/internal/markdown"
	"github.com/restatolahdata/go-artikel/internal/related"
	"github.com/restatolahdata/go-artikel/internal/sitemap"
)

func (api *PublicAPI) handleSearch(w http.ResponseWriter, r *http.Request, scope requestScope) {
	query := r.URL.Query().Get("q")

	posts, err := api.content.LoadAllPosts(r.Context())
	if err != nil {
		scope.logger.Error("http.search.failed", "error", err)
		writeJSON(w, http.StatusOK, []searchResult{})
		return
	}
	results := api.search.Search(query, posts)
	scope.logger.Info("http.search.completed", "query", query, "results", len(results))
	writeJSON(w, http.StatusOK, toSearchResults(results))
}

func (api *PublicAPI) handleArticleList(w http.ResponseWriter, r *http.Request, scope requestScope) {
	posts, err := api.content.LoadAllPosts(r.Context())
	if err != nil {
		scope.logger.Error("http.articles.failed", "error", err)
		writeJSON(w, http.StatusOK, []articleSummary{})
		return
	}
	writeJSON(w, http.StatusOK, summarizeAll(posts))
}

func (api *PublicAPI) handleArticleGet(w http.ResponseWriter, r *http.Request, scope requestScope) {
	ctx := r.Context()
	category := r.PathValue("category")
	slug := r.PathValue("slug")

	post, err := api.content.GetPostBySlug(ctx, category, slug)
	if err != nil {
		scope.logger.Info("http.article.lookup_failed", "category", category, "slug", slug, "error", err)
		writeError(w, scope.id, err)
		return
	}
	all, err := api.content.LoadAllPosts(ctx)
	if err != nil {
		writeError(w, scope.id, err)
		return
	}

	detail := articleDetail{
		articleSummary: summarize(post),
		Description:    post.FrontMatter.Description,
		Image:          post.FrontMatter.Image,
		Thumbnail:      post.FrontMatter.Thumbnail,
		ThumbnailText:  post.FrontMatter.ThumbnailText,
		TOC:            api.renderer.TOC([]byte(post.Content), api.toc),
		CategoryInfo:   content.LookupCategory(post.Category),
		Related:        summarizeAll(related.Posts(all, post.Slug, post.Category, post.FrontMatter.Tags, api.relatedLimit)),
	}

	base := markdown.LocalImageBase(api.assetsPrefix, post.Category, post.Folder)
	if html, err := api.renderer.RenderWithBase([]byte(post.Content), base); err != nil {
		scope.logger.Warn("http.article.render_failed", "category", category, "slug", slug, "error", err)
	} else {
		detail.HTML = string(html)
	}

	previous, next := related.Adjacent(all, post.Slug)
	detail.Previous = summarizePtr(previous)
	detail.Next = summarizePtr(next)

	if canonical, err := api.routes.Article(post.Category, post.Slug); err == nil {
		detail.Canonical = canonical
	}
	if api.authors != nil && post.FrontMatter.Author != "" {
		if profile, err := api.authors.ByName(ctx, post.FrontMatter.Author); err == nil {
			detail.AuthorProfile = &profile
		}
	}

	writeJSON(w, http.StatusOK, detail)
}

func (api *PublicAPI) handleCategoryList(w http.ResponseWriter, r *http.Request, scope requestScope) {
	ctx := r.Context()
	ids, err := api.content.GetAllCategories(ctx)
	if err != nil {
		scope.logger.Error("http.categories.failed", "error", err)
		writeJSON(w, http.StatusOK, []categoryView{})
		return
	}
	posts, err := api.content.LoadAllPosts(ctx)
	if err != nil {
		scope.logger.Error("http.categories.failed", "error", err)
		writeJSON(w, http.StatusOK, []categoryView{})
		return
	}

	counts := map[string]int{}
	for _, post := range posts {
		counts[post.Category]++
	}
	views := make([]categoryView, 0, len(ids))
	for _, id := range ids {
		view := categoryView{Category: content.LookupCategory(id), Count: counts[id]}
		if url, err := api.routes.Category(id); err == nil {
			view.URL = url
		}
		views = append(views, view)
	}
	writeJSON(w, http.StatusOK, views)
}

func (api *PublicAPI) handleAuthorList(w http.ResponseWriter, r *http.Request, scope requestScope) {
	if api.authors == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	list, err := api.authors.All(r.Context())
	if err != nil {
		scope.logger.Error("http.authors.failed", "error", err)
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *PublicAPI) handleSitemap(w http.ResponseWriter, r *http.Request, scope requestScope) {
	ctx := r.Context()
	posts, err := api.content.LoadAllPosts(ctx)
	if err != nil {
		scope.logger.Error("http.sitemap.posts_failed", "error", err)
		posts = nil
	}
	categories, err := api.content.GetAllCategories(ctx)
	if err != nil {
		scope.logger.Error("http.sitemap.categories_failed", "error", err)
		categories = nil
	}

	body := sitemap.Build(api.routes.BaseURL(), sitemap.Entries(posts, categories), api.now())
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func (api *PublicAPI) handleRobots(w http.ResponseWriter, _ *http.Request, _ requestScope) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(sitemap.Robots(api.routes.BaseURL())))
}

func (api *PublicAPI) handleRSS(w http.ResponseWriter, r *http.Request, scope requestScope) {
	api.writeFeed(w, r, scope, "application/rss+xml; charset=utf-8", feed.RSS)
}

func (api *PublicAPI) handleAtom(w http.ResponseWriter, r *http.Request, scope requestScope) {
	api.writeFeed(w, r, scope, "application/atom+xml; charset=utf-8", feed.Atom)
}

func (api *PublicAPI) writeFeed(w http.ResponseWriter, r *http.Request, scope requestScope, contentType string, render func(feed.Site, []feed.Item, time.Time) string) {
	posts, err := api.content.LoadAllPosts(r.Context())
	if err != nil {
		scope.logger.Error("http.feed.posts_failed", "error", err)
		posts = nil
	}
	site := api.feedSite
	if site.BaseURL == "" {
		site.BaseURL = api.routes.BaseURL()
	}

	body := render(site, feed.Items(posts, api.routes, api.feedItems), api.now())
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func (api *PublicAPI) handleLegacyRedirect(w http.ResponseWriter, r *http.Request, scope requestScope) {
	slug := r.PathValue("slug")
	target, err := api.redirects.Resolve(r.Context(), slug)
	if err != nil {
		writeError(w, scope.id, err)
		return
	}
	scope.logger.Info("http.legacy.redirected", "slug", slug, "target", target)
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}
