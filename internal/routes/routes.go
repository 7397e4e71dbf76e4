// Package routes builds absolute public URLs for articles through go-urlkit.
package routes

import (
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

const (
	GroupSite     = "site"
	RouteListing  = "listing"
	RouteCategory = "category"
	RouteArticle  = "article"
	RouteLegacy   = "legacy"
)

// Routes resolves named public routes against one base URL.
type Routes struct {
	manager *urlkit.RouteManager
	baseURL string
}

// New registers the site routes under baseURL.
func New(baseURL string) *Routes {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    GroupSite,
				BaseURL: baseURL,
				Paths: map[string]string{
					RouteListing:  "/artikel",
					RouteCategory: "/artikel/:category",
					RouteArticle:  "/artikel/:category/:slug",
					RouteLegacy:   "/:slug",
				},
			},
		},
	})
	return &Routes{manager: manager, baseURL: baseURL}
}

// BaseURL is the site origin without a trailing slash.
func (r *Routes) BaseURL() string {
	return r.baseURL
}

func (r *Routes) Listing() (string, error) {
	return r.build(RouteListing, nil)
}

func (r *Routes) Category(category string) (string, error) {
	return r.build(RouteCategory, map[string]any{"category": category})
}

// Article is the canonical URL of a post.
func (r *Routes) Article(category, slug string) (string, error) {
	return r.build(RouteArticle, map[string]any{"category": category, "slug": slug})
}

// Legacy is the pre-migration blog URL of a post.
func (r *Routes) Legacy(slug string) (string, error) {
	return r.build(RouteLegacy, map[string]any{"slug": slug})
}

func (r *Routes) build(route string, params map[string]any) (url string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			url, err = "", fmt.Errorf("routes: build %q: %v", route, rec)
		}
	}()

	builder := r.manager.Group(GroupSite).Builder(route)
	for key, value := range params {
		builder.WithParam(key, value)
	}
	return builder.Build()
}
