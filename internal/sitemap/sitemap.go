// Package sitemap renders sitemap.xml and robots.txt for the public site.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/restatolahdata/go-artikel/internal/content"
)

// Excluded prefixes never appear in the sitemap and are disallowed for
// crawlers.
var Excluded = []string{"/dashboard", "/order", "/checkout", "/payment-confirmation", "/api"}

// Entry is one public path.
type Entry struct {
	Path    string
	LastMod time.Time
}

type urlEntry struct {
	Location   string
	LastMod    time.Time
	Priority   string
	ChangeFreq string
}

// Entries lists the home page, the article index, every category and every
// post. Category pages carry the date of their newest post.
func Entries(posts []content.Post, categories []string) []Entry {
	newest := map[string]time.Time{}
	var latest time.Time
	for _, post := range posts {
		if post.PublishedAt.After(newest[post.Category]) {
			newest[post.Category] = post.PublishedAt
		}
		if post.PublishedAt.After(latest) {
			latest = post.PublishedAt
		}
	}

	entries := []Entry{
		{Path: "/", LastMod: latest},
		{Path: "/artikel", LastMod: latest},
	}
	for _, category := range categories {
		entries = append(entries, Entry{Path: "/artikel/" + category, LastMod: newest[category]})
	}
	for _, post := range posts {
		entries = append(entries, Entry{
			Path:    "/artikel/" + post.Category + "/" + post.Slug,
			LastMod: post.PublishedAt,
		})
	}
	return entries
}

// Build renders entries as a sitemap under baseURL. Excluded and duplicate
// paths are dropped; entries without a date use fallback.
func Build(baseURL string, entries []Entry, fallback time.Time) string {
	base := normalizeBase(baseURL)

	urls := make([]urlEntry, 0, len(entries))
	seen := map[string]struct{}{}
	for _, entry := range entries {
		route := strings.TrimSpace(entry.Path)
		if route == "" {
			route = "/"
		}
		if !strings.HasPrefix(route, "/") {
			route = "/" + route
		}
		if IsExcluded(route) {
			continue
		}
		location := base + route
		if _, ok := seen[location]; ok {
			continue
		}
		seen[location] = struct{}{}

		lastMod := entry.LastMod
		if lastMod.IsZero() {
			lastMod = fallback
		}
		priority, changeFreq := ranking(route)
		urls = append(urls, urlEntry{
			Location:   location,
			LastMod:    lastMod,
			Priority:   priority,
			ChangeFreq: changeFreq,
		})
	}

	sort.Slice(urls, func(i, j int) bool {
		return urls[i].Location < urls[j].Location
	})

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, u := range urls {
		builder.WriteString("  <url>\n")
		builder.WriteString("    <loc>")
		_ = xml.EscapeText(&builder, []byte(u.Location))
		builder.WriteString("</loc>\n")
		if !u.LastMod.IsZero() {
			builder.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", u.LastMod.UTC().Format(time.RFC3339)))
		}
		builder.WriteString(fmt.Sprintf("    <changefreq>%s</changefreq>\n", u.ChangeFreq))
		builder.WriteString(fmt.Sprintf("    <priority>%s</priority>\n", u.Priority))
		builder.WriteString("  </url>\n")
	}
	builder.WriteString(`</urlset>` + "\n")
	return builder.String()
}

// Robots renders robots.txt pointing at the sitemap.
func Robots(baseURL string) string {
	var builder strings.Builder
	builder.WriteString("User-agent: *\n")
	builder.WriteString("Allow: /\n")
	for _, prefix := range Excluded {
		builder.WriteString(fmt.Sprintf("Disallow: %s\n", prefix))
	}
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf("Sitemap: %s/sitemap.xml\n", normalizeBase(baseURL)))
	return builder.String()
}

// IsExcluded reports whether route is, or sits below, an excluded prefix.
func IsExcluded(route string) bool {
	for _, prefix := range Excluded {
		if route == prefix || strings.HasPrefix(route, prefix+"/") {
			return true
		}
	}
	return false
}

func ranking(route string) (priority, changeFreq string) {
	switch {
	case route == "/":
		return "1.0", "daily"
	case route == "/artikel":
		return "0.9", "weekly"
	case strings.HasPrefix(route, "/artikel/"):
		return "0.8", "monthly"
	default:
		return "0.7", "monthly"
	}
}

func normalizeBase(baseURL string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = "http://localhost"
	}
	return base
}
