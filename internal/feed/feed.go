// Package feed renders the newest articles as RSS 2.0 and Atom documents.
package feed

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/restatolahdata/go-artikel/internal/content"
	"github.com/restatolahdata/go-artikel/internal/routes"
)

const (
	DefaultMaxItems = 20
	language        = "id"
)

// Site is the channel metadata shown by feed readers.
type Site struct {
	Title       string
	Description string
	BaseURL     string
}

// Item is one article entry.
type Item struct {
	Title       string
	Summary     string
	Category    string
	Link        string
	PublishedAt time.Time
}

// Items turns newest-first posts into feed entries, keeping at most limit.
// Posts whose URL cannot be built are skipped.
func Items(posts []content.Post, r *routes.Routes, limit int) []Item {
	if limit <= 0 {
		limit = DefaultMaxItems
	}
	items := make([]Item, 0, min(len(posts), limit))
	for _, post := range posts {
		if len(items) == limit {
			break
		}
		link, err := r.Article(post.Category, post.Slug)
		if err != nil {
			continue
		}
		items = append(items, Item{
			Title:       strings.TrimSpace(post.FrontMatter.Title),
			Summary:     normalizeWhitespace(content.Excerpt(post)),
			Category:    content.CategoryDisplayName(post.Category),
			Link:        link,
			PublishedAt: post.PublishedAt,
		})
	}
	return items
}

// RSS renders items as an RSS 2.0 channel. Items without a date use generatedAt.
func RSS(site Site, items []Item, generatedAt time.Time) string {
	base := baseURL(site.BaseURL)

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">` + "\n")
	b.WriteString("  <channel>\n")
	fmt.Fprintf(&b, "    <title>%s</title>\n", escape(siteTitle(site)))
	fmt.Fprintf(&b, "    <link>%s</link>\n", escape(base))
	fmt.Fprintf(&b, "    <description>%s</description>\n", escape(site.Description))
	fmt.Fprintf(&b, "    <language>%s</language>\n", language)
	fmt.Fprintf(&b, "    <lastBuildDate>%s</lastBuildDate>\n", lastUpdate(items, generatedAt).UTC().Format(time.RFC1123Z))
	fmt.Fprintf(&b, `    <atom:link href="%s/rss.xml" rel="self" type="application/rss+xml" />`+"\n", escape(base))
	for _, item := range items {
		fmt.Fprintln(&b, "    <item>")
		fmt.Fprintf(&b, "      <title>%s</title>\n", escape(item.Title))
		fmt.Fprintf(&b, "      <link>%s</link>\n", escape(item.Link))
		fmt.Fprintf(&b, `      <guid isPermaLink="true">%s</guid>`+"\n", escape(item.Link))
		fmt.Fprintf(&b, "      <pubDate>%s</pubDate>\n", orDefault(item.PublishedAt, generatedAt).UTC().Format(time.RFC1123Z))
		if item.Category != "" {
			fmt.Fprintf(&b, "      <category>%s</category>\n", escape(item.Category))
		}
		if item.Summary != "" {
			fmt.Fprintf(&b, "      <description>%s</description>\n", escape(item.Summary))
		}
		fmt.Fprintln(&b, "    </item>")
	}
	b.WriteString("  </channel>\n")
	b.WriteString("</rss>\n")
	return b.String()
}

// Atom renders items as an Atom feed.
func Atom(site Site, items []Item, generatedAt time.Time) string {
	base := baseURL(site.BaseURL)
	self := base + "/atom.xml"

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<feed xmlns="http://www.w3.org/2005/Atom" xml:lang="%s">`+"\n", language)
	fmt.Fprintf(&b, "  <id>%s</id>\n", escape(self))
	fmt.Fprintf(&b, "  <title>%s</title>\n", escape(siteTitle(site)))
	if site.Description != "" {
		fmt.Fprintf(&b, "  <subtitle>%s</subtitle>\n", escape(site.Description))
	}
	fmt.Fprintf(&b, "  <updated>%s</updated>\n", lastUpdate(items, generatedAt).UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, `  <link rel="alternate" href="%s" />`+"\n", escape(base))
	fmt.Fprintf(&b, `  <link rel="self" href="%s" />`+"\n", escape(self))
	for _, item := range items {
		published := orDefault(item.PublishedAt, generatedAt).UTC().Format(time.RFC3339)
		fmt.Fprintln(&b, "  <entry>")
		fmt.Fprintf(&b, "    <id>%s</id>\n", escape(item.Link))
		fmt.Fprintf(&b, "    <title>%s</title>\n", escape(item.Title))
		fmt.Fprintf(&b, `    <link href="%s" />`+"\n", escape(item.Link))
		fmt.Fprintf(&b, "    <updated>%s</updated>\n", published)
		fmt.Fprintf(&b, "    <published>%s</published>\n", published)
		if item.Category != "" {
			fmt.Fprintf(&b, `    <category term="%s" />`+"\n", escape(item.Category))
		}
		if item.Summary != "" {
			fmt.Fprintf(&b, "    <summary>%s</summary>\n", escape(item.Summary))
		}
		fmt.Fprintln(&b, "  </entry>")
	}
	b.WriteString("</feed>\n")
	return b.String()
}

func lastUpdate(items []Item, fallback time.Time) time.Time {
	var latest time.Time
	for _, item := range items {
		if item.PublishedAt.After(latest) {
			latest = item.PublishedAt
		}
	}
	return orDefault(latest, fallback)
}

func orDefault(ts, fallback time.Time) time.Time {
	if ts.IsZero() {
		return fallback
	}
	return ts
}

func siteTitle(site Site) string {
	if title := strings.TrimSpace(site.Title); title != "" {
		return title
	}
	return baseURL(site.BaseURL)
}

func baseURL(base string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(base), "/")
	if trimmed == "" {
		return "http://localhost"
	}
	return trimmed
}

func normalizeWhitespace(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

func escape(value string) string {
	return html.EscapeString(value)
}
