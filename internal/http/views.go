package http

import (
	"github.com/restatolahdata/go-artikel/internal/authors"
	"github.com/restatolahdata/go-artikel/internal/content"
	"github.com/restatolahdata/go-artikel/internal/search"
	"github.com/restatolahdata/go-artikel/pkg/interfaces"
)

type articleSummary struct {
	Slug     string   `json:"slug"`
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Author   string   `json:"author"`
	Date     string   `json:"date"`
	ReadTime string   `json:"readTime"`
	Featured bool     `json:"featured"`
	Tags     []string `json:"tags"`
}

type searchResult struct {
	articleSummary
	Score int `json:"score"`
}

type articleDetail struct {
	articleSummary
	Description   string               `json:"description,omitempty"`
	Image         string               `json:"image,omitempty"`
	Thumbnail     string               `json:"thumbnail,omitempty"`
	ThumbnailText string               `json:"thumbnailText,omitempty"`
	HTML          string               `json:"html"`
	TOC           []interfaces.TocItem `json:"toc"`
	CategoryInfo  content.Category     `json:"categoryInfo"`
	Canonical     string               `json:"canonical,omitempty"`
	Related       []articleSummary     `json:"related"`
	Previous      *articleSummary      `json:"previous"`
	Next          *articleSummary      `json:"next"`
	AuthorProfile *authors.Author      `json:"authorProfile,omitempty"`
}

type categoryView struct {
	content.Category
	Count int    `json:"count"`
	URL   string `json:"url,omitempty"`
}

func summarize(post content.Post) articleSummary {
	tags := post.FrontMatter.Tags
	if tags == nil {
		tags = []string{}
	}
	return articleSummary{
		Slug:     post.Slug,
		Category: post.Category,
		Title:    post.FrontMatter.Title,
		Excerpt:  content.Excerpt(post),
		Author:   post.FrontMatter.Author,
		Date:     post.FrontMatter.Date,
		ReadTime: post.ReadingTime,
		Featured: post.FrontMatter.Featured,
		Tags:     tags,
	}
}

func summarizeAll(posts []content.Post) []articleSummary {
	out := make([]articleSummary, len(posts))
	for i, post := range posts {
		out[i] = summarize(post)
	}
	return out
}

func summarizePtr(post *content.Post) *articleSummary {
	if post == nil {
		return nil
	}
	summary := summarize(*post)
	return &summary
}

func toSearchResults(results []search.Result) []searchResult {
	out := make([]searchResult, len(results))
	for i, result := range results {
		out[i] = searchResult{articleSummary: summarize(result.Post), Score: result.Score}
	}
	return out
}
