package interfaces

// MarkdownRenderer converts article markdown into HTML.
type MarkdownRenderer interface {
	// Render converts markdown into HTML without touching image paths.
	Render(source []byte) ([]byte, error)
	// RenderWithBase prefixes relative image destinations with base before
	// rendering. Absolute and data: URLs are left alone.
	RenderWithBase(source []byte, base string) ([]byte, error)
	// TOC lists the headings inside opts with the ids Render stamps on them.
	TOC(source []byte, opts TOCOptions) []TocItem
}

// TocItem is one entry of an article outline.
type TocItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Level int    `json:"level"`
	URL   string `json:"url"`
}

// TOCOptions bounds the heading levels included in an outline.
type TOCOptions struct {
	MinLevel int
	MaxLevel int
}

// FrontMatter is the metadata block at the top of an article file.
type FrontMatter struct {
	Title         string         `json:"title"`
	Slug          string         `json:"slug,omitempty"`
	Description   string         `json:"description,omitempty"`
	Date          string         `json:"date"`
	Author        string         `json:"author,omitempty"`
	Category      string         `json:"category,omitempty"`
	Featured      bool           `json:"featured,omitempty"`
	Image         string         `json:"image,omitempty"`
	Thumbnail     string         `json:"thumbnail,omitempty"`
	ThumbnailText string         `json:"thumbnailText,omitempty"`
	Tags          []string       `json:"tags,omitempty"`
	Custom        map[string]any `json:"-"`
}
