package markdown

import (
	"bytes"
	"fmt"
	"maps"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/restatolahdata/go-artikel/pkg/interfaces"
)

// ParseFrontMatter splits source into its metadata block and the markdown
// body. A document without a front-matter block yields zero metadata and the
// whole source as body.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta.toFrontMatter(), body, nil
}

// Dates stay strings here; the content loader owns the accepted layouts.
type frontMatterEnvelope struct {
	Title         string         `yaml:"title"`
	Slug          string         `yaml:"slug"`
	Description   string         `yaml:"description"`
	Date          string         `yaml:"date"`
	Author        string         `yaml:"author"`
	Category      string         `yaml:"category"`
	Featured      bool           `yaml:"featured"`
	Image         string         `yaml:"image"`
	Thumbnail     string         `yaml:"thumbnail"`
	ThumbnailText string         `yaml:"thumbnailText"`
	Tags          []string       `yaml:"tags"`
	Custom        map[string]any `yaml:",inline"`
}

func (env frontMatterEnvelope) toFrontMatter() interfaces.FrontMatter {
	custom := map[string]any{}
	maps.Copy(custom, env.Custom)

	return interfaces.FrontMatter{
		Title:         strings.TrimSpace(env.Title),
		Slug:          strings.TrimSpace(env.Slug),
		Description:   strings.TrimSpace(env.Description),
		Date:          strings.TrimSpace(env.Date),
		Author:        strings.TrimSpace(env.Author),
		Category:      strings.TrimSpace(env.Category),
		Featured:      env.Featured,
		Image:         strings.TrimSpace(env.Image),
		Thumbnail:     strings.TrimSpace(env.Thumbnail),
		ThumbnailText: env.ThumbnailText,
		Tags:          cleanTags(env.Tags),
		Custom:        custom,
	}
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
