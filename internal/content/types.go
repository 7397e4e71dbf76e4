package content

import (
	"maps"
	"time"

	"github.com/restatolahdata/go-artikel/pkg/interfaces"
)

// Post is one article loaded from <root>/<category>/<folder>/<document>.
// Slug and Folder are both the folder name: the folder addresses the page and
// its image assets.
type Post struct {
	Slug        string                 `json:"slug"`
	Folder      string                 `json:"folder"`
	Category    string                 `json:"category"`
	FrontMatter interfaces.FrontMatter `json:"frontMatter"`
	Content     string                 `json:"content"`
	ReadingTime string                 `json:"readingTime"`
	PublishedAt time.Time              `json:"-"`
	Path        string                 `json:"-"`
}

// Clone returns a deep copy so callers can mutate the result freely.
func (p Post) Clone() Post {
	out := p
	if p.FrontMatter.Tags != nil {
		out.FrontMatter.Tags = append([]string(nil), p.FrontMatter.Tags...)
	}
	if p.FrontMatter.Custom != nil {
		out.FrontMatter.Custom = maps.Clone(p.FrontMatter.Custom)
	}
	return out
}

// LoadIssue describes a document skipped during a load.
type LoadIssue struct {
	Path     string `json:"path"`
	Category string `json:"category,omitempty"`
	Folder   string `json:"folder,omitempty"`
	Reason   string `json:"reason"`
	Err      error  `json:"-"`
}

func (i LoadIssue) Error() string {
	if i.Err == nil {
		return i.Path + ": " + i.Reason
	}
	return i.Path + ": " + i.Reason + ": " + i.Err.Error()
}

func (i LoadIssue) Unwrap() error {
	return i.Err
}

// SlugMismatch records a front-matter slug that disagrees with its folder.
type SlugMismatch struct {
	Path            string `json:"path"`
	Folder          string `json:"folder"`
	FrontMatterSlug string `json:"frontMatterSlug"`
	Normalized      string `json:"normalized"`
}

// DuplicateSlug lists the paths sharing one slug across categories.
type DuplicateSlug struct {
	Slug  string   `json:"slug"`
	Paths []string `json:"paths"`
}

// ValidationReport is the outcome of a full corpus check.
type ValidationReport struct {
	Posts          int             `json:"posts"`
	Issues         []LoadIssue     `json:"issues"`
	SlugMismatches []SlugMismatch  `json:"slugMismatches"`
	DuplicateSlugs []DuplicateSlug `json:"duplicateSlugs"`
}

// OK reports whether the corpus has nothing to fix.
func (r ValidationReport) OK() bool {
	return len(r.Issues) == 0 && len(r.SlugMismatches) == 0 && len(r.DuplicateSlugs) == 0
}

func clonePosts(posts []Post) []Post {
	out := make([]Post, len(posts))
	for i, post := range posts {
		out[i] = post.Clone()
	}
	return out
}
