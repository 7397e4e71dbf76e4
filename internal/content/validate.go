package content

import (
	"context"
	"sort"

	"github.com/goliatone/go-slug"
)

// Validate reparses the whole tree, bypassing any snapshot, and reports
// skipped documents, slug disagreements and slugs used by more than one
// category.
func (s *service) Validate(ctx context.Context) (ValidationReport, error) {
	result, err := s.loader.Load(ctx)
	if err != nil {
		return ValidationReport{}, err
	}

	report := ValidationReport{
		Posts:          len(result.Posts),
		Issues:         append([]LoadIssue{}, result.Issues...),
		SlugMismatches: slugMismatches(result.Posts),
		DuplicateSlugs: duplicateSlugs(result.Posts),
	}
	s.logger.Info("content.validate.completed",
		"posts", report.Posts,
		"issues", len(report.Issues),
		"slug_mismatches", len(report.SlugMismatches),
		"duplicate_slugs", len(report.DuplicateSlugs),
	)
	return report, nil
}

func slugMismatches(posts []Post) []SlugMismatch {
	out := []SlugMismatch{}
	for _, post := range posts {
		declared := post.FrontMatter.Slug
		if declared == "" {
			continue
		}
		normalized, err := slug.Normalize(declared)
		if err != nil {
			normalized = ""
		}
		if normalized == post.Folder {
			continue
		}
		out = append(out, SlugMismatch{
			Path:            post.Path,
			Folder:          post.Folder,
			FrontMatterSlug: declared,
			Normalized:      normalized,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func duplicateSlugs(posts []Post) []DuplicateSlug {
	paths := map[string][]string{}
	for _, post := range posts {
		paths[post.Slug] = append(paths[post.Slug], post.Path)
	}
	out := []DuplicateSlug{}
	for slugValue, ps := range paths {
		if len(ps) < 2 {
			continue
		}
		sort.Strings(ps)
		out = append(out, DuplicateSlug{Slug: slugValue, Paths: ps})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}
