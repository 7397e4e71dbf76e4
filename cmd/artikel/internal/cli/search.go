package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/restatolahdata/go-artikel/internal/content"
	"github.com/restatolahdata/go-artikel/internal/search"
)

type searchHit struct {
	Slug     string `json:"slug"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Score    int    `json:"score"`
	Excerpt  string `json:"excerpt"`
}

func (a *app) searchCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Rank articles against a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := a.build(a.options("warn"))
			if err != nil {
				return err
			}
			posts, err := module.Content().LoadAllPosts(cmd.Context())
			if err != nil {
				return err
			}

			engine := module.Search()
			if limit > 0 {
				engine = search.NewEngine(search.WithLimit(limit))
			}
			query := strings.Join(args, " ")
			results := engine.Search(query, posts)

			hits := make([]searchHit, len(results))
			for i, result := range results {
				hits[i] = searchHit{
					Slug:     result.Post.Slug,
					Category: result.Post.Category,
					Title:    result.Post.FrontMatter.Title,
					Date:     result.Post.FrontMatter.Date,
					Score:    result.Score,
					Excerpt:  content.Excerpt(result.Post),
				}
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonOut {
				return writeJSON(out, hits)
			}
			if len(hits) == 0 {
				fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("no articles match %q", query)))
				return nil
			}
			for _, hit := range hits {
				fmt.Fprintf(out, "%s %s %s\n", categoryBadge(hit.Category), titleStyle.Render(hit.Title), mutedStyle.Render(fmt.Sprintf("(score %d)", hit.Score)))
				fmt.Fprintf(out, "    %s/%s  %s\n", hit.Category, hit.Slug, mutedStyle.Render(hit.Date))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results (overrides search.limit)")
	return cmd
}
