package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/restatolahdata/go-artikel/internal/markdown"
)

func (a *app) tocCommand() *cobra.Command {
	var (
		minLevel, maxLevel int
		extensions         []string
	)
	cmd := &cobra.Command{
		Use:   "toc <file>",
		Short: "Print the heading outline of an article file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readArticleBody(args[0])
			if err != nil {
				return err
			}
			opts := []markdown.Option{}
			if len(extensions) > 0 {
				opts = append(opts, markdown.WithExtensions(extensions...))
			}
			items := markdown.NewRenderer(opts...).TOC(body, markdown.TOCOptionsFor(minLevel, maxLevel))

			out := cmd.OutOrStdout()
			if a.flags.jsonOut {
				return writeJSON(out, items)
			}
			for _, item := range items {
				indent := strings.Repeat("  ", item.Level-1)
				fmt.Fprintf(out, "%s- %s %s\n", indent, item.Title, mutedStyle.Render(item.URL))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&minLevel, "min-level", 1, "shallowest heading level listed")
	cmd.Flags().IntVar(&maxLevel, "max-level", 3, "deepest heading level listed (at most 3)")
	cmd.Flags().StringSliceVar(&extensions, "ext", nil, "markdown extensions, as for render")
	return cmd
}

// readArticleBody returns the markdown of path without its front matter.
func readArticleBody(path string) ([]byte, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	_, body, err := markdown.ParseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return body, nil
}
