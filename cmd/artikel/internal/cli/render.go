package cli

import (
	"github.com/spf13/cobra"

	"github.com/restatolahdata/go-artikel/internal/markdown"
)

func (a *app) renderCommand() *cobra.Command {
	var (
		base       string
		extensions []string
		hardWraps  bool
	)
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render an article file to HTML",
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
			if hardWraps {
				opts = append(opts, markdown.WithHardWraps())
			}
			html, err := markdown.NewRenderer(opts...).RenderWithBase(body, base)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(html)
			return err
		},
	}
	cmd.Flags().StringVar(&base, "image-base", "", "prefix for relative image paths, e.g. /posts/metode-statistik/uji-t/")
	cmd.Flags().StringSliceVar(&extensions, "ext", nil, "markdown extensions (table, strikethrough, linkify, tasklist, footnote, gfm)")
	cmd.Flags().BoolVar(&hardWraps, "hard-wraps", false, "render soft line breaks as <br>")
	return cmd
}
