package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	contentcmd "github.com/restatolahdata/go-artikel/internal/commands/content"
)

func (a *app) validateCommand() *cobra.Command {
	var strict, checkRedirects bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Report unreadable articles, slug mismatches, duplicate slugs and broken redirects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var report *contentcmd.Report
			opts := a.options("warn")
			opts.ReportSink = func(r contentcmd.Report) { report = &r }

			module, err := a.build(opts)
			if err != nil {
				return err
			}
			runErr := module.Commands().Validate.Execute(cmd.Context(), contentcmd.ValidateContentCommand{
				Strict:    strict,
				Redirects: checkRedirects,
			})
			if report == nil {
				return runErr
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonOut {
				if err := writeJSON(out, report); err != nil {
					return err
				}
			} else {
				printReport(out, *report)
			}
			if errors.Is(runErr, contentcmd.ErrContentInvalid) {
				return errors.New("validation failed")
			}
			return runErr
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when anything is reported")
	cmd.Flags().BoolVar(&checkRedirects, "redirects", true, "also check the legacy redirect table")
	return cmd
}

func printReport(out io.Writer, report contentcmd.Report) {
	fmt.Fprintf(out, "%s %d articles loaded\n", titleStyle.Render("content:"), report.Content.Posts)

	for _, issue := range report.Content.Issues {
		fmt.Fprintf(out, "  %s %s: %s\n", problemStyle.Render("skipped"), issue.Path, issue.Reason)
	}
	for _, mismatch := range report.Content.SlugMismatches {
		fmt.Fprintf(out, "  %s %s: folder %q, front matter slug %q (%s)\n",
			problemStyle.Render("slug"), mismatch.Path, mismatch.Folder, mismatch.FrontMatterSlug, mismatch.Normalized)
	}
	for _, dup := range report.Content.DuplicateSlugs {
		fmt.Fprintf(out, "  %s %q used by %v\n", problemStyle.Render("duplicate"), dup.Slug, dup.Paths)
	}
	for _, problem := range report.Redirects {
		fmt.Fprintf(out, "  %s /%s -> %s (%s)\n", problemStyle.Render("redirect"), problem.From, problem.Target, problem.Kind)
	}

	if report.OK() {
		fmt.Fprintln(out, okStyle.Render("ok"))
	}
}
