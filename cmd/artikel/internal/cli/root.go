// Package cli holds the cobra commands of the artikel binary.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/restatolahdata/go-artikel"
	"github.com/restatolahdata/go-artikel/cmd/artikel/internal/bootstrap"
)

type globalFlags struct {
	configPath string
	contentDir string
	authorsDir string
	baseURL    string
	logLevel   string
	jsonOut    bool
}

type app struct {
	flags globalFlags
	build func(bootstrap.Options) (*artikel.Module, error)
}

// NewRootCommand returns the artikel command tree.
func NewRootCommand() *cobra.Command {
	a := &app{build: bootstrap.BuildModule}

	root := &cobra.Command{
		Use:   "artikel",
		Short: "Serve and inspect the statistics article library",
		Long: `artikel reads article folders (<content>/<category>/<slug>/index.mdx),
serves them over a JSON API and offers offline tools for search, outlines,
rendering and content validation.`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.flags.configPath, "config", "c", "artikel.yaml", "YAML configuration file")
	flags.StringVar(&a.flags.contentDir, "content-dir", "", "article root (overrides content.dir)")
	flags.StringVar(&a.flags.authorsDir, "authors-dir", "", "author profile directory (overrides content.authors_dir)")
	flags.StringVar(&a.flags.baseURL, "base-url", "", "public site URL (overrides site.base_url)")
	flags.StringVar(&a.flags.logLevel, "log-level", "", "log level (overrides logging.level)")
	flags.BoolVar(&a.flags.jsonOut, "json", false, "print JSON instead of text")

	root.AddCommand(
		a.serveCommand(),
		a.searchCommand(),
		a.tocCommand(),
		a.renderCommand(),
		a.validateCommand(),
		a.redirectsCommand(),
	)
	return root
}

// options maps the global flags onto bootstrap options. defaultLevel is
// used when --log-level is not given; empty keeps the configured level.
func (a *app) options(defaultLevel string) bootstrap.Options {
	level := a.flags.logLevel
	if level == "" {
		level = defaultLevel
	}
	return bootstrap.Options{
		ConfigPath: a.flags.configPath,
		ContentDir: a.flags.contentDir,
		AuthorsDir: a.flags.authorsDir,
		BaseURL:    a.flags.baseURL,
		LogLevel:   level,
	}
}
