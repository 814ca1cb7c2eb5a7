// Package cli wires the sbreader command line: the server itself plus
// maintenance and inspection commands that work directly on the stores.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/sbreader/internal/config"
	"github.com/mrlokans/sbreader/internal/entrypoint"
)

// rootOptions are the persistent flags shared by every command. Empty
// values fall back to the environment configuration.
type rootOptions struct {
	corpusDB    string
	bookmarksDB string
	version     string
}

func (o *rootOptions) config() *config.Config {
	cfg := config.NewConfig()
	if o.corpusDB != "" {
		cfg.Database.CorpusPath = o.corpusDB
	}
	if o.bookmarksDB != "" {
		cfg.Database.BookmarksPath = o.bookmarksDB
	}
	return cfg
}

func (o *rootOptions) openStores() (*entrypoint.Stores, error) {
	return entrypoint.OpenStores(o.config().Database)
}

// NewRootCommand builds the command tree. Running it without a subcommand
// starts the server.
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{version: version}

	serve := newServeCmd(opts)
	cmd := &cobra.Command{
		Use:           "sbreader",
		Short:         "sbreader - Srimad-Bhagavatam reader storage service",
		Long:          "sbreader imports the scripture corpus, serves it over HTTP and keeps the reader's bookmarks and last-read position.",
		Version:       version,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          serve.RunE,
	}

	cmd.PersistentFlags().StringVar(&opts.corpusDB, "corpus-db", "", "Corpus database path (default from CORPUS_DATABASE_PATH)")
	cmd.PersistentFlags().StringVar(&opts.bookmarksDB, "bookmarks-db", "", "Bookmarks database path (default from BOOKMARKS_DATABASE_PATH)")

	cmd.AddCommand(serve)
	cmd.AddCommand(newImportCmd(opts))
	cmd.AddCommand(newVerifyCmd(opts))
	cmd.AddCommand(newCantosCmd(opts))
	cmd.AddCommand(newChaptersCmd(opts))
	cmd.AddCommand(newVersesCmd(opts))
	cmd.AddCommand(newBookmarksCmd(opts))
	cmd.AddCommand(newLastReadCmd(opts))

	return cmd
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default if no command given)",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			entrypoint.Run(opts.config(), opts.version)
			return nil
		},
	}
}
