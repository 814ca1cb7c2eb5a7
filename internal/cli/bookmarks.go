package cli

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mrlokans/sbreader/internal/entities"
	"github.com/mrlokans/sbreader/internal/exporters"
)

func newBookmarksCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "List, toggle, remove and export bookmarks",
	}

	cmd.AddCommand(newBookmarksListCmd(opts))
	cmd.AddCommand(newBookmarksToggleCmd(opts))
	cmd.AddCommand(newBookmarksRemoveCmd(opts))
	cmd.AddCommand(newBookmarksExportCmd(opts))
	return cmd
}

func newBookmarksListCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookmarks in storage order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stores, err := opts.openStores()
			if err != nil {
				return err
			}
			defer stores.Close()

			list, err := stores.Bookmarks.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return outputJSON(out, list)
			}
			if len(list) == 0 {
				fmt.Fprintln(out, "No bookmarks yet")
				return nil
			}
			t := newTable(out, table.Row{"ID", "Verse", "Text"})
			for _, b := range list {
				t.AppendRow(table.Row{b.ID, fmt.Sprintf("%d.%d.%d", b.CantoID, b.ChapterNumber, b.VerseNumber), excerpt(b.Text)})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newBookmarksToggleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <chapterId> <verseNumber>",
		Short: "Bookmark a verse, or remove its bookmark",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			chapterID, err := parseID(args[0])
			if err != nil {
				return err
			}
			verseNumber, err := parseNumber(args[1], "verse number")
			if err != nil {
				return err
			}

			stores, err := opts.openStores()
			if err != nil {
				return err
			}
			defer stores.Close()

			ctx := cmd.Context()
			chapter, found, err := stores.Corpus.GetChapter(ctx, chapterID)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("chapter %d not found", chapterID)
			}
			verse, found, err := stores.Corpus.GetVerse(ctx, chapterID, verseNumber)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("verse %d not found in chapter %d", verseNumber, chapterID)
			}

			bookmarked, err := stores.Bookmarks.Toggle(ctx, entities.NewBookmark(*verse, chapter.CantoID, chapter.ChapterNumber))
			if err != nil {
				return err
			}

			state := "removed"
			if bookmarked {
				state = "added"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bookmark %s: %d.%d.%d\n", state, chapter.CantoID, chapter.ChapterNumber, verse.VerseNumber)
			return nil
		},
	}
}

func newBookmarksRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <bookmarkId>",
		Short: "Remove a bookmark by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			stores, err := opts.openStores()
			if err != nil {
				return err
			}
			defer stores.Close()

			if err := stores.Bookmarks.Remove(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bookmark %d removed\n", id)
			return nil
		},
	}
}

func newBookmarksExportCmd(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export bookmarks as Markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stores, err := opts.openStores()
			if err != nil {
				return err
			}
			defer stores.Close()

			list, err := stores.Bookmarks.List(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			result, err := exporters.NewBookmarksMarkdownExporter(w).Export(list)
			if err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bookmarks to %s\n", result.BookmarksExported, output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}
