package cli

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mrlokans/sbreader/internal/entities"
	"github.com/mrlokans/sbreader/internal/importers"
	"github.com/mrlokans/sbreader/internal/services"
)

func newCantosCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "cantos",
		Short: "List cantos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stores, err := opts.openStores()
			if err != nil {
				return err
			}
			defer stores.Close()

			cantos, err := stores.Corpus.ListCantos(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return outputJSON(out, cantos)
			}
			if len(cantos) == 0 {
				fmt.Fprintln(out, "No cantos found")
				return nil
			}
			t := newTable(out, table.Row{"ID", "Canto", "Title"})
			for _, c := range cantos {
				t.AppendRow(table.Row{c.ID, c.CantoNumber, c.Title})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newChaptersCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		titlesPath string
	)

	cmd := &cobra.Command{
		Use:   "chapters <cantoId>",
		Short: "List the chapters of a canto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cantoID, err := parseID(args[0])
			if err != nil {
				return err
			}

			stores, err := opts.openStores()
			if err != nil {
				return err
			}
			defer stores.Close()

			if titlesPath == "" {
				titlesPath = opts.config().Corpus.TitlesPath
			}
			var titles entities.TitleTable
			if titlesPath != "" {
				if titles, err = importers.LoadTitlesFile(titlesPath); err != nil {
					return err
				}
			}

			chapters, err := services.NewReader(stores.Corpus, titles).ListChapters(cmd.Context(), cantoID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return outputJSON(out, chapters)
			}
			if len(chapters) == 0 {
				fmt.Fprintln(out, "No chapters found")
				return nil
			}
			t := newTable(out, table.Row{"ID", "Chapter", "Title"})
			for _, ch := range chapters {
				t.AppendRow(table.Row{ch.ID, ch.ChapterNumber, ch.Title})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&titlesPath, "titles", "", "Chapter title table (default from CORPUS_TITLES_PATH)")
	return cmd
}

func newVersesCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "verses <chapterId>",
		Short: "List the verses of a chapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chapterID, err := parseID(args[0])
			if err != nil {
				return err
			}

			stores, err := opts.openStores()
			if err != nil {
				return err
			}
			defer stores.Close()

			verses, err := stores.Corpus.ListVerses(cmd.Context(), chapterID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return outputJSON(out, verses)
			}
			if len(verses) == 0 {
				fmt.Fprintln(out, "No verses found")
				return nil
			}
			t := newTable(out, table.Row{"ID", "Verse", "Text", "Translation"})
			for _, v := range verses {
				t.AppendRow(table.Row{v.ID, v.VerseNumber, excerpt(v.Text), excerpt(v.Translation)})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive number", raw)
	}
	return uint(id), nil
}

func parseNumber(raw, name string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive number", name, raw)
	}
	return n, nil
}
