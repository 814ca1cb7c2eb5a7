package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mrlokans/sbreader/internal/database"
	"github.com/mrlokans/sbreader/internal/database/corpus"
)

func newVerifyCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that chapter ids follow canto and chapter number order",
		Long: `Chapter navigation steps by chapter id. Verify reports every pair of
adjacent chapters whose ids disagree with their (canto, chapter) numbers
and exits non-zero when any are found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.config()
			db, err := database.NewCorpusDatabase(cfg.Database.CorpusPath, database.DefaultOptions())
			if err != nil {
				return err
			}
			defer db.Close()

			violations, err := corpus.NewRepository(db.DB).CheckKeyOrder(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				if err := outputJSON(out, violations); err != nil {
					return err
				}
			} else if len(violations) == 0 {
				fmt.Fprintln(out, "Chapter key order OK")
			} else {
				t := newTable(out, table.Row{"Chapter ID", "Canto.Chapter", "Next ID", "Next Canto.Chapter"})
				for _, v := range violations {
					t.AppendRow(table.Row{
						v.ChapterID,
						fmt.Sprintf("%d.%d", v.CantoNumber, v.ChapterNumber),
						v.NextChapterID,
						fmt.Sprintf("%d.%d", v.NextCantoNumber, v.NextChapterNumber),
					})
				}
				t.Render()
			}

			if len(violations) > 0 {
				return fmt.Errorf("%d chapter key-order violations", len(violations))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output violations as JSON")
	return cmd
}
