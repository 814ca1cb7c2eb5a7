package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/mrlokans/sbreader/internal/audit"
	"github.com/mrlokans/sbreader/internal/database"
	"github.com/mrlokans/sbreader/internal/database/corpus"
	"github.com/mrlokans/sbreader/internal/entities"
	"github.com/mrlokans/sbreader/internal/importers"
)

// errDryRun rolls back the import transaction after a dry run.
var errDryRun = errors.New("dry run")

func newImportCmd(opts *rootOptions) *cobra.Command {
	var (
		file      string
		dbPath    string
		reportDir string
		dryRun    bool
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a nested corpus document into the corpus store",
		Long: `Import reads a JSON corpus document (cantos > chapters > verses) and adds
every row that is not stored yet. Existing rows are left untouched, so the
command can be re-run to complete an interrupted import.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := importers.LoadDocumentFile(file)
			if err != nil {
				return err
			}

			cfg := opts.config()
			if dbPath != "" {
				cfg.Database.CorpusPath = dbPath
			}
			db, err := database.NewCorpusDatabase(cfg.Database.CorpusPath, database.Options{
				LogLevel: database.ParseLogLevel(cfg.Database.LogLevel),
			})
			if err != nil {
				return err
			}
			defer db.Close()

			out := cmd.OutOrStdout()
			summary := importers.Summarize(doc)
			fmt.Fprintf(out, "Document: %d cantos, %d chapters, %d verses\n", summary.Cantos, summary.Chapters, summary.Verses)

			report := &audit.ImportReport{
				Source:    file,
				DryRun:    dryRun,
				StartedAt: time.Now(),
				Document:  summary,
			}
			if dryRun {
				report.Result, err = dryRunImport(cmd, db.DB, doc)
			} else {
				// Rows are committed as they are written, so an interrupted
				// run keeps its progress and a re-run picks up from there.
				report.Result, err = importers.NewCorpusImporter(corpus.NewRepository(db.DB)).Import(cmd.Context(), doc)
			}
			report.FinishedAt = time.Now()
			if err != nil {
				report.Error = err.Error()
			}

			if reportDir == "" {
				reportDir = cfg.Corpus.ReportDir
			}
			if reportDir != "" {
				name, saveErr := audit.NewAuditor(reportDir).SaveImportReport(report)
				if saveErr != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", saveErr)
				} else {
					fmt.Fprintf(out, "Report saved: %s\n", name)
				}
			}
			if err != nil {
				return err
			}

			printImportResult(cmd, report.Result, dryRun, verbose)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Corpus document to import (JSON)")
	cmd.Flags().StringVar(&dbPath, "db", "", "Corpus database path (overrides --corpus-db)")
	cmd.Flags().StringVar(&reportDir, "report-dir", "", "Write a JSON import report to this directory (defaults to CORPUS_IMPORT_REPORT_DIR)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be imported without saving")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List every row that failed")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// dryRunImport runs the import inside a transaction that is always rolled
// back, so the counts are the ones a real run would produce.
func dryRunImport(cmd *cobra.Command, db *gorm.DB, doc entities.CorpusDocument) (importers.ImportResult, error) {
	var result importers.ImportResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var importErr error
		result, importErr = importers.NewCorpusImporter(corpus.NewRepository(tx)).Import(cmd.Context(), doc)
		if importErr != nil {
			return importErr
		}
		return errDryRun
	})
	if errors.Is(err, errDryRun) {
		err = nil
	}
	return result, err
}

func printImportResult(cmd *cobra.Command, result importers.ImportResult, dryRun, verbose bool) {
	out := cmd.OutOrStdout()
	if dryRun {
		fmt.Fprintln(out, "Dry run: no changes were saved")
	}

	t := newTable(out, table.Row{"Table", "Created", "Existing"})
	t.AppendRow(table.Row{"Cantos", result.CantosCreated, result.CantosExisting})
	t.AppendRow(table.Row{"Chapters", result.ChaptersCreated, result.ChaptersExisting})
	t.AppendRow(table.Row{"Verses", result.VersesCreated, result.VersesExisting})
	t.Render()

	if result.Failed > 0 {
		fmt.Fprintf(out, "%d rows failed and were skipped\n", result.Failed)
		if verbose {
			for _, msg := range result.Errors {
				fmt.Fprintf(out, "  - %s\n", msg)
			}
		}
	}
}
