// Package importers loads the nested corpus document into the corpus store.
//
// # Architecture
//
// The import walks the document one canto at a time:
//
//	CorpusDocument → sort by natural key → CorpusImporter → CorpusWriter → Storage
//
// Each canto passes through a linear state machine:
//
//	PendingCanto → PendingChapters → PendingVerses → Done
//
// Every row is an existence check on its natural key followed by an insert
// when missing. Existing cantos and chapters are still descended into, so
// running the importer again completes a partial import. Running it on a
// complete corpus changes nothing.
//
// # Row failures
//
// A row that cannot be validated or written is logged, recorded in
// ImportResult.Errors and skipped. A failed canto or chapter skips its own
// subtree only; the rest of the document is still imported.
//
// # Usage
//
//	doc, err := importers.LoadDocumentFile("./srimad-bhagavatam.json")
//	importer := importers.NewCorpusImporter(corpus.NewRepository(db.DB))
//	result, err := importer.Import(ctx, doc)
package importers
