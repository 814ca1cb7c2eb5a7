package cli

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
)

// textColumnWidth caps verse text in tables; full text is available with --json.
const textColumnWidth = 60

func outputJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func newTable(w io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	return t
}

// excerpt flattens multi-line text and truncates it to the table column,
// counting display width rather than bytes.
func excerpt(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return runewidth.Truncate(s, textColumnWidth, "...")
}
