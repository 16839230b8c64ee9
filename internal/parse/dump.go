package parse

import (
	"github.com/dekarrin/rosed"
)

// Dump renders the ACTION/GOTO table as an aligned ASCII table for human
// inspection, via rosed's InsertTableOpts layout. colWidth sets the column
// width rosed wraps cell contents to.
func (t *Table) Dump(colWidth int) string {
	rows := t.DumpRows()
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, colWidth, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
