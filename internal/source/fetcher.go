// Package source retrieves raw tabular data from published spreadsheet CSV
// endpoints. It owns all fetch I/O; the pipeline only ever sees RawTable.
package source

import (
	"context"
)

// RawTable is one fetched sheet: a header row and untyped data rows. Rows may
// have ragged lengths; downstream column resolution tolerates that.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// Fetcher retrieves the current contents of one source sheet. Implementations
// must return an error rather than panic on any failure mode; callers treat a
// failed source as degraded, not fatal.
type Fetcher interface {
	Fetch(ctx context.Context, id, url string) (*RawTable, error)
}
