package source

import (
	"context"
	"fmt"

	"github.com/funnelcast/funnelcast/internal/common"
)

// MemFetcher serves fixed tables by source id. Used in tests and offline runs.
type MemFetcher struct {
	Tables map[string]*RawTable
	Errs   map[string]error
	Calls  int
}

// Fetch returns the configured table or error for id.
func (m *MemFetcher) Fetch(_ context.Context, id, _ string) (*RawTable, error) {
	m.Calls++
	if err, ok := m.Errs[id]; ok {
		return nil, err
	}
	if t, ok := m.Tables[id]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: no fixture for %s", common.ErrSourceUnavailable, id)
}
