package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/funnelcast/funnelcast/internal/common"
	"github.com/funnelcast/funnelcast/internal/service"
)

// CSVFetcher downloads published-sheet CSV exports over HTTP with retry.
type CSVFetcher struct {
	client *http.Client
	retry  service.RetryOptions
}

// NewCSVFetcher creates a fetcher with the given HTTP timeout.
func NewCSVFetcher(timeout time.Duration) *CSVFetcher {
	return &CSVFetcher{
		client: &http.Client{Timeout: timeout},
		retry: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 200 * time.Millisecond,
			MaxDelay:     5 * time.Second,
			Multiplier:   2.0,
		},
	}
}

// Fetch downloads and parses one CSV source. Transport errors and non-2xx
// responses are retried with backoff; the final error wraps
// common.ErrSourceUnavailable so callers can degrade gracefully.
func (f *CSVFetcher) Fetch(ctx context.Context, id, url string) (*RawTable, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: source %s has no url", common.ErrSourceUnavailable, id)
	}

	var table *RawTable
	err := common.WithRetry(ctx, func() error {
		t, err := f.fetchOnce(ctx, url)
		if err != nil {
			return err
		}
		table = t
		return nil
	}, f.retry)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrSourceUnavailable, id, err)
	}
	return table, nil
}

func (f *CSVFetcher) fetchOnce(ctx context.Context, url string) (*RawTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &common.RetryableError{Err: err, Retryable: false}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		// 4xx responses will not improve on retry.
		return nil, &common.RetryableError{Err: err, Retryable: resp.StatusCode >= 500}
	}

	return ParseCSV(resp.Body)
}

// ParseCSV reads an entire CSV stream into a RawTable. Header cells are
// trimmed; ragged rows are kept as-is for the repair step.
func ParseCSV(r io.Reader) (*RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &common.RetryableError{Err: fmt.Errorf("malformed csv: %w", err), Retryable: false}
	}
	if len(records) == 0 {
		return &RawTable{}, nil
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}

	return &RawTable{Header: header, Rows: records[1:]}, nil
}
