package sheets

import (
	"context"
	"sync"

	"github.com/funnelcast/funnelcast/internal/model"
	"github.com/funnelcast/funnelcast/internal/service"
)

// MockWriter is a mock implementation of ReportWriter for testing.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, report *model.Report) error
	LastReport     *model.Report
	WriteCallCount int
	mu             sync.Mutex
}

var _ service.ReportWriter = (*MockWriter)(nil)

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// Write implements the ReportWriter interface.
func (m *MockWriter) Write(ctx context.Context, report *model.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastReport = report

	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, report)
	}
	return nil
}

// Reset clears all recorded calls.
func (m *MockWriter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount = 0
	m.LastReport = nil
}

// SetWriteError configures the mock to return an error on Write calls.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(_ context.Context, _ *model.Report) error {
		return err
	}
}
