package mqtt

import (
	"context"
	"fmt"
	"sync"

	"github.com/induplan/pathopt/core/notify"
)

// MockAnnouncer records published summaries for tests.
type MockAnnouncer struct {
	mu        sync.Mutex
	Summaries []notify.RunSummary
	Fail      bool
	Closed    bool
}

// PublishRunSummary records the summary or returns an error if configured
// to fail.
func (m *MockAnnouncer) PublishRunSummary(_ context.Context, s notify.RunSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return fmt.Errorf("publish failed")
	}
	m.Summaries = append(m.Summaries, s)
	return nil
}

// Close marks the announcer as closed.
func (m *MockAnnouncer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}
