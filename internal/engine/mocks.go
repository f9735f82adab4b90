package engine

import (
	"context"

	"github.com/ostapenco/domovyk/internal/ledger"
	"github.com/ostapenco/domovyk/internal/model"
)

// MockSource is a canned MessageSource for tests.
type MockSource struct {
	Err          error
	Messages     []model.Message
	LastUpdateID int
	FetchCalls   int
	LastOffset   int
	LastLimit    int
}

// FetchMessages implements service.MessageSource.
func (m *MockSource) FetchMessages(_ context.Context, offset, limit int) ([]model.Message, int, error) {
	m.FetchCalls++
	m.LastOffset = offset
	m.LastLimit = limit
	if m.Err != nil {
		return nil, 0, m.Err
	}
	return m.Messages, m.LastUpdateID, nil
}

// MockAnnouncer records sent and pinned messages for tests.
type MockAnnouncer struct {
	SendErr    error
	PinErr     error
	UnpinErr   error
	Sent       []string
	Pinned     []int
	UnpinCalls int
	nextID     int
}

// SendMessage implements service.Announcer.
func (m *MockAnnouncer) SendMessage(_ context.Context, text string) (int, error) {
	if m.SendErr != nil {
		return 0, m.SendErr
	}
	m.nextID++
	m.Sent = append(m.Sent, text)
	return m.nextID, nil
}

// PinMessage implements service.Announcer.
func (m *MockAnnouncer) PinMessage(_ context.Context, messageID int) error {
	if m.PinErr != nil {
		return m.PinErr
	}
	m.Pinned = append(m.Pinned, messageID)
	return nil
}

// UnpinAll implements service.Announcer.
func (m *MockAnnouncer) UnpinAll(_ context.Context) error {
	if m.UnpinErr != nil {
		return m.UnpinErr
	}
	m.UnpinCalls++
	return nil
}

// MockStore is an in-memory LedgerStore for tests.
type MockStore struct {
	SaveErr   error
	Ledger    *ledger.Ledger
	Saved     []*ledger.Ledger
	SaveCalls int
}

// Load implements service.LedgerStore.
func (m *MockStore) Load() *ledger.Ledger {
	if m.Ledger == nil {
		m.Ledger = ledger.New()
	}
	return m.Ledger
}

// Save implements service.LedgerStore.
func (m *MockStore) Save(led *ledger.Ledger) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saved = append(m.Saved, led)
	return nil
}

// MockExporter records export calls for tests.
type MockExporter struct {
	Err         error
	ExportCalls int
	LastLedger  *ledger.Ledger
}

// Export implements service.LedgerExporter.
func (m *MockExporter) Export(_ context.Context, led *ledger.Ledger, _ model.Roster) error {
	m.ExportCalls++
	m.LastLedger = led
	return m.Err
}
