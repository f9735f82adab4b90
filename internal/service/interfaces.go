// Package service defines the interfaces between the run orchestrator and
// its collaborators, so each side can be tested with mocks.
package service

import (
	"context"
	"time"

	"github.com/ostapenco/domovyk/internal/ledger"
	"github.com/ostapenco/domovyk/internal/model"
)

// MessageSource fetches a bounded batch of chat messages belonging to the
// monitored chat. offset is the first update identifier to request; the
// returned lastUpdateID is the highest identifier seen in the batch (zero
// when the batch was empty).
type MessageSource interface {
	FetchMessages(ctx context.Context, offset, limit int) (messages []model.Message, lastUpdateID int, err error)
}

// Announcer sends rendered messages into the monitored chat and manages
// the pinned announcement.
type Announcer interface {
	SendMessage(ctx context.Context, text string) (messageID int, err error)
	PinMessage(ctx context.Context, messageID int) error
	UnpinAll(ctx context.Context) error
}

// LedgerExporter pushes the ledger to an external mirror, such as a
// spreadsheet the building council reads. Export failures never fail a run.
type LedgerExporter interface {
	Export(ctx context.Context, led *ledger.Ledger, roster model.Roster) error
}

// LedgerStore loads and persists the ledger between runs. Load never
// fails: missing or corrupt state comes back as an empty ledger.
type LedgerStore interface {
	Load() *ledger.Ledger
	Save(led *ledger.Ledger) error
}

// RetryOptions configures retry behavior for transient failures.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
