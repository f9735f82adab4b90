// Package ledger persists which apartments paid for which billing periods.
package ledger

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/ostapenco/domovyk/internal/model"
)

// metaKey is the reserved top-level key holding scan bookkeeping. Report
// rendering ignores it; load/save must carry it through untouched.
const metaKey = "_meta"

// Meta is scan bookkeeping persisted alongside the payment records.
type Meta struct {
	LastScanAt   time.Time `json:"last_scan_at,omitempty"`
	LastUpdateID int       `json:"last_update_id,omitempty"`
}

// Ledger maps billing periods to the set of apartments that confirmed
// payment. It only ever grows during a scan; corrections are a manual,
// out-of-band edit of the file.
type Ledger struct {
	periods map[string][]string
	// extra carries top-level keys that are neither periods nor the
	// reserved meta key, so a hand-edited file survives a save intact.
	extra map[string]json.RawMessage
	Meta  Meta
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{periods: make(map[string][]string)}
}

// Merge credits an apartment for a period. It is idempotent: merging an
// apartment already present for the period is a no-op. Reports whether a
// new entry was recorded.
func (l *Ledger) Merge(apartment string, p model.Period) bool {
	key := p.Key()
	for _, a := range l.periods[key] {
		if a == apartment {
			return false
		}
	}
	l.periods[key] = append(l.periods[key], apartment)
	return true
}

// Paid returns the apartments credited for a period, deduplicated and in
// ascending numeric order.
func (l *Ledger) Paid(p model.Period) []string {
	return normalizeIDs(l.periods[p.Key()])
}

// Periods returns every period present in the ledger, oldest first.
func (l *Ledger) Periods() []model.Period {
	out := make([]model.Period, 0, len(l.periods))
	for key := range l.periods {
		p, err := model.ParsePeriodKey(key)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Len returns the number of periods with at least one payment.
func (l *Ledger) Len() int {
	return len(l.periods)
}

// MarshalJSON writes the canonical on-disk shape: period keys mapping to
// sorted apartment arrays, plus the reserved meta key when non-empty.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(l.periods)+len(l.extra)+1)
	for key, apartments := range l.periods {
		out[key] = normalizeIDs(apartments)
	}
	for key, value := range l.extra {
		out[key] = value
	}
	if l.Meta != (Meta{}) {
		out[metaKey] = l.Meta
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the on-disk shape. A period key whose value is not
// an apartment array makes the whole document invalid; the store treats
// that as corrupt state and starts empty. Keys that are not period keys
// are kept verbatim in extra.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.periods = make(map[string][]string, len(raw))
	l.extra = nil
	l.Meta = Meta{}
	for key, value := range raw {
		if key == metaKey {
			if err := json.Unmarshal(value, &l.Meta); err != nil {
				return fmt.Errorf("invalid %s entry: %w", metaKey, err)
			}
			continue
		}
		if _, err := model.ParsePeriodKey(key); err != nil {
			if l.extra == nil {
				l.extra = make(map[string]json.RawMessage)
			}
			l.extra[key] = value
			continue
		}
		var apartments []string
		if err := json.Unmarshal(value, &apartments); err != nil {
			return fmt.Errorf("invalid entry for period %s: %w", key, err)
		}
		l.periods[key] = normalizeIDs(apartments)
	}
	return nil
}

// normalizeIDs deduplicates and sorts apartment identifiers numerically,
// falling back to lexicographic order for non-numeric values.
func normalizeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		a, errA := strconv.Atoi(out[i])
		b, errB := strconv.Atoi(out[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return out[i] < out[j]
	})
	return out
}
