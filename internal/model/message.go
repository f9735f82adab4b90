package model

import "time"

// Message is one chat message as seen by the scanner. Only the text body
// and timestamp matter for classification; chat and thread identifiers are
// used as a filter before classification ever runs.
type Message struct {
	SentAt   time.Time
	Text     string
	ChatID   int64
	ThreadID int
	UpdateID int
}

// Attribution credits one apartment with payment for one billing period.
// A single message may produce several attributions (multiple neighbors
// reported at once, or a multi-month payment).
type Attribution struct {
	Apartment string
	Period    Period
}

// Roster is the ordered list of active apartment identifiers, with a
// membership index for classification lookups.
type Roster struct {
	ids    []string
	member map[string]bool
}

// NewRoster builds a roster from normalized apartment identifier strings.
// Order is preserved; duplicates are dropped.
func NewRoster(ids []string) Roster {
	r := Roster{member: make(map[string]bool, len(ids))}
	for _, id := range ids {
		if id == "" || r.member[id] {
			continue
		}
		r.member[id] = true
		r.ids = append(r.ids, id)
	}
	return r
}

// Contains reports whether id is an active apartment.
func (r Roster) Contains(id string) bool {
	return r.member[id]
}

// IDs returns a copy of the active apartment identifiers in roster order.
func (r Roster) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Len returns the number of active apartments.
func (r Roster) Len() int {
	return len(r.ids)
}
