// Package report renders the announcement, status report, and reminder
// texts sent into the building chat.
package report

import (
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ostapenco/domovyk/internal/config"
	"github.com/ostapenco/domovyk/internal/ledger"
	"github.com/ostapenco/domovyk/internal/model"
)

// ukrainianMonths holds the display names used in every outgoing message.
var ukrainianMonths = [...]string{
	"січень", "лютий", "березень", "квітень", "травень", "червень",
	"липень", "серпень", "вересень", "жовтень", "листопад", "грудень",
}

// MonthName returns the Ukrainian name of a month.
func MonthName(m time.Month) string {
	return ukrainianMonths[int(m)-1]
}

// UnpaidList returns the roster apartments not credited for the period,
// in ascending numeric order.
func UnpaidList(led *ledger.Ledger, roster model.Roster, p model.Period) []string {
	paid := make(map[string]bool)
	for _, a := range led.Paid(p) {
		paid[a] = true
	}
	var unpaid []string
	for _, a := range roster.IDs() {
		if !paid[a] {
			unpaid = append(unpaid, a)
		}
	}
	sortNumeric(unpaid)
	return unpaid
}

// Renderer substitutes ledger state into the configured templates. Report
// and reminder phrasings are drawn uniformly from their pools via the
// injected random source, so a fixed seed makes output deterministic.
type Renderer struct {
	building *config.Building
	rng      *rand.Rand
	roster   model.Roster
}

// NewRenderer builds a renderer over the building config.
func NewRenderer(b *config.Building, rng *rand.Rand) *Renderer {
	return &Renderer{building: b, rng: rng, roster: b.Roster()}
}

// Announcement renders the payment-request announcement for a period from
// that calendar month's template.
func (r *Renderer) Announcement(p model.Period) string {
	roster := r.roster.IDs()
	sortNumeric(roster)
	text := strings.NewReplacer(
		"{month_name}", MonthName(p.Month),
		"{neighbors_list}", strings.Join(roster, ", "),
		"{card}", r.building.CardDetails,
		"{amount}", strconv.Itoa(r.building.MonthlyFee),
	).Replace(r.building.Templates[int(p.Month)-1])
	return r.sign(text)
}

// StatusReport renders the paid-versus-unpaid report for a period.
func (r *Renderer) StatusReport(led *ledger.Ledger, p model.Period) string {
	paid := led.Paid(p)
	unpaid := UnpaidList(led, r.roster, p)

	paidText := "поки ніхто"
	if len(paid) > 0 {
		paidText = strings.Join(paid, ", ")
	}
	unpaidText := "всі! 🎉"
	if len(unpaid) > 0 {
		unpaidText = strings.Join(unpaid, ", ")
	}

	text := strings.NewReplacer(
		"{month_name}", MonthName(p.Month),
		"{paid_list}", paidText,
		"{unpaid_list}", unpaidText,
	).Replace(r.pick(r.building.ReportTemplates))
	return r.sign(text)
}

// Reminder renders the late-payment nudge. The second return value is
// false when everyone already paid and no reminder should go out.
func (r *Renderer) Reminder(led *ledger.Ledger, p model.Period) (string, bool) {
	unpaid := UnpaidList(led, r.roster, p)
	if len(unpaid) == 0 {
		return "", false
	}

	text := strings.NewReplacer(
		"{month_name}", MonthName(p.Month),
		"{unpaid_list}", strings.Join(unpaid, ", "),
		"{card}", r.building.CardDetails,
	).Replace(r.pick(r.building.ReminderTemplates))
	return r.sign(text), true
}

func (r *Renderer) pick(pool []string) string {
	if len(pool) == 1 {
		return pool[0]
	}
	return pool[r.rng.Intn(len(pool))]
}

func (r *Renderer) sign(text string) string {
	if r.building.Signature == "" {
		return text
	}
	return text + "\n\n" + r.building.Signature
}

func sortNumeric(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return ids[i] < ids[j]
	})
}
