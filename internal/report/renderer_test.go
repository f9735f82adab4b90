package report

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ostapenco/domovyk/internal/config"
	"github.com/ostapenco/domovyk/internal/ledger"
	"github.com/ostapenco/domovyk/internal/model"
)

var jan25 = model.Period{Month: time.January, Year: 2025}

func testBuilding() *config.Building {
	templates := make([]string, 12)
	for i := range templates {
		templates[i] = "Збір за {month_name}: {amount} грн на картку {card}. Квартири: {neighbors_list}"
	}
	return &config.Building{
		ActiveApartments:  config.IDList{"6", "7", "11"},
		MonthlyFee:        170,
		CardDetails:       "5168 7451 4881 9912",
		Templates:         templates,
		ReportTemplates:   []string{"За {month_name} оплатили: {paid_list}. Чекаємо на: {unpaid_list}"},
		ReminderTemplates: []string{"Нагадування за {month_name}: {unpaid_list} — картка {card}"},
	}
}

func newTestRenderer(seed int64) *Renderer {
	return NewRenderer(testBuilding(), rand.New(rand.NewSource(seed)))
}

func TestUnpaidList(t *testing.T) {
	led := ledger.New()
	led.Merge("6", jan25)

	roster := testBuilding().Roster()
	assert.Equal(t, []string{"7", "11"}, UnpaidList(led, roster, jan25))

	led.Merge("7", jan25)
	led.Merge("11", jan25)
	assert.Empty(t, UnpaidList(led, roster, jan25))
}

func TestRenderer_Announcement(t *testing.T) {
	got := newTestRenderer(1).Announcement(jan25)

	assert.Contains(t, got, "січень")
	assert.Contains(t, got, "170")
	assert.Contains(t, got, "5168 7451 4881 9912")
	assert.Contains(t, got, "6, 7, 11")
	assert.NotContains(t, got, "{")
}

func TestRenderer_StatusReport(t *testing.T) {
	led := ledger.New()
	led.Merge("11", jan25)
	led.Merge("6", jan25)

	got := newTestRenderer(1).StatusReport(led, jan25)
	assert.Contains(t, got, "оплатили: 6, 11")
	assert.Contains(t, got, "Чекаємо на: 7")
}

func TestRenderer_StatusReportEmptyLedger(t *testing.T) {
	got := newTestRenderer(1).StatusReport(ledger.New(), jan25)
	assert.Contains(t, got, "поки ніхто")
}

func TestRenderer_StatusReportEveryonePaid(t *testing.T) {
	led := ledger.New()
	for _, a := range []string{"6", "7", "11"} {
		led.Merge(a, jan25)
	}

	got := newTestRenderer(1).StatusReport(led, jan25)
	assert.Contains(t, got, "всі! 🎉")
}

func TestRenderer_ReminderOnlyWhenSomeoneOwes(t *testing.T) {
	led := ledger.New()
	led.Merge("6", jan25)

	text, due := newTestRenderer(1).Reminder(led, jan25)
	assert.True(t, due)
	assert.Contains(t, text, "7, 11")

	led.Merge("7", jan25)
	led.Merge("11", jan25)
	_, due = newTestRenderer(1).Reminder(led, jan25)
	assert.False(t, due)
}

func TestRenderer_FixedSeedIsDeterministic(t *testing.T) {
	b := testBuilding()
	b.ReportTemplates = []string{
		"варіант один: {paid_list} / {unpaid_list}",
		"варіант два: {paid_list} / {unpaid_list}",
		"варіант три: {paid_list} / {unpaid_list}",
	}
	led := ledger.New()
	led.Merge("6", jan25)

	first := NewRenderer(b, rand.New(rand.NewSource(7))).StatusReport(led, jan25)
	second := NewRenderer(b, rand.New(rand.NewSource(7))).StatusReport(led, jan25)
	assert.Equal(t, first, second)
}

func TestRenderer_Signature(t *testing.T) {
	b := testBuilding()
	b.Signature = "_🤖 beta-версія_"

	got := NewRenderer(b, rand.New(rand.NewSource(1))).Announcement(jan25)
	assert.Contains(t, got, "\n\n_🤖 beta-версія_")
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "січень", MonthName(time.January))
	assert.Equal(t, "грудень", MonthName(time.December))
}
