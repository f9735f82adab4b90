package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ostapenco/domovyk/internal/model"
	"github.com/ostapenco/domovyk/internal/period"
)

func newTestClassifier(roster []string, recency time.Duration) *Classifier {
	return New(model.NewRoster(roster), DefaultVocabulary(), period.NewCalculator(25), recency)
}

func msg(text string) model.Message {
	return model.Message{Text: text}
}

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		name   string
		roster []string
		text   string
		now    time.Time
		want   []model.Attribution
	}{
		{
			name:   "explicit month name dominates and does not double count",
			roster: []string{"14"},
			text:   "кв 14 оплачено січень",
			now:    at(2025, time.January, 10),
			want: []model.Attribution{
				{Apartment: "14", Period: model.Period{Month: time.January, Year: 2025}},
			},
		},
		{
			name:   "multi month payment credits consecutive periods",
			roster: []string{"44"},
			text:   "44 за 2 міс",
			now:    at(2025, time.March, 20),
			want: []model.Attribution{
				{Apartment: "44", Period: model.Period{Month: time.March, Year: 2025}},
				{Apartment: "44", Period: model.Period{Month: time.April, Year: 2025}},
			},
		},
		{
			name:   "russian month unit works too",
			roster: []string{"9"},
			text:   "квартира 9 оплатила за 3 месяца",
			now:    at(2025, time.June, 2),
			want: []model.Attribution{
				{Apartment: "9", Period: model.Period{Month: time.June, Year: 2025}},
				{Apartment: "9", Period: model.Period{Month: time.July, Year: 2025}},
				{Apartment: "9", Period: model.Period{Month: time.August, Year: 2025}},
			},
		},
		{
			name:   "no roster number yields nothing",
			roster: []string{"14"},
			text:   "дякую за каву",
			now:    at(2025, time.May, 5),
			want:   nil,
		},
		{
			name:   "roster number without confirmation intent yields nothing",
			roster: []string{"14"},
			text:   "хто бачив 14 сьогодні",
			now:    at(2025, time.May, 5),
			want:   nil,
		},
		{
			name:   "bare number reads as confirmation",
			roster: []string{"14"},
			text:   "кв 14",
			now:    at(2025, time.May, 5),
			want: []model.Attribution{
				{Apartment: "14", Period: model.Period{Month: time.May, Year: 2025}},
			},
		},
		{
			name:   "default period after cutoff is next month",
			roster: []string{"7"},
			text:   "7 оплатила",
			now:    at(2025, time.May, 27),
			want: []model.Attribution{
				{Apartment: "7", Period: model.Period{Month: time.June, Year: 2025}},
			},
		},
		{
			name:   "several roster numbers credit each apartment",
			roster: []string{"6", "7", "11"},
			text:   "оплатили 6 і 7",
			now:    at(2025, time.February, 3),
			want: []model.Attribution{
				{Apartment: "6", Period: model.Period{Month: time.February, Year: 2025}},
				{Apartment: "7", Period: model.Period{Month: time.February, Year: 2025}},
			},
		},
		{
			name:   "non roster numbers are ignored",
			roster: []string{"6"},
			text:   "оплатив 6, сума 170",
			now:    at(2025, time.February, 3),
			want: []model.Attribution{
				{Apartment: "6", Period: model.Period{Month: time.February, Year: 2025}},
			},
		},
		{
			name:   "january named late in the year means next january",
			roster: []string{"14"},
			text:   "14 оплата за січень",
			now:    at(2024, time.November, 20),
			want: []model.Attribution{
				{Apartment: "14", Period: model.Period{Month: time.January, Year: 2025}},
			},
		},
		{
			name:   "december named in january means the december just passed",
			roster: []string{"14"},
			text:   "кв 14 оплатила за грудень",
			now:    at(2025, time.January, 5),
			want: []model.Attribution{
				{Apartment: "14", Period: model.Period{Month: time.December, Year: 2024}},
			},
		},
		{
			name:   "month name and month count combine without duplicates",
			roster: []string{"14"},
			text:   "14 оплачено січень і ще за 2 міс",
			now:    at(2025, time.January, 10),
			want: []model.Attribution{
				{Apartment: "14", Period: model.Period{Month: time.January, Year: 2025}},
				{Apartment: "14", Period: model.Period{Month: time.February, Year: 2025}},
			},
		},
		{
			name:   "two month names credit both months",
			roster: []string{"3"},
			text:   "3 сплачено за березень і квітень",
			now:    at(2025, time.March, 12),
			want: []model.Attribution{
				{Apartment: "3", Period: model.Period{Month: time.March, Year: 2025}},
				{Apartment: "3", Period: model.Period{Month: time.April, Year: 2025}},
			},
		},
		{
			name:   "plus sign counts as confirmation",
			roster: []string{"21"},
			text:   "21 +",
			now:    at(2025, time.July, 14),
			want: []model.Attribution{
				{Apartment: "21", Period: model.Period{Month: time.July, Year: 2025}},
			},
		},
		{
			name:   "empty text yields nothing",
			roster: []string{"14"},
			text:   "",
			now:    at(2025, time.July, 14),
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClassifier(tt.roster, 0)
			got := c.Classify(msg(tt.text), tt.now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifier_RecencyWindow(t *testing.T) {
	now := at(2025, time.March, 10)
	c := newTestClassifier([]string{"14"}, 24*time.Hour)

	stale := model.Message{Text: "14 оплачено", SentAt: now.Add(-48 * time.Hour)}
	assert.Empty(t, c.Classify(stale, now))

	fresh := model.Message{Text: "14 оплачено", SentAt: now.Add(-2 * time.Hour)}
	assert.Len(t, c.Classify(fresh, now), 1)

	// Zero window disables the filter entirely.
	unlimited := newTestClassifier([]string{"14"}, 0)
	assert.Len(t, unlimited.Classify(stale, now), 1)
}

func TestClassifier_ApartmentNumberNotMistakenForCount(t *testing.T) {
	// The apartment token is blanked before the count rule runs, so
	// "кв 2" does not read as a two-month payment.
	c := newTestClassifier([]string{"2"}, 0)
	now := at(2025, time.March, 10)

	got := c.Classify(msg("2 оплачено"), now)
	assert.Equal(t, []model.Attribution{
		{Apartment: "2", Period: model.Period{Month: time.March, Year: 2025}},
	}, got)
}

func TestClassifier_DuplicateApartmentMentions(t *testing.T) {
	c := newTestClassifier([]string{"14"}, 0)
	now := at(2025, time.March, 10)

	got := c.Classify(msg("14 оплачено, повторюю 14"), now)
	assert.Len(t, got, 1)
}

func TestIsMostlyNumeric(t *testing.T) {
	assert.True(t, isMostlyNumeric("14"))
	assert.True(t, isMostlyNumeric("кв 7"))
	assert.False(t, isMostlyNumeric("довге речення з номером 14 всередині"))
	assert.False(t, isMostlyNumeric("без цифр"))
}
