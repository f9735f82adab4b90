package classify

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/ostapenco/domovyk/internal/model"
	"github.com/ostapenco/domovyk/internal/period"
)

var numberRe = regexp.MustCompile(`\d+`)

// maxMonthCount caps "за N міс" phrases; larger N is taken as noise.
const maxMonthCount = 12

// Classifier turns raw chat text into (apartment, period) attributions.
// It is heuristic by design: a message that does not cleanly match the
// roster and confirmation vocabulary yields no attributions, never an error.
type Classifier struct {
	vocab         Vocabulary
	roster        model.Roster
	calc          period.Calculator
	countRe       *regexp.Regexp
	recencyWindow time.Duration
}

// New builds a classifier for the given roster and vocabulary. A positive
// recencyWindow makes the classifier skip messages older than the window
// relative to observation time; zero disables the filter.
func New(roster model.Roster, vocab Vocabulary, calc period.Calculator, recencyWindow time.Duration) *Classifier {
	units := vocab.MonthUnits
	if len(units) == 0 {
		units = DefaultVocabulary().MonthUnits
	}
	escaped := make([]string, len(units))
	for i, u := range units {
		escaped[i] = regexp.QuoteMeta(u)
	}
	return &Classifier{
		vocab:         vocab,
		roster:        roster,
		calc:          calc,
		countRe:       regexp.MustCompile(`(\d{1,2})\s*(?:` + strings.Join(escaped, "|") + `)`),
		recencyWindow: recencyWindow,
	}
}

// Classify inspects one message and returns zero or more attributions.
// Several roster numbers in one message credit each of them: a neighbor
// frequently reports payments for the whole staircase at once.
func (c *Classifier) Classify(msg model.Message, now time.Time) []model.Attribution {
	if c.recencyWindow > 0 && !msg.SentAt.IsZero() && now.Sub(msg.SentAt) > c.recencyWindow {
		return nil
	}

	text := strings.ToLower(strings.TrimSpace(msg.Text))
	if text == "" {
		return nil
	}

	apartments, blanked := c.extractApartments(text)
	if len(apartments) == 0 {
		return nil
	}

	// Naming a month or a month count is itself payment evidence:
	// "44 за 2 міс" carries no confirmation verb yet clearly reports one.
	periods := c.explicitPeriods(text, blanked, now)
	if len(periods) == 0 {
		if !c.confirmsPayment(text) {
			return nil
		}
		periods = []model.Period{c.calc.Target(now)}
	}

	attrs := make([]model.Attribution, 0, len(apartments)*len(periods))
	for _, apt := range apartments {
		for _, p := range periods {
			attrs = append(attrs, model.Attribution{Apartment: apt, Period: p})
		}
	}
	return attrs
}

// extractApartments returns every roster-matching numeric token, in order
// of appearance, plus a copy of the text with those tokens blanked out so
// that later numeric rules cannot mistake an apartment number for a count.
func (c *Classifier) extractApartments(text string) ([]string, string) {
	var apartments []string
	seen := make(map[string]bool)
	blanked := []byte(text)

	for _, loc := range numberRe.FindAllStringIndex(text, -1) {
		token := text[loc[0]:loc[1]]
		if !c.roster.Contains(token) {
			continue
		}
		if !seen[token] {
			seen[token] = true
			apartments = append(apartments, token)
		}
		for i := loc[0]; i < loc[1]; i++ {
			blanked[i] = ' '
		}
	}
	return apartments, string(blanked)
}

// confirmsPayment applies the intent gate: the text must carry at least one
// confirmation stem, or be short enough to read as a bare apartment number.
func (c *Classifier) confirmsPayment(text string) bool {
	for _, stem := range c.vocab.Confirm {
		if strings.Contains(text, stem) {
			return true
		}
	}
	return isMostlyNumeric(text)
}

// isMostlyNumeric reports whether a short message is essentially just a
// number ("14", "кв 7"): neighbors often reply with the apartment alone.
func isMostlyNumeric(text string) bool {
	if len([]rune(text)) > 12 {
		return false
	}
	letters, digits := 0, 0
	for _, r := range text {
		switch {
		case unicode.IsDigit(r):
			digits++
		case unicode.IsLetter(r):
			letters++
		}
	}
	return digits > 0 && letters <= 2
}

// explicitPeriods collects the billing periods the message names outright:
// every recognized month name contributes one period, and a "за N міс"
// phrase contributes N consecutive periods from the current target. Both
// kinds combine; duplicates are removed. Empty when the message names no
// period and the default target should apply.
func (c *Classifier) explicitPeriods(text, blanked string, now time.Time) []model.Period {
	var found []model.Period

	for m := time.January; m <= time.December; m++ {
		for _, root := range c.vocab.MonthRoots[m] {
			if strings.Contains(text, root) {
				found = append(found, model.Period{Month: m, Year: inferYear(m, now)})
				break
			}
		}
	}

	if count := c.monthCount(blanked); count > 0 {
		start := c.calc.Target(now)
		for i := 0; i < count; i++ {
			found = append(found, start.Shift(i))
		}
	}

	return dedupPeriods(found)
}

// monthCount extracts N from a "за N міс" style phrase. Apartment tokens
// are already blanked out of the search text.
func (c *Classifier) monthCount(blanked string) int {
	m := c.countRe.FindStringSubmatch(blanked)
	if m == nil {
		return 0
	}
	count := 0
	for _, r := range m[1] {
		count = count*10 + int(r-'0')
	}
	if count < 1 || count > maxMonthCount {
		return 0
	}
	return count
}

// inferYear places a named month into a calendar year relative to the
// observation time. A month numerically behind the observation month late
// in the year refers to next year ("січень" said in November); December
// named in January or February refers to the year just ended.
func inferYear(m time.Month, now time.Time) int {
	year := now.Year()
	switch {
	case m < now.Month() && now.Month() >= time.October:
		return year + 1
	case m >= time.November && now.Month() <= time.February:
		return year - 1
	default:
		return year
	}
}

func dedupPeriods(periods []model.Period) []model.Period {
	seen := make(map[model.Period]bool, len(periods))
	out := periods[:0]
	for _, p := range periods {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
