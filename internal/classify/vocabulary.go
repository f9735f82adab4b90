// Package classify decides whether a chat message confirms a payment, for
// which apartment, and for which billing period(s).
package classify

import "time"

// Vocabulary is the word-stem evidence table driving classification. It is
// plain data injected into the classifier, so the stems can grow without
// touching control flow, and tests can pin exact behavior.
type Vocabulary struct {
	// Version identifies the stem table revision in logs.
	Version string
	// Confirm lists substrings whose presence marks a message as a
	// payment confirmation. Lowercase; matched against lowercased text.
	Confirm []string
	// MonthRoots maps each calendar month to the root fragments that name
	// it in chat, Ukrainian and Russian forms plus recorded misspellings.
	MonthRoots map[time.Month][]string
	// MonthUnits lists the stems of the "months" unit word, used to spot
	// multi-month payments ("за 2 міс", "за 3 месяца").
	MonthUnits []string
}

// DefaultVocabulary returns the stem table accreted from the building chat
// history. Stems, not full words: Ukrainian and Russian inflect month names
// and verbs heavily, and neighbors misspell both.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Version: "v3",
		Confirm: []string{
			"оплат", "сплач", "сплат", "готов", "є", "есть", "ок",
			"+", "✅", "переказ", "перевел", "перевод", "скинул", "відправ",
		},
		MonthRoots: map[time.Month][]string{
			time.January:   {"січ", "янв"},
			time.February:  {"лют", "фев"},
			time.March:     {"берез", "март", "марта"},
			time.April:     {"квіт", "квит", "апр"},
			time.May:       {"трав", "май", "мая"},
			time.June:      {"черв", "июн"},
			time.July:      {"лип", "июл"},
			time.August:    {"серп", "авг"},
			time.September: {"верес", "сент"},
			time.October:   {"жовт", "окт"},
			time.November:  {"лист", "нояб"},
			time.December:  {"груд", "дек"},
		},
		MonthUnits: []string{"міс", "мес"},
	}
}
