package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriod_Key(t *testing.T) {
	assert.Equal(t, "01-2025", Period{Month: time.January, Year: 2025}.Key())
	assert.Equal(t, "12-2024", Period{Month: time.December, Year: 2024}.Key())
}

func TestPeriod_Shift(t *testing.T) {
	tests := []struct {
		name  string
		start Period
		n     int
		want  Period
	}{
		{
			name:  "zero is identity",
			start: Period{Month: time.March, Year: 2025},
			n:     0,
			want:  Period{Month: time.March, Year: 2025},
		},
		{
			name:  "within the year",
			start: Period{Month: time.March, Year: 2025},
			n:     2,
			want:  Period{Month: time.May, Year: 2025},
		},
		{
			name:  "december rolls into january",
			start: Period{Month: time.December, Year: 2024},
			n:     1,
			want:  Period{Month: time.January, Year: 2025},
		},
		{
			name:  "more than a year forward",
			start: Period{Month: time.November, Year: 2024},
			n:     14,
			want:  Period{Month: time.January, Year: 2026},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.start.Shift(tt.n))
		})
	}
}

func TestParsePeriodKey(t *testing.T) {
	p, err := ParsePeriodKey("02-2025")
	require.NoError(t, err)
	assert.Equal(t, Period{Month: time.February, Year: 2025}, p)

	for _, bad := range []string{"", "garbage", "13-2025", "00-2025", "1-2025x"} {
		_, err := ParsePeriodKey(bad)
		assert.Error(t, err, "key %q should not parse", bad)
	}
}

func TestPeriod_Before(t *testing.T) {
	jan := Period{Month: time.January, Year: 2025}
	dec := Period{Month: time.December, Year: 2024}

	assert.True(t, dec.Before(jan))
	assert.False(t, jan.Before(dec))
	assert.False(t, jan.Before(jan))
}

func TestRoster(t *testing.T) {
	r := NewRoster([]string{"7", "3", "7", "", "12"})

	assert.Equal(t, []string{"7", "3", "12"}, r.IDs())
	assert.Equal(t, 3, r.Len())
	assert.True(t, r.Contains("3"))
	assert.False(t, r.Contains("5"))
}
