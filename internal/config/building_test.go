package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostapenco/domovyk/internal/common"
)

func validBuildingJSON() map[string]any {
	templates := make([]string, 12)
	for i := range templates {
		templates[i] = "Збір за {month_name}"
	}
	return map[string]any{
		"active_apartments":  []any{"3", 7, "12"},
		"monthly_fee":        170,
		"card_details":       "5168 7451 4881 9912",
		"templates":          templates,
		"report_templates":   []string{"{paid_list} / {unpaid_list}"},
		"reminder_templates": []string{"{unpaid_list}"},
	}
}

func writeBuilding(t *testing.T, cfg map[string]any) string {
	t.Helper()
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLoadBuilding(t *testing.T) {
	b, err := LoadBuilding(writeBuilding(t, validBuildingJSON()))
	require.NoError(t, err)

	// Mixed string and number identifiers normalize to strings.
	assert.Equal(t, IDList{"3", "7", "12"}, b.ActiveApartments)
	assert.Equal(t, 170, b.MonthlyFee)

	roster := b.Roster()
	assert.True(t, roster.Contains("7"))
	assert.Equal(t, 3, roster.Len())
}

func TestLoadBuilding_MissingFile(t *testing.T) {
	_, err := LoadBuilding(filepath.Join(t.TempDir(), "nope.json"))
	assert.True(t, errors.Is(err, common.ErrMissingConfig))
}

func TestLoadBuilding_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{
			name:   "empty roster",
			mutate: func(c map[string]any) { c["active_apartments"] = []any{} },
		},
		{
			name:   "wrong template count",
			mutate: func(c map[string]any) { c["templates"] = []string{"only one"} },
		},
		{
			name:   "no report templates",
			mutate: func(c map[string]any) { c["report_templates"] = []string{} },
		},
		{
			name:   "no reminder templates",
			mutate: func(c map[string]any) { c["reminder_templates"] = []string{} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBuildingJSON()
			tt.mutate(cfg)
			_, err := LoadBuilding(writeBuilding(t, cfg))
			assert.True(t, errors.Is(err, common.ErrInvalidConfig))
		})
	}
}

func TestIDList_RejectsGarbage(t *testing.T) {
	var l IDList
	assert.Error(t, json.Unmarshal([]byte(`[{"apartment": 7}]`), &l))
	assert.Error(t, json.Unmarshal([]byte(`"not a list"`), &l))
}
