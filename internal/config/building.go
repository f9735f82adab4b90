// Package config loads the process settings and the building description,
// and hands them to the rest of the application as explicit value objects.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ostapenco/domovyk/internal/common"
	"github.com/ostapenco/domovyk/internal/model"
)

// Building describes the house being collected for: the roster of active
// apartments, the fee, the payment destination, and the message templates.
// It is read once at startup from an operator-maintained JSON file.
type Building struct {
	CardDetails       string   `json:"card_details"`
	Signature         string   `json:"signature"`
	ActiveApartments  IDList   `json:"active_apartments"`
	Templates         []string `json:"templates"`
	ReportTemplates   []string `json:"report_templates"`
	ReminderTemplates []string `json:"reminder_templates"`
	MonthlyFee        int      `json:"monthly_fee"`
}

// LoadBuilding reads and validates the building config file.
func LoadBuilding(path string) (*Building, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("%w: building config %s: %v", common.ErrMissingConfig, path, err)
	}

	var b Building
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: building config %s: %v", common.ErrInvalidConfig, path, err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate checks the parts a run cannot proceed without.
func (b *Building) Validate() error {
	if len(b.ActiveApartments) == 0 {
		return fmt.Errorf("%w: empty active_apartments roster", common.ErrInvalidConfig)
	}
	if len(b.Templates) != 12 {
		return fmt.Errorf("%w: need 12 announcement templates, got %d", common.ErrInvalidConfig, len(b.Templates))
	}
	if len(b.ReportTemplates) == 0 {
		return fmt.Errorf("%w: no report templates", common.ErrInvalidConfig)
	}
	if len(b.ReminderTemplates) == 0 {
		return fmt.Errorf("%w: no reminder templates", common.ErrInvalidConfig)
	}
	return nil
}

// Roster returns the active apartments as a lookup roster.
func (b *Building) Roster() model.Roster {
	return model.NewRoster(b.ActiveApartments)
}

// IDList is a list of apartment identifiers. The config file historically
// mixes bare numbers and strings; both decode to normalized strings.
type IDList []string

// UnmarshalJSON accepts ["3", 7, "12"] style mixed arrays.
func (l *IDList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, strings.TrimSpace(s))
			continue
		}
		var n int64
		if err := json.Unmarshal(item, &n); err == nil {
			out = append(out, strconv.FormatInt(n, 10))
			continue
		}
		return fmt.Errorf("apartment identifier %s is neither string nor number", item)
	}
	*l = out
	return nil
}
