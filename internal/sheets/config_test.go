package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name: "service account auth",
			mutate: func(c *Config) {
				c.ServiceAccountPath = "/etc/domovyk/sa.json"
			},
		},
		{
			name: "oauth auth",
			mutate: func(c *Config) {
				c.ClientID = "id"
				c.ClientSecret = "secret"
				c.RefreshToken = "token"
			},
		},
		{
			name:    "no auth",
			mutate:  func(*Config) {},
			wantErr: true,
		},
		{
			name: "both auth methods",
			mutate: func(c *Config) {
				c.ServiceAccountPath = "/etc/domovyk/sa.json"
				c.ClientID = "id"
				c.ClientSecret = "secret"
				c.RefreshToken = "token"
			},
			wantErr: true,
		},
		{
			name: "missing spreadsheet id",
			mutate: func(c *Config) {
				c.ServiceAccountPath = "/etc/domovyk/sa.json"
				c.SpreadsheetID = ""
			},
			wantErr: true,
		},
		{
			name: "missing sheet name",
			mutate: func(c *Config) {
				c.ServiceAccountPath = "/etc/domovyk/sa.json"
				c.SheetName = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.SpreadsheetID = "sheet-id"
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
