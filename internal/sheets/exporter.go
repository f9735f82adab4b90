package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/ostapenco/domovyk/internal/common"
	"github.com/ostapenco/domovyk/internal/ledger"
	"github.com/ostapenco/domovyk/internal/model"
	"github.com/ostapenco/domovyk/internal/report"
	"github.com/ostapenco/domovyk/internal/service"
)

// Exporter writes the full ledger into a spreadsheet, one row per billing
// period. It implements service.LedgerExporter.
type Exporter struct {
	service *sheets.Service
	config  Config
}

// NewExporter authenticates against the Sheets API.
func NewExporter(ctx context.Context, config Config) (*Exporter, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sheets config: %w", err)
	}
	svc, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Exporter{service: svc, config: config}, nil
}

// Export replaces the sheet contents with the current ledger state.
func (e *Exporter) Export(ctx context.Context, led *ledger.Ledger, roster model.Roster) error {
	values := [][]any{
		{"Період", "Місяць", "Оплатили", "Не оплатили", "Всього оплат"},
	}
	for _, p := range led.Periods() {
		paid := led.Paid(p)
		unpaid := report.UnpaidList(led, roster, p)
		values = append(values, []any{
			p.Key(),
			report.MonthName(p.Month),
			join(paid),
			join(unpaid),
			fmt.Sprintf("%d/%d", len(paid), roster.Len()),
		})
	}

	writeRange := fmt.Sprintf("%s!A1", e.config.SheetName)
	clearRange := fmt.Sprintf("%s!A:Z", e.config.SheetName)

	err := common.WithRetry(ctx, func() error {
		if _, clearErr := e.service.Spreadsheets.Values.
			Clear(e.config.SpreadsheetID, clearRange, &sheets.ClearValuesRequest{}).
			Context(ctx).Do(); clearErr != nil {
			return &common.RetryableError{Err: clearErr, Retryable: true}
		}
		_, updateErr := e.service.Spreadsheets.Values.
			Update(e.config.SpreadsheetID, writeRange, &sheets.ValueRange{Values: values}).
			ValueInputOption("RAW").
			Context(ctx).Do()
		if updateErr != nil {
			return &common.RetryableError{Err: updateErr, Retryable: true}
		}
		return nil
	}, service.RetryOptions{
		MaxAttempts:  e.config.RetryAttempts,
		InitialDelay: e.config.RetryDelay,
	})
	if err != nil {
		return fmt.Errorf("failed to write ledger to spreadsheet: %w", err)
	}

	slog.Info("ledger mirrored to spreadsheet",
		"spreadsheet", e.config.SpreadsheetID,
		"periods", len(values)-1)
	return nil
}

func join(ids []string) string {
	return strings.Join(ids, ", ")
}

// createSheetsService builds the API client from whichever auth method the
// config carries.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	if config.ServiceAccountPath != "" {
		return sheets.NewService(ctx,
			option.WithCredentialsFile(config.ServiceAccountPath),
			option.WithScopes(sheets.SpreadsheetsScope))
	}

	oauthConfig := &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{sheets.SpreadsheetsScope},
	}
	token := &oauth2.Token{RefreshToken: config.RefreshToken}
	client := oauthConfig.Client(ctx, token)
	return sheets.NewService(ctx, option.WithHTTPClient(client))
}
