package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/ostapenco/domovyk/internal/classify"
	"github.com/ostapenco/domovyk/internal/config"
	"github.com/ostapenco/domovyk/internal/engine"
	"github.com/ostapenco/domovyk/internal/ledger"
	"github.com/ostapenco/domovyk/internal/period"
	"github.com/ostapenco/domovyk/internal/report"
	"github.com/ostapenco/domovyk/internal/service"
	"github.com/ostapenco/domovyk/internal/sheets"
	"github.com/ostapenco/domovyk/internal/telegram"
)

// components is everything a command may need, wired once per invocation.
type components struct {
	settings *config.Settings
	building *config.Building
	store    *ledger.Store
	renderer *report.Renderer
	calc     period.Calculator
}

// loadComponents builds the offline parts: settings, building config,
// ledger store, and renderer. No network involved.
func loadComponents() (*components, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}
	building, err := config.LoadBuilding(settings.BuildingPath)
	if err != nil {
		return nil, err
	}

	seed := settings.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- phrasing variety, not security

	return &components{
		settings: settings,
		building: building,
		store:    ledger.NewStore(settings.LedgerPath),
		renderer: report.NewRenderer(building, rng),
		calc:     period.NewCalculator(settings.CutoffDay),
	}, nil
}

// buildEngine wires the full engine, including the Telegram client and the
// optional spreadsheet mirror.
func buildEngine(ctx context.Context) (*engine.Engine, error) {
	c, err := loadComponents()
	if err != nil {
		return nil, err
	}

	client, err := telegram.New(c.settings.TelegramToken, c.settings.ChatID, c.settings.ThreadID)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}

	var exporter service.LedgerExporter
	if c.settings.SheetsEnabled {
		cfg := sheets.DefaultConfig()
		if err := cfg.LoadFromEnv(); err != nil {
			return nil, fmt.Errorf("sheets mirror enabled but misconfigured: %w", err)
		}
		exporter, err = sheets.NewExporter(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	classifier := classify.New(c.building.Roster(), classify.DefaultVocabulary(), c.calc, c.settings.RecencyWindow)

	return engine.New(c.settings, c.building, engine.Deps{
		Source:     client,
		Announcer:  client,
		Store:      c.store,
		Exporter:   exporter,
		Classifier: classifier,
		Renderer:   c.renderer,
	}), nil
}
