// Package engine orchestrates one invocation: scan the chat, update the
// ledger, and decide whether today's run also sends messages.
package engine

import (
	"context"
	"log/slog"
	"os"
	"regexp"
	"time"

	"github.com/ostapenco/domovyk/internal/classify"
	"github.com/ostapenco/domovyk/internal/common"
	"github.com/ostapenco/domovyk/internal/config"
	"github.com/ostapenco/domovyk/internal/ledger"
	"github.com/ostapenco/domovyk/internal/model"
	"github.com/ostapenco/domovyk/internal/period"
	"github.com/ostapenco/domovyk/internal/report"
	"github.com/ostapenco/domovyk/internal/service"
)

var manualNumberRe = regexp.MustCompile(`\d+`)

// Deps are the collaborators injected into the engine.
type Deps struct {
	Source     service.MessageSource
	Announcer  service.Announcer
	Store      service.LedgerStore
	Exporter   service.LedgerExporter // optional
	Classifier *classify.Classifier
	Renderer   *report.Renderer
	Clock      func() time.Time // optional, for tests
}

// Engine runs the scan/announce cycle. Each invocation is independent;
// state survives only through the ledger store.
type Engine struct {
	settings   *config.Settings
	roster     model.Roster
	source     service.MessageSource
	announcer  service.Announcer
	store      service.LedgerStore
	exporter   service.LedgerExporter
	classifier *classify.Classifier
	renderer   *report.Renderer
	calc       period.Calculator
	clock      func() time.Time
}

// New wires an engine from settings and collaborators.
func New(settings *config.Settings, building *config.Building, deps Deps) *Engine {
	clock := deps.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().In(settings.Location) }
	}
	return &Engine{
		settings:   settings,
		roster:     building.Roster(),
		source:     deps.Source,
		announcer:  deps.Announcer,
		store:      deps.Store,
		exporter:   deps.Exporter,
		classifier: deps.Classifier,
		renderer:   deps.Renderer,
		calc:       period.NewCalculator(settings.CutoffDay),
		clock:      clock,
	}
}

// ScanResult summarizes one scan pass.
type ScanResult struct {
	Ledger      *ledger.Ledger
	Fetched     int
	Matched     int
	NewPayments int
}

// Scan pulls recent messages, classifies them, merges the attributions,
// and persists the ledger. Transient fetch failures are logged and the
// ledger is still saved with whatever was classified; Scan itself never
// fails the run.
func (e *Engine) Scan(ctx context.Context) *ScanResult {
	led := e.store.Load()
	now := e.clock()
	res := &ScanResult{Ledger: led}

	offset := 0
	if led.Meta.LastUpdateID > 0 {
		offset = led.Meta.LastUpdateID + 1
	}

	var messages []model.Message
	lastID := 0
	err := common.WithRetry(ctx, func() error {
		var fetchErr error
		messages, lastID, fetchErr = e.source.FetchMessages(ctx, offset, e.settings.FetchLimit)
		return fetchErr
	}, service.RetryOptions{MaxAttempts: 3, InitialDelay: time.Second})
	if err != nil {
		slog.Error("fetch failed, continuing with persisted ledger", "error", err)
	}

	res.Fetched = len(messages)
	for _, msg := range messages {
		attrs := e.classifier.Classify(msg, now)
		if len(attrs) == 0 {
			continue
		}
		res.Matched++
		for _, attr := range attrs {
			if led.Merge(attr.Apartment, attr.Period) {
				res.NewPayments++
				slog.Info("payment recorded",
					"apartment", attr.Apartment,
					"period", attr.Period.Key())
			}
		}
	}

	res.NewPayments += e.mergeManualFile(led, now)

	if lastID > 0 {
		led.Meta.LastUpdateID = lastID
	}
	led.Meta.LastScanAt = now

	// Persist before anything is sent: a failed send must never cost
	// classified payments.
	if err := e.store.Save(led); err != nil {
		slog.Error("ledger save failed", "error", err)
	}

	if e.exporter != nil {
		if err := e.exporter.Export(ctx, led, e.roster); err != nil {
			slog.Error("ledger export failed", "error", err)
		}
	}

	slog.Info("scan complete",
		"fetched", res.Fetched,
		"matched", res.Matched,
		"new_payments", res.NewPayments)
	return res
}

// mergeManualFile credits apartments listed in the manual override file
// into the current target period. The fallback for when the bot cannot
// see the chat itself; merges are idempotent so the file can stay around.
func (e *Engine) mergeManualFile(led *ledger.Ledger, now time.Time) int {
	if e.settings.ManualPath == "" {
		return 0
	}
	data, err := os.ReadFile(e.settings.ManualPath) // #nosec G304
	if err != nil {
		return 0
	}

	target := e.calc.Target(now)
	added := 0
	for _, num := range manualNumberRe.FindAllString(string(data), -1) {
		if !e.roster.Contains(num) {
			continue
		}
		if led.Merge(num, target) {
			added++
			slog.Info("manual payment recorded", "apartment", num, "period", target.Key())
		}
	}
	return added
}

// TargetPeriod returns the billing period collection currently targets.
func (e *Engine) TargetPeriod() model.Period {
	return e.calc.Target(e.clock())
}

// Run executes a full invocation: scan, then send whatever today's
// trigger calls for. Send failures are logged, never returned; the next
// scheduled run re-attempts on its own trigger.
func (e *Engine) Run(ctx context.Context) error {
	res := e.Scan(ctx)
	now := e.clock()

	switch trig := e.decideTrigger(now); trig {
	case triggerNone:
		slog.Info("no milestone today, scan-only run", "day", now.Day())
	case triggerOpen:
		e.Announce(ctx, res.Ledger)
	case triggerReport:
		e.sendText(ctx, e.renderer.StatusReport(res.Ledger, e.calc.Target(now)))
	case triggerRemind:
		if text, due := e.renderer.Reminder(res.Ledger, e.calc.Target(now)); due {
			e.sendText(ctx, text)
		} else {
			slog.Info("everyone paid, reminder skipped")
		}
	case triggerCleanup:
		if err := e.announcer.UnpinAll(ctx); err != nil {
			slog.Error("unpin failed", "error", err)
		} else {
			slog.Info("pinned messages cleared")
		}
	}
	return nil
}

// Announce sends the full set for the target period: the pinned
// announcement, the status report, and the reminder when anyone still owes.
func (e *Engine) Announce(ctx context.Context, led *ledger.Ledger) {
	p := e.calc.Target(e.clock())

	id, err := e.announcer.SendMessage(ctx, e.renderer.Announcement(p))
	if err != nil {
		slog.Error("announcement send failed", "error", err)
	} else {
		if err := e.announcer.UnpinAll(ctx); err != nil {
			slog.Warn("unpin before pin failed", "error", err)
		}
		if err := e.announcer.PinMessage(ctx, id); err != nil {
			slog.Error("pin failed", "error", err)
		}
	}

	e.sendText(ctx, e.renderer.StatusReport(led, p))

	if text, due := e.renderer.Reminder(led, p); due {
		e.sendText(ctx, text)
	}
}

func (e *Engine) sendText(ctx context.Context, text string) {
	if _, err := e.announcer.SendMessage(ctx, text); err != nil {
		slog.Error("send failed", "error", err)
	}
}

type trigger int

const (
	triggerNone trigger = iota
	triggerOpen
	triggerReport
	triggerRemind
	triggerCleanup
)

// decideTrigger maps the invocation to what gets sent. A manual dispatch
// always sends the full set; scheduled runs send only on milestone days,
// optionally gated to one hour so multiple daily cron slots stay scan-only.
func (e *Engine) decideTrigger(now time.Time) trigger {
	if e.settings.ManualRun {
		return triggerOpen
	}

	m := e.settings.Milestones
	if m.Hour > 0 && now.Hour() != m.Hour {
		return triggerNone
	}

	switch now.Day() {
	case m.OpenDay:
		return triggerOpen
	case m.ReportDay:
		return triggerReport
	case m.RemindDay:
		return triggerRemind
	case m.CleanupDay:
		return triggerCleanup
	default:
		return triggerNone
	}
}
