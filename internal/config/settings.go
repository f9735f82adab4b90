package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"

	"github.com/ostapenco/domovyk/internal/common"
)

// Milestones are the days of month on which a scheduled run also sends
// messages, instead of only scanning.
type Milestones struct {
	OpenDay    int // collection opens: announcement + report, announcement pinned
	ReportDay  int // mid-period status report
	RemindDay  int // reminder to whoever has not paid yet
	CleanupDay int // unpin everything before the next cycle
	Hour       int // 0 = any hour; otherwise only send at this hour
}

// Settings is the process configuration: identifiers and tokens from the
// execution environment, file paths, and policy knobs. Built once at
// startup and passed by parameter; nothing reads viper after this.
type Settings struct {
	Location      *time.Location
	TelegramToken string
	BuildingPath  string
	LedgerPath    string
	ManualPath    string
	Milestones    Milestones
	RecencyWindow time.Duration
	ChatID        int64
	RandomSeed    int64
	ThreadID      int
	CutoffDay     int
	FetchLimit    int
	ManualRun     bool
	SheetsEnabled bool
}

// SetDefaults registers every settings key with its default value.
func SetDefaults() {
	viper.SetDefault("paths.building", "config.json")
	viper.SetDefault("paths.ledger", "history.json")
	viper.SetDefault("paths.manual", "manual_paid.txt")
	viper.SetDefault("timezone", "Europe/Kyiv")
	viper.SetDefault("cutoff_day", 25)
	viper.SetDefault("recency_window", "72h")
	viper.SetDefault("fetch_limit", 100)
	viper.SetDefault("schedule.open_day", 1)
	viper.SetDefault("schedule.report_day", 10)
	viper.SetDefault("schedule.remind_day", 20)
	viper.SetDefault("schedule.cleanup_day", 24)
	viper.SetDefault("schedule.hour", 0)
	viper.SetDefault("random_seed", 0)
	viper.SetDefault("sheets.enabled", false)

	// The bot predates the DOMOVYK_ prefix; the bare names still work.
	_ = viper.BindEnv("telegram.token", "DOMOVYK_TELEGRAM_TOKEN", "TELEGRAM_TOKEN")
	_ = viper.BindEnv("telegram.chat_id", "DOMOVYK_CHAT_ID", "CHAT_ID")
	_ = viper.BindEnv("telegram.thread_id", "DOMOVYK_THREAD_ID", "THREAD_ID")
}

// LoadSettings materializes Settings from viper. It fails only for the
// unrecoverable kind of problem: missing token, malformed identifiers,
// unknown timezone.
func LoadSettings() (*Settings, error) {
	token := viper.GetString("telegram.token")
	if token == "" {
		return nil, fmt.Errorf("%w: telegram token", common.ErrMissingConfig)
	}

	chatRaw := viper.GetString("telegram.chat_id")
	if chatRaw == "" {
		return nil, fmt.Errorf("%w: chat id", common.ErrMissingConfig)
	}
	chatID, err := strconv.ParseInt(chatRaw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: chat id %q is not numeric", common.ErrInvalidConfig, chatRaw)
	}

	threadID := 0
	if threadRaw := viper.GetString("telegram.thread_id"); threadRaw != "" {
		threadID, err = strconv.Atoi(threadRaw)
		if err != nil {
			return nil, fmt.Errorf("%w: thread id %q is not numeric", common.ErrInvalidConfig, threadRaw)
		}
	}

	tzName := viper.GetString("timezone")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", common.ErrInvalidConfig, tzName, err)
	}

	s := &Settings{
		TelegramToken: token,
		ChatID:        chatID,
		ThreadID:      threadID,
		Location:      loc,
		BuildingPath:  ExpandPath(viper.GetString("paths.building")),
		LedgerPath:    ExpandPath(viper.GetString("paths.ledger")),
		ManualPath:    ExpandPath(viper.GetString("paths.manual")),
		CutoffDay:     viper.GetInt("cutoff_day"),
		RecencyWindow: viper.GetDuration("recency_window"),
		FetchLimit:    viper.GetInt("fetch_limit"),
		RandomSeed:    viper.GetInt64("random_seed"),
		SheetsEnabled: viper.GetBool("sheets.enabled"),
		Milestones: Milestones{
			OpenDay:    viper.GetInt("schedule.open_day"),
			ReportDay:  viper.GetInt("schedule.report_day"),
			RemindDay:  viper.GetInt("schedule.remind_day"),
			CleanupDay: viper.GetInt("schedule.cleanup_day"),
			Hour:       viper.GetInt("schedule.hour"),
		},
		// A workflow_dispatch run is the operator asking for messages now.
		ManualRun: os.Getenv("GITHUB_EVENT_NAME") == "workflow_dispatch",
	}
	return s, nil
}

// Now returns the current time in the configured timezone.
func (s *Settings) Now() time.Time {
	return time.Now().In(s.Location)
}
