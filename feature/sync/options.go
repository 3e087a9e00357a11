package sync

import (
	"fmt"
	"time"

	"game-sync/core/config"
)

// Options is the engine's run policy, resolved from configuration once per
// process and passed by value into the components.
type Options struct {
	// Platform is the provider name used in the composite key and the
	// platform select property.
	Platform string
	// Location is the timezone daily records and date properties use.
	Location *time.Location
	// EnableUpdate allows patching existing records when playtime changed.
	EnableUpdate bool
	// EnableFilter turns on the low-engagement creation filter.
	EnableFilter bool
	// FullRefresh rewrites all enrichment fields on update.
	FullRefresh bool
	// MinPlaytime is the filter floor for achievement-less items.
	MinPlaytime int
	// IdlePlaytime is the higher filter floor for items outside IdleWindow.
	IdlePlaytime int
	// IdleWindow is the rolling recency window of the filter's idle branch.
	IdleWindow time.Duration
	// Pause is the fixed inter-item pause; scheduling policy, not correctness.
	Pause time.Duration
	// DryRun logs decisions without issuing writes.
	DryRun bool
	// Daily materializes DailyDeltaRecords for updated items.
	Daily bool
}

// OptionsFromConfig resolves run options, parsing the configured timezone.
func OptionsFromConfig(cfg config.SyncConfig) (Options, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Options{}, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	return Options{
		Platform:     cfg.Platform,
		Location:     loc,
		EnableUpdate: cfg.EnableUpdate,
		EnableFilter: cfg.EnableFilter,
		FullRefresh:  cfg.FullRefresh,
		MinPlaytime:  cfg.MinPlaytimeMinutes,
		IdlePlaytime: cfg.IdlePlaytimeMinutes,
		IdleWindow:   time.Duration(cfg.IdleWindowDays) * 24 * time.Hour,
		Pause:        time.Duration(cfg.PauseMillis) * time.Millisecond,
	}, nil
}
