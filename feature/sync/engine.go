package sync

import (
	"time"

	"game-sync/core/steam"
	"game-sync/core/utils"

	"go.uber.org/zap"
)

// AchievementsFunc lazily supplies an item's achievement summary. The engine
// calls it only when the filter actually needs the count, so filtered-out and
// unfiltered items alike avoid a pointless lookup.
type AchievementsFunc func() steam.AchievementSummary

// Engine decides create / update / skip for each inventory item against the
// store index.
type Engine struct {
	opts Options
	now  func() time.Time
	log  *zap.Logger
}

// NewEngine creates a reconciliation engine.
func NewEngine(opts Options, log *zap.Logger) *Engine {
	return &Engine{opts: opts, now: time.Now, log: log}
}

// Reconcile decides what to do with one item. The decision is computed from
// the index alone and is idempotent: an unchanged inventory against a fresh
// index always resolves to Skip(unchanged).
func (e *Engine) Reconcile(item InventoryItem, ix *Index, ach AchievementsFunc) Decision {
	prior, found := ix.Lookup(item)

	// The engagement filter suppresses low-signal items from being created or
	// flagged; it never removes an existing record.
	if e.opts.EnableFilter && e.filtered(item, ach) {
		return Decision{Type: DecisionSkip, Reason: ReasonFiltered, Prior: prior}
	}

	if !found {
		return Decision{Type: DecisionCreate}
	}

	if prior.LastPlayed == "" {
		// Incomplete record: the stored page has never seen a last-played
		// value. With updates enabled the comparison below treats it as
		// changed and repairs it; otherwise there is nothing safe to compare.
		if !e.opts.EnableUpdate {
			return Decision{Type: DecisionSkip, Reason: ReasonIncomplete, Prior: prior}
		}
	} else if !e.opts.EnableUpdate {
		return Decision{Type: DecisionSkip, Reason: ReasonUpdateDisabled, Prior: prior}
	}

	// The store echoes dates back in its own normalized spelling, so the
	// comparison is instant-based rather than string-based.
	lastPlayed := utils.FormatEpoch(item.LastPlayedAt, e.opts.Location, false)
	if utils.SameTimestamp(prior.LastPlayed, lastPlayed) {
		return Decision{Type: DecisionSkip, Reason: ReasonUnchanged, Prior: prior}
	}

	return Decision{Type: DecisionUpdate, PageID: prior.PageID, Prior: prior}
}

// filtered applies the engagement rule: an item is low-signal when it has no
// achievements and either (a) cumulative playtime below the minimum, or
// (b) last played outside the idle window with playtime below the idle floor.
// The achievement lookup only happens when one of the playtime/recency
// preconditions already holds, since both branches require a zero total.
func (e *Engine) filtered(item InventoryItem, ach AchievementsFunc) bool {
	if item.PlaytimeMinutes >= e.opts.IdlePlaytime {
		return false
	}

	belowMin := item.PlaytimeMinutes < e.opts.MinPlaytime

	windowStart := e.now().Add(-e.opts.IdleWindow).Unix()
	idle := item.LastPlayedAt < windowStart && item.PlaytimeMinutes < e.opts.IdlePlaytime

	if !belowMin && !idle {
		return false
	}

	summary := ach()
	if summary.Total >= 1 {
		return false
	}

	e.log.Info("item does not meet engagement rule",
		zap.String("name", item.Name),
		zap.Int("playtime_minutes", item.PlaytimeMinutes))
	return true
}
