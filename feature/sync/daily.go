package sync

import (
	"context"
	"time"

	"game-sync/core/propstore"
	"game-sync/core/utils"

	"go.uber.org/zap"
)

// ComputeDelta derives the playtime minutes attributable to today from the
// cumulative counter. It returns nil when no record should be produced:
//
//   - First observation (no prior, or prior without a playtime value): the
//     delta is the full cumulative counter, suppressed when zero.
//   - Incremental: cumulative minus prior. A non-positive result covers both
//     "no new play" and a provider-side counter reset identically; the
//     engine does not try to tell a real reset from a glitch, it simply
//     never emits a non-positive delta.
//
// The day-collision check lives with the caller, which must consult the
// records already materialized for today before inserting.
func ComputeDelta(item InventoryItem, prior *StoreRecord, day string) *DailyDeltaRecord {
	rec := &DailyDeltaRecord{
		Date:              day,
		CumulativeMinutes: item.PlaytimeMinutes,
	}
	if prior != nil {
		rec.PageID = prior.PageID
	}

	if prior == nil || !prior.PlaytimeKnown {
		if item.PlaytimeMinutes <= 0 {
			return nil
		}
		rec.DeltaMinutes = item.PlaytimeMinutes
		return rec
	}

	delta := item.PlaytimeMinutes - prior.PlaytimeMinutes
	if delta <= 0 {
		return nil
	}
	rec.DeltaMinutes = delta
	return rec
}

// DeltaTracker knows which game pages already have a daily record for today.
// It is loaded once per run by querying the records database, making the
// at-most-one-per-(page, day) invariant hold without a store-side constraint.
type DeltaTracker struct {
	store      propstore.Store
	databaseID string
	loc        *time.Location
	now        func() time.Time
	log        *zap.Logger
	recorded   map[string]struct{}
}

// NewDeltaTracker creates a tracker over the daily records database.
func NewDeltaTracker(store propstore.Store, databaseID string, loc *time.Location, log *zap.Logger) *DeltaTracker {
	return &DeltaTracker{
		store:      store,
		databaseID: databaseID,
		loc:        loc,
		now:        time.Now,
		log:        log,
		recorded:   make(map[string]struct{}),
	}
}

// Today returns the current calendar day in the configured timezone.
func (t *DeltaTracker) Today() string {
	return utils.DayOf(t.now(), t.loc)
}

// LoadToday queries the records already materialized for today. A query
// failure logs and leaves the set empty; a duplicate record for the day is
// less harmful than aborting the whole run.
func (t *DeltaTracker) LoadToday(ctx context.Context) {
	today := t.Today()
	filter := map[string]any{
		"property": DailyPropDate,
		"date":     map[string]any{"equals": today},
	}

	cursor := ""
	for {
		page, err := t.store.QueryPage(ctx, t.databaseID, propstore.Query{Filter: filter, StartCursor: cursor})
		if err != nil {
			t.log.Warn("failed to load today's delta records", zap.Error(err))
			return
		}
		for _, entity := range page.Results {
			if pageID, ok := entity.RelationID(DailyPropGame); ok {
				t.recorded[pageID] = struct{}{}
			}
		}
		if !page.HasMore {
			break
		}
		cursor = page.NextCursor
	}

	t.log.Info("loaded today's delta records",
		zap.String("date", today),
		zap.Int("count", len(t.recorded)))
}

// AlreadyRecorded reports whether the page has a record for today. A run
// executing twice in one day only ever materializes the first run's record;
// collisions are suppressed entirely, never merged or overwritten.
func (t *DeltaTracker) AlreadyRecorded(pageID string) bool {
	_, ok := t.recorded[pageID]
	return ok
}

// MarkRecorded registers a just-written record so later items in the same
// run see it.
func (t *DeltaTracker) MarkRecorded(pageID string) {
	t.recorded[pageID] = struct{}{}
}
