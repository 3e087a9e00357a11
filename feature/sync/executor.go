package sync

import (
	"context"

	"game-sync/core/propstore"

	"go.uber.org/zap"
)

// Executor issues the decided writes through the store client. A failure
// here is scoped to the single item: it becomes OutcomeFailed and the run
// moves on to the next item.
type Executor struct {
	store   propstore.Store
	gamesDB string
	dailyDB string
	dryRun  bool
	log     *zap.Logger
}

// NewExecutor creates an executor. With dryRun set, decisions are logged and
// counted but no write is issued.
func NewExecutor(store propstore.Store, gamesDB, dailyDB string, dryRun bool, log *zap.Logger) *Executor {
	return &Executor{
		store:   store,
		gamesDB: gamesDB,
		dailyDB: dailyDB,
		dryRun:  dryRun,
		log:     log,
	}
}

// Apply executes one decision and reports the outcome. For a successful
// create the second return value is the id of the new page, so the caller
// can relate follow-up records to it; it is empty otherwise.
func (x *Executor) Apply(ctx context.Context, item InventoryItem, d Decision, props propstore.Properties, media *propstore.Media) (Outcome, string) {
	switch d.Type {
	case DecisionCreate:
		if x.dryRun {
			x.log.Info("dry-run: would create", zap.String("name", item.Name))
			return OutcomeCreated, ""
		}
		pageID, err := x.store.CreatePage(ctx, x.gamesDB, props, media)
		if err != nil {
			x.log.Error("failed to create record", zap.String("name", item.Name), zap.Error(err))
			return OutcomeFailed, ""
		}
		x.log.Info("record created", zap.String("name", item.Name))
		return OutcomeCreated, pageID

	case DecisionUpdate:
		if x.dryRun {
			x.log.Info("dry-run: would update", zap.String("name", item.Name))
			return OutcomeUpdated, ""
		}
		if err := x.store.PatchPage(ctx, d.PageID, props); err != nil {
			x.log.Error("failed to update record", zap.String("name", item.Name), zap.Error(err))
			return OutcomeFailed, ""
		}
		x.log.Info("record updated", zap.String("name", item.Name))
		return OutcomeUpdated, ""

	default:
		x.log.Debug("skipped", zap.String("name", item.Name), zap.String("reason", string(d.Reason)))
		return OutcomeSkipped, ""
	}
}

// AppendDelta creates one daily delta record. The delta log is auxiliary,
// not authoritative: callers treat a failure here as best-effort and never
// demote the primary update because of it.
func (x *Executor) AppendDelta(ctx context.Context, item InventoryItem, rec *DailyDeltaRecord) error {
	if x.dryRun {
		x.log.Info("dry-run: would append delta record",
			zap.String("name", item.Name),
			zap.Int("delta_minutes", rec.DeltaMinutes))
		return nil
	}

	media := &propstore.Media{IconEmoji: "✅"}
	if _, err := x.store.CreatePage(ctx, x.dailyDB, DailyProperties(rec), media); err != nil {
		return err
	}

	x.log.Info("delta record appended",
		zap.String("name", item.Name),
		zap.String("date", rec.Date),
		zap.Int("delta_minutes", rec.DeltaMinutes),
		zap.Int("cumulative_minutes", rec.CumulativeMinutes))
	return nil
}
