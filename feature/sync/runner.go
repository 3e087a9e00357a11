package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"game-sync/core/propstore"
	"game-sync/core/steam"

	"go.uber.org/zap"
)

// ErrEmptyInventory is returned when the catalog provider reports no owned
// games at all. Nothing-to-reconcile is indistinguishable from a total
// provider failure at this layer and must abort rather than silently produce
// zero writes.
var ErrEmptyInventory = errors.New("no owned games returned by catalog provider")

// Catalog is the inventory and enrichment provider the runner consumes.
// Satisfied by *steam.Client.
type Catalog interface {
	// OwnedGames lists the user's full library.
	OwnedGames(ctx context.Context) ([]steam.OwnedGame, error)
	// Achievements returns the achievement summary for one title; absent
	// data maps to the sentinel summary, not an error.
	Achievements(ctx context.Context, appID int) (steam.AchievementSummary, error)
	// StoreDetails returns best-effort storefront metadata for one title.
	StoreDetails(ctx context.Context, appID int) (steam.StoreMetadata, error)
}

// Runner drives a full reconciliation run: build the index once, stream the
// inventory against it, compute deltas for changed items, and execute writes.
// Items are processed one at a time in inventory order; the store is the
// sole durable state, so an interrupted run is safe to simply re-run.
type Runner struct {
	catalog Catalog
	store   propstore.Store
	gamesDB string
	dailyDB string
	opts    Options
	engine  *Engine
	exec    *Executor
	log     *zap.Logger

	// indirections for tests
	sleep func(ctx context.Context, d time.Duration)
	now   func() time.Time
}

// NewRunner wires up a run over the given collaborators.
func NewRunner(catalog Catalog, store propstore.Store, gamesDB, dailyDB string, opts Options, log *zap.Logger) *Runner {
	return &Runner{
		catalog: catalog,
		store:   store,
		gamesDB: gamesDB,
		dailyDB: dailyDB,
		opts:    opts,
		engine:  NewEngine(opts, log),
		exec:    NewExecutor(store, gamesDB, dailyDB, opts.DryRun, log),
		log:     log,
		sleep:   pause,
		now:     time.Now,
	}
}

// Run performs one full reconciliation and returns the run totals. Item
// failures are folded into the totals and never escalate; the only run-level
// failures are an empty inventory and context cancellation.
func (r *Runner) Run(ctx context.Context) (*RunSummary, error) {
	start := r.now()

	games, err := r.catalog.OwnedGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	if len(games) == 0 {
		return nil, ErrEmptyInventory
	}
	r.log.Info("inventory fetched", zap.Int("games", len(games)))

	index := NewIndexBuilder(r.store, r.gamesDB, r.log).Build(ctx)

	daily := r.opts.Daily && r.dailyDB != ""
	if r.opts.Daily && r.dailyDB == "" {
		r.log.Warn("daily records database not configured, skipping delta log")
	}
	var tracker *DeltaTracker
	if daily {
		tracker = NewDeltaTracker(r.store, r.dailyDB, r.opts.Location, r.log)
		tracker.LoadToday(ctx)
	}

	summary := &RunSummary{Total: len(games)}
	for i, game := range games {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		item := FromOwnedGame(game, r.opts.Platform)
		log := r.log.With(zap.String("name", item.Name), zap.Int("appid", item.AppID))
		log.Debug("processing item", zap.Int("position", i+1), zap.Int("of", len(games)))

		r.processItem(ctx, item, index, tracker, summary, log)

		if r.opts.Pause > 0 {
			r.sleep(ctx, r.opts.Pause)
		}
	}

	summary.Duration = r.now().Sub(start)
	r.log.Info("sync finished",
		zap.Int("total", summary.Total),
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
		zap.Int("delta_records", summary.DeltaRecords),
		zap.Duration("duration", summary.Duration))
	return summary, nil
}

// processItem reconciles and applies a single item, folding the outcome into
// the run totals.
func (r *Runner) processItem(ctx context.Context, item InventoryItem, index *Index, tracker *DeltaTracker, summary *RunSummary, log *zap.Logger) {
	// Achievement data is fetched at most once per item, and only when the
	// filter or a write decision actually needs it.
	var (
		achLoaded  bool
		achSummary steam.AchievementSummary
	)
	fetchAch := func() steam.AchievementSummary {
		if !achLoaded {
			a, err := r.catalog.Achievements(ctx, item.AppID)
			if err != nil {
				log.Warn("achievements lookup failed", zap.Error(err))
				a = steam.AbsentAchievements()
			}
			achSummary = a
			achLoaded = true
		}
		return achSummary
	}

	decision := r.engine.Reconcile(item, index, fetchAch)
	if decision.Type == DecisionSkip {
		log.Debug("skipping item", zap.String("reason", string(decision.Reason)))
		summary.Skipped++
		return
	}

	// Enrichment is fetched only after reconciliation decided to write.
	ach := fetchAch()
	meta, err := r.catalog.StoreDetails(ctx, item.AppID)
	if err != nil {
		// Metadata is best-effort; the write proceeds with empty enrichment.
		log.Warn("storefront lookup failed", zap.Error(err))
		meta = steam.StoreMetadata{}
	}

	var (
		props propstore.Properties
		media *propstore.Media
	)
	switch decision.Type {
	case DecisionCreate:
		props = CreateProperties(item, ach, meta, r.opts)
		media = CreateMedia(item, meta)
	case DecisionUpdate:
		props = UpdateProperties(item, ach, meta, r.opts)
	}

	outcome, createdID := r.exec.Apply(ctx, item, decision, props, media)
	summary.fold(outcome)

	if tracker == nil {
		return
	}

	// The delta reads the index's pre-write counter, which the write above
	// does not touch. A created record has no history: its delta is the full
	// cumulative baseline, related to the page the create just returned.
	var delta *DailyDeltaRecord
	switch outcome {
	case OutcomeUpdated:
		delta = ComputeDelta(item, decision.Prior, tracker.Today())
	case OutcomeCreated:
		delta = ComputeDelta(item, nil, tracker.Today())
		if delta != nil {
			delta.PageID = createdID
		}
	}
	if delta == nil || delta.PageID == "" {
		return
	}

	if tracker.AlreadyRecorded(delta.PageID) {
		log.Debug("delta already recorded today")
		return
	}
	// Best-effort follow-up: a failed delta write never demotes the
	// already-successful create or update.
	if err := r.exec.AppendDelta(ctx, item, delta); err != nil {
		log.Warn("failed to append delta record", zap.Error(err))
		return
	}
	tracker.MarkRecorded(delta.PageID)
	summary.DeltaRecords++
}

// RunAdd force-syncs specific titles by provider id: existing records get a
// full refresh, missing ones are created with zero playtime.
func (r *Runner) RunAdd(ctx context.Context, appIDs []int) (*RunSummary, error) {
	start := r.now()
	index := NewIndexBuilder(r.store, r.gamesDB, r.log).Build(ctx)

	// The add flow always rewrites every enrichment field.
	opts := r.opts
	opts.FullRefresh = true

	summary := &RunSummary{Total: len(appIDs)}
	for _, appID := range appIDs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		meta, err := r.catalog.StoreDetails(ctx, appID)
		if err != nil || meta.ProductName == "" {
			r.log.Error("no storefront data for app",
				zap.Int("appid", appID), zap.Error(err))
			summary.Failed++
			continue
		}

		ach, err := r.catalog.Achievements(ctx, appID)
		if err != nil {
			r.log.Warn("achievements lookup failed", zap.Int("appid", appID), zap.Error(err))
			ach = steam.AbsentAchievements()
		}

		item := InventoryItem{
			AppID:    appID,
			Name:     meta.ProductName,
			Platform: opts.Platform,
		}

		decision := Decision{Type: DecisionCreate}
		if prior, found := index.Lookup(item); found {
			decision = Decision{Type: DecisionUpdate, PageID: prior.PageID, Prior: prior}
		}

		var (
			props propstore.Properties
			media *propstore.Media
		)
		if decision.Type == DecisionCreate {
			props = CreateProperties(item, ach, meta, opts)
			media = CreateMedia(item, meta)
		} else {
			props = UpdateProperties(item, ach, meta, opts)
		}

		outcome, _ := r.exec.Apply(ctx, item, decision, props, media)
		summary.fold(outcome)

		if opts.Pause > 0 {
			r.sleep(ctx, opts.Pause)
		}
	}

	summary.Duration = r.now().Sub(start)
	return summary, nil
}

// pause waits for d unless the context ends first.
func pause(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
