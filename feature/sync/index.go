package sync

import (
	"context"

	"game-sync/core/propstore"

	"go.uber.org/zap"
)

// Index is the in-memory lookup over the store's current records, built once
// at the start of a run and read-only thereafter. Records are reachable by
// the persisted provider id when present, and always by the (name, platform)
// composite key.
type Index struct {
	byAppID map[string]*StoreRecord
	byKey   map[Key]*StoreRecord
}

// newIndex returns an empty index.
func newIndex() *Index {
	return &Index{
		byAppID: make(map[string]*StoreRecord),
		byKey:   make(map[Key]*StoreRecord),
	}
}

// Len returns the number of indexed records.
func (ix *Index) Len() int {
	return len(ix.byKey)
}

// Lookup resolves an item to its store record. The persisted provider id is
// preferred as the join key; the display-name composite key is the fallback
// for records created before the id property existed.
func (ix *Index) Lookup(item InventoryItem) (*StoreRecord, bool) {
	if rec, ok := ix.byAppID[appIDString(item.AppID)]; ok {
		return rec, true
	}
	rec, ok := ix.byKey[Key{Name: item.Name, Platform: item.Platform}]
	return rec, ok
}

// add indexes one record. The first record wins on a duplicate key so that a
// rename-induced duplicate cannot silently shadow the older page.
func (ix *Index) add(rec *StoreRecord, log *zap.Logger) {
	if rec.AppID != "" {
		if _, exists := ix.byAppID[rec.AppID]; exists {
			log.Warn("duplicate appid in store, keeping first",
				zap.String("appid", rec.AppID),
				zap.String("name", rec.Name))
		} else {
			ix.byAppID[rec.AppID] = rec
		}
	}

	key := Key{Name: rec.Name, Platform: rec.Platform}
	if _, exists := ix.byKey[key]; exists {
		log.Warn("duplicate record key in store, keeping first",
			zap.String("name", rec.Name),
			zap.String("platform", rec.Platform))
		return
	}
	ix.byKey[key] = rec
}

// IndexBuilder walks the store's paginated listing and materializes the
// current record set.
type IndexBuilder struct {
	store      propstore.Store
	databaseID string
	log        *zap.Logger
}

// NewIndexBuilder creates an index builder over the given database.
func NewIndexBuilder(store propstore.Store, databaseID string, log *zap.Logger) *IndexBuilder {
	return &IndexBuilder{store: store, databaseID: databaseID, log: log}
}

// Build walks the listing to exhaustion. Entities without a title are skipped
// with a warning. A page failure after the transport's retries logs and
// returns whatever was accumulated: a partial index only causes spurious
// creates, which self-correct on the next run, while aborting would stop the
// whole sync.
func (b *IndexBuilder) Build(ctx context.Context) *Index {
	ix := newIndex()
	cursor := ""

	for {
		page, err := b.store.QueryPage(ctx, b.databaseID, propstore.Query{StartCursor: cursor})
		if err != nil {
			b.log.Warn("store listing failed, continuing with partial index",
				zap.Int("indexed", ix.Len()),
				zap.Error(err))
			return ix
		}

		for _, entity := range page.Results {
			rec, ok := recordFromEntity(entity)
			if !ok {
				b.log.Warn("skipping store entity without title", zap.String("page_id", entity.ID))
				continue
			}
			ix.add(rec, b.log)
		}

		if !page.HasMore {
			break
		}
		cursor = page.NextCursor
	}

	b.log.Info("store index built", zap.Int("records", ix.Len()))
	return ix
}

// recordFromEntity parses one listing entity into a StoreRecord. A missing
// title makes the entity unindexable.
func recordFromEntity(e propstore.Entity) (*StoreRecord, bool) {
	name, ok := e.PlainTitle(PropName)
	if !ok {
		return nil, false
	}

	platform, ok := e.SelectName(PropPlatform)
	if !ok {
		platform = "Unknown"
	}

	rec := &StoreRecord{
		PageID:   e.ID,
		Name:     name,
		Platform: platform,
	}
	if appID, ok := e.PlainText(PropAppID); ok {
		rec.AppID = appID
	}
	if lastPlayed, ok := e.DateStart(PropLastPlayed); ok {
		rec.LastPlayed = lastPlayed
	}
	if minutes, ok := e.NumberValue(PropPlaytime); ok {
		rec.PlaytimeMinutes = int(minutes)
		rec.PlaytimeKnown = true
	}
	return rec, true
}
