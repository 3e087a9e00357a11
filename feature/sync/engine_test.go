package sync

import (
	"testing"
	"time"

	"game-sync/core/steam"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testOptions() Options {
	return Options{
		Platform:     "Steam",
		Location:     time.UTC,
		EnableUpdate: true,
		MinPlaytime:  6,
		IdlePlaytime: 360,
		IdleWindow:   7 * 24 * time.Hour,
	}
}

// panicAchievements is an AchievementsFunc for items whose lookup must not run.
func panicAchievements(t *testing.T) AchievementsFunc {
	return func() steam.AchievementSummary {
		t.Fatal("achievements must not be fetched for this item")
		return steam.AchievementSummary{}
	}
}

func achievementsWith(total int) AchievementsFunc {
	return func() steam.AchievementSummary {
		return steam.AchievementSummary{Total: total, Achieved: 0}
	}
}

func indexWith(t *testing.T, recs ...*StoreRecord) *Index {
	t.Helper()
	ix := newIndex()
	for _, rec := range recs {
		ix.add(rec, zap.NewNop())
	}
	return ix
}

func TestReconcile_AbsentCreates(t *testing.T) {
	engine := NewEngine(testOptions(), zap.NewNop())
	item := InventoryItem{AppID: 10, Name: "Portal", Platform: "Steam", PlaytimeMinutes: 500}

	d := engine.Reconcile(item, indexWith(t), panicAchievements(t))
	assert.Equal(t, DecisionCreate, d.Type)
}

func TestReconcile_UnchangedSkips_Idempotent(t *testing.T) {
	engine := NewEngine(testOptions(), zap.NewNop())

	lastPlayed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	item := InventoryItem{
		AppID:           10,
		Name:            "Portal",
		Platform:        "Steam",
		PlaytimeMinutes: 500,
		LastPlayedAt:    lastPlayed.Unix(),
	}
	ix := indexWith(t, &StoreRecord{
		PageID:     "page-1",
		Name:       "Portal",
		Platform:   "Steam",
		LastPlayed: "2024-05-01T12:00:00Z",
	})

	// Reconciling twice against an up-to-date index always skips.
	for i := 0; i < 2; i++ {
		d := engine.Reconcile(item, ix, panicAchievements(t))
		assert.Equal(t, DecisionSkip, d.Type)
		assert.Equal(t, ReasonUnchanged, d.Reason)
	}
}

func TestReconcile_UnchangedSkipsAcrossStoreNormalizedSpelling(t *testing.T) {
	engine := NewEngine(testOptions(), zap.NewNop())

	item := InventoryItem{
		AppID:           10,
		Name:            "Portal",
		Platform:        "Steam",
		PlaytimeMinutes: 500,
		LastPlayedAt:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).Unix(),
	}
	// The store echoes back its own spelling of the instant we wrote.
	ix := indexWith(t, &StoreRecord{
		PageID:     "page-1",
		Name:       "Portal",
		Platform:   "Steam",
		LastPlayed: "2024-05-01T12:00:00.000+00:00",
	})

	d := engine.Reconcile(item, ix, panicAchievements(t))
	assert.Equal(t, DecisionSkip, d.Type)
	assert.Equal(t, ReasonUnchanged, d.Reason)
}

func TestReconcile_ChangedUpdates(t *testing.T) {
	engine := NewEngine(testOptions(), zap.NewNop())

	item := InventoryItem{
		AppID:           10,
		Name:            "Portal",
		Platform:        "Steam",
		PlaytimeMinutes: 520,
		LastPlayedAt:    time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC).Unix(),
	}
	prior := &StoreRecord{
		PageID:          "page-1",
		Name:            "Portal",
		Platform:        "Steam",
		LastPlayed:      "2024-05-01T12:00:00Z",
		PlaytimeMinutes: 500,
		PlaytimeKnown:   true,
	}

	d := engine.Reconcile(item, indexWith(t, prior), panicAchievements(t))
	require.Equal(t, DecisionUpdate, d.Type)
	assert.Equal(t, "page-1", d.PageID)
	assert.Same(t, prior, d.Prior)
}

func TestReconcile_IncompleteRecord(t *testing.T) {
	item := InventoryItem{
		AppID:           10,
		Name:            "Portal",
		Platform:        "Steam",
		LastPlayedAt:    time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC).Unix(),
		PlaytimeMinutes: 500,
	}
	incomplete := &StoreRecord{PageID: "page-1", Name: "Portal", Platform: "Steam"}

	t.Run("updates enabled repairs it", func(t *testing.T) {
		engine := NewEngine(testOptions(), zap.NewNop())
		d := engine.Reconcile(item, indexWith(t, incomplete), panicAchievements(t))
		assert.Equal(t, DecisionUpdate, d.Type)
	})

	t.Run("updates disabled skips it", func(t *testing.T) {
		opts := testOptions()
		opts.EnableUpdate = false
		engine := NewEngine(opts, zap.NewNop())
		d := engine.Reconcile(item, indexWith(t, incomplete), panicAchievements(t))
		assert.Equal(t, DecisionSkip, d.Type)
		assert.Equal(t, ReasonIncomplete, d.Reason)
	})
}

func TestReconcile_UpdateDisabledSkipsCompleteRecord(t *testing.T) {
	opts := testOptions()
	opts.EnableUpdate = false
	engine := NewEngine(opts, zap.NewNop())

	item := InventoryItem{Name: "Portal", Platform: "Steam", PlaytimeMinutes: 500,
		LastPlayedAt: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC).Unix()}
	d := engine.Reconcile(item, indexWith(t, &StoreRecord{
		PageID: "page-1", Name: "Portal", Platform: "Steam",
		LastPlayed: "2024-05-01T12:00:00Z",
	}), panicAchievements(t))

	assert.Equal(t, DecisionSkip, d.Type)
	assert.Equal(t, ReasonUpdateDisabled, d.Reason)
}

func TestReconcile_CompositeKeySeparatesPlatforms(t *testing.T) {
	engine := NewEngine(testOptions(), zap.NewNop())

	steamRec := &StoreRecord{PageID: "page-steam", Name: "Hades", Platform: "Steam",
		LastPlayed: "2024-05-01T12:00:00Z"}
	switchRec := &StoreRecord{PageID: "page-switch", Name: "Hades", Platform: "Switch",
		LastPlayed: "2024-05-01T12:00:00Z"}
	ix := indexWith(t, steamRec, switchRec)
	require.Equal(t, 2, ix.Len())

	item := InventoryItem{Name: "Hades", Platform: "Steam", PlaytimeMinutes: 100,
		LastPlayedAt: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC).Unix()}
	d := engine.Reconcile(item, ix, panicAchievements(t))
	require.Equal(t, DecisionUpdate, d.Type)
	assert.Equal(t, "page-steam", d.PageID)
}

func TestReconcile_AppIDPreferredOverRenamedTitle(t *testing.T) {
	engine := NewEngine(testOptions(), zap.NewNop())

	// The stored record carries the provider id but an outdated display name.
	prior := &StoreRecord{
		PageID:     "page-1",
		AppID:      "10",
		Name:       "Portal (Classic)",
		Platform:   "Steam",
		LastPlayed: "2024-05-01T12:00:00Z",
	}
	item := InventoryItem{AppID: 10, Name: "Portal", Platform: "Steam",
		LastPlayedAt: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC).Unix()}

	d := engine.Reconcile(item, indexWith(t, prior), panicAchievements(t))
	require.Equal(t, DecisionUpdate, d.Type)
	assert.Equal(t, "page-1", d.PageID)
}

func TestFilter(t *testing.T) {
	now := time.Now()
	tenDaysAgo := now.Add(-10 * 24 * time.Hour).Unix()
	yesterday := now.Add(-24 * time.Hour).Unix()

	tests := []struct {
		name     string
		item     InventoryItem
		ach      AchievementsFunc
		filtered bool
	}{
		{
			name:     "tiny playtime no achievements",
			item:     InventoryItem{Name: "A", Platform: "Steam", PlaytimeMinutes: 5, LastPlayedAt: yesterday},
			ach:      achievementsWith(0),
			filtered: true,
		},
		{
			name:     "tiny playtime stale no achievements",
			item:     InventoryItem{Name: "B", Platform: "Steam", PlaytimeMinutes: 5, LastPlayedAt: tenDaysAgo},
			ach:      achievementsWith(0),
			filtered: true,
		},
		{
			name:     "stale medium playtime no achievements",
			item:     InventoryItem{Name: "C", Platform: "Steam", PlaytimeMinutes: 120, LastPlayedAt: tenDaysAgo},
			ach:      achievementsWith(0),
			filtered: true,
		},
		{
			name:     "absent achievement data counts as none",
			item:     InventoryItem{Name: "D", Platform: "Steam", PlaytimeMinutes: 5, LastPlayedAt: yesterday},
			ach:      func() steam.AchievementSummary { return steam.AbsentAchievements() },
			filtered: true,
		},
		{
			name:     "any achievement exempts regardless of playtime",
			item:     InventoryItem{Name: "E", Platform: "Steam", PlaytimeMinutes: 5, LastPlayedAt: tenDaysAgo},
			ach:      achievementsWith(1),
			filtered: false,
		},
		{
			name:     "recent medium playtime passes",
			item:     InventoryItem{Name: "F", Platform: "Steam", PlaytimeMinutes: 120, LastPlayedAt: yesterday},
			ach:      achievementsWith(0),
			filtered: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			opts.EnableFilter = true
			engine := NewEngine(opts, zap.NewNop())

			d := engine.Reconcile(tt.item, indexWith(t), tt.ach)
			if tt.filtered {
				assert.Equal(t, DecisionSkip, d.Type)
				assert.Equal(t, ReasonFiltered, d.Reason)
			} else {
				assert.Equal(t, DecisionCreate, d.Type)
			}
		})
	}
}

func TestFilter_HighPlaytimeNeverFetchesAchievements(t *testing.T) {
	opts := testOptions()
	opts.EnableFilter = true
	engine := NewEngine(opts, zap.NewNop())

	item := InventoryItem{Name: "G", Platform: "Steam", PlaytimeMinutes: 400}
	d := engine.Reconcile(item, indexWith(t), panicAchievements(t))
	assert.Equal(t, DecisionCreate, d.Type)
}

func TestFilter_DisabledNeverSkips(t *testing.T) {
	engine := NewEngine(testOptions(), zap.NewNop())

	item := InventoryItem{Name: "H", Platform: "Steam", PlaytimeMinutes: 0}
	d := engine.Reconcile(item, indexWith(t), panicAchievements(t))
	assert.Equal(t, DecisionCreate, d.Type)
}
