package sync

import (
	"time"

	"game-sync/core/steam"
)

// InventoryItem is one game of the user's library as seen by this run.
// It is transient, produced fresh each run; playtime is cumulative minutes.
type InventoryItem struct {
	AppID           int
	Name            string
	Platform        string
	PlaytimeMinutes int
	LastPlayedAt    int64 // epoch seconds; zero when never recorded
	IconHash        string
}

// FromOwnedGame converts a provider library entry into an InventoryItem.
func FromOwnedGame(g steam.OwnedGame, platform string) InventoryItem {
	return InventoryItem{
		AppID:           g.AppID,
		Name:            g.Name,
		Platform:        platform,
		PlaytimeMinutes: g.PlaytimeForever,
		LastPlayedAt:    g.RTimeLastPlayed,
		IconHash:        g.ImgIconURL,
	}
}

// Key is the composite join key between inventory items and store records.
// Matching is exact: case and whitespace sensitive.
type Key struct {
	Name     string
	Platform string
}

// StoreRecord is the materialized view of one persisted game page.
// PageID is opaque and owned by the store; this engine never invents one.
type StoreRecord struct {
	PageID   string
	AppID    string // stored provider id; empty on records created before it was persisted
	Name     string
	Platform string
	// LastPlayed is the stored last-played date start, empty when never set.
	LastPlayed string
	// PlaytimeMinutes is the stored cumulative counter; PlaytimeKnown is
	// false when the page has no playtime value, which makes the next delta
	// a baseline observation.
	PlaytimeMinutes int
	PlaytimeKnown   bool
}

// DecisionType classifies the reconciliation outcome for one item.
type DecisionType int

const (
	// DecisionSkip leaves the store untouched for this item.
	DecisionSkip DecisionType = iota
	// DecisionCreate creates a new page for this item.
	DecisionCreate
	// DecisionUpdate patches the existing page for this item.
	DecisionUpdate
)

// SkipReason explains why an item produced no write.
type SkipReason string

const (
	// ReasonFiltered means the engagement filter rejected the item.
	ReasonFiltered SkipReason = "filtered"
	// ReasonUnchanged means the last-played timestamp did not move.
	ReasonUnchanged SkipReason = "unchanged"
	// ReasonIncomplete means the stored record has no last-played value and
	// updates are disabled, so there is nothing safe to compare against.
	ReasonIncomplete SkipReason = "incomplete-record"
	// ReasonUpdateDisabled means the record exists and updating is turned off.
	ReasonUpdateDisabled SkipReason = "update-disabled"
)

// Decision is the reconciliation verdict for a single item. Prior carries the
// matched store record for update decisions so the delta calculator can read
// the pre-write cumulative counter.
type Decision struct {
	Type   DecisionType
	PageID string
	Reason SkipReason
	Prior  *StoreRecord
}

// DailyDeltaRecord is one append-only log entry of playtime attributable to a
// single calendar day. It is never updated or deleted by this engine.
type DailyDeltaRecord struct {
	Date              string // ISO day in the configured timezone
	PageID            string // the game page this record relates to
	DeltaMinutes      int    // always > 0
	CumulativeMinutes int    // the counter value at observation time
}

// Outcome is the executor's result for one applied decision.
type Outcome int

const (
	OutcomeSkipped Outcome = iota
	OutcomeCreated
	OutcomeUpdated
	OutcomeFailed
)

// String returns the outcome label used in logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeFailed:
		return "failed"
	default:
		return "skipped"
	}
}

// RunSummary aggregates per-item outcomes into the externally observable
// result of a run.
type RunSummary struct {
	Total        int           `json:"total"`
	Created      int           `json:"created"`
	Updated      int           `json:"updated"`
	Skipped      int           `json:"skipped"`
	Failed       int           `json:"failed"`
	DeltaRecords int           `json:"delta_records"`
	Duration     time.Duration `json:"duration"`
}

// fold adds one outcome to the totals.
func (s *RunSummary) fold(o Outcome) {
	switch o {
	case OutcomeCreated:
		s.Created++
	case OutcomeUpdated:
		s.Updated++
	case OutcomeFailed:
		s.Failed++
	default:
		s.Skipped++
	}
}
