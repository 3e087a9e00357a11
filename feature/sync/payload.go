package sync

import (
	"math"
	"strconv"

	"game-sync/core/propstore"
	"game-sync/core/steam"
	"game-sync/core/utils"
)

// Property names of the game library database.
const (
	PropName        = "Name"
	PropProductName = "Product Name"
	PropAppID       = "AppID"
	PropPlaytime    = "Playtime"
	PropGenres      = "Genres"
	PropDevelopers  = "Developers"
	PropPublishers  = "Publishers"
	PropReleaseDate = "Release Date"
	PropLastPlayed  = "Last Played"
	PropStoreURL    = "Store URL"
	PropTotalAch    = "Total Achievements"
	PropAchievedAch = "Achieved Achievements"
	PropFirstUnlock = "First Unlock"
	PropCompletion  = "Completion"
	PropDescription = "Description"
	PropTags        = "Tags"
	PropPlatform    = "Platform"
	PropPrice       = "Price"
	PropReview      = "Review"
)

// Property names of the daily records database.
const (
	DailyPropDate          = "Date"
	DailyPropTitle         = "Record"
	DailyPropGame          = "Game"
	DailyPropPlaytime      = "Playtime"
	DailyPropTotalPlaytime = "Total Playtime"
)

func appIDString(id int) string {
	return strconv.Itoa(id)
}

// CreateProperties assembles the full property payload for a new page.
// Date fields without a value and empty multi-selects are left out of the
// map entirely; the store treats absence differently from null.
func CreateProperties(item InventoryItem, ach steam.AchievementSummary, meta steam.StoreMetadata, opts Options) propstore.Properties {
	props := propstore.Properties{
		PropName:        propstore.Title(item.Name),
		PropProductName: propstore.RichText(meta.ProductName),
		PropAppID:       propstore.RichText(appIDString(item.AppID)),
		PropPlaytime:    propstore.Number(item.PlaytimeMinutes),
		PropTotalAch:    propstore.Number(ach.Total),
		PropAchievedAch: propstore.Number(ach.Achieved),
		PropDescription: propstore.RichText(meta.Description),
		PropPrice:       propstore.RichText(meta.Price),
		PropPlatform:    propstore.Select(item.Platform),
		PropStoreURL:    propstore.URL(steam.StoreURLFor(item.AppID)),
	}

	if lastPlayed := utils.FormatEpoch(item.LastPlayedAt, opts.Location, false); lastPlayed != "" {
		props[PropLastPlayed] = propstore.Date(lastPlayed)
	}
	if unlock := utils.FormatEpoch(ach.EarliestUnlock, opts.Location, true); unlock != "" {
		props[PropFirstUnlock] = propstore.Date(unlock)
	}
	if released, ok := utils.ParseReleaseDate(meta.ReleaseDate); ok {
		props[PropReleaseDate] = propstore.Date(released.Format("2006-01-02"))
	}

	if len(meta.Genres) > 0 {
		props[PropGenres] = propstore.MultiSelect(meta.Genres)
	}
	if len(meta.Developers) > 0 {
		props[PropDevelopers] = propstore.MultiSelect(meta.Developers)
	}
	if len(meta.Publishers) > 0 {
		props[PropPublishers] = propstore.MultiSelect(meta.Publishers)
	}
	if len(meta.Tags) > 0 {
		props[PropTags] = propstore.MultiSelect(meta.Tags)
	}
	if meta.Review != "" {
		props[PropReview] = propstore.Select(meta.Review)
	}

	return props
}

// UpdateProperties assembles the payload for patching an existing page. The
// default mode writes only the minimal subset that tracks play activity;
// full refresh rewrites everything plus the completion percentage. Cheaper
// minimal updates leave enrichment fields stale until a full refresh.
func UpdateProperties(item InventoryItem, ach steam.AchievementSummary, meta steam.StoreMetadata, opts Options) propstore.Properties {
	if opts.FullRefresh {
		props := CreateProperties(item, ach, meta, opts)
		props[PropCompletion] = propstore.Number(completionPercent(ach))
		// A refresh rewrites the multi-selects even when empty, clearing
		// options that no longer exist upstream. Creation omits them instead.
		props[PropGenres] = propstore.MultiSelect(meta.Genres)
		props[PropDevelopers] = propstore.MultiSelect(meta.Developers)
		props[PropPublishers] = propstore.MultiSelect(meta.Publishers)
		props[PropTags] = propstore.MultiSelect(meta.Tags)
		return props
	}

	props := propstore.Properties{
		PropPlaytime:    propstore.Number(item.PlaytimeMinutes),
		PropAchievedAch: propstore.Number(ach.Achieved),
	}
	if lastPlayed := utils.FormatEpoch(item.LastPlayedAt, opts.Location, false); lastPlayed != "" {
		props[PropLastPlayed] = propstore.Date(lastPlayed)
	}
	if meta.Review != "" {
		props[PropReview] = propstore.Select(meta.Review)
	}
	return props
}

// CreateMedia picks the external cover and icon for a new page, preferring
// storefront urls and falling back to the CDN defaults.
func CreateMedia(item InventoryItem, meta steam.StoreMetadata) *propstore.Media {
	media := &propstore.Media{
		CoverURL: meta.CoverURL,
		IconURL:  meta.IconURL,
	}
	if media.CoverURL == "" {
		media.CoverURL = steam.CoverURLFor(item.AppID)
	}
	if media.IconURL == "" && item.IconHash != "" {
		media.IconURL = steam.IconURLFor(item.AppID, item.IconHash)
	}
	return media
}

// DailyProperties assembles the payload of one daily delta record.
func DailyProperties(rec *DailyDeltaRecord) propstore.Properties {
	return propstore.Properties{
		DailyPropDate:          propstore.Date(rec.Date),
		DailyPropTitle:         propstore.DateMentionTitle(rec.Date),
		DailyPropGame:          propstore.Relation(rec.PageID),
		DailyPropPlaytime:      propstore.Number(rec.DeltaMinutes),
		DailyPropTotalPlaytime: propstore.Number(rec.CumulativeMinutes),
	}
}

// completionPercent returns achieved/total as a percentage rounded to one
// decimal, or -1 when the game exposes no achievements.
func completionPercent(ach steam.AchievementSummary) float64 {
	if ach.Total <= 0 {
		return -1
	}
	return math.Round(float64(ach.Achieved)/float64(ach.Total)*1000) / 10
}
