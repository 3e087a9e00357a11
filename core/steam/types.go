package steam

// OwnedGame is one entry of the user's library as reported by the Web API.
// PlaytimeForever is cumulative minutes; RTimeLastPlayed is epoch seconds and
// zero when the API has never recorded a session.
type OwnedGame struct {
	AppID           int    `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int    `json:"playtime_forever"`
	RTimeLastPlayed int64  `json:"rtime_last_played"`
	ImgIconURL      string `json:"img_icon_url"`
}

// AchievementSummary aggregates a game's achievement state for one user.
// Total and Achieved are -1 when the game exposes no achievement data; that
// sentinel is distinct from a real zero and must survive into the store.
type AchievementSummary struct {
	Total          int
	Achieved       int
	EarliestUnlock int64 // epoch seconds; zero when nothing is unlocked
}

// AbsentAchievements is the sentinel summary for games without achievement
// data (missing stats, private profile, or a 4xx from the lookup).
func AbsentAchievements() AchievementSummary {
	return AchievementSummary{Total: -1, Achieved: -1}
}

// StoreMetadata is the best-effort storefront enrichment for one title.
// Missing fields stay as empty strings or empty slices.
type StoreMetadata struct {
	ProductName string
	Genres      []string
	Developers  []string
	Publishers  []string
	ReleaseDate string // raw storefront text, parsed at payload assembly
	Description string
	Price       string
	Tags        []string
	Review      string
	CoverURL    string
	IconURL     string
}
