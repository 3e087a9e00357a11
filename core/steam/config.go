package steam

// Config holds configuration for the Steam Web API and storefront clients.
type Config struct {
	// APIBase is the root of the Steam Web API.
	APIBase string `mapstructure:"api_base" default:"https://api.steampowered.com"`
	// StoreBase is the root of the storefront metadata API.
	StoreBase string `mapstructure:"store_base" default:"https://store.steampowered.com"`
	// APIKey is the Web API key.
	APIKey string `mapstructure:"api_key" default:""`
	// UserID is the 64-bit profile id whose library is synced.
	UserID string `mapstructure:"user_id" default:""`
	// IncludePlayedFreeGames includes free titles with recorded playtime.
	IncludePlayedFreeGames bool `mapstructure:"include_played_free_games" default:"true"`
	// Language is the storefront locale for metadata text.
	Language string `mapstructure:"language" default:"schinese"`
	// Country is the storefront region for pricing and availability.
	Country string `mapstructure:"country" default:"CN"`
	// FallbackCountry is retried when the primary region returns no metadata.
	FallbackCountry string `mapstructure:"fallback_country" default:"SG"`
}
