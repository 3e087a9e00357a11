package propstore

// Config holds configuration for the property store client.
type Config struct {
	// BaseURL is the root of the store's HTTP API.
	BaseURL string `mapstructure:"base_url" default:"https://api.notion.com"`
	// Token is the integration token used as a bearer credential.
	Token string `mapstructure:"token" default:""`
	// Version is the API version header value.
	Version string `mapstructure:"version" default:"2022-06-28"`
	// GamesDatabaseID is the id of the game library database.
	GamesDatabaseID string `mapstructure:"games_database_id" default:""`
	// DailyDatabaseID is the id of the daily playtime records database.
	// Optional; daily record sync is skipped when empty.
	DailyDatabaseID string `mapstructure:"daily_database_id" default:""`
}
