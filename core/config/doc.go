// Package config loads application configuration from environment variables
// and an optional .env file.
//
// Defaults come from `default` struct tags on the partial config structs
// owned by each package (steam, propstore, transport, logger), bound into
// Viper by reflection. Environment variables override defaults using the
// nested key mapping, e.g. NOTION_GAMES_DATABASE_ID -> notion.games_database_id
// and STEAM_API_KEY -> steam.api_key.
//
// The resulting Config is built once at process start and handed to each
// component constructor; nothing reads the environment after that point.
// Validate names the settings a run aborts without.
package config
