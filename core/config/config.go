package config

import (
	"fmt"
	"reflect"
	"strings"

	"game-sync/core/logger"
	"game-sync/core/propstore"
	"game-sync/core/steam"
	"game-sync/core/transport"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application. It is constructed once
// at process start and passed by reference into each component constructor;
// no component reads ambient environment state directly.
type Config struct {
	// Steam holds credentials and endpoints for the catalog provider.
	Steam steam.Config `mapstructure:"steam"`
	// Store holds the property store credentials and database ids.
	Store propstore.Config `mapstructure:"notion"`
	// Transport holds retry and timeout settings for outbound HTTP.
	Transport transport.Config `mapstructure:"transport"`
	// Sync holds the reconciliation run policy.
	Sync SyncConfig `mapstructure:"sync"`
	// Server holds configuration for serve mode.
	Server ServerConfig `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// SyncConfig holds the reconciliation run policy.
type SyncConfig struct {
	// Platform is the provider name recorded on every store entity and used
	// in the composite join key.
	Platform string `mapstructure:"platform" default:"Steam"`
	// Timezone is the IANA zone daily records and date properties use.
	Timezone string `mapstructure:"timezone" default:"Local"`
	// EnableUpdate allows patching of existing records when playtime changed.
	EnableUpdate bool `mapstructure:"enable_update" default:"true"`
	// EnableFilter turns on the low-engagement creation filter.
	EnableFilter bool `mapstructure:"enable_filter" default:"false"`
	// FullRefresh rewrites all enrichment fields on update instead of the
	// minimal playtime subset.
	FullRefresh bool `mapstructure:"full_refresh" default:"false"`
	// MinPlaytimeMinutes is the filter's floor for items without achievements.
	MinPlaytimeMinutes int `mapstructure:"min_playtime_minutes" default:"6"`
	// IdlePlaytimeMinutes is the filter's higher floor for items not played
	// within the idle window.
	IdlePlaytimeMinutes int `mapstructure:"idle_playtime_minutes" default:"360"`
	// IdleWindowDays is the rolling window for the idle branch of the filter.
	IdleWindowDays int `mapstructure:"idle_window_days" default:"7"`
	// PauseMillis is the fixed pause between items, respecting upstream rate
	// limits. Scheduling policy only; zero disables it.
	PauseMillis int `mapstructure:"pause_millis" default:"300"`
}

// ServerConfig holds configuration for serve mode.
type ServerConfig struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// SyncIntervalMinutes schedules periodic runs; zero disables the timer
	// and leaves only the manual trigger endpoint.
	SyncIntervalMinutes int `mapstructure:"sync_interval_minutes" default:"0"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. NOTION_TOKEN -> notion.token)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate reports the required settings a sync run cannot start without.
func (c *Config) Validate() error {
	var missing []string
	if c.Steam.APIKey == "" {
		missing = append(missing, "steam.api_key")
	}
	if c.Steam.UserID == "" {
		missing = append(missing, "steam.user_id")
	}
	if c.Store.Token == "" {
		missing = append(missing, "notion.token")
	}
	if c.Store.GamesDatabaseID == "" {
		missing = append(missing, "notion.games_database_id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
