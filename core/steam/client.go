package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"game-sync/core/transport"

	"go.uber.org/zap"
)

// Client fetches the owned-game inventory, achievement summaries and
// storefront metadata through the shared transport.
type Client struct {
	tp  *transport.Client
	cfg Config
	log *zap.Logger
}

// NewClient creates a Steam client.
func NewClient(cfg Config, tp *transport.Client, log *zap.Logger) *Client {
	return &Client{tp: tp, cfg: cfg, log: log}
}

// OwnedGames returns the user's full library. An empty result is returned as
// is; deciding whether that is fatal belongs to the caller.
func (c *Client) OwnedGames(ctx context.Context) ([]OwnedGame, error) {
	params := url.Values{}
	params.Set("key", c.cfg.APIKey)
	params.Set("steamid", c.cfg.UserID)
	params.Set("include_appinfo", "true")
	params.Set("include_played_free_games", strconv.FormatBool(c.cfg.IncludePlayedFreeGames))

	endpoint := c.cfg.APIBase + "/IPlayerService/GetOwnedGames/v0001/?" + params.Encode()
	data, err := c.tp.Do(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch owned games: %w", err)
	}

	var decoded struct {
		Response struct {
			Games []OwnedGame `json:"games"`
		} `json:"response"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode owned games: %w", err)
	}
	return decoded.Response.Games, nil
}

// Achievements returns the achievement summary for one title. A 4xx from the
// lookup means the game exposes no achievement data and maps to the absent
// sentinel, not an error.
func (c *Client) Achievements(ctx context.Context, appID int) (AchievementSummary, error) {
	params := url.Values{}
	params.Set("key", c.cfg.APIKey)
	params.Set("steamid", c.cfg.UserID)
	params.Set("appid", strconv.Itoa(appID))

	endpoint := c.cfg.APIBase + "/ISteamUserStats/GetPlayerAchievements/v0001/?" + params.Encode()
	data, err := c.tp.Do(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		var se *transport.StatusError
		if errors.As(err, &se) && se.ClientError() {
			return AbsentAchievements(), nil
		}
		return AbsentAchievements(), fmt.Errorf("failed to fetch achievements for app %d: %w", appID, err)
	}

	var decoded struct {
		PlayerStats struct {
			Success      bool `json:"success"`
			Achievements []struct {
				Achieved   int   `json:"achieved"`
				UnlockTime int64 `json:"unlocktime"`
			} `json:"achievements"`
		} `json:"playerstats"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return AbsentAchievements(), fmt.Errorf("failed to decode achievements for app %d: %w", appID, err)
	}

	if !decoded.PlayerStats.Success || len(decoded.PlayerStats.Achievements) == 0 {
		return AbsentAchievements(), nil
	}

	summary := AchievementSummary{Total: len(decoded.PlayerStats.Achievements)}
	for _, a := range decoded.PlayerStats.Achievements {
		if a.Achieved != 1 {
			continue
		}
		summary.Achieved++
		if a.UnlockTime > 0 && (summary.EarliestUnlock == 0 || a.UnlockTime < summary.EarliestUnlock) {
			summary.EarliestUnlock = a.UnlockTime
		}
	}
	return summary, nil
}

// StoreDetails returns best-effort storefront metadata for one title. When
// the primary region yields nothing usable, the fallback region is tried
// once. Missing fields default to empty values rather than failing the call.
func (c *Client) StoreDetails(ctx context.Context, appID int) (StoreMetadata, error) {
	meta, err := c.storeDetails(ctx, appID, c.cfg.Country)
	if err != nil {
		return StoreMetadata{}, err
	}
	if meta.ProductName == "" && c.cfg.FallbackCountry != "" && c.cfg.FallbackCountry != c.cfg.Country {
		c.log.Debug("retrying storefront lookup in fallback region",
			zap.Int("appid", appID),
			zap.String("country", c.cfg.FallbackCountry))
		meta, err = c.storeDetails(ctx, appID, c.cfg.FallbackCountry)
		if err != nil {
			return StoreMetadata{}, err
		}
	}
	if meta.ProductName != "" {
		meta.Review = c.reviewSummary(ctx, appID)
	}
	return meta, nil
}

// reviewSummary returns the storefront's aggregate review label ("Very
// Positive" and friends), or empty when reviews are unavailable. Reviews are
// decoration; a failed lookup just logs.
func (c *Client) reviewSummary(ctx context.Context, appID int) string {
	params := url.Values{}
	params.Set("json", "1")
	params.Set("language", "all")
	params.Set("purchase_type", "all")

	endpoint := fmt.Sprintf("%s/appreviews/%d?%s", c.cfg.StoreBase, appID, params.Encode())
	data, err := c.tp.Do(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		c.log.Debug("review summary lookup failed", zap.Int("appid", appID), zap.Error(err))
		return ""
	}

	var decoded struct {
		QuerySummary struct {
			ReviewScoreDesc string `json:"review_score_desc"`
		} `json:"query_summary"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		c.log.Debug("failed to decode review summary", zap.Int("appid", appID), zap.Error(err))
		return ""
	}
	return decoded.QuerySummary.ReviewScoreDesc
}

func (c *Client) storeDetails(ctx context.Context, appID int, country string) (StoreMetadata, error) {
	params := url.Values{}
	params.Set("appids", strconv.Itoa(appID))
	params.Set("l", c.cfg.Language)
	params.Set("cc", country)

	endpoint := c.cfg.StoreBase + "/api/appdetails?" + params.Encode()
	data, err := c.tp.Do(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		var se *transport.StatusError
		if errors.As(err, &se) && se.ClientError() {
			return StoreMetadata{}, nil
		}
		return StoreMetadata{}, fmt.Errorf("failed to fetch store details for app %d: %w", appID, err)
	}

	var decoded map[string]struct {
		Success bool `json:"success"`
		Data    struct {
			Name             string `json:"name"`
			ShortDescription string `json:"short_description"`
			HeaderImage      string `json:"header_image"`
			CapsuleImage     string `json:"capsule_image"`
			Genres           []struct {
				Description string `json:"description"`
			} `json:"genres"`
			Developers  []string `json:"developers"`
			Publishers  []string `json:"publishers"`
			ReleaseDate struct {
				Date string `json:"date"`
			} `json:"release_date"`
			PriceOverview struct {
				FinalFormatted string `json:"final_formatted"`
			} `json:"price_overview"`
			Categories []struct {
				Description string `json:"description"`
			} `json:"categories"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return StoreMetadata{}, fmt.Errorf("failed to decode store details for app %d: %w", appID, err)
	}

	entry, ok := decoded[strconv.Itoa(appID)]
	if !ok || !entry.Success {
		return StoreMetadata{}, nil
	}

	meta := StoreMetadata{
		ProductName: entry.Data.Name,
		Developers:  entry.Data.Developers,
		Publishers:  entry.Data.Publishers,
		ReleaseDate: entry.Data.ReleaseDate.Date,
		Description: entry.Data.ShortDescription,
		Price:       entry.Data.PriceOverview.FinalFormatted,
		CoverURL:    entry.Data.HeaderImage,
		IconURL:     entry.Data.CapsuleImage,
	}
	for _, g := range entry.Data.Genres {
		if g.Description != "" {
			meta.Genres = append(meta.Genres, g.Description)
		}
	}
	for _, cat := range entry.Data.Categories {
		if cat.Description != "" {
			meta.Tags = append(meta.Tags, cat.Description)
		}
	}
	return meta, nil
}

// CoverURLFor returns the CDN header image for a title, used when the
// storefront lookup produced no cover of its own.
func CoverURLFor(appID int) string {
	return fmt.Sprintf("https://steamcdn-a.akamaihd.net/steam/apps/%d/header.jpg", appID)
}

// IconURLFor returns the community icon for a title from its icon hash.
func IconURLFor(appID int, iconHash string) string {
	return fmt.Sprintf("https://media.steampowered.com/steamcommunity/public/images/apps/%d/%s.jpg", appID, iconHash)
}

// StoreURLFor returns the public store page for a title.
func StoreURLFor(appID int) string {
	return fmt.Sprintf("https://store.steampowered.com/app/%d", appID)
}
