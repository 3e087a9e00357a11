package steam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"game-sync/core/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tp := transport.NewClient(transport.Config{MaxRetries: 1, RetryBaseMillis: 1}, zap.NewNop())
	return NewClient(Config{
		APIBase:         srv.URL,
		StoreBase:       srv.URL,
		APIKey:          "key",
		UserID:          "7656",
		Language:        "schinese",
		Country:         "CN",
		FallbackCountry: "SG",
	}, tp, zap.NewNop())
}

func TestOwnedGames(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/IPlayerService/GetOwnedGames/v0001/", r.URL.Path)
		assert.Equal(t, "key", r.URL.Query().Get("key"))
		assert.Equal(t, "7656", r.URL.Query().Get("steamid"))
		assert.Equal(t, "true", r.URL.Query().Get("include_appinfo"))
		_, _ = w.Write([]byte(`{"response": {"game_count": 2, "games": [
			{"appid": 400, "name": "Portal", "playtime_forever": 500, "rtime_last_played": 1714564800, "img_icon_url": "abc"},
			{"appid": 620, "name": "Portal 2", "playtime_forever": 900, "rtime_last_played": 0}
		]}}`))
	})

	games, err := client.OwnedGames(context.Background())
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, 400, games[0].AppID)
	assert.Equal(t, "Portal", games[0].Name)
	assert.Equal(t, 500, games[0].PlaytimeForever)
	assert.Equal(t, int64(1714564800), games[0].RTimeLastPlayed)
	assert.Equal(t, "abc", games[0].ImgIconURL)
	assert.Zero(t, games[1].RTimeLastPlayed)
}

func TestOwnedGames_EmptyResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response": {}}`))
	})

	games, err := client.OwnedGames(context.Background())
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestAchievements(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"playerstats": {"success": true, "achievements": [
			{"apiname": "A1", "achieved": 1, "unlocktime": 1700000000},
			{"apiname": "A2", "achieved": 1, "unlocktime": 1600000000},
			{"apiname": "A3", "achieved": 0, "unlocktime": 0}
		]}}`))
	})

	summary, err := client.Achievements(context.Background(), 400)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Achieved)
	assert.Equal(t, int64(1600000000), summary.EarliestUnlock)
}

func TestAchievements_ClientErrorMapsToSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"playerstats": {"error": "Requested app has no stats", "success": false}}`))
	})

	summary, err := client.Achievements(context.Background(), 400)
	require.NoError(t, err)
	assert.Equal(t, AbsentAchievements(), summary)
}

func TestAchievements_UnsuccessfulPayloadMapsToSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"playerstats": {"success": false}}`))
	})

	summary, err := client.Achievements(context.Background(), 400)
	require.NoError(t, err)
	assert.Equal(t, AbsentAchievements(), summary)
}

func TestStoreDetails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/appdetails":
			assert.Equal(t, "400", r.URL.Query().Get("appids"))
			assert.Equal(t, "schinese", r.URL.Query().Get("l"))
			_, _ = w.Write([]byte(`{"400": {"success": true, "data": {
				"name": "Portal",
				"short_description": "A puzzle game",
				"header_image": "https://example.com/header.jpg",
				"capsule_image": "https://example.com/capsule.jpg",
				"genres": [{"id": "4", "description": "Puzzle"}],
				"developers": ["Valve"],
				"publishers": ["Valve"],
				"release_date": {"coming_soon": false, "date": "2007-10-10"},
				"price_overview": {"final_formatted": "¥ 37"},
				"categories": [{"id": 2, "description": "Single-player"}]
			}}}`))
		case "/appreviews/400":
			_, _ = w.Write([]byte(`{"success": 1, "query_summary": {"review_score_desc": "Overwhelmingly Positive"}}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	meta, err := client.StoreDetails(context.Background(), 400)
	require.NoError(t, err)
	assert.Equal(t, "Portal", meta.ProductName)
	assert.Equal(t, "A puzzle game", meta.Description)
	assert.Equal(t, []string{"Puzzle"}, meta.Genres)
	assert.Equal(t, []string{"Valve"}, meta.Developers)
	assert.Equal(t, "2007-10-10", meta.ReleaseDate)
	assert.Equal(t, "¥ 37", meta.Price)
	assert.Equal(t, []string{"Single-player"}, meta.Tags)
	assert.Equal(t, "https://example.com/header.jpg", meta.CoverURL)
	assert.Equal(t, "Overwhelmingly Positive", meta.Review)
}

func TestStoreDetails_FallbackRegion(t *testing.T) {
	var countries []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/appdetails":
			cc := r.URL.Query().Get("cc")
			countries = append(countries, cc)
			if cc == "CN" {
				// Region-locked title: the primary region reports no data.
				_, _ = w.Write([]byte(`{"400": {"success": false}}`))
				return
			}
			_, _ = w.Write([]byte(`{"400": {"success": true, "data": {"name": "Portal"}}}`))
		case "/appreviews/400":
			_, _ = w.Write([]byte(`{"query_summary": {}}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	meta, err := client.StoreDetails(context.Background(), 400)
	require.NoError(t, err)
	assert.Equal(t, "Portal", meta.ProductName)
	assert.Equal(t, []string{"CN", "SG"}, countries)
}

func TestStoreDetails_NothingInEitherRegion(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"999": {"success": false}}`))
	})

	meta, err := client.StoreDetails(context.Background(), 999)
	require.NoError(t, err)
	assert.Empty(t, meta.ProductName)
}

func TestStoreDetails_ClientErrorIsEmptyNotFatal(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	meta, err := client.StoreDetails(context.Background(), 400)
	require.NoError(t, err)
	assert.Empty(t, meta.ProductName)
}

func TestURLHelpers(t *testing.T) {
	assert.Equal(t, "https://store.steampowered.com/app/400", StoreURLFor(400))
	assert.Contains(t, CoverURLFor(400), "/400/header.jpg")
	assert.Contains(t, IconURLFor(400, "abc"), "/400/abc.jpg")
}
