package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleygordonclark/spotify-playlist-catalog/internal/config"
)

const playlistJSON = `{
	"id": "37i9dQZF1DXcBWIGoYBM5M",
	"name": "Today's Top Hits",
	"description": "The hottest 50",
	"owner": {"display_name": "Spotify"},
	"tracks": {
		"items": [
			{
				"added_at": "2024-03-01T10:30:00Z",
				"track": {
					"id": "t1",
					"name": "Lover",
					"duration_ms": 221000,
					"album": {"name": "Lover"},
					"artists": [{"id": "a1", "name": "Taylor Swift"}]
				}
			},
			{"added_at": "2024-03-02T09:00:00Z", "track": null}
		]
	}
}`

// fakeSpotify stands in for both the accounts host and the API host.
type fakeSpotify struct {
	srv *httptest.Server

	tokenStatus    int
	tokenRequests  int
	playlistStatus int
	playlistBody   string
	lastPlaylistID string
	lastMarket     string
}

func newFakeSpotify(t *testing.T) *fakeSpotify {
	t.Helper()
	f := &fakeSpotify{
		tokenStatus:    http.StatusOK,
		playlistStatus: http.StatusOK,
		playlistBody:   playlistJSON,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenRequests++
		if f.tokenStatus != http.StatusOK {
			w.WriteHeader(f.tokenStatus)
			return
		}
		fmt.Fprint(w, `{"access_token": "test-token", "token_type": "Bearer", "expires_in": 3600}`)
	})
	mux.HandleFunc("/playlists/", func(w http.ResponseWriter, r *http.Request) {
		f.lastPlaylistID = r.URL.Path[len("/playlists/"):]
		f.lastMarket = r.URL.Query().Get("market")
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if f.playlistStatus != http.StatusOK {
			w.WriteHeader(f.playlistStatus)
			return
		}
		fmt.Fprint(w, f.playlistBody)
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeSpotify) client() *SpotifyClient {
	cfg := &config.Config{
		SpotifyClientID:      "test-client",
		SpotifyClientSecret:  "test-secret",
		SpotifyCountryMarket: "US",
	}
	return NewSpotifyClient(cfg).WithBaseURLs(f.srv.URL+"/api/token", f.srv.URL)
}

func TestGetPlaylist(t *testing.T) {
	f := newFakeSpotify(t)

	raw, err := f.client().GetPlaylist("37i9dQZF1DXcBWIGoYBM5M")
	require.NoError(t, err)

	assert.Equal(t, "37i9dQZF1DXcBWIGoYBM5M", raw.ID)
	assert.Equal(t, "Today's Top Hits", raw.Name)
	assert.Equal(t, "Spotify", raw.Owner.DisplayName)
	require.Len(t, raw.Tracks.Items, 2)

	first := raw.Tracks.Items[0]
	require.NotNil(t, first.Track)
	assert.Equal(t, "t1", first.Track.ID)
	assert.Equal(t, 221000, first.Track.DurationMs)
	assert.Equal(t, "Taylor Swift", first.Track.Artists[0].Name)

	assert.Nil(t, raw.Tracks.Items[1].Track, "null track entries must decode to nil")
	assert.Equal(t, "US", f.lastMarket)
}

func TestGetPlaylistNormalizesID(t *testing.T) {
	f := newFakeSpotify(t)

	_, err := f.client().GetPlaylist("  https://open.spotify.com/playlist/abc123?si=xyz  ")
	require.NoError(t, err)
	assert.Equal(t, "abc123", f.lastPlaylistID)
}

func TestGetPlaylistCachesToken(t *testing.T) {
	f := newFakeSpotify(t)
	c := f.client()

	_, err := c.GetPlaylist("p1")
	require.NoError(t, err)
	_, err = c.GetPlaylist("p2")
	require.NoError(t, err)

	assert.Equal(t, 1, f.tokenRequests, "token must be exchanged once per client lifetime")
}

func TestGetPlaylistMissingCredentials(t *testing.T) {
	f := newFakeSpotify(t)
	c := NewSpotifyClient(&config.Config{}).WithBaseURLs(f.srv.URL+"/api/token", f.srv.URL)

	_, err := c.GetPlaylist("p1")
	assert.ErrorIs(t, err, ErrAuthConfig)
	assert.Zero(t, f.tokenRequests, "no outbound call without credentials")
}

func TestGetPlaylistErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		tokenStatus    int
		playlistStatus int
		wantErr        error
	}{
		{"token exchange fails", http.StatusBadRequest, http.StatusOK, ErrUpstreamAuth},
		{"playlist not found", http.StatusOK, http.StatusNotFound, ErrNotFound},
		{"playlist unauthorized", http.StatusOK, http.StatusUnauthorized, ErrUpstreamAuth},
		{"upstream server error", http.StatusOK, http.StatusServiceUnavailable, ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeSpotify(t)
			f.tokenStatus = tt.tokenStatus
			f.playlistStatus = tt.playlistStatus

			_, err := f.client().GetPlaylist("p1")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetPlaylistMalformedBody(t *testing.T) {
	f := newFakeSpotify(t)
	f.playlistBody = `{"id": "p1", "tracks": "not-an-object"}`

	_, err := f.client().GetPlaylist("p1")
	assert.ErrorIs(t, err, ErrDataShape)
}

func TestNormalizePlaylistID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc123", "abc123"},
		{"  abc123  ", "abc123"},
		{"https://open.spotify.com/playlist/abc123", "abc123"},
		{"https://open.spotify.com/playlist/abc123?si=share-token", "abc123"},
		{"abc123?si=share-token", "abc123"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizePlaylistID(tt.in), "input %q", tt.in)
	}
}
