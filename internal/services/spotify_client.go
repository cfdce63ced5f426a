package services

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wesleygordonclark/spotify-playlist-catalog/internal/config"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyAPIBase  = "https://api.spotify.com/v1"
)

// CatalogClient is the contract the ingestion pipeline consumes; tests
// substitute a fake.
type CatalogClient interface {
	GetPlaylist(playlistID string) (*RawPlaylist, error)
}

// RawPlaylist mirrors the nested playlist payload returned by the Spotify
// Web API. Only the fields the pipeline reads are declared.
type RawPlaylist struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Owner       RawOwner `json:"owner"`
	Tracks      struct {
		Items []RawPlaylistItem `json:"items"`
	} `json:"tracks"`
}

type RawOwner struct {
	DisplayName string `json:"display_name"`
}

// RawPlaylistItem.Track is a pointer: Spotify returns null track entries
// for removed or unavailable tracks.
type RawPlaylistItem struct {
	AddedAt string    `json:"added_at"`
	Track   *RawTrack `json:"track"`
}

type RawTrack struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	DurationMs int         `json:"duration_ms"`
	Album      RawAlbum    `json:"album"`
	Artists    []RawArtist `json:"artists"`
}

type RawAlbum struct {
	Name string `json:"name"`
}

type RawArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type spotifyTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type SpotifyClient struct {
	clientID     string
	clientSecret string
	market       string
	accessToken  string

	tokenURL   string
	apiBase    string
	httpClient *http.Client
}

// NewSpotifyClient builds a client from config. The access token is cached
// for the lifetime of the client instance; expiry is not tracked, a stale
// token surfaces as ErrUpstreamAuth on the next call.
func NewSpotifyClient(cfg *config.Config) *SpotifyClient {
	return &SpotifyClient{
		clientID:     cfg.SpotifyClientID,
		clientSecret: cfg.SpotifyClientSecret,
		market:       cfg.SpotifyCountryMarket,
		tokenURL:     spotifyTokenURL,
		apiBase:      spotifyAPIBase,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURLs points the client at alternate token/API endpoints. Used by
// tests to target an httptest server.
func (c *SpotifyClient) WithBaseURLs(tokenURL, apiBase string) *SpotifyClient {
	c.tokenURL = tokenURL
	c.apiBase = strings.TrimRight(apiBase, "/")
	return c
}

// normalizePlaylistID accepts a bare ID or a full open.spotify.com URL and
// returns the ID segment with any query parameters stripped.
func normalizePlaylistID(raw string) string {
	raw = strings.TrimSpace(raw)
	if idx := strings.Index(raw, "open.spotify.com/playlist/"); idx >= 0 {
		raw = raw[idx+len("open.spotify.com/playlist/"):]
	}
	if idx := strings.Index(raw, "?"); idx >= 0 {
		raw = raw[:idx]
	}
	return raw
}

func (c *SpotifyClient) getAccessToken() (string, error) {
	if c.accessToken != "" {
		return c.accessToken, nil
	}

	if c.clientID == "" || c.clientSecret == "" {
		return "", fmt.Errorf("%w: set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET", ErrAuthConfig)
	}

	auth := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequest(http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamAuth, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Failed to obtain Spotify access token: %s", string(body))
		return "", fmt.Errorf("%w: token endpoint returned %d", ErrUpstreamAuth, resp.StatusCode)
	}

	var tokenResp spotifyTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDataShape, err)
	}

	c.accessToken = tokenResp.AccessToken
	log.Println("Obtained new Spotify access token")
	return c.accessToken, nil
}

// GetPlaylist fetches one playlist's full track listing. One token request
// (only when no token is cached) plus one playlist request; no retries.
func (c *SpotifyClient) GetPlaylist(playlistID string) (*RawPlaylist, error) {
	playlistID = normalizePlaylistID(playlistID)

	token, err := c.getAccessToken()
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/playlists/%s?market=%s", c.apiBase, playlistID, url.QueryEscape(c.market))
	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		log.Printf("Playlist not found or not accessible: %s", playlistID)
		return nil, fmt.Errorf("%w: playlist %q not accessible via Spotify API", ErrNotFound, playlistID)
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: unauthorized when fetching playlist", ErrUpstreamAuth)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: playlist endpoint returned %d", ErrUpstream, resp.StatusCode)
	}

	var raw RawPlaylist
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataShape, err)
	}
	return &raw, nil
}
