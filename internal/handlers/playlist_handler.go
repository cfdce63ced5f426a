package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wesleygordonclark/spotify-playlist-catalog/internal/genius"
	"github.com/wesleygordonclark/spotify-playlist-catalog/internal/repository"
	"github.com/wesleygordonclark/spotify-playlist-catalog/internal/services"
)

type PlaylistHandler struct {
	db           *gorm.DB
	pipeline     *services.IngestionPipeline
	playlistRepo repository.PlaylistRepository
}

func NewPlaylistHandler(db *gorm.DB, pipeline *services.IngestionPipeline, playlistRepo repository.PlaylistRepository) *PlaylistHandler {
	return &PlaylistHandler{
		db:           db,
		pipeline:     pipeline,
		playlistRepo: playlistRepo,
	}
}

type ingestPlaylistPayload struct {
	PlaylistID string `json:"playlist_id" binding:"required"`
}

// trackResponse is the track object served by the read endpoints.
type trackResponse struct {
	ID         uint   `json:"id"`
	SpotifyID  string `json:"spotify_id"`
	Name       string `json:"name"`
	AlbumName  string `json:"album_name"`
	ArtistName string `json:"artist_name"`
	DurationMs int    `json:"duration_ms"`
	GeniusURL  string `json:"genius_url"`
}

func toTrackResponse(row repository.TrackWithArtist) trackResponse {
	return trackResponse{
		ID:         row.ID,
		SpotifyID:  row.SpotifyID,
		Name:       row.Name,
		AlbumName:  row.AlbumName,
		ArtistName: row.ArtistName,
		DurationMs: row.DurationMs,
		GeniusURL:  genius.BuildLyricsURL(row.ArtistName, row.Name),
	}
}

// IngestPlaylist runs the ingestion pipeline for one external playlist ID.
func (h *PlaylistHandler) IngestPlaylist(c *gin.Context) {
	var payload ingestPlaylistPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "playlist_id is required"})
		return
	}

	playlist, err := h.pipeline.IngestPlaylist(h.db, payload.PlaylistID)
	if err != nil {
		log.Printf("[IngestPlaylist] ingest failed: %v", err)
		c.JSON(ingestStatus(err), gin.H{"detail": err.Error()})
		return
	}

	trackCount, err := h.playlistRepo.CountTracks(playlist.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to count playlist tracks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          playlist.ID,
		"spotify_id":  playlist.SpotifyID,
		"name":        playlist.Name,
		"track_count": trackCount,
	})
}

// ingestStatus maps the ingestion error taxonomy onto HTTP statuses.
func ingestStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUpstreamAuth), errors.Is(err, services.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, services.ErrDataShape):
		return http.StatusUnprocessableEntity
	default:
		// includes ErrAuthConfig: an operator problem, not a caller problem
		return http.StatusInternalServerError
	}
}

func (h *PlaylistHandler) ListPlaylists(c *gin.Context) {
	summaries, err := h.playlistRepo.ListPlaylists()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to list playlists"})
		return
	}

	result := make([]gin.H, 0, len(summaries))
	for _, s := range summaries {
		result = append(result, gin.H{
			"id":                 s.Playlist.ID,
			"spotify_id":         s.Playlist.SpotifyID,
			"name":               s.Playlist.Name,
			"description":        s.Playlist.Description,
			"owner_display_name": s.Playlist.OwnerDisplayName,
			"is_curated":         s.Playlist.IsCurated,
			"track_count":        s.TrackCount,
		})
	}
	c.JSON(http.StatusOK, result)
}

// GetPlaylistTracks returns one playlist's tracks sorted by name, each
// enriched with a derived lyrics URL.
func (h *PlaylistHandler) GetPlaylistTracks(c *gin.Context) {
	playlistID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid playlist ID"})
		return
	}

	rows, err := h.playlistRepo.GetPlaylistTracks(uint(playlistID))
	if err != nil {
		if errors.Is(err, repository.ErrPlaylistNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Playlist not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to fetch playlist tracks"})
		return
	}

	items := make([]trackResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, toTrackResponse(row))
	}
	c.JSON(http.StatusOK, items)
}

func (h *PlaylistHandler) DeletePlaylist(c *gin.Context) {
	playlistID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid playlist ID"})
		return
	}

	if err := h.playlistRepo.DeletePlaylist(uint(playlistID)); err != nil {
		if errors.Is(err, repository.ErrPlaylistNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Playlist not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to delete playlist"})
		return
	}
	c.Status(http.StatusNoContent)
}
