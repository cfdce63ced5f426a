package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/wesleygordonclark/spotify-playlist-catalog/internal/models"
)

// Spotify's added_at timestamps arrive as "2006-01-02T15:04:05Z". The
// trailing zone marker is stripped and the rest parsed as a naive local
// timestamp, reproducing the catalog's original storage behavior.
const addedAtLayout = "2006-01-02T15:04:05"

// IngestionPipeline extracts one playlist from the catalog API, normalizes
// it into artist/track/playlist rows and links membership edges, all inside
// a single transaction.
type IngestionPipeline struct {
	client CatalogClient
}

func NewIngestionPipeline(client CatalogClient) *IngestionPipeline {
	return &IngestionPipeline{client: client}
}

// trackRow is one flattened candidate from the nested payload.
type trackRow struct {
	TrackID    string
	TrackName  string
	AlbumName  string
	ArtistID   string
	ArtistName string
	DurationMs int
	AddedAt    string
}

// IngestPlaylist fetches the playlist and upserts it. Re-running with the
// same external ID is idempotent: the playlist row is reused with its fields
// untouched, artists and tracks resolve to their first-written rows, and
// existing membership edges are skipped. A failure at any step rolls back
// every write of this call.
func (p *IngestionPipeline) IngestPlaylist(db *gorm.DB, playlistID string) (*models.Playlist, error) {
	raw, err := p.client.GetPlaylist(playlistID)
	if err != nil {
		return nil, err
	}

	rows, err := flattenTracks(raw)
	if err != nil {
		return nil, err
	}
	log.Printf("Extracted %d tracks from playlist %q", len(rows), raw.Name)

	var playlist models.Playlist
	err = db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		playlist, txErr = resolvePlaylist(tx, raw)
		if txErr != nil {
			return txErr
		}

		for _, row := range rows {
			artist, txErr := resolveArtist(tx, row)
			if txErr != nil {
				return txErr
			}
			track, txErr := resolveTrack(tx, row, artist.ID)
			if txErr != nil {
				return txErr
			}
			if txErr = linkTrack(tx, playlist.ID, track.ID, row.AddedAt); txErr != nil {
				return txErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Loaded playlist %q into DB", playlist.Name)
	return &playlist, nil
}

// flattenTracks walks the nested items, dropping null track entries (the
// source returns those for removed/unavailable tracks) and keeping only the
// first listed artist per track.
func flattenTracks(raw *RawPlaylist) ([]trackRow, error) {
	if raw.ID == "" {
		return nil, fmt.Errorf("%w: playlist payload has no id", ErrDataShape)
	}

	rows := make([]trackRow, 0, len(raw.Tracks.Items))
	for _, item := range raw.Tracks.Items {
		if item.Track == nil {
			continue
		}
		t := item.Track
		if t.ID == "" || len(t.Artists) == 0 || t.Artists[0].ID == "" {
			return nil, fmt.Errorf("%w: track item missing required identifiers", ErrDataShape)
		}
		rows = append(rows, trackRow{
			TrackID:    t.ID,
			TrackName:  t.Name,
			AlbumName:  t.Album.Name,
			ArtistID:   t.Artists[0].ID,
			ArtistName: t.Artists[0].Name,
			DurationMs: t.DurationMs,
			AddedAt:    item.AddedAt,
		})
	}
	return rows, nil
}

// resolvePlaylist reuses an existing row by external ID or creates one.
// Fields are frozen at first ingest; re-ingest only reconciles membership.
func resolvePlaylist(tx *gorm.DB, raw *RawPlaylist) (models.Playlist, error) {
	var playlist models.Playlist
	err := tx.Where("spotify_id = ?", raw.ID).First(&playlist).Error
	if err == nil {
		return playlist, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return playlist, err
	}

	spotifyID := raw.ID
	playlist = models.Playlist{
		SpotifyID:        &spotifyID,
		Name:             raw.Name,
		Description:      raw.Description,
		OwnerDisplayName: raw.Owner.DisplayName,
		IsCurated:        true,
	}
	if err := tx.Create(&playlist).Error; err != nil {
		return playlist, err
	}
	return playlist, nil
}

func resolveArtist(tx *gorm.DB, row trackRow) (models.Artist, error) {
	var artist models.Artist
	err := tx.Where("spotify_id = ?", row.ArtistID).First(&artist).Error
	if err == nil {
		return artist, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return artist, err
	}

	artist = models.Artist{
		SpotifyID: row.ArtistID,
		Name:      row.ArtistName,
		Genres:    "",
	}
	if err := tx.Create(&artist).Error; err != nil {
		return artist, err
	}
	return artist, nil
}

func resolveTrack(tx *gorm.DB, row trackRow, artistID uint) (models.Track, error) {
	var track models.Track
	err := tx.Where("spotify_id = ?", row.TrackID).First(&track).Error
	if err == nil {
		return track, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return track, err
	}

	track = models.Track{
		SpotifyID:  row.TrackID,
		Name:       row.TrackName,
		AlbumName:  row.AlbumName,
		ArtistID:   artistID,
		DurationMs: row.DurationMs,
	}
	if err := tx.Create(&track).Error; err != nil {
		return track, err
	}
	return track, nil
}

// linkTrack inserts the membership edge unless the (playlist, track) pair
// already exists. Edges are additive only.
func linkTrack(tx *gorm.DB, playlistID, trackID uint, addedAtRaw string) error {
	var existing models.PlaylistTrack
	err := tx.Where("playlist_id = ? AND track_id = ?", playlistID, trackID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	addedAt, err := parseAddedAt(addedAtRaw)
	if err != nil {
		return err
	}

	return tx.Create(&models.PlaylistTrack{
		PlaylistID: playlistID,
		TrackID:    trackID,
		AddedAt:    addedAt,
	}).Error
}

func parseAddedAt(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	parsed, err := time.Parse(addedAtLayout, strings.TrimSuffix(raw, "Z"))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad added_at %q", ErrDataShape, raw)
	}
	return parsed, nil
}
