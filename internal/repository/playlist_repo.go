package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/wesleygordonclark/spotify-playlist-catalog/internal/models"
)

var ErrPlaylistNotFound = errors.New("playlist not found")

// PlaylistSummary is a playlist row plus its membership-edge count.
type PlaylistSummary struct {
	Playlist   models.Playlist
	TrackCount int64
}

// TrackWithArtist is a track joined with its primary artist's name, the
// shape the read endpoints serve.
type TrackWithArtist struct {
	ID         uint   `json:"id"`
	SpotifyID  string `json:"spotify_id"`
	Name       string `json:"name"`
	AlbumName  string `json:"album_name"`
	ArtistName string `json:"artist_name"`
	DurationMs int    `json:"duration_ms"`
}

type PlaylistRepository interface {
	ListPlaylists() ([]PlaylistSummary, error)
	GetPlaylistTracks(playlistID uint) ([]TrackWithArtist, error)
	CountTracks(playlistID uint) (int64, error)
	DeletePlaylist(playlistID uint) error
}

type playlistRepo struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepo{db: db}
}

// ListPlaylists returns every playlist with a computed track count, in
// creation order for determinism.
func (r *playlistRepo) ListPlaylists() ([]PlaylistSummary, error) {
	var playlists []models.Playlist
	if err := r.db.Order("id ASC").Find(&playlists).Error; err != nil {
		return nil, err
	}

	summaries := make([]PlaylistSummary, 0, len(playlists))
	for _, p := range playlists {
		count, err := r.CountTracks(p.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, PlaylistSummary{Playlist: p, TrackCount: count})
	}
	return summaries, nil
}

func (r *playlistRepo) GetPlaylistTracks(playlistID uint) ([]TrackWithArtist, error) {
	var playlist models.Playlist
	if err := r.db.First(&playlist, playlistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}

	rows := []TrackWithArtist{}
	err := r.db.Model(&models.Track{}).
		Select("tracks.id, tracks.spotify_id, tracks.name, tracks.album_name, tracks.duration_ms, artists.name AS artist_name").
		Joins("JOIN playlist_tracks ON playlist_tracks.track_id = tracks.id").
		Joins("JOIN artists ON artists.id = tracks.artist_id").
		Where("playlist_tracks.playlist_id = ?", playlistID).
		Order("tracks.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *playlistRepo) CountTracks(playlistID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PlaylistTrack{}).
		Where("playlist_id = ?", playlistID).
		Count(&count).Error
	return count, err
}

// DeletePlaylist removes the playlist and its membership edges. Artist and
// track rows persist; other playlists may share them.
func (r *playlistRepo) DeletePlaylist(playlistID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var playlist models.Playlist
		if err := tx.First(&playlist, playlistID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlaylistNotFound
			}
			return err
		}
		if err := tx.Where("playlist_id = ?", playlistID).Delete(&models.PlaylistTrack{}).Error; err != nil {
			return err
		}
		return tx.Delete(&playlist).Error
	})
}
