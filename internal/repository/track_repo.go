package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/wesleygordonclark/spotify-playlist-catalog/internal/models"
)

type TrackRepository interface {
	SearchTracks(query string, limit int) ([]TrackWithArtist, error)
}

type trackRepo struct {
	db *gorm.DB
}

func NewTrackRepository(db *gorm.DB) TrackRepository {
	return &trackRepo{db: db}
}

// SearchTracks does a case-insensitive substring match on track name or
// artist name. An empty query returns all tracks up to limit. Results are
// ordered by track name ascending.
//
// LOWER(...) LIKE instead of ILIKE so the same query runs on Postgres and
// on the sqlite test driver.
func (r *trackRepo) SearchTracks(query string, limit int) ([]TrackWithArtist, error) {
	q := r.db.Model(&models.Track{}).
		Select("tracks.id, tracks.spotify_id, tracks.name, tracks.album_name, tracks.duration_ms, artists.name AS artist_name").
		Joins("JOIN artists ON artists.id = tracks.artist_id")

	if query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(tracks.name) LIKE ? OR LOWER(artists.name) LIKE ?", pattern, pattern)
	}

	rows := []TrackWithArtist{}
	err := q.Order("tracks.name ASC").Limit(limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
