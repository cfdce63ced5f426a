package models

import (
	"time"
)

// Artist is created lazily the first time a track referencing it is
// ingested. Rows are never updated afterwards (first-write-wins).
type Artist struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	SpotifyID string `gorm:"type:varchar(100);uniqueIndex;not null" json:"spotify_id"`
	Name      string `gorm:"type:varchar(255);index" json:"name"`
	Genres    string `gorm:"type:varchar(255);default:''" json:"genres"`

	Tracks []Track `gorm:"foreignKey:ArtistID" json:"tracks,omitempty"`
}

// Track keeps only the first listed artist from the source payload.
type Track struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	SpotifyID  string `gorm:"type:varchar(100);uniqueIndex;not null" json:"spotify_id"`
	Name       string `gorm:"type:varchar(255);index" json:"name"`
	AlbumName  string `gorm:"type:varchar(255);default:''" json:"album_name"`
	ArtistID   uint   `gorm:"not null;index" json:"artist_id"`
	DurationMs int    `json:"duration_ms"`

	Artist Artist `gorm:"foreignKey:ArtistID" json:"artist,omitempty"`
}

// Playlist.SpotifyID is a pointer: manually-created playlists have no
// external ID, and a plain string would collide on the unique index.
type Playlist struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	SpotifyID        *string `gorm:"type:varchar(100);uniqueIndex" json:"spotify_id"`
	Name             string  `gorm:"type:varchar(255);index" json:"name"`
	Description      string  `gorm:"type:text;default:''" json:"description"`
	OwnerDisplayName string  `gorm:"type:varchar(255);default:''" json:"owner_display_name"`
	IsCurated        bool    `gorm:"default:false" json:"is_curated"`

	Items []PlaylistTrack `gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// PlaylistTrack is the membership edge between a playlist and a track.
// Edges accumulate across re-ingests and are never pruned by the pipeline.
type PlaylistTrack struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PlaylistID uint      `gorm:"not null;uniqueIndex:uix_playlist_track" json:"playlist_id"`
	TrackID    uint      `gorm:"not null;uniqueIndex:uix_playlist_track" json:"track_id"`
	AddedAt    time.Time `json:"added_at"`

	Playlist Playlist `gorm:"foreignKey:PlaylistID" json:"-"`
	Track    Track    `gorm:"foreignKey:TrackID" json:"-"`
}

func (Artist) TableName() string        { return "artists" }
func (Track) TableName() string         { return "tracks" }
func (Playlist) TableName() string      { return "playlists" }
func (PlaylistTrack) TableName() string { return "playlist_tracks" }
