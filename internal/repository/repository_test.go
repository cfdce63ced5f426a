package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wesleygordonclark/spotify-playlist-catalog/internal/database"
	"github.com/wesleygordonclark/spotify-playlist-catalog/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// seedCatalog loads two playlists: "Morning Mix" with Lover + Mrs. Robinson,
// "Evening Mix" sharing the Lover track.
func seedCatalog(t *testing.T, db *gorm.DB) (morning, evening models.Playlist) {
	t.Helper()

	swift := models.Artist{SpotifyID: "a1", Name: "Taylor Swift"}
	simon := models.Artist{SpotifyID: "a2", Name: "Simon & Garfunkel"}
	require.NoError(t, db.Create(&swift).Error)
	require.NoError(t, db.Create(&simon).Error)

	lover := models.Track{SpotifyID: "t1", Name: "Lover", AlbumName: "Lover", ArtistID: swift.ID, DurationMs: 221000}
	robinson := models.Track{SpotifyID: "t2", Name: "Mrs. Robinson", AlbumName: "Bookends", ArtistID: simon.ID, DurationMs: 234000}
	require.NoError(t, db.Create(&lover).Error)
	require.NoError(t, db.Create(&robinson).Error)

	morningID := "pl-1"
	eveningID := "pl-2"
	morning = models.Playlist{SpotifyID: &morningID, Name: "Morning Mix", IsCurated: true}
	evening = models.Playlist{SpotifyID: &eveningID, Name: "Evening Mix", IsCurated: true}
	require.NoError(t, db.Create(&morning).Error)
	require.NoError(t, db.Create(&evening).Error)

	now := time.Now()
	for _, edge := range []models.PlaylistTrack{
		{PlaylistID: morning.ID, TrackID: lover.ID, AddedAt: now},
		{PlaylistID: morning.ID, TrackID: robinson.ID, AddedAt: now},
		{PlaylistID: evening.ID, TrackID: lover.ID, AddedAt: now},
	} {
		require.NoError(t, db.Create(&edge).Error)
	}
	return morning, evening
}

func TestListPlaylists(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewPlaylistRepository(db)

	summaries, err := repo.ListPlaylists()
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "Morning Mix", summaries[0].Playlist.Name)
	assert.EqualValues(t, 2, summaries[0].TrackCount)
	assert.Equal(t, "Evening Mix", summaries[1].Playlist.Name)
	assert.EqualValues(t, 1, summaries[1].TrackCount)
}

func TestGetPlaylistTracksSortedByName(t *testing.T) {
	db := newTestDB(t)
	morning, _ := seedCatalog(t, db)
	repo := NewPlaylistRepository(db)

	tracks, err := repo.GetPlaylistTracks(morning.ID)
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	assert.Equal(t, "Lover", tracks[0].Name)
	assert.Equal(t, "Taylor Swift", tracks[0].ArtistName)
	assert.Equal(t, "Mrs. Robinson", tracks[1].Name)
	assert.Equal(t, "Simon & Garfunkel", tracks[1].ArtistName)
}

func TestGetPlaylistTracksUnknownPlaylist(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewPlaylistRepository(db)

	_, err := repo.GetPlaylistTracks(9999)
	assert.ErrorIs(t, err, ErrPlaylistNotFound)
}

func TestDeletePlaylistKeepsSharedRows(t *testing.T) {
	db := newTestDB(t)
	morning, evening := seedCatalog(t, db)
	repo := NewPlaylistRepository(db)

	require.NoError(t, repo.DeletePlaylist(morning.ID))

	var playlists, edges, tracks, artists int64
	require.NoError(t, db.Model(&models.Playlist{}).Count(&playlists).Error)
	require.NoError(t, db.Model(&models.PlaylistTrack{}).Count(&edges).Error)
	require.NoError(t, db.Model(&models.Track{}).Count(&tracks).Error)
	require.NoError(t, db.Model(&models.Artist{}).Count(&artists).Error)

	assert.EqualValues(t, 1, playlists)
	assert.EqualValues(t, 1, edges, "only the deleted playlist's edges go away")
	assert.EqualValues(t, 2, tracks, "tracks persist, they may be shared")
	assert.EqualValues(t, 2, artists)

	remaining, err := repo.GetPlaylistTracks(evening.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	assert.ErrorIs(t, repo.DeletePlaylist(morning.ID), ErrPlaylistNotFound)
}

func TestSearchTracksCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewTrackRepository(db)

	byTrack, err := repo.SearchTracks("LOVER", 50)
	require.NoError(t, err)
	require.Len(t, byTrack, 1)
	assert.Equal(t, "Lover", byTrack[0].Name)

	byArtist, err := repo.SearchTracks("garfunkel", 50)
	require.NoError(t, err)
	require.Len(t, byArtist, 1)
	assert.Equal(t, "Mrs. Robinson", byArtist[0].Name)

	none, err := repo.SearchTracks("no such thing", 50)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearchTracksEmptyQueryReturnsAll(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewTrackRepository(db)

	all, err := repo.SearchTracks("", 50)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Lover", all[0].Name)
	assert.Equal(t, "Mrs. Robinson", all[1].Name)

	limited, err := repo.SearchTracks("", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "Lover", limited[0].Name)
}
