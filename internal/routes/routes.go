package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/wesleygordonclark/spotify-playlist-catalog/internal/config"
	"github.com/wesleygordonclark/spotify-playlist-catalog/internal/handlers"
)

func SetupRoutes(
	cfg *config.Config,
	playlistHandler *handlers.PlaylistHandler,
	trackHandler *handlers.TrackHandler,
	healthHandler *handlers.HealthHandler,
) *gin.Engine {

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	if len(cfg.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
		log.Printf("CORS configured with %d allowed origins", len(cfg.CORSOrigins))
	}

	playlists := router.Group("/playlists")
	{
		playlists.POST("/ingest", playlistHandler.IngestPlaylist)
		playlists.GET("/", playlistHandler.ListPlaylists)
		playlists.GET("/:id/tracks", playlistHandler.GetPlaylistTracks)
		playlists.DELETE("/:id", playlistHandler.DeletePlaylist)
	}

	tracks := router.Group("/tracks")
	{
		tracks.GET("/search", trackHandler.SearchTracks)
	}

	router.GET("/health", healthHandler.Health)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    cfg.AppName,
			"version": "0.1.0",
		})
	})

	return router
}
