package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wesleygordonclark/spotify-playlist-catalog/internal/config"
	"github.com/wesleygordonclark/spotify-playlist-catalog/internal/database"
	"github.com/wesleygordonclark/spotify-playlist-catalog/internal/handlers"
	"github.com/wesleygordonclark/spotify-playlist-catalog/internal/repository"
	"github.com/wesleygordonclark/spotify-playlist-catalog/internal/routes"
	"github.com/wesleygordonclark/spotify-playlist-catalog/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	playlistRepo := repository.NewPlaylistRepository(db)
	trackRepo := repository.NewTrackRepository(db)

	spotifyClient := services.NewSpotifyClient(cfg)
	pipeline := services.NewIngestionPipeline(spotifyClient)

	playlistHandler := handlers.NewPlaylistHandler(db, pipeline, playlistRepo)
	trackHandler := handlers.NewTrackHandler(trackRepo)
	healthHandler := handlers.NewHealthHandler(db)

	router := routes.SetupRoutes(cfg, playlistHandler, trackHandler, healthHandler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("%s listening on %s", cfg.AppName, server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Println("Forced shutdown:", err)
	}

	log.Println("Server exited")
}
