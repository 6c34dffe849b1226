package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reelfeed/api"
	"reelfeed/config"
	"reelfeed/handlers"
	"reelfeed/services/catalog"
	"reelfeed/services/tmdb"
	"reelfeed/services/youtube"
	"reelfeed/utils"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("[main] config: %v", err)
	}

	tmdbClient := tmdb.NewClient(cfg.TMDBAPIKey, cfg.TMDBBaseURL, cfg.Language, cfg.Region, nil, cfg.HTTPTimeout)
	youtubeClient := youtube.NewClient(cfg.YouTubeAPIKey, cfg.YouTubeBaseURL, nil, cfg.HTTPTimeout)
	if !youtubeClient.IsConfigured() {
		log.Printf("[main] no YouTube API key; trailer search fallback disabled")
	}

	svc := catalog.NewService(tmdbClient, youtubeClient, cfg)

	router := utils.NewRouter()
	router.Use(api.RequestIDMiddleware())
	router.Use(api.LoggingMiddleware())
	handlers.NewCatalogHandler(svc).Register(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[main] listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown: %v", err)
	}
	log.Printf("[main] stopped")
}
