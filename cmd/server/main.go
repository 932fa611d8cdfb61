package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mediastash/mediastash/internal/api"
	"github.com/mediastash/mediastash/internal/api/handlers"
	"github.com/mediastash/mediastash/internal/config"
	"github.com/mediastash/mediastash/internal/media"
	"github.com/mediastash/mediastash/internal/repositories"
	"github.com/mediastash/mediastash/internal/storage"
	"github.com/mediastash/mediastash/internal/thumbnail"
)

// @title MediaStash API
// @version 1.0
// @description Media upload and partial-content streaming server with automatic thumbnails.
// @BasePath /api/v1
func main() {
	root := &cobra.Command{
		Use:   "server",
		Short: "MediaStash media upload and streaming server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	if err := root.Execute(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}

func run() error {
	repositories.ConnectDatabase()

	store := repositories.NewFileStore(repositories.DB)

	backend, err := newStorage()
	if err != nil {
		return err
	}

	registry := thumbnail.NewRegistry()
	thumbCfg := config.Envs.Thumbnail
	// Images first; ffmpeg handles video and is a fallback for images the
	// in-process decoder cannot read.
	registry.Register(10, thumbnail.NewImageGenerator(thumbCfg.Width, thumbCfg.Height))
	registry.Register(20, thumbnail.NewFFmpegGenerator(thumbCfg.FFmpegPath, thumbCfg.Width, thumbCfg.Height, thumbCfg.FFmpegTimeout))

	handlers.Media = media.NewService(store, backend, registry, config.Envs.Upload)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Envs.Port),
		Handler: api.SetupRouter(),
		// No WriteTimeout: streaming a long video must not be cut off
		// mid-response. Slow-client protection comes from ReadTimeout
		// and IdleTimeout.
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Starting MediaStash server on port %s", config.Envs.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Println("Server stopped gracefully")
	return nil
}

func newStorage() (storage.Storage, error) {
	switch config.Envs.StorageBackend {
	case "s3":
		return storage.NewS3(config.Envs.S3)
	case "local", "":
		return storage.NewLocal(config.Envs.LocalRoot)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", config.Envs.StorageBackend)
	}
}
