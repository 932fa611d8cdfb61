package api

import (
	"fmt"
	"log"
	"net/http"

	_ "github.com/mediastash/mediastash/docs"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mediastash/mediastash/internal/api/handlers"
	"github.com/mediastash/mediastash/internal/api/middleware"
	"github.com/mediastash/mediastash/internal/config"
	"github.com/rs/cors"
)

func SetupRouter() http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(config.Envs.CorsConfig)

	mainMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	fileMux := http.NewServeMux()
	fileMux.HandleFunc("POST /files", handlers.UploadFile)
	fileMux.HandleFunc("GET /files", handlers.ListFiles)
	fileMux.HandleFunc("GET /files/{id}", handlers.GetFile)
	fileMux.HandleFunc("GET /files/{id}/content", handlers.StreamFile)
	fileMux.HandleFunc("HEAD /files/{id}/content", handlers.StreamFile)
	fileMux.HandleFunc("GET /files/{id}/thumbnail", handlers.GetThumbnail)
	fileMux.HandleFunc("DELETE /files/{id}", handlers.DeleteFile)

	mainMux.Handle("/api/v1/",
		http.StripPrefix("/api/v1", fileMux),
	)

	log.Println("Router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.Logger(handler)
	return handler
}
