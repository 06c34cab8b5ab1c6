package handler

import (
	"net/http"

	"pdf-upload-server/internal/config"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"pdf-upload-server"}`))
	}).Methods("GET")

	uploadHandler := NewUploadHandler(
		container.UploadService,
		container.Config.GetMaxFileSize(),
		container.Config.GetAllowedOrigin(),
		container.Logger,
	)

	// The handler owns method validation so non-POST requests get the JSON
	// error body rather than mux's default 405.
	router.HandleFunc("/upload", uploadHandler.Upload)

	// Configure CORS: single configured origin only
	c := cors.New(cors.Options{
		AllowedOrigins: []string{container.Config.GetAllowedOrigin()},
		AllowedMethods: []string{
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Content-Type",
			"User-ID",
		},
		MaxAge: 3600,
	})

	return c.Handler(RequestLogging(container.Logger)(router))
}
