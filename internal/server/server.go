// Package server exposes the built gazetteer artifacts over HTTP.
package server

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/cities-cli/internal/cities"
)

// NewRouter returns the artifact routes. allowedOrigins feeds the CORS policy.
func NewRouter(layout cities.Layout, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/cities.json", serveArtifact(layout.CitiesFile()))
	r.Get("/cities-data.json", serveArtifact(layout.RecordsFile()))

	return r
}

// serveArtifact serves a built JSON file, or 404 until it has been built.
func serveArtifact(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			if err != nil && !os.IsNotExist(err) {
				zap.L().Warn("server: stat artifact", zap.String("path", path), zap.Error(err))
			}
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "artifact not built"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, path)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("server: encode response", zap.Error(err))
	}
}
