// Package statusapi serves the optional debug HTTP endpoints. The wire
// protocol stays on stdio; everything here is read-only observability.
package statusapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"whisperd/internal/registry"
	"whisperd/internal/runtime"
	"whisperd/pkg/types"
)

// Service is the cache view required by the status endpoints.
type Service interface {
	Snapshot() runtime.Snapshot
}

// zlog is an optional structured logger for the HTTP layer.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// NewRouter builds the debug router. modelsDir is scanned on each /models
// call ("" = nothing to list).
func NewRouter(svc Service, modelsDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))
	r.Use(MetricsMiddleware)

	r.Get("/healthz", handleHealthz)
	r.Get("/status", handleStatus(svc))
	r.Get("/models", handleModels(modelsDir))
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && zlog != nil {
		zlog.Error().Err(err).Msg("encode response")
	}
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleStatus(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := svc.Snapshot()
		resp := types.StatusResponse{
			State:          "empty",
			LoadsTotal:     snap.Loads,
			HitsTotal:      snap.Hits,
			UptimeSeconds:  int64(time.Since(snap.StartedAt).Seconds()),
			ServerTimeUnix: time.Now().Unix(),
		}
		if snap.Loaded {
			resp.State = "ready"
			resp.Current = &types.LoadedModel{
				Model:       snap.Key.Model,
				Device:      snap.Key.Device,
				ComputeType: snap.Key.ComputeType,
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleModels(modelsDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		models, err := registry.LoadDir(modelsDir)
		if err != nil {
			if zlog != nil {
				zlog.Warn().Err(err).Str("dir", modelsDir).Msg("model scan failed")
			}
			writeJSON(w, http.StatusOK, types.ModelsResponse{Models: []types.Model{}})
			return
		}
		if models == nil {
			models = []types.Model{}
		}
		writeJSON(w, http.StatusOK, types.ModelsResponse{Models: models})
	}
}
