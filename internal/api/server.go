package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"alertrecon/internal/config"
	"alertrecon/internal/engine"
	"alertrecon/internal/model"
	"alertrecon/internal/persist"
	"alertrecon/internal/registry"
)

type Server struct {
	cfg      *config.Manager
	engine   *engine.Engine
	gateway  *persist.Gateway
	registry registry.Provider
	logger   *slog.Logger
	version  string
}

type statusResponse struct {
	Status     string `json:"status"`
	Time       string `json:"time"`
	Version    string `json:"version"`
	ConfigPath string `json:"config_path"`
	Storage    string `json:"storage"`
	Kafka      bool   `json:"kafka"`
	IndexFile  string `json:"index_file"`
	SourceFile string `json:"source_file"`
}

type alertsResponse struct {
	Alerts         []model.Alert `json:"alerts"`
	Summary        model.Summary `json:"summary"`
	Count          int           `json:"count"`
	NeedsMigration bool          `json:"needsMigration,omitempty"`
}

func Start(ctx context.Context, cfg *config.Manager, eng *engine.Engine, gateway *persist.Gateway, reg registry.Provider, logger *slog.Logger, version string) *http.Server {
	if cfg == nil {
		return nil
	}
	current := cfg.Get().API
	if !current.Enabled {
		if logger != nil {
			logger.Info("api disabled")
		}
		return nil
	}
	if logger != nil {
		logger.Info("api enabled", "addr", current.Addr)
	}
	server := &Server{
		cfg:      cfg,
		engine:   eng,
		gateway:  gateway,
		registry: reg,
		logger:   logger,
		version:  version,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("/status", server.handleStatus)
	mux.HandleFunc("/alerts", server.handleAlerts)
	mux.HandleFunc("/alerts/summary", server.handleSummary)
	mux.HandleFunc("/import", server.handleImport)

	httpServer := &http.Server{Addr: current.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(ctxShutdown)
	}()
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Error("api server error", "err", err)
			}
		}
	}()
	return httpServer
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	cfg := s.cfg.Get()
	writeJSON(w, http.StatusOK, statusResponse{
		Status:     "ok",
		Time:       time.Now().UTC().Format(time.RFC3339Nano),
		Version:    s.version,
		ConfigPath: s.cfg.Path(),
		Storage:    cfg.Storage.Driver,
		Kafka:      cfg.Kafka.Enabled,
		IndexFile:  cfg.Import.IndexFile,
		SourceFile: cfg.Import.SourceFile,
	})
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	index, needsMigration, lerr := s.loadOrImport(r.Context())
	if lerr != nil {
		writeError(w, lerr)
		return
	}
	writeJSON(w, http.StatusOK, alertsResponse{
		Alerts:         index.Alerts,
		Summary:        index.Summary,
		Count:          len(index.Alerts),
		NeedsMigration: needsMigration,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	index, needsMigration, lerr := s.loadOrImport(r.Context())
	if lerr != nil {
		writeError(w, lerr)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"summary":        index.Summary,
		"needsMigration": needsMigration,
	})
}

// loadOrImport loads the stored index and, when nothing has ever been
// saved, falls back to re-parsing the configured raw export.
func (s *Server) loadOrImport(ctx context.Context) (model.AlertsIndex, bool, *model.Error) {
	res, lerr := s.gateway.Load(ctx)
	if lerr != nil {
		return model.AlertsIndex{}, res != nil && res.NeedsMigration, lerr
	}
	if res.NeedsMigration {
		return model.AlertsIndex{}, true, nil
	}
	if res.Index != nil {
		return *res.Index, false, nil
	}
	cases, err := s.registry.Cases(ctx)
	if err != nil {
		return model.AlertsIndex{}, false, model.NewDetailedError(model.ErrIO, "failed to read case snapshot", err.Error())
	}
	index, ierr := s.gateway.ImportCSV(ctx, s.cfg.Get().Import.SourceFile, cases)
	if ierr != nil {
		if ierr.Type == model.ErrIO {
			// Nothing stored and no export staged: empty index, not a failure.
			return engine.BuildIndex(nil), false, nil
		}
		return model.AlertsIndex{}, false, ierr
	}
	return index, false, nil
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 16<<20))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	cases, cerr := s.registry.Cases(r.Context())
	if cerr != nil {
		writeError(w, model.NewDetailedError(model.ErrIO, "failed to read case snapshot", cerr.Error()))
		return
	}
	index, rerr := s.engine.Reconcile(string(body), cases)
	if rerr != nil {
		writeError(w, rerr)
		return
	}
	if serr := s.gateway.Save(r.Context(), index, "api-import"); serr != nil {
		writeError(w, serr)
		return
	}
	if s.logger != nil {
		s.logger.Info("import accepted", "alerts", index.Summary.Total)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"summary": index.Summary,
		"count":   len(index.Alerts),
	})
}

func writeError(w http.ResponseWriter, e *model.Error) {
	status := http.StatusInternalServerError
	switch e.Type {
	case model.ErrInvalidJSON, model.ErrMigrationFailed:
		status = http.StatusConflict
	case model.ErrParse:
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, map[string]any{"error": e})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
