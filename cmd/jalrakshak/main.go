package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jalrakshak/jalrakshak-go/internal/agent"
	"github.com/jalrakshak/jalrakshak-go/internal/assistant"
	"github.com/jalrakshak/jalrakshak-go/internal/config"
	"github.com/jalrakshak/jalrakshak-go/internal/location"
	"github.com/jalrakshak/jalrakshak-go/internal/logger"
	"github.com/jalrakshak/jalrakshak-go/internal/mapdata"
	"github.com/jalrakshak/jalrakshak-go/internal/report"
	"github.com/jalrakshak/jalrakshak-go/internal/session"
	"github.com/jalrakshak/jalrakshak-go/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.L.Error("failed to load configuration", "error", err)
		return
	}
	logger.SetLevel(cfg.Log.Level)

	if cfg.Session.SessionID == "" {
		cfg.Session.SessionID = uuid.NewString()
		logger.L.Info("no session id configured; generated one", "session_id", cfg.Session.SessionID)
	}

	// Persistence: sqlite when available, in-memory fallback otherwise.
	var snap session.Snapshot
	sqliteSnap, err := storage.NewSQLite(cfg.Session.DBPath, cfg.Session.SessionID)
	if err != nil {
		logger.L.Warn("sqlite snapshot unavailable; history will not survive restarts", "error", err)
		snap = storage.NewMemory()
	} else {
		defer sqliteSnap.Close()
		snap = sqliteSnap
	}

	store := session.NewStore(snap)
	store.Hydrate(context.Background())

	extractor := location.New(cfg.Location.Districts, cfg.Location.Fallback)
	svc := agent.New(store, assistant.NewClient(cfg.Assistant), report.NewClient(cfg.Report), extractor)
	bridge := mapdata.NewBridge(svc)
	maps := mapdata.NewClient(cfg.Map)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		msg, err := svc.Ask(r.Context(), req.Query)
		if err != nil {
			writeAskError(w, err)
			return
		}
		writeJSON(w, msg)
	})

	mux.HandleFunc("/api/map/select", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Region string `json:"region"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Region == "" {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		msg, err := bridge.RegionSelected(r.Context(), req.Region)
		if err != nil {
			writeAskError(w, err)
			return
		}
		writeJSON(w, msg)
	})

	mux.HandleFunc("/api/report", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			MessageID int64 `json:"message_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		art, err := svc.Report(r.Context(), req.MessageID)
		if err != nil {
			if errors.Is(err, agent.ErrMessageNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			logger.L.Error("report generation failed", "error", err, "message_id", req.MessageID)
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", art.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", art.Filename))
		w.Header().Set("Content-Length", strconv.Itoa(len(art.Data)))
		w.Write(art.Data)
	})

	mux.HandleFunc("/api/history", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, svc.History(time.Now()))
	})

	mux.HandleFunc("/api/messages", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, svc.Messages())
	})

	mux.HandleFunc("/api/clear", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		svc.Clear(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("/api/map", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, maps.Districts(r.Context()))
	})

	serverAddr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.L.Info("starting server", "address", serverAddr, "session_id", cfg.Session.SessionID)
	if err := http.ListenAndServe(serverAddr, mux); err != nil {
		logger.L.Error("failed to start server", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L.Error("failed to encode response", "error", err)
	}
}

func writeAskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, agent.ErrEmptyQuery):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, agent.ErrBusy):
		http.Error(w, err.Error(), http.StatusTooManyRequests)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
