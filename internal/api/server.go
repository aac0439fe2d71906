// Package api provides a read-only HTTP view of the simulation.
// The engine is single-threaded, so handlers serve the latest snapshot the
// simulation loop pushed in, never the live engine.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/talgya/social-fabric/internal/engine"
	"github.com/talgya/social-fabric/internal/events"
	"github.com/talgya/social-fabric/internal/social"
)

// Server serves engine snapshots over HTTP.
type Server struct {
	Port int

	mu     sync.RWMutex
	snap   *engine.Snapshot
	recent []events.Event
}

// Update replaces the snapshot served to clients. Called by the simulation
// loop after each tick pass.
func (s *Server) Update(snap *engine.Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// UpdateEvents replaces the recent-events feed served to clients.
func (s *Server) UpdateEvents(recent []events.Event) {
	s.mu.Lock()
	s.recent = recent
	s.mu.Unlock()
}

func (s *Server) snapshot() *engine.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/entities", s.handleEntities)
	mux.HandleFunc("/api/v1/entity/", s.handleEntityDetail)
	mux.HandleFunc("/api/v1/groups", s.handleGroups)
	mux.HandleFunc("/api/v1/rumors", s.handleRumors)
	mux.HandleFunc("/api/v1/events", s.handleEvents)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("response encode failed", "error", err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no snapshot yet"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tick":          snap.Tick,
		"entities":      len(snap.Entities),
		"relationships": len(snap.Relationships),
		"groups":        len(snap.Groups),
		"rumors":        len(snap.Rumors),
		"info_units":    len(snap.Units),
	})
}

func (s *Server) handleEntities(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no snapshot yet"})
		return
	}
	writeJSON(w, http.StatusOK, snap.Entities)
}

func (s *Server) handleEntityDetail(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no snapshot yet"})
		return
	}

	id := social.EntityID(strings.TrimPrefix(r.URL.Path, "/api/v1/entity/"))
	for _, ent := range snap.Entities {
		if ent.ID != id {
			continue
		}

		var rels []social.Relationship
		for _, rel := range snap.Relationships {
			if rel.Source == id || rel.Target == id {
				rels = append(rels, rel)
			}
		}

		detail := map[string]any{
			"entity":        ent,
			"relationships": rels,
		}
		for _, rec := range snap.Reputations {
			if rec.EntityID == id {
				detail["reputation"] = rec
				break
			}
		}
		writeJSON(w, http.StatusOK, detail)
		return
	}

	writeJSON(w, http.StatusNotFound, map[string]string{"error": "entity not found"})
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no snapshot yet"})
		return
	}
	writeJSON(w, http.StatusOK, snap.Groups)
}

func (s *Server) handleRumors(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no snapshot yet"})
		return
	}
	writeJSON(w, http.StatusOK, snap.Rumors)
}

// eventView flattens an event for the wire: the kind name travels beside
// the payload so clients need not infer it from payload shape.
type eventView struct {
	Tick    uint64         `json:"tick"`
	Kind    string         `json:"kind"`
	Payload events.Payload `json:"payload"`
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	recent := s.recent
	s.mu.RUnlock()

	out := make([]eventView, 0, len(recent))
	for _, ev := range recent {
		if ev.Payload == nil {
			continue
		}
		out = append(out, eventView{
			Tick:    ev.Tick,
			Kind:    ev.Payload.Kind().String(),
			Payload: ev.Payload,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
