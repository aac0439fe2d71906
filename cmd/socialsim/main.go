// Command socialsim runs the social simulation standalone: it seeds a demo
// world (or restores a saved one), ticks the engine, and serves a read-only
// HTTP view of the result.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/talgya/social-fabric/internal/api"
	"github.com/talgya/social-fabric/internal/engine"
	"github.com/talgya/social-fabric/internal/entropy"
	"github.com/talgya/social-fabric/internal/events"
	"github.com/talgya/social-fabric/internal/persistence"
	"github.com/talgya/social-fabric/internal/worldgen"
)

const autosaveEvery = 50 // ticks

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	seed := envInt64("SOCIALSIM_SEED", 42)
	dbPath := envString("SOCIALSIM_DB", "data/social.db")
	apiPort := int(envInt64("SOCIALSIM_PORT", 8080))
	npcCount := int(envInt64("SOCIALSIM_POP", 40))

	slog.Info("social-fabric simulation", "seed", seed, "db", dbPath)

	os.MkdirAll(filepath.Dir(dbPath), 0755)
	db, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	recorder := &events.Recorder{}
	eng := engine.New(engine.DefaultConfig(), entropy.NewSource(seed), recorder)

	if db.HasState() {
		slog.Info("found saved state, restoring...")
		snap, err := db.LoadSnapshot()
		if err != nil {
			slog.Error("failed to load snapshot", "error", err)
			os.Exit(1)
		}
		eng.Restore(snap)
		slog.Info("state restored",
			"tick", snap.Tick,
			"entities", len(snap.Entities),
			"relationships", len(snap.Relationships),
		)
	} else {
		slog.Info("no saved state, seeding demo world...")
		cfg := worldgen.DefaultSeedConfig(seed)
		cfg.NPCCount = npcCount
		worldgen.Seed(eng, cfg)
		if err := db.SaveSnapshot(eng.Snapshot()); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	}

	server := &api.Server{Port: apiPort}
	server.Update(eng.Snapshot())
	server.Start()

	sched := engine.NewScheduler(eng)

	stop := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		close(stop)
	}()

	fmt.Printf("social-fabric is alive: %s souls in the graph.\n",
		humanize.Comma(int64(eng.EntityCount())))
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", apiPort)
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	sched.Run(stop, func(tick uint64) {
		snap := eng.Snapshot()
		server.Update(snap)
		server.UpdateEvents(eng.RecentEvents(100))
		// Drop recorded events so the in-process record stays bounded.
		recorder.Reset()
		if tick%autosaveEvery == 0 {
			if err := db.SaveSnapshot(snap); err != nil {
				slog.Error("autosave failed", "error", err)
			}
		}
	})

	slog.Info("final save...")
	if err := db.SaveSnapshot(eng.Snapshot()); err != nil {
		slog.Error("final save failed", "error", err)
	}
	fmt.Println("Simulation stopped. State saved.")
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
