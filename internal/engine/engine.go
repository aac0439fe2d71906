// Package engine ties the social components together: the relationship
// graph, reputation, rumors, information diffusion, and groups, all driven
// by a periodic simulation tick. One Engine owns all state; there is no
// global instance and no internal locking.
package engine

import (
	"log/slog"
	"time"

	"github.com/talgya/social-fabric/internal/diffusion"
	"github.com/talgya/social-fabric/internal/entropy"
	"github.com/talgya/social-fabric/internal/events"
	"github.com/talgya/social-fabric/internal/reputation"
	"github.com/talgya/social-fabric/internal/social"
)

// Config holds the tunable simulation parameters.
type Config struct {
	TickInterval time.Duration // Real time between tick passes
	TicksPerDay  uint64        // Simulated day length, in ticks

	DecayRate         float64 // Strength units an idle edge loses per tick
	InteractionChance float64 // Autonomous NPC interaction probability per tick

	SpreadRate      float64 // Base rumor spread chance per propagation step
	MutationChance  float64 // Chance a successful spread mutates the rumor
	RumorTickChance float64 // Chance a still-relevant rumor re-propagates per tick

	DiffusionChance float64 // Autonomous information sharing probability per tick

	MaxRecentEvents int // Ring size for the retained event log
}

// DefaultConfig returns the standard simulation parameters.
func DefaultConfig() Config {
	return Config{
		TickInterval:      time.Second,
		TicksPerDay:       24,
		DecayRate:         0.5,
		InteractionChance: 0.3,
		SpreadRate:        0.7,
		MutationChance:    0.2,
		RumorTickChance:   0.25,
		DiffusionChance:   0.2,
		MaxRecentEvents:   1000,
	}
}

// Engine holds the complete social simulation state.
type Engine struct {
	cfg Config
	rng *entropy.Source
	pub events.Publisher

	tick uint64

	entities    *social.Registry
	graph       *social.Graph
	groups      *social.GroupSet
	reputations map[social.EntityID]*reputation.Record
	rumors      []*reputation.Rumor
	units       map[diffusion.UnitID]*diffusion.Unit
	unitOrder   []diffusion.UnitID
	channels    []*diffusion.Channel

	recent []events.Event // Ring of recent notifications, trimmed
}

// New creates an engine. pub may be nil when no collaborator listens.
func New(cfg Config, rng *entropy.Source, pub events.Publisher) *Engine {
	if rng == nil {
		rng = entropy.NewSource(0)
	}
	if cfg.MaxRecentEvents <= 0 {
		cfg.MaxRecentEvents = 1000
	}
	return &Engine{
		cfg:         cfg,
		rng:         rng,
		pub:         pub,
		entities:    social.NewRegistry(),
		graph:       social.NewGraph(),
		groups:      social.NewGroupSet(),
		reputations: make(map[social.EntityID]*reputation.Record),
		units:       make(map[diffusion.UnitID]*diffusion.Unit),
	}
}

// CurrentTick returns the most recently processed tick number.
func (e *Engine) CurrentTick() uint64 {
	return e.tick
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// AddEntity registers a social participant with a zero-initialized
// reputation record. A duplicate id is a logged no-op.
func (e *Engine) AddEntity(id social.EntityID, kind social.EntityKind, pos social.Position, influence float64) {
	ent := &social.Entity{ID: id, Kind: kind, Position: pos, Influence: influence}
	if !e.entities.Add(ent) {
		slog.Debug("entity already registered", "id", id)
		return
	}
	e.reputations[id] = reputation.NewRecord(id)
}

// Entity looks up a participant by id.
func (e *Engine) Entity(id social.EntityID) (social.Entity, bool) {
	ent, ok := e.entities.Get(id)
	if !ok {
		return social.Entity{}, false
	}
	return *ent, true
}

// EntityCount returns the number of registered participants.
func (e *Engine) EntityCount() int {
	return e.entities.Len()
}

// RecentEvents returns up to n of the most recent notifications, newest last.
func (e *Engine) RecentEvents(n int) []events.Event {
	if n <= 0 || n > len(e.recent) {
		n = len(e.recent)
	}
	out := make([]events.Event, n)
	copy(out, e.recent[len(e.recent)-n:])
	return out
}

// emit fans an event out to the external publisher and the retained log.
// Delivery is synchronous and in-order; handlers run inside the mutating call.
func (e *Engine) emit(payload events.Payload) {
	ev := events.Event{Tick: e.tick, Payload: payload}
	e.recent = append(e.recent, ev)
	if over := len(e.recent) - e.cfg.MaxRecentEvents; over > 0 {
		e.recent = e.recent[over:]
	}
	if e.pub != nil {
		e.pub.Publish(ev)
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
