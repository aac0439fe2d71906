// Relationship dynamics: interaction updates, canonical lookups, natural
// decay, and autonomous NPC interactions.
package engine

import (
	"log/slog"

	"github.com/talgya/social-fabric/internal/events"
	"github.com/talgya/social-fabric/internal/social"
)

// ChangeResult reports the relationship values after an update.
type ChangeResult struct {
	Created     bool    `json:"created"` // Edge was lazily created by this call
	Strength    float64 `json:"strength"`
	Trust       float64 `json:"trust"`
	Familiarity float64 `json:"familiarity"`
}

// cohesionTriggerIntensity is the |intensity| above which an interaction
// also moves the cohesion of groups containing both entities.
const cohesionTriggerIntensity = 20.0

// Relationship returns a view of the edge between a and b, oriented so
// that a is the source. Missing edges are a normal non-error outcome.
func (e *Engine) Relationship(a, b social.EntityID) (social.Relationship, bool) {
	return e.graph.Get(a, b)
}

// UpdateRelationship applies an interaction between two entities, creating
// the edge with default values when absent. Returns ok=false when either
// entity is unknown or source equals target.
func (e *Engine) UpdateRelationship(source, target social.EntityID, label string, intensity float64) (ChangeResult, bool) {
	if source == target {
		slog.Debug("self interaction ignored", "id", source)
		return ChangeResult{}, false
	}
	if !e.entities.Has(source) || !e.entities.Has(target) {
		slog.Debug("interaction between unknown entities", "source", source, "target", target)
		return ChangeResult{}, false
	}

	_, existed := e.graph.Edge(source, target)
	rel := e.graph.Ensure(source, target, e.tick)
	rel.Apply(label, intensity, e.tick)

	e.emit(events.RelationshipChanged{
		Source:    source,
		Target:    target,
		Label:     label,
		Intensity: intensity,
		Strength:  rel.Strength,
		Trust:     rel.Trust,
	})

	// Strong interactions ripple into shared groups.
	if intensity > cohesionTriggerIntensity || intensity < -cohesionTriggerIntensity {
		for _, g := range e.groups.Containing(source, target) {
			g.SetCohesion(g.Cohesion + intensity*0.1)
		}
	}

	return ChangeResult{
		Created:     !existed,
		Strength:    rel.Strength,
		Trust:       rel.Trust,
		Familiarity: rel.Familiarity,
	}, true
}

// decayRelationships moves idle edges back toward neutral. An edge is idle
// once its last interaction is older than one simulated day.
func (e *Engine) decayRelationships() {
	if e.tick < e.cfg.TicksPerDay {
		return
	}
	cutoff := e.tick - e.cfg.TicksPerDay
	for _, rel := range e.graph.All() {
		if rel.LastActivityTick() >= cutoff {
			continue
		}
		rel.Strength = towardZero(rel.Strength, e.cfg.DecayRate)
		rel.Familiarity = towardZero(rel.Familiarity, e.cfg.DecayRate/2)
	}
}

// towardZero moves v toward 0 by at most step, never crossing it.
func towardZero(v, step float64) float64 {
	switch {
	case v > step:
		return v - step
	case v < -step:
		return v + step
	default:
		return 0
	}
}

// scripted is one entry in an autonomous interaction pool.
type scripted struct {
	label     string
	intensity float64
}

var (
	positiveInteractions = []scripted{
		{"shared_meal", 8},
		{"helped_with_work", 12},
		{"exchanged_gifts", 15},
		{"told_stories", 5},
	}
	negativeInteractions = []scripted{
		{"argued", -8},
		{"insulted", -12},
		{"spread_gossip_about", -6},
		{"threatened", -18},
	}
	neutralInteractions = []scripted{
		{"small_talk", 2},
		{"traded", 4},
		{"passed_by", 1},
		{"asked_directions", 2},
	}
)

// autonomousInteraction occasionally synthesizes an NPC-to-NPC interaction,
// choosing tone from the current relationship strength band.
func (e *Engine) autonomousInteraction() {
	if !e.rng.Chance(e.cfg.InteractionChance) {
		return
	}
	npcs := e.entities.NPCs()
	if len(npcs) < 2 {
		return
	}

	i := e.rng.Intn(len(npcs))
	j := e.rng.Intn(len(npcs) - 1)
	if j >= i {
		j++
	}
	a, b := npcs[i].ID, npcs[j].ID

	strength := 0.0
	if rel, ok := e.graph.Get(a, b); ok {
		strength = rel.Strength
	}

	pool := neutralInteractions
	switch {
	case strength > 30:
		pool = positiveInteractions
	case strength < -30:
		pool = negativeInteractions
	}
	pick := pool[e.rng.Intn(len(pool))]

	e.UpdateRelationship(a, b, pick.label, pick.intensity)
}
