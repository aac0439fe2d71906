// Rumor lifecycle: creation, stochastic propagation across the
// relationship graph, mutation, decay, and pruning.
package engine

import (
	"log/slog"

	"github.com/talgya/social-fabric/internal/events"
	"github.com/talgya/social-fabric/internal/reputation"
	"github.com/talgya/social-fabric/internal/social"
)

const (
	// Edges at or below this strength refuse to carry rumors.
	rumorEdgeMinStrength = -20.0
	// Rumors above this relevance keep re-propagating on their own.
	rumorActiveRelevance = 20.0
)

// CreateRumor creates a rumor known to its originator and runs one initial
// propagation step. Returns ok=false when originator or subject is unknown.
func (e *Engine) CreateRumor(originator, subject social.EntityID, content string, truth float64) (reputation.Rumor, bool) {
	if !e.entities.Has(originator) || !e.entities.Has(subject) {
		slog.Debug("rumor involves unknown entity", "originator", originator, "subject", subject)
		return reputation.Rumor{}, false
	}

	r := reputation.NewRumor(subject, content, truth, originator)
	e.rumors = append(e.rumors, r)
	e.emit(events.RumorCreated{
		RumorID: r.ID,
		Subject: r.Subject,
		Content: r.Content,
		Truth:   r.Truth,
	})

	e.propagateRumor(r, originator)
	return r.Clone(), true
}

// Rumor returns a copy of the rumor with the given id.
func (e *Engine) Rumor(id reputation.RumorID) (reputation.Rumor, bool) {
	for _, r := range e.rumors {
		if r.ID == id {
			return r.Clone(), true
		}
	}
	return reputation.Rumor{}, false
}

// Rumors returns copies of all live rumors.
func (e *Engine) Rumors() []reputation.Rumor {
	out := make([]reputation.Rumor, 0, len(e.rumors))
	for _, r := range e.rumors {
		out = append(out, r.Clone())
	}
	return out
}

// propagateRumor runs a single spread step from source. The step picks one
// candidate edge; spread chance scales with the edge's trust. A successful
// spread may mutate the rumor into a new independent one. One step per
// event keeps propagation bounded within a tick.
func (e *Engine) propagateRumor(r *reputation.Rumor, source social.EntityID) {
	var candidates []*social.Relationship
	for _, rel := range e.graph.EdgesOf(source) {
		if rel.Strength > rumorEdgeMinStrength {
			candidates = append(candidates, rel)
		}
	}
	if len(candidates) == 0 {
		return
	}

	edge := candidates[e.rng.Intn(len(candidates))]
	target := edge.Other(source)
	if r.Knows(target) {
		return // Re-propagating to a knower is a no-op
	}

	trustFactor := (edge.Trust + 50) / 150
	if !e.rng.Chance(e.cfg.SpreadRate * trustFactor) {
		return
	}

	r.AddKnower(target)

	affected := r
	if e.rng.Chance(e.cfg.MutationChance) {
		child := r.Mutate(target, e.rng.Between(10, 30))
		e.rumors = append(e.rumors, child)
		e.emit(events.RumorCreated{
			RumorID: child.ID,
			Subject: child.Subject,
			Content: child.Content,
			Truth:   child.Truth,
			Mutated: true,
		})
		affected = child
	}

	e.updateReputationFromRumor(affected)
}

// tickRumors runs the per-tick rumor upkeep: relevance decay, autonomous
// re-propagation from a random knower, and pruning of dead rumors.
func (e *Engine) tickRumors() {
	// Children spawned during this pass wait until the next tick.
	live := e.rumors

	for _, r := range live {
		r.Relevance -= 2 * e.cfg.DecayRate
		if r.Relevance <= rumorActiveRelevance {
			continue
		}
		if !e.rng.Chance(e.cfg.RumorTickChance) {
			continue
		}
		source := r.KnownBy[e.rng.Intn(len(r.KnownBy))]
		e.propagateRumor(r, source)
	}

	kept := e.rumors[:0]
	for _, r := range e.rumors {
		if r.Relevance > 0 {
			kept = append(kept, r)
			continue
		}
		slog.Debug("rumor pruned", "id", r.ID, "subject", r.Subject, "known_by", len(r.KnownBy))
	}
	e.rumors = kept
}
