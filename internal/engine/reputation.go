// Reputation queries and rumor-driven reputation updates.
package engine

import (
	"log/slog"

	"github.com/talgya/social-fabric/internal/events"
	"github.com/talgya/social-fabric/internal/reputation"
	"github.com/talgya/social-fabric/internal/social"
)

// relationshipScaleFactor bounds how much a personal relationship colors a
// perspective-by-entity reputation view (at most +-30%).
const relationshipScaleFactor = 0.3

// Reputation returns a view of an entity's reputation from the given
// perspective. Global returns the stored record; a group perspective
// substitutes the group-derived score and filters traits to those with a
// source in the group; an entity perspective scales values by the
// relationship between observer and subject.
func (e *Engine) Reputation(id social.EntityID, p reputation.Perspective) (reputation.Record, bool) {
	rec, ok := e.reputations[id]
	if !ok {
		slog.Debug("reputation query for unknown entity", "id", id)
		return reputation.Record{}, false
	}

	switch p.Kind {
	case reputation.PerspectiveGroup:
		g, ok := e.groups.Get(p.Group)
		if !ok {
			slog.Debug("reputation query for unknown group", "group", p.Group)
			return reputation.Record{}, false
		}
		view := rec.Clone()
		view.Global = rec.Groups[p.Group]
		for trait, score := range rec.Traits {
			if !score.HasSourceIn(g.Members) {
				delete(view.Traits, trait)
			}
		}
		return view, true

	case reputation.PerspectiveEntity:
		view := rec.Clone()
		rel, hasRel := e.graph.Get(p.Entity, id)
		if !hasRel {
			return view, true // No relationship: unscaled
		}
		scale := 1 + (rel.Strength/100)*relationshipScaleFactor
		view.Global *= scale
		for _, score := range view.Traits {
			score.Value *= scale
		}
		return view, true

	default:
		return rec.Clone(), true
	}
}

// updateReputationFromRumor folds a rumor's claim into its subject's
// reputation. Unknown subjects degrade gracefully to a logged skip.
func (e *Engine) updateReputationFromRumor(r *reputation.Rumor) {
	rec, ok := e.reputations[r.Subject]
	if !ok {
		slog.Debug("rumor about unknown subject", "rumor", r.ID, "subject", r.Subject)
		return
	}

	trait := reputation.TraitForContent(r.Content)
	impact := r.Impact()
	rec.ApplyImpact(trait, impact, r.KnownBy)
	rec.Recompute(e.groups.All())

	e.emit(events.ReputationUpdated{
		Entity: r.Subject,
		Trait:  trait,
		Impact: impact,
		Global: rec.Global,
	})
}
