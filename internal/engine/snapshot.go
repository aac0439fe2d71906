// Snapshot export/restore: the explicit read-only surface external
// collaborators (save system, visualization) use instead of poking at
// engine internals.
package engine

import (
	"github.com/talgya/social-fabric/internal/diffusion"
	"github.com/talgya/social-fabric/internal/reputation"
	"github.com/talgya/social-fabric/internal/social"
)

// Snapshot is a deep copy of the complete engine state at one tick.
type Snapshot struct {
	Tick          uint64                `json:"tick"`
	Entities      []social.Entity       `json:"entities"`
	Relationships []social.Relationship `json:"relationships"`
	Groups        []social.Group        `json:"groups"`
	Reputations   []reputation.Record   `json:"reputations"`
	Rumors        []reputation.Rumor    `json:"rumors"`
	Units         []diffusion.Unit      `json:"units"`
	Channels      []diffusion.Channel   `json:"channels"`
}

// Snapshot captures the full engine state. The returned value shares no
// memory with the live engine.
func (e *Engine) Snapshot() *Snapshot {
	snap := &Snapshot{Tick: e.tick}

	for _, ent := range e.entities.All() {
		snap.Entities = append(snap.Entities, *ent)
	}
	for _, rel := range e.graph.All() {
		snap.Relationships = append(snap.Relationships, rel.Clone())
	}
	for _, g := range e.groups.All() {
		snap.Groups = append(snap.Groups, g.Clone())
	}
	for _, ent := range e.entities.All() {
		if rec, ok := e.reputations[ent.ID]; ok {
			snap.Reputations = append(snap.Reputations, rec.Clone())
		}
	}
	for _, r := range e.rumors {
		snap.Rumors = append(snap.Rumors, r.Clone())
	}
	for _, id := range e.unitOrder {
		snap.Units = append(snap.Units, e.units[id].Clone())
	}
	for _, c := range e.channels {
		snap.Channels = append(snap.Channels, c.Clone())
	}
	return snap
}

// Restore replaces the engine state with the snapshot's. The snapshot is
// copied in; the caller keeps ownership of the argument.
func (e *Engine) Restore(snap *Snapshot) {
	e.tick = snap.Tick
	e.entities = social.NewRegistry()
	e.graph = social.NewGraph()
	e.groups = social.NewGroupSet()
	e.reputations = make(map[social.EntityID]*reputation.Record)
	e.rumors = nil
	e.units = make(map[diffusion.UnitID]*diffusion.Unit)
	e.unitOrder = nil
	e.channels = nil
	e.recent = nil

	for _, ent := range snap.Entities {
		copied := ent
		e.entities.Add(&copied)
		e.reputations[ent.ID] = reputation.NewRecord(ent.ID)
	}
	for _, rel := range snap.Relationships {
		stored := e.graph.Insert(rel.Source, rel.Target, rel.Type,
			rel.Strength, rel.Trust, rel.Familiarity, rel.CreatedTick)
		stored.History = append([]social.HistoryEntry(nil), rel.History...)
	}
	for _, g := range snap.Groups {
		copied := g.Clone()
		e.groups.Add(&copied)
	}
	for _, rec := range snap.Reputations {
		copied := rec.Clone()
		e.reputations[rec.EntityID] = &copied
	}
	for _, r := range snap.Rumors {
		copied := r.Clone()
		e.rumors = append(e.rumors, &copied)
	}
	for _, u := range snap.Units {
		copied := u.Clone()
		e.units[u.ID] = &copied
		e.unitOrder = append(e.unitOrder, u.ID)
	}
	for _, c := range snap.Channels {
		copied := c.Clone()
		e.channels = append(e.channels, &copied)
	}
}
