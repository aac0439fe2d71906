// Group dynamics: creation, membership and hierarchy management, and the
// cohesion refresh that tracks member relationships.
package engine

import (
	"log/slog"

	"github.com/talgya/social-fabric/internal/events"
	"github.com/talgya/social-fabric/internal/social"
)

// Default relationship values between members of the same group.
const (
	groupMemberRelType     = "group_member"
	groupMemberStrength    = 20.0
	groupMemberTrust       = 30.0
	groupMemberFamiliarity = 20.0

	promoteInfluenceGain = 10.0
	demoteInfluenceLoss  = 5.0
	lowCohesionThreshold = 10.0
	cohesionLerpFactor   = 0.1
)

// CreateGroup registers a new group. Returns ok=false when the id exists.
func (e *Engine) CreateGroup(id social.GroupID, purpose string, cohesion float64) (social.Group, bool) {
	g := &social.Group{ID: id, Purpose: purpose}
	g.SetCohesion(cohesion)
	if !e.groups.Add(g) {
		slog.Debug("group already exists", "id", id)
		return social.Group{}, false
	}
	return g.Clone(), true
}

// Group returns a copy of the group with the given id.
func (e *Engine) Group(id social.GroupID) (social.Group, bool) {
	g, ok := e.groups.Get(id)
	if !ok {
		return social.Group{}, false
	}
	return g.Clone(), true
}

// ManageGroupMembership applies a membership action. All failure modes
// (unknown group or entity, redundant action, invalid action) return false
// without side effects; successful actions emit a membership notification.
func (e *Engine) ManageGroupMembership(groupID social.GroupID, entityID social.EntityID, action social.Action) bool {
	g, ok := e.groups.Get(groupID)
	if !ok {
		slog.Debug("membership action on unknown group", "group", groupID)
		return false
	}
	ent, ok := e.entities.Get(entityID)
	if !ok {
		slog.Debug("membership action on unknown entity", "entity", entityID)
		return false
	}

	switch action {
	case social.ActionAdd:
		if !g.AddMember(entityID) {
			return false
		}
		// New members start with a baseline bond to everyone already in.
		for _, other := range g.Members {
			if other == entityID {
				continue
			}
			if _, exists := e.graph.Edge(entityID, other); !exists {
				e.graph.Insert(entityID, other, groupMemberRelType,
					groupMemberStrength, groupMemberTrust, groupMemberFamiliarity, e.tick)
			}
		}

	case social.ActionRemove:
		if !g.RemoveMember(entityID) {
			return false
		}
		// Leaving sours the baseline bonds that membership created.
		for _, other := range g.Members {
			if rel, exists := e.graph.Edge(entityID, other); exists && rel.Type == groupMemberRelType {
				e.UpdateRelationship(other, entityID, "left_group", -10)
			}
		}

	case social.ActionPromote:
		if !g.IsMember(entityID) {
			return false
		}
		g.Promote(entityID)
		ent.Influence += promoteInfluenceGain

	case social.ActionDemote:
		if !g.Demote(entityID) {
			return false
		}
		ent.Influence -= demoteInfluenceLoss
		if ent.Influence < 0 {
			ent.Influence = 0
		}

	default:
		slog.Debug("invalid membership action", "group", groupID, "action", action)
		return false
	}

	e.emit(events.GroupMembershipChanged{
		Group:  groupID,
		Entity: entityID,
		Action: social.ActionName(action),
	})
	return true
}

// refreshCohesion moves each group's cohesion toward the mean pairwise
// relationship strength among its members. Empty groups are skipped;
// groups below the threshold are flagged but never dissolved.
func (e *Engine) refreshCohesion() {
	for _, g := range e.groups.All() {
		if len(g.Members) == 0 {
			continue
		}

		sum := 0.0
		pairs := 0
		for i := 0; i < len(g.Members); i++ {
			for j := i + 1; j < len(g.Members); j++ {
				if rel, ok := e.graph.Edge(g.Members[i], g.Members[j]); ok {
					sum += rel.Strength
					pairs++
				}
			}
		}

		mean := 0.0
		if pairs > 0 {
			mean = sum / float64(pairs)
		}
		if mean < 0 {
			mean = 0
		}

		g.SetCohesion(lerp(g.Cohesion, mean, cohesionLerpFactor))

		wasLow := g.LowCohesion
		g.LowCohesion = g.Cohesion < lowCohesionThreshold
		if g.LowCohesion && !wasLow {
			slog.Info("group cohesion critical", "group", g.ID, "cohesion", g.Cohesion)
		}
	}
}
