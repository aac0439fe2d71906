// Information diffusion: unit and channel management, trust- and
// noise-degraded sharing, and autonomous spread along strong relationships.
package engine

import (
	"log/slog"

	"github.com/talgya/social-fabric/internal/diffusion"
	"github.com/talgya/social-fabric/internal/events"
	"github.com/talgya/social-fabric/internal/social"
)

const (
	// Trust assumed between strangers sharing information.
	strangerTrustFactor = 0.5
	// Blend weight when upgrading existing knowledge toward the sender's.
	knowledgeBlendFactor = 0.7
	// Channel type reported for scheduler-driven shares.
	autonomousChannelType = "autonomous_sharing"
)

// CreateInformationUnit registers a new information unit fully known by its
// originator. Returns ok=false on a duplicate id or unknown originator.
func (e *Engine) CreateInformationUnit(id diffusion.UnitID, unitType, content string, sensitivity float64, originator social.EntityID) (diffusion.Unit, bool) {
	if _, exists := e.units[id]; exists {
		slog.Debug("information unit already exists", "id", id)
		return diffusion.Unit{}, false
	}
	if !e.entities.Has(originator) {
		slog.Debug("information unit from unknown originator", "id", id, "originator", originator)
		return diffusion.Unit{}, false
	}

	u := diffusion.NewUnit(id, unitType, content, sensitivity, originator, e.tick)
	e.units[id] = u
	e.unitOrder = append(e.unitOrder, id)
	return u.Clone(), true
}

// CreateChannel registers a persistent communication channel.
func (e *Engine) CreateChannel(chType string, participants []social.EntityID, bandwidth, noise float64) diffusion.Channel {
	c := diffusion.NewChannel(chType, participants, bandwidth, noise)
	e.channels = append(e.channels, c)
	return c.Clone()
}

// Knowledge returns entity's knowledge of a unit, if any.
func (e *Engine) Knowledge(entity social.EntityID, id diffusion.UnitID) (diffusion.Knowledge, bool) {
	u, ok := e.units[id]
	if !ok {
		return diffusion.Knowledge{}, false
	}
	k, ok := u.Knowledge[entity]
	if !ok {
		return diffusion.Knowledge{}, false
	}
	return *k, true
}

// resolveChannel finds a registered channel of the requested type holding
// both participants, falling back to an ephemeral direct conversation.
func (e *Engine) resolveChannel(chType string, a, b social.EntityID) *diffusion.Channel {
	for _, c := range e.channels {
		if c.Type == chType && c.Includes(a) && c.Includes(b) {
			return c
		}
	}
	return diffusion.NewDirectChannel(a, b)
}

// ShareInformation transfers a unit from sender to receiver over a channel.
// Accuracy degrades with channel noise and lack of trust; detail degrades
// with noise alone. Returns false when the unit is unknown or the sender
// does not know it.
func (e *Engine) ShareInformation(sender, receiver social.EntityID, id diffusion.UnitID, channelType string) bool {
	u, ok := e.units[id]
	if !ok {
		slog.Debug("share of unknown information", "id", id)
		return false
	}
	sk, ok := u.Knowledge[sender]
	if !ok {
		slog.Debug("sender does not know information", "id", id, "sender", sender)
		return false
	}

	channel := e.resolveChannel(channelType, sender, receiver)

	trustFactor := strangerTrustFactor
	if rel, hasRel := e.graph.Get(sender, receiver); hasRel {
		trustFactor = rel.Trust / 100
	}
	accuracyDegradation := channel.Noise * (1 - trustFactor)
	detailDegradation := channel.Noise * 0.5

	sentAccuracy := sk.Accuracy * (1 - accuracyDegradation)
	sentDetail := sk.Detail * (1 - detailDegradation)

	if rk, knows := u.Knowledge[receiver]; knows {
		// Upgrades only: a fuzzy retelling never erodes what is known.
		if sk.Accuracy > rk.Accuracy {
			rk.Accuracy = lerp(rk.Accuracy, sentAccuracy, knowledgeBlendFactor)
		}
		if sk.Detail > rk.Detail {
			rk.Detail = lerp(rk.Detail, sentDetail, knowledgeBlendFactor)
		}
	} else {
		u.Knowledge[receiver] = &diffusion.Knowledge{
			Accuracy:     sentAccuracy,
			Detail:       sentDetail,
			AcquiredTick: e.tick,
		}
	}

	e.emit(events.InformationShared{
		Sender:      sender,
		Receiver:    receiver,
		UnitID:      id,
		ChannelType: channel.Type,
	})

	// Sharing is itself a bonding interaction, scaled by how sensitive
	// the information is.
	e.UpdateRelationship(sender, receiver, "information_sharing", 5*u.Sensitivity)
	return true
}

// tickDiffusion occasionally lets a random knower pass a unit along one of
// their positive relationships. Sharing chance rises with trust and falls
// with sensitivity.
func (e *Engine) tickDiffusion() {
	if !e.rng.Chance(e.cfg.DiffusionChance) {
		return
	}
	if len(e.unitOrder) == 0 {
		return
	}

	u := e.units[e.unitOrder[e.rng.Intn(len(e.unitOrder))]]
	knowers := u.Knowers()
	sharer := knowers[e.rng.Intn(len(knowers))]

	var audience []*social.Relationship
	for _, rel := range e.graph.EdgesOf(sharer) {
		if rel.Strength > 0 {
			audience = append(audience, rel)
		}
	}
	if len(audience) == 0 {
		return
	}

	edge := audience[e.rng.Intn(len(audience))]
	target := edge.Other(sharer)
	trustFactor := edge.Trust / 100

	sharingChance := lerp(0.1, 0.9, trustFactor) * (1 - u.Sensitivity*0.5)
	if !e.rng.Chance(sharingChance) {
		return
	}

	e.ShareInformation(sharer, target, u.ID, autonomousChannelType)
}
