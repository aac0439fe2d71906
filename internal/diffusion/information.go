// Package diffusion provides the information-unit and communication-channel
// model: discrete facts whose per-entity fidelity degrades as they spread.
package diffusion

import (
	"sort"

	"github.com/google/uuid"

	"github.com/talgya/social-fabric/internal/social"
)

// UnitID is a unique identifier for an information unit.
type UnitID string

// Knowledge is one entity's grasp of an information unit.
type Knowledge struct {
	Accuracy     float64 `json:"accuracy"` // 0..1
	Detail       float64 `json:"detail"`   // 0..1
	AcquiredTick uint64  `json:"acquired_tick"`
}

// Unit is a discrete piece of information. Identity and content are
// immutable; the knowledge map only grows or upgrades.
type Unit struct {
	ID          UnitID                         `json:"id"`
	Type        string                         `json:"type"`
	Content     string                         `json:"content"`
	Sensitivity float64                        `json:"sensitivity"` // 0..1
	Originator  social.EntityID                `json:"originator"`
	Knowledge   map[social.EntityID]*Knowledge `json:"knowledge"`
}

// NewUnit creates an information unit fully known by its originator.
func NewUnit(id UnitID, unitType, content string, sensitivity float64, originator social.EntityID, tick uint64) *Unit {
	if sensitivity < 0 {
		sensitivity = 0
	}
	if sensitivity > 1 {
		sensitivity = 1
	}
	return &Unit{
		ID:          id,
		Type:        unitType,
		Content:     content,
		Sensitivity: sensitivity,
		Originator:  originator,
		Knowledge: map[social.EntityID]*Knowledge{
			originator: {Accuracy: 1, Detail: 1, AcquiredTick: tick},
		},
	}
}

// Knowers returns the ids that know the unit, sorted for stable iteration.
func (u *Unit) Knowers() []social.EntityID {
	out := make([]social.EntityID, 0, len(u.Knowledge))
	for id := range u.Knowledge {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns a deep copy of the unit.
func (u *Unit) Clone() Unit {
	out := *u
	out.Knowledge = make(map[social.EntityID]*Knowledge, len(u.Knowledge))
	for id, k := range u.Knowledge {
		kc := *k
		out.Knowledge[id] = &kc
	}
	return out
}

// Ephemeral channel defaults used when no configured channel matches.
const (
	DirectChannelType      = "direct_conversation"
	DirectChannelBandwidth = 0.9
	DirectChannelNoise     = 0.1
)

// Channel is a named medium constraining transfer fidelity.
type Channel struct {
	ID           string            `json:"id"`
	Type         string            `json:"type"`
	Participants []social.EntityID `json:"participants"`
	Bandwidth    float64           `json:"bandwidth"` // 0..1
	Noise        float64           `json:"noise"`     // 0..1
}

// NewChannel creates a channel with a generated id.
func NewChannel(chType string, participants []social.EntityID, bandwidth, noise float64) *Channel {
	return &Channel{
		ID:           uuid.NewString(),
		Type:         chType,
		Participants: append([]social.EntityID(nil), participants...),
		Bandwidth:    bandwidth,
		Noise:        noise,
	}
}

// NewDirectChannel synthesizes the ephemeral fallback channel for a pair.
func NewDirectChannel(a, b social.EntityID) *Channel {
	return NewChannel(DirectChannelType, []social.EntityID{a, b}, DirectChannelBandwidth, DirectChannelNoise)
}

// Includes reports whether id participates in the channel.
func (c *Channel) Includes(id social.EntityID) bool {
	for _, p := range c.Participants {
		if p == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the channel.
func (c *Channel) Clone() Channel {
	out := *c
	out.Participants = append([]social.EntityID(nil), c.Participants...)
	return out
}
