// Package events defines the typed notifications the engine publishes to
// its external bus collaborator. The bus itself lives outside the engine;
// it only needs to satisfy Publisher.
package events

import (
	"github.com/talgya/social-fabric/internal/diffusion"
	"github.com/talgya/social-fabric/internal/reputation"
	"github.com/talgya/social-fabric/internal/social"
)

// Kind is the closed set of notification types.
type Kind uint8

const (
	KindRelationshipChanged Kind = iota
	KindReputationUpdated
	KindInformationShared
	KindRumorCreated
	KindGroupMembershipChanged
)

// String returns a readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindRelationshipChanged:
		return "relationship_changed"
	case KindReputationUpdated:
		return "reputation_updated"
	case KindInformationShared:
		return "information_shared"
	case KindRumorCreated:
		return "rumor_created"
	case KindGroupMembershipChanged:
		return "group_membership_changed"
	}
	return "unknown"
}

// Payload is implemented by every event payload type.
type Payload interface {
	Kind() Kind
}

// Event is one notification: when it happened and what it carries.
type Event struct {
	Tick    uint64  `json:"tick"`
	Payload Payload `json:"payload"`
}

// RelationshipChanged reports a relationship mutation.
type RelationshipChanged struct {
	Source    social.EntityID `json:"source"`
	Target    social.EntityID `json:"target"`
	Label     string          `json:"label"`
	Intensity float64         `json:"intensity"`
	Strength  float64         `json:"strength"`
	Trust     float64         `json:"trust"`
}

func (RelationshipChanged) Kind() Kind { return KindRelationshipChanged }

// ReputationUpdated reports a trait shift on an entity's reputation.
type ReputationUpdated struct {
	Entity social.EntityID  `json:"entity"`
	Trait  reputation.Trait `json:"trait"`
	Impact float64          `json:"impact"`
	Global float64          `json:"global"`
}

func (ReputationUpdated) Kind() Kind { return KindReputationUpdated }

// InformationShared reports a successful information transfer.
type InformationShared struct {
	Sender      social.EntityID  `json:"sender"`
	Receiver    social.EntityID  `json:"receiver"`
	UnitID      diffusion.UnitID `json:"unit_id"`
	ChannelType string           `json:"channel_type"`
}

func (InformationShared) Kind() Kind { return KindInformationShared }

// RumorCreated reports a new rumor, including mutation spawns.
type RumorCreated struct {
	RumorID reputation.RumorID `json:"rumor_id"`
	Subject social.EntityID    `json:"subject"`
	Content string             `json:"content"`
	Truth   float64            `json:"truth"`
	Mutated bool               `json:"mutated"`
}

func (RumorCreated) Kind() Kind { return KindRumorCreated }

// GroupMembershipChanged reports a successful membership action.
type GroupMembershipChanged struct {
	Group  social.GroupID  `json:"group"`
	Entity social.EntityID `json:"entity"`
	Action string          `json:"action"`
}

func (GroupMembershipChanged) Kind() Kind { return KindGroupMembershipChanged }

// Publisher receives engine notifications as a synchronous in-order fan-out.
// Implementations must not mutate engine state from inside Publish.
type Publisher interface {
	Publish(Event)
}

// Recorder is an in-memory Publisher used by tests and the demo binary.
type Recorder struct {
	Events []Event
}

// Publish appends the event to the record.
func (r *Recorder) Publish(e Event) {
	r.Events = append(r.Events, e)
}

// OfKind returns all recorded events with the given kind.
func (r *Recorder) OfKind(k Kind) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Payload != nil && e.Payload.Kind() == k {
			out = append(out, e)
		}
	}
	return out
}

// Reset clears the record.
func (r *Recorder) Reset() {
	r.Events = nil
}
