// Rumors: decaying, possibly false claims about an entity that spread
// across the relationship graph and mutate in transit.
package reputation

import (
	"github.com/google/uuid"

	"github.com/talgya/social-fabric/internal/social"
)

// RumorID is a unique identifier for a rumor.
type RumorID string

// Rumor is a claim about a subject. Truth and relevance are 0..100;
// relevance decays each tick and the rumor is pruned at zero.
type Rumor struct {
	ID        RumorID           `json:"id"`
	Subject   social.EntityID   `json:"subject"`
	Content   string            `json:"content"`
	Truth     float64           `json:"truth"`     // 0..100
	Relevance float64           `json:"relevance"` // 0..100, decays
	KnownBy   []social.EntityID `json:"known_by"`  // append-only, no duplicates
}

// NewRumor creates a fresh rumor known only to its originator.
func NewRumor(subject social.EntityID, content string, truth float64, originator social.EntityID) *Rumor {
	return &Rumor{
		ID:        RumorID(uuid.NewString()),
		Subject:   subject,
		Content:   content,
		Truth:     clamp(truth, 0, 100),
		Relevance: 100,
		KnownBy:   []social.EntityID{originator},
	}
}

// Mutate spawns a new independent rumor from r, known only to the entity
// that heard it. Truth drops by truthLoss (floored at 0) and relevance
// starts at 80% of the parent's.
func (r *Rumor) Mutate(knower social.EntityID, truthLoss float64) *Rumor {
	truth := r.Truth - truthLoss
	if truth < 0 {
		truth = 0
	}
	return &Rumor{
		ID:        RumorID(uuid.NewString()),
		Subject:   r.Subject,
		Content:   r.Content + " (mutated)",
		Truth:     truth,
		Relevance: 0.8 * r.Relevance,
		KnownBy:   []social.EntityID{knower},
	}
}

// Knows reports whether id has already heard the rumor.
func (r *Rumor) Knows(id social.EntityID) bool {
	return containsID(r.KnownBy, id)
}

// AddKnower records that id has heard the rumor.
// Returns false when id already knew it (idempotent).
func (r *Rumor) AddKnower(id social.EntityID) bool {
	if r.Knows(id) {
		return false
	}
	r.KnownBy = append(r.KnownBy, id)
	return true
}

// Impact converts truth and relevance into a reputation delta.
// Truth below 50 yields a negative impact; relevance scales magnitude.
func (r *Rumor) Impact() float64 {
	return ((r.Truth/100)*2 - 1) * 10 * (r.Relevance / 100)
}

// Clone returns a deep copy of the rumor.
func (r *Rumor) Clone() Rumor {
	out := *r
	out.KnownBy = append([]social.EntityID(nil), r.KnownBy...)
	return out
}
