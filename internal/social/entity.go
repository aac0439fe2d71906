// Package social provides the entity, relationship, and group data model
// for the social simulation.
package social

// EntityID is a unique identifier for a social participant.
type EntityID string

// EntityKind distinguishes the player from simulated NPCs.
type EntityKind uint8

const (
	KindPlayer EntityKind = 0
	KindNPC    EntityKind = 1
)

// KindName returns a readable name for an entity kind.
func KindName(k EntityKind) string {
	if k == KindPlayer {
		return "player"
	}
	return "npc"
}

// Position is a flat 2D world position.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Entity is a social participant: the player or an NPC.
// Entities are created once and never removed.
type Entity struct {
	ID        EntityID   `json:"id"`
	Kind      EntityKind `json:"kind"`
	Position  Position   `json:"position"`
	Influence float64    `json:"influence"` // >= 0
}

// Registry holds all known entities with stable insertion order.
// Stable order keeps seeded runs reproducible when picking at random.
type Registry struct {
	byID  map[EntityID]*Entity
	order []EntityID
}

// NewRegistry creates an empty entity registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[EntityID]*Entity)}
}

// Add inserts an entity. Returns false if the id is already present.
func (r *Registry) Add(e *Entity) bool {
	if _, exists := r.byID[e.ID]; exists {
		return false
	}
	if e.Influence < 0 {
		e.Influence = 0
	}
	r.byID[e.ID] = e
	r.order = append(r.order, e.ID)
	return true
}

// Get looks up an entity by id.
func (r *Registry) Get(id EntityID) (*Entity, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// Has reports whether an entity exists.
func (r *Registry) Has(id EntityID) bool {
	_, ok := r.byID[id]
	return ok
}

// All returns entities in insertion order.
func (r *Registry) All() []*Entity {
	out := make([]*Entity, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// NPCs returns all non-player entities in insertion order.
func (r *Registry) NPCs() []*Entity {
	var out []*Entity
	for _, id := range r.order {
		if e := r.byID[id]; e.Kind == KindNPC {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of registered entities.
func (r *Registry) Len() int {
	return len(r.order)
}
