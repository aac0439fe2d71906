// Relationship graph: one edge per unordered entity pair, with
// strength/trust/familiarity and an append-only interaction history.
package social

// Default values for a lazily created relationship.
const (
	DefaultRelationType = "acquaintance"
	DefaultStrength     = 0.0
	DefaultTrust        = 20.0
	DefaultFamiliarity  = 10.0
)

// PairKey is the canonical key for an unordered entity pair.
// The lexicographically smaller id is always A.
type PairKey struct {
	A EntityID
	B EntityID
}

// MakePairKey builds the canonical key for (a, b) regardless of argument order.
func MakePairKey(a, b EntityID) PairKey {
	if b < a {
		a, b = b, a
	}
	return PairKey{A: a, B: b}
}

// HistoryEntry records a single interaction on a relationship.
// Entries are immutable once appended.
type HistoryEntry struct {
	Label  string  `json:"label"`
	Impact float64 `json:"impact"`
	Tick   uint64  `json:"tick"`
}

// Relationship is a bidirectional social link between two entities.
// The stored orientation follows the canonical pair key; lookups re-orient.
type Relationship struct {
	Source      EntityID       `json:"source"`
	Target      EntityID       `json:"target"`
	Type        string         `json:"type"`
	Strength    float64        `json:"strength"`    // -100..100
	Trust       float64        `json:"trust"`       // 0..100
	Familiarity float64        `json:"familiarity"` // 0..100
	History     []HistoryEntry `json:"history"`
	CreatedTick uint64         `json:"created_tick"`
}

// Other returns the endpoint that is not id.
func (r *Relationship) Other(id EntityID) EntityID {
	if r.Source == id {
		return r.Target
	}
	return r.Source
}

// Apply records an interaction and shifts the relationship values.
// Strength moves by the full intensity, trust by half, familiarity by a
// fixed step. All three are clamped after every mutation.
func (r *Relationship) Apply(label string, intensity float64, tick uint64) {
	r.History = append(r.History, HistoryEntry{Label: label, Impact: intensity, Tick: tick})
	r.Strength = clamp(r.Strength+intensity, -100, 100)
	r.Trust = clamp(r.Trust+intensity*0.5, 0, 100)
	r.Familiarity = clamp(r.Familiarity+5, 0, 100)
}

// LastActivityTick returns the tick of the most recent interaction, or the
// creation tick when the relationship has no history yet.
func (r *Relationship) LastActivityTick() uint64 {
	if n := len(r.History); n > 0 {
		return r.History[n-1].Tick
	}
	return r.CreatedTick
}

// Oriented returns a copy of the relationship with Source set to from.
// The shared history and values are identical in both orientations.
func (r *Relationship) Oriented(from EntityID) Relationship {
	view := *r
	view.History = append([]HistoryEntry(nil), r.History...)
	if view.Source != from {
		view.Source, view.Target = view.Target, view.Source
	}
	return view
}

// Clone returns a deep copy of the relationship.
func (r *Relationship) Clone() Relationship {
	out := *r
	out.History = append([]HistoryEntry(nil), r.History...)
	return out
}

// Graph is the sparse relationship edge set. Exactly one edge exists per
// unordered entity pair; edges are created lazily and never deleted.
type Graph struct {
	edges map[PairKey]*Relationship
	order []PairKey
}

// NewGraph creates an empty relationship graph.
func NewGraph() *Graph {
	return &Graph{edges: make(map[PairKey]*Relationship)}
}

// Edge returns the stored edge for the pair, in canonical orientation.
func (g *Graph) Edge(a, b EntityID) (*Relationship, bool) {
	r, ok := g.edges[MakePairKey(a, b)]
	return r, ok
}

// Get returns a copy of the edge oriented so that a is the source.
// A missing edge is a normal outcome, not an error.
func (g *Graph) Get(a, b EntityID) (Relationship, bool) {
	r, ok := g.edges[MakePairKey(a, b)]
	if !ok {
		return Relationship{}, false
	}
	return r.Oriented(a), true
}

// Ensure returns the edge for the pair, creating it with default values
// when absent. The stored orientation follows the canonical key.
func (g *Graph) Ensure(a, b EntityID, tick uint64) *Relationship {
	key := MakePairKey(a, b)
	if r, ok := g.edges[key]; ok {
		return r
	}
	r := &Relationship{
		Source:      key.A,
		Target:      key.B,
		Type:        DefaultRelationType,
		Strength:    DefaultStrength,
		Trust:       DefaultTrust,
		Familiarity: DefaultFamiliarity,
		CreatedTick: tick,
	}
	g.edges[key] = r
	g.order = append(g.order, key)
	return r
}

// Insert adds an edge with explicit values, used for group-membership
// defaults. Returns the existing edge unchanged if one is present.
func (g *Graph) Insert(a, b EntityID, relType string, strength, trust, familiarity float64, tick uint64) *Relationship {
	key := MakePairKey(a, b)
	if r, ok := g.edges[key]; ok {
		return r
	}
	r := &Relationship{
		Source:      key.A,
		Target:      key.B,
		Type:        relType,
		Strength:    clamp(strength, -100, 100),
		Trust:       clamp(trust, 0, 100),
		Familiarity: clamp(familiarity, 0, 100),
		CreatedTick: tick,
	}
	g.edges[key] = r
	g.order = append(g.order, key)
	return r
}

// EdgesOf returns all edges touching id, in insertion order.
func (g *Graph) EdgesOf(id EntityID) []*Relationship {
	var out []*Relationship
	for _, key := range g.order {
		if key.A == id || key.B == id {
			out = append(out, g.edges[key])
		}
	}
	return out
}

// All returns every edge in insertion order.
func (g *Graph) All() []*Relationship {
	out := make([]*Relationship, 0, len(g.order))
	for _, key := range g.order {
		out = append(out, g.edges[key])
	}
	return out
}

// Len returns the number of edges.
func (g *Graph) Len() int {
	return len(g.order)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
