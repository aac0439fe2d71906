// Groups: named member sets with a leadership hierarchy and a cohesion
// score derived from member relationships.
package social

// GroupID is a unique identifier for a group.
type GroupID string

// Action enumerates the group membership operations.
type Action uint8

const (
	ActionAdd Action = iota
	ActionRemove
	ActionPromote
	ActionDemote
	actionInvalid
)

var actionNames = map[string]Action{
	"add":     ActionAdd,
	"remove":  ActionRemove,
	"promote": ActionPromote,
	"demote":  ActionDemote,
}

// ParseAction maps an action string to its Action. Unknown strings return
// ok=false; callers treat that as a no-op.
func ParseAction(s string) (Action, bool) {
	a, ok := actionNames[s]
	return a, ok
}

// ActionName returns the string form of an action.
func ActionName(a Action) string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionPromote:
		return "promote"
	case ActionDemote:
		return "demote"
	}
	return "unknown"
}

// Hierarchy holds the named role lists of a group. Leadership is the only
// role the engine manages directly.
type Hierarchy struct {
	Leadership []EntityID `json:"leadership"`
}

// Group is a named set of entities with shared purpose and cohesion.
type Group struct {
	ID          GroupID    `json:"id"`
	Purpose     string     `json:"purpose"`
	Cohesion    float64    `json:"cohesion"` // 0..100
	Members     []EntityID `json:"members"`
	Hierarchy   Hierarchy  `json:"hierarchy"`
	LowCohesion bool       `json:"low_cohesion"` // flagged below 10, never auto-dissolved
}

// IsMember reports whether id belongs to the group.
func (g *Group) IsMember(id EntityID) bool {
	for _, m := range g.Members {
		if m == id {
			return true
		}
	}
	return false
}

// IsLeader reports whether id is in the leadership role.
func (g *Group) IsLeader(id EntityID) bool {
	for _, m := range g.Hierarchy.Leadership {
		if m == id {
			return true
		}
	}
	return false
}

// AddMember appends id to the member set. Returns false if already present.
func (g *Group) AddMember(id EntityID) bool {
	if g.IsMember(id) {
		return false
	}
	g.Members = append(g.Members, id)
	return true
}

// RemoveMember removes id from members and leadership.
// Returns false if id was not a member.
func (g *Group) RemoveMember(id EntityID) bool {
	for i, m := range g.Members {
		if m == id {
			g.Members = append(g.Members[:i], g.Members[i+1:]...)
			g.removeLeader(id)
			return true
		}
	}
	return false
}

// Promote adds id to leadership. Idempotent for the role list.
func (g *Group) Promote(id EntityID) {
	if !g.IsLeader(id) {
		g.Hierarchy.Leadership = append(g.Hierarchy.Leadership, id)
	}
}

func (g *Group) removeLeader(id EntityID) bool {
	for i, m := range g.Hierarchy.Leadership {
		if m == id {
			g.Hierarchy.Leadership = append(g.Hierarchy.Leadership[:i], g.Hierarchy.Leadership[i+1:]...)
			return true
		}
	}
	return false
}

// Demote removes id from leadership. Returns false if id was not a leader.
func (g *Group) Demote(id EntityID) bool {
	return g.removeLeader(id)
}

// SetCohesion clamps and stores the cohesion value.
func (g *Group) SetCohesion(v float64) {
	g.Cohesion = clamp(v, 0, 100)
}

// Clone returns a deep copy of the group.
func (g *Group) Clone() Group {
	out := *g
	out.Members = append([]EntityID(nil), g.Members...)
	out.Hierarchy.Leadership = append([]EntityID(nil), g.Hierarchy.Leadership...)
	return out
}

// GroupSet holds all groups with stable insertion order.
type GroupSet struct {
	byID  map[GroupID]*Group
	order []GroupID
}

// NewGroupSet creates an empty group registry.
func NewGroupSet() *GroupSet {
	return &GroupSet{byID: make(map[GroupID]*Group)}
}

// Add inserts a group. Returns false if the id already exists.
func (s *GroupSet) Add(g *Group) bool {
	if _, exists := s.byID[g.ID]; exists {
		return false
	}
	s.byID[g.ID] = g
	s.order = append(s.order, g.ID)
	return true
}

// Get looks up a group by id.
func (s *GroupSet) Get(id GroupID) (*Group, bool) {
	g, ok := s.byID[id]
	return g, ok
}

// All returns groups in insertion order.
func (s *GroupSet) All() []*Group {
	out := make([]*Group, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Containing returns groups that include both a and b.
func (s *GroupSet) Containing(a, b EntityID) []*Group {
	var out []*Group
	for _, id := range s.order {
		g := s.byID[id]
		if g.IsMember(a) && g.IsMember(b) {
			out = append(out, g)
		}
	}
	return out
}

// Len returns the number of groups.
func (s *GroupSet) Len() int {
	return len(s.order)
}
