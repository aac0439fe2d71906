package social

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAction(t *testing.T) {
	for name, want := range map[string]Action{
		"add":     ActionAdd,
		"remove":  ActionRemove,
		"promote": ActionPromote,
		"demote":  ActionDemote,
	} {
		got, ok := ParseAction(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got)
		assert.Equal(t, name, ActionName(got))
	}

	_, ok := ParseAction("banish")
	assert.False(t, ok)
}

func TestGroupMembership(t *testing.T) {
	g := &Group{ID: "g1"}

	assert.True(t, g.AddMember("a"))
	assert.False(t, g.AddMember("a"), "duplicate add is a no-op")
	assert.True(t, g.IsMember("a"))

	g.Promote("a")
	g.Promote("a")
	assert.Len(t, g.Hierarchy.Leadership, 1, "promote is idempotent for the role list")

	assert.True(t, g.RemoveMember("a"))
	assert.False(t, g.IsLeader("a"), "removal clears leadership")
	assert.False(t, g.RemoveMember("a"))
}

func TestSetCohesionClamps(t *testing.T) {
	g := &Group{}
	g.SetCohesion(150)
	assert.Equal(t, 100.0, g.Cohesion)
	g.SetCohesion(-5)
	assert.Equal(t, 0.0, g.Cohesion)
}

func TestGroupSetContaining(t *testing.T) {
	s := NewGroupSet()
	g1 := &Group{ID: "g1", Members: []EntityID{"a", "b"}}
	g2 := &Group{ID: "g2", Members: []EntityID{"a", "c"}}
	assert.True(t, s.Add(g1))
	assert.True(t, s.Add(g2))
	assert.False(t, s.Add(&Group{ID: "g1"}), "duplicate group id rejected")

	both := s.Containing("a", "b")
	assert.Len(t, both, 1)
	assert.Equal(t, GroupID("g1"), both[0].ID)
}
