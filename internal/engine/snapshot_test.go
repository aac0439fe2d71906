package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/social-fabric/internal/reputation"
	"github.com/talgya/social-fabric/internal/social"
)

func populatedEngine(t *testing.T) *Engine {
	t.Helper()
	e, _ := newTestEngine(1)
	e.AddEntity("player", social.KindPlayer, social.Position{X: 1, Y: 2}, 10)
	addNPC(e, "a")
	addNPC(e, "b")
	e.UpdateRelationship("a", "b", "helped", 30)
	e.CreateGroup("guild", "trade", 60)
	e.ManageGroupMembership("guild", "a", social.ActionAdd)
	e.ManageGroupMembership("guild", "b", social.ActionAdd)
	e.ManageGroupMembership("guild", "a", social.ActionPromote)
	_, ok := e.CreateRumor("a", "b", "was generous to beggars", 80)
	require.True(t, ok)
	e.CreateInformationUnit("news-1", "news", "harvest is early", 0.2, "a")
	e.CreateChannel("courier", []social.EntityID{"a", "b"}, 0.8, 0.05)
	return e
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	e := populatedEngine(t)
	snap := e.Snapshot()

	require.Len(t, snap.Entities, 3)
	require.NotEmpty(t, snap.Relationships)
	require.Len(t, snap.Groups, 1)
	require.Len(t, snap.Reputations, 3)
	require.NotEmpty(t, snap.Rumors)
	require.Len(t, snap.Units, 1)
	require.Len(t, snap.Channels, 1)

	strengthBefore := snap.Relationships[0].Strength
	knownBefore := len(snap.Rumors[0].KnownBy)

	// Mutating the live engine must not reach into the snapshot.
	e.UpdateRelationship(snap.Relationships[0].Source, snap.Relationships[0].Target, "betrayed", -50)
	e.ManageGroupMembership("guild", "b", social.ActionRemove)
	for _, r := range e.rumors {
		r.AddKnower("player")
	}

	assert.Equal(t, strengthBefore, snap.Relationships[0].Strength)
	assert.Equal(t, knownBefore, len(snap.Rumors[0].KnownBy))
	assert.True(t, snap.Groups[0].IsMember("b"))
}

func TestRestoreRoundTrip(t *testing.T) {
	e := populatedEngine(t)
	for i := 0; i < 10; i++ {
		e.Tick()
	}
	snap := e.Snapshot()

	fresh, _ := newTestEngine(2)
	fresh.Restore(snap)

	assert.Equal(t, e.CurrentTick(), fresh.CurrentTick())
	assert.Equal(t, e.EntityCount(), fresh.EntityCount())

	want, ok := e.Relationship("a", "b")
	require.True(t, ok)
	got, ok := fresh.Relationship("a", "b")
	require.True(t, ok)
	assert.Equal(t, want.Strength, got.Strength)
	assert.Equal(t, want.Trust, got.Trust)
	assert.Equal(t, want.History, got.History)

	wantGroup, _ := e.Group("guild")
	gotGroup, ok := fresh.Group("guild")
	require.True(t, ok)
	assert.Equal(t, wantGroup.Cohesion, gotGroup.Cohesion)
	assert.True(t, gotGroup.IsLeader("a"))

	wantRep, _ := e.Reputation("b", reputation.Global())
	gotRep, ok := fresh.Reputation("b", reputation.Global())
	require.True(t, ok)
	assert.Equal(t, wantRep.Global, gotRep.Global)

	assert.Equal(t, len(e.Rumors()), len(fresh.Rumors()))
	k, ok := fresh.Knowledge("a", "news-1")
	require.True(t, ok)
	assert.Equal(t, 1.0, k.Accuracy)

	// A restored engine keeps simulating.
	fresh.Tick()
	assert.Equal(t, e.CurrentTick()+1, fresh.CurrentTick())
}
