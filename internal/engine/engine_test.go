package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/social-fabric/internal/entropy"
	"github.com/talgya/social-fabric/internal/events"
	"github.com/talgya/social-fabric/internal/social"
)

func TestAddEntityDuplicateIsNoOp(t *testing.T) {
	e, _ := newTestEngine(1)
	e.AddEntity("a", social.KindNPC, social.Position{}, 5)
	e.AddEntity("a", social.KindNPC, social.Position{}, 99)

	assert.Equal(t, 1, e.EntityCount())
	ent, ok := e.Entity("a")
	require.True(t, ok)
	assert.Equal(t, 5.0, ent.Influence, "first registration wins")
}

func TestRecentEventsRing(t *testing.T) {
	cfg := quietConfig()
	cfg.MaxRecentEvents = 5
	e := New(cfg, entropy.NewSource(1), nil)
	addNPC(e, "a")
	addNPC(e, "b")

	for i := 0; i < 8; i++ {
		e.UpdateRelationship("a", "b", fmt.Sprintf("chat-%d", i), 1)
	}

	recent := e.RecentEvents(0)
	require.Len(t, recent, 5, "ring holds only the newest events")
	newest := recent[len(recent)-1].Payload.(events.RelationshipChanged)
	assert.Equal(t, "chat-7", newest.Label)

	two := e.RecentEvents(2)
	require.Len(t, two, 2)
	assert.Equal(t, "chat-6", two[0].Payload.(events.RelationshipChanged).Label)
}

func TestNilPublisherIsSafe(t *testing.T) {
	e := New(quietConfig(), nil, nil)
	addNPC(e, "a")
	addNPC(e, "b")

	_, ok := e.UpdateRelationship("a", "b", "helped", 10)
	assert.True(t, ok)
	assert.Len(t, e.RecentEvents(0), 1, "events are still retained without a publisher")
}
