package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/social-fabric/internal/reputation"
	"github.com/talgya/social-fabric/internal/social"
)

func TestReputationUnknownLookups(t *testing.T) {
	e, _ := newTestEngine(1)
	addNPC(e, "s")

	_, ok := e.Reputation("ghost", reputation.Global())
	assert.False(t, ok)
	_, ok = e.Reputation("s", reputation.FromGroup("nope"))
	assert.False(t, ok, "unknown group perspective fails")
}

func TestReputationGroupPerspective(t *testing.T) {
	e, _ := newTestEngine(1)
	addNPC(e, "s")
	addNPC(e, "m1")
	addNPC(e, "m2")
	addNPC(e, "outsider")
	e.CreateGroup("guild", "trade", 50)
	e.ManageGroupMembership("guild", "m1", social.ActionAdd)
	e.ManageGroupMembership("guild", "m2", social.ActionAdd)

	rec := e.reputations["s"]
	rec.Traits[reputation.TraitHonesty] = &reputation.Score{
		Value: 60, Confidence: 50, Sources: []social.EntityID{"m1"},
	}
	rec.Traits[reputation.TraitGenerosity] = &reputation.Score{
		Value: -20, Confidence: 50, Sources: []social.EntityID{"outsider"},
	}
	rec.Recompute(e.groups.All())

	view, ok := e.Reputation("s", reputation.FromGroup("guild"))
	require.True(t, ok)
	assert.Equal(t, 60.0, view.Global, "group view substitutes the group-derived score")
	assert.Contains(t, view.Traits, reputation.TraitHonesty)
	assert.NotContains(t, view.Traits, reputation.TraitGenerosity,
		"traits without a source in the group are hidden")

	// The filtered view must not leak back into the stored record.
	full, _ := e.Reputation("s", reputation.Global())
	assert.Contains(t, full.Traits, reputation.TraitGenerosity)
}

func TestReputationEntityPerspectiveScales(t *testing.T) {
	e, _ := newTestEngine(1)
	addNPC(e, "s")
	addNPC(e, "friend")
	addNPC(e, "stranger")
	e.UpdateRelationship("friend", "s", "helped", 50)

	rec := e.reputations["s"]
	rec.Traits[reputation.TraitGeneral] = &reputation.Score{Value: 40, Confidence: 50}
	rec.Recompute(nil)

	friendView, ok := e.Reputation("s", reputation.FromEntity("friend"))
	require.True(t, ok)
	// Strength 50: scale = 1 + 0.5*0.3 = 1.15.
	assert.InDelta(t, 46.0, friendView.Global, 1e-9)
	assert.InDelta(t, 46.0, friendView.Traits[reputation.TraitGeneral].Value, 1e-9)

	strangerView, ok := e.Reputation("s", reputation.FromEntity("stranger"))
	require.True(t, ok)
	assert.InDelta(t, 40.0, strangerView.Global, 1e-9, "no relationship means no coloring")
}

func TestReputationEntityPerspectiveHostile(t *testing.T) {
	e, _ := newTestEngine(1)
	addNPC(e, "s")
	addNPC(e, "rival")
	e.UpdateRelationship("rival", "s", "betrayed", -100)

	rec := e.reputations["s"]
	rec.Traits[reputation.TraitGeneral] = &reputation.Score{Value: 40, Confidence: 50}
	rec.Recompute(nil)

	view, _ := e.Reputation("s", reputation.FromEntity("rival"))
	// Strength -100: scale = 1 - 0.3 = 0.7.
	assert.InDelta(t, 28.0, view.Global, 1e-9)
}
