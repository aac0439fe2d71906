package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/social-fabric/internal/diffusion"
	"github.com/talgya/social-fabric/internal/entropy"
	"github.com/talgya/social-fabric/internal/events"
	"github.com/talgya/social-fabric/internal/social"
)

func TestCreateInformationUnit(t *testing.T) {
	e, _ := newTestEngine(1)
	addNPC(e, "a")

	u, ok := e.CreateInformationUnit("secret-1", "secret", "the well is poisoned", 0.8, "a")
	require.True(t, ok)
	assert.Equal(t, 0.8, u.Sensitivity)

	k, ok := e.Knowledge("a", "secret-1")
	require.True(t, ok, "originator has perfect knowledge")
	assert.Equal(t, 1.0, k.Accuracy)
	assert.Equal(t, 1.0, k.Detail)

	_, ok = e.CreateInformationUnit("secret-1", "secret", "other", 0, "a")
	assert.False(t, ok, "duplicate unit id rejected")
	_, ok = e.CreateInformationUnit("secret-2", "secret", "x", 0, "ghost")
	assert.False(t, ok, "unknown originator rejected")
}

func TestShareInformationRejections(t *testing.T) {
	e, _ := newTestEngine(1)
	addNPC(e, "a")
	addNPC(e, "b")
	addNPC(e, "c")
	e.CreateInformationUnit("news-1", "news", "harvest is early", 0, "a")

	assert.False(t, e.ShareInformation("a", "b", "missing", ""))
	assert.False(t, e.ShareInformation("b", "c", "news-1", ""), "sender must know the unit")
}

func TestShareBetweenStrangersDegradesAccuracy(t *testing.T) {
	e, rec := newTestEngine(1)
	addNPC(e, "a")
	addNPC(e, "b")
	e.CreateInformationUnit("news-1", "news", "harvest is early", 0, "a")

	require.True(t, e.ShareInformation("a", "b", "news-1", ""))

	k, ok := e.Knowledge("b", "news-1")
	require.True(t, ok)
	// Direct channel noise 0.1, stranger trust factor 0.5:
	// accuracy 1*(1 - 0.1*0.5), detail 1*(1 - 0.1*0.5).
	assert.InDelta(t, 0.95, k.Accuracy, 1e-9)
	assert.InDelta(t, 0.95, k.Detail, 1e-9)

	shared := rec.OfKind(events.KindInformationShared)
	require.Len(t, shared, 1)
	assert.Equal(t, diffusion.DirectChannelType, shared[0].Payload.(events.InformationShared).ChannelType)
}

func TestShareUsesRelationshipTrust(t *testing.T) {
	e, _ := newTestEngine(1)
	addNPC(e, "a")
	addNPC(e, "b")
	e.UpdateRelationship("a", "b", "helped", 100) // trust 20 + 50 = 70
	e.CreateInformationUnit("news-1", "news", "harvest is early", 0, "a")

	require.True(t, e.ShareInformation("a", "b", "news-1", ""))

	k, _ := e.Knowledge("b", "news-1")
	// accuracy degradation = noise 0.1 * (1 - 0.7) = 0.03
	assert.InDelta(t, 0.97, k.Accuracy, 1e-9)
	assert.InDelta(t, 0.95, k.Detail, 1e-9, "detail ignores trust")
}

func TestShareIsUpgradeOnly(t *testing.T) {
	e, _ := newTestEngine(1)
	addNPC(e, "a")
	addNPC(e, "b")
	e.CreateInformationUnit("news-1", "news", "harvest is early", 0, "a")
	require.True(t, e.ShareInformation("a", "b", "news-1", ""))

	first, _ := e.Knowledge("b", "news-1")

	// A second retelling from a weaker knower cannot erode b's knowledge.
	require.True(t, e.ShareInformation("b", "a", "news-1", ""))
	after, _ := e.Knowledge("a", "news-1")
	assert.Equal(t, 1.0, after.Accuracy, "originator keeps perfect knowledge")

	// A better-informed sender over a trusted edge pulls the receiver
	// upward: trust 100 makes the retelling lossless, so the blend lands
	// between b's current knowledge and a's perfect copy.
	e.UpdateRelationship("a", "b", "helped", 200)
	require.True(t, e.ShareInformation("a", "b", "news-1", ""))
	second, _ := e.Knowledge("b", "news-1")
	assert.InDelta(t, 0.985, second.Accuracy, 1e-9) // lerp(0.95, 1.0, 0.7)
	assert.Greater(t, second.Accuracy, first.Accuracy)
}

func TestShareOverRegisteredChannel(t *testing.T) {
	e, rec := newTestEngine(1)
	addNPC(e, "a")
	addNPC(e, "b")
	e.CreateChannel("courier", []social.EntityID{"a", "b"}, 0.8, 0)
	e.CreateInformationUnit("news-1", "news", "harvest is early", 0, "a")

	require.True(t, e.ShareInformation("a", "b", "news-1", "courier"))

	k, _ := e.Knowledge("b", "news-1")
	assert.Equal(t, 1.0, k.Accuracy, "noiseless channel transfers losslessly")

	shared := rec.OfKind(events.KindInformationShared)
	require.Len(t, shared, 1)
	assert.Equal(t, "courier", shared[0].Payload.(events.InformationShared).ChannelType)
}

func TestSharingBondsParticipants(t *testing.T) {
	e, _ := newTestEngine(1)
	addNPC(e, "a")
	addNPC(e, "b")
	e.CreateInformationUnit("secret-1", "secret", "the well is poisoned", 0.8, "a")

	require.True(t, e.ShareInformation("a", "b", "secret-1", ""))

	rel, ok := e.Relationship("a", "b")
	require.True(t, ok)
	assert.InDelta(t, 4.0, rel.Strength, 1e-9) // 5 * sensitivity 0.8
}

func TestAutonomousDiffusionReachesFriends(t *testing.T) {
	cfg := quietConfig()
	cfg.DiffusionChance = 1
	e := New(cfg, entropy.NewSource(11), nil)
	addNPC(e, "a")
	addNPC(e, "b")
	e.UpdateRelationship("a", "b", "trusted_friend", 160) // strength 100, trust 100
	e.CreateInformationUnit("news-1", "news", "harvest is early", 0, "a")

	for i := 0; i < 50; i++ {
		e.Tick()
		if _, ok := e.Knowledge("b", "news-1"); ok {
			return
		}
	}
	t.Fatal("information never diffused along a maxed-out relationship")
}

func TestAutonomousDiffusionSkipsHostileEdges(t *testing.T) {
	cfg := quietConfig()
	cfg.DiffusionChance = 1
	e := New(cfg, entropy.NewSource(5), nil)
	addNPC(e, "a")
	addNPC(e, "b")
	e.UpdateRelationship("a", "b", "feud", -40)
	e.CreateInformationUnit("secret-1", "secret", "the well is poisoned", 1, "a")

	for i := 0; i < 50; i++ {
		e.Tick()
	}
	_, ok := e.Knowledge("b", "secret-1")
	assert.False(t, ok, "negative-strength edges carry nothing")
}
