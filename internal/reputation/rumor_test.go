package reputation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/talgya/social-fabric/internal/social"
)

func TestNewRumor(t *testing.T) {
	r := NewRumor("b", "seen being generous", 75, "a")

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, 100.0, r.Relevance)
	assert.Equal(t, []social.EntityID{"a"}, r.KnownBy)
	assert.True(t, r.Knows("a"))
	assert.False(t, r.Knows("b"))
}

func TestAddKnowerIdempotent(t *testing.T) {
	r := NewRumor("b", "gossip", 50, "a")

	assert.True(t, r.AddKnower("c"))
	assert.False(t, r.AddKnower("c"))
	assert.Equal(t, []social.EntityID{"a", "c"}, r.KnownBy)
}

func TestImpactSign(t *testing.T) {
	negative := NewRumor("b", "gossip", 30, "a")
	assert.InDelta(t, -4.0, negative.Impact(), 1e-9) // ((0.3*2)-1)*10 at full relevance

	positive := NewRumor("b", "gossip", 80, "a")
	assert.InDelta(t, 6.0, positive.Impact(), 1e-9)

	positive.Relevance = 50
	assert.InDelta(t, 3.0, positive.Impact(), 1e-9, "relevance scales impact")
}

func TestMutateProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		truth := rapid.Float64Range(0, 100).Draw(rt, "truth")
		relevance := rapid.Float64Range(0, 100).Draw(rt, "relevance")
		loss := rapid.Float64Range(10, 30).Draw(rt, "loss")

		parent := NewRumor("b", "gossip", truth, "a")
		parent.Relevance = relevance
		child := parent.Mutate("c", loss)

		if child.ID == parent.ID {
			rt.Fatal("child must have an independent id")
		}
		wantTruth := truth - loss
		if wantTruth < 0 {
			wantTruth = 0
		}
		if child.Truth != wantTruth {
			rt.Fatalf("child truth %f, want %f", child.Truth, wantTruth)
		}
		if child.Relevance != 0.8*relevance {
			rt.Fatalf("child relevance %f, want %f", child.Relevance, 0.8*relevance)
		}
		if len(child.KnownBy) != 1 || child.KnownBy[0] != social.EntityID("c") {
			rt.Fatalf("child known by %v, want [c]", child.KnownBy)
		}
		if parent.Knows("c") {
			rt.Fatal("mutation must not touch the parent's knowers")
		}
	})
}
