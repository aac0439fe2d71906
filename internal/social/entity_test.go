package social

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryAdd(t *testing.T) {
	r := NewRegistry()

	assert.True(t, r.Add(&Entity{ID: "a", Kind: KindNPC, Influence: 5}))
	assert.False(t, r.Add(&Entity{ID: "a", Kind: KindNPC}), "duplicate id rejected")
	assert.Equal(t, 1, r.Len())

	got, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, 5.0, got.Influence)
	assert.True(t, r.Has("a"))
	assert.False(t, r.Has("b"))
}

func TestRegistryClampsNegativeInfluence(t *testing.T) {
	r := NewRegistry()
	require.True(t, r.Add(&Entity{ID: "a", Kind: KindNPC, Influence: -3}))

	got, _ := r.Get("a")
	assert.Equal(t, 0.0, got.Influence)
}

func TestRegistryOrderAndNPCs(t *testing.T) {
	r := NewRegistry()
	r.Add(&Entity{ID: "p", Kind: KindPlayer})
	r.Add(&Entity{ID: "n1", Kind: KindNPC})
	r.Add(&Entity{ID: "n2", Kind: KindNPC})

	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, EntityID("p"), all[0].ID, "insertion order preserved")

	npcs := r.NPCs()
	require.Len(t, npcs, 2)
	for _, e := range npcs {
		assert.Equal(t, KindNPC, e.Kind)
	}
}
