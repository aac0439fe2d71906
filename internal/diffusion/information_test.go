package diffusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/social-fabric/internal/social"
)

func TestNewUnitClampsSensitivity(t *testing.T) {
	u := NewUnit("secret-1", "secret", "the well is poisoned", 1.7, "a", 3)
	assert.Equal(t, 1.0, u.Sensitivity)

	k := u.Knowledge["a"]
	require.NotNil(t, k, "originator knows the unit fully")
	assert.Equal(t, 1.0, k.Accuracy)
	assert.Equal(t, 1.0, k.Detail)
	assert.Equal(t, uint64(3), k.AcquiredTick)

	assert.Equal(t, 0.0, NewUnit("x", "news", "c", -0.2, "a", 0).Sensitivity)
}

func TestKnowersSorted(t *testing.T) {
	u := NewUnit("news-1", "news", "c", 0, "c", 0)
	u.Knowledge["a"] = &Knowledge{Accuracy: 0.9}
	u.Knowledge["b"] = &Knowledge{Accuracy: 0.8}

	assert.Equal(t, []social.EntityID{"a", "b", "c"}, u.Knowers())
}

func TestUnitCloneIsDeep(t *testing.T) {
	u := NewUnit("news-1", "news", "c", 0, "a", 0)
	c := u.Clone()

	c.Knowledge["a"].Accuracy = 0.1
	assert.Equal(t, 1.0, u.Knowledge["a"].Accuracy)
}

func TestDirectChannel(t *testing.T) {
	c := NewDirectChannel("a", "b")

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, DirectChannelType, c.Type)
	assert.Equal(t, DirectChannelBandwidth, c.Bandwidth)
	assert.Equal(t, DirectChannelNoise, c.Noise)
	assert.True(t, c.Includes("a"))
	assert.True(t, c.Includes("b"))
	assert.False(t, c.Includes("c"))
}
