// Package worldgen seeds a demo population for the standalone binary.
// Entity placement and social influence come from layered noise so runs
// with the same seed produce the same starting world.
package worldgen

import (
	"fmt"
	"log/slog"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/social-fabric/internal/engine"
	"github.com/talgya/social-fabric/internal/entropy"
	"github.com/talgya/social-fabric/internal/social"
)

// SeedConfig holds demo world parameters.
type SeedConfig struct {
	Seed     int64
	NPCCount int
	Extent   float64 // World half-width; positions land in [-Extent, Extent]
	PlayerID social.EntityID
}

// DefaultSeedConfig returns the standard demo world parameters.
func DefaultSeedConfig(seed int64) SeedConfig {
	return SeedConfig{
		Seed:     seed,
		NPCCount: 40,
		Extent:   100,
		PlayerID: "player",
	}
}

// Seed populates the engine with a player, NPCs, starter groups, and a few
// initial rumors and information units so the simulation has something to
// spread from the first tick.
func Seed(eng *engine.Engine, cfg SeedConfig) {
	rng := entropy.NewSource(cfg.Seed)
	influenceNoise := opensimplex.NewNormalized(cfg.Seed)
	clusterNoise := opensimplex.NewNormalized(cfg.Seed + 1)

	eng.AddEntity(cfg.PlayerID, social.KindPlayer, social.Position{}, 10)

	ids := make([]social.EntityID, 0, cfg.NPCCount)
	for i := 0; i < cfg.NPCCount; i++ {
		pos := social.Position{
			X: rng.Between(-cfg.Extent, cfg.Extent),
			Y: rng.Between(-cfg.Extent, cfg.Extent),
		}
		// Noise fields cluster influence geographically: NPCs from the
		// same area start with similar social weight.
		nx, ny := pos.X/cfg.Extent, pos.Y/cfg.Extent
		influence := influenceNoise.Eval2(nx*2, ny*2) * 50
		if clusterNoise.Eval2(nx*4, ny*4) > 0.7 {
			influence += 20
		}

		id := social.EntityID(fmt.Sprintf("npc-%03d", i+1))
		eng.AddEntity(id, social.KindNPC, pos, influence)
		ids = append(ids, id)
	}

	// Two starter groups with overlapping neighborhoods.
	seedGroup(eng, rng, "market-circle", "trade and gossip", ids)
	seedGroup(eng, rng, "old-guard", "keeping things as they were", ids)

	// A few initial interactions so the graph is not empty.
	for i := 0; i < cfg.NPCCount/2; i++ {
		a := ids[rng.Intn(len(ids))]
		b := ids[rng.Intn(len(ids))]
		if a == b {
			continue
		}
		eng.UpdateRelationship(a, b, "met_at_market", rng.Between(-5, 15))
	}

	// Something to talk about.
	subject := ids[rng.Intn(len(ids))]
	originator := ids[rng.Intn(len(ids))]
	if originator != subject {
		eng.CreateRumor(originator, subject, "seen being generous to strangers", 75)
	}
	eng.CreateInformationUnit("harvest-news", "news", "the harvest will be early this year", 0.2, ids[0])

	slog.Info("demo world seeded",
		"npcs", cfg.NPCCount,
		"groups", 2,
		"seed", cfg.Seed,
	)
}

func seedGroup(eng *engine.Engine, rng *entropy.Source, id social.GroupID, purpose string, ids []social.EntityID) {
	if _, ok := eng.CreateGroup(id, purpose, 50); !ok {
		return
	}
	size := 4 + rng.Intn(5)
	for i := 0; i < size; i++ {
		eng.ManageGroupMembership(id, ids[rng.Intn(len(ids))], social.ActionAdd)
	}
	if g, ok := eng.Group(id); ok && len(g.Members) > 0 {
		eng.ManageGroupMembership(id, g.Members[0], social.ActionPromote)
	}
}
