// Package profile holds the pirate archetypes a new game can spawn as.
package profile

import (
	"github.com/ChinmayNoob/laughtale/internal/board"
)

// Profile is an immutable spawn archetype.
type Profile struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	PirateType     board.Location `json:"pirate_type"`
	Island         board.TileType `json:"island"`
	InitialBerries float64        `json:"initial_berries"`
	Description    string         `json:"description"`
	Start          board.Position `json:"start"`
}

var profiles = []Profile{
	{
		ID:             "rookie",
		Name:           "Monkey D. Luffy",
		PirateType:     board.Rookie,
		Island:         board.TileAmazonLily,
		InitialBerries: 80,
		Description:    "A new pirate setting out to sea with the dream of becoming Pirate King.",
	},
	{
		ID:             "supernova",
		Name:           "Trafalgar Law",
		PirateType:     board.Supernova,
		Island:         board.TileWaterSeven,
		InitialBerries: 100,
		Description:    "A surgeon captain who keeps his crew alive and plans every battle ahead.",
	},
	{
		ID:             "warlord",
		Name:           "Gol.D.Buggy",
		PirateType:     board.Warlord,
		Island:         board.TileWholeCake,
		InitialBerries: 120,
		Description:    "A warlord whose luck carries him further than his strength ever could.",
	},
	{
		ID:             "emperor",
		Name:           "Kaido",
		PirateType:     board.Emperor,
		Island:         board.TileWano,
		InitialBerries: 150,
		Description:    "An emperor of the sea, feared as the strongest creature alive.",
	},
}

func init() {
	for i := range profiles {
		profiles[i].Start = board.StartingPosition(profiles[i].PirateType)
	}
}

// Profiles returns a copy of the catalog.
func Profiles() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}

// ProfileFor looks a profile up by pirate type.
func ProfileFor(pirateType board.Location) (Profile, bool) {
	for _, p := range profiles {
		if p.PirateType == pirateType {
			return p, true
		}
	}
	return Profile{}, false
}

// Rand is the part of *math/rand.Rand spawning needs.
type Rand interface {
	Intn(n int) int
}

// Spawn picks a profile uniformly at random.
func Spawn(rng Rand) Profile {
	return profiles[rng.Intn(len(profiles))]
}

// Spawner chooses the profile of each new game.
type Spawner interface {
	Spawn() Profile
}

// RandomSpawner spawns uniformly from the catalog.
type RandomSpawner struct {
	Rand Rand
}

func (s RandomSpawner) Spawn() Profile { return Spawn(s.Rand) }

// FixedSpawner always spawns the same pirate type. Unknown types spawn as rookie.
type FixedSpawner struct {
	PirateType board.Location
}

func (s FixedSpawner) Spawn() Profile {
	if p, ok := ProfileFor(s.PirateType); ok {
		return p
	}
	return profiles[0]
}
