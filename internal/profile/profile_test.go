package profile

import (
	"math/rand"
	"testing"

	"github.com/ChinmayNoob/laughtale/internal/board"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfiles(t *testing.T) {
	ps := Profiles()
	require.Len(t, ps, 4)

	want := map[board.Location]float64{
		board.Rookie:    80,
		board.Supernova: 100,
		board.Warlord:   120,
		board.Emperor:   150,
	}
	for _, p := range ps {
		assert.Equal(t, want[p.PirateType], p.InitialBerries, p.ID)
		assert.Equal(t, board.StartingPosition(p.PirateType), p.Start, p.ID)
		assert.Equal(t, board.HomeIsland(p.PirateType), p.Island, p.ID)
	}

	ps[0].Name = "changed"
	assert.NotEqual(t, "changed", Profiles()[0].Name)
}

func TestProfileFor(t *testing.T) {
	p, ok := ProfileFor(board.Emperor)
	require.True(t, ok)
	assert.Equal(t, "Kaido", p.Name)
	assert.Equal(t, board.WanoTile, p.Start)

	_, ok = ProfileFor(board.Egghead)
	assert.False(t, ok)
}

func TestSpawn(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	seen := map[string]int{}
	for i := 0; i < 400; i++ {
		seen[Spawn(rng).ID]++
	}
	assert.Len(t, seen, 4, "every profile is reachable")
	for id, n := range seen {
		assert.Greater(t, n, 50, id)
	}
}

func TestSpawners(t *testing.T) {
	assert.Equal(t, board.Warlord, FixedSpawner{PirateType: board.Warlord}.Spawn().PirateType)
	assert.Equal(t, board.Rookie, FixedSpawner{PirateType: "marine"}.Spawn().PirateType)

	s := RandomSpawner{Rand: rand.New(rand.NewSource(1))}
	_, ok := ProfileFor(s.Spawn().PirateType)
	assert.True(t, ok)
}
