package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPosition(t *testing.T) {
	tests := []struct {
		name     string
		current  Position
		dir      Direction
		distance int
		want     Position
	}{
		{"forward", 0, Forward, 3, 3},
		{"forward wraps", 22, Forward, 5, 3},
		{"backward wraps", 1, Backward, 3, 22},
		{"full lap", 0, Forward, Size, 0},
		{"several laps backward", 5, Backward, 3*Size + 2, 3},
		{"zero distance", 7, Backward, 0, 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextPosition(tc.current, tc.dir, tc.distance, Size))
		})
	}
}

func TestNextPosition_IncrementalMatchesBatched(t *testing.T) {
	for p := 0; p < Size; p++ {
		for k := 1; k <= 2*Size; k++ {
			batched := NextPosition(Position(p), Forward, k, Size)
			stepped := NextPosition(NextPosition(Position(p), Forward, k-1, Size), Forward, 1, Size)
			require.Equal(t, batched, stepped, "p=%d k=%d", p, k)
			require.Equal(t, LocationOf(batched), LocationOf(stepped))
		}
	}
}

func TestLocationOf_TotalAndExclusive(t *testing.T) {
	known := map[Location]bool{}
	for _, l := range Locations() {
		known[l] = true
	}
	require.Len(t, known, 7)

	counts := map[Location]int{}
	for p := 0; p < Size; p++ {
		loc := LocationOf(Position(p))
		require.True(t, known[loc], "position %d mapped to unknown location %q", p, loc)
		counts[loc]++
	}

	assert.Equal(t, 1, counts[Egghead])
	assert.Equal(t, 1, counts[Skypiea])
	assert.Equal(t, 1, counts[Onigashima])
	assert.Equal(t, 6, counts[Rookie])
	assert.Equal(t, 5, counts[Supernova])
	assert.Equal(t, 5, counts[Emperor])
	assert.Equal(t, 5, counts[Warlord])
}

func TestLocationOf_ActionTiles(t *testing.T) {
	assert.Equal(t, Egghead, LocationOf(3))
	assert.Equal(t, Skypiea, LocationOf(9))
	assert.Equal(t, Onigashima, LocationOf(15))

	assert.Equal(t, Rookie, LocationOf(21))
	assert.Equal(t, Rookie, LocationOf(2))
	assert.Equal(t, Supernova, LocationOf(4))
	assert.Equal(t, Emperor, LocationOf(14))
	assert.Equal(t, Warlord, LocationOf(20))
	assert.Equal(t, Rookie, LocationOf(Size+1), "out-of-ring positions are normalised")
}

func TestStartingPosition(t *testing.T) {
	assert.Equal(t, Position(0), StartingPosition(Rookie))
	assert.Equal(t, Position(6), StartingPosition(Supernova))
	assert.Equal(t, Position(12), StartingPosition(Emperor))
	assert.Equal(t, Position(18), StartingPosition(Warlord))
	assert.Equal(t, Position(0), StartingPosition(Egghead))

	for _, pt := range SpawnRegions() {
		assert.Equal(t, pt, LocationOf(StartingPosition(pt)), "home tile of %s lies in its own region", pt)
	}
}

func TestTiles(t *testing.T) {
	tiles := Tiles()
	require.Len(t, tiles, Size)

	assert.Equal(t, TileAmazonLily, tiles[0].Type)
	assert.Equal(t, TileLarge, tiles[0].Size)
	assert.Equal(t, TileEgghead, tiles[3].Type)
	assert.Equal(t, TileSmall, tiles[3].Size)
	assert.Equal(t, TileWholeCake, tiles[18].Type)
	assert.Equal(t, TileRegular, tiles[1].Type)

	stops := 0
	for _, tile := range tiles {
		if tile.JollyRoger {
			stops++
		}
	}
	assert.Equal(t, len(JollyRogerStops), stops)
	assert.Equal(t, TileWano, HomeIsland(Emperor))
}

func TestClassification(t *testing.T) {
	for _, l := range SpawnRegions() {
		assert.True(t, IsSpawnRegion(l))
		assert.False(t, IsActionLocation(l))
	}
	for _, l := range ActionLocations() {
		assert.True(t, IsActionLocation(l))
		assert.False(t, IsSpawnRegion(l))
	}
	assert.True(t, Forward.Valid())
	assert.False(t, Direction(0).Valid())
	assert.True(t, IsJollyRogerStop(16))
	assert.False(t, IsJollyRogerStop(17))
}
