package deck

import (
	"testing"

	"github.com/ChinmayNoob/laughtale/internal/board"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	cards := Catalog()
	require.Len(t, cards, 55)

	t.Run("ids are unique", func(t *testing.T) {
		seen := map[string]bool{}
		for _, c := range cards {
			assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
			seen[c.ID] = true
		}
	})

	t.Run("every card has a known location and effects", func(t *testing.T) {
		for _, c := range cards {
			assert.Contains(t, board.Locations(), c.Location, c.ID)
			assert.NotEmpty(t, c.Effects, c.ID)
			assert.NotEmpty(t, c.Title, c.ID)
		}
	})

	t.Run("location counts", func(t *testing.T) {
		counts := map[board.Location]int{}
		for _, c := range cards {
			counts[c.Location]++
		}
		assert.Equal(t, 21, counts[board.Emperor])
		assert.Equal(t, 11, counts[board.Supernova])
		assert.Equal(t, 9, counts[board.Warlord])
		assert.Equal(t, 11, counts[board.Rookie])
		assert.Equal(t, 1, counts[board.Egghead])
		assert.Equal(t, 1, counts[board.Skypiea])
		assert.Equal(t, 1, counts[board.Onigashima])
	})

	t.Run("action location cards are choices with a decline option", func(t *testing.T) {
		for _, loc := range board.ActionLocations() {
			locCards := CardsFor(cards, loc)
			require.Len(t, locCards, 1)
			ch, ok := FirstChoice(locCards[0])
			require.True(t, ok)
			require.Len(t, ch.Options, 2)
			assert.Empty(t, ch.Options[0].Effects)
			assert.NotEmpty(t, ch.Options[1].Effects)
		}
	})

	t.Run("returns a fresh slice", func(t *testing.T) {
		a := Catalog()
		a[0].ID = "mutated"
		assert.NotEqual(t, "mutated", Catalog()[0].ID)
	})
}

func TestCatalog_Cards(t *testing.T) {
	byID := map[string]Card{}
	for _, c := range Catalog() {
		byID[c.ID] = c
	}

	t.Run("immediate", func(t *testing.T) {
		c := byID["sup-n-1"]
		assert.Equal(t, KindImmediate, Classify(c))
		assert.Equal(t, []Immediate{
			{Currency: Berries, Magnitude: -20},
			{Currency: Poneglyph, Magnitude: -2},
		}, ImmediateEffects(c))
	})

	t.Run("fractional magnitude", func(t *testing.T) {
		assert.Equal(t, []Immediate{{Currency: Poneglyph, Magnitude: 0.25}}, ImmediateEffects(byID["war-p-3"]))
	})

	t.Run("threshold roll", func(t *testing.T) {
		c := byID["emp-n-4"]
		require.Equal(t, KindProbabilistic, Classify(c))
		p, ok := FirstProbabilistic(c)
		require.True(t, ok)
		for roll := 1; roll <= 3; roll++ {
			assert.Equal(t, []Immediate{{Currency: Berries, Magnitude: -20}}, ResolveProbabilistic(p, roll))
		}
		for roll := 4; roll <= 6; roll++ {
			assert.Equal(t, []Immediate{{Currency: Berries, Magnitude: -10}}, ResolveProbabilistic(p, roll))
		}
	})

	t.Run("threshold roll with empty branch", func(t *testing.T) {
		p, ok := FirstProbabilistic(byID["emp-n-9"])
		require.True(t, ok)
		assert.Empty(t, ResolveProbabilistic(p, 3))
		fail := ResolveProbabilistic(p, 2)
		require.Len(t, fail, 1)
		assert.Equal(t, Berries, fail[0].Currency)
		assert.Equal(t, -2.0, fail[0].Magnitude)
		assert.NotEmpty(t, fail[0].Note)
	})
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "cards: [\n"},
		{"missing id", "cards:\n  - title: x\n    location: rookie\n    effects: [{berries: 1}]\n"},
		{"duplicate id", "cards:\n  - id: a\n    location: rookie\n    effects: [{berries: 1}]\n  - id: a\n    location: rookie\n    effects: [{berries: 1}]\n"},
		{"unknown location", "cards:\n  - id: a\n    location: impeldown\n    effects: [{berries: 1}]\n"},
		{"two currencies", "cards:\n  - id: a\n    location: rookie\n    effects: [{berries: 1, poneglyph: 1}]\n"},
		{"empty effect", "cards:\n  - id: a\n    location: rookie\n    effects: [{note: hi}]\n"},
		{"threshold out of range", "cards:\n  - id: a\n    location: rookie\n    effects:\n      - probability: {threshold: 7, pass: [], fail: []}\n"},
		{"nested probability", "cards:\n  - id: a\n    location: rookie\n    effects:\n      - choice:\n          - label: x\n            effects:\n              - probability: {threshold: 3}\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tc.yaml))
			require.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}
