package deck

import (
	"math/rand"
	"testing"

	"github.com/ChinmayNoob/laughtale/internal/board"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// firstRand always picks index 0.
type firstRand struct{}

func (firstRand) Intn(int) int { return 0 }

func testCard(id string, loc board.Location) Card {
	return Card{
		ID:       id,
		Title:    id,
		Location: loc,
		Effects:  []Effect{Immediate{Currency: Berries, Magnitude: 1}},
	}
}

func ids(cards []Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func TestDraw(t *testing.T) {
	t.Run("removes the drawn card", func(t *testing.T) {
		deck := []Card{testCard("r1", board.Rookie), testCard("s1", board.Supernova), testCard("r2", board.Rookie)}
		card, next := Draw(deck, board.Rookie, firstRand{})
		require.NotNil(t, card)
		assert.Equal(t, "r1", card.ID)
		assert.Equal(t, []string{"s1", "r2"}, ids(next))
		assert.Len(t, deck, 3, "input deck is not modified")
	})

	t.Run("never draws from another location", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		deck := NewDeck()
		for i := 0; i < 100; i++ {
			var card *Card
			card, deck = Draw(deck, board.Warlord, rng)
			require.NotNil(t, card)
			require.Equal(t, board.Warlord, card.Location)
		}
	})

	t.Run("replenishes the exhausted location only", func(t *testing.T) {
		deck := []Card{testCard("s1", board.Supernova)}
		card, next := Draw(deck, board.Rookie, firstRand{})
		require.NotNil(t, card)
		assert.Equal(t, board.Rookie, card.Location)

		rookie := CardsFor(Catalog(), board.Rookie)
		assert.Len(t, next, 1+len(rookie)-1)
		assert.Equal(t, "s1", next[0].ID)
		assert.Empty(t, CardsFor(next, board.Emperor))
		assert.NotContains(t, ids(next), card.ID)
	})

	t.Run("action location cards stay in the deck", func(t *testing.T) {
		deck := NewDeck()
		for i := 0; i < 5; i++ {
			card, next := Draw(deck, board.Egghead, firstRand{})
			require.NotNil(t, card)
			assert.Equal(t, "loc-egg-1", card.ID)
			assert.Len(t, next, len(deck))
			deck = next
		}
	})

	t.Run("empty deck draws nothing", func(t *testing.T) {
		card, next := Draw(nil, board.Rookie, firstRand{})
		assert.Nil(t, card)
		assert.NotNil(t, next)
		assert.Empty(t, next)
	})

	t.Run("draining a location cycles through the catalog", func(t *testing.T) {
		deck := NewDeck()
		rookie := len(CardsFor(deck, board.Rookie))
		seen := map[string]bool{}
		for i := 0; i < rookie; i++ {
			var card *Card
			card, deck = Draw(deck, board.Rookie, firstRand{})
			require.NotNil(t, card)
			seen[card.ID] = true
		}
		assert.Len(t, seen, rookie)
		assert.Empty(t, CardsFor(deck, board.Rookie))

		card, deck := Draw(deck, board.Rookie, firstRand{})
		require.NotNil(t, card)
		assert.Len(t, CardsFor(deck, board.Rookie), rookie-1)
	})
}
