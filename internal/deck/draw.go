package deck

import (
	"slices"

	"github.com/ChinmayNoob/laughtale/internal/board"
)

// Rand is the part of *math/rand.Rand the draw needs.
type Rand interface {
	Intn(n int) int
}

// NewDeck returns a full deck for a new session.
func NewDeck() []Card {
	return Catalog()
}

// Draw picks a random card for loc. When the deck has no card left for loc, the
// catalog's cards for that location are appended first; other locations are
// never topped up. Cards of action locations stay in the deck, every other card
// is removed by id. An empty deck draws nothing.
func Draw(deck []Card, loc board.Location, rng Rand) (*Card, []Card) {
	if len(deck) == 0 {
		return nil, []Card{}
	}

	candidates := CardsFor(deck, loc)
	if len(candidates) == 0 {
		deck = append(slices.Clip(deck), CardsFor(Catalog(), loc)...)
		candidates = CardsFor(deck, loc)
		if len(candidates) == 0 {
			return nil, deck
		}
	}

	card := candidates[rng.Intn(len(candidates))]
	if board.IsActionLocation(card.Location) {
		return &card, deck
	}

	remaining := make([]Card, 0, len(deck))
	for _, c := range deck {
		if c.ID != card.ID {
			remaining = append(remaining, c)
		}
	}
	return &card, remaining
}
