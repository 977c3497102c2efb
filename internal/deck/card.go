package deck

import "github.com/ChinmayNoob/laughtale/internal/board"

// Card is a narrative unit drawn when the token lands in its location.
// FinalOutcome is only set once a probabilistic or choice effect resolves. It
// holds every effect applied at that point, the card's own immediates first.
type Card struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Location     board.Location `json:"location"`
	Effects      []Effect       `json:"effects"`
	FinalOutcome []Immediate    `json:"final_outcome,omitempty"`
}

// Kind is how a card's effects get resolved.
type Kind int

const (
	KindImmediate Kind = iota
	KindProbabilistic
	KindChoice
)

func (k Kind) String() string {
	switch k {
	case KindProbabilistic:
		return "probability"
	case KindChoice:
		return "choice"
	default:
		return "immediate"
	}
}

// Classify reports how c resolves. A probabilistic effect takes precedence over
// a choice; cards with neither (including empty cards) are immediate.
func Classify(c Card) Kind {
	kind := KindImmediate
	for _, e := range c.Effects {
		switch e.(type) {
		case Probabilistic:
			return KindProbabilistic
		case Choice:
			kind = KindChoice
		case Immediate:
		}
	}
	return kind
}

func ImmediateEffects(c Card) []Immediate {
	out := []Immediate{}
	for _, e := range c.Effects {
		switch v := e.(type) {
		case Immediate:
			out = append(out, v)
		case Probabilistic, Choice:
		}
	}
	return out
}

func FirstProbabilistic(c Card) (Probabilistic, bool) {
	for _, e := range c.Effects {
		if p, ok := e.(Probabilistic); ok {
			return p, true
		}
	}
	return Probabilistic{}, false
}

func FirstChoice(c Card) (Choice, bool) {
	for _, e := range c.Effects {
		if ch, ok := e.(Choice); ok {
			return ch, true
		}
	}
	return Choice{}, false
}

// CardsFor filters cards down to loc, keeping their order.
func CardsFor(cards []Card, loc board.Location) []Card {
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		if c.Location == loc {
			out = append(out, c)
		}
	}
	return out
}
