package deck

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/ChinmayNoob/laughtale/internal/board"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yml
var catalogYAML []byte

var ErrInvalidCatalog = errors.New("invalid card catalog")

type rawCatalog struct {
	Cards []rawCard `yaml:"cards"`
}

type rawCard struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Location    board.Location `yaml:"location"`
	Effects     []rawEffect    `yaml:"effects"`
}

// rawEffect is one list entry in catalog.yml. Exactly one of the currency keys,
// probability or choice is set.
type rawEffect struct {
	Berries     *float64        `yaml:"berries"`
	Poneglyph   *float64        `yaml:"poneglyph"`
	Note        string          `yaml:"note"`
	Probability *rawProbability `yaml:"probability"`
	Choice      []rawOption     `yaml:"choice"`
}

// rawProbability is a threshold rule: rolls at or above Threshold pass.
type rawProbability struct {
	Description string      `yaml:"description"`
	Threshold   int         `yaml:"threshold"`
	Pass        []rawEffect `yaml:"pass"`
	Fail        []rawEffect `yaml:"fail"`
}

type rawOption struct {
	Label   string      `yaml:"label"`
	Effects []rawEffect `yaml:"effects"`
}

var loadCatalog = sync.OnceValues(func() ([]Card, error) {
	return ParseCatalog(catalogYAML)
})

// Catalog returns every card of the game. Each call returns a new slice; the
// cards themselves must be treated as read-only.
func Catalog() []Card {
	cards, err := loadCatalog()
	if err != nil {
		panic(err)
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}

// ParseCatalog decodes a YAML catalog and checks that ids are unique and
// locations known.
func ParseCatalog(data []byte) ([]Card, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	known := map[board.Location]bool{}
	for _, l := range board.Locations() {
		known[l] = true
	}

	seen := make(map[string]bool, len(raw.Cards))
	cards := make([]Card, 0, len(raw.Cards))
	for _, rc := range raw.Cards {
		if rc.ID == "" {
			return nil, fmt.Errorf("%w: card without id", ErrInvalidCatalog)
		}
		if seen[rc.ID] {
			return nil, fmt.Errorf("%w: duplicate card id %q", ErrInvalidCatalog, rc.ID)
		}
		seen[rc.ID] = true
		if !known[rc.Location] {
			return nil, fmt.Errorf("%w: card %q has unknown location %q", ErrInvalidCatalog, rc.ID, rc.Location)
		}

		effects := make([]Effect, 0, len(rc.Effects))
		for i, re := range rc.Effects {
			e, err := re.effect()
			if err != nil {
				return nil, fmt.Errorf("%w: card %q effect %d: %v", ErrInvalidCatalog, rc.ID, i, err)
			}
			effects = append(effects, e)
		}

		cards = append(cards, Card{
			ID:          rc.ID,
			Title:       rc.Title,
			Description: rc.Description,
			Location:    rc.Location,
			Effects:     effects,
		})
	}
	return cards, nil
}

func (r rawEffect) effect() (Effect, error) {
	switch {
	case r.Probability != nil:
		if r.Berries != nil || r.Poneglyph != nil || r.Choice != nil {
			return nil, errors.New("probability cannot be combined with other keys")
		}
		return r.Probability.build()
	case r.Choice != nil:
		if r.Berries != nil || r.Poneglyph != nil {
			return nil, errors.New("choice cannot be combined with other keys")
		}
		opts := make([]Option, 0, len(r.Choice))
		for _, ro := range r.Choice {
			effs, err := immediates(ro.Effects)
			if err != nil {
				return nil, err
			}
			opts = append(opts, Option{Label: ro.Label, Effects: effs})
		}
		return Choice{Options: opts}, nil
	default:
		return r.immediate()
	}
}

func (r rawEffect) immediate() (Immediate, error) {
	switch {
	case r.Berries != nil && r.Poneglyph != nil:
		return Immediate{}, errors.New("an immediate effect changes exactly one currency")
	case r.Berries != nil:
		return Immediate{Currency: Berries, Magnitude: *r.Berries, Note: r.Note}, nil
	case r.Poneglyph != nil:
		return Immediate{Currency: Poneglyph, Magnitude: *r.Poneglyph, Note: r.Note}, nil
	default:
		return Immediate{}, errors.New("empty effect")
	}
}

func immediates(raw []rawEffect) ([]Immediate, error) {
	out := make([]Immediate, 0, len(raw))
	for _, re := range raw {
		if re.Probability != nil || re.Choice != nil {
			return nil, errors.New("nested effects must be immediate")
		}
		im, err := re.immediate()
		if err != nil {
			return nil, err
		}
		out = append(out, im)
	}
	return out, nil
}

func (r rawProbability) build() (Probabilistic, error) {
	if r.Threshold < 1 || r.Threshold > 6 {
		return Probabilistic{}, fmt.Errorf("threshold %d outside 1..6", r.Threshold)
	}
	pass, err := immediates(r.Pass)
	if err != nil {
		return Probabilistic{}, err
	}
	fail, err := immediates(r.Fail)
	if err != nil {
		return Probabilistic{}, err
	}
	return ThresholdRoll(r.Description, r.Threshold, pass, fail), nil
}

// ThresholdRoll builds a probabilistic effect that yields pass when the roll is
// at least threshold and fail otherwise.
func ThresholdRoll(description string, threshold int, pass, fail []Immediate) Probabilistic {
	return Probabilistic{
		Description: description,
		Outcome: func(roll int) []Immediate {
			if roll >= threshold {
				return cloneImmediates(pass)
			}
			return cloneImmediates(fail)
		},
	}
}
