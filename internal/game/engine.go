package game

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/ChinmayNoob/laughtale/internal/board"
	"github.com/ChinmayNoob/laughtale/internal/deck"
	"github.com/ChinmayNoob/laughtale/internal/events"
	"github.com/ChinmayNoob/laughtale/internal/profile"

	"go.uber.org/zap"
)

// Options configures a new Engine. Zero fields get defaults.
type Options struct {
	ID      string
	Clock   Clock
	Rand    deck.Rand
	Spawner profile.Spawner
	Bus     *events.Bus
	Logger  *zap.Logger
	Timing  Timing
}

// Engine owns one game. Every mutation goes through its methods, which are
// safe for concurrent use.
type Engine struct {
	mu      sync.Mutex
	id      string
	clock   Clock
	rng     deck.Rand
	spawner profile.Spawner
	bus     *events.Bus
	log     *zap.Logger
	timing  Timing

	s State

	// pending is the one scheduled panel revert. gen is bumped whenever it is
	// cancelled or replaced so a timer that already fired becomes a no-op.
	pending Timer
	gen     uint64

	// outbox holds notifications raised under mu, sent after it is released.
	outbox []func()
}

func New(opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(opts.Clock.Now().UnixNano()))
	}
	if opts.Spawner == nil {
		opts.Spawner = profile.RandomSpawner{Rand: opts.Rand}
	}
	if opts.Bus == nil {
		opts.Bus = events.NewBus()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	def := DefaultTiming()
	if opts.Timing.EffectsDisplay <= 0 {
		opts.Timing.EffectsDisplay = def.EffectsDisplay
	}
	if opts.Timing.ImmediateDisplay <= 0 {
		opts.Timing.ImmediateDisplay = def.ImmediateDisplay
	}

	e := &Engine{
		id:      opts.ID,
		clock:   opts.Clock,
		rng:     opts.Rand,
		spawner: opts.Spawner,
		bus:     opts.Bus,
		log:     opts.Logger.With(zap.String("game_id", opts.ID)),
		timing:  opts.Timing,
	}
	e.s = e.fresh()
	return e
}

func (e *Engine) ID() string { return e.id }

func (e *Engine) Bus() *events.Bus { return e.bus }

func (e *Engine) Timing() Timing { return e.timing }

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.s.clone()
}

// do runs fn under the lock, then delivers whatever fn queued on the outbox.
func (e *Engine) do(op string, fn func() error) error {
	e.mu.Lock()
	err := fn()
	out := e.outbox
	e.outbox = nil
	e.mu.Unlock()

	if err != nil {
		e.log.Info("command rejected", zap.String("op", op), zap.Error(err))
	}
	for _, send := range out {
		send()
	}
	return err
}

func (e *Engine) fresh() State {
	p := e.spawner.Spawn()
	start := board.StartingPosition(p.PirateType)
	return State{
		ID:            e.id,
		Berries:       p.InitialBerries,
		Poneglyph:     StartingPoneglyph,
		Position:      start,
		Location:      board.LocationOf(start),
		Deck:          deck.NewDeck(),
		Panel:         PanelMove,
		Phase:         PhaseIdle,
		CharacterName: p.Name,
		PirateType:    p.PirateType,
		Version:       e.s.Version + 1,
	}
}

func (e *Engine) touch() {
	e.s.Version++
}

func (e *Engine) setPanel(p Panel) {
	if e.s.Panel != p {
		e.log.Debug("panel transition", zap.String("from", string(e.s.Panel)), zap.String("to", string(p)))
	}
	e.s.Panel = p
}

// ChangePhase sets the outer phase.
func (e *Engine) ChangePhase(p Phase) error {
	return e.do("change_phase", func() error { return e.changePhase(p) })
}

func (e *Engine) changePhase(p Phase) error {
	if !p.Valid() {
		return ErrInvalidPhase
	}
	if e.s.Phase != p {
		e.log.Debug("phase transition", zap.String("from", string(e.s.Phase)), zap.String("to", string(p)))
	}
	e.s.Phase = p
	e.touch()
	return nil
}

// Move advances the token, draws a card for the new location and processes
// it. Only allowed from the move panel.
func (e *Engine) Move(distance int, dir board.Direction) (State, error) {
	var out State
	err := e.do("move", func() error {
		if err := e.move(distance, dir); err != nil {
			return err
		}
		out = e.s.clone()
		return nil
	})
	return out, err
}

func (e *Engine) move(distance int, dir board.Direction) error {
	if e.s.Panel != PanelMove {
		return ErrNotMovable
	}
	if distance < 0 || !dir.Valid() {
		return ErrInvalidMove
	}
	e.cancelPending()

	e.s.Position = board.NextPosition(e.s.Position, dir, distance, board.Size)
	e.s.Location = board.LocationOf(e.s.Position)
	e.log.Debug("token moved",
		zap.Int("position", int(e.s.Position)),
		zap.String("location", string(e.s.Location)),
	)

	card, rest := deck.Draw(e.s.Deck, e.s.Location, e.rng)
	e.s.Deck = rest
	e.touch()
	if card == nil {
		return nil
	}
	e.s.CurrentCard = card

	drawn := events.CardDrawn{
		GameID:   e.id,
		Card:     *card,
		Location: e.s.Location,
		Position: e.s.Position,
	}
	e.outbox = append(e.outbox, func() { e.bus.CardDrawn.Publish(drawn) })

	e.processCard()
	return nil
}

func (e *Engine) processCard() {
	card := e.s.CurrentCard
	switch deck.Classify(*card) {
	case deck.KindProbabilistic:
		e.setPanel(PanelProbability)
	case deck.KindChoice:
		e.setPanel(PanelChoice)
	case deck.KindImmediate:
		e.apply(deck.ImmediateEffects(*card))
		e.setPanel(PanelEffects)
		e.schedule(e.timing.ImmediateDisplay)
	}
	e.touch()
}

// HandleRoll resolves the current card's probabilistic effect with roll. The
// card's own immediate effects are applied in the same batch.
func (e *Engine) HandleRoll(roll int) ([]deck.Immediate, error) {
	var out []deck.Immediate
	err := e.do("roll", func() error {
		var err error
		out, err = e.handleRoll(roll)
		return err
	})
	if err != nil {
		return []deck.Immediate{}, err
	}
	return out, nil
}

func (e *Engine) handleRoll(roll int) ([]deck.Immediate, error) {
	card := e.s.CurrentCard
	if card == nil {
		return nil, ErrNoCurrentCard
	}
	if e.s.Panel != PanelProbability {
		return nil, ErrNotAwaitingRoll
	}
	p, ok := deck.FirstProbabilistic(*card)
	if !ok {
		return nil, ErrNotAwaitingRoll
	}
	if roll < 1 || roll > 6 {
		return nil, ErrInvalidRoll
	}

	effects := append(deck.ImmediateEffects(*card), deck.ResolveProbabilistic(p, roll)...)
	e.resolve(effects)
	return cloneEffects(effects), nil
}

// HandleChoice resolves the current card's choice with the option at index.
// An out of range index is rejected and the card keeps waiting.
func (e *Engine) HandleChoice(index int) ([]deck.Immediate, error) {
	var out []deck.Immediate
	err := e.do("choose", func() error {
		var err error
		out, err = e.handleChoice(index)
		return err
	})
	if err != nil {
		return []deck.Immediate{}, err
	}
	return out, nil
}

func (e *Engine) handleChoice(index int) ([]deck.Immediate, error) {
	card := e.s.CurrentCard
	if card == nil {
		return nil, ErrNoCurrentCard
	}
	if e.s.Panel != PanelChoice {
		return nil, ErrNotAwaitingChoice
	}
	ch, ok := deck.FirstChoice(*card)
	if !ok {
		return nil, ErrNotAwaitingChoice
	}
	if index < 0 || index >= len(ch.Options) {
		return nil, ErrInvalidChoice
	}

	effects := append(deck.ImmediateEffects(*card), deck.ResolveChoice(ch, index)...)
	e.resolve(effects)
	return cloneEffects(effects), nil
}

// resolve applies a resolved outcome, records it on the card and shows it.
func (e *Engine) resolve(effects []deck.Immediate) {
	e.apply(effects)
	e.s.CurrentCard.FinalOutcome = cloneEffects(effects)
	e.setPanel(PanelEffects)
	e.schedule(e.timing.EffectsDisplay)
	e.touch()
}

// HandleFinalWar settles the epilogue. A win doubles poneglyph, returns the
// game to idle and starts over; the returned state is the finished game. A
// loss halves both currencies and play continues.
func (e *Engine) HandleFinalWar(r Result) (State, error) {
	var out State
	err := e.do("final_war", func() error {
		var err error
		out, err = e.handleFinalWar(r)
		return err
	})
	return out, err
}

func (e *Engine) handleFinalWar(r Result) (State, error) {
	switch r {
	case Win:
		e.s.Poneglyph += e.s.Poneglyph
		e.touch()
		finished := e.s.clone()
		e.log.Info("final war won", zap.Float64("poneglyph", finished.Poneglyph))
		e.s.Phase = PhaseIdle
		e.reset()
		return finished, nil
	case Lose:
		e.s.Berries = clamp(math.Round(e.s.Berries / 2))
		e.s.Poneglyph = clamp(math.Round(e.s.Poneglyph / 2))
		e.touch()
		e.log.Info("final war lost",
			zap.Float64("berries", e.s.Berries),
			zap.Float64("poneglyph", e.s.Poneglyph),
		)
		return e.s.clone(), nil
	default:
		return State{}, ErrInvalidResult
	}
}

// Reset replaces the game with a freshly spawned one.
func (e *Engine) Reset() State {
	var out State
	_ = e.do("reset", func() error {
		e.reset()
		out = e.s.clone()
		return nil
	})
	return out
}

func (e *Engine) reset() {
	e.cancelPending()
	e.s = e.fresh()
	e.log.Debug("game reset",
		zap.String("pirate_type", string(e.s.PirateType)),
		zap.Float64("berries", e.s.Berries),
	)
}

// CloseCard dismisses the card overlay and returns to the move panel.
func (e *Engine) CloseCard() {
	_ = e.do("close_card", func() error {
		e.closeCard()
		return nil
	})
}

func (e *Engine) closeCard() {
	e.cancelPending()
	e.setPanel(PanelMove)
	e.touch()

	closed := events.CardClosed{GameID: e.id}
	if e.s.CurrentCard != nil {
		closed.CardID = e.s.CurrentCard.ID
	}
	e.outbox = append(e.outbox, func() { e.bus.CardClosed.Publish(closed) })
}

// TakeJollyRoger starts the epilogue from a jolly roger stop.
func (e *Engine) TakeJollyRoger() error {
	return e.do("take_jolly_roger", e.takeJollyRoger)
}

func (e *Engine) takeJollyRoger() error {
	if err := e.s.EpilogueErr(); err != nil {
		return err
	}
	ev := events.EpilogueTriggered{
		GameID:    e.id,
		Poneglyph: e.s.Poneglyph,
		Position:  e.s.Position,
	}
	e.log.Info("epilogue triggered", zap.Float64("poneglyph", ev.Poneglyph))
	e.outbox = append(e.outbox, func() { e.bus.EpilogueTriggered.Publish(ev) })
	return nil
}

// Close stops the pending panel revert, if any. The engine stays usable.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelPending()
}

// RollDie rolls a six-sided die with the engine's random source.
func (e *Engine) RollDie() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rollDie()
}

func (e *Engine) rollDie() int {
	return e.rng.Intn(6) + 1
}

// apply adds each effect in order, clamping after every step.
func (e *Engine) apply(effects []deck.Immediate) {
	for _, eff := range effects {
		d := deck.ApplyImmediate(eff)
		if d.Berries != nil {
			e.s.Berries = clamp(e.s.Berries + *d.Berries)
		}
		if d.Poneglyph != nil {
			e.s.Poneglyph = clamp(e.s.Poneglyph + *d.Poneglyph)
		}
	}
}

// schedule replaces the pending transition with a revert to the move panel
// after d.
func (e *Engine) schedule(d time.Duration) {
	e.cancelPending()
	gen := e.gen
	e.pending = e.clock.AfterFunc(d, func() { e.revert(gen) })
}

func (e *Engine) cancelPending() {
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
	e.gen++
}

// revert runs when a display window ends. Listeners learn about it through
// PanelReverted since no command response carries the new state.
func (e *Engine) revert(gen uint64) {
	_ = e.do("revert", func() error {
		if gen != e.gen {
			return nil
		}
		e.pending = nil
		e.setPanel(PanelMove)
		e.touch()
		ev := events.PanelReverted{GameID: e.id, Panel: string(e.s.Panel), Version: e.s.Version}
		e.outbox = append(e.outbox, func() { e.bus.PanelReverted.Publish(ev) })
		return nil
	})
}

func clamp(v float64) float64 {
	return math.Max(0, v)
}

func cloneEffects(in []deck.Immediate) []deck.Immediate {
	out := make([]deck.Immediate, len(in))
	copy(out, in)
	return out
}
