// Package events is the typed notification bridge between a game engine and
// whatever presents it.
package events

import (
	"sync"

	"github.com/ChinmayNoob/laughtale/internal/board"
	"github.com/ChinmayNoob/laughtale/internal/deck"
)

// Kind is the wire name of an event.
type Kind string

const (
	KindCardDrawn         Kind = "card_drawn"
	KindCardClosed        Kind = "card_closed"
	KindEpilogueTriggered Kind = "epilogue_triggered"
	KindPanelReverted     Kind = "panel_reverted"
)

type CardDrawn struct {
	GameID   string         `json:"game_id"`
	Card     deck.Card      `json:"card"`
	Location board.Location `json:"location"`
	Position board.Position `json:"position"`
}

type CardClosed struct {
	GameID string `json:"game_id"`
	CardID string `json:"card_id,omitempty"`
}

type EpilogueTriggered struct {
	GameID    string         `json:"game_id"`
	Poneglyph float64        `json:"poneglyph"`
	Position  board.Position `json:"position"`
}

// PanelReverted is sent when a display window runs out and the panel falls
// back on its own, outside any command.
type PanelReverted struct {
	GameID  string `json:"game_id"`
	Panel   string `json:"panel"`
	Version int64  `json:"version"`
}

// Topic is a list of listeners for one payload type. The zero value is ready
// to use.
type Topic[T any] struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[uint64]func(T)
	order     []uint64
}

// Subscribe registers fn and returns a func that removes it. Calling the
// returned func more than once is harmless.
func (t *Topic[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.listeners == nil {
		t.listeners = map[uint64]func(T){}
	}
	t.nextID++
	id := t.nextID
	t.listeners[id] = fn
	t.order = append(t.order, id)

	var once sync.Once
	return func() {
		once.Do(func() { t.remove(id) })
	}
}

func (t *Topic[T]) remove(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.listeners, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i:i], t.order[i+1:]...)
			break
		}
	}
}

// Publish calls every listener registered at the time of the call, in
// subscription order, on the caller's goroutine. Listeners may subscribe or
// unsubscribe while being called.
func (t *Topic[T]) Publish(v T) {
	for _, fn := range t.snapshot() {
		fn(v)
	}
}

// Len reports how many listeners are registered.
func (t *Topic[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.order)
}

func (t *Topic[T]) snapshot() []func(T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fns := make([]func(T), 0, len(t.order))
	for _, id := range t.order {
		fns = append(fns, t.listeners[id])
	}
	return fns
}

// Bus groups the topics a game publishes on.
type Bus struct {
	CardDrawn         Topic[CardDrawn]
	CardClosed        Topic[CardClosed]
	EpilogueTriggered Topic[EpilogueTriggered]
	PanelReverted     Topic[PanelReverted]
}

func NewBus() *Bus { return &Bus{} }

// Envelope is a kind-tagged payload for transports that carry every topic on
// one stream.
type Envelope struct {
	Kind    Kind `json:"kind"`
	Payload any  `json:"payload"`
}

// SubscribeAll forwards every topic of b to fn and returns a func that removes
// every subscription it made.
func (b *Bus) SubscribeAll(fn func(Envelope)) (unsubscribe func()) {
	u1 := b.CardDrawn.Subscribe(func(e CardDrawn) { fn(Envelope{Kind: KindCardDrawn, Payload: e}) })
	u2 := b.CardClosed.Subscribe(func(e CardClosed) { fn(Envelope{Kind: KindCardClosed, Payload: e}) })
	u3 := b.EpilogueTriggered.Subscribe(func(e EpilogueTriggered) {
		fn(Envelope{Kind: KindEpilogueTriggered, Payload: e})
	})
	u4 := b.PanelReverted.Subscribe(func(e PanelReverted) { fn(Envelope{Kind: KindPanelReverted, Payload: e}) })
	return func() {
		u1()
		u2()
		u3()
		u4()
	}
}
