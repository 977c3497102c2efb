package telemetry

import (
	"github.com/ChinmayNoob/laughtale/internal/deck"
	"github.com/ChinmayNoob/laughtale/internal/events"

	"go.uber.org/zap"
)

// Attach records every event published on bus into repo until the returned
// func is called. Record failures are logged and dropped.
func Attach(bus *events.Bus, repo Repository, log *zap.Logger) (detach func()) {
	if log == nil {
		log = zap.NewNop()
	}
	record := func(gameID string, typ EventType, md EventMetadata) {
		if err := repo.RecordEvent(gameID, typ, md); err != nil {
			log.Warn("telemetry record failed", zap.String("game_id", gameID), zap.String("type", string(typ)), zap.Error(err))
		}
	}

	u1 := bus.CardDrawn.Subscribe(func(e events.CardDrawn) {
		record(e.GameID, EventCardDrawn, EventMetadata{
			"card_id":  e.Card.ID,
			"location": string(e.Location),
			"position": int(e.Position),
			"kind":     deck.Classify(e.Card).String(),
		})
	})
	u2 := bus.CardClosed.Subscribe(func(e events.CardClosed) {
		record(e.GameID, EventCardClosed, EventMetadata{"card_id": e.CardID})
	})
	u3 := bus.EpilogueTriggered.Subscribe(func(e events.EpilogueTriggered) {
		record(e.GameID, EventEpilogueTriggered, EventMetadata{
			"poneglyph": e.Poneglyph,
			"position":  int(e.Position),
		})
	})

	return func() {
		u1()
		u2()
		u3()
	}
}
