package telemetry

import (
	"time"

	"github.com/ChinmayNoob/laughtale/internal/events"
)

type EventType string

const (
	EventCardDrawn         EventType = EventType(events.KindCardDrawn)
	EventCardClosed        EventType = EventType(events.KindCardClosed)
	EventEpilogueTriggered EventType = EventType(events.KindEpilogueTriggered)
)

type Event struct {
	ID        int       `json:"id"`
	GameID    string    `json:"game_id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
