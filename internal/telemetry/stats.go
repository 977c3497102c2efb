package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period          string            `json:"period"`
	EventCounts     map[EventType]int `json:"event_counts"`
	Draws           int               `json:"draws"`
	DrawsByLocation map[string]int    `json:"draws_by_location"`
	DrawsByKind     map[string]int    `json:"draws_by_kind"`
	CardCloses      int               `json:"card_closes"`
	Epilogues       int               `json:"epilogues"`
	Games           int               `json:"games"`
	DrawsPerGame    float64           `json:"draws_per_game"`
}

// CalculateStats computes balance stats from events
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:          since.Format("2006-01-02"),
		EventCounts:     make(map[EventType]int),
		DrawsByLocation: make(map[string]int),
		DrawsByKind:     make(map[string]int),
	}
	games := make(map[string]bool)

	for _, event := range events {
		stats.EventCounts[event.Type]++
		games[event.GameID] = true

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventCardDrawn:
			stats.Draws++
			if loc, ok := metadata["location"].(string); ok {
				stats.DrawsByLocation[loc]++
			}
			if kind, ok := metadata["kind"].(string); ok {
				stats.DrawsByKind[kind]++
			}
		case EventCardClosed:
			stats.CardCloses++
		case EventEpilogueTriggered:
			stats.Epilogues++
		}
	}

	stats.Games = len(games)
	if stats.Games > 0 {
		stats.DrawsPerGame = float64(stats.Draws) / float64(stats.Games)
	}

	return stats, nil
}
