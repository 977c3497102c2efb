package telemetry

import (
	"encoding/json"
	"sync"
	"time"
)

// Repository stores telemetry events
type Repository interface {
	RecordEvent(gameID string, eventType EventType, metadata EventMetadata) error
	// GetEvents filters by time, by game (empty matches all) and by type
	// (empty matches all).
	GetEvents(since time.Time, gameID string, eventTypes []EventType) ([]Event, error)
	// PurgeGame drops every event of one game and reports how many went.
	PurgeGame(gameID string) (int, error)
	Clear() error
}

// MemoryRepository stores events in memory
type MemoryRepository struct {
	mu     sync.RWMutex
	events []Event
	nextID int
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return NewMemoryRepositoryWithClock(time.Now)
}

func NewMemoryRepositoryWithClock(now func() time.Time) *MemoryRepository {
	return &MemoryRepository{
		events: make([]Event, 0),
		nextID: 1,
		now:    now,
	}
}

func (r *MemoryRepository) RecordEvent(gameID string, eventType EventType, metadata EventMetadata) error {
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, Event{
		ID:        r.nextID,
		GameID:    gameID,
		Type:      eventType,
		Timestamp: r.now(),
		Metadata:  string(metadataJSON),
	})
	r.nextID++

	return nil
}

func (r *MemoryRepository) GetEvents(since time.Time, gameID string, eventTypes []EventType) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typeFilter := make(map[EventType]bool)
	for _, t := range eventTypes {
		typeFilter[t] = true
	}

	result := make([]Event, 0)
	for _, event := range r.events {
		if event.Timestamp.Before(since) {
			continue
		}
		if gameID != "" && event.GameID != gameID {
			continue
		}
		if len(eventTypes) > 0 && !typeFilter[event.Type] {
			continue
		}
		result = append(result, event)
	}

	return result, nil
}

func (r *MemoryRepository) PurgeGame(gameID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.events[:0]
	for _, event := range r.events {
		if event.GameID != gameID {
			kept = append(kept, event)
		}
	}
	n := len(r.events) - len(kept)
	clear(r.events[len(kept):])
	r.events = kept
	return n, nil
}

func (r *MemoryRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = make([]Event, 0)
	r.nextID = 1

	return nil
}
