package telemetry

import (
	"testing"
	"time"

	"github.com/ChinmayNoob/laughtale/internal/board"
	"github.com/ChinmayNoob/laughtale/internal/deck"
	"github.com/ChinmayNoob/laughtale/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewMemoryRepositoryWithClock(func() time.Time { return now })

	require.NoError(t, repo.RecordEvent("a", EventCardDrawn, EventMetadata{"location": "rookie"}))
	now = now.Add(time.Hour)
	require.NoError(t, repo.RecordEvent("b", EventCardClosed, nil))
	require.NoError(t, repo.RecordEvent("a", EventEpilogueTriggered, EventMetadata{"poneglyph": 4}))

	all, err := repo.GetEvents(time.Time{}, "", nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{all[0].ID, all[1].ID, all[2].ID})

	recent, err := repo.GetEvents(now, "", nil)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	gameA, err := repo.GetEvents(time.Time{}, "a", nil)
	require.NoError(t, err)
	assert.Len(t, gameA, 2)

	closes, err := repo.GetEvents(time.Time{}, "", []EventType{EventCardClosed})
	require.NoError(t, err)
	require.Len(t, closes, 1)
	assert.Equal(t, "b", closes[0].GameID)

	require.NoError(t, repo.Clear())
	all, err = repo.GetEvents(time.Time{}, "", nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPurgeGame(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.RecordEvent("a", EventCardDrawn, nil))
	require.NoError(t, repo.RecordEvent("b", EventCardDrawn, nil))
	require.NoError(t, repo.RecordEvent("a", EventCardClosed, nil))

	n, err := repo.PurgeGame("a")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := repo.GetEvents(time.Time{}, "", nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "b", all[0].GameID)

	n, err = repo.PurgeGame("missing")
	require.NoError(t, err)
	assert.Zero(t, n)

	// ids keep counting after a purge
	require.NoError(t, repo.RecordEvent("c", EventCardDrawn, nil))
	all, err = repo.GetEvents(time.Time{}, "c", nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 4, all[0].ID)
}

func TestAttachAndStats(t *testing.T) {
	bus := events.NewBus()
	repo := NewMemoryRepository()
	detach := Attach(bus, repo, nil)

	var roll, plain deck.Card
	for _, c := range deck.Catalog() {
		switch c.ID {
		case "emp-n-4":
			roll = c
		case "rook-p-1":
			plain = c
		}
	}

	bus.CardDrawn.Publish(events.CardDrawn{GameID: "g1", Card: roll, Location: board.Emperor, Position: 10})
	bus.CardDrawn.Publish(events.CardDrawn{GameID: "g1", Card: plain, Location: board.Rookie, Position: 1})
	bus.CardDrawn.Publish(events.CardDrawn{GameID: "g2", Card: plain, Location: board.Rookie, Position: 22})
	bus.CardClosed.Publish(events.CardClosed{GameID: "g1", CardID: plain.ID})
	bus.EpilogueTriggered.Publish(events.EpilogueTriggered{GameID: "g2", Poneglyph: 5, Position: 16})

	detach()
	bus.CardClosed.Publish(events.CardClosed{GameID: "g1"})

	evs, err := repo.GetEvents(time.Time{}, "", nil)
	require.NoError(t, err)
	require.Len(t, evs, 5)

	stats, err := CalculateStats(evs, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Draws)
	assert.Equal(t, 2, stats.DrawsByLocation["rookie"])
	assert.Equal(t, 1, stats.DrawsByLocation["emperor"])
	assert.Equal(t, 1, stats.DrawsByKind["probability"])
	assert.Equal(t, 2, stats.DrawsByKind["immediate"])
	assert.Equal(t, 1, stats.CardCloses)
	assert.Equal(t, 1, stats.Epilogues)
	assert.Equal(t, 2, stats.Games)
	assert.Equal(t, 1.5, stats.DrawsPerGame)
	assert.Equal(t, 3, stats.EventCounts[EventCardDrawn])
}
