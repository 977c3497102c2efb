// Package session keeps the running games of a server process.
package session

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/ChinmayNoob/laughtale/internal/game"

	"github.com/google/uuid"
)

var ErrTooManyGames = errors.New("too many running games")

// Factory builds the engine of a new game with the given id.
type Factory func(id string) *game.Engine

// Summary describes a running game for listings.
type Summary struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Phase     game.Phase `json:"phase"`
	Version   int64      `json:"version"`
}

type Repository interface {
	Create(ctx context.Context) (*game.Engine, error)
	Get(ctx context.Context, id string) (*game.Engine, bool, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type entry struct {
	engine    *game.Engine
	createdAt time.Time
}

type MemoryRepo struct {
	mu       sync.RWMutex
	m        map[string]entry
	factory  Factory
	maxGames int
	now      func() time.Time
}

// NewMemoryRepo returns a registry that builds games with factory. maxGames
// <= 0 means no limit.
func NewMemoryRepo(factory Factory, maxGames int) *MemoryRepo {
	return &MemoryRepo{
		m:        map[string]entry{},
		factory:  factory,
		maxGames: maxGames,
		now:      time.Now,
	}
}

func (r *MemoryRepo) Create(ctx context.Context) (*game.Engine, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxGames > 0 && len(r.m) >= r.maxGames {
		return nil, ErrTooManyGames
	}
	id := uuid.NewString()
	e := r.factory(id)
	r.m[id] = entry{engine: e, createdAt: r.now()}
	return e, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (*game.Engine, bool, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	en, ok := r.m[id]
	return en.engine, ok, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Summary, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Summary, 0, len(r.m))
	for id, en := range r.m {
		s := en.engine.Snapshot()
		out = append(out, Summary{ID: id, CreatedAt: en.createdAt, Phase: s.Phase, Version: s.Version})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Delete removes a game and stops its pending timer.
func (r *MemoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	_ = ctx
	r.mu.Lock()
	en, ok := r.m[id]
	delete(r.m, id)
	r.mu.Unlock()

	if ok {
		en.engine.Close()
	}
	return ok, nil
}
