package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ChinmayNoob/laughtale/internal/board"
	"github.com/ChinmayNoob/laughtale/internal/deck"
	"github.com/ChinmayNoob/laughtale/internal/game"
	"github.com/ChinmayNoob/laughtale/internal/httpmw"
	"github.com/ChinmayNoob/laughtale/internal/profile"
	"github.com/ChinmayNoob/laughtale/internal/session"
	"github.com/ChinmayNoob/laughtale/internal/telemetry"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds what the handlers depend on.
type App struct {
	Games     session.Repository
	Telemetry telemetry.Repository
	Logger    *zap.Logger
	// Heartbeat is the keep-alive interval of event streams.
	Heartbeat time.Duration
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(out)
}

func formatVersion(v int64) string {
	return strconv.FormatInt(v, 10)
}

// GameResponse is the read model of one game.
type GameResponse struct {
	State   game.State `json:"state"`
	Version string     `json:"version"`
}

func gameResponse(s game.State) GameResponse {
	return GameResponse{State: s, Version: formatVersion(s.Version)}
}

// BoardResponse describes the ring for renderers.
type BoardResponse struct {
	Size            int              `json:"size"`
	Tiles           []board.Tile     `json:"tiles"`
	JollyRogerStops []board.Position `json:"jolly_roger_stops"`
	Locations       []board.Location `json:"locations"`
}

func RegisterAPIRoutes(r chi.Router, rr *RouteRegistry, app *App) {
	if app.Logger == nil {
		app.Logger = zap.NewNop()
	}
	if app.Heartbeat <= 0 {
		app.Heartbeat = 15 * time.Second
	}

	Handle(r, rr, "GET /api/routes", "List API routes", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, rr.List())
	})

	Handle(r, rr, "GET /api/catalog", "Full card catalog", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deck.Catalog())
	})

	Handle(r, rr, "GET /api/profiles", "Spawn profiles", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, profile.Profiles())
	})

	Handle(r, rr, "GET /api/board", "Board layout", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, BoardResponse{
			Size:            board.Size,
			Tiles:           board.Tiles(),
			JollyRogerStops: board.JollyRogerStops[:],
			Locations:       board.Locations(),
		})
	})

	Handle(r, rr, "GET /api/games", "List running games", "", func(w http.ResponseWriter, r *http.Request) {
		games, err := app.Games.List(r.Context())
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, games)
	})

	Handle(r, rr, "POST /api/games", "Start a new game", "", func(w http.ResponseWriter, r *http.Request) {
		e, err := app.Games.Create(r.Context())
		if errors.Is(err, session.ErrTooManyGames) {
			writeErr(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		httpmw.Logger(r.Context(), app.Logger).Info("game created", zap.String("game_id", e.ID()))
		writeJSON(w, http.StatusCreated, gameResponse(e.Snapshot()))
	})

	Handle(r, rr, "GET /api/games/{id}", "Game state", "", func(w http.ResponseWriter, r *http.Request) {
		e, ok := lookupGame(w, r, app.Games)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, gameResponse(e.Snapshot()))
	})

	Handle(r, rr, "DELETE /api/games/{id}", "End a game", "", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		ok, err := app.Games.Delete(r.Context(), id)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !ok {
			writeErr(w, http.StatusNotFound, "game not found")
			return
		}
		if app.Telemetry != nil {
			log := httpmw.Logger(r.Context(), app.Logger)
			n, err := app.Telemetry.PurgeGame(id)
			if err != nil {
				log.Warn("telemetry purge failed", zap.String("game_id", id), zap.Error(err))
			} else {
				log.Debug("telemetry purged", zap.String("game_id", id), zap.Int("events", n))
			}
		}
		w.WriteHeader(http.StatusNoContent)
	})

	cmd := &commandHandler{games: app.Games, log: app.Logger}
	Handle(r, rr, "POST /api/games/{id}/cmd", "Run a game command", `{"cmd":"token.move","args":{"distance":3,"direction":1},"clientVersion":"4"}`, cmd.ServeHTTP)

	Handle(r, rr, "GET /api/games/{id}/events", "Server-sent game events", "", func(w http.ResponseWriter, r *http.Request) {
		e, ok := lookupGame(w, r, app.Games)
		if !ok {
			return
		}
		streamEvents(w, r, e, app.Heartbeat, app.Logger)
	})

	Handle(r, rr, "GET /api/games/{id}/stats", "Telemetry stats of a game", "", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, ok := lookupGame(w, r, app.Games); !ok {
			return
		}
		stats, err := gameStats(app.Telemetry, id)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, stats)
	})

	Handle(r, rr, "GET /api/stats", "Telemetry stats of every game", "", func(w http.ResponseWriter, r *http.Request) {
		stats, err := gameStats(app.Telemetry, "")
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, stats)
	})
}

func lookupGame(w http.ResponseWriter, r *http.Request, games session.Repository) (*game.Engine, bool) {
	e, ok, err := games.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if !ok {
		writeErr(w, http.StatusNotFound, "game not found")
		return nil, false
	}
	return e, true
}

func gameStats(repo telemetry.Repository, gameID string) (telemetry.Stats, error) {
	if repo == nil {
		return telemetry.CalculateStats(nil, time.Time{})
	}
	events, err := repo.GetEvents(time.Time{}, gameID, nil)
	if err != nil {
		return telemetry.Stats{}, err
	}
	return telemetry.CalculateStats(events, time.Time{})
}
