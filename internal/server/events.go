package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ChinmayNoob/laughtale/internal/events"
	"github.com/ChinmayNoob/laughtale/internal/game"
	"github.com/ChinmayNoob/laughtale/internal/httpmw"

	"go.uber.org/zap"
)

// eventBuffer bounds how far a slow stream may fall behind before events are
// dropped for it.
const eventBuffer = 32

// streamEvents writes every bus event of e to w as server-sent events until
// the client goes away.
func streamEvents(w http.ResponseWriter, r *http.Request, e *game.Engine, heartbeat time.Duration, log *zap.Logger) {
	log = httpmw.Logger(r.Context(), log)
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeErr(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ch := make(chan events.Envelope, eventBuffer)
	unsubscribe := e.Bus().SubscribeAll(func(env events.Envelope) {
		select {
		case ch <- env:
		default:
			log.Warn("event stream lagging, dropped event",
				zap.String("game_id", e.ID()), zap.String("kind", string(env.Kind)))
		}
	})
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Start with the current state so a fresh client needs no extra fetch.
	if err := writeEvent(w, "state", gameResponse(e.Snapshot())); err != nil {
		return
	}
	flusher.Flush()

	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case env := <-ch:
			name, payload := string(env.Kind), env.Payload
			if env.Kind == events.KindPanelReverted {
				// Clients track the version from state frames.
				name, payload = "state", gameResponse(e.Snapshot())
			}
			if err := writeEvent(w, name, payload); err != nil {
				log.Debug("event stream write failed", zap.String("game_id", e.ID()), zap.Error(err))
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	return err
}
