package serverapp

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ChinmayNoob/laughtale/internal/board"
	"github.com/ChinmayNoob/laughtale/internal/config"
	"github.com/ChinmayNoob/laughtale/internal/game"
	"github.com/ChinmayNoob/laughtale/internal/httpmw"
	"github.com/ChinmayNoob/laughtale/internal/profile"
	"github.com/ChinmayNoob/laughtale/internal/server"
	"github.com/ChinmayNoob/laughtale/internal/session"
	"github.com/ChinmayNoob/laughtale/internal/telemetry"
	staticfiles "github.com/ChinmayNoob/laughtale/static"
	"github.com/ChinmayNoob/laughtale/ui/page"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Options struct {
	Config    *config.Config
	StaticDir string
	Logger    *zap.Logger
	// Clock drives every game. Tests pass a *game.FakeClock.
	Clock game.Clock
	// Games and Telemetry default to in-memory stores.
	Games     session.Repository
	Telemetry telemetry.Repository
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if strings.TrimSpace(opts.StaticDir) == "" {
		opts.StaticDir = "static"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = game.RealClock{}
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.NewMemoryRepositoryWithClock(opts.Clock.Now)
	}
	if opts.Games == nil {
		opts.Games = session.NewMemoryRepo(NewGameFactory(opts.Config, opts.Clock, opts.Telemetry, opts.Logger), opts.Config.Sessions.MaxGames)
	}

	r := chi.NewRouter()

	staticHandler := http.FileServer(http.FS(staticfiles.EmbeddedFS()))
	if opts.Config.Server.DevStatic {
		staticHandler = http.FileServer(http.Dir(opts.StaticDir))
	}
	r.Handle("/static/*", http.StripPrefix("/static/", staticHandler))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "laughtale",
			"time":    opts.Clock.Now().UTC().Format(time.RFC3339),
		})
	})

	rr := &server.RouteRegistry{}
	server.RegisterAPIRoutes(r, rr, &server.App{
		Games:     opts.Games,
		Telemetry: opts.Telemetry,
		Logger:    opts.Logger,
	})

	r.Get("/api/config", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(opts.Config); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})

	r.Get("/_/admin", func(w http.ResponseWriter, r *http.Request) {
		routes := rr.List()
		rows := make([]page.Route, 0, len(routes))
		for _, d := range routes {
			rows = append(rows, page.Route(d))
		}
		templ.Handler(page.AdminPage(rows)).ServeHTTP(w, r)
	})
	r.Get("/_/admin/routes.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, rr.List())
	})

	r.Handle("/", templ.Handler(page.HomePage(profile.Profiles())))
	r.Get("/play/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, ok, err := opts.Games.Get(r.Context(), id); err != nil || !ok {
			http.NotFound(w, r)
			return
		}
		templ.Handler(page.PlayPage(id, board.Tiles())).ServeHTTP(w, r)
	})

	return httpmw.Chain(
		r,
		httpmw.WithRequestContext(opts.Logger),
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRecover(opts.Logger),
	), nil
}

// NewGameFactory builds engines from cfg. Every engine records its events into
// tel. With a seeded RNG, the n-th game created uses seed+n.
func NewGameFactory(cfg *config.Config, clock game.Clock, tel telemetry.Repository, log *zap.Logger) session.Factory {
	var created atomic.Int64
	timing := cfg.Timing.Game()
	return func(id string) *game.Engine {
		opts := game.Options{
			ID:     id,
			Clock:  clock,
			Logger: log,
			Timing: timing,
		}
		if cfg.SeededRNG.Enabled {
			n := created.Add(1) - 1
			opts.Rand = rand.New(rand.NewSource(cfg.SeededRNG.Seed + n))
		}
		e := game.New(opts)
		if tel != nil {
			telemetry.Attach(e.Bus(), tel, log)
		}
		return e
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
