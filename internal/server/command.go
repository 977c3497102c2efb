package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ChinmayNoob/laughtale/internal/board"
	"github.com/ChinmayNoob/laughtale/internal/finalwar"
	"github.com/ChinmayNoob/laughtale/internal/game"
	"github.com/ChinmayNoob/laughtale/internal/httpmw"
	"github.com/ChinmayNoob/laughtale/internal/session"

	"go.uber.org/zap"
)

type CommandRequest struct {
	Cmd           string         `json:"cmd"`
	Args          map[string]any `json:"args"`
	ClientVersion string         `json:"clientVersion,omitempty"`
}

type CommandResponse struct {
	OK         bool             `json:"ok"`
	NewVersion string           `json:"newVersion,omitempty"`
	State      *game.State      `json:"state,omitempty"`
	Outcome    *game.Outcome    `json:"outcome,omitempty"`
	Battle     *finalwar.Battle `json:"battle,omitempty"`
	// Rolled is the die the server threw when the client sent none.
	Rolled int    `json:"rolled,omitempty"`
	Error  string `json:"error,omitempty"`
}

// errBadArgs marks malformed command arguments.
var errBadArgs = errors.New("bad args")

type commandHandler struct {
	games session.Repository
	log   *zap.Logger
}

func (h *commandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e, ok := lookupGame(w, r, h.games)
	if !ok {
		return
	}

	var req CommandRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	req.Cmd = strings.TrimSpace(req.Cmd)
	if req.Cmd == "" {
		writeErr(w, http.StatusBadRequest, "missing cmd")
		return
	}

	cur := e.Snapshot()
	if req.ClientVersion != "" && req.ClientVersion != formatVersion(cur.Version) {
		writeJSON(w, http.StatusConflict, CommandResponse{
			OK:         false,
			NewVersion: formatVersion(cur.Version),
			State:      &cur,
			Error:      "version conflict",
		})
		return
	}

	resp, err := executeCommand(e, req.Cmd, req.Args)
	if err != nil {
		code := statusFor(err)
		if code >= http.StatusInternalServerError {
			httpmw.Logger(r.Context(), h.log).Error("command failed", zap.String("game_id", e.ID()), zap.String("cmd", req.Cmd), zap.Error(err))
		}
		st := e.Snapshot()
		resp.OK = false
		resp.Error = err.Error()
		resp.State = &st
		resp.NewVersion = formatVersion(st.Version)
		writeJSON(w, code, resp)
		return
	}

	resp.OK = true
	if resp.State == nil {
		st := e.Snapshot()
		resp.State = &st
	}
	resp.NewVersion = formatVersion(resp.State.Version)
	writeJSON(w, http.StatusOK, resp)
}

func executeCommand(e *game.Engine, cmd string, args map[string]any) (CommandResponse, error) {
	var resp CommandResponse
	dispatch := func(c game.Command) (CommandResponse, error) {
		out, err := e.Dispatch(c)
		if err != nil {
			return resp, err
		}
		resp.Outcome = &out
		resp.State = &out.State
		return resp, nil
	}

	switch cmd {
	case "game.start":
		return dispatch(game.ChangePhaseCommand{Phase: game.PhasePlaying})

	case "game.phase":
		phase, err := getString(args, "phase")
		if err != nil {
			return resp, err
		}
		return dispatch(game.ChangePhaseCommand{Phase: game.Phase(phase)})

	case "game.reset":
		return dispatch(game.ResetCommand{})

	case "token.move":
		dir, err := getIntOr(args, "direction", int(board.Forward))
		if err != nil {
			return resp, err
		}
		distance, err := getIntPtr(args, "distance")
		if err != nil {
			return resp, err
		}
		if distance == nil {
			n := e.RollDie()
			resp.Rolled = n
			distance = &n
		}
		return dispatch(game.MoveCommand{Distance: *distance, Direction: board.Direction(dir)})

	case "card.roll":
		roll, err := getIntPtr(args, "roll")
		if err != nil {
			return resp, err
		}
		if roll == nil {
			n := e.RollDie()
			resp.Rolled = n
			roll = &n
		}
		return dispatch(game.RollCommand{Roll: *roll})

	case "card.choose":
		idx, err := getInt(args, "index")
		if err != nil {
			return resp, err
		}
		return dispatch(game.ChooseCommand{Index: idx})

	case "card.close":
		return dispatch(game.CloseCardCommand{})

	case "epilogue.take":
		return dispatch(game.JollyRogerCommand{})

	case "epilogue.final_war":
		if _, ok := args["result"]; ok {
			res, err := getString(args, "result")
			if err != nil {
				return resp, err
			}
			return dispatch(game.FinalWarCommand{Result: game.Result(res), RequireJollyRoger: true})
		}
		roll, err := getIntPtr(args, "roll")
		if err != nil {
			return resp, err
		}
		if roll == nil {
			n := e.RollDie()
			resp.Rolled = n
			roll = &n
		}
		battle, err := finalwar.PlayFromJollyRoger(e, *roll)
		if err != nil {
			return resp, err
		}
		resp.Battle = &battle
		resp.Outcome = &battle.Outcome
		resp.State = &battle.Outcome.State
		return resp, nil

	default:
		return resp, fmt.Errorf("%w: unknown cmd %q", errBadArgs, cmd)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadArgs),
		errors.Is(err, game.ErrInvalidMove),
		errors.Is(err, game.ErrInvalidRoll),
		errors.Is(err, game.ErrInvalidChoice),
		errors.Is(err, game.ErrInvalidResult),
		errors.Is(err, game.ErrInvalidPhase),
		errors.Is(err, finalwar.ErrInvalidRoll):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrNotMovable),
		errors.Is(err, game.ErrNoCurrentCard),
		errors.Is(err, game.ErrNotAwaitingRoll),
		errors.Is(err, game.ErrNotAwaitingChoice),
		errors.Is(err, game.ErrNotAtJollyRoger),
		errors.Is(err, game.ErrNotEnoughPoneglyph):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func getString(m map[string]any, k string) (string, error) {
	v, ok := m[k]
	if !ok {
		return "", fmt.Errorf("%w: missing arg: %s", errBadArgs, k)
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: arg %s must be string", errBadArgs, k)
	}
	return s, nil
}

func getInt(m map[string]any, k string) (int, error) {
	v, ok := m[k]
	if !ok {
		return 0, fmt.Errorf("%w: missing arg: %s", errBadArgs, k)
	}
	// JSON numbers decode as float64
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: arg %s must be number", errBadArgs, k)
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("%w: arg %s must be integer", errBadArgs, k)
	}
	return int(f), nil
}

func getIntOr(m map[string]any, k string, def int) (int, error) {
	if _, ok := m[k]; !ok {
		return def, nil
	}
	return getInt(m, k)
}

func getIntPtr(m map[string]any, k string) (*int, error) {
	v, ok := m[k]
	if !ok || v == nil {
		return nil, nil
	}
	n, err := getInt(m, k)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
