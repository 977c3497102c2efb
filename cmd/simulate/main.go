package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ChinmayNoob/laughtale/internal/config"
	"github.com/ChinmayNoob/laughtale/internal/serverapp"

	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "simulate failed:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	games := fs.Int("games", 1000, "number of games to play")
	turns := fs.Int("turns", 200, "turn limit per game")
	seed := fs.Int64("seed", 1, "seed of the first game")
	pace := fs.String("pace", string(config.PaceNormal), "timing preset: normal, relaxed or quick")
	verbose := fs.Bool("v", false, "log engine decisions")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *games <= 0 || *turns <= 0 {
		return fmt.Errorf("games and turns must be positive")
	}

	cfg := config.Default()
	cfg.Timing = config.Timing{Pace: config.Pace(*pace)}
	if err := cfg.Timing.Pace.Validate(); err != nil {
		return err
	}
	cfg.Timing.ApplyDefaults()
	cfg.SeededRNG = config.SeededRNG{Enabled: true, Seed: *seed}

	logger := zap.NewNop()
	if *verbose {
		l, err := serverapp.NewLogger(config.Log{Level: "debug", Development: true})
		if err != nil {
			return err
		}
		logger = l
		defer func() { _ = logger.Sync() }()
	}

	report, err := simulate(cfg, *games, *turns, logger)
	if err != nil {
		return err
	}
	printReport(out, report)
	return nil
}

func printReport(w io.Writer, r Report) {
	fmt.Fprintf(w, "games:            %d\n", r.Games)
	fmt.Fprintf(w, "wins:             %d (%.1f%%)\n", r.Wins, pct(r.Wins, r.Games))
	fmt.Fprintf(w, "final war losses: %d\n", r.Losses)
	fmt.Fprintf(w, "avg turns:        %.2f\n", r.AvgTurns)
	fmt.Fprintf(w, "avg berries:      %.2f\n", r.AvgBerries)
	fmt.Fprintf(w, "avg poneglyph:    %.2f\n", r.AvgPoneglyph)
	fmt.Fprintf(w, "draws per game:   %.2f\n", r.Stats.DrawsPerGame)

	locs := make([]string, 0, len(r.Stats.DrawsByLocation))
	for loc := range r.Stats.DrawsByLocation {
		locs = append(locs, loc)
	}
	sort.Strings(locs)
	fmt.Fprintln(w, "draws by location:")
	for _, loc := range locs {
		fmt.Fprintf(w, "  %-12s %d\n", loc, r.Stats.DrawsByLocation[loc])
	}

	kinds := make([]string, 0, len(r.Stats.DrawsByKind))
	for k := range r.Stats.DrawsByKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	fmt.Fprintln(w, "draws by kind:")
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-12s %d\n", k, r.Stats.DrawsByKind[k])
	}
}

func pct(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return 100 * float64(n) / float64(of)
}
