package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/pentis/ecs"
	"github.com/plus3/pentis/generator"
	"github.com/plus3/pentis/internal/logger"
	"github.com/plus3/pentis/playfield"
	"github.com/spf13/cobra"
)

type simulateOptions struct {
	frames   int
	dt       float64
	seed     uint64
	width    int
	height   int
	selector string
	realtime time.Duration
	show     bool
}

func newSimulateCmd(a *app) *cobra.Command {
	opts := &simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play a headless game against a random autopilot",
		Long: `Plays a game with an autopilot that rotates and shifts every piece at random
before dropping it, then prints a report. By default frames are stepped with a
fixed delta time; --realtime runs the scheduler on a ticker instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.simulate(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.frames, "frames", 10000, "maximum number of stepped frames")
	flags.Float64Var(&opts.dt, "dt", 0, "seconds per stepped frame (default: the configured tick)")
	flags.Uint64Var(&opts.seed, "seed", 0, "random seed (default: the configured seed)")
	flags.IntVar(&opts.width, "width", 0, "grid width override")
	flags.IntVar(&opts.height, "height", 0, "grid height override")
	flags.StringVar(&opts.selector, "selector", "", "shape selector override: uniform or bag")
	flags.DurationVar(&opts.realtime, "realtime", 0, "run on the wall clock for this long instead of stepping")
	flags.BoolVar(&opts.show, "show", false, "print the final board")
	return cmd
}

func (a *app) simulate(cmd *cobra.Command, opts *simulateOptions) error {
	cfg := *a.cfg
	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Grid.Width = opts.width
	}
	if flags.Changed("height") {
		cfg.Grid.Height = opts.height
	}
	if flags.Changed("selector") {
		cfg.Selector = opts.selector
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.seed
	}
	if err := cfg.Validate(); err != nil {
		return printError(cmd, "Invalid simulation settings", err)
	}

	runID := uuid.New()
	seed := cfg.ResolvedSeed()
	log := logger.ForComponent("simulate").With("run", runID.String())

	gen, err := cfg.NewGenerator(seed)
	if err != nil {
		return printError(cmd, "Could not create the piece generator", err)
	}
	game := playfield.NewGame(gen, cfg.Playfield(), playfield.WithLogger(log))
	pilot := newAutopilot(generator.NewRand(^seed), cfg.Grid.Width)
	sched := playfield.NewScheduler(game, pilot)

	report := &Report{
		RunID:     runID.String(),
		Seed:      seed,
		Grid:      gen.Extent().String(),
		PieceSize: cfg.PieceSize,
		Selector:  cfg.Selector,
		Shapes:    gen.Library().Len(),
	}

	log.Info("simulation started", "grid", report.Grid, "seed", seed, "selector", cfg.Selector)
	start := time.Now()

	if opts.realtime > 0 {
		report.Mode = "realtime"
		ctx, cancel := context.WithTimeout(cmd.Context(), opts.realtime)
		defer cancel()
		err := sched.Run(ctx, cfg.Play.Tick)
		if err != nil && !errors.Is(err, playfield.ErrGameOver) && !errors.Is(err, context.DeadlineExceeded) {
			return printError(cmd, "Simulation interrupted", err)
		}
	} else {
		report.Mode = "stepped"
		dt := opts.dt
		if dt <= 0 {
			dt = cfg.Play.Tick.Seconds()
		}
		report.DeltaTime = dt
		for range opts.frames {
			frameStart := time.Now()
			err := sched.Once(dt)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(frameStart))
			if err != nil {
				break
			}
		}
	}

	report.TotalTime = time.Since(start)
	report.UpdateTime.Finalize()
	stats := sched.Stats()
	snap := game.Snapshot()
	report.finishGame(stats.Frames, snap.Pieces, snap.Lines, snap.StackHeight, snap.Over, snap.Reason)
	report.Systems = stats.Systems

	log.Info("simulation finished", "frames", report.Frames, "pieces", report.Pieces, "lines", report.Lines, "over", report.Over)

	w := cmd.OutOrStdout()
	if opts.show {
		writeBoard(w, snap)
	}
	if err := report.Generate(w); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	return nil
}

// autopilot plans each new piece once: a random number of quarter turns and
// a random target column, then a hard drop. Blocked steps are skipped by the
// input system.
type autopilot struct {
	Falling ecs.Query[struct{ *playfield.Falling }]
	State   ecs.Singleton[playfield.GameState]
	Input   ecs.Singleton[playfield.Input]

	rng   *rand.Rand
	width int
	seen  int
}

func newAutopilot(rng *rand.Rand, width int) *autopilot {
	return &autopilot{rng: rng, width: width}
}

func (a *autopilot) Execute(frame *ecs.UpdateFrame) {
	st := a.State.Get()
	active, ok := a.Falling.First()
	if st.Over || !ok || st.Pieces == a.seen {
		return
	}
	a.seen = st.Pieces
	actions := a.Input.Get().Actions

	for range a.rng.IntN(4) {
		actions.Push(playfield.ActionRotate)
	}
	shift := a.rng.IntN(a.width) - active.Piece.Center().X()
	step := playfield.ActionRight
	if shift < 0 {
		step, shift = playfield.ActionLeft, -shift
	}
	for range shift {
		actions.Push(step)
	}
	actions.Push(playfield.ActionDrop)
}
