// Package tetris adapts the falling-block engine to the game platform.
// It paces engine ticks against the platform step rate, turns platform actions
// into engine intents, records every tick for replays and draws the well.
package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// ID is the registry identifier of the game.
const ID = "tetris"

// Package-level configuration, set by the CLI before the game is created.
var gameConfig = config.DefaultTetrisConfig()

// Configure sets the configuration used by games created afterwards.
// The config should already have passed Validate.
func Configure(cfg config.TetrisConfig) {
	gameConfig = cfg
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New(gameConfig)
	})
}

// Game implements registry.Game for Tetris.
type Game struct {
	cfg     config.TetrisConfig
	palette []engine.Color
	session *engine.Session
	err     error // set when the session could not be created

	rng  *rand.Rand // seeds restarts
	seed int64

	rate         int // platform steps per second
	stepsPerTick int
	stepCounter  int
	pending      []engine.Intent
	paused       bool

	recording *Recording
	replay    *Recording // non-nil when playing back a recording
	replayPos int
}

// New creates a Tetris game with the given configuration.
func New(cfg config.TetrisConfig) *Game {
	return &Game{cfg: cfg}
}

// NewReplay creates a game that plays back rec instead of reading player input.
func NewReplay(rec *Recording) *Game {
	cfg := gameConfig
	cfg.Board.Columns = rec.Columns
	cfg.Board.Rows = rec.Rows
	return &Game{cfg: cfg, replay: rec}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.replay != nil {
		return "Tetris (Replay)"
	}
	return "Tetris"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	seed := cfg.Seed
	palette, err := g.cfg.PaletteColors()
	if err != nil {
		palette = engine.DefaultPalette
	}
	if g.replay != nil {
		seed = g.replay.Seed
		palette = g.replay.Palette
		g.replayPos = 0
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g.seed = seed
	g.rng = rand.New(rand.NewSource(seed))
	g.palette = palette
	g.paused = false
	g.pending = nil
	g.stepCounter = 0
	g.rate = cfg.TickRate
	g.stepsPerTick = stepsPerTick(cfg.TickRate, g.cfg.Game.TicksPerSecond)

	g.session, g.err = engine.NewSession(g.cfg.EngineConfig(), engine.NewRandomProvider(g.rng.Int63(), palette))
	g.recording = &Recording{
		Seed:    seed,
		Columns: g.cfg.Board.Columns,
		Rows:    g.cfg.Board.Rows,
		Palette: append([]engine.Color(nil), palette...),
	}
}

// stepsPerTick converts the platform step rate into steps per engine tick.
func stepsPerTick(platformRate, ticksPerSecond int) int {
	if platformRate <= 0 || ticksPerSecond <= 0 {
		return 1
	}
	return max(1, (platformRate+ticksPerSecond/2)/ticksPerSecond)
}

// Step advances the platform by one frame. Intents collected since the last
// engine tick are applied, in order, when the next tick fires.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && g.finished() {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			TickRate: g.rate,
		})
		return core.StepResult{State: g.State()}
	}

	if g.finished() {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
		g.pending = nil
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.replay == nil {
		for _, a := range in.Actions() {
			if intent, ok := intentFor(a); ok {
				g.pending = append(g.pending, intent)
			}
		}
	}

	g.stepCounter++
	if g.stepCounter < g.stepsPerTick {
		return core.StepResult{State: g.State()}
	}
	g.stepCounter = 0

	g.tick()
	return core.StepResult{State: g.State(), Ticks: 1}
}

// tick runs one engine tick and records it.
func (g *Game) tick() {
	intents := g.pending
	g.pending = nil
	if g.replay != nil {
		intents = g.replay.Ticks[g.replayPos]
		g.replayPos++
	}

	g.session.Tick(intents)
	g.recording.append(intents, g.session)
}

// finished reports whether no more ticks will be processed.
func (g *Game) finished() bool {
	if g.session == nil {
		return true
	}
	if g.session.Over() {
		return true
	}
	return g.replay != nil && g.replayPos >= len(g.replay.Ticks)
}

// intentFor maps a platform action to an engine intent.
func intentFor(a core.Action) (engine.Intent, bool) {
	switch a {
	case core.ActionLeft:
		return engine.IntentMoveLeft, true
	case core.ActionRight:
		return engine.IntentMoveRight, true
	case core.ActionSoftDrop:
		return engine.IntentSoftDrop, true
	case core.ActionRotate:
		return engine.IntentRotate, true
	default:
		return 0, false
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{GameOver: true}
	}
	return core.GameState{
		Score:    g.session.Score(),
		Lines:    g.session.Lines(),
		GameOver: g.finished(),
		Paused:   g.paused,
	}
}

// Recording returns the ticks played so far in the current game.
func (g *Game) Recording() *Recording {
	return g.recording
}

// Journal returns the journal entry for the current game. ok is false for
// replays and for games that have not ticked yet.
func (g *Game) Journal() (rep storage.Replay, ok bool) {
	if g.replay != nil || g.recording == nil || g.recording.Len() == 0 {
		return storage.Replay{}, false
	}
	return g.recording.ToReplay(), true
}

// Session exposes the engine session for inspection. Nil before Reset.
func (g *Game) Session() *engine.Session {
	return g.session
}

// Seed returns the seed of the current game.
func (g *Game) Seed() int64 {
	return g.seed
}

// Err returns the error that prevented the session from starting, if any.
func (g *Game) Err() error {
	return g.err
}
