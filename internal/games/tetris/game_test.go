package tetris

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func newGame(t *testing.T, tickRate int, seed int64) *Game {
	t.Helper()
	g := New(config.DefaultTetrisConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: tickRate, Seed: seed})
	if g.Err() != nil {
		t.Fatalf("Reset() error: %v", g.Err())
	}
	return g
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(ID) {
		t.Fatalf("game %q not registered", ID)
	}
	g, err := registry.Create(ID)
	if err != nil {
		t.Fatalf("Create(%q) error: %v", ID, err)
	}
	if g.Title() != "Tetris" {
		t.Errorf("Title() = %q, expected %q", g.Title(), "Tetris")
	}
}

func TestStepsPerTick(t *testing.T) {
	tests := []struct {
		rate, tps, expected int
	}{
		{30, 3, 10},
		{31, 3, 10},
		{60, 4, 15},
		{2, 3, 1},
		{0, 3, 1},
		{30, 0, 1},
	}

	for _, tt := range tests {
		if got := stepsPerTick(tt.rate, tt.tps); got != tt.expected {
			t.Errorf("stepsPerTick(%d, %d) = %d, expected %d", tt.rate, tt.tps, got, tt.expected)
		}
	}
}

func TestPacing(t *testing.T) {
	g := newGame(t, 30, 1)

	for i := 0; i < 9; i++ {
		if res := g.Step(frame()); res.Ticks != 0 {
			t.Fatalf("step %d: Ticks = %d, expected 0", i, res.Ticks)
		}
	}
	if res := g.Step(frame()); res.Ticks != 1 {
		t.Errorf("step 10: Ticks = %d, expected 1", res.Ticks)
	}
	if got := g.Session().Ticks(); got != 1 {
		t.Errorf("Session().Ticks() = %d, expected 1", got)
	}
}

func TestIntentsAccumulateBetweenTicks(t *testing.T) {
	g := newGame(t, 6, 7) // two steps per tick
	startCol := g.Session().Active().Column

	g.Step(frame(core.ActionLeft))
	g.Step(frame(core.ActionLeft, core.ActionQuit))

	active := g.Session().Active()
	if active.Column != startCol-2 {
		t.Errorf("Column = %d, expected %d", active.Column, startCol-2)
	}
	if active.Row != 1 {
		t.Errorf("Row = %d, expected 1", active.Row)
	}

	rec := g.Recording()
	if rec.Len() != 1 {
		t.Fatalf("Recording().Len() = %d, expected 1", rec.Len())
	}
	if got := engine.EncodeIntents(rec.Ticks[0]); got != "LL" {
		t.Errorf("recorded intents = %q, expected %q", got, "LL")
	}
}

func TestPauseDiscardsPending(t *testing.T) {
	g := newGame(t, 6, 3)
	startCol := g.Session().Active().Column

	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatalf("State().Paused = false after pause")
	}

	for i := 0; i < 5; i++ {
		if res := g.Step(frame(core.ActionLeft)); res.Ticks != 0 {
			t.Fatalf("paused step %d ticked", i)
		}
	}

	res := g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Fatalf("State().Paused = true after second pause")
	}
	if res.Ticks != 1 {
		t.Fatalf("Ticks = %d, expected 1", res.Ticks)
	}
	if got := g.Session().Active().Column; got != startCol {
		t.Errorf("Column = %d, expected %d", got, startCol)
	}
	if got := len(g.Recording().Ticks[0]); got != 0 {
		t.Errorf("recorded %d intents, expected 0", got)
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	cfg.Board.Columns = 4
	cfg.Board.Rows = 4
	cfg.Game.TicksPerSecond = 1

	g := New(cfg)
	g.Reset(core.RuntimeConfig{TickRate: 1, Seed: 99})

	// Restart is ignored while the game runs
	g.Step(frame(core.ActionRestart))
	if got := g.Session().Ticks(); got != 1 {
		t.Fatalf("Ticks() = %d after running restart, expected 1", got)
	}

	for i := 0; i < 1000 && !g.State().GameOver; i++ {
		g.Step(frame())
	}
	if !g.State().GameOver {
		t.Fatalf("game did not end on a 4x4 board")
	}

	// Steps after game over change nothing
	before := g.Session().Snapshot()
	g.Step(frame(core.ActionLeft))
	if after := g.Session().Snapshot(); after != before {
		t.Errorf("Step() after game over changed the session")
	}

	oldSeed := g.Seed()
	g.Step(frame(core.ActionRestart))
	st := g.State()
	if st.GameOver || st.Score != 0 || st.Lines != 0 {
		t.Errorf("State() after restart = %+v, expected fresh game", st)
	}
	if g.Seed() == oldSeed {
		t.Errorf("Seed() after restart = %d, expected a new seed", g.Seed())
	}
	if g.Recording().Len() != 0 {
		t.Errorf("Recording().Len() after restart = %d, expected 0", g.Recording().Len())
	}
}

func TestDeterminism(t *testing.T) {
	script := []core.Action{core.ActionLeft, core.ActionRotate, core.ActionNone, core.ActionRight, core.ActionSoftDrop}

	run := func() engine.Snapshot {
		g := newGame(t, 3, 12345)
		for i := 0; i < 200; i++ {
			g.Step(frame(script[i%len(script)]))
		}
		return g.Session().Snapshot()
	}

	if a, b := run(), run(); a != b {
		t.Errorf("snapshots differ:\n%+v\n%+v", a, b)
	}
}

func TestReplayReproducesGame(t *testing.T) {
	script := []core.Action{core.ActionRotate, core.ActionLeft, core.ActionLeft, core.ActionSoftDrop, core.ActionRight, core.ActionNone}

	g := newGame(t, 3, 2024)
	for i := 0; i < 150 && !g.State().GameOver; i++ {
		g.Step(frame(script[i%len(script)]))
	}
	want := g.Session().Snapshot()

	entry, ok := g.Journal()
	if !ok {
		t.Fatalf("Journal() ok = false after playing")
	}
	rec, err := FromReplay(entry)
	if err != nil {
		t.Fatalf("FromReplay() error: %v", err)
	}

	r := NewReplay(rec)
	r.Reset(core.RuntimeConfig{TickRate: 3, Seed: 1})
	if r.Title() != "Tetris (Replay)" {
		t.Errorf("Title() = %q", r.Title())
	}
	for i := 0; i < rec.Len(); i++ {
		// Movement input is ignored during playback
		r.Step(frame(core.ActionRight, core.ActionRight))
	}

	if got := r.Session().Snapshot(); got != want {
		t.Errorf("replay snapshot differs:\n got %+v\nwant %+v", got, want)
	}
	if !r.State().GameOver {
		t.Errorf("State().GameOver = false after replay ran out")
	}
	if _, ok := r.Journal(); ok {
		t.Errorf("Journal() ok = true for a replay")
	}
}

func TestJournalEmptyBeforeFirstTick(t *testing.T) {
	g := newGame(t, 30, 5)
	if _, ok := g.Journal(); ok {
		t.Errorf("Journal() ok = true before any tick")
	}
}

func TestFromReplayErrors(t *testing.T) {
	base := storage.Replay{ID: 3, Seed: 1, Columns: 10, Rows: 20, Palette: "red,green"}

	tests := []struct {
		name   string
		mutate func(*storage.Replay)
		target error
	}{
		{"bad board", func(r *storage.Replay) { r.Columns = 0 }, nil},
		{"bad colour", func(r *storage.Replay) { r.Palette = "red,plaid" }, nil},
		{"bad intent", func(r *storage.Replay) { r.Inputs = []string{"L", "LX"} }, engine.ErrUnknownIntent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := base
			tt.mutate(&rep)
			_, err := FromReplay(rep)
			if err == nil {
				t.Fatalf("FromReplay() error = nil, expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("FromReplay() error = %v, expected %v", err, tt.target)
			}
		})
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, 30, 11)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	hud := screen.Row(0)
	if !strings.Contains(hud, "Tetris") || !strings.Contains(hud, "Score: 0") {
		t.Errorf("HUD = %q, expected title and score", hud)
	}

	// 10 columns * 2 chars + border = 22, panel 14, gap 2: well starts at (80-38)/2
	if got := screen.Get(21, 2); got != '┌' {
		t.Errorf("well corner = %q, expected '┌'", got)
	}
	if got := screen.Get(42, 23); got != '┘' {
		t.Errorf("well bottom corner = %q, expected '┘'", got)
	}
	if !strings.Contains(screen.String(), "█") {
		t.Errorf("no blocks rendered")
	}
	if !strings.Contains(screen.String(), "Next") {
		t.Errorf("lookahead box missing")
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newGame(t, 30, 11)

	small := core.NewScreen(20, 10)
	g.Render(small)
	if !strings.Contains(small.String(), "Window too small") {
		t.Errorf("small screen: missing too-small overlay")
	}

	g.Step(frame(core.ActionPause))
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Paused") {
		t.Errorf("paused: missing overlay")
	}
}

func TestReplayRoundTripThroughJournal(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/journal.db")
	if err != nil {
		t.Fatalf("storage.Open() error: %v", err)
	}
	defer store.Close()

	g := newGame(t, 3, 77)
	for i := 0; i < 120 && !g.State().GameOver; i++ {
		g.Step(frame(core.ActionSoftDrop, core.ActionRotate))
	}
	want := g.Session().Snapshot()

	entry, _ := g.Journal()
	id, err := store.SaveReplay(entry)
	if err != nil {
		t.Fatalf("SaveReplay() error: %v", err)
	}
	loaded, err := store.Replay(id)
	if err != nil || loaded == nil {
		t.Fatalf("Replay(%d) = %v, %v", id, loaded, err)
	}
	rec, err := FromReplay(*loaded)
	if err != nil {
		t.Fatalf("FromReplay() error: %v", err)
	}

	r := NewReplay(rec)
	r.Reset(core.RuntimeConfig{TickRate: 3})
	for !r.State().GameOver {
		r.Step(frame())
	}
	if got := r.Session().Snapshot(); got != want {
		t.Errorf("journal replay differs:\n got %+v\nwant %+v", got, want)
	}
}
