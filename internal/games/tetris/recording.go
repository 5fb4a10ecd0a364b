package tetris

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Recording holds everything needed to play a game back: the seed, board,
// palette and the intents applied at every engine tick.
type Recording struct {
	Seed    int64
	Columns int
	Rows    int
	Palette []engine.Color
	Ticks   [][]engine.Intent

	// Outcome at the last recorded tick.
	Score int
	Lines int
	Over  bool
}

func (r *Recording) append(intents []engine.Intent, s *engine.Session) {
	r.Ticks = append(r.Ticks, append([]engine.Intent(nil), intents...))
	r.Score = s.Score()
	r.Lines = s.Lines()
	r.Over = s.Over()
}

// Len returns the number of recorded ticks.
func (r *Recording) Len() int {
	return len(r.Ticks)
}

// ToReplay converts the recording into a journal entry.
func (r *Recording) ToReplay() storage.Replay {
	names := make([]string, len(r.Palette))
	for i, c := range r.Palette {
		names[i] = c.String()
	}
	inputs := make([]string, len(r.Ticks))
	for i, tick := range r.Ticks {
		inputs[i] = engine.EncodeIntents(tick)
	}
	return storage.Replay{
		Seed:      r.Seed,
		Columns:   r.Columns,
		Rows:      r.Rows,
		Palette:   strings.Join(names, ","),
		Score:     r.Score,
		Lines:     r.Lines,
		TickCount: len(r.Ticks),
		Finished:  r.Over,
		Inputs:    inputs,
	}
}

// FromReplay rebuilds a recording from a journal entry loaded with its inputs.
func FromReplay(rep storage.Replay) (*Recording, error) {
	if rep.Columns <= 0 || rep.Rows <= 0 {
		return nil, fmt.Errorf("tetris: replay %d: bad board %dx%d", rep.ID, rep.Columns, rep.Rows)
	}

	var palette []engine.Color
	for _, name := range strings.Split(rep.Palette, ",") {
		c, ok := engine.ParseColor(name)
		if !ok {
			return nil, fmt.Errorf("tetris: replay %d: unknown colour %q", rep.ID, name)
		}
		palette = append(palette, c)
	}

	ticks := make([][]engine.Intent, len(rep.Inputs))
	for i, codes := range rep.Inputs {
		intents, err := engine.DecodeIntents(codes)
		if err != nil {
			return nil, fmt.Errorf("tetris: replay %d tick %d: %w", rep.ID, i, err)
		}
		ticks[i] = intents
	}

	return &Recording{
		Seed:    rep.Seed,
		Columns: rep.Columns,
		Rows:    rep.Rows,
		Palette: palette,
		Ticks:   ticks,
		Score:   rep.Score,
		Lines:   rep.Lines,
		Over:    rep.Finished,
	}, nil
}
