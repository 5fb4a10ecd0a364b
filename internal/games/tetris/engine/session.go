package engine

import (
	"errors"
	"fmt"
)

// ErrNilProvider is returned when a session is created without a piece source.
var ErrNilProvider = errors.New("engine: nil piece provider")

// Config fixes the board geometry for the lifetime of a session.
type Config struct {
	Columns int
	Rows    int
}

// DefaultConfig returns the standard 10x20 well.
func DefaultConfig() Config {
	return Config{Columns: 10, Rows: 20}
}

// Validate checks that the board has at least one cell.
func (c Config) Validate() error {
	if c.Columns <= 0 || c.Rows <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, c.Columns, c.Rows)
	}
	return nil
}

// TickResult describes what a single tick did.
type TickResult struct {
	LinesCleared int  // Rows removed by this tick's landing
	ScoreDelta   int  // LinesCleared squared
	Landed       bool // The active piece was merged this tick
	Over         bool // The session is finished
}

// Session is one game: the playfield, the falling piece, the lookahead piece
// and the running score. It is not safe for concurrent use.
type Session struct {
	cfg       Config
	provider  Provider
	field     *Playfield
	active    *Piece
	lookahead *Piece
	score     int
	lines     int
	ticks     uint64
	over      bool
}

// NewSession creates a running session drawing pieces from provider.
func NewSession(cfg Config, provider Provider) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, ErrNilProvider
	}
	field, err := NewPlayfield(cfg.Columns, cfg.Rows)
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:      cfg,
		provider: provider,
		field:    field,
	}
	s.active = s.newPiece()
	s.lookahead = s.newPiece()
	// A board narrower than the first piece ends the game before it starts.
	if s.field.Collides(s.active) {
		s.over = true
	}
	return s, nil
}

func (s *Session) newPiece() *Piece {
	shape := s.provider.NextShape()
	color := s.provider.NextColor()
	return NewPiece(shape, color, s.cfg.Columns)
}

// Tick advances the game by one step: intents are applied in order, gravity
// pulls the active piece down one row, and a piece that cannot fall is merged.
// A finished session ignores further ticks.
func (s *Session) Tick(intents []Intent) TickResult {
	if s.over {
		return TickResult{Over: true}
	}
	s.ticks++

	for _, in := range intents {
		s.apply(in)
	}

	s.active.Shift(0, 1)
	if !s.field.Collides(s.active) {
		return TickResult{}
	}
	s.active.Shift(0, -1)

	return s.land()
}

// apply performs one intent, undoing it if the result does not fit.
func (s *Session) apply(in Intent) {
	p := s.active
	switch in {
	case IntentMoveLeft:
		p.Shift(-1, 0)
		if s.field.Collides(p) {
			p.Shift(1, 0)
		}
	case IntentMoveRight:
		p.Shift(1, 0)
		if s.field.Collides(p) {
			p.Shift(-1, 0)
		}
	case IntentSoftDrop:
		// Landing is only resolved by gravity, so a blocked drop just holds.
		p.Shift(0, 1)
		if s.field.Collides(p) {
			p.Shift(0, -1)
		}
	case IntentRotate:
		p.Rotate(1)
		if s.field.Collides(p) {
			p.Rotate(-1)
		}
	}
}

// land merges the active piece, clears lines, promotes the lookahead piece and
// checks whether it fits.
func (s *Session) land() TickResult {
	s.field.Merge(s.active)
	cleared := s.field.ClearFullLines()
	delta := cleared * cleared
	s.score += delta
	s.lines += cleared

	s.active = s.lookahead
	s.lookahead = s.newPiece()

	if s.field.Collides(s.active) {
		s.over = true
	}

	return TickResult{
		LinesCleared: cleared,
		ScoreDelta:   delta,
		Landed:       true,
		Over:         s.over,
	}
}

// Config returns the board geometry.
func (s *Session) Config() Config { return s.cfg }

// Playfield returns the session's grid. Callers must treat it as read-only.
func (s *Session) Playfield() *Playfield { return s.field }

// Active returns a snapshot of the falling piece.
func (s *Session) Active() PieceView { return s.active.View() }

// Lookahead returns a snapshot of the piece that spawns next.
func (s *Session) Lookahead() PieceView { return s.lookahead.View() }

// Score returns the accumulated score.
func (s *Session) Score() int { return s.score }

// Lines returns the total number of rows cleared.
func (s *Session) Lines() int { return s.lines }

// Ticks returns the number of ticks processed.
func (s *Session) Ticks() uint64 { return s.ticks }

// Over reports whether the game has ended.
func (s *Session) Over() bool { return s.over }
