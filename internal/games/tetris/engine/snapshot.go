package engine

// Snapshot captures the observable session state for determinism checks.
type Snapshot struct {
	Ticks        uint64
	Score        int
	Lines        int
	Over         bool
	ActiveShape  Shape
	ActiveColor  Color
	ActiveCol    int
	ActiveRow    int
	ActiveMask   string
	NextShape    Shape
	NextColor    Color
	FilledCells  int
	PlayfieldMap string
}

// Snapshot returns the current session snapshot. Two sessions fed the same
// seed and intents produce equal snapshots.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Ticks:        s.ticks,
		Score:        s.score,
		Lines:        s.lines,
		Over:         s.over,
		ActiveShape:  s.active.shape,
		ActiveColor:  s.active.color,
		ActiveCol:    s.active.col,
		ActiveRow:    s.active.row,
		ActiveMask:   s.active.mask.String(),
		NextShape:    s.lookahead.shape,
		NextColor:    s.lookahead.color,
		FilledCells:  s.field.Filled(),
		PlayfieldMap: s.field.String(),
	}
}
