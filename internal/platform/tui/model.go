package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Journaled is implemented by games that can be written to the replay journal.
type Journaled interface {
	Journal() (storage.Replay, bool)
}

// Options configures a game run.
type Options struct {
	Store  *storage.Store // nil disables journaling
	Logger *log.Logger    // nil discards log output
	Config core.RuntimeConfig
	Record bool // journal the game when it ends or the player quits
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	logger     *log.Logger
	keys       *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	saved      bool // Whether the current game has been journaled
	savedID    int64
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, opts Options) Model {
	// Use time-based seed if not specified
	if opts.Config.Seed == 0 {
		opts.Config.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(opts.Config.ScreenW, max(1, opts.Config.ScreenH-1)),
		opts:       opts,
		logger:     logger,
		keys:       NewKeyMapper(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.opts.Config)
	m.logger.Info("session started",
		"game", m.game.ID(),
		"seed", m.opts.Config.Seed,
		"fps", m.opts.Config.TickRate,
	)

	// Start the tick loop
	return tickCmd(m.opts.Config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.saveJournal()
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events. The game keeps running;
// it lays itself out against the new screen on the next render.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Config.ScreenW = msg.Width
	m.opts.Config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(1, msg.Height-1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick runs one platform step with the actions collected since the
// previous tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	switch {
	case m.gameState.GameOver && !wasOver:
		m.logger.Info("game over",
			"game", m.game.ID(),
			"score", m.gameState.Score,
			"lines", m.gameState.Lines,
		)
		m.saveJournal()
	case !m.gameState.GameOver && wasOver:
		// Restarted
		m.saved = false
		m.logger.Info("game restarted", "game", m.game.ID())
	}

	// Continue ticking
	return m, tickCmd(m.opts.Config.TickRate)
}

// saveJournal writes the current game to the replay journal once.
func (m *Model) saveJournal() {
	if !m.opts.Record || m.opts.Store == nil || m.saved {
		return
	}
	j, ok := m.game.(Journaled)
	if !ok {
		return
	}
	entry, ok := j.Journal()
	if !ok {
		return
	}

	id, err := m.opts.Store.SaveReplay(entry)
	if err != nil {
		m.logger.Error("replay not saved", "err", err)
		return
	}
	m.saved = true
	m.savedID = id
	m.logger.Info("replay saved", "id", id, "ticks", entry.TickCount, "score", entry.Score)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// SavedReplayID returns the journal ID of the last saved game, or 0.
func (m Model) SavedReplayID() int64 {
	return m.savedID
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderFrame(m.screen, m.help.View(m.keys.Keys()))
}

// Run starts the Bubble Tea program for game and blocks until the player quits.
// Returns the journal ID of the last saved replay, or 0 if none was saved.
func Run(game registry.Game, opts Options) (int64, error) {
	model := NewModel(game, opts)

	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return 0, err
	}
	if fm, ok := final.(Model); ok {
		return fm.SavedReplayID(), nil
	}
	return 0, nil
}
