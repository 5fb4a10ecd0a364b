package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func browserUpdate(t *testing.T, m BrowserModel, msg tea.Msg) BrowserModel {
	t.Helper()
	next, _ := m.Update(msg)
	bm, ok := next.(BrowserModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected BrowserModel", next)
	}
	return bm
}

func TestBrowserSelectAndDelete(t *testing.T) {
	store := openStore(t)
	var ids []int64
	for i := 0; i < 2; i++ {
		id, err := store.SaveReplay(storage.Replay{Seed: int64(i + 1), Columns: 10, Rows: 20, Palette: "red", Inputs: []string{"L"}})
		if err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
		ids = append(ids, id)
	}

	m := NewBrowserModel(store, 100, 30)
	if len(m.replays) != 2 {
		t.Fatalf("loaded %d replays, expected 2", len(m.replays))
	}

	// Newest first: delete it, then pick the remaining one
	m = browserUpdate(t, m, runeKey('x'))
	if len(m.replays) != 1 {
		t.Fatalf("%d replays after delete, expected 1", len(m.replays))
	}
	m = browserUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() != ids[0] {
		t.Errorf("Selected() = %d, expected %d", m.Selected(), ids[0])
	}
}

func TestBrowserBack(t *testing.T) {
	m := NewBrowserModel(nil, 80, 24)
	m = browserUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() != 0 {
		t.Errorf("Selected() on empty browser = %d, expected 0", m.Selected())
	}
	m = browserUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.View() != "" {
		t.Errorf("View() after back = %q, expected empty", m.View())
	}
}
