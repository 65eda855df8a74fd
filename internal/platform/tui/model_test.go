package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var testConfig = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3}

// nearWin returns a classic game one left move away from 2048.
func nearWin() *t2048.Game {
	s := t2048.DefaultSettings()
	s.Start = &t2048.Position{Name: "near win", Cells: [][]int{
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}}
	return t2048.NewWithSettings(t2048.ModeClassic, s)
}

func step(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T, want Model", next)
		}
	}
	return m
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestModelSavesScoreOnWin(t *testing.T) {
	store := openStore(t)
	m := NewModel(nearWin(), store, nil, testConfig)

	m = step(t, m, runeKey("a"), TickMsg(time.Now()))
	if !m.gameState.GameOver || !m.gameState.Won {
		t.Fatalf("state = %+v, want won game over", m.gameState)
	}

	// Extra ticks must not save twice
	step(t, m, TickMsg(time.Now()), TickMsg(time.Now()))

	scores, err := store.TopScores(t2048.IDClassic, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores, want 1", len(scores))
	}
	got := scores[0]
	if got.Score != 2048 || got.MaxTile != 2048 || got.Moves != 1 || got.BoardSize != "4x4" || !got.Won {
		t.Errorf("saved entry = %+v", got)
	}
}

func TestModelRestartOnlyAfterGameOver(t *testing.T) {
	m := NewModel(nearWin(), nil, nil, testConfig)

	m = step(t, m, runeKey("r"), TickMsg(time.Now()))
	if m.game.State().Score != 0 || m.gameState.GameOver {
		t.Fatalf("restart before game over changed state: %+v", m.gameState)
	}

	m = step(t, m, runeKey("a"), TickMsg(time.Now()))
	if !m.gameState.GameOver {
		t.Fatal("expected game over after winning move")
	}

	m = step(t, m, runeKey("r"), TickMsg(time.Now()))
	if m.gameState.GameOver {
		t.Error("restart after game over should start a new game")
	}
}

func TestModelEscPausesAndEmbeddedGoesBack(t *testing.T) {
	m := NewModel(nearWin(), nil, nil, testConfig)
	m.embedded = true

	esc := tea.KeyMsg{Type: tea.KeyEsc}
	m = step(t, m, esc, TickMsg(time.Now()))
	if !m.gameState.Paused {
		t.Fatal("esc should pause")
	}
	if m.BackToMenu() {
		t.Fatal("first esc should only pause")
	}

	m = step(t, m, esc)
	if !m.BackToMenu() {
		t.Error("esc while paused should go back to menu")
	}
}

func TestModelEmbeddedEscAfterGameOver(t *testing.T) {
	m := NewModel(nearWin(), nil, nil, testConfig)
	m.embedded = true

	m = step(t, m, runeKey("a"), TickMsg(time.Now()))
	if !m.gameState.GameOver {
		t.Fatal("expected game over after winning move")
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc after game over should go back to menu")
	}

	// Standalone models keep pausing
	m = NewModel(nearWin(), nil, nil, testConfig)
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc}, TickMsg(time.Now()), tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("standalone model should never ask for the menu")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(nearWin(), nil, nil, testConfig)
	next, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if !next.(Model).IsQuitting() {
		t.Error("IsQuitting() = false after q")
	}
	if next.(Model).View() != "" {
		t.Error("View() should be empty while quitting")
	}
}

func TestModelResizeKeepsBoard(t *testing.T) {
	m := NewModel(nearWin(), nil, nil, testConfig)
	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	g := m.game.(*t2048.Game)
	if g.Board().Cell(0, 0) != 1024 {
		t.Error("resize should not restart the game")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, want 100x39", m.screen.Width(), m.screen.Height())
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(nearWin(), nil, nil, testConfig)
	view := m.View()

	for _, want := range []string{"1024", "Score", "Undo"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestScoreEntryFor(t *testing.T) {
	g := nearWin()
	g.Reset(testConfig)
	g.Move(t2048.DirLeft)

	entry := ScoreEntryFor(g)
	if entry.GameID != t2048.IDClassic {
		t.Errorf("GameID = %q, want %q", entry.GameID, t2048.IDClassic)
	}
	if entry.Score != 2048 || entry.MaxTile != 2048 || entry.Moves != 1 || !entry.Won {
		t.Errorf("entry = %+v", entry)
	}
	if entry.BoardSize != "4x4" {
		t.Errorf("BoardSize = %q, want 4x4", entry.BoardSize)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "Score")
	s.DrawTextColored(0, 1, "2048", core.ColorYellow)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() produced %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "Score") || !strings.Contains(lines[1], "2048") {
		t.Errorf("RenderScreen() = %q", out)
	}
}

func TestScoreboardShowsEntries(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore(storage.ScoreEntry{
		GameID: t2048.IDClassic, Score: 4242, MaxTile: 512, Moves: 300, BoardSize: "4x4",
	}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	m := NewScoreboardModel(store, 120, 30)
	if len(m.games) != 3 {
		t.Fatalf("scoreboard lists %d modes, want 3", len(m.games))
	}
	if m.games[m.gameCursor].ID != t2048.IDClassic {
		t.Fatalf("first mode = %q, want %q", m.games[m.gameCursor].ID, t2048.IDClassic)
	}

	view := m.View()
	for _, want := range []string{"4242", "512", "300"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	next, _ := m.Update(keyTab)
	m = next.(ScoreboardModel)
	// Modes are listed by ID
	if m.games[m.gameCursor].ID != t2048.IDCampaign {
		t.Errorf("tab moved to %q, want %q", m.games[m.gameCursor].ID, t2048.IDCampaign)
	}
}
