package t2048

import (
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

// newTestGame creates and resets a game with default settings.
func newTestGame(t *testing.T, mode Mode, cells [][]int) *Game {
	t.Helper()
	g := NewWithSettings(mode, DefaultSettings())
	g.Reset(testConfig(42))
	if cells != nil {
		if err := g.board.SetCells(cells); err != nil {
			t.Fatalf("SetCells: %v", err)
		}
	}
	return g
}

// newCampaignGame creates a campaign game starting at level.
func newCampaignGame(t *testing.T, level int, cells [][]int) *Game {
	t.Helper()
	g := NewWithSettings(ModeCampaign, DefaultSettings())
	g.StartAt(level)
	g.Reset(testConfig(42))
	if cells != nil {
		if err := g.board.SetCells(cells); err != nil {
			t.Fatalf("SetCells: %v", err)
		}
	}
	return g
}

func TestRegisteredModes(t *testing.T) {
	for _, id := range []string{IDClassic, IDEndless, IDCampaign} {
		if !registry.Exists(id) {
			t.Errorf("mode %q not registered", id)
			continue
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, g.ID())
		}
	}
}

func TestDeterministicReset(t *testing.T) {
	g1 := NewWithSettings(ModeClassic, DefaultSettings())
	g1.Reset(testConfig(12345))

	g2 := NewWithSettings(ModeClassic, DefaultSettings())
	g2.Reset(testConfig(12345))

	for _, dir := range []Direction{DirLeft, DirUp, DirRight, DirDown, DirLeft} {
		g1.Move(dir)
		g2.Move(dir)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if !slices.EqualFunc(s1.Cells, s2.Cells, slices.Equal) {
		t.Errorf("Same seed should produce same board:\n%v\nvs\n%v", s1.Cells, s2.Cells)
	}
	if s1.Score != s2.Score || s1.Moves != s2.Moves {
		t.Errorf("snapshots differ: %+v vs %+v", s1, s2)
	}
}

func TestClassicWin(t *testing.T) {
	g := newTestGame(t, ModeClassic, [][]int{
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	if !g.Move(DirLeft) {
		t.Fatal("Move(DirLeft) reported no change")
	}
	if !g.Won() {
		t.Fatal("building 2048 should win a classic game")
	}

	state := g.State()
	if !state.GameOver || !state.Won {
		t.Errorf("State = %+v, want GameOver and Won", state)
	}
	if state.Score != 2048 {
		t.Errorf("Score = %d, want 2048", state.Score)
	}

	// Won is absorbing
	before := g.Board().Cells()
	for _, dir := range []Direction{DirLeft, DirRight, DirUp, DirDown} {
		if g.Move(dir) {
			t.Errorf("Move(%v) accepted after win", dir)
		}
	}
	if !slices.EqualFunc(g.Board().Cells(), before, slices.Equal) {
		t.Error("board changed after win")
	}
}

func TestCustomWinningValue(t *testing.T) {
	s := DefaultSettings()
	s.WinningValue = 16
	g := NewWithSettings(ModeClassic, s)
	g.Reset(testConfig(1))
	_ = g.board.SetCells([][]int{
		{8, 8, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Move(DirLeft)
	if !g.Won() {
		t.Error("building 16 should win with winning value 16")
	}
}

func TestGameOverDetection(t *testing.T) {
	s := DefaultSettings()
	s.Rows, s.Cols = 2, 2
	g := NewWithSettings(ModeClassic, s)
	g.Reset(testConfig(1))
	_ = g.board.SetCells([][]int{
		{0, 2},
		{4, 8},
	})
	// Next spawn is a 4 in the first empty cell
	g.board.rng = fixedSource{index: 0, value: 0}

	if !g.Move(DirLeft) {
		t.Fatal("Move(DirLeft) reported no change")
	}
	if !g.Lost() {
		t.Fatalf("board %v should be lost", g.board.Cells())
	}
	if g.Won() {
		t.Error("lost game should not be won")
	}
	if !g.State().GameOver {
		t.Error("State().GameOver = false, want true")
	}
	if g.Move(DirRight) {
		t.Error("Move accepted after game over")
	}
}

func TestUnknownDirectionIgnored(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)
	before := g.Snapshot()

	if g.Move(DirNone) {
		t.Error("Move(DirNone) reported a change")
	}
	if g.MoveToken('x') {
		t.Error("MoveToken('x') reported a change")
	}

	after := g.Snapshot()
	if !slices.EqualFunc(before.Cells, after.Cells, slices.Equal) || after.Moves != 0 {
		t.Errorf("snapshot changed: %+v", after)
	}
}

func TestUndo(t *testing.T) {
	start := [][]int{
		{2, 2, 0, 0},
		{0, 4, 0, 4},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	g := newTestGame(t, ModeClassic, start)

	if g.CanUndo() {
		t.Error("CanUndo before any move")
	}
	if !g.Move(DirLeft) {
		t.Fatal("Move(DirLeft) reported no change")
	}
	if g.Score() != 12 || g.Moves() != 1 {
		t.Fatalf("after move: score %d moves %d, want 12 and 1", g.Score(), g.Moves())
	}
	if !g.CanUndo() {
		t.Fatal("CanUndo after move = false")
	}

	if !g.Undo() {
		t.Fatal("Undo() = false")
	}
	if !slices.EqualFunc(g.Board().Cells(), start, slices.Equal) {
		t.Errorf("Undo restored\n%v\nwant\n%v", g.Board().Cells(), start)
	}
	if g.Score() != 0 || g.Moves() != 0 {
		t.Errorf("after undo: score %d moves %d, want 0 and 0", g.Score(), g.Moves())
	}

	// One level only
	if g.Undo() {
		t.Error("second Undo() should fail")
	}
}

func TestUndoDisabled(t *testing.T) {
	s := DefaultSettings()
	s.UndoEnabled = false
	g := NewWithSettings(ModeClassic, s)
	g.Reset(testConfig(1))
	_ = g.board.SetCells([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Move(DirLeft)
	if g.CanUndo() || g.Undo() {
		t.Error("undo should be unavailable when disabled")
	}
}

func TestStepActions(t *testing.T) {
	g := newTestGame(t, ModeClassic, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res := g.Step(core.FrameOf(core.ActionLeft))
	if !res.Moved || res.State.Score != 4 {
		t.Fatalf("Step(left) = %+v, want moved with score 4", res)
	}

	res = g.Step(core.FrameOf(core.ActionUndo))
	if !res.Moved || res.State.Score != 0 {
		t.Errorf("Step(undo) = %+v, want moved with score 0", res)
	}

	// Pause blocks moves
	g.Step(core.FrameOf(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	if res := g.Step(core.FrameOf(core.ActionLeft)); res.Moved {
		t.Error("move accepted while paused")
	}
	g.Step(core.FrameOf(core.ActionPause))
	if g.State().Paused {
		t.Error("game should be resumed")
	}

	if res := g.Step(core.NewInputFrame()); res.Moved {
		t.Error("empty frame moved the board")
	}
}

func TestCampaignProgression(t *testing.T) {
	g := newTestGame(t, ModeCampaign, [][]int{
		{32, 32, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	if g.currentTarget != Levels[0].Target {
		t.Fatalf("target = %d, want %d", g.currentTarget, Levels[0].Target)
	}

	g.Step(core.FrameOf(core.ActionLeft))
	if !g.levelCleared {
		t.Fatal("building the target tile should clear the level")
	}
	if g.Won() {
		t.Error("clearing a level should not win the campaign")
	}
	if g.Move(DirRight) {
		t.Error("moves should be ignored while the level-clear banner is up")
	}

	score := g.Score()
	for range levelClearDuration {
		g.Step(core.NewInputFrame())
	}

	if g.levelIndex != 1 {
		t.Fatalf("Should advance to level 2, got level %d", g.levelIndex+1)
	}
	if g.board.WinningValue() != Levels[1].Target {
		t.Errorf("board winning value = %d, want %d", g.board.WinningValue(), Levels[1].Target)
	}
	if g.Score() != score {
		t.Errorf("score = %d after level change, want %d", g.Score(), score)
	}
}

func TestContinueCampaign(t *testing.T) {
	g := newTestGame(t, ModeCampaign, [][]int{
		{32, 32, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	if g.ContinueCampaign() {
		t.Error("ContinueCampaign() = true before any level was cleared")
	}
	if g.Level() != 1 || g.Target() != Levels[0].Target {
		t.Fatalf("Level() = %d, Target() = %d", g.Level(), g.Target())
	}

	g.Move(DirLeft)
	if !g.LevelCleared() {
		t.Fatal("expected level cleared")
	}
	if !g.ContinueCampaign() {
		t.Fatal("ContinueCampaign() = false after a clear")
	}
	if g.LevelCleared() || g.Level() != 2 || g.Target() != Levels[1].Target {
		t.Errorf("after continue: cleared=%v level=%d target=%d", g.LevelCleared(), g.Level(), g.Target())
	}

	classic := newTestGame(t, ModeClassic, nil)
	if classic.Level() != 0 {
		t.Errorf("classic Level() = %d, want 0", classic.Level())
	}
}

func TestCampaignFinalLevelWins(t *testing.T) {
	g := newCampaignGame(t, LevelCount(), nil)

	last := Levels[LevelCount()-1].Target
	_ = g.board.SetCells([][]int{
		{last / 2, last / 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Move(DirLeft)
	for range levelClearDuration {
		g.Step(core.NewInputFrame())
	}

	if !g.Won() {
		t.Error("clearing the last level should win the campaign")
	}
}

func TestStartLevelConsumed(t *testing.T) {
	g := newCampaignGame(t, 3, nil)

	if g.levelIndex != 2 {
		t.Errorf("levelIndex = %d, want 2", g.levelIndex)
	}

	g.Reset(testConfig(42))
	if g.levelIndex != 0 {
		t.Errorf("levelIndex = %d after second reset, want 0", g.levelIndex)
	}

	classic := NewWithSettings(ModeClassic, DefaultSettings())
	classic.StartAt(4)
	classic.Reset(testConfig(42))
	if classic.Level() != 0 {
		t.Errorf("classic Level() = %d, want 0", classic.Level())
	}
}

func TestStartLevelPerGame(t *testing.T) {
	// Games created side by side keep their own start level
	a := NewWithSettings(ModeCampaign, DefaultSettings())
	b := NewWithSettings(ModeCampaign, DefaultSettings())
	a.StartAt(6)
	b.StartAt(2)

	var wg sync.WaitGroup
	for i, g := range []*Game{a, b} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Reset(testConfig(int64(i + 1)))
		}()
	}
	wg.Wait()

	if a.Level() != 6 || b.Level() != 2 {
		t.Errorf("levels = %d, %d, want 6, 2", a.Level(), b.Level())
	}

	c := NewWithSettings(ModeCampaign, DefaultSettings())
	c.Reset(testConfig(3))
	if c.Level() != 1 {
		t.Errorf("game without a start level Level() = %d, want 1", c.Level())
	}
}

func TestCampaignUndoPerLevel(t *testing.T) {
	g := newCampaignGame(t, 5, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Move(DirLeft)
	if g.CanUndo() {
		t.Error("level 5 should not allow undo")
	}
}

func TestEndlessModeNoWin(t *testing.T) {
	g := newTestGame(t, ModeEndless, [][]int{
		{8192, 0, 0, 0},
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(core.FrameOf(core.ActionLeft))

	if g.levelCleared {
		t.Error("Endless mode should not have level cleared")
	}
	if g.won {
		t.Error("Endless mode should not have win state")
	}
	if g.Board().MaxTile() != 8192 {
		t.Errorf("MaxTile = %d, want 8192", g.Board().MaxTile())
	}
}

func TestStartPosition(t *testing.T) {
	s := DefaultSettings()
	s.Start = &Position{
		Name:  "corner",
		Score: 100,
		Cells: [][]int{
			{2, 4, 8},
			{0, 0, 0},
			{0, 0, 2},
		},
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	g := NewWithSettings(ModeClassic, s)
	g.Reset(testConfig(1))

	snap := g.Snapshot()
	if snap.Rows != 3 || snap.Cols != 3 {
		t.Errorf("size = %dx%d, want 3x3", snap.Rows, snap.Cols)
	}
	if snap.Score != 100 {
		t.Errorf("Score = %d, want 100", snap.Score)
	}
	if !slices.EqualFunc(snap.Cells, s.Start.Cells, slices.Equal) {
		t.Errorf("Cells = %v, want %v", snap.Cells, s.Start.Cells)
	}
}

func TestTerminalStartPosition(t *testing.T) {
	tests := []struct {
		name    string
		mode    Mode
		cells   [][]int
		won     bool
		lost    bool
		cleared bool
	}{
		{"dead board", ModeClassic, [][]int{{2, 4}, {4, 2}}, false, true, false},
		{"target already on board", ModeClassic, [][]int{{2048, 0}, {0, 0}}, true, false, false},
		{"endless dead board", ModeEndless, [][]int{{2, 4}, {4, 2}}, false, true, false},
		{"endless ignores big tiles", ModeEndless, [][]int{{4096, 0}, {0, 0}}, false, false, false},
		{"campaign level target", ModeCampaign, [][]int{{64, 0}, {0, 0}}, false, false, true},
		{"playable", ModeClassic, [][]int{{2, 0}, {0, 0}}, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.Start = &Position{Name: tt.name, Cells: tt.cells}
			g := NewWithSettings(tt.mode, s)
			g.Reset(testConfig(1))

			if g.Won() != tt.won || g.Lost() != tt.lost || g.LevelCleared() != tt.cleared {
				t.Errorf("won=%v lost=%v cleared=%v, want %v %v %v",
					g.Won(), g.Lost(), g.LevelCleared(), tt.won, tt.lost, tt.cleared)
			}
			if tt.lost && g.Move(DirLeft) {
				t.Error("Move() accepted on a lost board")
			}
		})
	}
}

func TestCampaignChainedClears(t *testing.T) {
	// A board holding 64 and 128 clears levels 1 and 2 in a row
	s := DefaultSettings()
	s.Start = &Position{Name: "big", Cells: [][]int{
		{64, 128, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}}
	g := NewWithSettings(ModeCampaign, s)
	g.Reset(testConfig(1))

	clears := 0
	for g.ContinueCampaign() {
		clears++
	}
	if clears != 2 {
		t.Errorf("clears = %d, want 2", clears)
	}
	if g.Level() != 3 || g.LevelCleared() {
		t.Errorf("Level() = %d cleared=%v, want level 3 in play", g.Level(), g.LevelCleared())
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"zero rows", func(s *Settings) { s.Rows = 0 }},
		{"bad winning value", func(s *Settings) { s.WinningValue = 1000 }},
		{"bad probability", func(s *Settings) { s.Spawn4Prob = -0.1 }},
		{"bad position value", func(s *Settings) {
			s.Start = &Position{Name: "bad", Cells: [][]int{{3, 0}, {0, 0}}}
		}},
		{"ragged position", func(s *Settings) {
			s.Start = &Position{Name: "ragged", Cells: [][]int{{2, 0}, {0}}}
		}},
		{"negative score", func(s *Settings) {
			s.Start = &Position{Name: "neg", Score: -1, Cells: [][]int{{2, 0}, {0, 0}}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			if err := s.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
			if err := Configure(s); err == nil {
				t.Error("Configure() = nil, want error")
			}
		})
	}

	if err := DefaultSettings().Validate(); err != nil {
		t.Errorf("DefaultSettings().Validate() = %v", err)
	}
}

func TestSnapshot(t *testing.T) {
	g := newTestGame(t, ModeClassic, nil)
	snap := g.Snapshot()

	if snap.Mode != "classic" {
		t.Errorf("Snapshot Mode = %s, want classic", snap.Mode)
	}
	if snap.Level != 0 {
		t.Errorf("Snapshot Level = %d, want 0", snap.Level)
	}
	if snap.Target != DefaultWinningValue {
		t.Errorf("Snapshot Target = %d, want %d", snap.Target, DefaultWinningValue)
	}
	if snap.State != StatePlaying {
		t.Errorf("Snapshot State = %s, want %s", snap.State, StatePlaying)
	}
	if snap.Rows != 4 || snap.Cols != 4 {
		t.Errorf("Snapshot size = %dx%d, want 4x4", snap.Rows, snap.Cols)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, ModeClassic, [][]int{
		{2, 0, 0, 0},
		{0, 2048, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Score: 0", "2048", "Classic"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render output missing %q:\n%s", want, out)
		}
	}
}

func TestScreenTooSmall(t *testing.T) {
	g := NewWithSettings(ModeClassic, DefaultSettings())
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 8, Seed: 1})

	if !g.State().Paused {
		t.Error("small screen should pause the game")
	}
	if res := g.Step(core.FrameOf(core.ActionLeft)); res.Moved {
		t.Error("move accepted on a small screen")
	}

	screen := core.NewScreen(20, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("Render should show size warning:\n%s", screen.String())
	}
}
