package t2048

import (
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic  Mode = "classic"
	ModeEndless  Mode = "endless"
	ModeCampaign Mode = "campaign"
)

// Registered game IDs.
const (
	IDClassic  = "2048"
	IDEndless  = "2048_endless"
	IDCampaign = "2048_campaign"
)

// levelClearDuration is how long the "level cleared" banner stays up.
const levelClearDuration = 120 // 2 seconds at 60fps

// Game is one 2048 session: a Board plus mode rules, undo and the
// terminal-state flags. Won and lost are absorbing until Reset.
type Game struct {
	mode     Mode
	settings Settings
	tick     uint64

	board *Board
	prev  *Board // Board before the last accepted move, nil if none
	moves int

	levelIndex    int // Current level (0-indexed)
	startLevel    int // Level for the next Reset (1-indexed), 0 for the first
	currentTarget int // Current tile target, 0 in endless mode

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver        bool
	won             bool
	levelCleared    bool
	paused          bool
	tooSmall        bool
	levelClearTicks int
}

// New creates a classic game using the configured settings.
func New() *Game {
	return NewWithSettings(ModeClassic, CurrentSettings())
}

// NewEndless creates an endless game using the configured settings.
func NewEndless() *Game {
	return NewWithSettings(ModeEndless, CurrentSettings())
}

// NewCampaign creates a campaign game using the configured settings.
func NewCampaign() *Game {
	return NewWithSettings(ModeCampaign, CurrentSettings())
}

// NewWithSettings creates a game with explicit settings. The settings are
// expected to be valid (see Settings.Validate); the board is built on Reset.
func NewWithSettings(mode Mode, s Settings) *Game {
	return &Game{
		mode:     mode,
		settings: s,
	}
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDEndless, func() registry.Game {
		return NewEndless()
	})
	registry.Register(IDCampaign, func() registry.Game {
		return NewCampaign()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	switch g.mode {
	case ModeEndless:
		return IDEndless
	case ModeCampaign:
		return IDCampaign
	default:
		return IDClassic
	}
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case ModeEndless:
		return "2048 (Endless)"
	case ModeCampaign:
		return "2048 (Campaign)"
	default:
		return "2048"
	}
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// StartAt makes the next Reset begin the campaign at level (1-indexed).
// Restarts after that go back to level 1. Other modes ignore it.
func (g *Game) StartAt(level int) {
	g.startLevel = level
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.moves = 0
	g.prev = nil
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.gameOver = false
	g.won = false
	g.levelCleared = false
	g.paused = false
	g.levelClearTicks = 0

	g.levelIndex = 0
	if g.mode == ModeCampaign && g.startLevel > 0 && g.startLevel <= LevelCount() {
		g.levelIndex = g.startLevel - 1
	}
	g.startLevel = 0

	g.board = g.newBoard(cfg.Seed)
	g.loadLevel()
	g.settle()
	g.checkScreenSize()
}

// settle applies the terminal checks to the current board. A starting
// position may already hold the target or have no move left.
func (g *Game) settle() {
	if g.board.ReachedWinningValue() {
		if g.mode == ModeCampaign {
			g.levelCleared = true
			g.levelClearTicks = 0
		} else {
			g.won = true
		}
		return
	}
	if !g.board.CanMove() {
		g.gameOver = true
	}
}

// newBoard builds the starting board for the current settings.
// Settings are validated by Configure, so a failure here falls back to
// the default classic board rather than leaving the game without one.
func (g *Game) newBoard(seed int64) *Board {
	rows, cols := g.settings.dims()
	opts := []BoardOption{
		WithSeed(seed),
		WithWinningValue(g.winningValue()),
		WithSpawn4Probability(g.spawn4Prob()),
	}

	b, err := NewBoard(rows, cols, opts...)
	if err != nil {
		b, _ = NewBoard(DefaultSize, DefaultSize, WithSeed(seed))
		return b
	}

	if start := g.settings.Start; start != nil && b.SetCells(start.Cells) == nil {
		b.score = max(start.Score, 0)
	}
	return b
}

// winningValue returns the board's win tile for the current mode.
func (g *Game) winningValue() int {
	switch g.mode {
	case ModeEndless:
		return 0
	case ModeCampaign:
		if level := GetLevel(g.levelIndex); level != nil {
			return level.Target
		}
		return 0
	default:
		return g.settings.WinningValue
	}
}

// spawn4Prob returns the spawn probability for the current mode.
func (g *Game) spawn4Prob() float64 {
	if g.mode == ModeCampaign {
		if level := GetLevel(g.levelIndex); level != nil {
			return level.Spawn4
		}
	}
	return g.settings.Spawn4Prob
}

// loadLevel applies the current level parameters to the board.
func (g *Game) loadLevel() {
	g.currentTarget = g.winningValue()
	g.board.winningValue = g.currentTarget
	g.board.spawn4Prob = g.spawn4Prob()
}

// undoAllowed reports whether undo is available in the current mode/level.
func (g *Game) undoAllowed() bool {
	if !g.settings.UndoEnabled {
		return false
	}
	if g.mode == ModeCampaign {
		level := GetLevel(g.levelIndex)
		return level != nil && level.Undo
	}
	return true
}

// checkScreenSize checks if the screen is large enough for the board.
func (g *Game) checkScreenSize() {
	minW, minH := g.minScreenSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Resize updates the screen dimensions without restarting the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.board != nil {
		g.checkScreenSize()
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver && !g.won {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= levelClearDuration {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	// Restart is handled by the platform
	if g.gameOver || g.won {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionUndo) {
		moved := g.Undo()
		return core.StepResult{State: g.State(), Moved: moved}
	}

	var dir Direction
	switch {
	case in.Has(core.ActionUp):
		dir = DirUp
	case in.Has(core.ActionDown):
		dir = DirDown
	case in.Has(core.ActionLeft):
		dir = DirLeft
	case in.Has(core.ActionRight):
		dir = DirRight
	}

	moved := g.Move(dir)
	return core.StepResult{State: g.State(), Moved: moved}
}

// Move applies one move and updates the terminal state.
// Returns whether the board changed. Moves after the game ended are ignored.
func (g *Game) Move(dir Direction) bool {
	if g.board == nil || g.gameOver || g.won || g.levelCleared {
		return false
	}

	before := g.board.Clone()
	if !g.board.Move(dir) {
		return false
	}

	g.moves++
	g.prev = nil
	if g.undoAllowed() {
		g.prev = before
	}

	g.settle()
	return true
}

// MoveToken applies a w/a/s/d token; anything else is ignored.
func (g *Game) MoveToken(token rune) bool {
	dir, ok := ParseDirection(token)
	if !ok {
		return false
	}
	return g.Move(dir)
}

// Undo restores the board as it was before the last move.
// Only one level of history is kept.
func (g *Game) Undo() bool {
	if !g.CanUndo() {
		return false
	}
	g.board = g.prev
	g.prev = nil
	g.moves--
	return true
}

// CanUndo reports whether a move can currently be taken back.
func (g *Game) CanUndo() bool {
	return g.prev != nil && !g.gameOver && !g.won && !g.levelCleared
}

// LevelCleared reports whether a campaign level target was just reached.
func (g *Game) LevelCleared() bool {
	return g.levelCleared
}

// Level returns the current campaign level (1-indexed), 0 outside campaign.
func (g *Game) Level() int {
	if g.mode != ModeCampaign {
		return 0
	}
	return g.levelIndex + 1
}

// Target returns the tile value that ends the current game or level,
// 0 when there is none.
func (g *Game) Target() int {
	return g.currentTarget
}

// ContinueCampaign skips the level-cleared pause and loads the next level.
// Returns false when no level was cleared.
func (g *Game) ContinueCampaign() bool {
	if !g.levelCleared {
		return false
	}
	g.advanceLevel()
	return true
}

// advanceLevel moves to the next level, keeping board and score.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0
	g.prev = nil

	if g.levelIndex >= LevelCount()-1 {
		// Completed all levels
		g.won = true
		return
	}

	g.levelIndex++
	g.loadLevel()
	g.settle()
}

// Board returns a copy of the current board.
func (g *Game) Board() *Board {
	if g.board == nil {
		return nil
	}
	return g.board.Clone()
}

// Score returns the current score.
func (g *Game) Score() int {
	if g.board == nil {
		return 0
	}
	return g.board.Score()
}

// Moves returns the number of accepted moves.
func (g *Game) Moves() int {
	return g.moves
}

// Won reports whether the game ended in victory.
func (g *Game) Won() bool {
	return g.won
}

// Lost reports whether no move is left.
func (g *Game) Lost() bool {
	return g.gameOver
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.Score(),
		GameOver: g.gameOver || g.won,
		Won:      g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}
