package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePaused       GameStateType = "paused"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Mode    string
	Level   int // Current level (1-indexed), 0 outside campaign
	Target  int // Current target tile value, 0 in endless mode
	Score   int
	Moves   int
	Rows    int
	Cols    int
	Cells   [][]int
	MaxTile int
	CanUndo bool
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	case g.paused:
		state = StatePaused
	}

	snap := Snapshot{
		Tick:    g.tick,
		Mode:    string(g.mode),
		Target:  g.currentTarget,
		Moves:   g.moves,
		CanUndo: g.CanUndo(),
		State:   state,
	}
	if g.mode == ModeCampaign {
		snap.Level = g.levelIndex + 1
	}
	if g.board != nil {
		snap.Score = g.board.Score()
		snap.Rows = g.board.Rows()
		snap.Cols = g.board.Cols()
		snap.Cells = g.board.Cells()
		snap.MaxTile = g.board.MaxTile()
	}
	return snap
}
