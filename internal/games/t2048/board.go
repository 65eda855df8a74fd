package t2048

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	// DefaultSize is the classic board dimension.
	DefaultSize = 4

	// DefaultWinningValue is the tile that wins a classic game.
	DefaultWinningValue = 2048

	// DefaultSpawn4Probability is the chance a spawned tile is 4 instead of 2.
	DefaultSpawn4Probability = 0.10
)

var (
	ErrInvalidSize   = errors.New("t2048: board dimensions must be positive")
	ErrInvalidOption = errors.New("t2048: invalid board option")
	ErrInvalidCells  = errors.New("t2048: invalid cells")
)

// Pos addresses a single cell.
type Pos struct {
	Row, Col int
}

// Board is a rows x cols grid of tiles plus the score earned on it.
// Cells are stored row-major; 0 marks an empty cell, every other value is
// a power of two. A Board is not safe for concurrent use.
type Board struct {
	rows         int
	cols         int
	cells        []int
	score        int
	winningValue int     // 0 disables the win check
	spawn4Prob   float64 // Probability of spawning 4 instead of 2
	rng          Source
}

// BoardOption customizes a Board at construction time.
type BoardOption func(*Board) error

// WithWinningValue sets the tile value that wins the game. 0 means no win.
func WithWinningValue(v int) BoardOption {
	return func(b *Board) error {
		if v != 0 && !isTileValue(v) {
			return fmt.Errorf("%w: winning value %d is not a power of two", ErrInvalidOption, v)
		}
		b.winningValue = v
		return nil
	}
}

// WithSpawn4Probability sets the chance that a spawned tile is a 4.
func WithSpawn4Probability(p float64) BoardOption {
	return func(b *Board) error {
		if p < 0 || p > 1 {
			return fmt.Errorf("%w: spawn probability %v outside [0, 1]", ErrInvalidOption, p)
		}
		b.spawn4Prob = p
		return nil
	}
}

// WithSource injects the random source used for spawning.
func WithSource(src Source) BoardOption {
	return func(b *Board) error {
		if src == nil {
			return fmt.Errorf("%w: nil random source", ErrInvalidOption)
		}
		b.rng = src
		return nil
	}
}

// WithSeed seeds a fresh PCG source. 0 means time based.
func WithSeed(seed int64) BoardOption {
	return func(b *Board) error {
		b.rng = NewSource(seed)
		return nil
	}
}

// NewBoard creates a board and places the two starting tiles.
func NewBoard(rows, cols int, opts ...BoardOption) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, rows, cols)
	}

	b := &Board{
		rows:         rows,
		cols:         cols,
		cells:        make([]int, rows*cols),
		winningValue: DefaultWinningValue,
		spawn4Prob:   DefaultSpawn4Probability,
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	if b.rng == nil {
		b.rng = NewSource(0)
	}

	b.Reset()
	return b, nil
}

// Reset empties the board, zeroes the score and spawns two tiles.
func (b *Board) Reset() {
	clear(b.cells)
	b.score = 0
	b.spawnTile()
	b.spawnTile()
}

// Rows returns the number of rows.
func (b *Board) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b *Board) Cols() int { return b.cols }

// Score returns the sum of all merges made on this board.
func (b *Board) Score() int { return b.score }

// WinningValue returns the configured winning tile (0 if none).
func (b *Board) WinningValue() int { return b.winningValue }

// Cell returns the value at (row, col). Out-of-range positions read as 0.
func (b *Board) Cell(row, col int) int {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return 0
	}
	return b.cells[row*b.cols+col]
}

// Cells returns a copy of the grid as rows.
func (b *Board) Cells() [][]int {
	out := make([][]int, b.rows)
	for r := range b.rows {
		out[r] = slices.Clone(b.cells[r*b.cols : (r+1)*b.cols])
	}
	return out
}

// SetCells replaces the grid contents. The shape must match the board and
// every value must be 0 or a power of two >= 2. The score is left as is.
func (b *Board) SetCells(cells [][]int) error {
	if len(cells) != b.rows {
		return fmt.Errorf("%w: want %d rows, got %d", ErrInvalidCells, b.rows, len(cells))
	}
	for r, row := range cells {
		if len(row) != b.cols {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidCells, r, len(row), b.cols)
		}
		for c, v := range row {
			if v != 0 && !isTileValue(v) {
				return fmt.Errorf("%w: value %d at (%d, %d)", ErrInvalidCells, v, r, c)
			}
		}
	}

	for r, row := range cells {
		copy(b.cells[r*b.cols:], row)
	}
	return nil
}

// Clone returns a deep copy of the board. The copy shares the random source.
func (b *Board) Clone() *Board {
	c := *b
	c.cells = slices.Clone(b.cells)
	return &c
}

// Move slides every row or column in the given direction.
// If anything moved, one random tile is spawned. Returns whether the board
// changed; DirNone and unknown directions change nothing.
func (b *Board) Move(dir Direction) bool {
	var changed bool
	var delta int

	switch dir {
	case DirLeft:
		changed, delta = b.sweepRows(TowardStart)
	case DirRight:
		changed, delta = b.sweepRows(TowardEnd)
	case DirUp:
		changed, delta = b.sweepCols(TowardStart)
	case DirDown:
		changed, delta = b.sweepCols(TowardEnd)
	default:
		return false
	}

	b.score += delta
	if changed {
		b.spawnTile()
	}
	return changed
}

// MoveToken applies a w/a/s/d token. Any other token is ignored.
func (b *Board) MoveToken(token rune) bool {
	dir, ok := ParseDirection(token)
	if !ok {
		return false
	}
	return b.Move(dir)
}

// sweepRows reduces every row in place.
func (b *Board) sweepRows(toward Orientation) (changed bool, delta int) {
	for r := range b.rows {
		row := b.cells[r*b.cols : (r+1)*b.cols]
		out, moved, score := ReduceLine(row, toward)
		copy(row, out)
		changed = changed || moved
		delta += score
	}
	return changed, delta
}

// sweepCols reduces every column in place.
func (b *Board) sweepCols(toward Orientation) (changed bool, delta int) {
	col := make([]int, b.rows)
	for c := range b.cols {
		for r := range b.rows {
			col[r] = b.cells[r*b.cols+c]
		}
		out, moved, score := ReduceLine(col, toward)
		for r := range b.rows {
			b.cells[r*b.cols+c] = out[r]
		}
		changed = changed || moved
		delta += score
	}
	return changed, delta
}

// EmptyCells returns the positions of all empty cells in row-major order.
func (b *Board) EmptyCells() []Pos {
	var cells []Pos
	for i, v := range b.cells {
		if v == 0 {
			cells = append(cells, Pos{Row: i / b.cols, Col: i % b.cols})
		}
	}
	return cells
}

// IsFull reports whether no cell is empty.
func (b *Board) IsFull() bool {
	return !slices.Contains(b.cells, 0)
}

// CanMove reports whether any move would change the board: either a cell
// is empty or two orthogonally adjacent cells hold the same value.
func (b *Board) CanMove() bool {
	if !b.IsFull() {
		return true
	}

	for r := range b.rows {
		for c := range b.cols {
			val := b.cells[r*b.cols+c]
			// Check right neighbor
			if c+1 < b.cols && b.cells[r*b.cols+c+1] == val {
				return true
			}
			// Check bottom neighbor
			if r+1 < b.rows && b.cells[(r+1)*b.cols+c] == val {
				return true
			}
		}
	}
	return false
}

// ReachedWinningValue reports whether the winning tile is on the board.
func (b *Board) ReachedWinningValue() bool {
	if b.winningValue == 0 {
		return false
	}
	return slices.Contains(b.cells, b.winningValue)
}

// MaxTile returns the highest tile value on the board.
func (b *Board) MaxTile() int {
	return slices.Max(b.cells)
}

// spawnTile places a 2 or 4 on a random empty cell.
// Uses one draw for the cell and one for the value; no-op when full.
func (b *Board) spawnTile() (Pos, int, bool) {
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return Pos{}, 0, false
	}

	cell := empty[b.rng.IntN(len(empty))]

	// 90% 2, 10% 4 by default
	value := 2
	if b.rng.Float64() < b.spawn4Prob {
		value = 4
	}

	b.cells[cell.Row*b.cols+cell.Col] = value
	return cell, value, true
}

// String renders the grid as plain text, one framed row per line.
func (b *Board) String() string {
	width := len(strconv.Itoa(max(b.MaxTile(), b.winningValue)))
	sep := "+" + strings.Repeat(strings.Repeat("-", width+2)+"+", b.cols) + "\n"

	var sb strings.Builder
	sb.WriteString(sep)
	for r := range b.rows {
		sb.WriteString("|")
		for c := range b.cols {
			v := b.cells[r*b.cols+c]
			if v == 0 {
				fmt.Fprintf(&sb, " %*s |", width, "")
			} else {
				fmt.Fprintf(&sb, " %*d |", width, v)
			}
		}
		sb.WriteString("\n")
		sb.WriteString(sep)
	}
	return sb.String()
}

// isTileValue reports whether v is a power of two >= 2.
func isTileValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
