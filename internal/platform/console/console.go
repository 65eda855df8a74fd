// Package console runs a 2048 game as a line-oriented prompt loop:
// print the board, read one token, apply it, repeat until the game ends.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

const (
	Prompt      = "Enter a move (w/a/s/d, r to undo, q to quit): "
	LoseMessage = "Game over. You lose."

	clearSequence = "\x1b[H\x1b[2J"
)

// WinMessage returns the line printed when the winning tile is built.
func WinMessage(value int) string {
	return fmt.Sprintf("Congratulations! You have reached %d!", value)
}

// Options configures the prompt loop.
type Options struct {
	ClearScreen bool        // Emit an ANSI clear before each redraw
	Logger      *log.Logger // Optional; nil disables logging
}

// Result summarizes a finished session.
type Result struct {
	Score   int
	MaxTile int
	Moves   int
	Won     bool
	Lost    bool
	Quit    bool // Ended by q, EOF or context cancellation
}

// Run plays g until it is won or lost, input runs out, the player quits
// or ctx is cancelled. The game must already be Reset.
func Run(ctx context.Context, in io.Reader, out io.Writer, g *t2048.Game, opts Options) Result {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	draw(out, g, opts.ClearScreen)
	if finished(out, g, logger) {
		return result(g, false)
	}
	for {
		fmt.Fprint(out, Prompt)

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return result(g, true)
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(out)
			return result(g, true)
		}

		token, valid := parseToken(line)
		switch {
		case !valid:
			fmt.Fprintln(out, "Unknown move. Use w, a, s or d.")
			continue
		case token == 'q':
			logger.Debug("player quit", "score", g.Score(), "moves", g.Moves())
			return result(g, true)
		case token == 'r' || token == 'u':
			if !g.Undo() {
				fmt.Fprintln(out, "Nothing to undo.")
				continue
			}
			logger.Debug("undo", "score", g.Score())
			draw(out, g, opts.ClearScreen)
			continue
		}

		dir, _ := t2048.ParseDirection(token)
		if !g.Move(dir) {
			fmt.Fprintln(out, "That move changes nothing.")
			continue
		}
		logger.Debug("move", "dir", dir, "score", g.Score(), "moves", g.Moves())
		draw(out, g, opts.ClearScreen)

		if finished(out, g, logger) {
			return result(g, false)
		}
	}
}

// finished reports the outcome of the last board change. Cleared campaign
// levels are continued right away; it returns true once the game is won or lost.
func finished(out io.Writer, g *t2048.Game, logger *log.Logger) bool {
	for g.LevelCleared() {
		fmt.Fprintf(out, "Level %d cleared: reached %d.\n", g.Level(), g.Target())
		logger.Info("level cleared", "level", g.Level(), "score", g.Score())
		g.ContinueCampaign()
		if !g.Won() && !g.Lost() && !g.LevelCleared() {
			fmt.Fprintf(out, "Level %d: reach %d.\n", g.Level(), g.Target())
		}
	}

	switch {
	case g.Won():
		fmt.Fprintln(out, WinMessage(g.Board().WinningValue()))
		return true
	case g.Lost():
		fmt.Fprintln(out, LoseMessage)
		return true
	}
	return false
}

// parseToken accepts a single-character line (surrounding space ignored).
func parseToken(line string) (rune, bool) {
	line = strings.TrimSpace(line)
	if utf8.RuneCountInString(line) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(strings.ToLower(line))
	if _, ok := t2048.ParseDirection(r); ok {
		return r, true
	}
	switch r {
	case 'q', 'r', 'u':
		return r, true
	}
	return 0, false
}

func draw(out io.Writer, g *t2048.Game, clearScreen bool) {
	if clearScreen {
		fmt.Fprint(out, clearSequence)
	}
	fmt.Fprintf(out, "Score: %d\n", g.Score())
	fmt.Fprint(out, g.Board().String())
}

func result(g *t2048.Game, quit bool) Result {
	b := g.Board()
	return Result{
		Score:   g.Score(),
		MaxTile: b.MaxTile(),
		Moves:   g.Moves(),
		Won:     g.Won(),
		Lost:    g.Lost(),
		Quit:    quit,
	}
}
