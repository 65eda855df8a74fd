package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// menuItem is one entry of the mode menu.
type menuItem struct {
	label  string
	gameID string // Empty for entries that open a sub-screen
}

var menuItems = []menuItem{
	{label: "Classic (reach the goal tile)", gameID: t2048.IDClassic},
	{label: "Endless", gameID: t2048.IDEndless},
	{label: fmt.Sprintf("Campaign (%d levels)", t2048.LevelCount()), gameID: t2048.IDCampaign},
	{label: "Select Level..."},
	{label: "High Scores"},
}

const (
	menuSelectLevel = 3
	menuHighScores  = 4
)

// MenuModel lets users choose game mode and starting campaign level.
type MenuModel struct {
	cursor        int
	levelCursor   int
	inLevelSelect bool
	config        core.RuntimeConfig
	keyMapper     *KeyMapper
	result        MenuResult
	done          bool
	quitInProgram bool // Quit via tea.Quit (local) vs session switch (SSH)
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Level           int // 0 = start from beginning, 1-10 = campaign level
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		config:        cfg,
		keyMapper:     NewKeyMapper(),
		quitInProgram: true,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inLevelSelect {
		return m.handleLevelSelectKey(action)
	}
	return m.handleModeSelectKey(action)
}

func (m MenuModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		return m.finish(MenuResult{Quit: true})
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case MenuActionScoreboard:
		return m.finish(MenuResult{WantsScoreboard: true})
	case MenuActionSelect:
		switch m.cursor {
		case menuSelectLevel:
			m.inLevelSelect = true
			m.levelCursor = 0
		case menuHighScores:
			return m.finish(MenuResult{WantsScoreboard: true})
		default:
			return m.finish(MenuResult{GameID: menuItems[m.cursor].gameID})
		}
	}

	return m, nil
}

func (m MenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		return m.finish(MenuResult{Quit: true})
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < t2048.LevelCount()-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		return m.finish(MenuResult{
			GameID: t2048.IDCampaign,
			Level:  m.levelCursor + 1, // 1-indexed
		})
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// finish records the result and ends the menu.
func (m MenuModel) finish(r MenuResult) (tea.Model, tea.Cmd) {
	m.result = r
	m.done = true
	if m.quitInProgram {
		return m, tea.Quit
	}
	return m, nil
}

// View renders the mode/level selection.
func (m MenuModel) View() string {
	if m.done {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewModeSelect()
}

func (m MenuModel) viewModeSelect() string {
	width := m.config.ScreenW
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("2 0 4 8", width))
	b.WriteString("\n\n")

	s := t2048.CurrentSettings()
	subtitle := fmt.Sprintf("%dx%d board, goal %d", s.Rows, s.Cols, s.WinningValue)
	if s.Start != nil {
		subtitle = fmt.Sprintf("Position %q", s.Start.Name)
	}
	b.WriteString(centerText(subtitle, width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.label, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Tab: Scores  |  Q: Quit", width))

	return b.String()
}

func (m MenuModel) viewLevelSelect() string {
	width := m.config.ScreenW
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", width))
	b.WriteString("\n\n")

	levelTargets := t2048.LevelTargets()
	for i, name := range t2048.LevelNames() {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%2d. %-14s (Target: %d)", cursor, i+1, name, levelTargets[i])
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", width))

	return b.String()
}

// Result returns the menu outcome with the latest screen size.
func (m MenuModel) Result() MenuResult {
	r := m.result
	r.Config = m.config
	if !m.done {
		r.Quit = true
	}
	return r
}

// Done reports whether the user made a choice.
func (m MenuModel) Done() bool {
	return m.done
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
