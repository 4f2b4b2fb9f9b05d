package tui

import (
	"maps"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/echo-arcade/internal/core"
	"github.com/vovakirdan/echo-arcade/internal/games/maze"
	"github.com/vovakirdan/echo-arcade/internal/registry"
	"github.com/vovakirdan/echo-arcade/internal/storage"
)

type sessionState int

const (
	stateMenu sessionState = iota
	stateMazeSize
	stateGame
	stateScores
)

// SessionModel manages the full arcade session flow: menu -> game -> menu,
// with the maze size picker and the leaderboard reachable from the menu.
// It is the top-level model for both local and SSH sessions.
type SessionModel struct {
	board    storage.Leaderboard
	config   core.RuntimeConfig
	username string
	state    sessionState
	menu     MenuModel
	mazeSize MazeSizeModel
	scores   ScoreboardModel
	game     GameModel
	quitting bool
}

// NewSessionModel creates a new session model. cfg.Options carries the
// configured game options (maze size, flip delay).
func NewSessionModel(board storage.Leaderboard, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		board:    board,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.state {
	case stateGame:
		return m.updateGame(msg)
	case stateMazeSize:
		return m.updateMazeSize(msg)
	case stateScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.board, m.username, m.config.ScreenW, m.config.ScreenH)
		m.state = stateScores
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		id := m.menu.Selected().GameID
		if id == maze.GameID {
			mw := m.config.Option("width", maze.DefaultWidth)
			mh := m.config.Option("height", maze.DefaultHeight)
			m.mazeSize = NewMazeSizeModel(mw, mh, m.config.ScreenW, m.config.ScreenH)
			m.state = stateMazeSize
			return m, m.mazeSize.Init()
		}
		return m.startGame(id, nil)
	}

	return m, cmd
}

func (m SessionModel) updateMazeSize(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.mazeSize.Update(msg)
	if sizeModel, ok := newModel.(MazeSizeModel); ok {
		m.mazeSize = sizeModel
	}

	switch {
	case m.mazeSize.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.mazeSize.WantsBack():
		return m.toMenu()
	case m.mazeSize.Chosen():
		w, h := m.mazeSize.Size()
		return m.startGame(maze.GameID, map[string]int{"width": w, "height": h})
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if scoreModel, ok := newModel.(ScoreboardModel); ok {
		m.scores = scoreModel
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// startGame creates the game and hands control to its model.
// overrides replace individual configured options for this round only.
func (m SessionModel) startGame(id string, overrides map[string]int) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		// Shouldn't happen since menu only shows registered games
		return m.toMenu()
	}

	cfg := m.config
	cfg.Seed = 0
	cfg.Options = make(map[string]int, len(m.config.Options)+len(overrides))
	maps.Copy(cfg.Options, m.config.Options)
	maps.Copy(cfg.Options, overrides)

	m.game = NewGameModel(game, m.board, cfg, m.username)
	m.state = stateGame
	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.toMenu()
	}

	return m, cmd
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.state = stateMenu
	m.menu = NewMenuModel(m.config)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateGame:
		return m.game.View()
	case stateMazeSize:
		return m.mazeSize.View()
	case stateScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// RunSession runs the menu-driven arcade in the local terminal.
func RunSession(board storage.Leaderboard, cfg core.RuntimeConfig, username string) error {
	p := tea.NewProgram(
		NewSessionModel(board, cfg, username),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
