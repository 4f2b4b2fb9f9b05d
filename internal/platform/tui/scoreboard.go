package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/echo-arcade/internal/storage"
)

const (
	maxStandings = 100
	loadTimeout  = 2 * time.Second
)

// ScoreboardKeyMap defines the key bindings for the leaderboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Refresh, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Prev, k.Next},
		{k.Refresh, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Next:    key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next game")),
		Prev:    key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev game")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// standingsMsg carries a finished leaderboard query.
type standingsMsg struct {
	gameID    string
	standings []storage.Standing
	err       error
}

// loadStandings queries board off the update loop.
func loadStandings(board storage.Leaderboard, gameID string) tea.Cmd {
	return func() tea.Msg {
		if board == nil {
			return standingsMsg{gameID: gameID}
		}
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		standings, err := board.Top(ctx, gameID, maxStandings)
		return standingsMsg{gameID: gameID, standings: standings, err: err}
	}
}

// ScoreboardModel shows one leaderboard per game, switched with tabs.
// Each player appears once, with their fewest moves.
type ScoreboardModel struct {
	games      []MenuItem
	current    int
	board      storage.Leaderboard
	user       string // highlighted player
	standings  []storage.Standing
	loadErr    error
	loading    bool
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	standalone bool // back quits the program
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates the leaderboard screen. Init starts loading
// the first game.
func NewScoreboardModel(board storage.Leaderboard, user string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  menuItems(),
		board:  board,
		user:   user,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	return m
}

func (m ScoreboardModel) gameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.current].GameID
}

func (m ScoreboardModel) newTable() table.Model {
	nameWidth := min(max(m.width-30, 12), 24)
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Player", Width: nameWidth},
			{Title: "Moves", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-11, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *ScoreboardModel) setRows() {
	rows := make([]table.Row, len(m.standings))
	for i, s := range m.standings {
		name := s.User
		if name == m.user {
			name += " *"
		}
		rows[i] = table.Row{fmt.Sprintf("#%d", s.Rank), name, fmt.Sprintf("%d", s.Score)}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// reload switches to game i and queries its standings.
func (m *ScoreboardModel) reload(i int) tea.Cmd {
	if len(m.games) == 0 {
		return nil
	}
	m.current = (i + len(m.games)) % len(m.games)
	m.loading = true
	return loadStandings(m.board, m.gameID())
}

// Init loads the first leaderboard.
func (m ScoreboardModel) Init() tea.Cmd {
	return loadStandings(m.board, m.gameID())
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case standingsMsg:
		// Results for a game the player already tabbed away from are dropped.
		if msg.gameID != m.gameID() {
			return m, nil
		}
		m.loading = false
		m.standings, m.loadErr = msg.standings, msg.err
		m.setRows()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, m.keys.Next):
			return m, m.reload(m.current + 1)
		case key.Matches(msg, m.keys.Prev):
			return m, m.reload(m.current - 1)
		case key.Matches(msg, m.keys.Refresh):
			return m, m.reload(m.current)
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.newTable()
		m.setRows()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "LEADERBOARD"
	if len(m.games) > 0 {
		title += " - " + m.games[m.current].Title
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
		Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(box.Render(m.renderBody()), m.width))
	b.WriteString("\n")

	if line := m.ownStanding(); line != "" {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tab := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.current {
			tabs[i] = active.Render(g.Title)
		} else {
			tabs[i] = tab.Render(g.Title)
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 && len(m.games) > 0 {
		return fmt.Sprintf("< %s >", m.games[m.current].Title)
	}
	return line
}

func (m ScoreboardModel) renderBody() string {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 4)
	switch {
	case m.loadErr != nil:
		return muted.Render("Leaderboard unavailable:\n" + m.loadErr.Error())
	case m.loading && len(m.standings) == 0:
		return muted.Render("Loading...")
	case len(m.standings) == 0:
		return muted.Render("No scores recorded yet.\nFinish a round to claim the top spot!")
	}
	return m.table.View()
}

// ownStanding describes where the highlighted player ranks, if anywhere.
func (m ScoreboardModel) ownStanding() string {
	if m.user == "" || m.loadErr != nil || len(m.standings) == 0 {
		return ""
	}
	for _, s := range m.standings {
		if s.User == m.user {
			return fmt.Sprintf("%s: #%d with %d moves", m.user, s.Rank, s.Score)
		}
	}
	return fmt.Sprintf("%s: not ranked yet", m.user)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// Standings returns the rows currently shown.
func (m ScoreboardModel) Standings() []storage.Standing {
	return m.standings
}

// RunScoreboard runs the leaderboard on its own.
// Returns true if user pressed back, false if quitting.
func RunScoreboard(board storage.Leaderboard, user string, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(board, user, width, height)
	model.standalone = true

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
