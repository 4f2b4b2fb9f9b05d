package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/echo-arcade/internal/config"
)

// MazeSizeModel lets users pick a maze size before a round.
// The first entry keeps the configured size.
type MazeSizeModel struct {
	presets   []config.MazePreset
	current   [2]int // configured width and height
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	chosen    bool
	quitting  bool
	back      bool
}

// NewMazeSizeModel creates the size picker. width and height are the
// configured maze dimensions offered as the default entry.
func NewMazeSizeModel(mazeW, mazeH, screenW, screenH int) MazeSizeModel {
	return MazeSizeModel{
		presets:   config.MazePresets(),
		current:   [2]int{mazeW, mazeH},
		width:     screenW,
		height:    screenH,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m MazeSizeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MazeSizeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m MazeSizeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.presets) {
			m.cursor++
		}
	case MenuActionSelect:
		m.chosen = true
	case MenuActionBack:
		m.back = true
	}
	return m, nil
}

// View renders the size list.
func (m MazeSizeModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("E C H O   M A Z E", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select maze size:", m.width))
	b.WriteString("\n\n")

	lines := []string{fmt.Sprintf("Configured (%dx%d)", m.current[0], m.current[1])}
	for _, p := range m.presets {
		w, h := p.Size()
		name := string(p)
		lines = append(lines, fmt.Sprintf("%-10s (%dx%d)", strings.ToUpper(name[:1])+name[1:], w, h))
	}

	for i, line := range lines {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Size returns the chosen maze dimensions.
func (m MazeSizeModel) Size() (width, height int) {
	if m.cursor == 0 {
		return m.current[0], m.current[1]
	}
	return m.presets[m.cursor-1].Size()
}

// Chosen returns true once the user picked a size.
func (m MazeSizeModel) Chosen() bool {
	return m.chosen
}

// IsQuitting returns true if user wants to quit.
func (m MazeSizeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m MazeSizeModel) WantsBack() bool {
	return m.back
}
