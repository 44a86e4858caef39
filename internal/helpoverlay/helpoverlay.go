package helpoverlay

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mahlburgc/lorabridge/internal/keymap"
	"github.com/mahlburgc/lorabridge/internal/styles"
)

type Model struct {
	width  int
	height int
	help   help.Model
}

func New() (m Model) {
	m.help = help.New()
	m.help.ShowAll = true
	m.help.Styles.FullKey = styles.HelpKey
	m.help.Styles.FullDesc = styles.HelpDesc
	m.help.Styles.FullSeparator = styles.HelpSep
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

func (m Model) View() string {
	boldStyle := lipgloss.NewStyle().Bold(true)
	title := boldStyle.Render("Lorabridge Keybindings\n")
	m.help.Width = m.width

	layout := lipgloss.JoinVertical(lipgloss.Left, title, m.help.View(keymap.Default))

	return styles.HelpOverlayBorderStyle.Render(layout)
}
