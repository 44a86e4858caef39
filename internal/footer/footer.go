package footer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mahlburgc/lorabridge/internal/styles"
)

const (
	StatusConfiguring = iota
	StatusRunning
	StatusFault
)

type Model struct {
	width int
}

func New() Model {
	return Model{}
}

func (m *Model) SetWidth(w int) {
	m.width = w
}

func (m Model) View(hostPort string, radioName string, status int, sp spinner.Model) string {
	helpText := fmt.Sprintf("%s ⇄ %s | ?: help · ↑/↓: scroll · ctrl+l: clear · ctrl+q: quit",
		hostPort, radioName)

	var statusSymbol string

	switch status {
	case StatusRunning:
		statusSymbol = fmt.Sprintf(" %s ", styles.RunningSymbolStyle.Render("●"))

	case StatusFault:
		statusSymbol = fmt.Sprintf(" %s ", styles.FaultSymbolStyle.Render("●"))

	case StatusConfiguring:
		statusSymbol = fmt.Sprintf(" %s", sp.View())
	}

	statusSymbol = zone.Mark("statussymbol", statusSymbol)

	return lipgloss.NewStyle().MaxWidth(m.width).Render(statusSymbol + styles.FooterStyle.Render(helpText))
}
