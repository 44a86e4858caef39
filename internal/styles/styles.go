package styles

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

var (
	AdaptiveGray    = lipgloss.AdaptiveColor{Light: "#545454", Dark: "#989898"}
	AdaptiveGrayTwo = lipgloss.AdaptiveColor{Light: "#858585", Dark: "#5f5f5f"}
	AdaptivePink    = lipgloss.AdaptiveColor{Light: "#9f008f", Dark: "#f943e3"}
	AdaptiveCyan    = lipgloss.AdaptiveColor{Light: "#006362", Dark: "#96ffec"}
	AdaptiveGreen   = lipgloss.AdaptiveColor{Light: "#41ab00", Dark: "#6cff11"}
	AdaptiveRed     = lipgloss.AdaptiveColor{Light: "#8f0000", Dark: "#be0000"}

	AdaptiveBorderColor = AdaptiveGray

	BorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(AdaptiveBorderColor)

	RunningSymbolStyle = lipgloss.NewStyle().Foreground(AdaptiveGreen)
	FaultSymbolStyle   = lipgloss.NewStyle().Foreground(AdaptiveRed)
	SpinnerStyle       = lipgloss.NewStyle().Foreground(AdaptivePink)

	TxMsgStyle   = lipgloss.NewStyle().Foreground(AdaptivePink)
	ErrMsgStyle  = lipgloss.NewStyle().Foreground(AdaptiveRed)
	InfoMsgStyle = lipgloss.NewStyle().Foreground(AdaptiveGray)
	FooterStyle  = lipgloss.NewStyle().Foreground(AdaptiveGray)

	DisplayStyle = lipgloss.NewStyle().Foreground(AdaptiveCyan)

	HelpKey  = lipgloss.NewStyle().Foreground(AdaptiveGray)
	HelpDesc = lipgloss.NewStyle().Foreground(AdaptiveGrayTwo)
	HelpSep  = lipgloss.NewStyle().Foreground(AdaptiveGrayTwo)

	HelpOverlayBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).
				BorderForeground(AdaptiveCyan).Padding(0, 1, 1)
)

// Adds a border with a title injected into the top line to a viewport and
// returns the rendered string.
func AddBorder(vp viewport.Model, title string, footer string) string {
	border := BorderStyle.GetBorderStyle()
	borderStyle := lipgloss.NewStyle().Foreground(AdaptiveBorderColor)

	// Decorate the labels the way the border draws dividers, drop them if
	// the bar is too narrow to hold them.
	decorate := func(label string) string {
		if label == "" {
			return ""
		}
		rendered := borderStyle.Render(border.Top + border.MiddleRight + " " + label + " " + border.MiddleLeft)
		if lipgloss.Width(rendered) > vp.Width {
			return ""
		}
		return rendered
	}

	bar := func(left, label, right string) string {
		return lipgloss.JoinHorizontal(
			lipgloss.Left,
			borderStyle.Render(left),
			label,
			borderStyle.Render(strings.Repeat(border.Top, max(0, vp.Width-lipgloss.Width(label)))),
			borderStyle.Render(right),
		)
	}

	topBar := bar(border.TopLeft, decorate(title), border.TopRight)
	bottomBar := bar(border.BottomLeft, decorate(footer), border.BottomRight)

	// Render the viewport content inside a box that has NO top and bottom
	// border, then join the constructed bars around it.
	body := BorderStyle.BorderTop(false).BorderBottom(false).Render(vp.View())

	return lipgloss.JoinVertical(lipgloss.Left, topBar, body, bottomBar)
}
