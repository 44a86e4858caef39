package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mahlburgc/lorabridge/events"
	"github.com/mahlburgc/lorabridge/internal/bridge"
	"github.com/mahlburgc/lorabridge/internal/display"
	"github.com/mahlburgc/lorabridge/internal/footer"
	"github.com/mahlburgc/lorabridge/internal/helpoverlay"
	"github.com/mahlburgc/lorabridge/internal/keymap"
	"github.com/mahlburgc/lorabridge/internal/styles"
	"github.com/mahlburgc/lorabridge/internal/traffic"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

type bridgeStartedMsg struct{ err error }

type model struct {
	traffic traffic.Model
	disp    *display.Updater
	dispVp  viewport.Model
	ftr     footer.Model
	helpOv  helpoverlay.Model
	sp      spinner.Model

	br   *bridge.Controller
	evCh chan events.Event
	ctx  context.Context

	hostName  string
	radioName string

	status   int
	showHelp bool
	width    int
	height   int
	err      error
}

func initialModel(ctx context.Context, br *bridge.Controller, evCh chan events.Event,
	hostName string, radioName string, showTimestamp bool, sessionLog *log.Logger,
) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	// The display viewport is the stand-in for the module's OLED panel.
	dispVp := viewport.New(20, 5)
	dispVp.SetContent("Starting...")

	disp := display.New(display.Surface{
		Width:   dispVp.Width,
		Measure: lipgloss.Width,
	})

	return model{
		traffic:   traffic.New(showTimestamp, sessionLog),
		disp:      disp,
		dispVp:    dispVp,
		ftr:       footer.New(),
		helpOv:    helpoverlay.New(),
		sp:        sp,
		br:        br,
		evCh:      evCh,
		ctx:       ctx,
		hostName:  hostName,
		radioName: radioName,
		status:    footer.StatusConfiguring,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.sp.Tick, m.startBridge(), m.waitForEvent())
}

// startBridge configures the radio off the update loop. Configuration can
// take a couple of modem command round trips.
func (m model) startBridge() tea.Cmd {
	return func() tea.Msg {
		return bridgeStartedMsg{err: m.br.Start()}
	}
}

// waitForEvent hands the next bridge event to the update loop.
func (m model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.evCh
		if !ok {
			return nil
		}
		return ev
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	LogMsgType(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleNewWindowSize(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keymap.Default.QuitKey):
			return m, tea.Quit

		case key.Matches(msg, keymap.Default.HelpKey):
			m.showHelp = !m.showHelp

		case key.Matches(msg, keymap.Default.CloseKey):
			m.showHelp = false

		default:
			m.traffic, cmd = m.traffic.Update(msg)
			cmds = append(cmds, cmd)
		}

	case bridgeStartedMsg:
		if msg.err != nil {
			// Fail-stop: the bridge stays in its fault state, the console
			// stays up so the fault is visible in the field.
			m.status = footer.StatusFault
		} else {
			m.status = footer.StatusRunning
			cmds = append(cmds, m.runBridge())
		}

	case events.Event:
		if msg.Kind == events.Fault {
			m.status = footer.StatusFault
		}
		m.disp.Apply(msg)
		m.refreshDisplayVp()
		m.traffic, cmd = m.traffic.Update(msg)
		cmds = append(cmds, cmd, m.waitForEvent())

	case events.BridgeStoppedMsg:
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.err = msg.Err
		}

	case spinner.TickMsg:
		if m.status == footer.StatusConfiguring {
			m.sp, cmd = m.sp.Update(msg)
			cmds = append(cmds, cmd)
		}

	default:
		m.traffic, cmd = m.traffic.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// runBridge drives the cooperative bridge loop until the context given to
// RunTui is cancelled.
func (m model) runBridge() tea.Cmd {
	return func() tea.Msg {
		return events.BridgeStoppedMsg{Err: m.br.Run(m.ctx)}
	}
}

func (m model) View() string {
	// If there's an error, print it out and don't do anything else.
	if m.err != nil {
		return fmt.Sprintf("\nWe had some trouble: %v\n\n", m.err)
	}

	trafficView := m.traffic.View()
	displayView := styles.AddBorder(m.dispVp, "Display", "")

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		trafficView,
		displayView,
	)

	screen := lipgloss.JoinVertical(
		lipgloss.Left,
		panels,
		m.ftr.View(m.hostName, m.radioName, m.status, m.sp),
	)

	base := zone.Scan(lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		screen))

	if m.showHelp {
		return overlay.New(m.helpOv, staticView(base), overlay.Center, overlay.Center, 0, 0).View()
	}

	return base
}

func (m *model) handleNewWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	borderWidth, borderHeight := styles.BorderStyle.GetFrameSize()

	const footerHeight = 1
	trafficWidth := m.width / 4 * 3

	m.traffic.SetSize(trafficWidth, m.height-footerHeight)

	m.dispVp.Width = m.width - trafficWidth - borderWidth
	m.dispVp.Height = m.height - footerHeight - borderHeight

	m.disp.Resize(m.dispVp.Width)
	m.refreshDisplayVp()

	m.ftr.SetWidth(m.width)

	ho, _ := m.helpOv.Update(msg)
	m.helpOv = ho.(helpoverlay.Model)
}

func (m *model) refreshDisplayVp() {
	content := styles.DisplayStyle.Render(strings.Join(m.disp.Lines(), "\n"))
	m.dispVp.SetContent(content)
}

// staticView adapts an already rendered string to a tea.Model, so it can
// serve as the overlay background.
type staticView string

func (s staticView) Init() tea.Cmd                       { return nil }
func (s staticView) Update(tea.Msg) (tea.Model, tea.Cmd) { return s, nil }
func (s staticView) View() string                        { return string(s) }

func RunTui(br *bridge.Controller, evCh chan events.Event, flags Flags,
	hostName string, radioName string, sessionLog *log.Logger,
) {
	zone.NewGlobal()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := initialModel(ctx, br, evCh, hostName, radioName, flags.Timestamp, sessionLog)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
