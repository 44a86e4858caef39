package traffic

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/icza/gox/stringsx"
	"github.com/mahlburgc/lorabridge/events"
	"github.com/mahlburgc/lorabridge/internal/keymap"
	"github.com/mahlburgc/lorabridge/internal/styles"
)

const logLimit = 2000

// Model is the scrolling traffic log: every relayed message and every
// reported error, newest at the bottom. Idle heartbeats are left out, they
// belong on the display panel only.
type Model struct {
	Vp            viewport.Model
	log           []string
	msgCnt        int
	showTimestamp bool
	sessionLog    *log.Logger
}

func New(showTimestamp bool, sessionLog *log.Logger) (m Model) {
	m.Vp = viewport.New(30, 5)
	m.Vp.SetContent("Welcome to lorabridge!")
	// Scrolling is handled through our own keymap.
	m.Vp.KeyMap.Up.SetEnabled(false)
	m.Vp.KeyMap.Down.SetEnabled(false)
	m.Vp.KeyMap.PageUp.SetEnabled(false)
	m.Vp.KeyMap.PageDown.SetEnabled(false)

	m.showTimestamp = showTimestamp
	m.sessionLog = sessionLog
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	case events.Event:
		m.addEvent(msg)

	case events.InfoMsg:
		m.addLine(styles.InfoMsgStyle.Render("INFO: "+string(msg)), true)

	case events.ErrMsg:
		if msg != nil {
			m.addLine(styles.ErrMsgStyle.Render("ERROR: "+msg.Error()), true)
		}

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.Vp.ScrollUp(1)
		case tea.MouseButtonWheelDown:
			m.Vp.ScrollDown(1)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keymap.Default.LogUpKey):
			m.Vp.ScrollUp(1)
		case key.Matches(msg, keymap.Default.LogDownKey):
			m.Vp.ScrollDown(1)
		case key.Matches(msg, keymap.Default.LogUpFastKey):
			m.Vp.ScrollUp(10)
		case key.Matches(msg, keymap.Default.LogDownFastKey):
			m.Vp.ScrollDown(10)
		case key.Matches(msg, keymap.Default.LogTopKey):
			m.Vp.GotoTop()
		case key.Matches(msg, keymap.Default.LogBottomKey):
			m.Vp.GotoBottom()
		case key.Matches(msg, keymap.Default.ClearLogKey):
			m.log = nil
			m.msgCnt = 0
			m.Vp.SetContent("")
		}
	}

	return m, nil
}

func (m Model) View() string {
	footer := fmt.Sprintf("%d, %3.f%%", m.msgCnt, m.Vp.ScrollPercent()*100)
	return styles.AddBorder(m.Vp, "Traffic", footer)
}

func (m *Model) SetSize(width, height int) {
	borderWidth, borderHeight := styles.BorderStyle.GetFrameSize()
	m.Vp.Width = width - borderWidth
	m.Vp.Height = height - borderHeight
	m.refresh(true)
}

// addEvent turns a bridge event into one log line.
func (m *Model) addEvent(ev events.Event) {
	switch ev.Kind {
	case events.TxOk:
		m.msgCnt++
		m.addLine(styles.TxMsgStyle.Render("> "+stringsx.Clean(ev.Text)), false)

	case events.TxFail:
		m.addLine(styles.ErrMsgStyle.Render(
			fmt.Sprintf("ERROR: TX failed: %v: %s", ev.Err, stringsx.Clean(ev.Text))), true)

	case events.RxOk:
		m.msgCnt++
		m.addLine("< "+stringsx.Clean(ev.Text), false)

	case events.RxErr:
		m.addLine(styles.ErrMsgStyle.Render(fmt.Sprintf("ERROR: RX: %v", ev.Err)), true)

	case events.Fault:
		m.addLine(styles.ErrMsgStyle.Render(fmt.Sprintf("ERROR: radio fault: %v", ev.Err)), true)

	case events.Idle:
		// heartbeat, display panel only
	}
}

func (m *Model) addLine(line string, forceBottom bool) {
	if m.showTimestamp {
		t := time.Now().Format("15:04:05.000")
		line = fmt.Sprintf("[%s] ", t) + line
	}

	if m.sessionLog != nil {
		m.sessionLog.Println(stripansi.Strip(line))
	}

	atBottom := m.Vp.ScrollPercent() == 1

	m.log = append(m.log, line)
	if len(m.log) > logLimit {
		m.log = m.log[len(m.log)-logLimit:]
	}

	m.refresh(forceBottom || atBottom)
}

func (m *Model) refresh(gotoBottom bool) {
	if m.Vp.Height <= 0 {
		return
	}
	m.Vp.SetContent(strings.Join(m.log, "\n"))
	if gotoBottom {
		m.Vp.GotoBottom()
	}
}
