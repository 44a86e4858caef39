package display

import (
	"fmt"
	"time"

	"github.com/mahlburgc/lorabridge/events"
)

// MeasureFunc returns the rendered width of a string on the target
// surface. The surface decides the unit, pixels for an OLED font or
// terminal cells for the TUI.
type MeasureFunc func(string) int

// Surface describes the text surface the updater renders onto.
type Surface struct {
	Width   int // maximum rendered width of one line
	Measure MeasureFunc
}

// State is the last rendered event.
type State struct {
	Event events.Event
	At    time.Time
}

// Updater projects the most recent bridge event onto a small multi-line
// text surface. It is a pure sink: it owns nothing but its rendering
// buffer and never feeds back into the bridge.
type Updater struct {
	surface Surface
	state   State
	lines   []string
	applied bool

	now func() time.Time
}

func New(surface Surface) *Updater {
	u := &Updater{
		surface: surface,
		now:     time.Now,
	}
	u.lines = []string{"Starting..."}
	return u
}

// Apply overwrites the rendering buffer with the given event. Every
// state-changing event and every idle tick lands here.
func (u *Updater) Apply(ev events.Event) {
	u.state = State{Event: ev, At: u.now()}
	u.applied = true
	u.lines = u.render(ev)
}

// Resize changes the surface width and re-wraps the current rendering.
func (u *Updater) Resize(width int) {
	u.surface.Width = width
	if u.applied {
		u.lines = u.render(u.state.Event)
	}
}

// Lines returns the current rendering, one entry per display line.
func (u *Updater) Lines() []string {
	return u.lines
}

// Last returns the last applied event and its render time.
func (u *Updater) Last() State {
	return u.state
}

func (u *Updater) render(ev events.Event) []string {
	var lines []string

	switch ev.Kind {
	case events.Idle:
		return []string{"Listening..."}

	case events.Fault:
		lines = append(lines, "RADIO FAULT")
		if ev.Err != nil {
			lines = append(lines, u.wrap(ev.Err.Error())...)
		}
		return lines

	case events.RxErr:
		header := ev.Kind.String()
		if ev.Code != 0 {
			header = fmt.Sprintf("%s %d", ev.Kind, ev.Code)
		}
		lines = append(lines, header)
		if ev.Err != nil {
			lines = append(lines, u.wrap(ev.Err.Error())...)
		}
		return lines

	default:
		lines = append(lines, ev.Kind.String())
		if ev.Text != "" {
			lines = append(lines, u.wrap(ev.Text)...)
		}
		return lines
	}
}

// wrap splits s greedily into lines that fit the surface width, breaking
// exactly before the character that would overflow. No hyphenation, no
// dropped characters; a single character wider than the surface still
// gets a line of its own.
func (u *Updater) wrap(s string) []string {
	if u.surface.Width <= 0 || u.surface.Measure == nil {
		return []string{s}
	}

	var lines []string
	var cur string
	for _, r := range s {
		next := cur + string(r)
		if cur != "" && u.surface.Measure(next) > u.surface.Width {
			lines = append(lines, cur)
			cur = string(r)
			continue
		}
		cur = next
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
