package bridge

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/mahlburgc/lorabridge/events"
	"github.com/mahlburgc/lorabridge/internal/radio"
)

const (
	// DefaultTurnaround is the settle delay between leaving receive mode
	// and starting a transmission. The transceiver cannot transmit
	// directly out of receive mode.
	DefaultTurnaround = 10 * time.Millisecond

	// DefaultIdleInterval is how long the bridge stays quiet before it
	// emits a listening heartbeat to the display.
	DefaultIdleInterval = time.Second

	// How often Run executes a loop iteration.
	stepInterval = 10 * time.Millisecond
)

// LineSource yields complete input lines without blocking.
type LineSource interface {
	Next() (string, bool)
}

// Config holds the bridge timing and the radio channel parameters.
type Config struct {
	Params       radio.Params
	Turnaround   time.Duration
	IdleInterval time.Duration
}

// Controller relays newline-delimited messages between the host serial
// channel and the radio, one action per direction per loop iteration.
// Host lines take priority over pending radio datagrams.
//
// The controller exclusively owns the radio state. All methods must be
// called from a single goroutine.
type Controller struct {
	radio  radio.Driver
	lines  LineSource
	serial io.Writer
	cfg    Config

	notify func(events.Event)
	state  radio.State
	last   time.Time // time of the last emitted event

	// injected for tests
	now   func() time.Time
	sleep func(time.Duration)
}

// New creates a controller in the uninitialized state. Start must be
// called before Step or Run.
func New(drv radio.Driver, lines LineSource, serial io.Writer, cfg Config) *Controller {
	if cfg.Turnaround == 0 {
		cfg.Turnaround = DefaultTurnaround
	}
	if cfg.IdleInterval == 0 {
		cfg.IdleInterval = DefaultIdleInterval
	}
	return &Controller{
		radio:  drv,
		lines:  lines,
		serial: serial,
		cfg:    cfg,
		notify: func(events.Event) {},
		state:  radio.StateUninitialized,
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// OnEvent registers the event sink, replacing the previous one. Events are
// fire-and-forget; the sink must not call back into the controller.
func (c *Controller) OnEvent(fn func(events.Event)) {
	c.notify = fn
}

// State returns the current radio state.
func (c *Controller) State() radio.State {
	return c.state
}

// Start configures the radio and arms reception. A configuration failure
// is fatal: the controller enters the terminal fault state and every
// later Step is a no-op. There is no retry, a refused configuration means
// the hardware is miswired.
func (c *Controller) Start() error {
	if err := c.radio.Configure(c.cfg.Params); err != nil {
		c.state = radio.StateFault
		c.emit(events.Event{Kind: events.Fault, Text: err.Error(), Err: err})
		return fmt.Errorf("radio configuration: %w", err)
	}
	if err := c.radio.EnterReceiveMode(); err != nil {
		c.state = radio.StateFault
		c.emit(events.Event{Kind: events.Fault, Text: err.Error(), Err: err})
		return fmt.Errorf("arm receive mode: %w", err)
	}
	c.state = radio.StateReceiving
	c.last = c.now()
	return nil
}

// Step runs one iteration of the cooperative loop: forward at most one
// host line, otherwise poll for at most one radio datagram, then check
// the idle heartbeat.
func (c *Controller) Step() {
	if c.state != radio.StateReceiving {
		return
	}
	if !c.serveSerial() {
		c.serveRadio()
	}
	c.idleTick()
}

// Run drives Step until the context is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	ticker := time.NewTicker(stepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.Step()
		}
	}
}

// serveSerial forwards one pending host line over the radio. It reports
// whether a line was consumed, blank lines included; consuming a line is
// the one serial action of this iteration.
func (c *Controller) serveSerial() bool {
	line, ok := c.lines.Next()
	if !ok {
		return false
	}

	line = strings.TrimSpace(line)
	if line == "" {
		// Terminator-only input, discard without an event.
		return true
	}

	if len(line) > radio.MaxPayload {
		// Reject instead of truncating, a silently cut message would
		// corrupt the relayed data unnoticed.
		c.emit(events.Event{Kind: events.TxFail, Text: line, Err: radio.ErrOversize})
		return true
	}

	if err := c.radio.EnterStandby(); err != nil {
		c.emit(events.Event{Kind: events.TxFail, Text: line, Err: err})
		c.rearm()
		return true
	}
	c.state = radio.StateStandby
	c.sleep(c.cfg.Turnaround)

	c.state = radio.StateTransmitting
	if err := c.radio.Transmit([]byte(line)); err != nil {
		c.emit(events.Event{Kind: events.TxFail, Text: line, Err: err})
	} else {
		c.emit(events.Event{Kind: events.TxOk, Text: line})
	}

	// Never stay stuck in standby or transmitting, whatever the outcome.
	c.rearm()
	return true
}

func (c *Controller) rearm() {
	if err := c.radio.EnterReceiveMode(); err != nil {
		// Surface it, but keep looping; steady-state errors never halt
		// the bridge.
		c.emit(events.Event{Kind: events.RxErr, Err: err})
	}
	c.state = radio.StateReceiving
}

// serveRadio polls for one incoming datagram and forwards it to the host.
// A timeout result is the normal quiet case and produces nothing.
func (c *Controller) serveRadio() {
	poll := c.radio.PollReceive()
	switch poll.Kind {
	case radio.PollReceived:
		if _, err := c.serial.Write(append(poll.Payload, '\n')); err != nil {
			log.Printf("serial write: %v", err)
		}
		c.emit(events.Event{Kind: events.RxOk, Text: string(poll.Payload)})

	case radio.PollError:
		c.emit(events.Event{Kind: events.RxErr, Code: poll.Code, Err: poll.Err})

	case radio.PollTimeout:
		// No data pending, nothing to report.
	}
}

// idleTick emits a listening heartbeat when no event of any kind happened
// for the idle interval. Cosmetic feedback only, not a watchdog.
func (c *Controller) idleTick() {
	if c.now().Sub(c.last) > c.cfg.IdleInterval {
		c.emit(events.Event{Kind: events.Idle})
	}
}

func (c *Controller) emit(ev events.Event) {
	c.last = c.now()
	c.notify(ev)
}
