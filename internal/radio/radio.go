package radio

import "errors"

// MaxPayload is the single datagram payload limit of the transceiver.
// Longer buffers are rejected, never truncated.
const MaxPayload = 240

// ErrOversize indicates a payload above the single datagram limit.
var ErrOversize = errors.New("payload exceeds single datagram limit")

// Params is the physical channel configuration. Both ends of a link must
// match exactly; a mismatch shows up only as timeouts and receive errors.
type Params struct {
	Frequency       uint32 // carrier frequency in Hz
	SpreadingFactor uint8  // 7-12
	Bandwidth       uint8  // coded bandwidth, 0-9
	CodingRate      uint8  // 1-4
	SyncWord        uint8  // private channel selector
}

// State of the transceiver. Transitions are owned exclusively by the
// bridge controller, the driver never changes it on its own.
type State int

const (
	StateUninitialized State = iota
	StateReceiving
	StateStandby
	StateTransmitting
	StateFault
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReceiving:
		return "receiving"
	case StateStandby:
		return "standby"
	case StateTransmitting:
		return "transmitting"
	case StateFault:
		return "fault"
	}
	return "invalid"
}

// PollKind is the tri-state result of a single receive poll.
type PollKind int

const (
	// PollTimeout means no datagram was pending. Not an error.
	PollTimeout PollKind = iota
	PollReceived
	PollError
)

// Poll is the outcome of one non-blocking receive check.
type Poll struct {
	Kind    PollKind
	Payload []byte // set for PollReceived
	Code    int    // set for PollError
	Err     error  // set for PollError
}

// Driver is the contract the bridge controller drives a transceiver with.
//
// The half-duplex turnaround is the caller's job: EnterStandby must be
// called and given a short settle delay before Transmit, and Transmit does
// not auto-resume reception, so EnterReceiveMode must follow it.
type Driver interface {
	// Configure applies the channel parameters. Called once at startup;
	// a failure here is fatal to the bridge.
	Configure(Params) error
	// EnterReceiveMode arms the transceiver for reception. Idempotent.
	EnterReceiveMode() error
	// PollReceive checks for a pending datagram without blocking.
	PollReceive() Poll
	// EnterStandby leaves receive mode so a transmission can start.
	EnterStandby() error
	// Transmit sends one datagram, blocking for the duration of the
	// physical transmission. Oversize payloads return ErrOversize.
	Transmit([]byte) error
}
