package events

// defines all shared event messages

// Kind classifies a bridge activity event.
type Kind int

const (
	TxOk Kind = iota
	TxFail
	RxOk
	RxErr
	Idle
	Fault
)

func (k Kind) String() string {
	switch k {
	case TxOk:
		return "TX OK"
	case TxFail:
		return "TX FAIL"
	case RxOk:
		return "RX OK"
	case RxErr:
		return "RX ERR"
	case Idle:
		return "IDLE"
	case Fault:
		return "FAULT"
	}
	return "UNKNOWN"
}

// Event is a single bridge activity notification. The bridge controller
// pushes one to the display for every transmit outcome, every received
// datagram, every receive error and every idle heartbeat tick.
type Event struct {
	Kind Kind
	Text string // payload text, if the event carries one
	Code int    // radio error code on RxErr events
	Err  error
}

// Indicates a non-fatal runtime error that should be shown to the user.
type ErrMsg error

// Indicates a status text that should be shown to the user.
type InfoMsg string

// Indicates the bridge run loop has stopped.
type BridgeStoppedMsg struct{ Err error }
